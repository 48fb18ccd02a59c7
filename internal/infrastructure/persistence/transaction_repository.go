package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/zaoknom/docbox-backend/internal/domain/finance"
	"github.com/zaoknom/docbox-backend/internal/domain/shared"
)

// GormTransactionRepository implements TransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// FindByID finds a transaction by ID
func (r *GormTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Transaction, error) {
	var t finance.Transaction
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// FindAll finds transactions matching the filter, newest date first
func (r *GormTransactionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.Transaction, error) {
	var transactions []finance.Transaction
	query := r.applyFilter(r.db.WithContext(ctx).Model(&finance.Transaction{}), filter)

	if err := query.Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

// FindByOrder finds an order's transactions ordered by date ascending
func (r *GormTransactionRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]finance.Transaction, error) {
	var transactions []finance.Transaction
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("date ASC").
		Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

// FindByClient finds a client's transactions, newest date first
func (r *GormTransactionRepository) FindByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]finance.Transaction, error) {
	var transactions []finance.Transaction
	query := applyPagination(
		r.db.WithContext(ctx).Model(&finance.Transaction{}).
			Where("client_id = ?", clientID).
			Order("date DESC"),
		filter,
	)

	if err := query.Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

// Save creates or updates a transaction
func (r *GormTransactionRepository) Save(ctx context.Context, t *finance.Transaction) error {
	return r.db.WithContext(ctx).Save(t).Error
}

// Delete deletes a transaction
func (r *GormTransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&finance.Transaction{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts transactions matching the filter
func (r *GormTransactionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&finance.Transaction{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumByOrder returns the sum of an order's transaction amounts
func (r *GormTransactionRepository) SumByOrder(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&finance.Transaction{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("order_id = ?", orderID).
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// SumByOrders returns per-order transaction sums for a batch of orders
func (r *GormTransactionRepository) SumByOrders(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	sums := make(map[uuid.UUID]decimal.Decimal, len(orderIDs))
	if len(orderIDs) == 0 {
		return sums, nil
	}

	var rows []struct {
		OrderID uuid.UUID
		Total   decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&finance.Transaction{}).
		Select("order_id, COALESCE(SUM(amount), 0) AS total").
		Where("order_id IN ?", orderIDs).
		Group("order_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		sums[row.OrderID] = row.Total
	}
	return sums, nil
}

// SumByClient returns the sum of a client's transaction amounts
func (r *GormTransactionRepository) SumByClient(ctx context.Context, clientID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&finance.Transaction{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("client_id = ?", clientID).
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// CashboxBalance returns the sum over all cashbox transactions
func (r *GormTransactionRepository) CashboxBalance(ctx context.Context) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&finance.Transaction{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("cashbox = ?", true).
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// applyFilter applies filter options to the query
func (r *GormTransactionRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)
	query = applyPagination(query, filter)

	field := ValidateSortField(filter.OrderBy, TransactionSortFields, "date")
	return query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormTransactionRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "date_from":
			query = query.Where("date >= ?", value)
		case "date_to":
			query = query.Where("date <= ?", value)
		case "cashbox":
			query = query.Where("cashbox = ?", value)
		case "client_id":
			query = query.Where("client_id = ?", value)
		case "provider_id":
			query = query.Where("provider_id = ?", value)
		case "order_id":
			query = query.Where("order_id = ?", value)
		}
	}
	return query
}

// Ensure GormTransactionRepository implements TransactionRepository
var _ finance.TransactionRepository = (*GormTransactionRepository)(nil)
