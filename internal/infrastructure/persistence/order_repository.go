package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/zaoknom/docbox-backend/internal/domain/order"
	"github.com/zaoknom/docbox-backend/internal/domain/shared"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by ID with its price preloaded
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).
		Preload("Price").
		First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByIDFull finds an order with every relation preloaded
func (r *GormOrderRepository) FindByIDFull(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	if err := r.fullQuery(ctx).First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindAll finds orders matching the filter, with price, client and
// sub-orders preloaded
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	var orders []order.Order
	query := r.db.WithContext(ctx).Model(&order.Order{}).
		Preload("Price").
		Preload("Client").
		Preload("ProviderOrders")
	query = r.applyFilter(query, filter)

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindAllFull finds orders matching the filter with every relation preloaded
func (r *GormOrderRepository) FindAllFull(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	var orders []order.Order
	query := r.applyFilter(r.fullQuery(ctx).Model(&order.Order{}), filter)

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByClient finds all orders of a client, newest first
func (r *GormOrderRepository) FindByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	var orders []order.Order
	query := r.db.WithContext(ctx).Model(&order.Order{}).
		Preload("Price").
		Preload("Client").
		Preload("ProviderOrders").
		Where("client_id = ?", clientID).
		Order("date_created DESC")
	query = applyPagination(query, filter)

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// SumTotalsByClient returns the sum of price totals over a client's orders
func (r *GormOrderRepository) SumTotalsByClient(ctx context.Context, clientID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Table("orders").
		Select("COALESCE(SUM(prices.total), 0) AS total").
		Joins("JOIN prices ON prices.id = orders.price_id").
		Where("orders.client_id = ?", clientID).
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// SearchByProviderCode finds orders whose sub-order codes or legacy
// provider code contain the substring
func (r *GormOrderRepository) SearchByProviderCode(ctx context.Context, code string) ([]order.Order, error) {
	pattern := "%" + strings.ToLower(code) + "%"

	var orders []order.Order
	err := r.db.WithContext(ctx).Model(&order.Order{}).
		Preload("Price").
		Preload("Client").
		Preload("ProviderOrders").
		Where("id IN (?) OR LOWER(provider_code) LIKE ?",
			r.db.Table("provider_orders").Select("order_id").Where("LOWER(code) LIKE ?", pattern),
			pattern).
		Order("date_created DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// Save creates or updates an order together with its price
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if o.Price != nil {
			if err := tx.Save(o.Price).Error; err != nil {
				return err
			}
		}
		return tx.Omit("Price", "Client", "Address", "Mounter", "Provider", "ProviderOrders").
			Save(o).Error
	})
}

// Delete deletes an order together with its price. An order with
// sub-orders or transactions on the books stays.
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	var o order.Order
	if err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.ErrNotFound
		}
		return err
	}

	var refs int64
	if err := r.db.WithContext(ctx).Model(&order.ProviderOrder{}).
		Where("order_id = ?", id).Count(&refs).Error; err != nil {
		return err
	}
	if refs > 0 {
		return shared.ErrProtected
	}
	if err := r.db.WithContext(ctx).Table("transactions").
		Where("order_id = ?", id).Count(&refs).Error; err != nil {
		return err
	}
	if refs > 0 {
		return shared.ErrProtected
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&order.Order{}, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&order.Price{}, "id = ?", o.PriceID).Error
	})
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&order.Order{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormOrderRepository) fullQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Price").
		Preload("Client").
		Preload("Address").
		Preload("Mounter").
		Preload("Mounter.Client").
		Preload("Provider").
		Preload("ProviderOrders")
}

// applyFilter applies filter options to the query
func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)
	query = applyPagination(query, filter)

	field := ValidateSortField(filter.OrderBy, OrderSortFields, "date_created")
	return query.Order("orders." + field + " " + ValidateSortOrder(filter.OrderDir))
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Search matches the client name
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.
			Joins("JOIN clients ON clients.id = orders.client_id").
			Where("LOWER(clients.name) LIKE ?", pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "date_from":
			query = query.Where("orders.date_created >= ?", value)
		case "date_to":
			query = query.Where("orders.date_created <= ?", value)
		case "status":
			query = query.Where("orders.status = ?", value)
		case "not_finished":
			if value == true {
				query = query.Where("orders.status <> ?", order.StatusFinished)
			}
		case "category":
			query = query.Where("orders.category = ?", value)
		}
	}

	return query
}

// Ensure GormOrderRepository implements order.Repository
var _ order.Repository = (*GormOrderRepository)(nil)
