package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/zaoknom/docbox-backend/internal/domain/finance"
	"github.com/zaoknom/docbox-backend/internal/domain/order"
	"github.com/zaoknom/docbox-backend/internal/domain/partner"
	"github.com/zaoknom/docbox-backend/internal/domain/shared"
)

func mustCreateOrder(t *testing.T, db *gorm.DB, client *partner.Client, total int64) *order.Order {
	t.Helper()
	price, err := order.NewPrice(decimal.NewFromInt(total), nil, nil, nil)
	require.NoError(t, err)
	o, err := order.NewOrder(client.ID, price)
	require.NoError(t, err)
	require.NoError(t, NewGormOrderRepository(db).Save(context.Background(), o))
	return o
}

func TestGormOrderRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	client := mustCreateClient(t, NewGormClientRepository(db), "Петров Иван", "0671234567")
	o := mustCreateOrder(t, db, client, 12000)

	t.Run("saves the price alongside the order", func(t *testing.T) {
		found, err := repo.FindByID(ctx, o.ID)
		require.NoError(t, err)
		require.NotNil(t, found.Price)
		assert.True(t, found.Price.Total.Equal(decimal.NewFromInt(12000)))
	})

	t.Run("updates on save", func(t *testing.T) {
		require.NoError(t, o.SetStatus(order.StatusDelivered))
		require.NoError(t, repo.Save(ctx, o))

		found, err := repo.FindByID(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, order.StatusDelivered, found.Status)
	})

	t.Run("returns not found for unknown id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormOrderRepository_FindByIDFull(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	client := mustCreateClient(t, NewGormClientRepository(db), "Иванова Мария", "0509876543")

	apartment := uint(12)
	address, err := partner.NewAddress("Одеса", partner.StreetTypeStreet, "Канатна", "5", &apartment, "")
	require.NoError(t, err)
	require.NoError(t, NewGormAddressRepository(db).Save(ctx, address))

	provider, err := partner.NewProvider("Стандарт")
	require.NoError(t, err)
	require.NoError(t, NewGormProviderRepository(db).Save(ctx, provider))

	o := mustCreateOrder(t, db, client, 8000)
	o.AddressID = &address.ID
	require.NoError(t, repo.Save(ctx, o))

	po, err := order.NewProviderOrder(o.ID, provider.ID, "77811")
	require.NoError(t, err)
	require.NoError(t, NewGormProviderOrderRepository(db).Save(ctx, po))

	found, err := repo.FindByIDFull(ctx, o.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Client)
	assert.Equal(t, "Иванова Мария", found.Client.Name)
	require.NotNil(t, found.Address)
	assert.Equal(t, "Одеса", found.Address.Town)
	require.Len(t, found.ProviderOrders, 1)
	assert.Equal(t, "77811", found.ProviderOrders[0].Code)
}

func TestGormOrderRepository_FindAll_Filters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	clients := NewGormClientRepository(db)
	petrov := mustCreateClient(t, clients, "Петров Иван", "")
	sidorova := mustCreateClient(t, clients, "Сидорова Анна", "")

	older := mustCreateOrder(t, db, petrov, 5000)
	older.DateCreated = time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, older.SetStatus(order.StatusFinished))
	require.NoError(t, repo.Save(ctx, older))

	newer := mustCreateOrder(t, db, sidorova, 7000)
	newer.DateCreated = time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	require.NoError(t, newer.SetCategory(order.CategoryAluminum))
	require.NoError(t, repo.Save(ctx, newer))

	t.Run("no filter returns everything newest first", func(t *testing.T) {
		orders, err := repo.FindAll(ctx, shared.Filter{})
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, newer.ID, orders[0].ID)
	})

	t.Run("date range", func(t *testing.T) {
		orders, err := repo.FindAll(ctx, shared.Filter{Filters: map[string]interface{}{
			"date_from": time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		}})
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, newer.ID, orders[0].ID)

		orders, err = repo.FindAll(ctx, shared.Filter{Filters: map[string]interface{}{
			"date_to": time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		}})
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, older.ID, orders[0].ID)
	})

	t.Run("status", func(t *testing.T) {
		orders, err := repo.FindAll(ctx, shared.Filter{Filters: map[string]interface{}{
			"status": order.StatusFinished,
		}})
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, older.ID, orders[0].ID)
	})

	t.Run("not finished", func(t *testing.T) {
		orders, err := repo.FindAll(ctx, shared.Filter{Filters: map[string]interface{}{
			"not_finished": true,
		}})
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, newer.ID, orders[0].ID)
	})

	t.Run("category", func(t *testing.T) {
		orders, err := repo.FindAll(ctx, shared.Filter{Filters: map[string]interface{}{
			"category": order.CategoryAluminum,
		}})
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, newer.ID, orders[0].ID)
	})

	t.Run("search by client name", func(t *testing.T) {
		orders, err := repo.FindAll(ctx, shared.Filter{Search: "сидорова"})
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, newer.ID, orders[0].ID)
	})

	t.Run("count honors filters but not pagination", func(t *testing.T) {
		count, err := repo.Count(ctx, shared.Filter{Page: 1, PageSize: 1})
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		count, err = repo.Count(ctx, shared.Filter{Filters: map[string]interface{}{
			"not_finished": true,
		}})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestGormOrderRepository_FindByClient(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	clients := NewGormClientRepository(db)
	petrov := mustCreateClient(t, clients, "Петров Иван", "")
	other := mustCreateClient(t, clients, "Коваль Олег", "")

	mustCreateOrder(t, db, petrov, 5000)
	mustCreateOrder(t, db, petrov, 3000)
	mustCreateOrder(t, db, other, 9000)

	orders, err := repo.FindByClient(ctx, petrov.ID, shared.Filter{})
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestGormOrderRepository_SumTotalsByClient(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	clients := NewGormClientRepository(db)
	petrov := mustCreateClient(t, clients, "Петров Иван", "")

	mustCreateOrder(t, db, petrov, 5000)
	mustCreateOrder(t, db, petrov, 3000)

	sum, err := repo.SumTotalsByClient(ctx, petrov.ID)
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.NewFromInt(8000)))

	t.Run("client without orders sums to zero", func(t *testing.T) {
		sum, err := repo.SumTotalsByClient(ctx, uuid.New())
		require.NoError(t, err)
		assert.True(t, sum.IsZero())
	})
}

func TestGormOrderRepository_SearchByProviderCode(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	clients := NewGormClientRepository(db)
	client := mustCreateClient(t, clients, "Петров Иван", "")

	provider, err := partner.NewProvider("Стандарт")
	require.NoError(t, err)
	require.NoError(t, NewGormProviderRepository(db).Save(ctx, provider))

	withSubOrder := mustCreateOrder(t, db, client, 5000)
	po, err := order.NewProviderOrder(withSubOrder.ID, provider.ID, "77811")
	require.NoError(t, err)
	require.NoError(t, NewGormProviderOrderRepository(db).Save(ctx, po))

	legacy := mustCreateOrder(t, db, client, 3000)
	legacy.ProviderCode = "55123, 55124"
	require.NoError(t, repo.Save(ctx, legacy))

	mustCreateOrder(t, db, client, 1000)

	t.Run("matches sub-order codes", func(t *testing.T) {
		orders, err := repo.SearchByProviderCode(ctx, "778")
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, withSubOrder.ID, orders[0].ID)
	})

	t.Run("matches the legacy code field", func(t *testing.T) {
		orders, err := repo.SearchByProviderCode(ctx, "55124")
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, legacy.ID, orders[0].ID)
	})

	t.Run("no match", func(t *testing.T) {
		orders, err := repo.SearchByProviderCode(ctx, "99999")
		require.NoError(t, err)
		assert.Empty(t, orders)
	})
}

func TestGormOrderRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	client := mustCreateClient(t, NewGormClientRepository(db), "Петров Иван", "")

	t.Run("deletes order with its price", func(t *testing.T) {
		o := mustCreateOrder(t, db, client, 5000)

		require.NoError(t, repo.Delete(ctx, o.ID))

		_, err := repo.FindByID(ctx, o.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		var prices int64
		require.NoError(t, db.Model(&order.Price{}).Where("id = ?", o.PriceID).Count(&prices).Error)
		assert.Zero(t, prices)
	})

	t.Run("refuses to delete order with sub-orders", func(t *testing.T) {
		o := mustCreateOrder(t, db, client, 5000)
		po, err := order.NewProviderOrder(o.ID, uuid.New(), "77811")
		require.NoError(t, err)
		require.NoError(t, NewGormProviderOrderRepository(db).Save(ctx, po))

		assert.ErrorIs(t, repo.Delete(ctx, o.ID), shared.ErrProtected)

		// Both the order and its sub-order stay on the books
		_, err = repo.FindByID(ctx, o.ID)
		require.NoError(t, err)
		var subOrders int64
		require.NoError(t, db.Model(&order.ProviderOrder{}).Where("order_id = ?", o.ID).Count(&subOrders).Error)
		assert.EqualValues(t, 1, subOrders)
	})

	t.Run("refuses to delete order with transactions", func(t *testing.T) {
		o := mustCreateOrder(t, db, client, 5000)

		tx, err := finance.NewTransaction(decimal.NewFromInt(2000), "аванс")
		require.NoError(t, err)
		tx.ForOrder(o.ID)
		require.NoError(t, NewGormTransactionRepository(db).Save(ctx, tx))

		assert.ErrorIs(t, repo.Delete(ctx, o.ID), shared.ErrProtected)
	})

	t.Run("returns not found for unknown id", func(t *testing.T) {
		assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), shared.ErrNotFound)
	})
}
