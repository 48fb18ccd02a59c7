package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zaoknom/docbox-backend/internal/domain/order"
	"github.com/zaoknom/docbox-backend/internal/domain/partner"
	"github.com/zaoknom/docbox-backend/internal/domain/shared"
)

func mustCreateClient(t *testing.T, repo *GormClientRepository, name, phone string) *partner.Client {
	t.Helper()
	client, err := partner.NewClient(name, phone, "")
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), client))
	return client
}

func TestGormClientRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormClientRepository(db)
	ctx := context.Background()

	client := mustCreateClient(t, repo, "Петров Иван", "0671234567")

	t.Run("finds by id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, client.ID)
		require.NoError(t, err)
		assert.Equal(t, "Петров Иван", found.Name)
		assert.Equal(t, "0671234567", found.Phone)
	})

	t.Run("finds by name and phone", func(t *testing.T) {
		found, err := repo.FindByNameAndPhone(ctx, "Петров Иван", "0671234567")
		require.NoError(t, err)
		assert.Equal(t, client.ID, found.ID)
	})

	t.Run("returns not found for unknown id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("updates on save", func(t *testing.T) {
		require.NoError(t, client.Update("Петров Иван", "0671234567", "постоянный клиент"))
		require.NoError(t, repo.Save(ctx, client))

		found, err := repo.FindByID(ctx, client.ID)
		require.NoError(t, err)
		assert.Equal(t, "постоянный клиент", found.Info)
	})
}

func TestGormClientRepository_ExistsByNameAndPhone(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormClientRepository(db)
	ctx := context.Background()

	mustCreateClient(t, repo, "Иванова Мария", "0509876543")

	exists, err := repo.ExistsByNameAndPhone(ctx, "Иванова Мария", "0509876543")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByNameAndPhone(ctx, "Иванова Мария", "")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormClientRepository_FindAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormClientRepository(db)
	ctx := context.Background()

	mustCreateClient(t, repo, "Борисенко Олег", "0631112233")
	mustCreateClient(t, repo, "Андреева Анна", "0442223344")

	t.Run("orders by name", func(t *testing.T) {
		clients, err := repo.FindAll(ctx, shared.Filter{})
		require.NoError(t, err)
		require.Len(t, clients, 2)
		assert.Equal(t, "Андреева Анна", clients[0].Name)
		assert.Equal(t, "Борисенко Олег", clients[1].Name)
	})

	t.Run("search by name substring", func(t *testing.T) {
		clients, err := repo.FindAll(ctx, shared.Filter{Search: "Борис"})
		require.NoError(t, err)
		require.Len(t, clients, 1)
		assert.Equal(t, "Борисенко Олег", clients[0].Name)
	})

	t.Run("search by phone fragment", func(t *testing.T) {
		clients, err := repo.FindAll(ctx, shared.Filter{Search: "044222"})
		require.NoError(t, err)
		require.Len(t, clients, 1)
		assert.Equal(t, "Андреева Анна", clients[0].Name)
	})

	t.Run("pagination", func(t *testing.T) {
		clients, err := repo.FindAll(ctx, shared.Filter{Page: 1, PageSize: 1})
		require.NoError(t, err)
		assert.Len(t, clients, 1)
	})

	t.Run("count", func(t *testing.T) {
		count, err := repo.Count(ctx, shared.Filter{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})
}

func TestGormClientRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormClientRepository(db)
	ctx := context.Background()

	t.Run("deletes client without history", func(t *testing.T) {
		client := mustCreateClient(t, repo, "Сидоренко Петр", "")

		require.NoError(t, repo.Delete(ctx, client.ID))

		_, err := repo.FindByID(ctx, client.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("refuses to delete client with orders", func(t *testing.T) {
		client := mustCreateClient(t, repo, "Коваль Анна", "")

		price, err := order.NewPrice(decimal.NewFromInt(5000), nil, nil, nil)
		require.NoError(t, err)
		o, err := order.NewOrder(client.ID, price)
		require.NoError(t, err)
		require.NoError(t, NewGormOrderRepository(db).Save(ctx, o))

		assert.ErrorIs(t, repo.Delete(ctx, client.ID), shared.ErrProtected)
	})

	t.Run("returns not found for unknown id", func(t *testing.T) {
		assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), shared.ErrNotFound)
	})
}
