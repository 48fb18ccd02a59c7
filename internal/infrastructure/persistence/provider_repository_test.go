package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zaoknom/docbox-backend/internal/domain/finance"
	"github.com/zaoknom/docbox-backend/internal/domain/order"
	"github.com/zaoknom/docbox-backend/internal/domain/partner"
	"github.com/zaoknom/docbox-backend/internal/domain/shared"
)

func mustCreateProvider(t *testing.T, repo *GormProviderRepository, name string) *partner.Provider {
	t.Helper()
	provider, err := partner.NewProvider(name)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), provider))
	return provider
}

func TestGormProviderRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProviderRepository(db)
	ctx := context.Background()

	provider := mustCreateProvider(t, repo, "Стандарт")

	t.Run("finds by id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, provider.ID)
		require.NoError(t, err)
		assert.Equal(t, "Стандарт", found.Name)
	})

	t.Run("finds by exact name", func(t *testing.T) {
		found, err := repo.FindByName(ctx, "Стандарт")
		require.NoError(t, err)
		assert.Equal(t, provider.ID, found.ID)

		_, err = repo.FindByName(ctx, "стандарт")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("orders by name", func(t *testing.T) {
		mustCreateProvider(t, repo, "Фабрика")

		providers, err := repo.FindAll(ctx, shared.Filter{})
		require.NoError(t, err)
		require.Len(t, providers, 2)
		assert.Equal(t, "Стандарт", providers[0].Name)
		assert.Equal(t, "Фабрика", providers[1].Name)
	})
}

func TestGormProviderRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProviderRepository(db)
	ctx := context.Background()

	t.Run("deletes provider without history", func(t *testing.T) {
		provider := mustCreateProvider(t, repo, "Новый")

		require.NoError(t, repo.Delete(ctx, provider.ID))

		_, err := repo.FindByID(ctx, provider.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("refuses to delete provider with sub-orders", func(t *testing.T) {
		provider := mustCreateProvider(t, repo, "Стандарт")

		client := mustCreateClient(t, NewGormClientRepository(db), "Петров Иван", "")
		o := mustCreateOrder(t, db, client, 5000)
		po, err := order.NewProviderOrder(o.ID, provider.ID, "77811")
		require.NoError(t, err)
		require.NoError(t, NewGormProviderOrderRepository(db).Save(ctx, po))

		assert.ErrorIs(t, repo.Delete(ctx, provider.ID), shared.ErrProtected)
	})

	t.Run("refuses to delete provider with transactions", func(t *testing.T) {
		provider := mustCreateProvider(t, repo, "Фабрика")

		tx, err := finance.NewTransaction(decimal.NewFromInt(-2000), "оплата фабрике")
		require.NoError(t, err)
		tx.ForProvider(provider.ID)
		require.NoError(t, NewGormTransactionRepository(db).Save(ctx, tx))

		assert.ErrorIs(t, repo.Delete(ctx, provider.ID), shared.ErrProtected)
	})

	t.Run("returns not found for unknown id", func(t *testing.T) {
		assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), shared.ErrNotFound)
	})
}
