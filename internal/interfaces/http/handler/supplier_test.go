package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	financeapp "github.com/zaoknom/docbox-backend/internal/application/finance"
	orderapp "github.com/zaoknom/docbox-backend/internal/application/order"
	"github.com/zaoknom/docbox-backend/internal/domain/partner"
)

// seedSubOrder creates a client, order, provider and one sub-order
func seedSubOrder(t *testing.T, env *testEnv, code string) (*orderapp.OrderResponse, *orderapp.ProviderOrderResponse) {
	t.Helper()

	o := env.createOrder(t, "Иванова Анна", "0671112233", 5000)

	provider, err := partner.NewProvider("Стандарт")
	require.NoError(t, err)
	require.NoError(t, env.db.Create(provider).Error)

	price := decimal.NewFromInt(3000)
	po, err := env.providerOrderService.Create(context.Background(), orderapp.CreateProviderOrderRequest{
		OrderID:    o.ID,
		ProviderID: &provider.ID,
		Code:       code,
		Price:      &price,
	})
	require.NoError(t, err)
	return o, po
}

func TestSupplierAPI_RejectsMissingToken(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/zaoknom/balance", nil)
	rec := httptest.NewRecorder()
	env.engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestSupplierAPI_Balance(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.transactionService.Create(context.Background(), financeapp.CreateTransactionRequest{
		Amount: decimal.NewFromInt(3000),
	})
	require.NoError(t, err)

	rec := env.doSupplier(t, http.MethodGet, "/api/v1/zaoknom/balance", "", nil)

	statusOK(t, rec)
	body := decodeBody(t, rec)
	require.Contains(t, body, "balance")
	assert.Equal(t, "3000", body["balance"])
}

func TestSupplierAPI_BalanceLookupFailure(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.db.Migrator().DropTable("transactions"))

	rec := env.doSupplier(t, http.MethodGet, "/api/v1/zaoknom/balance", "", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "error", body["status"])
	assert.NotContains(t, body, "balance")
}

func TestSupplierAPI_ProviderOrderList(t *testing.T) {
	env := newTestEnv(t)
	_, po := seedSubOrder(t, env, "77811")

	rec := env.doSupplier(t, http.MethodGet, "/api/v1/zaoknom/provider-orders", "", nil)

	statusOK(t, rec)
	body := decodeBody(t, rec)
	list, ok := body["provider_order_list"].([]interface{})
	require.True(t, ok)
	require.Len(t, list, 1)

	entry := list[0].(map[string]interface{})
	assert.Equal(t, po.ID.String(), entry["id"])
	assert.Equal(t, "Стандарт", entry["provider"])
	assert.Equal(t, "77811", entry["code"])
	assert.Equal(t, "3000", entry["price"])
	assert.Equal(t, "new", entry["status"])
	assert.NotEmpty(t, entry["creation_date"])
}

func TestSupplierAPI_BulkUpdate(t *testing.T) {
	t.Run("applies status and delivery date", func(t *testing.T) {
		env := newTestEnv(t)
		_, po := seedSubOrder(t, env, "77811")

		payload := []byte(`{"77811": {"status": "delivered", "delivery_date": "2026-09-05"}}`)
		rec := env.doSupplier(t, http.MethodPost, "/api/v1/zaoknom/provider-orders", "application/json", payload)

		statusOK(t, rec)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

		updated, err := env.providerOrderService.GetByID(context.Background(), po.ID)
		require.NoError(t, err)
		assert.Equal(t, "delivered", updated.Status)
		require.NotNil(t, updated.DeliveryDate)
		assert.Equal(t, "2026-09-05", *updated.DeliveryDate)
	})

	t.Run("malformed json", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.doSupplier(t, http.MethodPost, "/api/v1/zaoknom/provider-orders", "application/json", []byte("{not json"))

		statusOK(t, rec)
		body := decodeBody(t, rec)
		assert.Equal(t, "error", body["status"])
		assert.Equal(t, []interface{}{"Parametr 'orders' contains not valid json"}, body["error_messages"])
	})

	t.Run("unknown provider code", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.doSupplier(t, http.MethodPost, "/api/v1/zaoknom/provider-orders", "application/json",
			[]byte(`{"00000": {"status": "delivered"}}`))

		statusOK(t, rec)
		body := decodeBody(t, rec)
		assert.Equal(t, "error", body["status"])
		assert.Equal(t, []interface{}{"Provider code '00000' doesn't exist."}, body["error_messages"])
	})
}

func TestSupplierAPI_SingleUpdate(t *testing.T) {
	t.Run("form encoded update", func(t *testing.T) {
		env := newTestEnv(t)
		_, po := seedSubOrder(t, env, "77811")

		form := url.Values{}
		form.Set("status", "in_production")
		rec := env.doSupplier(t, http.MethodPost, "/api/v1/zaoknom/provider-orders/"+po.ID.String(),
			"application/x-www-form-urlencoded", []byte(form.Encode()))

		statusOK(t, rec)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

		updated, err := env.providerOrderService.GetByID(context.Background(), po.ID)
		require.NoError(t, err)
		assert.Equal(t, "in_production", updated.Status)
	})

	t.Run("unknown id", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.doSupplier(t, http.MethodPost,
			"/api/v1/zaoknom/provider-orders/2f9c2b9e-59c6-4f0a-bd37-5f8f8a2c9d11",
			"application/x-www-form-urlencoded", []byte("status=delivered"))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid status collected as error message", func(t *testing.T) {
		env := newTestEnv(t)
		_, po := seedSubOrder(t, env, "77811")

		rec := env.doSupplier(t, http.MethodPost, "/api/v1/zaoknom/provider-orders/"+po.ID.String(),
			"application/x-www-form-urlencoded", []byte("status=shipped"))

		statusOK(t, rec)
		body := decodeBody(t, rec)
		assert.Equal(t, "error", body["status"])
		assert.Equal(t, []interface{}{"Status 'shipped' is not allowed"}, body["error_messages"])
	})
}

func TestSupplierAPI_Search(t *testing.T) {
	t.Run("finds order by sub-order code fragment", func(t *testing.T) {
		env := newTestEnv(t)
		o, _ := seedSubOrder(t, env, "77811")

		rec := env.doSupplier(t, http.MethodGet, "/api/v1/zaoknom/orders/search?provider_code=778", "", nil)

		statusOK(t, rec)
		body := decodeBody(t, rec)
		assert.Equal(t, "ok", body["status"])
		results, ok := body["search_results"].([]interface{})
		require.True(t, ok)
		require.Len(t, results, 1)

		row := results[0].(map[string]interface{})
		assert.Equal(t, o.ID.String(), row["id"])
		assert.Equal(t, "Иванова Анна", row["client"])
		assert.True(t, strings.Contains(row["provider_order"].(string), "77811"))
		assert.Equal(t, "5000", row["price_total"])
	})

	t.Run("missing query parameter", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.doSupplier(t, http.MethodGet, "/api/v1/zaoknom/orders/search", "", nil)

		statusOK(t, rec)
		body := decodeBody(t, rec)
		assert.Equal(t, "error", body["status"])
		assert.Equal(t, []interface{}{"The search query parametr 'provider_code' is not set"}, body["error_messages"])
	})

	t.Run("nothing found", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.doSupplier(t, http.MethodGet, "/api/v1/zaoknom/orders/search?provider_code=99999", "", nil)

		statusOK(t, rec)
		body := decodeBody(t, rec)
		assert.Equal(t, "error", body["status"])
		assert.Equal(t, []interface{}{"Nothing found"}, body["error_messages"])
	})
}
