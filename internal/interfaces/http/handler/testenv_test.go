package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	exportapp "github.com/zaoknom/docbox-backend/internal/application/export"
	financeapp "github.com/zaoknom/docbox-backend/internal/application/finance"
	orderapp "github.com/zaoknom/docbox-backend/internal/application/order"
	partnerapp "github.com/zaoknom/docbox-backend/internal/application/partner"
	"github.com/zaoknom/docbox-backend/internal/domain/finance"
	"github.com/zaoknom/docbox-backend/internal/domain/order"
	"github.com/zaoknom/docbox-backend/internal/domain/partner"
	"github.com/zaoknom/docbox-backend/internal/infrastructure/persistence"
	"github.com/zaoknom/docbox-backend/internal/interfaces/http/middleware"
)

const testSupplierToken = "test-supplier-token"

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// testEnv wires real services over an in-memory database behind a gin
// engine, so handler tests exercise the full request path
type testEnv struct {
	engine *gin.Engine
	db     *gorm.DB

	clientService        *partnerapp.ClientService
	orderService         *orderapp.OrderService
	providerOrderService *orderapp.ProviderOrderService
	transactionService   *financeapp.TransactionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&partner.Client{},
		&partner.Provider{},
		&partner.Mounter{},
		&partner.Address{},
		&order.Price{},
		&order.Order{},
		&order.ProviderOrder{},
		&finance.Transaction{},
	))

	clientRepo := persistence.NewGormClientRepository(db)
	providerRepo := persistence.NewGormProviderRepository(db)
	mounterRepo := persistence.NewGormMounterRepository(db)
	addressRepo := persistence.NewGormAddressRepository(db)
	orderRepo := persistence.NewGormOrderRepository(db)
	poRepo := persistence.NewGormProviderOrderRepository(db)
	txRepo := persistence.NewGormTransactionRepository(db)

	clientService := partnerapp.NewClientService(clientRepo)
	providerService := partnerapp.NewProviderService(providerRepo)
	mounterService := partnerapp.NewMounterService(mounterRepo, clientRepo)
	orderService := orderapp.NewOrderService(orderRepo, clientRepo, addressRepo, mounterRepo, txRepo)
	providerOrderService := orderapp.NewProviderOrderService(
		poRepo, orderRepo, providerRepo, nil,
		180*24*time.Hour, decimal.NewFromInt(10))
	transactionService := financeapp.NewTransactionService(txRepo, orderRepo, nil)
	csvService := exportapp.NewCSVService(orderRepo, txRepo, clientRepo, providerRepo)

	engine := gin.New()
	api := engine.Group("/api/v1")
	NewClientHandler(clientService, orderService, transactionService).RegisterRoutes(api)
	NewProviderHandler(providerService).RegisterRoutes(api)
	NewMounterHandler(mounterService).RegisterRoutes(api)
	NewOrderHandler(orderService).RegisterRoutes(api)
	NewProviderOrderHandler(providerOrderService).RegisterRoutes(api)
	NewTransactionHandler(transactionService).RegisterRoutes(api)
	NewExportHandler(csvService).RegisterRoutes(api)
	NewSupplierHandler(orderService, providerOrderService, transactionService, testSupplierToken, nil).RegisterRoutes(api)

	return &testEnv{
		engine:               engine,
		db:                   db,
		clientService:        clientService,
		orderService:         orderService,
		providerOrderService: providerOrderService,
		transactionService:   transactionService,
	}
}

// do performs a JSON request against the test engine
func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.engine.ServeHTTP(rec, req)
	return rec
}

// doSupplier performs a request with the supplier bearer token
func (e *testEnv) doSupplier(t *testing.T, method, path, contentType string, body []byte) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+testSupplierToken)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	e.engine.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
	return parsed
}

// createOrder seeds one order through the service layer
func (e *testEnv) createOrder(t *testing.T, clientName, phone string, total int64) *orderapp.OrderResponse {
	t.Helper()

	resp, err := e.orderService.Create(context.Background(), orderapp.CreateOrderRequest{
		ClientName:  clientName,
		ClientPhone: phone,
		Price:       orderapp.PriceRequest{Total: decimal.NewFromInt(total)},
	})
	require.NoError(t, err)
	return resp
}

func statusOK(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}
