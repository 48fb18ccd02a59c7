package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	financeapp "github.com/zaoknom/docbox-backend/internal/application/finance"
	orderapp "github.com/zaoknom/docbox-backend/internal/application/order"
	"github.com/zaoknom/docbox-backend/internal/domain/shared"
	"github.com/zaoknom/docbox-backend/internal/interfaces/http/middleware"
)

// recentListLimit caps the supplier-facing sub-order list
const recentListLimit = 50

// SupplierHandler serves the token-protected integration API consumed
// by the supplier's own software. Response shapes here are part of an
// external contract and must not change.
type SupplierHandler struct {
	orderService         *orderapp.OrderService
	providerOrderService *orderapp.ProviderOrderService
	transactionService   *financeapp.TransactionService
	token                string
	logger               *zap.Logger
}

// NewSupplierHandler creates a new SupplierHandler
func NewSupplierHandler(
	orderService *orderapp.OrderService,
	providerOrderService *orderapp.ProviderOrderService,
	transactionService *financeapp.TransactionService,
	token string,
	logger *zap.Logger,
) *SupplierHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SupplierHandler{
		orderService:         orderService,
		providerOrderService: providerOrderService,
		transactionService:   transactionService,
		token:                token,
		logger:               logger,
	}
}

// RegisterRoutes registers the supplier API under /zaoknom
func (h *SupplierHandler) RegisterRoutes(rg *gin.RouterGroup) {
	api := rg.Group("/zaoknom")
	api.Use(middleware.SupplierAuth(h.token))
	{
		api.GET("/balance", h.Balance)
		api.GET("/provider-orders", h.ListProviderOrders)
		api.POST("/provider-orders", h.BulkUpdate)
		api.POST("/provider-orders/:id", h.UpdateProviderOrder)
		api.GET("/orders/search", h.Search)
	}
}

// supplierProviderOrder is the sub-order shape the supplier expects
type supplierProviderOrder struct {
	ID           uuid.UUID       `json:"id"`
	Provider     string          `json:"provider"`
	Code         string          `json:"code"`
	Price        decimal.Decimal `json:"price"`
	Status       string          `json:"status"`
	CreationDate string          `json:"creation_date"`
	DeliveryDate *string         `json:"delivery_date"`
}

// Balance returns the cashbox balance as a bare JSON object
func (h *SupplierHandler) Balance(c *gin.Context) {
	balance, err := h.transactionService.Balance(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, balance)
}

// ListProviderOrders returns the most recent sub-orders
func (h *SupplierHandler) ListProviderOrders(c *gin.Context) {
	items, err := h.providerOrderService.ListRecent(c.Request.Context(), recentListLimit)
	if err != nil {
		h.serverError(c, err)
		return
	}

	list := make([]supplierProviderOrder, 0, len(items))
	for i := range items {
		po := &items[i]
		list = append(list, supplierProviderOrder{
			ID:           po.ID,
			Provider:     po.Provider,
			Code:         po.Code,
			Price:        po.Price,
			Status:       po.Status,
			CreationDate: po.CreationDate.Format("2006-01-02"),
			DeliveryDate: po.DeliveryDate,
		})
	}
	c.JSON(http.StatusOK, gin.H{"provider_order_list": list})
}

// BulkUpdate applies a batch of sub-order status and delivery date
// changes sent as a raw JSON body
func (h *SupplierHandler) BulkUpdate(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.serverError(c, err)
		return
	}

	result, err := h.providerOrderService.BulkUpdate(c.Request.Context(), body)
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.writeResult(c, result)
}

// UpdateProviderOrder updates a single sub-order from a form-encoded
// request
func (h *SupplierHandler) UpdateProviderOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	var req orderapp.SingleUpdateRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status":         "error",
			"error_messages": []string{err.Error()},
		})
		return
	}

	result, err := h.providerOrderService.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		h.serverError(c, err)
		return
	}
	h.writeResult(c, result)
}

// Search finds orders by a sub-order code fragment
func (h *SupplierHandler) Search(c *gin.Context) {
	code, ok := c.GetQuery("provider_code")
	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"status":         "error",
			"error_messages": []string{"The search query parametr 'provider_code' is not set"},
		})
		return
	}

	results, err := h.orderService.Search(c.Request.Context(), code)
	if err != nil {
		h.serverError(c, err)
		return
	}
	if len(results) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"status":         "error",
			"error_messages": []string{"Nothing found"},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "search_results": results})
}

func (h *SupplierHandler) writeResult(c *gin.Context, result *orderapp.BulkUpdateResult) {
	if result.OK() {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":         "error",
		"error_messages": result.ErrorMessages,
	})
}

func (h *SupplierHandler) serverError(c *gin.Context, err error) {
	h.logger.Error("supplier api request failed",
		zap.String("path", c.FullPath()),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{
		"status":         "error",
		"error_messages": []string{"Internal error"},
	})
}
