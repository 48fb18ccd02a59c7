package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	orderapp "github.com/zaoknom/docbox-backend/internal/application/order"
)

const defaultRecentLimit = 50

// ProviderOrderHandler handles the internal sub-order endpoints
type ProviderOrderHandler struct {
	BaseHandler
	providerOrderService *orderapp.ProviderOrderService
}

// NewProviderOrderHandler creates a new ProviderOrderHandler
func NewProviderOrderHandler(providerOrderService *orderapp.ProviderOrderService) *ProviderOrderHandler {
	return &ProviderOrderHandler{providerOrderService: providerOrderService}
}

// RegisterRoutes registers sub-order routes
func (h *ProviderOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	pos := rg.Group("/provider-orders")
	{
		pos.GET("", h.List)
		pos.POST("", h.Create)
		pos.GET("/:id", h.Get)
		pos.DELETE("/:id", h.Delete)
	}
}

// List returns the most recent sub-orders, optionally limited by the
// limit query parameter
func (h *ProviderOrderHandler) List(c *gin.Context) {
	limit := defaultRecentLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.BadRequest(c, "Invalid limit")
			return
		}
		limit = parsed
	}

	items, err := h.providerOrderService.ListRecent(c.Request.Context(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// Create adds a sub-order to an existing order
func (h *ProviderOrderHandler) Create(c *gin.Context) {
	var req orderapp.CreateProviderOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	po, err := h.providerOrderService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, po)
}

// Get returns one sub-order
func (h *ProviderOrderHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid provider order id")
		return
	}

	po, err := h.providerOrderService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, po)
}

// Delete removes a sub-order and recomputes the parent order totals
func (h *ProviderOrderHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid provider order id")
		return
	}

	if err := h.providerOrderService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
