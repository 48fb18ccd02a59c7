package handler

import (
	"github.com/gin-gonic/gin"

	partnerapp "github.com/zaoknom/docbox-backend/internal/application/partner"
)

// ProviderHandler handles provider endpoints
type ProviderHandler struct {
	BaseHandler
	providerService *partnerapp.ProviderService
}

// NewProviderHandler creates a new ProviderHandler
func NewProviderHandler(providerService *partnerapp.ProviderService) *ProviderHandler {
	return &ProviderHandler{providerService: providerService}
}

// RegisterRoutes registers provider routes
func (h *ProviderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	providers := rg.Group("/providers")
	{
		providers.GET("", h.List)
		providers.POST("", h.Create)
		providers.GET("/:id", h.Get)
		providers.PUT("/:id", h.Update)
		providers.DELETE("/:id", h.Delete)
	}
}

// List returns all providers
func (h *ProviderHandler) List(c *gin.Context) {
	providers, err := h.providerService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, providers)
}

// Create creates a new provider
func (h *ProviderHandler) Create(c *gin.Context) {
	var req partnerapp.CreateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	provider, err := h.providerService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, provider)
}

// Get returns one provider
func (h *ProviderHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid provider id")
		return
	}

	provider, err := h.providerService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, provider)
}

// Update renames a provider
func (h *ProviderHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid provider id")
		return
	}

	var req partnerapp.UpdateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	provider, err := h.providerService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, provider)
}

// Delete deletes a provider without sub-orders or payments
func (h *ProviderHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid provider id")
		return
	}

	if err := h.providerService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// MounterHandler handles mounter endpoints
type MounterHandler struct {
	BaseHandler
	mounterService *partnerapp.MounterService
}

// NewMounterHandler creates a new MounterHandler
func NewMounterHandler(mounterService *partnerapp.MounterService) *MounterHandler {
	return &MounterHandler{mounterService: mounterService}
}

// RegisterRoutes registers mounter routes
func (h *MounterHandler) RegisterRoutes(rg *gin.RouterGroup) {
	mounters := rg.Group("/mounters")
	{
		mounters.GET("", h.List)
		mounters.POST("", h.Create)
		mounters.GET("/:id", h.Get)
		mounters.DELETE("/:id", h.Delete)
	}
}

// List returns all mounters
func (h *MounterHandler) List(c *gin.Context) {
	mounters, err := h.mounterService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, mounters)
}

// Create creates a new mounter
func (h *MounterHandler) Create(c *gin.Context) {
	var req partnerapp.CreateMounterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	mounter, err := h.mounterService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, mounter)
}

// Get returns one mounter
func (h *MounterHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid mounter id")
		return
	}

	mounter, err := h.mounterService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, mounter)
}

// Delete deletes a mounter; orders referencing it keep their rows
func (h *MounterHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid mounter id")
		return
	}

	if err := h.mounterService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
