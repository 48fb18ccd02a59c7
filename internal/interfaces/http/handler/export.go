package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zaoknom/docbox-backend/internal/application/export"
)

// ExportHandler serves CSV downloads of orders and transactions
type ExportHandler struct {
	BaseHandler
	csvService *export.CSVService
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(csvService *export.CSVService) *ExportHandler {
	return &ExportHandler{csvService: csvService}
}

// RegisterRoutes registers export routes
func (h *ExportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	exports := rg.Group("/export")
	{
		exports.GET("/orders", h.Orders)
		exports.GET("/transactions", h.Transactions)
	}
}

// Orders streams the full order history as a CSV attachment
func (h *ExportHandler) Orders(c *gin.Context) {
	data, err := h.csvService.ExportOrders(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.serveCSV(c, export.OrdersFilename(time.Now()), data)
}

// Transactions streams the full transaction history as a CSV attachment
func (h *ExportHandler) Transactions(c *gin.Context) {
	data, err := h.csvService.ExportTransactions(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.serveCSV(c, export.TransactionsFilename(time.Now()), data)
}

func (h *ExportHandler) serveCSV(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
