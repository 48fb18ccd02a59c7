package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zaoknom/docbox-backend/internal/domain/order"
	"github.com/zaoknom/docbox-backend/internal/domain/partner"
)

// DateLayout is the wire format for business dates
const DateLayout = "2006-01-02"

// =============================================================================
// Order DTOs
// =============================================================================

// PriceRequest carries the money fields of an order
type PriceRequest struct {
	Total         decimal.Decimal  `json:"total" binding:"required"`
	AddedExpenses *decimal.Decimal `json:"added_expenses"`
	Delivery      *decimal.Decimal `json:"delivery"`
	Mounting      *decimal.Decimal `json:"mounting"`
}

// AddressRequest carries the optional order address
type AddressRequest struct {
	Town       string `json:"town" binding:"max=64"`
	StreetType string `json:"street_type" binding:"omitempty,oneof=lane street avenue boulevard"`
	Street     string `json:"street" binding:"max=64"`
	Building   string `json:"building" binding:"max=8"`
	Apartment  *uint  `json:"apartment"`
	Info       string `json:"info" binding:"max=1024"`
}

// CreateOrderRequest represents a request to create a new order.
// The client is resolved by name and phone, created when missing.
type CreateOrderRequest struct {
	ClientName   string          `json:"client_name" binding:"required,min=1,max=64"`
	ClientPhone  string          `json:"client_phone" binding:"omitempty,len=10,numeric"`
	Price        PriceRequest    `json:"price" binding:"required"`
	Address      *AddressRequest `json:"address"`
	MounterID    *uuid.UUID      `json:"mounter_id"`
	ProviderID   *uuid.UUID      `json:"provider_id"`
	ProviderCode string          `json:"provider_code" binding:"max=1024"`
	Status       string          `json:"status" binding:"omitempty,oneof=new waiting_for_payment in_production delivered mounted finished"`
	Category     string          `json:"category" binding:"omitempty,oneof=pvc blinds addons aluminum glass steel_doors"`
	Comment      string          `json:"comment" binding:"max=1024"`
	DateCreated  *string         `json:"date_created"`
	DateDelivery *string         `json:"date_delivery"`
	DateMounting *string         `json:"date_mounting"`
}

// UpdateOrderRequest represents a partial order update
type UpdateOrderRequest struct {
	Price        *PriceRequest   `json:"price"`
	Address      *AddressRequest `json:"address"`
	MounterID    *uuid.UUID      `json:"mounter_id"`
	ProviderID   *uuid.UUID      `json:"provider_id"`
	ProviderCode *string         `json:"provider_code" binding:"omitempty,max=1024"`
	Status       *string         `json:"status" binding:"omitempty,oneof=new waiting_for_payment in_production delivered mounted finished"`
	Category     *string         `json:"category" binding:"omitempty,oneof=pvc blinds addons aluminum glass steel_doors"`
	Comment      *string         `json:"comment" binding:"omitempty,max=1024"`
	DateDelivery *string         `json:"date_delivery"`
	DateMounting *string         `json:"date_mounting"`
	DateFinished *string         `json:"date_finished"`
}

// OrderListFilter represents filter options for the order list
type OrderListFilter struct {
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
	Status   string `form:"status"`
	Category string `form:"category" binding:"omitempty,oneof=pvc blinds addons aluminum glass steel_doors"`
	Client   string `form:"client"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// PriceResponse carries stored and derived money figures of an order
type PriceResponse struct {
	Total          decimal.Decimal  `json:"total"`
	AddedExpenses  *decimal.Decimal `json:"added_expenses"`
	Delivery       *decimal.Decimal `json:"delivery"`
	Mounting       *decimal.Decimal `json:"mounting"`
	Products       decimal.Decimal  `json:"products"`
	ProviderOrders decimal.Decimal  `json:"provider_orders_price"`
	Expenses       decimal.Decimal  `json:"expenses"`
	Profit         decimal.Decimal  `json:"profit"`
	ExtraCharge    decimal.Decimal  `json:"extra_charge"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID                uuid.UUID       `json:"id"`
	DateCreated       string          `json:"date_created"`
	ClientID          uuid.UUID       `json:"client_id"`
	ClientName        string          `json:"client_name"`
	ClientPhone       string          `json:"client_phone"`
	Address           string          `json:"address"`
	MounterID         *uuid.UUID      `json:"mounter_id,omitempty"`
	MounterName       string          `json:"mounter_name,omitempty"`
	ProviderID        *uuid.UUID      `json:"provider_id,omitempty"`
	ProviderOrdersStr string          `json:"provider_orders_str"`
	Status            string          `json:"status"`
	StatusDisplay     string          `json:"status_display"`
	Category          string          `json:"category"`
	Comment           string          `json:"comment"`
	Price             PriceResponse   `json:"price"`
	TransactionsSum   decimal.Decimal `json:"transactions_sum"`
	Remaining         decimal.Decimal `json:"remaining"`
	DateDelivery      *string         `json:"date_delivery"`
	DateMounting      *string         `json:"date_mounting"`
	DateFinished      *string         `json:"date_finished"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// BookkeepingResponse carries totals over a filtered order list
type BookkeepingResponse struct {
	Orders        int             `json:"orders"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	ProductsPrice decimal.Decimal `json:"products_price"`
	Expenses      decimal.Decimal `json:"expenses"`
	Profit        decimal.Decimal `json:"profit"`
}

// SearchResult is one row of the provider-code order search
type SearchResult struct {
	ID             uuid.UUID       `json:"id"`
	ProviderOrder  string          `json:"provider_order"`
	Client         string          `json:"client"`
	Comment        string          `json:"comment"`
	PriceTotal     decimal.Decimal `json:"price_total"`
	PriceRemaining decimal.Decimal `json:"price_remaining"`
	Status         string          `json:"status"`
	CreationDate   string          `json:"creation_date"`
	DeliveryDate   string          `json:"delivery_date"`
}

// =============================================================================
// ProviderOrder DTOs
// =============================================================================

// CreateProviderOrderRequest creates a sub-order under an order. A
// missing provider falls back to the configured default provider.
type CreateProviderOrderRequest struct {
	OrderID      uuid.UUID        `json:"order_id" binding:"required"`
	ProviderID   *uuid.UUID       `json:"provider_id"`
	Code         string           `json:"code" binding:"required,min=1,max=16"`
	Price        *decimal.Decimal `json:"price"`
	OrderContent string           `json:"order_content" binding:"max=1024"`
	DeliveryDate *string          `json:"delivery_date"`
	Status       string           `json:"status" binding:"omitempty,oneof=new waiting_for_payment in_production delivered mounted finished"`
}

// ProviderOrderResponse represents a sub-order in API responses
type ProviderOrderResponse struct {
	ID           uuid.UUID       `json:"id"`
	OrderID      uuid.UUID       `json:"order_id"`
	ProviderID   uuid.UUID       `json:"provider_id"`
	Provider     string          `json:"provider,omitempty"`
	Code         string          `json:"code"`
	Price        decimal.Decimal `json:"price"`
	OrderContent string          `json:"order_content"`
	CreationDate time.Time       `json:"creation_date"`
	DeliveryDate *string         `json:"delivery_date"`
	Status       string          `json:"status"`
}

// BulkUpdateEntry is one partial update keyed by supplier code
type BulkUpdateEntry struct {
	Status       *string          `json:"status"`
	DeliveryDate *string          `json:"delivery_date"`
	Price        *decimal.Decimal `json:"price"`
}

// BulkUpdateResult collects the outcome of a bulk update batch
type BulkUpdateResult struct {
	ErrorMessages []string
}

// OK reports whether the whole batch went through cleanly
func (r *BulkUpdateResult) OK() bool {
	return len(r.ErrorMessages) == 0
}

// SingleUpdateRequest is the form-encoded single sub-order update
type SingleUpdateRequest struct {
	Status       *string `form:"status"`
	DeliveryDate *string `form:"delivery_date"`
}

// =============================================================================
// Converters
// =============================================================================

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}

// ParseDate parses a business date in ISO form
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// ToOrderResponse converts a fully loaded order and its transaction
// sum into a response DTO
func ToOrderResponse(o *order.Order, transactionsSum decimal.Decimal) OrderResponse {
	providerOrdersSum := o.ProviderOrdersSum()

	resp := OrderResponse{
		ID:                o.ID,
		DateCreated:       o.DateCreated.Format(DateLayout),
		ClientID:          o.ClientID,
		ClientName:        o.ClientName(),
		Address:           o.AddressDisplay(),
		MounterID:         o.MounterID,
		ProviderID:        o.ProviderID,
		ProviderOrdersStr: o.ProviderOrdersStr(),
		Status:            o.Status.String(),
		StatusDisplay:     o.Status.Display(),
		Category:          o.Category.String(),
		Comment:           o.Comment,
		TransactionsSum:   transactionsSum,
		Remaining:         o.Remaining(transactionsSum),
		DateDelivery:      formatDate(o.DateDelivery),
		DateMounting:      formatDate(o.DateMounting),
		DateFinished:      formatDate(o.DateFinished),
		UpdatedAt:         o.UpdatedAt,
	}
	if o.Client != nil {
		resp.ClientPhone = o.Client.Phone
	}
	if o.Mounter != nil {
		resp.MounterName = o.Mounter.Name()
	}
	if o.Price != nil {
		resp.Price = PriceResponse{
			Total:          o.Price.Total,
			AddedExpenses:  o.Price.AddedExpenses,
			Delivery:       o.Price.Delivery,
			Mounting:       o.Price.Mounting,
			Products:       o.Price.Products(),
			ProviderOrders: providerOrdersSum,
			Expenses:       o.Price.Expenses(providerOrdersSum),
			Profit:         o.Price.Profit(providerOrdersSum),
			ExtraCharge:    o.Price.ExtraCharge(providerOrdersSum),
		}
	}
	return resp
}

// ToSearchResult converts an order into a search row
func ToSearchResult(o *order.Order, transactionsSum decimal.Decimal) SearchResult {
	deliveryDate := ""
	if o.DateDelivery != nil {
		deliveryDate = o.DateDelivery.Format(DateLayout)
	}
	return SearchResult{
		ID:             o.ID,
		ProviderOrder:  o.ProviderOrdersStr(),
		Client:         o.ClientName(),
		Comment:        o.Comment,
		PriceTotal:     o.Price.Total,
		PriceRemaining: o.Remaining(transactionsSum),
		Status:         o.Status.String(),
		CreationDate:   o.DateCreated.Format(DateLayout),
		DeliveryDate:   deliveryDate,
	}
}

// ToProviderOrderResponse converts a sub-order into a response DTO
func ToProviderOrderResponse(po *order.ProviderOrder) ProviderOrderResponse {
	resp := ProviderOrderResponse{
		ID:           po.ID,
		OrderID:      po.OrderID,
		ProviderID:   po.ProviderID,
		Code:         po.Code,
		Price:        po.Price,
		OrderContent: po.OrderContent,
		CreationDate: po.CreatedAt,
		DeliveryDate: formatDate(po.DeliveryDate),
		Status:       po.Status.String(),
	}
	if po.Provider != nil {
		resp.Provider = po.Provider.Name
	}
	return resp
}

// ToProviderOrderResponses converts a slice of sub-orders
func ToProviderOrderResponses(pos []order.ProviderOrder) []ProviderOrderResponse {
	responses := make([]ProviderOrderResponse, len(pos))
	for i := range pos {
		responses[i] = ToProviderOrderResponse(&pos[i])
	}
	return responses
}

func addressFromRequest(req *AddressRequest) (*partner.Address, error) {
	return partner.NewAddress(
		req.Town,
		partner.StreetType(req.StreetType),
		req.Street,
		req.Building,
		req.Apartment,
		req.Info,
	)
}
