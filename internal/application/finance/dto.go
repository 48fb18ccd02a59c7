package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zaoknom/docbox-backend/internal/domain/finance"
)

// DateLayout is the wire format for business dates
const DateLayout = "2006-01-02"

// CreateTransactionRequest represents a request to record a money
// movement. Negative amounts are money going out.
type CreateTransactionRequest struct {
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Date       *string         `json:"date"`
	ClientID   *uuid.UUID      `json:"client_id"`
	ProviderID *uuid.UUID      `json:"provider_id"`
	OrderID    *uuid.UUID      `json:"order_id"`
	Comment    string          `json:"comment" binding:"max=1024"`
	Cashbox    *bool           `json:"cashbox"`
}

// UpdateTransactionRequest represents a partial transaction update
type UpdateTransactionRequest struct {
	Amount  *decimal.Decimal `json:"amount"`
	Date    *string          `json:"date"`
	Comment *string          `json:"comment" binding:"omitempty,max=1024"`
	Cashbox *bool            `json:"cashbox"`
}

// TransactionListFilter represents filter options for the transaction list
type TransactionListFilter struct {
	DateFrom string     `form:"date_from"`
	DateTo   string     `form:"date_to"`
	Cashbox  *bool      `form:"cashbox"`
	ClientID *uuid.UUID `form:"client_id"`
	OrderID  *uuid.UUID `form:"order_id"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID         uuid.UUID       `json:"id"`
	Amount     decimal.Decimal `json:"amount"`
	Date       string          `json:"date"`
	ClientID   *uuid.UUID      `json:"client_id"`
	ProviderID *uuid.UUID      `json:"provider_id"`
	OrderID    *uuid.UUID      `json:"order_id"`
	Comment    string          `json:"comment"`
	Cashbox    bool            `json:"cashbox"`
	CreatedAt  time.Time       `json:"created_at"`
}

// BalanceResponse is the cash-on-hand figure
type BalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

// ClientBalanceResponse carries a client's financial roll-up. The
// profit-side figures run the per-order price formulas over every
// order of the client; an empty order book reads as all zeros.
type ClientBalanceResponse struct {
	ClientID            uuid.UUID       `json:"client_id"`
	TransactionsSum     decimal.Decimal `json:"transactions_sum"`
	OrdersSum           decimal.Decimal `json:"orders_sum"`
	Remaining           decimal.Decimal `json:"remaining"`
	ProductsPrice       decimal.Decimal `json:"products_price"`
	ProviderOrdersPrice decimal.Decimal `json:"provider_orders_price"`
	Expenses            decimal.Decimal `json:"expenses"`
	Profit              decimal.Decimal `json:"profit"`
	ExtraCharge         decimal.Decimal `json:"extra_charge"`
}

// ToTransactionResponse converts a domain transaction to a response DTO
func ToTransactionResponse(t *finance.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:         t.ID,
		Amount:     t.Amount,
		Date:       t.Date.Format(DateLayout),
		ClientID:   t.ClientID,
		ProviderID: t.ProviderID,
		OrderID:    t.OrderID,
		Comment:    t.Comment,
		Cashbox:    t.Cashbox,
		CreatedAt:  t.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain transactions
func ToTransactionResponses(transactions []finance.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(transactions))
	for i := range transactions {
		responses[i] = ToTransactionResponse(&transactions[i])
	}
	return responses
}
