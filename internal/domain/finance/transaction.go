package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zaoknom/docbox-backend/internal/domain/shared"
)

// Transaction is one money movement in the books. Positive amounts
// are money coming in, negative amounts going out. The client,
// provider and order references are all optional; a transaction may
// be tied to any of them or stand alone. Cashbox transactions count
// towards the cash on hand.
type Transaction struct {
	shared.BaseEntity
	Amount     decimal.Decimal `gorm:"type:decimal(10,0);not null"`
	Date       time.Time       `gorm:"type:date;not null;index"`
	ClientID   *uuid.UUID      `gorm:"type:uuid;index"`
	ProviderID *uuid.UUID      `gorm:"type:uuid;index"`
	OrderID    *uuid.UUID      `gorm:"type:uuid;index"`
	Comment    string          `gorm:"type:text"`
	Cashbox    bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Transaction) TableName() string {
	return "transactions"
}

// NewTransaction creates a transaction dated today
func NewTransaction(amount decimal.Decimal, comment string) (*Transaction, error) {
	if len(comment) > 1024 {
		return nil, shared.NewDomainError("INVALID_COMMENT", "Comment cannot exceed 1024 characters")
	}

	return &Transaction{
		BaseEntity: shared.NewBaseEntity(),
		Amount:     amount,
		Date:       time.Now(),
		Comment:    comment,
		Cashbox:    true,
	}, nil
}

// ForClient ties the transaction to a client
func (t *Transaction) ForClient(clientID uuid.UUID) *Transaction {
	t.ClientID = &clientID
	return t
}

// ForProvider ties the transaction to a provider
func (t *Transaction) ForProvider(providerID uuid.UUID) *Transaction {
	t.ProviderID = &providerID
	return t
}

// ForOrder ties the transaction to an order
func (t *Transaction) ForOrder(orderID uuid.UUID) *Transaction {
	t.OrderID = &orderID
	return t
}

// OnDate moves the transaction to a specific date
func (t *Transaction) OnDate(date time.Time) *Transaction {
	t.Date = date
	return t
}

// OutsideCashbox marks the transaction as not affecting cash on hand
func (t *Transaction) OutsideCashbox() *Transaction {
	t.Cashbox = false
	return t
}

// IsIncome returns true for money coming in
func (t *Transaction) IsIncome() bool {
	return t.Amount.IsPositive()
}

// String renders the amount the way it is written in the books
func (t *Transaction) String() string {
	return t.Amount.String() + " грн."
}
