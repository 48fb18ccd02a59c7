package order

import (
	"github.com/shopspring/decimal"

	"github.com/zaoknom/docbox-backend/internal/domain/shared"
)

// Price holds the money side of an order. Total is what the client
// pays; mounting and delivery are parts of the total that do not go
// to the factory. Added expenses are out of pocket costs on top of
// the provider sub-order prices. Amounts are whole currency units.
type Price struct {
	shared.BaseEntity
	Total         decimal.Decimal  `gorm:"type:decimal(10,0);not null"`
	AddedExpenses *decimal.Decimal `gorm:"type:decimal(10,0)"`
	Delivery      *decimal.Decimal `gorm:"type:decimal(10,0)"`
	Mounting      *decimal.Decimal `gorm:"type:decimal(10,0)"`
}

// TableName returns the table name for GORM
func (Price) TableName() string {
	return "prices"
}

// NewPrice creates a price for an order
func NewPrice(total decimal.Decimal, addedExpenses, delivery, mounting *decimal.Decimal) (*Price, error) {
	if total.IsNegative() {
		return nil, shared.NewDomainError("INVALID_TOTAL", "Order total cannot be negative")
	}

	return &Price{
		BaseEntity:    shared.NewBaseEntity(),
		Total:         total,
		AddedExpenses: addedExpenses,
		Delivery:      delivery,
		Mounting:      mounting,
	}, nil
}

// Products is the part of the total that pays for the products
// themselves, with mounting and delivery taken out.
func (p *Price) Products() decimal.Decimal {
	products := p.Total
	if p.Mounting != nil {
		products = products.Sub(*p.Mounting)
	}
	if p.Delivery != nil {
		products = products.Sub(*p.Delivery)
	}
	return products
}

// Expenses is what the order costs the shop: the sum of its provider
// sub-order prices plus any added expenses.
func (p *Price) Expenses(providerOrdersSum decimal.Decimal) decimal.Decimal {
	if p.AddedExpenses != nil && !p.AddedExpenses.IsZero() {
		return providerOrdersSum.Add(*p.AddedExpenses)
	}
	return providerOrdersSum
}

// Profit is products minus expenses. With zero expenses there is
// nothing to compare against, so profit reads as zero.
func (p *Price) Profit(providerOrdersSum decimal.Decimal) decimal.Decimal {
	expenses := p.Expenses(providerOrdersSum)
	if expenses.IsZero() {
		return decimal.Zero
	}
	return p.Products().Sub(expenses)
}

// ExtraCharge is the markup over expenses in whole percent, rounded
// half up. Zero profit reads as zero markup.
func (p *Price) ExtraCharge(providerOrdersSum decimal.Decimal) decimal.Decimal {
	profit := p.Profit(providerOrdersSum)
	if profit.IsZero() {
		return decimal.Zero
	}
	expenses := p.Expenses(providerOrdersSum)
	return profit.Div(expenses).Mul(decimal.NewFromInt(100)).Round(0)
}

// String renders the total the way it is written in the books
func (p *Price) String() string {
	return p.Total.String() + " грн."
}
