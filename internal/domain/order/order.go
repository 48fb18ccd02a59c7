package order

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zaoknom/docbox-backend/internal/domain/partner"
	"github.com/zaoknom/docbox-backend/internal/domain/shared"
)

// LegacyProviderCode marks orders recorded before the shop started
// tracking factory numbers, "без номера".
const LegacyProviderCode = "б/н"

// Order is a client's order for the shop. It owns one Price and any
// number of provider sub-orders. The order is the aggregate root;
// client, address and mounter are references into the partner context.
type Order struct {
	shared.BaseEntity
	DateCreated  time.Time        `gorm:"type:date;not null;index"`
	ClientID     uuid.UUID        `gorm:"type:uuid;not null;index"`
	Client       *partner.Client  `gorm:"foreignKey:ClientID"`
	PriceID      uuid.UUID        `gorm:"type:uuid;not null"`
	Price        *Price           `gorm:"foreignKey:PriceID;constraint:OnDelete:CASCADE"`
	AddressID    *uuid.UUID       `gorm:"type:uuid"`
	Address      *partner.Address `gorm:"foreignKey:AddressID"`
	MounterID    *uuid.UUID       `gorm:"type:uuid"`
	Mounter      *partner.Mounter `gorm:"foreignKey:MounterID"`
	ProviderID   *uuid.UUID       `gorm:"type:uuid"`
	Provider     *partner.Provider `gorm:"foreignKey:ProviderID"`
	ProviderCode string           `gorm:"type:varchar(1024);not null;default:'б/н'"`
	Status       Status           `gorm:"type:varchar(32);not null;default:'new';index"`
	Category     Category         `gorm:"type:varchar(32);not null;default:'pvc'"`
	Comment      string           `gorm:"type:text"`
	DateDelivery *time.Time       `gorm:"type:date"`
	DateMounting *time.Time       `gorm:"type:date"`
	DateFinished *time.Time       `gorm:"type:date"`

	ProviderOrders []ProviderOrder `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new order for a client with its price
func NewOrder(clientID uuid.UUID, price *Price) (*Order, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Order requires a client")
	}
	if price == nil {
		return nil, shared.NewDomainError("INVALID_PRICE", "Order requires a price")
	}

	return &Order{
		BaseEntity:   shared.NewBaseEntity(),
		DateCreated:  time.Now(),
		ClientID:     clientID,
		PriceID:      price.ID,
		Price:        price,
		ProviderCode: LegacyProviderCode,
		Status:       StatusNew,
		Category:     CategoryPVC,
	}, nil
}

// SetStatus changes the order's status
func (o *Order) SetStatus(status Status) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status")
	}
	o.Status = status
	o.Touch()
	return nil
}

// SetCategory changes the order's category
func (o *Order) SetCategory(category Category) error {
	if !category.IsValid() {
		return shared.NewDomainError("INVALID_CATEGORY", "Unknown order category")
	}
	o.Category = category
	o.Touch()
	return nil
}

// Remaining is how much the client still owes on this order. Overpaid
// orders go negative.
func (o *Order) Remaining(transactionsSum decimal.Decimal) decimal.Decimal {
	return o.Price.Total.Sub(transactionsSum)
}

// ProviderOrdersSum is the combined factory price of the loaded
// provider sub-orders.
func (o *Order) ProviderOrdersSum() decimal.Decimal {
	sum := decimal.Zero
	for _, po := range o.ProviderOrders {
		sum = sum.Add(po.Price)
	}
	return sum
}

// ProviderOrdersStr lists the factory numbers of the loaded provider
// sub-orders. Orders from before sub-order tracking fall back to the
// legacy provider code field.
func (o *Order) ProviderOrdersStr() string {
	if len(o.ProviderOrders) == 0 {
		return o.ProviderCode
	}
	codes := make([]string, len(o.ProviderOrders))
	for i, po := range o.ProviderOrders {
		codes[i] = po.Code
	}
	return strings.Join(codes, ", ")
}

// ClientName returns the client's bare name if loaded
func (o *Order) ClientName() string {
	if o.Client == nil {
		return ""
	}
	return o.Client.Name
}

// AddressDisplay returns the formatted address if one is set
func (o *Order) AddressDisplay() string {
	if o.Address == nil {
		return ""
	}
	return o.Address.Display()
}

// String renders the order for logs and lists
func (o *Order) String() string {
	var b strings.Builder
	b.WriteString(o.ClientName())
	if o.Price != nil {
		b.WriteString("; ")
		b.WriteString(o.Price.Total.String())
	}
	if o.Address != nil {
		b.WriteString("; ")
		b.WriteString(o.Address.Display())
	}
	return b.String()
}
