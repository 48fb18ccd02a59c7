package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zaoknom/docbox-backend/internal/domain/partner"
	"github.com/zaoknom/docbox-backend/internal/domain/shared"
)

// ProviderOrder is one factory-side sub-order of a client's order.
// Code is the number the factory assigns; the supplier feed keys its
// updates on it.
type ProviderOrder struct {
	shared.BaseEntity
	OrderID      uuid.UUID        `gorm:"type:uuid;not null;index"`
	ProviderID   uuid.UUID        `gorm:"type:uuid;not null;index"`
	Provider     *partner.Provider `gorm:"foreignKey:ProviderID"`
	Code         string           `gorm:"type:varchar(16);not null;index"`
	Price        decimal.Decimal  `gorm:"type:decimal(10,0);not null;default:0"`
	OrderContent string           `gorm:"type:text"`
	DeliveryDate *time.Time       `gorm:"type:date"`
	Status       Status           `gorm:"type:varchar(32);not null;default:'new'"`
}

// TableName returns the table name for GORM
func (ProviderOrder) TableName() string {
	return "provider_orders"
}

// NewProviderOrder creates a sub-order under an existing order
func NewProviderOrder(orderID, providerID uuid.UUID, code string) (*ProviderOrder, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Provider order requires an order")
	}
	if providerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROVIDER", "Provider order requires a provider")
	}
	if err := validateCode(code); err != nil {
		return nil, err
	}

	return &ProviderOrder{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    orderID,
		ProviderID: providerID,
		Code:       code,
		Price:      decimal.Zero,
		Status:     StatusNew,
	}, nil
}

// SetStatus changes the sub-order's status
func (po *ProviderOrder) SetStatus(status Status) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status")
	}
	po.Status = status
	po.Touch()
	return nil
}

// SetPrice sets the factory price of the sub-order
func (po *ProviderOrder) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Provider order price cannot be negative")
	}
	po.Price = price
	po.Touch()
	return nil
}

// String returns the factory number
func (po *ProviderOrder) String() string {
	return po.Code
}

func validateCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Provider order code cannot be empty")
	}
	if len(code) > 16 {
		return shared.NewDomainError("INVALID_CODE", "Provider order code cannot exceed 16 characters")
	}
	return nil
}
