package partner

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/zaoknom/docbox-backend/internal/domain/shared"
)

// StreetType classifies the street part of an address
type StreetType string

const (
	StreetTypeLane      StreetType = "lane"
	StreetTypeStreet    StreetType = "street"
	StreetTypeAvenue    StreetType = "avenue"
	StreetTypeBoulevard StreetType = "boulevard"
)

// DefaultTown is where almost every order is delivered
const DefaultTown = "Белгород-Днестровский"

// IsValid checks if the street type is a known value
func (t StreetType) IsValid() bool {
	switch t {
	case StreetTypeLane, StreetTypeStreet, StreetTypeAvenue, StreetTypeBoulevard:
		return true
	}
	return false
}

// Display returns the abbreviated form used in addresses
func (t StreetType) Display() string {
	switch t {
	case StreetTypeLane:
		return "пер."
	case StreetTypeStreet:
		return "ул."
	case StreetTypeAvenue:
		return "п-т"
	case StreetTypeBoulevard:
		return "б-р"
	}
	return string(t)
}

// Address is a delivery or mounting address for an order
type Address struct {
	shared.BaseEntity
	Town       string     `gorm:"type:varchar(64);not null"`
	StreetType StreetType `gorm:"type:varchar(16);not null;default:'street'"`
	Street     string     `gorm:"type:varchar(64)"`
	Building   string     `gorm:"type:varchar(8)"`
	Apartment  *uint      `gorm:""`
	Info       string     `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Address) TableName() string {
	return "addresses"
}

// NewAddress creates a new address. An empty town falls back to the
// default town.
func NewAddress(town string, streetType StreetType, street, building string, apartment *uint, info string) (*Address, error) {
	if town == "" {
		town = DefaultTown
	}
	if len(town) > 64 {
		return nil, shared.NewDomainError("INVALID_TOWN", "Town cannot exceed 64 characters")
	}
	if streetType == "" {
		streetType = StreetTypeStreet
	}
	if !streetType.IsValid() {
		return nil, shared.NewDomainError("INVALID_STREET_TYPE", "Unknown street type")
	}
	if len(street) > 64 {
		return nil, shared.NewDomainError("INVALID_STREET", "Street cannot exceed 64 characters")
	}
	if len(building) > 8 {
		return nil, shared.NewDomainError("INVALID_BUILDING", "Building cannot exceed 8 characters")
	}
	if err := validateInfo(info); err != nil {
		return nil, err
	}

	return &Address{
		BaseEntity: shared.NewBaseEntity(),
		Town:       town,
		StreetType: streetType,
		Street:     street,
		Building:   building,
		Apartment:  apartment,
		Info:       info,
	}, nil
}

// Display renders the address in the short written form, for example
// "Белгород-Днестровский, ул. Московская, д. 5, кв. 12".
func (a *Address) Display() string {
	var b strings.Builder
	b.WriteString(a.Town)
	if a.Street != "" {
		fmt.Fprintf(&b, ", %s %s", a.StreetType.Display(), a.Street)
	}
	if a.Building != "" {
		fmt.Fprintf(&b, ", д. %s", a.Building)
	}
	if a.Apartment != nil && *a.Apartment != 0 {
		fmt.Fprintf(&b, ", кв. %d", *a.Apartment)
	}
	if a.Info != "" {
		fmt.Fprintf(&b, ", %s", a.Info)
	}
	return b.String()
}

// AddressRepository defines the interface for address persistence
type AddressRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Address, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Address, error)
	Save(ctx context.Context, address *Address) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
