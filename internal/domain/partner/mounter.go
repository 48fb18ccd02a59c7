package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/zaoknom/docbox-backend/internal/domain/shared"
)

// Mounter is a client who installs finished orders. The underlying
// client record carries the name and phone.
type Mounter struct {
	shared.BaseEntity
	ClientID uuid.UUID `gorm:"type:uuid;not null;index"`
	Client   *Client   `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
	Info     string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Mounter) TableName() string {
	return "mounters"
}

// NewMounter creates a new mounter backed by an existing client
func NewMounter(clientID uuid.UUID, info string) (*Mounter, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Mounter requires a client")
	}
	if err := validateInfo(info); err != nil {
		return nil, err
	}

	return &Mounter{
		BaseEntity: shared.NewBaseEntity(),
		ClientID:   clientID,
		Info:       info,
	}, nil
}

// Display returns the mounter's name as it appears on orders
func (m *Mounter) Display() string {
	if m.Client == nil {
		return ""
	}
	return m.Client.Display()
}

// Name returns the bare client name, without phone formatting
func (m *Mounter) Name() string {
	if m.Client == nil {
		return ""
	}
	return m.Client.Name
}

// MounterRepository defines the interface for mounter persistence
type MounterRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Mounter, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Mounter, error)
	Save(ctx context.Context, mounter *Mounter) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
