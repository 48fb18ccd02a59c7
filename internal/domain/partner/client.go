package partner

import (
	"fmt"
	"regexp"

	"github.com/zaoknom/docbox-backend/internal/domain/shared"
)

var phonePattern = regexp.MustCompile(`^\d{10}$`)

// Client represents a person the shop works with. Most clients order
// windows, but mounters are backed by a client record too.
// The (name, phone) pair is unique.
type Client struct {
	shared.BaseEntity
	Name  string `gorm:"type:varchar(64);not null;uniqueIndex:idx_client_name_phone,priority:1"`
	Phone string `gorm:"type:varchar(10);uniqueIndex:idx_client_name_phone,priority:2"`
	Info  string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Client) TableName() string {
	return "clients"
}

// NewClient creates a new client with the required fields
func NewClient(name, phone, info string) (*Client, error) {
	if err := validateClientName(name); err != nil {
		return nil, err
	}
	if err := ValidatePhone(phone); err != nil {
		return nil, err
	}
	if err := validateInfo(info); err != nil {
		return nil, err
	}

	return &Client{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Phone:      phone,
		Info:       info,
	}, nil
}

// Update updates the client's fields
func (c *Client) Update(name, phone, info string) error {
	if err := validateClientName(name); err != nil {
		return err
	}
	if err := ValidatePhone(phone); err != nil {
		return err
	}
	if err := validateInfo(info); err != nil {
		return err
	}

	c.Name = name
	c.Phone = phone
	c.Info = info
	c.Touch()

	return nil
}

// Display returns the client's name with the phone formatted the way
// it is written on paper orders: "Name (067) 123 4567".
func (c *Client) Display() string {
	if c.Phone == "" {
		return c.Name
	}
	return fmt.Sprintf("%s (%s) %s %s", c.Name, c.Phone[:3], c.Phone[3:6], c.Phone[6:])
}

// ValidatePhone checks that a phone is empty or exactly ten digits
func ValidatePhone(phone string) error {
	if phone == "" {
		return nil
	}
	if !phonePattern.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Phone number must consist of ten digits")
	}
	return nil
}

func validateClientName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Client name cannot be empty")
	}
	if len(name) > 64 {
		return shared.NewDomainError("INVALID_NAME", "Client name cannot exceed 64 characters")
	}
	return nil
}

func validateInfo(info string) error {
	if len(info) > 1024 {
		return shared.NewDomainError("INVALID_INFO", "Info cannot exceed 1024 characters")
	}
	return nil
}
