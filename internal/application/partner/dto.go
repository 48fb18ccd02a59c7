package partner

import (
	"time"

	"github.com/google/uuid"

	"github.com/zaoknom/docbox-backend/internal/domain/partner"
)

// =============================================================================
// Client DTOs
// =============================================================================

// CreateClientRequest represents a request to create a new client
type CreateClientRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=64"`
	Phone string `json:"phone" binding:"omitempty,len=10,numeric"`
	Info  string `json:"info" binding:"max=1024"`
}

// UpdateClientRequest represents a request to update a client
type UpdateClientRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=64"`
	Phone *string `json:"phone" binding:"omitempty,len=10,numeric"`
	Info  *string `json:"info" binding:"omitempty,max=1024"`
}

// ClientResponse represents a client in API responses
type ClientResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Info      string    `json:"info"`
	Display   string    `json:"display"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClientListFilter represents filter options for the client list
type ClientListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ToClientResponse converts a domain client to a response DTO
func ToClientResponse(c *partner.Client) ClientResponse {
	return ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Info:      c.Info,
		Display:   c.Display(),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToClientResponses converts a slice of domain clients
func ToClientResponses(clients []partner.Client) []ClientResponse {
	responses := make([]ClientResponse, len(clients))
	for i := range clients {
		responses[i] = ToClientResponse(&clients[i])
	}
	return responses
}

// =============================================================================
// Provider DTOs
// =============================================================================

// CreateProviderRequest represents a request to create a new provider
type CreateProviderRequest struct {
	Name string `json:"name" binding:"required,min=1,max=64"`
}

// UpdateProviderRequest represents a request to rename a provider
type UpdateProviderRequest struct {
	Name string `json:"name" binding:"required,min=1,max=64"`
}

// ProviderResponse represents a provider in API responses
type ProviderResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ToProviderResponse converts a domain provider to a response DTO
func ToProviderResponse(p *partner.Provider) ProviderResponse {
	return ProviderResponse{
		ID:        p.ID,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
	}
}

// ToProviderResponses converts a slice of domain providers
func ToProviderResponses(providers []partner.Provider) []ProviderResponse {
	responses := make([]ProviderResponse, len(providers))
	for i := range providers {
		responses[i] = ToProviderResponse(&providers[i])
	}
	return responses
}

// =============================================================================
// Mounter DTOs
// =============================================================================

// CreateMounterRequest represents a request to create a new mounter
type CreateMounterRequest struct {
	ClientID uuid.UUID `json:"client_id" binding:"required"`
	Info     string    `json:"info" binding:"max=1024"`
}

// MounterResponse represents a mounter in API responses
type MounterResponse struct {
	ID       uuid.UUID `json:"id"`
	ClientID uuid.UUID `json:"client_id"`
	Name     string    `json:"name"`
	Info     string    `json:"info"`
}

// ToMounterResponse converts a domain mounter to a response DTO
func ToMounterResponse(m *partner.Mounter) MounterResponse {
	return MounterResponse{
		ID:       m.ID,
		ClientID: m.ClientID,
		Name:     m.Display(),
		Info:     m.Info,
	}
}

// ToMounterResponses converts a slice of domain mounters
func ToMounterResponses(mounters []partner.Mounter) []MounterResponse {
	responses := make([]MounterResponse, len(mounters))
	for i := range mounters {
		responses[i] = ToMounterResponse(&mounters[i])
	}
	return responses
}
