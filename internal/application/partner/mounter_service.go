package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/zaoknom/docbox-backend/internal/domain/partner"
	"github.com/zaoknom/docbox-backend/internal/domain/shared"
)

// MounterService handles mounter-related business operations
type MounterService struct {
	mounterRepo partner.MounterRepository
	clientRepo  partner.ClientRepository
}

// NewMounterService creates a new MounterService
func NewMounterService(mounterRepo partner.MounterRepository, clientRepo partner.ClientRepository) *MounterService {
	return &MounterService{
		mounterRepo: mounterRepo,
		clientRepo:  clientRepo,
	}
}

// Create creates a new mounter backed by an existing client
func (s *MounterService) Create(ctx context.Context, req CreateMounterRequest) (*MounterResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}

	mounter, err := partner.NewMounter(client.ID, req.Info)
	if err != nil {
		return nil, err
	}

	if err := s.mounterRepo.Save(ctx, mounter); err != nil {
		return nil, err
	}

	mounter.Client = client
	response := ToMounterResponse(mounter)
	return &response, nil
}

// GetByID retrieves a mounter by ID
func (s *MounterService) GetByID(ctx context.Context, id uuid.UUID) (*MounterResponse, error) {
	mounter, err := s.mounterRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToMounterResponse(mounter)
	return &response, nil
}

// List retrieves all mounters
func (s *MounterService) List(ctx context.Context) ([]MounterResponse, error) {
	mounters, err := s.mounterRepo.FindAll(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	return ToMounterResponses(mounters), nil
}

// Delete deletes a mounter
func (s *MounterService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.mounterRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.mounterRepo.Delete(ctx, id)
}
