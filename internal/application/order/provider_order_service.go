package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/zaoknom/docbox-backend/internal/domain/order"
	"github.com/zaoknom/docbox-backend/internal/domain/partner"
	"github.com/zaoknom/docbox-backend/internal/domain/shared"
)

// DeliveryItem is one newly dated sub-order waiting to be announced
type DeliveryItem struct {
	Code         string
	ClientName   string
	OrderContent string
	DeliveryDate time.Time
}

// DeliveryNotifier announces freshly scheduled deliveries. Sending is
// best effort; implementations log and swallow their own failures.
type DeliveryNotifier interface {
	SendDeliveryInfo(ctx context.Context, items []DeliveryItem)
}

// ProviderOrderService handles supplier sub-order operations,
// including the supplier feed's bulk update protocol.
type ProviderOrderService struct {
	providerOrderRepo order.ProviderOrderRepository
	orderRepo         order.Repository
	providerRepo      partner.ProviderRepository
	notifier          DeliveryNotifier
	lookback          time.Duration
	priceThreshold    decimal.Decimal
	defaultProvider   string
	logger            *zap.Logger
}

// ProviderOrderOption configures a ProviderOrderService
type ProviderOrderOption func(*ProviderOrderService)

// WithDefaultProvider names the provider assigned to sub-orders
// created without an explicit provider
func WithDefaultProvider(name string) ProviderOrderOption {
	return func(s *ProviderOrderService) {
		s.defaultProvider = name
	}
}

// WithLogger sets the logger used for service warnings
func WithLogger(logger *zap.Logger) ProviderOrderOption {
	return func(s *ProviderOrderService) {
		s.logger = logger
	}
}

// NewProviderOrderService creates a new ProviderOrderService
func NewProviderOrderService(
	providerOrderRepo order.ProviderOrderRepository,
	orderRepo order.Repository,
	providerRepo partner.ProviderRepository,
	notifier DeliveryNotifier,
	lookback time.Duration,
	priceThreshold decimal.Decimal,
	opts ...ProviderOrderOption,
) *ProviderOrderService {
	s := &ProviderOrderService{
		providerOrderRepo: providerOrderRepo,
		orderRepo:         orderRepo,
		providerRepo:      providerRepo,
		notifier:          notifier,
		lookback:          lookback,
		priceThreshold:    priceThreshold,
		logger:            zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create creates a sub-order and propagates status onto its order
func (s *ProviderOrderService) Create(ctx context.Context, req CreateProviderOrderRequest) (*ProviderOrderResponse, error) {
	if _, err := s.orderRepo.FindByID(ctx, req.OrderID); err != nil {
		return nil, err
	}
	providerID, err := s.resolveProvider(ctx, req.ProviderID)
	if err != nil {
		return nil, err
	}

	po, err := order.NewProviderOrder(req.OrderID, providerID, req.Code)
	if err != nil {
		return nil, err
	}
	if req.Price != nil {
		if err := po.SetPrice(*req.Price); err != nil {
			return nil, err
		}
	}
	po.OrderContent = req.OrderContent
	if req.DeliveryDate != nil && *req.DeliveryDate != "" {
		parsed, err := ParseDate(*req.DeliveryDate)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_DATE", "Delivery date expected to be in iso format like 'YYYY-MM-DD'")
		}
		po.DeliveryDate = &parsed
	}
	if req.Status != "" {
		if err := po.SetStatus(order.Status(req.Status)); err != nil {
			return nil, err
		}
	}

	if err := s.providerOrderRepo.Save(ctx, po); err != nil {
		return nil, err
	}
	if err := s.propagate(ctx, po.OrderID); err != nil {
		return nil, err
	}

	resp := ToProviderOrderResponse(po)
	return &resp, nil
}

// resolveProvider returns the requested provider, falling back to the
// configured default provider when the request names none.
func (s *ProviderOrderService) resolveProvider(ctx context.Context, id *uuid.UUID) (uuid.UUID, error) {
	if id != nil {
		if _, err := s.providerRepo.FindByID(ctx, *id); err != nil {
			return uuid.Nil, err
		}
		return *id, nil
	}
	if s.defaultProvider == "" {
		return uuid.Nil, shared.NewDomainError("PROVIDER_REQUIRED", "Sub-order requires a provider")
	}
	provider, err := s.providerRepo.FindByName(ctx, s.defaultProvider)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("default provider does not exist", zap.String("name", s.defaultProvider))
			return uuid.Nil, shared.NewDomainError("PROVIDER_REQUIRED", "Sub-order requires a provider")
		}
		return uuid.Nil, err
	}
	return provider.ID, nil
}

// GetByID retrieves a sub-order
func (s *ProviderOrderService) GetByID(ctx context.Context, id uuid.UUID) (*ProviderOrderResponse, error) {
	po, err := s.providerOrderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProviderOrderResponse(po)
	return &resp, nil
}

// ListRecent lists the most recently created sub-orders up to limit
func (s *ProviderOrderService) ListRecent(ctx context.Context, limit int) ([]ProviderOrderResponse, error) {
	pos, err := s.providerOrderRepo.FindRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	return ToProviderOrderResponses(pos), nil
}

// ListByOrder lists an order's sub-orders
func (s *ProviderOrderService) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]ProviderOrderResponse, error) {
	pos, err := s.providerOrderRepo.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return ToProviderOrderResponses(pos), nil
}

// Delete deletes a sub-order and re-propagates status on its order
func (s *ProviderOrderService) Delete(ctx context.Context, id uuid.UUID) error {
	po, err := s.providerOrderRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.providerOrderRepo.Delete(ctx, id); err != nil {
		return err
	}
	return s.propagate(ctx, po.OrderID)
}

// BulkUpdate applies the supplier feed's batch of partial updates,
// keyed by supplier code. Each entry stands alone: errors are
// collected per entry and already applied entries stay applied.
// Reported prices never overwrite stored ones; a discrepancy above
// the threshold only produces an error message.
func (s *ProviderOrderService) BulkUpdate(ctx context.Context, body []byte) (*BulkUpdateResult, error) {
	result := &BulkUpdateResult{}

	var entries map[string]BulkUpdateEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		result.ErrorMessages = append(result.ErrorMessages, "Parametr 'orders' contains not valid json")
		return result, nil
	}

	cutoff := time.Now().Add(-s.lookback)
	var deliveries []DeliveryItem

	for code, entry := range entries {
		po, err := s.providerOrderRepo.FindByCodeSince(ctx, code, cutoff)
		if err == shared.ErrNotFound {
			result.ErrorMessages = append(result.ErrorMessages, fmt.Sprintf("Provider code '%s' doesn't exist.", code))
			continue
		}
		if err != nil {
			return nil, err
		}

		changed, dated := s.applyEntry(po, code, entry, result)
		if !changed {
			continue
		}

		if err := s.providerOrderRepo.Save(ctx, po); err != nil {
			return nil, err
		}
		o, err := s.propagateAndLoad(ctx, po.OrderID)
		if err != nil {
			return nil, err
		}
		if dated && po.DeliveryDate != nil {
			deliveries = append(deliveries, DeliveryItem{
				Code:         po.Code,
				ClientName:   o.ClientName(),
				OrderContent: po.OrderContent,
				DeliveryDate: *po.DeliveryDate,
			})
		}
	}

	if len(deliveries) > 0 && s.notifier != nil {
		s.notifier.SendDeliveryInfo(ctx, deliveries)
	}
	return result, nil
}

// Update applies the single-record variant of the supplier update.
// Unknown ids surface as not-found; there is no price check and no
// delivery notification.
func (s *ProviderOrderService) Update(ctx context.Context, id uuid.UUID, req SingleUpdateRequest) (*BulkUpdateResult, error) {
	po, err := s.providerOrderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result := &BulkUpdateResult{}
	entry := BulkUpdateEntry{Status: req.Status, DeliveryDate: req.DeliveryDate}
	changed, _ := s.applyEntry(po, po.Code, entry, result)

	if changed {
		if err := s.providerOrderRepo.Save(ctx, po); err != nil {
			return nil, err
		}
		if err := s.propagate(ctx, po.OrderID); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// applyEntry validates and applies one partial update in place.
// Returns whether the record changed and whether the delivery date is
// newly set.
func (s *ProviderOrderService) applyEntry(po *order.ProviderOrder, code string, entry BulkUpdateEntry, result *BulkUpdateResult) (changed, dated bool) {
	if entry.Status != nil {
		status := order.Status(*entry.Status)
		if !status.IsValid() {
			result.ErrorMessages = append(result.ErrorMessages, fmt.Sprintf("Status '%s' is not allowed", *entry.Status))
		} else if status != po.Status {
			po.Status = status
			changed = true
		}
	}

	if entry.DeliveryDate != nil {
		parsed, err := ParseDate(*entry.DeliveryDate)
		if err != nil {
			result.ErrorMessages = append(result.ErrorMessages, "Delivery date expected to be in iso format like 'YYYY-MM-DD'")
		} else if po.DeliveryDate == nil || !po.DeliveryDate.Equal(parsed) {
			po.DeliveryDate = &parsed
			changed = true
			dated = true
		}
	}

	if entry.Price != nil {
		diff := po.Price.Sub(*entry.Price).Abs()
		if diff.GreaterThan(s.priceThreshold) {
			result.ErrorMessages = append(result.ErrorMessages, fmt.Sprintf(
				"Price for provider code '%s' differs: stored '%s', reported '%s'",
				code, po.Price, *entry.Price))
		}
	}

	if changed {
		po.Touch()
	}
	return changed, dated
}

func (s *ProviderOrderService) propagate(ctx context.Context, orderID uuid.UUID) error {
	_, err := s.propagateAndLoad(ctx, orderID)
	return err
}

func (s *ProviderOrderService) propagateAndLoad(ctx context.Context, orderID uuid.UUID) (*order.Order, error) {
	o, err := s.orderRepo.FindByIDFull(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.PropagateStatus(o) {
		if err := s.orderRepo.Save(ctx, o); err != nil {
			return nil, err
		}
	}
	return o, nil
}
