package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zaoknom/docbox-backend/internal/domain/finance"
	"github.com/zaoknom/docbox-backend/internal/domain/order"
	"github.com/zaoknom/docbox-backend/internal/domain/partner"
	"github.com/zaoknom/docbox-backend/internal/domain/shared"
)

// Status pseudo-filters understood by the order list on top of the
// plain status values.
const (
	StatusFilterAll         = "all"
	StatusFilterNotFinished = "not_finished"
)

// OrderService handles order-related business operations
type OrderService struct {
	orderRepo   order.Repository
	clientRepo  partner.ClientRepository
	addressRepo partner.AddressRepository
	mounterRepo partner.MounterRepository
	txRepo      finance.TransactionRepository
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo order.Repository,
	clientRepo partner.ClientRepository,
	addressRepo partner.AddressRepository,
	mounterRepo partner.MounterRepository,
	txRepo finance.TransactionRepository,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		clientRepo:  clientRepo,
		addressRepo: addressRepo,
		mounterRepo: mounterRepo,
		txRepo:      txRepo,
	}
}

// Create creates a new order. The client is found by name and phone or
// created on the fly, the way the paper workflow registers walk-ins.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	client, err := s.findOrCreateClient(ctx, req.ClientName, req.ClientPhone)
	if err != nil {
		return nil, err
	}

	price, err := order.NewPrice(req.Price.Total, req.Price.AddedExpenses, req.Price.Delivery, req.Price.Mounting)
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(client.ID, price)
	if err != nil {
		return nil, err
	}
	o.Client = client

	if req.Address != nil {
		address, err := addressFromRequest(req.Address)
		if err != nil {
			return nil, err
		}
		if err := s.addressRepo.Save(ctx, address); err != nil {
			return nil, err
		}
		o.AddressID = &address.ID
		o.Address = address
	}

	if req.MounterID != nil {
		if _, err := s.mounterRepo.FindByID(ctx, *req.MounterID); err != nil {
			return nil, err
		}
		o.MounterID = req.MounterID
	}
	o.ProviderID = req.ProviderID

	if req.ProviderCode != "" {
		o.ProviderCode = req.ProviderCode
	}
	if req.Status != "" {
		if err := o.SetStatus(order.Status(req.Status)); err != nil {
			return nil, err
		}
	}
	if req.Category != "" {
		if err := o.SetCategory(order.Category(req.Category)); err != nil {
			return nil, err
		}
	}
	o.Comment = req.Comment

	if err := s.applyDates(o, req.DateCreated, req.DateDelivery, req.DateMounting, nil); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	resp := ToOrderResponse(o, decimal.Zero)
	return &resp, nil
}

// GetByID retrieves an order with its computed financials
func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByIDFull(ctx, id)
	if err != nil {
		return nil, err
	}

	sum, err := s.txRepo.SumByOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := ToOrderResponse(o, sum)
	return &resp, nil
}

// List retrieves orders with date-range, status, category and client
// filters. Dates default to the start of the month one quarter back
// through the first of January next year.
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) ([]OrderResponse, int64, error) {
	domainFilter, err := s.buildFilter(filter)
	if err != nil {
		return nil, 0, err
	}

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses, err := s.toResponses(ctx, orders)
	if err != nil {
		return nil, 0, err
	}
	return responses, total, nil
}

// ListByClient retrieves a client's orders with computed financials
func (s *OrderService) ListByClient(ctx context.Context, clientID uuid.UUID) ([]OrderResponse, error) {
	if _, err := s.clientRepo.FindByID(ctx, clientID); err != nil {
		return nil, err
	}

	filter := shared.DefaultFilter()
	filter.OrderBy = "date_created"
	orders, err := s.orderRepo.FindByClient(ctx, clientID, filter)
	if err != nil {
		return nil, err
	}

	return s.toResponses(ctx, orders)
}

// Update applies a partial update to an order
func (s *OrderService) Update(ctx context.Context, id uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByIDFull(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Price != nil {
		if req.Price.Total.IsNegative() {
			return nil, shared.NewDomainError("INVALID_TOTAL", "Order total cannot be negative")
		}
		o.Price.Total = req.Price.Total
		o.Price.AddedExpenses = req.Price.AddedExpenses
		o.Price.Delivery = req.Price.Delivery
		o.Price.Mounting = req.Price.Mounting
		o.Price.Touch()
	}

	if req.Address != nil {
		address, err := addressFromRequest(req.Address)
		if err != nil {
			return nil, err
		}
		if err := s.addressRepo.Save(ctx, address); err != nil {
			return nil, err
		}
		o.AddressID = &address.ID
		o.Address = address
	}

	if req.MounterID != nil {
		if _, err := s.mounterRepo.FindByID(ctx, *req.MounterID); err != nil {
			return nil, err
		}
		o.MounterID = req.MounterID
	}
	if req.ProviderID != nil {
		o.ProviderID = req.ProviderID
	}
	if req.ProviderCode != nil {
		o.ProviderCode = *req.ProviderCode
	}
	if req.Status != nil {
		if err := o.SetStatus(order.Status(*req.Status)); err != nil {
			return nil, err
		}
	}
	if req.Category != nil {
		if err := o.SetCategory(order.Category(*req.Category)); err != nil {
			return nil, err
		}
	}
	if req.Comment != nil {
		o.Comment = *req.Comment
	}

	if err := s.applyDates(o, nil, req.DateDelivery, req.DateMounting, req.DateFinished); err != nil {
		return nil, err
	}

	o.Touch()
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	sum, err := s.txRepo.SumByOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(o, sum)
	return &resp, nil
}

// Delete deletes an order. The repository refuses while sub-orders or
// transactions still reference it; the price goes with the order.
func (s *OrderService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.orderRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.orderRepo.Delete(ctx, id)
}

// Bookkeeping computes totals over the filtered order list
func (s *OrderService) Bookkeeping(ctx context.Context, filter OrderListFilter) (*BookkeepingResponse, error) {
	domainFilter, err := s.buildFilter(filter)
	if err != nil {
		return nil, err
	}
	// totals run over the whole filtered set
	domainFilter.PageSize = 0

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	totals := BookkeepingResponse{
		Orders:        len(orders),
		TotalPrice:    decimal.Zero,
		ProductsPrice: decimal.Zero,
		Expenses:      decimal.Zero,
		Profit:        decimal.Zero,
	}
	for i := range orders {
		o := &orders[i]
		if o.Price == nil {
			continue
		}
		providerOrdersSum := o.ProviderOrdersSum()
		totals.TotalPrice = totals.TotalPrice.Add(o.Price.Total)
		totals.ProductsPrice = totals.ProductsPrice.Add(o.Price.Products())
		totals.Expenses = totals.Expenses.Add(o.Price.Expenses(providerOrdersSum))
		totals.Profit = totals.Profit.Add(o.Price.Profit(providerOrdersSum))
	}
	return &totals, nil
}

// Search finds orders whose sub-order codes or legacy provider code
// contain the substring
func (s *OrderService) Search(ctx context.Context, providerCode string) ([]SearchResult, error) {
	orders, err := s.orderRepo.SearchByProviderCode(ctx, providerCode)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, shared.ErrNotFound
	}

	sums, err := s.transactionSums(ctx, orders)
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, len(orders))
	for i := range orders {
		results[i] = ToSearchResult(&orders[i], sums[orders[i].ID])
	}
	return results, nil
}

func (s *OrderService) findOrCreateClient(ctx context.Context, name, phone string) (*partner.Client, error) {
	client, err := s.clientRepo.FindByNameAndPhone(ctx, name, phone)
	if err == nil {
		return client, nil
	}
	if err != shared.ErrNotFound {
		return nil, err
	}

	client, err = partner.NewClient(name, phone, "")
	if err != nil {
		return nil, err
	}
	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// buildFilter translates the API filter into repository terms and
// fills in the default reporting window.
func (s *OrderService) buildFilter(filter OrderListFilter) (shared.Filter, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.OrderBy = "date_created"
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	dateFrom := defaultDateFrom(time.Now())
	if filter.DateFrom != "" {
		parsed, err := ParseDate(filter.DateFrom)
		if err != nil {
			return shared.Filter{}, shared.NewDomainError("INVALID_DATE", "Date expected to be in iso format like 'YYYY-MM-DD'")
		}
		dateFrom = parsed
	}
	dateTo := defaultDateTo(time.Now())
	if filter.DateTo != "" {
		parsed, err := ParseDate(filter.DateTo)
		if err != nil {
			return shared.Filter{}, shared.NewDomainError("INVALID_DATE", "Date expected to be in iso format like 'YYYY-MM-DD'")
		}
		dateTo = parsed
	}
	domainFilter.Filters["date_from"] = dateFrom
	domainFilter.Filters["date_to"] = dateTo

	switch filter.Status {
	case "", StatusFilterAll:
		// no status restriction
	case StatusFilterNotFinished:
		domainFilter.Filters["not_finished"] = true
	default:
		status := order.Status(filter.Status)
		if !status.IsValid() {
			return shared.Filter{}, shared.NewDomainError("INVALID_STATUS", "Status '"+filter.Status+"' is not allowed")
		}
		domainFilter.Filters["status"] = status
	}

	if filter.Category != "" {
		domainFilter.Filters["category"] = order.Category(filter.Category)
	}
	domainFilter.Search = filter.Client

	return domainFilter, nil
}

func (s *OrderService) toResponses(ctx context.Context, orders []order.Order) ([]OrderResponse, error) {
	sums, err := s.transactionSums(ctx, orders)
	if err != nil {
		return nil, err
	}
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i], sums[orders[i].ID])
	}
	return responses, nil
}

func (s *OrderService) transactionSums(ctx context.Context, orders []order.Order) (map[uuid.UUID]decimal.Decimal, error) {
	if len(orders) == 0 {
		return map[uuid.UUID]decimal.Decimal{}, nil
	}
	ids := make([]uuid.UUID, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
	}
	sums, err := s.txRepo.SumByOrders(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if _, ok := sums[id]; !ok {
			sums[id] = decimal.Zero
		}
	}
	return sums, nil
}

func (s *OrderService) applyDates(o *order.Order, created, delivery, mounting, finished *string) error {
	parse := func(value *string, dst **time.Time) error {
		if value == nil {
			return nil
		}
		if *value == "" {
			*dst = nil
			return nil
		}
		parsed, err := ParseDate(*value)
		if err != nil {
			return shared.NewDomainError("INVALID_DATE", "Delivery date expected to be in iso format like 'YYYY-MM-DD'")
		}
		*dst = &parsed
		return nil
	}

	if created != nil && *created != "" {
		parsed, err := ParseDate(*created)
		if err != nil {
			return shared.NewDomainError("INVALID_DATE", "Delivery date expected to be in iso format like 'YYYY-MM-DD'")
		}
		o.DateCreated = parsed
	}
	if err := parse(delivery, &o.DateDelivery); err != nil {
		return err
	}
	if err := parse(mounting, &o.DateMounting); err != nil {
		return err
	}
	return parse(finished, &o.DateFinished)
}

// defaultDateFrom is the first day of the month one quarter (13 weeks)
// back from the reference date.
func defaultDateFrom(now time.Time) time.Time {
	back := now.AddDate(0, 0, -13*7)
	return time.Date(back.Year(), back.Month(), 1, 0, 0, 0, 0, now.Location())
}

// defaultDateTo is the first of January of the next year.
func defaultDateTo(now time.Time) time.Time {
	return time.Date(now.Year()+1, time.January, 1, 0, 0, 0, 0, now.Location())
}
