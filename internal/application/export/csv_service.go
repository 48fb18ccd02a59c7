package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zaoknom/docbox-backend/internal/domain/finance"
	"github.com/zaoknom/docbox-backend/internal/domain/order"
	"github.com/zaoknom/docbox-backend/internal/domain/partner"
	"github.com/zaoknom/docbox-backend/internal/domain/shared"
)

// DateLayout is how dates are written in the exported files
const DateLayout = "2006-01-02"

// maxTransactionColumns is how many payment pairs an order row carries.
// Rows with fewer payments are padded with blanks to keep the columns
// aligned across the sheet.
const maxTransactionColumns = 5

// CSVService dumps the books to CSV, both for the download link in the
// office and for the nightly backup upload.
type CSVService struct {
	orderRepo    order.Repository
	txRepo       finance.TransactionRepository
	clientRepo   partner.ClientRepository
	providerRepo partner.ProviderRepository
}

// NewCSVService creates a new CSV export service
func NewCSVService(
	orderRepo order.Repository,
	txRepo finance.TransactionRepository,
	clientRepo partner.ClientRepository,
	providerRepo partner.ProviderRepository,
) *CSVService {
	return &CSVService{
		orderRepo:    orderRepo,
		txRepo:       txRepo,
		clientRepo:   clientRepo,
		providerRepo: providerRepo,
	}
}

// OrdersFilename names the orders export for a given day, e.g.
// orders_20260831.csv
func OrdersFilename(now time.Time) string {
	return "orders_" + now.Format("20060102") + ".csv"
}

// TransactionsFilename names the transactions export for a given day
func TransactionsFilename(now time.Time) string {
	return "transactions_" + now.Format("20060102") + ".csv"
}

// ExportOrders writes every order as one CSV row: creation date,
// factory numbers, status, client, address, phone, mounter, mounting
// price, products price, then up to five payment pairs of amount and
// date.
func (s *CSVService) ExportOrders(ctx context.Context) ([]byte, error) {
	orders, err := s.orderRepo.FindAllFull(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for i := range orders {
		o := &orders[i]
		transactions, err := s.txRepo.FindByOrder(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		if err := w.Write(orderRow(o, transactions)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportTransactions writes every transaction as one CSV row: cashbox
// flag, date, amount, client, provider, the order's factory numbers
// and the comment.
func (s *CSVService) ExportTransactions(ctx context.Context) ([]byte, error) {
	transactions, err := s.txRepo.FindAll(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}
	clientNames, err := s.clientNames(ctx)
	if err != nil {
		return nil, err
	}
	providerNames, err := s.providerNames(ctx)
	if err != nil {
		return nil, err
	}
	orderCodes, err := s.orderCodes(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for i := range transactions {
		t := &transactions[i]
		if err := w.Write(transactionRow(t, clientNames, providerNames, orderCodes)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func orderRow(o *order.Order, transactions []finance.Transaction) []string {
	mounting := decimal.Zero
	if o.Price.Mounting != nil {
		mounting = *o.Price.Mounting
	}
	phone := ""
	mounter := ""
	if o.Client != nil {
		phone = o.Client.Phone
	}
	if o.Mounter != nil {
		mounter = o.Mounter.Name()
	}

	row := []string{
		o.DateCreated.Format(DateLayout),
		o.ProviderOrdersStr(),
		o.Status.Display(),
		o.ClientName(),
		o.AddressDisplay(),
		phone,
		mounter,
		mounting.String(),
		o.Price.Total.Sub(mounting).String(),
	}
	for i := range transactions {
		row = append(row, transactions[i].Amount.String(), transactions[i].Date.Format(DateLayout))
	}
	for i := len(transactions); i < maxTransactionColumns; i++ {
		row = append(row, "", "")
	}
	return row
}

func transactionRow(
	t *finance.Transaction,
	clientNames map[uuid.UUID]string,
	providerNames map[uuid.UUID]string,
	orderCodes map[uuid.UUID]string,
) []string {
	cashbox := "n"
	if t.Cashbox {
		cashbox = "y"
	}
	client := ""
	if t.ClientID != nil {
		client = clientNames[*t.ClientID]
	}
	provider := ""
	if t.ProviderID != nil {
		provider = providerNames[*t.ProviderID]
	}
	orderStr := ""
	if t.OrderID != nil {
		orderStr = orderCodes[*t.OrderID]
	}

	return []string{
		cashbox,
		t.Date.Format(DateLayout),
		t.Amount.String(),
		client,
		provider,
		orderStr,
		t.Comment,
	}
}

func (s *CSVService) clientNames(ctx context.Context) (map[uuid.UUID]string, error) {
	clients, err := s.clientRepo.FindAll(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(clients))
	for i := range clients {
		names[clients[i].ID] = clients[i].Name
	}
	return names, nil
}

func (s *CSVService) providerNames(ctx context.Context) (map[uuid.UUID]string, error) {
	providers, err := s.providerRepo.FindAll(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(providers))
	for i := range providers {
		names[providers[i].ID] = providers[i].Name
	}
	return names, nil
}

func (s *CSVService) orderCodes(ctx context.Context) (map[uuid.UUID]string, error) {
	orders, err := s.orderRepo.FindAll(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}
	codes := make(map[uuid.UUID]string, len(orders))
	for i := range orders {
		codes[orders[i].ID] = orders[i].ProviderOrdersStr()
	}
	return codes, nil
}
