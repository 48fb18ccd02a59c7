package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	apporder "github.com/zaoknom/docbox-backend/internal/application/order"
	"github.com/zaoknom/docbox-backend/internal/infrastructure/config"
)

// TelegramNotifier announces scheduled deliveries to the shop's
// Telegram group. Sending is best effort; a dead bot never fails the
// supplier feed that triggered it.
type TelegramNotifier struct {
	sendMessageURL string
	chatID         string
	client         *http.Client
	logger         *zap.Logger
}

// NewTelegramNotifier creates a notifier from the bot configuration
func NewTelegramNotifier(cfg config.BotConfig, logger *zap.Logger) *TelegramNotifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &TelegramNotifier{
		sendMessageURL: cfg.SendMessageURL,
		chatID:         cfg.ChatID,
		client:         &http.Client{Timeout: timeout},
		logger:         logger,
	}
}

// SendDeliveryInfo sends one message per delivery date
func (n *TelegramNotifier) SendDeliveryInfo(ctx context.Context, items []apporder.DeliveryItem) {
	if n.sendMessageURL == "" || len(items) == 0 {
		return
	}

	for _, message := range buildDeliveryMessages(items) {
		n.send(ctx, message)
	}
}

// buildDeliveryMessages groups the items by delivery date and renders
// a message per date, earliest date first
func buildDeliveryMessages(items []apporder.DeliveryItem) []string {
	grouped := make(map[time.Time][]apporder.DeliveryItem)
	for _, item := range items {
		date := item.DeliveryDate.Truncate(24 * time.Hour)
		grouped[date] = append(grouped[date], item)
	}

	dates := make([]time.Time, 0, len(grouped))
	for date := range grouped {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	messages := make([]string, 0, len(dates))
	for _, date := range dates {
		var b strings.Builder
		b.WriteString("Доставка " + date.Format("2006-01-02") + "\n\n\n")
		for _, item := range grouped[date] {
			b.WriteString(item.Code + ": " + item.ClientName + "\n")
			b.WriteString(item.OrderContent + "\n\n")
		}
		messages = append(messages, b.String())
	}
	return messages
}

func (n *TelegramNotifier) send(ctx context.Context, text string) {
	payload, err := json.Marshal(map[string]string{
		"chat_id": n.chatID,
		"text":    text,
	})
	if err != nil {
		n.logger.Error("failed to encode bot message", zap.Error(err))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.sendMessageURL, bytes.NewReader(payload))
	if err != nil {
		n.logger.Error("failed to build bot request", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Error("got error during request to the bot", zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		n.logger.Error("bot rejected the message", zap.Int("status", resp.StatusCode))
	}
}

// Ensure TelegramNotifier implements DeliveryNotifier
var _ apporder.DeliveryNotifier = (*TelegramNotifier)(nil)
