package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/shopcore/backend/internal/domain/order"
	"github.com/shopcore/backend/internal/infrastructure/config"
)

// statusUpdatePayload is the message posted to the notification service
type statusUpdatePayload struct {
	OrderNumber string    `json:"order_number"`
	UserID      string    `json:"user_id"`
	Status      string    `json:"status"`
	TotalPrice  string    `json:"total_price"`
	Sender      string    `json:"sender"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// HTTPNotifier delivers order status updates to an external notification
// service over HTTP. Delivery is best-effort by contract: callers log
// failures and move on, the order itself is already durable.
type HTTPNotifier struct {
	endpoint   string
	apiKey     string
	sender     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewHTTPNotifier creates a notifier from the notification configuration
func NewHTTPNotifier(cfg *config.NotificationConfig, logger *zap.Logger) *HTTPNotifier {
	return &HTTPNotifier{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		sender:   cfg.Sender,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// SendStatusUpdate posts a status-update message for an order
func (n *HTTPNotifier) SendStatusUpdate(ctx context.Context, o *order.Order, newStatus order.Status) error {
	if n.endpoint == "" {
		n.logger.Debug("notification endpoint not configured, skipping status update",
			zap.String("order_number", o.OrderNumber),
			zap.String("status", newStatus.String()))
		return nil
	}

	payload := statusUpdatePayload{
		OrderNumber: o.OrderNumber,
		UserID:      o.UserID.String(),
		Status:      newStatus.String(),
		TotalPrice:  o.TotalPrice.StringFixed(2),
		Sender:      n.sender,
		OccurredAt:  time.Now(),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if n.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+n.apiKey)
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notification request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notification service returned status %d", resp.StatusCode)
	}
	return nil
}

// Ensure HTTPNotifier implements order.NotificationGateway
var _ order.NotificationGateway = (*HTTPNotifier)(nil)
