package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopcore/backend/internal/domain/order"
	"github.com/shopcore/backend/internal/domain/shared"
	"github.com/shopcore/backend/internal/infrastructure/config"
)

func testOrder() *order.Order {
	return &order.Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       "ORD-20260830-0001",
		UserID:            uuid.New(),
		TotalPrice:        decimal.NewFromFloat(47.96),
		Status:            order.StatusProcessing,
	}
}

func TestHTTPNotifier_SendStatusUpdate(t *testing.T) {
	t.Run("posts the status update", func(t *testing.T) {
		var received statusUpdatePayload
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer key-1", r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			w.WriteHeader(http.StatusAccepted)
		}))
		defer server.Close()

		notifier := NewHTTPNotifier(&config.NotificationConfig{
			Endpoint: server.URL,
			APIKey:   "key-1",
			Sender:   "orders@shopcore.example",
			Timeout:  5 * time.Second,
		}, zap.NewNop())

		err := notifier.SendStatusUpdate(context.Background(), testOrder(), order.StatusShipped)

		require.NoError(t, err)
		assert.Equal(t, "ORD-20260830-0001", received.OrderNumber)
		assert.Equal(t, "SHIPPED", received.Status)
		assert.Equal(t, "47.96", received.TotalPrice)
		assert.Equal(t, "orders@shopcore.example", received.Sender)
	})

	t.Run("a server error is reported to the caller", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		notifier := NewHTTPNotifier(&config.NotificationConfig{
			Endpoint: server.URL,
			Timeout:  5 * time.Second,
		}, zap.NewNop())

		err := notifier.SendStatusUpdate(context.Background(), testOrder(), order.StatusShipped)

		assert.Error(t, err)
	})

	t.Run("a missing endpoint skips delivery without error", func(t *testing.T) {
		notifier := NewHTTPNotifier(&config.NotificationConfig{Timeout: time.Second}, zap.NewNop())

		err := notifier.SendStatusUpdate(context.Background(), testOrder(), order.StatusShipped)

		assert.NoError(t, err)
	})
}
