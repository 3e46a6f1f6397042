package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopcore/backend/internal/domain/payment"
	"github.com/shopcore/backend/internal/domain/shared"
	"github.com/shopcore/backend/internal/domain/shared/valueobject"
)

func newTestPayPalGateway(t *testing.T, handler http.HandlerFunc) (*PayPalGateway, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	gateway, err := NewPayPalGateway(&PayPalConfig{
		BaseURL:  server.URL,
		ClientID: "client-id",
		Secret:   "secret",
		Timeout:  5 * time.Second,
	})
	require.NoError(t, err)
	return gateway, server
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestPayPalGateway_Authorize(t *testing.T) {
	t.Run("captures an approved order", func(t *testing.T) {
		gateway, _ := newTestPayPalGateway(t, func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/v1/oauth2/token":
				user, pass, ok := r.BasicAuth()
				require.True(t, ok)
				assert.Equal(t, "client-id", user)
				assert.Equal(t, "secret", pass)
				writeJSON(t, w, http.StatusOK, paypalTokenResponse{
					AccessToken: "token-1", TokenType: "Bearer", ExpiresIn: 3600,
				})
			case "/v2/checkout/orders/ORDER-123/capture":
				assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
				writeJSON(t, w, http.StatusCreated, map[string]any{
					"id":     "ORDER-123",
					"status": "COMPLETED",
					"purchase_units": []map[string]any{{
						"payments": map[string]any{
							"captures": []map[string]any{{
								"id":     "CAP-7",
								"status": "COMPLETED",
							}},
						},
					}},
				})
			default:
				t.Fatalf("unexpected request to %s", r.URL.Path)
			}
		})

		result, err := gateway.Authorize(context.Background(), payment.AuthorizeRequest{
			OrderNumber: "ORD-20260830-0001",
			Amount:      valueobject.NewMoneyUSDFromFloat(47.96),
			Token:       "ORDER-123",
		})

		require.NoError(t, err)
		assert.Equal(t, "CAP-7", result.TransactionID)
		assert.Equal(t, payment.TransactionSuccess, result.Status)
	})

	t.Run("a declined capture fails authorization", func(t *testing.T) {
		gateway, _ := newTestPayPalGateway(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/v1/oauth2/token" {
				writeJSON(t, w, http.StatusOK, paypalTokenResponse{AccessToken: "token-1", ExpiresIn: 3600})
				return
			}
			writeJSON(t, w, http.StatusUnprocessableEntity, paypalErrorResponse{
				Name:    "INSTRUMENT_DECLINED",
				Message: "The instrument presented was declined",
			})
		})

		_, err := gateway.Authorize(context.Background(), payment.AuthorizeRequest{
			OrderNumber: "ORD-20260830-0001",
			Amount:      valueobject.NewMoneyUSDFromFloat(47.96),
			Token:       "ORDER-123",
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "PAYMENT_AUTHORIZATION_FAILED", domainErr.Code)
		assert.Equal(t, "INSTRUMENT_DECLINED", domainErr.Details["reason"])
	})

	t.Run("a missing order id fails without calling the API", func(t *testing.T) {
		gateway, _ := newTestPayPalGateway(t, func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("no request expected")
		})

		_, err := gateway.Authorize(context.Background(), payment.AuthorizeRequest{
			OrderNumber: "ORD-20260830-0001",
			Amount:      valueobject.NewMoneyUSDFromFloat(10),
		})

		assert.Error(t, err)
	})

	t.Run("the access token is reused until it expires", func(t *testing.T) {
		tokenRequests := 0
		gateway, _ := newTestPayPalGateway(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/v1/oauth2/token" {
				tokenRequests++
				writeJSON(t, w, http.StatusOK, paypalTokenResponse{AccessToken: "token-1", ExpiresIn: 3600})
				return
			}
			writeJSON(t, w, http.StatusCreated, map[string]any{"id": "X", "status": "COMPLETED"})
		})

		for i := 0; i < 3; i++ {
			_, err := gateway.Authorize(context.Background(), payment.AuthorizeRequest{
				OrderNumber: "ORD-20260830-0001",
				Amount:      valueobject.NewMoneyUSDFromFloat(10),
				Token:       "ORDER-123",
			})
			require.NoError(t, err)
		}

		assert.Equal(t, 1, tokenRequests)
	})
}

func TestPayPalGateway_Refund(t *testing.T) {
	gateway, _ := newTestPayPalGateway(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/oauth2/token":
			writeJSON(t, w, http.StatusOK, paypalTokenResponse{AccessToken: "token-1", ExpiresIn: 3600})
		case "/v2/payments/captures/CAP-7/refund":
			var req paypalRefundRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "47.96", req.Amount.Value)
			assert.Equal(t, "USD", req.Amount.CurrencyCode)
			writeJSON(t, w, http.StatusCreated, paypalRefundResponse{ID: "REF-1", Status: "COMPLETED"})
		default:
			t.Fatalf("unexpected request to %s", r.URL.Path)
		}
	})

	result, err := gateway.Refund(context.Background(), "CAP-7", valueobject.NewMoneyUSDFromFloat(47.96))

	require.NoError(t, err)
	assert.Equal(t, "REF-1", result.RefundID)
	assert.Equal(t, payment.TransactionSuccess, result.Status)
}
