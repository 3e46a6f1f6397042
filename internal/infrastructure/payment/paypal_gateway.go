package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/shopcore/backend/internal/domain/payment"
	"github.com/shopcore/backend/internal/domain/shared/valueobject"
)

// PayPalGateway implements the payment gateway over the PayPal REST API.
// The shopper approves an order client-side; the Token in the authorize
// request is that approved order's ID and Authorize captures it.
type PayPalGateway struct {
	config     *PayPalConfig
	httpClient *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewPayPalGateway creates a new PayPal gateway
func NewPayPalGateway(config *PayPalConfig) (*PayPalGateway, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &PayPalGateway{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}, nil
}

// Method returns the payment method this gateway serves
func (g *PayPalGateway) Method() payment.Method {
	return payment.MethodPayPal
}

// Authorize captures the shopper-approved PayPal order
func (g *PayPalGateway) Authorize(ctx context.Context, req payment.AuthorizeRequest) (*payment.AuthorizeResult, error) {
	if req.Token == "" {
		return nil, payment.ErrAuthorizationFailed.WithDetail("reason", "missing paypal order id")
	}

	var resp paypalCaptureResponse
	path := fmt.Sprintf("/v2/checkout/orders/%s/capture", url.PathEscape(req.Token))
	if err := g.post(ctx, path, nil, &resp); err != nil {
		return nil, err
	}

	if resp.Status != "COMPLETED" {
		return nil, payment.ErrAuthorizationFailed.WithDetail("status", resp.Status)
	}

	captureID := resp.ID
	for _, unit := range resp.PurchaseUnits {
		if len(unit.Payments.Captures) > 0 {
			captureID = unit.Payments.Captures[0].ID
			break
		}
	}

	return &payment.AuthorizeResult{
		TransactionID: captureID,
		Status:        payment.TransactionSuccess,
	}, nil
}

// Refund refunds a previously captured payment
func (g *PayPalGateway) Refund(ctx context.Context, transactionID string, amount valueobject.Money) (*payment.RefundResult, error) {
	body := paypalRefundRequest{
		Amount: paypalAmount{
			CurrencyCode: string(amount.Currency()),
			Value:        amount.StringFixed(2),
		},
	}

	var resp paypalRefundResponse
	path := fmt.Sprintf("/v2/payments/captures/%s/refund", url.PathEscape(transactionID))
	if err := g.post(ctx, path, body, &resp); err != nil {
		return nil, err
	}

	status := payment.TransactionPending
	if resp.Status == "COMPLETED" {
		status = payment.TransactionSuccess
	}
	return &payment.RefundResult{
		RefundID: resp.ID,
		Status:   status,
	}, nil
}

// post sends an authenticated JSON request to the REST API
func (g *PayPalGateway) post(ctx context.Context, path string, body, out any) error {
	token, err := g.token(ctx)
	if err != nil {
		return err
	}

	var reader io.Reader = strings.NewReader("{}")
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode paypal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.config.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("paypal request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read paypal response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr paypalErrorResponse
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Name != "" {
			return payment.ErrAuthorizationFailed.
				WithDetail("reason", apiErr.Name).
				WithDetail("message", apiErr.Message)
		}
		return fmt.Errorf("paypal returned status %d", resp.StatusCode)
	}

	return json.Unmarshal(data, out)
}

// token returns a cached OAuth access token, refreshing it when expired
func (g *PayPalGateway) token(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.accessToken != "" && time.Now().Before(g.tokenExpiry) {
		return g.accessToken, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.config.BaseURL+"/v1/oauth2/token",
		strings.NewReader("grant_type=client_credentials"))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(g.config.ClientID, g.config.Secret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("paypal token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("paypal token request returned status %d", resp.StatusCode)
	}

	var tokenResp paypalTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("failed to decode paypal token response: %w", err)
	}

	g.accessToken = tokenResp.AccessToken
	// Refresh a minute early so an in-flight call never carries a stale token
	g.tokenExpiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn-60) * time.Second)

	return g.accessToken, nil
}

// Ensure PayPalGateway implements payment.Gateway
var _ payment.Gateway = (*PayPalGateway)(nil)
