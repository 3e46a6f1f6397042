package payment

import (
	"fmt"
	"time"
)

const paypalSandboxBaseURL = "https://api-m.sandbox.paypal.com"

// PayPalConfig holds PayPal REST API credentials
type PayPalConfig struct {
	BaseURL  string
	ClientID string
	Secret   string
	Timeout  time.Duration
}

// Validate checks that the configuration is complete
func (c *PayPalConfig) Validate() error {
	if c.ClientID == "" {
		return fmt.Errorf("paypal client ID is required")
	}
	if c.Secret == "" {
		return fmt.Errorf("paypal secret is required")
	}
	if c.BaseURL == "" {
		c.BaseURL = paypalSandboxBaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = 10 * time.Second
	}
	return nil
}
