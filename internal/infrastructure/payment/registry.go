package payment

import (
	"github.com/shopcore/backend/internal/domain/payment"
	"github.com/shopcore/backend/internal/infrastructure/config"
)

// GatewayRegistry resolves payment gateways by method
type GatewayRegistry struct {
	gateways map[payment.Method]payment.Gateway
}

// NewGatewayRegistry creates an empty registry
func NewGatewayRegistry() *GatewayRegistry {
	return &GatewayRegistry{
		gateways: make(map[payment.Method]payment.Gateway),
	}
}

// NewGatewayRegistryFromConfig builds a registry with every gateway the
// configuration enables
func NewGatewayRegistryFromConfig(cfg *config.PaymentConfig) (*GatewayRegistry, error) {
	registry := NewGatewayRegistry()

	if cfg.CODEnabled {
		registry.Register(NewCODGateway())
	}
	if cfg.StripeAPIKey != "" {
		registry.Register(NewStripeGateway(cfg.StripeAPIKey))
	}
	if cfg.PayPalClientID != "" {
		paypal, err := NewPayPalGateway(&PayPalConfig{
			BaseURL:  cfg.PayPalBaseURL,
			ClientID: cfg.PayPalClientID,
			Secret:   cfg.PayPalSecret,
			Timeout:  cfg.Timeout,
		})
		if err != nil {
			return nil, err
		}
		registry.Register(paypal)
	}

	return registry, nil
}

// Register adds a gateway, replacing any existing one for the same method
func (r *GatewayRegistry) Register(gateway payment.Gateway) {
	r.gateways[gateway.Method()] = gateway
}

// Gateway returns the gateway for a method
func (r *GatewayRegistry) Gateway(method payment.Method) (payment.Gateway, error) {
	gateway, ok := r.gateways[method]
	if !ok {
		return nil, payment.ErrUnsupportedMethod.WithDetail("method", method.String())
	}
	return gateway, nil
}

// Ensure GatewayRegistry implements payment.Registry
var _ payment.Registry = (*GatewayRegistry)(nil)
