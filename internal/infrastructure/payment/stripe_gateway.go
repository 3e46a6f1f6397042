package payment

import (
	"context"
	"errors"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"

	"github.com/shopcore/backend/internal/domain/payment"
	"github.com/shopcore/backend/internal/domain/shared/valueobject"
)

// StripeGateway implements the payment gateway over Stripe PaymentIntents.
// The storefront confirms a client-collected payment method server-side;
// anything short of an immediately usable authorization is a failure.
type StripeGateway struct {
	api *client.API
}

// NewStripeGateway creates a Stripe gateway with the given secret key
func NewStripeGateway(apiKey string) *StripeGateway {
	api := &client.API{}
	api.Init(apiKey, nil)
	return &StripeGateway{api: api}
}

// NewStripeGatewayWithClient creates a gateway over an existing Stripe client.
// This is useful for testing with a stubbed backend.
func NewStripeGatewayWithClient(api *client.API) *StripeGateway {
	return &StripeGateway{api: api}
}

// Method returns the payment method this gateway serves
func (g *StripeGateway) Method() payment.Method {
	return payment.MethodStripe
}

// Authorize confirms a PaymentIntent for the order amount
func (g *StripeGateway) Authorize(ctx context.Context, req payment.AuthorizeRequest) (*payment.AuthorizeResult, error) {
	if req.Token == "" {
		return nil, payment.ErrAuthorizationFailed.WithDetail("reason", "missing payment token")
	}

	params := &stripe.PaymentIntentParams{
		Params: stripe.Params{
			Context: ctx,
			Metadata: map[string]string{
				"order_number": req.OrderNumber,
			},
		},
		Amount:        stripe.Int64(usdCents(req.Amount)),
		Currency:      stripe.String(string(stripe.CurrencyUSD)),
		PaymentMethod: stripe.String(req.Token),
		Confirm:       stripe.Bool(true),
		Description:   stripe.String("Order " + req.OrderNumber),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}

	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			return nil, payment.ErrAuthorizationFailed.
				WithDetail("reason", string(stripeErr.Code))
		}
		return nil, err
	}

	switch intent.Status {
	case stripe.PaymentIntentStatusSucceeded, stripe.PaymentIntentStatusRequiresCapture:
		return &payment.AuthorizeResult{
			TransactionID: intent.ID,
			Status:        payment.TransactionSuccess,
		}, nil
	case stripe.PaymentIntentStatusProcessing:
		return &payment.AuthorizeResult{
			TransactionID: intent.ID,
			Status:        payment.TransactionPending,
		}, nil
	default:
		return nil, payment.ErrAuthorizationFailed.
			WithDetail("status", string(intent.Status))
	}
}

// Refund refunds a previously confirmed PaymentIntent
func (g *StripeGateway) Refund(ctx context.Context, transactionID string, amount valueobject.Money) (*payment.RefundResult, error) {
	params := &stripe.RefundParams{
		Params:        stripe.Params{Context: ctx},
		PaymentIntent: stripe.String(transactionID),
		Amount:        stripe.Int64(usdCents(amount)),
	}

	ref, err := g.api.Refunds.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			return nil, payment.ErrRefundFailed.
				WithDetail("reason", string(stripeErr.Code))
		}
		return nil, err
	}

	status := payment.TransactionPending
	if ref.Status == stripe.RefundStatusSucceeded {
		status = payment.TransactionSuccess
	}
	return &payment.RefundResult{
		RefundID: ref.ID,
		Status:   status,
	}, nil
}

// usdCents converts a dollar amount to the integer cents Stripe expects
func usdCents(m valueobject.Money) int64 {
	return m.Amount().Shift(2).Round(0).IntPart()
}

// Ensure StripeGateway implements payment.Gateway
var _ payment.Gateway = (*StripeGateway)(nil)
