package payment

import (
	"context"

	"github.com/shopcore/backend/internal/domain/payment"
	"github.com/shopcore/backend/internal/domain/shared/valueobject"
)

// CODGateway is the cash-on-delivery gateway. Nothing is charged until the
// courier hands over the parcel, so authorization always answers pending
// and a refund of an uncharged order is trivially complete.
type CODGateway struct{}

// NewCODGateway creates a new cash-on-delivery gateway
func NewCODGateway() *CODGateway {
	return &CODGateway{}
}

// Method returns the payment method this gateway serves
func (g *CODGateway) Method() payment.Method {
	return payment.MethodCOD
}

// Authorize records that payment will be collected on delivery
func (g *CODGateway) Authorize(ctx context.Context, req payment.AuthorizeRequest) (*payment.AuthorizeResult, error) {
	return &payment.AuthorizeResult{
		Status: payment.TransactionPending,
	}, nil
}

// Refund is a no-op: no money moved
func (g *CODGateway) Refund(ctx context.Context, transactionID string, amount valueobject.Money) (*payment.RefundResult, error) {
	return &payment.RefundResult{
		Status: payment.TransactionSuccess,
	}, nil
}

// Ensure CODGateway implements payment.Gateway
var _ payment.Gateway = (*CODGateway)(nil)
