package payment

import (
	"context"

	"github.com/shopcore/backend/internal/domain/shared"
	"github.com/shopcore/backend/internal/domain/shared/valueobject"
)

// Method identifies how an order is paid
type Method string

const (
	MethodCOD    Method = "COD"
	MethodStripe Method = "STRIPE"
	MethodPayPal Method = "PAYPAL"
)

// IsValid checks if the method is a known payment method
func (m Method) IsValid() bool {
	switch m {
	case MethodCOD, MethodStripe, MethodPayPal:
		return true
	}
	return false
}

// String returns the string representation of Method
func (m Method) String() string {
	return string(m)
}

// TransactionStatus is the state of a payment transaction
type TransactionStatus string

const (
	TransactionPending TransactionStatus = "PENDING"
	TransactionSuccess TransactionStatus = "SUCCESS"
	TransactionFailed  TransactionStatus = "FAILED"
)

// IsValid checks if the status is a known TransactionStatus
func (s TransactionStatus) IsValid() bool {
	switch s {
	case TransactionPending, TransactionSuccess, TransactionFailed:
		return true
	}
	return false
}

// AuthorizeRequest asks a gateway to authorize a charge
type AuthorizeRequest struct {
	OrderNumber string
	Amount      valueobject.Money
	Token       string // gateway-issued payment token; empty for COD
}

// AuthorizeResult is the gateway's answer to an authorization request
type AuthorizeResult struct {
	TransactionID string
	Status        TransactionStatus
}

// RefundResult is the gateway's answer to a refund request
type RefundResult struct {
	RefundID string
	Status   TransactionStatus
}

// Common payment errors
var (
	ErrUnsupportedMethod   = shared.NewDomainError("PAYMENT_UNSUPPORTED_METHOD", "Payment method is not supported")
	ErrAuthorizationFailed = shared.NewDomainError("PAYMENT_AUTHORIZATION_FAILED", "Payment authorization failed")
	ErrRefundFailed        = shared.NewDomainError("PAYMENT_REFUND_FAILED", "Payment refund failed")
)

// Gateway abstracts a single payment provider. Calls carry bounded
// timeouts through ctx; a timeout is a failure, never a retry.
type Gateway interface {
	// Method returns the payment method this gateway serves
	Method() Method

	// Authorize authorizes a charge for the given amount
	Authorize(ctx context.Context, req AuthorizeRequest) (*AuthorizeResult, error)

	// Refund refunds a previously successful transaction
	Refund(ctx context.Context, transactionID string, amount valueobject.Money) (*RefundResult, error)
}

// Registry resolves the gateway for a payment method
type Registry interface {
	// Gateway returns the gateway for a method
	// Returns ErrUnsupportedMethod if no gateway is registered
	Gateway(method Method) (Gateway, error)
}
