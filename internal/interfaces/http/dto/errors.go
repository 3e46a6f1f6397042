package dto

import "net/http"

// Standardized error codes returned by the API. Domain errors are
// normalized into this namespace before the status lookup.
const (
	// ErrCodeUnknown is used when the error type is not recognized
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal indicates an internal server error
	ErrCodeInternal = "ERR_INTERNAL"

	// ErrCodeValidation indicates a general validation error
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeBadRequest indicates a malformed request
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput indicates invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON indicates malformed JSON in request body
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"

	// ErrCodeUnauthorized indicates missing or invalid authentication
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden indicates insufficient permissions
	ErrCodeForbidden = "ERR_FORBIDDEN"
	// ErrCodeTokenExpired indicates an expired token
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	// ErrCodeTokenInvalid indicates an invalid token
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"

	// ErrCodeNotFound indicates a resource was not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists indicates a resource already exists
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict indicates a resource conflict
	ErrCodeConflict = "ERR_CONFLICT"
	// ErrCodeConcurrencyConflict indicates an optimistic lock failure
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"

	// ErrCodeOutOfStock indicates the product has no available stock
	ErrCodeOutOfStock = "ERR_OUT_OF_STOCK"
	// ErrCodeStockExceeded indicates the requested quantity exceeds stock
	ErrCodeStockExceeded = "ERR_STOCK_EXCEEDED"
	// ErrCodeInsufficientStock indicates stock ran out at order placement
	ErrCodeInsufficientStock = "ERR_INSUFFICIENT_STOCK"
	// ErrCodeEmptyCart indicates an order was placed from an empty cart
	ErrCodeEmptyCart = "ERR_EMPTY_CART"
	// ErrCodeLineNotFound indicates the cart has no line for the product
	ErrCodeLineNotFound = "ERR_LINE_NOT_FOUND"

	// ErrCodeCouponNotFound indicates an unknown coupon code
	ErrCodeCouponNotFound = "ERR_COUPON_NOT_FOUND"
	// ErrCodeCouponInactive indicates a deactivated coupon
	ErrCodeCouponInactive = "ERR_COUPON_INACTIVE"
	// ErrCodeCouponExpired indicates an expired coupon
	ErrCodeCouponExpired = "ERR_COUPON_EXPIRED"
	// ErrCodeCouponMinimumNotMet indicates the subtotal is below the
	// coupon's minimum purchase
	ErrCodeCouponMinimumNotMet = "ERR_COUPON_MINIMUM_NOT_MET"
	// ErrCodeCouponUsageLimitReached indicates the coupon is used up
	ErrCodeCouponUsageLimitReached = "ERR_COUPON_USAGE_LIMIT_REACHED"

	// ErrCodeInvalidTransition indicates a disallowed status change
	ErrCodeInvalidTransition = "ERR_INVALID_TRANSITION"
	// ErrCodeTerminalState indicates the order can no longer change
	ErrCodeTerminalState = "ERR_TERMINAL_STATE"
	// ErrCodeNotCancellable indicates the order is past cancellation
	ErrCodeNotCancellable = "ERR_NOT_CANCELLABLE"
	// ErrCodeInvalidState indicates a business rule state violation
	ErrCodeInvalidState = "ERR_INVALID_STATE"

	// ErrCodePaymentFailed indicates the payment was declined
	ErrCodePaymentFailed = "ERR_PAYMENT_FAILED"
	// ErrCodePaymentRefundFailed indicates the refund was rejected
	ErrCodePaymentRefundFailed = "ERR_PAYMENT_REFUND_FAILED"
	// ErrCodePaymentMethodUnsupported indicates an unconfigured gateway
	ErrCodePaymentMethodUnsupported = "ERR_PAYMENT_METHOD_UNSUPPORTED"

	// ErrCodeRateLimited indicates too many requests
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,

	// Auth errors
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	// Resource errors
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	// Cart and stock rules -> 422 Unprocessable Entity
	ErrCodeOutOfStock:        http.StatusUnprocessableEntity,
	ErrCodeStockExceeded:     http.StatusUnprocessableEntity,
	ErrCodeInsufficientStock: http.StatusUnprocessableEntity,
	ErrCodeEmptyCart:         http.StatusUnprocessableEntity,
	ErrCodeLineNotFound:      http.StatusNotFound,

	// Coupon rules
	ErrCodeCouponNotFound:          http.StatusNotFound,
	ErrCodeCouponInactive:          http.StatusUnprocessableEntity,
	ErrCodeCouponExpired:           http.StatusUnprocessableEntity,
	ErrCodeCouponMinimumNotMet:     http.StatusUnprocessableEntity,
	ErrCodeCouponUsageLimitReached: http.StatusUnprocessableEntity,

	// Order state rules -> 422 Unprocessable Entity
	ErrCodeInvalidTransition: http.StatusUnprocessableEntity,
	ErrCodeTerminalState:     http.StatusUnprocessableEntity,
	ErrCodeNotCancellable:    http.StatusUnprocessableEntity,
	ErrCodeInvalidState:      http.StatusUnprocessableEntity,

	// Payment errors
	ErrCodePaymentFailed:            http.StatusPaymentRequired,
	ErrCodePaymentRefundFailed:      http.StatusUnprocessableEntity,
	ErrCodePaymentMethodUnsupported: http.StatusBadRequest,

	// Rate limiting -> 429 Too Many Requests
	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to the standardized
// API namespace
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,
	"UNAUTHORIZED":         ErrCodeUnauthorized,
	"FORBIDDEN":            ErrCodeForbidden,
	"INTERNAL_ERROR":       ErrCodeInternal,

	"OUT_OF_STOCK":       ErrCodeOutOfStock,
	"STOCK_EXCEEDED":     ErrCodeStockExceeded,
	"INSUFFICIENT_STOCK": ErrCodeInsufficientStock,
	"EMPTY_CART":         ErrCodeEmptyCart,
	"LINE_NOT_FOUND":     ErrCodeLineNotFound,

	"COUPON_NOT_FOUND":           ErrCodeCouponNotFound,
	"COUPON_INACTIVE":            ErrCodeCouponInactive,
	"COUPON_EXPIRED":             ErrCodeCouponExpired,
	"COUPON_MINIMUM_NOT_MET":     ErrCodeCouponMinimumNotMet,
	"COUPON_USAGE_LIMIT_REACHED": ErrCodeCouponUsageLimitReached,

	"INVALID_TRANSITION": ErrCodeInvalidTransition,
	"TERMINAL_STATE":     ErrCodeTerminalState,
	"NOT_CANCELLABLE":    ErrCodeNotCancellable,
	"INVALID_STATE":      ErrCodeInvalidState,

	"PAYMENT_AUTHORIZATION_FAILED": ErrCodePaymentFailed,
	"PAYMENT_REFUND_FAILED":        ErrCodePaymentRefundFailed,
	"PAYMENT_UNSUPPORTED_METHOD":   ErrCodePaymentMethodUnsupported,

	"INVALID_INPUT":          ErrCodeInvalidInput,
	"INVALID_ADDRESS":        ErrCodeInvalidInput,
	"INVALID_QUANTITY":       ErrCodeInvalidInput,
	"INVALID_PRODUCT":        ErrCodeInvalidInput,
	"INVALID_OWNER":          ErrCodeInvalidInput,
	"INVALID_USER":           ErrCodeInvalidInput,
	"INVALID_AMOUNT":         ErrCodeInvalidInput,
	"INVALID_REASON":         ErrCodeInvalidInput,
	"INVALID_STATUS":         ErrCodeInvalidInput,
	"INVALID_ORDER_NUMBER":   ErrCodeInvalidInput,
	"INVALID_PAYMENT_METHOD": ErrCodeInvalidInput,
	"INVALID_COUPON_CODE":    ErrCodeInvalidInput,
	"INVALID_DISCOUNT":       ErrCodeInvalidInput,
	"INVALID_DISCOUNT_TYPE":  ErrCodeInvalidInput,
	"INVALID_DISCOUNT_VALUE": ErrCodeInvalidInput,
	"INVALID_EXPIRATION":     ErrCodeInvalidInput,
	"INVALID_MINIMUM":        ErrCodeInvalidInput,
	"INVALID_USAGE_LIMIT":    ErrCodeInvalidInput,
	"VALIDATION_ERROR":       ErrCodeValidation,
	"BAD_REQUEST":            ErrCodeBadRequest,
}

// NormalizeErrorCode converts a domain error code to the standardized
// format. If the code is already in the new format or unknown, returns
// it as-is
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
