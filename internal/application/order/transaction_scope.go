package order

import (
	"context"

	"github.com/shopcore/backend/internal/domain/coupon"
	"github.com/shopcore/backend/internal/domain/inventory"
	"github.com/shopcore/backend/internal/domain/order"
)

// TransactionScope runs order placement against repositories sharing one
// database transaction. The per-line stock decrements, the coupon usage
// increment and the order insert commit or roll back together, which is
// what makes placement all-or-nothing.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides the repositories scoped to the
// current transaction
type TransactionalRepositories interface {
	// OrderRepo returns the order repository scoped to the transaction
	OrderRepo() order.Repository
	// StockRepo returns the stock repository scoped to the transaction
	StockRepo() inventory.StockRepository
	// CouponRepo returns the coupon repository scoped to the transaction
	CouponRepo() coupon.Repository
}

// NoOpTransactionScope runs the function without a real transaction,
// used in tests
type NoOpTransactionScope struct {
	orderRepo  order.Repository
	stockRepo  inventory.StockRepository
	couponRepo coupon.Repository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given
// repositories
func NewNoOpTransactionScope(
	orderRepo order.Repository,
	stockRepo inventory.StockRepository,
	couponRepo coupon.Repository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:  orderRepo,
		stockRepo:  stockRepo,
		couponRepo: couponRepo,
	}
}

// Execute runs the function without transactional guarantees
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// OrderRepo returns the order repository
func (s *NoOpTransactionScope) OrderRepo() order.Repository {
	return s.orderRepo
}

// StockRepo returns the stock repository
func (s *NoOpTransactionScope) StockRepo() inventory.StockRepository {
	return s.stockRepo
}

// CouponRepo returns the coupon repository
func (s *NoOpTransactionScope) CouponRepo() coupon.Repository {
	return s.couponRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
