package service

import (
	"context"

	"bookstore-app/internal/models"
)

// Store is the persistence surface the checkout and payment services run
// against. The GORM implementation lives in internal/store; tests use an
// in-memory fake. Conditional mutations (DecrementStock, ConsumeDiscount,
// RedeemPoints, MarkOrderPaid) are compare-and-set operations: they fail, or
// report no change, instead of writing when their guard does not hold, so
// concurrent checkouts and replayed callbacks cannot oversell, over-redeem or
// double-credit.
type Store interface {
	FindBook(ctx context.Context, id uint) (*models.Book, error)
	// DecrementStock atomically subtracts qty from the book's stock and
	// returns ErrInsufficientStock when fewer than qty units remain.
	DecrementStock(ctx context.Context, bookID uint, qty int) error

	FindDiscountByCode(ctx context.Context, code string) (*models.Discount, error)
	// ConsumeDiscount atomically increments used_count and returns
	// ErrDiscountNotApplicable when the usage limit is already reached.
	ConsumeDiscount(ctx context.Context, id uint) error

	FindUser(ctx context.Context, id uint) (*models.User, error)
	// RedeemPoints atomically subtracts points from the user's balance and
	// returns ErrInsufficientPoints when the balance is too low.
	RedeemPoints(ctx context.Context, userID uint, points int64) error
	AwardPoints(ctx context.Context, userID uint, points int64) error

	CartItems(ctx context.Context, userID uint) ([]models.CartItem, error)
	ClearCart(ctx context.Context, userID uint) error

	CreateOrder(ctx context.Context, order *models.Order) error
	// FindOrder returns ErrOrderNotFound for unknown ids.
	FindOrder(ctx context.Context, id uint) (*models.Order, error)
	// MarkOrderPaid performs the conditional Pending->Completed transition.
	// It reports false with no error when the order was already Completed.
	MarkOrderPaid(ctx context.Context, orderID uint) (bool, error)
	// UpdateOrderStatus moves the order from one status to another, failing
	// with ErrOrderRejected when the order is no longer in the from status.
	UpdateOrderStatus(ctx context.Context, orderID uint, from, to string) error

	// InTx runs fn against a transactional view of the store; all mutations
	// inside fn commit or roll back together.
	InTx(ctx context.Context, fn func(Store) error) error
}
