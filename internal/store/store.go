// Package store provides the GORM-backed implementation of service.Store.
// Every guarded mutation is a single conditional UPDATE whose WHERE clause
// encodes the invariant, with RowsAffected deciding success, so the database
// arbitrates concurrent checkouts and replayed callbacks.
package store

import (
	"context"
	"errors"
	"strings"

	"bookstore-app/internal/models"
	"bookstore-app/internal/service"

	"gorm.io/gorm"
)

type GormStore struct {
	db *gorm.DB
}

func New(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

var _ service.Store = (*GormStore)(nil)

func (s *GormStore) FindBook(ctx context.Context, id uint) (*models.Book, error) {
	var book models.Book
	if err := s.db.WithContext(ctx).First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

func (s *GormStore) DecrementStock(ctx context.Context, bookID uint, qty int) error {
	res := s.db.WithContext(ctx).Model(&models.Book{}).
		Where("id = ? AND stock >= ?", bookID, qty).
		Update("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return service.ErrInsufficientStock
	}
	return nil
}

func (s *GormStore) FindDiscountByCode(ctx context.Context, code string) (*models.Discount, error) {
	var discount models.Discount
	err := s.db.WithContext(ctx).Where("code = ?", strings.ToUpper(code)).First(&discount).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &discount, nil
}

func (s *GormStore) ConsumeDiscount(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Model(&models.Discount{}).
		Where("id = ? AND used_count < usage_limit", id).
		Update("used_count", gorm.Expr("used_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return service.ErrDiscountNotApplicable
	}
	return nil
}

func (s *GormStore) FindUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormStore) RedeemPoints(ctx context.Context, userID uint, points int64) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND points >= ?", userID, points).
		Update("points", gorm.Expr("points - ?", points))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return service.ErrInsufficientPoints
	}
	return nil
}

func (s *GormStore) AwardPoints(ctx context.Context, userID uint, points int64) error {
	return s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("points", gorm.Expr("points + ?", points)).Error
}

func (s *GormStore) CartItems(ctx context.Context, userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *GormStore) ClearCart(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}

func (s *GormStore) CreateOrder(ctx context.Context, order *models.Order) error {
	return s.db.WithContext(ctx).Create(order).Error
}

func (s *GormStore) FindOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Preload("Items").Preload("Discount").First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, service.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *GormStore) MarkOrderPaid(ctx context.Context, orderID uint) (bool, error) {
	res := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND payment_status = ?", orderID, models.PaymentStatusPending).
		Update("payment_status", models.PaymentStatusCompleted)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) UpdateOrderStatus(ctx context.Context, orderID uint, from, to string) error {
	res := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND order_status = ?", orderID, from).
		Update("order_status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return service.ErrOrderRejected
	}
	return nil
}

func (s *GormStore) InTx(ctx context.Context, fn func(service.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}
