package service

import (
	"context"
	"strings"
	"sync"

	"bookstore-app/internal/models"
)

// memStore is an in-memory Store used by the service tests. InTx serializes
// writers and restores a snapshot on error, so its rollback semantics match
// the real transactional store.
type memStore struct {
	mu   sync.Mutex
	data *memData
}

type memData struct {
	books       map[uint]*models.Book
	discounts   map[uint]*models.Discount
	users       map[uint]*models.User
	carts       map[uint][]models.CartItem
	orders      map[uint]*models.Order
	nextOrderID uint
}

func newMemStore() *memStore {
	return &memStore{data: &memData{
		books:       map[uint]*models.Book{},
		discounts:   map[uint]*models.Discount{},
		users:       map[uint]*models.User{},
		carts:       map[uint][]models.CartItem{},
		orders:      map[uint]*models.Order{},
		nextOrderID: 1,
	}}
}

func (d *memData) clone() *memData {
	c := &memData{
		books:       make(map[uint]*models.Book, len(d.books)),
		discounts:   make(map[uint]*models.Discount, len(d.discounts)),
		users:       make(map[uint]*models.User, len(d.users)),
		carts:       make(map[uint][]models.CartItem, len(d.carts)),
		orders:      make(map[uint]*models.Order, len(d.orders)),
		nextOrderID: d.nextOrderID,
	}
	for id, b := range d.books {
		cp := *b
		c.books[id] = &cp
	}
	for id, dc := range d.discounts {
		cp := *dc
		c.discounts[id] = &cp
	}
	for id, u := range d.users {
		cp := *u
		c.users[id] = &cp
	}
	for id, items := range d.carts {
		c.carts[id] = append([]models.CartItem(nil), items...)
	}
	for id, o := range d.orders {
		cp := *o
		cp.Items = append([]models.OrderItem(nil), o.Items...)
		c.orders[id] = &cp
	}
	return c
}

func (d *memData) findBook(id uint) (*models.Book, error) {
	b, ok := d.books[id]
	if !ok {
		return nil, ErrOrderRejected
	}
	cp := *b
	return &cp, nil
}

func (d *memData) decrementStock(id uint, qty int) error {
	b, ok := d.books[id]
	if !ok || b.Stock < qty {
		return ErrInsufficientStock
	}
	b.Stock -= qty
	return nil
}

func (d *memData) findDiscountByCode(code string) (*models.Discount, error) {
	for _, dc := range d.discounts {
		if dc.Code == strings.ToUpper(code) {
			cp := *dc
			return &cp, nil
		}
	}
	return nil, nil
}

func (d *memData) consumeDiscount(id uint) error {
	dc, ok := d.discounts[id]
	if !ok || dc.UsedCount >= dc.UsageLimit {
		return ErrDiscountNotApplicable
	}
	dc.UsedCount++
	return nil
}

func (d *memData) findUser(id uint) (*models.User, error) {
	u, ok := d.users[id]
	if !ok {
		return nil, ErrOrderRejected
	}
	cp := *u
	return &cp, nil
}

func (d *memData) redeemPoints(id uint, points int64) error {
	u, ok := d.users[id]
	if !ok || u.Points < points {
		return ErrInsufficientPoints
	}
	u.Points -= points
	return nil
}

func (d *memData) awardPoints(id uint, points int64) error {
	u, ok := d.users[id]
	if !ok {
		return ErrOrderRejected
	}
	u.Points += points
	return nil
}

func (d *memData) cartItems(userID uint) ([]models.CartItem, error) {
	return append([]models.CartItem(nil), d.carts[userID]...), nil
}

func (d *memData) clearCart(userID uint) error {
	delete(d.carts, userID)
	return nil
}

func (d *memData) createOrder(order *models.Order) error {
	order.ID = d.nextOrderID
	d.nextOrderID++
	cp := *order
	cp.Items = append([]models.OrderItem(nil), order.Items...)
	d.orders[order.ID] = &cp
	return nil
}

func (d *memData) findOrder(id uint) (*models.Order, error) {
	o, ok := d.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	cp := *o
	cp.Items = append([]models.OrderItem(nil), o.Items...)
	return &cp, nil
}

func (d *memData) markOrderPaid(id uint) (bool, error) {
	o, ok := d.orders[id]
	if !ok {
		return false, ErrOrderNotFound
	}
	if o.PaymentStatus != models.PaymentStatusPending {
		return false, nil
	}
	o.PaymentStatus = models.PaymentStatusCompleted
	return true, nil
}

func (d *memData) updateOrderStatus(id uint, from, to string) error {
	o, ok := d.orders[id]
	if !ok || o.OrderStatus != from {
		return ErrOrderRejected
	}
	o.OrderStatus = to
	return nil
}

func (s *memStore) FindBook(_ context.Context, id uint) (*models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.findBook(id)
}

func (s *memStore) DecrementStock(_ context.Context, id uint, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.decrementStock(id, qty)
}

func (s *memStore) FindDiscountByCode(_ context.Context, code string) (*models.Discount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.findDiscountByCode(code)
}

func (s *memStore) ConsumeDiscount(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.consumeDiscount(id)
}

func (s *memStore) FindUser(_ context.Context, id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.findUser(id)
}

func (s *memStore) RedeemPoints(_ context.Context, id uint, points int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.redeemPoints(id, points)
}

func (s *memStore) AwardPoints(_ context.Context, id uint, points int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.awardPoints(id, points)
}

func (s *memStore) CartItems(_ context.Context, userID uint) ([]models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.cartItems(userID)
}

func (s *memStore) ClearCart(_ context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.clearCart(userID)
}

func (s *memStore) CreateOrder(_ context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.createOrder(order)
}

func (s *memStore) FindOrder(_ context.Context, id uint) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.findOrder(id)
}

func (s *memStore) MarkOrderPaid(_ context.Context, id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.markOrderPaid(id)
}

func (s *memStore) UpdateOrderStatus(_ context.Context, id uint, from, to string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.updateOrderStatus(id, from, to)
}

func (s *memStore) InTx(_ context.Context, fn func(Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.data.clone()
	if err := fn(&memTx{data: s.data}); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

// memTx operates on the live data while the memStore mutex is held.
type memTx struct {
	data *memData
}

func (t *memTx) FindBook(_ context.Context, id uint) (*models.Book, error) {
	return t.data.findBook(id)
}

func (t *memTx) DecrementStock(_ context.Context, id uint, qty int) error {
	return t.data.decrementStock(id, qty)
}

func (t *memTx) FindDiscountByCode(_ context.Context, code string) (*models.Discount, error) {
	return t.data.findDiscountByCode(code)
}

func (t *memTx) ConsumeDiscount(_ context.Context, id uint) error {
	return t.data.consumeDiscount(id)
}

func (t *memTx) FindUser(_ context.Context, id uint) (*models.User, error) {
	return t.data.findUser(id)
}

func (t *memTx) RedeemPoints(_ context.Context, id uint, points int64) error {
	return t.data.redeemPoints(id, points)
}

func (t *memTx) AwardPoints(_ context.Context, id uint, points int64) error {
	return t.data.awardPoints(id, points)
}

func (t *memTx) CartItems(_ context.Context, userID uint) ([]models.CartItem, error) {
	return t.data.cartItems(userID)
}

func (t *memTx) ClearCart(_ context.Context, userID uint) error {
	return t.data.clearCart(userID)
}

func (t *memTx) CreateOrder(_ context.Context, order *models.Order) error {
	return t.data.createOrder(order)
}

func (t *memTx) FindOrder(_ context.Context, id uint) (*models.Order, error) {
	return t.data.findOrder(id)
}

func (t *memTx) MarkOrderPaid(_ context.Context, id uint) (bool, error) {
	return t.data.markOrderPaid(id)
}

func (t *memTx) UpdateOrderStatus(_ context.Context, id uint, from, to string) error {
	return t.data.updateOrderStatus(id, from, to)
}

func (t *memTx) InTx(_ context.Context, fn func(Store) error) error {
	return fn(t)
}
