package pricing

import (
	"testing"

	"bookstore-app/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuotePercentageDiscount(t *testing.T) {
	// subtotal 300,000; 10% discount; shipping 20,000 -> 290,000
	lines := []LineItem{
		{BookID: 1, Quantity: 2, UnitPrice: 100000},
		{BookID: 2, Quantity: 1, UnitPrice: 100000},
	}
	discount := &models.Discount{Type: models.DiscountTypePercentage, Value: 10}

	bd, err := Quote(lines, discount, 0, 20000)
	require.NoError(t, err)
	assert.Equal(t, int64(300000), bd.Subtotal)
	assert.Equal(t, int64(30000), bd.DiscountAmount)
	assert.Equal(t, int64(290000), bd.Total)
}

func TestQuoteFixedDiscountWithPoints(t *testing.T) {
	// subtotal 300,000; fixed 50,000 off; shipping 20,000; 10,000 points -> 260,000
	lines := []LineItem{
		{BookID: 1, Quantity: 3, UnitPrice: 100000},
	}
	discount := &models.Discount{Type: models.DiscountTypeFixed, Value: 50000}

	bd, err := Quote(lines, discount, 10000, 20000)
	require.NoError(t, err)
	assert.Equal(t, int64(300000), bd.Subtotal)
	assert.Equal(t, int64(50000), bd.DiscountAmount)
	assert.Equal(t, int64(260000), bd.Total)
}

func TestQuoteClampsAtZero(t *testing.T) {
	// points exceed subtotal+shipping; total clamps to 0, never negative
	lines := []LineItem{
		{BookID: 1, Quantity: 1, UnitPrice: 50000},
	}

	bd, err := Quote(lines, nil, 100000, 20000)
	require.NoError(t, err)
	assert.Equal(t, int64(0), bd.Total)
}

func TestQuoteEmptyCart(t *testing.T) {
	_, err := Quote(nil, nil, 0, 20000)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestQuoteNoDiscount(t *testing.T) {
	lines := []LineItem{
		{BookID: 1, Quantity: 2, UnitPrice: 75000},
	}

	bd, err := Quote(lines, nil, 0, 25000)
	require.NoError(t, err)
	assert.Equal(t, int64(150000), bd.Subtotal)
	assert.Equal(t, int64(0), bd.DiscountAmount)
	assert.Equal(t, int64(175000), bd.Total)
}

func TestQuoteDeterministic(t *testing.T) {
	lines := []LineItem{
		{BookID: 1, Quantity: 3, UnitPrice: 33333},
		{BookID: 2, Quantity: 1, UnitPrice: 1},
	}
	discount := &models.Discount{Type: models.DiscountTypePercentage, Value: 17}

	first, err := Quote(lines, discount, 500, 12000)
	require.NoError(t, err)
	second, err := Quote(lines, discount, 500, 12000)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPercentageDiscountRoundsDown(t *testing.T) {
	// 10% of 99,999 is 9,999.9; integer division rounds down
	discount := &models.Discount{Type: models.DiscountTypePercentage, Value: 10}
	assert.Equal(t, int64(9999), DiscountAmount(discount, 99999))

	// full 100% percentage has no cap in the schema
	full := &models.Discount{Type: models.DiscountTypePercentage, Value: 100}
	assert.Equal(t, int64(99999), DiscountAmount(full, 99999))
}

func TestTotalFormula(t *testing.T) {
	assert.Equal(t, int64(290000), Total(300000, 30000, 0, 20000))
	assert.Equal(t, int64(0), Total(50000, 0, 100000, 20000))
}
