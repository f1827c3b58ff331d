package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotal(t *testing.T) {
	items := []CartItem{
		{ProductID: 1, Name: "Margarita", Price: 45000},
		{ProductID: 7, Name: "Cola 0.5L", Price: 8000},
	}
	assert.Equal(t, int64(53000), Total(items))
	assert.Equal(t, int64(0), Total(nil))
}

func TestNewCartItem(t *testing.T) {
	p := Product{ID: 3, Name: "Tovuqli pitsa", Price: 50000, CategoryID: 1}
	item := NewCartItem(p)

	p.Price = 1
	assert.Equal(t, CartItem{ProductID: 3, Name: "Tovuqli pitsa", Price: 50000}, item)
}

func TestPaymentMethodLabel(t *testing.T) {
	assert.Equal(t, "Naqd", PaymentCash.Label())
	assert.Equal(t, "Karta", PaymentCard.Label())
	assert.Equal(t, "", PaymentMethod("crypto").Label())
	assert.True(t, PaymentCard.Valid())
	assert.False(t, PaymentMethod("").Valid())
}

func TestOrderValidate(t *testing.T) {
	items := []CartItem{{ProductID: 1, Name: "Margarita", Price: 45000}}

	tests := []struct {
		name    string
		order   Order
		wantErr error
	}{
		{
			name:  "valid",
			order: Order{UserID: 1, Items: items, Total: 45000},
		},
		{
			name:    "missing user",
			order:   Order{Items: items, Total: 45000},
			wantErr: ErrInvalidUserID,
		},
		{
			name:    "no items",
			order:   Order{UserID: 1},
			wantErr: ErrEmptyOrder,
		},
		{
			name:    "total mismatch",
			order:   Order{UserID: 1, Items: items, Total: 1},
			wantErr: ErrTotalMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.order.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestProductValidate(t *testing.T) {
	assert.NoError(t, (&Product{Name: "Suv 0.5L", Price: 3000, CategoryID: 3}).Validate())
	assert.ErrorIs(t, (&Product{Price: 3000, CategoryID: 3}).Validate(), ErrEmptyName)
	assert.ErrorIs(t, (&Product{Name: "Suv", CategoryID: 3}).Validate(), ErrInvalidPrice)
	assert.ErrorIs(t, (&Product{Name: "Suv", Price: 3000}).Validate(), ErrInvalidCategory)
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "53,000 so'm", FormatPrice(53000))
	assert.Equal(t, "3,000 so'm", FormatPrice(3000))
	assert.Equal(t, "1,250,000 so'm", FormatPrice(1250000))
	assert.Equal(t, "0 so'm", FormatPrice(0))
}
