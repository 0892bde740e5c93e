package checkout

import (
	"errors"
	"testing"

	"eventgrid/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestValidateCart(t *testing.T) {
	tests := []struct {
		name  string
		items []models.CartItem
		want  error
	}{
		{
			name:  "empty cart",
			items: nil,
			want:  ErrEmptyCart,
		},
		{
			name: "missing ticket type id",
			items: []models.CartItem{
				{TicketTypeID: "", EventID: "e1", Quantity: 1},
			},
			want: ErrInvalidItem,
		},
		{
			name: "missing event id",
			items: []models.CartItem{
				{TicketTypeID: "t1", EventID: "", Quantity: 1},
			},
			want: ErrInvalidItem,
		},
		{
			name: "mixed events",
			items: []models.CartItem{
				{TicketTypeID: "t1", EventID: "e1", Quantity: 1},
				{TicketTypeID: "t2", EventID: "e2", Quantity: 1},
			},
			want: ErrMixedEvents,
		},
		{
			name: "valid single event cart",
			items: []models.CartItem{
				{TicketTypeID: "t1", EventID: "e1", Quantity: 2},
				{TicketTypeID: "t2", EventID: "e1", Quantity: 1},
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCart(tt.items)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, tt.want), "expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestNormalizeQuantity(t *testing.T) {
	assert.Equal(t, 1, NormalizeQuantity(0))
	assert.Equal(t, 1, NormalizeQuantity(-3))
	assert.Equal(t, 1, NormalizeQuantity(1))
	assert.Equal(t, 2, NormalizeQuantity(2.9))
	assert.Equal(t, 7, NormalizeQuantity(7))
}

func TestNormalizeItems(t *testing.T) {
	items := []models.CartItem{
		{TicketTypeID: " t1 ", EventID: "e1", Quantity: 0},
		{TicketTypeID: "t2", EventID: "e1", Quantity: 3.7},
	}

	got := NormalizeItems(items)

	assert.Len(t, got, 2)
	assert.Equal(t, models.OrderItemRequest{TicketTypeID: "t1", Quantity: 1}, got[0])
	assert.Equal(t, models.OrderItemRequest{TicketTypeID: "t2", Quantity: 3}, got[1])
}

func TestComputeTotal(t *testing.T) {
	items := []models.CartItem{
		{TicketTypeID: "A", EventID: "e1", Quantity: 2, UnitPrice: 500},
	}
	assert.Equal(t, int64(1000), ComputeTotal(items))

	items = append(items, models.CartItem{TicketTypeID: "B", EventID: "e1", Quantity: 0, UnitPrice: 250})
	// zero quantity normalizes to 1
	assert.Equal(t, int64(1250), ComputeTotal(items))

	assert.Equal(t, int64(0), ComputeTotal(nil))
}
