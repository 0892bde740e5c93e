package checkout

import (
	"fmt"
	"math"
	"strings"

	"eventgrid/internal/models"
)

// ValidateCart checks the cart invariant: non-empty, every item carries a
// ticket type id, and all items belong to one event. An invalid cart never
// reaches the submission step.
func ValidateCart(items []models.CartItem) error {
	if len(items) == 0 {
		return ErrEmptyCart
	}

	eventID := strings.TrimSpace(items[0].EventID)
	if eventID == "" {
		return fmt.Errorf("%w: missing event id", ErrInvalidItem)
	}

	for i, item := range items {
		if strings.TrimSpace(item.TicketTypeID) == "" {
			return fmt.Errorf("%w: item %d", ErrInvalidItem, i)
		}
		if strings.TrimSpace(item.EventID) != eventID {
			return ErrMixedEvents
		}
	}

	return nil
}

// CartEventID returns the event id shared by all items. Only meaningful
// after ValidateCart has passed.
func CartEventID(items []models.CartItem) string {
	return strings.TrimSpace(items[0].EventID)
}

// NormalizeQuantity coerces a form-supplied quantity to an integer >= 1.
func NormalizeQuantity(q float64) int {
	n := int(math.Floor(q))
	if n < 1 {
		return 1
	}
	return n
}

// NormalizeItems builds the line items submitted upstream. The result is a
// fresh slice; the cart itself is never mutated.
func NormalizeItems(items []models.CartItem) []models.OrderItemRequest {
	result := make([]models.OrderItemRequest, len(items))
	for i, item := range items {
		result[i] = models.OrderItemRequest{
			TicketTypeID: strings.TrimSpace(item.TicketTypeID),
			Quantity:     NormalizeQuantity(item.Quantity),
		}
	}
	return result
}

// ComputeTotal sums unit price times quantity over the cart in integer
// minor units. Money never touches floating point here.
func ComputeTotal(items []models.CartItem) int64 {
	var total int64
	for _, item := range items {
		total += item.UnitPrice * int64(NormalizeQuantity(item.Quantity))
	}
	return total
}
