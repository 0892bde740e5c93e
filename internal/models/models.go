package models

import "time"

// Payment attempt statuses. pending is the initial state, success and
// failed are terminal.
const (
	PaymentPending = "pending"
	PaymentSuccess = "success"
	PaymentFailed  = "failed"
)

// Checkout modes supported by the storefront.
const (
	ModeFree        = "free"
	ModeMobileMoney = "mobile_money"
)

// CartItem - one selected ticket type and quantity as sent by the UI.
// Quantity is a float because it arrives from a form field; it is coerced
// to an integer >= 1 before submission.
type CartItem struct {
	TicketTypeID string  `json:"ticket_type_id"`
	EventID      string  `json:"event_id"`
	Quantity     float64 `json:"quantity"`
	UnitPrice    int64   `json:"unit_price"`
}

// OrderItemRequest - normalized line item for upstream submission.
type OrderItemRequest struct {
	TicketTypeID string `json:"ticket_type_id"`
	Quantity     int    `json:"quantity"`
}

// CreateOrderRequest - payload for POST /orders. Built fresh per
// submission and never mutated afterwards.
type CreateOrderRequest struct {
	EventID string             `json:"event_id"`
	Items   []OrderItemRequest `json:"items"`
}

// OrderItem - line item of a remote order.
type OrderItem struct {
	ID           string `json:"id,omitempty"`
	TicketTypeID string `json:"ticket_type_id"`
	Quantity     int    `json:"quantity"`
	UnitPrice    int64  `json:"unit_price"`
	QRCode       string `json:"qr_code,omitempty"`
}

// Order - remote order as observed by the storefront. The copy is
// read-only and possibly stale; callers re-fetch rather than mutate.
type Order struct {
	ID          string      `json:"id"`
	Status      string      `json:"status"`
	Items       []OrderItem `json:"items"`
	TotalAmount int64       `json:"total_amount"`
}

// ListOrdersResponse - GET /orders/user response shape.
type ListOrdersResponse struct {
	Orders []Order `json:"orders"`
}

// InitiateMpesaRequest - payload for POST /payments/mpesa/initiate.
// Phone is in normalized 2547XXXXXXXX form, Amount in integer minor units.
type InitiateMpesaRequest struct {
	EventID string             `json:"event_id"`
	Phone   string             `json:"phone"`
	Tickets []OrderItemRequest `json:"tickets"`
	Amount  int64              `json:"amount"`
}

// PaymentRef - payment identifiers issued by the upstream gateway.
type PaymentRef struct {
	ID                string `json:"id"`
	CheckoutRequestID string `json:"checkout_request_id"`
}

// OrderRef - order identifier associated with a payment.
type OrderRef struct {
	ID string `json:"id"`
}

// InitiateMpesaResponse - response shape of payment initiation.
type InitiateMpesaResponse struct {
	Payment PaymentRef `json:"payment"`
	Order   OrderRef   `json:"order"`
}

// PaymentStatusResponse - GET /payments/{id} response shape.
type PaymentStatusResponse struct {
	Payment struct {
		Status string `json:"status"`
	} `json:"payment"`
}

// PaymentAttempt - client-side record of an in-flight mobile-money
// transaction. Held in memory only; mutated by its polling task and read
// by the UI, never the other way around.
type PaymentAttempt struct {
	PaymentID         string    `json:"payment_id"`
	OrderID           string    `json:"order_id,omitempty"`
	CheckoutRequestID string    `json:"checkout_request_id,omitempty"`
	EventID           string    `json:"event_id"`
	Amount            int64     `json:"amount"`
	Status            string    `json:"status"`
	Unconfirmed       bool      `json:"unconfirmed,omitempty"`
	StartedAt         time.Time `json:"started_at"`
}

// CheckoutRequest - storefront checkout payload. One entry point covers
// both modes instead of divergent per-form variants.
type CheckoutRequest struct {
	Mode  string     `json:"mode" binding:"required"`
	Items []CartItem `json:"items"`
	Phone string     `json:"phone,omitempty"`
}

// CheckoutResponse - result of a checkout call. Order is set for the free
// path, Attempt for the mobile-money path.
type CheckoutResponse struct {
	Order   *Order          `json:"order,omitempty"`
	Attempt *PaymentAttempt `json:"attempt,omitempty"`
}
