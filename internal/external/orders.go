package external

import (
	"context"
	"encoding/json"
	"fmt"

	"eventgrid/internal/models"
)

// CreateOrder submits an order to POST /orders. The upstream service owns
// inventory decrement and price validation; the response is its view of
// the created order.
func (c *Client) CreateOrder(ctx context.Context, token string, req *models.CreateOrderRequest) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, "POST", "/orders", token, req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrder fetches a single order and forwards the body verbatim.
func (c *Client) GetOrder(ctx context.Context, token, orderID string) (json.RawMessage, error) {
	return c.doRaw(ctx, "GET", "/orders/"+orderID, token, nil)
}

// ListUserOrders fetches the caller's order history.
func (c *Client) ListUserOrders(ctx context.Context, token string) (*models.ListOrdersResponse, error) {
	var result models.ListOrdersResponse
	if err := c.do(ctx, "GET", "/orders/user", token, nil, &result); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return &result, nil
}
