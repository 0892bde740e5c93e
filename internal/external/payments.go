package external

import (
	"context"
	"fmt"

	"eventgrid/internal/models"
)

// InitiateMpesa submits a mobile-money payment request for the cart. The
// gateway pushes an STK prompt to the phone and returns the payment and
// order identifiers to poll against.
func (c *Client) InitiateMpesa(ctx context.Context, token string, req *models.InitiateMpesaRequest) (*models.InitiateMpesaResponse, error) {
	var result models.InitiateMpesaResponse
	if err := c.do(ctx, "POST", "/payments/mpesa/initiate", token, req, &result); err != nil {
		return nil, err
	}

	if result.Payment.ID == "" {
		return nil, fmt.Errorf("%w: missing payment id", ErrMalformedResponse)
	}

	return &result, nil
}

// GetPaymentStatus fetches the current status of a payment.
func (c *Client) GetPaymentStatus(ctx context.Context, token, paymentID string) (string, error) {
	var result models.PaymentStatusResponse
	if err := c.do(ctx, "GET", "/payments/"+paymentID, token, nil, &result); err != nil {
		return "", err
	}

	if result.Payment.Status == "" {
		return "", fmt.Errorf("%w: missing payment status", ErrMalformedResponse)
	}

	return result.Payment.Status, nil
}
