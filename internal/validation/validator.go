package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"eventgrid/internal/models"
)

// SmokeValidator checks a running storefront instance. Only surfaces that
// don't require a reachable upstream are exercised: health, auth
// enforcement and the fail-fast checkout validation rules.
type SmokeValidator struct {
	baseURL    string
	httpClient *http.Client
}

func NewSmokeValidator(baseURL string) *SmokeValidator {
	return &SmokeValidator{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// RunValidation runs the smoke checks against STOREFRONT_URL (or the
// local default) and exits non-zero on failure.
func RunValidation() {
	baseURL := os.Getenv("STOREFRONT_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	log.Printf("Running storefront smoke checks against: %s", baseURL)

	v := NewSmokeValidator(baseURL)
	if err := v.ValidateAll(); err != nil {
		log.Fatalf("Smoke checks failed: %v", err)
	}

	log.Println("All smoke checks passed")
}

// ValidateAll runs every smoke check.
func (v *SmokeValidator) ValidateAll() error {
	if err := v.validateHealth(); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	if err := v.validateAuth(); err != nil {
		return fmt.Errorf("auth validation failed: %w", err)
	}

	if err := v.validateCheckoutRules(); err != nil {
		return fmt.Errorf("checkout validation failed: %w", err)
	}

	return nil
}

func (v *SmokeValidator) validateHealth() error {
	resp, err := v.httpClient.Get(v.baseURL + "/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET /health: expected 200, got %d", resp.StatusCode)
	}

	return nil
}

func (v *SmokeValidator) validateAuth() error {
	// No bearer token: every /api route must reject
	resp, err := v.httpClient.Get(v.baseURL + "/api/orders/user")
	if err != nil {
		return err
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		return fmt.Errorf("GET /api/orders/user without token: expected 401, got %d", resp.StatusCode)
	}

	return nil
}

func (v *SmokeValidator) validateCheckoutRules() error {
	cases := []struct {
		name string
		req  models.CheckoutRequest
	}{
		{
			name: "empty cart",
			req:  models.CheckoutRequest{Mode: models.ModeFree},
		},
		{
			name: "mixed events",
			req: models.CheckoutRequest{
				Mode: models.ModeFree,
				Items: []models.CartItem{
					{TicketTypeID: "t1", EventID: "e1", Quantity: 1},
					{TicketTypeID: "t2", EventID: "e2", Quantity: 1},
				},
			},
		},
		{
			name: "invalid phone",
			req: models.CheckoutRequest{
				Mode:  models.ModeMobileMoney,
				Phone: "12345",
				Items: []models.CartItem{
					{TicketTypeID: "t1", EventID: "e1", Quantity: 1, UnitPrice: 500},
				},
			},
		},
		{
			name: "unknown mode",
			req:  models.CheckoutRequest{Mode: "card"},
		},
	}

	for _, tc := range cases {
		status, err := v.postCheckout(tc.req)
		if err != nil {
			return fmt.Errorf("%s: %w", tc.name, err)
		}
		if status != http.StatusBadRequest {
			return fmt.Errorf("%s: expected 400, got %d", tc.name, status)
		}
	}

	return nil
}

func (v *SmokeValidator) postCheckout(req models.CheckoutRequest) (int, error) {
	jsonBody, err := json.Marshal(req)
	if err != nil {
		return 0, err
	}

	httpReq, err := http.NewRequest("POST", v.baseURL+"/api/checkout", bytes.NewBuffer(jsonBody))
	if err != nil {
		return 0, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer smoke-check-token")

	resp, err := v.httpClient.Do(httpReq)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	return resp.StatusCode, nil
}
