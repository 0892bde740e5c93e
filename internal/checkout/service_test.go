package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"eventgrid/internal/external"
	"eventgrid/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClientFor(baseURL string) *external.Client {
	return external.NewClient(external.Config{BaseURL: baseURL, Timeout: 5 * time.Second})
}

func newTestService(t *testing.T, handler http.Handler, cfg Config) *Service {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc := NewService(newClientFor(srv.URL), cfg)
	t.Cleanup(svc.Close)

	return svc
}

func singleEventCart() []models.CartItem {
	return []models.CartItem{
		{TicketTypeID: "T1", EventID: "E1", Quantity: 1, UnitPrice: 0},
	}
}

func TestSubmitOrderPostsExactlyOnce(t *testing.T) {
	var requests int64
	var gotBody models.CreateOrderRequest

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&requests, 1)
		require.Equal(t, "POST", r.Method)
		require.Equal(t, "/orders", r.URL.Path)
		require.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.Order{ID: "o1", Status: "pending"})
	})

	svc := newTestService(t, handler, Config{})

	order, err := svc.SubmitOrder(context.Background(), "tok-1", singleEventCart())
	require.NoError(t, err)

	assert.Equal(t, "o1", order.ID)
	assert.Contains(t, []string{"pending", "paid"}, order.Status)
	assert.Equal(t, int64(1), atomic.LoadInt64(&requests))
	assert.Equal(t, "E1", gotBody.EventID)
	require.Len(t, gotBody.Items, 1)
	assert.Equal(t, models.OrderItemRequest{TicketTypeID: "T1", Quantity: 1}, gotBody.Items[0])
}

func TestSubmitOrderNormalizesQuantities(t *testing.T) {
	var gotBody models.CreateOrderRequest

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.Order{ID: "o1", Status: "pending"})
	})

	svc := newTestService(t, handler, Config{})

	cart := []models.CartItem{
		{TicketTypeID: "T1", EventID: "E1", Quantity: 0},
		{TicketTypeID: "T2", EventID: "E1", Quantity: 2.5},
		{TicketTypeID: "T3", EventID: "E1", Quantity: -1},
	}

	_, err := svc.SubmitOrder(context.Background(), "tok", cart)
	require.NoError(t, err)

	require.Len(t, gotBody.Items, len(cart))
	assert.Equal(t, 1, gotBody.Items[0].Quantity)
	assert.Equal(t, 2, gotBody.Items[1].Quantity)
	assert.Equal(t, 1, gotBody.Items[2].Quantity)
}

func TestSubmitOrderInvalidCartNoNetworkCall(t *testing.T) {
	var requests int64
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&requests, 1)
	})

	svc := newTestService(t, handler, Config{})

	_, err := svc.SubmitOrder(context.Background(), "tok", nil)
	assert.ErrorIs(t, err, ErrEmptyCart)

	mixed := []models.CartItem{
		{TicketTypeID: "T1", EventID: "E1", Quantity: 1},
		{TicketTypeID: "T2", EventID: "E2", Quantity: 1},
	}
	_, err = svc.SubmitOrder(context.Background(), "tok", mixed)
	assert.ErrorIs(t, err, ErrMixedEvents)

	assert.Equal(t, int64(0), atomic.LoadInt64(&requests))
}

func TestSubmitOrderErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		check   func(t *testing.T, err error)
	}{
		{
			name: "4xx with structured message",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"message":"Insufficient availability for VIP"}`))
			},
			check: func(t *testing.T, err error) {
				var rejected *RejectedError
				require.True(t, errors.As(err, &rejected))
				assert.Equal(t, http.StatusBadRequest, rejected.StatusCode)
				assert.Equal(t, "Insufficient availability for VIP", rejected.Message)
			},
		},
		{
			name: "5xx",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrServiceUnavailable)
			},
		},
		{
			name: "2xx without order id",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusCreated)
				w.Write([]byte(`{"status":"pending"}`))
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrMalformedResponse)
			},
		},
		{
			name: "2xx with unparseable body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusCreated)
				w.Write([]byte(`not json`))
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrMalformedResponse)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, tt.handler, Config{})
			_, err := svc.SubmitOrder(context.Background(), "tok", singleEventCart())
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestSubmitOrderTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := external.NewClient(external.Config{BaseURL: srv.URL, Timeout: time.Second})
	srv.Close() // no server listening anymore

	svc := NewService(client, Config{})
	defer svc.Close()

	_, err := svc.SubmitOrder(context.Background(), "tok", singleEventCart())
	require.Error(t, err)

	var transport *TransportError
	assert.True(t, errors.As(err, &transport))
}

func TestInitiatePaymentInvalidPhoneNoNetworkCall(t *testing.T) {
	var requests int64
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&requests, 1)
	})

	svc := newTestService(t, handler, Config{})

	cart := []models.CartItem{{TicketTypeID: "T1", EventID: "E1", Quantity: 1, UnitPrice: 500}}
	_, err := svc.InitiatePayment(context.Background(), "tok", "12345", cart)

	assert.ErrorIs(t, err, ErrInvalidPhone)
	assert.Equal(t, int64(0), atomic.LoadInt64(&requests))
}

func TestInitiatePaymentSendsTotalAndNormalizedPhone(t *testing.T) {
	var gotBody models.InitiateMpesaRequest

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/payments/mpesa/initiate":
			json.NewDecoder(r.Body).Decode(&gotBody)
			json.NewEncoder(w).Encode(models.InitiateMpesaResponse{
				Payment: models.PaymentRef{ID: "p1", CheckoutRequestID: "ws_CO_1"},
				Order:   models.OrderRef{ID: "o1"},
			})
		default:
			json.NewEncoder(w).Encode(map[string]any{"payment": map[string]string{"status": "pending"}})
		}
	})

	svc := newTestService(t, handler, Config{PollInterval: 10 * time.Millisecond, PollTimeout: time.Second})

	cart := []models.CartItem{
		{TicketTypeID: "A", EventID: "E1", Quantity: 2, UnitPrice: 500},
		{TicketTypeID: "B", EventID: "E1", Quantity: 1, UnitPrice: 250},
	}

	attempt, err := svc.InitiatePayment(context.Background(), "tok", "0712345678", cart)
	require.NoError(t, err)

	assert.Equal(t, "p1", attempt.PaymentID)
	assert.Equal(t, "o1", attempt.OrderID)
	assert.Equal(t, "ws_CO_1", attempt.CheckoutRequestID)
	assert.Equal(t, models.PaymentPending, attempt.Status)
	assert.Equal(t, int64(1250), attempt.Amount)

	assert.Equal(t, "E1", gotBody.EventID)
	assert.Equal(t, "254712345678", gotBody.Phone)
	assert.Equal(t, int64(1250), gotBody.Amount)
	require.Len(t, gotBody.Tickets, 2)
}
