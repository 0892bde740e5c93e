package external

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventgrid/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL, Timeout: 5 * time.Second})
}

func TestDoSendsBearerToken(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"orders":[]}`))
	})

	_, err := client.ListUserOrders(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", gotAuth)
}

func TestDoStatusErrorParsesMessageField(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Event not found"}`))
	})

	_, err := client.CreateOrder(context.Background(), "tok", &models.CreateOrderRequest{EventID: "e1"})
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.Equal(t, "Event not found", se.Message)
}

func TestDoStatusErrorParsesErrorField(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"bad payload"}`))
	})

	_, err := client.CreateOrder(context.Background(), "tok", &models.CreateOrderRequest{EventID: "e1"})

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "bad payload", se.Message)
}

func TestDoStatusErrorWithoutBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.CreateOrder(context.Background(), "tok", &models.CreateOrderRequest{EventID: "e1"})

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	assert.Empty(t, se.Message)
}

func TestDoMalformedSuccessBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	})

	_, err := client.ListUserOrders(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestInitiateMpesaRequiresPaymentID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"payment":{},"order":{}}`))
	})

	_, err := client.InitiateMpesa(context.Background(), "tok", &models.InitiateMpesaRequest{EventID: "e1"})
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestGetPaymentStatusRequiresStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"payment":{}}`))
	})

	_, err := client.GetPaymentStatus(context.Background(), "tok", "p1")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestGetPaymentStatus(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"payment":{"status":"success"}}`))
	})

	status, err := client.GetPaymentStatus(context.Background(), "tok", "p1")
	require.NoError(t, err)
	assert.Equal(t, "success", status)
	assert.Equal(t, "/payments/p1", gotPath)
}

func TestDoRawForwardsBodyVerbatim(t *testing.T) {
	body := `{"events":[{"id":"e1","title":"Nairobi Jazz Night"}],"page":1}`
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/events", r.URL.Path)
		assert.Equal(t, "q=jazz", r.URL.RawQuery)
		w.Write([]byte(body))
	})

	payload, err := client.ListEvents(context.Background(), "tok", "q=jazz")
	require.NoError(t, err)
	assert.JSONEq(t, body, string(payload))
}
