package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"eventgrid/internal/auth"
	"eventgrid/internal/external"
	"eventgrid/internal/logger"
	"eventgrid/internal/models"
)

type Config struct {
	PollInterval time.Duration
	PollTimeout  time.Duration
}

// Service owns the cart-to-order workflow: order submission for the free
// path, payment initiation plus status polling for the mobile-money path.
// Polling runs as cancellable tasks tracked in an in-memory registry; the
// service holds no other state.
type Service struct {
	client *external.Client
	cfg    Config

	mu       sync.Mutex
	attempts map[string]*attemptHandle

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// attemptHandle pairs a PaymentAttempt with the machinery of its polling
// task. Only the task mutates the attempt; everyone else gets snapshots.
type attemptHandle struct {
	mu      sync.Mutex
	attempt models.PaymentAttempt
	creds   auth.Provider
	cancel  context.CancelFunc
}

func (h *attemptHandle) snapshot() models.PaymentAttempt {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.attempt
}

func (h *attemptHandle) terminal() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.attempt.Status != models.PaymentPending
}

// finish moves the attempt into a terminal state. It reports false when
// the attempt already was terminal, so late-arriving observations for a
// settled attempt are discarded instead of applied.
func (h *attemptHandle) finish(status string, unconfirmed bool) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.attempt.Status != models.PaymentPending {
		return false
	}
	h.attempt.Status = status
	h.attempt.Unconfirmed = unconfirmed
	return true
}

func NewService(client *external.Client, cfg Config) *Service {
	if cfg.PollInterval == 0 {
		cfg.PollInterval = 3 * time.Second
	}
	if cfg.PollTimeout == 0 {
		cfg.PollTimeout = 120 * time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		client:   client,
		cfg:      cfg,
		attempts: make(map[string]*attemptHandle),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// SubmitOrder validates the cart and issues exactly one order creation
// request. It holds no de-duplication state; preventing duplicate
// concurrent submissions is the caller's job.
func (s *Service) SubmitOrder(ctx context.Context, token string, cart []models.CartItem) (*models.Order, error) {
	if err := ValidateCart(cart); err != nil {
		return nil, err
	}

	req := &models.CreateOrderRequest{
		EventID: CartEventID(cart),
		Items:   NormalizeItems(cart),
	}

	order, err := s.client.CreateOrder(ctx, token, req)
	if err != nil {
		return nil, mapUpstreamError(err)
	}

	if order.ID == "" {
		return nil, fmt.Errorf("%w: missing order id", ErrMalformedResponse)
	}

	return order, nil
}

// InitiatePayment validates the cart and phone, submits one payment
// initiation request and starts a polling task for the returned payment
// id. A new initiation for the same event supersedes and cancels any
// polling task still running for it.
func (s *Service) InitiatePayment(ctx context.Context, token, phone string, cart []models.CartItem) (*models.PaymentAttempt, error) {
	if err := ValidateCart(cart); err != nil {
		return nil, err
	}

	normalized, err := NormalizePhone(phone)
	if err != nil {
		return nil, err
	}

	eventID := CartEventID(cart)
	total := ComputeTotal(cart)

	req := &models.InitiateMpesaRequest{
		EventID: eventID,
		Phone:   normalized,
		Tickets: NormalizeItems(cart),
		Amount:  total,
	}

	resp, err := s.client.InitiateMpesa(ctx, token, req)
	if err != nil {
		return nil, mapUpstreamError(err)
	}

	attempt := models.PaymentAttempt{
		PaymentID:         resp.Payment.ID,
		OrderID:           resp.Order.ID,
		CheckoutRequestID: resp.Payment.CheckoutRequestID,
		EventID:           eventID,
		Amount:            total,
		Status:            models.PaymentPending,
		StartedAt:         time.Now(),
	}

	snapshot := s.startPolling(attempt, token)
	return &snapshot, nil
}

// startPolling registers the attempt and launches its polling task. The
// task derives from the service context, not the initiating request, so
// polling outlives the HTTP call that started it.
func (s *Service) startPolling(attempt models.PaymentAttempt, token string) models.PaymentAttempt {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Supersede any loop still polling for the same event.
	for id, h := range s.attempts {
		if h.snapshot().EventID == attempt.EventID && !h.terminal() {
			h.cancel()
			h.creds.Clear()
			delete(s.attempts, id)
			logger.WithFields("payment_id", id, "event_id", attempt.EventID).
				Info("Superseded pending payment attempt")
		}
	}

	ctx, cancel := context.WithCancel(s.ctx)
	h := &attemptHandle{
		attempt: attempt,
		creds:   auth.NewMemoryProvider(token),
		cancel:  cancel,
	}
	s.attempts[attempt.PaymentID] = h

	s.wg.Add(1)
	go s.runPoller(ctx, h)

	return h.snapshot()
}

// Attempt returns a read-only snapshot of a registered payment attempt.
func (s *Service) Attempt(paymentID string) (models.PaymentAttempt, bool) {
	s.mu.Lock()
	h, ok := s.attempts[paymentID]
	s.mu.Unlock()
	if !ok {
		return models.PaymentAttempt{}, false
	}
	return h.snapshot(), true
}

// CancelAttempt tears a workflow down: the pending timer is cancelled
// synchronously and any in-flight poll result is ignored on arrival.
func (s *Service) CancelAttempt(paymentID string) bool {
	s.mu.Lock()
	h, ok := s.attempts[paymentID]
	if ok {
		delete(s.attempts, paymentID)
	}
	s.mu.Unlock()
	if !ok {
		return false
	}

	h.cancel()
	h.creds.Clear()
	return true
}

// removeAttempt drops a handle from the registry unless the payment id
// has been re-registered by a newer attempt.
func (s *Service) removeAttempt(h *attemptHandle) {
	id := h.snapshot().PaymentID

	s.mu.Lock()
	defer s.mu.Unlock()
	if current, ok := s.attempts[id]; ok && current == h {
		delete(s.attempts, id)
	}
}

// Close cancels every live polling task and waits for them to stop.
func (s *Service) Close() {
	s.cancel()
	s.wg.Wait()
}
