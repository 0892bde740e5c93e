package checkout

import (
	"context"
	"log/slog"
	"time"

	"eventgrid/internal/logger"
	"eventgrid/internal/models"
)

// How long a settled attempt stays readable before its record is dropped.
const attemptRetention = 5 * time.Minute

// runPoller drives one payment attempt to a terminal state. The first
// status check fires immediately, then one per tick until the gateway
// reports success or failure, the ceiling elapses, or the task is
// cancelled. Individual request failures are retried on the next tick; a
// flaky poll must not abort an otherwise-successful payment.
func (s *Service) runPoller(ctx context.Context, h *attemptHandle) {
	defer s.wg.Done()

	attempt := h.snapshot()
	log := logger.WithFields("payment_id", attempt.PaymentID, "order_id", attempt.OrderID)
	deadline := attempt.StartedAt.Add(s.cfg.PollTimeout)

	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

loop:
	for {
		if s.pollOnce(ctx, h, deadline, log) {
			break loop
		}

		select {
		case <-ctx.Done():
			break loop
		case <-ticker.C:
			// Ticks that fire while a poll request is still outstanding
			// are dropped by the ticker, so slow responses never queue
			// additional in-flight requests.
		}
	}

	// Keep the settled attempt readable for the UI, then drop it.
	select {
	case <-ctx.Done():
	case <-time.After(attemptRetention):
	}
	s.removeAttempt(h)
}

// pollOnce issues a single status check. It reports true once the loop
// must stop: terminal status observed, ceiling elapsed, or cancellation.
func (s *Service) pollOnce(ctx context.Context, h *attemptHandle, deadline time.Time, log *slog.Logger) bool {
	if ctx.Err() != nil {
		return true
	}

	if time.Now().After(deadline) {
		// Client-declared timeout. The payment may still settle remotely,
		// so the result is reported as unconfirmed rather than failed.
		if h.finish(models.PaymentFailed, true) {
			log.Warn("Payment status polling timed out, result unconfirmed")
		}
		return true
	}

	token, ok := h.creds.Get()
	if !ok {
		// Credentials were cleared by teardown.
		return true
	}

	reqCtx, cancel := context.WithTimeout(ctx, s.cfg.PollInterval)
	status, err := s.client.GetPaymentStatus(reqCtx, token, h.snapshot().PaymentID)
	cancel()

	if ctx.Err() != nil {
		// Cancelled while the request was in flight; whatever arrived is
		// stale and must not touch the attempt.
		return true
	}

	if err != nil {
		log.Debug("Payment status check failed, will retry", "error", err)
		return false
	}

	switch status {
	case models.PaymentSuccess:
		if h.finish(models.PaymentSuccess, false) {
			log.Info("Payment confirmed")
		}
		return true
	case models.PaymentFailed:
		if h.finish(models.PaymentFailed, false) {
			log.Info("Payment failed")
		}
		return true
	default:
		return false
	}
}
