package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/studiora/studiora-api/internal/domain/booking"
)

// Workflow is the slice of the booking service the callback adapter drives
type Workflow interface {
	ConfirmPayment(ctx context.Context, bookingID uuid.UUID, paymentID string) (*booking.Booking, error)
	Abandon(ctx context.Context, bookingID uuid.UUID) error
}

// Service translates checkout callbacks into booking transitions.
type Service struct {
	workflow Workflow
	secret   string
}

func NewService(workflow Workflow, webhookSecret string) *Service {
	return &Service{
		workflow: workflow,
		secret:   webhookSecret,
	}
}

// VerifySignature checks the hex-encoded HMAC-SHA256 of the raw body.
// Verification is skipped when no secret is configured.
func (s *Service) VerifySignature(body []byte, signature string) error {
	if s.secret == "" {
		return nil
	}
	mac := hmac.New(sha256.New, []byte(s.secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrBadSignature
	}
	return nil
}

// Apply routes a validated outcome to the matching booking transition.
// Success confirms the booking; failure and user-dismissed both release
// the held slot.
func (s *Service) Apply(ctx context.Context, outcome *Outcome) error {
	switch outcome.Kind {
	case OutcomeSuccess:
		b, err := s.workflow.ConfirmPayment(ctx, outcome.BookingID, outcome.PaymentID)
		if err != nil {
			return err
		}
		log.Info().
			Str("booking_id", b.ID.String()).
			Str("payment_id", outcome.PaymentID).
			Msg("booking confirmed by checkout callback")
		return nil
	case OutcomeFailure, OutcomeDismissed:
		if err := s.workflow.Abandon(ctx, outcome.BookingID); err != nil {
			return err
		}
		log.Info().
			Str("booking_id", outcome.BookingID.String()).
			Str("outcome", string(outcome.Kind)).
			Msg("booking released by checkout callback")
		return nil
	default:
		return ErrUnknownOutcome
	}
}
