package payment

import (
	"encoding/json"

	"github.com/google/uuid"
)

// OutcomeKind enumerates the three signals the hosted checkout widget can
// send back. The set is closed: anything else is rejected.
type OutcomeKind string

const (
	OutcomeSuccess   OutcomeKind = "success"
	OutcomeFailure   OutcomeKind = "failure"
	OutcomeDismissed OutcomeKind = "user-dismissed"
)

// Outcome is the parsed, validated payment callback
type Outcome struct {
	Kind      OutcomeKind
	BookingID uuid.UUID
	// PaymentID is the processor-assigned transaction id.
	// Present only for success outcomes.
	PaymentID string
}

// rawOutcome mirrors the wire payload before validation
type rawOutcome struct {
	Outcome   string `json:"outcome"`
	BookingID string `json:"booking_id"`
	PaymentID string `json:"payment_id"`
}

// ParseOutcome decodes and validates a callback payload. Malformed payloads,
// unknown outcomes, missing booking ids and success signals without a
// transaction id are all rejected.
func ParseOutcome(body []byte) (*Outcome, error) {
	var raw rawOutcome
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, ErrMalformedPayload
	}

	kind := OutcomeKind(raw.Outcome)
	switch kind {
	case OutcomeSuccess, OutcomeFailure, OutcomeDismissed:
	default:
		return nil, ErrUnknownOutcome
	}

	bookingID, err := uuid.Parse(raw.BookingID)
	if err != nil || bookingID == uuid.Nil {
		return nil, ErrMalformedPayload
	}

	if kind == OutcomeSuccess && raw.PaymentID == "" {
		return nil, ErrMissingPaymentID
	}

	return &Outcome{
		Kind:      kind,
		BookingID: bookingID,
		PaymentID: raw.PaymentID,
	}, nil
}
