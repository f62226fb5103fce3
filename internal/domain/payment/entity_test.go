package payment

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
)

func TestParseOutcomeSuccess(t *testing.T) {
	bookingID := uuid.New()
	body := fmt.Sprintf(`{"outcome":"success","booking_id":"%s","payment_id":"pay_123"}`, bookingID)

	got, err := ParseOutcome([]byte(body))
	if err != nil {
		t.Fatalf("ParseOutcome returned error: %v", err)
	}
	if got.Kind != OutcomeSuccess {
		t.Fatalf("kind = %s, want success", got.Kind)
	}
	if got.BookingID != bookingID {
		t.Fatalf("booking id = %s, want %s", got.BookingID, bookingID)
	}
	if got.PaymentID != "pay_123" {
		t.Fatalf("payment id = %q, want pay_123", got.PaymentID)
	}
}

func TestParseOutcomeFailureAndDismissed(t *testing.T) {
	for _, kind := range []OutcomeKind{OutcomeFailure, OutcomeDismissed} {
		body := fmt.Sprintf(`{"outcome":"%s","booking_id":"%s"}`, kind, uuid.New())
		got, err := ParseOutcome([]byte(body))
		if err != nil {
			t.Fatalf("ParseOutcome(%s) returned error: %v", kind, err)
		}
		if got.Kind != kind {
			t.Fatalf("kind = %s, want %s", got.Kind, kind)
		}
	}
}

func TestParseOutcomeRejectsUnknownKind(t *testing.T) {
	body := fmt.Sprintf(`{"outcome":"refunded","booking_id":"%s"}`, uuid.New())
	if _, err := ParseOutcome([]byte(body)); !errors.Is(err, ErrUnknownOutcome) {
		t.Fatalf("error = %v, want ErrUnknownOutcome", err)
	}
}

func TestParseOutcomeRejectsSuccessWithoutPaymentID(t *testing.T) {
	body := fmt.Sprintf(`{"outcome":"success","booking_id":"%s"}`, uuid.New())
	if _, err := ParseOutcome([]byte(body)); !errors.Is(err, ErrMissingPaymentID) {
		t.Fatalf("error = %v, want ErrMissingPaymentID", err)
	}
}

func TestParseOutcomeRejectsMalformedPayloads(t *testing.T) {
	cases := []string{
		`not json`,
		`{}`,
		`{"outcome":"success"}`,
		`{"outcome":"failure","booking_id":"not-a-uuid"}`,
		fmt.Sprintf(`{"outcome":"failure","booking_id":"%s"}`, uuid.Nil),
	}
	for _, body := range cases {
		_, err := ParseOutcome([]byte(body))
		if err == nil {
			t.Fatalf("ParseOutcome(%q) accepted a malformed payload", body)
		}
	}
}
