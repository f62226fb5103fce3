package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/studiora/studiora-api/internal/domain/booking"
)

type fakeWorkflow struct {
	confirmed map[uuid.UUID]string
	abandoned map[uuid.UUID]bool

	confirmErr error
	abandonErr error
}

func newFakeWorkflow() *fakeWorkflow {
	return &fakeWorkflow{
		confirmed: make(map[uuid.UUID]string),
		abandoned: make(map[uuid.UUID]bool),
	}
}

func (f *fakeWorkflow) ConfirmPayment(ctx context.Context, bookingID uuid.UUID, paymentID string) (*booking.Booking, error) {
	if f.confirmErr != nil {
		return nil, f.confirmErr
	}
	f.confirmed[bookingID] = paymentID
	return &booking.Booking{ID: bookingID, Status: booking.StatusConfirmed}, nil
}

func (f *fakeWorkflow) Abandon(ctx context.Context, bookingID uuid.UUID) error {
	if f.abandonErr != nil {
		return f.abandonErr
	}
	f.abandoned[bookingID] = true
	return nil
}

func postCallback(t *testing.T, h *Handler, body, signature string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/checkout/result", strings.NewReader(body))
	if signature != "" {
		req.Header.Set("X-Checkout-Signature", signature)
	}
	rec := httptest.NewRecorder()
	h.Callback(rec, req)
	return rec
}

func TestCallbackSuccessConfirmsBooking(t *testing.T) {
	wf := newFakeWorkflow()
	h := NewHandler(NewService(wf, ""))

	bookingID := uuid.New()
	body := fmt.Sprintf(`{"outcome":"success","booking_id":"%s","payment_id":"pay_123"}`, bookingID)

	rec := postCallback(t, h, body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rec.Code, rec.Body.String())
	}
	if wf.confirmed[bookingID] != "pay_123" {
		t.Fatalf("booking not confirmed with pay_123: %v", wf.confirmed)
	}
}

func TestCallbackFailureReleasesBooking(t *testing.T) {
	for _, outcome := range []string{"failure", "user-dismissed"} {
		wf := newFakeWorkflow()
		h := NewHandler(NewService(wf, ""))

		bookingID := uuid.New()
		body := fmt.Sprintf(`{"outcome":"%s","booking_id":"%s"}`, outcome, bookingID)

		rec := postCallback(t, h, body, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status = %d, want 200", outcome, rec.Code)
		}
		if !wf.abandoned[bookingID] {
			t.Fatalf("%s: booking was not released", outcome)
		}
		if len(wf.confirmed) != 0 {
			t.Fatalf("%s: booking was confirmed instead of released", outcome)
		}
	}
}

func TestCallbackRejectsMalformedPayload(t *testing.T) {
	wf := newFakeWorkflow()
	h := NewHandler(NewService(wf, ""))

	cases := []string{
		`not json`,
		fmt.Sprintf(`{"outcome":"refunded","booking_id":"%s"}`, uuid.New()),
		fmt.Sprintf(`{"outcome":"success","booking_id":"%s"}`, uuid.New()),
	}
	for _, body := range cases {
		rec := postCallback(t, h, body, "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %q: status = %d, want 400", body, rec.Code)
		}
	}
	if len(wf.confirmed) != 0 || len(wf.abandoned) != 0 {
		t.Fatalf("workflow was invoked for a rejected payload")
	}
}

func TestCallbackSignatureVerification(t *testing.T) {
	wf := newFakeWorkflow()
	h := NewHandler(NewService(wf, "topsecret"))

	bookingID := uuid.New()
	body := fmt.Sprintf(`{"outcome":"success","booking_id":"%s","payment_id":"pay_1"}`, bookingID)

	mac := hmac.New(sha256.New, []byte("topsecret"))
	mac.Write([]byte(body))
	good := hex.EncodeToString(mac.Sum(nil))

	if rec := postCallback(t, h, body, good); rec.Code != http.StatusOK {
		t.Fatalf("valid signature: status = %d, want 200", rec.Code)
	}
	if rec := postCallback(t, h, body, "deadbeef"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad signature: status = %d, want 401", rec.Code)
	}
	if rec := postCallback(t, h, body, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing signature: status = %d, want 401", rec.Code)
	}
}

func TestCallbackUnknownBooking(t *testing.T) {
	wf := newFakeWorkflow()
	wf.confirmErr = booking.ErrNotFound
	h := NewHandler(NewService(wf, ""))

	body := fmt.Sprintf(`{"outcome":"success","booking_id":"%s","payment_id":"pay_1"}`, uuid.New())
	if rec := postCallback(t, h, body, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestCallbackAbandonOnConfirmedBooking(t *testing.T) {
	wf := newFakeWorkflow()
	wf.abandonErr = booking.ErrAlreadyConfirmed
	h := NewHandler(NewService(wf, ""))

	body := fmt.Sprintf(`{"outcome":"failure","booking_id":"%s"}`, uuid.New())
	if rec := postCallback(t, h, body, ""); rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}
