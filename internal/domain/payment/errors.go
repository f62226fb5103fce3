package payment

import "errors"

var (
	ErrMalformedPayload = errors.New("malformed callback payload")
	ErrUnknownOutcome   = errors.New("unknown callback outcome")
	ErrMissingPaymentID = errors.New("success callback without payment id")
	ErrBadSignature     = errors.New("callback signature mismatch")
)
