package booking

import "errors"

var (
	// Reserve failures
	ErrUnauthenticated         = errors.New("authentication required")
	ErrSlotConflict            = errors.New("slot is already booked")
	ErrAvailabilityCheckFailed = errors.New("could not verify slot availability")
	ErrPersistenceFailed       = errors.New("could not save booking")
	ErrStudioNotFound          = errors.New("studio not found")
	ErrStudioInactive          = errors.New("studio is not accepting bookings")
	ErrInvalidStartTime        = errors.New("invalid start time, expected HH:00")

	// Transition failures
	ErrNotFound         = errors.New("booking not found")
	ErrAlreadyConfirmed = errors.New("booking is already confirmed and paid")
)
