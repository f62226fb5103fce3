package studio

import "errors"

var (
	ErrNotFound      = errors.New("studio not found")
	ErrNotOwner      = errors.New("user does not own this studio")
	ErrInactive      = errors.New("studio is not active")
	ErrPhotoNotFound = errors.New("photo not found")
	ErrInvalidImage  = errors.New("invalid image file")
)
