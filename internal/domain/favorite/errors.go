package favorite

import "errors"

var (
	ErrAlreadyFavorited = errors.New("studio already in favorites")
	ErrNotFound         = errors.New("favorite not found")
)
