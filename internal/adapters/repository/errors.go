package repository

import "errors"

// Sentinel kinds for ranking errors.
var (
	ErrNotFound     = errors.New("player not ranked")
	ErrInvalidLimit = errors.New("invalid ranking limit")
	ErrMissingID    = errors.New("ranking entry has no player id")
)
