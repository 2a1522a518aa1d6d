package search

import "errors"

// Sentinel error kinds for this package.
var (
	ErrNilPlayer = errors.New("weak player is nil")
)
