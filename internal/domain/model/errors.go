package model

import "errors"

// Sentinel errors for structurally invalid inputs.
var (
	ErrUnknownPosition = errors.New("player has no identifiable position")
	ErrUnknownRole     = errors.New("unknown role")
	ErrUnknownMode     = errors.New("unknown search mode")
	ErrNilPlayer       = errors.New("player is nil")
)
