package benchmark

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrMissingRole = errors.New("benchmark table has no entry for role")
	ErrNilTable    = errors.New("benchmark table is nil")
	ErrEmptyLeague = errors.New("no players to build benchmarks from")
)
