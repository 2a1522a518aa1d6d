// Package repository holds the league ranking.
package repository

import (
	"context"

	"github.com/okian/rinkscout/internal/domain/types"
)

// Entry is a ranking row.
type Entry = types.Entry

// Store provides read/write access to the ranking state. Order is impact z
// descending, then player ID ascending; ranks are 1-based positions in that order.
type Store interface {
	// Upsert inserts e or replaces the player's previous entry.
	Upsert(ctx context.Context, e Entry) error

	// Replace swaps the whole ranking for entries. Later duplicates of a player ID win.
	Replace(ctx context.Context, entries []Entry) error

	// Rank returns the ranked entry of a player, or ErrNotFound.
	Rank(ctx context.Context, playerID string) (Entry, error)

	// TopN returns the best n entries in rank order.
	TopN(ctx context.Context, n int) ([]Entry, error)

	// Count returns the number of ranked players.
	Count(ctx context.Context) int
}
