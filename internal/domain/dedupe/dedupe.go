// Package dedupe drops repeated player records so each player is evaluated once per batch.
package dedupe

import (
	"container/list"
	"context"
	"sync"

	"github.com/okian/rinkscout/internal/domain/model"
)

// DefaultMaxSize is the default number of IDs remembered.
const DefaultMaxSize = 50_000

// Deduper records seen player IDs.
type Deduper interface {
	// SeenAndRecord atomically checks if id was seen and records it if not.
	// Returns true if id was already seen.
	SeenAndRecord(ctx context.Context, id string) bool

	Size() int64
}

// inMemoryDeduper remembers IDs in insertion order. When bounded it evicts the
// oldest ID once full; with maxSize <= 0 it never evicts.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]*list.Element
	order   *list.List
	maxSize int
}

// NewInMemoryDeduper creates a new in-memory deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{maxSize: DefaultMaxSize}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]*list.Element)
	d.order = list.New()
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.seen[id]; ok {
		return true
	}
	if d.maxSize > 0 && d.order.Len() >= d.maxSize {
		oldest := d.order.Front()
		d.order.Remove(oldest)
		delete(d.seen, oldest.Value.(string))
	}
	d.seen[id] = d.order.PushBack(id)
	return false
}

func (d *inMemoryDeduper) Size() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return int64(d.order.Len())
}

// Unique returns the first record of every player ID in input order, plus the
// IDs of the dropped repeats. Records with an empty ID are always kept.
func Unique(ctx context.Context, d Deduper, players []model.PlayerProfile) ([]model.PlayerProfile, []string) {
	out := make([]model.PlayerProfile, 0, len(players))
	var dropped []string
	for i := range players {
		id := players[i].ID
		if id != "" && d.SeenAndRecord(ctx, id) {
			dropped = append(dropped, id)
			continue
		}
		out = append(out, players[i])
	}
	return out, dropped
}
