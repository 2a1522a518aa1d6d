package repository

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"

	"github.com/okian/rinkscout/pkg/metrics"
)

// Treap-based, in-memory Store implementation.
//
// The BST comparator puts better entries first, so in-order traversal yields
// the ranking. Every node carries its subtree size, which makes Rank an
// order-statistic walk instead of a scan.

// zScale converts impact z to fixed point so equal scores compare exactly.
const zScale = 1e9

type scoreFP int64

func toFixedPoint(z float64) scoreFP {
	switch {
	case math.IsNaN(z):
		return 0
	case z*zScale >= math.MaxInt64:
		return scoreFP(math.MaxInt64)
	case z*zScale <= math.MinInt64:
		return scoreFP(math.MinInt64)
	}
	return scoreFP(math.Round(z * zScale))
}

type node struct {
	entry Entry
	score scoreFP
	prio  uint64
	left  *node
	right *node
	size  int
}

func nsize(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

func fix(n *node) {
	if n != nil {
		n.size = 1 + nsize(n.left) + nsize(n.right)
	}
}

// before reports whether (aScore, aID) ranks ahead of (bScore, bID).
func before(aScore scoreFP, aID string, bScore scoreFP, bID string) bool {
	if aScore != bScore {
		return aScore > bScore
	}
	return aID < bID
}

func rotateRight(y *node) *node {
	x := y.left
	y.left = x.right
	x.right = y
	fix(y)
	fix(x)
	return x
}

func rotateLeft(x *node) *node {
	y := x.right
	x.right = y.left
	y.left = x
	fix(x)
	fix(y)
	return y
}

func insert(n, nn *node) *node {
	if n == nil {
		return nn
	}
	if before(nn.score, nn.entry.PlayerID, n.score, n.entry.PlayerID) {
		n.left = insert(n.left, nn)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, nn)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	fix(n)
	return n
}

func remove(n *node, id string, score scoreFP) *node {
	if n == nil {
		return nil
	}
	switch {
	case score == n.score && id == n.entry.PlayerID:
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		if n.left.prio > n.right.prio {
			n = rotateRight(n)
			n.right = remove(n.right, id, score)
		} else {
			n = rotateLeft(n)
			n.left = remove(n.left, id, score)
		}
	case before(score, id, n.score, n.entry.PlayerID):
		n.left = remove(n.left, id, score)
	default:
		n.right = remove(n.right, id, score)
	}
	fix(n)
	return n
}

// position returns the 1-based rank of the key, which must be present.
func position(n *node, id string, score scoreFP) int {
	pos := 0
	for n != nil {
		switch {
		case score == n.score && id == n.entry.PlayerID:
			return pos + nsize(n.left) + 1
		case before(score, id, n.score, n.entry.PlayerID):
			n = n.left
		default:
			pos += nsize(n.left) + 1
			n = n.right
		}
	}
	return 0
}

// collectTopN appends up to limit entries in rank order.
func collectTopN(n *node, limit int, out *[]Entry) {
	if n == nil || len(*out) >= limit {
		return
	}
	collectTopN(n.left, limit, out)
	if len(*out) < limit {
		e := n.entry
		e.Rank = len(*out) + 1
		*out = append(*out, e)
	}
	collectTopN(n.right, limit, out)
}

// TreapStore is the in-memory ranking.
type TreapStore struct {
	mu     sync.RWMutex
	root   *node
	byID   map[string]scoreFP
	rng    *rand.Rand
	seed   uint64
	seeded bool
}

// NewTreapStore constructs a treap store with configuration options.
func NewTreapStore(opts ...Option) *TreapStore {
	s := &TreapStore{byID: make(map[string]scoreFP)}
	for _, opt := range opts {
		opt(s)
	}
	if !s.seeded {
		s.seed = rand.Uint64()
	}
	s.rng = rand.New(rand.NewPCG(s.seed, s.seed^0x9e3779b97f4a7c15))
	return s
}

func (s *TreapStore) newNode(e Entry) *node {
	e.Rank = 0
	return &node{entry: e, score: toFixedPoint(e.ImpactZ), prio: s.rng.Uint64(), size: 1}
}

// upsertLocked assumes s.mu is held for writing.
func (s *TreapStore) upsertLocked(e Entry) {
	if old, ok := s.byID[e.PlayerID]; ok {
		s.root = remove(s.root, e.PlayerID, old)
	}
	nn := s.newNode(e)
	s.byID[e.PlayerID] = nn.score
	s.root = insert(s.root, nn)
}

// Upsert implements Store.Upsert in O(log n) expected time.
func (s *TreapStore) Upsert(_ context.Context, e Entry) error {
	if e.PlayerID == "" {
		metrics.RecordErrorByComponent("repository", "missing_id")
		return ErrMissingID
	}
	s.mu.Lock()
	s.upsertLocked(e)
	count := len(s.byID)
	s.mu.Unlock()

	metrics.UpdateRankedPlayers(count)
	return nil
}

// Replace implements Store.Replace. The store is left untouched on error.
func (s *TreapStore) Replace(_ context.Context, entries []Entry) error {
	for i := range entries {
		if entries[i].PlayerID == "" {
			metrics.RecordErrorByComponent("repository", "missing_id")
			return ErrMissingID
		}
	}
	s.mu.Lock()
	s.root = nil
	s.byID = make(map[string]scoreFP, len(entries))
	for i := range entries {
		s.upsertLocked(entries[i])
	}
	count := len(s.byID)
	s.mu.Unlock()

	metrics.UpdateRankedPlayers(count)
	return nil
}

// Rank implements Store.Rank in O(log n) expected time.
func (s *TreapStore) Rank(_ context.Context, playerID string) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	score, ok := s.byID[playerID]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return Entry{}, ErrNotFound
	}
	n := s.root
	for n != nil && (n.score != score || n.entry.PlayerID != playerID) {
		if before(score, playerID, n.score, n.entry.PlayerID) {
			n = n.left
		} else {
			n = n.right
		}
	}
	if n == nil {
		return Entry{}, ErrNotFound
	}
	e := n.entry
	e.Rank = position(s.root, playerID, score)
	return e, nil
}

// TopN implements Store.TopN.
func (s *TreapStore) TopN(_ context.Context, n int) ([]Entry, error) {
	if n < 1 {
		metrics.RecordErrorByComponent("repository", "invalid_limit")
		return nil, ErrInvalidLimit
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, 0, min(n, len(s.byID)))
	collectTopN(s.root, n, &out)
	return out, nil
}

// Count implements Store.Count.
func (s *TreapStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
