package repository

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"
	"testing"
)

func entry(id string, z float64) Entry {
	return Entry{PlayerID: id, PlayerName: "Player " + id, ImpactZ: z}
}

func TestTreapStore_BasicOperations(t *testing.T) {
	ctx := context.Background()
	store := NewTreapStore(WithSeed(1))

	if count := store.Count(ctx); count != 0 {
		t.Errorf("expected count 0, got %d", count)
	}
	if err := store.Upsert(ctx, entry("p1", 0.8)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count := store.Count(ctx); count != 1 {
		t.Errorf("expected count 1, got %d", count)
	}

	got, err := store.Rank(ctx, "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Rank != 1 || got.ImpactZ != 0.8 || got.PlayerName != "Player p1" {
		t.Errorf("unexpected entry %+v", got)
	}

	top, err := store.TopN(ctx, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(top) != 1 || top[0].PlayerID != "p1" {
		t.Errorf("unexpected top %+v", top)
	}
}

func TestTreapStore_UpsertReplacesPreviousEntry(t *testing.T) {
	ctx := context.Background()
	store := NewTreapStore(WithSeed(2))

	_ = store.Upsert(ctx, entry("p1", 1.5))
	_ = store.Upsert(ctx, entry("p2", 0.5))
	// A later, lower evaluation moves p1 down.
	_ = store.Upsert(ctx, entry("p1", -0.5))

	if count := store.Count(ctx); count != 2 {
		t.Fatalf("expected count 2, got %d", count)
	}
	top, _ := store.TopN(ctx, 2)
	if top[0].PlayerID != "p2" || top[1].PlayerID != "p1" {
		t.Errorf("expected p2 then p1, got %s then %s", top[0].PlayerID, top[1].PlayerID)
	}
	if top[1].ImpactZ != -0.5 || top[1].Rank != 2 {
		t.Errorf("unexpected second entry %+v", top[1])
	}
}

func TestTreapStore_TiesBreakByPlayerID(t *testing.T) {
	ctx := context.Background()
	store := NewTreapStore(WithSeed(3))
	for _, id := range []string{"c", "a", "b"} {
		_ = store.Upsert(ctx, entry(id, 0.25))
	}

	top, _ := store.TopN(ctx, 3)
	for i, want := range []string{"a", "b", "c"} {
		if top[i].PlayerID != want || top[i].Rank != i+1 {
			t.Errorf("position %d: expected %s, got %+v", i, want, top[i])
		}
	}
	got, _ := store.Rank(ctx, "c")
	if got.Rank != 3 {
		t.Errorf("expected c at rank 3, got %d", got.Rank)
	}
}

func TestTreapStore_Errors(t *testing.T) {
	ctx := context.Background()
	store := NewTreapStore()

	if _, err := store.Rank(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.TopN(ctx, 0); !errors.Is(err, ErrInvalidLimit) {
		t.Errorf("expected ErrInvalidLimit, got %v", err)
	}
	if err := store.Upsert(ctx, entry("", 1)); !errors.Is(err, ErrMissingID) {
		t.Errorf("expected ErrMissingID, got %v", err)
	}
	_ = store.Upsert(ctx, entry("keep", 1))
	if err := store.Replace(ctx, []Entry{entry("x", 1), entry("", 2)}); !errors.Is(err, ErrMissingID) {
		t.Errorf("expected ErrMissingID, got %v", err)
	}
	if _, err := store.Rank(ctx, "keep"); err != nil {
		t.Errorf("failed replace must leave the store intact, got %v", err)
	}
}

func TestTreapStore_Replace(t *testing.T) {
	ctx := context.Background()
	store := NewTreapStore(WithSeed(4))
	_ = store.Upsert(ctx, entry("old", 9))

	err := store.Replace(ctx, []Entry{entry("a", 1), entry("b", 2), entry("a", 3)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count := store.Count(ctx); count != 2 {
		t.Errorf("expected count 2, got %d", count)
	}
	if _, err := store.Rank(ctx, "old"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected old entry gone, got %v", err)
	}
	got, _ := store.Rank(ctx, "a")
	if got.Rank != 1 || got.ImpactZ != 3 {
		t.Errorf("expected later duplicate to win, got %+v", got)
	}
}

func TestTreapStore_MatchesSortedOrder(t *testing.T) {
	ctx := context.Background()
	store := NewTreapStore(WithSeed(5))
	rng := rand.New(rand.NewPCG(7, 11))

	want := make(map[string]float64)
	for i := 0; i < 2000; i++ {
		id := fmt.Sprintf("p%04d", rng.IntN(500))
		// Coarse values force plenty of score ties.
		z := float64(rng.IntN(41)-20) / 10
		want[id] = z
		_ = store.Upsert(ctx, entry(id, z))
	}

	ids := make([]string, 0, len(want))
	for id := range want {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if want[ids[i]] != want[ids[j]] {
			return want[ids[i]] > want[ids[j]]
		}
		return ids[i] < ids[j]
	})

	top, _ := store.TopN(ctx, len(ids)+10)
	if len(top) != len(ids) {
		t.Fatalf("expected %d entries, got %d", len(ids), len(top))
	}
	for i, id := range ids {
		if top[i].PlayerID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, top[i].PlayerID)
		}
		got, err := store.Rank(ctx, id)
		if err != nil || got.Rank != i+1 {
			t.Fatalf("rank of %s: expected %d, got %d (%v)", id, i+1, got.Rank, err)
		}
	}
}

func TestTreapStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewTreapStore()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				id := fmt.Sprintf("p%d", i)
				_ = store.Upsert(ctx, entry(id, float64(g)))
				_, _ = store.Rank(ctx, id)
				_, _ = store.TopN(ctx, 5)
			}
		}(g)
	}
	wg.Wait()

	if count := store.Count(ctx); count != 200 {
		t.Errorf("expected count 200, got %d", count)
	}
}

func BenchmarkTreapStore_Upsert(b *testing.B) {
	ctx := context.Background()
	store := NewTreapStore(WithSeed(6))
	ids := make([]string, 10_000)
	for i := range ids {
		ids[i] = fmt.Sprintf("p%d", i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = store.Upsert(ctx, entry(ids[i%len(ids)], float64(i%97)/10))
	}
}

func BenchmarkTreapStore_Rank(b *testing.B) {
	ctx := context.Background()
	store := NewTreapStore(WithSeed(7))
	for i := 0; i < 10_000; i++ {
		_ = store.Upsert(ctx, entry(fmt.Sprintf("p%d", i), float64(i%97)/10))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = store.Rank(ctx, fmt.Sprintf("p%d", i%10_000))
	}
}
