// Package search finds realistic replacement candidates for a weak player and
// ranks them under a win-now or rebuild objective.
package search

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/okian/rinkscout/internal/domain/benchmark"
	"github.com/okian/rinkscout/internal/domain/model"
	"github.com/okian/rinkscout/internal/domain/scoring"
)

// Searcher runs the filter, benchmark filter, tier gate and ranking stages.
type Searcher struct {
	evaluator     *scoring.Evaluator
	winNow        Band
	rebuild       Band
	topTier       map[string]struct{}
	development   map[string]struct{}
	maxCandidates int
	maxProspects  int
	concurrency   int
}

// New creates a Searcher that evaluates candidates with e.
func New(e *scoring.Evaluator, opts ...Option) *Searcher {
	s := &Searcher{
		evaluator:     e,
		winNow:        Band{Lower: DefaultWinNowLower, Upper: DefaultWinNowUpper, Cushion: DefaultWinNowCushion},
		rebuild:       Band{Lower: DefaultRebuildLower, Upper: DefaultRebuildUpper},
		topTier:       toSet(DefaultTopTierLeagues),
		development:   toSet(DefaultDevelopmentLeagues),
		maxCandidates: DefaultMaxCandidates,
		maxProspects:  DefaultMaxProspects,
		concurrency:   runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Result is the outcome of one search.
type Result struct {
	Candidates []model.CandidateScore
	// Fallback is set when the candidates are development prospects.
	Fallback bool
	// Considered counts pool players that passed the first filter.
	Considered int
}

// Band returns the salary band of mode.
func (s *Searcher) Band(mode model.Mode) Band {
	if mode == model.ModeRebuild {
		return s.rebuild
	}
	return s.winNow
}

// Find searches pool for replacements of weak playing role r. When no league
// candidate survives, it falls back to development prospects.
func (s *Searcher) Find(ctx context.Context, weak *model.PlayerProfile, r model.Role, mode model.Mode,
	t *benchmark.Table, pool []model.PlayerProfile,
) (Result, error) {
	if weak == nil {
		return Result{}, ErrNilPlayer
	}
	if t == nil {
		return Result{}, benchmark.ErrNilTable
	}
	if _, err := model.ParseMode(string(mode)); err != nil {
		return Result{}, fmt.Errorf("search %q: %w", mode, err)
	}
	weakEval, err := s.evaluator.EvaluateAs(weak, r, t)
	if err != nil {
		return Result{}, err
	}

	lo, hi := s.Band(mode).Range(weak.Contract.Salary)
	var shortlist []*model.PlayerProfile
	for i := range pool {
		c := &pool[i]
		if !s.eligible(weak, c, r) {
			continue
		}
		if _, ok := s.topTier[c.League]; !ok {
			continue
		}
		if c.Contract.Salary < lo || c.Contract.Salary > hi {
			continue
		}
		shortlist = append(shortlist, c)
	}

	evals, err := s.evaluateAll(ctx, shortlist, t)
	if err != nil {
		return Result{}, err
	}

	w := weakView{
		eval:     weakEval,
		salary:   weak.Contract.Salary,
		weakest:  weakestBundle(r, weakEval.Bundles),
		ageKnown: ageKnown(weak),
	}
	var scored []model.CandidateScore
	for i, c := range shortlist {
		cs, ok := s.rank(mode, w, c, evals[i])
		if ok {
			scored = append(scored, cs)
		}
	}
	res := Result{Considered: len(shortlist)}
	if len(scored) > 0 {
		sortCandidates(scored)
		res.Candidates = truncate(scored, s.maxCandidates)
		return res, nil
	}

	prospects, err := s.prospects(ctx, weak, r, mode, t, pool)
	if err != nil {
		return Result{}, err
	}
	res.Candidates = prospects
	res.Fallback = len(prospects) > 0
	return res, nil
}

// eligible applies the identity, team and position-group filters.
func (s *Searcher) eligible(weak, c *model.PlayerProfile, r model.Role) bool {
	if c.ID == weak.ID {
		return false
	}
	if c.TeamID == weak.TeamID {
		return false
	}
	return c.Position.Group() == r.Group()
}

// evaluateAll evaluates every candidate in its own role. Results keep input order.
func (s *Searcher) evaluateAll(ctx context.Context, players []*model.PlayerProfile, t *benchmark.Table) ([]model.Evaluation, error) {
	out := make([]model.Evaluation, len(players))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, p := range players {
		g.Go(func() error {
			ev, err := s.evaluator.Evaluate(gctx, p, t)
			if err != nil {
				return fmt.Errorf("evaluate candidate %s: %w", p.ID, err)
			}
			out[i] = ev
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// weakestBundle is the lowest bundle among those the role weights.
func weakestBundle(r model.Role, b model.BundleScores) model.Bundle {
	weights := benchmark.ImpactWeights(r)
	var among []model.Bundle
	for i, w := range weights {
		if w > 0 {
			among = append(among, model.Bundle(i))
		}
	}
	return b.Weakest(among...)
}

func sortCandidates(cs []model.CandidateScore) {
	sort.SliceStable(cs, func(i, j int) bool {
		if cs[i].Score != cs[j].Score {
			return cs[i].Score > cs[j].Score
		}
		if cs[i].Player.Contract.Salary != cs[j].Player.Contract.Salary {
			return cs[i].Player.Contract.Salary < cs[j].Player.Contract.Salary
		}
		return cs[i].Player.ID < cs[j].Player.ID
	})
}

func truncate(cs []model.CandidateScore, n int) []model.CandidateScore {
	if len(cs) > n {
		return cs[:n]
	}
	return cs
}
