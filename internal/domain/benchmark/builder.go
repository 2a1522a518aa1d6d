package benchmark

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/okian/rinkscout/internal/domain/model"
	"github.com/okian/rinkscout/internal/domain/normalize"
	"github.com/okian/rinkscout/internal/domain/roles"
)

// Builder defaults.
const (
	DefaultMinTOI     = 100.0
	DefaultMinSamples = 3
)

// BuilderOption applies a configuration option to the Builder.
type BuilderOption func(*Builder)

// WithMinTOI excludes players under minutes of ice time from the statistics.
func WithMinTOI(minutes float64) BuilderOption {
	return func(b *Builder) {
		if minutes >= 0 {
			b.minTOI = minutes
		}
	}
}

// WithMinSamples omits roles with fewer than n qualifying players.
func WithMinSamples(n int) BuilderOption {
	return func(b *Builder) {
		if n > 0 {
			b.minSamples = n
		}
	}
}

// WithConcurrency limits the number of players processed at once.
func WithConcurrency(n int) BuilderOption {
	return func(b *Builder) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// Builder constructs a Table from a league pool.
type Builder struct {
	minTOI      float64
	minSamples  int
	concurrency int
}

// NewBuilder creates a Builder with configuration options.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		minTOI:      DefaultMinTOI,
		minSamples:  DefaultMinSamples,
		concurrency: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// sample is one classified, normalized player.
type sample struct {
	role    model.Role
	metrics model.Metrics
	dep     model.Deployment
	ok      bool
}

// Build classifies and normalizes every player in parallel, then aggregates
// per-role statistics once all players are done. Players without a usable
// position are skipped. Metrics are unshrunk, since priors come from the result.
func (b *Builder) Build(ctx context.Context, players []model.PlayerProfile) (*Table, error) {
	if len(players) == 0 {
		return nil, ErrEmptyLeague
	}

	samples := make([]sample, len(players))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)
	for i := range players {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("build benchmarks: %w", err)
			}
			p := &players[i]
			if p.Deployment.TimeOnIceMinutes < b.minTOI {
				return nil
			}
			c, err := roles.Classify(p)
			if errors.Is(err, model.ErrUnknownPosition) {
				return nil
			}
			if err != nil {
				return err
			}
			samples[i] = sample{role: c.Role, metrics: normalize.Rates(p), dep: p.Deployment, ok: true}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byRole := make(map[model.Role][]sample)
	var pdo []float64
	for _, s := range samples {
		if !s.ok {
			continue
		}
		byRole[s.role] = append(byRole[s.role], s)
		if v, ok := s.metrics.Get(model.MetricPDO); ok && s.role != model.RoleGoalie {
			pdo = append(pdo, v)
		}
	}

	entries := make(map[model.Role]RoleBenchmark)
	for r, group := range byRole {
		if len(group) < b.minSamples {
			continue
		}
		values := make(map[model.Metric][]float64)
		for _, s := range group {
			for m, v := range s.metrics {
				values[m] = append(values[m], v)
			}
		}
		rb := RoleBenchmark{Metrics: make(map[model.Metric]Stat, len(values)), Samples: len(group)}
		for m, vs := range values {
			rb.Metrics[m] = describe(vs)
		}
		entries[r] = rb
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no role reached %d samples", ErrEmptyLeague, b.minSamples)
	}

	// Impact statistics need the metric table first.
	metricTable := NewTable(entries, describe(pdo))
	for r, rb := range entries {
		impacts := make([]float64, 0, len(byRole[r]))
		for _, s := range byRole[r] {
			impacts = append(impacts, Compare(r, s.metrics, s.dep, metricTable).Impact)
		}
		rb.Impact = describe(impacts)
		entries[r] = rb
	}
	return NewTable(entries, describe(pdo)), nil
}

// describe returns the mean and population standard deviation of vs.
func describe(vs []float64) Stat {
	if len(vs) == 0 {
		return Stat{}
	}
	var sum float64
	for _, v := range vs {
		sum += v
	}
	mean := sum / float64(len(vs))
	var ss float64
	for _, v := range vs {
		ss += (v - mean) * (v - mean)
	}
	return Stat{Mean: mean, SD: math.Sqrt(ss / float64(len(vs)))}
}
