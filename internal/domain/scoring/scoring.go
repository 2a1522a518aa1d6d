// Package scoring wires normalization, role classification, benchmark
// comparison, misuse and confidence into a single evaluation call.
package scoring

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/rinkscout/internal/domain/benchmark"
	"github.com/okian/rinkscout/internal/domain/confidence"
	"github.com/okian/rinkscout/internal/domain/misuse"
	"github.com/okian/rinkscout/internal/domain/model"
	"github.com/okian/rinkscout/internal/domain/normalize"
	"github.com/okian/rinkscout/internal/domain/recommend"
	"github.com/okian/rinkscout/internal/domain/roles"
)

// Option applies a configuration option to the Evaluator.
type Option func(*Evaluator)

// WithPriorWeights overrides shrinkage prior weights per metric.
func WithPriorWeights(weights map[model.Metric]float64) Option {
	return func(e *Evaluator) {
		if len(weights) > 0 {
			e.normOpts = append(e.normOpts, normalize.WithPriorWeights(weights))
		}
	}
}

// WithMinTOIForConfidence sets the ice time at which confidence saturates.
func WithMinTOIForConfidence(minutes float64) Option {
	return func(e *Evaluator) {
		if minutes > 0 {
			e.minTOI = minutes
		}
	}
}

// WithReferenceDate fixes the date ages are computed at.
func WithReferenceDate(t time.Time) Option {
	return func(e *Evaluator) {
		if !t.IsZero() {
			e.asOf = t
		}
	}
}

// Scorer evaluates one player against a benchmark table.
type Scorer interface {
	// Evaluate returns a fresh evaluation, honoring ctx for cancellation.
	Evaluate(ctx context.Context, p *model.PlayerProfile, t *benchmark.Table) (model.Evaluation, error)
}

// Evaluator implements Scorer. It holds configuration only and is safe for concurrent use.
type Evaluator struct {
	normOpts   []normalize.Option
	normalizer *normalize.Normalizer
	minTOI     float64
	asOf       time.Time
}

// NewEvaluator creates an Evaluator with configuration options.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{
		minTOI: confidence.DefaultMinTOI,
		asOf:   time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.normalizer = normalize.New(e.normOpts...)
	return e
}

// ReferenceDate returns the date ages are computed at.
func (e *Evaluator) ReferenceDate() time.Time { return e.asOf }

// Classify assigns the role of p.
func (e *Evaluator) Classify(p *model.PlayerProfile) (model.Classification, error) {
	return roles.Classify(p)
}

// Evaluate runs the full pipeline on p. A role missing from t yields neutral
// scores; only an unidentifiable position is an error.
func (e *Evaluator) Evaluate(ctx context.Context, p *model.PlayerProfile, t *benchmark.Table) (model.Evaluation, error) {
	if err := ctx.Err(); err != nil {
		return model.Evaluation{}, fmt.Errorf("evaluate: %w", err)
	}
	class, err := roles.Classify(p)
	if err != nil {
		return model.Evaluation{}, err
	}
	return e.evaluateAs(p, class, t), nil
}

// EvaluateAs evaluates p in a caller-chosen role.
func (e *Evaluator) EvaluateAs(p *model.PlayerProfile, r model.Role, t *benchmark.Table) (model.Evaluation, error) {
	if p == nil {
		return model.Evaluation{}, model.ErrNilPlayer
	}
	if p.Position.Group() == model.GroupUnknown {
		return model.Evaluation{}, fmt.Errorf("evaluate %s: %w", p.ID, model.ErrUnknownPosition)
	}
	if !r.Valid() {
		return model.Evaluation{}, fmt.Errorf("evaluate %s as %d: %w", p.ID, r, model.ErrUnknownRole)
	}
	class, _ := roles.Classify(p)
	class.Role = r
	return e.evaluateAs(p, class, t), nil
}

func (e *Evaluator) evaluateAs(p *model.PlayerProfile, class model.Classification, t *benchmark.Table) model.Evaluation {
	r := class.Role
	ms := e.normalizer.Normalize(p, t.Priors(r))
	cmp := benchmark.Compare(r, ms, p.Deployment, t)

	var pdoZ float64
	if v, ok := ms.Get(model.MetricPDO); ok {
		pdoZ = t.PDO().Z(v)
	}
	est := confidence.Compute(p.Deployment.TimeOnIceMinutes, pdoZ, e.minTOI)
	report := misuse.Detect(p)
	decision := recommend.Decide(recommend.Input{
		ReplacementDelta: cmp.ReplacementDelta,
		Confidence:       est.Confidence,
		Severity:         report.Severity,
		Group:            r.Group(),
		Drivers:          cmp.Drivers,
		Hints:            report.Hints,
	})

	return model.Evaluation{
		PlayerID:             p.ID,
		PlayerName:           p.Name,
		Age:                  p.Age(e.asOf),
		Classification:       class,
		Metrics:              ms,
		Bundles:              cmp.Bundles,
		BundleDrivers:        cmp.BundleDrivers,
		Drivers:              cmp.Drivers,
		ImpactScore:          cmp.Impact,
		ImpactZ:              cmp.ImpactZ,
		ReplacementThreshold: cmp.ReplacementThreshold,
		ReplacementDelta:     cmp.ReplacementDelta,
		Tier:                 cmp.Tier,
		Rating:               cmp.Rating,
		Misuse:               report,
		Confidence:           est.Confidence,
		Volatility:           est.Volatility,
		Action:               decision.Action,
		Reasons:              decision.Reasons,
	}
}
