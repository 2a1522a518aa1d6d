// Package normalize turns raw season counters into comparable per-60 rates and
// blends small samples toward role priors.
package normalize

import (
	"math"

	"github.com/okian/rinkscout/internal/domain/model"
)

// Default prior weights, in units of the metric's sample (minutes, faceoffs, games).
const (
	DefaultRatePriorWeight    = 150.0
	DefaultXGPriorWeight      = 200.0
	DefaultFaceoffPriorWeight = 400.0
	DefaultPDOPriorWeight     = 10.0

	minutesPerHour = 60.0
	pdoScale       = 100.0
)

// SampleKind says which counter measures the sample size of a metric.
type SampleKind int

// Sample kinds.
const (
	SampleMinutes SampleKind = iota
	SampleFaceoffs
	SampleGames
)

// shrinkable lists the metrics blended toward priors and the sample each uses.
var shrinkable = map[model.Metric]SampleKind{
	model.MetricGoalsPer60:          SampleMinutes,
	model.MetricPrimaryAssistsPer60: SampleMinutes,
	model.MetricXGFPer60:            SampleMinutes,
	model.MetricXGAPer60:            SampleMinutes,
	model.MetricShotsPer60:          SampleMinutes,
	model.MetricTakeawaysPer60:      SampleMinutes,
	model.MetricGiveawaysPer60:      SampleMinutes,
	model.MetricBlocksPer60:         SampleMinutes,
	model.MetricPIMPer60:            SampleMinutes,
	model.MetricFaceoffPct:          SampleFaceoffs,
	model.MetricPDO:                 SampleGames,
}

// Shrinkable reports whether m is blended toward its prior.
func Shrinkable(m model.Metric) bool {
	_, ok := shrinkable[m]
	return ok
}

// DefaultPriorWeights returns a fresh copy of the default prior weights.
func DefaultPriorWeights() map[model.Metric]float64 {
	w := make(map[model.Metric]float64, len(shrinkable))
	for m := range shrinkable {
		w[m] = DefaultRatePriorWeight
	}
	w[model.MetricXGFPer60] = DefaultXGPriorWeight
	w[model.MetricXGAPer60] = DefaultXGPriorWeight
	w[model.MetricFaceoffPct] = DefaultFaceoffPriorWeight
	w[model.MetricPDO] = DefaultPDOPriorWeight
	return w
}

// Priors supplies role-specific prior means.
type Priors interface {
	Prior(m model.Metric) (float64, bool)
}

// Option applies a configuration option to the Normalizer.
type Option func(*Normalizer)

// WithPriorWeights overrides prior weights per metric. Non-positive weights
// disable shrinkage for that metric.
func WithPriorWeights(weights map[model.Metric]float64) Option {
	return func(n *Normalizer) {
		for m, w := range weights {
			n.priorWeights[m] = w
		}
	}
}

// Normalizer converts counters into rates and applies shrinkage.
type Normalizer struct {
	priorWeights map[model.Metric]float64
}

// New creates a Normalizer with the default prior weights.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{priorWeights: DefaultPriorWeights()}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// PriorWeight returns the configured prior weight of m.
func (n *Normalizer) PriorWeight(m model.Metric) float64 {
	return n.priorWeights[m]
}

// Per60 converts a count into a per-60-minute rate. Non-finite inputs count as
// zero, so the rate is 0 when minutes is not a positive finite number.
func Per60(count, minutes float64) float64 {
	count, minutes = finite(count), finite(minutes)
	if minutes <= 0 {
		return 0
	}
	return finite(minutesPerHour * count / minutes)
}

// Blend is the fixed-weight average of an observed rate and a prior. Non-finite
// inputs count as zero.
func Blend(observed, n, prior, priorWeight float64) float64 {
	observed, n, prior, priorWeight = finite(observed), finite(n), finite(prior), finite(priorWeight)
	if n < 0 {
		n = 0
	}
	if priorWeight <= 0 {
		return observed
	}
	return finite((observed*n + prior*priorWeight) / (n + priorWeight))
}

// finite maps NaN and infinities to 0.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Rates computes the raw (unshrunk) metrics of p. Ratio metrics whose
// denominator is zero are left out.
func Rates(p *model.PlayerProfile) model.Metrics {
	s := p.Stats
	toi := p.Deployment.TimeOnIceMinutes
	ms := model.Metrics{}

	if p.Position.Group() == model.GroupGoalie {
		if s.ShotsAgainst > 0 {
			ms[model.MetricSavePct] = float64(s.Saves) / float64(s.ShotsAgainst)
		}
		if s.HighDangerShotsAgainst > 0 {
			ms[model.MetricHighDangerSavePct] = float64(s.HighDangerSaves) / float64(s.HighDangerShotsAgainst)
		}
		ms[model.MetricGSAxPer60] = Per60(s.ExpectedGoalsAgainst-float64(s.GoalsAgainst), toi)
		ms[model.MetricGoalsAgainstAvg] = Per60(float64(s.GoalsAgainst), toi)
		if pdo, ok := pdo(s); ok {
			ms[model.MetricPDO] = pdo
		}
		return ms
	}

	ms[model.MetricGoalsPer60] = Per60(float64(s.Goals), toi)
	ms[model.MetricAssistsPer60] = Per60(float64(s.Assists), toi)
	ms[model.MetricPrimaryAssistsPer60] = Per60(float64(s.PrimaryAssists), toi)
	ms[model.MetricPointsPer60] = Per60(float64(s.Points()), toi)
	ms[model.MetricShotsPer60] = Per60(float64(s.Shots), toi)
	ms[model.MetricXGFPer60] = Per60(s.OnIceXGF, toi)
	ms[model.MetricXGAPer60] = Per60(s.OnIceXGA, toi)
	ms[model.MetricHitsPer60] = Per60(float64(s.Hits), toi)
	ms[model.MetricTakeawaysPer60] = Per60(float64(s.Takeaways), toi)
	ms[model.MetricGiveawaysPer60] = Per60(float64(s.Giveaways), toi)
	ms[model.MetricBlocksPer60] = Per60(float64(s.BlockedShots), toi)
	ms[model.MetricPIMPer60] = Per60(float64(s.PenaltyMinutes), toi)
	ms[model.MetricGoalsAgainstPer60] = Per60(float64(s.OnIceGoalsAgainst), toi)
	ms[model.MetricPKGoalsAgainstPer60] = Per60(float64(s.PenaltyKillGoalsAgainst), p.Deployment.PenaltyKillMinutes)

	if s.GamesPlayed > 0 {
		gp := float64(s.GamesPlayed)
		ms[model.MetricPointsPerGame] = float64(s.Points()) / gp
		ms[model.MetricPlusMinusPerGame] = float64(s.PlusMinus) / gp
	}
	if s.FaceoffsTaken > 0 {
		ms[model.MetricFaceoffPct] = float64(s.FaceoffsWon) / float64(s.FaceoffsTaken)
	}
	if attempts := s.CorsiFor + s.CorsiAgainst; attempts > 0 {
		ms[model.MetricCorsiPct] = float64(s.CorsiFor) / float64(attempts)
	}
	if pdo, ok := pdo(s); ok {
		ms[model.MetricPDO] = pdo
	}
	return ms
}

// pdo is on-ice shooting percentage plus on-ice save percentage, on a 100 scale.
func pdo(s model.SeasonStats) (float64, bool) {
	if s.OnIceShotsFor <= 0 || s.OnIceShotsAgainst <= 0 {
		return 0, false
	}
	shPct := float64(s.OnIceGoalsFor) / float64(s.OnIceShotsFor)
	svPct := 1 - float64(s.OnIceGoalsAgainst)/float64(s.OnIceShotsAgainst)
	return pdoScale * (shPct + svPct), true
}

// sampleSize returns the sample n for a metric of p.
func sampleSize(p *model.PlayerProfile, kind SampleKind) float64 {
	switch kind {
	case SampleFaceoffs:
		return float64(p.Stats.FaceoffsTaken)
	case SampleGames:
		return float64(p.Stats.GamesPlayed)
	default:
		return p.Deployment.TimeOnIceMinutes
	}
}

// Shrink blends the noisy metrics in raw toward priors. Metrics without a prior
// are returned unchanged. A shrinkable metric absent from raw but with a prior
// takes the prior value, since its sample is empty.
func (n *Normalizer) Shrink(p *model.PlayerProfile, raw model.Metrics, priors Priors) model.Metrics {
	out := raw.Clone()
	if priors == nil {
		return out
	}
	for m, kind := range shrinkable {
		prior, ok := priors.Prior(m)
		if !ok {
			continue
		}
		weight := n.priorWeights[m]
		if weight <= 0 {
			continue
		}
		observed, present := raw.Get(m)
		sample := sampleSize(p, kind)
		if !present {
			sample = 0
		}
		out[m] = Blend(observed, sample, prior, weight)
	}
	return out
}

// Normalize computes rates for p and shrinks them toward priors.
func (n *Normalizer) Normalize(p *model.PlayerProfile, priors Priors) model.Metrics {
	return n.Shrink(p, Rates(p), priors)
}
