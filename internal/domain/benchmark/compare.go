package benchmark

import (
	"math"
	"sort"

	"github.com/okian/rinkscout/internal/domain/model"
)

// Comparator constants.
const (
	// replacementQuantile is the standard normal quantile of the 25th percentile.
	replacementQuantile = 0.6745
	topDrivers          = 3

	competitionNudge = 0.15
	teammateNudge    = 0.10
	zoneStartNudge   = 0.10

	neutralTier     = 3.0
	tierHalfRange   = 2.0
	neutralDZShare  = 0.5
	dzShareHalfSpan = 0.2
)

// Tier thresholds on impact z.
const (
	eliteTierZ = 1.75
	starTierZ  = 0.75
	solidTierZ = -0.25
	depthTierZ = -1.25
)

// Rating thresholds on impact z.
const (
	eliteRatingZ        = 1.0
	aboveAverageRatingZ = 0.35
	averageRatingZ      = -0.35
	belowAverageRatingZ = -1.0
)

// Comparison is the outcome of comparing one player's metrics to a role benchmark.
type Comparison struct {
	Role          model.Role
	Bundles       model.BundleScores
	BundleDrivers [model.BundleCount][]model.Driver
	Drivers       []model.Driver
	// MetricZ holds the oriented z-score of every metric that carried signal.
	MetricZ map[model.Metric]float64

	Impact               float64
	ImpactZ              float64
	ReplacementThreshold float64
	ReplacementDelta     float64
	Tier                 model.Tier
	Rating               model.Rating
}

// Compare scores metrics ms of a player in role r against table t. The
// deployment supplies context nudges. A role missing from t yields neutral scores.
func Compare(r model.Role, ms model.Metrics, dep model.Deployment, t *Table) Comparison {
	c := Comparison{Role: r, MetricZ: map[model.Metric]float64{}}
	if !t.HasRole(r) {
		c.Tier = TierFor(0)
		c.Rating = RatingFor(0)
		return c
	}

	var all []model.Driver
	for b, terms := range termsFor(r) {
		bundle := model.Bundle(b)
		var sum, weight float64
		var drivers []model.Driver
		for _, tm := range terms {
			v, ok := ms.Get(tm.metric)
			if !ok {
				continue
			}
			st, ok := t.stat(r, tm.metric)
			if !ok || !st.HasSignal() {
				continue
			}
			z := st.Z(v)
			if tm.metric.LowerIsBetter() {
				z = -z
			}
			c.MetricZ[tm.metric] = z
			sum += tm.weight * z
			weight += tm.weight
			drivers = append(drivers, model.Driver{Metric: tm.metric, Bundle: bundle, Value: v, Mean: st.Mean, Z: z})
		}
		if weight > 0 {
			c.Bundles[bundle] = sum / weight
		}
		all = append(all, drivers...)
		c.BundleDrivers[bundle] = top(drivers, topDrivers)
	}
	c.Drivers = top(all, topDrivers)

	if r != model.RoleGoalie {
		applyContext(&c.Bundles, dep)
	}

	weights := ImpactWeights(r)
	for b := range c.Bundles {
		c.Impact += weights[b] * c.Bundles[b]
	}

	impact, _ := t.impact(r)
	c.ImpactZ = impact.Z(c.Impact)
	c.ReplacementThreshold = impact.Mean - replacementQuantile*impact.SD
	if impact.HasSignal() {
		c.ReplacementDelta = (c.Impact - c.ReplacementThreshold) / impact.SD
	}
	c.Tier = TierFor(c.ImpactZ)
	c.Rating = RatingFor(c.ImpactZ)
	return c
}

// applyContext adds the clamped deployment nudges to the bundles.
func applyContext(b *model.BundleScores, dep model.Deployment) {
	if dep.CompetitionTier > 0 {
		// Tougher competition lifts Defense.
		b[model.BundleDefense] += clamp((float64(dep.CompetitionTier)-neutralTier)/tierHalfRange, -1, 1) * competitionNudge
	}
	if dep.TeammateTier > 0 {
		// Weaker teammates lift Offense.
		b[model.BundleOffense] += clamp((neutralTier-float64(dep.TeammateTier))/tierHalfRange, -1, 1) * teammateNudge
	}
	if dep.DefensiveZoneStartShare != nil {
		b[model.BundleDefense] += clamp((*dep.DefensiveZoneStartShare-neutralDZShare)/dzShareHalfSpan, -1, 1) * zoneStartNudge
	}
}

// top returns up to n drivers by absolute z, ties broken by metric name.
func top(drivers []model.Driver, n int) []model.Driver {
	sorted := make([]model.Driver, len(drivers))
	copy(sorted, drivers)
	sort.SliceStable(sorted, func(i, j int) bool {
		ai, aj := math.Abs(sorted[i].Z), math.Abs(sorted[j].Z)
		if ai != aj {
			return ai > aj
		}
		return sorted[i].Metric < sorted[j].Metric
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// TierFor buckets an impact z-score into a tier.
func TierFor(z float64) model.Tier {
	switch {
	case z >= eliteTierZ:
		return model.TierElite
	case z >= starTierZ:
		return model.TierStar
	case z >= solidTierZ:
		return model.TierSolid
	case z >= depthTierZ:
		return model.TierDepth
	default:
		return model.TierReplacement
	}
}

// RatingFor maps an impact z-score to a benchmark rating.
func RatingFor(z float64) model.Rating {
	switch {
	case z >= eliteRatingZ:
		return model.RatingElite
	case z >= aboveAverageRatingZ:
		return model.RatingAboveAverage
	case z >= averageRatingZ:
		return model.RatingAverage
	case z >= belowAverageRatingZ:
		return model.RatingBelowAverage
	default:
		return model.RatingWeak
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
