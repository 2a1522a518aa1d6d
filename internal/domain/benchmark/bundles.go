package benchmark

import "github.com/okian/rinkscout/internal/domain/model"

// term is one weighted metric of a bundle.
type term struct {
	metric model.Metric
	weight float64
}

// skaterBundles defines the skater bundles. A metric belongs to one bundle only.
var skaterBundles = [model.BundleCount][]term{
	model.BundleOffense: {
		{model.MetricPointsPerGame, 0.25},
		{model.MetricGoalsPer60, 0.20},
		{model.MetricPrimaryAssistsPer60, 0.15},
		{model.MetricXGFPer60, 0.15},
		{model.MetricShotsPer60, 0.10},
		{model.MetricPointsPer60, 0.10},
		{model.MetricAssistsPer60, 0.05},
	},
	model.BundleDefense: {
		{model.MetricXGAPer60, 0.30},
		{model.MetricGoalsAgainstPer60, 0.20},
		{model.MetricBlocksPer60, 0.15},
		{model.MetricTakeawaysPer60, 0.15},
		{model.MetricPKGoalsAgainstPer60, 0.10},
		{model.MetricHitsPer60, 0.10},
	},
	model.BundleTransition: {
		{model.MetricCorsiPct, 0.40},
		{model.MetricGiveawaysPer60, 0.35},
		{model.MetricFaceoffPct, 0.25},
	},
	model.BundleComposure: {
		{model.MetricPIMPer60, 0.60},
		{model.MetricPlusMinusPerGame, 0.40},
	},
}

// goalieDefense is the only non-zero goalie bundle.
var goalieDefense = []term{
	{model.MetricSavePct, 0.40},
	{model.MetricHighDangerSavePct, 0.30},
	{model.MetricGSAxPer60, 0.30},
}

// impactWeights are the per-role bundle weights of the impact score.
var impactWeights = [model.RoleCount]model.BundleScores{
	model.RoleScorer:              {0.65, 0.10, 0.15, 0.10},
	model.RolePlaymaker:           {0.55, 0.10, 0.25, 0.10},
	model.RoleTwoWayForward:       {0.30, 0.40, 0.20, 0.10},
	model.RoleGrinder:             {0.20, 0.35, 0.15, 0.30},
	model.RoleOffensiveDefenseman: {0.45, 0.25, 0.20, 0.10},
	model.RoleTwoWayDefenseman:    {0.25, 0.40, 0.25, 0.10},
	model.RoleShutdownDefenseman:  {0.10, 0.55, 0.20, 0.15},
	model.RoleGoalie:              {0, 1, 0, 0},
}

// ImpactWeights returns the bundle weights of role r.
func ImpactWeights(r model.Role) model.BundleScores {
	if !r.Valid() {
		return model.BundleScores{}
	}
	return impactWeights[r]
}

// termsFor returns the bundle definition for a role.
func termsFor(r model.Role) [model.BundleCount][]term {
	if r == model.RoleGoalie {
		return [model.BundleCount][]term{model.BundleDefense: goalieDefense}
	}
	return skaterBundles
}

// BundleMetrics lists the metrics that feed bundle b for role r.
func BundleMetrics(r model.Role, b model.Bundle) []model.Metric {
	terms := termsFor(r)[b]
	out := make([]model.Metric, len(terms))
	for i, t := range terms {
		out[i] = t.metric
	}
	return out
}
