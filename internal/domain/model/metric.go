package model

import "sort"

// Metric names a normalized season metric.
type Metric string

// Skater metrics.
const (
	MetricGoalsPer60          Metric = "goals_per60"
	MetricAssistsPer60        Metric = "assists_per60"
	MetricPrimaryAssistsPer60 Metric = "primary_assists_per60"
	MetricPointsPer60         Metric = "points_per60"
	MetricPointsPerGame       Metric = "points_per_game"
	MetricShotsPer60          Metric = "shots_per60"
	MetricXGFPer60            Metric = "xgf_per60"
	MetricXGAPer60            Metric = "xga_per60"
	MetricHitsPer60           Metric = "hits_per60"
	MetricTakeawaysPer60      Metric = "takeaways_per60"
	MetricGiveawaysPer60      Metric = "giveaways_per60"
	MetricBlocksPer60         Metric = "blocks_per60"
	MetricPIMPer60            Metric = "pim_per60"
	MetricGoalsAgainstPer60   Metric = "on_ice_ga_per60"
	MetricPKGoalsAgainstPer60 Metric = "pk_ga_per60"
	MetricPlusMinusPerGame    Metric = "plus_minus_per_game"
	MetricFaceoffPct          Metric = "faceoff_pct"
	MetricCorsiPct            Metric = "corsi_pct"
	MetricPDO                 Metric = "pdo"
)

// Goalie metrics.
const (
	MetricSavePct           Metric = "save_pct"
	MetricHighDangerSavePct Metric = "hd_save_pct"
	MetricGSAxPer60         Metric = "gsax_per60"
	MetricGoalsAgainstAvg   Metric = "gaa"
)

var knownMetrics = map[Metric]struct{}{
	MetricGoalsPer60: {}, MetricAssistsPer60: {}, MetricPrimaryAssistsPer60: {}, MetricPointsPer60: {},
	MetricPointsPerGame: {}, MetricShotsPer60: {}, MetricXGFPer60: {}, MetricXGAPer60: {},
	MetricHitsPer60: {}, MetricTakeawaysPer60: {}, MetricGiveawaysPer60: {}, MetricBlocksPer60: {},
	MetricPIMPer60: {}, MetricGoalsAgainstPer60: {}, MetricPKGoalsAgainstPer60: {}, MetricPlusMinusPerGame: {},
	MetricFaceoffPct: {}, MetricCorsiPct: {}, MetricPDO: {},
	MetricSavePct: {}, MetricHighDangerSavePct: {}, MetricGSAxPer60: {}, MetricGoalsAgainstAvg: {},
}

// Known reports whether m is a metric the engine computes.
func (m Metric) Known() bool {
	_, ok := knownMetrics[m]
	return ok
}

// LowerIsBetter reports whether higher values of m are worse.
func (m Metric) LowerIsBetter() bool {
	switch m {
	case MetricGiveawaysPer60, MetricXGAPer60, MetricGoalsAgainstPer60,
		MetricPKGoalsAgainstPer60, MetricPIMPer60, MetricGoalsAgainstAvg:
		return true
	default:
		return false
	}
}

// Metrics maps metric names to values. An absent metric carries no signal.
type Metrics map[Metric]float64

// Get returns the value of m and whether it is present.
func (ms Metrics) Get(m Metric) (float64, bool) {
	v, ok := ms[m]
	return v, ok
}

// Clone returns a copy of ms.
func (ms Metrics) Clone() Metrics {
	out := make(Metrics, len(ms))
	for k, v := range ms {
		out[k] = v
	}
	return out
}

// Names returns the metric names in ms sorted lexically.
func (ms Metrics) Names() []Metric {
	names := make([]Metric, 0, len(ms))
	for k := range ms {
		names = append(names, k)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
