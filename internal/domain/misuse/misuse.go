// Package misuse flags deployment that contradicts a player's skill profile.
package misuse

import (
	"math"

	"github.com/okian/rinkscout/internal/domain/model"
)

// Severity thresholds and score bounds.
const (
	ModerateThreshold = 0.25
	SevereThreshold   = 0.40

	maxScore    = 2.0
	ratingScale = 100.0
	tierScale   = 5.0
)

// Hint thresholds.
const (
	strongRating      = 75.0
	weakRating        = 60.0
	poorDefensiveRead = 55.0
	lowShare          = 0.05
	heavyPPShare      = 0.15
	heavyDZShare      = 0.60
	fewDrawsPerGame   = 5.0
)

// Hints attached to a report.
const (
	HintPowerPlay      = "give PP2 time to a shooter/playmaker"
	HintPenaltyKill    = "use on the penalty kill to exploit defensive reads"
	HintTrimPowerPlay  = "trim power-play time; skills do not support the role"
	HintShelter        = "shelter from defensive-zone starts"
	HintFaceoffSpecial = "use as a faceoff specialist on key draws"
)

const (
	skillDims      = 12
	deploymentDims = 5
)

// SkillVector returns the 12 skater ratings scaled to [0,1].
func SkillVector(r model.Ratings) [skillDims]float64 {
	return [skillDims]float64{
		r.ShootingAccuracy / ratingScale,
		r.Passing / ratingScale,
		r.GettingOpen / ratingScale,
		r.PuckHandling / ratingScale,
		r.OffensiveRead / ratingScale,
		r.DefensiveRead / ratingScale,
		r.Positioning / ratingScale,
		r.StickChecking / ratingScale,
		r.ShotBlocking / ratingScale,
		r.Physicality / ratingScale,
		r.Strength / ratingScale,
		r.Faceoffs / ratingScale,
	}
}

// DeploymentVector returns PP share, PK share, DZ start share, QoC tier/5 and
// QoT tier/5. Unknown values are 0.
func DeploymentVector(d model.Deployment) [deploymentDims]float64 {
	var v [deploymentDims]float64
	if d.TimeOnIceMinutes > 0 {
		v[0] = d.PowerPlayMinutes / d.TimeOnIceMinutes
		v[1] = d.PenaltyKillMinutes / d.TimeOnIceMinutes
	}
	if d.DefensiveZoneStartShare != nil {
		v[2] = *d.DefensiveZoneStartShare
	}
	v[3] = float64(d.CompetitionTier) / tierScale
	v[4] = float64(d.TeammateTier) / tierScale
	return v
}

// Distance is the cosine distance of a and b with the shorter vector
// zero-padded. It is 0 when either vector has zero magnitude, clamped to [0,2].
func Distance(a, b []float64) float64 {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		x, y := at(a, i), at(b, i)
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	d := 1 - dot/(math.Sqrt(na)*math.Sqrt(nb))
	if math.IsNaN(d) {
		return 0
	}
	return math.Max(0, math.Min(maxScore, d))
}

func at(v []float64, i int) float64 {
	if i < len(v) {
		return v[i]
	}
	return 0
}

// SeverityFor buckets a misuse score.
func SeverityFor(score float64) model.Severity {
	switch {
	case score >= SevereThreshold:
		return model.SeveritySevere
	case score >= ModerateThreshold:
		return model.SeverityModerate
	default:
		return model.SeverityMinor
	}
}

// Detect compares the skill and deployment profiles of p.
func Detect(p *model.PlayerProfile) model.MisuseReport {
	skill := SkillVector(p.Ratings)
	dep := DeploymentVector(p.Deployment)
	score := Distance(skill[:], dep[:])
	report := model.MisuseReport{Score: score, Severity: SeverityFor(score)}
	if p.Position.Group() != model.GroupGoalie {
		report.Hints = hints(p, dep)
	}
	return report
}

func hints(p *model.PlayerProfile, dep [deploymentDims]float64) []string {
	r := p.Ratings
	ppShare, pkShare, dzShare := dep[0], dep[1], dep[2]
	var out []string
	if ppShare < lowShare && (r.ShootingAccuracy >= strongRating || r.Passing >= strongRating) {
		out = append(out, HintPowerPlay)
	}
	if pkShare < lowShare && r.DefensiveRead >= strongRating {
		out = append(out, HintPenaltyKill)
	}
	if ppShare > heavyPPShare && r.ShootingAccuracy < weakRating && r.Passing < weakRating {
		out = append(out, HintTrimPowerPlay)
	}
	if dzShare > heavyDZShare && r.DefensiveRead < poorDefensiveRead {
		out = append(out, HintShelter)
	}
	if p.Position == model.PositionCenter && r.Faceoffs >= strongRating && p.Stats.GamesPlayed > 0 &&
		float64(p.Stats.FaceoffsTaken)/float64(p.Stats.GamesPlayed) < fewDrawsPerGame {
		out = append(out, HintFaceoffSpecial)
	}
	return out
}
