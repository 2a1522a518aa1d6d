package search

import (
	"context"
	"fmt"
	"math"

	"github.com/okian/rinkscout/internal/domain/benchmark"
	"github.com/okian/rinkscout/internal/domain/model"
)

// Trade types.
const (
	TradeSameSalaryUpgrade = "same_salary_upgrade"
	TradeCapEfficiency     = "cap_efficiency"
	TradeOverpaidForValue  = "overpaid_for_value"
)

// Scoring constants.
const (
	eliteBonus        = 0.5
	aboveAverageBonus = 0.25

	efficiencyWeight = 0.3
	efficiencyClamp  = 1.5
	// valueShift keeps performance-per-dollar positive for z down to -3.
	valueShift       = 3.0
	minValue         = 0.1
	minSalaryMillion = 0.5
	million          = 1_000_000.0

	sameSalaryTolerance = 0.10
	sameSalaryBonus     = 0.3
	capEfficiencyShare  = 0.75
	capEfficiencyBonus  = 0.25
	overpaidRatio       = 2.0
	overpaidBonus       = 0.35

	ageBonusPivot = 30.0
	ageBonusSlope = 0.05
	ageBonusMin   = -0.3
	ageBonusMax   = 0.4
	savingsWeight = 0.4

	winNowMinImprovement       = 0.5
	rebuildMinImprovement      = 0.25
	rebuildYoungMinImprovement = 0.10

	youngAge         = 22
	rebuildYoungAge  = 25
	cheapSalary      = 1_500_000.0
	olderAgeGap      = 2
	prospectMaxAge   = 25
	prospectAgePivot = 27.0
	prospectAgeSlope = 0.1
	prospectAgeMax   = 0.6
	prospectHeadroom = 0.4
)

// weakView is what ranking needs from the weak player.
type weakView struct {
	eval     model.Evaluation
	salary   float64
	weakest  model.Bundle
	ageKnown bool
}

// ageKnown reports whether p carries a birth date. Players without one get no
// age-based bonus or exception.
func ageKnown(p *model.PlayerProfile) bool { return !p.BirthDate.IsZero() }

// rank applies the benchmark filter, the tier gate and the score to one
// candidate. It reports false when the candidate is discarded.
func (s *Searcher) rank(mode model.Mode, w weakView, c *model.PlayerProfile, ev model.Evaluation) (model.CandidateScore, bool) {
	if ev.Rating == model.RatingWeak || ev.Rating == model.RatingBelowAverage {
		return model.CandidateScore{}, false
	}
	if ev.Bundles[w.weakest] < w.eval.Bundles[w.weakest] {
		return model.CandidateScore{}, false
	}
	known := ageKnown(c)
	youngCheapElite := known && ev.Age <= youngAge && c.Contract.Salary < cheapSalary && ev.Rating == model.RatingElite
	if mode == model.ModeWinNow && youngCheapElite {
		return model.CandidateScore{}, false
	}
	if !tierAllowed(mode, w, c, ev) {
		return model.CandidateScore{}, false
	}

	improvement := ev.ImpactZ - w.eval.ImpactZ
	young := known && ev.Age <= rebuildYoungAge && c.Contract.Salary < cheapSalary
	switch mode {
	case model.ModeRebuild:
		floor := rebuildMinImprovement
		if young {
			floor = rebuildYoungMinImprovement
		}
		if improvement < floor {
			return model.CandidateScore{}, false
		}
	default:
		if improvement < winNowMinImprovement {
			return model.CandidateScore{}, false
		}
	}

	reasons := []string{fmt.Sprintf("impact z %+.2f over current (%s vs %s)", improvement, ev.Tier, w.eval.Tier)}
	score := improvement
	switch ev.Rating {
	case model.RatingElite:
		score += eliteBonus
		reasons = append(reasons, "elite against role benchmark")
	case model.RatingAboveAverage:
		score += aboveAverageBonus
		reasons = append(reasons, "above average against role benchmark")
	}

	vc, vw := value(ev.ImpactZ, c.Contract.Salary), value(w.eval.ImpactZ, w.salary)
	ratio := vc / vw
	score += clamp(math.Log(ratio), -efficiencyClamp, efficiencyClamp) * efficiencyWeight

	var trades []string
	sc, sw := c.Contract.Salary, w.salary
	if improvement > 0 && math.Abs(sc-sw) <= sameSalaryTolerance*sw {
		trades = append(trades, TradeSameSalaryUpgrade)
		score += sameSalaryBonus
	}
	if improvement >= 0 && sc <= capEfficiencyShare*sw {
		trades = append(trades, TradeCapEfficiency)
		score += capEfficiencyBonus
	}
	if ratio >= overpaidRatio && sc < sw {
		trades = append(trades, TradeOverpaidForValue)
		score += overpaidBonus
	}

	if mode == model.ModeRebuild {
		if sw > 0 {
			score += clamp((sw-sc)/sw, 0, 1) * savingsWeight
		}
		if known {
			score += AgeBonus(ev.Age)
			if youngCheapElite {
				reasons = append(reasons, "young, cost-controlled elite performer")
			}
			reasons = append(reasons, fmt.Sprintf("age %d fits a rebuild", ev.Age))
		}
	}
	if sc < sw {
		reasons = append(reasons, fmt.Sprintf("saves $%.2fM", (sw-sc)/million))
	}

	return model.CandidateScore{
		Player:      *c,
		Role:        ev.Role(),
		Score:       score,
		Tier:        ev.Tier,
		Rating:      ev.Rating,
		Realistic:   true,
		Improvement: improvement,
		TradeTypes:  trades,
		Source:      model.SourceLeague,
		Reasons:     reasons,
	}, true
}

// tierAllowed is the trade-realism gate. Lateral and downward moves pass;
// one tier up needs an older candidate, or in rebuild a young, no-dearer one.
// Both exceptions need known ages.
func tierAllowed(mode model.Mode, w weakView, c *model.PlayerProfile, ev model.Evaluation) bool {
	steps := ev.Tier.StepsAbove(w.eval.Tier)
	known := ageKnown(c)
	switch {
	case steps <= 0:
		return true
	case steps > 1:
		return false
	case known && w.ageKnown && ev.Age >= w.eval.Age+olderAgeGap:
		return true
	case mode == model.ModeRebuild && known && ev.Age <= rebuildYoungAge && c.Contract.Salary <= w.salary:
		return true
	default:
		return false
	}
}

// AgeBonus is the rebuild age term; it never increases with age.
func AgeBonus(age int) float64 {
	return clamp((ageBonusPivot-float64(age))*ageBonusSlope, ageBonusMin, ageBonusMax)
}

// value is performance per salary million.
func value(z, salary float64) float64 {
	return math.Max(z+valueShift, minValue) / math.Max(salary/million, minSalaryMillion)
}

// prospects scores development-league players by age and salary headroom only.
func (s *Searcher) prospects(ctx context.Context, weak *model.PlayerProfile, r model.Role, mode model.Mode,
	t *benchmark.Table, pool []model.PlayerProfile,
) ([]model.CandidateScore, error) {
	_, hi := s.Band(mode).Range(weak.Contract.Salary)
	asOf := s.evaluator.ReferenceDate()
	var picks []*model.PlayerProfile
	for i := range pool {
		c := &pool[i]
		if !s.eligible(weak, c, r) {
			continue
		}
		if _, ok := s.development[c.League]; !ok {
			continue
		}
		if c.Contract.Salary > hi || c.Age(asOf) > prospectMaxAge {
			continue
		}
		picks = append(picks, c)
	}
	evals, err := s.evaluateAll(ctx, picks, t)
	if err != nil {
		return nil, err
	}

	out := make([]model.CandidateScore, 0, len(picks))
	for i, c := range picks {
		ev := evals[i]
		ageTerm := 0.0
		if ageKnown(c) {
			ageTerm = clamp((prospectAgePivot-float64(ev.Age))*prospectAgeSlope, 0, prospectAgeMax)
		}
		headroom := 0.0
		if hi > 0 {
			headroom = clamp((hi-c.Contract.Salary)/hi, 0, 1) * prospectHeadroom
		}
		out = append(out, model.CandidateScore{
			Player:    *c,
			Role:      ev.Role(),
			Score:     ageTerm + headroom,
			Tier:      ev.Tier,
			Rating:    ev.Rating,
			Realistic: true,
			Source:    model.SourceDevelopment,
			Reasons:   []string{fmt.Sprintf("%s prospect, age %d, $%.2fM", c.League, ev.Age, c.Contract.Salary/million)},
		})
	}
	sortCandidates(out)
	return truncate(out, s.maxProspects), nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
