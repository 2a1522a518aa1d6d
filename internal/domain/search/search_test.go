package search_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okian/rinkscout/internal/domain/benchmark"
	"github.com/okian/rinkscout/internal/domain/model"
	"github.com/okian/rinkscout/internal/domain/scoring"
	"github.com/okian/rinkscout/internal/domain/search"
	. "github.com/smartystreets/goconvey/convey"
)

var asOf = time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)

// goalieTable makes impact z twice the save-percentage z.
func goalieTable() *benchmark.Table {
	return benchmark.NewTable(map[model.Role]benchmark.RoleBenchmark{
		model.RoleGoalie: {
			Metrics: map[model.Metric]benchmark.Stat{model.MetricSavePct: {Mean: 0.905, SD: 0.01}},
			Impact:  benchmark.Stat{Mean: 0, SD: 0.5},
		},
	}, benchmark.Stat{})
}

func goalie(id, team, league string, saves, age int, salary float64) model.PlayerProfile {
	return model.PlayerProfile{
		ID:        id,
		Name:      "Goalie " + id,
		Position:  model.PositionGoalie,
		BirthDate: asOf.AddDate(-age, -3, 0),
		TeamID:    team,
		League:    league,
		Stats: model.SeasonStats{
			GamesPlayed:  40,
			ShotsAgainst: 1200,
			Saves:        saves,
			GoalsAgainst: 1200 - saves,
		},
		Deployment: model.Deployment{TimeOnIceMinutes: 2400},
		Contract:   model.Contract{Salary: salary},
	}
}

func TestSearcher_Find(t *testing.T) {
	Convey("Given a searcher and a depth-tier goalie", t, func() {
		s := search.New(scoring.NewEvaluator(scoring.WithReferenceDate(asOf)), search.WithConcurrency(2))
		table := goalieTable()
		ctx := context.Background()
		weak := goalie("weak", "T01", "NHL", 1080, 28, 3_000_000)

		pool := []model.PlayerProfile{
			weak,
			goalie("veteran", "T02", "NHL", 1089, 31, 3_000_000),
			goalie("young", "T03", "NHL", 1089, 23, 1_000_000),
			goalie("peer", "T04", "NHL", 1089, 28, 3_000_000),
			goalie("teammate", "T01", "NHL", 1089, 31, 3_000_000),
			goalie("shaky", "T05", "NHL", 1068, 31, 3_000_000),
			goalie("abroad", "T06", "KHL", 1089, 31, 3_000_000),
		}

		Convey("When searching in win-now mode", func() {
			res, err := s.Find(ctx, &weak, model.RoleGoalie, model.ModeWinNow, table, pool)

			Convey("Then only the older candidate clears the tier gate", func() {
				So(err, ShouldBeNil)
				So(res.Fallback, ShouldBeFalse)
				So(res.Considered, ShouldEqual, 3)
				So(res.Candidates, ShouldHaveLength, 1)
				c := res.Candidates[0]
				So(c.Player.ID, ShouldEqual, "veteran")
				So(c.Rating, ShouldEqual, model.RatingAboveAverage)
				So(c.Tier, ShouldEqual, model.TierSolid)
				So(c.Improvement, ShouldAlmostEqual, 1.5, 1e-6)
				So(c.TradeTypes, ShouldContain, search.TradeSameSalaryUpgrade)
				So(c.Source, ShouldEqual, model.SourceLeague)
				So(c.Realistic, ShouldBeTrue)
			})
		})

		Convey("When searching in rebuild mode", func() {
			res, err := s.Find(ctx, &weak, model.RoleGoalie, model.ModeRebuild, table, pool)

			Convey("Then the young, cheaper candidate ranks first", func() {
				So(err, ShouldBeNil)
				So(res.Candidates, ShouldHaveLength, 2)
				So(res.Candidates[0].Player.ID, ShouldEqual, "young")
				So(res.Candidates[1].Player.ID, ShouldEqual, "veteran")
				So(res.Candidates[0].Score, ShouldBeGreaterThan, res.Candidates[1].Score)
				So(res.Candidates[0].TradeTypes, ShouldContain, search.TradeCapEfficiency)
				So(res.Candidates[0].TradeTypes, ShouldContain, search.TradeOverpaidForValue)
			})
		})

		Convey("When no league candidate survives", func() {
			thin := []model.PlayerProfile{
				goalie("shaky", "T05", "NHL", 1068, 31, 3_000_000),
				goalie("kid", "A01", "AHL", 1000, 20, 800_000),
				goalie("prospect", "A02", "AHL", 1000, 24, 800_000),
				goalie("journeyman", "A03", "AHL", 1100, 27, 800_000),
				goalie("pricey", "A04", "AHL", 1100, 21, 9_000_000),
			}
			res, err := s.Find(ctx, &weak, model.RoleGoalie, model.ModeWinNow, table, thin)

			Convey("Then young development prospects are offered", func() {
				So(err, ShouldBeNil)
				So(res.Fallback, ShouldBeTrue)
				So(res.Candidates, ShouldHaveLength, 2)
				So(res.Candidates[0].Player.ID, ShouldEqual, "kid")
				So(res.Candidates[1].Player.ID, ShouldEqual, "prospect")
				So(res.Candidates[0].Source, ShouldEqual, model.SourceDevelopment)
			})
		})

		Convey("When the pool is empty", func() {
			res, err := s.Find(ctx, &weak, model.RoleGoalie, model.ModeWinNow, table, nil)
			So(err, ShouldBeNil)
			So(res.Candidates, ShouldBeEmpty)
			So(res.Fallback, ShouldBeFalse)
		})

		Convey("When the inputs are invalid", func() {
			_, err := s.Find(ctx, nil, model.RoleGoalie, model.ModeWinNow, table, pool)
			So(errors.Is(err, search.ErrNilPlayer), ShouldBeTrue)

			_, err = s.Find(ctx, &weak, model.RoleGoalie, model.ModeWinNow, nil, pool)
			So(errors.Is(err, benchmark.ErrNilTable), ShouldBeTrue)

			_, err = s.Find(ctx, &weak, model.RoleGoalie, model.Mode("tank"), table, pool)
			So(errors.Is(err, model.ErrUnknownMode), ShouldBeTrue)
		})
	})
}

func TestSearcher_Options(t *testing.T) {
	Convey("Given custom bands and caps", t, func() {
		s := search.New(scoring.NewEvaluator(scoring.WithReferenceDate(asOf)),
			search.WithWinNowBand(search.Band{Lower: 0.9, Upper: 1.1}),
			search.WithRebuildBand(search.Band{Lower: 2, Upper: 1}),
			search.WithMaxCandidates(1),
		)

		Convey("Then valid bands replace the defaults and invalid ones are ignored", func() {
			lo, hi := s.Band(model.ModeWinNow).Range(1_000_000)
			So(lo, ShouldAlmostEqual, 900_000, 1e-6)
			So(hi, ShouldAlmostEqual, 1_100_000, 1e-6)
			So(s.Band(model.ModeRebuild).Lower, ShouldEqual, search.DefaultRebuildLower)
		})

		Convey("Then the win-now cushion widens small salaries", func() {
			b := search.Band{Lower: search.DefaultWinNowLower, Upper: search.DefaultWinNowUpper, Cushion: search.DefaultWinNowCushion}
			_, hi := b.Range(1_000_000)
			So(hi, ShouldEqual, 2_000_000)
		})
	})
}

func TestAgeBonus(t *testing.T) {
	Convey("The rebuild age bonus never increases with age", t, func() {
		prev := search.AgeBonus(16)
		for age := 17; age <= 45; age++ {
			cur := search.AgeBonus(age)
			So(cur, ShouldBeLessThanOrEqualTo, prev)
			prev = cur
		}
		So(search.AgeBonus(18), ShouldEqual, 0.4)
		So(search.AgeBonus(40), ShouldEqual, -0.3)
	})
}

// scorerTable benchmarks scorers on points per game (Offense) and on-ice xGA
// per 60 (Defense). Impact z is half the raw impact.
func scorerTable() *benchmark.Table {
	return benchmark.NewTable(map[model.Role]benchmark.RoleBenchmark{
		model.RoleScorer: {
			Metrics: map[model.Metric]benchmark.Stat{
				model.MetricPointsPerGame: {Mean: 0.5, SD: 0.2},
				model.MetricXGAPer60:      {Mean: 2.5, SD: 0.5},
			},
			Impact: benchmark.Stat{Mean: 0, SD: 2},
		},
	}, benchmark.Stat{})
}

// scorer builds a shooter over 50 games and 900 minutes with the given points
// and on-ice xGA per 60.
func scorer(id, team string, points int, xgaPer60 float64, age int, salary float64) model.PlayerProfile {
	return model.PlayerProfile{
		ID:        id,
		Name:      "Forward " + id,
		Position:  model.PositionRightWing,
		BirthDate: asOf.AddDate(-age, -3, 0),
		TeamID:    team,
		League:    "NHL",
		Stats: model.SeasonStats{
			GamesPlayed: 50,
			Goals:       points / 2,
			Assists:     points - points/2,
			Shots:       150,
			OnIceXGA:    xgaPer60 * 15,
		},
		Deployment: model.Deployment{TimeOnIceMinutes: 900},
		Ratings:    model.Ratings{ShootingAccuracy: 90, GettingOpen: 85},
		Contract:   model.Contract{Salary: salary},
	}
}

func TestSearcher_TierGate(t *testing.T) {
	Convey("Given a searcher and a goalie table", t, func() {
		s := search.New(scoring.NewEvaluator(scoring.WithReferenceDate(asOf)))
		table := goalieTable()
		ctx := context.Background()

		Convey("When the candidates sit two or more tiers above a depth goalie", func() {
			weak := goalie("weak", "T01", "NHL", 1080, 28, 3_000_000)
			pool := []model.PlayerProfile{
				goalie("ace", "T02", "NHL", 1098, 35, 3_000_000),
				goalie("star", "T03", "NHL", 1094, 35, 3_000_000),
			}

			Convey("Then neither is offered even with the age gap", func() {
				for _, mode := range []model.Mode{model.ModeWinNow, model.ModeRebuild} {
					res, err := s.Find(ctx, &weak, model.RoleGoalie, mode, table, pool)
					So(err, ShouldBeNil)
					So(res.Considered, ShouldEqual, 2)
					So(res.Candidates, ShouldBeEmpty)
				}
			})
		})

		Convey("When an elite goalie is measured against a solid one", func() {
			weak := goalie("weak", "T01", "NHL", 1086, 28, 3_000_000)
			pool := []model.PlayerProfile{goalie("ace", "T02", "NHL", 1098, 35, 3_000_000)}
			res, err := s.Find(ctx, &weak, model.RoleGoalie, model.ModeWinNow, table, pool)

			Convey("Then the elite goalie is out of reach", func() {
				So(err, ShouldBeNil)
				So(res.Candidates, ShouldBeEmpty)
			})
		})

		Convey("When a star goalie looks for an elite one", func() {
			weak := goalie("starter", "T01", "NHL", 1092, 28, 3_000_000)
			pool := []model.PlayerProfile{
				goalie("ace-old", "T02", "NHL", 1098, 31, 3_000_000),
				goalie("ace-peer", "T03", "NHL", 1098, 29, 3_000_000),
			}

			Convey("Then only the candidate with the age gap passes", func() {
				for _, mode := range []model.Mode{model.ModeWinNow, model.ModeRebuild} {
					res, err := s.Find(ctx, &weak, model.RoleGoalie, mode, table, pool)
					So(err, ShouldBeNil)
					So(res.Candidates, ShouldHaveLength, 1)
					So(res.Candidates[0].Player.ID, ShouldEqual, "ace-old")
					So(res.Candidates[0].Tier, ShouldEqual, model.TierElite)
				}
			})
		})

		Convey("When the weak goalie has no birth date", func() {
			weak := goalie("starter", "T01", "NHL", 1092, 28, 3_000_000)
			weak.BirthDate = time.Time{}
			pool := []model.PlayerProfile{goalie("ace-old", "T02", "NHL", 1098, 31, 3_000_000)}
			res, err := s.Find(ctx, &weak, model.RoleGoalie, model.ModeWinNow, table, pool)

			Convey("Then no age gap can be claimed", func() {
				So(err, ShouldBeNil)
				So(res.Candidates, ShouldBeEmpty)
			})
		})
	})
}

func TestSearcher_YoungCheapElite(t *testing.T) {
	Convey("Given a star goalie on a small contract", t, func() {
		s := search.New(scoring.NewEvaluator(scoring.WithReferenceDate(asOf)))
		table := goalieTable()
		ctx := context.Background()
		weak := goalie("starter", "T01", "NHL", 1092, 28, 1_000_000)
		pool := []model.PlayerProfile{
			goalie("phenom", "T02", "NHL", 1096, 21, 900_000),
			goalie("vet", "T03", "NHL", 1096, 31, 1_200_000),
		}

		Convey("When searching in win-now mode", func() {
			res, err := s.Find(ctx, &weak, model.RoleGoalie, model.ModeWinNow, table, pool)

			Convey("Then the young, cheap elite goalie is left alone", func() {
				So(err, ShouldBeNil)
				So(res.Considered, ShouldEqual, 2)
				So(res.Candidates, ShouldHaveLength, 1)
				So(res.Candidates[0].Player.ID, ShouldEqual, "vet")
			})
		})

		Convey("When searching in rebuild mode", func() {
			res, err := s.Find(ctx, &weak, model.RoleGoalie, model.ModeRebuild, table, pool)

			Convey("Then the same goalie is the target", func() {
				So(err, ShouldBeNil)
				So(res.Candidates, ShouldHaveLength, 1)
				c := res.Candidates[0]
				So(c.Player.ID, ShouldEqual, "phenom")
				So(c.Rating, ShouldEqual, model.RatingElite)
				So(c.Reasons, ShouldContain, "young, cost-controlled elite performer")
			})
		})

		Convey("When the young goalie's birth date is unknown", func() {
			unknown := goalie("phenom", "T02", "NHL", 1096, 21, 900_000)
			unknown.BirthDate = time.Time{}
			res, err := s.Find(ctx, &weak, model.RoleGoalie, model.ModeRebuild, table, []model.PlayerProfile{unknown})

			Convey("Then no age bonus or youth label is applied", func() {
				So(err, ShouldBeNil)
				So(res.Candidates, ShouldHaveLength, 1)
				So(res.Candidates[0].Reasons, ShouldNotContain, "young, cost-controlled elite performer")

				known, _ := s.Find(ctx, &weak, model.RoleGoalie, model.ModeRebuild, table, pool)
				So(res.Candidates[0].Score, ShouldBeLessThan, known.Candidates[0].Score)
			})
		})
	})
}

func TestSearcher_RebuildFavoursYouth(t *testing.T) {
	Convey("Given a 32-year-old depth goalie earning $8M", t, func() {
		s := search.New(scoring.NewEvaluator(scoring.WithReferenceDate(asOf)))
		weak := goalie("weak", "T01", "NHL", 1080, 32, 8_000_000)
		pool := []model.PlayerProfile{
			goalie("elder", "T02", "NHL", 1089, 34, 7_000_000),
			goalie("youth", "T03", "NHL", 1089, 24, 1_000_000),
		}

		Convey("When a rebuild search compares two equal performers", func() {
			res, err := s.Find(context.Background(), &weak, model.RoleGoalie, model.ModeRebuild, goalieTable(), pool)

			Convey("Then the 24-year-old on $1M ranks above the 34-year-old on $7M", func() {
				So(err, ShouldBeNil)
				So(res.Candidates, ShouldHaveLength, 2)
				So(res.Candidates[0].Player.ID, ShouldEqual, "youth")
				So(res.Candidates[1].Player.ID, ShouldEqual, "elder")
				So(res.Candidates[0].Improvement, ShouldAlmostEqual, res.Candidates[1].Improvement, 1e-9)
				So(res.Candidates[0].Score, ShouldBeGreaterThan, res.Candidates[1].Score)
			})
		})
	})
}

func TestSearcher_WeakestBundle(t *testing.T) {
	Convey("Given a scorer who produces but bleeds chances", t, func() {
		e := scoring.NewEvaluator(
			scoring.WithReferenceDate(asOf),
			scoring.WithPriorWeights(map[model.Metric]float64{model.MetricXGAPer60: 0}),
		)
		s := search.New(e)
		table := scorerTable()
		weak := scorer("weak", "T01", 35, 3.0, 28, 5_000_000)

		pool := []model.PlayerProfile{
			scorer("one-way", "T02", 55, 3.25, 31, 5_000_000),
			scorer("two-way", "T03", 55, 2.5, 31, 5_000_000),
		}

		Convey("When replacements are searched", func() {
			weakEval, err := e.EvaluateAs(&weak, model.RoleScorer, table)
			So(err, ShouldBeNil)
			So(weakEval.Bundles[model.BundleOffense], ShouldAlmostEqual, 1, 1e-9)
			So(weakEval.Bundles[model.BundleDefense], ShouldAlmostEqual, -1, 1e-9)

			res, err := s.Find(context.Background(), &weak, model.RoleScorer, model.ModeWinNow, table, pool)

			Convey("Then a better scorer who is worse defensively is filtered out", func() {
				So(err, ShouldBeNil)
				So(res.Considered, ShouldEqual, 2)
				So(res.Candidates, ShouldHaveLength, 1)
				So(res.Candidates[0].Player.ID, ShouldEqual, "two-way")
				So(res.Candidates[0].Role, ShouldEqual, model.RoleScorer)
			})
		})
	})
}
