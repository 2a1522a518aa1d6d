package benchmark_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/okian/rinkscout/internal/domain/benchmark"
	"github.com/okian/rinkscout/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestStat_Z(t *testing.T) {
	Convey("A stat without spread gives zero z-scores", t, func() {
		So(benchmark.Stat{Mean: 1, SD: 0}.Z(5), ShouldEqual, 0)
		So(benchmark.Stat{Mean: 1, SD: math.NaN()}.Z(5), ShouldEqual, 0)
		So(benchmark.Stat{Mean: 1, SD: 2}.Z(5), ShouldEqual, 2)
		So(benchmark.Stat{Mean: 1, SD: 1e-12}.HasSignal(), ShouldBeFalse)
	})
}

func TestTable(t *testing.T) {
	Convey("Given a table built from a mutable map", t, func() {
		src := map[model.Role]benchmark.RoleBenchmark{
			model.RoleGrinder: {Metrics: map[model.Metric]benchmark.Stat{model.MetricHitsPer60: {Mean: 8, SD: 2}}},
			model.RoleScorer:  {Metrics: map[model.Metric]benchmark.Stat{model.MetricGoalsPer60: {Mean: 1, SD: 0.3}}},
			model.Role(99):    {},
		}
		table := benchmark.NewTable(src, benchmark.Stat{Mean: 100, SD: 2})
		src[model.RoleScorer].Metrics[model.MetricGoalsPer60] = benchmark.Stat{Mean: 9}

		Convey("Then later changes to the source do not leak in", func() {
			rb, ok := table.Role(model.RoleScorer)
			So(ok, ShouldBeTrue)
			So(rb.Metrics[model.MetricGoalsPer60].Mean, ShouldEqual, 1)
		})

		Convey("Then roles are listed in canonical order and invalid ones dropped", func() {
			So(table.Roles(), ShouldResemble, []model.Role{model.RoleScorer, model.RoleGrinder})
		})

		Convey("Then Require reports the first missing role", func() {
			So(table.Require(model.RoleScorer, model.RoleGrinder), ShouldBeNil)
			err := table.Require(model.RoleScorer, model.RoleGoalie)
			So(errors.Is(err, benchmark.ErrMissingRole), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "goalie")
		})

		Convey("Then priors come from the benchmark means", func() {
			v, ok := table.Priors(model.RoleGrinder).Prior(model.MetricHitsPer60)
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 8)
			So(table.Priors(model.RoleGoalie), ShouldBeNil)
		})
	})

	Convey("A nil table behaves as empty", t, func() {
		var table *benchmark.Table
		So(table.HasRole(model.RoleScorer), ShouldBeFalse)
		So(table.Roles(), ShouldBeEmpty)
		So(table.PDO(), ShouldResemble, benchmark.Stat{})
		So(errors.Is(table.Require(), benchmark.ErrNilTable), ShouldBeTrue)
	})
}

func TestCompare(t *testing.T) {
	Convey("Given a scorer benchmark", t, func() {
		table := benchmark.NewTable(map[model.Role]benchmark.RoleBenchmark{
			model.RoleScorer: {
				Metrics: map[model.Metric]benchmark.Stat{
					model.MetricPointsPerGame: {Mean: 0.6, SD: 0.2},
					model.MetricPIMPer60:      {Mean: 1, SD: 0.5},
					model.MetricCorsiPct:      {Mean: 0.5, SD: 0},
				},
				Impact: benchmark.Stat{Mean: 0, SD: 0.5},
			},
		}, benchmark.Stat{})

		Convey("When a player is compared", func() {
			ms := model.Metrics{model.MetricPointsPerGame: 1.0, model.MetricPIMPer60: 2.0, model.MetricCorsiPct: 0.7}
			c := benchmark.Compare(model.RoleScorer, ms, model.Deployment{}, table)

			Convey("Then z-scores are oriented so positive is good", func() {
				So(c.MetricZ[model.MetricPointsPerGame], ShouldAlmostEqual, 2, 1e-9)
				So(c.MetricZ[model.MetricPIMPer60], ShouldAlmostEqual, -2, 1e-9)
			})

			Convey("Then a metric with no spread carries no signal", func() {
				_, ok := c.MetricZ[model.MetricCorsiPct]
				So(ok, ShouldBeFalse)
				So(c.Bundles[model.BundleTransition], ShouldEqual, 0)
			})

			Convey("Then impact is the weighted bundle sum", func() {
				So(c.Bundles[model.BundleOffense], ShouldAlmostEqual, 2, 1e-9)
				So(c.Bundles[model.BundleComposure], ShouldAlmostEqual, -2, 1e-9)
				So(c.Impact, ShouldAlmostEqual, 0.65*2-0.10*2, 1e-9)
				So(c.ImpactZ, ShouldAlmostEqual, 2.2, 1e-9)
				So(c.Rating, ShouldEqual, model.RatingElite)
				So(c.Tier, ShouldEqual, model.TierElite)
				So(c.Drivers, ShouldHaveLength, 2)
			})
		})

		Convey("When deployment context is applied", func() {
			dz := 0.7
			dep := model.Deployment{CompetitionTier: 5, TeammateTier: 1, DefensiveZoneStartShare: &dz}
			c := benchmark.Compare(model.RoleScorer, model.Metrics{}, dep, table)

			Convey("Then the nudges are bounded", func() {
				So(c.Bundles[model.BundleDefense], ShouldAlmostEqual, 0.25, 1e-9)
				So(c.Bundles[model.BundleOffense], ShouldAlmostEqual, 0.10, 1e-9)
			})
		})

		Convey("When the role is absent", func() {
			c := benchmark.Compare(model.RoleGoalie, model.Metrics{model.MetricSavePct: 0.95}, model.Deployment{}, table)
			So(c.ImpactZ, ShouldEqual, 0)
			So(c.Rating, ShouldEqual, model.RatingAverage)
			So(c.Tier, ShouldEqual, model.TierSolid)
		})
	})

	Convey("Tier and rating buckets follow impact z", t, func() {
		So(benchmark.TierFor(2), ShouldEqual, model.TierElite)
		So(benchmark.TierFor(1), ShouldEqual, model.TierStar)
		So(benchmark.TierFor(0), ShouldEqual, model.TierSolid)
		So(benchmark.TierFor(-1), ShouldEqual, model.TierDepth)
		So(benchmark.TierFor(-2), ShouldEqual, model.TierReplacement)
		So(benchmark.RatingFor(0.5), ShouldEqual, model.RatingAboveAverage)
		So(benchmark.RatingFor(-0.5), ShouldEqual, model.RatingBelowAverage)
		So(benchmark.RatingFor(-1.5), ShouldEqual, model.RatingWeak)
	})
}

func goalie(id string, saves int, toi float64) model.PlayerProfile {
	return model.PlayerProfile{
		ID:       id,
		Position: model.PositionGoalie,
		Stats: model.SeasonStats{
			GamesPlayed: 30, ShotsAgainst: 1000, Saves: saves, GoalsAgainst: 1000 - saves,
			HighDangerShotsAgainst: 200, HighDangerSaves: 160, ExpectedGoalsAgainst: 90,
		},
		Deployment: model.Deployment{TimeOnIceMinutes: toi},
	}
}

func TestBuilder_Build(t *testing.T) {
	Convey("Given a builder", t, func() {
		b := benchmark.NewBuilder(benchmark.WithMinSamples(3), benchmark.WithConcurrency(2))
		ctx := context.Background()

		Convey("When the league has enough qualifying goalies", func() {
			league := []model.PlayerProfile{
				goalie("a", 900, 1800),
				goalie("b", 910, 1800),
				goalie("c", 920, 1800),
				goalie("bench", 700, 20),
				{ID: "x", Position: "XX"},
			}
			table, err := b.Build(ctx, league)

			Convey("Then only qualifying players shape the benchmark", func() {
				So(err, ShouldBeNil)
				So(table.Roles(), ShouldResemble, []model.Role{model.RoleGoalie})
				rb, _ := table.Role(model.RoleGoalie)
				So(rb.Samples, ShouldEqual, 3)
				So(rb.Metrics[model.MetricSavePct].Mean, ShouldAlmostEqual, 0.91, 1e-12)
				So(rb.Metrics[model.MetricSavePct].SD, ShouldAlmostEqual, math.Sqrt(2.0/3)*0.01, 1e-12)
				So(rb.Impact.Mean, ShouldAlmostEqual, 0, 1e-9)
				So(rb.Impact.HasSignal(), ShouldBeTrue)
			})
		})

		Convey("When no role reaches the sample floor", func() {
			_, err := b.Build(ctx, []model.PlayerProfile{goalie("a", 900, 1800)})
			So(errors.Is(err, benchmark.ErrEmptyLeague), ShouldBeTrue)
		})

		Convey("When the league is empty", func() {
			_, err := b.Build(ctx, nil)
			So(errors.Is(err, benchmark.ErrEmptyLeague), ShouldBeTrue)
		})

		Convey("When the context is cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := b.Build(cctx, []model.PlayerProfile{goalie("a", 900, 1800)})
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}
