package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	service "github.com/okian/rinkscout/internal/app"
	"github.com/okian/rinkscout/internal/domain/benchmark"
	"github.com/okian/rinkscout/internal/domain/model"
	"github.com/okian/rinkscout/internal/domain/scoring"
	"github.com/okian/rinkscout/internal/leaguegen"
	. "github.com/smartystreets/goconvey/convey"
)

func TestService_LeaguePipeline(t *testing.T) {
	Convey("Given a synthetic league and a started service", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		gen := leaguegen.New(leaguegen.WithTeams(8), leaguegen.WithSeed(42))
		league, err := gen.Generate(ctx)
		So(err, ShouldBeNil)

		svc := service.New(
			service.WithWorkerCount(4),
			service.WithQueueSize(32),
			service.WithBuilderOptions(benchmark.WithMinTOI(0), benchmark.WithMinSamples(1)),
			service.WithEvaluatorOptions(scoring.WithReferenceDate(gen.Config().ReferenceDate)),
		)
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		table, err := svc.BuildBenchmarks(ctx, league)
		So(err, ShouldBeNil)

		Convey("When the league is ranked", func() {
			n, err := svc.RankLeague(ctx, league, table)

			Convey("Then every player is ranked in impact order", func() {
				So(err, ShouldBeNil)
				So(n, ShouldEqual, len(league))
				top, err := svc.TopN(ctx, n)
				So(err, ShouldBeNil)
				So(top, ShouldHaveLength, n)
				for i := 1; i < len(top); i++ {
					So(top[i-1].ImpactZ, ShouldBeGreaterThanOrEqualTo, top[i].ImpactZ)
					So(top[i].Rank, ShouldEqual, i+1)
				}
				e, err := svc.Rank(ctx, top[3].PlayerID)
				So(err, ShouldBeNil)
				So(e.Rank, ShouldEqual, 4)
			})
		})

		Convey("When a roster is evaluated through the queue", func() {
			var roster []model.PlayerProfile
			for i := range league {
				if league[i].TeamID == leaguegen.TeamID(0) {
					roster = append(roster, league[i])
				}
			}
			evals, err := svc.EvaluateRoster(ctx, roster, table)

			Convey("Then results match single evaluations in input order", func() {
				So(err, ShouldBeNil)
				So(evals, ShouldHaveLength, len(roster))
				for i := range roster {
					So(evals[i].PlayerID, ShouldEqual, roster[i].ID)
					single, err := svc.EvaluatePlayer(ctx, &roster[i], table)
					So(err, ShouldBeNil)
					So(evals[i].Action, ShouldEqual, single.Action)
					So(evals[i].ImpactZ, ShouldAlmostEqual, single.ImpactZ, 1e-12)
					So(evals[i].Confidence+evals[i].Volatility, ShouldAlmostEqual, 1, 1e-12)
					So(evals[i].Misuse.Score, ShouldBeBetweenOrEqual, 0, 2)
				}
			})

			Convey("And replacement searches respect team, group and limits", func() {
				for i, ev := range evals {
					for _, mode := range []model.Mode{model.ModeWinNow, model.ModeRebuild} {
						cands, err := svc.FindReplacementCandidates(ctx, &roster[i], ev.Role(), mode, table, league)
						So(err, ShouldBeNil)
						So(len(cands), ShouldBeLessThanOrEqualTo, 5)
						for _, c := range cands {
							So(c.Player.TeamID, ShouldNotEqual, roster[i].TeamID)
							So(c.Player.ID, ShouldNotEqual, roster[i].ID)
							So(c.Player.Position.Group(), ShouldEqual, ev.Role().Group())
							if c.Source == model.SourceLeague {
								So(c.Rating, ShouldNotEqual, model.RatingWeak)
								So(c.Rating, ShouldNotEqual, model.RatingBelowAverage)
							}
						}
					}
				}
			})
		})

		Convey("When the roster is evaluated after the service stops", func() {
			svc.Stop()
			_, err := svc.EvaluateRoster(ctx, league[:3], table)
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
		})
	})
}
