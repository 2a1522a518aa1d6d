package config_test

import (
	"context"
	"errors"
	"runtime"
	"testing"

	"github.com/okian/rinkscout/internal/config"
	"github.com/okian/rinkscout/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.QueueSize, convey.ShouldEqual, 4_096)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.MinTOIForConfidence, convey.ShouldEqual, 300)
			convey.So(cfg.SearchMode(), convey.ShouldEqual, model.ModeWinNow)
			convey.So(cfg.TopTierLeagues, convey.ShouldResemble, []string{"NHL"})
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given a default config", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("When the mode is unknown", func() {
			cfg.Mode = "tank"
			err := cfg.Validate()

			convey.Convey("Then it wraps both the config and mode sentinels", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(errors.Is(err, model.ErrUnknownMode), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a salary band is inverted", func() {
			cfg.RebuildLower, cfg.RebuildUpper = 1.2, 0.8
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When a prior weight names an unknown metric", func() {
			cfg.PriorWeights = map[string]float64{"vibes_per60": 10}
			err := cfg.Validate()
			convey.So(errors.Is(err, config.ErrUnknownMetric), convey.ShouldBeTrue)
		})

		convey.Convey("When a prior weight is negative", func() {
			cfg.PriorWeights = map[string]float64{"goals_per60": -1}
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When the reference date is malformed", func() {
			cfg.ReferenceDate = "10/01/2025"
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When the reference date is valid", func() {
			cfg.ReferenceDate = "2025-10-01"
			ref, err := cfg.Reference()
			convey.So(err, convey.ShouldBeNil)
			convey.So(ref.Year(), convey.ShouldEqual, 2025)
			convey.So(int(ref.Month()), convey.ShouldEqual, 10)
		})

		convey.Convey("When prior weights use mixed case", func() {
			cfg.PriorWeights = map[string]float64{"FACEOFF_PCT": 250}
			convey.So(cfg.Validate(), convey.ShouldBeNil)
			convey.So(cfg.MetricPriorWeights()[model.MetricFaceoffPct], convey.ShouldEqual, 250)
		})
	})
}
