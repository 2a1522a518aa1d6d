package model_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/okian/rinkscout/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestPosition(t *testing.T) {
	convey.Convey("Given listed position codes", t, func() {
		convey.Convey("Then common spellings are normalized", func() {
			convey.So(model.ParsePosition(" c "), convey.ShouldEqual, model.PositionCenter)
			convey.So(model.ParsePosition("L"), convey.ShouldEqual, model.PositionLeftWing)
			convey.So(model.ParsePosition("F"), convey.ShouldEqual, model.PositionRightWing)
			convey.So(model.ParsePosition("rd"), convey.ShouldEqual, model.PositionDefenseman)
			convey.So(model.ParsePosition("XX"), convey.ShouldEqual, model.Position(""))
		})

		convey.Convey("Then positions map to groups", func() {
			convey.So(model.PositionLeftWing.Group(), convey.ShouldEqual, model.GroupForward)
			convey.So(model.PositionDefenseman.Group(), convey.ShouldEqual, model.GroupDefense)
			convey.So(model.PositionGoalie.Group(), convey.ShouldEqual, model.GroupGoalie)
			convey.So(model.Position("XX").Group(), convey.ShouldEqual, model.GroupUnknown)
			convey.So(model.GroupUnknown.String(), convey.ShouldEqual, "unknown")
		})
	})
}

func TestRole(t *testing.T) {
	convey.Convey("Given the role set", t, func() {
		convey.Convey("Then names round-trip through text", func() {
			for _, r := range model.AllRoles() {
				b, err := r.MarshalText()
				convey.So(err, convey.ShouldBeNil)
				var back model.Role
				convey.So(back.UnmarshalText(b), convey.ShouldBeNil)
				convey.So(back, convey.ShouldEqual, r)
			}
			var r model.Role
			convey.So(errors.Is(r.UnmarshalText([]byte("enforcer")), model.ErrUnknownRole), convey.ShouldBeTrue)
		})

		convey.Convey("Then roles only allow positions of their group", func() {
			convey.So(model.RoleGrinder.Allows(model.PositionCenter), convey.ShouldBeTrue)
			convey.So(model.RoleGrinder.Allows(model.PositionDefenseman), convey.ShouldBeFalse)
			convey.So(model.RoleGoalie.Allows(model.PositionGoalie), convey.ShouldBeTrue)
			convey.So(model.RoleShutdownDefenseman.Allows("XX"), convey.ShouldBeFalse)
			convey.So(model.Role(42).Valid(), convey.ShouldBeFalse)
			convey.So(model.Role(42).String(), convey.ShouldEqual, "unknown")
		})

		convey.Convey("Then roles key JSON maps by name", func() {
			b, err := json.Marshal(map[model.Role]int{model.RoleGoalie: 1})
			convey.So(err, convey.ShouldBeNil)
			convey.So(string(b), convey.ShouldEqual, `{"goalie":1}`)
		})
	})
}

func TestPlayerProfile(t *testing.T) {
	convey.Convey("Given a player born on 15 March 2000", t, func() {
		p := &model.PlayerProfile{
			BirthDate:  time.Date(2000, 3, 15, 0, 0, 0, 0, time.UTC),
			Stats:      model.SeasonStats{GamesPlayed: 10, Goals: 3, Assists: 4},
			Deployment: model.Deployment{TimeOnIceMinutes: 180},
		}

		convey.Convey("Then age counts whole years", func() {
			convey.So(p.Age(time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)), convey.ShouldEqual, 24)
			convey.So(p.Age(time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)), convey.ShouldEqual, 25)
			convey.So(p.Age(time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)), convey.ShouldEqual, 0)
		})

		convey.Convey("Then per-game figures are derived", func() {
			convey.So(p.Stats.Points(), convey.ShouldEqual, 7)
			convey.So(p.IceTimePerGame(), convey.ShouldEqual, 18)
		})

		convey.Convey("Then an unknown birth date gives age zero", func() {
			convey.So((&model.PlayerProfile{}).Age(time.Now()), convey.ShouldEqual, 0)
			convey.So((&model.PlayerProfile{}).IceTimePerGame(), convey.ShouldEqual, 0)
		})
	})
}

func TestScores(t *testing.T) {
	convey.Convey("Given bundle scores", t, func() {
		s := model.BundleScores{0.5, -1, 0.2, -2}

		convey.Convey("Then the weakest bundle is found among the given ones", func() {
			convey.So(s.Weakest(), convey.ShouldEqual, model.BundleComposure)
			convey.So(s.Weakest(model.BundleOffense, model.BundleDefense), convey.ShouldEqual, model.BundleDefense)
		})
	})

	convey.Convey("Tiers count steps between them", t, func() {
		convey.So(model.TierStar.StepsAbove(model.TierSolid), convey.ShouldEqual, 1)
		convey.So(model.TierDepth.StepsAbove(model.TierSolid), convey.ShouldEqual, -1)
		convey.So(model.TierElite.String(), convey.ShouldEqual, "elite")
	})

	convey.Convey("Only two search modes exist", t, func() {
		m, err := model.ParseMode("rebuild")
		convey.So(err, convey.ShouldBeNil)
		convey.So(m, convey.ShouldEqual, model.ModeRebuild)
		_, err = model.ParseMode("tank")
		convey.So(errors.Is(err, model.ErrUnknownMode), convey.ShouldBeTrue)
	})
}
