package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given the global logger", t, func() {
		Convey("When it is initialized", func() {
			So(Init(), ShouldBeNil)
			defer func() { So(Sync(), ShouldBeNil) }()

			Convey("Then Get and Named return usable loggers", func() {
				So(Get(), ShouldNotBeNil)
				named := Named("evaluator")
				So(named, ShouldNotBeNil)
				named.Info(context.Background(), "named message")
			})
		})
	})
}

func TestLoggerJSONOutput(t *testing.T) {
	Convey("Given a JSON logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		So(Init(WithOutput(&buf), WithFormat(FormatJSON), WithSource(false)), ShouldBeNil)

		Convey("When a record with fields is logged", func() {
			Get().Info(context.Background(), "roster evaluated",
				String("team", "BOS"), Int("players", 23), Float64("avg_z", -0.12), Bool("fallback", false))

			Convey("Then the record carries the fields", func() {
				var rec map[string]any
				So(json.Unmarshal(buf.Bytes(), &rec), ShouldBeNil)
				So(rec["msg"], ShouldEqual, "roster evaluated")
				So(rec["team"], ShouldEqual, "BOS")
				So(rec["players"], ShouldEqual, float64(23))
				So(rec, ShouldNotContainKey, "source")
			})
		})

		Convey("When the level is raised to error", func() {
			So(SetLevelString("error"), ShouldBeNil)
			Get().Info(context.Background(), "dropped")
			Get().Error(context.Background(), "kept", Error(errors.New("boom")))

			Convey("Then only the error record is written", func() {
				out := buf.String()
				So(out, ShouldNotContainSubstring, "dropped")
				So(out, ShouldContainSubstring, "kept")
				So(out, ShouldContainSubstring, "boom")
			})
		})
	})
}

func TestLoggerSource(t *testing.T) {
	Convey("Given a text logger with caller locations", t, func() {
		var buf bytes.Buffer
		So(Init(WithOutput(&buf)), ShouldBeNil)

		Convey("When a record is logged", func() {
			Get().Warn(context.Background(), "slow batch")

			Convey("Then the source points at this test file", func() {
				So(strings.Contains(buf.String(), "logger_test.go"), ShouldBeTrue)
			})
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level names", t, func() {
		for _, lvl := range []string{"debug", "INFO", " warn ", "warning", "error", ""} {
			So(SetLevelString(lvl), ShouldBeNil)
		}
		So(SetLevelString("verbose"), ShouldNotBeNil)
	})
}

func TestDiscard(t *testing.T) {
	Convey("Given a discard logger", t, func() {
		l := Discard()
		Convey("Then logging is a no-op", func() {
			So(func() { l.Error(context.Background(), "ignored", Any("k", 1)) }, ShouldNotPanic)
			So(l.Named("x"), ShouldNotBeNil)
		})
	})
}
