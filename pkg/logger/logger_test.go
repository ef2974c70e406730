package logger_test

import (
	"context"
	"testing"

	"github.com/openhack/arena/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	Convey("Given an initialized global logger", t, func() {
		So(logger.Init(), ShouldBeNil)

		Convey("Then Get returns a usable logger", func() {
			l := logger.Get()
			So(l, ShouldNotBeNil)
			So(func() {
				l.Info(context.Background(), "hello", logger.String("k", "v"))
			}, ShouldNotPanic)
		})

		Convey("Then Named returns a scoped logger", func() {
			l := logger.Named("scores")
			So(l, ShouldNotBeNil)
			So(func() {
				l.Debug(context.Background(), "scoped", logger.Int("n", 1))
			}, ShouldNotPanic)
		})

		Convey("When setting valid levels by string", func() {
			for _, lvl := range []string{"debug", "info", "warn", "warning", "error", ""} {
				So(logger.SetLevelString(lvl), ShouldBeNil)
			}
		})

		Convey("When setting an invalid level", func() {
			So(logger.SetLevelString("loud"), ShouldNotBeNil)
		})
	})
}
