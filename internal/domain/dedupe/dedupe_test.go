package dedupe_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/openhack/arena/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSeenAndRecord(t *testing.T) {
	ctx := context.Background()

	Convey("Given a fresh deduper", t, func() {
		d := dedupe.NewInMemoryDeduper()

		Convey("When recording a new id", func() {
			seen := d.SeenAndRecord(ctx, "evt-1")

			Convey("Then it is reported as new", func() {
				So(seen, ShouldBeFalse)
				So(d.Size(), ShouldEqual, 1)
			})

			Convey("And recording it again reports it as seen", func() {
				So(d.SeenAndRecord(ctx, "evt-1"), ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When unrecording an id", func() {
			d.SeenAndRecord(ctx, "evt-2")
			d.Unrecord(ctx, "evt-2")

			Convey("Then it can be recorded again", func() {
				So(d.SeenAndRecord(ctx, "evt-2"), ShouldBeFalse)
			})
		})
	})
}

func TestBoundedEviction(t *testing.T) {
	ctx := context.Background()

	Convey("Given a deduper bounded to 3 ids", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(3))

		Convey("When recording more ids than the bound", func() {
			for i := 0; i < 5; i++ {
				So(d.SeenAndRecord(ctx, fmt.Sprintf("evt-%d", i)), ShouldBeFalse)
			}

			Convey("Then the size stays at the bound", func() {
				So(d.Size(), ShouldEqual, 3)
			})

			Convey("And the oldest ids were evicted", func() {
				So(d.SeenAndRecord(ctx, "evt-0"), ShouldBeFalse)
				So(d.SeenAndRecord(ctx, "evt-4"), ShouldBeTrue)
			})
		})
	})
}
