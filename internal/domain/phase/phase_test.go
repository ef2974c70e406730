package phase_test

import (
	"testing"
	"time"

	"github.com/openhack/arena/internal/domain/model"
	"github.com/openhack/arena/internal/domain/phase"
	. "github.com/smartystreets/goconvey/convey"
)

func testHackathon() model.Hackathon {
	loc := time.FixedZone("UTC+3", 3*3600)
	return model.Hackathon{
		ID:             1,
		Name:           "spring-cup",
		StartDate:      time.Date(2026, 5, 1, 10, 0, 0, 0, loc),
		ScoreStartDate: time.Date(2026, 5, 3, 10, 0, 0, 0, loc),
		EndDate:        time.Date(2026, 5, 5, 10, 0, 0, 0, loc),
	}
}

func TestAt(t *testing.T) {
	h := testHackathon()

	Convey("Given a hackathon with ordered dates", t, func() {
		Convey("When now is before the start date", func() {
			f := phase.At(h.StartDate.Add(-time.Hour), h)

			Convey("Then only registry and settings edits are allowed", func() {
				So(f.CanEditRegistry, ShouldBeTrue)
				So(f.CanEditSettings, ShouldBeTrue)
				So(f.CanUploadSubmission, ShouldBeFalse)
				So(f.CanScore, ShouldBeFalse)
				So(f.CanViewResults, ShouldBeFalse)
			})
		})

		Convey("When now equals the start date", func() {
			f := phase.At(h.StartDate, h)

			Convey("Then the submission window has opened and edits have closed", func() {
				So(f.CanEditRegistry, ShouldBeFalse)
				So(f.CanEditSettings, ShouldBeFalse)
				So(f.CanUploadSubmission, ShouldBeTrue)
				So(f.CanScore, ShouldBeFalse)
			})
		})

		Convey("When now is between start and score start", func() {
			f := phase.At(h.StartDate.Add(24*time.Hour), h)

			So(f.CanUploadSubmission, ShouldBeTrue)
			So(f.CanEditSettings, ShouldBeFalse)
			So(f.CanScore, ShouldBeFalse)
			So(f.CanViewResults, ShouldBeFalse)
		})

		Convey("When now equals the score start date", func() {
			f := phase.At(h.ScoreStartDate, h)

			Convey("Then both the submission and scoring windows include the boundary", func() {
				So(f.CanUploadSubmission, ShouldBeTrue)
				So(f.CanScore, ShouldBeTrue)
			})
		})

		Convey("When now is inside the scoring window", func() {
			f := phase.At(h.ScoreStartDate.Add(time.Hour), h)

			So(f.CanScore, ShouldBeTrue)
			So(f.CanUploadSubmission, ShouldBeFalse)
			So(f.CanViewResults, ShouldBeFalse)
		})

		Convey("When now equals the end date", func() {
			f := phase.At(h.EndDate, h)

			Convey("Then scoring is still open and results become visible", func() {
				So(f.CanScore, ShouldBeTrue)
				So(f.CanViewResults, ShouldBeTrue)
			})
		})

		Convey("When now is after the end date", func() {
			f := phase.At(h.EndDate.Add(time.Hour), h)

			So(f.CanViewResults, ShouldBeTrue)
			So(f.CanScore, ShouldBeFalse)
			So(f.CanUploadSubmission, ShouldBeFalse)
			So(f.CanEditSettings, ShouldBeFalse)
		})

		Convey("When now is expressed in a different location", func() {
			// Same instant as one hour into the scoring window, in UTC.
			utcNow := h.ScoreStartDate.Add(time.Hour).UTC()
			f := phase.At(utcNow, h)

			Convey("Then flags match the hackathon's own timezone", func() {
				So(f.CanScore, ShouldBeTrue)
				So(f.CanUploadSubmission, ShouldBeFalse)
			})
		})
	})
}

func TestWindowsPartitionTime(t *testing.T) {
	h := testHackathon()

	Convey("Given instants swept across the whole lifecycle", t, func() {
		probes := []time.Time{
			h.StartDate.Add(-48 * time.Hour),
			h.StartDate.Add(-time.Second),
			h.StartDate,
			h.StartDate.Add(time.Second),
			h.ScoreStartDate.Add(-time.Second),
			h.ScoreStartDate,
			h.ScoreStartDate.Add(time.Second),
			h.EndDate.Add(-time.Second),
			h.EndDate,
			h.EndDate.Add(time.Second),
			h.EndDate.Add(48 * time.Hour),
		}

		Convey("Then every instant falls into at least one window", func() {
			for _, now := range probes {
				f := phase.At(now, h)
				any := f.CanEditSettings || f.CanUploadSubmission || f.CanScore || f.CanViewResults
				So(any, ShouldBeTrue)
			}
		})

		Convey("And overlap only happens at shared closed boundaries", func() {
			for _, now := range probes {
				f := phase.At(now, h)
				active := 0
				for _, on := range []bool{f.CanEditSettings, f.CanUploadSubmission, f.CanScore, f.CanViewResults} {
					if on {
						active++
					}
				}
				onBoundary := now.Equal(h.ScoreStartDate) || now.Equal(h.EndDate)
				if onBoundary {
					So(active, ShouldEqual, 2)
				} else {
					So(active, ShouldEqual, 1)
				}
			}
		})
	})
}

func TestSystemClock(t *testing.T) {
	Convey("Given the system clock", t, func() {
		var c phase.Clock = phase.SystemClock{}
		before := time.Now().Add(-time.Minute)
		So(c.Now().After(before), ShouldBeTrue)
	})
}
