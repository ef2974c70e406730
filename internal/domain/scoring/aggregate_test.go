package scoring_test

import (
	"testing"

	"github.com/openhack/arena/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAggregate(t *testing.T) {
	Convey("Given criteria A=0.6 and B=0.4 and two judges", t, func() {
		// Judge 1 scores team 1 on both criteria, judge 2 only on A.
		scores := []scoring.RatedScore{
			{TeamID: 1, JudgeID: 1, Value: 80, Weight: 0.6},
			{TeamID: 1, JudgeID: 1, Value: 50, Weight: 0.4},
			{TeamID: 1, JudgeID: 2, Value: 100, Weight: 0.6},
		}

		Convey("When aggregating", func() {
			result := scoring.Aggregate(scores)

			Convey("Then the final score is the mean of per-judge weighted sums", func() {
				// J1: 0.6*80 + 0.4*50 = 68; J2: 0.6*100 = 60; mean = 64.
				So(result, ShouldHaveLength, 1)
				So(result[0].TeamID, ShouldEqual, 1)
				So(result[0].Score, ShouldAlmostEqual, 64.0, 1e-9)
			})
		})
	})

	Convey("Given scores for several teams", t, func() {
		scores := []scoring.RatedScore{
			{TeamID: 1, JudgeID: 1, Value: 40, Weight: 1.0},
			{TeamID: 2, JudgeID: 1, Value: 90, Weight: 1.0},
			{TeamID: 3, JudgeID: 1, Value: 70, Weight: 1.0},
		}

		Convey("When aggregating", func() {
			result := scoring.Aggregate(scores)

			Convey("Then teams come back ordered by score descending", func() {
				So(result, ShouldHaveLength, 3)
				So(result[0].TeamID, ShouldEqual, 2)
				So(result[1].TeamID, ShouldEqual, 3)
				So(result[2].TeamID, ShouldEqual, 1)
			})
		})
	})

	Convey("Given a judge who scored only some criteria", t, func() {
		scores := []scoring.RatedScore{
			{TeamID: 5, JudgeID: 9, Value: 100, Weight: 0.3},
		}

		Convey("Then missing criteria contribute nothing, not zero-filled weight", func() {
			result := scoring.Aggregate(scores)
			So(result, ShouldHaveLength, 1)
			So(result[0].Score, ShouldAlmostEqual, 30.0, 1e-9)
		})
	})

	Convey("Given no scores at all", t, func() {
		Convey("Then the result is empty, not an error", func() {
			So(scoring.Aggregate(nil), ShouldBeEmpty)
			So(scoring.Aggregate([]scoring.RatedScore{}), ShouldBeEmpty)
		})
	})

	Convey("Given identical input aggregated twice", t, func() {
		scores := []scoring.RatedScore{
			{TeamID: 1, JudgeID: 1, Value: 80, Weight: 0.6},
			{TeamID: 1, JudgeID: 2, Value: 60, Weight: 0.6},
			{TeamID: 2, JudgeID: 1, Value: 75, Weight: 0.4},
		}

		Convey("Then both runs produce identical results", func() {
			first := scoring.Aggregate(scores)
			second := scoring.Aggregate(scores)
			So(second, ShouldResemble, first)
		})
	})
}
