package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/openhack/arena/pkg/metrics"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManager(t *testing.T) {
	Convey("Given a manager on a fresh registry", t, func() {
		reg := prometheus.NewRegistry()
		m := metrics.NewManager(metrics.WithRegistry(reg), metrics.WithNamespace("arena_test"))
		So(m, ShouldNotBeNil)

		Convey("Then all collectors are gathered", func() {
			families, err := reg.Gather()
			So(err, ShouldBeNil)
			// Vec collectors only appear after first use; plain ones are present.
			So(len(families), ShouldBeGreaterThan, 0)
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("Then recording helpers do not panic", func() {
			So(func() {
				metrics.RecordScore()
				metrics.RecordDuplicateScore()
				metrics.RecordWeightRejection()
				metrics.RecordPhaseViolation("record_score")
				metrics.RecordAggregationRun()
				metrics.RecordAggregationDuration(12.5)
				metrics.UpdateAggregationTeams(3)
				metrics.RecordHTTPRequest("scores", "POST", "201")
				metrics.RecordHTTPRequestDuration("scores", "POST", "201", 4.2)
				metrics.RecordEventQueued()
				metrics.RecordEventDuplicate()
				metrics.RecordEventDropped()
				metrics.RecordJudgePruned()
				metrics.UpdateQueueSize(7)
				metrics.UpdateWorkerCount(4)
				metrics.RecordUpstreamError("roster")
			}, ShouldNotPanic)
		})

		Convey("Then the custom registry is exposed", func() {
			So(metrics.GetRegistry(), ShouldNotBeNil)
		})
	})
}
