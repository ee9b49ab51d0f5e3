package metrics_test

import (
	"testing"

	"github.com/okian/cambios/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	. "github.com/smartystreets/goconvey/convey"
)

func find(families []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, f := range families {
		if f.GetName() == name {
			return f
		}
	}
	return nil
}

func TestNewManager(t *testing.T) {
	Convey("Given a manager on a private registry", t, func() {
		registry := prometheus.NewRegistry()
		m := metrics.NewManager(
			metrics.WithNamespace("test"),
			metrics.WithSubsystem("unit"),
			metrics.WithHistogramBuckets([]float64{1, 10}),
			metrics.WithPrometheusRegistry(registry),
		)
		So(m, ShouldNotBeNil)

		Convey("Then plain collectors are registered under the namespace", func() {
			families, err := registry.Gather()
			So(err, ShouldBeNil)
			So(find(families, "test_unit_analyses_total"), ShouldNotBeNil)
			So(find(families, "test_unit_sessions_active"), ShouldNotBeNil)
			So(find(families, "test_unit_queue_capacity"), ShouldNotBeNil)
		})

		Convey("And a second manager on the same registry panics on duplicates", func() {
			So(func() { metrics.NewManager(metrics.WithNamespace("test"), metrics.WithSubsystem("unit"), metrics.WithPrometheusRegistry(registry)) }, ShouldPanic)
		})
	})
}

func TestRecorders(t *testing.T) {
	Convey("Given the global registry", t, func() {
		Convey("When recording analysis metrics", func() {
			metrics.RecordAnalysis(12)
			metrics.RecordAnalysisError("no_text")
			metrics.RecordEventsScanned("goal", 2)
			metrics.RecordInvalidMinutes(1)
			metrics.RecordTeamDetection("versus")
			metrics.RecordImpactLabel("POSITIVE")
			metrics.UpdateSessionsActive(3)

			Convey("Then they are gathered", func() {
				families, err := metrics.GetRegistry().Gather()
				So(err, ShouldBeNil)

				events := find(families, "cambios_analysis_events_scanned_total")
				So(events, ShouldNotBeNil)
				So(events.GetMetric()[0].GetCounter().GetValue(), ShouldBeGreaterThanOrEqualTo, 2)

				sessions := find(families, "cambios_analysis_sessions_active")
				So(sessions, ShouldNotBeNil)
				So(sessions.GetMetric()[0].GetGauge().GetValue(), ShouldEqual, 3)
			})
		})

		Convey("When recording HTTP, queue and worker metrics", func() {
			So(func() {
				metrics.RecordHTTPRequest("/teams", "GET", "200")
				metrics.RecordHTTPRequestDuration("/teams", "GET", "200", 1.5)
				metrics.RecordErrorByEndpoint("/analyses", "POST", "bad_request")
				metrics.UpdateQueueSize(1)
				metrics.UpdateQueueCapacity(10)
				metrics.RecordQueueEnqueue()
				metrics.RecordQueueDequeue()
				metrics.RecordQueueEnqueueError()
				metrics.UpdateWorkerActiveCount(2)
				metrics.RecordWorkerProcessed(4)
				metrics.RecordWorkerError()
			}, ShouldNotPanic)
		})
	})
}
