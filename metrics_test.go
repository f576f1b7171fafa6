package qsweep

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestMetrics(t *testing.T) {
	Convey("Given fresh metrics", t, func() {
		m := NewMetrics()

		Convey("Nothing should be recorded yet", func() {
			transforms, pairs := m.Snapshot()
			So(transforms, ShouldEqual, 0)
			So(pairs, ShouldEqual, 0)
		})

		Convey("When recording sweeps", func() {
			for i := 0; i < 20; i++ {
				m.recordTransform(i%3+1, 8, time.Now().Add(-time.Duration(i+1)*time.Millisecond))
			}
			m.setWorkers(4)

			Convey("Counts and latencies should be tracked", func() {
				transforms, pairs := m.Snapshot()
				So(transforms, ShouldEqual, 20)
				So(pairs, ShouldEqual, 160)
				So(m.LastTarget, ShouldEqual, 2)
				So(m.AverageSweepLatency, ShouldBeGreaterThan, 0)
				So(m.P95SweepLatency, ShouldBeGreaterThanOrEqualTo, m.AverageSweepLatency)
				So(m.P99SweepLatency, ShouldBeGreaterThanOrEqualTo, m.P95SweepLatency)
			})

			Convey("The export should carry every field", func() {
				exported := m.ExportMetrics()
				So(exported["worker_count"], ShouldEqual, 4)
				So(exported["transforms"], ShouldEqual, int64(20))
				So(exported["pairs_processed"], ShouldEqual, uint64(160))
				So(exported, ShouldContainKey, "p99_latency_us")
			})
		})

		Convey("The latency window should stay bounded", func() {
			for i := 0; i < m.windowSize+50; i++ {
				m.recordTransform(1, 1, time.Now())
			}
			So(len(m.latencyWindow), ShouldEqual, m.windowSize)
		})
	})
}
