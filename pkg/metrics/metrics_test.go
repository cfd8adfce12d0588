package metrics

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithRegistry(registry))

			Convey("Then it should register under the default namespace", func() {
				So(manager, ShouldNotBeNil)
				manager.scanCycles.Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(families, ShouldNotBeEmpty)
				So(families[0].GetName(), ShouldStartWith, "plcsim_controller_")
			})
		})

		Convey("When creating with custom scan buckets", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithScanBuckets([]float64{1, 2, 3}),
				WithRegistry(registry),
			)
			manager.scanDuration.Observe(1.5)

			Convey("Then the histogram should use them", func() {
				So(manager.scanBuckets, ShouldResemble, []float64{1, 2, 3})
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				var bounds []float64
				for _, f := range families {
					if f.GetName() == "plcsim_controller_scan_duration_milliseconds" {
						for _, b := range f.GetMetric()[0].GetHistogram().GetBucket() {
							bounds = append(bounds, b.GetUpperBound())
						}
					}
				}
				So(bounds, ShouldResemble, []float64{1, 2, 3})
			})
		})

		Convey("When passing empty options", func() {
			manager := NewManager(
				WithScanBuckets(nil),
				WithRegistry(prometheus.NewRegistry()),
			)

			Convey("Then defaults should be kept", func() {
				So(manager.scanBuckets, ShouldResemble, defaultScanBuckets)
			})
		})
	})
}

func TestPeriodBuckets(t *testing.T) {
	Convey("Given a 10ms scan period", t, func() {
		buckets := PeriodBuckets(10 * time.Millisecond)

		Convey("Then the buckets bracket the period", func() {
			So(buckets, ShouldHaveLength, len(periodFractions))
			So(buckets, ShouldContain, 10.0)
			So(buckets[0], ShouldAlmostEqual, 0.1, 1e-9)
			So(buckets[len(buckets)-1], ShouldAlmostEqual, 50.0, 1e-9)
		})
	})

	Convey("Given no period", t, func() {
		So(PeriodBuckets(0), ShouldResemble, defaultScanBuckets)
	})

	Convey("Given Init with period buckets", t, func() {
		before := GetRegistry()
		Init(WithScanBuckets(PeriodBuckets(4 * time.Millisecond)))
		defer Init()

		Convey("Then helpers record into the fresh registry", func() {
			So(GetRegistry() != before, ShouldBeTrue)
			So(global().scanBuckets, ShouldResemble, PeriodBuckets(4*time.Millisecond))

			RecordScanCycle(5)
			So(testutil.ToFloat64(global().scanCycles), ShouldEqual, 1.0)
			count, err := testutil.GatherAndCount(GetRegistry(), "plcsim_controller_scan_cycles_total")
			So(err, ShouldBeNil)
			So(count, ShouldEqual, 1)
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording scan cycles", func() {
			before := testutil.ToFloat64(global().scanCycles)
			RecordScanCycle(0.4)
			RecordScanCycle(1.2)

			Convey("Then the counter and last duration should follow", func() {
				So(testutil.ToFloat64(global().scanCycles), ShouldEqual, before+2)
				So(testutil.ToFloat64(global().scanLastDuration), ShouldEqual, 1.2)
			})
		})

		Convey("When recording rule faults", func() {
			before := testutil.ToFloat64(global().ruleFaults.WithLabelValues("metrics-test"))
			RecordRuleFault("metrics-test")

			Convey("Then the labelled counter should increase", func() {
				So(testutil.ToFloat64(global().ruleFaults.WithLabelValues("metrics-test")), ShouldEqual, before+1)
			})
		})

		Convey("When publishing process image values", func() {
			UpdateDigitalPoint("Y9", "output", true)
			UpdateAnalogPoint("AO9", "output", 42.5)
			UpdateCounterValue("C9", 7)
			UpdateTimerElapsed("T9", 1.5)
			UpdateEngineRunning(true)

			Convey("Then gauges should hold them", func() {
				So(testutil.ToFloat64(global().digitalPoints.WithLabelValues("Y9", "output")), ShouldEqual, 1.0)
				So(testutil.ToFloat64(global().analogPoints.WithLabelValues("AO9", "output")), ShouldEqual, 42.5)
				So(testutil.ToFloat64(global().counterValues.WithLabelValues("C9")), ShouldEqual, 7.0)
				So(testutil.ToFloat64(global().timerElapsed.WithLabelValues("T9")), ShouldEqual, 1.5)
				So(testutil.ToFloat64(global().engineRunning), ShouldEqual, 1.0)
			})

			UpdateEngineRunning(false)
		})

		Convey("When recording the remaining helpers", func() {
			So(func() {
				RecordScanOverrun()
				RecordEngineStart()
				RecordPointWrite("digital")
				RecordPointWriteRejected("analog", "unknown")
				RecordSnapshot()
				ObserveHTTPRequest("healthz", "GET", 200, time.Millisecond)
				UpdateSystemMemoryUsage(1024)
				UpdateSystemGoroutineCount(12)
			}, ShouldNotPanic)
		})

		Convey("When gathering the custom registry", func() {
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)

			Convey("Then only controller metrics should be present", func() {
				for _, f := range families {
					So(strings.HasPrefix(f.GetName(), "plcsim_controller_"), ShouldBeTrue)
				}
			})
		})
	})
}

func TestMetricsConcurrency(t *testing.T) {
	Convey("Given concurrent recorders", t, func() {
		before := testutil.ToFloat64(global().snapshotsTaken)

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					RecordSnapshot()
				}
			}()
		}
		wg.Wait()

		Convey("Then no increments should be lost", func() {
			So(testutil.ToFloat64(global().snapshotsTaken), ShouldEqual, before+1000)
		})
	})
}
