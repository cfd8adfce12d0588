package scenario_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Ikarus0013/PLC-CodesysMimicing-DesktopAppExample/internal/engine"
	"github.com/Ikarus0013/PLC-CodesysMimicing-DesktopAppExample/internal/scenario"
	"github.com/Ikarus0013/PLC-CodesysMimicing-DesktopAppExample/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func TestRun(t *testing.T) {
	Convey("Given a scenario with a short preset", t, func() {
		cfg := scenario.NewConfig()
		cfg.Preset = 60 * time.Millisecond
		cfg.ScanPeriod = time.Millisecond
		cfg.Samples = 200

		Convey("When it runs against the reference controller", func() {
			report, err := scenario.Run(context.Background(), cfg)

			Convey("Then every check passes", func() {
				So(err, ShouldBeNil)
				So(report.Passed(), ShouldBeTrue)
				So(report.RunID, ShouldNotBeEmpty)
				So(report.Checks, ShouldHaveLength, 5)

				names := make([]string, 0, len(report.Checks))
				for _, c := range report.Checks {
					names = append(names, c.Name)
				}
				So(names, ShouldResemble, []string{
					"timed-latch", "parity-counter", "analog-scale", "snapshot-consistency", "restart-retention",
				})
			})
		})
	})

	Convey("Given a preset longer than the wait timeout", t, func() {
		cfg := scenario.NewConfig()
		cfg.Preset = 600 * time.Millisecond
		cfg.Timeout = 200 * time.Millisecond
		cfg.ScanPeriod = time.Millisecond
		cfg.Samples = 100

		Convey("Then the latch is still given its full preset", func() {
			report, err := scenario.Run(context.Background(), cfg)
			So(err, ShouldBeNil)
			So(report.Failed(), ShouldBeEmpty)
			So(report.Checks[0].Name, ShouldEqual, "timed-latch")
			So(report.Checks[0].Passed, ShouldBeTrue)
			So(report.Checks[0].Duration, ShouldBeGreaterThanOrEqualTo, 600*time.Millisecond)
		})
	})

	Convey("Given a canceled context", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		Convey("Then the controller is not started", func() {
			report, err := scenario.Run(ctx, scenario.NewConfig())
			So(errors.Is(err, engine.ErrStartCanceled), ShouldBeTrue)
			So(errors.Is(err, scenario.ErrScenarioFailed), ShouldBeFalse)
			So(report.Checks, ShouldBeEmpty)
		})
	})
}

func TestReport(t *testing.T) {
	Convey("Given a report with one failed check", t, func() {
		report := &scenario.Report{
			RunID: "run-1",
			Checks: []scenario.Check{
				{Name: "timed-latch", Passed: true, Detail: "ok", Duration: 3 * time.Millisecond},
				{Name: "analog-scale", Passed: false, Detail: "AO0 wrong"},
			},
		}

		Convey("Then it is not passed and names the failure", func() {
			So(report.Passed(), ShouldBeFalse)
			So(report.Failed(), ShouldResemble, []string{"analog-scale"})
		})

		Convey("Then the text rendering marks each check", func() {
			var buf bytes.Buffer
			So(report.WriteText(&buf), ShouldBeNil)
			out := buf.String()
			So(out, ShouldContainSubstring, "PASS  timed-latch")
			So(out, ShouldContainSubstring, "FAIL  analog-scale")
			So(out, ShouldContainSubstring, "2 checks, 1 failed, run run-1")
		})
	})

	Convey("Given a zero config", t, func() {
		report, err := scenario.Run(context.Background(), &scenario.Config{Preset: 20 * time.Millisecond, Samples: 50})

		Convey("Then defaults fill the rest", func() {
			So(err, ShouldBeNil)
			So(report.Passed(), ShouldBeTrue)
		})
	})
}
