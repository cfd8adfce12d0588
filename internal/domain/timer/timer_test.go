package timer_test

import (
	"testing"
	"time"

	"github.com/Ikarus0013/PLC-CodesysMimicing-DesktopAppExample/internal/domain/timer"
	. "github.com/smartystreets/goconvey/convey"
)

type manualClock struct{ t time.Time }

func (c *manualClock) Now() time.Time          { return c.t }
func (c *manualClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestTimer(t *testing.T) {
	Convey("Given a stopped timer on a manual clock", t, func() {
		clock := &manualClock{t: time.Unix(1_700_000_000, 0)}
		tm := timer.New("T1", timer.WithClock(clock.Now))

		So(tm.Name(), ShouldEqual, "T1")
		So(tm.Running(), ShouldBeFalse)
		So(tm.Elapsed(), ShouldEqual, time.Duration(0))

		Convey("When started and time passes", func() {
			tm.Start()
			clock.Advance(1500 * time.Millisecond)

			Convey("Then elapsed includes the open span", func() {
				So(tm.Running(), ShouldBeTrue)
				So(tm.Elapsed(), ShouldEqual, 1500*time.Millisecond)
			})

			Convey("Then starting again does not restart the span", func() {
				tm.Start()
				clock.Advance(500 * time.Millisecond)
				So(tm.Elapsed(), ShouldEqual, 2*time.Second)
			})

			Convey("Then stopping freezes the value", func() {
				tm.Stop()
				clock.Advance(10 * time.Second)
				So(tm.Running(), ShouldBeFalse)
				So(tm.Elapsed(), ShouldEqual, 1500*time.Millisecond)

				Convey("And stopping twice changes nothing", func() {
					tm.Stop()
					So(tm.Elapsed(), ShouldEqual, 1500*time.Millisecond)
				})

				Convey("And a second span accumulates on top", func() {
					tm.Start()
					clock.Advance(time.Second)
					So(tm.Elapsed(), ShouldEqual, 2500*time.Millisecond)
				})
			})

			Convey("Then reset zeroes and stops it", func() {
				tm.Reset()
				clock.Advance(time.Second)
				So(tm.Running(), ShouldBeFalse)
				So(tm.Elapsed(), ShouldEqual, time.Duration(0))
			})
		})

		Convey("Elapsed never mutates the timer", func() {
			tm.Start()
			clock.Advance(time.Second)
			_ = tm.Elapsed()
			_ = tm.Elapsed()
			So(tm.Elapsed(), ShouldEqual, time.Second)
		})
	})

	Convey("Given a timer with the default clock", t, func() {
		tm := timer.New("T2", timer.WithClock(nil))
		tm.Start()
		time.Sleep(5 * time.Millisecond)

		So(tm.Elapsed(), ShouldBeGreaterThanOrEqualTo, 5*time.Millisecond)
	})
}
