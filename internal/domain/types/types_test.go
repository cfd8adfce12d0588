package types_test

import (
	"encoding/json"
	"testing"
	"time"

	types "github.com/Ikarus0013/PLC-CodesysMimicing-DesktopAppExample/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestStatus(t *testing.T) {
	Convey("Given a status", t, func() {
		st := types.Status{
			Inputs:        map[string]bool{"X0": true},
			Outputs:       map[string]bool{"Y0": false},
			AnalogInputs:  map[string]float64{"AI0": 60},
			AnalogOutputs: map[string]float64{"AO0": 100},
			Timers:        map[string]float64{"T1": 1.5},
			Counters:      map[string]uint64{"C1": 3},
			ScanTime:      0.001,
			Running:       true,
			Cycles:        42,
			TakenAt:       time.Unix(0, 0).UTC(),
		}

		Convey("When encoded as JSON", func() {
			raw, err := json.Marshal(st)
			So(err, ShouldBeNil)

			var decoded map[string]any
			So(json.Unmarshal(raw, &decoded), ShouldBeNil)

			Convey("Then it uses the status key names", func() {
				for _, key := range []string{"inputs", "outputs", "analog_inputs", "analog_outputs", "timers", "counters", "scan_time", "running", "cycles", "taken_at"} {
					So(decoded, ShouldContainKey, key)
				}
				So(decoded, ShouldNotContainKey, "run_id")
				So(decoded["inputs"].(map[string]any)["X0"], ShouldEqual, true)
				So(decoded["counters"].(map[string]any)["C1"], ShouldEqual, 3.0)
			})
		})
	})
}
