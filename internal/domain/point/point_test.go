package point_test

import (
	"errors"
	"testing"

	"github.com/Ikarus0013/PLC-CodesysMimicing-DesktopAppExample/internal/domain/point"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseKind(t *testing.T) {
	Convey("Given kind strings from configuration", t, func() {
		k, err := point.ParseKind(" Input ")
		So(err, ShouldBeNil)
		So(k, ShouldEqual, point.Input)

		k, err = point.ParseKind("output")
		So(err, ShouldBeNil)
		So(k, ShouldEqual, point.Output)
		So(k.String(), ShouldEqual, "output")

		_, err = point.ParseKind("coil")
		So(errors.Is(err, point.ErrInvalidKind), ShouldBeTrue)
	})
}

func TestRegistryRegistration(t *testing.T) {
	Convey("Given an empty registry", t, func() {
		r := point.NewRegistry()

		Convey("When registering digital points", func() {
			So(r.RegisterDigital("X0", point.Input, "I0.0"), ShouldBeNil)
			So(r.RegisterDigital("Y0", point.Output, "Q0.0"), ShouldBeNil)

			Convey("Then they should start false", func() {
				v, err := r.DigitalInput("X0")
				So(err, ShouldBeNil)
				So(v, ShouldBeFalse)
				v, err = r.DigitalOutput("Y0")
				So(err, ShouldBeNil)
				So(v, ShouldBeFalse)
			})

			Convey("Then a duplicate name should fail across kinds", func() {
				err := r.RegisterDigital("X0", point.Output, "Q9.9")
				So(errors.Is(err, point.ErrDuplicateName), ShouldBeTrue)
				err = r.RegisterDigital("Y0", point.Input, "I9.9")
				So(errors.Is(err, point.ErrDuplicateName), ShouldBeTrue)
			})

			Convey("Then the same name is still free in the analog table", func() {
				So(r.RegisterAnalog("X0", point.Input, "IW9"), ShouldBeNil)
			})
		})

		Convey("When registering analog points", func() {
			So(r.RegisterAnalog("AI0", point.Input, "IW0"), ShouldBeNil)
			So(r.RegisterAnalog("AO0", point.Output, "QW0"), ShouldBeNil)

			Convey("Then they should start at zero", func() {
				v, err := r.AnalogOutput("AO0")
				So(err, ShouldBeNil)
				So(v, ShouldEqual, 0.0)
			})

			Convey("Then a duplicate analog name should fail", func() {
				err := r.RegisterAnalog("AI0", point.Output, "QW1")
				So(errors.Is(err, point.ErrDuplicateName), ShouldBeTrue)
			})
		})

		Convey("When registering with an invalid kind", func() {
			err := r.RegisterDigital("Z0", point.Kind(7), "")
			So(errors.Is(err, point.ErrInvalidKind), ShouldBeTrue)
		})
	})
}

func TestRegistryOwnership(t *testing.T) {
	Convey("Given a registry with inputs and outputs", t, func() {
		r := point.NewRegistry()
		So(r.RegisterDigital("X0", point.Input, "I0.0"), ShouldBeNil)
		So(r.RegisterDigital("Y0", point.Output, "Q0.0"), ShouldBeNil)
		So(r.RegisterAnalog("AI0", point.Input, "IW0"), ShouldBeNil)
		So(r.RegisterAnalog("AO0", point.Output, "QW0"), ShouldBeNil)

		Convey("Inputs accept external writes", func() {
			So(r.SetDigitalInput("X0", true), ShouldBeNil)
			So(r.SetAnalogInput("AI0", 12.5), ShouldBeNil)
			v, _ := r.DigitalInput("X0")
			So(v, ShouldBeTrue)
			a, _ := r.AnalogInput("AI0")
			So(a, ShouldEqual, 12.5)
		})

		Convey("Outputs refuse external writes", func() {
			So(errors.Is(r.SetDigitalInput("Y0", true), point.ErrWrongKind), ShouldBeTrue)
			So(errors.Is(r.SetAnalogInput("AO0", 1), point.ErrWrongKind), ShouldBeTrue)
			v, _ := r.DigitalOutput("Y0")
			So(v, ShouldBeFalse)
		})

		Convey("Inputs refuse rule writes", func() {
			So(errors.Is(r.SetDigitalOutput("X0", true), point.ErrWrongKind), ShouldBeTrue)
			So(errors.Is(r.SetAnalogOutput("AI0", 1), point.ErrWrongKind), ShouldBeTrue)
		})

		Convey("Input readers refuse outputs", func() {
			So(r.SetDigitalInput("X0", true), ShouldBeNil)
			v, err := r.DigitalInput("X0")
			So(err, ShouldBeNil)
			So(v, ShouldBeTrue)

			_, err = r.DigitalInput("Y0")
			So(errors.Is(err, point.ErrWrongKind), ShouldBeTrue)
			_, err = r.AnalogInput("AO0")
			So(errors.Is(err, point.ErrWrongKind), ShouldBeTrue)
		})

		Convey("Unknown names report ErrUnknownPoint", func() {
			So(errors.Is(r.SetDigitalInput("X9", true), point.ErrUnknownPoint), ShouldBeTrue)
			_, err := r.AnalogOutput("AO9")
			So(errors.Is(err, point.ErrUnknownPoint), ShouldBeTrue)
		})

		Convey("Value copies are split by kind and independent", func() {
			So(r.SetDigitalOutput("Y0", true), ShouldBeNil)
			outs := r.DigitalValues(point.Output)
			So(outs, ShouldResemble, map[string]bool{"Y0": true})
			outs["Y0"] = false
			v, _ := r.DigitalOutput("Y0")
			So(v, ShouldBeTrue)

			So(r.AnalogValues(point.Input), ShouldResemble, map[string]float64{"AI0": 0})
		})

		Convey("Point listings are sorted copies", func() {
			pts := r.DigitalPoints()
			So(len(pts), ShouldEqual, 2)
			So(pts[0].Name, ShouldEqual, "X0")
			So(pts[0].Address, ShouldEqual, "I0.0")
			So(pts[1].Kind, ShouldEqual, point.Output)
			So(r.AnalogPoints()[1].Name, ShouldEqual, "AO0")
		})
	})
}
