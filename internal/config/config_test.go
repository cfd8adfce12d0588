package config_test

import (
	"testing"
	"time"

	"github.com/Ikarus0013/PLC-CodesysMimicing-DesktopAppExample/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.ScanPeriod(), convey.ShouldEqual, 10*time.Millisecond)
			convey.So(cfg.PublishInterval(), convey.ShouldEqual, 100*time.Millisecond)
			convey.So(cfg.Program.Empty(), convey.ShouldBeTrue)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}
