package config_test

import (
	"testing"

	"github.com/AlperenUlu/gigmatch/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.MetricsAddr, convey.ShouldEqual, "")
			convey.So(cfg.UserTableCapacity, convey.ShouldEqual, 200017)
			convey.So(cfg.PositionTableCapacity, convey.ShouldEqual, 50077)
			convey.So(cfg.BlacklistCapacity, convey.ShouldEqual, 97)
			convey.So(cfg.HeapCapacity, convey.ShouldEqual, 10000)
		})
	})
}
