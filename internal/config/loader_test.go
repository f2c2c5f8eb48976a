package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/AlperenUlu/gigmatch/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
				convey.So(cfg.UserTableCapacity, convey.ShouldEqual, 200017)
				convey.So(cfg.PositionTableCapacity, convey.ShouldEqual, 50077)
				convey.So(cfg.BlacklistCapacity, convey.ShouldEqual, 97)
				convey.So(cfg.HeapCapacity, convey.ShouldEqual, 10000)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("GIGMATCH_LOG_LEVEL", "debug")
			_ = os.Setenv("GIGMATCH_METRICS_ADDR", ":9091")
			_ = os.Setenv("GIGMATCH_HEAP_CAPACITY", "128")
			_ = os.Setenv("GIGMATCH_BLACKLIST_CAPACITY", "13")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.MetricsAddr, convey.ShouldEqual, ":9091")
				convey.So(cfg.HeapCapacity, convey.ShouldEqual, 128)
				convey.So(cfg.BlacklistCapacity, convey.ShouldEqual, 13)
				convey.So(cfg.UserTableCapacity, convey.ShouldEqual, 200017)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
log_level: warn
user_table_capacity: 503
position_table_capacity: 251
heap_capacity: 64
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("GIGMATCH_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "warn")
				convey.So(cfg.UserTableCapacity, convey.ShouldEqual, 503)
				convey.So(cfg.PositionTableCapacity, convey.ShouldEqual, 251)
				convey.So(cfg.HeapCapacity, convey.ShouldEqual, 64)
				convey.So(cfg.BlacklistCapacity, convey.ShouldEqual, 97)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
log_level: warn
heap_capacity: 64
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("GIGMATCH_CONFIG", tmpFile)
			_ = os.Setenv("GIGMATCH_LOG_LEVEL", "error") // should override the file
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "error") // overridden by env
				convey.So(cfg.HeapCapacity, convey.ShouldEqual, 64)  // from file
			})
		})

		convey.Convey("When loading config with an invalid capacity", func() {
			_ = os.Setenv("GIGMATCH_HEAP_CAPACITY", "0")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should report an invalid config error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the config file does not exist", func() {
			_ = os.Setenv("GIGMATCH_CONFIG", "/nonexistent/gigmatch.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should report a load error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})
	})
}

func clearConfigEnvVars() {
	for _, key := range []string{
		"GIGMATCH_CONFIG",
		"GIGMATCH_LOG_LEVEL",
		"GIGMATCH_METRICS_ADDR",
		"GIGMATCH_USER_TABLE_CAPACITY",
		"GIGMATCH_POSITION_TABLE_CAPACITY",
		"GIGMATCH_BLACKLIST_CAPACITY",
		"GIGMATCH_HEAP_CAPACITY",
	} {
		_ = os.Unsetenv(key)
	}
}

func createTempConfigFile(content string) string {
	f, err := os.CreateTemp("", "gigmatch-config-*.yaml")
	if err != nil {
		panic(err)
	}
	if _, err := f.WriteString(content); err != nil {
		panic(err)
	}
	_ = f.Close()
	return f.Name()
}
