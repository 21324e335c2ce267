package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/moonsurvival/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":5000")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.IdempotencySize, convey.ShouldEqual, 10_000)
			convey.So(cfg.ChatTimeout(), convey.ShouldEqual, 15*time.Second)
			convey.So(cfg.ChatRemote(), convey.ShouldBeFalse)
			convey.So(cfg.TracingEnabled, convey.ShouldBeFalse)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with invalid fields", t, func() {
		cases := map[string]func(*config.Config){
			"empty addr":         func(c *config.Config) { c.Addr = "" },
			"bad log format":     func(c *config.Config) { c.LogFormat = "xml" },
			"zero cache":         func(c *config.Config) { c.IdempotencySize = 0 },
			"zero chat timeout":  func(c *config.Config) { c.ChatTimeoutMS = 0 },
			"sampling above one": func(c *config.Config) { c.SamplingRate = 1.1 },
			"tracing unnamed": func(c *config.Config) {
				c.TracingEnabled = true
				c.ServiceName = ""
			},
		}

		for name, mutate := range cases {
			cfg := config.New()
			mutate(cfg)

			convey.Convey("Then "+name+" should wrap ErrInvalidConfig", func() {
				convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		}
	})

	convey.Convey("Given a whitespace API key", t, func() {
		cfg := config.New()
		cfg.ChatAPIKey = "   "

		convey.Convey("Then remote chat should stay off", func() {
			convey.So(cfg.ChatRemote(), convey.ShouldBeFalse)
		})
	})
}
