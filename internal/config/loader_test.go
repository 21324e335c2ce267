package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/moonsurvival/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars(t)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":5000")
				convey.So(cfg.IdempotencySize, convey.ShouldEqual, 10_000)
				convey.So(cfg.ChatModel, convey.ShouldEqual, "gemini-2.0-flash")
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			clearConfigEnvVars(t)
			t.Setenv("MOON_ADDR", ":8080")
			t.Setenv("MOON_IDEMPOTENCY_SIZE", "42")
			t.Setenv("MOON_CHAT_API_KEY", "secret")
			t.Setenv("MOON_TRACING_ENABLED", "true")
			t.Setenv("MOON_SAMPLING_RATE", "0.5")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.IdempotencySize, convey.ShouldEqual, 42)
				convey.So(cfg.ChatRemote(), convey.ShouldBeTrue)
				convey.So(cfg.TracingEnabled, convey.ShouldBeTrue)
				convey.So(cfg.SamplingRate, convey.ShouldEqual, 0.5)
			})
		})

		convey.Convey("When loading config with a YAML file and env overrides", func() {
			clearConfigEnvVars(t)
			path := writeConfigFile(t, `
addr: ":9090"
log_format: json
chat_model: gemini-test
chat_timeout_ms: 2000
`)
			t.Setenv("MOON_CONFIG", path)
			t.Setenv("MOON_ADDR", ":7070")

			cfg, err := config.Load(ctx)

			convey.Convey("Then env should win over the file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.ChatModel, convey.ShouldEqual, "gemini-test")
				convey.So(cfg.ChatTimeoutMS, convey.ShouldEqual, 2000)
			})
		})

		convey.Convey("When the config file does not exist", func() {
			clearConfigEnvVars(t)
			t.Setenv("MOON_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

			_, err := config.Load(ctx)

			convey.Convey("Then it should fail with ErrLoadConfig", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a loaded value is invalid", func() {
			clearConfigEnvVars(t)
			t.Setenv("MOON_LOG_FORMAT", "xml")

			_, err := config.Load(ctx)

			convey.Convey("Then it should fail validation", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

var configEnvVars = []string{
	"MOON_CONFIG", "MOON_ADDR", "MOON_LOG_LEVEL", "MOON_LOG_FORMAT", "MOON_IDEMPOTENCY_SIZE",
	"MOON_CHAT_API_KEY", "MOON_CHAT_MODEL", "MOON_CHAT_TIMEOUT_MS", "MOON_TRACING_ENABLED",
	"MOON_OTLP_ENDPOINT", "MOON_OTLP_INSECURE", "MOON_SAMPLING_RATE", "MOON_SERVICE_NAME",
}

// clearConfigEnvVars unsets MOON_* variables for the duration of the test.
func clearConfigEnvVars(t *testing.T) {
	t.Helper()
	for _, name := range configEnvVars {
		if old, ok := os.LookupEnv(name); ok {
			_ = os.Unsetenv(name)
			t.Cleanup(func() { _ = os.Setenv(name, old) })
		}
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
