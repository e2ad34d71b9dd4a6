package config_test

import (
	"context"
	"os"
	"testing"

	"github.com/okian/foil/internal/config"
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
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.SaveBackend, convey.ShouldEqual, config.BackendMemory)
				convey.So(cfg.SaveKey, convey.ShouldEqual, "foil-save-v1")
				convey.So(cfg.EventQueueSize, convey.ShouldEqual, 1024)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("FOIL_ADDR", ":8080")
			_ = os.Setenv("FOIL_SAVE_BACKEND", "file")
			_ = os.Setenv("FOIL_SAVE_PATH", "/tmp/foil-saves")
			_ = os.Setenv("FOIL_RNG_SEED", "demo")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.SaveBackend, convey.ShouldEqual, config.BackendFile)
				convey.So(cfg.SavePath, convey.ShouldEqual, "/tmp/foil-saves")
				convey.So(cfg.RNGSeed, convey.ShouldEqual, "demo")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":9090"
content_dir: "content"
save_backend: "postgres"
postgres_dsn: "postgres://localhost/foil?sslmode=disable"
queue_size: 4096
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("FOIL_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.ContentDir, convey.ShouldEqual, "content")
				convey.So(cfg.SaveBackend, convey.ShouldEqual, config.BackendPostgres)
				convey.So(cfg.EventQueueSize, convey.ShouldEqual, 4096)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":9090"
save_backend: "file"
save_path: "from-file"
queue_size: 4096
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("FOIL_CONFIG", tmpFile)
			_ = os.Setenv("FOIL_ADDR", ":8080")
			_ = os.Setenv("FOIL_SAVE_PATH", "from-env")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.SavePath, convey.ShouldEqual, "from-env")
				convey.So(cfg.SaveBackend, convey.ShouldEqual, config.BackendFile)
				convey.So(cfg.EventQueueSize, convey.ShouldEqual, 4096)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			invalidYaml := `invalid: yaml: content: [`
			tmpFile := createTempConfigFile(invalidYaml)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("FOIL_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err, convey.ShouldWrap, config.ErrLoadConfig)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("FOIL_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("FOIL_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err, convey.ShouldWrap, config.ErrInvalidConfig)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an unknown save backend", func() {
			_ = os.Setenv("FOIL_SAVE_BACKEND", "redis")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err, convey.ShouldWrap, config.ErrInvalidConfig)
				convey.So(err.Error(), convey.ShouldContainSubstring, "unknown save_backend")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When selecting the file backend without a path", func() {
			_ = os.Setenv("FOIL_SAVE_BACKEND", "file")
			_ = os.Setenv("FOIL_SAVE_PATH", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "save_path required")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When selecting the postgres backend without a DSN", func() {
			_ = os.Setenv("FOIL_SAVE_BACKEND", "postgres")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "postgres_dsn required")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with partial YAML file", func() {
			yamlContent := `
addr: ":9090"
rng_seed: "fixed"
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("FOIL_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should merge with defaults for missing fields", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.RNGSeed, convey.ShouldEqual, "fixed")
				convey.So(cfg.SaveBackend, convey.ShouldEqual, config.BackendMemory)
				convey.So(cfg.SaveKey, convey.ShouldEqual, "foil-save-v1")
				convey.So(cfg.EventQueueSize, convey.ShouldEqual, 1024)
			})
		})

		convey.Convey("When loading config with a non-positive queue size", func() {
			_ = os.Setenv("FOIL_QUEUE_SIZE", "0")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "queue_size must be positive")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"FOIL_CONFIG",
		"FOIL_ADDR",
		"FOIL_CONTENT_DIR",
		"FOIL_SAVE_BACKEND",
		"FOIL_SAVE_PATH",
		"FOIL_POSTGRES_DSN",
		"FOIL_SAVE_KEY",
		"FOIL_RNG_SEED",
		"FOIL_QUEUE_SIZE",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "foil-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
