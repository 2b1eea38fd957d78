// Package config loads application settings from a YAML file, an optional
// .env file and VOLSURF_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/banachtech/volsurf/bump"
	"github.com/banachtech/volsurf/localvol"
	"github.com/banachtech/volsurf/sabr"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const envPrefix = "VOLSURF_"

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Address    string  `yaml:"address"`
	RateLimit  float64 `yaml:"rate_limit"` // calibrations per second per client
	Burst      int     `yaml:"burst"`
	APIKeyHash string  `yaml:"api_key_hash"` // bcrypt hash; empty disables auth
}

// DatabaseConfig represents the parameter store connection
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	Source string `yaml:"source"`
}

// CalibrationConfig mirrors sabr.Options
type CalibrationConfig struct {
	Beta          float64 `yaml:"beta"`
	Alpha         float64 `yaml:"alpha"`
	Rho           float64 `yaml:"rho"`
	Nu            float64 `yaml:"nu"`
	EstimateAlpha bool    `yaml:"estimate_alpha"`
	FineTune      bool    `yaml:"fine_tune"`
	Method        string  `yaml:"method"`
	MaxIterations int     `yaml:"max_iterations"`
	Parallel      bool    `yaml:"parallel"`
}

// LocalVolConfig holds the finite-difference steps
type LocalVolConfig struct {
	TimeBump  float64 `yaml:"time_bump"`  // absolute, years
	PriceBump float64 `yaml:"price_bump"` // relative to the strike
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Calibration CalibrationConfig `yaml:"calibration"`
	LocalVol    LocalVolConfig    `yaml:"local_vol"`
	Logging     LoggingConfig     `yaml:"logging"`
}

func Default() Config {
	opts := sabr.DefaultOptions()
	return Config{
		Server: ServerConfig{
			Address:   "0.0.0.0:8080",
			RateLimit: 1,
			Burst:     2,
		},
		Database: DatabaseConfig{
			Driver: "postgres",
		},
		Calibration: CalibrationConfig{
			Beta:          opts.Beta,
			Alpha:         opts.Alpha,
			Rho:           opts.Rho,
			Nu:            opts.Nu,
			Method:        opts.Method.String(),
			MaxIterations: opts.MaxIterations,
		},
		LocalVol: LocalVolConfig{
			TimeBump:  1.0 / 244,
			PriceBump: 1e-4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load starts from Default, overlays the YAML file at path (skipped when
// path is empty), then the env files (".env" when none are given; missing
// files are ignored) and finally the process environment.
func Load(path string, envFiles ...string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
	}

	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("env file %s: %w", f, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	setString(&c.Server.Address, "SERVER_ADDRESS")
	setString(&c.Server.APIKeyHash, "API_KEY_HASH")
	setString(&c.Database.Driver, "DB_DRIVER")
	setString(&c.Database.Source, "DB_SOURCE")
	setString(&c.Calibration.Method, "SABR_METHOD")
	setString(&c.Logging.Level, "LOG_LEVEL")
	setString(&c.Logging.Format, "LOG_FORMAT")

	for key, dst := range map[string]*float64{
		"SERVER_RATE_LIMIT":   &c.Server.RateLimit,
		"SABR_BETA":           &c.Calibration.Beta,
		"SABR_RHO":            &c.Calibration.Rho,
		"SABR_NU":             &c.Calibration.Nu,
		"LOCALVOL_TIME_BUMP":  &c.LocalVol.TimeBump,
		"LOCALVOL_PRICE_BUMP": &c.LocalVol.PriceBump,
	} {
		if v, ok := lookup(key); ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%s%s: %w", envPrefix, key, err)
			}
			*dst = f
		}
	}
	for key, dst := range map[string]*int{
		"SERVER_BURST":        &c.Server.Burst,
		"SABR_MAX_ITERATIONS": &c.Calibration.MaxIterations,
	} {
		if v, ok := lookup(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", envPrefix, key, err)
			}
			*dst = n
		}
	}
	for key, dst := range map[string]*bool{
		"SABR_ESTIMATE_ALPHA": &c.Calibration.EstimateAlpha,
		"SABR_FINE_TUNE":      &c.Calibration.FineTune,
		"SABR_PARALLEL":       &c.Calibration.Parallel,
	} {
		if v, ok := lookup(key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", envPrefix, key, err)
			}
			*dst = b
		}
	}
	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + key)
	return strings.TrimSpace(v), ok && strings.TrimSpace(v) != ""
}

func setString(dst *string, key string) {
	if v, ok := lookup(key); ok {
		*dst = v
	}
}

func (c Config) Validate() error {
	if _, err := c.Calibration.Options(); err != nil {
		return err
	}
	if _, err := c.LocalVol.Options(); err != nil {
		return err
	}
	if c.Server.RateLimit <= 0 || c.Server.Burst <= 0 {
		return fmt.Errorf("rate limit %v and burst %d must be positive", c.Server.RateLimit, c.Server.Burst)
	}
	if _, err := parseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}

// Options converts the calibration settings.
func (c CalibrationConfig) Options() (sabr.Options, error) {
	method, err := sabr.ParseMethod(c.Method)
	if err != nil {
		return sabr.Options{}, err
	}
	if c.Beta < 0 || c.Beta > 1 {
		return sabr.Options{}, fmt.Errorf("beta %v outside [0, 1]", c.Beta)
	}
	return sabr.Options{
		EstimateAlpha: c.EstimateAlpha,
		FineTune:      c.FineTune,
		Alpha:         c.Alpha,
		Beta:          c.Beta,
		Rho:           c.Rho,
		Nu:            c.Nu,
		Method:        method,
		MaxIterations: c.MaxIterations,
	}, nil
}

// Options converts the bump sizes.
func (c LocalVolConfig) Options() ([]localvol.Option, error) {
	tb, err := bump.NewAbsolute(c.TimeBump, c.TimeBump)
	if err != nil {
		return nil, fmt.Errorf("time bump %v: %w", c.TimeBump, err)
	}
	pb, err := bump.NewRelative(c.PriceBump, c.PriceBump)
	if err != nil {
		return nil, fmt.Errorf("price bump %v: %w", c.PriceBump, err)
	}
	return []localvol.Option{localvol.WithTimeBump(tb), localvol.WithPriceBump(pb)}, nil
}

// Logger builds the application logger writing to w.
func (c LoggingConfig) Logger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, fmt.Errorf("log level %q: %w", s, err)
	}
	return level, nil
}
