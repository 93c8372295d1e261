// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/katalvlaran/epinet/ode"
	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// ErrInvalid indicates a configuration value outside its allowed range.
var ErrInvalid = errors.New("config: invalid value")

// Solver method names accepted by solver.method. The empty default lets
// each model pick its own integrator.
const (
	SolverModelDefault  = ""
	SolverDormandPrince = "dopri5"
	SolverAdams         = "adams"
)

// Config manages run configuration using Viper.
type Config struct {
	v   *viper.Viper
	out io.Writer
}

// NewConfig creates a configuration with defaults.
func NewConfig() *Config {
	v := viper.New()

	v.SetDefault("model.name", "SIRCompactPairwise")
	v.SetDefault("model.tau", 1.0)
	v.SetDefault("model.gamma", 1.0)
	v.SetDefault("model.rho", 0.01)

	v.SetDefault("time.tmin", 0.0)
	v.SetDefault("time.tmax", 100.0)
	v.SetDefault("time.tcount", 1001)

	v.SetDefault("solver.method", SolverModelDefault)
	v.SetDefault("solver.rtol", 1.49012e-8)
	v.SetDefault("solver.atol", 1.49012e-8)
	v.SetDefault("solver.max_steps", 500000)
	v.SetDefault("solver.timeout", "0s")

	v.SetDefault("graph.kind", "random_regular")
	v.SetDefault("graph.n", 1000)
	v.SetDefault("graph.degree", 4)
	v.SetDefault("graph.p", 0.01)
	v.SetDefault("graph.degrees", "")
	v.SetDefault("graph.seed", time.Now().UnixNano())

	v.SetDefault("logging.level", "info")

	v.SetDefault("output.full_data", false)
	v.SetDefault("output.path", "-")

	v.SetDefault("metrics.enabled", false)

	v.SetEnvPrefix("epinet")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Config{v: v, out: os.Stderr}
}

// LoadFromFile merges a configuration file into the defaults.
func (c *Config) LoadFromFile(path string) error {
	c.v.SetConfigFile(path)
	return c.v.ReadInConfig()
}

// Set allows dynamic configuration changes.
func (c *Config) Set(key string, value interface{}) {
	c.v.Set(key, value)
}

func (c *Config) ModelName() string { return c.v.GetString("model.name") }
func (c *Config) Tau() float64 { return c.v.GetFloat64("model.tau") }
func (c *Config) Gamma() float64 { return c.v.GetFloat64("model.gamma") }
func (c *Config) Rho() float64 { return c.v.GetFloat64("model.rho") }

func (c *Config) LogLevel() string { return c.v.GetString("logging.level") }
func (c *Config) FullData() bool { return c.v.GetBool("output.full_data") }
func (c *Config) OutputPath() string { return c.v.GetString("output.path") }
func (c *Config) MetricsEnabled() bool { return c.v.GetBool("metrics.enabled") }

// Settings is the decoded form of a Config.
type Settings struct {
	Model   ModelSettings   `mapstructure:"model"`
	Time    TimeSettings    `mapstructure:"time"`
	Solver  SolverSettings  `mapstructure:"solver"`
	Graph   GraphSettings   `mapstructure:"graph"`
	Logging LoggingSettings `mapstructure:"logging"`
	Output  OutputSettings  `mapstructure:"output"`
	Metrics MetricsSettings `mapstructure:"metrics"`
}

type ModelSettings struct {
	Name  string  `mapstructure:"name"`
	Tau   float64 `mapstructure:"tau"`
	Gamma float64 `mapstructure:"gamma"`
	Rho   float64 `mapstructure:"rho"`
}

type TimeSettings struct {
	Tmin   float64 `mapstructure:"tmin"`
	Tmax   float64 `mapstructure:"tmax"`
	Tcount int     `mapstructure:"tcount"`
}

// SolverSettings selects the integrator. An empty Method keeps each model's
// default and a zero Timeout means no deadline.
type SolverSettings struct {
	Method   string        `mapstructure:"method"`
	RelTol   float64       `mapstructure:"rtol"`
	AbsTol   float64       `mapstructure:"atol"`
	MaxSteps int           `mapstructure:"max_steps"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// GraphSettings describes the contact network. Degrees is the degree
// sequence of the configuration model and may be given as "3,3,2,2".
type GraphSettings struct {
	Kind    string  `mapstructure:"kind"`
	N       int     `mapstructure:"n"`
	Degree  int     `mapstructure:"degree"`
	P       float64 `mapstructure:"p"`
	Degrees []int   `mapstructure:"degrees"`
	Seed    int64   `mapstructure:"seed"`
}

type LoggingSettings struct {
	Level string `mapstructure:"level"`
}

type OutputSettings struct {
	FullData bool   `mapstructure:"full_data"`
	Path     string `mapstructure:"path"`
}

type MetricsSettings struct {
	Enabled bool `mapstructure:"enabled"`
}

// Decode unmarshals the configuration into Settings and validates it.
func (c *Config) Decode() (Settings, error) {
	var s Settings
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := c.v.Unmarshal(&s, hook); err != nil {
		return Settings{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}

	return s, nil
}

// Validate checks ranges that the model drivers would otherwise reject
// only after the network has been built.
func (s Settings) Validate() error {
	switch {
	case s.Model.Name == "":
		return fmt.Errorf("model.name is empty: %w", ErrInvalid)
	case s.Model.Tau < 0 || s.Model.Gamma < 0:
		return fmt.Errorf("model.tau=%g model.gamma=%g: %w", s.Model.Tau, s.Model.Gamma, ErrInvalid)
	case s.Model.Rho < 0 || s.Model.Rho > 1:
		return fmt.Errorf("model.rho=%g: %w", s.Model.Rho, ErrInvalid)
	case s.Time.Tcount < 1 || s.Time.Tmax < s.Time.Tmin:
		return fmt.Errorf("time: tmin=%g tmax=%g tcount=%d: %w", s.Time.Tmin, s.Time.Tmax, s.Time.Tcount, ErrInvalid)
	case s.Solver.Method != SolverModelDefault && s.Solver.Method != SolverDormandPrince && s.Solver.Method != SolverAdams:
		return fmt.Errorf("solver.method=%q: %w", s.Solver.Method, ErrInvalid)
	case !(s.Solver.RelTol > 0) || !(s.Solver.AbsTol > 0) || s.Solver.MaxSteps < 1:
		return fmt.Errorf("solver: rtol=%g atol=%g max_steps=%d: %w", s.Solver.RelTol, s.Solver.AbsTol, s.Solver.MaxSteps, ErrInvalid)
	case s.Solver.Timeout < 0:
		return fmt.Errorf("solver.timeout=%s: %w", s.Solver.Timeout, ErrInvalid)
	case s.Graph.Kind == "":
		return fmt.Errorf("graph.kind is empty: %w", ErrInvalid)
	}

	return nil
}

// CreateLogger creates a zerolog logger based on config.
func (c *Config) CreateLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(c.LogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{
		Out:        c.out,
		TimeFormat: "15:04:05",
	}).Level(level).With().Timestamp().Str("service", "epinet").Logger()
}

// SetLogOutput redirects the logger built by CreateLogger.
func (c *Config) SetLogOutput(w io.Writer) {
	c.out = w
}

// Options returns the configured tolerances and step budget followed by
// extra.
func (s SolverSettings) Options(extra ...ode.Option) []ode.Option {
	return append([]ode.Option{
		ode.WithTolerances(s.RelTol, s.AbsTol),
		ode.WithMaxSteps(s.MaxSteps),
	}, extra...)
}

// Integrator returns the integrator named by Method built with Options, or
// nil when Method is empty and the model keeps its own default.
func (s SolverSettings) Integrator(extra ...ode.Option) ode.Integrator {
	switch s.Method {
	case SolverAdams:
		return ode.NewAdams(s.Options(extra...)...)
	case SolverDormandPrince:
		return ode.NewDormandPrince(s.Options(extra...)...)
	}

	return nil
}
