// SPDX-License-Identifier: MIT

package experiment

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/hourglass/machine"
	"github.com/katalvlaran/hourglass/walk"
)

// Model names.
const (
	ModelLasVegas   = "lasvegas"
	ModelMonteCarlo = "montecarlo"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("experiment: invalid config")

// envPrefix prefixes every environment override.
const envPrefix = "HOURGLASS_"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(validateConfig, Config{})

	return v
}

// validateConfig applies the cross-field rules that depend on Model.
func validateConfig(sl validator.StructLevel) {
	c := sl.Current().Interface().(Config)
	if c.Model == ModelMonteCarlo && c.TimeIncrement > c.SamplingPeriod {
		sl.ReportError(c.TimeIncrement, "TimeIncrement", "TimeIncrement", "ltefield", "SamplingPeriod")
	}
}

// Config describes one curve measurement.
//
// Thread Safety: safe to read concurrently; not modified by Run.
type Config struct {
	// Model is "lasvegas" or "montecarlo".
	Model string `yaml:"model" validate:"required,oneof=lasvegas montecarlo"`

	// RandomBits is the width B of the randomness strings.
	RandomBits int `yaml:"random_bits" validate:"gte=0,lte=20"`

	// RulesFile is a rule-text file; empty selects DefaultRules.
	RulesFile string `yaml:"rules_file"`

	// InitialState is the machine's start state.
	InitialState string `yaml:"initial_state" validate:"required"`

	// Discipline is "continuous" or "discrete".
	Discipline string `yaml:"discipline" validate:"oneof=continuous discrete"`

	// Seed is the parent seed; 0 maps to walk.DefaultSeed.
	Seed int64 `yaml:"seed"`

	// Trials is the number of independent curve repetitions.
	Trials int `yaml:"trials" validate:"gte=1"`

	// Measurements is the number of Las Vegas measurements per trial.
	Measurements int `yaml:"measurements" validate:"gte=1"`

	// SamplingPeriod is the time between Las Vegas measurements and half the
	// Monte Carlo horizon.
	SamplingPeriod float64 `yaml:"sampling_period" validate:"gt=0"`

	// TimeIncrement is the Monte Carlo step between measurements; it may not
	// exceed SamplingPeriod. Las Vegas runs ignore it.
	TimeIncrement float64 `yaml:"time_increment" validate:"gt=0"`

	// Workers is the number of concurrent walkers.
	Workers int `yaml:"workers" validate:"gte=1,lte=256"`

	// TraceLimit bounds each computation trace.
	TraceLimit int `yaml:"trace_limit" validate:"gte=1"`

	// Stitch cross-links the two tracks of each randomness string.
	Stitch bool `yaml:"stitch"`
}

// DefaultConfig returns the configuration of the original curves.
func DefaultConfig() Config {
	return Config{
		Model:          ModelLasVegas,
		RandomBits:     2,
		InitialState:   "a",
		Discipline:     walk.Continuous.String(),
		Seed:           walk.DefaultSeed,
		Trials:         500,
		Measurements:   20,
		SamplingPeriod: 200,
		TimeIncrement:  50,
		Workers:        1,
		TraceLimit:     machine.DefaultTraceLimit,
		Stitch:         true,
	}
}

// LoadConfig loads configuration with priority: env > file > defaults, and
// validates the result. An empty path skips the file.
func LoadConfig(path string) (Config, error) {
	cfg, err := ReadConfig(path)
	if err != nil {
		return cfg, err
	}
	if err = cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// ReadConfig merges defaults, the file at path and the environment without
// validating, for callers that apply further overrides before Validate.
func ReadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
		if err = yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// applyEnv overrides fields from HOURGLASS_* variables. Malformed numbers
// are errors rather than silently ignored.
func (c *Config) applyEnv() error {
	str := map[string]*string{
		"MODEL":         &c.Model,
		"RULES_FILE":    &c.RulesFile,
		"INITIAL_STATE": &c.InitialState,
		"DISCIPLINE":    &c.Discipline,
	}
	for key, dst := range str {
		if v, ok := os.LookupEnv(envPrefix + key); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"RANDOM_BITS":  &c.RandomBits,
		"TRIALS":       &c.Trials,
		"MEASUREMENTS": &c.Measurements,
		"WORKERS":      &c.Workers,
		"TRACE_LIMIT":  &c.TraceLimit,
	}
	for key, dst := range ints {
		if v, ok := os.LookupEnv(envPrefix + key); ok {
			i, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s%s=%q: %w", envPrefix, key, v, err)
			}
			*dst = i
		}
	}

	floats := map[string]*float64{
		"SAMPLING_PERIOD": &c.SamplingPeriod,
		"TIME_INCREMENT":  &c.TimeIncrement,
	}
	for key, dst := range floats {
		if v, ok := os.LookupEnv(envPrefix + key); ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%s%s=%q: %w", envPrefix, key, v, err)
			}
			*dst = f
		}
	}

	if v, ok := os.LookupEnv(envPrefix + "SEED"); ok {
		s, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%sSEED=%q: %w", envPrefix, v, err)
		}
		c.Seed = s
	}
	if v, ok := os.LookupEnv(envPrefix + "STITCH"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sSTITCH=%q: %w", envPrefix, v, err)
		}
		c.Stitch = b
	}

	return nil
}

// Validate checks the struct tags and the model-dependent rules.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return nil
}

// WalkDiscipline returns the parsed discipline.
func (c Config) WalkDiscipline() (walk.Discipline, error) {
	return walk.ParseDiscipline(c.Discipline)
}

// Points returns the number of curve points and the walk time between them.
func (c Config) Points() (int, float64) {
	if c.Model == ModelMonteCarlo {
		return int(2 * c.SamplingPeriod / c.TimeIncrement), c.TimeIncrement
	}

	return c.Measurements, c.SamplingPeriod
}
