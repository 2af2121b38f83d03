package encoder

import (
	"go.uber.org/zap"

	"github.com/wxmet/mars2grib/deduce"
	"github.com/wxmet/mars2grib/rules"
)

// EncodeOption configures an Encoder.
type EncodeOption func(*Config)

// Config holds the tunables of an Encoder.
type Config struct {
	logger       *zap.Logger
	sampleName   string
	workers      int
	preprocessor rules.Action
}

func defaultConfig() Config {
	return Config{
		logger:     zap.NewNop(),
		sampleName: "GRIB2",
		workers:    1,
	}
}

// WithLogger installs the structured logger used for the RESOLVE
// diagnostics that the deduce package emits while concepts run; New hands
// it to deduce.SetLogger (spec §5: the logger is the one piece of shared
// mutable state).
//
// Example:
//
//	enc, err := encoder.New(reg, sampler, encoder.WithLogger(zap.Must(zap.NewProduction())))
func WithLogger(l *zap.Logger) EncodeOption {
	return func(c *Config) {
		if l != nil {
			c.logger = l
			deduce.SetLogger(l)
		}
	}
}

// WithSample overrides the named GRIB template used to seed the output
// dictionary at the start of each encode (spec §4.2 step 1, §6).
//
// Example:
//
//	enc, err := encoder.New(reg, sampler, encoder.WithSample("GRIB2"))
func WithSample(name string) EncodeOption {
	return func(c *Config) {
		if name != "" {
			c.sampleName = name
		}
	}
}

// WithWorkers sets the number of concurrent goroutines ConvertMany uses to
// encode independent requests. Each individual encode remains
// single-threaded and synchronous (spec §5); only the batch fan-out is
// concurrent.
//
// If workers <= 0, defaults to 1 (sequential).
//
// Example:
//
//	enc, err := encoder.New(reg, sampler, encoder.WithWorkers(8))
func WithWorkers(workers int) EncodeOption {
	return func(c *Config) {
		if workers > 0 {
			c.workers = workers
		}
	}
}

// WithRulePreprocessing installs a compiled rule tree (spec §4.6) that runs
// once against mars before the concept registry dispatches, writing
// directly into the seeded output dictionary. Requests that need no
// rule-engine preprocessing simply omit this option (spec §8, scenario 1).
//
// Example:
//
//	action, _ := rules.Parse(f, "classMapping.yaml")
//	enc, err := encoder.New(reg, sampler, encoder.WithRulePreprocessing(action))
func WithRulePreprocessing(action rules.Action) EncodeOption {
	return func(c *Config) {
		c.preprocessor = action
	}
}
