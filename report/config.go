// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"math"
	"reflect"

	"github.com/mitchellh/mapstructure"

	"github.com/katalvlaran/chaindiag/chain"
	"github.com/katalvlaran/chaindiag/ess"
	"github.com/katalvlaran/chaindiag/geweke"
	"github.com/katalvlaran/chaindiag/psrf"
	"github.com/katalvlaran/chaindiag/raftery"
)

// Config holds every tunable of a full diagnostic run. The mapstructure
// tags are the keys accepted in config files and CHAINDIAG_* variables.
type Config struct {
	Batches        int     `mapstructure:"batches"`
	MinBatchLength int     `mapstructure:"minBatchLength"`
	ConditionLimit float64 `mapstructure:"conditionLimit"`
	IntervalAlpha  float64 `mapstructure:"intervalAlpha"`

	Truncation ess.Truncation `mapstructure:"truncation"`
	MaxLag     int            `mapstructure:"maxLag"`
	MinESS     float64        `mapstructure:"minESS"`

	GewekeFirst      float64 `mapstructure:"gewekeFirst"`
	GewekeLast       float64 `mapstructure:"gewekeLast"`
	GewekeAlpha      float64 `mapstructure:"gewekeAlpha"`
	GewekeBonferroni bool    `mapstructure:"gewekeBonferroni"`
	SpectralLag      int     `mapstructure:"spectralLag"`

	Quantile    float64 `mapstructure:"quantile"`
	Precision   float64 `mapstructure:"precision"`
	Probability float64 `mapstructure:"probability"`
	MaxThin     int     `mapstructure:"maxThin"`

	// Workers bounds how many diagnostics run at once; 0 runs all together.
	Workers int `mapstructure:"workers"`
}

// DefaultMinESS is the smallest effective sample size Report.Converged accepts.
const DefaultMinESS = 100

// DefaultConfig returns the conventional settings.
func DefaultConfig() Config {
	return Config{
		Batches:        psrf.DefaultBatches,
		MinBatchLength: psrf.DefaultMinBatchLength,
		ConditionLimit: psrf.DefaultConditionLimit,
		IntervalAlpha:  0.05,

		Truncation: ess.DefaultTruncation,
		MaxLag:     ess.DefaultMaxLag,
		MinESS:     DefaultMinESS,

		GewekeFirst: geweke.DefaultFirst,
		GewekeLast:  geweke.DefaultLast,
		GewekeAlpha: geweke.DefaultAlpha,
		SpectralLag: geweke.DefaultSpectralLag,

		Quantile:    raftery.DefaultQuantile,
		Precision:   raftery.DefaultPrecision,
		Probability: raftery.DefaultProbability,
		MaxThin:     raftery.DefaultMaxThin,
	}
}

// Validate checks the option-level fields, whose constructors would
// otherwise panic. Runtime parameters (fractions, quantile targets, interval
// alpha) are left to the diagnostics themselves.
func (c Config) Validate() error {
	bad := func(field string, v interface{}) error {
		return fmt.Errorf("report: %s=%v: %w", field, v, chain.ErrInvalidParameter)
	}
	switch {
	case c.Batches < 2:
		return bad("batches", c.Batches)
	case c.MinBatchLength < 2:
		return bad("minBatchLength", c.MinBatchLength)
	case math.IsNaN(c.ConditionLimit) || math.IsInf(c.ConditionLimit, 0) || c.ConditionLimit < 1:
		return bad("conditionLimit", c.ConditionLimit)
	case c.Truncation != ess.TruncateInitialMonotone && c.Truncation != ess.TruncateFirstNegative:
		return bad("truncation", c.Truncation)
	case c.MaxLag < 1:
		return bad("maxLag", c.MaxLag)
	case math.IsNaN(c.MinESS) || c.MinESS < 0:
		return bad("minESS", c.MinESS)
	case !(c.GewekeAlpha > 0 && c.GewekeAlpha < 1):
		return bad("gewekeAlpha", c.GewekeAlpha)
	case c.SpectralLag < 0:
		return bad("spectralLag", c.SpectralLag)
	case c.MaxThin < 0:
		return bad("maxThin", c.MaxThin)
	case c.Workers < 0:
		return bad("workers", c.Workers)
	}

	return nil
}

func (c Config) psrfOptions() []psrf.Option {
	return []psrf.Option{
		psrf.WithBatches(c.Batches),
		psrf.WithMinBatchLength(c.MinBatchLength),
		psrf.WithConditionLimit(c.ConditionLimit),
	}
}

func (c Config) essOptions() []ess.Option {
	return []ess.Option{ess.WithTruncation(c.Truncation), ess.WithMaxLag(c.MaxLag)}
}

func (c Config) gewekeOptions() []geweke.Option {
	opts := []geweke.Option{geweke.WithAlpha(c.GewekeAlpha), geweke.WithSpectralLag(c.SpectralLag)}
	if c.GewekeBonferroni {
		opts = append(opts, geweke.WithBonferroni())
	}

	return opts
}

func (c Config) rafteryOptions() []raftery.Option {
	return []raftery.Option{raftery.WithMaxThin(c.MaxThin)}
}

// DecodeHook converts the textual forms accepted in config sources, such as
// "first-negative" for Truncation, into their typed values.
func DecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.DecodeHookFuncType(truncationHook)
}

func truncationHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(ess.Truncation(0)) {
		return data, nil
	}

	return ess.ParseTruncation(data.(string))
}

// Decode overlays raw on DefaultConfig. Unknown keys are rejected and
// numeric strings are accepted, as they arrive from the environment.
func Decode(raw map[string]interface{}) (Config, error) {
	cfg := DefaultConfig()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       DecodeHook(),
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           &cfg,
	})
	if err != nil {
		return Config{}, err
	}
	if err = dec.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("report: decode config: %w", err)
	}

	return cfg, nil
}
