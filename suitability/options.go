package suitability

import (
	"log/slog"

	"github.com/arloliu/cropfit/internal/options"
)

// DefaultPrecision is the number of decimals report probabilities are rounded to.
const DefaultPrecision = 2

// Config holds the engine settings.
type Config struct {
	// NeighborCap bounds K for neighbor evidence: K = min(NeighborCap, |set|).
	NeighborCap int
	// Precision is the number of decimals probabilities are rounded to.
	// Negative disables rounding.
	Precision int
	// Logger receives debug events. Defaults to a discarding logger.
	Logger *slog.Logger
}

func defaultConfig() Config {
	return Config{
		NeighborCap: DefaultNeighborCap,
		Precision:   DefaultPrecision,
		Logger:      slog.New(slog.DiscardHandler),
	}
}

// Option is a functional option for Config.
type Option = options.Option[*Config]

// WithNeighborCap sets the upper bound on K. n must be positive.
func WithNeighborCap(n int) Option {
	return options.New(func(cfg *Config) error {
		if n <= 0 {
			return ErrInvalidNeighborCap
		}
		cfg.NeighborCap = n

		return nil
	})
}

// WithPrecision sets the rounding precision of probabilities. A negative
// value keeps full float64 precision.
func WithPrecision(decimals int) Option {
	return options.NoError(func(cfg *Config) {
		cfg.Precision = decimals
	})
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(cfg *Config) {
		if logger != nil {
			cfg.Logger = logger
		}
	})
}
