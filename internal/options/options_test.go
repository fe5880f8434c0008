package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type scoringConfig struct {
	cap       int
	precision int
	calls     []string
}

var errNonPositive = errors.New("cap must be positive")

func withCap(n int) Option[*scoringConfig] {
	return New(func(c *scoringConfig) error {
		if n <= 0 {
			return errNonPositive
		}
		c.cap = n
		c.calls = append(c.calls, "cap")

		return nil
	})
}

func withPrecision(n int) Option[*scoringConfig] {
	return NoError(func(c *scoringConfig) {
		c.precision = n
		c.calls = append(c.calls, "precision")
	})
}

func TestApply(t *testing.T) {
	t.Run("applies options in order", func(t *testing.T) {
		cfg := &scoringConfig{}
		err := Apply(cfg, withPrecision(2), withCap(200))
		require.NoError(t, err)
		require.Equal(t, 200, cfg.cap)
		require.Equal(t, 2, cfg.precision)
		require.Equal(t, []string{"precision", "cap"}, cfg.calls)
	})

	t.Run("stops at first error", func(t *testing.T) {
		cfg := &scoringConfig{}
		err := Apply(cfg, withCap(10), withCap(0), withPrecision(4))
		require.ErrorIs(t, err, errNonPositive)
		require.Equal(t, 10, cfg.cap)
		require.Zero(t, cfg.precision)
	})

	t.Run("skips nil options", func(t *testing.T) {
		cfg := &scoringConfig{}
		err := Apply(cfg, nil, withPrecision(3))
		require.NoError(t, err)
		require.Equal(t, 3, cfg.precision)
	})

	t.Run("no options", func(t *testing.T) {
		cfg := &scoringConfig{cap: 7}
		require.NoError(t, Apply(cfg))
		require.Equal(t, 7, cfg.cap)
	})
}
