package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type streamConfig struct {
	addBOM   bool
	fallback string
	calls    []string
}

var errEmptyName = errors.New("empty encoding name")

func withAddBOM(v bool) Option[*streamConfig] {
	return NoError(func(c *streamConfig) {
		c.addBOM = v
		c.calls = append(c.calls, "addBOM")
	})
}

func withFallback(name string) Option[*streamConfig] {
	return New(func(c *streamConfig) error {
		if name == "" {
			return errEmptyName
		}
		c.fallback = name
		c.calls = append(c.calls, "fallback")

		return nil
	})
}

func TestApply(t *testing.T) {
	t.Run("applies options in order", func(t *testing.T) {
		cfg := &streamConfig{}
		err := Apply(cfg, withFallback("utf-16be"), withAddBOM(true))
		require.NoError(t, err)
		require.True(t, cfg.addBOM)
		require.Equal(t, "utf-16be", cfg.fallback)
		require.Equal(t, []string{"fallback", "addBOM"}, cfg.calls)
	})

	t.Run("stops at first error", func(t *testing.T) {
		cfg := &streamConfig{}
		err := Apply(cfg, withAddBOM(true), withFallback(""), withAddBOM(false))
		require.ErrorIs(t, err, errEmptyName)
		require.True(t, cfg.addBOM)
		require.Equal(t, []string{"addBOM"}, cfg.calls)
	})

	t.Run("skips nil options", func(t *testing.T) {
		cfg := &streamConfig{}
		require.NoError(t, Apply(cfg, nil, withAddBOM(true), nil))
		require.True(t, cfg.addBOM)
	})

	t.Run("no options", func(t *testing.T) {
		cfg := &streamConfig{}
		require.NoError(t, Apply(cfg))
		require.Empty(t, cfg.calls)
	})
}
