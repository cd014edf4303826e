package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	locale, err := cfg.Locale()
	require.NoError(t, err)
	assert.Equal(t, language.English, locale)
	assert.Equal(t, 32, cfg.BTreeDegree)
	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)
	assert.False(t, cfg.FailOnWarning)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid default config", func(c *Config) {}, false},
		{"regional locale", func(c *Config) { c.DefaultLocale = "de-CH" }, false},
		{"invalid locale", func(c *Config) { c.DefaultLocale = "not a locale" }, true},
		{"degree too small", func(c *Config) { c.BTreeDegree = 1 }, true},
		{"upper case level", func(c *Config) { c.LogLevel = "DEBUG" }, false},
		{"unknown level", func(c *Config) { c.LogLevel = "loud" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			assert.Equal(t, tt.wantErr, err != nil, err)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "enumcheck.yaml")
	content := `
default_locale: de
btree_degree: 8
fail_on_warning: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "de", cfg.DefaultLocale)
	assert.Equal(t, 8, cfg.BTreeDegree)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.FailOnWarning)

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed file", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(bad, []byte("btree_degree: [1"), 0644))
		_, err := LoadFromFile(bad)
		assert.ErrorContains(t, err, "failed to parse config file")
	})
}

func TestMerge(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Merge(nil)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg.Merge(&Config{LogLevel: "debug", FailOnWarning: true})
	assert.Equal(t, "en", cfg.DefaultLocale)
	assert.Equal(t, 32, cfg.BTreeDegree)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.FailOnWarning)

	cfg.Merge(&Config{DefaultLocale: "fr", BTreeDegree: 4})
	assert.Equal(t, "fr", cfg.DefaultLocale)
	assert.Equal(t, 4, cfg.BTreeDegree)
	assert.True(t, cfg.FailOnWarning)
}
