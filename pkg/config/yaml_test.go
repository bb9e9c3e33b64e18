package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/efmtlang/elfmt/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var c *config.Config
		clone := c.Clone()
		assert.Nil(t, clone)
	})

	t.Run("empty config", func(t *testing.T) {
		c := &config.Config{}
		clone := c.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, c, clone)
	})

	t.Run("deep copies IncludePaths slice", func(t *testing.T) {
		original := &config.Config{IncludePaths: []string{"include", "lib/include"}}

		clone := original.Clone()
		require.NotNil(t, clone)

		assert.Equal(t, original.IncludePaths, clone.IncludePaths)
		clone.IncludePaths[0] = "changed"
		assert.Equal(t, "include", original.IncludePaths[0])
	})

	t.Run("deep copies Ignore slice", func(t *testing.T) {
		original := &config.Config{Ignore: []string{"_build/**", "deps/**"}}

		clone := original.Clone()
		require.NotNil(t, clone)

		assert.Equal(t, original.Ignore, clone.Ignore)
		clone.Ignore[0] = "changed"
		assert.Equal(t, "_build/**", original.Ignore[0])
	})

	t.Run("preserves all fields", func(t *testing.T) {
		original := &config.Config{
			MaxLineWidth:        80,
			IndentUnit:          2,
			IncludePaths:        []string{"include"},
			AllowPartialFailure: true,
			Ignore:              []string{"*.bak"},
			Backups:             config.BackupsConfig{Enabled: true, Mode: "sidecar"},
			Write:               true,
			List:                true,
			DryRun:              true,
			Format:              config.FormatJSON,
			Jobs:                4,
			NoBackups:           true,
		}

		clone := original.Clone()
		require.NotNil(t, clone)

		assert.Equal(t, original.MaxLineWidth, clone.MaxLineWidth)
		assert.Equal(t, original.IndentUnit, clone.IndentUnit)
		assert.Equal(t, original.AllowPartialFailure, clone.AllowPartialFailure)
		assert.Equal(t, original.Backups, clone.Backups)
		assert.Equal(t, original.Write, clone.Write)
		assert.Equal(t, original.List, clone.List)
		assert.Equal(t, original.DryRun, clone.DryRun)
		assert.Equal(t, original.Format, clone.Format)
		assert.Equal(t, original.Jobs, clone.Jobs)
		assert.Equal(t, original.NoBackups, clone.NoBackups)
		assert.Equal(t, original.IncludePaths, clone.IncludePaths)
		assert.Equal(t, original.Ignore, clone.Ignore)
	})
}

func TestConfigToYAML(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var cfg *config.Config
		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("basic config serializes", func(t *testing.T) {
		cfg := &config.Config{MaxLineWidth: 80, IndentUnit: 2}

		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Contains(t, string(data), "max_line_width: 80")
		assert.Contains(t, string(data), "indent_unit: 2")
	})

	t.Run("round trips through FromYAML", func(t *testing.T) {
		cfg := &config.Config{
			MaxLineWidth:        120,
			IndentUnit:          2,
			IncludePaths:        []string{"include"},
			AllowPartialFailure: true,
			Ignore:              []string{"_build/**"},
			Backups:             config.BackupsConfig{Enabled: false, Mode: "none"},
		}

		data, err := cfg.ToYAML()
		require.NoError(t, err)

		parsed, err := config.FromYAML(data)
		require.NoError(t, err)

		assert.Equal(t, cfg.MaxLineWidth, parsed.MaxLineWidth)
		assert.Equal(t, cfg.IndentUnit, parsed.IndentUnit)
		assert.Equal(t, cfg.IncludePaths, parsed.IncludePaths)
		assert.Equal(t, cfg.AllowPartialFailure, parsed.AllowPartialFailure)
		assert.Equal(t, cfg.Ignore, parsed.Ignore)
		assert.Equal(t, cfg.Backups, parsed.Backups)
	})
}

func TestConfigToYAMLWithHeader(t *testing.T) {
	cfg := config.NewConfig()

	t.Run("prepends header, adding a newline if missing", func(t *testing.T) {
		data, err := cfg.ToYAMLWithHeader("# a header")
		require.NoError(t, err)
		assert.Contains(t, string(data), "# a header\n\nmax_line_width: 100")
	})

	t.Run("does not double the newline when header already ends with one", func(t *testing.T) {
		data, err := cfg.ToYAMLWithHeader("# a header\n")
		require.NoError(t, err)
		assert.Contains(t, string(data), "# a header\n\nmax_line_width: 100")
	})

	t.Run("empty header yields plain YAML", func(t *testing.T) {
		plain, err := cfg.ToYAML()
		require.NoError(t, err)

		withHeader, err := cfg.ToYAMLWithHeader("")
		require.NoError(t, err)
		assert.Equal(t, plain, withHeader)
	})
}

func TestFromYAML(t *testing.T) {
	t.Run("parses valid YAML", func(t *testing.T) {
		yaml := []byte(`
max_line_width: 80
indent_unit: 2
include_paths:
  - include
allow_partial_failure: true
backups:
  enabled: true
  mode: sidecar
`)
		cfg, err := config.FromYAML(yaml)
		require.NoError(t, err)
		assert.Equal(t, 80, cfg.MaxLineWidth)
		assert.Equal(t, 2, cfg.IndentUnit)
		assert.Equal(t, []string{"include"}, cfg.IncludePaths)
		assert.True(t, cfg.AllowPartialFailure)
		assert.Equal(t, config.BackupsConfig{Enabled: true, Mode: "sidecar"}, cfg.Backups)
	})

	t.Run("rejects malformed YAML", func(t *testing.T) {
		_, err := config.FromYAML([]byte("max_line_width: [unterminated"))
		require.Error(t, err)
	})

	t.Run("leaves CLI-only fields at zero value since they are unmapped", func(t *testing.T) {
		cfg, err := config.FromYAML([]byte("max_line_width: 80\n"))
		require.NoError(t, err)
		assert.False(t, cfg.Write)
		assert.False(t, cfg.DryRun)
		assert.Equal(t, config.OutputFormat(""), cfg.Format)
	})
}

func TestYAMLIndent(t *testing.T) {
	assert.Equal(t, 2, config.YAMLIndent())
}
