package configloader

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/efmtlang/elfmt/pkg/config"
)

// legacyKeyMaxLineWidth and legacyKeyIndentUnit are the flat-key names
// used by the pre-rename config schema.
const (
	legacyKeyMaxLineWidth = "line_length"
	legacyKeyIndentUnit   = "indent"
)

// MigrationResult contains the result of converting a legacy flat-key
// configuration to the current nested schema.
type MigrationResult struct {
	// Config is the converted configuration.
	Config *config.Config

	// Warnings contains non-fatal issues encountered during conversion,
	// such as unknown keys that were not migrated.
	Warnings []string

	// SourcePath is the path to the original legacy config file.
	SourcePath string
}

// ConvertLegacyConfig converts a flat-key config file (line_length,
// indent) to the current nested schema (max_line_width, indent_unit).
// Unknown keys are not carried into the converted Config, which has no
// field for them; each one is reported as a warning instead of being
// dropped silently.
func ConvertLegacyConfig(path string) (*MigrationResult, error) {
	result := &MigrationResult{SourcePath: path}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	cfg := config.NewConfig()

	if v, ok := raw[legacyKeyMaxLineWidth]; ok {
		if width, ok := asInt(v); ok {
			cfg.MaxLineWidth = width
		} else {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: value %v is not an integer; keeping default %d",
					legacyKeyMaxLineWidth, v, cfg.MaxLineWidth))
		}
		delete(raw, legacyKeyMaxLineWidth)
	}

	if v, ok := raw[legacyKeyIndentUnit]; ok {
		if unit, ok := asInt(v); ok {
			cfg.IndentUnit = unit
		} else {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: value %v is not an integer; keeping default %d",
					legacyKeyIndentUnit, v, cfg.IndentUnit))
		}
		delete(raw, legacyKeyIndentUnit)
	}

	if v, ok := raw["ignore"]; ok {
		if list, ok := asStringSlice(v); ok {
			cfg.Ignore = list
		}
		delete(raw, "ignore")
	}

	if v, ok := raw["allow_partial_failure"]; ok {
		if b, ok := v.(bool); ok {
			cfg.AllowPartialFailure = b
		}
		delete(raw, "allow_partial_failure")
	}

	for key := range raw {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("unrecognized legacy key %q not migrated", key))
	}

	result.Config = cfg
	return result, nil
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

func asStringSlice(v any) ([]string, bool) {
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// GenerateMigrationHeader returns a header comment for migrated configs.
func GenerateMigrationHeader(sourcePath string) string {
	return fmt.Sprintf(`# elfmt configuration
# Migrated from legacy schema: %s
`, filepath.Base(sourcePath))
}
