package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/efmtlang/elfmt/pkg/config"
)

// envVarPrefix is the prefix for all elfmt environment variables.
const envVarPrefix = "ELFMT_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"MAX_LINE_WIDTH":        {field: "max_line_width", typ: envTypeInt},
	"INDENT_UNIT":           {field: "indent_unit", typ: envTypeInt},
	"ALLOW_PARTIAL_FAILURE": {field: "allow_partial_failure", typ: envTypeBool},
	"DRY_RUN":               {field: "dry_run", typ: envTypeBool},
	"JOBS":                  {field: "jobs", typ: envTypeInt},
	"FORMAT":                {field: "format", typ: envTypeString},
	"BACKUPS_ENABLED":       {field: "backups.enabled", typ: envTypeBool},
	"BACKUPS_MODE":          {field: "backups.mode", typ: envTypeString},
	"IGNORE":                {field: "ignore", typ: envTypeSlice},
	"INCLUDE_PATHS":         {field: "include_paths", typ: envTypeSlice},
	"NO_BACKUPS":            {field: "no_backups", typ: envTypeBool},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with ELFMT_ (e.g., ELFMT_MAX_LINE_WIDTH).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		parts := parseSliceValue(value)
		return setSliceField(cfg, mapping.field, parts)
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "backups.mode":
		cfg.Backups.Mode = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "allow_partial_failure":
		cfg.AllowPartialFailure = value
	case "dry_run":
		cfg.DryRun = value
	case "backups.enabled":
		cfg.Backups.Enabled = value
	case "no_backups":
		cfg.NoBackups = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "max_line_width":
		cfg.MaxLineWidth = value
	case "indent_unit":
		cfg.IndentUnit = value
	case "jobs":
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// setSliceField sets a slice field on the config by field path.
func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "ignore":
		cfg.Ignore = value
	case "include_paths":
		cfg.IncludePaths = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns a list of all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	return map[string]string{
		"ELFMT_MAX_LINE_WIDTH":        "Soft line width target: positive integer",
		"ELFMT_INDENT_UNIT":           "Columns per indent level: positive integer",
		"ELFMT_ALLOW_PARTIAL_FAILURE": "Skip unparsable files instead of failing the run: true or false",
		"ELFMT_DRY_RUN":               "Dry-run mode: true or false",
		"ELFMT_JOBS":                  "Number of parallel workers (0 = auto)",
		"ELFMT_FORMAT":                "Report output format: text, table, json, sarif, diff, or summary",
		"ELFMT_BACKUPS_ENABLED":       "Enable backups when writing: true or false",
		"ELFMT_BACKUPS_MODE":          "Backup mode: sidecar or none",
		"ELFMT_IGNORE":                "Comma-separated list of ignore glob patterns",
		"ELFMT_INCLUDE_PATHS":         "Comma-separated list of -include search directories",
		"ELFMT_NO_BACKUPS":            "Disable backups: true or false",
	}
}
