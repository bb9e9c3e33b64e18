package config

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full includes every field with a commented explanation.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// GenerateTemplate creates a starter configuration file.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Full {
		return generateFullTemplate(opts)
	}
	return generateMinimalTemplate(opts)
}

func generateMinimalTemplate(opts TemplateOptions) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`# elfmt configuration
# See: https://github.com/efmtlang/elfmt

max_line_width: 100
indent_unit: 4

# include_paths:
#   - include

# allow_partial_failure: false

# ignore:
#   - "_build/**"
#   - "deps/**"
`)
	if opts.Format == "json" {
		return templateToJSON()
	}
	return buf.Bytes(), nil
}

func generateFullTemplate(opts TemplateOptions) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`# elfmt configuration - full template
# See: https://github.com/efmtlang/elfmt
#
# Only four fields govern formatting itself; everything else here
# controls discovery, reporting, and write-back safety.

# Soft line width the layout engine targets.
max_line_width: 100

# Number of columns one indent level adds.
indent_unit: 4

# Directories searched when resolving an -include directive.
include_paths: []

# Continue a run past files that fail to format instead of failing
# the whole run.
allow_partial_failure: false

# Glob patterns for files to skip during discovery.
ignore:
  - "_build/**"
  - "deps/**"
  - ".git/**"

# Backup configuration used when writing fixes back to disk.
backups:
  enabled: true
  mode: sidecar
`)
	if opts.Format == "json" {
		return templateToJSON()
	}
	return buf.Bytes(), nil
}

func templateToJSON() ([]byte, error) {
	cfg := NewConfig()
	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return jsonBytes, nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# elfmt configuration
# See: https://github.com/efmtlang/elfmt`
}
