package configloader

import "github.com/efmtlang/elfmt/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Slices: override replaces base entirely if override is non-nil
//   - Booleans: only true values in override take effect, since a config
//     file or flag that never mentions a boolean field should not silently
//     turn it off
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.MaxLineWidth != 0 {
		result.MaxLineWidth = override.MaxLineWidth
	}
	if override.IndentUnit != 0 {
		result.IndentUnit = override.IndentUnit
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	if override.AllowPartialFailure {
		result.AllowPartialFailure = override.AllowPartialFailure
	}
	if override.Write {
		result.Write = override.Write
	}
	if override.List {
		result.List = override.List
	}
	if override.DryRun {
		result.DryRun = override.DryRun
	}
	if override.NoBackups {
		result.NoBackups = override.NoBackups
	}

	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}
	if override.Backups.Enabled {
		result.Backups.Enabled = override.Backups.Enabled
	}

	if override.IncludePaths != nil {
		result.IncludePaths = override.IncludePaths
	}
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return &result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
