package configloader

import (
	"slices"

	"github.com/yaklabco/cctok/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
//   - Scalar values: override overwrites base if override is non-zero
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Frontend != "" {
		result.Frontend = override.Frontend
	}
	if override.ClangPath != "" {
		result.ClangPath = override.ClangPath
	}
	if override.PlaceholderExecutable != "" {
		result.PlaceholderExecutable = override.PlaceholderExecutable
	}
	if override.BuildDir != "" {
		result.BuildDir = override.BuildDir
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}

	if override.Ignore != nil {
		result.Ignore = slices.Clone(override.Ignore)
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
