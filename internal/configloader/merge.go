package configloader

import (
	"slices"

	"github.com/yaklabco/linguo/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Pointer booleans: override overwrites base if non-nil, so an explicit
//     false turns an inherited true off
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	mergeScan(&result.Scan, &override.Scan)
	mergeDetect(&result.Detect, &override.Detect)
	mergeOutput(&result.Output, &override.Output)

	return result
}

func mergeScan(dst, src *config.ScanConfig) {
	mergeBool(&dst.IncludeVendored, src.IncludeVendored)
	mergeBool(&dst.IncludeDocumentation, src.IncludeDocumentation)
	mergeBool(&dst.IncludeDotfiles, src.IncludeDotfiles)
	mergeBool(&dst.IncludeConfiguration, src.IncludeConfiguration)
	mergeBool(&dst.IncludeGenerated, src.IncludeGenerated)
	mergeBool(&dst.RespectGitignore, src.RespectGitignore)
	mergeBool(&dst.FollowSymlinks, src.FollowSymlinks)

	if src.Exclude != nil {
		dst.Exclude = slices.Clone(src.Exclude)
	}
}

func mergeDetect(dst, src *config.DetectConfig) {
	mergeBool(&dst.Modelines, src.Modelines)

	if src.ContentLimit != 0 {
		dst.ContentLimit = src.ContentLimit
	}
	if src.Catalog != "" {
		dst.Catalog = src.Catalog
	}
	if src.Heuristics != "" {
		dst.Heuristics = src.Heuristics
	}
	if src.Model != "" {
		dst.Model = src.Model
	}
	if src.Filters != "" {
		dst.Filters = src.Filters
	}
}

func mergeOutput(dst, src *config.OutputConfig) {
	if src.Format != "" {
		dst.Format = src.Format
	}
	if src.Mode != "" {
		dst.Mode = src.Mode
	}
	if src.Color != "" {
		dst.Color = src.Color
	}
	mergeBool(&dst.Progress, src.Progress)
	if src.MinPercent != 0 {
		dst.MinPercent = src.MinPercent
	}
	// Breakdown is CLI-only and can only be switched on.
	if src.Breakdown {
		dst.Breakdown = true
	}
}

func mergeBool(dst **bool, src *bool) {
	if src != nil {
		*dst = config.Bool(*src)
	}
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
