package configloader

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/linguo/pkg/config"
)

// envVarPrefix is the prefix for all linguo environment variables.
const envVarPrefix = "LINGUO_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeFloat
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"JOBS":                  {"jobs", envTypeInt, "Number of parallel workers (0 = auto)"},
	"INCLUDE_VENDORED":      {"scan.include_vendored", envTypeBool, "Count vendored code: true or false"},
	"INCLUDE_DOCUMENTATION": {"scan.include_documentation", envTypeBool, "Count documentation: true or false"},
	"INCLUDE_DOTFILES":      {"scan.include_dotfiles", envTypeBool, "Count dotfiles: true or false"},
	"INCLUDE_CONFIGURATION": {"scan.include_configuration", envTypeBool, "Count configuration languages: true or false"},
	"INCLUDE_GENERATED":     {"scan.include_generated", envTypeBool, "Count generated files: true or false"},
	"RESPECT_GITIGNORE":     {"scan.respect_gitignore", envTypeBool, "Honor .gitignore files: true or false"},
	"FOLLOW_SYMLINKS":       {"scan.follow_symlinks", envTypeBool, "Follow directory symlinks: true or false"},
	"EXCLUDE":               {"scan.exclude", envTypeSlice, "Comma-separated list of exclude globs"},
	"MODELINES":             {"detect.modelines", envTypeBool, "Honor editor modelines: true or false"},
	"CONTENT_LIMIT":         {"detect.content_limit", envTypeInt, "Bytes of content inspected per file"},
	"CATALOG":               {"detect.catalog", envTypeString, "Path to a replacement language catalog"},
	"HEURISTICS":            {"detect.heuristics", envTypeString, "Path to replacement heuristic rules"},
	"MODEL":                 {"detect.model", envTypeString, "Path to a classifier model file"},
	"FILTERS":               {"detect.filters", envTypeString, "Path to replacement filter rules"},
	"FORMAT":                {"output.format", envTypeString, "Output format: text, json, yaml or html"},
	"MODE":                  {"output.mode", envTypeString, "Breakdown by files, lines or bytes"},
	"COLOR":                 {"output.color", envTypeString, "Color output: auto, always or never"},
	"PROGRESS":              {"output.progress", envTypeBool, "Show a progress bar: true or false"},
	"MIN_PERCENT":           {"output.min_percent", envTypeFloat, "Hide languages below this percentage"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with LINGUO_ (e.g., LINGUO_FORMAT).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, envSuffix := range slices.Sorted(maps.Keys(envMappings)) {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, envMappings[envSuffix], value, envVar); err != nil {
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
	case envTypeFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid number for %s: %q", envVar, value)
		}
		return setFloatField(cfg, mapping.field, f)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
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
	case "detect.catalog":
		cfg.Detect.Catalog = value
	case "detect.heuristics":
		cfg.Detect.Heuristics = value
	case "detect.model":
		cfg.Detect.Model = value
	case "detect.filters":
		cfg.Detect.Filters = value
	case "output.format":
		cfg.Output.Format = config.OutputFormat(strings.ToLower(value))
	case "output.mode":
		cfg.Output.Mode = config.CountMode(strings.ToLower(value))
	case "output.color":
		cfg.Output.Color = config.ColorMode(strings.ToLower(value))
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	var dst **bool
	switch field {
	case "scan.include_vendored":
		dst = &cfg.Scan.IncludeVendored
	case "scan.include_documentation":
		dst = &cfg.Scan.IncludeDocumentation
	case "scan.include_dotfiles":
		dst = &cfg.Scan.IncludeDotfiles
	case "scan.include_configuration":
		dst = &cfg.Scan.IncludeConfiguration
	case "scan.include_generated":
		dst = &cfg.Scan.IncludeGenerated
	case "scan.respect_gitignore":
		dst = &cfg.Scan.RespectGitignore
	case "scan.follow_symlinks":
		dst = &cfg.Scan.FollowSymlinks
	case "detect.modelines":
		dst = &cfg.Detect.Modelines
	case "output.progress":
		dst = &cfg.Output.Progress
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	*dst = config.Bool(value)
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	case "detect.content_limit":
		cfg.Detect.ContentLimit = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// setFloatField sets a float field on the config by field path.
func setFloatField(cfg *config.Config, field string, value float64) error {
	switch field {
	case "output.min_percent":
		cfg.Output.MinPercent = value
	default:
		return fmt.Errorf("unknown number field: %s", field)
	}
	return nil
}

// setSliceField sets a slice field on the config by field path.
func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "scan.exclude":
		cfg.Scan.Exclude = value
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
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.description
	}
	return vars
}
