// Package config defines core configuration types for linguo.
// These types are pure data structures; discovery and merging live in
// internal/configloader.
package config

// OutputFormat specifies the output format of a scan report.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
	FormatHTML OutputFormat = "html"
)

// Formats returns every supported output format.
func Formats() []OutputFormat {
	return []OutputFormat{FormatText, FormatJSON, FormatYAML, FormatHTML}
}

// IsValid returns true if the format is supported.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatYAML, FormatHTML:
		return true
	default:
		return false
	}
}

// CountMode selects what a language breakdown measures.
type CountMode string

const (
	ModeFiles CountMode = "files"
	ModeLines CountMode = "lines"
	ModeBytes CountMode = "bytes"
)

// IsValid returns true if the mode is supported.
func (m CountMode) IsValid() bool {
	switch m {
	case ModeFiles, ModeLines, ModeBytes:
		return true
	default:
		return false
	}
}

// ColorMode controls styled terminal output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid returns true if the color mode is supported.
func (c ColorMode) IsValid() bool {
	switch c {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// ScanConfig controls which files a scan counts. Pointer fields distinguish
// "unset" from an explicit false so that layered configs can turn an
// inherited option off.
type ScanConfig struct {
	IncludeVendored      *bool    `toml:"include_vendored,omitempty"      yaml:"include_vendored,omitempty"`
	IncludeDocumentation *bool    `toml:"include_documentation,omitempty" yaml:"include_documentation,omitempty"`
	IncludeDotfiles      *bool    `toml:"include_dotfiles,omitempty"      yaml:"include_dotfiles,omitempty"`
	IncludeConfiguration *bool    `toml:"include_configuration,omitempty" yaml:"include_configuration,omitempty"`
	IncludeGenerated     *bool    `toml:"include_generated,omitempty"     yaml:"include_generated,omitempty"`
	RespectGitignore     *bool    `toml:"respect_gitignore,omitempty"     yaml:"respect_gitignore,omitempty"`
	FollowSymlinks       *bool    `toml:"follow_symlinks,omitempty"       yaml:"follow_symlinks,omitempty"`
	Exclude              []string `toml:"exclude,omitempty"               yaml:"exclude,omitempty"`
}

// DetectConfig tunes the detector and points at replacement data files.
type DetectConfig struct {
	Modelines    *bool  `toml:"modelines,omitempty"     yaml:"modelines,omitempty"`
	ContentLimit int    `toml:"content_limit,omitempty" yaml:"content_limit,omitempty"`
	Catalog      string `toml:"catalog,omitempty"       yaml:"catalog,omitempty"`
	Heuristics   string `toml:"heuristics,omitempty"    yaml:"heuristics,omitempty"`
	Model        string `toml:"model,omitempty"         yaml:"model,omitempty"`
	Filters      string `toml:"filters,omitempty"       yaml:"filters,omitempty"`
}

// OutputConfig controls reporting.
type OutputConfig struct {
	Format     OutputFormat `toml:"format,omitempty"      yaml:"format,omitempty"`
	Mode       CountMode    `toml:"mode,omitempty"        yaml:"mode,omitempty"`
	Color      ColorMode    `toml:"color,omitempty"       yaml:"color,omitempty"`
	Progress   *bool        `toml:"progress,omitempty"    yaml:"progress,omitempty"`
	MinPercent float64      `toml:"min_percent,omitempty" yaml:"min_percent,omitempty"`

	// Breakdown lists the files of each language. CLI only.
	Breakdown bool `toml:"-" yaml:"-"`
}

// Config is the root configuration structure for linguo.
type Config struct {
	// Jobs is the number of parallel workers; 0 means one per CPU.
	Jobs int `toml:"jobs,omitempty" yaml:"jobs,omitempty"`

	Scan   ScanConfig   `toml:"scan"   yaml:"scan"`
	Detect DetectConfig `toml:"detect" yaml:"detect"`
	Output OutputConfig `toml:"output" yaml:"output"`
}

// DefaultContentLimit is the default number of bytes the detector inspects.
const DefaultContentLimit = 100000

// NewConfig returns a Config with every option set to its default.
func NewConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			IncludeVendored:      Bool(false),
			IncludeDocumentation: Bool(false),
			IncludeDotfiles:      Bool(false),
			IncludeConfiguration: Bool(false),
			IncludeGenerated:     Bool(false),
			RespectGitignore:     Bool(true),
			FollowSymlinks:       Bool(false),
		},
		Detect: DetectConfig{
			Modelines:    Bool(true),
			ContentLimit: DefaultContentLimit,
		},
		Output: OutputConfig{
			Format:   FormatText,
			Mode:     ModeBytes,
			Color:    ColorAuto,
			Progress: Bool(false),
		},
	}
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}

// Enabled dereferences p, returning def when p is nil.
func Enabled(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}
