package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/linguo/pkg/config"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format config.OutputFormat

	// Mode selects what the breakdown measures.
	Mode config.CountMode

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color config.ColorMode

	// MinPercent hides languages below this share of the total.
	MinPercent float64

	// Breakdown lists the counted files under each language.
	Breakdown bool

	// ShowSummary appends aggregate statistics (text format only).
	ShowSummary bool

	// Compact uses minified output where applicable.
	Compact bool

	// Width overrides the detected terminal width (text format only).
	Width int
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      config.FormatText,
		Mode:        config.ModeBytes,
		Color:       config.ColorAuto,
		ShowSummary: true,
	}
}

// OptionsFromConfig builds Options from the output section of a config.
func OptionsFromConfig(cfg *config.Config) Options {
	opts := DefaultOptions()
	if cfg == nil {
		return opts
	}

	out := cfg.Output
	if out.Format != "" {
		opts.Format = out.Format
	}
	if out.Mode != "" {
		opts.Mode = out.Mode
	}
	if out.Color != "" {
		opts.Color = out.Color
	}
	opts.MinPercent = out.MinPercent
	opts.Breakdown = out.Breakdown
	return opts
}
