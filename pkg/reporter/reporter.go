// Package reporter renders the language breakdown of a scan.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/linguo/pkg/config"
	"github.com/yaklabco/linguo/pkg/runner"
)

// Reporter formats and writes scan results.
type Reporter interface {
	// Report writes formatted output for the given result.
	Report(ctx context.Context, result *runner.Result) error
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	defaults := DefaultOptions()
	if opts.Writer == nil {
		opts.Writer = defaults.Writer
	}
	if opts.Mode == "" {
		opts.Mode = defaults.Mode
	}
	if !opts.Mode.IsValid() {
		return nil, fmt.Errorf("unsupported mode: %s", opts.Mode)
	}

	format := opts.Format
	if format == "" {
		format = config.FormatText
	}

	switch format {
	case config.FormatText:
		return NewTextReporter(opts), nil
	case config.FormatJSON:
		return NewJSONReporter(opts), nil
	case config.FormatYAML:
		return NewYAMLReporter(opts), nil
	case config.FormatHTML:
		return NewHTMLReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
