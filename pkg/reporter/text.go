package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/linguo/internal/ui/pretty"
	"github.com/yaklabco/linguo/pkg/config"
	"github.com/yaklabco/linguo/pkg/runner"
)

// Column layout of a breakdown row.
const (
	minBarWidth   = 10
	maxBarWidth   = 40
	percentWidth  = 7 // "100.00%"
	valueWidth    = 12
	columnSpacing = 2
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	width  int
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(string(opts.Color), opts.Writer)
	width := opts.Width
	if width <= 0 {
		width = pretty.TerminalWidth(opts.Writer)
	}
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		width:  width,
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		fmt.Fprintln(r.bw, r.styles.Warning.Render("No files to scan."))
		return nil
	}

	shares := result.Breakdown(r.opts.Mode, r.opts.MinPercent)

	nameWidth := 0
	for _, s := range shares {
		nameWidth = max(nameWidth, lipgloss.Width(s.Language))
	}
	barWidth := r.width - nameWidth - percentWidth - valueWidth - 3*columnSpacing
	barWidth = min(max(barWidth, minBarWidth), maxBarWidth)

	pad := strings.Repeat(" ", columnSpacing)
	for _, s := range shares {
		name := s.Language + strings.Repeat(" ", nameWidth-lipgloss.Width(s.Language))
		fmt.Fprintf(r.bw, "%s%s%s%s%s%s%s\n",
			r.styles.Language.Render(name), pad,
			r.styles.Bar(s.Percent, barWidth, s.Color), pad,
			r.styles.Percent.Render(fmt.Sprintf("%6.2f%%", s.Percent)), pad,
			r.styles.Value.Render(fmt.Sprintf("%*s", valueWidth, formatValue(s.LanguageStats, r.opts.Mode))))

		if r.opts.Breakdown {
			for _, p := range s.Paths {
				fmt.Fprintln(r.bw, "  "+r.styles.Path.Render(p))
			}
			fmt.Fprintln(r.bw)
		}
	}

	for _, f := range result.Files {
		if f.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.Path.Render(f.Path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", f.Error)))
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw)
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats, len(result.Languages)))
	}
	return nil
}

// formatValue renders the measure of s selected by mode.
func formatValue(s *runner.LanguageStats, mode config.CountMode) string {
	switch mode {
	case config.ModeFiles:
		return fmt.Sprintf("%s %s", pretty.FormatCount(int64(s.Files)), plural(s.Files, "file", "files"))
	case config.ModeLines:
		return fmt.Sprintf("%s %s", pretty.FormatCount(int64(s.Lines)), plural(s.Lines, "line", "lines"))
	default:
		return pretty.FormatBytes(s.Bytes)
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
