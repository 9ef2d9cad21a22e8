package reporter

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/yaklabco/linguo/internal/ui/pretty"
	"github.com/yaklabco/linguo/pkg/runner"
)

const htmlTitle = "Language breakdown"

// HTMLReporter renders results as a standalone HTML page. The body is
// written as GitHub-flavored Markdown and converted with goldmark.
type HTMLReporter struct {
	opts Options
	md   goldmark.Markdown
	bw   *bufio.Writer
}

// NewHTMLReporter creates a new HTML reporter.
func NewHTMLReporter(opts Options) *HTMLReporter {
	return &HTMLReporter{
		opts: opts,
		md:   goldmark.New(goldmark.WithExtensions(extension.GFM)),
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *HTMLReporter) Report(_ context.Context, result *runner.Result) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	var body bytes.Buffer
	if err := r.md.Convert(r.markdown(BuildReport(result, r.opts)), &body); err != nil {
		return fmt.Errorf("render HTML: %w", err)
	}

	fmt.Fprintf(r.bw, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n",
		html.EscapeString(htmlTitle))
	if _, err := r.bw.Write(body.Bytes()); err != nil {
		return fmt.Errorf("write HTML: %w", err)
	}
	fmt.Fprint(r.bw, "</body>\n</html>\n")
	return nil
}

// markdown lays the report out as a GFM document.
func (r *HTMLReporter) markdown(report *Report) []byte {
	var b bytes.Buffer

	fmt.Fprintf(&b, "# %s\n\n", htmlTitle)

	if len(report.Languages) == 0 {
		b.WriteString("No source files counted.\n")
		return b.Bytes()
	}

	b.WriteString("| Language | Type | Files | Lines | Bytes | Share |\n")
	b.WriteString("|---|---|--:|--:|--:|--:|\n")
	for _, l := range report.Languages {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %.2f%% |\n",
			escapeMarkdown(l.Name), escapeMarkdown(l.Type),
			pretty.FormatCount(int64(l.Files)), pretty.FormatCount(int64(l.Lines)),
			pretty.FormatBytes(l.Bytes), l.Percent)
	}

	s := report.Summary
	fmt.Fprintf(&b, "\n%d files counted of %d discovered, %s lines, %s.\n",
		s.FilesCounted, s.FilesDiscovered, pretty.FormatCount(int64(s.Lines)), pretty.FormatBytes(s.Bytes))

	if r.opts.Breakdown {
		for _, l := range report.Languages {
			fmt.Fprintf(&b, "\n## %s\n\n", escapeMarkdown(l.Name))
			for _, p := range l.Paths {
				fmt.Fprintf(&b, "- %s\n", escapeMarkdown(p))
			}
		}
	}

	if len(report.Errors) > 0 {
		b.WriteString("\n## Errors\n\n")
		for _, e := range report.Errors {
			fmt.Fprintf(&b, "- %s: %s\n", escapeMarkdown(e.Path), escapeMarkdown(e.Error))
		}
	}

	return b.Bytes()
}

//nolint:gochecknoglobals // Read-only replacer.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`, "[", `\[`, "]", `\]`,
	"<", `\<`, ">", `\>`, "#", `\#`, "|", `\|`, "!", `\!`,
)

// escapeMarkdown makes s render literally inside inline Markdown.
func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
