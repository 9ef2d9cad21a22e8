package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/linguo/pkg/runner"
)

// yamlIndent is the indentation used when encoding YAML.
const yamlIndent = 2

// encodeFunc writes a Report to w.
type encodeFunc func(w io.Writer, report *Report, opts Options) error

// StructuredReporter writes the Report of a scan through a machine-readable
// encoding.
type StructuredReporter struct {
	opts   Options
	name   string
	encode encodeFunc
}

// NewJSONReporter creates a reporter writing indented JSON, or a single line
// when opts.Compact is set.
func NewJSONReporter(opts Options) *StructuredReporter {
	return &StructuredReporter{opts: opts, name: "JSON", encode: encodeJSON}
}

// NewYAMLReporter creates a reporter writing YAML.
func NewYAMLReporter(opts Options) *StructuredReporter {
	return &StructuredReporter{opts: opts, name: "YAML", encode: encodeYAML}
}

// Report implements Reporter.
func (r *StructuredReporter) Report(_ context.Context, result *runner.Result) error {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	if err := r.encode(bw, BuildReport(result, r.opts), r.opts); err != nil {
		return fmt.Errorf("encode %s: %w", r.name, err)
	}
	return bw.Flush()
}

func encodeJSON(w io.Writer, report *Report, opts Options) error {
	encoder := json.NewEncoder(w)
	if !opts.Compact {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(report)
}

func encodeYAML(w io.Writer, report *Report, _ Options) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(yamlIndent)
	if err := encoder.Encode(report); err != nil {
		return err
	}
	return encoder.Close()
}
