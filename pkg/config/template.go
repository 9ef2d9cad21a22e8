package config

import (
	"bytes"
	"fmt"
	"strings"
)

// TemplateFormat selects the syntax of a generated config file.
type TemplateFormat string

const (
	TemplateYAML TemplateFormat = "yaml"
	TemplateTOML TemplateFormat = "toml"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting with its default value. Otherwise every
	// setting is commented out.
	Full bool

	// Format is the output syntax; empty means YAML.
	Format TemplateFormat
}

type setting struct {
	section string
	key     string
	value   string // already rendered for both YAML and TOML
	comment string
}

//nolint:gochecknoglobals // Read-only template table.
var settings = []setting{
	{"", "jobs", "0", "Number of parallel workers (0 = one per CPU)"},

	{"scan", "include_vendored", "false", "Count vendored and third-party code"},
	{"scan", "include_documentation", "false", "Count documentation such as docs/ and README files"},
	{"scan", "include_dotfiles", "false", "Count files whose name starts with a dot"},
	{"scan", "include_configuration", "false", "Count configuration and data languages (JSON, YAML, TOML, XML, INI, SQL)"},
	{"scan", "include_generated", "false", "Count generated files such as lock files and protobuf output"},
	{"scan", "respect_gitignore", "true", "Skip paths matched by .gitignore files"},
	{"scan", "follow_symlinks", "false", "Descend into symlinked directories"},
	{"scan", "exclude", `["**/testdata/**"]`, "Glob patterns (doublestar syntax) of paths to skip"},

	{"detect", "modelines", "true", "Honor Emacs and Vim modelines"},
	{"detect", "content_limit", fmt.Sprint(DefaultContentLimit), "Bytes of each file inspected by heuristics and the classifier"},
	{"detect", "catalog", `""`, "Replacement language catalog (YAML); empty uses the built-in one"},
	{"detect", "heuristics", `""`, "Replacement heuristic rules (YAML)"},
	{"detect", "model", `""`, "Classifier model written by 'linguo model build'"},
	{"detect", "filters", `""`, "Replacement vendor/documentation/generated rules (YAML)"},

	{"output", "format", `"text"`, "Report format: text, json, yaml or html"},
	{"output", "mode", `"bytes"`, "Breakdown by files, lines or bytes"},
	{"output", "color", `"auto"`, "Colored output: auto, always or never"},
	{"output", "progress", "false", "Show a progress bar on a terminal"},
	{"output", "min_percent", "0.0", "Hide languages below this share of the total"},
}

// GenerateTemplate creates a commented configuration file.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	switch opts.Format {
	case "", TemplateYAML:
		return renderTemplate(opts.Full, yamlSyntax{}), nil
	case TemplateTOML:
		return renderTemplate(opts.Full, tomlSyntax{}), nil
	default:
		return nil, fmt.Errorf("unknown template format %q", opts.Format)
	}
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# linguo configuration
# See: https://github.com/yaklabco/linguo`
}

type syntax interface {
	section(name string) string
	entry(s setting) string
}

type yamlSyntax struct{}

func (yamlSyntax) section(name string) string { return name + ":" }

func (yamlSyntax) entry(s setting) string {
	indent := ""
	if s.section != "" {
		indent = "  "
	}
	return indent + s.key + ": " + s.value
}

type tomlSyntax struct{}

func (tomlSyntax) section(name string) string { return "[" + name + "]" }

func (tomlSyntax) entry(s setting) string { return s.key + " = " + s.value }

func renderTemplate(full bool, syn syntax) []byte {
	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n")

	current := ""
	for _, s := range settings {
		if s.section != current {
			current = s.section
			buf.WriteString("\n")
			// Section headers stay uncommented in a full template only; an
			// empty YAML mapping or TOML table is still valid, but a bare
			// key would not be.
			header := syn.section(current)
			if !full {
				header = "# " + header
			}
			buf.WriteString(header + "\n")
		}

		indent := ""
		if _, ok := syn.(yamlSyntax); ok && s.section != "" {
			indent = "  "
		}
		buf.WriteString(indent + "# " + s.comment + "\n")

		line := syn.entry(s)
		if !full {
			line = commentOut(line)
		}
		buf.WriteString(line + "\n")
	}
	return buf.Bytes()
}

func commentOut(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	return line[:len(line)-len(trimmed)] + "# " + trimmed
}
