package filters

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/linguo/internal/schema"
)

//go:embed data/filters.yaml
var defaultData []byte

//go:embed data/filters.schema.json
var schemaSource string

const schemaName = "filters.schema.json"

// ErrInvalidRules is returned when a filters file fails validation.
var ErrInvalidRules = errors.New("invalid filter rules")

type rawPathRules struct {
	Regex []string `yaml:"regex"`
	Glob  []string `yaml:"glob"`
}

type rawMinified struct {
	Extensions           []string `yaml:"extensions"`
	MaxAverageLineLength int      `yaml:"max_average_line_length"`
}

type rawGenerated struct {
	Extensions []string     `yaml:"extensions"`
	Names      []string     `yaml:"names"`
	Content    []string     `yaml:"content"`
	HeadLines  int          `yaml:"head_lines"`
	Minified   *rawMinified `yaml:"minified"`
}

type document struct {
	Version                string       `yaml:"version"`
	Vendor                 rawPathRules `yaml:"vendor"`
	Documentation          rawPathRules `yaml:"documentation"`
	Test                   rawPathRules `yaml:"test"`
	Generated              rawGenerated `yaml:"generated"`
	Images                 []string     `yaml:"images"`
	ConfigurationLanguages []string     `yaml:"configuration_languages"`
	AuxiliaryLanguages     []string     `yaml:"auxiliary_languages"`
}

// Default loads the filter rules embedded in the binary.
func Default() (*Set, error) {
	return Load(defaultData)
}

// LoadFile loads filter rules from a YAML file.
func LoadFile(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read filters %s: %w", path, err)
	}

	s, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("load filters %s: %w", path, err)
	}
	return s, nil
}

// Load parses, validates and compiles filter rules.
func Load(data []byte) (*Set, error) {
	if err := schema.ValidateYAML(schemaName, schemaSource, data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRules, err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRules, err)
	}

	var c compiler
	set := &Set{
		version:          doc.Version,
		vendor:           c.pathRules("vendor", doc.Vendor),
		documentation:    c.pathRules("documentation", doc.Documentation),
		test:             c.pathRules("test", doc.Test),
		generatedExt:     extSet(doc.Generated.Extensions),
		generatedNames:   c.union("generated names", doc.Generated.Names),
		generatedContent: c.each("generated content", doc.Generated.Content),
		headLines:        doc.Generated.HeadLines,
		images:           extSet(doc.Images),
		configuration:    nameSet(doc.ConfigurationLanguages),
		auxiliary:        nameSet(doc.AuxiliaryLanguages),
	}
	if m := doc.Generated.Minified; m != nil {
		set.minifiedExt = extSet(m.Extensions)
		set.minifiedLineLen = m.MaxAverageLineLength
	}
	if len(c.errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRules, errors.Join(c.errs...))
	}
	return set, nil
}

type compiler struct {
	errs []error
}

func (c *compiler) pathRules(where string, raw rawPathRules) pathRules {
	for _, g := range raw.Glob {
		if !doublestar.ValidatePattern(g) {
			c.errs = append(c.errs, fmt.Errorf("%s: invalid glob %q", where, g))
		}
	}
	return pathRules{re: c.union(where, raw.Regex), globs: raw.Glob}
}

// union compiles pats into a single alternation after checking each one on
// its own, so errors point at the offending pattern.
func (c *compiler) union(where string, pats []string) *regexp.Regexp {
	if len(pats) == 0 {
		return nil
	}

	parts := make([]string, 0, len(pats))
	ok := true
	for _, p := range pats {
		if _, err := regexp.Compile(p); err != nil {
			c.errs = append(c.errs, fmt.Errorf("%s: %w", where, err))
			ok = false
			continue
		}
		parts = append(parts, "(?:"+p+")")
	}
	if !ok {
		return nil
	}
	return regexp.MustCompile(strings.Join(parts, "|"))
}

func (c *compiler) each(where string, pats []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(pats))
	for _, p := range pats {
		re, err := regexp.Compile("(?m)" + p)
		if err != nil {
			c.errs = append(c.errs, fmt.Errorf("%s: %w", where, err))
			continue
		}
		out = append(out, re)
	}
	return out
}

func extSet(exts []string) map[string]struct{} {
	out := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		out[strings.ToLower(e)] = struct{}{}
	}
	return out
}

func nameSet(names []string) map[string]struct{} {
	out := make(map[string]struct{}, len(names))
	for _, n := range names {
		out[n] = struct{}{}
	}
	return out
}
