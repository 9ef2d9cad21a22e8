package heuristics

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/linguo/internal/schema"
)

//go:embed data/heuristics.yaml
var defaultData []byte

//go:embed data/heuristics.schema.json
var schemaSource string

const schemaName = "heuristics.schema.json"

// patterns accepts either a single string or a list of strings.
type patterns []string

func (p *patterns) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		*p = patterns{s}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*p = list
		return nil
	default:
		return fmt.Errorf("line %d: pattern must be a string or a list of strings", node.Line)
	}
}

type rawCondition struct {
	Pattern         patterns `yaml:"pattern"`
	NamedPattern    string   `yaml:"named_pattern"`
	NegativePattern patterns `yaml:"negative_pattern"`
}

type rawRule struct {
	Language     string `yaml:"language"`
	rawCondition `yaml:",inline"`
	And          []rawCondition `yaml:"and"`
}

type rawGroup struct {
	Extensions []string  `yaml:"extensions"`
	Rules      []rawRule `yaml:"rules"`
}

type document struct {
	Version         string              `yaml:"version"`
	NamedPatterns   map[string]patterns `yaml:"named_patterns"`
	Disambiguations []rawGroup          `yaml:"disambiguations"`
}

// Default loads the rules embedded in the binary.
func Default() (*Set, error) {
	return Load(defaultData)
}

// LoadFile loads rules from a YAML file.
func LoadFile(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read heuristics %s: %w", path, err)
	}

	s, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("load heuristics %s: %w", path, err)
	}
	return s, nil
}

// Load parses, validates and compiles heuristic rules.
func Load(data []byte) (*Set, error) {
	if err := schema.ValidateYAML(schemaName, schemaSource, data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRules, err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRules, err)
	}

	c := compiler{named: make(map[string][]*regexp.Regexp, len(doc.NamedPatterns))}
	for name, pats := range doc.NamedPatterns {
		c.named[name] = c.compile("named pattern "+name, pats)
	}

	set := &Set{version: doc.Version, byExt: make(map[string][]Rule)}
	for _, group := range doc.Disambiguations {
		rules := make([]Rule, 0, len(group.Rules))
		for _, raw := range group.Rules {
			rules = append(rules, c.rule(raw))
		}
		for _, ext := range group.Extensions {
			key := strings.ToLower(ext)
			if _, dup := set.byExt[key]; dup {
				c.errs = append(c.errs, fmt.Errorf("extension %s has more than one rule group", ext))
				continue
			}
			set.byExt[key] = rules
		}
	}

	if len(c.errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRules, errors.Join(c.errs...))
	}
	return set, nil
}

type compiler struct {
	named map[string][]*regexp.Regexp
	errs  []error
}

func (c *compiler) compile(where string, pats []string) []*regexp.Regexp {
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

func (c *compiler) rule(raw rawRule) Rule {
	where := "rule for " + raw.Language
	if len(raw.And) > 0 {
		terms := make([]Condition, 0, len(raw.And))
		for _, term := range raw.And {
			terms = append(terms, c.condition(where, term))
		}
		return Rule{Language: raw.Language, Condition: Condition{Kind: KindAnd, Terms: terms}}
	}
	return Rule{Language: raw.Language, Condition: c.condition(where, raw.rawCondition)}
}

func (c *compiler) condition(where string, raw rawCondition) Condition {
	switch {
	case len(raw.Pattern) > 0:
		return Condition{Kind: KindPattern, Patterns: c.compile(where, raw.Pattern)}
	case raw.NamedPattern != "":
		pats, ok := c.named[raw.NamedPattern]
		if !ok {
			c.errs = append(c.errs, fmt.Errorf("%s: unknown named pattern %q", where, raw.NamedPattern))
		}
		return Condition{Kind: KindPattern, Patterns: pats}
	case len(raw.NegativePattern) > 0:
		return Condition{Kind: KindNegative, Patterns: c.compile(where, raw.NegativePattern)}
	default:
		return Condition{Kind: KindAlways}
	}
}
