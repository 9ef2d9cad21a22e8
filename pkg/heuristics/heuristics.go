// Package heuristics disambiguates extensions shared by several languages by
// matching content against ordered, per-extension rule lists.
//
// Rules are plain data: a language paired with a tagged condition. There is
// no per-language matcher type, so the evaluation order of a group is exactly
// the order it was declared in and can be inspected with Set.Rules.
package heuristics

import (
	"cmp"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/yaklabco/linguo/pkg/catalog"
)

// ErrInvalidRules is returned when heuristic data is malformed or does not
// agree with the catalog.
var ErrInvalidRules = errors.New("invalid heuristics")

// Kind tags the variant of a Condition.
type Kind int

const (
	// KindAlways holds unconditionally.
	KindAlways Kind = iota
	// KindPattern holds when any of its patterns matches.
	KindPattern
	// KindNegative holds when none of its patterns matches.
	KindNegative
	// KindAnd holds when all of its terms hold.
	KindAnd
)

func (k Kind) String() string {
	switch k {
	case KindAlways:
		return "always"
	case KindPattern:
		return "pattern"
	case KindNegative:
		return "negative_pattern"
	case KindAnd:
		return "and"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Condition is a predicate over raw content.
type Condition struct {
	Kind     Kind
	Patterns []*regexp.Regexp
	Terms    []Condition
}

// Match evaluates the condition against content.
func (c Condition) Match(content []byte) bool {
	switch c.Kind {
	case KindAlways:
		return true
	case KindPattern:
		for _, re := range c.Patterns {
			if re.Match(content) {
				return true
			}
		}
		return false
	case KindNegative:
		for _, re := range c.Patterns {
			if re.Match(content) {
				return false
			}
		}
		return true
	case KindAnd:
		for _, term := range c.Terms {
			if !term.Match(content) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Rule names the language reported when its condition holds.
type Rule struct {
	Language  string
	Condition Condition
}

// Set is an immutable collection of rule groups keyed by lower-case
// extension.
type Set struct {
	version string
	byExt   map[string][]Rule
}

// Version returns the data version the set was loaded from.
func (s *Set) Version() string {
	return s.version
}

// Extensions returns the extensions that have rules, sorted.
func (s *Set) Extensions() []string {
	exts := make([]string, 0, len(s.byExt))
	for ext := range s.byExt {
		exts = append(exts, ext)
	}
	slices.SortFunc(exts, cmp.Compare[string])
	return exts
}

// Rules returns the rules for ext in evaluation order.
func (s *Set) Rules(ext string) []Rule {
	return slices.Clone(s.byExt[strings.ToLower(ext)])
}

// Match runs the rules for ext against content and returns the language of
// the first rule that holds.
func (s *Set) Match(ext string, content []byte) (string, bool) {
	for _, rule := range s.byExt[strings.ToLower(ext)] {
		if rule.Condition.Match(content) {
			return rule.Language, true
		}
	}
	return "", false
}

// Check verifies that every rule names a language the catalog associates with
// the rule's extension.
func (s *Set) Check(c *catalog.Catalog) error {
	var errs []error
	for _, ext := range s.Extensions() {
		candidates := c.LanguagesForExtension(ext)
		for _, rule := range s.byExt[ext] {
			if !slices.Contains(candidates, rule.Language) {
				errs = append(errs, fmt.Errorf("extension %s: %q is not a catalog candidate %v", ext, rule.Language, candidates))
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidRules, errors.Join(errs...))
	}
	return nil
}
