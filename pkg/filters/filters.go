// Package filters classifies paths and file contents that should not count
// toward a language breakdown: vendored code, documentation, tests,
// generated files, binaries, images and dotfiles.
//
// Path rules are data driven (see data/filters.yaml) and combine regular
// expressions with doublestar globs. Paths are matched in slash form.
package filters

import (
	"bytes"
	"path"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
)

// BinarySniffLen is how many leading bytes IsBinary inspects.
const BinarySniffLen = 8000

// Set is a compiled set of filter rules. It is immutable and safe for
// concurrent use.
type Set struct {
	version       string
	vendor        pathRules
	documentation pathRules
	test          pathRules

	generatedExt     map[string]struct{}
	generatedNames   *regexp.Regexp
	generatedContent []*regexp.Regexp
	headLines        int
	minifiedExt      map[string]struct{}
	minifiedLineLen  int

	images        map[string]struct{}
	configuration map[string]struct{}
	auxiliary     map[string]struct{}
}

type pathRules struct {
	re    *regexp.Regexp
	globs []string
}

func (r pathRules) match(p string) bool {
	if r.re != nil && r.re.MatchString(p) {
		return true
	}
	for _, g := range r.globs {
		// Patterns are validated at load time.
		if ok, _ := doublestar.Match(g, p); ok {
			return true
		}
	}
	return false
}

// Version returns the version string declared by the rules file.
func (s *Set) Version() string {
	return s.version
}

// IsVendor reports whether p is vendored or third-party code.
func (s *Set) IsVendor(p string) bool {
	return s.vendor.match(normalize(p))
}

// IsDocumentation reports whether p is documentation.
func (s *Set) IsDocumentation(p string) bool {
	return s.documentation.match(normalize(p))
}

// IsTest reports whether p is a test file.
func (s *Set) IsTest(p string) bool {
	return s.test.match(normalize(p))
}

// IsImage reports whether p has an image extension.
func (s *Set) IsImage(p string) bool {
	_, ok := s.images[strings.ToLower(path.Ext(normalize(p)))]
	return ok
}

// IsConfigurationLanguage reports whether lang is a configuration or data
// language such as JSON or YAML.
func (s *Set) IsConfigurationLanguage(lang string) bool {
	_, ok := s.configuration[lang]
	return ok
}

// ConfigurationLanguages returns the configuration languages, sorted.
func (s *Set) ConfigurationLanguages() []string {
	return sortedNames(s.configuration)
}

// IsAuxiliaryLanguage reports whether lang supports a project rather than
// implementing it: data, markup, build scripts or prose. Names are matched
// exactly.
func (s *Set) IsAuxiliaryLanguage(lang string) bool {
	_, ok := s.auxiliary[lang]
	return ok
}

// AuxiliaryLanguages returns the auxiliary languages, sorted.
func (s *Set) AuxiliaryLanguages() []string {
	return sortedNames(s.auxiliary)
}

func sortedNames(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// IsGenerated reports whether the file at p was produced by a tool. Name
// rules are checked first; content may be nil, in which case only the path
// is considered.
func (s *Set) IsGenerated(p string, content []byte) bool {
	p = normalize(p)
	ext := strings.ToLower(path.Ext(p))

	if _, ok := s.generatedExt[ext]; ok {
		return true
	}
	if s.generatedNames != nil && s.generatedNames.MatchString(p) {
		return true
	}
	if len(content) == 0 {
		return false
	}

	if _, ok := s.minifiedExt[ext]; ok && s.minifiedLineLen > 0 {
		if averageLineLength(content) > s.minifiedLineLen {
			return true
		}
	}

	head := headLines(content, s.headLines)
	for _, re := range s.generatedContent {
		if re.Match(head) {
			return true
		}
	}
	return false
}

// IsBinary reports whether content looks like binary data: a NUL byte or
// invalid UTF-8 within the first BinarySniffLen bytes. A multi-byte rune cut
// off by the sniff window is not treated as invalid.
func IsBinary(content []byte) bool {
	head := content
	truncated := false
	if len(head) > BinarySniffLen {
		head = head[:BinarySniffLen]
		truncated = true
	}

	if bytes.IndexByte(head, 0) >= 0 {
		return true
	}

	for len(head) > 0 {
		r, size := utf8.DecodeRune(head)
		if r == utf8.RuneError && size == 1 {
			if truncated && !utf8.FullRune(head) {
				return false
			}
			return true
		}
		head = head[size:]
	}
	return false
}

// IsDotFile reports whether the base name of p starts with a dot.
func IsDotFile(p string) bool {
	base := path.Base(normalize(p))
	return strings.HasPrefix(base, ".") && base != "." && base != ".."
}

func normalize(p string) string {
	p = filepath.ToSlash(p)
	return strings.TrimPrefix(p, "./")
}

func headLines(content []byte, n int) []byte {
	if n <= 0 {
		return content
	}
	end := 0
	for range n {
		i := bytes.IndexByte(content[end:], '\n')
		if i < 0 {
			return content
		}
		end += i + 1
	}
	return content[:end]
}

func averageLineLength(content []byte) int {
	lines := bytes.Count(content, []byte{'\n'})
	if !bytes.HasSuffix(content, []byte{'\n'}) {
		lines++
	}
	return len(content) / lines
}
