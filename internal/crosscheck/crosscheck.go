// Package crosscheck compares linguo guesses with go-enry, an independent
// implementation of the same detection rules, to spot regressions in the
// catalog or heuristics data.
package crosscheck

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/linguo/pkg/catalog"
	"github.com/yaklabco/linguo/pkg/langdetect"
)

// Verdict is go-enry's view of a file.
type Verdict struct {
	Language      string       `json:"language"      yaml:"language"`
	Safe          bool         `json:"safe"          yaml:"safe"`
	Type          catalog.Type `json:"type"          yaml:"type"`
	Vendor        bool         `json:"vendor"        yaml:"vendor"`
	Documentation bool         `json:"documentation" yaml:"documentation"`
	Generated     bool         `json:"generated"     yaml:"generated"`
}

// Detect runs go-enry on path and content. A nil content limits go-enry to
// path based strategies.
func Detect(path string, content []byte) Verdict {
	name := filepath.Base(path)

	var (
		lang string
		safe bool
	)
	if content == nil {
		lang, safe = byPath(name)
	} else {
		candidates := enry.GetLanguages(name, content)
		safe = len(candidates) == 1
		if len(candidates) > 0 {
			lang = candidates[0]
		}
		if enry.IsBinary(content) {
			lang, safe = "", true
		}
	}

	return Verdict{
		Language:      lang,
		Safe:          safe,
		Type:          convertType(enry.GetLanguageType(lang)),
		Vendor:        enry.IsVendor(path),
		Documentation: enry.IsDocumentation(path),
		Generated:     content != nil && enry.IsGenerated(path, content),
	}
}

func byPath(name string) (string, bool) {
	if lang, safe := enry.GetLanguageByFilename(name); lang != "" {
		return lang, safe
	}
	return enry.GetLanguageByExtension(name)
}

func convertType(t enry.Type) catalog.Type {
	switch t {
	case enry.Programming:
		return catalog.TypeProgramming
	case enry.Data:
		return catalog.TypeData
	case enry.Markup:
		return catalog.TypeMarkup
	case enry.Prose:
		return catalog.TypeProse
	default:
		return catalog.TypeUnknown
	}
}

// Comparison pairs a linguo guess with the go-enry verdict for one file.
type Comparison struct {
	Path      string           `json:"path"      yaml:"path"`
	Guess     langdetect.Guess `json:"guess"     yaml:"guess"`
	Reference Verdict          `json:"reference" yaml:"reference"`
	Agree     bool             `json:"agree"     yaml:"agree"`
}

// Compare runs go-enry on the same input as guess and reports whether both
// name the same language. Unknown and binary results agree with an empty
// go-enry answer.
func Compare(path string, content []byte, guess langdetect.Guess) Comparison {
	ref := Detect(path, content)
	return Comparison{
		Path:      path,
		Guess:     guess,
		Reference: ref,
		Agree:     sameLanguage(guess, ref.Language),
	}
}

func sameLanguage(guess langdetect.Guess, reference string) bool {
	if guess.IsUnknown() {
		return reference == ""
	}
	return strings.EqualFold(guess.Language, reference)
}
