// Package langdetect identifies the language of a file from its path and
// content.
//
// A Detector runs an ordered pipeline and stops at the first definitive
// signal: binary content, exact filename, shebang interpreter, editor
// modeline, file extension, content heuristics for ambiguous extensions,
// and finally a naive Bayes classifier. Signals earlier in the pipeline are
// more certain; only the classifier produces unsafe guesses for text files.
package langdetect

import (
	"github.com/yaklabco/linguo/pkg/catalog"
	"github.com/yaklabco/linguo/pkg/classifier"
	"github.com/yaklabco/linguo/pkg/filters"
	"github.com/yaklabco/linguo/pkg/heuristics"
	"github.com/yaklabco/linguo/pkg/tokenizer"
)

// Distinguished results.
const (
	// NoLanguage is returned for binary content.
	NoLanguage = ""
	// UnknownLanguage is returned when no signal matched and there was
	// nothing to classify.
	UnknownLanguage = "Unknown"
)

// DefaultContentLimit is the number of leading content bytes inspected by
// heuristics and the classifier.
const DefaultContentLimit = tokenizer.ByteLimit

// Strategy names the pipeline step that produced a Guess.
type Strategy string

// Pipeline steps, in evaluation order.
const (
	StrategyBinary     Strategy = "binary"
	StrategyFilename   Strategy = "filename"
	StrategyShebang    Strategy = "shebang"
	StrategyModeline   Strategy = "modeline"
	StrategyExtension  Strategy = "extension"
	StrategyHeuristic  Strategy = "heuristic"
	StrategyClassifier Strategy = "classifier"
	StrategyNone       Strategy = "none"
)

// Guess is the outcome of a detection. Safe is true only when the language
// came from an unambiguous signal.
type Guess struct {
	Language string   `json:"language" yaml:"language"`
	Safe     bool     `json:"safe"     yaml:"safe"`
	Strategy Strategy `json:"strategy" yaml:"strategy"`
}

// IsUnknown reports whether no language could be determined.
func (g Guess) IsUnknown() bool {
	return g.Language == NoLanguage || g.Language == UnknownLanguage
}

// Components are the immutable data a Detector works from.
type Components struct {
	Catalog    *catalog.Catalog
	Heuristics *heuristics.Set
	Model      *classifier.Model
	Filters    *filters.Set
}

// Options tune detection.
type Options struct {
	// ContentLimit caps the bytes handed to heuristics and the classifier.
	// Zero means DefaultContentLimit.
	ContentLimit int
	// DisableModelines skips the editor modeline step.
	DisableModelines bool
}

// Detector runs the detection pipeline. It holds no mutable state and is
// safe for concurrent use once constructed.
type Detector struct {
	catalog    *catalog.Catalog
	heuristics *heuristics.Set
	model      *classifier.Model
	filters    *filters.Set
	limit      int
	modelines  bool
}

// Detect returns the guess for the file at path. A nil content means only
// the path is known: binary detection, shebangs, modelines and heuristics are
// skipped and an ambiguous extension is resolved by name order.
func (d *Detector) Detect(path string, content []byte) Guess {
	if content != nil && filters.IsBinary(content) {
		return Guess{Language: NoLanguage, Strategy: StrategyBinary}
	}

	content = d.truncate(content)

	var shortlist []string
	keep := func(langs []string) {
		if shortlist == nil && len(langs) > 1 {
			shortlist = langs
		}
	}

	langs := d.catalog.LanguagesForFilename(path)
	if len(langs) == 1 {
		return Guess{Language: langs[0], Safe: true, Strategy: StrategyFilename}
	}
	keep(langs)

	if interp := tokenizer.Interpreter(content); interp != "" {
		langs = d.catalog.LanguagesForInterpreter(interp)
		if len(langs) == 1 {
			return Guess{Language: langs[0], Safe: true, Strategy: StrategyShebang}
		}
		keep(langs)
	}

	if d.modelines {
		if lang, ok := d.modeline(content); ok {
			return Guess{Language: lang, Safe: true, Strategy: StrategyModeline}
		}
	}

	ext, langs := d.catalog.LookupExtension(path)
	switch {
	case len(langs) == 1:
		return Guess{Language: langs[0], Safe: true, Strategy: StrategyExtension}
	case len(langs) > 1:
		if content != nil {
			if lang, ok := d.heuristics.Match(ext, content); ok {
				return Guess{Language: lang, Safe: true, Strategy: StrategyHeuristic}
			}
		}
		return d.classify(content, langs)
	}

	if shortlist != nil {
		return d.classify(content, shortlist)
	}

	tokens := tokenizer.Tokenize(content)
	if len(tokens) == 0 {
		return Guess{Language: UnknownLanguage, Strategy: StrategyNone}
	}
	lang, _ := d.model.Best(tokens, nil)
	return Guess{Language: lang, Strategy: StrategyClassifier}
}

// Candidates returns the shortlist produced by the first catalog signal for
// path and content: filename, shebang interpreter or extension. It returns
// nil when no signal matched.
func (d *Detector) Candidates(path string, content []byte) []string {
	if langs := d.catalog.LanguagesForFilename(path); len(langs) > 0 {
		return langs
	}
	if interp := tokenizer.Interpreter(content); interp != "" {
		if langs := d.catalog.LanguagesForInterpreter(interp); len(langs) > 0 {
			return langs
		}
	}
	_, langs := d.catalog.LookupExtension(path)
	return langs
}

// Rank scores candidates against content with the classifier, best first.
// A nil candidate list ranks every language the model knows.
func (d *Detector) Rank(content []byte, candidates []string) []classifier.Score {
	return d.model.Rank(tokenizer.Tokenize(d.truncate(content)), candidates)
}

func (d *Detector) classify(content []byte, shortlist []string) Guess {
	lang, ok := d.model.Best(tokenizer.Tokenize(content), shortlist)
	if !ok {
		return Guess{Language: UnknownLanguage, Strategy: StrategyNone}
	}
	return Guess{Language: lang, Strategy: StrategyClassifier}
}

func (d *Detector) truncate(content []byte) []byte {
	if len(content) > d.limit {
		return content[:d.limit]
	}
	return content
}
