// Package classifier ranks candidate languages for a token sequence with a
// naive Bayes model trained on labeled sample files.
//
// Token probabilities come from github.com/jbrukh/bayesian, which floors the
// probability of unseen tokens instead of letting a single unknown token
// zero out a language. Rankings are sorted by score and then by language
// name, so equal scores never depend on map or slice iteration order.
package classifier

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"slices"

	"github.com/jbrukh/bayesian"

	"github.com/yaklabco/linguo/pkg/fsutil"
	"github.com/yaklabco/linguo/pkg/tokenizer"
)

// ErrTooFewLanguages is returned when a model would know fewer than two
// languages.
var ErrTooFewLanguages = errors.New("classifier needs at least two languages")

// Score is the log-likelihood of one language.
type Score struct {
	Language string  `json:"language" yaml:"language"`
	Score    float64 `json:"score"    yaml:"score"`
}

// Model is an immutable trained classifier. It is safe for concurrent use.
type Model struct {
	bayes     *bayesian.Classifier
	languages []string
	index     map[string]int
}

// Train builds a model from samples.
func Train(samples []Sample) (*Model, error) {
	docs := make(map[string][][]string)
	for _, s := range samples {
		tokens := tokenizer.Tokenize(s.Content)
		if len(tokens) == 0 {
			continue
		}
		docs[s.Language] = append(docs[s.Language], tokens)
	}

	if len(docs) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewLanguages, len(docs))
	}

	langs := make([]string, 0, len(docs))
	for lang := range docs {
		langs = append(langs, lang)
	}
	slices.Sort(langs)

	classes := make([]bayesian.Class, len(langs))
	for i, lang := range langs {
		classes[i] = bayesian.Class(lang)
	}

	b := bayesian.NewClassifier(classes...)
	for _, lang := range langs {
		for _, tokens := range docs[lang] {
			b.Learn(tokens, bayesian.Class(lang))
		}
	}

	return newModel(b)
}

// Read loads a model previously written with WriteFile.
func Read(r io.Reader) (*Model, error) {
	b, err := bayesian.NewClassifierFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	return newModel(b)
}

// ReadFile loads a model file.
func ReadFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model %s: %w", path, err)
	}
	defer f.Close()

	m, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", path, err)
	}
	return m, nil
}

// Write serializes the model to w.
func (m *Model) Write(w io.Writer) error {
	if err := m.bayes.WriteTo(w); err != nil {
		return fmt.Errorf("encode model: %w", err)
	}
	return nil
}

// WriteFile serializes the model to path, replacing any existing file
// atomically.
func (m *Model) WriteFile(ctx context.Context, path string) error {
	if err := fsutil.WriteAtomicFunc(ctx, path, 0, m.Write); err != nil {
		return fmt.Errorf("write model %s: %w", path, err)
	}
	return nil
}

func newModel(b *bayesian.Classifier) (*Model, error) {
	if len(b.Classes) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewLanguages, len(b.Classes))
	}

	m := &Model{
		bayes:     b,
		languages: make([]string, 0, len(b.Classes)),
		index:     make(map[string]int, len(b.Classes)),
	}
	for i, class := range b.Classes {
		m.index[string(class)] = i
		m.languages = append(m.languages, string(class))
	}
	slices.Sort(m.languages)
	return m, nil
}

// Languages returns the languages the model was trained on, sorted.
func (m *Model) Languages() []string {
	return slices.Clone(m.languages)
}

// Knows reports whether the model was trained on lang.
func (m *Model) Knows(lang string) bool {
	_, ok := m.index[lang]
	return ok
}

// Rank scores candidates against tokens, best first. A nil candidate list
// ranks every language the model knows. Candidates the model was not
// trained on score negative infinity. When tokens is empty every candidate
// scores zero and the ranking is alphabetical.
func (m *Model) Rank(tokens []string, candidates []string) []Score {
	if candidates == nil {
		candidates = m.languages
	}

	seen := make(map[string]struct{}, len(candidates))
	scores := make([]Score, 0, len(candidates))

	var logScores []float64
	if len(tokens) > 0 {
		logScores, _, _ = m.bayes.LogScores(tokens)
	}

	for _, lang := range candidates {
		if _, dup := seen[lang]; dup {
			continue
		}
		seen[lang] = struct{}{}

		score := 0.0
		if logScores != nil {
			score = math.Inf(-1)
			if idx, ok := m.index[lang]; ok {
				score = logScores[idx]
			}
		}
		scores = append(scores, Score{Language: lang, Score: score})
	}

	slices.SortFunc(scores, compareScores)
	return scores
}

// Best returns the top ranked candidate, or false when there is none.
func (m *Model) Best(tokens []string, candidates []string) (string, bool) {
	ranked := m.Rank(tokens, candidates)
	if len(ranked) == 0 {
		return "", false
	}
	return ranked[0].Language, true
}

func compareScores(a, b Score) int {
	if c := cmp.Compare(b.Score, a.Score); c != 0 {
		return c
	}
	return cmp.Compare(a.Language, b.Language)
}
