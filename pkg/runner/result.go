package runner

import (
	"slices"
	"strings"

	"github.com/yaklabco/linguo/pkg/config"
	"github.com/yaklabco/linguo/pkg/fsutil"
	"github.com/yaklabco/linguo/pkg/langdetect"
)

// SkipReason explains why a detected file does not count toward the
// breakdown.
type SkipReason string

const (
	SkipBinary        SkipReason = "binary"
	SkipGenerated     SkipReason = "generated"
	SkipConfiguration SkipReason = "configuration"
	SkipUnknown       SkipReason = "unknown"
)

// FileOutcome is the detection result for one file.
type FileOutcome struct {
	// Path is the file path relative to the working directory.
	Path string

	// Guess is the detected language. Zero if Error is set.
	Guess langdetect.Guess

	// Info describes the file as read. Nil if Error is set.
	Info *fsutil.FileInfo

	// Skipped is set when the file was detected but does not count.
	Skipped SkipReason

	// Error is set if the file could not be read.
	Error error

	abs string
}

// LanguageStats aggregates the counted files of one language.
type LanguageStats struct {
	Language string
	Type     string
	Color    string
	Files    int
	Lines    int
	Bytes    int64

	// Paths lists the counted files in path order.
	Paths []string
}

// Value returns the measure selected by mode.
func (s *LanguageStats) Value(mode config.CountMode) int64 {
	switch mode {
	case config.ModeFiles:
		return int64(s.Files)
	case config.ModeLines:
		return int64(s.Lines)
	default:
		return s.Bytes
	}
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesCounted is the number of files that contribute to a language.
	FilesCounted int

	// FilesSkipped is the number of files detected but not counted, by
	// reason.
	FilesSkipped map[SkipReason]int

	// FilesErrored is the number of files that could not be read.
	FilesErrored int

	// Lines and Bytes total the counted files.
	Lines int
	Bytes int64
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file.
	// Files are ordered deterministically (by path).
	Files []FileOutcome

	// Languages maps a language name to its stats.
	Languages map[string]*LanguageStats

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// Share is one row of a language breakdown.
type Share struct {
	*LanguageStats

	// Percent is the language's share of the total, 0 to 100.
	Percent float64
}

// Breakdown returns the languages ordered by the mode's measure,
// largest first, ties broken by name. Languages whose share falls below
// minPercent are dropped; percentages are relative to the full total.
func (r *Result) Breakdown(mode config.CountMode, minPercent float64) []Share {
	if r == nil {
		return nil
	}

	total := r.Total(mode)
	shares := make([]Share, 0, len(r.Languages))
	for _, s := range r.Languages {
		pct := 0.0
		if total > 0 {
			pct = float64(s.Value(mode)) * 100 / float64(total)
		}
		if pct < minPercent {
			continue
		}
		shares = append(shares, Share{LanguageStats: s, Percent: pct})
	}

	slices.SortFunc(shares, func(a, b Share) int {
		va, vb := a.Value(mode), b.Value(mode)
		if va != vb {
			if va > vb {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Language, b.Language)
	})
	return shares
}

// Total returns the sum of the mode's measure over all languages.
func (r *Result) Total(mode config.CountMode) int64 {
	if r == nil {
		return 0
	}
	var total int64
	for _, s := range r.Languages {
		total += s.Value(mode)
	}
	return total
}

// newResult creates a Result with initialized maps.
func newResult(capacity int) *Result {
	return &Result{
		Files:     make([]FileOutcome, 0, capacity),
		Languages: make(map[string]*LanguageStats),
		Stats: Stats{
			FilesSkipped: make(map[SkipReason]int),
		},
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome, describe func(lang string) (typ, color string)) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	if outcome.Skipped != "" {
		r.Stats.FilesSkipped[outcome.Skipped]++
		return
	}

	lang := outcome.Guess.Language
	stats, ok := r.Languages[lang]
	if !ok {
		typ, color := describe(lang)
		stats = &LanguageStats{Language: lang, Type: typ, Color: color}
		r.Languages[lang] = stats
	}

	stats.Files++
	stats.Lines += outcome.Info.Lines
	stats.Bytes += outcome.Info.Size
	stats.Paths = append(stats.Paths, outcome.Path)

	r.Stats.FilesCounted++
	r.Stats.Lines += outcome.Info.Lines
	r.Stats.Bytes += outcome.Info.Size
}
