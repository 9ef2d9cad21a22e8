package pretty

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/linguo/pkg/langdetect"
	"github.com/yaklabco/linguo/pkg/runner"
)

const (
	wordFile  = "file"
	wordFiles = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "42 files in 3 languages (1,204 lines, 38.2 KiB); skipped 5 (3 binary, 2 generated)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats, languages int) string {
	if stats.FilesCounted == 0 {
		msg := s.Warning.Render("No source files counted") +
			s.Dim.Render(fmt.Sprintf(" (%d %s discovered)", stats.FilesDiscovered, plural(stats.FilesDiscovered, wordFile, wordFiles)))
		return msg + s.skippedSuffix(stats) + "\n"
	}

	line := fmt.Sprintf("%s %s in %s %s (%s lines, %s)",
		s.Bold.Render(FormatCount(int64(stats.FilesCounted))),
		plural(stats.FilesCounted, wordFile, wordFiles),
		s.Bold.Render(fmt.Sprint(languages)),
		plural(languages, "language", "languages"),
		FormatCount(int64(stats.Lines)),
		FormatBytes(stats.Bytes))

	return line + s.skippedSuffix(stats) + "\n"
}

func (s *Styles) skippedSuffix(stats runner.Stats) string {
	var parts []string

	total := 0
	reasons := make([]runner.SkipReason, 0, len(stats.FilesSkipped))
	for reason, n := range stats.FilesSkipped {
		if n > 0 {
			reasons = append(reasons, reason)
			total += n
		}
	}
	slices.Sort(reasons)

	if total > 0 {
		detail := make([]string, 0, len(reasons))
		for _, reason := range reasons {
			detail = append(detail, fmt.Sprintf("%d %s", stats.FilesSkipped[reason], reason))
		}
		parts = append(parts, s.Dim.Render(fmt.Sprintf("skipped %d (%s)", total, strings.Join(detail, ", "))))
	}

	if stats.FilesErrored > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d unreadable", stats.FilesErrored)))
	}

	if len(parts) == 0 {
		return ""
	}
	return "; " + strings.Join(parts, "; ")
}

// FormatGuess formats a detection result as "path: Language (strategy, safe)".
func (s *Styles) FormatGuess(path string, guess langdetect.Guess) string {
	lang := guess.Language
	if lang == langdetect.NoLanguage {
		lang = "(binary)"
	}

	certainty := s.Unsafe.Render("unsafe")
	if guess.Safe {
		certainty = s.Safe.Render("safe")
	}

	return fmt.Sprintf("%s: %s %s",
		s.Path.Render(path),
		s.Language.Render(lang),
		s.Dim.Render("(")+s.Strategy.Render(string(guess.Strategy))+s.Dim.Render(", ")+certainty+s.Dim.Render(")"))
}
