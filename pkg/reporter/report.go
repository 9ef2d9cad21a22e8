package reporter

import (
	"slices"

	"github.com/yaklabco/linguo/pkg/config"
	"github.com/yaklabco/linguo/pkg/runner"
)

// SchemaVersion identifies the layout of structured reports.
const SchemaVersion = "1"

// Report is the format-neutral view of a scan shared by the structured
// reporters.
type Report struct {
	Version   string           `json:"version"          yaml:"version"`
	Mode      config.CountMode `json:"mode"             yaml:"mode"`
	Total     int64            `json:"total"            yaml:"total"`
	Languages []LanguageEntry  `json:"languages"        yaml:"languages"`
	Summary   Summary          `json:"summary"          yaml:"summary"`
	Errors    []FileError      `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// LanguageEntry is one row of the breakdown.
type LanguageEntry struct {
	Name    string   `json:"name"            yaml:"name"`
	Type    string   `json:"type,omitempty"  yaml:"type,omitempty"`
	Color   string   `json:"color,omitempty" yaml:"color,omitempty"`
	Files   int      `json:"files"           yaml:"files"`
	Lines   int      `json:"lines"           yaml:"lines"`
	Bytes   int64    `json:"bytes"           yaml:"bytes"`
	Percent float64  `json:"percent"         yaml:"percent"`
	Paths   []string `json:"paths,omitempty" yaml:"paths,omitempty"`
}

// Summary contains aggregate statistics.
type Summary struct {
	FilesDiscovered int            `json:"filesDiscovered"   yaml:"files_discovered"`
	FilesCounted    int            `json:"filesCounted"      yaml:"files_counted"`
	FilesSkipped    map[string]int `json:"filesSkipped"      yaml:"files_skipped"`
	FilesErrored    int            `json:"filesErrored"      yaml:"files_errored"`
	Lines           int            `json:"lines"             yaml:"lines"`
	Bytes           int64          `json:"bytes"             yaml:"bytes"`
}

// FileError records a file that could not be read.
type FileError struct {
	Path  string `json:"path"  yaml:"path"`
	Error string `json:"error" yaml:"error"`
}

// BuildReport converts a runner result into a Report.
func BuildReport(result *runner.Result, opts Options) *Report {
	mode := opts.Mode
	if mode == "" {
		mode = config.ModeBytes
	}

	report := &Report{
		Version:   SchemaVersion,
		Mode:      mode,
		Languages: make([]LanguageEntry, 0),
		Summary:   Summary{FilesSkipped: make(map[string]int)},
	}
	if result == nil {
		return report
	}

	report.Total = result.Total(mode)

	for _, share := range result.Breakdown(mode, opts.MinPercent) {
		entry := LanguageEntry{
			Name:    share.Language,
			Type:    share.Type,
			Color:   share.Color,
			Files:   share.Files,
			Lines:   share.Lines,
			Bytes:   share.Bytes,
			Percent: roundPercent(share.Percent),
		}
		if opts.Breakdown {
			entry.Paths = slices.Clone(share.Paths)
		}
		report.Languages = append(report.Languages, entry)
	}

	stats := result.Stats
	report.Summary.FilesDiscovered = stats.FilesDiscovered
	report.Summary.FilesCounted = stats.FilesCounted
	report.Summary.FilesErrored = stats.FilesErrored
	report.Summary.Lines = stats.Lines
	report.Summary.Bytes = stats.Bytes
	for reason, n := range stats.FilesSkipped {
		report.Summary.FilesSkipped[string(reason)] = n
	}

	for _, f := range result.Files {
		if f.Error != nil {
			report.Errors = append(report.Errors, FileError{Path: f.Path, Error: f.Error.Error()})
		}
	}

	return report
}

// roundPercent keeps two decimals so structured output is stable.
func roundPercent(p float64) float64 {
	return float64(int64(p*100+0.5)) / 100
}
