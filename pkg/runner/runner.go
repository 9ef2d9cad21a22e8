package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/yaklabco/linguo/internal/logging"
	"github.com/yaklabco/linguo/pkg/fsutil"
	"github.com/yaklabco/linguo/pkg/langdetect"
)

// Runner detects languages over a file tree using a langdetect.Detector.
type Runner struct {
	// Detector classifies each file. It is shared by all workers.
	Detector *langdetect.Detector
}

// New creates a new Runner with the given detector.
func New(detector *langdetect.Detector) *Runner {
	return &Runner{Detector: detector}
}

// Run discovers files under opts.Paths and detects them concurrently.
// It returns outcomes in path order with per-language statistics, or
// ErrNoFiles when discovery found nothing.
//
// The runner:
//   - Discovers files that survive the path filters
//   - Reads and detects files concurrently using a worker pool
//   - Skips binary, generated and configuration files unless included
//   - Respects context cancellation
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := DiscoverFiles(ctx, opts, r.Detector.Filters())
	if err != nil {
		return nil, err
	}

	result := newResult(len(files))
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, ErrNoFiles
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	// Don't use more workers than files.
	if jobs > len(files) {
		jobs = len(files)
	}

	logging.FromContext(ctx).Debug("detecting",
		logging.FieldFiles, len(files),
		logging.FieldJobs, jobs)

	workCh := make(chan File)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup

	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, workDir, opts)
		}()
	}

	// Feed work in a separate goroutine.
	go func() {
		defer close(workCh)
		for _, f := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- f:
			}
		}
	}()

	// Close outCh when all workers are done.
	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers complete out of order; collect by absolute path.
	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.abs] = outcome
		if opts.Progress != nil {
			opts.Progress(len(outcomes), len(files))
		}
	}

	describe := func(lang string) (string, string) {
		return string(r.Detector.LanguageType(lang)), r.Detector.Color(lang)
	}
	for _, f := range files {
		if outcome, ok := outcomes[f.Path]; ok {
			result.accumulate(outcome, describe)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// worker processes files from workCh and sends outcomes to outCh.
func (r *Runner) worker(
	ctx context.Context,
	workCh <-chan File,
	outCh chan<- FileOutcome,
	workDir string,
	opts Options,
) {
	for f := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := r.detectFile(ctx, f, workDir, opts)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// detectFile reads f and detects it under its filter path, so path rules
// agree with the ones discovery applied.
func (r *Runner) detectFile(ctx context.Context, f File, workDir string, opts Options) FileOutcome {
	outcome := FileOutcome{Path: displayPath(f.Path, workDir), abs: f.Path}

	content, info, err := fsutil.ReadFile(ctx, f.Path, r.Detector.ContentLimit())
	if err != nil {
		logging.FromContext(ctx).Debug("read failed",
			logging.FieldPath, f.Path,
			logging.FieldError, err)
		outcome.Error = err
		return outcome
	}
	outcome.Info = info

	guess := r.Detector.Detect(f.Rel, content)
	outcome.Guess = guess

	switch {
	case guess.Strategy == langdetect.StrategyBinary:
		outcome.Skipped = SkipBinary
	case guess.IsUnknown():
		outcome.Skipped = SkipUnknown
	case !opts.IncludeGenerated && r.Detector.IsGenerated(f.Rel, content):
		outcome.Skipped = SkipGenerated
	case !opts.IncludeConfiguration && r.Detector.Filters().IsConfigurationLanguage(guess.Language):
		outcome.Skipped = SkipConfiguration
	}
	return outcome
}

// displayPath returns path relative to workDir in slash form, or path itself
// when it lies outside workDir.
func displayPath(path, workDir string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
