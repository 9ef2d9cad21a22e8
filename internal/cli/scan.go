package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/yaklabco/linguo/internal/logging"
	"github.com/yaklabco/linguo/internal/ui/pretty"
	"github.com/yaklabco/linguo/pkg/config"
	"github.com/yaklabco/linguo/pkg/reporter"
	"github.com/yaklabco/linguo/pkg/runner"
)

// progressThrottle limits progress bar redraws.
const progressThrottle = 65 * time.Millisecond

type scanFlags struct {
	format               string
	mode                 string
	minPercent           float64
	breakdown            bool
	compact              bool
	progress             bool
	jobs                 int
	exclude              []string
	includeVendored      bool
	includeDocumentation bool
	includeDotfiles      bool
	includeConfiguration bool
	includeGenerated     bool
	noGitignore          bool
	followSymlinks       bool
}

func newScanCommand() *cobra.Command {
	flags := &scanFlags{}

	cmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "Report the language breakdown of a directory tree",
		Long:  scanLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args, flags)
		},
	}

	addScanFlags(cmd, flags)

	return cmd
}

const scanLongDescription = `Detect the language of every file under the given paths and print a
breakdown by bytes, lines or files.

Vendored code, documentation, dotfiles, configuration languages and generated
files are skipped unless included. Paths matched by .gitignore files are
skipped too.

Examples:
  linguo scan                         # Scan the current directory
  linguo scan src/ lib/               # Scan two directories
  linguo scan --mode lines            # Break down by line count
  linguo scan --breakdown             # List the files of each language
  linguo scan --format json           # Machine-readable output
  linguo scan --exclude '**/*_test.go'`

func addScanFlags(cmd *cobra.Command, flags *scanFlags) {
	f := cmd.Flags()
	f.StringVar(&flags.format, "format", "text", "output format: text, json, yaml, html")
	f.StringVar(&flags.mode, "mode", "bytes", "breakdown by: files, lines, bytes")
	f.Float64Var(&flags.minPercent, "min-percent", 0, "hide languages below this percentage")
	f.BoolVar(&flags.breakdown, "breakdown", false, "list the files of each language")
	f.BoolVar(&flags.compact, "compact", false, "minified output for json")
	f.BoolVar(&flags.progress, "progress", false, "show a progress bar on a terminal")
	f.IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	f.StringSliceVar(&flags.exclude, "exclude", nil, "glob patterns of paths to skip")
	f.BoolVar(&flags.includeVendored, "include-vendored", false, "count vendored code")
	f.BoolVar(&flags.includeDocumentation, "include-documentation", false, "count documentation")
	f.BoolVar(&flags.includeDotfiles, "include-dotfiles", false, "count dotfiles")
	f.BoolVar(&flags.includeConfiguration, "include-configuration", false, "count configuration languages")
	f.BoolVar(&flags.includeGenerated, "include-generated", false, "count generated files")
	f.BoolVar(&flags.noGitignore, "no-gitignore", false, "do not honor .gitignore files")
	f.BoolVar(&flags.followSymlinks, "follow-symlinks", false, "descend into symlinked directories")
}

// cliConfig converts the flags the user actually set into a config layer.
func (flags *scanFlags) cliConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := &config.Config{}
	changed := cmd.Flags().Changed

	if changed("format") {
		format, err := config.ParseFormat(flags.format)
		if err != nil {
			return nil, usageError(err)
		}
		cfg.Output.Format = format
	}
	if changed("mode") {
		mode, err := config.ParseMode(flags.mode)
		if err != nil {
			return nil, usageError(err)
		}
		cfg.Output.Mode = mode
	}
	if changed("min-percent") {
		cfg.Output.MinPercent = flags.minPercent
	}
	if changed("progress") {
		cfg.Output.Progress = config.Bool(flags.progress)
	}
	cfg.Output.Breakdown = flags.breakdown

	if changed("jobs") {
		cfg.Jobs = flags.jobs
	}
	if changed("exclude") {
		cfg.Scan.Exclude = flags.exclude
	}

	bools := []struct {
		flag  string
		value bool
		dst   **bool
	}{
		{"include-vendored", flags.includeVendored, &cfg.Scan.IncludeVendored},
		{"include-documentation", flags.includeDocumentation, &cfg.Scan.IncludeDocumentation},
		{"include-dotfiles", flags.includeDotfiles, &cfg.Scan.IncludeDotfiles},
		{"include-configuration", flags.includeConfiguration, &cfg.Scan.IncludeConfiguration},
		{"include-generated", flags.includeGenerated, &cfg.Scan.IncludeGenerated},
		{"no-gitignore", !flags.noGitignore, &cfg.Scan.RespectGitignore},
		{"follow-symlinks", flags.followSymlinks, &cfg.Scan.FollowSymlinks},
	}
	for _, b := range bools {
		if changed(b.flag) {
			*b.dst = config.Bool(b.value)
		}
	}

	return cfg, nil
}

func runScan(cmd *cobra.Command, args []string, flags *scanFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	cliCfg, err := flags.cliConfig(cmd)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	det, err := newDetector(cfg)
	if err != nil {
		return err
	}

	runOpts := runner.OptionsFromConfig(cfg, args)

	var bar *progressbar.ProgressBar
	if config.Enabled(cfg.Output.Progress, false) && pretty.IsTerminal(cmd.ErrOrStderr()) {
		bar = newProgressBar(cmd.ErrOrStderr())
		runOpts.Progress = func(done, total int) {
			bar.ChangeMax(total)
			_ = bar.Set(done)
		}
	}

	ctx = logging.WithFields(ctx, logging.FieldPaths, runOpts.Paths)
	logger = logging.FromContext(ctx)
	logger.Debug("starting scan", logging.FieldJobs, runOpts.Jobs)

	result, err := runner.New(det).Run(ctx, runOpts)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil && !errors.Is(err, runner.ErrNoFiles) {
		return withCode(ExitCode(err), fmt.Errorf("scan: %w", err))
	}

	logger.Debug("scan finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesCounted, result.Stats.FilesCounted,
		logging.FieldLanguages, len(result.Languages),
	)

	repOpts := reporter.OptionsFromConfig(cfg)
	repOpts.Writer = cmd.OutOrStdout()
	repOpts.Compact = flags.compact

	rep, err := reporter.New(repOpts)
	if err != nil {
		return usageError(fmt.Errorf("create reporter: %w", err))
	}

	if err := rep.Report(ctx, result); err != nil {
		return ioError(fmt.Errorf("report results: %w", err))
	}

	return nil
}

func newProgressBar(w io.Writer) *progressbar.ProgressBar {
	if w == nil {
		w = os.Stderr
	}
	return progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("Detecting"),
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionThrottle(progressThrottle),
	)
}
