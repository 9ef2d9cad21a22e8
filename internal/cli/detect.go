package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/linguo/internal/crosscheck"
	"github.com/yaklabco/linguo/internal/logging"
	"github.com/yaklabco/linguo/internal/ui/pretty"
	"github.com/yaklabco/linguo/pkg/catalog"
	"github.com/yaklabco/linguo/pkg/config"
	"github.com/yaklabco/linguo/pkg/fsutil"
	"github.com/yaklabco/linguo/pkg/langdetect"
)

type detectFlags struct {
	compare  bool
	json     bool
	pathOnly bool
}

// detectEntry is the per-file result of the detect command.
type detectEntry struct {
	Path          string              `json:"path"`
	Language      string              `json:"language"`
	Safe          bool                `json:"safe"`
	Strategy      langdetect.Strategy `json:"strategy"`
	Type          catalog.Type        `json:"type,omitempty"`
	MIME          string              `json:"mime,omitempty"`
	Vendor        bool                `json:"vendor"`
	Documentation bool                `json:"documentation"`
	Test          bool                `json:"test"`
	Generated     bool                `json:"generated"`
	Configuration bool                `json:"configuration"`
	Auxiliary     bool                `json:"auxiliary"`
	Reference     *crosscheck.Verdict `json:"reference,omitempty"`
	Agree         *bool               `json:"agree,omitempty"`
	Error         string              `json:"error,omitempty"`
}

func newDetectCommand() *cobra.Command {
	flags := &detectFlags{}

	cmd := &cobra.Command{
		Use:   "detect <file>...",
		Short: "Detect the language of individual files",
		Long: `Print the detected language of each file along with the strategy that
decided it and whether the answer is safe (unambiguous).

Examples:
  linguo detect main.go
  linguo detect --compare script        # Also ask go-enry
  linguo detect --path-only Makefile    # Ignore file content
  linguo detect --json src/*.h`,
		Args: requireArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.compare, "compare", false, "compare with the go-enry verdict")
	cmd.Flags().BoolVar(&flags.json, "json", false, "output as JSON")
	cmd.Flags().BoolVar(&flags.pathOnly, "path-only", false, "detect from the file name alone")

	return cmd
}

func runDetect(cmd *cobra.Command, args []string, flags *detectFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}

	det, err := newDetector(cfg)
	if err != nil {
		return err
	}

	entries := make([]detectEntry, 0, len(args))
	var readErrs []error

	for _, path := range args {
		var content []byte
		if !flags.pathOnly {
			content, _, err = fsutil.ReadFile(ctx, path, det.ContentLimit())
			if err != nil {
				logger.Debug("read failed", logging.FieldPath, path, logging.FieldError, err)
				readErrs = append(readErrs, err)
				entries = append(entries, detectEntry{Path: path, Error: err.Error()})
				continue
			}
		}

		entries = append(entries, describe(det, path, content, flags.compare))
	}

	out := cmd.OutOrStdout()
	if flags.json {
		err = writeDetectJSON(out, entries)
	} else {
		styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cfg), out))
		err = writeDetectText(out, styles, entries)
	}
	if err != nil {
		return ioError(err)
	}

	if len(readErrs) > 0 {
		return ioError(errors.Join(readErrs...))
	}
	return nil
}

func describe(det *langdetect.Detector, path string, content []byte, compare bool) detectEntry {
	guess := det.Detect(path, content)

	entry := detectEntry{
		Path:          path,
		Language:      guess.Language,
		Safe:          guess.Safe,
		Strategy:      guess.Strategy,
		Vendor:        det.IsVendor(path),
		Documentation: det.IsDocumentation(path),
		Test:          det.IsTest(path),
		Generated:     content != nil && det.IsGenerated(path, content),
		Configuration: det.Filters().IsConfigurationLanguage(guess.Language),
		Auxiliary:     det.IsAuxiliaryLanguage(guess.Language),
	}
	if !guess.IsUnknown() {
		entry.Type = det.LanguageType(guess.Language)
		entry.MIME = det.MIMEType(path, guess.Language)
	}

	if compare {
		cmp := crosscheck.Compare(path, content, guess)
		entry.Reference = &cmp.Reference
		entry.Agree = &cmp.Agree
	}

	return entry
}

func writeDetectJSON(w io.Writer, entries []detectEntry) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	return nil
}

func writeDetectText(w io.Writer, styles *pretty.Styles, entries []detectEntry) error {
	var b strings.Builder

	for _, e := range entries {
		if e.Error != "" {
			b.WriteString(styles.Path.Render(e.Path) + ": " + styles.Error.Render(e.Error) + "\n")
			continue
		}

		guess := langdetect.Guess{Language: e.Language, Safe: e.Safe, Strategy: e.Strategy}
		b.WriteString(styles.FormatGuess(e.Path, guess))
		if details := entryDetails(e); details != "" {
			b.WriteString(" " + styles.Dim.Render("["+details+"]"))
		}
		b.WriteString("\n")

		if e.Reference != nil {
			ref := e.Reference.Language
			if ref == "" {
				ref = "(none)"
			}
			verdict := styles.Success.Render("agrees")
			if e.Agree != nil && !*e.Agree {
				verdict = styles.Warning.Render("differs")
			}
			fmt.Fprintf(&b, "  go-enry: %s %s\n", styles.Language.Render(ref), verdict)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func entryDetails(e detectEntry) string {
	var parts []string
	if e.Type != catalog.TypeUnknown {
		parts = append(parts, string(e.Type))
	}
	if e.MIME != "" {
		parts = append(parts, e.MIME)
	}
	for _, flag := range []struct {
		set  bool
		name string
	}{
		{e.Vendor, "vendored"},
		{e.Documentation, "documentation"},
		{e.Test, "test"},
		{e.Generated, "generated"},
		{e.Configuration, "configuration"},
		{e.Auxiliary, "auxiliary"},
	} {
		if flag.set {
			parts = append(parts, flag.name)
		}
	}
	return strings.Join(parts, ", ")
}

// colorMode returns the color mode string used for styling output.
func colorMode(cfg *config.Config) string {
	if cfg == nil || cfg.Output.Color == "" {
		return string(config.ColorAuto)
	}
	return string(cfg.Output.Color)
}
