package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/linguo/internal/ui/pretty"
	"github.com/yaklabco/linguo/pkg/catalog"
)

type languagesFlags struct {
	typ  string
	json bool
}

func newLanguagesCommand() *cobra.Command {
	flags := &languagesFlags{}

	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List the languages linguo can detect",
		Long: `List every language in the catalog with its type, color and extensions.

Examples:
  linguo languages
  linguo languages --type programming
  linguo languages --json`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLanguages(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.typ, "type", "", "only list languages of this type: programming, data, markup, prose")
	cmd.Flags().BoolVar(&flags.json, "json", false, "output as JSON")

	return cmd
}

func parseLanguageType(s string) (catalog.Type, error) {
	t := catalog.Type(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case catalog.TypeProgramming, catalog.TypeData, catalog.TypeMarkup, catalog.TypeProse:
		return t, nil
	default:
		return catalog.TypeUnknown, fmt.Errorf("invalid language type %q: must be programming, data, markup or prose", s)
	}
}

func runLanguages(cmd *cobra.Command, flags *languagesFlags) error {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}

	det, err := newDetector(cfg)
	if err != nil {
		return err
	}
	cat := det.Catalog()

	names := cat.Languages()
	if flags.typ != "" {
		t, err := parseLanguageType(flags.typ)
		if err != nil {
			return usageError(err)
		}
		names = cat.OfType(t)
	}

	langs := make([]catalog.Language, 0, len(names))
	for _, name := range names {
		if lang, ok := cat.Language(name); ok {
			langs = append(langs, lang)
		}
	}

	out := cmd.OutOrStdout()
	if flags.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(langs); err != nil {
			return ioError(fmt.Errorf("encoding languages: %w", err))
		}
		return nil
	}

	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cfg), out))
	if err := writeLanguages(out, styles, cat, langs); err != nil {
		return ioError(err)
	}
	return nil
}

func writeLanguages(w io.Writer, styles *pretty.Styles, cat *catalog.Catalog, langs []catalog.Language) error {
	width := 0
	for _, lang := range langs {
		width = max(width, len(lang.Name))
	}

	var b strings.Builder
	for _, lang := range langs {
		swatch := styles.LanguageColor(cat.Color(lang.Name)).Render("●")
		fmt.Fprintf(&b, "%s %s  %s",
			swatch,
			styles.Language.Render(rpad(lang.Name, width)),
			styles.Dim.Render(rpad(string(lang.Type), len("programming"))))
		if len(lang.Extensions) > 0 {
			b.WriteString("  " + strings.Join(lang.Extensions, " "))
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "%s\n", styles.Dim.Render(fmt.Sprintf("%d languages", len(langs))))

	_, err := io.WriteString(w, b.String())
	return err
}
