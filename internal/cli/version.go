package cli

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/linguo/internal/logging"
	"github.com/yaklabco/linguo/pkg/catalog"
)

// versionInfo is the JSON form of the version command.
type versionInfo struct {
	Version        string `json:"version"`
	Commit         string `json:"commit"`
	Built          string `json:"built"`
	GoVersion      string `json:"goVersion"`
	CatalogVersion string `json:"catalogVersion,omitempty"`
	Languages      int    `json:"languages,omitempty"`
}

func newVersionCommand(info BuildInfo) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash and build date of linguo, and the version of the embedded language catalog.`,
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := versionInfo{
				Version:   info.Version,
				Commit:    info.Commit,
				Built:     info.Date,
				GoVersion: runtime.Version(),
			}
			if cat, err := catalog.Default(); err == nil {
				v.CatalogVersion = cat.Version()
				v.Languages = cat.Len()
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(v); err != nil {
					return ioError(fmt.Errorf("encoding version: %w", err))
				}
				return nil
			}

			logger := log.NewWithOptions(cmd.OutOrStdout(), log.Options{
				ReportTimestamp: false,
				ReportCaller:    false,
				Level:           log.InfoLevel,
			})
			logger.Info("linguo",
				logging.FieldVersion, v.Version,
				logging.FieldCommit, v.Commit,
				logging.FieldBuilt, v.Built,
				"go", v.GoVersion,
				"catalog", v.CatalogVersion,
				logging.FieldLanguages, v.Languages,
			)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")

	return cmd
}
