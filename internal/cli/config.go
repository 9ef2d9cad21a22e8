package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/linguo/internal/configloader"
	"github.com/yaklabco/linguo/internal/logging"
	"github.com/yaklabco/linguo/pkg/config"
	"github.com/yaklabco/linguo/pkg/langdetect"
)

// commandContext returns the command's context, or a background context when
// the command was executed without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadConfig resolves the layered configuration with cliCfg on top. The
// --color persistent flag is folded in when the user set it.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*config.Config, error) {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	if cliCfg == nil {
		cliCfg = &config.Config{}
	}

	if flag := cmd.Flags().Lookup("color"); flag != nil && flag.Changed {
		mode, err := config.ParseColor(flag.Value.String())
		if err != nil {
			return nil, usageError(err)
		}
		cliCfg.Output.Color = mode
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, ioError(fmt.Errorf("get working directory: %w", err))
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		var validationErr *configloader.ValidationError
		if errors.As(err, &validationErr) {
			return nil, dataError(err)
		}
		if errors.Is(err, os.ErrNotExist) {
			return nil, ioError(fmt.Errorf("load configuration: %w", err))
		}
		return nil, dataError(fmt.Errorf("load configuration: %w", err))
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldPaths, loadResult.LoadedFrom)
	}

	return loadResult.Config, nil
}

// newDetector builds the Detector described by the detect section of cfg.
// Broken data files are data errors.
func newDetector(cfg *config.Config) (*langdetect.Detector, error) {
	detect := cfg.Detect
	det, err := langdetect.Load(langdetect.Sources{
		Catalog:    detect.Catalog,
		Heuristics: detect.Heuristics,
		Model:      detect.Model,
		Filters:    detect.Filters,
	}, langdetect.Options{
		ContentLimit:     detect.ContentLimit,
		DisableModelines: !config.Enabled(detect.Modelines, true),
	})
	if err != nil {
		return nil, dataError(fmt.Errorf("load detection data: %w", err))
	}
	return det, nil
}
