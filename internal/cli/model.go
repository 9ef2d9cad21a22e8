package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/linguo/internal/logging"
	"github.com/yaklabco/linguo/pkg/classifier"
)

// defaultModelPath is where "model build" writes when no output is given.
const defaultModelPath = "linguo.model"

type modelBuildFlags struct {
	output  string
	samples string
}

func newModelCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model",
		Short: "Build and inspect classifier models",
		Long: `The classifier settles files no other signal could decide. It is trained
on labeled samples; by default the samples embedded in linguo are used.

A model file written by "model build" is used in place of the embedded
samples when detect.model names it.`,
		Args: noArgs,
	}

	cmd.AddCommand(newModelBuildCommand())
	cmd.AddCommand(newModelInfoCommand())

	return cmd
}

func newModelBuildCommand() *cobra.Command {
	flags := &modelBuildFlags{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Train a classifier model and write it to a file",
		Long: `Train a classifier model and write it to a file.

Samples are read from a directory laid out as <dir>/<Language>/<file>. The
language directory names must match catalog names.

Examples:
  linguo model build                        # Embedded samples to linguo.model
  linguo model build -o ci.model --samples ./samples`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runModelBuild(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", defaultModelPath, "model file to write")
	cmd.Flags().StringVar(&flags.samples, "samples", "", "directory of training samples (default: embedded samples)")

	return cmd
}

func runModelBuild(cmd *cobra.Command, flags *modelBuildFlags) error {
	ctx := commandContext(cmd)
	logger := logging.NewInteractive()

	var (
		samples []classifier.Sample
		err     error
	)
	if flags.samples != "" {
		samples, err = classifier.LoadSamplesDir(flags.samples)
	} else {
		samples, err = classifier.DefaultSamples()
	}
	if err != nil {
		return ioError(fmt.Errorf("load samples: %w", err))
	}

	model, err := classifier.Train(samples)
	if err != nil {
		if errors.Is(err, classifier.ErrTooFewLanguages) {
			return dataError(fmt.Errorf("train model: %w", err))
		}
		return fmt.Errorf("train model: %w", err)
	}

	if err := model.WriteFile(ctx, flags.output); err != nil {
		return ioError(err)
	}

	logger.Info("wrote model",
		logging.FieldPath, flags.output,
		logging.FieldSamples, len(samples),
		logging.FieldLanguages, len(model.Languages()),
	)
	return nil
}

func newModelInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info [file]",
		Short: "List the languages a model was trained on",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				model *classifier.Model
				err   error
			)
			if len(args) == 1 {
				model, err = classifier.ReadFile(args[0])
			} else {
				model, err = classifier.Default()
			}
			if errors.Is(err, os.ErrNotExist) {
				return ioError(err)
			}
			if err != nil {
				return dataError(err)
			}
			return writeModelInfo(cmd.OutOrStdout(), model)
		},
	}
}

func writeModelInfo(w io.Writer, model *classifier.Model) error {
	langs := model.Languages()
	_, err := fmt.Fprintf(w, "%d languages: %s\n", len(langs), strings.Join(langs, ", "))
	if err != nil {
		return ioError(err)
	}
	return nil
}
