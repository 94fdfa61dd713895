package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/scoreprep/dataset"
	"github.com/YuminosukeSato/scoreprep/pkg/errors"
	"github.com/YuminosukeSato/scoreprep/pkg/log"
	"github.com/YuminosukeSato/scoreprep/transformation"
)

func newApplyCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Transform new rows with a stored preprocessor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, _ := cmd.Flags().GetString("input")
			output, _ := cmd.Flags().GetString("output")
			path, _ := cmd.Flags().GetString("preprocessor")
			if input == "" || output == "" {
				return errors.New("both --input and --output are required")
			}
			if path == "" {
				path = a.cfg.Transformation().PreprocessorPath()
			}

			ct, err := transformation.LoadPreprocessor(path)
			if err != nil {
				return err
			}
			ct.SetLogger(a.logger.With(log.ModelNameKey, "ColumnTransformer"))
			frame, err := dataset.ReadCSV(input)
			if err != nil {
				return errors.WrapPipeline("apply", err)
			}
			X, err := transformation.Apply(ct, frame)
			if err != nil {
				return err
			}
			if err := dataset.WriteMatrixCSV(output, ct.GetFeatureNamesOut(), X); err != nil {
				return errors.WrapPipeline("apply", err)
			}

			r, c := X.Dims()
			a.logger.Info("Applied preprocessing object",
				log.PathKey, output,
				log.SamplesKey, r,
				log.FeaturesKey, c,
			)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "output: %s (%dx%d)\n", output, r, c)
			return err
		},
	}
	cmd.Flags().String("input", "", "CSV of rows to transform")
	cmd.Flags().String("output", "", "destination CSV of the transformed rows")
	cmd.Flags().String("preprocessor", "", "stored preprocessor (default: <artifacts.dir>/<artifacts.preprocessor_file>)")
	return cmd
}
