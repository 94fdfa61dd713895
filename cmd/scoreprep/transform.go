package main

import (
	"fmt"
	"path/filepath"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scoreprep/dataset"
	"github.com/YuminosukeSato/scoreprep/pkg/errors"
	"github.com/YuminosukeSato/scoreprep/pkg/log"
	"github.com/YuminosukeSato/scoreprep/report"
	"github.com/YuminosukeSato/scoreprep/transformation"
)

func newTransformCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transform",
		Short: "Fit the preprocessor on training data and transform train and test sets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			trainPath, _ := cmd.Flags().GetString("train")
			testPath, _ := cmd.Flags().GetString("test")
			outDir, _ := cmd.Flags().GetString("out-dir")
			plotPath, _ := cmd.Flags().GetString("plot")
			trainPath = lo.Ternary(trainPath != "", trainPath, a.cfg.Data.TrainPath)
			testPath = lo.Ternary(testPath != "", testPath, a.cfg.Data.TestPath)
			if trainPath == "" || testPath == "" {
				return errors.New("both --train and --test are required")
			}

			dt := transformation.NewDataTransformation(a.cfg.Transformation(), transformation.WithLogger(a.logger))
			result, err := dt.Run(trainPath, testPath)
			if err != nil {
				return err
			}

			header := append(append([]string(nil), result.FeatureNames...), a.cfg.Schema.Target)
			if outDir != "" {
				for name, m := range map[string]*mat.Dense{"train.csv": result.Train, "test.csv": result.Test} {
					path := filepath.Join(outDir, name)
					if err := dataset.WriteMatrixCSV(path, header, m); err != nil {
						return err
					}
					a.logger.Info("Wrote transformed data", log.PathKey, path)
				}
			}
			if plotPath != "" {
				numeric := lo.Range(len(a.cfg.Schema.Numerical))
				if err := report.Histograms(plotPath, header, result.Train, numeric); err != nil {
					return err
				}
				a.logger.Info("Wrote feature histograms", log.PathKey, plotPath)
			}

			tr, tc := result.Train.Dims()
			sr, _ := result.Test.Dims()
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "train: %dx%d\ntest: %dx%d\npreprocessor: %s\n",
				tr, tc, sr, tc, result.PreprocessorPath)
			return err
		},
	}
	cmd.Flags().String("train", "", "training data CSV (default: data.train_path)")
	cmd.Flags().String("test", "", "test data CSV (default: data.test_path)")
	cmd.Flags().String("artifacts-dir", "", "directory of the stored preprocessor")
	cmd.Flags().String("out-dir", "", "write the transformed train.csv and test.csv to this directory")
	cmd.Flags().String("plot", "", "write histograms of the transformed numerical features to this PNG file")
	bindFlags(a.v, cmd.Flags(), map[string]string{"artifacts.dir": "artifacts-dir"})
	return cmd
}
