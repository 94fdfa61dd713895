package main

import (
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/scoreprep/pkg/errors"
	"github.com/YuminosukeSato/scoreprep/transformation"
)

func newInspectCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the statistics learned by a stored preprocessor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("preprocessor")
			if path == "" {
				path = a.cfg.Transformation().PreprocessorPath()
			}
			ct, err := transformation.LoadPreprocessor(path)
			if err != nil {
				return err
			}
			features, err := ct.Summary()
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Feature", "Source", "Fill", "Mean", "Scale", "Centered")
			for _, f := range features {
				row := []string{
					f.Name,
					f.Source,
					f.Fill,
					strconv.FormatFloat(f.Mean, 'g', 6, 64),
					strconv.FormatFloat(f.Scale, 'g', 6, 64),
					strconv.FormatBool(f.Centered),
				}
				if err := table.Append(row); err != nil {
					return errors.Wrap(err, "failed to append row")
				}
			}
			return errors.Wrap(table.Render(), "failed to render table")
		},
	}
	cmd.Flags().String("preprocessor", "", "stored preprocessor (default: <artifacts.dir>/<artifacts.preprocessor_file>)")
	return cmd
}
