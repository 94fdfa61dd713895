package preprocessing

import (
	"strconv"

	"github.com/YuminosukeSato/scoreprep/pkg/errors"
)

// FeatureSummary describes the statistics learned for one output column.
type FeatureSummary struct {
	// Name is the output feature name, e.g. "num_pipeline__reading_score".
	Name string
	// Source is the input column the feature is derived from.
	Source string
	// Group is NumericPipelineName or CategoricalPipelineName.
	Group string
	// Fill is the value imputed for missing cells of Source.
	Fill string
	Mean  float64
	Scale float64
	// Centered reports whether Mean is subtracted at transform time.
	Centered bool
}

// Summary returns the learned statistics of every output column, in output order.
func (ct *ColumnTransformer) Summary() ([]FeatureSummary, error) {
	if !ct.IsFitted() {
		return nil, errors.NewNotFittedError("ColumnTransformer", "Summary")
	}
	out := make([]FeatureSummary, 0, len(ct.FeatureNames))
	num := ct.Numeric
	for j, col := range ct.NumericalColumns {
		out = append(out, FeatureSummary{
			Name:     ct.FeatureNames[j],
			Source:   col,
			Group:    NumericPipelineName,
			Fill:     strconv.FormatFloat(num.Imputer.Statistics[j], 'g', -1, 64),
			Mean:     num.Scaler.Mean[j],
			Scale:    num.Scaler.Scale[j],
			Centered: num.Scaler.WithMean,
		})
	}

	cat := ct.Categorical
	k := 0
	for j, col := range ct.CategoricalColumns {
		for range cat.Encoder.Categories[j] {
			out = append(out, FeatureSummary{
				Name:     ct.FeatureNames[len(ct.NumericalColumns)+k],
				Source:   col,
				Group:    CategoricalPipelineName,
				Fill:     cat.Imputer.Fill[j],
				Mean:     cat.Scaler.Mean[k],
				Scale:    cat.Scaler.Scale[k],
				Centered: cat.Scaler.WithMean,
			})
			k++
		}
	}
	return out, nil
}
