package dataset

import (
	"fmt"
	"math"

	"github.com/samber/lo"

	"github.com/YuminosukeSato/scoreprep/pkg/errors"
)

// Schema names the column groups of a dataset.
type Schema struct {
	Numerical   []string `mapstructure:"numerical" validate:"dive,required"`
	Categorical []string `mapstructure:"categorical" validate:"dive,required"`
	Target      string   `mapstructure:"target" validate:"required"`
}

// DefaultSchema returns the student performance schema.
func DefaultSchema() Schema {
	return Schema{
		Numerical: []string{"writing_score", "reading_score"},
		Categorical: []string{
			"gender",
			"race_ethnicity",
			"parental_level_of_education",
			"lunch",
			"test_preparation_course",
		},
		Target: "math_score",
	}
}

// Validate checks that the target is set, that no column appears twice and that the target
// is not also a feature. Errors are marked errors.ErrSchema.
func (s Schema) Validate() error {
	if s.Target == "" {
		return errors.Mark(errors.NewValidationError("target", "target column must be set", s.Target), errors.ErrSchema)
	}
	features := s.FeatureColumns()
	if dup := lo.FindDuplicates(features); len(dup) > 0 {
		return errors.Mark(errors.NewValidationError("columns", "column listed more than once", dup), errors.ErrSchema)
	}
	if lo.Contains(features, s.Target) {
		return errors.Mark(errors.NewValidationError("target", "target column is also a feature", s.Target), errors.ErrSchema)
	}
	return nil
}

// FeatureColumns returns the numerical columns followed by the categorical columns.
func (s Schema) FeatureColumns() []string {
	return append(append([]string(nil), s.Numerical...), s.Categorical...)
}

// Remainder returns the frame columns that are neither features nor the target.
func (s Schema) Remainder(f *Frame) []string {
	known := append(s.FeatureColumns(), s.Target)
	return lo.Without(f.Columns(), known...)
}

// Split separates the target column from the rest of the frame. Every target value must be
// present and numeric.
func (s Schema) Split(f *Frame) (*Frame, []float64, error) {
	target, err := f.Float64s(s.Target)
	if err != nil {
		return nil, nil, err
	}
	for i, v := range target {
		if math.IsNaN(v) {
			msg := fmt.Sprintf("column %q row %d: target value is missing", s.Target, i+1)
			return nil, nil, errors.Mark(errors.NewValueError("Schema.Split", msg), errors.ErrSchema)
		}
	}
	features, err := f.Drop(s.Target)
	if err != nil {
		return nil, nil, err
	}
	return features, target, nil
}
