package preprocessing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scoreprep/core/model"
	"github.com/YuminosukeSato/scoreprep/dataset"
	"github.com/YuminosukeSato/scoreprep/pkg/errors"
	"github.com/YuminosukeSato/scoreprep/pkg/log"
)

// Names of the two column groups, used as feature name prefixes.
const (
	NumericPipelineName     = "num_pipeline"
	CategoricalPipelineName = "cat_pipelines"
)

// Option configures a ColumnTransformer.
type Option func(*ColumnTransformer)

// WithLogger sets the logger used by the transformer. It is not persisted.
func WithLogger(logger log.Logger) Option {
	return func(ct *ColumnTransformer) {
		ct.logger = logger
	}
}

// ColumnTransformer applies NumericPipeline to the numerical columns and CategoricalPipeline
// to the categorical columns, and concatenates the results: numerical outputs first, then the
// one-hot outputs. Columns that belong to neither group are dropped.
//
// Every learned statistic is an exported field so the fitted transformer can be stored with
// model.SaveObject and restored with model.LoadObject.
type ColumnTransformer struct {
	model.BaseEstimator

	NumericalColumns   []string
	CategoricalColumns []string

	Numeric     *NumericPipeline
	Categorical *CategoricalPipeline

	// FeatureNames holds the output column names once fitted.
	FeatureNames []string

	logger log.Logger
}

// NewColumnTransformer creates an unfitted transformer for the given column groups.
func NewColumnTransformer(numerical, categorical []string, opts ...Option) *ColumnTransformer {
	ct := &ColumnTransformer{
		NumericalColumns:   append([]string(nil), numerical...),
		CategoricalColumns: append([]string(nil), categorical...),
		Numeric:            NewNumericPipeline(),
		Categorical:        NewCategoricalPipeline(),
	}
	for _, opt := range opts {
		opt(ct)
	}
	return ct
}

// SetLogger replaces the logger, e.g. after the transformer was loaded from disk.
func (ct *ColumnTransformer) SetLogger(logger log.Logger) {
	ct.logger = logger
}

func (ct *ColumnTransformer) getLogger() log.Logger {
	if ct.logger == nil {
		return log.GetLoggerWithName("ColumnTransformer")
	}
	return ct.logger
}

// Fit learns the statistics of both pipelines from the frame.
func (ct *ColumnTransformer) Fit(frame *dataset.Frame) error {
	_, err := ct.FitTransform(frame)
	return err
}

// FitTransform learns the statistics from the frame and returns the transformed frame.
// Errors are marked errors.ErrFit.
func (ct *ColumnTransformer) FitTransform(frame *dataset.Frame) (_ *mat.Dense, err error) {
	defer func() { err = errors.Mark(err, errors.ErrFit) }()
	defer errors.Recover(&err, "ColumnTransformer.FitTransform")

	if ct.IsFitted() {
		return nil, errors.WithStack(errors.ErrAlreadyFitted)
	}
	if len(ct.NumericalColumns) == 0 || len(ct.CategoricalColumns) == 0 {
		return nil, errors.NewValidationError("columns", "both column groups must be non-empty",
			fmt.Sprintf("numerical=%v categorical=%v", ct.NumericalColumns, ct.CategoricalColumns))
	}
	X, table, err := ct.inputs(frame)
	if err != nil {
		return nil, err
	}

	// Fitted pipelines are kept only when the whole fit succeeds, so a failed fit can be retried.
	numeric, categorical := NewNumericPipeline(), NewCategoricalPipeline()
	num, err := numeric.FitTransform(X)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fit %s", NumericPipelineName)
	}
	cat, err := categorical.FitTransform(table)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fit %s", CategoricalPipelineName)
	}

	out, err := concat(num, cat)
	if err != nil {
		return nil, err
	}
	ct.Numeric, ct.Categorical = numeric, categorical
	ct.FeatureNames = ct.featureNames()
	ct.SetFitted()

	for _, j := range ct.Numeric.Imputer.EmptyFeatures {
		ct.getLogger().Warn("Column has no observed values, imputing 0",
			log.PhaseKey, log.PhaseTraining,
			log.NumericalColumnsKey, ct.NumericalColumns[j],
		)
	}

	ct.getLogger().Debug("ColumnTransformer fitted",
		log.OperationKey, log.OperationFitTransform,
		log.SamplesKey, frame.Len(),
		log.FeaturesKey, len(ct.FeatureNames),
	)
	return out, nil
}

// Transform applies the learned statistics to the frame. The frame is read by column name,
// so column order and extra columns do not matter. Errors are marked errors.ErrTransform.
func (ct *ColumnTransformer) Transform(frame *dataset.Frame) (_ *mat.Dense, err error) {
	defer func() { err = errors.Mark(err, errors.ErrTransform) }()
	defer errors.Recover(&err, "ColumnTransformer.Transform")

	if !ct.IsFitted() {
		return nil, errors.NewNotFittedError("ColumnTransformer", "Transform")
	}
	X, table, err := ct.inputs(frame)
	if err != nil {
		return nil, err
	}
	num, err := ct.Numeric.Transform(X)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to apply %s", NumericPipelineName)
	}
	cat, err := ct.Categorical.Transform(table)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to apply %s", CategoricalPipelineName)
	}
	out, err := concat(num, cat)
	if err != nil {
		return nil, err
	}
	ct.getLogger().Debug("ColumnTransformer applied",
		log.OperationKey, log.OperationTransform,
		log.SamplesKey, frame.Len(),
		log.FeaturesKey, len(ct.FeatureNames),
	)
	return out, nil
}

// GetFeatureNamesOut returns the output column names, or nil before fitting.
func (ct *ColumnTransformer) GetFeatureNamesOut() []string {
	if !ct.IsFitted() {
		return nil
	}
	return append([]string(nil), ct.FeatureNames...)
}

// NFeaturesOut returns the width of the transformed matrix, or 0 before fitting.
func (ct *ColumnTransformer) NFeaturesOut() int {
	return len(ct.GetFeatureNamesOut())
}

func (ct *ColumnTransformer) featureNames() []string {
	names := make([]string, 0, len(ct.NumericalColumns)+ct.Categorical.Encoder.NOutputs)
	for _, col := range ct.NumericalColumns {
		names = append(names, NumericPipelineName+"__"+col)
	}
	for _, name := range ct.Categorical.GetFeatureNamesOut(ct.CategoricalColumns) {
		names = append(names, CategoricalPipelineName+"__"+name)
	}
	return names
}

func (ct *ColumnTransformer) inputs(frame *dataset.Frame) (*mat.Dense, [][]string, error) {
	if frame == nil || frame.Len() == 0 {
		return nil, nil, errors.NewModelError("ColumnTransformer", "empty data", errors.ErrEmptyData)
	}
	X, err := frame.Matrix(ct.NumericalColumns)
	if err != nil {
		return nil, nil, err
	}
	table, err := frame.StringTable(ct.CategoricalColumns)
	if err != nil {
		return nil, nil, err
	}
	return X, table, nil
}

// concat places b to the right of a and checks that every value is finite.
func concat(a, b mat.Matrix) (*mat.Dense, error) {
	ar, _ := a.Dims()
	br, _ := b.Dims()
	if ar != br {
		return nil, errors.NewRowCountError("ColumnTransformer", ar, br)
	}
	var out mat.Dense
	out.Augment(a, b)
	for i := 0; i < ar; i++ {
		row := out.RawRowView(i)
		if floats.HasNaN(row) || math.IsInf(floats.Max(row), 1) || math.IsInf(floats.Min(row), -1) {
			return nil, errors.NewValueError("ColumnTransformer", fmt.Sprintf("row %d contains non-finite values", i+1))
		}
	}
	return &out, nil
}
