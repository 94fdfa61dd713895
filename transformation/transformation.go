// Package transformation turns raw train and test CSV files into numeric feature matrices.
//
// DataTransformation builds the preprocessing recipe for a schema (median imputation and
// standardization for numerical columns; most-frequent imputation, one-hot encoding and
// unit-variance scaling for categorical columns), fits it on the training data only, applies
// it to both sets and stores the fitted preprocessor for inference.
//
// Every exported operation returns a *errors.PipelineError on failure, so callers can log
// one uniform message and branch on errors.KindOf.
package transformation

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scoreprep/core/model"
	"github.com/YuminosukeSato/scoreprep/dataset"
	"github.com/YuminosukeSato/scoreprep/pkg/errors"
	"github.com/YuminosukeSato/scoreprep/pkg/log"
	"github.com/YuminosukeSato/scoreprep/preprocessing"
)

// Option configures a DataTransformation.
type Option func(*DataTransformation)

// WithLogger sets the logger. The default is the "DataTransformation" logger of the global
// provider.
func WithLogger(logger log.Logger) Option {
	return func(dt *DataTransformation) {
		dt.logger = logger
	}
}

// Result is the output of Run. Train and Test hold the transformed features with the target
// appended as the last column.
type Result struct {
	Train            *mat.Dense
	Test             *mat.Dense
	PreprocessorPath string
	FeatureNames     []string
}

// DataTransformation builds, fits and stores the preprocessor.
type DataTransformation struct {
	config Config
	logger log.Logger
}

// NewDataTransformation creates a DataTransformation for cfg.
func NewDataTransformation(cfg Config, opts ...Option) *DataTransformation {
	dt := &DataTransformation{config: cfg}
	for _, opt := range opts {
		opt(dt)
	}
	if dt.logger == nil {
		dt.logger = log.GetLoggerWithName("DataTransformation")
	}
	return dt
}

// Config returns the configuration the component was created with.
func (dt *DataTransformation) Config() Config {
	return dt.config
}

// BuildPreprocessor returns an unfitted preprocessor for the configured schema. It reads no
// data.
func (dt *DataTransformation) BuildPreprocessor() (_ *preprocessing.ColumnTransformer, err error) {
	defer func() { err = errors.WrapPipeline("BuildPreprocessor", err) }()
	defer errors.Recover(&err, "BuildPreprocessor")

	schema := dt.config.Schema
	if err := schema.Validate(); err != nil {
		return nil, err
	}

	dt.logger.Info("Categorical columns", log.CategoricalColumnsKey, schema.Categorical)
	dt.logger.Info("Numerical columns", log.NumericalColumnsKey, schema.Numerical)

	return preprocessing.NewColumnTransformer(schema.Numerical, schema.Categorical,
		preprocessing.WithLogger(dt.logger.With(log.ModelNameKey, "ColumnTransformer"))), nil
}

// Run loads both files, fits the preprocessor on the training features, transforms both
// sets, appends the targets and stores the fitted preprocessor. On failure no Result is
// returned and the error is a *errors.PipelineError.
func (dt *DataTransformation) Run(trainPath, testPath string) (_ *Result, err error) {
	start := time.Now()
	defer func() {
		if err != nil {
			dt.logger.Error("Data transformation failed", log.ErrAttrKey, err, log.ErrorKindKey, string(errors.KindOf(err)))
		}
		err = errors.WrapPipeline("DataTransformation.Run", err)
	}()
	defer errors.Recover(&err, "DataTransformation.Run")

	train, err := dataset.ReadCSV(trainPath)
	if err != nil {
		return nil, err
	}
	test, err := dataset.ReadCSV(testPath)
	if err != nil {
		return nil, err
	}
	dt.logger.Info("Read train and test data completed",
		log.OperationKey, log.OperationLoad,
		log.SamplesKey+".train", train.Len(),
		log.SamplesKey+".test", test.Len(),
	)

	dt.logger.Info("Obtaining preprocessing object")
	preprocessor, err := dt.BuildPreprocessor()
	if err != nil {
		return nil, err
	}

	schema := dt.config.Schema
	trainFeatures, trainTarget, err := dt.split(train, trainPath, log.PhaseTraining)
	if err != nil {
		return nil, err
	}
	testFeatures, testTarget, err := dt.split(test, testPath, log.PhaseTesting)
	if err != nil {
		return nil, err
	}

	dt.logger.Info("Applying preprocessing object on training and testing dataframes",
		log.TargetColumnKey, schema.Target)
	trainX, err := preprocessor.FitTransform(trainFeatures)
	if err != nil {
		return nil, err
	}
	testX, err := preprocessor.Transform(testFeatures)
	if err != nil {
		return nil, err
	}

	path := dt.config.PreprocessorPath()
	if err := model.SaveObject(path, preprocessor); err != nil {
		return nil, err
	}
	dt.logger.Info("Saved preprocessing object",
		log.OperationKey, log.OperationSave,
		log.PathKey, path,
		log.FeaturesKey, preprocessor.NFeaturesOut(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)

	return &Result{
		Train:            withTarget(trainX, trainTarget),
		Test:             withTarget(testX, testTarget),
		PreprocessorPath: path,
		FeatureNames:     preprocessor.GetFeatureNamesOut(),
	}, nil
}

func (dt *DataTransformation) split(frame *dataset.Frame, path, phase string) (*dataset.Frame, []float64, error) {
	schema := dt.config.Schema
	features, target, err := schema.Split(frame)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "%s data %s", phase, path)
	}
	if dropped := schema.Remainder(frame); len(dropped) > 0 {
		dt.logger.Warn("Columns outside the schema are dropped",
			log.PhaseKey, phase,
			log.PathKey, path,
			log.DroppedColumnsKey, dropped,
		)
	}
	return features, target, nil
}

// LoadPreprocessor reads a fitted preprocessor stored by Run.
func LoadPreprocessor(path string) (_ *preprocessing.ColumnTransformer, err error) {
	defer func() { err = errors.WrapPipeline("LoadPreprocessor", err) }()
	defer errors.Recover(&err, "LoadPreprocessor")

	ct := &preprocessing.ColumnTransformer{}
	if err := model.LoadObject(path, ct); err != nil {
		return nil, err
	}
	if !ct.IsFitted() || ct.Numeric == nil || ct.Categorical == nil {
		return nil, errors.Mark(errors.NewNotFittedError("ColumnTransformer", "LoadPreprocessor"), errors.ErrPersistence)
	}
	return ct, nil
}

// Apply transforms new rows with a fitted preprocessor. A target column, if present, is
// ignored along with any other column outside the preprocessor's groups.
func Apply(ct *preprocessing.ColumnTransformer, frame *dataset.Frame) (_ *mat.Dense, err error) {
	defer func() { err = errors.WrapPipeline("Apply", err) }()
	defer errors.Recover(&err, "Apply")

	if ct == nil {
		return nil, errors.Mark(errors.NewNotFittedError("ColumnTransformer", "Apply"), errors.ErrTransform)
	}
	return ct.Transform(frame)
}

// withTarget appends y as the last column of X.
func withTarget(X *mat.Dense, y []float64) *mat.Dense {
	r, _ := X.Dims()
	var out mat.Dense
	out.Augment(X, mat.NewVecDense(r, y))
	return &out
}
