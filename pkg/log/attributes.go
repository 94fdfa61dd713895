package log

// Standard attribute keys. They follow a hierarchical naming convention
// ("data.samples", "ml.operation") so that records can be filtered by prefix.

// Operation context.
const (
	// ModelNameKey identifies the transformer type.
	// Examples: "ColumnTransformer", "StandardScaler"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	OperationKey = "ml.operation"

	// ComponentKey identifies the component emitting the record.
	// Examples: "DataTransformation", "preprocessing"
	ComponentKey = "ml.component"

	// PhaseKey indicates the lifecycle phase.
	PhaseKey = "ml.phase"
)

// Data shape and schema.
const (
	// SamplesKey is the number of rows.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of columns.
	FeaturesKey = "data.features"

	// PathKey is a dataset or artifact file path.
	PathKey = "data.path"

	// NumericalColumnsKey lists the numerical column group.
	NumericalColumnsKey = "schema.numerical"

	// CategoricalColumnsKey lists the categorical column group.
	CategoricalColumnsKey = "schema.categorical"

	// TargetColumnKey is the target column name.
	TargetColumnKey = "schema.target"

	// DroppedColumnsKey lists columns that belong to no group.
	DroppedColumnsKey = "schema.dropped"
)

// Performance.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)

// Error context.
const (
	// ErrorKindKey carries the pipeline error kind ("schema", "fit", ...).
	ErrorKindKey = "error.kind"

	// SuggestionKey provides a hint for resolving the issue.
	SuggestionKey = "error.suggestion"
)

// Standard attribute values.
const (
	OperationLoad         = "load"
	OperationBuild        = "build"
	OperationFit          = "fit"
	OperationTransform    = "transform"
	OperationFitTransform = "fit_transform"
	OperationSave         = "save"

	PhaseTraining      = "training"
	PhaseTesting       = "testing"
	PhaseInference     = "inference"
	PhasePreprocessing = "preprocessing"
)
