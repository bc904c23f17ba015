// Package log defines standard attribute keys for preprocessing operations.
//
// Keys follow a hierarchical naming convention (e.g. "ml.operation",
// "data.samples") so that log lines from different components can be filtered
// and aggregated the same way.

package log

// Operation context.
const (
	// ModelNameKey identifies the estimator type.
	// Examples: "StandardScaler", "SimpleImputer", "OneHotEncoder"
	ModelNameKey = "model.name"

	// OperationKey names the operation being performed.
	// Standard values: "fit", "transform", "fit_transform", "inverse_transform"
	OperationKey = "ml.operation"

	// ComponentKey identifies the package or subsystem emitting the record.
	// Examples: "preprocessing", "pipeline", "report"
	ComponentKey = "ml.component"

	// PhaseKey indicates the lifecycle phase.
	PhaseKey = "ml.phase"

	// StepKey is the zero-based index of a pipeline step.
	StepKey = "pipeline.step"

	// StepNameKey is the name of a pipeline step, e.g. "impute" or "poly".
	StepNameKey = "pipeline.step_name"

	// RunIDKey correlates every record of one pipeline run.
	RunIDKey = "pipeline.run_id"
)

// Data shape.
const (
	// SamplesKey is the number of rows in a table.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of columns in a table.
	FeaturesKey = "data.features"

	// MissingKey is the number of missing cells found or replaced.
	MissingKey = "data.missing"

	// CategoriesKey is the number of distinct labels seen by an encoder.
	CategoriesKey = "data.categories"

	// TrainSizeKey and TestSizeKey describe a train/test partition.
	TrainSizeKey = "data.train_size"
	TestSizeKey  = "data.test_size"
)

// Performance.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)

// Error context.
const (
	// ErrorCodeKey is a structured error code for programmatic handling.
	// Examples: "INVALID_INPUT", "NOT_FITTED"
	ErrorCodeKey = "error.code"

	// ErrorTypeKey categorizes the error, e.g. "ValueError".
	ErrorTypeKey = "error.type"

	// SuggestionKey carries a hint for resolving the problem.
	SuggestionKey = "error.suggestion"
)

// Configuration.
const (
	// RandomSeedKey records the seed used for a shuffle.
	RandomSeedKey = "config.random_seed"

	// ConfigFileKey is the path of the loaded configuration file.
	ConfigFileKey = "config.file"

	// OutputPathKey is the path of a written artifact.
	OutputPathKey = "output.path"
)

// Standard attribute values.
const (
	OperationFit              = "fit"
	OperationTransform        = "transform"
	OperationFitTransform     = "fit_transform"
	OperationInverseTransform = "inverse_transform"

	PhasePreprocessing = "preprocessing"
	PhaseSplit         = "split"
	PhaseReport        = "report"

	ErrorNotFitted         = "NOT_FITTED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorEmptyData         = "EMPTY_DATA"
	ErrorInvalidInput      = "INVALID_INPUT"
)
