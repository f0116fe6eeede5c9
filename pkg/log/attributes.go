package log

// Standard attribute keys for transformer operations. Using these keys
// consistently makes fit/transform logs filterable: every record names the
// transformer, the operation, and the shape of the table it worked on.

// Transformer and operation context.
const (
	// TransformerKey identifies the transformer type.
	// Examples: "MeanEncoder", "EqualWidthDiscretiser", "LagTransformer"
	TransformerKey = "transformer.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "transform", "predict", "inverse_transform"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "encoding", "discretisation", "timeseries", "selection"
	ComponentKey = "ml.component"
)

// Table shape and variables.
const (
	// RowsKey is the number of rows in the processed table.
	RowsKey = "data.rows"

	// ColumnsKey is the number of columns in the processed table.
	ColumnsKey = "data.columns"

	// VariablesKey lists the variables a transformer acts on.
	VariablesKey = "data.variables"

	// TargetKey names the supervised target, when one is involved.
	TargetKey = "data.target"
)

// Timing.
const (
	// DurationMSKey is the wall-clock duration of an operation in milliseconds.
	DurationMSKey = "perf.duration_ms"
)
