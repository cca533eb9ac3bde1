package log

// Common field names for structured logging
const (
	FieldComponent     = "component"
	FieldRequestID     = "request_id"
	FieldClientIP      = "client_ip"
	FieldMethod        = "method"
	FieldPath          = "path"
	FieldQuery         = "query"
	FieldStatusCode    = "status_code"
	FieldDuration      = "duration_ms"
	FieldUserAgent     = "user_agent"
	FieldSuccess       = "success"
	FieldError         = "error"
	FieldOperation     = "operation"
	FieldYearFrom      = "year_from"
	FieldYearTo        = "year_to"
	FieldRows          = "rows"
	FieldDroppedRows   = "dropped_rows"
	FieldDepartments   = "departments"
	FieldBaseYear      = "base_year"
	FieldSnapshotRows  = "snapshot_rows"
	FieldSpreadsheetID = "spreadsheet_id"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentSocrata  = "socrata"
	ComponentPipeline = "pipeline"
	ComponentGeo      = "geo"
	ComponentStorage  = "storage"
	ComponentAMQP     = "amqp"
	ComponentWorker   = "worker"
	ComponentSheets   = "sheets"
	ComponentCache    = "cache"
)

// Operations defines standard operation names
const (
	OpFetch    = "fetch"
	OpFilter   = "filter"
	OpAggreg   = "aggregate"
	OpSnapshot = "snapshot"
	OpPublish  = "publish"
	OpReport   = "report"
	OpRender   = "render"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)

// ErrorTypes defines standard error type categories
const (
	ErrorTypeConfiguration = "configuration_error"
	ErrorTypeNetwork       = "network_error"
	ErrorTypeDataQuality   = "data_quality_error"
	ErrorTypeDatabase      = "database_error"
	ErrorTypeNotFound      = "not_found_error"
	ErrorTypeInternal      = "internal_error"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithYearRange adds the filter's year span
func (f LogFields) WithYearRange(from, to int) LogFields {
	f[FieldYearFrom] = from
	f[FieldYearTo] = to
	return f
}

// WithRows adds row counts from an acquisition or filter pass
func (f LogFields) WithRows(rows, dropped int) LogFields {
	f[FieldRows] = rows
	f[FieldDroppedRows] = dropped
	return f
}

// ToSlice converts LogFields to a slice of alternating key/value pairs for slog
func (f LogFields) ToSlice() []any {
	out := make([]any, 0, len(f)*2)
	for k, v := range f {
		out = append(out, k, v)
	}
	return out
}
