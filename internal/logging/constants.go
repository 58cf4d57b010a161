package logging

// Standardized field names for structured logging across the dashboard.
const (
	FieldSourceURL = "source_url"
	FieldRows      = "rows"
	FieldMonth     = "month"
	FieldCell      = "cell"
	FieldWidget    = "widget"
	FieldEntity    = "entity"
	FieldStatus    = "status"
	FieldCount     = "count"
	FieldDuration  = "duration_ms"
	FieldError     = "error"
)
