package logging

// Standardized field names for structured logging. Using the same keys
// everywhere keeps batch-run logs easy to filter.
const (
	FieldDocument    = "document"
	FieldEntry       = "entry"
	FieldInn         = "inn"
	FieldPaymentCode = "payment_code"
	FieldRuleColumn  = "rule_column"
	FieldCurrency    = "currency"
	FieldDate        = "date"
	FieldCount       = "count"
	FieldFile        = "file_path"
	FieldStore       = "store"
	FieldError       = "error"
)
