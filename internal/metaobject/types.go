package metaobject

// Record is one remote metaobject instance with its field list folded into a
// map keyed by normalized field key.
type Record struct {
	ID     string
	Handle string
	Fields map[string]string
}

// FieldTypeMultiLineText is the field type used for every definition field.
// The registry does not infer types from data; a generic text field keeps the
// remote shape stable regardless of column content.
const FieldTypeMultiLineText = "multi_line_text_field"
