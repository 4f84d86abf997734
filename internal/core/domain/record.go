package domain

// Record is a directory or project entry as returned by the backend. The
// console forwards these without interpreting their fields.
type Record map[string]any

// ID returns the record identifier, trying "_id" before "id".
func (r Record) ID() string {
	for _, k := range []string{"_id", "id"} {
		if v, ok := r[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
