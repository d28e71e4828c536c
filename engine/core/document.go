package core

// Document is a schemaless record exchanged with a document store. Stored
// documents surface their identifier under the "id" key as a plain string;
// backend-native identifier representations never cross this boundary.
type Document map[string]any

// IDKey is the canonical identifier field on outbound documents.
const IDKey = "id"

// ID returns the document identifier, or "" when the document has none.
func (d Document) ID() string {
	if v, ok := d[IDKey].(string); ok {
		return v
	}
	return ""
}
