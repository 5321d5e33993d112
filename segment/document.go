package segment

// Field is a single un-analyzed value of a document.
type Field struct {
	Name  string
	Value []byte
}

// StringField creates a Field from a string value.
func StringField(name, value string) Field {
	return Field{Name: name, Value: []byte(value)}
}

// BytesField creates a Field from a byte value.
func BytesField(name string, value []byte) Field {
	return Field{Name: name, Value: value}
}

// Document is an ordered list of fields. A field name may repeat; every
// value is indexed.
type Document []Field

// NewDocument creates a Document from fields.
func NewDocument(fields ...Field) Document {
	return Document(fields)
}
