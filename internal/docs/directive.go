package docs

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Well-known directive keys. Any other key comes from a definition table row.
const (
	KeyName        = "name"
	KeyFieldName   = "fieldName"
	KeySyntax      = "syntax"
	KeyDefault     = "default"
	KeyContext     = "context"
	KeyDescription = "description"
	KeyGoType      = "goType"
)

// Field is a single directive attribute. Value holds the text of string
// attributes and the raw JSON of anything else.
type Field struct {
	Key   string
	Value string
}

// Directive is an ordered set of attributes. Keys keep the order in which
// they were first set, and that order is kept when encoding to JSON. Values
// that are not strings are carried through unchanged.
type Directive struct {
	fields *object
}

// NewDirective builds a directive from key/value pairs.
func NewDirective(fields ...Field) Directive {
	var d Directive
	for _, f := range fields {
		d.Set(f.Key, f.Value)
	}
	return d
}

// Get returns the string stored under key. It reports false when the key is
// absent or its value is not a JSON string.
func (d Directive) Get(key string) (string, bool) {
	if d.fields == nil {
		return "", false
	}
	raw, ok := d.fields.Get(key)
	if !ok {
		return "", false
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", false
	}
	return v, true
}

// Set stores value under key. An existing key keeps its position.
func (d *Directive) Set(key, value string) {
	if d.fields == nil {
		d.fields = newObject()
	}
	raw, _ := encodeValue(value) //nolint:errcheck // strings always encode
	d.fields.Set(key, raw)
}

// Has reports whether key is present, whatever its value.
func (d Directive) Has(key string) bool {
	if d.fields == nil {
		return false
	}
	_, ok := d.fields.Get(key)
	return ok
}

// Fields returns a copy of the attributes in order.
func (d Directive) Fields() []Field {
	if d.fields == nil {
		return nil
	}
	out := make([]Field, 0, d.fields.Len())
	for pair := d.fields.Oldest(); pair != nil; pair = pair.Next() {
		value := string(pair.Value)
		var text string
		if err := json.Unmarshal(pair.Value, &text); err == nil {
			value = text
		}
		out = append(out, Field{Key: pair.Key, Value: value})
	}
	return out
}

// Len returns the number of attributes.
func (d Directive) Len() int {
	if d.fields == nil {
		return 0
	}
	return d.fields.Len()
}

// Name returns the directive keyword.
func (d Directive) Name() string {
	v, _ := d.Get(KeyName)
	return v
}

// Syntax returns the syntax row.
func (d Directive) Syntax() string {
	v, _ := d.Get(KeySyntax)
	return v
}

// GoType returns the annotated type name, if any.
func (d Directive) GoType() string {
	v, _ := d.Get(KeyGoType)
	return v
}

// RawType is the syntax text with the directive name and the terminator
// removed. Only the first occurrence of each is removed, so names formatted
// differently inside the syntax text are left in place.
func (d Directive) RawType() string {
	raw := strings.Replace(d.Syntax(), d.Name(), "", 1)
	raw = strings.Replace(raw, ";", "", 1)
	return strings.TrimSpace(raw)
}

// FieldName converts a directive name into an exported identifier:
// proxy_pass becomes ProxyPass.
func FieldName(name string) string {
	parts := strings.Split(name, "_")
	var b strings.Builder
	b.Grow(len(name))
	for _, part := range parts {
		r, size := utf8.DecodeRuneInString(part)
		if size == 0 {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(part[size:])
	}
	return b.String()
}

// MarshalJSON encodes the attributes as an object in insertion order.
func (d Directive) MarshalJSON() ([]byte, error) {
	if d.fields == nil {
		return []byte("{}"), nil
	}
	return d.fields.MarshalJSON()
}

// UnmarshalJSON decodes an object, keeping key order and raw values.
func (d *Directive) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data)
	if err != nil {
		return fmt.Errorf("decode directive: %w", err)
	}
	d.fields = obj
	return nil
}
