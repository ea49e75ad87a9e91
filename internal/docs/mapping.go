package docs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidMapping is returned for mapping values that are neither a
// number nor a string.
var ErrInvalidMapping = errors.New("mapping value must be a number or a string")

// TypeMapping maps a raw type to either an occurrence count or a canonical
// type name. It is authored by hand from the frequency report.
type TypeMapping map[string]MappingEntry

// MappingEntry is one value of a TypeMapping. Exactly one of Count and
// TypeName is meaningful.
type MappingEntry struct {
	Count    json.Number
	TypeName string
}

// CountEntry builds an uncurated entry holding an occurrence count.
func CountEntry(n int) MappingEntry {
	return MappingEntry{Count: json.Number(strconv.Itoa(n))}
}

// TypeEntry builds a curated entry.
func TypeEntry(name string) MappingEntry {
	return MappingEntry{TypeName: name}
}

// IsCount reports whether the entry is still a plain frequency count.
func (e MappingEntry) IsCount() bool {
	return e.Count != ""
}

// Curated returns the canonical type name when the entry has one.
func (e MappingEntry) Curated() (string, bool) {
	if e.IsCount() || e.TypeName == "" {
		return "", false
	}
	return e.TypeName, true
}

// Lookup returns the curated type name for rawType.
func (m TypeMapping) Lookup(rawType string) (string, bool) {
	entry, ok := m[rawType]
	if !ok {
		return "", false
	}
	return entry.Curated()
}

// MarshalJSON writes the count as a number or the type name as a string.
func (e MappingEntry) MarshalJSON() ([]byte, error) {
	if e.IsCount() {
		return []byte(e.Count.String()), nil
	}
	return encodeValue(e.TypeName)
}

// UnmarshalJSON accepts a JSON number or string.
func (e *MappingEntry) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ErrInvalidMapping
	}
	switch c := data[0]; {
	case c == '"':
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return fmt.Errorf("decode mapping type name: %w", err)
		}
		*e = MappingEntry{TypeName: name}
		return nil
	case c == '-' || (c >= '0' && c <= '9'):
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		var n json.Number
		if err := dec.Decode(&n); err != nil {
			return fmt.Errorf("decode mapping count: %w", err)
		}
		*e = MappingEntry{Count: n}
		return nil
	default:
		return fmt.Errorf("%w: got %s", ErrInvalidMapping, data)
	}
}
