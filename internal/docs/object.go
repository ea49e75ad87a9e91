package docs

import (
	"bytes"
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// object is a JSON object that keeps its key order and leaves values it
// does not interpret untouched.
type object = orderedmap.OrderedMap[string, json.RawMessage]

func newObject() *object {
	return orderedmap.New[string, json.RawMessage](
		orderedmap.WithDisableHTMLEscape[string, json.RawMessage](),
	)
}

func decodeObject(data []byte) (*object, error) {
	obj := newObject()
	if err := json.Unmarshal(data, obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// member is a key the model owns, encoded from its typed field.
type member struct {
	key   string
	value any
}

// encodeObject writes the keys of base in their original order with owned
// members substituted in place. Owned members missing from base follow, in
// the order given.
func encodeObject(base *object, owned ...member) ([]byte, error) {
	out := newObject()
	if base != nil {
		for pair := base.Oldest(); pair != nil; pair = pair.Next() {
			out.Set(pair.Key, pair.Value)
		}
	}
	for _, m := range owned {
		raw, err := encodeValue(m.value)
		if err != nil {
			return nil, fmt.Errorf("encode %q: %w", m.key, err)
		}
		out.Set(m.key, raw)
	}
	return out.MarshalJSON()
}

// encodeValue marshals v without HTML escaping.
func encodeValue(v any) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
