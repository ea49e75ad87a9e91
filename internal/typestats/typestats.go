// Package typestats counts how often each raw syntax type occurs. The report
// is what a human reads to author types-mapping.json.
package typestats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/JakeFAU/nginx-docs/internal/docs"
)

// Stats is the frequency table for one document. It is not modified after
// Analyze returns.
type Stats struct {
	order  []string
	counts map[string]int
}

// Analyze counts raw types across every directive. Directives whose raw type
// is empty are ignored.
func Analyze(doc docs.Document) Stats {
	s := Stats{counts: make(map[string]int)}
	doc.EachDirective(func(_ string, d *docs.Directive) {
		raw := d.RawType()
		if raw == "" {
			return
		}
		if _, ok := s.counts[raw]; !ok {
			s.order = append(s.order, raw)
		}
		s.counts[raw]++
	})
	return s
}

// Types returns the distinct raw types in first-seen order.
func (s Stats) Types() []string {
	return append([]string(nil), s.order...)
}

// Count returns how many directives share rawType.
func (s Stats) Count(rawType string) int {
	return s.counts[rawType]
}

// Len returns the number of distinct raw types.
func (s Stats) Len() int {
	return len(s.order)
}

// Repeated returns the raw types seen more than once, in first-seen order.
func (s Stats) Repeated() []string {
	out := []string{}
	for _, raw := range s.order {
		if s.counts[raw] > 1 {
			out = append(out, raw)
		}
	}
	return out
}

// Skeleton returns a mapping with every raw type set to its count, ready to
// be curated by hand.
func (s Stats) Skeleton() docs.TypeMapping {
	m := make(docs.TypeMapping, len(s.order))
	for _, raw := range s.order {
		m[raw] = docs.CountEntry(s.counts[raw])
	}
	return m
}

// Report writes the repeated raw types as a JSON array followed by the full
// frequency table as a JSON object in first-seen order.
func Report(w io.Writer, s Stats) error {
	repeated, err := marshalIndent(s.Repeated())
	if err != nil {
		return fmt.Errorf("encode repeated types: %w", err)
	}
	table, err := s.marshalTable()
	if err != nil {
		return fmt.Errorf("encode frequency table: %w", err)
	}
	if _, err := fmt.Fprintf(w, "%s\n%s\n", repeated, table); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func (s Stats) marshalTable() ([]byte, error) {
	table := orderedmap.New[string, int](
		orderedmap.WithCapacity[string, int](len(s.order)),
		orderedmap.WithDisableHTMLEscape[string, int](),
	)
	for _, raw := range s.order {
		table.Set(raw, s.counts[raw])
	}
	return marshalIndent(table)
}

func marshalIndent(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
