// Package docs defines the documentation model shared by the pipeline stages.
package docs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMissingSyntax is returned when a directive block has no syntax row.
var ErrMissingSyntax = errors.New("directive block has no syntax row")

// JSON keys of the document and module objects.
const (
	keyModules    = "modules"
	keyLink       = "link"
	keyDirectives = "directives"
)

// Document is the root of documentation.json. Keys other than modules are
// kept as read and written back in place.
type Document struct {
	Modules []Module

	raw *object
}

// Module groups the directives described on one documentation page. Keys
// other than name, link and directives are kept as read.
type Module struct {
	Name       string
	Link       string
	Directives []Directive

	raw *object
}

// MarshalJSON encodes the document in its original key order.
func (d Document) MarshalJSON() ([]byte, error) {
	return encodeObject(d.raw, member{keyModules, d.Modules})
}

// UnmarshalJSON decodes the document, keeping unknown keys.
func (d *Document) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data)
	if err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	var modules []Module
	if raw, ok := obj.Get(keyModules); ok {
		if err := json.Unmarshal(raw, &modules); err != nil {
			return fmt.Errorf("decode modules: %w", err)
		}
	}
	*d = Document{Modules: modules, raw: obj}
	return nil
}

// MarshalJSON encodes the module in its original key order. A module built
// in memory is written as name, link, directives.
func (m Module) MarshalJSON() ([]byte, error) {
	return encodeObject(m.raw,
		member{KeyName, m.Name},
		member{keyLink, m.Link},
		member{keyDirectives, m.Directives},
	)
}

// UnmarshalJSON decodes the module, keeping unknown keys.
func (m *Module) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data)
	if err != nil {
		return fmt.Errorf("decode module: %w", err)
	}
	out := Module{raw: obj}
	if err := decodeMember(obj, KeyName, &out.Name); err != nil {
		return err
	}
	if err := decodeMember(obj, keyLink, &out.Link); err != nil {
		return err
	}
	if err := decodeMember(obj, keyDirectives, &out.Directives); err != nil {
		return fmt.Errorf("module %s: %w", out.Name, err)
	}
	*m = out
	return nil
}

func decodeMember(obj *object, key string, v any) error {
	raw, ok := obj.Get(key)
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// Page is a rendered documentation page.
type Page struct {
	// URL is the address that was requested.
	URL string
	// FinalURL is the address after redirects, used to resolve relative links.
	FinalURL string
	// HTML is the serialized DOM.
	HTML string
}

// BaseURL returns the address relative links on the page resolve against.
func (p Page) BaseURL() string {
	if p.FinalURL != "" {
		return p.FinalURL
	}
	return p.URL
}

// Fetcher loads a documentation page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (Page, error)
}

// EachDirective calls fn with a pointer to every directive in document order.
func (d *Document) EachDirective(fn func(module string, directive *Directive)) {
	for i := range d.Modules {
		module := &d.Modules[i]
		for j := range module.Directives {
			fn(module.Name, &module.Directives[j])
		}
	}
}
