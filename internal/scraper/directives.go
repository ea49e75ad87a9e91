package scraper

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/JakeFAU/nginx-docs/internal/docs"
)

const (
	directiveSelector = "div.directive"
	rowSelector       = "table tbody tr"
)

var excludedDirectives = map[string]struct{}{
	"server":   {},
	"http":     {},
	"location": {},
	"listen":   {},
}

// outcome says what happened to one directive block.
type outcome int

const (
	kept outcome = iota
	excluded
	commercial
)

// PageResult is the extraction result for one module page.
type PageResult struct {
	Directives []docs.Directive
	// Excluded counts structural directives that were dropped.
	Excluded int
	// Commercial counts directives dropped for the subscription notice.
	Commercial int
}

// ParseDirectives extracts every directive block on a module page, in page
// order.
func ParseDirectives(html string) (PageResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return PageResult{}, fmt.Errorf("parse module html: %w", err)
	}

	result := PageResult{Directives: []docs.Directive{}}
	blocks := doc.Find(directiveSelector)
	for i := range blocks.Nodes {
		directive, out, err := parseBlock(blocks.Eq(i))
		if err != nil {
			return PageResult{}, fmt.Errorf("directive block %d: %w", i, err)
		}
		switch out {
		case kept:
			result.Directives = append(result.Directives, directive)
		case excluded:
			result.Excluded++
		case commercial:
			result.Commercial++
		}
	}
	return result, nil
}

func parseBlock(block *goquery.Selection) (docs.Directive, outcome, error) {
	var (
		directive docs.Directive
		hasSyntax bool
	)
	rows := block.Find(rowSelector)
	for i := range rows.Nodes {
		row := rows.Eq(i)
		th, td := row.Find("th").First(), row.Find("td").First()
		if th.Length() == 0 || td.Length() == 0 {
			return docs.Directive{}, kept, fmt.Errorf("table row %d lacks a header or value cell", i)
		}
		key := normalizeKey(th.Text())
		value := collapseSpace(td.Text())

		if key == docs.KeySyntax {
			name := strings.Split(value, " ")[0]
			directive.Set(docs.KeyName, name)
			directive.Set(docs.KeyFieldName, docs.FieldName(name))
			if _, skip := excludedDirectives[name]; skip {
				return docs.Directive{}, excluded, nil
			}
			hasSyntax = true
		}

		// A single character is the site's placeholder for "no default".
		if key == docs.KeyDefault && utf8.RuneCountInString(value) == 1 {
			continue
		}

		directive.Set(key, value)
	}

	description, ok := assembleDescription(followingSiblings(block))
	if !ok {
		return docs.Directive{}, commercial, nil
	}
	if !hasSyntax {
		return docs.Directive{}, kept, docs.ErrMissingSyntax
	}
	directive.Set(docs.KeyDescription, description)
	return directive, kept, nil
}
