package scraper

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/JakeFAU/nginx-docs/internal/docs"
)

const (
	moduleLinkSelector = "ul.compact li a"
	modulePrefix       = "ngx_"
)

// ParseIndex returns the allow-listed modules linked from the index page, in
// page order. Each module's directives are left empty.
func ParseIndex(page docs.Page, allow []string) ([]docs.Module, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		return nil, fmt.Errorf("parse index html: %w", err)
	}
	base, err := url.Parse(page.BaseURL())
	if err != nil {
		return nil, fmt.Errorf("parse index url %q: %w", page.BaseURL(), err)
	}

	allowed := make(map[string]struct{}, len(allow))
	for _, name := range allow {
		allowed[name] = struct{}{}
	}

	var (
		modules = []docs.Module{}
		seen    = make(map[string]struct{})
		linkErr error
	)
	doc.Find(moduleLinkSelector).EachWithBreak(func(_ int, a *goquery.Selection) bool {
		name := collapseSpace(a.Text())
		if !strings.HasPrefix(name, modulePrefix) {
			return true
		}
		if _, ok := allowed[name]; !ok {
			return true
		}
		if _, dup := seen[name]; dup {
			return true
		}
		href, _ := a.Attr("href")
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			linkErr = fmt.Errorf("module %s has invalid link %q: %w", name, href, err)
			return false
		}
		seen[name] = struct{}{}
		modules = append(modules, docs.Module{
			Name:       name,
			Link:       base.ResolveReference(ref).String(),
			Directives: []docs.Directive{},
		})
		return true
	})
	if linkErr != nil {
		return nil, linkErr
	}
	return modules, nil
}
