package scraper

import "strings"

// collapseSpace replaces every whitespace run with one space and trims.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// normalizeKey turns a table header such as "Syntax:" into "syntax".
func normalizeKey(s string) string {
	s = strings.Replace(s, ":", "", 1)
	return strings.ToLower(collapseSpace(s))
}
