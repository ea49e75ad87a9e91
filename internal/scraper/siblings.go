package scraper

import (
	"iter"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const commercialNotice = "commercial subscription"

// followingSiblings yields the element siblings after sel in document order.
// The list is captured once; ranging over the sequence again starts over.
func followingSiblings(sel *goquery.Selection) iter.Seq[*goquery.Selection] {
	siblings := sel.First().NextAll()
	return func(yield func(*goquery.Selection) bool) {
		for i := range siblings.Nodes {
			if !yield(siblings.Eq(i)) {
				return
			}
		}
	}
}

// assembleDescription joins the text of the siblings up to the first anchor.
// It reports false when a commercial-subscription block-quote comes first,
// meaning the directive must be dropped.
func assembleDescription(siblings iter.Seq[*goquery.Selection]) (string, bool) {
	var parts []string
	for sibling := range siblings {
		if isSectionEnd(sibling) {
			break
		}
		if isCommercialNote(sibling) {
			return "", false
		}
		parts = append(parts, sibling.Text())
	}
	return strings.Join(parts, "\n"), true
}

func isSectionEnd(sel *goquery.Selection) bool {
	return goquery.NodeName(sel) == "a"
}

func isCommercialNote(sel *goquery.Selection) bool {
	return goquery.NodeName(sel) == "blockquote" && strings.Contains(sel.Text(), commercialNotice)
}
