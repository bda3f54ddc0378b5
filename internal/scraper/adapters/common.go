package adapters

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// searchQuery joins keyword terms into a plain search string, stripping
// hashtag markers.
func searchQuery(keywords []string) string {
	terms := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.TrimSpace(strings.TrimPrefix(k, "#"))
		if k != "" {
			terms = append(terms, k)
		}
	}
	return strings.Join(terms, " ")
}

// timeWindowDays maps the window vocabulary onto a day count for sources
// that filter by "posted within N days".
func timeWindowDays(window string) string {
	switch window {
	case "1h", "24h":
		return "1"
	case "7d":
		return "7"
	case "30d":
		return "30"
	default:
		return "7"
	}
}

// cardText returns the trimmed text of the first match under sel
func cardText(sel *goquery.Selection, selector string) string {
	return strings.TrimSpace(sel.Find(selector).First().Text())
}

// cardAttr returns the named attribute of the first match under sel
func cardAttr(sel *goquery.Selection, selector, attr string) string {
	v, _ := sel.Find(selector).First().Attr(attr)
	return strings.TrimSpace(v)
}

// absoluteURL resolves href against base when the source emits relative links
func absoluteURL(base, href string) string {
	if href == "" || strings.HasPrefix(href, "http") {
		return href
	}
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return b.ResolveReference(ref).String()
}
