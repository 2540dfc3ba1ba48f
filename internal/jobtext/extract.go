package jobtext

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// htmlToText flattens an HTML document or fragment into plain text,
// one line per block-level element.
func htmlToText(raw string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return strings.TrimSpace(raw)
	}
	doc.Find("script, style, noscript, nav, header, footer").Remove()

	var lines []string
	blocks := doc.Find("h1, h2, h3, h4, h5, h6, p, li, td, pre, blockquote")
	if blocks.Length() > 0 {
		blocks.Each(func(_ int, s *goquery.Selection) {
			if t := collapseSpace(s.Text()); t != "" {
				lines = append(lines, t)
			}
		})
	} else {
		for _, l := range strings.Split(doc.Text(), "\n") {
			if t := collapseSpace(l); t != "" {
				lines = append(lines, t)
			}
		}
	}
	return strings.Join(lines, "\n")
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
