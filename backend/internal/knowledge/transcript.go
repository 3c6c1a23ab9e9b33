package knowledge

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CleanTranscript returns the readable text of a transcript. Chat exports
// saved as HTML are reduced to their text content with one line per block;
// plain text is only trimmed.
func CleanTranscript(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !looksLikeHTML(trimmed) {
		return trimmed
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(trimmed))
	if err != nil {
		return trimmed
	}
	doc.Find("script, style, head").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("p, div, li, tr, h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	var lines []string
	for _, line := range strings.Split(doc.Text(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// htmlPrefix matches a leading document or block tag. Bracketed speaker
// names such as "<pedro>" in plain chat logs do not match.
var htmlPrefix = regexp.MustCompile(`(?i)^<(!doctype|html|head|body|div|p|span|ul|ol|table)[\s>/]`)

func looksLikeHTML(s string) bool {
	return htmlPrefix.MatchString(s)
}
