// Package scrape holds the HTML-level helpers shared by the source parsers:
// invalid-content detection and text extraction.
package scrape

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultEmptyThreshold is the minimum number of non-whitespace characters a
// page must carry (after script/style removal) to count as real content
const DefaultEmptyThreshold = 100

// placeholderSentinels are upstream "not ready yet" markers. A page carrying
// one is a non-result regardless of its length.
var placeholderSentinels = []string{
	"ＨＴＭＬファイルについては準備中です。",
	"ＨＴＭＬファイルについてはしばらくお待ちください。",
}

var whitespacePattern = regexp.MustCompile(`\s+`)

// IsPlaceholder reports whether the payload carries a known placeholder marker
func IsPlaceholder(payload string) bool {
	for _, sentinel := range placeholderSentinels {
		if strings.Contains(payload, sentinel) {
			return true
		}
	}
	return false
}

// IsEmptyHTML reports whether the payload has effectively no content: after
// dropping script/style elements and all whitespace, fewer than threshold
// characters remain
func IsEmptyHTML(payload string, threshold int) bool {
	text := payload
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(payload)); err == nil {
		doc.Find("script, style").Remove()
		text = doc.Text()
	}
	stripped := whitespacePattern.ReplaceAllString(text, "")
	return len([]rune(stripped)) < threshold
}

// IsInvalid reports whether the payload should be treated as absent, either
// as a placeholder page or as effectively empty content
func IsInvalid(payload string, threshold int) bool {
	return IsPlaceholder(payload) || IsEmptyHTML(payload, threshold)
}
