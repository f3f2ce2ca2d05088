package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// TextLines extracts the text content of a selection with one line per text
// node, each trimmed, empty lines dropped
func TextLines(sel *goquery.Selection) string {
	var lines []string
	for _, node := range sel.Nodes {
		collectText(node, &lines)
	}
	return strings.Join(lines, "\n")
}

func collectText(n *html.Node, lines *[]string) {
	if n.Type == html.TextNode {
		if text := strings.TrimSpace(n.Data); text != "" {
			*lines = append(*lines, text)
		}
		return
	}
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, lines)
	}
}

// CellText returns the trimmed text of a selection with full-width spaces
// removed, the normalization used for table header keys
func CellText(sel *goquery.Selection) string {
	return strings.ReplaceAll(strings.TrimSpace(sel.Text()), "　", "")
}
