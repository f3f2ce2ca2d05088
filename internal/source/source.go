// Package source contains one fetch/parse adapter per upstream site. Each
// adapter is configured with its base URL and response encoding; the shared
// sync package drives them.
package source

import (
	"net/url"
	"strings"
)

// resolveURL resolves href against the directory of pageURL, the way the
// upstream pages' relative links are meant to be read
func resolveURL(pageURL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
