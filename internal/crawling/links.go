package crawling

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultAssetPrefixes lists path prefixes under the crawl scope that hold
// binary assets (PDFs, images) rather than pages. Links into these subtrees
// are never followed.
func DefaultAssetPrefixes() []string {
	return []string{"sites/default/files"}
}

// DiscoverLinks extracts the set of links on a page that the crawler should
// follow. A candidate is included iff it resolves under baseURL, starts with
// scopePrefix, is not already visited, does not enter an asset subtree, and
// carries no fragment or query string (those are duplicate-content variants
// of the canonical page). No network I/O happens here.
func DiscoverLinks(doc *goquery.Document, baseURL, scopePrefix string, visited map[string]struct{}, assetPrefixes []string) (map[string]struct{}, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, &LinkDiscoveryError{
			Message: "failed to parse base URL",
			Cause:   err,
		}
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, &LinkDiscoveryError{
			Message: fmt.Sprintf("invalid base URL: %s (must have scheme and host)", baseURL),
		}
	}

	if assetPrefixes == nil {
		assetPrefixes = DefaultAssetPrefixes()
	}

	links := make(map[string]struct{})
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists || href == "" {
			return
		}

		linkURL, err := url.Parse(href)
		if err != nil {
			// Skip malformed URLs
			return
		}

		link := base.ResolveReference(linkURL).String()

		if !strings.HasPrefix(link, scopePrefix) {
			return
		}
		if _, seen := visited[link]; seen {
			return
		}
		if strings.Contains(link, "#") || strings.Contains(link, "?") {
			return
		}
		for _, asset := range assetPrefixes {
			if strings.HasPrefix(link, scopePrefix+asset) {
				return
			}
		}

		links[link] = struct{}{}
	})

	return links, nil
}
