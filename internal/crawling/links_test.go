package crawling

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestDiscoverLinks_ScopeAndResolution(t *testing.T) {
	html := `
		<html><body>
			<a href="/sustainability/recycling">Recycling</a>
			<a href="compost">Compost</a>
			<a href="https://example.edu/sustainability/energy">Energy</a>
			<a href="https://other.edu/sustainability/off-site">Off site</a>
			<a href="https://example.edu/athletics">Out of scope</a>
		</body></html>
	`
	doc := mustParse(t, html)

	links, err := DiscoverLinks(doc, "https://example.edu/sustainability/", "https://example.edu/sustainability/", map[string]struct{}{}, nil)
	require.NoError(t, err)

	assert.Equal(t, map[string]struct{}{
		"https://example.edu/sustainability/recycling": {},
		"https://example.edu/sustainability/compost":   {},
		"https://example.edu/sustainability/energy":    {},
	}, links)
}

func TestDiscoverLinks_DropsFragmentAndQueryVariants(t *testing.T) {
	html := `
		<html><body>
			<a href="/sustainability/waste">Canonical</a>
			<a href="/sustainability/waste#section">Fragment</a>
			<a href="/sustainability/waste?page=2">Query</a>
		</body></html>
	`
	doc := mustParse(t, html)

	links, err := DiscoverLinks(doc, "https://example.edu/sustainability/", "https://example.edu/sustainability/", map[string]struct{}{}, nil)
	require.NoError(t, err)

	assert.Len(t, links, 1)
	assert.Contains(t, links, "https://example.edu/sustainability/waste")
}

func TestDiscoverLinks_SkipsVisitedAndAssets(t *testing.T) {
	html := `
		<html><body>
			<a href="/sustainability/new-page">New</a>
			<a href="/sustainability/old-page">Old</a>
			<a href="/sustainability/sites/default/files/report.pdf">Asset</a>
		</body></html>
	`
	doc := mustParse(t, html)
	visited := map[string]struct{}{
		"https://example.edu/sustainability/old-page": {},
	}

	links, err := DiscoverLinks(doc, "https://example.edu/sustainability/", "https://example.edu/sustainability/", visited, nil)
	require.NoError(t, err)

	assert.Len(t, links, 1)
	assert.Contains(t, links, "https://example.edu/sustainability/new-page")
}

func TestDiscoverLinks_InvalidBaseURL(t *testing.T) {
	doc := mustParse(t, `<html><body><a href="/x">x</a></body></html>`)

	_, err := DiscoverLinks(doc, "example.edu/no-scheme", "example.edu/", map[string]struct{}{}, nil)
	require.Error(t, err)

	var discErr *LinkDiscoveryError
	assert.ErrorAs(t, err, &discErr)
}

func TestDiscoverLinks_SkipsEmptyAndMalformedHrefs(t *testing.T) {
	html := `
		<html><body>
			<a href="">Empty</a>
			<a href="://bad">Malformed</a>
			<a href="/sustainability/fine">Fine</a>
		</body></html>
	`
	doc := mustParse(t, html)

	links, err := DiscoverLinks(doc, "https://example.edu/sustainability/", "https://example.edu/sustainability/", map[string]struct{}{}, nil)
	require.NoError(t, err)
	assert.Len(t, links, 1)
	assert.Contains(t, links, "https://example.edu/sustainability/fine")
}
