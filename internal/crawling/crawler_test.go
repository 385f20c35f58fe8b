package crawling

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/sustainability-chatbot/internal/types"
)

// testSite serves a small fixed site and records which paths were fetched.
type testSite struct {
	mu      sync.Mutex
	fetches map[string]int
	pages   map[string]string
	server  *httptest.Server
}

func newTestSite(t *testing.T, pages map[string]string) *testSite {
	t.Helper()
	if pages == nil {
		pages = make(map[string]string)
	}
	site := &testSite{
		fetches: make(map[string]int),
		pages:   pages,
	}
	site.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		site.mu.Lock()
		site.fetches[r.URL.Path]++
		site.mu.Unlock()

		page, ok := site.pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(page))
	}))
	t.Cleanup(site.server.Close)
	return site
}

func (s *testSite) fetchCount(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetches[path]
}

func accordionPage(title, header, body string, links ...string) string {
	var anchors strings.Builder
	for _, link := range links {
		fmt.Fprintf(&anchors, `<a href="%s">link</a>`, link)
	}
	return fmt.Sprintf(`<html><head><title>%s</title></head><body>
		%s
		<div class="accordion"><div class="card">
			<div class="card-header">%s</div>
			<div class="card-body">%s</div>
		</div></div>
	</body></html>`, title, anchors.String(), header, body)
}

const longBody = "We recycle plastics and glass on campus facilities daily for everyone to use."

func TestCrawler_CycleIsVisitedOnce(t *testing.T) {
	site := newTestSite(t, nil)
	site.pages["/a"] = accordionPage("Page A", "A", longBody, "/b")
	site.pages["/b"] = accordionPage("Page B", "B", longBody, "/a")

	crawler, err := NewCrawler(site.server.URL+"/a", Options{
		ScopePrefix: site.server.URL + "/",
		Delay:       -1,
	})
	require.NoError(t, err)

	records, err := crawler.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, site.fetchCount("/a"))
	assert.Equal(t, 1, site.fetchCount("/b"))
	require.Len(t, records, 2)
	assert.Equal(t, 2, crawler.Visited())
}

func TestCrawler_FetchFailureAbandonsBranchOnly(t *testing.T) {
	site := newTestSite(t, nil)
	site.pages["/a"] = accordionPage("Page A", "A", longBody, "/missing", "/b")
	site.pages["/b"] = accordionPage("Page B", "B", longBody)

	crawler, err := NewCrawler(site.server.URL+"/a", Options{
		ScopePrefix: site.server.URL + "/",
		Delay:       -1,
	})
	require.NoError(t, err)

	records, err := crawler.Run(context.Background())
	require.NoError(t, err)

	// /missing 404s; /b must still be crawled.
	assert.Equal(t, 1, site.fetchCount("/b"))
	headers := make([]string, 0, len(records))
	for _, rec := range records {
		headers = append(headers, rec.Header)
	}
	assert.ElementsMatch(t, []string{"A", "B"}, headers)
}

func TestCrawler_MaxPagesBound(t *testing.T) {
	site := newTestSite(t, nil)
	site.pages["/a"] = accordionPage("Page A", "A", longBody, "/b")
	site.pages["/b"] = accordionPage("Page B", "B", longBody, "/c")
	site.pages["/c"] = accordionPage("Page C", "C", longBody)

	crawler, err := NewCrawler(site.server.URL+"/a", Options{
		ScopePrefix: site.server.URL + "/",
		MaxPages:    2,
		Delay:       -1,
	})
	require.NoError(t, err)

	records, err := crawler.Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, 0, site.fetchCount("/c"))
}

func TestCrawler_RecordsCarryPageTemplate(t *testing.T) {
	site := newTestSite(t, nil)
	site.pages["/a"] = accordionPage("Sustainability | Example", "Recycling", longBody)

	crawler, err := NewCrawler(site.server.URL+"/a", Options{
		ScopePrefix: site.server.URL + "/",
		Delay:       -1,
	})
	require.NoError(t, err)

	records, err := crawler.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, site.server.URL+"/a", records[0].Link)
	assert.Equal(t, "Sustainability | Example", records[0].SiteTitle)
}

func TestCrawler_CanceledContext(t *testing.T) {
	site := newTestSite(t, nil)
	site.pages["/a"] = accordionPage("Page A", "A", longBody)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	crawler, err := NewCrawler(site.server.URL+"/a", Options{Delay: -1})
	require.NoError(t, err)

	_, err = crawler.Run(ctx)
	require.Error(t, err)
	var crawlErr *CrawlError
	assert.ErrorAs(t, err, &crawlErr)
}

func TestNewCrawler_RequiresSeed(t *testing.T) {
	_, err := NewCrawler("", Options{})
	require.Error(t, err)
}

func TestSaveRecords_RoundTrip(t *testing.T) {
	records := []types.ContentRecord{
		{Link: "https://example.edu/a", SiteTitle: "A", Header: "H", Content: longBody},
	}

	path := filepath.Join(t.TempDir(), types.CorpusFilename("test"))
	require.NoError(t, SaveRecords(path, records))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var loaded []types.ContentRecord
	require.NoError(t, json.Unmarshal(data, &loaded))
	assert.Equal(t, records, loaded)
}

func TestNeedsBrowserRender_ScriptShell(t *testing.T) {
	// A client-side-rendered shell: plenty of markup, no visible text.
	shell := `<html><head>
        <title>Sustainability</title>
        <link rel="stylesheet" href="/assets/app.0f3a9c.css">
        <script src="/assets/vendor.4b21d8.js"></script>
        <script src="/assets/app.9e77aa.js"></script>
        <meta name="viewport" content="width=device-width, initial-scale=1">
        <meta property="og:title" content="Sustainability at UMD">
        <meta property="og:description" content="Loading...">
    </head><body><div id="root"></div></body></html>`

	doc := mustParse(t, shell)
	assert.True(t, needsBrowserRender(doc),
		"markup-heavy shell with an empty body must trigger the browser fallback")
}

func TestNeedsBrowserRender_ContentRichPage(t *testing.T) {
	doc := mustParse(t, "<html><body><main>"+strings.Repeat("<p>"+longBody+"</p>", 8)+"</main></body></html>")
	assert.False(t, needsBrowserRender(doc))
}
