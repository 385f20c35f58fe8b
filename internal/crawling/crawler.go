package crawling

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/sustainability-chatbot/internal/fetch"
	"github.com/jonathan/sustainability-chatbot/internal/types"
)

// DefaultRateLimitDelay is the pause between page fetches, out of courtesy
// to the crawled site.
const DefaultRateLimitDelay = 1 * time.Second

// Options configures a crawl run.
type Options struct {
	// ScopePrefix confines the crawl; links not starting with it are skipped.
	// Defaults to the seed URL.
	ScopePrefix string
	// MaxPages bounds the number of pages fetched. Zero means unbounded,
	// which is safe only on sites with a finite in-scope link set.
	MaxPages int
	// Delay is the pause between fetches. Negative disables the delay.
	Delay time.Duration
	// AssetPrefixes are scope-relative path prefixes that are never followed.
	AssetPrefixes []string
	// UseBrowser renders pages in a headless browser when the plain HTTP
	// response looks like an empty client-side-rendered shell.
	UseBrowser bool
	// Fetch overrides the HTTP fetch options (timeout, user agent).
	Fetch *fetch.Options
	// Verbose enables per-page logging.
	Verbose bool
}

// Crawler traverses one site depth-first from a seed URL, extracting and
// cleaning content records from every reachable in-scope page. A visited
// set guarantees each URL is fetched at most once, which makes the
// traversal finite and cycle-safe. The crawl is sequential; the frontier
// is an explicit stack so a worker pool can replace the loop later.
type Crawler struct {
	seedURL string
	opts    Options

	visited map[string]struct{}
	records []types.ContentRecord
}

// NewCrawler creates a crawler for one run. Crawlers are single-use:
// the visited set and the accumulated records are scoped to one traversal.
func NewCrawler(seedURL string, opts Options) (*Crawler, error) {
	if seedURL == "" {
		return nil, &CrawlError{Message: "no seed URL provided"}
	}
	if opts.ScopePrefix == "" {
		opts.ScopePrefix = seedURL
	}
	if opts.Delay == 0 {
		opts.Delay = DefaultRateLimitDelay
	}
	return &Crawler{
		seedURL: seedURL,
		opts:    opts,
		visited: make(map[string]struct{}),
	}, nil
}

// Run performs the traversal and returns the accumulated records.
// Fetch failures abandon the failed page only; the crawl continues.
func (c *Crawler) Run(ctx context.Context) ([]types.ContentRecord, error) {
	frontier := []string{c.seedURL}
	c.visited[c.seedURL] = struct{}{}

	fetched := 0
	for len(frontier) > 0 {
		if err := ctx.Err(); err != nil {
			return c.records, &CrawlError{Message: "crawl canceled", Cause: err}
		}
		if c.opts.MaxPages > 0 && fetched >= c.opts.MaxPages {
			if c.opts.Verbose {
				log.Printf("[CRAWL] Reached page limit (%d), stopping", c.opts.MaxPages)
			}
			break
		}

		pageURL := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		if fetched > 0 && c.opts.Delay > 0 {
			time.Sleep(c.opts.Delay)
		}

		doc, ok := c.fetchPage(ctx, pageURL)
		fetched++
		if !ok {
			continue
		}

		template := types.PageTemplate{
			Link:      pageURL,
			SiteTitle: strings.TrimSpace(doc.Find("title").First().Text()),
		}
		extracted := ExtractRecords(doc, template)
		cleaned := CleanRecords(extracted)
		c.records = append(c.records, cleaned...)
		if c.opts.Verbose {
			log.Printf("[CRAWL] %s: %d records (%d before cleaning)", pageURL, len(cleaned), len(extracted))
		}

		links, err := DiscoverLinks(doc, pageURL, c.opts.ScopePrefix, c.visited, c.opts.AssetPrefixes)
		if err != nil {
			log.Printf("[CRAWL] Link discovery failed for %s: %v", pageURL, err)
			continue
		}
		// Marking links visited at enqueue time keeps a URL from entering
		// the frontier twice via different pages.
		for link := range links {
			c.visited[link] = struct{}{}
			frontier = append(frontier, link)
		}
	}

	return c.records, nil
}

// fetchPage retrieves and parses one page. Returns ok=false on any failure,
// which the caller treats as an abandoned branch.
func (c *Crawler) fetchPage(ctx context.Context, pageURL string) (*goquery.Document, bool) {
	result, err := fetch.URL(ctx, pageURL, c.opts.Fetch)
	if err != nil {
		log.Printf("[CRAWL] Failed to fetch %s: %v", pageURL, err)
		return nil, false
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(result.HTML))
	if err != nil {
		log.Printf("[CRAWL] Failed to parse %s: %v", pageURL, err)
		return nil, false
	}

	if c.opts.UseBrowser && needsBrowserRender(doc) {
		rendered, err := fetch.WithBrowser(ctx, pageURL, fetch.DefaultRenderTimeout, c.opts.Verbose)
		if err != nil {
			log.Printf("[CRAWL] Browser render failed for %s: %v", pageURL, err)
		} else if renderedDoc, err := goquery.NewDocumentFromReader(strings.NewReader(rendered)); err == nil {
			doc = renderedDoc
		} else {
			log.Printf("[CRAWL] Failed to parse rendered %s: %v", pageURL, err)
		}
	}
	return doc, true
}

// needsBrowserRender feeds the browser heuristic the page's visible text.
// A script-rendered shell is hundreds of bytes of markup with an empty
// body, so the raw HTML length says nothing.
func needsBrowserRender(doc *goquery.Document) bool {
	return fetch.ShouldUseBrowser(doc.Find("body").Text())
}

// Visited reports how many URLs the crawl has fetched or enqueued.
func (c *Crawler) Visited() int {
	return len(c.visited)
}

// SaveRecords writes records to path as an indented UTF-8 JSON array,
// the corpus snapshot format consumed by the ingestion pipeline.
func SaveRecords(path string, records []types.ContentRecord) error {
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return &CrawlError{Message: "failed to marshal records", Cause: err}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &CrawlError{Message: "failed to write records file", Cause: err}
	}
	return nil
}
