// Package crawling builds the sustainability corpus: it discovers in-scope
// links, extracts normalized content records from heterogeneous page layouts,
// filters noise, and drives the site traversal.
package crawling

import "fmt"

// CrawlError represents a general crawling failure
type CrawlError struct {
	Message string
	Cause   error
}

func (e *CrawlError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("crawl error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("crawl error: %s", e.Message)
}

func (e *CrawlError) Unwrap() error {
	return e.Cause
}

// LinkDiscoveryError represents a failure in discovering links from a page
type LinkDiscoveryError struct {
	Message string
	Cause   error
}

func (e *LinkDiscoveryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("link discovery error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("link discovery error: %s", e.Message)
}

func (e *LinkDiscoveryError) Unwrap() error {
	return e.Cause
}
