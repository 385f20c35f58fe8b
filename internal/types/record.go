// Package types defines the shared data model for the sustainability chatbot:
// content records extracted from crawled pages and the corpus file naming
// convention used between the crawler and the ingestion pipeline.
package types

import (
	"fmt"
	"regexp"
)

// ContentRecord is the atomic unit of extracted knowledge. Every record
// belongs to exactly one source page. The JSON field names are the corpus
// wire format shared with the ingestion pipeline.
type ContentRecord struct {
	Link      string `json:"Link"`
	SiteTitle string `json:"Site_Title"`
	Header    string `json:"Header"`
	Content   string `json:"Content"`
}

// PageTemplate is a record skeleton pre-populated with the page-level fields.
// Extraction branches call Fresh to get an independent copy before filling
// Header and Content, so two branches never share a record.
type PageTemplate struct {
	Link      string
	SiteTitle string
}

// Fresh returns a new record carrying the template's page-level fields.
func (t PageTemplate) Fresh() ContentRecord {
	return ContentRecord{
		Link:      t.Link,
		SiteTitle: t.SiteTitle,
	}
}

var corpusFileRe = regexp.MustCompile(`^umd_([A-Za-z0-9]+)_data\.json$`)

// CorpusFilenameError indicates a corpus file that does not follow the
// umd_{source}_data.json naming convention. This is a hard ingestion error:
// a bad name means the corpus was built incorrectly.
type CorpusFilenameError struct {
	Filename string
}

func (e *CorpusFilenameError) Error() string {
	return fmt.Sprintf("corpus filename %q does not match umd_{source}_data.json", e.Filename)
}

// ParseCorpusFilename extracts the source name from a corpus file name
// (base name, not a path). Returns a CorpusFilenameError on mismatch.
func ParseCorpusFilename(filename string) (string, error) {
	m := corpusFileRe.FindStringSubmatch(filename)
	if m == nil {
		return "", &CorpusFilenameError{Filename: filename}
	}
	return m[1], nil
}

// CorpusFilename builds the canonical corpus file name for a source.
func CorpusFilename(source string) string {
	return fmt.Sprintf("umd_%s_data.json", source)
}
