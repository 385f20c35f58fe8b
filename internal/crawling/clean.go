package crawling

import (
	"strings"
	"unicode/utf8"

	"github.com/jonathan/sustainability-chatbot/internal/types"
)

// MinContentLength is the minimum Content length for a record to be kept.
// Shorter records are nav fragments or empty sections, not knowledge.
const MinContentLength = 50

// CleanRecords filters and normalizes extracted records: records whose
// Content is shorter than MinContentLength are dropped and non-breaking
// spaces are replaced with ordinary spaces. The input slice is not mutated;
// order is preserved.
func CleanRecords(records []types.ContentRecord) []types.ContentRecord {
	cleaned := make([]types.ContentRecord, 0, len(records))
	for _, rec := range records {
		if utf8.RuneCountInString(rec.Content) < MinContentLength {
			continue
		}
		rec.Content = strings.ReplaceAll(rec.Content, " ", " ")
		cleaned = append(cleaned, rec)
	}
	return cleaned
}
