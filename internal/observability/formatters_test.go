package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/sustainability-chatbot/internal/facts"
	"github.com/jonathan/sustainability-chatbot/internal/vectorstore"
)

func TestPrintCrawlSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCrawlSummary("https://sustainability.umd.edu/", 42, 130)
	output := buf.String()

	assert.Contains(t, output, "CRAWL SUMMARY")
	assert.Contains(t, output, "https://sustainability.umd.edu/")
	assert.Contains(t, output, "42 pages")
	assert.Contains(t, output, "130 kept")
}

func TestQueryStarted(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.QueryStarted("Where can I compost?")

	assert.Contains(t, buf.String(), "QUESTION")
	assert.Contains(t, buf.String(), "Where can I compost?")
}

func TestMatchesRetrieved(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.MatchesRetrieved([]vectorstore.Match{
		{
			ID:        "recycling_0",
			Score:     0.912,
			Namespace: vectorstore.NamespaceFileData,
			Metadata:  map[string]any{"Site_Title": "Recycling | Sustainability"},
		},
		{
			ID:        "own_data_3",
			Score:     0.701,
			Namespace: vectorstore.NamespaceOwnData,
		},
	})
	output := buf.String()

	assert.Contains(t, output, "RETRIEVED CONTEXT")
	assert.Contains(t, output, "recycling_0")
	assert.Contains(t, output, "0.912")
	assert.Contains(t, output, "Recycling | Sustainability")
	assert.Contains(t, output, "own_data_3")
}

func TestMatchesRetrievedTruncatesList(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	matches := make([]vectorstore.Match, 8)
	for i := range matches {
		matches[i] = vectorstore.Match{ID: "id", Score: 0.5, Namespace: vectorstore.NamespaceFileData}
	}
	p.MatchesRetrieved(matches)

	assert.Contains(t, buf.String(), "and 3 more matches")
}

func TestMatchesRetrievedEmpty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.MatchesRetrieved(nil)

	assert.Contains(t, buf.String(), "No matches above threshold")
}

func TestAnswerGenerated(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.AnswerGenerated("Composting bins are in every dining hall.")

	assert.Contains(t, buf.String(), "ANSWER")
	assert.Contains(t, buf.String(), "Composting bins")
}

func TestPrintFacts(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintFacts([]facts.Fact{
		{ID: 0, Text: "The union runs on solar power."},
		{ID: 3, Text: strings.Repeat("long ", 20)},
	})
	output := buf.String()

	assert.Contains(t, output, "STORED FACTS")
	assert.Contains(t, output, "#0  The union runs on solar power.")
	assert.Contains(t, output, "#3")
	assert.Contains(t, output, "...")
}

func TestPrintFactsEmpty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintFacts(nil)

	assert.Contains(t, buf.String(), "No facts stored")
}
