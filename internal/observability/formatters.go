// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/sustainability-chatbot/internal/facts"
	"github.com/jonathan/sustainability-chatbot/internal/vectorstore"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode. It implements the
// answer pipeline's tracing hooks, so wiring a Printer into the pipeline
// shows each retrieval as it happens.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCrawlSummary outputs the outcome of a finished crawl.
func (p *Printer) PrintCrawlSummary(seedURL string, visited, kept int) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Seed:     %s\n", seedURL))
	sb.WriteString(fmt.Sprintf("Visited:  %d pages\n", visited))
	sb.WriteString(fmt.Sprintf("Records:  %d kept after cleaning", kept))
	p.printBox("CRAWL SUMMARY", sb.String())
}

// QueryStarted outputs the question about to be answered.
func (p *Printer) QueryStarted(query string) {
	p.printBox("QUESTION", query)
}

// MatchesRetrieved outputs the ranked context matches feeding the prompt.
func (p *Printer) MatchesRetrieved(matches []vectorstore.Match) {
	if len(matches) == 0 {
		p.printBox("RETRIEVED CONTEXT", "No matches above threshold")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Retrieved %d matches:\n\n", len(matches)))

	count := min(len(matches), maxItemsToShow)
	for i := 0; i < count; i++ {
		match := matches[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, match.ID))
		sb.WriteString(fmt.Sprintf("    Score: %.3f  Namespace: %s\n", match.Score, match.Namespace))
		if title, ok := match.Metadata["Site_Title"].(string); ok && title != "" {
			if len(title) > 45 {
				title = title[:42] + "..."
			}
			sb.WriteString(fmt.Sprintf("    Title: %s\n", title))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(matches) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more matches", len(matches)-maxItemsToShow))
	}

	p.printBox("RETRIEVED CONTEXT", sb.String())
}

// AnswerGenerated outputs the model's answer.
func (p *Printer) AnswerGenerated(answer string) {
	p.printBox("ANSWER", answer)
}

// PrintFacts outputs stored user facts as an id and text listing.
func (p *Printer) PrintFacts(stored []facts.Fact) {
	if len(stored) == 0 {
		p.printBox("STORED FACTS", "No facts stored")
		return
	}

	var sb strings.Builder
	for i, fact := range stored {
		text := fact.Text
		if len(text) > 48 {
			text = text[:45] + "..."
		}
		sb.WriteString(fmt.Sprintf("#%d  %s", fact.ID, text))
		if i < len(stored)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("STORED FACTS", sb.String())
}
