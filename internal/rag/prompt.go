package rag

import (
	"fmt"
	"strings"

	"github.com/jonathan/sustainability-chatbot/internal/prompts"
	"github.com/jonathan/sustainability-chatbot/internal/vectorstore"
)

// BuildPrompt assembles the answer prompt from the instruction block, the
// retrieved context, and the user's question. Crawled records carry their
// page title and section header so the model can attribute what it reads;
// user facts are bare text.
func BuildPrompt(question string, matches []vectorstore.Match) string {
	var b strings.Builder
	b.WriteString(prompts.MustGet("rag.json", "model-instruction"))
	b.WriteString("\n\nContext:\n")

	for _, match := range matches {
		if match.Namespace == vectorstore.NamespaceFileData {
			fmt.Fprintf(&b, "Site Title: %s\n", metadataString(match.Metadata, "Site_Title"))
			fmt.Fprintf(&b, "Header: %s\n", metadataString(match.Metadata, "Header"))
		}
		fmt.Fprintf(&b, "Text: %s\n\n", matchText(match))
	}

	fmt.Fprintf(&b, "Question: %s\nAnswer:", question)
	return b.String()
}

// matchText returns the body text of a match regardless of which namespace
// it came from. Crawled records store it under Content, user facts under
// text.
func matchText(match vectorstore.Match) string {
	if content := metadataString(match.Metadata, "Content"); content != "" {
		return content
	}
	return metadataString(match.Metadata, "text")
}

func metadataString(metadata map[string]any, key string) string {
	if metadata == nil {
		return ""
	}
	value, _ := metadata[key].(string)
	return value
}
