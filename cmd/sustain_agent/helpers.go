package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/sustainability-chatbot/internal/llm"
	"github.com/jonathan/sustainability-chatbot/internal/vectorstore"
)

// resolveKey returns the flag value if set, otherwise the environment
// variable.
func resolveKey(flagValue, envVar string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(envVar)
}

// newLLMClient creates a Gemini client from a flag or the GEMINI_API_KEY
// environment variable.
func newLLMClient(ctx context.Context, apiKeyFlag string) (llm.Client, error) {
	apiKey := resolveKey(apiKeyFlag, "GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("API key required: set --api-key flag or GEMINI_API_KEY environment variable")
	}
	return llm.NewClient(ctx, nil, apiKey)
}

// newStore creates a vector store from flags or the PINECONE_HOST and
// PINECONE_API_KEY environment variables.
func newStore(hostFlag, apiKeyFlag string, embedder vectorstore.Embedder) (*vectorstore.Store, error) {
	host := resolveKey(hostFlag, "PINECONE_HOST")
	if host == "" {
		return nil, fmt.Errorf("index host required: set --pinecone-host flag or PINECONE_HOST environment variable")
	}
	apiKey := resolveKey(apiKeyFlag, "PINECONE_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("index API key required: set --pinecone-api-key flag or PINECONE_API_KEY environment variable")
	}

	client := vectorstore.NewClient(vectorstore.Config{Host: host, APIKey: apiKey})
	return vectorstore.NewStore(client, embedder), nil
}
