package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/sustainability-chatbot/internal/observability"
	"github.com/jonathan/sustainability-chatbot/internal/rag"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a question using the stored corpus",
	Long: `Embeds the question, retrieves the closest context from both the crawled
corpus and user facts, and generates an answer grounded in that context.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

var (
	askAPIKey         string
	askPineconeHost   string
	askPineconeAPIKey string
	askTopK           int
	askThreshold      float64
	askVerbose        bool
)

func init() {
	askCmd.Flags().StringVar(&askAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	askCmd.Flags().StringVar(&askPineconeHost, "pinecone-host", "", "Pinecone index host URL (overrides PINECONE_HOST env var)")
	askCmd.Flags().StringVar(&askPineconeAPIKey, "pinecone-api-key", "", "Pinecone API key (overrides PINECONE_API_KEY env var)")
	askCmd.Flags().IntVar(&askTopK, "top-k", 0, "Context matches to retrieve (0 = default)")
	askCmd.Flags().Float64Var(&askThreshold, "threshold", 0, "Minimum similarity score to keep a match")
	askCmd.Flags().BoolVarP(&askVerbose, "verbose", "v", false, "Show retrieved context and scores")

	rootCmd.AddCommand(askCmd)
}

func runAsk(_ *cobra.Command, args []string) error {
	ctx := context.Background()
	question := strings.Join(args, " ")

	client, err := newLLMClient(ctx, askAPIKey)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	store, err := newStore(askPineconeHost, askPineconeAPIKey, client)
	if err != nil {
		return err
	}

	var tracer rag.Tracer
	if askVerbose {
		tracer = observability.NewPrinter(os.Stdout)
	}
	pipeline := rag.NewPipeline(client, store, tracer)

	result, err := pipeline.Answer(ctx, question, rag.Options{
		TopK:           askTopK,
		ScoreThreshold: askThreshold,
	})
	if err != nil {
		return err
	}

	fmt.Println(result.Answer)
	return nil
}
