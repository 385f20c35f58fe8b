package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/sustainability-chatbot/internal/ingestion"
	"github.com/jonathan/sustainability-chatbot/internal/schemas"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [corpus files]",
	Short: "Embed corpus files and upsert them into the vector store",
	Long: `Validates each corpus file against the content record schema, embeds every
record, and upserts the vectors into the index under the source name taken
from the filename (umd_{source}_data.json).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

var (
	ingestAPIKey         string
	ingestPineconeHost   string
	ingestPineconeAPIKey string
	ingestSkipValidation bool
	ingestVerbose        bool
)

func init() {
	ingestCmd.Flags().StringVar(&ingestAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	ingestCmd.Flags().StringVar(&ingestPineconeHost, "pinecone-host", "", "Pinecone index host URL (overrides PINECONE_HOST env var)")
	ingestCmd.Flags().StringVar(&ingestPineconeAPIKey, "pinecone-api-key", "", "Pinecone API key (overrides PINECONE_API_KEY env var)")
	ingestCmd.Flags().BoolVar(&ingestSkipValidation, "skip-validation", false, "Skip schema validation of corpus files")
	ingestCmd.Flags().BoolVarP(&ingestVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	client, err := newLLMClient(ctx, ingestAPIKey)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	store, err := newStore(ingestPineconeHost, ingestPineconeAPIKey, client)
	if err != nil {
		return err
	}

	opts := ingestion.Options{Verbose: ingestVerbose}
	if !ingestSkipValidation {
		opts.SchemaPath = schemas.ResolveSchemaPath(ingestion.RecordSchemaPath)
	}

	total, err := ingestion.IngestFiles(ctx, store, args, opts)
	if err != nil {
		return err
	}

	fmt.Printf("Ingested %d records from %d files\n", total, len(args))
	return nil
}
