package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jonathan/sustainability-chatbot/internal/facts"
	"github.com/jonathan/sustainability-chatbot/internal/rag"
	"github.com/jonathan/sustainability-chatbot/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes question answering and fact management endpoints.`,
	RunE:  runServe,
}

var (
	serveAddr           string
	serveAPIKey         string
	servePineconeHost   string
	servePineconeAPIKey string
	serveCounterFile    string
	serveDatabaseURL    string
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Address to listen on")
	serveCmd.Flags().StringVar(&serveAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	serveCmd.Flags().StringVar(&servePineconeHost, "pinecone-host", "", "Pinecone index host URL (overrides PINECONE_HOST env var)")
	serveCmd.Flags().StringVar(&servePineconeAPIKey, "pinecone-api-key", "", "Pinecone API key (overrides PINECONE_API_KEY env var)")
	serveCmd.Flags().StringVar(&serveCounterFile, "counter-file", "own_data_id_count.txt", "File path for the fact id counter")
	serveCmd.Flags().StringVar(&serveDatabaseURL, "db-url", "", "PostgreSQL URL for a shared fact counter (overrides --counter-file, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	client, err := newLLMClient(ctx, serveAPIKey)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	store, err := newStore(servePineconeHost, servePineconeAPIKey, client)
	if err != nil {
		return err
	}

	var counter facts.Counter
	if databaseURL := resolveKey(serveDatabaseURL, "DATABASE_URL"); databaseURL != "" {
		pgCounter, err := facts.NewPostgresCounter(ctx, databaseURL)
		if err != nil {
			return err
		}
		defer pgCounter.Close()
		counter = pgCounter
	} else {
		counter = facts.NewFileCounter(serveCounterFile)
	}

	pipeline := rag.NewPipeline(client, store, nil)
	factService := facts.NewService(client, store, counter)

	srv := server.New(server.Config{Addr: serveAddr}, pipeline, factService)
	return srv.Start()
}
