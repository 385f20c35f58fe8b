package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/sustainability-chatbot/internal/facts"
	"github.com/jonathan/sustainability-chatbot/internal/observability"
)

var factsCmd = &cobra.Command{
	Use:   "facts",
	Short: "Manage user-contributed sustainability facts",
	Long: `Facts are screened by the checking model before they are stored. Accepted
facts join the retrieval corpus and can show up as context for answers.`,
}

var factsAddCmd = &cobra.Command{
	Use:   "add [fact text]",
	Short: "Submit a fact for screening and storage",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFactsAdd,
}

var factsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored facts",
	RunE:  runFactsList,
}

var factsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a fact by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runFactsDelete,
}

var (
	factsAPIKey         string
	factsPineconeHost   string
	factsPineconeAPIKey string
	factsCounterFile    string
	factsDatabaseURL    string
)

func init() {
	factsCmd.PersistentFlags().StringVar(&factsAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	factsCmd.PersistentFlags().StringVar(&factsPineconeHost, "pinecone-host", "", "Pinecone index host URL (overrides PINECONE_HOST env var)")
	factsCmd.PersistentFlags().StringVar(&factsPineconeAPIKey, "pinecone-api-key", "", "Pinecone API key (overrides PINECONE_API_KEY env var)")
	factsCmd.PersistentFlags().StringVar(&factsCounterFile, "counter-file", "own_data_id_count.txt", "File path for the fact id counter")
	factsCmd.PersistentFlags().StringVar(&factsDatabaseURL, "db-url", "", "PostgreSQL URL for a shared fact counter (overrides --counter-file, defaults to DATABASE_URL env var)")

	factsCmd.AddCommand(factsAddCmd)
	factsCmd.AddCommand(factsListCmd)
	factsCmd.AddCommand(factsDeleteCmd)
	rootCmd.AddCommand(factsCmd)
}

// newFactService wires the llm client, vector store, and counter together.
// The returned cleanup must be called when done.
func newFactService(ctx context.Context) (*facts.Service, func(), error) {
	client, err := newLLMClient(ctx, factsAPIKey)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { _ = client.Close() }

	store, err := newStore(factsPineconeHost, factsPineconeAPIKey, client)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	var counter facts.Counter
	if databaseURL := resolveKey(factsDatabaseURL, "DATABASE_URL"); databaseURL != "" {
		pgCounter, err := facts.NewPostgresCounter(ctx, databaseURL)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		counter = pgCounter
		cleanup = func() {
			pgCounter.Close()
			_ = client.Close()
		}
	} else {
		counter = facts.NewFileCounter(factsCounterFile)
	}

	return facts.NewService(client, store, counter), cleanup, nil
}

func runFactsAdd(_ *cobra.Command, args []string) error {
	ctx := context.Background()
	text := strings.Join(args, " ")

	service, cleanup, err := newFactService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := service.Add(ctx, text)
	if err != nil {
		return err
	}

	if result.Accepted {
		fmt.Printf("Fact stored with id %d\n", result.ID)
	} else {
		fmt.Printf("Fact rejected: %s\n", result.Message)
	}
	return nil
}

func runFactsList(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	service, cleanup, err := newFactService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	listed, err := service.List(ctx)
	if err != nil {
		return err
	}

	observability.NewPrinter(os.Stdout).PrintFacts(listed)
	return nil
}

func runFactsDelete(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	id, err := strconv.Atoi(args[0])
	if err != nil || id < 0 {
		return fmt.Errorf("fact id must be a non-negative integer, got %q", args[0])
	}

	service, cleanup, err := newFactService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := service.Delete(ctx, id); err != nil {
		return err
	}

	fmt.Printf("Deleted fact %d\n", id)
	return nil
}
