package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/sustainability-chatbot/internal/config"
	"github.com/jonathan/sustainability-chatbot/internal/crawling"
	"github.com/jonathan/sustainability-chatbot/internal/observability"
	"github.com/jonathan/sustainability-chatbot/internal/types"
)

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Crawl a sustainability website and build a text corpus",
	Long: `Crawls a website starting from a seed URL, staying within a scope prefix,
extracts content records from each page, and writes them to a corpus JSON file
named umd_{source}_data.json.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runCrawl,
}

var (
	crawlConfigPath  string
	crawlSeedURL     string
	crawlScopePrefix string
	crawlSource      string
	crawlMaxPages    int
	crawlDelay       float64
	crawlOutputDir   string
	crawlUseBrowser  bool
	crawlVerbose     bool
)

func init() {
	crawlCmd.Flags().StringVar(&crawlConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	crawlCmd.Flags().StringVarP(&crawlSeedURL, "seed-url", "u", "", "URL the crawl starts from")
	crawlCmd.Flags().StringVar(&crawlScopePrefix, "scope-prefix", "", "URL prefix the crawl stays within (defaults to the seed URL)")
	crawlCmd.Flags().StringVarP(&crawlSource, "source", "s", "", "Corpus source name used in the output filename (required)")
	crawlCmd.Flags().IntVar(&crawlMaxPages, "max-pages", 0, "Maximum pages to crawl (0 = unlimited)")
	crawlCmd.Flags().Float64Var(&crawlDelay, "delay", 0, "Seconds between page fetches (0 = default 1s)")
	crawlCmd.Flags().StringVarP(&crawlOutputDir, "out", "o", ".", "Output directory for the corpus file")
	crawlCmd.Flags().BoolVar(&crawlUseBrowser, "use-browser", false, "Use headless browser for script-rendered pages (requires Chrome)")
	crawlCmd.Flags().BoolVarP(&crawlVerbose, "verbose", "v", false, "Print detailed debug information")

	if err := crawlCmd.MarkFlagRequired("source"); err != nil {
		panic(fmt.Sprintf("failed to mark source flag as required: %v", err))
	}

	rootCmd.AddCommand(crawlCmd)
}

func runCrawl(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadCrawlConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.SeedURL == "" {
		return fmt.Errorf("seed URL required: set --seed-url flag or seed_url in the config file")
	}

	if err := os.MkdirAll(crawlOutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", crawlOutputDir, err)
	}

	delay := time.Duration(cfg.CrawlDelay * float64(time.Second))
	crawler, err := crawling.NewCrawler(cfg.SeedURL, crawling.Options{
		ScopePrefix: cfg.ScopePrefix,
		MaxPages:    cfg.MaxPages,
		Delay:       delay,
		UseBrowser:  cfg.UseBrowser,
		Verbose:     cfg.Verbose,
	})
	if err != nil {
		return err
	}

	records, err := crawler.Run(ctx)
	if err != nil {
		return fmt.Errorf("crawl failed: %w", err)
	}

	outPath := filepath.Join(crawlOutputDir, types.CorpusFilename(crawlSource))
	if err := crawling.SaveRecords(outPath, records); err != nil {
		return err
	}

	if cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintCrawlSummary(cfg.SeedURL, crawler.Visited(), len(records))
	}
	fmt.Printf("Wrote %d records to %s\n", len(records), outPath)
	return nil
}

// loadCrawlConfig merges the optional config file with explicitly set CLI
// flags; flags win.
func loadCrawlConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if crawlConfigPath != "" {
		loaded, err := config.LoadConfig(crawlConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
	}

	if cmd.Flags().Changed("seed-url") {
		cfg.SeedURL = crawlSeedURL
	}
	if cmd.Flags().Changed("scope-prefix") {
		cfg.ScopePrefix = crawlScopePrefix
	}
	if cmd.Flags().Changed("max-pages") {
		cfg.MaxPages = crawlMaxPages
	}
	if cmd.Flags().Changed("delay") {
		cfg.CrawlDelay = crawlDelay
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = crawlUseBrowser
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = crawlVerbose
	}

	return cfg, nil
}
