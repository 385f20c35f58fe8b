// Package ingestion loads crawled corpus files and pushes their records
// into the vector store. It is the offline half of the system: the online
// query path never touches it.
package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/jonathan/sustainability-chatbot/internal/schemas"
	"github.com/jonathan/sustainability-chatbot/internal/types"
)

// RecordSchemaPath is the repo-relative path of the corpus file schema.
const RecordSchemaPath = "schemas/content_record.schema.json"

// IngestError represents a failed corpus ingestion.
type IngestError struct {
	File    string
	Message string
	Cause   error
}

func (e *IngestError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ingest error for %s: %s: %v", e.File, e.Message, e.Cause)
	}
	return fmt.Sprintf("ingest error for %s: %s", e.File, e.Message)
}

func (e *IngestError) Unwrap() error {
	return e.Cause
}

// Upserter is the slice of the vector store ingestion needs.
type Upserter interface {
	UpsertRecords(ctx context.Context, source string, records []types.ContentRecord) error
}

// Options configures corpus ingestion.
type Options struct {
	// SchemaPath points at the corpus JSON schema. Empty skips validation.
	SchemaPath string
	// Verbose enables per-file logging.
	Verbose bool
}

// IngestFiles loads each corpus file and upserts its records under the
// source name taken from the filename. A filename that does not follow the
// umd_{source}_data.json convention is a hard error: it means the corpus
// was built incorrectly, and silently skipping it would hide that.
// Returns the total number of records ingested.
func IngestFiles(ctx context.Context, store Upserter, paths []string, opts Options) (int, error) {
	total := 0
	for _, path := range paths {
		n, err := ingestFile(ctx, store, path, opts)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

func ingestFile(ctx context.Context, store Upserter, path string, opts Options) (int, error) {
	source, err := types.ParseCorpusFilename(filepath.Base(path))
	if err != nil {
		return 0, &IngestError{File: path, Message: "bad corpus filename", Cause: err}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, &IngestError{File: path, Message: "failed to read file", Cause: err}
	}

	if opts.SchemaPath != "" {
		if err := schemas.ValidateBytes(opts.SchemaPath, data); err != nil {
			return 0, &IngestError{File: path, Message: "corpus file failed schema validation", Cause: err}
		}
	}

	var records []types.ContentRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return 0, &IngestError{File: path, Message: "failed to parse records", Cause: err}
	}

	if opts.Verbose {
		log.Printf("[INGEST] %s: embedding and upserting %d records from source %q", path, len(records), source)
	}
	if err := store.UpsertRecords(ctx, source, records); err != nil {
		return 0, &IngestError{File: path, Message: "failed to upsert records", Cause: err}
	}
	return len(records), nil
}
