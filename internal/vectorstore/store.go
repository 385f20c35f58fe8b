package vectorstore

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/sustainability-chatbot/internal/types"
)

// UpsertBatchSize is the maximum number of vectors per upsert call,
// a limit of the external service.
const UpsertBatchSize = 200

// Embedder converts text into fixed-dimension vectors. The llm client
// satisfies this; tests inject stubs.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
}

// Store combines the embedding service and the vector database into the
// ingestion and retrieval operations the rest of the system uses.
type Store struct {
	client   *Client
	embedder Embedder
}

// NewStore creates a store over an index client and an embedder.
func NewStore(client *Client, embedder Embedder) *Store {
	return &Store{client: client, embedder: embedder}
}

// UpsertRecords embeds the Content of every record in one batch call and
// upserts the vectors into the file_data namespace in chunks of at most
// UpsertBatchSize. Ids are {source}_{index}, so re-ingesting a source
// overwrites its previous vectors instead of duplicating them.
func (s *Store) UpsertRecords(ctx context.Context, source string, records []types.ContentRecord) error {
	if len(records) == 0 {
		return nil
	}

	contents := make([]string, len(records))
	for i, rec := range records {
		contents[i] = rec.Content
	}

	embedded, err := s.embedder.EmbedDocuments(ctx, contents)
	if err != nil {
		return fmt.Errorf("embedding records for %s: %w", source, err)
	}

	vectors := make([]Vector, len(records))
	for i, rec := range records {
		vectors[i] = Vector{
			ID:     fmt.Sprintf("%s_%d", source, i),
			Values: embedded[i],
			Metadata: map[string]any{
				"Link":       rec.Link,
				"Site_Title": rec.SiteTitle,
				"Header":     rec.Header,
				"Content":    rec.Content,
			},
		}
	}

	for start := 0; start < len(vectors); start += UpsertBatchSize {
		stop := start + UpsertBatchSize
		if stop > len(vectors) {
			stop = len(vectors)
		}
		if err := s.client.Upsert(ctx, NamespaceFileData, vectors[start:stop]); err != nil {
			return err
		}
	}
	return nil
}

// UpsertFact embeds a single user-submitted fact and stores it in the
// own_data namespace under the given counter id.
func (s *Store) UpsertFact(ctx context.Context, text string, id int) error {
	embedded, err := s.embedder.EmbedQuery(ctx, text)
	if err != nil {
		return fmt.Errorf("embedding fact: %w", err)
	}

	vector := Vector{
		ID:       fmt.Sprintf("own_data_%d", id),
		Values:   embedded,
		Metadata: map[string]any{"text": text},
	}
	return s.client.Upsert(ctx, NamespaceOwnData, []Vector{vector})
}

// Query embeds the query text once and searches the given namespaces
// jointly: per-namespace results are merged and globally ranked by
// descending score, truncated to topK.
func (s *Store) Query(ctx context.Context, queryText string, topK int, namespaces []string) ([]Match, error) {
	if topK <= 0 {
		return nil, fmt.Errorf("topK must be positive, got %d", topK)
	}
	if len(namespaces) == 0 {
		namespaces = []string{NamespaceFileData, NamespaceOwnData}
	}

	vector, err := s.embedder.EmbedQuery(ctx, queryText)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	results := make([][]Match, len(namespaces))
	g, gctx := errgroup.WithContext(ctx)
	for i, namespace := range namespaces {
		g.Go(func() error {
			matches, err := s.client.Query(gctx, namespace, vector, topK)
			if err != nil {
				return err
			}
			results[i] = matches
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merged []Match
	for _, matches := range results {
		merged = append(merged, matches...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Score > merged[j].Score
	})
	if len(merged) > topK {
		merged = merged[:topK]
	}
	return merged, nil
}

// FetchAll lists then fetches every vector in a namespace and returns an
// id to metadata mapping. Intended for display and debugging.
func (s *Store) FetchAll(ctx context.Context, namespace string) (map[string]map[string]any, error) {
	ids, err := s.client.ListIDs(ctx, namespace)
	if err != nil {
		return nil, err
	}

	all := make(map[string]map[string]any, len(ids))
	// The fetch endpoint caps the number of ids per call.
	const fetchBatchSize = 100
	for start := 0; start < len(ids); start += fetchBatchSize {
		stop := start + fetchBatchSize
		if stop > len(ids) {
			stop = len(ids)
		}
		vectors, err := s.client.Fetch(ctx, namespace, ids[start:stop])
		if err != nil {
			return nil, err
		}
		for id, vec := range vectors {
			all[id] = vec.Metadata
		}
	}
	return all, nil
}

// DeleteByID removes a single vector from a namespace. Deleting a missing
// id is not an error.
func (s *Store) DeleteByID(ctx context.Context, id, namespace string) error {
	return s.client.Delete(ctx, namespace, []string{id})
}
