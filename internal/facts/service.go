// Package facts manages user-contributed sustainability facts. A fact is
// screened by the checking model before it is admitted into the vector
// store, so the retrieval corpus only grows with on-topic material.
package facts

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jonathan/sustainability-chatbot/internal/llm"
	"github.com/jonathan/sustainability-chatbot/internal/prompts"
	"github.com/jonathan/sustainability-chatbot/internal/vectorstore"
)

// factIDPrefix is the id format shared with the vector store namespace.
const factIDPrefix = "own_data_"

// Store is the slice of the vector store the fact service needs.
type Store interface {
	UpsertFact(ctx context.Context, text string, id int) error
	FetchAll(ctx context.Context, namespace string) (map[string]map[string]any, error)
	DeleteByID(ctx context.Context, id, namespace string) error
}

// Fact is a stored user fact.
type Fact struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// AddResult reports the outcome of submitting a fact. When the fact is
// rejected, Message carries the checking model's response verbatim so the
// user sees why.
type AddResult struct {
	Accepted bool   `json:"accepted"`
	ID       int    `json:"id,omitempty"`
	Message  string `json:"message,omitempty"`
}

// Service screens, stores, lists, and deletes user facts.
type Service struct {
	client  llm.Client
	store   Store
	counter Counter
}

// NewService creates a fact service.
func NewService(client llm.Client, store Store, counter Counter) *Service {
	return &Service{client: client, store: store, counter: counter}
}

// Add screens the fact with the checking model and, if accepted, allocates
// an id and upserts it. The model accepts by answering exactly "yes";
// anything else is treated as a rejection and returned to the caller.
func (s *Service) Add(ctx context.Context, text string) (*AddResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &FactError{Message: "fact text is empty"}
	}

	prompt := prompts.Format(prompts.MustGet("rag.json", "fact-check"), map[string]string{
		"Fact": text,
	})
	verdict, err := s.client.GenerateContent(ctx, prompt, llm.TierCheck)
	if err != nil {
		return nil, &FactError{Message: "fact check failed", Cause: err}
	}

	if !strings.EqualFold(strings.TrimSpace(verdict), "yes") {
		return &AddResult{Accepted: false, Message: strings.TrimSpace(verdict)}, nil
	}

	id, err := s.counter.Next(ctx)
	if err != nil {
		return nil, &FactError{Message: "failed to allocate fact id", Cause: err}
	}
	if err := s.store.UpsertFact(ctx, text, id); err != nil {
		return nil, &FactError{Message: "failed to store fact", Cause: err}
	}
	return &AddResult{Accepted: true, ID: id}, nil
}

// List returns every stored fact ordered by id.
func (s *Service) List(ctx context.Context) ([]Fact, error) {
	all, err := s.store.FetchAll(ctx, vectorstore.NamespaceOwnData)
	if err != nil {
		return nil, &FactError{Message: "failed to fetch facts", Cause: err}
	}

	result := make([]Fact, 0, len(all))
	for id, metadata := range all {
		numeric, ok := parseFactID(id)
		if !ok {
			continue
		}
		text, _ := metadata["text"].(string)
		result = append(result, Fact{ID: numeric, Text: text})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Delete removes a fact by id. Deleting an unknown id succeeds quietly.
func (s *Service) Delete(ctx context.Context, id int) error {
	vectorID := fmt.Sprintf("%s%d", factIDPrefix, id)
	if err := s.store.DeleteByID(ctx, vectorID, vectorstore.NamespaceOwnData); err != nil {
		return &FactError{Message: fmt.Sprintf("failed to delete fact %d", id), Cause: err}
	}
	return nil
}

func parseFactID(vectorID string) (int, bool) {
	if !strings.HasPrefix(vectorID, factIDPrefix) {
		return 0, false
	}
	numeric, err := strconv.Atoi(strings.TrimPrefix(vectorID, factIDPrefix))
	if err != nil {
		return 0, false
	}
	return numeric, true
}
