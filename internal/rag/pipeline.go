// Package rag implements the retrieval-augmented answer pipeline: embed
// the question, pull the closest context from the vector store, and ask
// the answering model with that context inlined.
package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/sustainability-chatbot/internal/llm"
	"github.com/jonathan/sustainability-chatbot/internal/vectorstore"
)

// DefaultTopK is how many context matches feed the prompt when the caller
// does not choose.
const DefaultTopK = 10

// PipelineError represents a failure while answering a question.
type PipelineError struct {
	Message string
	Cause   error
}

func (e *PipelineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("pipeline error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("pipeline error: %s", e.Message)
}

func (e *PipelineError) Unwrap() error {
	return e.Cause
}

// Retriever is the slice of the vector store the pipeline needs.
type Retriever interface {
	Query(ctx context.Context, queryText string, topK int, namespaces []string) ([]vectorstore.Match, error)
}

// Options tunes a single answer.
type Options struct {
	// TopK is the number of matches to retrieve. Zero means DefaultTopK.
	TopK int
	// ScoreThreshold drops matches scoring below it. Zero keeps everything.
	ScoreThreshold float64
	// IncludeMatches returns the retrieved matches alongside the answer.
	IncludeMatches bool
}

// Result is an answered question.
type Result struct {
	Answer  string              `json:"answer"`
	Matches []vectorstore.Match `json:"matches,omitempty"`
}

// Pipeline answers questions over the stored corpus.
type Pipeline struct {
	client    llm.Client
	retriever Retriever
	tracer    Tracer
}

// NewPipeline creates an answer pipeline. A nil tracer disables tracing.
func NewPipeline(client llm.Client, retriever Retriever, tracer Tracer) *Pipeline {
	if tracer == nil {
		tracer = NopTracer()
	}
	return &Pipeline{client: client, retriever: retriever, tracer: tracer}
}

// Answer retrieves context for the question and generates an answer from
// it. Retrieval spans both crawled pages and user facts, ranked together
// by similarity.
func (p *Pipeline) Answer(ctx context.Context, question string, opts Options) (*Result, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, &PipelineError{Message: "question is empty"}
	}

	topK := opts.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}

	p.tracer.QueryStarted(question)

	matches, err := p.retriever.Query(ctx, question, topK, nil)
	if err != nil {
		return nil, &PipelineError{Message: "retrieval failed", Cause: err}
	}
	matches = filterByScore(matches, opts.ScoreThreshold)
	p.tracer.MatchesRetrieved(matches)

	prompt := BuildPrompt(question, matches)
	answer, err := p.client.GenerateContent(ctx, prompt, llm.TierAnswer)
	if err != nil {
		return nil, &PipelineError{Message: "generation failed", Cause: err}
	}
	answer = strings.TrimSpace(answer)
	p.tracer.AnswerGenerated(answer)

	result := &Result{Answer: answer}
	if opts.IncludeMatches {
		result.Matches = matches
	}
	return result, nil
}

// filterByScore keeps matches at or above the threshold, preserving rank
// order. A zero threshold keeps everything.
func filterByScore(matches []vectorstore.Match, threshold float64) []vectorstore.Match {
	if threshold <= 0 {
		return matches
	}
	kept := make([]vectorstore.Match, 0, len(matches))
	for _, match := range matches {
		if match.Score >= threshold {
			kept = append(kept, match)
		}
	}
	return kept
}
