package rag

import "github.com/jonathan/sustainability-chatbot/internal/vectorstore"

// Tracer receives hooks around each answer so callers can observe the
// retrieval pipeline without the pipeline knowing how results are shown.
type Tracer interface {
	// QueryStarted fires before retrieval with the raw user question.
	QueryStarted(query string)
	// MatchesRetrieved fires after retrieval with the ranked matches that
	// will feed the prompt.
	MatchesRetrieved(matches []vectorstore.Match)
	// AnswerGenerated fires after the model responds.
	AnswerGenerated(answer string)
}

type noopTracer struct{}

func (noopTracer) QueryStarted(string)                  {}
func (noopTracer) MatchesRetrieved([]vectorstore.Match) {}
func (noopTracer) AnswerGenerated(string)               {}

// NopTracer returns a tracer that discards every event.
func NopTracer() Tracer {
	return noopTracer{}
}
