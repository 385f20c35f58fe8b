package rag

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/sustainability-chatbot/internal/llm"
	"github.com/jonathan/sustainability-chatbot/internal/vectorstore"
)

type stubLLM struct {
	response string
	err      error
	prompts  []string
	tiers    []llm.ModelTier
}

func (s *stubLLM) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	s.prompts = append(s.prompts, prompt)
	s.tiers = append(s.tiers, tier)
	return s.response, s.err
}

func (s *stubLLM) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return nil, errors.New("not implemented")
}

func (s *stubLLM) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	return nil, errors.New("not implemented")
}

func (s *stubLLM) Close() error { return nil }

type stubRetriever struct {
	matches []vectorstore.Match
	err     error
	topK    int
}

func (s *stubRetriever) Query(ctx context.Context, queryText string, topK int, namespaces []string) ([]vectorstore.Match, error) {
	s.topK = topK
	return s.matches, s.err
}

type recordingTracer struct {
	query   string
	matches []vectorstore.Match
	answer  string
}

func (r *recordingTracer) QueryStarted(query string) { r.query = query }

func (r *recordingTracer) MatchesRetrieved(matches []vectorstore.Match) { r.matches = matches }

func (r *recordingTracer) AnswerGenerated(answer string) { r.answer = answer }

func pageMatch(score float64, title, header, content string) vectorstore.Match {
	return vectorstore.Match{
		ID:        "source_0",
		Score:     score,
		Namespace: vectorstore.NamespaceFileData,
		Metadata: map[string]any{
			"Site_Title": title,
			"Header":     header,
			"Content":    content,
		},
	}
}

func factMatch(score float64, text string) vectorstore.Match {
	return vectorstore.Match{
		ID:        "own_data_0",
		Score:     score,
		Namespace: vectorstore.NamespaceOwnData,
		Metadata:  map[string]any{"text": text},
	}
}

func TestAnswer(t *testing.T) {
	client := &stubLLM{response: "Blue bins are for recycling."}
	retriever := &stubRetriever{matches: []vectorstore.Match{
		pageMatch(0.9, "Recycling | Sustainability", "Bins", "Blue bins accept paper and plastic."),
	}}
	tracer := &recordingTracer{}
	pipeline := NewPipeline(client, retriever, tracer)

	result, err := pipeline.Answer(context.Background(), "What are blue bins for?", Options{})
	require.NoError(t, err)
	assert.Equal(t, "Blue bins are for recycling.", result.Answer)
	assert.Nil(t, result.Matches)

	assert.Equal(t, 10, retriever.topK, "default retrieval depth")
	require.Len(t, client.tiers, 1)
	assert.Equal(t, llm.TierAnswer, client.tiers[0])

	assert.Equal(t, "What are blue bins for?", tracer.query)
	assert.Len(t, tracer.matches, 1)
	assert.Equal(t, "Blue bins are for recycling.", tracer.answer)
}

func TestAnswerIncludeMatches(t *testing.T) {
	matches := []vectorstore.Match{pageMatch(0.8, "T", "H", "C")}
	pipeline := NewPipeline(&stubLLM{response: "ok"}, &stubRetriever{matches: matches}, nil)

	result, err := pipeline.Answer(context.Background(), "q", Options{IncludeMatches: true})
	require.NoError(t, err)
	assert.Equal(t, matches, result.Matches)
}

func TestAnswerScoreThreshold(t *testing.T) {
	retriever := &stubRetriever{matches: []vectorstore.Match{
		pageMatch(0.9, "High", "H", "kept content"),
		pageMatch(0.4, "Low", "H", "dropped content"),
	}}
	client := &stubLLM{response: "ok"}
	pipeline := NewPipeline(client, retriever, nil)

	result, err := pipeline.Answer(context.Background(), "q", Options{
		ScoreThreshold: 0.5,
		IncludeMatches: true,
	})
	require.NoError(t, err)
	require.Len(t, result.Matches, 1)
	assert.Equal(t, 0.9, result.Matches[0].Score)

	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "kept content")
	assert.NotContains(t, client.prompts[0], "dropped content")
}

func TestAnswerCustomTopK(t *testing.T) {
	retriever := &stubRetriever{}
	pipeline := NewPipeline(&stubLLM{response: "ok"}, retriever, nil)

	_, err := pipeline.Answer(context.Background(), "q", Options{TopK: 12})
	require.NoError(t, err)
	assert.Equal(t, 12, retriever.topK)
}

func TestAnswerEmptyQuestion(t *testing.T) {
	pipeline := NewPipeline(&stubLLM{}, &stubRetriever{}, nil)
	_, err := pipeline.Answer(context.Background(), "  ", Options{})
	require.Error(t, err)
}

func TestAnswerRetrievalFailure(t *testing.T) {
	retriever := &stubRetriever{err: errors.New("index down")}
	pipeline := NewPipeline(&stubLLM{}, retriever, nil)

	_, err := pipeline.Answer(context.Background(), "q", Options{})
	require.Error(t, err)

	var pipeErr *PipelineError
	require.True(t, errors.As(err, &pipeErr))
	assert.Contains(t, pipeErr.Message, "retrieval")
}

func TestAnswerGenerationFailure(t *testing.T) {
	client := &stubLLM{err: errors.New("model unavailable")}
	pipeline := NewPipeline(client, &stubRetriever{}, nil)

	_, err := pipeline.Answer(context.Background(), "q", Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generation failed")
}

func TestBuildPrompt(t *testing.T) {
	matches := []vectorstore.Match{
		pageMatch(0.9, "Recycling | Sustainability", "Bins", "Blue bins accept paper."),
		factMatch(0.7, "The union runs on solar power."),
	}

	prompt := BuildPrompt("Where does solar power go?", matches)

	assert.Contains(t, prompt, "Site Title: Recycling | Sustainability\n")
	assert.Contains(t, prompt, "Header: Bins\n")
	assert.Contains(t, prompt, "Text: Blue bins accept paper.\n\n")
	assert.Contains(t, prompt, "Text: The union runs on solar power.\n\n")
	assert.Contains(t, prompt, "Question: Where does solar power go?\nAnswer:")

	// Facts carry no page attribution lines.
	assert.Equal(t, 1, strings.Count(prompt, "Site Title:"))
	assert.Equal(t, 1, strings.Count(prompt, "Header:"))
}

func TestBuildPromptNoMatches(t *testing.T) {
	prompt := BuildPrompt("Anything composted here?", nil)
	assert.Contains(t, prompt, "Context:\n")
	assert.Contains(t, prompt, "Question: Anything composted here?\nAnswer:")
}

func TestBuildPromptAttributionForEveryPageMatch(t *testing.T) {
	// Crawled matches always carry the attribution lines, even when the
	// metadata fields happen to be blank.
	match := pageMatch(0.9, "", "", "Body only.")
	prompt := BuildPrompt("q", []vectorstore.Match{match})
	assert.Contains(t, prompt, "Site Title: \n")
	assert.Contains(t, prompt, "Header: \n")
	assert.Contains(t, prompt, "Text: Body only.")
}
