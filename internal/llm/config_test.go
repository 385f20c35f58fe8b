package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, "gemini-2.0-flash-lite", config.GetModel(TierAnswer))
	assert.Equal(t, "gemini-2.0-flash", config.GetModel(TierCheck))
	assert.Equal(t, "embedding-001", config.EmbeddingModel)
}

func TestGetModel_FallsBackToAnswerTier(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierAnswer: "gemini-2.0-flash-lite",
		},
	}

	assert.Equal(t, "gemini-2.0-flash-lite", config.GetModel(TierCheck))
}

func TestGetModel_NoModelsConfigured(t *testing.T) {
	config := &Config{Provider: ProviderGemini, Models: map[ModelTier]string{}}
	assert.Empty(t, config.GetModel(TierAnswer))
}

func TestWithModel_DoesNotMutateOriginal(t *testing.T) {
	original := DefaultConfig()
	modified := original.WithModel(TierAnswer, "gemini-2.0-pro")

	assert.Equal(t, "gemini-2.0-pro", modified.GetModel(TierAnswer))
	assert.Equal(t, "gemini-2.0-flash-lite", original.GetModel(TierAnswer))
	assert.Equal(t, original.EmbeddingModel, modified.EmbeddingModel)
}

func TestNewGeminiClient_RequiresAPIKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), DefaultConfig(), "")
	assert.Error(t, err)
}
