// Package llm provides centralized LLM configuration and client abstractions
// for text generation and embedding. The abstraction keeps the pipeline
// testable with stub clients and leaves room for other providers.
package llm

// ModelTier represents the capability level of a generation model
type ModelTier string

const (
	// TierAnswer is the conversational tier used to answer user questions
	TierAnswer ModelTier = "answer"
	// TierCheck is the tier used for short classification calls, such as
	// the sustainability relevance check on user-submitted facts
	TierCheck ModelTier = "check"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// EmbeddingDimension is the output dimension of the embedding model.
// The vector store index must be configured with the same dimension.
const EmbeddingDimension = 768

// Config holds the model configuration for the application
type Config struct {
	Provider       Provider
	Models         map[ModelTier]string
	EmbeddingModel string
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierAnswer: "gemini-2.0-flash-lite",
			TierCheck:  "gemini-2.0-flash",
		},
		EmbeddingModel: "embedding-001",
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fall back to the answer tier
	if model, ok := c.Models[TierAnswer]; ok {
		return model
	}
	return ""
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Provider:       c.Provider,
		Models:         make(map[ModelTier]string),
		EmbeddingModel: c.EmbeddingModel,
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return newConfig
}
