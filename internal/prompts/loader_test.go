package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_KnownPrompts(t *testing.T) {
	instruction, err := Get("rag.json", "model-instruction")
	require.NoError(t, err)
	assert.NotEmpty(t, instruction)

	check, err := Get("rag.json", "fact-check")
	require.NoError(t, err)
	assert.Contains(t, check, "{{.Fact}}")
}

func TestGet_MissingKey(t *testing.T) {
	_, err := Get("rag.json", "does-not-exist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does-not-exist")
}

func TestGet_MissingFile(t *testing.T) {
	_, err := Get("nope.json", "model-instruction")
	require.Error(t, err)
}

func TestMustGet_PanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("rag.json", "does-not-exist")
	})
}

func TestFormat(t *testing.T) {
	out := Format("Check this: {{.Fact}} ({{.Fact}})", map[string]string{"Fact": "compost"})
	assert.Equal(t, "Check this: compost (compost)", out)
}

func TestFormat_UnknownPlaceholderLeftAlone(t *testing.T) {
	out := Format("Hello {{.Name}}", map[string]string{"Fact": "x"})
	assert.Equal(t, "Hello {{.Name}}", out)
}
