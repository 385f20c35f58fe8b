package facts

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileCounterStartsAtZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "own_data_id_count.txt")
	counter := NewFileCounter(path)

	id, err := counter.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, id)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1\n", string(data))
}

func TestFileCounterIncrements(t *testing.T) {
	path := filepath.Join(t.TempDir(), "own_data_id_count.txt")
	require.NoError(t, os.WriteFile(path, []byte("41\n"), 0644))
	counter := NewFileCounter(path)

	id, err := counter.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 41, id)

	id, err = counter.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "43\n", string(data))
}

func TestFileCounterCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "own_data_id_count.txt")
	require.NoError(t, os.WriteFile(path, []byte("not a number"), 0644))
	counter := NewFileCounter(path)

	_, err := counter.Next(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corrupt")
}
