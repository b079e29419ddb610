package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOrderFileStoreMissingFile(t *testing.T) {
	store := NewOrderFileStore(filepath.Join(t.TempDir(), "order.json"), zap.NewNop())
	assert.Equal(t, []string{}, store.Load(context.Background()))
}

func TestOrderFileStoreMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "order.json")

	for _, content := range []string{`{"order": ["A"]}`, `"A"`, `[1, 2]`, `not json`} {
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		store := NewOrderFileStore(path, zap.NewNop())
		assert.Equal(t, []string{}, store.Load(context.Background()), content)
	}
}

func TestOrderFileStoreSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "order.json")
	store := NewOrderFileStore(path, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, []string{"Engines", "Body", "Wheels"}))
	assert.Equal(t, []string{"Engines", "Body", "Wheels"}, store.Load(ctx))

	require.NoError(t, store.Save(ctx, nil))
	assert.Equal(t, []string{}, store.Load(ctx))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files are cleaned up")
}
