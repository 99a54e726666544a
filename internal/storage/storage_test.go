package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSaveAndDelete(t *testing.T) {
	root := t.TempDir()
	store := NewLocal(root)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "uploads/investment/a.png", strings.NewReader("data")))

	content, err := os.ReadFile(filepath.Join(root, "uploads", "investment", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(content))

	require.NoError(t, store.Delete(ctx, "uploads/investment/a.png"))
	_, err = os.Stat(filepath.Join(root, "uploads", "investment", "a.png"))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, store.Delete(ctx, "uploads/investment/a.png"))
}

func TestLocalSaveRefusesOverwrite(t *testing.T) {
	store := NewLocal(t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "x.png", strings.NewReader("one")))
	assert.Error(t, store.Save(ctx, "x.png", strings.NewReader("two")))
}

func TestLocalRejectsEscapingNames(t *testing.T) {
	store := NewLocal(t.TempDir())
	ctx := context.Background()

	for _, name := range []string{"", "../outside.png", "/etc/passwd", "."} {
		err := store.Save(ctx, name, strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrInvalidName, name)
	}
}
