package ocr

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTextMissingImage(t *testing.T) {
	engine := New("eng")
	_, err := engine.ExtractText(filepath.Join(t.TempDir(), "nope.png"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source image")
}

func TestExtractTextNotInitialized(t *testing.T) {
	image := filepath.Join(t.TempDir(), "blank.png")
	require.NoError(t, os.WriteFile(image, []byte("not a real png"), 0o644))

	engine := New("eng")
	_, err := engine.ExtractText(image)
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestLifecycleBeforeInitialize(t *testing.T) {
	engine := New("")
	assert.False(t, engine.Available())
	assert.NoError(t, engine.Close())
	assert.NoError(t, engine.Close()) // idempotent
}
