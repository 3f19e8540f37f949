package knowledge_test

import (
	"os"
	"path/filepath"
	"testing"

	"grillbook/services/knowledge"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFallsBackToWelcomeText(t *testing.T) {
	store := knowledge.NewStore(t.TempDir())

	text, err := store.Load()
	require.NoError(t, err)
	assert.Contains(t, text, "book a table")
	assert.Contains(t, text, "booking ID")
}

func TestLoadReturnsPersistedText(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "training_data.txt"), []byte("our menu"), 0o644))
	store := knowledge.NewStore(dir)

	text, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "our menu", text)
}

func TestAppendSummarySeparatesEntries(t *testing.T) {
	dir := t.TempDir()
	store := knowledge.NewStore(dir)

	require.NoError(t, store.AppendSummary("first summary"))
	require.NoError(t, store.AppendSummary("second summary"))

	text, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "\n\nfirst summary\n\nsecond summary", text)
}

func TestExtractTextPlain(t *testing.T) {
	text, err := knowledge.ExtractText("notes.txt", []byte("plain contents"))
	require.NoError(t, err)
	assert.Equal(t, "plain contents", text)
}

func TestExtractTextRejectsBrokenPDF(t *testing.T) {
	_, err := knowledge.ExtractText("doc.pdf", []byte("not a pdf at all"))
	assert.Error(t, err)
}
