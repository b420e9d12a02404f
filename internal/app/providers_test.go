package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"memo2vec/internal/app/errors"
	"memo2vec/internal/app/table"
	"memo2vec/internal/app/testutil"
	"memo2vec/internal/config"
)

func mockConfig(t *testing.T) *config.Config {
	cfg := config.Default()
	cfg.Embedding.Provider = "mock"
	cfg.Output = filepath.Join(t.TempDir(), "table.json")
	return cfg
}

func TestInitializeEmbedder_EmbedsDirectory(t *testing.T) {
	cfg := mockConfig(t)
	dir := testutil.CreateTranscriptDir(t, testutil.TestTranscripts)

	e, err := InitializeEmbedder(context.Background(), cfg, zaptest.NewLogger(t), nil, nil)
	require.NoError(t, err)

	res, err := e.EmbedDirectory(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, len(testutil.TestTranscripts), res.Transcripts)

	saved, err := table.NewFileStore(cfg.Output).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, res.TotalRows, saved.Len())
}

func TestInitializeEmbedder_MissingKey(t *testing.T) {
	cfg := config.Default()
	cfg.Keys = config.APIKeys{}

	_, err := InitializeEmbedder(context.Background(), cfg, zaptest.NewLogger(t), nil, nil)
	assert.ErrorIs(t, err, errors.ErrMissingAPIKey)
}

func TestInitializeEmbedder_UnknownProvider(t *testing.T) {
	cfg := mockConfig(t)
	cfg.Embedding.Provider = "cohere"

	_, err := InitializeEmbedder(context.Background(), cfg, zaptest.NewLogger(t), nil, nil)
	assert.ErrorIs(t, err, errors.ErrUnknownProvider)
}

func TestInitializeConverter(t *testing.T) {
	cfg := config.Default()
	_, err := InitializeConverter(cfg, zaptest.NewLogger(t), nil, nil)
	assert.ErrorIs(t, err, errors.ErrMissingAPIKey)

	cfg.APIKey = "sk-test"
	c, err := InitializeConverter(cfg, zaptest.NewLogger(t), nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestInitializeSearcher(t *testing.T) {
	s, err := InitializeSearcher(context.Background(), mockConfig(t), zaptest.NewLogger(t))
	require.NoError(t, err)

	hits, err := s.Search(context.Background(), table.New(), "anything", 3)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestOpenTable(t *testing.T) {
	cfg := config.Default()

	store, err := OpenTable(cfg, "s3://memos/table.json")
	require.NoError(t, err)
	assert.Equal(t, "s3://memos/table.json", store.Location())

	store, err = OpenTable(cfg, filepath.Join(t.TempDir(), "table.json"))
	require.NoError(t, err)
	assert.IsType(t, &table.FileStore{}, store)
}
