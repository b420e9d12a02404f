// Package search ranks table rows against a query by cosine similarity using
// an in-memory chromem-go collection.
package search

import (
	"context"
	"strconv"

	"github.com/philippgille/chromem-go"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"memo2vec/internal/app/embedding/provider"
	"memo2vec/internal/app/errors"
	"memo2vec/internal/app/model"
	"memo2vec/internal/app/table"
)

const collectionName = "memos"

// Hit is one ranked row.
type Hit struct {
	Record     model.ChunkRecord
	Similarity float32
}

type Searcher struct {
	provider provider.EmbeddingProvider
	logger   *zap.Logger
}

func New(p provider.EmbeddingProvider, logger *zap.Logger) *Searcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Searcher{provider: p, logger: logger}
}

// Search embeds query and returns up to k rows of t, most similar first.
// Rows whose embedding length differs from the query's are ignored.
func (s *Searcher) Search(ctx context.Context, t *table.Table, query string, k int) ([]Hit, error) {
	if query == "" {
		return nil, errors.RequiredField("query")
	}
	if k <= 0 {
		return nil, errors.InvalidField("k", "must be positive")
	}

	queryEmbedding, err := s.provider.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, errors.Wrap(errors.Mark(err, errors.ErrEmbeddingFailed), "query")
	}

	rows := t.Rows()
	docs := make([]chromem.Document, 0, len(rows))
	for i, r := range rows {
		if len(r.Embedding) != len(queryEmbedding) {
			continue
		}
		docs = append(docs, chromem.Document{
			ID:      strconv.Itoa(i),
			Content: r.ChunkContent,
			Metadata: map[string]string{
				"source": r.SourceName,
				"offset": strconv.Itoa(r.Offset),
			},
			// chromem normalizes in place; keep the table's vector intact.
			Embedding: append([]float32(nil), r.Embedding...),
		})
	}
	if skipped := len(rows) - len(docs); skipped > 0 {
		s.logger.Warn("Ignoring rows with a different embedding dimension",
			zap.Int("rows", skipped), zap.Int("dimension", len(queryEmbedding)))
	}
	if len(docs) == 0 {
		return nil, nil
	}

	db := chromem.NewDB()
	collection, err := db.CreateCollection(collectionName, nil, s.provider.GenerateEmbedding)
	if err != nil {
		return nil, err
	}
	if err := collection.AddDocuments(ctx, docs, 1); err != nil {
		return nil, err
	}

	results, err := collection.QueryEmbedding(ctx, queryEmbedding, min(k, collection.Count()), nil, nil)
	if err != nil {
		return nil, err
	}

	return lo.Map(results, func(r chromem.Result, _ int) Hit {
		idx, _ := strconv.Atoi(r.ID)
		return Hit{Record: rows[idx], Similarity: r.Similarity}
	}), nil
}
