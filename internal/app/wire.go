//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"
	"go.uber.org/zap"

	"memo2vec/internal/app/converter"
	"memo2vec/internal/app/embedder"
	"memo2vec/internal/app/metrics"
	"memo2vec/internal/app/progress"
	"memo2vec/internal/app/search"
	"memo2vec/internal/config"
)

func InitializeConverter(cfg *config.Config, logger *zap.Logger, recorder *metrics.Recorder, pm *progress.Manager) (*converter.Converter, error) {
	wire.Build(converter.NewConverter, provideRemoteTranscriber)
	return &converter.Converter{}, nil
}

func InitializeEmbedder(ctx context.Context, cfg *config.Config, logger *zap.Logger, recorder *metrics.Recorder, pm *progress.Manager) (*embedder.Embedder, error) {
	wire.Build(
		embedder.New,
		embedder.OptionsFromConfig,
		provideEmbeddingProvider,
		provideTableStore,
		provideMinioOptions,
	)
	return &embedder.Embedder{}, nil
}

func InitializeSearcher(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*search.Searcher, error) {
	wire.Build(search.New, provideEmbeddingProvider)
	return &search.Searcher{}, nil
}
