package app

import (
	"context"

	"memo2vec/internal/app/api"
	"memo2vec/internal/app/api/openai"
	"memo2vec/internal/app/api/openai/whisper"
	"memo2vec/internal/app/embedding/provider"
	"memo2vec/internal/app/table"
	"memo2vec/internal/config"
)

// provideRemoteTranscriber with openai's remote service conversion; the key
// comes from --api-key or OPENAI_API_KEY
func provideRemoteTranscriber(cfg *config.Config) (api.Transcriber, error) {
	if err := cfg.RequireTranscriptionKey(); err != nil {
		return nil, err
	}
	client := openai.NewClient(cfg.TranscriptionAPIKey(), cfg.Whisper.BaseURL)
	return whisper.NewRemoteTranscriber(client, cfg.Whisper.Model, cfg.Whisper.Prompt), nil
}

func provideEmbeddingProvider(ctx context.Context, cfg *config.Config) (provider.EmbeddingProvider, error) {
	if err := cfg.RequireEmbeddingKey(); err != nil {
		return nil, err
	}
	return provider.New(ctx, provider.Settings{
		Name:      cfg.Embedding.Provider,
		APIKey:    cfg.EmbeddingAPIKey(),
		Model:     cfg.Embedding.Model,
		BaseURL:   cfg.Embedding.BaseURL,
		Dimension: cfg.Embedding.Dimension,
	})
}

func provideMinioOptions(cfg *config.Config) table.MinioOptions {
	return table.MinioOptions{
		Endpoint:  cfg.Minio.Endpoint,
		AccessKey: cfg.Minio.AccessKey,
		SecretKey: cfg.Minio.SecretKey,
		UseSSL:    cfg.Minio.UseSSL,
	}
}

// provideTableStore opens the table named by the output location.
func provideTableStore(cfg *config.Config, opts table.MinioOptions) (table.Store, error) {
	return table.Open(cfg.Output, opts)
}

// OpenTable opens the table at location with the object store settings of cfg.
func OpenTable(cfg *config.Config, location string) (table.Store, error) {
	return table.Open(location, provideMinioOptions(cfg))
}
