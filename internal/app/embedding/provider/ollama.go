package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"

	apperrors "memo2vec/internal/app/errors"
)

// OllamaProvider implements EmbeddingProvider with a local Ollama server.
type OllamaProvider struct {
	embedder embeddings.Embedder
	model    string
}

// NewOllamaProvider connects to the Ollama server at serverURL.
func NewOllamaProvider(serverURL string, model string) (*OllamaProvider, error) {
	llm, err := ollama.New(
		ollama.WithServerURL(serverURL),
		ollama.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}

	embedder, err := embeddings.NewEmbedder(llm, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama embedder: %w", err)
	}

	return &OllamaProvider{embedder: embedder, model: model}, nil
}

// GenerateEmbedding embeds text with the configured Ollama model.
func (o *OllamaProvider) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, errors.New("empty text provided")
	}

	embedding, err := o.embedder.EmbedQuery(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(embedding) == 0 {
		return nil, apperrors.Wrap(apperrors.ErrResponseInvalid, "no embedding data returned from Ollama")
	}
	return embedding, nil
}

// GetProviderInfo returns information about the Ollama provider. The
// dimension depends on the pulled model.
func (o *OllamaProvider) GetProviderInfo() ProviderInfo {
	return ProviderInfo{
		Name:  "ollama",
		Model: o.model,
	}
}
