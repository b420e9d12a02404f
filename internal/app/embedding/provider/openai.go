package provider

import (
	"context"
	"errors"
	"strings"

	"github.com/sashabaranov/go-openai"

	openaiclient "memo2vec/internal/app/api/openai"
	apperrors "memo2vec/internal/app/errors"
)

var openAIDimensions = map[openai.EmbeddingModel]int{
	openai.AdaEmbeddingV2:  1536,
	openai.SmallEmbedding3: 1536,
	openai.LargeEmbedding3: 3072,
}

// OpenAIProvider implements EmbeddingProvider using OpenAI API
type OpenAIProvider struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

// NewOpenAIProvider creates a new OpenAI embedding provider. An empty model
// selects text-embedding-ada-002; a non-empty baseURL targets an
// OpenAI-compatible server.
func NewOpenAIProvider(apiKey string, model string, baseURL string) *OpenAIProvider {
	if model == "" {
		model = string(openai.AdaEmbeddingV2)
	}
	return &OpenAIProvider{
		client: openaiclient.NewClient(apiKey, baseURL),
		model:  openai.EmbeddingModel(model),
	}
}

// GenerateEmbedding generates an embedding using OpenAI API. Newlines are
// sent as spaces.
func (o *OpenAIProvider) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, errors.New("empty text provided")
	}

	request := openai.EmbeddingRequest{
		Model: o.model,
		Input: []string{strings.ReplaceAll(text, "\n", " ")},
	}

	response, err := o.client.CreateEmbeddings(ctx, request)
	if err != nil {
		return nil, err
	}

	if len(response.Data) == 0 {
		return nil, apperrors.Wrap(apperrors.ErrResponseInvalid, "no embedding data returned from OpenAI")
	}

	return response.Data[0].Embedding, nil
}

// GetProviderInfo returns information about the OpenAI provider
func (o *OpenAIProvider) GetProviderInfo() ProviderInfo {
	return ProviderInfo{
		Name:      "openai",
		Model:     string(o.model),
		Dimension: openAIDimensions[o.model],
	}
}
