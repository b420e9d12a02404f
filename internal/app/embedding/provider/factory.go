package provider

import (
	"context"

	"memo2vec/internal/app/errors"
)

// Settings selects and configures one embedding provider.
type Settings struct {
	Name      string
	APIKey    string
	Model     string
	BaseURL   string
	Dimension int
}

// New builds the provider named in settings.
func New(ctx context.Context, settings Settings) (EmbeddingProvider, error) {
	switch settings.Name {
	case "openai":
		return NewOpenAIProvider(settings.APIKey, settings.Model, settings.BaseURL), nil
	case "gemini":
		gemini, err := NewGeminiProvider(ctx, settings.APIKey, settings.Model)
		if err != nil {
			return nil, err
		}
		return gemini, nil
	case "ollama":
		baseURL := settings.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		model := settings.Model
		if model == "" {
			model = "nomic-embed-text"
		}
		ollama, err := NewOllamaProvider(baseURL, model)
		if err != nil {
			return nil, err
		}
		return ollama, nil
	case "mock":
		return NewMockProvider(settings.Dimension), nil
	}
	return nil, errors.Wrapf(errors.ErrUnknownProvider, "%q", settings.Name)
}
