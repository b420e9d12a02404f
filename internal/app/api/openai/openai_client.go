package openai

import (
	"github.com/sashabaranov/go-openai"
)

// NewClient builds an OpenAI client for apiKey. A non-empty baseURL points the
// client at an OpenAI-compatible endpoint instead of api.openai.com.
func NewClient(apiKey string, baseURL string) *openai.Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(config)
}
