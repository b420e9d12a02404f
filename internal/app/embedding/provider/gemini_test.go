package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeminiProvider(t *testing.T) {
	_, err := NewGeminiProvider(context.Background(), "", "")
	assert.ErrorContains(t, err, "requires an API key")

	p, err := NewGeminiProvider(context.Background(), "AIzaTest-1234567890abcdef1234567890", "")
	require.NoError(t, err)
	assert.Equal(t, ProviderInfo{Name: "gemini", Model: "text-embedding-004", Dimension: 768}, p.GetProviderInfo())

	_, err = p.GenerateEmbedding(context.Background(), "")
	assert.ErrorContains(t, err, "empty text")
}
