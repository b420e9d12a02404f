package provider

import (
	"context"
	"crypto/sha256"
	"errors"
)

// MockProvider is a deterministic provider for tests and dry runs: the
// vector is derived from the SHA256 of the text.
type MockProvider struct {
	dimension int
	calls     []string
	failOn    map[string]error
}

// NewMockProvider creates a new mock provider with specified dimension
func NewMockProvider(dimension int) *MockProvider {
	return &MockProvider{dimension: dimension, failOn: make(map[string]error)}
}

// FailOn makes GenerateEmbedding return err for text.
func (m *MockProvider) FailOn(text string, err error) {
	m.failOn[text] = err
}

// Calls returns the texts embedded so far, in call order.
func (m *MockProvider) Calls() []string {
	return m.calls
}

// GenerateEmbedding generates deterministic embeddings based on SHA256 hash
func (m *MockProvider) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, errors.New("empty text provided")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.calls = append(m.calls, text)
	if err, ok := m.failOn[text]; ok {
		return nil, err
	}

	hash := sha256.Sum256([]byte(text))
	embedding := make([]float32, m.dimension)

	// Convert hash bytes to float32 values in range [-1, 1]
	for i := 0; i < m.dimension; i++ {
		byteIndex := i % len(hash)
		embedding[i] = (float32(hash[byteIndex])/255.0)*2 - 1
	}

	return embedding, nil
}

// GetProviderInfo returns mock provider information
func (m *MockProvider) GetProviderInfo() ProviderInfo {
	return ProviderInfo{
		Name:      "mock",
		Model:     "mock-model",
		Dimension: m.dimension,
	}
}
