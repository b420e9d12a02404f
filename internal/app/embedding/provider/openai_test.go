package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEmbeddingServer(t *testing.T, status int, body string, gotInput *[]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req struct {
			Model string   `json:"model"`
			Input []string `json:"input"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "text-embedding-ada-002", req.Model)
		if gotInput != nil {
			*gotInput = req.Input
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestOpenAIProvider_GenerateEmbedding(t *testing.T) {
	var input []string
	server := newEmbeddingServer(t, http.StatusOK,
		`{"object":"list","data":[{"object":"embedding","index":0,"embedding":[0.25,-0.5,0.125]}],"model":"text-embedding-ada-002"}`,
		&input)
	defer server.Close()

	p := NewOpenAIProvider("sk-test", "", server.URL+"/v1")
	embedding, err := p.GenerateEmbedding(context.Background(), "buy milk\nand eggs")

	require.NoError(t, err)
	assert.Equal(t, []float32{0.25, -0.5, 0.125}, embedding)
	assert.Equal(t, []string{"buy milk and eggs"}, input, "newlines are sent as spaces")
}

func TestOpenAIProvider_Errors(t *testing.T) {
	testCases := []struct {
		name          string
		status        int
		body          string
		errorContains string
	}{
		{
			name:          "unauthorized",
			status:        http.StatusUnauthorized,
			body:          `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`,
			errorContains: "401",
		},
		{
			name:          "rate limited",
			status:        http.StatusTooManyRequests,
			body:          `{"error":{"message":"Rate limit reached","type":"requests"}}`,
			errorContains: "429",
		},
		{
			name:          "empty data",
			status:        http.StatusOK,
			body:          `{"object":"list","data":[]}`,
			errorContains: "no embedding data",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := newEmbeddingServer(t, tc.status, tc.body, nil)
			defer server.Close()

			p := NewOpenAIProvider("sk-test", "", server.URL+"/v1")
			embedding, err := p.GenerateEmbedding(context.Background(), "hello")

			require.Error(t, err)
			assert.Nil(t, embedding)
			assert.Contains(t, err.Error(), tc.errorContains)
		})
	}
}

func TestOpenAIProvider_EmptyText(t *testing.T) {
	p := NewOpenAIProvider("sk-test", "", "http://127.0.0.1:1/v1")
	_, err := p.GenerateEmbedding(context.Background(), "")
	assert.ErrorContains(t, err, "empty text")
}

func TestOpenAIProvider_Info(t *testing.T) {
	var p EmbeddingProvider = NewOpenAIProvider("sk-test", "", "")
	assert.Equal(t, ProviderInfo{Name: "openai", Model: "text-embedding-ada-002", Dimension: 1536}, p.GetProviderInfo())

	large := NewOpenAIProvider("sk-test", "text-embedding-3-large", "")
	assert.Equal(t, 3072, large.GetProviderInfo().Dimension)

	custom := NewOpenAIProvider("sk-test", "my-finetune", "")
	assert.Equal(t, 0, custom.GetProviderInfo().Dimension)
}
