package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/zai/internal/profile"
	"github.com/hrygo/zai/plugin/ai/timeout"
)

type embeddingItem struct {
	Object    string    `json:"object"`
	Index     int       `json:"index"`
	Embedding []float32 `json:"embedding"`
}

// newEmbeddingServer answers /v1/embeddings with the items produced by build.
func newEmbeddingServer(t *testing.T, build func(inputs []string) []embeddingItem) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/embeddings" {
			http.NotFound(w, r)
			return
		}
		var req struct {
			Model string   `json:"model"`
			Input []string `json:"input"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"model":  req.Model,
			"data":   build(req.Input),
		})
	}))
}

func TestNewEmbeddingService(t *testing.T) {
	_, err := NewEmbeddingService(&EmbeddingConfig{Model: "text-embedding-3-small", APIKey: "k"})
	assert.NoError(t, err)

	_, err = NewEmbeddingService(&EmbeddingConfig{})
	assert.Error(t, err)

	_, err = NewEmbeddingService(nil)
	assert.Error(t, err)
}

func TestEmbedBatch_OrdersByIndex(t *testing.T) {
	srv := newEmbeddingServer(t, func(inputs []string) []embeddingItem {
		items := make([]embeddingItem, 0, len(inputs))
		// Reply in reverse order to make sure the client reorders by index.
		for i := len(inputs) - 1; i >= 0; i-- {
			items = append(items, embeddingItem{Object: "embedding", Index: i, Embedding: []float32{float32(i), 1}})
		}
		return items
	})
	defer srv.Close()

	svc, err := NewEmbeddingService(&EmbeddingConfig{Model: "m", APIKey: "k", BaseURL: srv.URL + "/"})
	require.NoError(t, err)

	vectors, err := svc.EmbedBatch(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Len(t, vectors, 3)
	assert.Equal(t, []float32{0, 1}, vectors[0])
	assert.Equal(t, []float32{2, 1}, vectors[2])

	one, err := svc.Embed(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 1}, one)
}

func TestEmbedBatch_RejectsMalformedResponses(t *testing.T) {
	tests := []struct {
		name  string
		build func(inputs []string) []embeddingItem
	}{
		{
			name:  "missing items",
			build: func([]string) []embeddingItem { return nil },
		},
		{
			name: "duplicate index",
			build: func(inputs []string) []embeddingItem {
				return []embeddingItem{{Index: 0, Embedding: []float32{1}}, {Index: 0, Embedding: []float32{1}}}
			},
		},
		{
			name: "index out of range",
			build: func(inputs []string) []embeddingItem {
				return []embeddingItem{{Index: 0, Embedding: []float32{1}}, {Index: 5, Embedding: []float32{1}}}
			},
		},
		{
			name: "empty vector",
			build: func(inputs []string) []embeddingItem {
				return []embeddingItem{{Index: 0, Embedding: []float32{1}}, {Index: 1}}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newEmbeddingServer(t, tt.build)
			defer srv.Close()

			svc, err := NewEmbeddingService(&EmbeddingConfig{Model: "m", APIKey: "k", BaseURL: srv.URL})
			require.NoError(t, err)

			_, err = svc.EmbedBatch(context.Background(), []string{"a", "b"})
			assert.Error(t, err)
		})
	}
}

func TestEmbedBatch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"boom"}}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc, err := NewEmbeddingService(&EmbeddingConfig{Model: "m", APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = svc.EmbedBatch(context.Background(), []string{"a"})
	assert.Error(t, err)

	_, err = svc.EmbedBatch(context.Background(), nil)
	assert.Error(t, err)
}

func TestIntentConfig_Normalized(t *testing.T) {
	tests := []struct {
		name string
		in   IntentConfig
		want IntentConfig
	}{
		{
			name: "unset takes defaults",
			in:   IntentConfig{},
			want: IntentConfig{Timeout: timeout.EmbeddingTimeout, Threshold: 0.76, Margin: 0.02},
		},
		{
			name: "out of range is clamped",
			in:   IntentConfig{Timeout: time.Minute, Threshold: 0.1, Margin: 0.9},
			want: IntentConfig{Timeout: timeout.MaxEmbeddingTimeout, Threshold: 0.55, Margin: 0.2},
		},
		{
			name: "explicit zero margin is kept",
			in:   IntentConfig{Threshold: 0.8},
			want: IntentConfig{Timeout: timeout.EmbeddingTimeout, Threshold: 0.8, Margin: 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalized())
		})
	}
}

func TestNewConfigFromProfile(t *testing.T) {
	p := &profile.Profile{Neural: profile.NeuralConfig{
		Enabled:   true,
		APIKey:    "sk",
		APIBase:   "https://api.openai.com",
		Model:     "text-embedding-3-small",
		Threshold: 0.8,
		Margin:    0.05,
	}}

	cfg := NewConfigFromProfile(p)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "https://api.openai.com", cfg.Embedding.BaseURL)
	assert.Equal(t, 0.8, cfg.Intent.Threshold)
	assert.Equal(t, "https://api.openai.com|text-embedding-3-small", cfg.Embedding.CacheKey())

	p.Neural.APIKey = ""
	assert.False(t, NewConfigFromProfile(p).Enabled)
}
