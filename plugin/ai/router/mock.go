package router

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/hrygo/zai/plugin/ai"
)

// MockEmbeddingService is an in-memory ai.EmbeddingService for testing.
type MockEmbeddingService struct {
	// VectorFunc produces the embedding for one text.
	VectorFunc func(text string) []float32
	// Err, when set, fails every call.
	Err error

	batchCalls atomic.Int64
	embedCalls atomic.Int64
}

// NewMockEmbeddingService creates a mock that embeds prototype phrases as
// one-hot vectors on their intent's axis and everything else through fallback.
func NewMockEmbeddingService(fallback func(text string) []float32) *MockEmbeddingService {
	axis := make(map[string]int)
	for i, p := range DefaultPrototypes {
		for _, phrase := range p.Phrases {
			axis[phrase] = i
		}
	}
	dim := len(DefaultPrototypes)
	return &MockEmbeddingService{
		VectorFunc: func(text string) []float32 {
			if i, ok := axis[text]; ok {
				vec := make([]float32, dim)
				vec[i] = 1
				return vec
			}
			if fallback != nil {
				return fallback(text)
			}
			return nil
		},
	}
}

// AxisVector returns a vector pointing mostly at intent's prototype axis,
// with weight w on it and the rest spread on the next axis.
func AxisVector(intent Intent, w float32) []float32 {
	dim := len(DefaultPrototypes)
	vec := make([]float32, dim)
	for i, p := range DefaultPrototypes {
		if p.Intent == intent {
			vec[i] = w
			vec[(i+1)%dim] = 1 - w
		}
	}
	return vec
}

func (m *MockEmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	m.embedCalls.Add(1)
	if m.Err != nil {
		return nil, m.Err
	}
	vec := m.VectorFunc(text)
	if len(vec) == 0 {
		return nil, errors.New("no vector for text")
	}
	return vec, nil
}

func (m *MockEmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	m.batchCalls.Add(1)
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = m.VectorFunc(text)
	}
	return out, nil
}

// BatchCalls returns how many EmbedBatch calls were made.
func (m *MockEmbeddingService) BatchCalls() int64 {
	return m.batchCalls.Load()
}

// EmbedCalls returns how many Embed calls were made.
func (m *MockEmbeddingService) EmbedCalls() int64 {
	return m.embedCalls.Load()
}

var _ ai.EmbeddingService = (*MockEmbeddingService)(nil)
