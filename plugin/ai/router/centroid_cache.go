package router

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/hrygo/zai/plugin/ai"
	"github.com/hrygo/zai/plugin/ai/textutil"
)

// Centroid is the unit-length mean embedding of one intent's prototype phrases.
type Centroid struct {
	Intent Intent
	Vector []float64
}

// CentroidCache holds centroid sets keyed by embedding configuration
// ("base|model"). Entries are written once and never invalidated; a failed
// build is not stored so the next caller retries it.
type CentroidCache struct {
	mu      sync.RWMutex
	entries map[string][]Centroid
	group   singleflight.Group
}

// NewCentroidCache creates an empty cache.
func NewCentroidCache() *CentroidCache {
	return &CentroidCache{entries: make(map[string][]Centroid)}
}

// Get returns the cached set for key.
func (c *CentroidCache) Get(key string) ([]Centroid, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

// GetOrBuild returns the cached set for key, building it at most once across
// concurrent callers.
func (c *CentroidCache) GetOrBuild(key string, build func() ([]Centroid, error)) ([]Centroid, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		built, err := build()
		if err != nil {
			return nil, err
		}
		if len(built) == 0 {
			return nil, errors.New("no centroids built")
		}
		c.mu.Lock()
		c.entries[key] = built
		c.mu.Unlock()
		return built, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Centroid), nil
}

// Len returns the number of cached configurations.
func (c *CentroidCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// BuildCentroids embeds every prototype phrase in one batched call and averages
// the vectors per intent over their shortest common dimension.
func BuildCentroids(ctx context.Context, embedder ai.EmbeddingService, prototypes []Prototype) ([]Centroid, error) {
	var phrases []string
	var owners []int
	for i, p := range prototypes {
		for _, phrase := range p.Phrases {
			text := textutil.CollapseSpaces(phrase)
			if text == "" {
				continue
			}
			phrases = append(phrases, text)
			owners = append(owners, i)
		}
	}
	if len(phrases) == 0 {
		return nil, errors.New("no prototype phrases")
	}

	vectors, err := embedder.EmbedBatch(ctx, phrases)
	if err != nil {
		return nil, fmt.Errorf("embed prototypes: %w", err)
	}
	if len(vectors) != len(phrases) {
		return nil, fmt.Errorf("prototype embedding count mismatch: got %d, want %d", len(vectors), len(phrases))
	}

	buckets := make([][][]float32, len(prototypes))
	for i, vec := range vectors {
		if len(vec) == 0 {
			continue
		}
		buckets[owners[i]] = append(buckets[owners[i]], vec)
	}

	centroids := make([]Centroid, 0, len(prototypes))
	for i, bucket := range buckets {
		if len(bucket) == 0 {
			continue
		}
		dim := len(bucket[0])
		for _, vec := range bucket[1:] {
			dim = min(dim, len(vec))
		}
		mean := make([]float64, dim)
		for _, vec := range bucket {
			for j := 0; j < dim; j++ {
				mean[j] += float64(vec[j])
			}
		}
		for j := range mean {
			mean[j] /= float64(len(bucket))
		}
		if unit := normalizeVector(mean); unit != nil {
			centroids = append(centroids, Centroid{Intent: prototypes[i].Intent, Vector: unit})
		}
	}
	if len(centroids) == 0 {
		return nil, errors.New("all prototype vectors were empty")
	}
	return centroids, nil
}
