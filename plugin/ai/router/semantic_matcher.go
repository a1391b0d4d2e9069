package router

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/hrygo/zai/plugin/ai"
)

// MinSemanticLength is the shortest text (in runes) worth an embedding call.
const MinSemanticLength = 8

// SemanticMatcher implements Layer 2 nearest-centroid matching.
type SemanticMatcher struct {
	embedder   ai.EmbeddingService
	cache      *CentroidCache
	queries    *QueryCache
	cacheKey   string
	prototypes []Prototype
	timeout    time.Duration
	threshold  float64
	margin     float64
}

// SemanticConfig configures a SemanticMatcher.
type SemanticConfig struct {
	Embedder   ai.EmbeddingService
	Cache      *CentroidCache // shared across matchers; a fresh one is created when nil
	Queries    *QueryCache    // query vector LRU; a default-sized one is created when nil
	CacheKey   string         // "base|model"
	Prototypes []Prototype    // DefaultPrototypes when nil
	Intent     ai.IntentConfig
}

// NewSemanticMatcher creates a semantic matcher.
func NewSemanticMatcher(cfg SemanticConfig) *SemanticMatcher {
	cache := cfg.Cache
	if cache == nil {
		cache = NewCentroidCache()
	}
	prototypes := cfg.Prototypes
	if prototypes == nil {
		prototypes = DefaultPrototypes
	}
	queries := cfg.Queries
	if queries == nil {
		queries = NewQueryCache(0, 0)
	}
	intent := cfg.Intent.Normalized()
	return &SemanticMatcher{
		embedder:   cfg.Embedder,
		cache:      cache,
		queries:    queries,
		cacheKey:   cfg.CacheKey,
		prototypes: prototypes,
		timeout:    intent.Timeout,
		threshold:  intent.Threshold,
		margin:     intent.Margin,
	}
}

var errTooShort = errors.New("text too short for semantic matching")

// Match returns the best intent when it clears both the score threshold and
// the margin over the runner-up. No match and a failed lookup both return
// false; the error is only for logging.
func (m *SemanticMatcher) Match(ctx context.Context, text string) (Classification, bool, error) {
	if utf8.RuneCountInString(text) < MinSemanticLength {
		return Classification{}, false, errTooShort
	}

	centroids, err := m.cache.GetOrBuild(m.cacheKey, func() ([]Centroid, error) {
		// Detached from the caller so one cancelled request cannot fail the
		// build for everyone waiting on it.
		buildCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.timeout)
		defer cancel()
		return BuildCentroids(buildCtx, m.embedder, m.prototypes)
	})
	if err != nil {
		return Classification{}, false, fmt.Errorf("centroids: %w", err)
	}

	query, err := m.embedQuery(ctx, text)
	if err != nil {
		return Classification{}, false, err
	}

	best, second := -1.0, -1.0
	var bestIntent Intent
	for _, c := range centroids {
		score := cosineSimilarity(query, c.Vector)
		if score > best {
			second = best
			best = score
			bestIntent = c.Intent
		} else if score > second {
			second = score
		}
	}

	result := Classification{Intent: bestIntent, Source: SourceSemantic, Score: best, Margin: best - second}
	if bestIntent == "" || best < m.threshold || best-second < m.margin {
		return result, false, nil
	}
	return result, true, nil
}

func (m *SemanticMatcher) embedQuery(ctx context.Context, text string) ([]float64, error) {
	key := m.cacheKey + "|" + text
	if v, ok := m.queries.Get(key); ok {
		return v, nil
	}

	queryCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	raw, err := m.embedder.Embed(queryCtx, text)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	query := normalizeVector(raw)
	if query == nil {
		return nil, errors.New("empty query vector")
	}
	m.queries.Set(key, query)
	return query, nil
}
