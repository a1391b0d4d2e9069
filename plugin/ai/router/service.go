// Package router provides the intent classification service.
package router

import (
	"context"
	"log/slog"
	"time"

	"github.com/hrygo/zai/plugin/ai"
	"github.com/hrygo/zai/plugin/ai/textutil"
	"github.com/hrygo/zai/plugin/ai/timeout"
)

// Service implements the layered IntentClassifier.
// Layer 1: ordered rule cascade (0ms), always on
// Layer 2: embedding nearest-centroid (~300ms), optional
// Layer 3: fallback label
type Service struct {
	ruleMatcher     *RuleMatcher
	semanticMatcher *SemanticMatcher
}

// Config contains the configuration for the router service.
type Config struct {
	// Rules overrides DefaultRules when set.
	Rules []IntentRule
	// Semantic enables Layer 2; nil keeps classification rule-only.
	Semantic *SemanticConfig
}

// NewService creates a new router service.
func NewService(cfg Config) *Service {
	s := &Service{ruleMatcher: NewRuleMatcher()}
	if cfg.Rules != nil {
		s.ruleMatcher = NewRuleMatcherWithRules(cfg.Rules)
	}
	if cfg.Semantic != nil && cfg.Semantic.Embedder != nil {
		s.semanticMatcher = NewSemanticMatcher(*cfg.Semantic)
	}
	return s
}

// NewServiceFromConfig wires the semantic layer from AI config when it is enabled.
func NewServiceFromConfig(cfg *ai.Config, cache *CentroidCache) *Service {
	if cfg == nil || !cfg.Enabled {
		return NewService(Config{})
	}
	embedder, err := ai.NewEmbeddingService(&cfg.Embedding)
	if err != nil {
		slog.Warn("semantic intent fallback disabled", "error", err)
		return NewService(Config{})
	}
	return NewService(Config{Semantic: &SemanticConfig{
		Embedder: embedder,
		Cache:    cache,
		CacheKey: cfg.Embedding.CacheKey(),
		Intent:   cfg.Intent,
	}})
}

// SemanticEnabled reports whether Layer 2 is wired.
func (s *Service) SemanticEnabled() bool {
	return s.semanticMatcher != nil
}

// Classify classifies user intent from input text.
func (s *Service) Classify(ctx context.Context, input string) Classification {
	start := time.Now()
	text := textutil.CollapseSpaces(input)
	if text == "" {
		return Classification{Intent: IntentFallback, Source: SourceFallback}
	}

	// Layer 1: Rule cascade
	if intent, ok := s.ruleMatcher.Match(text); ok {
		slog.Debug("intent classified by rule matcher",
			"input", truncate(text),
			"intent", intent,
			"latency_ms", time.Since(start).Milliseconds())
		return Classification{Intent: intent, Source: SourceRule}
	}

	// Layer 2: Semantic centroids
	if s.semanticMatcher != nil {
		result, ok, err := s.semanticMatcher.Match(ctx, text)
		switch {
		case err != nil && err != errTooShort:
			slog.Warn("semantic matcher error", "error", err)
		case ok:
			slog.Debug("intent classified by semantic matcher",
				"input", truncate(text),
				"intent", result.Intent,
				"score", result.Score,
				"margin", result.Margin,
				"latency_ms", time.Since(start).Milliseconds())
			return result
		}
	}

	slog.Debug("no intent match found",
		"input", truncate(text),
		"latency_ms", time.Since(start).Milliseconds())
	return Classification{Intent: IntentFallback, Source: SourceFallback}
}

// truncate shortens s for log output.
func truncate(s string) string {
	if len(s) <= timeout.MaxTruncateLength {
		return s
	}
	return textutil.Truncate(s, timeout.MaxTruncateLength) + "..."
}

// Ensure Service implements IntentClassifier
var _ IntentClassifier = (*Service)(nil)
