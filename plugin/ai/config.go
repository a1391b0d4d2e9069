package ai

import (
	"time"

	"github.com/hrygo/zai/internal/profile"
	"github.com/hrygo/zai/plugin/ai/timeout"
)

// Config represents AI configuration.
type Config struct {
	Enabled bool

	Embedding EmbeddingConfig
	Intent    IntentConfig
}

// EmbeddingConfig represents an OpenAI-compatible embedding endpoint.
type EmbeddingConfig struct {
	Model   string // text-embedding-3-small
	APIKey  string
	BaseURL string // service root without the /v1 suffix
}

// IntentConfig holds the acceptance rule for the semantic intent fallback.
type IntentConfig struct {
	Timeout   time.Duration
	Threshold float64
	Margin    float64
}

// NewConfigFromProfile creates AI config from profile.
func NewConfigFromProfile(p *profile.Profile) *Config {
	n := p.Neural
	return &Config{
		Enabled: n.Active(),
		Embedding: EmbeddingConfig{
			Model:   n.Model,
			APIKey:  n.APIKey,
			BaseURL: n.APIBase,
		},
		Intent: IntentConfig{
			Timeout:   n.Timeout,
			Threshold: n.Threshold,
			Margin:    n.Margin,
		},
	}
}

// CacheKey identifies the embedding space a centroid set or query vector
// belongs to ("base|model").
func (c EmbeddingConfig) CacheKey() string {
	return c.BaseURL + "|" + c.Model
}

// Normalized returns c with defaults when it is entirely unset, and every
// field clamped to its supported range otherwise.
func (c IntentConfig) Normalized() IntentConfig {
	if c == (IntentConfig{}) {
		return IntentConfig{
			Timeout:   timeout.EmbeddingTimeout,
			Threshold: profile.DefaultNeuralThreshold,
			Margin:    profile.DefaultNeuralMargin,
		}
	}
	if c.Timeout == 0 {
		c.Timeout = timeout.EmbeddingTimeout
	}
	c.Timeout = timeout.ClampEmbedding(c.Timeout)
	c.Threshold = profile.ClampThreshold(c.Threshold)
	c.Margin = profile.ClampMargin(c.Margin)
	return c
}
