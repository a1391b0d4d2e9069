package profile

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/hrygo/zai/plugin/ai/timeout"
)

const (
	DefaultNeuralAPIBase   = "https://api.openai.com"
	DefaultNeuralModel     = "text-embedding-3-small"
	DefaultNeuralTimeout   = 0.9
	DefaultNeuralThreshold = 0.76
	DefaultNeuralMargin    = 0.02
	DefaultPort            = 8081

	MinNeuralThreshold = 0.55
	MaxNeuralThreshold = 0.92
	MinNeuralMargin    = 0.0
	MaxNeuralMargin    = 0.2
)

// Profile is the configuration to start main server.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Version is the current version of server
	Version string

	// Neural configures the semantic intent fallback.
	Neural NeuralConfig
}

// NeuralConfig is the embedding-backed intent fallback configuration.
type NeuralConfig struct {
	Enabled   bool          // CHATBOT_NEURAL_INTENT_ENABLED (default: on when an API key is present)
	APIKey    string        // CHATBOT_LLM_API_KEY (legacy: OPENAI_API_KEY)
	APIBase   string        // CHATBOT_NEURAL_API_BASE (legacy: OPENAI_API_BASE, default: https://api.openai.com)
	Model     string        // CHATBOT_NEURAL_EMBED_MODEL (default: text-embedding-3-small)
	Timeout   time.Duration // CHATBOT_NEURAL_TIMEOUT_S (default: 0.9, clamp 0.3-3.0)
	Threshold float64       // CHATBOT_NEURAL_INTENT_THRESHOLD (default: 0.76, clamp 0.55-0.92)
	Margin    float64       // CHATBOT_NEURAL_INTENT_MARGIN (default: 0.02, clamp 0-0.2)
}

// Active reports whether the semantic stage should run.
func (c NeuralConfig) Active() bool {
	return c.Enabled && c.APIKey != ""
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// NewViper returns a viper instance with every environment key bound.
// Keys listed together are tried in order; the first non-empty one wins.
func NewViper() *viper.Viper {
	v := viper.New()
	bind := func(key string, envs ...string) {
		_ = v.BindEnv(append([]string{key}, envs...)...)
	}

	bind("mode", "ZAI_MODE")
	bind("addr", "ZAI_ADDR")
	bind("port", "ZAI_PORT")
	bind("neural.enabled", "CHATBOT_NEURAL_INTENT_ENABLED")
	bind("neural.api_key", "CHATBOT_LLM_API_KEY", "OPENAI_API_KEY")
	bind("neural.api_base", "CHATBOT_NEURAL_API_BASE", "OPENAI_API_BASE")
	bind("neural.model", "CHATBOT_NEURAL_EMBED_MODEL")
	bind("neural.timeout_s", "CHATBOT_NEURAL_TIMEOUT_S")
	bind("neural.threshold", "CHATBOT_NEURAL_INTENT_THRESHOLD")
	bind("neural.margin", "CHATBOT_NEURAL_INTENT_MARGIN")

	v.SetDefault("mode", "dev")
	v.SetDefault("addr", "")
	v.SetDefault("port", DefaultPort)
	v.SetDefault("neural.api_base", DefaultNeuralAPIBase)
	v.SetDefault("neural.model", DefaultNeuralModel)
	return v
}

// FromEnv loads configuration from environment variables.
func FromEnv() *Profile {
	return FromViper(NewViper())
}

// FromViper reads a Profile out of v. Numeric values that fail to parse fall
// back to their defaults before clamping.
func FromViper(v *viper.Viper) *Profile {
	p := &Profile{
		Mode:    strings.ToLower(strings.TrimSpace(v.GetString("mode"))),
		Addr:    strings.TrimSpace(v.GetString("addr")),
		Port:    v.GetInt("port"),
		Version: v.GetString("version"),
	}

	n := NeuralConfig{
		APIKey:  strings.TrimSpace(v.GetString("neural.api_key")),
		APIBase: strings.TrimRight(strings.TrimSpace(v.GetString("neural.api_base")), "/"),
		Model:   strings.TrimSpace(v.GetString("neural.model")),
	}
	if n.APIBase == "" {
		n.APIBase = DefaultNeuralAPIBase
	}
	if n.Model == "" {
		n.Model = DefaultNeuralModel
	}

	hasKey := n.APIKey != ""
	switch strings.ToLower(strings.TrimSpace(v.GetString("neural.enabled"))) {
	case "1", "true", "yes", "on":
		n.Enabled = hasKey
	case "0", "false", "no", "off":
		n.Enabled = false
	default:
		n.Enabled = hasKey
	}

	seconds := parseFloat(v.GetString("neural.timeout_s"), DefaultNeuralTimeout)
	n.Timeout = timeout.ClampEmbedding(time.Duration(seconds * float64(time.Second)))
	n.Threshold = ClampThreshold(parseFloat(v.GetString("neural.threshold"), DefaultNeuralThreshold))
	n.Margin = ClampMargin(parseFloat(v.GetString("neural.margin"), DefaultNeuralMargin))

	p.Neural = n
	return p
}

func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "dev"
	}
	if p.Port <= 0 || p.Port > 65535 {
		return errors.Errorf("invalid port %d", p.Port)
	}
	if p.Neural.Active() && !strings.HasPrefix(p.Neural.APIBase, "http") {
		return errors.Wrapf(errInvalidBase, "neural api base %q", p.Neural.APIBase)
	}
	return nil
}

var errInvalidBase = errors.New("api base must be an http(s) url")

func parseFloat(raw string, def float64) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}

// ClampThreshold bounds a semantic acceptance threshold.
func ClampThreshold(v float64) float64 {
	return clamp(v, MinNeuralThreshold, MaxNeuralThreshold)
}

// ClampMargin bounds the required lead over the runner-up intent.
func ClampMargin(v float64) float64 {
	return clamp(v, MinNeuralMargin, MaxNeuralMargin)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
