package profile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var neuralEnvVars = []string{
	"CHATBOT_NEURAL_INTENT_ENABLED",
	"CHATBOT_LLM_API_KEY",
	"OPENAI_API_KEY",
	"CHATBOT_NEURAL_API_BASE",
	"OPENAI_API_BASE",
	"CHATBOT_NEURAL_EMBED_MODEL",
	"CHATBOT_NEURAL_TIMEOUT_S",
	"CHATBOT_NEURAL_INTENT_THRESHOLD",
	"CHATBOT_NEURAL_INTENT_MARGIN",
	"ZAI_MODE",
	"ZAI_ADDR",
	"ZAI_PORT",
}

// clearNeuralEnv blanks every key for the duration of the test.
func clearNeuralEnv(t *testing.T) {
	t.Helper()
	for _, key := range neuralEnvVars {
		t.Setenv(key, "")
	}
}

func TestProfileDefaults(t *testing.T) {
	clearNeuralEnv(t)

	p := FromEnv()
	require.NoError(t, p.Validate())

	assert.Equal(t, "dev", p.Mode)
	assert.Equal(t, DefaultPort, p.Port)
	assert.False(t, p.Neural.Enabled)
	assert.False(t, p.Neural.Active())
	assert.Equal(t, "https://api.openai.com", p.Neural.APIBase)
	assert.Equal(t, "text-embedding-3-small", p.Neural.Model)
	assert.Equal(t, 900*time.Millisecond, p.Neural.Timeout)
	assert.InDelta(t, 0.76, p.Neural.Threshold, 1e-9)
	assert.InDelta(t, 0.02, p.Neural.Margin, 1e-9)
}

func TestNeuralEnabledFlag(t *testing.T) {
	tests := []struct {
		name    string
		flag    string
		apiKey  string
		enabled bool
	}{
		{"no key no flag", "", "", false},
		{"key no flag", "", "sk-test", true},
		{"key flag on", "on", "sk-test", true},
		{"key flag yes", "YES", "sk-test", true},
		{"no key flag true", "true", "", false},
		{"key flag off", "off", "sk-test", false},
		{"key flag 0", "0", "sk-test", false},
		{"key flag garbage", "maybe", "sk-test", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearNeuralEnv(t)
			t.Setenv("CHATBOT_NEURAL_INTENT_ENABLED", tt.flag)
			t.Setenv("CHATBOT_LLM_API_KEY", tt.apiKey)

			p := FromEnv()
			assert.Equal(t, tt.enabled, p.Neural.Enabled)
		})
	}
}

func TestNeuralKeyAndBaseFallback(t *testing.T) {
	clearNeuralEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-legacy")
	t.Setenv("OPENAI_API_BASE", "https://proxy.example.com/")

	p := FromEnv()
	assert.Equal(t, "sk-legacy", p.Neural.APIKey)
	assert.Equal(t, "https://proxy.example.com", p.Neural.APIBase)
	assert.Equal(t, DefaultNeuralModel, p.Neural.Model)

	t.Setenv("CHATBOT_LLM_API_KEY", "sk-primary")
	t.Setenv("CHATBOT_NEURAL_API_BASE", "https://embed.example.com")
	p = FromEnv()
	assert.Equal(t, "sk-primary", p.Neural.APIKey)
	assert.Equal(t, "https://embed.example.com", p.Neural.APIBase)
}

func TestNeuralClamps(t *testing.T) {
	tests := []struct {
		name      string
		timeout   string
		threshold string
		margin    string
		wantTO    time.Duration
		wantTh    float64
		wantMg    float64
	}{
		{"below range", "0.01", "0.1", "-1", 300 * time.Millisecond, 0.55, 0},
		{"above range", "10", "0.99", "0.5", 3 * time.Second, 0.92, 0.2},
		{"in range", "1.5", "0.8", "0.05", 1500 * time.Millisecond, 0.8, 0.05},
		{"unparseable", "fast", "high", "wide", 900 * time.Millisecond, 0.76, 0.02},
		{"nan", "NaN", "NaN", "NaN", 900 * time.Millisecond, 0.76, 0.02},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearNeuralEnv(t)
			t.Setenv("CHATBOT_NEURAL_TIMEOUT_S", tt.timeout)
			t.Setenv("CHATBOT_NEURAL_INTENT_THRESHOLD", tt.threshold)
			t.Setenv("CHATBOT_NEURAL_INTENT_MARGIN", tt.margin)

			p := FromEnv()
			assert.Equal(t, tt.wantTO, p.Neural.Timeout)
			assert.InDelta(t, tt.wantTh, p.Neural.Threshold, 1e-9)
			assert.InDelta(t, tt.wantMg, p.Neural.Margin, 1e-9)
		})
	}
}

func TestValidate(t *testing.T) {
	p := &Profile{Mode: "weird", Port: 8081}
	require.NoError(t, p.Validate())
	assert.Equal(t, "dev", p.Mode)

	p = &Profile{Mode: "prod", Port: 0}
	assert.Error(t, p.Validate())

	p = &Profile{Mode: "prod", Port: 8081, Neural: NeuralConfig{Enabled: true, APIKey: "k", APIBase: "ftp://x"}}
	assert.Error(t, p.Validate())
}
