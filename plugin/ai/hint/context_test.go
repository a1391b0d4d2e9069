package hint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeContext_NonObject(t *testing.T) {
	for _, raw := range []any{nil, "strict", 42.0, []any{"a"}} {
		assert.Equal(t, DefaultContext(), NormalizeContext(raw))
	}
}

func TestNormalizeContext_Fields(t *testing.T) {
	got := NormalizeContext(map[string]any{
		"style":         "STRICT",
		"focus_minutes": 44.6,
		"focus_window":  "Evening",
		"helpful_ratio": 3.0,
	})

	assert.Equal(t, ToneStrict, got.ToneMode)
	assert.Equal(t, 45, got.FocusMinutes)
	assert.Equal(t, WindowEvening, got.FocusWindow)
	assert.Equal(t, 1.0, got.HelpfulRatio)
}

func TestNormalizeContext_InvalidFallsBack(t *testing.T) {
	got := NormalizeContext(map[string]any{
		"tone_mode":     "angry",
		"focus_minutes": "lots",
		"focus_window":  "midnight",
		"helpful_ratio": "n/a",
	})

	assert.Equal(t, ToneSupportive, got.ToneMode)
	assert.Equal(t, DefaultFocusMinutes, got.FocusMinutes)
	assert.Equal(t, WindowAny, got.FocusWindow)
	assert.Equal(t, DefaultHelpfulRatio, got.HelpfulRatio)
}

func TestNormalizeContext_FocusMinutesClamped(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want int
	}{
		{"below range", 3.0, 10},
		{"above range", 999.0, 180},
		{"numeric string", "30", 30},
		{"rounded", 44.6, 45},
		{"huge", 1e20, 180},
		{"huge negative", -1e30, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeContext(map[string]any{"focus_minutes": tt.raw}).FocusMinutes)
		})
	}
}

func TestNormalizeContext_RecentIntentsCapped(t *testing.T) {
	intents := []any{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	got := NormalizeContext(map[string]any{"recent_intents": intents})
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, got.RecentIntents)

	got = NormalizeContext(map[string]any{"recent_intents": []any{"Greeting", "greeting", " evaluation "}})
	assert.Equal(t, []string{"greeting", "evaluation"}, got.RecentIntents)
}

func TestNormalizeContext_AvoidExcludesPreferred(t *testing.T) {
	got := NormalizeContext(map[string]any{
		"preferred_commands": []any{"Cek Target Harian", "evaluasi hari ini"},
		"avoid_commands":     []any{"cek target  harian", "oke gas sekarang"},
	})

	assert.Equal(t, []string{"cek target harian", "evaluasi hari ini"}, got.PreferredCommands)
	assert.Equal(t, []string{"oke gas sekarang"}, got.AvoidCommands)
	assert.True(t, got.Avoids("OKE GAS sekarang"))
	assert.False(t, got.Avoids("cek target harian"))
}
