package memory

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_NonObject(t *testing.T) {
	assert.Equal(t, Empty(), Normalize(nil))
	assert.Equal(t, Empty(), Normalize("memory"))
}

func TestNormalize_NestedAndAliases(t *testing.T) {
	got := Normalize(map[string]any{
		"pending_tasks": -4.0,
		"memory": map[string]any{
			"recent_topics":       []any{"Kuliah", "target", "kuliah"},
			"unresolved":          []any{map[string]any{"field": "Deadline"}, "title", 3.0},
			"pending_assignments": 2.0,
			"avg_mood_7d":         3.5,
		},
	})

	assert.Equal(t, "kuliah", got.FocusTopic, "first recent topic when focus_topic is missing")
	assert.Equal(t, []string{"kuliah", "target"}, got.RecentTopics)
	assert.Equal(t, []string{"deadline", "title", "3"}, got.UnresolvedFields)
	assert.Equal(t, 0, got.PendingTasks)
	assert.Equal(t, 2, got.PendingAssignments)
	assert.Equal(t, 3.5, got.AvgMood7d)
	assert.True(t, got.HasUnresolved("deadline"))
}

func TestNormalize_CountsStayNonNegative(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want int
	}{
		{"negative", -4.0, 0},
		{"rounded", 2.6, 3},
		{"beyond int64", 1e30, math.MaxInt32},
		{"beyond int32", 1e19, math.MaxInt32},
		{"numeric string", "7", 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(map[string]any{"pending_tasks": tt.raw, "pending_assignments": tt.raw})
			assert.Equal(t, tt.want, got.PendingTasks)
			assert.Equal(t, tt.want, got.PendingAssignments)

			p := NormalizeFeedbackProfile(map[string]any{"total": tt.raw, "helpful": tt.raw})
			assert.Equal(t, tt.want, p.Total)
			assert.Equal(t, tt.want, p.Helpful)
		})
	}
}

func TestNormalize_TopLevelWins(t *testing.T) {
	got := Normalize(map[string]any{
		"focus_topic":       "  HABIT  ",
		"unresolved_fields": []any{"title"},
		"memory": map[string]any{
			"focus_topic": "kuliah",
			"unresolved":  []any{"deadline"},
		},
	})
	assert.Equal(t, "habit", got.FocusTopic)
	assert.Equal(t, []string{"title"}, got.UnresolvedFields)
}

func TestNormalize_Caps(t *testing.T) {
	ten := []any{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	got := Normalize(map[string]any{
		"recent_topics":     ten,
		"recent_intents":    ten,
		"unresolved_fields": ten,
		"focus_topic":       "abcdefghijklmnopqrstuvwxyzabcdefghijklmnopqrstuvwxyz",
	})
	assert.Len(t, got.RecentTopics, 8)
	assert.Len(t, got.RecentIntents, 8)
	assert.Len(t, got.UnresolvedFields, 8)
	assert.Len(t, got.FocusTopic, 48)
}

func TestTopics(t *testing.T) {
	tests := []struct {
		msg  string
		want []string
	}{
		{"halo", []string{"general"}},
		{"cek target harian pasangan", []string{"target", "couple"}},
		{"deadline makalah besok, capek banget", []string{"kuliah", "mood"}},
		{"check-in progres dan evaluasi, reminder target belajar bareng partner lelah",
			[]string{"kuliah", "target", "reminder", "checkin", "evaluation"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Topics(tt.msg), tt.msg)
	}
}

func TestBuildUpdate(t *testing.T) {
	prior := Hint{
		FocusTopic:         "habit",
		RecentTopics:       []string{"target", "habit"},
		RecentIntents:      []string{"greeting"},
		PendingTasks:       3,
		PendingAssignments: 1,
		AvgMood7d:          4.2,
	}

	got := BuildUpdate("create_task", "buat task makalah", prior, []string{"deadline", "title", "deadline"})
	assert.Equal(t, "kuliah", got.FocusTopic)
	assert.Equal(t, []string{"kuliah", "target", "habit"}, got.RecentTopics)
	assert.Equal(t, []string{"create_task", "greeting"}, got.RecentIntents)
	assert.Equal(t, []string{"deadline", "title"}, got.UnresolvedFields)
	assert.Equal(t, 3, got.PendingTasks)
	assert.Equal(t, 1, got.PendingAssignments)
	assert.Equal(t, 4.2, got.AvgMood7d)

	// Nothing detected: focus stays inherited.
	got = BuildUpdate("greeting", "halo", prior, nil)
	assert.Equal(t, "habit", got.FocusTopic)
	assert.Equal(t, []string{"general", "target", "habit"}, got.RecentTopics)
	assert.Empty(t, got.UnresolvedFields)
}

func TestFeedback(t *testing.T) {
	_, ok := NormalizeFeedback(map[string]any{"helpful": "yes"})
	assert.False(t, ok)

	fb, ok := NormalizeFeedback(map[string]any{"helpful": true, "intent": "Greeting", "command": "Cek Target Harian"})
	require.True(t, ok)
	assert.Equal(t, "greeting", fb.Intent)

	p := NormalizeFeedbackProfile(map[string]any{
		"avoid_commands": []any{"cek target harian", "oke gas sekarang"},
	})
	assert.Equal(t, 0.5, p.HelpfulRatio)

	p = ApplyFeedback(p, fb)
	assert.Equal(t, 1, p.Total)
	assert.Equal(t, 1.0, p.HelpfulRatio)
	assert.Equal(t, []string{"cek target harian"}, p.PreferredCommands)
	assert.Equal(t, []string{"oke gas sekarang"}, p.AvoidCommands)
	assert.Equal(t, IntentFeedback{Helpful: 1}, p.ByIntent["greeting"])

	p = ApplyFeedback(p, Feedback{Intent: "greeting", Helpful: false, SuggestionCommand: "cek target harian"})
	assert.Equal(t, 2, p.Total)
	assert.Equal(t, 0.5, p.HelpfulRatio)
	assert.Empty(t, p.PreferredCommands)
	assert.Equal(t, []string{"cek target harian", "oke gas sekarang"}, p.AvoidCommands)
	assert.Equal(t, IntentFeedback{Helpful: 1, NotHelpful: 1}, p.ByIntent["greeting"])
}
