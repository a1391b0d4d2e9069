package planner

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/zai/plugin/ai/memory"
	"github.com/hrygo/zai/plugin/ai/router"
)

func TestSegments(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"single", "buat task baca buku", []string{"buat task baca buku"}},
		{"semicolon", "buat task a; ingatkan aku", []string{"buat task a", "ingatkan aku"}},
		{"comma dan", "evaluasi hari ini, dan rekomendasi besok", []string{"evaluasi hari ini", "rekomendasi besok"}},
		{"multi word separator", "cek target harian habis itu evaluasi", []string{"cek target harian", "evaluasi"}},
		{"word boundary", "buat task pandangan", []string{"buat task pandangan"}},
		{"case insensitive", "review LALU rekomendasi", []string{"review", "rekomendasi"}},
		{"empty segments dropped", " ; ;evaluasi; ", []string{"evaluasi"}},
		{"blank", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Segments(tt.input))
		})
	}
}

func TestBuild_MissingFields(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		kind    string
		missing []string
		status  string
	}{
		{"no deadline", "buat task baca buku", KindCreateTask, []string{FieldDeadline}, StatusBlocked},
		{"deadline and time", "buat task baca buku deadline besok 19:00", KindCreateTask, []string{}, StatusReady},
		{"no title", "buat task besok", KindCreateTask, []string{}, StatusReady},
		{"no title no deadline", "buat task", KindCreateTask, []string{FieldDeadline, FieldTitle}, StatusBlocked},
		{"assignment with date", "tambah assignment statistik 2025-06-01", KindCreateAssignment, []string{}, StatusReady},
		{"assignment beats task", "buat tugas kuliah", KindCreateAssignment, []string{FieldDeadline, FieldTitle}, StatusBlocked},
		{"reminder needs nothing", "ingatkan aku", KindSetReminder, []string{}, StatusReady},
		{"study plan", "susun jadwal belajar dari jam kosong", KindStudyPlan, []string{}, StatusReady},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Build(tt.input, router.IntentCreateTask, memory.Empty(), NoHint{})
			require.Len(t, f.Actions, 1)
			step := f.Actions[0]
			assert.Equal(t, "step_1", step.ID)
			assert.Equal(t, tt.kind, step.Kind)
			assert.Equal(t, tt.missing, step.Missing)
			assert.Equal(t, tt.status, step.Status)
			assert.Equal(t, tt.input, step.Command)
		})
	}
}

func TestBuild_Clarification(t *testing.T) {
	f := Build("buat task baca buku", router.IntentCreateTask, memory.Empty(), NoHint{})

	assert.True(t, f.RequiresClarification)
	assert.Equal(t, ConfidenceMedium, f.Confidence)
	assert.Equal(t, ModeSingle, f.Mode)
	assert.Equal(t, []Clarification{{ActionID: "step_1", Field: FieldDeadline, Question: "Deadline-nya kapan?"}}, f.Clarifications)
	assert.Equal(t, "1. Buat task baru", f.Summary)
	assert.Equal(t, "Lengkapi detail yang kurang dulu.", f.NextBestAction)
}

func TestBuild_Bundle(t *testing.T) {
	f := Build("buat task baca buku deadline besok; ingatkan aku jam 7", router.IntentCreateTask, memory.Empty(), NoHint{})

	require.Len(t, f.Actions, 2)
	assert.Equal(t, ModeBundle, f.Mode)
	assert.Equal(t, ConfidenceHigh, f.Confidence)
	assert.False(t, f.RequiresClarification)
	assert.Empty(t, f.Clarifications)
	assert.Equal(t, KindCreateTask, f.Actions[0].Kind)
	assert.Equal(t, KindSetReminder, f.Actions[1].Kind)
	assert.Equal(t, "step_2", f.Actions[1].ID)
	assert.Equal(t, "1. Buat task baru -> 2. Atur reminder fokus", f.Summary)
	assert.Equal(t, "Eksekusi: Buat task baru", f.NextBestAction)
}

func TestBuild_ExploreOnlyForSingleSegment(t *testing.T) {
	f := Build("apa kabar dunia", router.IntentFallback, memory.Empty(), NoHint{})
	require.Len(t, f.Actions, 1)
	assert.Equal(t, KindExplore, f.Actions[0].Kind)
	assert.Equal(t, "apa kabar dunia", f.Actions[0].Command)
	assert.Equal(t, ConfidenceHigh, f.Confidence)

	f = Build("apa kabar; evaluasi hari ini", router.IntentEvaluation, memory.Empty(), NoHint{})
	require.Len(t, f.Actions, 1)
	assert.Equal(t, KindEvaluation, f.Actions[0].Kind)
	assert.Equal(t, "step_1", f.Actions[0].ID)
}

func TestBuild_Caps(t *testing.T) {
	msg := "buat task; buat task; buat task; evaluasi; review; refleksi; rekomendasi"
	f := Build(msg, router.IntentCreateTask, memory.Empty(), NoHint{})

	assert.Len(t, f.Actions, MaxActions)
	assert.Len(t, f.Clarifications, MaxClarifications)
	assert.Equal(t, "step_2", f.Clarifications[2].ActionID)
}

func TestBuild_Empty(t *testing.T) {
	f := Build("  ", router.IntentFallback, memory.Empty(), NoHint{})

	assert.NotNil(t, f.Actions)
	assert.NotNil(t, f.Clarifications)
	assert.Empty(t, f.Actions)
	assert.Equal(t, ConfidenceLow, f.Confidence)
	assert.Equal(t, ModeSingle, f.Mode)
	assert.Equal(t, "Belum ada rencana eksekusi yang jelas.", f.Summary)
	assert.Equal(t, "Jelaskan kebutuhan utamamu dulu.", f.NextBestAction)
}

func TestBuild_MemoryClarifications(t *testing.T) {
	mem := memory.Empty()
	mem.UnresolvedFields = []string{"title", "deadline", "topic"}

	f := Build("apa kabar dunia", router.IntentFallback, mem, NoHint{})
	assert.Equal(t, []Clarification{
		{ActionID: MemoryActionID, Field: FieldTitle, Question: "Judul/tujuannya apa?"},
		{ActionID: MemoryActionID, Field: FieldDeadline, Question: "Deadline-nya kapan?"},
	}, f.Clarifications)
	assert.True(t, f.RequiresClarification)
	assert.Equal(t, ConfidenceMedium, f.Confidence)

	// Only the fallback intent looks at memory.
	f = Build("apa kabar dunia", router.IntentGreeting, mem, NoHint{})
	assert.Empty(t, f.Clarifications)

	// Step clarifications win over memory.
	f = Build("buat task baca buku", router.IntentFallback, mem, NoHint{})
	require.Len(t, f.Clarifications, 1)
	assert.Equal(t, "step_1", f.Clarifications[0].ActionID)
}

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestParseHint(t *testing.T) {
	assert.Equal(t, NoHint{}, ParseHint(nil))
	assert.Equal(t, NoHint{}, ParseHint("actions"))
	assert.Equal(t, NoHint{}, ParseHint(decode(t, `[1,2]`)))
	assert.Equal(t, NoHint{}, ParseHint(decode(t, `{"foo":1}`)))

	h := ParseHint(decode(t, `{
		"actions": [
			{"kind": "Create_Task", "summary": "Buat task", "command": "buat task x", "missing": ["Deadline", "deadline", "title", "a", "b"]},
			"junk",
			{"id": "custom", "summary": "Evaluasi"}
		],
		"clarifications": [{"field": "Deadline"}, {"question": "no field"}],
		"confidence": "HIGH",
		"mode": "parallel"
	}`))
	ext, ok := h.(ExternalFrame)
	require.True(t, ok)

	require.Len(t, ext.Actions, 2)
	assert.Equal(t, "step_1", ext.Actions[0].ID)
	assert.Equal(t, "create_task", ext.Actions[0].Kind)
	assert.Equal(t, []string{"deadline", "title", "a"}, ext.Actions[0].Missing)
	assert.Equal(t, StatusBlocked, ext.Actions[0].Status)
	assert.Equal(t, "custom", ext.Actions[1].ID)
	assert.Equal(t, KindExplore, ext.Actions[1].Kind)
	assert.Equal(t, StatusReady, ext.Actions[1].Status)

	require.Len(t, ext.Clarifications, 1)
	assert.Equal(t, "Deadline-nya kapan?", ext.Clarifications[0].Question)
	assert.Equal(t, ConfidenceHigh, ext.Confidence)
	assert.Empty(t, ext.Mode)
}

func TestBuild_ExternalFrameOverrides(t *testing.T) {
	hint := ParseHint(decode(t, `{
		"actions": [
			{"id": "a1", "kind": "create_task", "summary": "Task A", "missing": ["deadline"]},
			{"id": "a2", "kind": "set_reminder", "summary": "Reminder"}
		],
		"clarifications": [{"action_id": "a1", "field": "deadline", "question": "Kapan?"}],
		"requires_clarification": false,
		"confidence": "high"
	}`))

	f := Build("halo", router.IntentGreeting, memory.Empty(), hint)
	assert.Equal(t, ModeBundle, f.Mode)
	assert.Equal(t, ConfidenceHigh, f.Confidence)
	assert.True(t, f.RequiresClarification)
	assert.Equal(t, "a1", f.Actions[0].ID)
	assert.Equal(t, "Kapan?", f.Clarifications[0].Question)
	assert.Equal(t, "1. Task A -> 2. Reminder", f.Summary)
	assert.Equal(t, "Lengkapi detail yang kurang dulu.", f.NextBestAction)

	// An empty external frame derives everything.
	f = Build("buat task baca buku", router.IntentCreateTask, memory.Empty(), ParseHint(decode(t, `{"summary": "Rencana eksternal"}`)))
	assert.Empty(t, f.Actions)
	assert.Equal(t, ConfidenceLow, f.Confidence)
	assert.Equal(t, "Rencana eksternal", f.Summary)
}

func TestFrame_ClarificationFields(t *testing.T) {
	f := Build("buat task", router.IntentCreateTask, memory.Empty(), NoHint{})
	assert.Equal(t, []string{FieldDeadline, FieldTitle}, f.ClarificationFields())
}
