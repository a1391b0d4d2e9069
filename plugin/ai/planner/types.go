// Package planner decomposes a message into an ordered execution plan with
// missing-field clarifications.
package planner

// Action kinds.
const (
	KindCreateTask       = "create_task"
	KindCreateAssignment = "create_assignment"
	KindSetReminder      = "set_reminder"
	KindEvaluation       = "evaluation"
	KindRecommendation   = "recommendation"
	KindStudyPlan        = "study_plan"
	KindDailyTarget      = "daily_target"
	KindExplore          = "explore"
)

const (
	StatusReady   = "ready"
	StatusBlocked = "blocked"

	ModeSingle = "single"
	ModeBundle = "bundle"

	ConfidenceLow    = "low"
	ConfidenceMedium = "medium"
	ConfidenceHigh   = "high"
)

// Required fields a step may be missing.
const (
	FieldDeadline = "deadline"
	FieldTitle    = "title"
)

// MemoryActionID marks clarifications carried over from memory rather than
// raised by a step of this plan.
const MemoryActionID = "memory"

const (
	MaxActions        = 5
	MaxClarifications = 4
	MaxMissing        = 3

	maxMemoryClarifications = 2
)

// Fixed sentences.
const (
	summaryNoPlan       = "Belum ada rencana eksekusi yang jelas."
	nextCompleteDetails = "Lengkapi detail yang kurang dulu."
	nextBeSpecific      = "Jelaskan kebutuhan utamamu dulu."
	nextExecutePrefix   = "Eksekusi: "
)

// Step is one planned action.
type Step struct {
	ID      string   `json:"id"`
	Kind    string   `json:"kind"`
	Summary string   `json:"summary"`
	Status  string   `json:"status"`
	Command string   `json:"command"`
	Missing []string `json:"missing"`
}

// Clarification asks the user for one missing field.
type Clarification struct {
	ActionID string `json:"action_id"`
	Field    string `json:"field"`
	Question string `json:"question"`
}

// Frame is the full plan for one message.
type Frame struct {
	Mode                  string          `json:"mode"`
	Confidence            string          `json:"confidence"`
	RequiresClarification bool            `json:"requires_clarification"`
	Clarifications        []Clarification `json:"clarifications"`
	Actions               []Step          `json:"actions"`
	Summary               string          `json:"summary"`
	NextBestAction        string          `json:"next_best_action"`
}

// ClarificationFields returns the clarification fields in order.
func (f Frame) ClarificationFields() []string {
	out := make([]string, 0, len(f.Clarifications))
	for _, c := range f.Clarifications {
		out = append(out, c.Field)
	}
	return out
}

// statusFor derives a step status from its missing fields.
func statusFor(missing []string) string {
	if len(missing) > 0 {
		return StatusBlocked
	}
	return StatusReady
}

// QuestionFor returns the fixed clarification question for field.
func QuestionFor(field string) string {
	if field == FieldDeadline {
		return "Deadline-nya kapan?"
	}
	return "Judul/tujuannya apa?"
}
