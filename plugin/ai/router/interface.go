// Package router provides the intent classification service for the chat pipeline.
package router

import "context"

// IntentClassifier maps a message to exactly one Intent.
type IntentClassifier interface {
	// Classify never fails: the semantic layer is best-effort and any error
	// inside it degrades to rule-only classification.
	// Implementation: rule cascade (0ms) -> embedding centroids (~300ms) -> fallback
	Classify(ctx context.Context, input string) Classification
}

// Intent represents the type of user intent.
type Intent string

const (
	IntentCreateAssignment Intent = "create_assignment"
	IntentCreateTask       Intent = "create_task"
	IntentSetReminder      Intent = "set_reminder"
	IntentDailyBrief       Intent = "daily_brief"
	IntentToxicMotivation  Intent = "toxic_motivation"
	IntentEvaluation       Intent = "evaluation"
	IntentRecommendTask    Intent = "recommend_task"
	IntentStudySchedule    Intent = "study_schedule"
	IntentAffirmation      Intent = "affirmation"
	IntentCheckDailyTarget Intent = "check_daily_target"
	IntentReminderAck      Intent = "reminder_ack"
	IntentCheckinProgress  Intent = "checkin_progress"
	IntentGreeting         Intent = "greeting"
	IntentFallback         Intent = "fallback"
)

// Source names the layer that produced a classification.
type Source string

const (
	SourceRule     Source = "rule"
	SourceSemantic Source = "semantic"
	SourceFallback Source = "fallback"
)

// Classification is the result of Classify.
type Classification struct {
	Intent Intent  `json:"intent"`
	Source Source  `json:"source"`
	Score  float64 `json:"score,omitempty"`  // best cosine similarity (semantic only)
	Margin float64 `json:"margin,omitempty"` // best minus second best (semantic only)
}

// String returns the intent label.
func (i Intent) String() string {
	return string(i)
}
