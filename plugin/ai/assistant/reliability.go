package assistant

import (
	"regexp"
	"strings"

	"github.com/hrygo/zai/plugin/ai/planner"
	"github.com/hrygo/zai/plugin/ai/router"
	"github.com/hrygo/zai/plugin/ai/textutil"
)

// Reliability statuses.
const (
	ReliabilitySafe               = "safe"
	ReliabilityAmbiguous          = "ambiguous"
	ReliabilityNeedsClarification = "needs_clarification"
)

const (
	// SafeScore is the minimum score for a plan without missing fields to be executed.
	SafeScore = 78

	baseScore         = 92
	noPlanPenalty     = 28
	multiPenalty      = 10
	missingPenalty    = 18
	maxMissingPenalty = 45
	ambiguityPenalty  = 14
	maxQuestions      = 3

	genericQuestion = "Boleh detailkan lagi supaya aku eksekusi tepat?"
)

var (
	createVerb     = regexp.MustCompile(`(?i)\b(?:buat|buatkan|tambah|add|create)\b`)
	ambiguousWords = regexp.MustCompile(`(?i)\b(?:ini|itu|nanti|aja|pokoknya|seperti biasa)\b`)
)

// Reliability tells the caller whether the plan is safe to execute without
// asking back.
type Reliability struct {
	Status        string   `json:"status"`
	Score         int      `json:"score"`
	MissingFields []string `json:"missing_fields"`
	Questions     []string `json:"questions"`
	ShouldExecute bool     `json:"should_execute"`
}

// Assess scores frame for message. It never changes the reply.
func Assess(message string, frame planner.Frame, intent router.Intent) Reliability {
	missing := make([]string, 0, len(frame.Clarifications))
	for _, c := range frame.Clarifications {
		field := strings.ToLower(strings.TrimSpace(c.Field))
		if field != "" && !textutil.Contains(missing, field) {
			missing = append(missing, field)
		}
	}

	score := baseScore
	if len(frame.Actions) == 0 || intent == router.IntentFallback {
		score -= noPlanPenalty
	}
	if len(createVerb.FindAllStringIndex(message, -1)) > 1 || len(frame.Actions) > 1 {
		score -= multiPenalty
	}
	score -= min(maxMissingPenalty, missingPenalty*len(missing))
	if ambiguousWords.MatchString(message) {
		score -= ambiguityPenalty
	}
	score = max(0, min(100, score))

	status := ReliabilitySafe
	switch {
	case len(missing) > 0:
		status = ReliabilityNeedsClarification
	case score < SafeScore:
		status = ReliabilityAmbiguous
	}

	questions := make([]string, 0, maxQuestions)
	for _, c := range frame.Clarifications {
		if len(questions) == maxQuestions {
			break
		}
		q := strings.TrimSpace(c.Question)
		if q != "" && !textutil.Contains(questions, q) {
			questions = append(questions, q)
		}
	}
	if len(questions) == 0 && status != ReliabilitySafe {
		questions = append(questions, genericQuestion)
	}

	return Reliability{
		Status:        status,
		Score:         score,
		MissingFields: missing,
		Questions:     questions,
		ShouldExecute: status == ReliabilitySafe,
	}
}
