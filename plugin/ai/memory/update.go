package memory

import (
	"regexp"

	"github.com/hrygo/zai/plugin/ai/textutil"
)

const (
	maxTopicsPerMessage = 5
	maxUpdateUnresolved = 4
)

type topicGroup struct {
	tag     string
	pattern *regexp.Regexp
}

// topicGroups is checked in order; every matching group contributes its tag.
var topicGroups = []topicGroup{
	{"kuliah", regexp.MustCompile(`(?i)\b(kuliah|assignment|deadline|ujian|quiz|makalah|study|belajar)\b`)},
	{"target", regexp.MustCompile(`(?i)\b(target|goal|prioritas)\b`)},
	{"reminder", regexp.MustCompile(`(?i)\b(reminder|ingat|ingatkan|ingetin|alarm|notifikasi)\b`)},
	{"checkin", regexp.MustCompile(`(?i)\b(check-?in|progres|progress|sync)\b`)},
	{"evaluation", regexp.MustCompile(`(?i)\b(evaluasi|review|refleksi)\b`)},
	{"mood", regexp.MustCompile(`(?i)\b(mood|lelah|capek|burnout|stress)\b`)},
	{"couple", regexp.MustCompile(`(?i)\b(couple|pasangan|partner)\b`)},
}

// Topics returns the topic tags found in message, or [DefaultTopic] when none match.
func Topics(message string) []string {
	tags := make([]string, 0, len(topicGroups))
	for _, g := range topicGroups {
		if len(tags) == maxTopicsPerMessage {
			break
		}
		if g.pattern.MatchString(message) {
			tags = append(tags, g.tag)
		}
	}
	if len(tags) == 0 {
		return []string{DefaultTopic}
	}
	return tags
}

// BuildUpdate computes the snapshot the caller should persist after this turn.
// unresolved is the ordered list of clarification fields the planner raised.
func BuildUpdate(intent, message string, prior Hint, unresolved []string) Hint {
	topics := Topics(message)

	focus := prior.FocusTopic
	if topics[0] != DefaultTopic {
		focus = topics[0]
	}
	if focus == "" {
		focus = DefaultTopic
	}

	return Hint{
		FocusTopic:         focus,
		RecentTopics:       textutil.OrderedSet(append(append([]string{}, topics...), prior.RecentTopics...), maxRecent),
		RecentIntents:      textutil.OrderedSet(append([]string{intent}, prior.RecentIntents...), maxRecent),
		UnresolvedFields:   textutil.OrderedSet(unresolved, maxUpdateUnresolved),
		PendingTasks:       prior.PendingTasks,
		PendingAssignments: prior.PendingAssignments,
		AvgMood7d:          prior.AvgMood7d,
	}
}
