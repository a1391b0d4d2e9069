package memory

import (
	"strings"

	"github.com/hrygo/zai/plugin/ai/textutil"
)

const feedbackHistoryLimit = 12

// IntentFeedback counts votes for one intent.
type IntentFeedback struct {
	Helpful    int `json:"helpful"`
	NotHelpful int `json:"not_helpful"`
}

// FeedbackProfile is the learned preference record the caller persists
// alongside memory. Its command lists feed the context hint on later turns.
type FeedbackProfile struct {
	Total             int                       `json:"total"`
	Helpful           int                       `json:"helpful"`
	NotHelpful        int                       `json:"not_helpful"`
	HelpfulRatio      float64                   `json:"helpful_ratio"`
	ByIntent          map[string]IntentFeedback `json:"by_intent"`
	PreferredCommands []string                  `json:"preferred_commands"`
	AvoidCommands     []string                  `json:"avoid_commands"`
}

// Feedback is one helpful / not helpful vote on a reply.
type Feedback struct {
	ResponseID        string `json:"response_id,omitempty"`
	Intent            string `json:"intent,omitempty"`
	Helpful           bool   `json:"helpful"`
	SuggestionCommand string `json:"suggestion_command,omitempty"`
}

// NormalizeFeedbackProfile coerces raw into a FeedbackProfile.
func NormalizeFeedbackProfile(raw any) FeedbackProfile {
	src, _ := textutil.Object(raw)

	p := FeedbackProfile{ByIntent: map[string]IntentFeedback{}}
	if byIntent, ok := textutil.Object(src["by_intent"]); ok {
		for key, value := range byIntent {
			intent := strings.ToLower(strings.TrimSpace(key))
			row, ok := textutil.Object(value)
			if intent == "" || !ok {
				continue
			}
			p.ByIntent[intent] = IntentFeedback{
				Helpful:    nonNegative(number(row["helpful"])),
				NotHelpful: nonNegative(number(row["not_helpful"])),
			}
		}
	}

	p.PreferredCommands = commandSet(textutil.Strings(src["preferred_commands"]), nil)
	p.AvoidCommands = commandSet(textutil.Strings(src["avoid_commands"]), p.PreferredCommands)

	p.Total = nonNegative(number(src["total"]))
	p.Helpful = nonNegative(number(src["helpful"]))
	p.NotHelpful = nonNegative(number(src["not_helpful"]))
	if r, ok := textutil.Number(src["helpful_ratio"]); ok {
		p.HelpfulRatio = textutil.Clamp(r, 0, 1)
	} else if p.Total > 0 {
		p.HelpfulRatio = ratio(p.Helpful, p.NotHelpful)
	} else {
		p.HelpfulRatio = 0.5
	}
	return p
}

// NormalizeFeedback reads a vote. It reports false unless "helpful" is a boolean.
func NormalizeFeedback(raw any) (Feedback, bool) {
	src, ok := textutil.Object(raw)
	if !ok {
		return Feedback{}, false
	}
	helpful, ok := src["helpful"].(bool)
	if !ok {
		return Feedback{}, false
	}
	return Feedback{
		ResponseID:        textutil.Clip(textutil.String(src["response_id"]), 80),
		Intent:            strings.ToLower(textutil.Clip(textutil.String(src["intent"]), 80)),
		Helpful:           helpful,
		SuggestionCommand: textutil.Clip(textutil.String(textutil.Lookup(src, "suggestion_command", "command")), 240),
	}, true
}

// ApplyFeedback folds fb into p and returns the updated profile. The command
// moves to the front of the preferred or avoid list and leaves the other one.
func ApplyFeedback(p FeedbackProfile, fb Feedback) FeedbackProfile {
	out := p
	out.ByIntent = make(map[string]IntentFeedback, len(p.ByIntent)+1)
	for k, v := range p.ByIntent {
		out.ByIntent[k] = v
	}

	out.Total++
	if fb.Helpful {
		out.Helpful++
	} else {
		out.NotHelpful++
	}
	out.HelpfulRatio = ratio(out.Helpful, out.NotHelpful)

	if intent := strings.ToLower(strings.TrimSpace(fb.Intent)); intent != "" {
		row := out.ByIntent[intent]
		if fb.Helpful {
			row.Helpful++
		} else {
			row.NotHelpful++
		}
		out.ByIntent[intent] = row
	}

	if cmd := textutil.CommandKey(fb.SuggestionCommand); cmd != "" {
		if fb.Helpful {
			out.PreferredCommands = commandSet(append([]string{cmd}, p.PreferredCommands...), nil)
			out.AvoidCommands = commandSet(p.AvoidCommands, []string{cmd})
		} else {
			out.AvoidCommands = commandSet(append([]string{cmd}, p.AvoidCommands...), nil)
			out.PreferredCommands = commandSet(p.PreferredCommands, []string{cmd})
		}
	}
	if out.PreferredCommands == nil {
		out.PreferredCommands = []string{}
	}
	if out.AvoidCommands == nil {
		out.AvoidCommands = []string{}
	}
	return out
}

func commandSet(items, exclude []string) []string {
	keys := make([]string, 0, len(items))
	for _, item := range items {
		key := textutil.CommandKey(item)
		if textutil.Contains(exclude, key) {
			continue
		}
		keys = append(keys, key)
	}
	return textutil.OrderedSet(keys, feedbackHistoryLimit)
}

func number(v any) float64 {
	f, _ := textutil.Number(v)
	return f
}

func ratio(helpful, notHelpful int) float64 {
	den := helpful + notHelpful
	if den < 1 {
		den = 1
	}
	return float64(helpful) / float64(den)
}
