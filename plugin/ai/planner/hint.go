package planner

import (
	"fmt"
	"strings"

	"github.com/hrygo/zai/plugin/ai/textutil"
)

// Hint is the caller-supplied planner input: either NoHint or an ExternalFrame.
type Hint interface {
	isHint()
}

// NoHint means the plan is inferred locally.
type NoHint struct{}

// ExternalFrame is a validated plan produced by an external planning service.
// Confidence and Mode are empty when the caller did not supply a valid value.
type ExternalFrame struct {
	Actions        []Step
	Clarifications []Clarification
	Summary        string
	NextBestAction string
	Confidence     string
	Mode           string
}

func (NoHint) isHint()        {}
func (ExternalFrame) isHint() {}

var hintKeys = []string{"actions", "clarifications", "summary", "confidence", "mode", "next_best_action", "requires_clarification"}

// ParseHint validates raw (decoded JSON). Anything that is not an object with
// at least one recognized key is NoHint.
func ParseHint(raw any) Hint {
	m, ok := textutil.Object(raw)
	if !ok {
		return NoHint{}
	}
	recognized := false
	for _, k := range hintKeys {
		if _, ok := m[k]; ok {
			recognized = true
			break
		}
	}
	if !recognized {
		return NoHint{}
	}

	ext := ExternalFrame{
		Actions:        parseActions(m["actions"]),
		Clarifications: parseClarifications(m["clarifications"]),
		Summary:        textutil.Clip(textutil.String(m["summary"]), 220),
		NextBestAction: textutil.Clip(textutil.String(m["next_best_action"]), 160),
	}
	switch c := strings.ToLower(strings.TrimSpace(textutil.String(m["confidence"]))); c {
	case ConfidenceLow, ConfidenceMedium, ConfidenceHigh:
		ext.Confidence = c
	}
	switch mode := strings.ToLower(strings.TrimSpace(textutil.String(m["mode"]))); mode {
	case ModeSingle, ModeBundle:
		ext.Mode = mode
	}
	return ext
}

func parseActions(v any) []Step {
	items, _ := textutil.List(v)
	out := make([]Step, 0, min(len(items), MaxActions))
	for _, item := range items {
		if len(out) == MaxActions {
			break
		}
		m, ok := textutil.Object(item)
		if !ok {
			continue
		}
		missing := make([]string, 0, MaxMissing)
		for _, field := range textutil.Strings(m["missing"]) {
			missing = append(missing, textutil.Clip(field, 20))
		}
		missing = textutil.OrderedSet(missing, MaxMissing)

		kind := strings.ToLower(textutil.Clip(textutil.String(m["kind"]), 40))
		if kind == "" {
			kind = KindExplore
		}
		id := textutil.Clip(textutil.String(m["id"]), 40)
		if id == "" {
			id = fmt.Sprintf("step_%d", len(out)+1)
		}
		out = append(out, Step{
			ID:      id,
			Kind:    kind,
			Summary: textutil.Clip(textutil.String(m["summary"]), 120),
			Command: textutil.Clip(textutil.String(m["command"]), 180),
			Missing: missing,
			Status:  statusFor(missing),
		})
	}
	return out
}

func parseClarifications(v any) []Clarification {
	items, _ := textutil.List(v)
	out := make([]Clarification, 0, min(len(items), MaxClarifications))
	for _, item := range items {
		if len(out) == MaxClarifications {
			break
		}
		m, ok := textutil.Object(item)
		if !ok {
			continue
		}
		field := strings.ToLower(textutil.Clip(textutil.String(m["field"]), 24))
		if field == "" {
			continue
		}
		question := textutil.Clip(textutil.String(m["question"]), 120)
		if question == "" {
			question = QuestionFor(field)
		}
		out = append(out, Clarification{
			ActionID: textutil.Clip(textutil.String(m["action_id"]), 40),
			Field:    field,
			Question: question,
		})
	}
	return out
}
