// Package memory normalizes the caller's memory snapshot and computes the
// snapshot the caller should persist after a turn. Storage belongs to the caller.
package memory

import (
	"math"
	"strings"

	"github.com/hrygo/zai/plugin/ai/textutil"
)

// DefaultTopic is the focus topic when nothing more specific is known.
const DefaultTopic = "general"

const (
	maxFocusTopicLen = 48
	maxRecent        = 8
	maxUnresolved    = 8
)

// Hint is the normalized memory snapshot.
type Hint struct {
	FocusTopic         string   `json:"focus_topic"`
	RecentTopics       []string `json:"recent_topics"`
	RecentIntents      []string `json:"recent_intents"`
	UnresolvedFields   []string `json:"unresolved_fields"`
	PendingTasks       int      `json:"pending_tasks"`
	PendingAssignments int      `json:"pending_assignments"`
	AvgMood7d          float64  `json:"avg_mood_7d"`
}

// Empty is the snapshot of a caller with no memory.
func Empty() Hint {
	return Hint{
		FocusTopic:       DefaultTopic,
		RecentTopics:     []string{},
		RecentIntents:    []string{},
		UnresolvedFields: []string{},
	}
}

// Normalize coerces raw (decoded JSON) into a Hint. Fields may sit at the top
// level or under a nested "memory" object; top-level values win.
func Normalize(raw any) Hint {
	out := Empty()
	top, ok := textutil.Object(raw)
	if !ok {
		return out
	}
	nested, _ := textutil.Object(top["memory"])

	out.RecentTopics = textutil.OrderedSet(textutil.Strings(pickList(top, nested, "recent_topics")), maxRecent)
	out.RecentIntents = textutil.OrderedSet(textutil.Strings(pickList(top, nested, "recent_intents")), maxRecent)
	out.UnresolvedFields = textutil.OrderedSet(unresolvedFields(pickList(top, nested, "unresolved_fields", "unresolved")), maxUnresolved)

	focus := pickString(top, nested, "focus_topic")
	if focus == "" && len(out.RecentTopics) > 0 {
		focus = out.RecentTopics[0]
	}
	if focus == "" {
		focus = DefaultTopic
	}
	out.FocusTopic = strings.ToLower(textutil.Clip(focus, maxFocusTopicLen))

	out.PendingTasks = nonNegative(pickNumber(top, nested, "pending_tasks"))
	out.PendingAssignments = nonNegative(pickNumber(top, nested, "pending_assignments"))
	out.AvgMood7d = pickNumber(top, nested, "avg_mood_7d")
	return out
}

// HasUnresolved reports whether field is carried over as unresolved.
func (h Hint) HasUnresolved(field string) bool {
	return textutil.Contains(h.UnresolvedFields, field)
}

func pickList(top, nested map[string]any, keys ...string) any {
	for _, src := range []map[string]any{top, nested} {
		for _, k := range keys {
			if l, ok := textutil.List(src[k]); ok {
				return l
			}
		}
	}
	return nil
}

func pickString(top, nested map[string]any, key string) string {
	for _, src := range []map[string]any{top, nested} {
		if s := strings.TrimSpace(textutil.String(src[key])); s != "" {
			return s
		}
	}
	return ""
}

func pickNumber(top, nested map[string]any, key string) float64 {
	for _, src := range []map[string]any{top, nested} {
		if f, ok := textutil.Number(src[key]); ok {
			return f
		}
	}
	return 0
}

// unresolvedFields accepts both plain field names and {"field": ...} objects.
func unresolvedFields(v any) []string {
	items, _ := textutil.List(v)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if m, ok := textutil.Object(item); ok {
			item = m["field"]
		}
		if s := textutil.String(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// nonNegative rounds a decoded count, bounded to [0, MaxInt32].
func nonNegative(f float64) int {
	if f <= 0 {
		return 0
	}
	return int(math.Round(math.Min(f, math.MaxInt32)))
}
