// Package hint sanitizes the caller-supplied context hint into a fixed shape.
package hint

import (
	"math"
	"strings"

	"github.com/hrygo/zai/plugin/ai/textutil"
)

// Tone modes.
const (
	ToneSupportive = "supportive"
	ToneStrict     = "strict"
	ToneBalanced   = "balanced"
)

// Focus windows.
const (
	WindowAny       = "any"
	WindowMorning   = "morning"
	WindowAfternoon = "afternoon"
	WindowEvening   = "evening"
)

const (
	DefaultFocusMinutes = 25
	MinFocusMinutes     = 10
	MaxFocusMinutes     = 180

	DefaultHelpfulRatio = 0.5

	maxRecentIntents = 6
	maxCommands      = 6
)

// Context is the normalized context hint.
type Context struct {
	ToneMode          string   `json:"tone_mode"`
	FocusMinutes      int      `json:"focus_minutes"`
	FocusWindow       string   `json:"focus_window"`
	RecentIntents     []string `json:"recent_intents"`
	PreferredCommands []string `json:"preferred_commands"`
	AvoidCommands     []string `json:"avoid_commands"`
	HelpfulRatio      float64  `json:"helpful_ratio"`
}

// DefaultContext is the shape used when no hint was supplied.
func DefaultContext() Context {
	return Context{
		ToneMode:          ToneSupportive,
		FocusMinutes:      DefaultFocusMinutes,
		FocusWindow:       WindowAny,
		RecentIntents:     []string{},
		PreferredCommands: []string{},
		AvoidCommands:     []string{},
		HelpfulRatio:      DefaultHelpfulRatio,
	}
}

// NormalizeContext coerces raw (decoded JSON) into a Context. Anything that is
// not an object yields DefaultContext; invalid fields fall back individually.
func NormalizeContext(raw any) Context {
	out := DefaultContext()
	m, ok := textutil.Object(raw)
	if !ok {
		return out
	}

	tone := strings.ToLower(strings.TrimSpace(textutil.String(textutil.Lookup(m, "tone_mode", "style"))))
	switch tone {
	case ToneSupportive, ToneStrict, ToneBalanced:
		out.ToneMode = tone
	}

	if minutes, ok := textutil.Number(m["focus_minutes"]); ok {
		// Clamp before converting; a huge float does not fit an int.
		out.FocusMinutes = int(math.Round(textutil.Clamp(minutes, MinFocusMinutes, MaxFocusMinutes)))
	}

	switch window := strings.ToLower(strings.TrimSpace(textutil.String(m["focus_window"]))); window {
	case WindowAny, WindowMorning, WindowAfternoon, WindowEvening:
		out.FocusWindow = window
	}

	out.RecentIntents = textutil.OrderedSet(textutil.Strings(m["recent_intents"]), maxRecentIntents)
	out.PreferredCommands = normalizeCommands(textutil.Strings(m["preferred_commands"]), nil)
	out.AvoidCommands = normalizeCommands(textutil.Strings(m["avoid_commands"]), out.PreferredCommands)

	if ratio, ok := textutil.Number(m["helpful_ratio"]); ok {
		out.HelpfulRatio = textutil.Clamp(ratio, 0, 1)
	}
	return out
}

// ClampFocusMinutes bounds a session length to the supported range.
func ClampFocusMinutes(v int) int {
	return textutil.ClampInt(v, MinFocusMinutes, MaxFocusMinutes)
}

// Avoids reports whether cmd is on the avoid list.
func (c Context) Avoids(cmd string) bool {
	return textutil.Contains(c.AvoidCommands, textutil.CommandKey(cmd))
}

func normalizeCommands(items []string, exclude []string) []string {
	keys := make([]string, 0, len(items))
	for _, item := range items {
		key := textutil.CommandKey(item)
		if textutil.Contains(exclude, key) {
			continue
		}
		keys = append(keys, key)
	}
	return textutil.OrderedSet(keys, maxCommands)
}
