package planner

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/hrygo/zai/plugin/ai/memory"
	"github.com/hrygo/zai/plugin/ai/router"
	"github.com/hrygo/zai/plugin/ai/textutil"
)

var (
	// segmentSeparator splits clauses on ";" or a joining word, optionally after a comma.
	segmentSeparator = regexp.MustCompile(`(?i)\s*(?:;|(?:,\s*)?\b(?:dan|lalu|kemudian|terus|habis itu|setelah itu)\b)\s*`)

	deadlineSignal = regexp.MustCompile(`(?i)(\bdeadline\b|\bdue\b|\bbesok\b|\blusa\b|\btoday\b|\btomorrow\b|\bhari ini\b|\d{1,2}:\d{2}|\d{4}-\d{2}-\d{2}|\d{1,2}/\d{1,2}/\d{4})`)
)

// actionRule maps a segment to an action kind. Rules with a verb pattern
// create something and must carry a deadline and a title.
type actionRule struct {
	kind    string
	summary string
	match   *regexp.Regexp
	verb    *regexp.Regexp
}

func (r actionRule) creates() bool {
	return r.verb != nil
}

var actionRules = []actionRule{
	{
		kind:    KindCreateAssignment,
		summary: "Buat assignment baru",
		match:   regexp.MustCompile(`(?i)\b(?:buatkan|buat|tambahkan|tambah|add|create)\s+(?:assignment|tugas kuliah)\b`),
		verb:    regexp.MustCompile(`(?i)\b(?:buatkan|buat|tambahkan|tambah|add|create)\s+(?:assignment|tugas kuliah)`),
	},
	{
		kind:    KindCreateTask,
		summary: "Buat task baru",
		match:   regexp.MustCompile(`(?i)\b(?:buatkan|buat|tambahkan|tambah|add|create)\s+(?:task|tugas)\b`),
		verb:    regexp.MustCompile(`(?i)\b(?:buatkan|buat|tambahkan|tambah|add|create)\s+(?:task|tugas)`),
	},
	{
		kind:    KindSetReminder,
		summary: "Atur reminder fokus",
		match:   regexp.MustCompile(`(?i)ingatkan|reminder|alarm|notifikasi`),
	},
	{
		kind:    KindEvaluation,
		summary: "Jalankan evaluasi singkat",
		match:   regexp.MustCompile(`(?i)evaluasi|review|refleksi`),
	},
	{
		kind:    KindRecommendation,
		summary: "Susun prioritas tugas",
		match:   regexp.MustCompile(`(?i)rekomendasi|prioritas|task apa dulu|tugas apa dulu`),
	},
	{
		kind:    KindStudyPlan,
		summary: "Susun jadwal belajar dari waktu kosong",
		match:   regexp.MustCompile(`(?i)jadwal belajar|study plan|rencana belajar|sesi belajar|waktu kosong|jam kosong|free slot|free time`),
	},
	{
		kind:    KindDailyTarget,
		summary: "Cek target harian",
		match:   regexp.MustCompile(`(?i)target harian|cek target|goal hari ini`),
	},
}

const exploreSummary = "Klarifikasi kebutuhan utama"

// Build returns the plan for message. An ExternalFrame hint takes precedence
// over local inference; its fields were validated by ParseHint.
func Build(message string, intent router.Intent, mem memory.Hint, hint Hint) Frame {
	if ext, ok := hint.(ExternalFrame); ok {
		return fromExternal(ext)
	}

	actions := inferActions(message)
	clarifications := clarificationsFor(actions)
	if len(clarifications) == 0 && intent == router.IntentFallback {
		clarifications = memoryClarifications(mem)
	}
	return assemble(actions, clarifications, "", "")
}

// Segments splits message into its non-empty clauses.
func Segments(message string) []string {
	text := textutil.CollapseSpaces(message)
	if text == "" {
		return nil
	}
	parts := segmentSeparator.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// HasDeadlineSignal reports whether text names a date, a time or a relative day.
func HasDeadlineSignal(text string) bool {
	return deadlineSignal.MatchString(text)
}

func inferActions(message string) []Step {
	segments := Segments(message)
	actions := make([]Step, 0, min(len(segments), MaxActions))
	for _, segment := range segments {
		step, ok := inferStep(segment, len(segments) == 1)
		if !ok {
			continue
		}
		step.ID = fmt.Sprintf("step_%d", len(actions)+1)
		actions = append(actions, step)
		if len(actions) == MaxActions {
			break
		}
	}
	return actions
}

func inferStep(segment string, only bool) (Step, bool) {
	for _, r := range actionRules {
		if !r.match.MatchString(segment) {
			continue
		}
		missing := []string{}
		if r.creates() {
			if !HasDeadlineSignal(segment) {
				missing = append(missing, FieldDeadline)
			}
			rest := strings.TrimSpace(r.verb.ReplaceAllString(segment, ""))
			if utf8.RuneCountInString(rest) < 3 {
				missing = append(missing, FieldTitle)
			}
		}
		return Step{Kind: r.kind, Summary: r.summary, Command: segment, Missing: missing, Status: statusFor(missing)}, true
	}
	if !only {
		return Step{}, false
	}
	return Step{Kind: KindExplore, Summary: exploreSummary, Command: segment, Missing: []string{}, Status: StatusReady}, true
}

func clarificationsFor(actions []Step) []Clarification {
	out := []Clarification{}
	for _, a := range actions {
		for _, field := range a.Missing {
			if len(out) == MaxClarifications {
				return out
			}
			out = append(out, Clarification{ActionID: a.ID, Field: field, Question: QuestionFor(field)})
		}
	}
	return out
}

func memoryClarifications(mem memory.Hint) []Clarification {
	out := []Clarification{}
	for _, field := range mem.UnresolvedFields {
		if len(out) == maxMemoryClarifications {
			break
		}
		out = append(out, Clarification{ActionID: MemoryActionID, Field: field, Question: QuestionFor(field)})
	}
	return out
}

func fromExternal(ext ExternalFrame) Frame {
	return assemble(ext.Actions, ext.Clarifications, ext.Summary, ext.NextBestAction, withConfidence(ext.Confidence), withMode(ext.Mode))
}

type frameOption func(*Frame)

func withConfidence(c string) frameOption {
	return func(f *Frame) {
		if c != "" {
			f.Confidence = c
		}
	}
}

func withMode(m string) frameOption {
	return func(f *Frame) {
		if m != "" {
			f.Mode = m
		}
	}
}

// assemble derives the aggregate fields. Empty summary or next step are
// computed from the actions.
func assemble(actions []Step, clarifications []Clarification, summary, next string, opts ...frameOption) Frame {
	if actions == nil {
		actions = []Step{}
	}
	if clarifications == nil {
		clarifications = []Clarification{}
	}
	requires := len(clarifications) > 0

	f := Frame{
		Mode:                  ModeSingle,
		Confidence:            ConfidenceHigh,
		RequiresClarification: requires,
		Clarifications:        clarifications,
		Actions:               actions,
		Summary:               summary,
		NextBestAction:        next,
	}
	if len(actions) > 1 {
		f.Mode = ModeBundle
	}
	switch {
	case len(actions) == 0:
		f.Confidence = ConfidenceLow
	case requires:
		f.Confidence = ConfidenceMedium
	}

	if f.Summary == "" {
		f.Summary = summarize(actions)
	}
	if f.NextBestAction == "" {
		switch {
		case requires:
			f.NextBestAction = nextCompleteDetails
		case len(actions) > 0:
			f.NextBestAction = nextExecutePrefix + actions[0].Summary
		default:
			f.NextBestAction = nextBeSpecific
		}
	}

	for _, opt := range opts {
		opt(&f)
	}
	return f
}

func summarize(actions []Step) string {
	if len(actions) == 0 {
		return summaryNoPlan
	}
	parts := make([]string, len(actions))
	for i, a := range actions {
		parts[i] = fmt.Sprintf("%d. %s", i+1, a.Summary)
	}
	return strings.Join(parts, " -> ")
}
