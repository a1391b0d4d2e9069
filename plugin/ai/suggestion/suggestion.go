// Package suggestion ranks the quick-reply chips returned with every reply.
package suggestion

import (
	"fmt"

	"github.com/hrygo/zai/plugin/ai/adaptive"
	"github.com/hrygo/zai/plugin/ai/hint"
	"github.com/hrygo/zai/plugin/ai/memory"
	"github.com/hrygo/zai/plugin/ai/planner"
	"github.com/hrygo/zai/plugin/ai/router"
	"github.com/hrygo/zai/plugin/ai/textutil"
)

// Tones.
const (
	ToneInfo     = "info"
	ToneSuccess  = "success"
	ToneWarning  = "warning"
	ToneCritical = "critical"
)

const (
	// MaxSuggestions caps the ranked list.
	MaxSuggestions = 4
	// MaxLabelLength caps labels synthesized from preferred commands.
	MaxLabelLength = 28
)

// Suggestion is one quick-reply chip.
type Suggestion struct {
	Label   string `json:"label"`
	Command string `json:"command"`
	Tone    string `json:"tone"`
}

// Input carries everything Rank looks at.
type Input struct {
	Intent  router.Intent
	Context hint.Context
	Profile adaptive.Profile
	Memory  memory.Hint
	Planner planner.Frame
}

var (
	cekTarget   = Suggestion{"Cek Target", "cek target harian pasangan", ToneInfo}
	rekomendasi = Suggestion{"Rekomendasi", "rekomendasi tugas kuliah", ToneSuccess}
	evaluasi    = Suggestion{"Evaluasi", "evaluasi hari ini", ToneInfo}
	checkIn     = Suggestion{"Check-In", "check-in progres hari ini", ToneInfo}
)

var (
	defaultCandidates = []Suggestion{cekTarget, rekomendasi, evaluasi}

	candidates = map[router.Intent][]Suggestion{
		router.IntentStudySchedule: {
			{"Jadwal Besok Pagi", "jadwal belajar besok pagi 120 menit", ToneInfo},
			{"Target 180 Menit", "jadwal belajar 180 menit", ToneSuccess},
			{"Mode Malam", "jadwal belajar malam 90 menit", ToneWarning},
		},
		router.IntentEvaluation: {
			checkIn,
			{"Rencana Besok", "cek target harian besok", ToneSuccess},
		},
		router.IntentRecommendTask: {
			{"Gas Sekarang", "oke gas sekarang", ToneSuccess},
			{"Check-In", "check-in progres tugas", ToneInfo},
		},
		router.IntentCheckDailyTarget: {
			checkIn,
			{"Reminder 25m", "ingatkan aku fokus 25 menit", ToneWarning},
		},
		router.IntentSetReminder: {
			{"Mulai 25m", "oke mulai fokus 25 menit", ToneSuccess},
			{"Evaluasi", "evaluasi singkat", ToneInfo},
		},
		router.IntentReminderAck: {
			{"Mulai 25m", "oke mulai fokus 25 menit", ToneSuccess},
			{"Evaluasi", "evaluasi singkat", ToneInfo},
		},
		router.IntentToxicMotivation: {
			{"Gas 25m", "oke gas fokus 25 menit", ToneCritical},
			{"Prioritas", "rekomendasi tugas prioritas", ToneWarning},
		},
		router.IntentCheckinProgress: {
			rekomendasi,
			{"Target Hari Ini", "cek target harian pasangan", ToneInfo},
		},
		router.IntentAffirmation: {
			{"Mulai 25m", "ingatkan aku fokus 25 menit", ToneWarning},
			checkIn,
		},
		router.IntentCreateTask: {
			{"Ingatkan Aku", "ingatkan aku jam 19:00", ToneWarning},
			cekTarget,
		},
		router.IntentCreateAssignment: {
			rekomendasi,
			{"Jadwal Belajar", "jadwal belajar besok pagi 120 menit", ToneInfo},
		},
		router.IntentDailyBrief: {
			cekTarget,
			rekomendasi,
			checkIn,
		},
	}
)

// Candidates returns a copy of the base list for intent.
func Candidates(intent router.Intent) []Suggestion {
	list, ok := candidates[intent]
	if !ok {
		list = defaultCandidates
	}
	return append([]Suggestion(nil), list...)
}

// priorityRule inserts one suggestion at the front when it applies.
type priorityRule func(in Input) (Suggestion, bool)

// priorityRules run in order; each applied rule is inserted at the front, so
// the last applicable rule ends up first.
var priorityRules = []priorityRule{
	func(in Input) (Suggestion, bool) {
		return Suggestion{"Prioritas Kuliah", "rekomendasi tugas kuliah prioritas", ToneWarning}, in.Profile.Domain == adaptive.DomainKuliah
	},
	func(in Input) (Suggestion, bool) {
		cmd := fmt.Sprintf("oke gas fokus %d menit", in.Profile.FocusMinutes)
		return Suggestion{"Mode Tegas", cmd, ToneCritical}, in.Profile.Style == hint.ToneStrict
	},
	func(in Input) (Suggestion, bool) {
		return Suggestion{"Eksekusi Sekarang", "oke gas sekarang", ToneSuccess}, textutil.Contains(in.Context.RecentIntents, router.IntentEvaluation.String())
	},
	func(in Input) (Suggestion, bool) {
		return Suggestion{"Isi Deadline", "deadline besok 19:00", ToneWarning}, in.Memory.HasUnresolved(planner.FieldDeadline)
	},
	func(in Input) (Suggestion, bool) {
		return Suggestion{"Isi Judul", "judul tugas [isi judulnya]", ToneInfo}, in.Memory.HasUnresolved(planner.FieldTitle)
	},
	func(in Input) (Suggestion, bool) {
		switch {
		case in.Planner.RequiresClarification:
			return Suggestion{"Lengkapi Detail", "lengkapi detail yang kurang", ToneWarning}, true
		case in.Planner.Mode == planner.ModeBundle:
			return Suggestion{"Jalankan Rencana", "jalankan semua langkah rencana", ToneSuccess}, true
		}
		return Suggestion{}, false
	},
}

// Rank builds the ordered quick replies: base candidates, priority inserts,
// avoid filter, preferred reordering, then dedupe and cap.
func Rank(in Input) []Suggestion {
	list := Candidates(in.Intent)
	for _, r := range priorityRules {
		if s, ok := r(in); ok {
			list = append([]Suggestion{s}, list...)
		}
	}

	kept := list[:0:0]
	for _, s := range list {
		if !in.Context.Avoids(s.Command) {
			kept = append(kept, s)
		}
	}
	list = kept

	if len(in.Context.PreferredCommands) > 0 {
		list = preferFirst(list, in.Context.PreferredCommands)
	}
	return dedupe(list, MaxSuggestions)
}

func preferFirst(list []Suggestion, preferred []string) []Suggestion {
	out := make([]Suggestion, 0, len(list)+len(preferred))
	used := make([]bool, len(list))
	for _, cmd := range preferred {
		key := textutil.CommandKey(cmd)
		found := false
		for i, s := range list {
			if !used[i] && textutil.CommandKey(s.Command) == key {
				out = append(out, s)
				used[i] = true
				found = true
				break
			}
		}
		if !found && key != "" {
			out = append(out, Suggestion{Label: textutil.Clip(cmd, MaxLabelLength), Command: cmd, Tone: ToneSuccess})
		}
	}
	for i, s := range list {
		if !used[i] {
			out = append(out, s)
		}
	}
	return out
}

func dedupe(list []Suggestion, max int) []Suggestion {
	seen := make(map[string]struct{}, len(list))
	out := make([]Suggestion, 0, max)
	for _, s := range list {
		if len(out) == max {
			break
		}
		key := textutil.CommandKey(s.Command)
		if key == "" || textutil.CollapseSpaces(s.Label) == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}
