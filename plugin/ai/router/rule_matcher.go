package router

import "regexp"

// IntentRule pairs an intent with the pattern that selects it.
type IntentRule struct {
	Intent  Intent
	Pattern *regexp.Regexp
}

// RuleMatcher implements Layer 1 ordered rule matching.
// The first rule whose pattern matches anywhere in the text wins.
type RuleMatcher struct {
	rules []IntentRule
}

// NewRuleMatcher creates a rule matcher over DefaultRules.
func NewRuleMatcher() *RuleMatcher {
	return &RuleMatcher{rules: DefaultRules()}
}

// NewRuleMatcherWithRules creates a rule matcher over a custom ordered table.
func NewRuleMatcherWithRules(rules []IntentRule) *RuleMatcher {
	return &RuleMatcher{rules: rules}
}

// Match returns the intent of the first matching rule.
func (m *RuleMatcher) Match(text string) (Intent, bool) {
	for _, rule := range m.rules {
		if rule.Pattern.MatchString(text) {
			return rule.Intent, true
		}
	}
	return IntentFallback, false
}

// Rules returns the ordered rule table.
func (m *RuleMatcher) Rules() []IntentRule {
	return m.rules
}

func rule(intent Intent, pattern string) IntentRule {
	return IntentRule{Intent: intent, Pattern: regexp.MustCompile(`(?i)` + pattern)}
}

// defaultRules is compiled once; order is precedence. Specific intents
// (create_assignment, toxic_motivation) sit above the generic ones they
// overlap with (create_task, affirmation).
var defaultRules = []IntentRule{
	rule(IntentCreateAssignment,
		`(?:\b(buat|buatkan|tambah|add|create|catat|simpan)\b.*\b(assignment|tugas kuliah)\b)|`+
			`(?:\b(tugas kuliah|assignment)\b.*\b(buat|tambahkan|catat|simpan)\b)`),
	rule(IntentCreateTask,
		`(?:\b(buat|buatkan|tambah|add|create|catat|simpan)\b.*\b(task|tugas|todo|to-do)\b)|`+
			`(?:\b(task|tugas|todo|to-do)\b.*\b(buat|tambahkan|catat|simpan)\b)`),
	rule(IntentSetReminder,
		`\b(reminder|ingatkan|ingetin|notifikasi|alarm|jangan lupa)\b`),
	rule(IntentDailyBrief,
		`\b(ringkasan hari ini|brief hari ini|summary hari ini|rekap hari ini|status hari ini|fokus hari ini)\b`),
	rule(IntentToxicMotivation,
		`\b(toxic|mode tegas|gaspol|push keras|no excuse|no excuses)\b`),
	rule(IntentEvaluation,
		`\b(evaluasi|review|refleksi|retrospektif|daily review|weekly review)\b`),
	rule(IntentRecommendTask,
		`\b(rekomendasi|rekomendasi tugas|saran tugas|prioritas|task apa dulu|tugas apa dulu)\b`),
	rule(IntentStudySchedule,
		`(?:\b(jadwal belajar|study plan|rencana belajar|sesi belajar)\b.*\b(waktu kosong|jam kosong|slot kosong|free slot|free time|waktu luang)\b)|`+
			`(?:\b(buat|buatkan|susun|atur|generate|carikan|rancang)\b.*\b(jadwal belajar|study plan|rencana belajar)\b)|`+
			`(?:^(jadwal belajar|study plan)\b)`),
	rule(IntentAffirmation,
		`\b(oke|ok|siap|gas|lanjut|deal|sip|mantap|yuk)\b`),
	rule(IntentCheckDailyTarget,
		`(?:\b(target|goal)\b.*\b(harian|hari ini|today|pasangan|bareng|bersama)\b)|`+
			`(?:\bcek\b.*\b(target|goal)\b)|`+
			`(?:\btarget\b.*\b(kita|pasangan)\b)`),
	rule(IntentReminderAck,
		`(?:\b(reminder|alarm|notifikasi)\b.*\b(ok|oke|siap|aktif|jalan)\b)|`+
			`(?:\b(ok|oke|siap|aktif|jalan)\b.*\b(reminder|alarm|notifikasi)\b)`),
	rule(IntentCheckinProgress,
		`(?:\b(check-?in|cek in|update)\b.*\b(progress|progres|tugas|belajar|goal|target)\b)|`+
			`(?:\b(progress|progres)\b.*\b(hari ini|today|kita|pasangan)\b)`),
	rule(IntentGreeting,
		`\b(halo|hai|hi|hello|hey)\b`),
}

// DefaultRules returns a copy of the built-in ordered rule table.
func DefaultRules() []IntentRule {
	out := make([]IntentRule, len(defaultRules))
	copy(out, defaultRules)
	return out
}
