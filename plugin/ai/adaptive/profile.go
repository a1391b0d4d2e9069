// Package adaptive infers a short-lived behavioral profile from one message.
package adaptive

import (
	"regexp"
	"strconv"

	"github.com/hrygo/zai/plugin/ai/hint"
	"github.com/hrygo/zai/plugin/ai/router"
)

// Levels shared by urgency and energy.
const (
	LevelLow    = "low"
	LevelMedium = "medium"
	LevelNormal = "normal"
	LevelHigh   = "high"
)

// Focus domains.
const (
	DomainKuliah = "kuliah"
	DomainHabit  = "habit"
	DomainUmum   = "umum"
)

// Profile shapes wording and suggestions for the current message only.
type Profile struct {
	Style        string `json:"style"`
	FocusMinutes int    `json:"focus_minutes"`
	Urgency      string `json:"urgency"`
	Energy       string `json:"energy"`
	Domain       string `json:"domain"`
}

var (
	strictSignal  = regexp.MustCompile(`(?i)\b(?:toxic|tegas|gaspol|no excuses?|push keras)\b`)
	focusMinutes  = regexp.MustCompile(`(?i)(\d{2,3})\s*(?:menit|min|minutes?)\b`)
	urgencyHigh   = regexp.MustCompile(`(?i)\b(?:deadline|due|besok|hari ini|urgent|sekarang|today|tomorrow|telat|terlambat)\b`)
	urgencyMedium = regexp.MustCompile(`(?i)\b(?:target|goal|reminder|check-?in|progress|progres)\b`)
	energyLow     = regexp.MustCompile(`(?i)\b(?:capek|lelah|burnout|drop)\b`)
	energyHigh    = regexp.MustCompile(`(?i)\b(?:semangat|fokus|gas)\b`)
	domainKuliah  = regexp.MustCompile(`(?i)\b(?:kuliah|assignment|deadline|ujian|study|belajar|ipk|makalah|quiz)\b`)
	domainHabit   = regexp.MustCompile(`(?i)\b(?:habit|kebiasaan|olahraga|health|tidur)\b`)
)

// Infer derives the profile from message keywords, falling back to the
// normalized context for style and focus length.
func Infer(message string, ctx hint.Context, intent router.Intent) Profile {
	p := Profile{
		Style:        ctx.ToneMode,
		FocusMinutes: hint.ClampFocusMinutes(ctx.FocusMinutes),
		Urgency:      LevelLow,
		Energy:       LevelNormal,
		Domain:       DomainUmum,
	}
	if p.Style == "" {
		p.Style = hint.ToneSupportive
	}
	if strictSignal.MatchString(message) {
		p.Style = hint.ToneStrict
	}

	if m := focusMinutes.FindStringSubmatch(message); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			p.FocusMinutes = hint.ClampFocusMinutes(n)
		}
	}

	switch {
	case urgencyHigh.MatchString(message):
		p.Urgency = LevelHigh
	case urgencyMedium.MatchString(message):
		p.Urgency = LevelMedium
	}

	switch {
	case energyLow.MatchString(message):
		p.Energy = LevelLow
	case energyHigh.MatchString(message):
		p.Energy = LevelHigh
	}

	switch {
	case domainKuliah.MatchString(message):
		p.Domain = DomainKuliah
	case domainHabit.MatchString(message):
		p.Domain = DomainHabit
	}

	// A study schedule request is academic planning even without keywords.
	if intent == router.IntentStudySchedule {
		p.Domain = DomainKuliah
		if p.Urgency == LevelLow {
			p.Urgency = LevelMedium
		}
	}
	return p
}
