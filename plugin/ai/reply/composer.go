package reply

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/cel-go/cel"
	"github.com/pkg/errors"

	"github.com/hrygo/zai/plugin/ai/adaptive"
	"github.com/hrygo/zai/plugin/ai/hint"
	"github.com/hrygo/zai/plugin/ai/router"
	"github.com/hrygo/zai/plugin/ai/textutil"
)

// MaxReplyLength is the rune limit of a composed reply.
const MaxReplyLength = 420

// TailRule appends Sentence to the reply when Condition holds. Condition is a
// CEL expression over style, urgency, energy, domain and focus_minutes.
type TailRule struct {
	Name      string
	Condition string
	Sentence  func(p adaptive.Profile) string
}

// DefaultTailRules lists the tail sentences by priority; the first matching
// rule wins.
func DefaultTailRules() []TailRule {
	return []TailRule{
		{
			Name:      "urgent_kuliah",
			Condition: `urgency == "high" && domain == "kuliah"`,
			Sentence:  func(adaptive.Profile) string { return "Prioritaskan deadline kuliah terdekat dulu." },
		},
		{
			Name:      "low_energy",
			Condition: `energy == "low"`,
			Sentence: func(p adaptive.Profile) string {
				return fmt.Sprintf("Energi lagi turun, cukup sesi pendek %d menit dulu.", min(p.FocusMinutes, hint.DefaultFocusMinutes))
			},
		},
		{
			Name:      "strict",
			Condition: `style == "strict"`,
			Sentence:  func(adaptive.Profile) string { return "No excuse, mulai sekarang." },
		},
	}
}

type compiledRule struct {
	TailRule
	program cel.Program
}

// Composer rewrites acknowledgement replies and appends tail sentences.
type Composer struct {
	rules []compiledRule
}

var (
	evaluationSignal = regexp.MustCompile(`(?i)\b(?:evaluasi|review|refleksi)\b`)
	checkinSignal    = regexp.MustCompile(`(?i)\b(?:check-?in|progres|progress|update)\b`)
	defaultMinutes   = regexp.MustCompile(`\b25 menit\b`)
)

// NewComposer compiles rules. An empty rule list yields a composer that never
// appends a tail.
func NewComposer(rules []TailRule) (*Composer, error) {
	env, err := cel.NewEnv(
		cel.Variable("style", cel.StringType),
		cel.Variable("urgency", cel.StringType),
		cel.Variable("energy", cel.StringType),
		cel.Variable("domain", cel.StringType),
		cel.Variable("focus_minutes", cel.IntType),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create CEL environment")
	}

	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		ast, iss := env.Compile(r.Condition)
		if iss.Err() != nil {
			return nil, errors.Wrapf(iss.Err(), "failed to compile tail rule %q", r.Name)
		}
		if !ast.OutputType().IsExactType(cel.BoolType) {
			return nil, errors.Errorf("tail rule %q must evaluate to bool, got %s", r.Name, ast.OutputType())
		}
		prg, err := env.Program(ast)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to build tail rule %q", r.Name)
		}
		compiled = append(compiled, compiledRule{TailRule: r, program: prg})
	}
	return &Composer{rules: compiled}, nil
}

// Compose finalizes text for intent: an affirmation opener is followed by the
// next step for the message and profile, other intents get at most one tail
// sentence.
func (c *Composer) Compose(intent router.Intent, message, text string, p adaptive.Profile) string {
	switch intent {
	case router.IntentAffirmation:
		text = strings.TrimSpace(strings.TrimSpace(text) + " " + affirm(message, p))
	case router.IntentReminderAck:
		text = acknowledgeReminder(text, p)
	default:
		if tail := c.Tail(p); tail != "" {
			text = strings.TrimSpace(text) + " " + tail
		}
	}
	return textutil.Clip(text, MaxReplyLength)
}

// Tail returns the sentence of the first rule matching p, or "".
func (c *Composer) Tail(p adaptive.Profile) string {
	activation := map[string]any{
		"style":         p.Style,
		"urgency":       p.Urgency,
		"energy":        p.Energy,
		"domain":        p.Domain,
		"focus_minutes": int64(p.FocusMinutes),
	}
	for _, r := range c.rules {
		out, _, err := r.program.Eval(activation)
		if err != nil {
			continue
		}
		if ok, _ := out.Value().(bool); ok {
			return r.Sentence(p)
		}
	}
	return ""
}

// affirm is the next step after an acknowledgement.
func affirm(message string, p adaptive.Profile) string {
	switch {
	case evaluationSignal.MatchString(message):
		return "Lanjut evaluasi singkat: tulis satu hal yang berhasil dan satu yang perlu dibenahi."
	case checkinSignal.MatchString(message):
		return "Kirim update progres singkat dulu, habis itu kita tentuin langkah berikutnya."
	case p.Style == hint.ToneStrict:
		return fmt.Sprintf("%d menit tanpa distraksi, mulai sekarang.", p.FocusMinutes)
	case p.Energy == adaptive.LevelLow:
		return fmt.Sprintf("Santai, pelan-pelan aja. Mulai sesi %d menit dulu, habis itu istirahat sebentar.", min(p.FocusMinutes, hint.DefaultFocusMinutes))
	default:
		return fmt.Sprintf("Fokus ke 1 item utama dulu %d menit, lalu update progres biar ritme tetap jalan.", p.FocusMinutes)
	}
}

func acknowledgeReminder(text string, p adaptive.Profile) string {
	minutes := fmt.Sprintf("%d menit", p.FocusMinutes)
	if defaultMinutes.MatchString(text) {
		return defaultMinutes.ReplaceAllString(text, minutes)
	}
	return strings.TrimSpace(text) + " Sesi fokus " + minutes + " siap jalan."
}
