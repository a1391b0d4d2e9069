// Package reply selects deterministic reply templates and composes the
// profile-driven follow-up.
package reply

import (
	"crypto/md5"
	"encoding/binary"
	"regexp"
	"strconv"
	"strings"

	"github.com/hrygo/zai/plugin/ai/adaptive"
	"github.com/hrygo/zai/plugin/ai/router"
)

// Substitution variable names.
const (
	VarPartnerLabel = "partner_label"
	VarDomain       = "domain"
	VarIntent       = "intent"
	VarFocusMinutes = "focus_minutes"
)

var (
	placeholder    = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)
	firstPerson    = regexp.MustCompile(`(?i)\b(?:aku|saya)\b`)
	partnerDefault = "pasangan kalian"
	partnerSelf    = "kalian berdua"
)

// Vars builds the substitution map for one message.
func Vars(message string, intent router.Intent, p adaptive.Profile) map[string]string {
	partner := partnerDefault
	if firstPerson.MatchString(message) {
		partner = partnerSelf
	}
	return map[string]string{
		VarPartnerLabel: partner,
		VarDomain:       p.Domain,
		VarIntent:       intent.String(),
		VarFocusMinutes: strconv.Itoa(p.FocusMinutes),
	}
}

// Index returns the stable template index for intent and message.
func Index(intent router.Intent, message string, size int) int {
	if size <= 0 {
		return 0
	}
	sum := md5.Sum([]byte(intent.String() + "|" + strings.ToLower(message)))
	return int(binary.BigEndian.Uint32(sum[:4]) % uint32(size))
}

// Select picks the template for intent and message and fills its
// placeholders. A template naming an unknown variable is returned as is.
func Select(intent router.Intent, message string, vars map[string]string) string {
	list := Templates(intent)
	text := list[Index(intent, message, len(list))]
	return fill(text, vars)
}

func fill(text string, vars map[string]string) string {
	missing := false
	out := placeholder.ReplaceAllStringFunc(text, func(m string) string {
		v, ok := vars[m[1:len(m)-1]]
		if !ok {
			missing = true
			return m
		}
		return v
	})
	if missing {
		return text
	}
	return out
}
