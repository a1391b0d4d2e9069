// Package textutil holds the small string helpers shared by the chat pipeline.
package textutil

import (
	"strings"
	"unicode/utf8"
)

// CollapseSpaces replaces every whitespace run with a single space and trims the result.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

// Clip trims s and cuts it to n runes.
func Clip(s string, n int) string {
	return strings.TrimSpace(Truncate(strings.TrimSpace(s), n))
}

// CommandKey is the comparison key for suggestion commands.
func CommandKey(s string) string {
	return strings.ToLower(CollapseSpaces(s))
}

// OrderedSet lower-cases and trims items, drops empties and duplicates,
// and keeps at most max entries in input order.
func OrderedSet(items []string, max int) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if len(out) >= max {
			break
		}
		v := strings.ToLower(strings.TrimSpace(item))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Contains reports whether list holds v.
func Contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
