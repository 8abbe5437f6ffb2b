package internal

import (
	"strings"
	"unicode"
)

// Normalize strips every Unicode whitespace rune and lower-cases the rest.
// Both sides of every containment check (keywords, topic names, field names
// and the user utterance) must pass through here, otherwise "營業 時間" and
// "營業時間" would never meet.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
