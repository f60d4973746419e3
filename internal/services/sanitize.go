package services

import "strings"

const (
	maxDescriptionRunes = 1500
	maxBioRunes         = 1000
	maxSkills           = 10
)

// truncateRunes cuts s to at most limit runes without splitting a
// multi-byte character.
func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// cleanSkills keeps at most limit trimmed, non-empty entries in order.
// The result is never nil so it encodes as [] rather than null.
func cleanSkills(skills []string, limit int) []string {
	out := make([]string, 0, min(len(skills), limit))
	for _, s := range skills {
		if len(out) == limit {
			break
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
