package listener

import "strings"

const trailingPunct = ".,!?;:… "

// StripDispatch checks whether the transcript's final token is one of the
// configured dispatch words, ignoring case and trailing punctuation. When
// it matches, the returned clean text is everything before that token and
// matched is true.
func StripDispatch(text string, words []string) (clean string, matched bool) {
	trimmed := strings.TrimRight(strings.TrimSpace(text), trailingPunct)
	if trimmed == "" {
		return "", false
	}

	fields := strings.Fields(trimmed)
	last := strings.ToLower(strings.TrimRight(fields[len(fields)-1], trailingPunct))

	for _, w := range words {
		if last == strings.ToLower(w) {
			before := strings.Join(fields[:len(fields)-1], " ")
			return strings.TrimRight(before, trailingPunct), true
		}
	}
	return trimmed, false
}

// ContainsWakeWord reports whether the transcript contains the wake word
// as a case-insensitive substring.
func ContainsWakeWord(text, word string) bool {
	if word == "" {
		return false
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(word))
}
