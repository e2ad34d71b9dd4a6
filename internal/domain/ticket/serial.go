package ticket

import (
	"fmt"
	"strings"
	"unicode"
)

// SerialPrefix builds a ~6-letter prefix from a tier name: the first three
// characters of each word, uppercased, capped at six. Names with no usable
// characters fall back to "TICKET".
func SerialPrefix(name string) string {
	var chunks []string
	length := 0
	for _, word := range splitWords(name) {
		if word == "" {
			continue
		}
		chunk := word
		if len(chunk) > 3 {
			chunk = chunk[:3]
		}
		chunks = append(chunks, strings.ToUpper(chunk))
		length += len(chunk)
		if length >= 6 {
			break
		}
	}
	joined := strings.Join(chunks, "")
	if joined == "" {
		joined = "TICKET"
	}
	if len(joined) > 6 {
		joined = joined[:6]
	}
	return joined
}

// FormatSerial renders a serial from a prefix and its counter value.
func FormatSerial(prefix string, n int) string {
	return fmt.Sprintf("%s-%06d", prefix, n)
}

// splitWords breaks a name on every non-alphanumeric rune.
func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
