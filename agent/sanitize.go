package agent

import (
	"regexp"
	"strings"
	"unicode"
)

// MaxResultLength caps the final result text kept from an agent.
const MaxResultLength = 8000

var (
	codeFence      = regexp.MustCompile("(?m)^```[a-zA-Z]*\\s*$")
	excessNewlines = regexp.MustCompile(`\n{3,}`)
	trailingSpace  = regexp.MustCompile(`[ \t]+\n`)
)

// SanitizeResult cleans agent output before it is logged. It strips
// control characters and markdown code fences, collapses blank runs and
// truncates to MaxResultLength runes.
func SanitizeResult(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = removeControlCharacters(s)
	s = codeFence.ReplaceAllString(s, "")
	s = trailingSpace.ReplaceAllString(s, "\n")
	s = excessNewlines.ReplaceAllString(s, "\n\n")
	s = strings.TrimSpace(s)

	if r := []rune(s); len(r) > MaxResultLength {
		s = string(r[:MaxResultLength]) + "..."
	}
	return s
}

// removeControlCharacters drops control and non-printable runes, keeping
// newlines and tabs.
func removeControlCharacters(s string) string {
	var result strings.Builder
	for _, r := range s {
		if r == '\n' || r == '\t' {
			result.WriteRune(r)
			continue
		}
		if unicode.IsControl(r) || !unicode.IsPrint(r) {
			continue
		}
		result.WriteRune(r)
	}
	return result.String()
}
