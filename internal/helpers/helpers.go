package helpers

import "strings"

// StringTrim strips surrounding whitespace and the quotes clients sometimes
// leave around ids passed through templates.
func StringTrim(s string) string {
	s = strings.TrimSpace(s)
	return strings.Trim(s, "\"'")
}
