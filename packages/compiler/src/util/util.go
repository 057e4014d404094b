package util

import (
	"regexp"
	"strings"
	"unicode"
)

// SplitAtColon splits a string at the first colon character
func SplitAtColon(input string, defaultValues []string) []string {
	return splitAt(input, ':', defaultValues)
}

func splitAt(input string, character rune, defaultValues []string) []string {
	index := strings.IndexRune(input, character)
	if index == -1 {
		return defaultValues
	}
	return []string{
		strings.TrimSpace(input[:index]),
		strings.TrimSpace(input[index+1:]),
	}
}

// SplitDirectiveName splits "@bind-Value:get" into "@bind-Value" and "get".
// The parameter is empty when the name carries none.
func SplitDirectiveName(name string) (string, string) {
	parts := SplitAtColon(name, []string{name, ""})
	return parts[0], parts[1]
}

// TrimDirectivePrefix removes the leading '@' of a directive attribute name.
func TrimDirectivePrefix(name string) string {
	return strings.TrimPrefix(name, "@")
}

// IsDirectiveName reports whether the attribute name is written in directive form.
func IsDirectiveName(name string) bool {
	return strings.HasPrefix(name, "@") && len(name) > 1
}

// LastSegment returns the part of a dotted name after its final period.
func LastSegment(name string) string {
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		return name[idx+1:]
	}
	return name
}

// StartsWithUpper reports whether the first rune of s is an upper-case letter.
func StartsWithUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}

var nonWordRegexp = regexp.MustCompile(`\W`)

// SanitizeIdentifier sanitizes an identifier name by replacing non-word characters with underscores
func SanitizeIdentifier(name string) string {
	return nonWordRegexp.ReplaceAllString(name, "_")
}

// IsQuotedLiteral reports whether s is a double-quoted string literal.
func IsQuotedLiteral(s string) bool {
	return len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`)
}

// Quote wraps s in double quotes, escaping embedded quotes and backslashes.
func Quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
