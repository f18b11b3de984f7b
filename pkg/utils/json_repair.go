package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

var ErrNoJSONObject = errors.New("no valid JSON found in response")

var (
	jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)
	codeFencePattern  = regexp.MustCompile("(?i)```json\\s*|\\s*```")
)

// ExtractJSONObject returns the greedy span from the first '{' to the last '}'.
func ExtractJSONObject(text string) (string, bool) {
	span := jsonObjectPattern.FindString(text)
	return span, span != ""
}

// BalancedJSONObject returns the first '{' and its matching '}' using a
// string aware scan. Trailing text containing braces does not leak in.
func BalancedJSONObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	if start == -1 {
		return "", false
	}
	end := findMatchingBrace(text, start)
	if end == -1 {
		return "", false
	}
	return text[start : end+1], true
}

// NormalizeJSONText strips markdown noise the model tends to wrap JSON in.
func NormalizeJSONText(s string) string {
	s = codeFencePattern.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "*", "")
	s = strings.ReplaceAll(s, "\t", " ")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return s
}

// EscapeControlCharsInStrings re-escapes raw newlines, tabs and other control
// characters that appear inside quoted strings, and escapes quotes that
// cannot be the end of a string. Text outside strings is left untouched.
func EscapeControlCharsInStrings(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 32)

	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		ch := s[i]

		if !inString {
			if ch == '"' {
				inString = true
			}
			b.WriteByte(ch)
			continue
		}

		if escaped {
			escaped = false
			if ch < 0x20 {
				// a backslash before a raw control character escapes nothing;
				// keep it as a literal backslash
				b.WriteByte('\\')
				writeControlChar(&b, ch)
				continue
			}
			b.WriteByte(ch)
			continue
		}

		switch {
		case ch == '\\':
			escaped = true
			b.WriteByte(ch)
		case ch == '"':
			if closesString(s, i+1) {
				inString = false
				b.WriteByte(ch)
			} else {
				b.WriteString(`\"`)
			}
		case ch < 0x20:
			writeControlChar(&b, ch)
		default:
			b.WriteByte(ch)
		}
	}

	return b.String()
}

func writeControlChar(b *strings.Builder, ch byte) {
	switch ch {
	case '\n':
		b.WriteString(`\n`)
	case '\t':
		b.WriteString(`\t`)
	default:
		fmt.Fprintf(b, `\u%04x`, ch)
	}
}

// closesString reports whether a quote followed by s[from:] can terminate a
// JSON string, i.e. the next significant character is structural.
func closesString(s string, from int) bool {
	for i := from; i < len(s); i++ {
		switch s[i] {
		case ' ', '\n', '\r', '\t':
			continue
		case ',', '}', ']', ':':
			return true
		default:
			return false
		}
	}
	return true
}

// RepairJSONObject extracts the JSON object from raw model text and applies
// the normalization passes. The result is not guaranteed to be valid JSON.
func RepairJSONObject(raw string) (string, error) {
	span, ok := ExtractJSONObject(raw)
	if !ok {
		return "", ErrNoJSONObject
	}
	return EscapeControlCharsInStrings(NormalizeJSONText(span)), nil
}

// DeepRepairJSON hands text the light passes could not fix to jsonrepair,
// which also handles missing commas, trailing commas and unclosed brackets.
func DeepRepairJSON(text string) (string, error) {
	fixed, err := jsonrepair.JSONRepair(text)
	if err != nil {
		return "", fmt.Errorf("jsonrepair: %w", err)
	}
	return fixed, nil
}

// findMatchingBrace finds the matching closing brace for an opening brace
func findMatchingBrace(s string, start int) int {
	if start >= len(s) || s[start] != '{' {
		return -1
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		char := s[i]

		if escaped {
			escaped = false
			continue
		}

		if char == '\\' && inString {
			escaped = true
			continue
		}

		if char == '"' {
			inString = !inString
			continue
		}

		if inString {
			continue
		}

		switch char {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}
