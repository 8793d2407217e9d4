// Package csvutil implements the lenient CSV line tokenizer and its inverse.
// The tokenizer is deliberately more forgiving than encoding/csv: fields are
// always trimmed, and an unterminated quote at end of line is tolerated
// rather than rejected, because spreadsheet exports rarely violate quoting
// and a best-effort field list beats a hard failure.
package csvutil

import "strings"

// ParseLine splits a single CSV line into fields. Commas inside double-quoted
// spans do not separate; a doubled quote inside a quoted span unescapes to one
// literal quote; each field is trimmed of surrounding whitespace. This
// function never fails.
func ParseLine(line string) []string {
	var result []string
	var current strings.Builder
	inQuotes := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				current.WriteRune('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			result = append(result, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	result = append(result, strings.TrimSpace(current.String()))
	return result
}

// SerializeRow renders fields as one CSV line: fields containing a comma,
// quote or newline are wrapped in quotes with internal quotes doubled.
// ParseLine(SerializeRow(fields)) reproduces the trimmed field values.
func SerializeRow(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = quoteField(f)
	}
	return strings.Join(quoted, ",")
}

func quoteField(f string) string {
	if strings.ContainsAny(f, ",\"\n") {
		return `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return f
}

// StripBOM removes a leading UTF-8 byte-order mark, if present.
func StripBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}

// SplitLines normalizes line endings and splits the body into lines. Trailing
// empty lines are dropped; interior blank lines are kept so row numbers in
// diagnostics stay aligned with the source file.
func SplitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	lines := strings.Split(s, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
