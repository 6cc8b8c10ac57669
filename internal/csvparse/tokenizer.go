// Package csvparse turns the semi-structured concession CSV exports into
// typed domain records. The exports are delimiter-ambiguous (comma or
// semicolon depending on the locale of the machine that produced them) and
// frequently malformed, so parsing is best-effort throughout: a bad row is
// skipped, never a reason to fail the file.
package csvparse

import "strings"

// Delimiter candidates seen in the exports.
const (
	DelimiterSemicolon = ';'
	DelimiterComma     = ','
)

// DetectDelimiter picks the field delimiter for a file by comparing the
// count of ';' vs ',' in the header line; whichever is more frequent wins,
// with ',' on a tie.
func DetectDelimiter(header string) rune {
	if strings.Count(header, ";") > strings.Count(header, ",") {
		return DelimiterSemicolon
	}
	return DelimiterComma
}

// SplitLine splits one raw line into fields on the given delimiter, keeping
// delimiter characters that occur inside a double-quoted field. Each field is
// returned with surrounding whitespace trimmed and one pair of surrounding
// quotes stripped. Malformed quoting never produces an error; the split is
// best effort.
func SplitLine(line string, delim rune) []string {
	var (
		fields   []string
		current  strings.Builder
		inQuotes bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			current.WriteRune(r)
		case r == delim && !inQuotes:
			fields = append(fields, cleanField(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	fields = append(fields, cleanField(current.String()))
	return fields
}

// cleanField trims whitespace and strips one pair of surrounding quotes.
func cleanField(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return strings.TrimSpace(s)
}
