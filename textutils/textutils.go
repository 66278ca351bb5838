// Package textutils contains line-oriented string helpers used when
// embedding free text in generated code and log output.
package textutils

import (
	"strings"
)

// IndentString prepends indent nIndent times to each line in s,
// except for lines consisting only of whitespace, which are
// emptied.
func IndentString(s string, indent string, nIndent int) string {
	pfx := strings.Repeat(indent, nIndent)

	var res strings.Builder
	res.Grow(len(s) + (strings.Count(s, "\n")+1)*len(pfx))
	for line := range strings.SplitAfterSeq(s, "\n") {
		if line == "" {
			continue
		}
		if strings.TrimSpace(line) == "" {
			if strings.HasSuffix(line, "\n") {
				res.WriteByte('\n')
			}
			continue
		}
		res.WriteString(pfx)
		res.WriteString(line)
	}
	return res.String()
}

// IndentContinuation prepends indent to every line of s except the
// first, so that continuation lines align under an opening marker.
// Unlike [IndentString], blank lines are indented too, which keeps
// the operation reversible with [TrimContinuation].
func IndentContinuation(s string, indent string) string {
	return strings.ReplaceAll(s, "\n", "\n"+indent)
}

// TrimContinuation is the inverse of [IndentContinuation].
// Continuation lines lacking the indent are left as they are.
func TrimContinuation(s string, indent string) string {
	return strings.ReplaceAll(s, "\n"+indent, "\n")
}

// PrefixLines prepends pfx to every line of s. Trailing spaces are
// removed from lines that would otherwise consist only of pfx.
func PrefixLines(s string, pfx string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = pfx + line
		if line == "" {
			lines[i] = strings.TrimRight(pfx, " \t")
		}
	}
	return strings.Join(lines, "\n")
}
