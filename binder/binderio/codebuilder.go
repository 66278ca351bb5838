package binderio

import (
	"bufio"
	"fmt"
	"strings"

	"golang.org/x/tools/imports"
)

// CodeBuilder is a wrapper around [strings.Builder] that simplifies
// building generated source code line by line.
//
// The zero value is safely ready to use and indents with tabs.
type CodeBuilder struct {
	// Indent is the indentation level.
	Indent int
	// IndentStr is written Indent times before each line.
	// Empty means a single tab.
	IndentStr string

	b strings.Builder
}

// Write appends a raw string to the internal [strings.Builder].
func (w *CodeBuilder) Write(s string) {
	w.b.WriteString(s)
}

// Append writes the given string line by line with correct indentation.
func (w *CodeBuilder) Append(s string) {
	sc := bufio.NewScanner(strings.NewReader(s))
	for sc.Scan() {
		w.Linef("%v", sc.Text())
	}
}

// Linef writes a single line, prepended by the current indentation.
// Empty lines are not indented.
//
// Takes format and args like [fmt.Printf].
func (w *CodeBuilder) Linef(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	if line != "" {
		indent := w.IndentStr
		if indent == "" {
			indent = "\t"
		}
		for range w.Indent {
			w.b.WriteString(indent)
		}
	}
	w.b.WriteString(line)
	w.b.WriteString("\n")
}

// TrimNewline removes a single trailing newline, if present.
func (w *CodeBuilder) TrimNewline() {
	s := w.b.String()
	if trimmed, ok := strings.CutSuffix(s, "\n"); ok {
		w.b.Reset()
		w.b.WriteString(trimmed)
	}
}

// String returns the current code without applying any formatting.
func (w *CodeBuilder) String() string {
	return w.b.String()
}

// FmtString attempts to format the current code as Go source code.
// filename is only used in error messages.
//
// Imports are grouped and sorted, but never added or removed.
func (w *CodeBuilder) FmtString(filename string) (string, error) {
	code, err := imports.Process(filename, []byte(w.String()), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return "", err
	}
	return string(code), nil
}

func (w *CodeBuilder) Reset() {
	w.Indent = 0
	w.b.Reset()
}
