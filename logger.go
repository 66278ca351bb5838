package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/refaktor/libfivegen/textutils"
)

type LogLevel int

const (
	INFO  LogLevel = 0
	WARN  LogLevel = 1
	ERROR LogLevel = 2
	FATAL LogLevel = 99
)

func (l LogLevel) String() string {
	switch l {
	case INFO:
		return "INFO"
	case WARN:
		return "WARNING"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	default:
		panic(fmt.Sprintf("invalid log level: %d", int(l)))
	}
}

type Logger struct {
	Writer   io.Writer
	Prefix   string
	MinLevel LogLevel
}

// Log writes a message at the given level. Multi-line messages
// start on their own line and are indented.
//
// FATAL messages are always written and exit the process.
func (l *Logger) Log(level LogLevel, format string, args ...any) {
	if level == FATAL {
		defer os.Exit(1)
	}
	if l.Writer == nil || (level < l.MinLevel && level != FATAL) {
		return
	}
	var b bytes.Buffer
	if l.Prefix != "" {
		b.WriteString(l.Prefix)
		b.WriteString(" ")
	}
	b.WriteString(level.String())
	b.WriteString(":")
	s := fmt.Sprintf(format, args...)
	if strings.Contains(strings.TrimRight(s, "\n"), "\n") {
		b.WriteString("\n")
		s = textutils.IndentString(s, "  ", 1)
	} else {
		b.WriteString(" ")
	}
	b.WriteString(s)
	if !strings.HasSuffix(s, "\n") {
		b.WriteString("\n")
	}
	// Nothing sensible to do if logging itself fails.
	_, _ = io.Copy(l.Writer, &b)
}
