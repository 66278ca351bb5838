package binder

import (
	"fmt"
	"text/template"
	"time"

	"github.com/refaktor/libfivegen/binder/binderio"
	"github.com/refaktor/libfivegen/stdlib"
)

// TimeFormat is the layout of generation timestamps in file headers.
const TimeFormat = "2006-01-02 15:04:05"

// Provenance is stamped into the header of every generated file.
type Provenance struct {
	Time time.Time
	// Invoking user.
	User string
	// Header the library was parsed from, as shown to readers.
	Source string
}

// A Target is a host language bindings are generated in.
//
// Type mapping methods fail with [*UnknownArgumentTypeError] for
// argument types they don't know.
type Target interface {
	// Name identifies the target in configuration.
	Name() string
	// FileExt is the extension of generated files, without the dot.
	FileExt() string

	// NativeType returns the type descriptor used in the
	// foreign-call declaration.
	NativeType(t stdlib.ArgType) (string, error)
	// MarshalExpr returns an expression converting the argument
	// called arg to its native representation.
	MarshalExpr(arg string, t stdlib.ArgType) (string, error)
	// HostType returns the type of the argument in the public
	// wrapper, or "" if the target language is untyped.
	HostType(t stdlib.ArgType) (string, error)

	// PublicName returns the wrapper name for a function name.
	PublicName(name string) string
	// ParamName returns the parameter name for an argument name.
	ParamName(arg string) string
	// Doc converts a docstring to the wrapper's documentation.
	Doc(docstring string) string

	writeHeader(cb *binderio.CodeBuilder, m *stdlib.Module, p Provenance)
	stanzaTemplate() *template.Template
	finish(cb *binderio.CodeBuilder, module string) (string, error)
}

type TargetOptions struct {
	// Import path of the Go runtime package that provides shapes,
	// vectors and symbol lookup. Only used by the "go" target.
	KernelImport string
}

// TargetNames lists all targets [NewTarget] accepts.
var TargetNames = []string{"guile", "go"}

func NewTarget(name string, opts TargetOptions) (Target, error) {
	switch name {
	case "guile":
		return &Guile{}, nil
	case "go":
		if opts.KernelImport == "" {
			return nil, fmt.Errorf("target %q requires a kernel import path", name)
		}
		return &Go{KernelImport: opts.KernelImport}, nil
	default:
		return nil, fmt.Errorf("unknown target %q", name)
	}
}

func unknownArgType(t stdlib.ArgType) error {
	return &UnknownArgumentTypeError{Type: string(t)}
}

