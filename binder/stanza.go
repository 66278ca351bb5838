package binder

import (
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/refaktor/libfivegen/stdlib"
)

var templateFuncMap = template.FuncMap{
	"join": strings.Join,
	// Joins names[i] + " " + types[i] with ", ".
	"params": func(names, types []string) string {
		ps := make([]string, len(names))
		for i := range names {
			ps[i] = names[i] + " " + types[i]
		}
		return strings.Join(ps, ", ")
	},
}

// A Stanza is the foreign-call declaration and public wrapper
// generated for one native function.
//
// The Arg* and HostTypes slices are parallel: index i always
// describes the function's i-th argument.
type Stanza struct {
	// Public wrapper name.
	Name string
	// Native symbol the declaration binds to.
	Symbol string
	// Wrapper documentation, formatted for the target.
	Doc string

	ArgNames  []string
	ArgTypes  []string // native types
	ArgCalls  []string // marshal expressions
	HostTypes []string // empty strings for untyped targets
}

// NewStanza maps fn's signature through t.
//
// Fails with [*UnknownArgumentTypeError] on the first argument whose
// type t cannot handle.
func NewStanza(t Target, fn *stdlib.Function) (*Stanza, error) {
	s := &Stanza{
		Name:      t.PublicName(fn.Name),
		Symbol:    fn.Symbol(),
		Doc:       t.Doc(fn.Docstring),
		ArgNames:  make([]string, 0, len(fn.Args)),
		ArgTypes:  make([]string, 0, len(fn.Args)),
		ArgCalls:  make([]string, 0, len(fn.Args)),
		HostTypes: make([]string, 0, len(fn.Args)),
	}
	for _, arg := range fn.Args {
		name := t.ParamName(arg.Name)
		native, err := t.NativeType(arg.Type)
		if err != nil {
			return nil, argError(err, fn, arg)
		}
		call, err := t.MarshalExpr(name, arg.Type)
		if err != nil {
			return nil, argError(err, fn, arg)
		}
		host, err := t.HostType(arg.Type)
		if err != nil {
			return nil, argError(err, fn, arg)
		}
		s.ArgNames = append(s.ArgNames, name)
		s.ArgTypes = append(s.ArgTypes, native)
		s.ArgCalls = append(s.ArgCalls, call)
		s.HostTypes = append(s.HostTypes, host)
	}
	return s, nil
}

func argError(err error, fn *stdlib.Function, arg stdlib.Arg) error {
	if uErr := (&UnknownArgumentTypeError{}); errors.As(err, &uErr) {
		uErr.Function = fn.Name
		uErr.Arg = arg.Name
		return uErr
	}
	return fmt.Errorf("%v: argument %v: %w", fn.Name, arg.Name, err)
}

// RenderStanza renders the binding code of fn for t.
// The result ends with a newline.
func RenderStanza(t Target, fn *stdlib.Function) (string, error) {
	s, err := NewStanza(t, fn)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if err := t.stanzaTemplate().Execute(&b, s); err != nil {
		return "", fmt.Errorf("render %v: %w", fn.Name, err)
	}
	return b.String(), nil
}
