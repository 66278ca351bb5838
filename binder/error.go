package binder

import (
	"fmt"
	"strings"
)

// UnknownArgumentTypeError is returned when an argument's type is
// not one of the types a target can marshal.
type UnknownArgumentTypeError struct {
	Function string // empty if unknown
	Arg      string // empty if unknown
	Type     string
}

func (e *UnknownArgumentTypeError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "unknown argument type %q", e.Type)
	if e.Arg != "" {
		fmt.Fprintf(&b, " of argument %q", e.Arg)
	}
	if e.Function != "" {
		fmt.Fprintf(&b, " in function %q", e.Function)
	}
	return b.String()
}

// MissingModuleError is returned when a requested module does not
// exist in the library.
type MissingModuleError struct {
	Module    string
	Available []string
}

func (e *MissingModuleError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("module %q not found (library is empty)", e.Module)
	}
	return fmt.Sprintf("module %q not found (available: %v)", e.Module, strings.Join(e.Available, ", "))
}

// NameCollisionError is returned when two functions of a module get
// the same public name in a target.
type NameCollisionError struct {
	Module string
	Name   string // public name
	First  string
	Second string
}

func (e *NameCollisionError) Error() string {
	return fmt.Sprintf("functions %q and %q in module %q both map to %q", e.First, e.Second, e.Module, e.Name)
}
