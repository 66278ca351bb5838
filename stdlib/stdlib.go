// Package stdlib describes the libfive standard library as declared in
// its C header: modules ("sections") of shape-producing functions.
package stdlib

import (
	"maps"
	"slices"
)

// ArgType is the semantic type tag of a function argument.
//
// Only [TreeHandle], [Float], [Vec2] and [Vec3] are valid. Other values
// can be produced by [Parse] for unknown C types; binding generation
// rejects them.
type ArgType string

const (
	TreeHandle ArgType = "tree-handle"
	Float      ArgType = "float"
	Vec2       ArgType = "vec2"
	Vec3       ArgType = "vec3"
)

// Valid reports whether t is one of the known argument types.
func (t ArgType) Valid() bool {
	switch t {
	case TreeHandle, Float, Vec2, Vec3:
		return true
	default:
		return false
	}
}

type Arg struct {
	Name string
	Type ArgType
}

type Function struct {
	// Canonical name. May contain '_' separators.
	Name string
	// Symbol name in the compiled library. Empty means same as Name.
	RawName string
	// Free text, lines separated by "\n".
	Docstring string
	Args      []Arg
}

// Symbol returns the native symbol the function is bound to.
func (f *Function) Symbol() string {
	if f.RawName != "" {
		return f.RawName
	}
	return f.Name
}

type Module struct {
	Name   string
	Shapes []Function
}

// Library maps module names to modules.
type Library struct {
	Modules map[string]*Module
	// Module names in declaration order.
	Order []string
}

func NewLibrary() *Library {
	return &Library{Modules: map[string]*Module{}}
}

// Module returns the module called name, or false if there is none.
func (l *Library) Module(name string) (*Module, bool) {
	m, ok := l.Modules[name]
	return m, ok
}

// Names returns all module names, sorted.
func (l *Library) Names() []string {
	return slices.Sorted(maps.Keys(l.Modules))
}

// addModule appends a new, empty module. Returns false if a module of
// that name already exists.
func (l *Library) addModule(name string) (*Module, bool) {
	if _, ok := l.Modules[name]; ok {
		return nil, false
	}
	m := &Module{Name: name}
	l.Modules[name] = m
	l.Order = append(l.Order, name)
	return m, true
}
