package binder

import (
	"github.com/refaktor/libfivegen/binder/binderio"
	"github.com/refaktor/libfivegen/stdlib"
)

// Lookup returns the module called name from lib, or a
// [*MissingModuleError].
func Lookup(lib *stdlib.Library, name string) (*stdlib.Module, error) {
	m, ok := lib.Module(name)
	if !ok {
		return nil, &MissingModuleError{Module: name, Available: lib.Names()}
	}
	return m, nil
}

// RenderModule renders the complete file for m: the target's header,
// followed by every function's stanza in order, separated by blank
// lines.
//
// The result only depends on its arguments. Nothing is returned if
// any stanza fails to render, or if two functions share a public name
// (see [NameCollisionError]).
func RenderModule(t Target, m *stdlib.Module, p Provenance) (string, error) {
	owners := make(map[string]string, len(m.Shapes)) // public name -> function name
	for _, fn := range m.Shapes {
		name := t.PublicName(fn.Name)
		if first, ok := owners[name]; ok {
			return "", &NameCollisionError{Module: m.Name, Name: name, First: first, Second: fn.Name}
		}
		owners[name] = fn.Name
	}

	var cb binderio.CodeBuilder
	t.writeHeader(&cb, m, p)
	for i := range m.Shapes {
		stanza, err := RenderStanza(t, &m.Shapes[i])
		if err != nil {
			return "", err
		}
		cb.Write(stanza)
		cb.Linef("")
	}
	cb.TrimNewline()
	return t.finish(&cb, m.Name)
}
