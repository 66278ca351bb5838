package binder

import (
	_ "embed"
	"strings"
	"text/template"

	"github.com/refaktor/libfivegen/binder/binderio"
	"github.com/refaktor/libfivegen/stdlib"
	"github.com/refaktor/libfivegen/textutils"
)

//go:embed guile_stanza.scm.tmpl
var templateSrcGuileStanza string

var templateGuileStanza = template.Must(template.New("guile_stanza.scm.tmpl").Funcs(templateFuncMap).Parse(templateSrcGuileStanza))

// Guile modules every generated Guile file uses.
var GuileRequires = []string{
	"(system foreign)",
	"(libfive lib)",
	"(libfive kernel)",
	"(libfive vec)",
}

// Continuation lines of docstrings are aligned under the
// opening quote.
const guileDocIndent = "    "

var guileStringEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// Guile generates GNU Guile modules based on (system foreign).
type Guile struct{}

func (*Guile) Name() string    { return "guile" }
func (*Guile) FileExt() string { return "scm" }

func (*Guile) NativeType(t stdlib.ArgType) (string, error) {
	switch t {
	case stdlib.TreeHandle:
		return "'*", nil
	case stdlib.Vec2:
		return "libfive-vec2_t", nil
	case stdlib.Vec3:
		return "libfive-vec3_t", nil
	case stdlib.Float:
		return "float", nil
	default:
		return "", unknownArgType(t)
	}
}

func (*Guile) MarshalExpr(arg string, t stdlib.ArgType) (string, error) {
	switch t {
	case stdlib.TreeHandle:
		return "(shape->ptr " + arg + ")", nil
	case stdlib.Float:
		return arg, nil
	case stdlib.Vec2:
		return "(vec2->ffi " + arg + ")", nil
	case stdlib.Vec3:
		return "(vec3->ffi " + arg + ")", nil
	default:
		return "", unknownArgType(t)
	}
}

func (*Guile) HostType(t stdlib.ArgType) (string, error) {
	if !t.Valid() {
		return "", unknownArgType(t)
	}
	return "", nil
}

// PublicName replaces every '_' with '-'.
func (*Guile) PublicName(name string) string {
	return strings.ReplaceAll(name, "_", "-")
}

func (*Guile) ParamName(arg string) string { return arg }

// Doc returns docstring as a Scheme string literal.
func (*Guile) Doc(docstring string) string {
	// Backslashes and quotes are escaped so a docstring can't end the
	// string literal early.
	return `" ` + textutils.IndentContinuation(guileStringEscaper.Replace(docstring), guileDocIndent) + `"`
}

// GuileDocstring recovers the docstring from the result of
// [Guile.Doc].
func GuileDocstring(doc string) string {
	s := strings.TrimPrefix(doc, `" `)
	s = strings.TrimSuffix(s, `"`)
	s = textutils.TrimContinuation(s, guileDocIndent)
	return strings.NewReplacer(`\\`, `\`, `\"`, `"`).Replace(s)
}

func (*Guile) writeHeader(cb *binderio.CodeBuilder, m *stdlib.Module, p Provenance) {
	module := m.Name
	cb.Linef(`#|`)
	cb.Linef(`Guile bindings to the libfive CAD kernel`)
	cb.Linef(``)
	cb.Linef(`DO NOT EDIT BY HAND!`)
	cb.Linef(`This file is automatically generated from %v`, p.Source)
	cb.Linef(``)
	cb.Linef(`It was last generated on %v by user %v`, p.Time.Format(TimeFormat), p.User)
	cb.Linef(`|#`)
	cb.Linef(``)
	cb.Linef(`(define-module (libfive stdlib %v))`, module)
	cb.Linef(`(use-modules %v)`, strings.Join(GuileRequires, " "))
	cb.Linef(``)
}

func (*Guile) stanzaTemplate() *template.Template { return templateGuileStanza }

func (*Guile) finish(cb *binderio.CodeBuilder, module string) (string, error) {
	return cb.String(), nil
}
