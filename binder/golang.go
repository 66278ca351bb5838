package binder

import (
	_ "embed"
	"go/token"
	"strconv"
	"strings"
	"text/template"

	"github.com/iancoleman/strcase"

	"github.com/refaktor/libfivegen/binder/binderio"
	"github.com/refaktor/libfivegen/stdlib"
	"github.com/refaktor/libfivegen/textutils"
)

//go:embed go_stanza.go.tmpl
var templateSrcGoStanza string

var templateGoStanza = template.Must(template.New("go_stanza.go.tmpl").Funcs(templateFuncMap).Parse(templateSrcGoStanza))

// Docstrings go inside the wrapper body, one level deep.
const goDocPrefix = "\t// "

// Go generates Go packages that resolve libfive symbols at runtime
// through a kernel package.
//
// The kernel package (imported as "kernel") must provide:
//
//	func Func[F any](symbol string) F
//	type Shape          // with method Ptr() uintptr
//	func ShapeFromPtr(uintptr) *Shape
//	type Vec2, Vec3     // with method FFI() returning Vec2FFI, Vec3FFI
type Go struct {
	KernelImport string
}

func (*Go) Name() string    { return "go" }
func (*Go) FileExt() string { return "go" }

func (*Go) NativeType(t stdlib.ArgType) (string, error) {
	switch t {
	case stdlib.TreeHandle:
		return "uintptr", nil
	case stdlib.Vec2:
		return "kernel.Vec2FFI", nil
	case stdlib.Vec3:
		return "kernel.Vec3FFI", nil
	case stdlib.Float:
		return "float32", nil
	default:
		return "", unknownArgType(t)
	}
}

func (*Go) MarshalExpr(arg string, t stdlib.ArgType) (string, error) {
	switch t {
	case stdlib.TreeHandle:
		return arg + ".Ptr()", nil
	case stdlib.Float:
		return arg, nil
	case stdlib.Vec2, stdlib.Vec3:
		return arg + ".FFI()", nil
	default:
		return "", unknownArgType(t)
	}
}

func (*Go) HostType(t stdlib.ArgType) (string, error) {
	switch t {
	case stdlib.TreeHandle:
		return "*kernel.Shape", nil
	case stdlib.Float:
		return "float32", nil
	case stdlib.Vec2:
		return "kernel.Vec2", nil
	case stdlib.Vec3:
		return "kernel.Vec3", nil
	default:
		return "", unknownArgType(t)
	}
}

// PublicName converts name to an exported CamelCase identifier.
func (*Go) PublicName(name string) string {
	return strcase.ToCamel(name)
}

// ParamName appends '_' to names that are Go keywords or would
// shadow the kernel import.
func (*Go) ParamName(arg string) string {
	if token.IsKeyword(arg) || arg == "kernel" {
		return arg + "_"
	}
	return arg
}

// Doc returns docstring as comment lines for the wrapper body.
// The wrapper's own doc comment is generated; formatting rewrites doc
// comments (code blocks, headings, lists) but leaves body comments as
// they are.
func (*Go) Doc(docstring string) string {
	if docstring == "" {
		return ""
	}
	return textutils.PrefixLines(docstring, goDocPrefix)
}

// GoDocstring recovers the docstring from the comment lines produced
// by [Go.Doc].
func GoDocstring(doc string) string {
	lines := strings.Split(doc, "\n")
	for i, line := range lines {
		line = strings.TrimPrefix(line, strings.TrimRight(goDocPrefix, " "))
		lines[i] = strings.TrimPrefix(line, " ")
	}
	return strings.Join(lines, "\n")
}

// GoPackageName returns the package name of a generated module.
func GoPackageName(module string) string {
	return strings.ToLower(strcase.ToCamel(module))
}

func (g *Go) writeHeader(cb *binderio.CodeBuilder, m *stdlib.Module, p Provenance) {
	module := m.Name
	pkg := GoPackageName(module)
	cb.Linef(`// Code generated by libfivegen from %v. DO NOT EDIT.`, p.Source)
	cb.Linef(`// Last generated on %v by user %v.`, p.Time.Format(TimeFormat), p.User)
	cb.Linef(``)
	cb.Linef(`// Package %v binds the %q section of the libfive standard library.`, pkg, module)
	cb.Linef(`package %v`, pkg)
	cb.Linef(``)
	if len(m.Shapes) == 0 {
		// The kernel import would be unused.
		return
	}
	cb.Linef(`import (`)
	cb.Indent++
	cb.Linef(`kernel %v`, strconv.Quote(g.KernelImport))
	cb.Indent--
	cb.Linef(`)`)
	cb.Linef(``)
}

func (*Go) stanzaTemplate() *template.Template { return templateGoStanza }

func (*Go) finish(cb *binderio.CodeBuilder, module string) (string, error) {
	return cb.FmtString(module + ".go")
}
