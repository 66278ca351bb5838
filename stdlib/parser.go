package stdlib

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode"
)

const (
	macroSection  = "LIBFIVE_SECTION"
	macroFunction = "LIBFIVE_STDLIB"
)

// C parameter types and the argument types they map to.
var cTypes = map[string]ArgType{
	"libfive_tree": TreeHandle,
	"float":        Float,
	"tfloat":       Float,
	"libfive_vec2": Vec2,
	"vec2":         Vec2,
	"libfive_vec3": Vec3,
	"vec3":         Vec3,
}

type SyntaxError struct {
	Filename string
	Line     int
	Msg      string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%v:%v: %v", e.Filename, e.Line, e.Msg)
}

// ParseFile reads and parses the header at path.
func ParseFile(path string) (*Library, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, src)
}

// Parse a standard library header from source.
// filename is for errors.
//
// Sections are opened by LIBFIVE_SECTION(name). Each
// LIBFIVE_STDLIB name(...); declaration inside a section becomes a
// [Function]; "//" comments within the parentheses form its docstring.
// Everything else in the header is ignored.
func Parse(filename string, src []byte) (*Library, error) {
	lib := NewLibrary()

	line := 0
	errorAt := func(line int, format string, args ...any) error {
		return &SyntaxError{
			Filename: filename,
			Line:     line,
			Msg:      fmt.Sprintf(format, args...),
		}
	}

	var mod *Module
	var fn *Function // non-nil => we are within a declaration
	var fnLine int
	var params strings.Builder
	var doc []string

	finish := func() error {
		args, err := parseParams(params.String())
		if err != nil {
			return errorAt(fnLine, "%v: %v", fn.Symbol(), err)
		}
		fn.Args = args
		fn.Docstring = strings.Join(doc, "\n")
		for _, f := range mod.Shapes {
			if f.Name == fn.Name {
				return errorAt(fnLine, "duplicate function %q in section %q", fn.Name, mod.Name)
			}
		}
		mod.Shapes = append(mod.Shapes, *fn)
		fn = nil
		params.Reset()
		doc = nil
		return nil
	}

	// Consumes the text of a declaration line. Returns true
	// once the closing parenthesis was found.
	consume := func(text string) (bool, error) {
		code, comment, hasComment := strings.Cut(text, "//")
		if hasComment {
			doc = append(doc, strings.TrimPrefix(strings.TrimRight(comment, " \t"), " "))
		}
		code = strings.TrimSpace(code)
		before, after, closed := strings.Cut(code, ")")
		if !closed {
			if code != "" {
				params.WriteString(code)
				params.WriteString(" ")
			}
			return false, nil
		}
		if strings.TrimSpace(after) != ";" {
			return false, errorAt(line, "expected \";\" after \")\"")
		}
		params.WriteString(before)
		return true, finish()
	}

	for ln := range bytes.SplitSeq(
		bytes.ReplaceAll(src, []byte("\r\n"), []byte("\n")),
		[]byte("\n"),
	) {
		line++
		s := strings.TrimSpace(string(ln))

		if fn != nil {
			if _, err := consume(s); err != nil {
				return nil, err
			}
			continue
		}

		switch {
		case strings.HasPrefix(s, macroSection):
			name, err := macroArg(s, macroSection)
			if err != nil {
				return nil, errorAt(line, "%v", err)
			}
			m, ok := lib.addModule(name)
			if !ok {
				return nil, errorAt(line, "duplicate section %q", name)
			}
			mod = m
		case strings.HasPrefix(s, macroFunction):
			rest := strings.TrimSpace(strings.TrimPrefix(s, macroFunction))
			ident, after, ok := strings.Cut(rest, "(")
			if !ok {
				return nil, errorAt(line, "expected \"(\" after function name")
			}
			ident = strings.TrimSpace(ident)
			if !isIdent(ident) {
				return nil, errorAt(line, "invalid function name %q", ident)
			}
			if mod == nil {
				return nil, errorAt(line, "function %q outside of section", ident)
			}
			fn = &Function{Name: strings.TrimLeft(ident, "_")}
			if fn.Name == "" {
				return nil, errorAt(line, "invalid function name %q", ident)
			}
			if fn.Name != ident {
				fn.RawName = ident
			}
			fnLine = line
			if _, err := consume(after); err != nil {
				return nil, err
			}
		}
	}
	if fn != nil {
		return nil, errorAt(fnLine, "unterminated declaration of %q", fn.Symbol())
	}
	return lib, nil
}

// macroArg extracts name from a line of the form MACRO(name).
func macroArg(s, macro string) (string, error) {
	rest := strings.TrimSpace(strings.TrimPrefix(s, macro))
	inner, ok := strings.CutPrefix(rest, "(")
	if ok {
		inner, _, ok = strings.Cut(inner, ")")
	}
	if !ok {
		return "", fmt.Errorf("expected %v(name)", macro)
	}
	inner = strings.TrimSpace(inner)
	if !isIdent(inner) {
		return "", fmt.Errorf("invalid %v name %q", macro, inner)
	}
	return inner, nil
}

func parseParams(s string) ([]Arg, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "void" {
		return nil, nil
	}
	var args []Arg
	for param := range strings.SplitSeq(s, ",") {
		fields := strings.Fields(param)
		if len(fields) < 2 {
			return nil, fmt.Errorf("malformed parameter %q", strings.TrimSpace(param))
		}
		name := fields[len(fields)-1]
		if !isIdent(name) {
			return nil, fmt.Errorf("invalid parameter name %q", name)
		}
		cType := strings.Join(fields[:len(fields)-1], " ")
		cType = strings.TrimPrefix(cType, "const ")
		typ, ok := cTypes[cType]
		if !ok {
			typ = ArgType(cType)
		}
		args = append(args, Arg{Name: name, Type: typ})
	}
	return args, nil
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}
