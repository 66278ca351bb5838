package stdlib_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/refaktor/libfivegen/stdlib"
	"github.com/stretchr/testify/require"
)

func TestParseFile(t *testing.T) {
	require := require.New(t)

	lib, err := stdlib.ParseFile(filepath.Join("testdata", "stdlib.h"))
	require.NoError(err)
	require.Equal([]string{"csg", "shapes"}, lib.Order)
	require.Equal([]string{"csg", "shapes"}, lib.Names())

	csg, ok := lib.Module("csg")
	require.True(ok)
	require.Equal("csg", csg.Name)
	require.Equal([]stdlib.Function{
		{
			Name:      "union",
			RawName:   "_union",
			Docstring: "Returns the union of two shapes",
			Args: []stdlib.Arg{
				{Name: "a", Type: stdlib.TreeHandle},
				{Name: "b", Type: stdlib.TreeHandle},
			},
		},
		{
			Name:      "intersection",
			Docstring: "Returns the intersection of two shapes",
			Args: []stdlib.Arg{
				{Name: "a", Type: stdlib.TreeHandle},
				{Name: "b", Type: stdlib.TreeHandle},
			},
		},
		{
			Name:      "inverse",
			Docstring: "Returns a shape that's the inverse of the input shape",
			Args: []stdlib.Arg{
				{Name: "a", Type: stdlib.TreeHandle},
			},
		},
		{
			Name:      "clearance",
			Docstring: "Expands shape b by the given offset then subtracts it\nfrom shape a",
			Args: []stdlib.Arg{
				{Name: "a", Type: stdlib.TreeHandle},
				{Name: "b", Type: stdlib.TreeHandle},
				{Name: "offset", Type: stdlib.Float},
			},
		},
	}, csg.Shapes)

	shapes, ok := lib.Module("shapes")
	require.True(ok)
	require.Len(shapes.Shapes, 3)
	require.Equal([]stdlib.Arg{
		{Name: "r", Type: stdlib.Float},
		{Name: "center", Type: stdlib.Vec2},
	}, shapes.Shapes[0].Args)
	require.Equal([]stdlib.Arg{
		{Name: "r", Type: stdlib.Float},
		{Name: "center", Type: stdlib.Vec3},
	}, shapes.Shapes[1].Args)
	require.Equal("emptiness", shapes.Shapes[2].Symbol())
	require.Empty(shapes.Shapes[2].Args)
	require.Empty(shapes.Shapes[2].Docstring)

	_, ok = lib.Module("transforms")
	require.False(ok)
}

func TestParseSingleLine(t *testing.T) {
	require := require.New(t)

	lib, err := stdlib.Parse("one.h", []byte(
		"LIBFIVE_SECTION(csg)\r\n"+
			"LIBFIVE_STDLIB blend(libfive_tree a, libfive_tree b, float m); // Smooth union\r\n",
	))
	require.NoError(err)
	csg, ok := lib.Module("csg")
	require.True(ok)
	require.Len(csg.Shapes, 1)
	fn := csg.Shapes[0]
	require.Equal("blend", fn.Symbol())
	require.Equal("Smooth union", fn.Docstring)
	require.Len(fn.Args, 3)
}

func TestParseUnknownTypeIsKept(t *testing.T) {
	require := require.New(t)

	lib, err := stdlib.Parse("q.h", []byte(`LIBFIVE_SECTION(transforms)
LIBFIVE_STDLIB rotate(
    // Rotates by a quaternion
    libfive_tree t, quaternion q);
`))
	require.NoError(err)
	m, _ := lib.Module("transforms")
	require.Equal(stdlib.ArgType("quaternion"), m.Shapes[0].Args[1].Type)
	require.False(m.Shapes[0].Args[1].Type.Valid())
	require.True(m.Shapes[0].Args[0].Type.Valid())
}

func TestParseErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		src  string
		err  string
	}{
		{
			name: "outside section",
			src:  "LIBFIVE_STDLIB circle(float r);\n",
			err:  `bad.h:1: function "circle" outside of section`,
		},
		{
			name: "duplicate section",
			src:  "LIBFIVE_SECTION(csg)\n\nLIBFIVE_SECTION(csg)\n",
			err:  `bad.h:3: duplicate section "csg"`,
		},
		{
			name: "unterminated",
			src:  "LIBFIVE_SECTION(csg)\nLIBFIVE_STDLIB _union(\n    libfive_tree a,\n",
			err:  `bad.h:2: unterminated declaration of "_union"`,
		},
		{
			name: "malformed parameter",
			src:  "LIBFIVE_SECTION(csg)\nLIBFIVE_STDLIB inverse(libfive_tree);\n",
			err:  `bad.h:2: inverse: malformed parameter "libfive_tree"`,
		},
		{
			name: "missing semicolon",
			src:  "LIBFIVE_SECTION(csg)\nLIBFIVE_STDLIB inverse(\n    libfive_tree a)\n",
			err:  `bad.h:3: expected ";" after ")"`,
		},
		{
			name: "duplicate function",
			src:  "LIBFIVE_SECTION(csg)\nLIBFIVE_STDLIB inverse(libfive_tree a);\nLIBFIVE_STDLIB inverse(libfive_tree b);\n",
			err:  `bad.h:3: duplicate function "inverse" in section "csg"`,
		},
		{
			name: "bad section",
			src:  "LIBFIVE_SECTION csg\n",
			err:  `bad.h:1: expected LIBFIVE_SECTION(name)`,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := stdlib.Parse("bad.h", []byte(tc.src))
			require.EqualError(t, err, tc.err)
			var sErr *stdlib.SyntaxError
			require.True(t, errors.As(err, &sErr))
		})
	}
}
