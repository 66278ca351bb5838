package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/refaktor/libfivegen/binder"
	"github.com/refaktor/libfivegen/config"
	"github.com/stretchr/testify/require"
)

var testProvenance = binder.Provenance{
	Time:   time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
	User:   "tester",
	Source: "libfive/stdlib/stdlib.h",
}

// testConfig returns a config reading testdata/stdlib.h, with the
// output directories of all targets created in a temporary directory.
func testConfig(t *testing.T, modules ...string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	guileDir := filepath.Join(dir, "guile")
	goDir := filepath.Join(dir, "go")
	require.NoError(t, os.Mkdir(guileDir, 0777))
	require.NoError(t, os.Mkdir(goDir, 0777))
	return &config.Config{
		Header:  filepath.Join("testdata", "stdlib.h"),
		Source:  testProvenance.Source,
		Modules: modules,
		Targets: []config.Target{
			{Name: "guile", Output: guileDir},
			{Name: "go", Output: goDir, KernelImport: "github.com/libfive/libfive-go/kernel"},
		},
	}
}

func TestRun(t *testing.T) {
	require := require.New(t)

	cfg := testConfig(t, "csg", "shapes")
	var log bytes.Buffer
	res, err := run(cfg, testProvenance, &Logger{Writer: &log})
	require.NoError(err)
	require.Len(res, 4)

	guileCsg := filepath.Join(cfg.Targets[0].Output, "csg.scm")
	require.Equal(generated{Module: "csg", Target: "guile", Path: guileCsg, Functions: 4}, res[0])
	require.Equal("go", res[1].Target)
	require.Equal("shapes", res[3].Module)

	b, err := os.ReadFile(guileCsg)
	require.NoError(err)
	out := string(b)
	require.True(strings.HasPrefix(out, "#|\nGuile bindings to the libfive CAD kernel\n"))
	require.Contains(out, "It was last generated on 2026-10-19 12:00:00 by user tester\n")
	require.Contains(out, "(define-module (libfive stdlib csg))\n")
	require.Contains(out, `(dynamic-func "_union" stdlib)`)
	require.Contains(out, "(define-public (union a b)\n")
	require.Contains(out, "(ptr->shape (ffi_union (shape->ptr a) (shape->ptr b))))\n")
	require.True(strings.HasSuffix(out, ")))\n"))
	require.False(strings.HasSuffix(out, "\n\n"))

	b, err = os.ReadFile(filepath.Join(cfg.Targets[1].Output, "shapes.go"))
	require.NoError(err)
	require.Contains(string(b), "package shapes\n")
	require.Contains(string(b), "func Circle(r float32, center kernel.Vec2) *kernel.Shape {\n")

	require.Contains(log.String(), "INFO: parsed testdata/stdlib.h (3 sections)\n")
	require.Contains(log.String(), "INFO: wrote "+guileCsg+" (4 functions)\n")
}

func TestRunOverwrites(t *testing.T) {
	require := require.New(t)

	cfg := testConfig(t, "csg")
	cfg.Targets = cfg.Targets[:1]
	path := filepath.Join(cfg.Targets[0].Output, "csg.scm")
	require.NoError(os.WriteFile(path, []byte(strings.Repeat("stale\n", 1000)), 0666))

	_, err := run(cfg, testProvenance, &Logger{})
	require.NoError(err)
	b, err := os.ReadFile(path)
	require.NoError(err)
	require.NotContains(string(b), "stale")
}

func TestRunUnknownArgumentType(t *testing.T) {
	require := require.New(t)

	cfg := testConfig(t, "csg", "transforms", "shapes")
	res, err := run(cfg, testProvenance, &Logger{})
	var uErr *binder.UnknownArgumentTypeError
	require.ErrorAs(err, &uErr)
	require.Equal("rotate", uErr.Function)
	require.Equal("quaternion", uErr.Type)

	// Earlier modules are kept, the failing and later ones are never written.
	require.Len(res, 2)
	require.FileExists(filepath.Join(cfg.Targets[0].Output, "csg.scm"))
	for _, tc := range cfg.Targets {
		for _, name := range []string{"transforms", "shapes"} {
			_, err := os.Stat(filepath.Join(tc.Output, name+"."+map[string]string{"guile": "scm", "go": "go"}[tc.Name]))
			require.ErrorIs(err, os.ErrNotExist)
		}
	}
}

func TestRunMissingModule(t *testing.T) {
	require := require.New(t)

	cfg := testConfig(t, "text")
	res, err := run(cfg, testProvenance, &Logger{})
	require.Empty(res)
	var mErr *binder.MissingModuleError
	require.ErrorAs(err, &mErr)
	require.Equal("text", mErr.Module)
	require.Equal([]string{"csg", "shapes", "transforms"}, mErr.Available)
}

func TestRunWriteError(t *testing.T) {
	require := require.New(t)

	cfg := testConfig(t, "csg")
	cfg.Targets[0].Output = filepath.Join(t.TempDir(), "does", "not", "exist")
	_, err := run(cfg, testProvenance, &Logger{})
	var wErr *WriteError
	require.ErrorAs(err, &wErr)
	require.Equal(filepath.Join(cfg.Targets[0].Output, "csg.scm"), wErr.Path)
	require.True(errors.Is(err, os.ErrNotExist))
}

func TestRunInvalidConfig(t *testing.T) {
	require := require.New(t)

	cfg := testConfig(t)
	cfg.Header = filepath.Join("testdata", "missing.h")
	_, err := run(cfg, testProvenance, &Logger{})
	require.ErrorContains(err, "invalid configuration: ")
	require.ErrorContains(err, "no modules")

	cfg.Modules = []string{"csg"}
	_, err = run(cfg, testProvenance, &Logger{})
	require.ErrorContains(err, "parse header: ")
	require.True(errors.Is(err, os.ErrNotExist))
}

func TestCurrentProvenance(t *testing.T) {
	require := require.New(t)

	before := time.Now()
	p := currentProvenance("stdlib.h")
	require.Equal("stdlib.h", p.Source)
	require.NotEmpty(p.User)
	require.False(p.Time.Before(before))
}

func TestPrintSummary(t *testing.T) {
	require := require.New(t)

	var b bytes.Buffer
	printSummary(&b, []generated{
		{Module: "csg", Target: "guile", Path: "out/csg.scm", Functions: 4},
		{Module: "csg", Target: "go", Path: "out/csg.go", Functions: 4},
	})
	out := b.String()
	for _, s := range []string{"MODULE", "TARGET", "csg", "guile", "out/csg.scm", "out/csg.go", "TOTAL", "8"} {
		require.Contains(out, s)
	}
}

func TestLogger(t *testing.T) {
	require := require.New(t)

	var b bytes.Buffer
	l := &Logger{Writer: &b, Prefix: "libfivegen", MinLevel: WARN}
	l.Log(INFO, "hidden")
	l.Log(WARN, "careful %v", 1)
	l.Log(ERROR, "2 errors occurred:\n* one\n* two\n")
	require.Equal("libfivegen WARNING: careful 1\n"+
		"libfivegen ERROR:\n  2 errors occurred:\n  * one\n  * two\n", b.String())

	(&Logger{}).Log(ERROR, "no writer")
	(&Logger{Writer: io.Discard}).Log(INFO, "discarded")
}
