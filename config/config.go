package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"dario.cat/mergo"
	"github.com/hashicorp/go-multierror"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/mod/module"
)

// Target names known to the generator.
var KnownTargets = []string{"guile", "go"}

type Target struct {
	Name string `toml:"name"`
	// Directory generated files are written to. Must exist.
	Output string `toml:"output"`
	// Import path of the runtime package generated Go code uses.
	KernelImport string `toml:"kernel-import"`
}

type Config struct {
	Imports []string `toml:"imports"`
	// Path of the header to parse.
	Header string `toml:"header"`
	// Header path as shown in generated files.
	Source  string   `toml:"source"`
	Modules []string `toml:"modules"`
	Targets []Target `toml:"target"`
}

// Default returns the configuration used when no file is given:
// Guile bindings for the "csg" module, run from libfive/stdlib.
func Default() *Config {
	return &Config{
		Header:  "stdlib.h",
		Source:  "libfive/stdlib/stdlib.h",
		Modules: []string{"csg"},
		Targets: []Target{
			{Name: "guile", Output: "../bind/guile/libfive/stdlib"},
		},
	}
}

type Error struct {
	filePath string
	err      error  // short, single-line error
	str      string // full, multi-line error string, or err string, if none
}

// Error returns a short error message.
func (e *Error) Error() string {
	return e.filePath + ": " + e.err.Error()
}

// String returns the full multi-line error string.
func (e *Error) String() string {
	if e.str != "" {
		return "Error in file " + strconv.Quote(e.filePath) + ":\n" + e.str
	} else {
		return e.Error()
	}
}

func (e *Error) Unwrap() error {
	return e.err
}

// Load reads the config file at path and all files it imports.
// Fields left unset are taken from [Default].
func Load(path string) (*Config, error) {
	c, err := load(path, nil)
	if err != nil {
		return nil, err
	}
	if err := mergo.Merge(c, Default()); err != nil {
		return nil, err
	}
	return c, nil
}

// load reads path and its imports. chain holds the absolute paths of
// the files currently being loaded, outermost first.
func load(path string, chain []string) (_ *Config, err error) {
	defer func() {
		if err != nil {
			if cErr := (&Error{}); errors.As(err, &cErr) {
				// Error in imported file
				return
			}
			if tErr := (&toml.DecodeError{}); errors.As(err, &tErr) {
				err = &Error{filePath: path, err: err, str: tErr.String()}
			} else if tErr := (&toml.StrictMissingError{}); errors.As(err, &tErr) {
				err = &Error{filePath: path, err: err, str: tErr.String()}
			} else {
				err = &Error{filePath: path, err: err}
			}
		}
	}()

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if i := slices.Index(chain, abs); i != -1 {
		cycle := append(slices.Clone(chain[i:]), abs)
		return nil, fmt.Errorf("import cycle: %v", strings.Join(cycle, " -> "))
	}
	chain = append(chain, abs)

	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := &Config{}
	err = toml.NewDecoder(bytes.NewReader(file)).
		DisallowUnknownFields().
		Decode(c)
	if err != nil {
		return nil, err
	}

	var importedCs []*Config // collect imported files first so their imports don't leak into our file's imports
	for _, imp := range c.Imports {
		newC, err := load(imp, chain)
		if err != nil {
			return nil, err
		}
		importedCs = append(importedCs, newC)
	}
	for _, newC := range importedCs {
		if err := mergo.Merge(c, newC, mergo.WithAppendSlice); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Validate reports every problem in c at once.
func (c *Config) Validate() error {
	var errs *multierror.Error
	if c.Header == "" {
		errs = multierror.Append(errs, errors.New("no header"))
	}
	if len(c.Modules) == 0 {
		errs = multierror.Append(errs, errors.New("no modules"))
	}
	for i, m := range c.Modules {
		if m == "" {
			errs = multierror.Append(errs, fmt.Errorf("modules[%v]: empty module name", i))
		} else if slices.Index(c.Modules, m) != i {
			errs = multierror.Append(errs, fmt.Errorf("modules[%v]: duplicate module %q", i, m))
		}
	}
	if len(c.Targets) == 0 {
		errs = multierror.Append(errs, errors.New("no targets"))
	}
	seen := map[string]bool{}
	for i, t := range c.Targets {
		switch {
		case !slices.Contains(KnownTargets, t.Name):
			errs = multierror.Append(errs, fmt.Errorf("target[%v]: unknown target %q (known: %v)", i, t.Name, KnownTargets))
		case seen[t.Name]:
			errs = multierror.Append(errs, fmt.Errorf("target[%v]: duplicate target %q", i, t.Name))
		}
		seen[t.Name] = true
		if t.Output == "" {
			errs = multierror.Append(errs, fmt.Errorf("target[%v]: no output directory", i))
		}
		if t.Name == "go" {
			if err := module.CheckImportPath(t.KernelImport); err != nil {
				errs = multierror.Append(errs, fmt.Errorf("target[%v]: kernel-import: %w", i, err))
			}
		}
	}
	return errs.ErrorOrNil()
}
