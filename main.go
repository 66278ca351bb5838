package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/refaktor/libfivegen/binder"
	"github.com/refaktor/libfivegen/config"
	"github.com/refaktor/libfivegen/stdlib"
)

var optConfig string
var optQuiet bool

func init() {
	flag.StringVar(&optConfig, "config", "", "TOML configuration file (default: built-in configuration)")
	flag.BoolVar(&optQuiet, "q", false, "only log warnings and errors, don't print a summary")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), `usage: libfivegen [options...]

options:
`)
		flag.PrintDefaults()
		fmt.Fprintf(flag.CommandLine.Output(), `
default configuration:
  header  = "stdlib.h"
  source  = "libfive/stdlib/stdlib.h"
  modules = ["csg"]

  [[target]]
  name   = "guile"
  output = "../bind/guile/libfive/stdlib"
`)
	}
}

// WriteError is returned when a generated file can't be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return "write " + e.Path + ": " + e.Err.Error()
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// A file written by [run].
type generated struct {
	Module    string
	Target    string
	Path      string
	Functions int
}

// currentProvenance captures the current time and user.
func currentProvenance(source string) binder.Provenance {
	name := "unknown"
	if u, err := user.Current(); err == nil && u.Username != "" {
		name = u.Username
	} else if s := os.Getenv("USER"); s != "" {
		name = s
	} else if s := os.Getenv("USERNAME"); s != "" {
		name = s
	}
	return binder.Provenance{
		Time:   time.Now(),
		User:   name,
		Source: source,
	}
}

// run generates every configured module for every configured target.
//
// Each file is rendered completely before it is written. Files written
// before an error occurred are kept and returned along with the error.
func run(cfg *config.Config, prov binder.Provenance, logger *Logger) ([]generated, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	targets := make([]binder.Target, len(cfg.Targets))
	for i, tc := range cfg.Targets {
		t, err := binder.NewTarget(tc.Name, binder.TargetOptions{
			KernelImport: tc.KernelImport,
		})
		if err != nil {
			return nil, err
		}
		targets[i] = t
	}

	lib, err := stdlib.ParseFile(cfg.Header)
	if err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}
	logger.Log(INFO, "parsed %v (%v sections)", cfg.Header, len(lib.Order))

	var res []generated
	for _, name := range cfg.Modules {
		m, err := binder.Lookup(lib, name)
		if err != nil {
			return res, err
		}
		for i, t := range targets {
			code, err := binder.RenderModule(t, m, prov)
			if err != nil {
				return res, fmt.Errorf("generate %v for %v: %w", name, t.Name(), err)
			}
			path := filepath.Join(cfg.Targets[i].Output, name+"."+t.FileExt())
			if err := os.WriteFile(path, []byte(code), 0666); err != nil {
				return res, &WriteError{Path: path, Err: err}
			}
			logger.Log(INFO, "wrote %v (%v functions)", path, len(m.Shapes))
			res = append(res, generated{
				Module:    name,
				Target:    t.Name(),
				Path:      path,
				Functions: len(m.Shapes),
			})
		}
	}
	return res, nil
}

func printSummary(w io.Writer, res []generated) {
	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"Module", "Target", "Functions", "File"})
	tbl.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT})
	tbl.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	total := 0
	for _, g := range res {
		tbl.Append([]string{g.Module, g.Target, strconv.Itoa(g.Functions), g.Path})
		total += g.Functions
	}
	tbl.SetFooter([]string{"", "Total", strconv.Itoa(total), ""})
	tbl.Render()
}

func main() {
	flag.Parse()
	if flag.NArg() != 0 {
		flag.Usage()
		os.Exit(2)
	}

	logger := &Logger{
		Writer: os.Stderr,
		Prefix: "libfivegen",
	}
	if optQuiet {
		logger.MinLevel = WARN
	}

	cfg := config.Default()
	if optConfig != "" {
		c, err := config.Load(optConfig)
		if err != nil {
			if cErr := (&config.Error{}); errors.As(err, &cErr) {
				logger.Log(FATAL, "%v", cErr.String())
			}
			logger.Log(FATAL, "load config: %v", err)
		}
		cfg = c
	}

	res, err := run(cfg, currentProvenance(cfg.Source), logger)
	if err != nil {
		logger.Log(FATAL, "%v", err)
	}
	if !optQuiet {
		printSummary(os.Stdout, res)
	}
}
