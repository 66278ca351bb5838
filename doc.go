/*
Libfivegen generates foreign-function bindings to the libfive CAD
kernel's standard library.

It parses the library's C header, where functions are grouped into
sections by LIBFIVE_SECTION, and writes one binding file per requested
section and target language. Each native function gets a low-level
foreign-call declaration and a public wrapper that marshals shapes and
vectors and wraps the returned tree pointer in a shape.

Usage:

	libfivegen [-config libfivegen.toml] [-q]

Without -config, Guile bindings for the "csg" section are generated
from ./stdlib.h into ../bind/guile/libfive/stdlib.

# Architecture pipeline (for developers)

 1. [config]: Load and validate the TOML configuration
 2. [stdlib]: Parse the header into modules of functions
 3. [binder]: Map argument types and render each module for each target
 4. main: Write the files and print a summary
*/
package main
