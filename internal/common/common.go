// Package common holds small pieces of global state shared across the
// compiler pipeline: version/identifier constants and the register
// pressure ceiling consulted by internal/bcgen.
package common

// FoxVersion is the current Fox front-end version string.
const FoxVersion string = "0.1.0"

// ProjectFileName is the name of a Fox project descriptor file.
const ProjectFileName string = "fox.toml"

// FoxFileExt is the file extension for Fox source files.
const FoxFileExt string = ".fox"

// MaxRegisters is the default upper bound on the number of live registers a
// single function body may use, mirroring the regnum_t ceiling from the
// original Fox register allocator. A project descriptor's
// `[build] max-registers` overrides this.
const MaxRegisters = 256

// MaxConstPoolEntries is the ceiling on constant pool size imposed by the
// 16-bit constant index used by the bytecode encoding (spec 6.3).
const MaxConstPoolEntries = 1 << 16
