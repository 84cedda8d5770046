package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"foxc/internal/common"
)

const usage = `Usage: foxc [flags|options] <path to source file or project directory>

Flags:
------
-h, --help      Displays usage information (ie. this text).
-v, --version   Displays the current compiler version.
-d, --debug     Dumps the generated bytecode module after a successful build.

Options:
--------
-o,  --out        Sets the path the compiled bytecode module summary is
                  written to. Defaults to stdout.
-ll, --loglevel   Sets the minimum diagnostic severity printed. Valid values:
                    - "note" for everything (default)
                    - "warn" for warnings and errors
                    - "error" for errors only
                    - "silent" for no output
`

func printUsage(exitCode int) {
	fmt.Print(usage)
	os.Exit(exitCode)
}

// argParser is a hand-rolled command-line argument parser, ported from the
// teacher's bootstrap/cmd/args.go.
type argParser struct {
	args []string
	ndx  int
}

var options = map[string]struct{}{
	"o":         {},
	"ll":        {},
	"-out":      {},
	"-loglevel": {},
}

func argumentError(format string, args ...any) {
	fmt.Fprint(os.Stderr, "argument error: ", fmt.Sprintf(format, args...), "\n\n")
	printUsage(1)
}

// nextArg parses the next command-line argument if one exists. The first
// return value is the argument's flag/option name (empty for a positional
// argument); the second is its value (empty for a flag); the third
// indicates whether an argument was found at all.
func (ap *argParser) nextArg() (string, string, bool) {
	if ap.ndx >= len(ap.args) {
		return "", "", false
	}

	arg := ap.args[ap.ndx]
	ap.ndx++

	if !strings.HasPrefix(arg, "-") {
		return "", arg, true
	}

	name := arg[1:]
	if _, ok := options[name]; ok {
		if ap.ndx < len(ap.args) && !strings.HasPrefix(ap.args[ap.ndx], "-") {
			value := ap.args[ap.ndx]
			ap.ndx++
			return name, value, true
		}
		argumentError("option %s requires an argument", strings.TrimLeft(name, "-"))
	}
	return name, "", true
}

// driverConfig holds the parsed command-line state, mirroring the
// teacher's Compiler struct.
type driverConfig struct {
	inputPath string
	outPath   string
	debug     bool
	logLevel  logLevel
}

func useArg(dc *driverConfig, name, value string) {
	switch name {
	case "h", "-help":
		printUsage(0)
	case "v", "-version":
		fmt.Println("foxc " + common.FoxVersion)
		os.Exit(0)
	case "d", "-debug":
		dc.debug = true
	case "ll", "-loglevel":
		lvl, ok := parseLogLevel(value)
		if !ok {
			argumentError("invalid log level `%s`", value)
		}
		dc.logLevel = lvl
	case "o", "-out":
		dc.outPath = value
	case "":
		if dc.inputPath == "" {
			abs, err := filepath.Abs(value)
			if err != nil {
				argumentError("invalid input path: %s", value)
			}
			dc.inputPath = abs
		} else {
			argumentError("input path specified multiple times")
		}
	default:
		argumentError("unknown flag: %s", name)
	}
}

// parseDriverConfig builds a driverConfig from os.Args, exiting the process
// on any usage error (ported from NewCompilerFromArgs).
func parseDriverConfig() *driverConfig {
	dc := &driverConfig{logLevel: logLevelNote}

	ap := argParser{args: os.Args[1:]}
	for {
		name, value, ok := ap.nextArg()
		if !ok {
			break
		}
		useArg(dc, name, value)
	}

	if dc.inputPath == "" {
		argumentError("an input path must be specified")
	}

	return dc
}
