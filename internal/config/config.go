// Package config loads and validates a Fox project descriptor (fox.toml),
// grounded on the teacher's bootstrap/depm.LoadModule/tomlModule pattern.
package config

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
	"golang.org/x/mod/semver"

	"foxc/internal/common"
	"foxc/internal/report"
)

// tomlProject is a fox.toml file as TOML unmarshals it.
type tomlProject struct {
	Name       string    `toml:"name"`
	FoxVersion string    `toml:"fox-version"`
	Build      tomlBuild `toml:"build"`
}

type tomlBuild struct {
	Entry        string `toml:"entry"`
	MaxRegisters int    `toml:"max-registers"`
}

// ProjectConfig is the validated, defaulted form of a fox.toml descriptor
// that the rest of the pipeline consumes.
type ProjectConfig struct {
	Name string

	// AbsPath is the absolute path to the directory containing fox.toml.
	AbsPath string

	// Entry is the project's entry source file, relative to AbsPath.
	// Defaults to "main.fox" when the descriptor omits [build] entry.
	Entry string

	// MaxRegisters overrides common.MaxRegisters when positive; zero means
	// "use the compiler default".
	MaxRegisters int
}

// Load reads and validates the fox.toml descriptor in dir, reporting
// through diag exactly as depm.LoadModule reports through report.Report*:
// a missing/unopenable/unparseable file or an invalid name is Fatal;
// a fox-version mismatch against common.FoxVersion is a non-fatal Warning.
func Load(dir string, diag *report.Engine) (*ProjectConfig, bool) {
	abspath, err := filepath.Abs(dir)
	if err != nil {
		diag.Fatalf(report.KindInvalidProjectDescriptor, "unable to resolve project path `%s`: %s", dir, err.Error())
		return nil, false
	}

	path := filepath.Join(abspath, common.ProjectFileName)
	f, err := os.Open(path)
	if err != nil {
		diag.Fatalf(report.KindInvalidProjectDescriptor, "unable to open project file at `%s`: %s", path, err.Error())
		return nil, false
	}
	defer f.Close()

	buf, err := ioutil.ReadAll(f)
	if err != nil {
		diag.Fatalf(report.KindInvalidProjectDescriptor, "error reading project file at `%s`: %s", path, err.Error())
		return nil, false
	}

	tp := &tomlProject{}
	if err := toml.Unmarshal(buf, tp); err != nil {
		diag.Fatalf(report.KindInvalidProjectDescriptor, "error parsing project file at `%s`: %s", path, err.Error())
		return nil, false
	}

	return validate(abspath, tp, diag)
}

func validate(abspath string, tp *tomlProject, diag *report.Engine) (*ProjectConfig, bool) {
	if tp.Name == "" {
		diag.Fatalf(report.KindInvalidProjectDescriptor, "project at `%s` is missing a `name`", abspath)
		return nil, false
	}

	if !isValidIdentifier(tp.Name) {
		diag.Fatalf(report.KindInvalidProjectDescriptor, "project name `%s` must be a valid identifier", tp.Name)
		return nil, false
	}

	if tp.FoxVersion != "" && !versionsCompatible(tp.FoxVersion, common.FoxVersion) {
		diag.Warnf(report.KindProjectVersionMismatch, report.SourceRange{},
			"project `%s` targets fox-version %s, which does not match this compiler's version %s",
			tp.Name, tp.FoxVersion, common.FoxVersion)
	}

	pc := &ProjectConfig{
		Name:         tp.Name,
		AbsPath:      abspath,
		Entry:        tp.Build.Entry,
		MaxRegisters: tp.Build.MaxRegisters,
	}
	if pc.Entry == "" {
		pc.Entry = "main" + common.FoxFileExt
	}
	return pc, true
}

// versionsCompatible compares two bare (non "v"-prefixed) version strings
// using semver.Compare, which requires the "v" prefix; fox-version strings
// in fox.toml omit it, so it is added here before comparing.
func versionsCompatible(want, have string) bool {
	wantV, haveV := "v"+want, "v"+have
	if !semver.IsValid(wantV) || !semver.IsValid(haveV) {
		return want == have
	}
	return semver.Compare(wantV, haveV) == 0
}

// isValidIdentifier mirrors depm.IsValidIdentifier: a leading letter or
// underscore followed by letters, digits, or underscores.
func isValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	if !isIdentStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentCont(s[i]) {
			return false
		}
	}
	return true
}

func isIdentStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || ('0' <= c && c <= '9')
}
