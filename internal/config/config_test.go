package config

import (
	"os"
	"path/filepath"
	"testing"

	"foxc/internal/common"
	"foxc/internal/report"
)

func writeProjectFile(t *testing.T, dir, contents string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, common.ProjectFileName), []byte(contents), 0o644); err != nil {
		t.Fatalf("writing fox.toml: %v", err)
	}
}

func newDiag() *report.Engine {
	return report.NewEngine(report.NewSourceManager(), nil)
}

func TestLoadValidProjectUsesDefaultEntry(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, `name = "myproj"`+"\n")

	diag := newDiag()
	pc, ok := Load(dir, diag)
	if !ok || diag.AnyErrors() {
		t.Fatalf("expected Load to succeed, diag errors: %v", diag.AnyErrors())
	}
	if pc.Name != "myproj" {
		t.Errorf("Name = %q, want myproj", pc.Name)
	}
	if pc.Entry != "main.fox" {
		t.Errorf("Entry = %q, want default main.fox", pc.Entry)
	}
	if pc.MaxRegisters != 0 {
		t.Errorf("MaxRegisters = %d, want 0 (unset)", pc.MaxRegisters)
	}
}

func TestLoadExplicitEntryAndMaxRegisters(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, `
name = "myproj"

[build]
entry = "src/app.fox"
max-registers = 128
`)
	diag := newDiag()
	pc, ok := Load(dir, diag)
	if !ok || diag.AnyErrors() {
		t.Fatalf("expected Load to succeed")
	}
	if pc.Entry != "src/app.fox" {
		t.Errorf("Entry = %q, want src/app.fox", pc.Entry)
	}
	if pc.MaxRegisters != 128 {
		t.Errorf("MaxRegisters = %d, want 128", pc.MaxRegisters)
	}
}

func TestLoadMissingFileIsFatal(t *testing.T) {
	dir := t.TempDir()
	diag := newDiag()
	_, ok := Load(dir, diag)
	if ok || !diag.AnyErrors() {
		t.Fatalf("expected Load to fail on a missing fox.toml")
	}
}

func TestLoadMissingNameIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, `[build]`+"\n")

	diag := newDiag()
	_, ok := Load(dir, diag)
	if ok || !diag.AnyErrors() {
		t.Fatalf("expected Load to fail when `name` is missing")
	}
}

func TestLoadInvalidIdentifierNameIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, `name = "123-bad"`+"\n")

	diag := newDiag()
	_, ok := Load(dir, diag)
	if ok || !diag.AnyErrors() {
		t.Fatalf("expected Load to fail on a non-identifier project name")
	}
}

func TestLoadMalformedTomlIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, `name = `+"\n")

	diag := newDiag()
	_, ok := Load(dir, diag)
	if ok || !diag.AnyErrors() {
		t.Fatalf("expected Load to fail on malformed TOML")
	}
}

func TestLoadVersionMismatchIsWarningNotError(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, `
name = "myproj"
fox-version = "99.0.0"
`)
	diag := newDiag()
	_, ok := Load(dir, diag)
	if !ok {
		t.Fatalf("expected Load to still succeed despite a version mismatch")
	}
	if diag.AnyErrors() {
		t.Errorf("expected a version mismatch to be a warning, not an error")
	}
	if diag.Count(report.Warning) == 0 {
		t.Errorf("expected at least one warning to be recorded")
	}
}

func TestLoadMatchingVersionHasNoWarning(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, `
name = "myproj"
fox-version = "`+common.FoxVersion+`"
`)
	diag := newDiag()
	_, ok := Load(dir, diag)
	if !ok {
		t.Fatalf("expected Load to succeed")
	}
	if diag.Count(report.Warning) != 0 {
		t.Errorf("expected no warning when fox-version matches exactly")
	}
}

func TestVersionsCompatibleFallsBackToStringEqualityOnInvalidSemver(t *testing.T) {
	if !versionsCompatible("not-a-version", "not-a-version") {
		t.Errorf("expected identical non-semver strings to compare compatible")
	}
	if versionsCompatible("not-a-version", "other") {
		t.Errorf("expected differing non-semver strings to compare incompatible")
	}
}

func TestIsValidIdentifier(t *testing.T) {
	valid := []string{"a", "_x", "myProject_1", "Z9"}
	invalid := []string{"", "1abc", "bad-name", "has space"}

	for _, s := range valid {
		if !isValidIdentifier(s) {
			t.Errorf("isValidIdentifier(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if isValidIdentifier(s) {
			t.Errorf("isValidIdentifier(%q) = true, want false", s)
		}
	}
}
