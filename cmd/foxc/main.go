// Command foxc drives Fox's SourceManager -> Lexer -> Parser -> Sema ->
// BCGen pipeline over a single compilation unit, grounded on the teacher's
// bootstrap/cmd package (RunCompiler, NewCompilerFromArgs).
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kr/pretty"

	"foxc/internal/ast"
	"foxc/internal/bcgen"
	"foxc/internal/config"
	"foxc/internal/lexer"
	"foxc/internal/parser"
	"foxc/internal/report"
	"foxc/internal/sema"
)

func main() {
	os.Exit(run())
}

func run() int {
	dc := parseDriverConfig()

	sm := report.NewSourceManager()
	diag := report.NewEngine(sm, &levelFilterConsumer{next: report.NewTextConsumer(), min: dc.logLevel.minSeverity()})

	sourcePath, maxRegisters := resolveInput(dc.inputPath, diag)
	if diag.AnyErrors() {
		return 1
	}

	file, err := sm.LoadFromFile(sourcePath)
	if err != nil {
		diag.Fatalf(report.KindInvalidProjectDescriptor, "unable to read source file `%s`: %s", sourcePath, err.Error())
		return 1
	}

	mod := compile(sm, diag, file, maxRegisters)

	if dc.debug && !diag.AnyErrors() {
		dumpModule(mod)
	}

	if diag.AnyErrors() {
		return 1
	}
	writeSummary(dc.outPath, mod)
	return 0
}

// resolveInput accepts either a direct .fox source file or a directory
// containing a fox.toml project descriptor (SPEC_FULL 2.3), returning the
// entry source file to compile and any max-registers override.
func resolveInput(inputPath string, diag *report.Engine) (string, int) {
	info, err := os.Stat(inputPath)
	if err != nil {
		diag.Fatalf(report.KindInvalidProjectDescriptor, "cannot stat input path `%s`: %s", inputPath, err.Error())
		return "", 0
	}

	if !info.IsDir() {
		return inputPath, 0
	}

	pc, ok := config.Load(inputPath, diag)
	if !ok {
		return "", 0
	}
	return filepath.Join(pc.AbsPath, pc.Entry), pc.MaxRegisters
}

func compile(sm *report.SourceManager, diag *report.Engine, file report.FileId, maxRegisters int) *bcgen.Generator {
	defer report.CatchErrors(diag, report.SourceRange{})

	l := lexer.New(sm.GetContent(file), file, diag)
	toks, _ := l.Lex()

	ctx := ast.NewContext()
	p := parser.New(toks, file, diag, ctx, sm)
	unit := p.ParseUnit(filepath.Base(sm.GetPath(file)))

	checker := sema.NewChecker(ctx, diag)
	checker.Check(unit)

	gen := bcgen.NewGenerator(ctx, diag, maxRegisters)
	gen.Generate(unit)
	return gen
}

func dumpModule(gen *bcgen.Generator) {
	_, err := pretty.Println(gen.Module())
	if err != nil {
		fmt.Fprintln(os.Stderr, "debug dump failed:", err)
	}
}

func writeSummary(outPath string, gen *bcgen.Generator) {
	mod := gen.Module()
	summary := fmt.Sprintf(
		"functions=%d globals=%d instructions=%d consts(int=%d double=%d string=%d)\n",
		len(mod.Functions), len(mod.Globals), len(mod.Instructions),
		len(mod.Consts.Ints), len(mod.Consts.Doubles), len(mod.Consts.Strings),
	)

	if outPath == "" {
		fmt.Print(summary)
		return
	}
	if err := os.WriteFile(outPath, []byte(summary), 0o644); err != nil {
		fmt.Fprintln(os.Stderr, "error writing output:", err)
	}
}
