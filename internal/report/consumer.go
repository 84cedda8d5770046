package report

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pterm/pterm"
)

// severity styles, ported from the teacher's src/logging/display.go
// (SuccessColorFG/StyleBG etc.), retargeted at diagnostic severities.
var (
	errorBanner  = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	errorText    = pterm.FgRed
	warningBanner = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	warningText  = pterm.FgYellow
	noteText     = pterm.FgCyan
)

// TextConsumer renders diagnostics to the terminal in the format specified
// by spec 6.2:
//
//	<file>:<line>:<col>[-<col>] - <severity> - <message>
//	    <source line with indent trimmed>
//	    <caret/tilde underline aligned in codepoints>
type TextConsumer struct{}

// NewTextConsumer creates a TextConsumer writing to pterm's default output.
func NewTextConsumer() *TextConsumer {
	return &TextConsumer{}
}

func (tc *TextConsumer) Consume(sm *SourceManager, d Diagnostic) {
	if d.Severity == Ignored {
		return
	}

	tc.print(sm, d)
	for _, note := range d.Notes {
		tc.print(sm, note)
	}
}

func (tc *TextConsumer) print(sm *SourceManager, d Diagnostic) {
	banner, textStyle := styleFor(d.Severity)

	if !d.Primary.Valid() {
		banner.Print(" " + strings.ToUpper(d.Severity.String()) + " ")
		textStyle.Println(" " + d.Message)
		return
	}

	begin := sm.CompleteLoc(d.Primary.Begin)
	end := sm.CompleteLoc(d.Primary.End())

	loc := fmt.Sprintf("%s:%d:%d", begin.FileName, begin.Line, begin.Column)
	if end.Column != begin.Column || end.Line != begin.Line {
		loc += fmt.Sprintf("-%d", end.Column)
	}

	fmt.Printf("%s - ", loc)
	banner.Print(" " + strings.ToUpper(d.Severity.String()) + " ")
	textStyle.Println(" - " + d.Message)

	printSourceExtract(sm, d.Primary, d.Secondary)
	fmt.Println()
}

func styleFor(s Severity) (*pterm.Style, pterm.Color) {
	switch s {
	case Fatal, Error:
		return errorBanner, errorText
	case Warning:
		return warningBanner, warningText
	default:
		return pterm.NewStyle(pterm.FgCyan), noteText
	}
}

// printSourceExtract prints the single line containing primary's start
// with its leading indentation trimmed, followed by a caret/tilde
// underline measured in codepoints, per spec 6.2. A range that continues
// past that line is underlined only up to the line's end; later lines are
// not printed. '~' marks secondary where it does not overlap
// the primary underline; '^' always wins on overlap.
func printSourceExtract(sm *SourceManager, primary, secondary SourceRange) {
	line, lineStart := sm.LineAt(primary.Begin)

	indent := leadingIndent(line)
	trimmed := safeSlice(line, indent, len(line))

	fmt.Printf("    %s\n", trimmed)

	primaryStartCol := codepointCol(line, lineStart, primary.Begin.Offset) - indent
	primaryEndCol := codepointCol(line, lineStart, primary.End().Offset) - indent

	underlineLen := utf8.RuneCountInString(trimmed)
	underline := make([]rune, underlineLen)
	for i := range underline {
		underline[i] = ' '
	}

	markRange(underline, primaryStartCol, primaryEndCol, '^')

	if secondary.Valid() && secondary.Begin.File == primary.Begin.File {
		secStartCol := codepointCol(line, lineStart, secondary.Begin.Offset) - indent
		secEndCol := codepointCol(line, lineStart, secondary.End().Offset) - indent
		markRangeIfBlank(underline, secStartCol, secEndCol, '~')
	}

	fmt.Printf("    %s\n", strings.TrimRight(string(underline), " "))
}

func markRange(buf []rune, start, end int, ch rune) {
	if end <= start {
		end = start + 1
	}
	for i := start; i < end && i < len(buf); i++ {
		if i >= 0 {
			buf[i] = ch
		}
	}
}

func markRangeIfBlank(buf []rune, start, end int, ch rune) {
	if end <= start {
		end = start + 1
	}
	for i := start; i < end && i < len(buf); i++ {
		if i >= 0 && buf[i] == ' ' {
			buf[i] = ch
		}
	}
}

// leadingIndent returns the number of leading space/tab bytes on line.
func leadingIndent(line string) int {
	n := 0
	for n < len(line) && (line[n] == ' ' || line[n] == '\t') {
		n++
	}
	return n
}

func safeSlice(s string, start, end int) string {
	if start > len(s) {
		start = len(s)
	}
	if end > len(s) {
		end = len(s)
	}
	if start > end {
		start = end
	}
	return s[start:end]
}

// codepointCol returns the number of codepoints between lineStart and
// offset, i.e. the 0-based codepoint column of offset within its line.
func codepointCol(line string, lineStart, offset int) int {
	rel := offset - lineStart
	if rel < 0 {
		rel = 0
	}
	if rel > len(line) {
		rel = len(line)
	}
	return utf8.RuneCountInString(line[:rel])
}
