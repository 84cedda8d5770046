// Package report implements the source manager and diagnostic engine shared
// by every stage of the Fox compiler pipeline: the lexer, parser, sema, and
// bcgen never touch a file handle or a terminal directly, they only ever
// talk to a *SourceManager and an *Engine.
package report

import (
	"os"
	"sort"
	"unicode/utf8"
)

// FileId is an opaque handle into a SourceManager identifying a loaded file.
type FileId int

// invalidFileId is the sentinel value of an unset FileId.
const invalidFileId FileId = -1

// SourceLoc is a single point in source text: a byte offset into a
// specific file. It may be invalid, in which case it carries no position
// information (used for synthetic nodes that have no corresponding source).
type SourceLoc struct {
	File   FileId
	Offset int
}

// Valid reports whether loc refers to a real position in a real file.
func (loc SourceLoc) Valid() bool {
	return loc.File != invalidFileId
}

// InvalidLoc is the sentinel invalid source location.
var InvalidLoc = SourceLoc{File: invalidFileId}

// SourceRange is a half-open-by-length span of source text: it begins at
// Begin and covers Length bytes. A Length of 0 denotes a single-point
// location (e.g. the point just past EOF).
type SourceRange struct {
	Begin  SourceLoc
	Length int
}

// Valid reports whether r refers to a real, well-formed range: Begin must be
// valid, and since ranges never cross file boundaries Begin.File is the
// range's only file.
func (r SourceRange) Valid() bool {
	return r.Begin.Valid()
}

// End returns the (exclusive) end location of the range, one byte past its
// last covered byte.
func (r SourceRange) End() SourceLoc {
	return SourceLoc{File: r.Begin.File, Offset: r.Begin.Offset + r.Length}
}

// RangeOver returns the smallest range that covers both a and b. Both must
// be in the same file.
func RangeOver(a, b SourceRange) SourceRange {
	end := b.End()
	return SourceRange{Begin: a.Begin, Length: end.Offset - a.Begin.Offset}
}

// CompleteLoc is a source location resolved to a human-facing form: a file
// name plus a 1-based line and column. The column is counted in codepoints,
// not bytes, so that diagnostics line up correctly on multi-byte UTF-8 text.
type CompleteLoc struct {
	FileName string
	Line     int
	Column   int
}

// sourceFile holds everything the SourceManager knows about one loaded file.
type sourceFile struct {
	path       string
	content    []byte
	lineStarts []int // byte offsets of the first byte of each line; lazily computed
}

// SourceManager owns every file loaded during one compilation and answers
// offset -> (line, column) queries against them. It lives for the whole
// compilation (spec 3.6); nothing about it is invalidated by resetting an
// ASTContext's arena.
type SourceManager struct {
	files []*sourceFile
}

// NewSourceManager creates an empty SourceManager.
func NewSourceManager() *SourceManager {
	return &SourceManager{}
}

// LoadFromFile reads path off disk, skips a leading UTF-8 BOM if present,
// and registers it under a new FileId.
func (sm *SourceManager) LoadFromFile(path string) (FileId, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return invalidFileId, err
	}
	return sm.LoadFromString(path, string(stripBOM(raw))), nil
}

// LoadFromString registers text under the given display name (typically a
// file path, but any label works for synthetic/in-memory sources such as
// test fixtures) and returns its FileId.
func (sm *SourceManager) LoadFromString(name, text string) FileId {
	sm.files = append(sm.files, &sourceFile{path: name, content: []byte(text)})
	return FileId(len(sm.files) - 1)
}

func stripBOM(b []byte) []byte {
	const bom = "\xef\xbb\xbf"
	if len(b) >= len(bom) && string(b[:len(bom)]) == bom {
		return b[len(bom):]
	}
	return b
}

// GetContent returns the raw byte content of a loaded file.
func (sm *SourceManager) GetContent(id FileId) []byte {
	return sm.files[id].content
}

// GetPath returns the display path/name a file was loaded under.
func (sm *SourceManager) GetPath(id FileId) string {
	return sm.files[id].path
}

// lineStartsOf lazily computes and caches the sorted line-start offsets for
// a file. A line starts at offset 0 and immediately after every LF; a CR
// that is not followed by LF is not treated as a line terminator (spec 6.1).
func (sm *SourceManager) lineStartsOf(id FileId) []int {
	f := sm.files[id]
	if f.lineStarts != nil {
		return f.lineStarts
	}

	starts := []int{0}
	for i, b := range f.content {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	f.lineStarts = starts
	return starts
}

// CompleteLoc resolves a SourceLoc to a file name, 1-based line, and
// 1-based, codepoint-counted column.
func (sm *SourceManager) CompleteLoc(loc SourceLoc) CompleteLoc {
	starts := sm.lineStartsOf(loc.File)

	// binary search for the last line start <= loc.Offset
	i := sort.Search(len(starts), func(i int) bool { return starts[i] > loc.Offset }) - 1
	if i < 0 {
		i = 0
	}

	lineStart := starts[i]
	content := sm.files[loc.File].content
	col := utf8.RuneCount(content[lineStart:loc.Offset]) + 1

	return CompleteLoc{
		FileName: sm.files[loc.File].path,
		Line:     i + 1,
		Column:   col,
	}
}

// LineAt returns the (trimmed of its line terminator) text of the line
// containing loc and that line's starting byte offset.
func (sm *SourceManager) LineAt(loc SourceLoc) (string, int) {
	starts := sm.lineStartsOf(loc.File)
	i := sort.Search(len(starts), func(i int) bool { return starts[i] > loc.Offset }) - 1
	if i < 0 {
		i = 0
	}

	content := sm.files[loc.File].content
	lineStart := starts[i]
	lineEnd := len(content)
	if i+1 < len(starts) {
		lineEnd = starts[i+1] - 1 // drop the trailing LF
	}
	if lineEnd > 0 && lineEnd <= len(content) && content[lineEnd-1] == '\r' {
		lineEnd--
	}
	if lineEnd < lineStart {
		lineEnd = lineStart
	}

	return string(content[lineStart:lineEnd]), lineStart
}
