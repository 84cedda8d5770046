package parser

import (
	"strings"
	"unicode/utf8"

	"foxc/internal/token"
)

// tokenText reconstructs tok's source text on demand (spec 3.2).
func tokenText(p *Parser, tok token.Token) string {
	content := p.sm.GetContent(tok.Range.Begin.File)
	return string(content[tok.Range.Begin.Offset : tok.Range.Begin.Offset+tok.Range.Length])
}

// decodeCharLit strips the surrounding quotes from a char literal's raw text
// and interprets its one level of backslash escape (spec 4.2: "semantic
// escape handling is the parser's job"). Malformed literals decode to the
// Unicode replacement character rather than panicking; Sema never sees a raw
// lexer error here because the lexer already reported unterminated_char_lit.
func decodeCharLit(raw string) rune {
	inner := strings.TrimSuffix(strings.TrimPrefix(raw, "'"), "'")
	decoded := unescape(inner)
	r, _ := utf8.DecodeRuneInString(decoded)
	return r
}

// decodeStringLit strips the surrounding quotes from a string literal's raw
// text and interprets its backslash escapes.
func decodeStringLit(raw string) string {
	inner := strings.TrimSuffix(strings.TrimPrefix(raw, "\""), "\"")
	return unescape(inner)
}

// unescape interprets the standard escape sequences over s, matching the
// lexer's single-backslash-consumes-next-byte rule (spec 4.2) with a fixed
// meaning per escape character.
func unescape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '0':
			b.WriteByte(0)
		case '\\':
			b.WriteByte('\\')
		case '\'':
			b.WriteByte('\'')
		case '"':
			b.WriteByte('"')
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
