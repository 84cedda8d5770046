// Package token defines the token vocabulary produced by internal/lexer and
// consumed by internal/parser, grounded on the teacher's syntax.Token
// (ComedicChimera/chai bootstrap/syntax/token.go) but cut down to exactly
// the surface spec.md 3.2 and 4.2 describe for Fox.
package token

import "foxc/internal/report"

// Kind enumerates every token variant the lexer can produce.
type Kind int

const (
	Invalid Kind = iota
	EOF

	Ident

	// Keywords.
	Func
	Let
	Var
	If
	Else
	While
	Return
	As

	// Literals.
	IntLit
	DoubleLit
	CharLit
	StringLit
	BoolLit

	// Operators and punctuation.
	Plus
	Minus
	Star
	Slash
	Percent
	StarStar

	EqEq
	NotEq
	Less
	LessEq
	Greater
	GreaterEq

	AndAnd
	OrOr
	Not

	Assign

	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Dot
	Semi
	Colon

	// Ampersand/Pipe are emitted for a lone '&' or '|' that failed to form
	// '&&'/'||'; spec 4.2 calls these out explicitly as Invalid-producing
	// but non-aborting.
	Amp
	Pipe
)

// keywords maps finished identifier text to its keyword Kind, looked up
// once an identifier has been fully lexed (spec 4.2: "Keywords are
// recognized by a trailing table lookup on the finished identifier text").
// true/false are deliberately absent: they lex as BoolLit, not keywords.
var keywords = map[string]Kind{
	"func":   Func,
	"let":    Let,
	"var":    Var,
	"if":     If,
	"else":   Else,
	"while":  While,
	"return": Return,
	"as":     As,
}

// LookupKeyword returns the keyword Kind for text, or (Invalid, false) if
// text is not a keyword.
func LookupKeyword(text string) (Kind, bool) {
	k, ok := keywords[text]
	return k, ok
}

// Token is a single lexical token: its kind plus the source range it
// occupies. The literal value is reconstructed from the range on demand
// (spec 3.2); Ident carries its interned name eagerly since name
// resolution needs it on every lookup.
type Token struct {
	Kind  Kind
	Range report.SourceRange

	// Ident is populated only for Kind == Ident: the raw identifier text.
	// internal/ast interns it into an *ast.Ident during parsing.
	Ident string
}

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "<invalid>"
	case EOF:
		return "<eof>"
	case Ident:
		return "identifier"
	case Func:
		return "'func'"
	case Let:
		return "'let'"
	case Var:
		return "'var'"
	case If:
		return "'if'"
	case Else:
		return "'else'"
	case While:
		return "'while'"
	case Return:
		return "'return'"
	case As:
		return "'as'"
	case IntLit:
		return "integer literal"
	case DoubleLit:
		return "double literal"
	case CharLit:
		return "char literal"
	case StringLit:
		return "string literal"
	case BoolLit:
		return "boolean literal"
	case Plus:
		return "'+'"
	case Minus:
		return "'-'"
	case Star:
		return "'*'"
	case Slash:
		return "'/'"
	case Percent:
		return "'%'"
	case StarStar:
		return "'**'"
	case EqEq:
		return "'=='"
	case NotEq:
		return "'!='"
	case Less:
		return "'<'"
	case LessEq:
		return "'<='"
	case Greater:
		return "'>'"
	case GreaterEq:
		return "'>='"
	case AndAnd:
		return "'&&'"
	case OrOr:
		return "'||'"
	case Not:
		return "'!'"
	case Assign:
		return "'='"
	case LParen:
		return "'('"
	case RParen:
		return "')'"
	case LBrace:
		return "'{'"
	case RBrace:
		return "'}'"
	case LBracket:
		return "'['"
	case RBracket:
		return "']'"
	case Comma:
		return "','"
	case Dot:
		return "'.'"
	case Semi:
		return "';'"
	case Colon:
		return "':'"
	case Amp:
		return "'&'"
	case Pipe:
		return "'|'"
	default:
		return "<unknown token>"
	}
}

// StmtStartKeywords is the set of keywords the parser's statement-level
// panic-mode recovery treats as a safe resynchronization point (spec 4.3).
var StmtStartKeywords = map[Kind]struct{}{
	If:     {},
	While:  {},
	Let:    {},
	Var:    {},
	Return: {},
}
