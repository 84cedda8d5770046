package report

import "fmt"

// Severity orders the kinds of things a DiagnosticEngine can emit, from
// quietest to loudest (spec 6.2).
type Severity int

const (
	Ignored Severity = iota
	Note
	Warning
	Error
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Ignored:
		return "ignored"
	case Note:
		return "note"
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Kind identifies the specific condition a diagnostic reports. These mirror
// the catalog in spec 7 exactly; string identifiers (rather than an int
// enum) keep the mapping to that table legible at call sites.
type Kind string

const (
	KindUnterminatedBlockComment Kind = "unterminated_block_comment"
	KindUnterminatedCharLit      Kind = "unterminated_char_lit"
	KindUnterminatedStrLit       Kind = "unterminated_str_lit"

	KindExpectedSemi    Kind = "expected_semi"
	KindExpectedLBrace  Kind = "expected_lbrace"
	KindExpectedRBrace  Kind = "expected_rbrace"
	KindExpectedExpr    Kind = "expected_expr"
	KindExpectedStmt    Kind = "expected_stmt"
	KindExpectedType    Kind = "expected_type"
	KindExpectedRParen  Kind = "expected_rparen"
	KindExpectedRBracket Kind = "expected_rbracket"

	KindToMatchThisBrace Kind = "to_match_this_brace"
	KindElseWithoutIf    Kind = "else_without_if"

	KindUndeclaredId           Kind = "undeclared_id"
	KindAmbiguousRef           Kind = "ambiguous_ref"
	KindPotentialCandidateHere Kind = "potential_candidate_here"
	KindVarInitSelfRef         Kind = "var_init_self_ref"
	KindDeclaredHereWithType   Kind = "declared_here_with_type"

	// KindIllegalRedecl fires on every candidate past the first when a scope
	// holds more than one declaration under the same identifier (spec
	// 4.4.1's "multiple globals or multiple parameters with the same
	// identifier"); the pruning sema/resolve.go relies on to avoid a cascading
	// ambiguous_ref depends on this having already marked them.
	KindIllegalRedecl Kind = "illegal_redeclaration"

	KindInvalidExplicitCast   Kind = "invalid_explicit_cast"
	KindUselessRedundantCast  Kind = "useless_redundant_cast"

	KindUnexpectedElemOfTypeInArrLit Kind = "unexpected_elem_of_type_in_arrlit"
	KindFuncTypeInArrLit              Kind = "func_type_in_arrlit"

	KindUnaryOpBadChildType   Kind = "unaryop_bad_child_type"
	KindBinExprInvalidOperands Kind = "binexpr_invalid_operands"
	KindArrSubInvalidTypes    Kind = "arrsub_invalid_types"

	KindUnassignableExpr  Kind = "unassignable_expr"
	KindInvalidAssignment Kind = "invalid_assignement"

	KindExprIsntFunc                Kind = "expr_isnt_func"
	KindCannotCallWithNoArgs        Kind = "cannot_call_with_no_args"
	KindCannotCallFuncWithArgs      Kind = "cannot_call_func_with_args"
	KindNotEnoughArgsInFuncCall     Kind = "not_enough_args_in_func_call"
	KindTooManyArgsInFuncCall       Kind = "too_many_args_in_func_call"

	KindExprFailedInfer Kind = "expr_failed_infer"

	// KindTooManyRegisters is a Fox-specific addition (SPEC_FULL 4): the
	// register allocator's pressure ceiling was hit while lowering a
	// function body. The original's allocator asserts; Fox reports this as
	// a recoverable diagnostic instead.
	KindTooManyRegisters Kind = "too_many_registers"

	// KindJumpOffsetOutOfRange fires when BCGen computes a Jump/CondJump
	// patch whose signed offset does not fit the instruction encoding
	// (spec 4.5.4, "hard compile error at emission time").
	KindJumpOffsetOutOfRange Kind = "jump_offset_out_of_range"

	// KindInvalidProjectDescriptor and KindProjectVersionMismatch are
	// internal/config's two project-descriptor diagnostics (SPEC_FULL 2.3).
	KindInvalidProjectDescriptor Kind = "invalid_project_descriptor"
	KindProjectVersionMismatch   Kind = "project_version_mismatch"
)

// Diagnostic is a single structured compiler message.
type Diagnostic struct {
	Severity Severity
	Kind     Kind
	Message  string

	// Primary is the range the message is chiefly about; Secondary, if
	// Valid, is underlined with '~' rather than '^' (spec 6.2).
	Primary   SourceRange
	Secondary SourceRange

	// Notes are attached diagnostics of Severity Note rendered immediately
	// after this one, e.g. KindToMatchThisBrace or
	// KindDeclaredHereWithType pointing at a prior declaration.
	Notes []Diagnostic
}

// Consumer renders or records diagnostics as a DiagnosticEngine emits them.
type Consumer interface {
	Consume(sm *SourceManager, d Diagnostic)
}

// Engine accumulates diagnostics for one compilation and forwards each to
// its registered Consumer (if any) as it is emitted. It tracks per-severity
// counts and exposes the "poisoned" flag passes check before running, per
// the cancellation model of spec 5: once the error count exceeds the fatal
// threshold, or a pass explicitly poisons the context (a parse failure that
// leaves no usable AST, for instance), later passes become no-ops.
type Engine struct {
	sm       *SourceManager
	consumer Consumer

	counts [Fatal + 1]int

	// muted is a suppression flag: while true, Emit still updates counts
	// (so AnyErrors stays accurate) but forwards only Fatal diagnostics to
	// the consumer. Only Mute and Unmute change it; Sema's finalization
	// pass does its own subtree suppression and does not use it.
	muted bool

	poisoned bool
}

// NewEngine creates a diagnostic engine bound to sm and reporting through
// consumer. consumer may be nil, in which case diagnostics are only counted.
func NewEngine(sm *SourceManager, consumer Consumer) *Engine {
	return &Engine{sm: sm, consumer: consumer}
}

// SetConsumer replaces the registered consumer.
func (e *Engine) SetConsumer(c Consumer) { e.consumer = c }

// Mute turns suppression on; Unmute turns it off. The calls do not nest:
// one Unmute ends suppression however many Mute calls preceded it.
func (e *Engine) Mute()   { e.muted = true }
func (e *Engine) Unmute() { e.muted = false }

// Poison marks the engine's compilation as unrecoverable: subsequent passes
// should check Poisoned and decline to run.
func (e *Engine) Poison() { e.poisoned = true }

// Poisoned reports whether a pass should short-circuit.
func (e *Engine) Poisoned() bool {
	return e.poisoned || e.counts[Fatal] > 0
}

// Emit records a diagnostic and, unless muted, forwards it to the consumer.
func (e *Engine) Emit(d Diagnostic) {
	e.counts[d.Severity]++
	if d.Severity == Fatal {
		e.poisoned = true
	}

	if e.muted && d.Severity != Fatal {
		return
	}

	if e.consumer != nil {
		e.consumer.Consume(e.sm, d)
	}
}

// Errorf is a convenience wrapper that builds and emits an Error diagnostic.
func (e *Engine) Errorf(kind Kind, primary SourceRange, format string, args ...any) {
	e.Emit(Diagnostic{Severity: Error, Kind: kind, Message: fmt.Sprintf(format, args...), Primary: primary})
}

// Warnf is a convenience wrapper that builds and emits a Warning diagnostic.
func (e *Engine) Warnf(kind Kind, primary SourceRange, format string, args ...any) {
	e.Emit(Diagnostic{Severity: Warning, Kind: kind, Message: fmt.Sprintf(format, args...), Primary: primary})
}

// Notef is a convenience wrapper that builds and emits a Note diagnostic.
func (e *Engine) Notef(kind Kind, primary SourceRange, format string, args ...any) {
	e.Emit(Diagnostic{Severity: Note, Kind: kind, Message: fmt.Sprintf(format, args...), Primary: primary})
}

// Fatalf emits a Fatal diagnostic with no associated source range, used by
// internal/config for project-descriptor errors detected before any file is
// even loaded into a SourceManager.
func (e *Engine) Fatalf(kind Kind, format string, args ...any) {
	e.Emit(Diagnostic{Severity: Fatal, Kind: kind, Message: fmt.Sprintf(format, args...)})
}

// Count returns the number of diagnostics emitted at or above the given
// severity (spec 6.2: "a count is maintained per severity >= Error").
func (e *Engine) Count(min Severity) int {
	n := 0
	for s := min; s <= Fatal; s++ {
		n += e.counts[s]
	}
	return n
}

// AnyErrors reports whether any Error or Fatal diagnostic was emitted,
// which spec 7 ties directly to the process exit code.
func (e *Engine) AnyErrors() bool {
	return e.counts[Error]+e.counts[Fatal] > 0
}
