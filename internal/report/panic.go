package report

import "fmt"

// ICE is the payload of a panic raised on a truly-unreachable internal
// path (spec 9, "exceptions... become panics on truly-unreachable paths
// only"). Ordinary recoverable errors never use this; they flow through
// Engine.Emit plus the ErrorType/ErrorExpr/NotFound sentinels.
type ICE struct {
	Message string
}

func (ice *ICE) Error() string {
	return "internal compiler error: " + ice.Message
}

// PanicICE raises an ICE panic, ported from the teacher's
// report.ReportICE, minus the log-level gate and os.Exit: in Fox, ICEs
// are always caught by CatchErrors at a pipeline-stage boundary and
// re-raised as a Fatal diagnostic so tests can observe them.
func PanicICE(format string, args ...any) {
	panic(&ICE{Message: fmt.Sprintf(format, args...)})
}

// LocalError is a compile error whose span is known at the point it is
// raised but whose file is implicit from the enclosing CatchErrors scope.
// Parser and Sema code that detects an unreachable-by-construction
// condition deep in a call stack (rather than one that naturally returns
// NotFound/Error) can panic with this to unwind to the nearest
// CatchErrors without threading an error return through every frame.
type LocalError struct {
	Kind    Kind
	Message string
	Span    SourceRange
}

func (le *LocalError) Error() string {
	return le.Message
}

// CatchErrors recovers a panic raised during a pipeline stage and
// reclassifies it: a *LocalError becomes a normal Error diagnostic at its
// own span, any other error (an *ICE included) becomes a Fatal diagnostic
// carrying the error's text at fallback, and any other recovered value
// becomes a Fatal diagnostic carrying its %v text at fallback. It must always be
// deferred, mirroring the teacher's report.CatchErrors.
func CatchErrors(e *Engine, fallback SourceRange) {
	if x := recover(); x != nil {
		switch v := x.(type) {
		case *LocalError:
			e.Emit(Diagnostic{Severity: Error, Kind: v.Kind, Message: v.Message, Primary: v.Span})
		case *ICE:
			e.Emit(Diagnostic{Severity: Fatal, Message: v.Error(), Primary: fallback})
		case error:
			e.Emit(Diagnostic{Severity: Fatal, Message: v.Error(), Primary: fallback})
		default:
			e.Emit(Diagnostic{Severity: Fatal, Message: fmt.Sprintf("%v", v), Primary: fallback})
		}
	}
}
