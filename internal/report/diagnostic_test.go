package report

import "testing"

type recordingConsumer struct {
	seen []Diagnostic
}

func (c *recordingConsumer) Consume(sm *SourceManager, d Diagnostic) {
	c.seen = append(c.seen, d)
}

func TestEmitForwardsToConsumer(t *testing.T) {
	sm := NewSourceManager()
	c := &recordingConsumer{}
	e := NewEngine(sm, c)

	e.Errorf(KindUndeclaredId, SourceRange{}, "undeclared `%s`", "foo")
	if len(c.seen) != 1 {
		t.Fatalf("expected one forwarded diagnostic, got %d", len(c.seen))
	}
	if c.seen[0].Severity != Error || c.seen[0].Kind != KindUndeclaredId {
		t.Errorf("forwarded diagnostic wrong: %+v", c.seen[0])
	}
	if c.seen[0].Message != "undeclared `foo`" {
		t.Errorf("message = %q, want %q", c.seen[0].Message, "undeclared `foo`")
	}
}

func TestMuteSuppressesConsumerButNotCounts(t *testing.T) {
	sm := NewSourceManager()
	c := &recordingConsumer{}
	e := NewEngine(sm, c)

	e.Mute()
	e.Errorf(KindExprFailedInfer, SourceRange{}, "muted error")
	e.Unmute()

	if len(c.seen) != 0 {
		t.Errorf("expected the consumer to see nothing while muted, got %d", len(c.seen))
	}
	if !e.AnyErrors() {
		t.Errorf("expected the muted error to still count toward AnyErrors()")
	}
}

func TestMuteDoesNotSuppressFatal(t *testing.T) {
	sm := NewSourceManager()
	c := &recordingConsumer{}
	e := NewEngine(sm, c)

	e.Mute()
	e.Fatalf(KindInvalidProjectDescriptor, "fatal even while muted")

	if len(c.seen) != 1 {
		t.Errorf("expected a Fatal diagnostic to reach the consumer even while muted, got %d", len(c.seen))
	}
}

func TestAnyErrorsOnlyCountsErrorAndFatal(t *testing.T) {
	e := NewEngine(NewSourceManager(), nil)
	e.Notef(KindExprFailedInfer, SourceRange{}, "note")
	e.Warnf(KindProjectVersionMismatch, SourceRange{}, "warning")

	if e.AnyErrors() {
		t.Errorf("expected notes and warnings to not trip AnyErrors()")
	}

	e.Errorf(KindUndeclaredId, SourceRange{}, "error")
	if !e.AnyErrors() {
		t.Errorf("expected an Error diagnostic to trip AnyErrors()")
	}
}

func TestCountIsCumulativeFromMinSeverity(t *testing.T) {
	e := NewEngine(NewSourceManager(), nil)
	e.Warnf(KindProjectVersionMismatch, SourceRange{}, "w1")
	e.Errorf(KindUndeclaredId, SourceRange{}, "e1")
	e.Errorf(KindUndeclaredId, SourceRange{}, "e2")

	if got := e.Count(Warning); got != 3 {
		t.Errorf("Count(Warning) = %d, want 3", got)
	}
	if got := e.Count(Error); got != 2 {
		t.Errorf("Count(Error) = %d, want 2", got)
	}
}

func TestFatalPoisonsTheEngine(t *testing.T) {
	e := NewEngine(NewSourceManager(), nil)
	if e.Poisoned() {
		t.Fatalf("fresh engine should not be poisoned")
	}
	e.Fatalf(KindInvalidProjectDescriptor, "bad")
	if !e.Poisoned() {
		t.Errorf("expected a Fatal diagnostic to poison the engine")
	}
}

func TestExplicitPoisonIndependentOfFatalCount(t *testing.T) {
	e := NewEngine(NewSourceManager(), nil)
	e.Poison()
	if !e.Poisoned() {
		t.Errorf("expected explicit Poison() to poison the engine")
	}
	if e.Count(Fatal) != 0 {
		t.Errorf("Poison() should not itself emit a diagnostic")
	}
}

func TestNilConsumerIsSafe(t *testing.T) {
	e := NewEngine(NewSourceManager(), nil)
	e.Errorf(KindUndeclaredId, SourceRange{}, "no consumer attached")
	if !e.AnyErrors() {
		t.Errorf("expected the diagnostic to still be counted with a nil consumer")
	}
}
