package bcgen

import (
	"foxc/internal/report"
	"testing"
)

func newTestAllocator(max int) (*RegisterAllocator, *report.Engine) {
	diag := report.NewEngine(report.NewSourceManager(), nil)
	return NewRegisterAllocator(max, diag), diag
}

func TestAllocateGrowsHighWaterMark(t *testing.T) {
	r, _ := newTestAllocator(8)
	a := r.Allocate(report.SourceRange{})
	b := r.Allocate(report.SourceRange{})
	if a.Num() != 0 || b.Num() != 1 {
		t.Fatalf("expected sequential registers 0, 1; got %d, %d", a.Num(), b.Num())
	}
	if r.HighWaterMark() != 2 {
		t.Errorf("HighWaterMark() = %d, want 2", r.HighWaterMark())
	}
}

func TestFreeTopRegisterLowersHighWaterMark(t *testing.T) {
	r, _ := newTestAllocator(8)
	a := r.Allocate(report.SourceRange{})
	b := r.Allocate(report.SourceRange{})
	_ = a

	b.Free()
	if r.HighWaterMark() != 1 {
		t.Errorf("freeing the top register should lower the high-water mark: got %d, want 1", r.HighWaterMark())
	}
}

func TestFreeNonTopRegisterReusedBeforeGrowth(t *testing.T) {
	r, _ := newTestAllocator(8)
	a := r.Allocate(report.SourceRange{})
	b := r.Allocate(report.SourceRange{})
	c := r.Allocate(report.SourceRange{})
	_ = c

	a.Free() // a (0) is not the top register (2 is); goes into the free set.
	if r.HighWaterMark() != 3 {
		t.Errorf("freeing a non-top register should not change the high-water mark: got %d, want 3", r.HighWaterMark())
	}

	d := r.Allocate(report.SourceRange{})
	if d.Num() != 0 {
		t.Errorf("expected the freed register 0 to be reused first, got %d", d.Num())
	}

	_ = b
}

func TestCompactFreeSetAbsorbsRunAtTop(t *testing.T) {
	r, _ := newTestAllocator(8)
	a := r.Allocate(report.SourceRange{})
	b := r.Allocate(report.SourceRange{})
	c := r.Allocate(report.SourceRange{})

	// Free b then c: c (top) lowers the mark to 2, which then makes b (1)
	// the new top and compacts it away too, landing the mark back at 1.
	b.Free()
	c.Free()
	if r.HighWaterMark() != 1 {
		t.Errorf("expected compaction to lower the mark back to 1, got %d", r.HighWaterMark())
	}

	_ = a
}

func TestAllocateReportsTooManyRegistersOnce(t *testing.T) {
	r, diag := newTestAllocator(2)
	r.Allocate(report.SourceRange{})
	r.Allocate(report.SourceRange{})
	r.Allocate(report.SourceRange{}) // exceeds the ceiling
	r.Allocate(report.SourceRange{}) // should not report a second diagnostic

	if !r.Poisoned() {
		t.Fatalf("expected the allocator to be poisoned after exceeding its ceiling")
	}
	if got := diag.Count(report.Error); got != 1 {
		t.Errorf("expected exactly one too-many-registers diagnostic, got %d", got)
	}
}

func TestAllocateConsecutiveReturnsContiguousRun(t *testing.T) {
	r, _ := newTestAllocator(8)
	r.Allocate(report.SourceRange{}) // occupy register 0 first

	regs := r.AllocateConsecutive(3, report.SourceRange{})
	if len(regs) != 3 {
		t.Fatalf("expected 3 registers, got %d", len(regs))
	}
	for i, reg := range regs {
		want := uint8(1 + i)
		if reg.Num() != want {
			t.Errorf("regs[%d].Num() = %d, want %d", i, reg.Num(), want)
		}
	}
}

func TestAllocateConsecutiveIgnoresFreeSetGaps(t *testing.T) {
	r, _ := newTestAllocator(8)
	a := r.Allocate(report.SourceRange{})
	r.Allocate(report.SourceRange{})
	a.Free() // register 0 is now in the free set, but is not the top register

	regs := r.AllocateConsecutive(2, report.SourceRange{})
	if regs[0].Num() != 2 || regs[1].Num() != 3 {
		t.Errorf("expected AllocateConsecutive to grow past the high-water mark regardless of free-set gaps, got %d, %d",
			regs[0].Num(), regs[1].Num())
	}
}

func TestRecyclePreservesRegisterNumber(t *testing.T) {
	r, _ := newTestAllocator(8)
	a := r.Allocate(report.SourceRange{})
	num := a.Num()

	b := r.Recycle(a)
	if b.Num() != num {
		t.Errorf("Recycle changed the register number: got %d, want %d", b.Num(), num)
	}
}
