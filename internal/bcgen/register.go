// Package bcgen lowers Fox's checked AST to the register bytecode
// internal/bytecode defines (spec 4.5).
package bcgen

import (
	"sort"

	"foxc/internal/report"
)

// Register is a move-only handle over one allocated virtual register
// (spec 4.5.2's "Register handle"). Dropping it without calling Free is a
// leak the allocator cannot detect; calling Free twice is an internal
// invariant violation, ported from the original's "Register maybe freed
// twice" assert.
type Register struct {
	alloc *RegisterAllocator
	num   uint8
	freed bool
}

// Num returns the underlying register number.
func (r Register) Num() uint8 { return r.num }

// Free releases the register back to the allocator.
func (r *Register) Free() {
	if r.freed {
		report.PanicICE("register %d freed twice", r.num)
	}
	r.freed = true
	r.alloc.free(int(r.num))
}

// RegisterAllocator implements spec 4.5.2's free-set + high-water-mark
// compaction strategy, ported from the original's RegisterAllocator
// (lib/BCGen/Registers.cpp): registers below the high-water mark that have
// been freed are tracked in a sorted free set; allocation prefers the
// smallest free number, and freeing the register immediately below the
// high-water mark simply lowers the mark instead of growing the free set.
type RegisterAllocator struct {
	high    int
	freeSet []int // always kept sorted ascending

	max  int
	diag *report.Engine

	// poisoned is set once too_many_registers has been reported for the
	// function this allocator serves, so the diagnostic fires only once
	// per function (spec SPEC_FULL 4's "aborts emission for that function
	// only").
	poisoned bool
}

// NewRegisterAllocator creates an allocator with the given register
// ceiling, reporting through diag.
func NewRegisterAllocator(max int, diag *report.Engine) *RegisterAllocator {
	return &RegisterAllocator{max: max, diag: diag}
}

// Poisoned reports whether this function's register pressure exceeded the
// ceiling; BCGen checks this after lowering a function body and discards
// its emitted instructions rather than leaving a truncated function.
func (r *RegisterAllocator) Poisoned() bool { return r.poisoned }

// compactFreeSet mirrors RegisterAllocator::compactFreeRegisterSet: while
// the largest freed number is exactly one below the high-water mark,
// absorb it and lower the mark instead of leaving it in the free set.
func (r *RegisterAllocator) compactFreeSet() {
	for len(r.freeSet) > 0 {
		top := r.freeSet[len(r.freeSet)-1]
		if top != r.high-1 {
			return
		}
		r.freeSet = r.freeSet[:len(r.freeSet)-1]
		r.high--
	}
}

// Allocate returns a fresh register, reporting too_many_registers at rng
// (once per function) if the ceiling is reached.
func (r *RegisterAllocator) Allocate(rng report.SourceRange) Register {
	r.compactFreeSet()

	if len(r.freeSet) > 0 {
		reg := r.freeSet[0]
		r.freeSet = r.freeSet[1:]
		return Register{alloc: r, num: uint8(reg)}
	}

	if r.high >= r.max {
		if !r.poisoned {
			r.diag.Errorf(report.KindTooManyRegisters, rng,
				"function exceeds the %d-register limit (too much register pressure)", r.max)
			r.poisoned = true
		}
		return Register{alloc: r, num: uint8(r.max - 1)}
	}

	reg := r.high
	r.high++
	return Register{alloc: r, num: uint8(reg)}
}

func (r *RegisterAllocator) free(reg int) {
	if reg+1 == r.high {
		r.high--
		r.compactFreeSet()
		return
	}
	r.freeSet = append(r.freeSet, reg)
	sort.Ints(r.freeSet)
}

// AllocateConsecutive reserves n registers guaranteed to be numbered
// consecutively (spec 4.5.2: "Call reads a base register and assumes n-1
// consecutive arguments follow"). Unlike Allocate, this always grows the
// high-water mark directly rather than consulting the free set, since a
// free-set hit could leave a gap in the middle of the reserved range.
func (r *RegisterAllocator) AllocateConsecutive(n int, rng report.SourceRange) []Register {
	regs := make([]Register, n)
	for i := 0; i < n; i++ {
		if r.high >= r.max {
			if !r.poisoned {
				r.diag.Errorf(report.KindTooManyRegisters, rng,
					"function exceeds the %d-register limit (too much register pressure)", r.max)
				r.poisoned = true
			}
			regs[i] = Register{alloc: r, num: uint8(r.max - 1)}
			continue
		}
		regs[i] = Register{alloc: r, num: uint8(r.high)}
		r.high++
	}
	return regs
}

// Recycle transfers ownership of a still-allocated register to a new
// handle without freeing and reallocating it, matching spec 4.5.2's
// "explicitly move ownership of a dead register into a new handle so the
// caller's name refers to a reusable slot".
func (r *RegisterAllocator) Recycle(reg Register) Register {
	return Register{alloc: r, num: reg.num}
}

// HighWaterMark exposes the allocator's current high-water mark, used by
// tests verifying spec 8's "register allocator density" property.
func (r *RegisterAllocator) HighWaterMark() int { return r.high }
