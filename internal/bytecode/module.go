package bytecode

import "foxc/internal/report"

// ConstPool holds the three deduplicated constant arrays addressed by a
// 16-bit index (spec 6.3): ints, doubles, strings.
type ConstPool struct {
	Ints    []int64
	Doubles []float64
	Strings []string

	intIdx    map[int64]uint16
	doubleIdx map[float64]uint16
	stringIdx map[string]uint16
}

// NewConstPool creates an empty pool.
func NewConstPool() *ConstPool {
	return &ConstPool{
		intIdx:    make(map[int64]uint16),
		doubleIdx: make(map[float64]uint16),
		stringIdx: make(map[string]uint16),
	}
}

// AddInt returns v's constant index, interning it on first use.
func (p *ConstPool) AddInt(v int64) uint16 {
	if idx, ok := p.intIdx[v]; ok {
		return idx
	}
	idx := p.nextIndex(len(p.Ints))
	p.Ints = append(p.Ints, v)
	p.intIdx[v] = idx
	return idx
}

// AddDouble returns v's constant index, interning it on first use.
func (p *ConstPool) AddDouble(v float64) uint16 {
	if idx, ok := p.doubleIdx[v]; ok {
		return idx
	}
	idx := p.nextIndex(len(p.Doubles))
	p.Doubles = append(p.Doubles, v)
	p.doubleIdx[v] = idx
	return idx
}

// AddString returns v's constant index, interning it on first use.
func (p *ConstPool) AddString(v string) uint16 {
	if idx, ok := p.stringIdx[v]; ok {
		return idx
	}
	idx := p.nextIndex(len(p.Strings))
	p.Strings = append(p.Strings, v)
	p.stringIdx[v] = idx
	return idx
}

func (p *ConstPool) nextIndex(count int) uint16 {
	if count >= (1 << 16) {
		report.PanicICE("constant pool exceeded 16-bit index space (%d entries)", count)
	}
	return uint16(count)
}

// FuncEntry is one function table row (spec 6.3).
type FuncEntry struct {
	Name         string
	ParamCount   int
	ReturnIsVoid bool

	// InstrStart/InstrEnd delimit this function's instructions within the
	// module's flat InstructionBuffer, end exclusive.
	InstrStart, InstrEnd int

	RegisterCount int
}

// GlobalEntry is one global table row (spec 6.3); TypeTag is a short
// human-readable rendering of the global's Fox type (e.g. "int", "[string]"),
// sufficient for the VM to pick the right storage representation without
// reaching back into internal/types.
type GlobalEntry struct {
	Name    string
	TypeTag string
}

// Module is the four-section bytecode artifact BCGen produces (spec 6.3):
// constant pool, function table, global table, and a flat instruction
// buffer with a parallel debug side-table.
type Module struct {
	Consts    *ConstPool
	Functions []FuncEntry
	Globals   []GlobalEntry

	Instructions []Instruction

	// DebugRanges[i] is the SourceRange the instruction at Instructions[i]
	// originated from, used by a VM to report runtime errors at the right
	// place (spec 4.5.3's "every emitted instruction... is annotated").
	DebugRanges []report.SourceRange
}

// NewModule creates an empty Module ready for BCGen to emit into.
func NewModule() *Module {
	return &Module{Consts: NewConstPool()}
}

// Emit appends instr to the buffer, recording rng in the debug side-table,
// and returns instr's index.
func (m *Module) Emit(instr Instruction, rng report.SourceRange) int {
	idx := len(m.Instructions)
	m.Instructions = append(m.Instructions, instr)
	m.DebugRanges = append(m.DebugRanges, rng)
	return idx
}

// Patch overwrites the instruction at idx, used to fill in a Jump/CondJump
// offset once the target is known (spec 4.5.4).
func (m *Module) Patch(idx int, instr Instruction) {
	m.Instructions[idx] = instr
}

// Len returns the number of instructions emitted so far; BCGen uses this as
// a jump target before and after emitting a body.
func (m *Module) Len() int {
	return len(m.Instructions)
}

// AddGlobal registers a global table entry and returns its 16-bit id.
func (m *Module) AddGlobal(name, typeTag string) uint16 {
	if len(m.Globals) >= (1 << 16) {
		report.PanicICE("global table exceeded 16-bit id space (%d entries)", len(m.Globals))
	}
	id := uint16(len(m.Globals))
	m.Globals = append(m.Globals, GlobalEntry{Name: name, TypeTag: typeTag})
	return id
}

// AddFunction reserves a function table slot and returns its index, to be
// filled in via SetFunctionRange once the function's body has been
// generated (BCGen needs the index before it knows the instruction range,
// since LoadFunc references it and may be emitted by a call expression
// appearing earlier in source order than the function's own definition).
func (m *Module) AddFunction(name string, paramCount int, returnIsVoid bool) int {
	idx := len(m.Functions)
	m.Functions = append(m.Functions, FuncEntry{Name: name, ParamCount: paramCount, ReturnIsVoid: returnIsVoid})
	return idx
}

// SetFunctionRange fills in the instruction range and register count for
// the function table entry at idx, once BCGen has finished lowering it.
func (m *Module) SetFunctionRange(idx, instrStart, instrEnd, registerCount int) {
	m.Functions[idx].InstrStart = instrStart
	m.Functions[idx].InstrEnd = instrEnd
	m.Functions[idx].RegisterCount = registerCount
}
