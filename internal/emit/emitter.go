// Package emit turns a lowered ir.Unit into x86-64 machine code,
// transcribing the reference implementation's CodeGen class
// instruction-for-instruction: every opcode template below reproduces
// the exact byte sequence original_source/pl_comp.py emits for it.
package emit

import (
	"encoding/binary"

	"github.com/xyproto/pl67/internal/compileerr"
	"github.com/xyproto/pl67/internal/ir"
)

// Register encodings, matching CodeGen's class constants.
const (
	regA  = 0
	regC  = 1
	regD  = 2
	regB  = 3
	regSP = 4
	regBP = 5
	regSI = 6
	regDI = 7
)

// Emitter accumulates machine code into Buf plus the three patch
// tables the reference implementation keeps: per-function jump
// targets, cross-function call targets, and the whole-unit string
// pool. All three are resolved by rewriting a 4-byte RIP-relative
// displacement already reserved at the instruction's own final byte.
type Emitter struct {
	Buf       []byte
	Alignment int

	jumps   map[int][]int      // label id -> patch offsets, reset per function
	calls   map[ir.FuncID][]int
	strings map[string][]int
	funcOff []int // FuncID -> code offset, filled as each function is emitted
}

func newEmitter(alignment int) *Emitter {
	return &Emitter{
		Alignment: alignment,
		calls:     make(map[ir.FuncID][]int),
		strings:   make(map[string][]int),
	}
}

func (e *Emitter) pos() int { return len(e.Buf) }

func (e *Emitter) emit(bs ...byte) { e.Buf = append(e.Buf, bs...) }

func (e *Emitter) i8(v int32) {
	if v < 0 {
		v += 256
	}
	e.Buf = append(e.Buf, byte(v))
}

func (e *Emitter) i32(v int32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(v))
	e.Buf = append(e.Buf, b[:]...)
}

func (e *Emitter) i64(v int64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(v))
	e.Buf = append(e.Buf, b[:]...)
}

// asmDisp appends lead (a REX-prefix-plus-opcode byte string) followed
// by a ModR/M byte and displacement encoding a `reg`/`rm + disp`
// addressing form. reg may name a real register or, for the group-1
// immediate opcodes (cast8's AND), an opcode-extension field — the
// encoding is identical either way.
func (e *Emitter) asmDisp(lead []byte, reg, rm int, disp int32) {
	if rm == regSP {
		panic(compileerr.Internal("asmDisp: rm=SP requires a SIB byte, unsupported by this encoder"))
	}
	buf := append([]byte(nil), lead...)
	if reg >= 8 || rm >= 8 {
		if buf[0]>>4 != 0b0100 {
			panic(compileerr.Internal("asmDisp: extended reg/rm requires a REX prefix"))
		}
		buf[0] |= byte(reg>>3) << 2
		buf[0] |= byte(rm >> 3)
		reg &= 0b111
		rm &= 0b111
	}
	e.emit(buf...)

	var mod byte
	switch {
	case disp == 0:
		mod = 0
	case disp >= -128 && disp < 128:
		mod = 1
	default:
		mod = 2
	}
	e.emit((mod << 6) | byte(reg<<3) | byte(rm))
	switch mod {
	case 1:
		e.i8(disp)
	case 2:
		e.i32(disp)
	}
}

// asmLoad emits `mov reg, [rm + disp]`.
func (e *Emitter) asmLoad(reg, rm int, disp int32) {
	e.asmDisp([]byte{0x48, 0x8b}, reg, rm, disp)
}

// asmStore emits `mov [rm + disp], reg`.
func (e *Emitter) asmStore(rm int, disp int32, reg int) {
	e.asmDisp([]byte{0x48, 0x89}, reg, rm, disp)
}

// storeRax emits `mov [rbx + dst*8], rax`.
func (e *Emitter) storeRax(dst int) { e.asmStore(regB, int32(dst)*8, regA) }

// loadRax emits `mov rax, [rbx + src*8]`.
func (e *Emitter) loadRax(src int) { e.asmLoad(regA, regB, int32(src)*8) }

// maskByte emits `and qword ptr [rbx + slot*8], 0xff`, the same
// group-1-immediate template cast8 uses, reused to narrow a
// byte-typed arithmetic result back into [0, 256).
func (e *Emitter) maskByte(slot int) {
	e.asmDisp([]byte{0x48, 0x81}, 4, regB, int32(slot)*8)
	e.i32(0xff)
}

// padding appends an int3 sentinel and pads to the alignment boundary
// with more int3s, matching CodeGen.padding — it makes function
// boundaries easy to spot in a disassembly.
func (e *Emitter) padding() {
	if e.Alignment == 0 {
		return
	}
	e.emit(0xcc)
	for len(e.Buf)%e.Alignment != 0 {
		e.emit(0xcc)
	}
}

// jmpPlaceholder records a 4-byte placeholder to be patched once the
// target label's offset is known and returns nothing; the label's
// patch site is recorded in the per-function jumps table.
func (e *Emitter) jmpPlaceholder(label int) {
	e.jumps[label] = append(e.jumps[label], e.pos())
	e.emit(0, 0, 0, 0)
}

// callPlaceholder records a 4-byte placeholder for a call to fn,
// resolved once every function's offset is known.
func (e *Emitter) callPlaceholder(fn ir.FuncID) {
	e.emit(0xe8) // call rel32
	e.calls[fn] = append(e.calls[fn], e.pos())
	e.emit(0, 0, 0, 0)
}

// patchAddr rewrites the 4-byte RIP-relative displacement at
// patchOff so that it resolves to dstOff.
func (e *Emitter) patchAddr(patchOff, dstOff int) {
	srcOff := patchOff + 4
	rel := int32(dstOff - srcOff)
	binary.LittleEndian.PutUint32(e.Buf[patchOff:patchOff+4], uint32(rel))
}

// emitFunction emits one function's body: padding, its offset table
// entry, every instruction in order, then resolves that function's
// own local jump targets (call targets and strings are unit-wide and
// resolved once, after every function has been emitted).
func (e *Emitter) emitFunction(fn *ir.Function) {
	e.padding()
	if int(fn.ID) != len(e.funcOff) {
		panic(compileerr.Internal("emitFunction: functions must be emitted in FuncID order"))
	}
	e.funcOff = append(e.funcOff, e.pos())

	e.jumps = make(map[int][]int)
	pos2off := make([]int, len(fn.Instructions))
	for idx, instr := range fn.Instructions {
		pos2off[idx] = e.pos()
		emitInstruction(e, instr)
	}

	for label, offsets := range e.jumps {
		target := fn.Labels[label]
		if target < 0 {
			panic(compileerr.Internal("emitFunction: label %d never set", label))
		}
		dstOff := pos2off[target]
		for _, patchOff := range offsets {
			e.patchAddr(patchOff, dstOff)
		}
	}
	e.jumps = nil
}

// resolveCallsAndStrings patches every cross-function call site and
// appends the deduplicated string pool, once every function's offset
// is known.
func (e *Emitter) resolveCallsAndStrings() {
	for fn, offsets := range e.calls {
		if int(fn) < 0 || int(fn) >= len(e.funcOff) {
			panic(compileerr.Internal("resolveCallsAndStrings: call to unemitted function #%d", fn))
		}
		dstOff := e.funcOff[fn]
		for _, patchOff := range offsets {
			e.patchAddr(patchOff, dstOff)
		}
	}
	e.calls = make(map[ir.FuncID][]int)

	e.padding()
	for s, offsets := range e.strings {
		dstOff := e.pos()
		for _, patchOff := range offsets {
			e.patchAddr(patchOff, dstOff)
		}
		e.emit([]byte(s)...)
		e.emit(0)
	}
	e.strings = make(map[string][]int)
}
