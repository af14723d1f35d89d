// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"
)

var _cpu_defines = map[string]string{
	"FLAG_CF":    fmt.Sprintf("0x%04x", uint16(FLAG_CF)),
	"FLAG_PF":    fmt.Sprintf("0x%04x", uint16(FLAG_PF)),
	"FLAG_AF":    fmt.Sprintf("0x%04x", uint16(FLAG_AF)),
	"FLAG_ZF":    fmt.Sprintf("0x%04x", uint16(FLAG_ZF)),
	"FLAG_SF":    fmt.Sprintf("0x%04x", uint16(FLAG_SF)),
	"FLAG_TF":    fmt.Sprintf("0x%04x", uint16(FLAG_TF)),
	"FLAG_IF":    fmt.Sprintf("0x%04x", uint16(FLAG_IF)),
	"FLAG_DF":    fmt.Sprintf("0x%04x", uint16(FLAG_DF)),
	"FLAG_OF":    fmt.Sprintf("0x%04x", uint16(FLAG_OF)),
	"FLAG_IOPL":  fmt.Sprintf("0x%04x", uint16(FLAG_IOPL)),
	"FLAG_NT":    fmt.Sprintf("0x%04x", uint16(FLAG_NT)),
	"FLAGS_INIT": fmt.Sprintf("0x%04x", FLAGS_INIT),
}

// Memory is the segmented storage the CPU addresses.
type Memory interface {
	// Alloc appends a new segment and returns its id.
	Alloc() uint16
	// PageCount is the number of allocated segments.
	PageCount() int
	// Check panics if the segment is not allocated.
	Check(segment uint16)
	Byte(segment uint16, offset uint16) byte
	SetByte(segment uint16, offset uint16, value byte)
	Word(segment uint16, offset uint16) uint16
	SetWord(segment uint16, offset uint16, value uint16)
}

// Cpu is the register file of the virtual 16-bit CPU, bound to its memory.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	memory Memory // Memory addressed by the segment registers.

	register [REGISTER16_COUNT]uint16 // AX, BX, CX, DX, BP, SI, DI, SP
	segment  [SEGMENT_COUNT]uint16    // CS, DS, SS, ES, FS, GS
	flags    uint16
}

// NewCpu creates a new CPU on a memory.
// A data segment and a stack segment are allocated, in that order.
func NewCpu(mem Memory) (cpu *Cpu) {
	cpu = &Cpu{
		memory: mem,
		flags:  FLAGS_INIT,
	}

	cpu.segment[DS] = mem.Alloc()
	cpu.segment[SS] = mem.Alloc()

	return
}

// Memory returns the memory the CPU is bound to.
func (cpu *Cpu) Memory() Memory {
	return cpu.memory
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset the CPU state.
// - Clears the general purpose, pointer and index registers.
// - Clears CS, ES, FS and GS.
// - Sets the flags to their power-on value.
// DS and SS keep the segments allocated by NewCpu.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.register[:])
	for _, sr := range []SegmentRegister{CS, ES, FS, GS} {
		cpu.segment[sr] = 0
	}
	cpu.flags = FLAGS_INIT
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	for reg := range Register16(REGISTER16_COUNT) {
		text += fmt.Sprintf("% 5s: %04X\n", reg, cpu.register[reg])
	}
	for sr := range SegmentRegister(SEGMENT_COUNT) {
		text += fmt.Sprintf("% 5s: %04X\n", sr, cpu.segment[sr])
	}
	text += fmt.Sprintf("% 5s: %04X\n", "flags", cpu.flags)

	return
}

// Reg8 returns the value of a byte register.
func (cpu *Cpu) Reg8(r Register8) byte {
	value := cpu.register[r.Word()]
	if r.High() {
		return byte(value >> 8)
	}
	return byte(value)
}

// setReg8 replaces one half of a word register, keeping the other half.
func (cpu *Cpu) setReg8(r Register8, value byte) {
	word := &cpu.register[r.Word()]
	if r.High() {
		*word = (*word & 0x00FF) | (uint16(value) << 8)
	} else {
		*word = (*word & 0xFF00) | uint16(value)
	}
}

// Reg16 returns the value of a word register.
func (cpu *Cpu) Reg16(r Register16) uint16 {
	return cpu.register[r]
}

func (cpu *Cpu) setReg16(r Register16, value uint16) {
	cpu.register[r] = value
}

// Seg returns the segment id held in a segment register.
func (cpu *Cpu) Seg(sr SegmentRegister) uint16 {
	return cpu.segment[sr]
}

// setSeg assigns a segment register. The id is only checked when used.
func (cpu *Cpu) setSeg(sr SegmentRegister, segment uint16) {
	if cpu.Verbose {
		log.Printf("cpu: %v = %04x", sr, segment)
	}
	cpu.segment[sr] = segment
}

func (cpu *Cpu) AL() byte { return cpu.Reg8(AL) }
func (cpu *Cpu) AH() byte { return cpu.Reg8(AH) }
func (cpu *Cpu) BL() byte { return cpu.Reg8(BL) }
func (cpu *Cpu) BH() byte { return cpu.Reg8(BH) }
func (cpu *Cpu) CL() byte { return cpu.Reg8(CL) }
func (cpu *Cpu) CH() byte { return cpu.Reg8(CH) }
func (cpu *Cpu) DL() byte { return cpu.Reg8(DL) }
func (cpu *Cpu) DH() byte { return cpu.Reg8(DH) }

func (cpu *Cpu) AX() uint16 { return cpu.register[AX] }
func (cpu *Cpu) BX() uint16 { return cpu.register[BX] }
func (cpu *Cpu) CX() uint16 { return cpu.register[CX] }
func (cpu *Cpu) DX() uint16 { return cpu.register[DX] }

func (cpu *Cpu) BP() uint16 { return cpu.register[BP] }
func (cpu *Cpu) SI() uint16 { return cpu.register[SI] }
func (cpu *Cpu) DI() uint16 { return cpu.register[DI] }
func (cpu *Cpu) SP() uint16 { return cpu.register[SP] }

func (cpu *Cpu) CS() uint16 { return cpu.segment[CS] }
func (cpu *Cpu) DS() uint16 { return cpu.segment[DS] }
func (cpu *Cpu) SS() uint16 { return cpu.segment[SS] }
func (cpu *Cpu) ES() uint16 { return cpu.segment[ES] }
func (cpu *Cpu) FS() uint16 { return cpu.segment[FS] }
func (cpu *Cpu) GS() uint16 { return cpu.segment[GS] }

// Flags returns the flags register.
func (cpu *Cpu) Flags() uint16 {
	return cpu.flags
}

// Flag returns true if any bit of the flag is set.
func (cpu *Cpu) Flag(flag Flag) bool {
	return (cpu.flags & uint16(flag)) != 0
}

func (cpu *Cpu) setFlag(flag Flag, set bool) {
	if set {
		cpu.flags |= uint16(flag)
	} else {
		cpu.flags &^= uint16(flag)
	}
}

func (cpu *Cpu) CF() bool { return cpu.Flag(FLAG_CF) }
func (cpu *Cpu) PF() bool { return cpu.Flag(FLAG_PF) }
func (cpu *Cpu) AF() bool { return cpu.Flag(FLAG_AF) }
func (cpu *Cpu) ZF() bool { return cpu.Flag(FLAG_ZF) }
func (cpu *Cpu) SF() bool { return cpu.Flag(FLAG_SF) }
func (cpu *Cpu) TF() bool { return cpu.Flag(FLAG_TF) }
func (cpu *Cpu) IF() bool { return cpu.Flag(FLAG_IF) }
func (cpu *Cpu) DF() bool { return cpu.Flag(FLAG_DF) }
func (cpu *Cpu) OF() bool { return cpu.Flag(FLAG_OF) }
func (cpu *Cpu) NT() bool { return cpu.Flag(FLAG_NT) }

// IOPL returns the two bit I/O privilege level.
func (cpu *Cpu) IOPL() uint8 {
	return uint8((cpu.flags & uint16(FLAG_IOPL)) >> flagIoplShift)
}
