package cpu

import (
	"log"
)

const (
	STACK_WORD = 2 // Bytes per stack slot.
)

// Push decrements SP and stores a word at SS:SP.
// SP wraps modulo 0x10000.
func (cpu *Cpu) Push(value uint16) {
	sp := cpu.register[SP] - STACK_WORD
	cpu.register[SP] = sp
	cpu.memory.SetWord(cpu.segment[SS], sp, value)
}

// PushReg pushes a word register. SP pushes its value before the push.
func (cpu *Cpu) PushReg(r Register16) {
	cpu.Push(cpu.Reg16(r))
}

// PushSeg pushes a segment register.
func (cpu *Cpu) PushSeg(sr SegmentRegister) {
	cpu.Push(cpu.Seg(sr))
}

// PushMem pushes a word read from memory.
func (cpu *Cpu) PushMem(ref WordRef) {
	cpu.Push(cpu.loadWord(ref))
}

// Pop loads the word at SS:SP and increments SP.
func (cpu *Cpu) Pop() (value uint16) {
	sp := cpu.register[SP]
	value = cpu.memory.Word(cpu.segment[SS], sp)
	cpu.register[SP] = sp + STACK_WORD
	return
}

// PopReg pops into a word register. Popping SP leaves SP at the popped value.
func (cpu *Cpu) PopReg(r Register16) {
	cpu.setReg16(r, cpu.Pop())
}

// PopSeg pops into a segment register.
func (cpu *Cpu) PopSeg(sr SegmentRegister) {
	cpu.setSeg(sr, cpu.Pop())
}

// PopMem pops a word and stores it to memory.
func (cpu *Cpu) PopMem(ref WordRef) {
	cpu.storeWord(ref, cpu.Pop())
}

// Pusha pushes AX, CX, DX, BX, the original SP, BP, SI and DI.
func (cpu *Cpu) Pusha() {
	temp := cpu.SP()
	cpu.Push(cpu.AX())
	cpu.Push(cpu.CX())
	cpu.Push(cpu.DX())
	cpu.Push(cpu.BX())
	cpu.Push(temp)
	cpu.Push(cpu.BP())
	cpu.Push(cpu.SI())
	cpu.Push(cpu.DI())
}

// Popa restores the registers saved by Pusha. The saved SP is discarded.
func (cpu *Cpu) Popa() {
	cpu.PopReg(DI)
	cpu.PopReg(SI)
	cpu.PopReg(BP)
	cpu.register[SP] += STACK_WORD // Skip SP
	cpu.PopReg(BX)
	cpu.PopReg(DX)
	cpu.PopReg(CX)
	cpu.PopReg(AX)
}

// Pushf pushes the flags register.
func (cpu *Cpu) Pushf() {
	cpu.Push(cpu.flags)
}

// Popf pops the flags register. Reserved bits are dropped, and bit 1 stays set.
func (cpu *Cpu) Popf() {
	cpu.flags = (cpu.Pop() & uint16(FLAGS_MASK)) | uint16(FLAG_RESERVED)
}

// Enter creates a stack frame of size bytes.
// Only nesting level 0 is supported; any other level panics with ErrNesting.
func (cpu *Cpu) Enter(size uint16, level uint8) {
	if level != 0 {
		panic(ErrNesting(level))
	}

	cpu.PushReg(BP)
	cpu.Mov16(BP, SP)
	cpu.register[SP] -= size

	if cpu.Verbose {
		log.Printf("cpu: enter %d: bp=%04x sp=%04x", size, cpu.BP(), cpu.SP())
	}
}

// Leave removes the stack frame created by Enter.
func (cpu *Cpu) Leave() {
	cpu.Mov16(SP, BP)
	cpu.PopReg(BP)

	if cpu.Verbose {
		log.Printf("cpu: leave: bp=%04x sp=%04x", cpu.BP(), cpu.SP())
	}
}
