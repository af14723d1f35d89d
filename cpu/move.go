package cpu

// Mov8 copies a byte register to a byte register.
func (cpu *Cpu) Mov8(dst Register8, src Register8) {
	cpu.setReg8(dst, cpu.Reg8(src))
}

// Mov8Imm sets a byte register to an immediate.
func (cpu *Cpu) Mov8Imm(dst Register8, value byte) {
	cpu.setReg8(dst, value)
}

// Mov8Load loads a byte register from memory.
func (cpu *Cpu) Mov8Load(dst Register8, src ByteRef) {
	cpu.setReg8(dst, cpu.loadByte(src))
}

// Mov8Store stores a byte register to memory.
func (cpu *Cpu) Mov8Store(dst ByteRef, src Register8) {
	cpu.storeByte(dst, cpu.Reg8(src))
}

// Mov8StoreImm stores an immediate byte to memory.
func (cpu *Cpu) Mov8StoreImm(dst ByteRef, value byte) {
	cpu.storeByte(dst, value)
}

// Mov16 copies a word register to a word register.
func (cpu *Cpu) Mov16(dst Register16, src Register16) {
	cpu.setReg16(dst, cpu.Reg16(src))
}

// Mov16Imm sets a word register to an immediate.
func (cpu *Cpu) Mov16Imm(dst Register16, value uint16) {
	cpu.setReg16(dst, value)
}

// Mov16Load loads a word register from memory.
func (cpu *Cpu) Mov16Load(dst Register16, src WordRef) {
	cpu.setReg16(dst, cpu.loadWord(src))
}

// Mov16Store stores a word register to memory.
func (cpu *Cpu) Mov16Store(dst WordRef, src Register16) {
	cpu.storeWord(dst, cpu.Reg16(src))
}

// Mov16StoreImm stores an immediate word to memory.
func (cpu *Cpu) Mov16StoreImm(dst WordRef, value uint16) {
	cpu.storeWord(dst, value)
}

// MovSeg loads a segment register from a word register.
func (cpu *Cpu) MovSeg(dst SegmentRegister, src Register16) {
	cpu.setSeg(dst, cpu.Reg16(src))
}

// MovSegLoad loads a segment register from memory.
func (cpu *Cpu) MovSegLoad(dst SegmentRegister, src WordRef) {
	cpu.setSeg(dst, cpu.loadWord(src))
}

// MovFromSeg copies a segment register to a word register.
func (cpu *Cpu) MovFromSeg(dst Register16, src SegmentRegister) {
	cpu.setReg16(dst, cpu.Seg(src))
}

// MovStoreSeg stores a segment register to memory.
func (cpu *Cpu) MovStoreSeg(dst WordRef, src SegmentRegister) {
	cpu.storeWord(dst, cpu.Seg(src))
}

// Xchg8 swaps two byte registers.
func (cpu *Cpu) Xchg8(a Register8, b Register8) {
	va, vb := cpu.Reg8(a), cpu.Reg8(b)
	cpu.setReg8(a, vb)
	cpu.setReg8(b, va)
}

// Xchg16 swaps two word registers.
func (cpu *Cpu) Xchg16(a Register16, b Register16) {
	va, vb := cpu.Reg16(a), cpu.Reg16(b)
	cpu.setReg16(a, vb)
	cpu.setReg16(b, va)
}

// Lea loads the offset of a near word operand, without touching memory.
func (cpu *Cpu) Lea(dst Register16, ref WordPtr) {
	cpu.setReg16(dst, ref.Offset)
}

// Cwd sign extends AX into DX.
func (cpu *Cpu) Cwd() {
	if cpu.AX()&0x8000 != 0 {
		cpu.setReg16(DX, 0xFFFF)
	} else {
		cpu.setReg16(DX, 0)
	}
}

// Cbw sign extends AL into AH.
func (cpu *Cpu) Cbw() {
	if cpu.AL()&0x80 != 0 {
		cpu.setReg8(AH, 0xFF)
	} else {
		cpu.setReg8(AH, 0)
	}
}

// Xlat replaces AL with the byte at DS:BX+AL.
func (cpu *Cpu) Xlat() {
	cpu.XlatSeg(DS)
}

// XlatSeg replaces AL with the byte at BX+AL in the given segment.
func (cpu *Cpu) XlatSeg(sr SegmentRegister) {
	offset := cpu.BX() + uint16(cpu.AL())
	cpu.setReg8(AL, cpu.loadByte(cpu.FarByte(sr, offset)))
}

// Cld clears the direction flag.
func (cpu *Cpu) Cld() {
	cpu.setFlag(FLAG_DF, false)
}

// Std sets the direction flag.
func (cpu *Cpu) Std() {
	cpu.setFlag(FLAG_DF, true)
}
