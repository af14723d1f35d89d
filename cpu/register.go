package cpu

// Register8 is one of the byte halves of AX, BX, CX or DX.
// The low bit of the value selects the high half, and the remaining bits
// select the Register16 the half belongs to.
type Register8 int

//go:generate go tool stringer -linecomment -type=Register8
const (
	AL = Register8(0) // al
	AH = Register8(1) // ah
	BL = Register8(2) // bl
	BH = Register8(3) // bh
	CL = Register8(4) // cl
	CH = Register8(5) // ch
	DL = Register8(6) // dl
	DH = Register8(7) // dh
)

// Word returns the 16-bit register that contains this half.
func (r Register8) Word() Register16 {
	return Register16(r >> 1)
}

// High is true for the bits 8-15 half.
func (r Register8) High() bool {
	return (r & 1) == 1
}

// Register16 is a general purpose, pointer or index register.
type Register16 int

//go:generate go tool stringer -linecomment -type=Register16
const (
	AX = Register16(0) // ax
	BX = Register16(1) // bx
	CX = Register16(2) // cx
	DX = Register16(3) // dx
	BP = Register16(4) // bp
	SI = Register16(5) // si
	DI = Register16(6) // di
	SP = Register16(7) // sp
)

// SegmentRegister holds a segment id of the memory.
type SegmentRegister int

//go:generate go tool stringer -linecomment -type=SegmentRegister
const (
	CS = SegmentRegister(0) // cs
	DS = SegmentRegister(1) // ds
	SS = SegmentRegister(2) // ss
	ES = SegmentRegister(3) // es
	FS = SegmentRegister(4) // fs
	GS = SegmentRegister(5) // gs
)

const (
	REGISTER8_COUNT  = 8
	REGISTER16_COUNT = 8
	SEGMENT_COUNT    = 6
)

// Flag is a bit, or bit-field, of the flags register.
type Flag uint16

const (
	FLAG_CF       = Flag(1 << 0)  // Carry
	FLAG_RESERVED = Flag(1 << 1)  // Always set
	FLAG_PF       = Flag(1 << 2)  // Parity
	FLAG_AF       = Flag(1 << 4)  // Auxiliary carry
	FLAG_ZF       = Flag(1 << 6)  // Zero
	FLAG_SF       = Flag(1 << 7)  // Sign
	FLAG_TF       = Flag(1 << 8)  // Trap
	FLAG_IF       = Flag(1 << 9)  // Interrupt enable
	FLAG_DF       = Flag(1 << 10) // Direction
	FLAG_OF       = Flag(1 << 11) // Overflow
	FLAG_IOPL     = Flag(3 << 12) // I/O privilege level
	FLAG_NT       = Flag(1 << 14) // Nested task

	// Bits that hold state; the rest are reserved.
	FLAGS_MASK = FLAG_CF | FLAG_RESERVED | FLAG_PF | FLAG_AF | FLAG_ZF | FLAG_SF |
		FLAG_TF | FLAG_IF | FLAG_DF | FLAG_OF | FLAG_IOPL | FLAG_NT

	FLAGS_INIT = uint16(FLAG_RESERVED) // Power-on flags value.
)

const flagIoplShift = 12

// ParseRegister8 looks up a byte register by its name.
func ParseRegister8(name string) (reg Register8, err error) {
	for reg = range REGISTER8_COUNT {
		if reg.String() == name {
			return
		}
	}

	err = ErrRegisterName(name)
	return
}

// ParseRegister16 looks up a word register by its name.
func ParseRegister16(name string) (reg Register16, err error) {
	for reg = range REGISTER16_COUNT {
		if reg.String() == name {
			return
		}
	}

	err = ErrRegisterName(name)
	return
}

// ParseSegmentRegister looks up a segment register by its name.
func ParseSegmentRegister(name string) (reg SegmentRegister, err error) {
	for reg = range SEGMENT_COUNT {
		if reg.String() == name {
			return
		}
	}

	err = ErrRegisterName(name)
	return
}
