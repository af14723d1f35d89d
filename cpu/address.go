package cpu

// BytePtr is a near reference to a byte, relative to DS.
type BytePtr struct {
	Offset uint16
}

// FarBytePtr is a reference to a byte in an explicit segment.
type FarBytePtr struct {
	Segment uint16
	Offset  uint16
}

// WordPtr is a near reference to a word, relative to DS.
type WordPtr struct {
	Offset uint16
}

// FarWordPtr is a reference to a word in an explicit segment.
type FarWordPtr struct {
	Segment uint16
	Offset  uint16
}

// ByteRef is a byte memory operand; only BytePtr and FarBytePtr satisfy it.
type ByteRef interface {
	byteAddress(cpu *Cpu) (segment uint16, offset uint16)
}

// WordRef is a word memory operand; only WordPtr and FarWordPtr satisfy it.
type WordRef interface {
	wordAddress(cpu *Cpu) (segment uint16, offset uint16)
}

var (
	_ ByteRef = BytePtr{}
	_ ByteRef = FarBytePtr{}
	_ WordRef = WordPtr{}
	_ WordRef = FarWordPtr{}
)

func (ptr BytePtr) byteAddress(cpu *Cpu) (uint16, uint16) {
	return cpu.segment[DS], ptr.Offset
}

func (ptr FarBytePtr) byteAddress(cpu *Cpu) (uint16, uint16) {
	return ptr.Segment, ptr.Offset
}

func (ptr WordPtr) wordAddress(cpu *Cpu) (uint16, uint16) {
	return cpu.segment[DS], ptr.Offset
}

func (ptr FarWordPtr) wordAddress(cpu *Cpu) (uint16, uint16) {
	return ptr.Segment, ptr.Offset
}

// ResolveByte returns the segment and offset a byte operand refers to.
// Panics if the segment has not been allocated.
func (cpu *Cpu) ResolveByte(ref ByteRef) (segment uint16, offset uint16) {
	segment, offset = ref.byteAddress(cpu)
	cpu.memory.Check(segment)
	return
}

// ResolveWord returns the segment and offset a word operand refers to.
// Panics if the segment has not been allocated.
func (cpu *Cpu) ResolveWord(ref WordRef) (segment uint16, offset uint16) {
	segment, offset = ref.wordAddress(cpu)
	cpu.memory.Check(segment)
	return
}

// FarByte builds a segment override byte operand from the current value of
// a segment register.
func (cpu *Cpu) FarByte(sr SegmentRegister, offset uint16) FarBytePtr {
	return FarBytePtr{Segment: cpu.segment[sr], Offset: offset}
}

// FarWord builds a segment override word operand from the current value of
// a segment register.
func (cpu *Cpu) FarWord(sr SegmentRegister, offset uint16) FarWordPtr {
	return FarWordPtr{Segment: cpu.segment[sr], Offset: offset}
}

func (cpu *Cpu) loadByte(ref ByteRef) byte {
	return cpu.memory.Byte(cpu.ResolveByte(ref))
}

func (cpu *Cpu) storeByte(ref ByteRef, value byte) {
	segment, offset := cpu.ResolveByte(ref)
	cpu.memory.SetByte(segment, offset, value)
}

func (cpu *Cpu) loadWord(ref WordRef) uint16 {
	return cpu.memory.Word(cpu.ResolveWord(ref))
}

func (cpu *Cpu) storeWord(ref WordRef, value uint16) {
	segment, offset := cpu.ResolveWord(ref)
	cpu.memory.SetWord(segment, offset, value)
}
