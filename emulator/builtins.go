package emulator

import (
	"errors"
	"fmt"

	"go.starlark.net/starlark"

	"github.com/ezrec/vx16/cpu"
	"github.com/ezrec/vx16/memory"
)

// Pointer is a memory operand value in a routine.
// Ref is one of cpu.BytePtr, cpu.FarBytePtr, cpu.WordPtr or cpu.FarWordPtr.
type Pointer struct {
	Ref any
}

var _ starlark.Value = Pointer{}

func (ptr Pointer) String() string {
	switch ref := ptr.Ref.(type) {
	case cpu.BytePtr:
		return fmt.Sprintf("byte_ptr(0x%04x)", ref.Offset)
	case cpu.WordPtr:
		return fmt.Sprintf("word_ptr(0x%04x)", ref.Offset)
	case cpu.FarBytePtr:
		return fmt.Sprintf("far_byte(0x%04x, 0x%04x)", ref.Segment, ref.Offset)
	case cpu.FarWordPtr:
		return fmt.Sprintf("far_word(0x%04x, 0x%04x)", ref.Segment, ref.Offset)
	}
	return "pointer(?)"
}

func (ptr Pointer) Type() string          { return "pointer" }
func (ptr Pointer) Freeze()               {}
func (ptr Pointer) Truth() starlark.Bool  { return starlark.True }
func (ptr Pointer) Hash() (uint32, error) { return starlark.String(ptr.String()).Hash() }

type builtinFunc func(name string, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error)

// guard wraps a builtin so that fatal CPU preconditions, and returned
// errors, are reported with the routine line that invoked it.
func (emu *Emulator) guard(name string, fn builtinFunc) *starlark.Builtin {
	return starlark.NewBuiltin(name, func(thread *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
		defer func() {
			if r := recover(); r != nil {
				perr, ok := r.(error)
				if !ok || !fatal(perr) {
					panic(r)
				}
				err = perr
			}
			if err != nil {
				err = &ErrRuntime{LineNo: int(thread.CallFrame(1).Pos.Line), Err: err}
			}
		}()

		value, err = fn(name, args, kwargs)
		return
	})
}

// fatal is true for the precondition failures the memory and CPU panic with.
func fatal(err error) bool {
	return errors.Is(err, memory.ErrSegmentRange) ||
		errors.Is(err, memory.ErrPageLimit) ||
		errors.Is(err, cpu.ErrEnterNesting)
}

// operand decodes a routine value into a register, immediate or pointer.
func operand(op string, value starlark.Value) (any, error) {
	switch v := value.(type) {
	case starlark.String:
		name := string(v)
		if r8, err := cpu.ParseRegister8(name); err == nil {
			return r8, nil
		}
		if r16, err := cpu.ParseRegister16(name); err == nil {
			return r16, nil
		}
		if sr, err := cpu.ParseSegmentRegister(name); err == nil {
			return sr, nil
		}
	case starlark.Int:
		imm, err := starlark.AsInt32(v)
		if err != nil {
			return nil, err
		}
		return imm, nil
	case Pointer:
		return v.Ref, nil
	}

	return nil, ErrOperand{Op: op, Operand: value.String()}
}

// segmentOperand decodes a segment register name, or a literal segment id.
func (emu *Emulator) segmentOperand(op string, value starlark.Value) (segment uint16, err error) {
	arg, err := operand(op, value)
	if err != nil {
		return
	}

	switch v := arg.(type) {
	case cpu.SegmentRegister:
		segment = emu.Cpu.Seg(v)
	case int:
		segment, err = imm16(v)
	default:
		err = ErrOperand{Op: op, Operand: value.String()}
	}
	return
}

func imm8(value int) (byte, error) {
	if value < -0x80 || value > 0xFF {
		return 0, ErrImmediate{Value: value, Bits: 8}
	}
	return byte(value), nil
}

func imm16(value int) (uint16, error) {
	if value < -0x8000 || value > 0xFFFF {
		return 0, ErrImmediate{Value: value, Bits: 16}
	}
	return uint16(value), nil
}

func unpack2(name string, args starlark.Tuple, kwargs []starlark.Tuple) (a, b starlark.Value, err error) {
	err = starlark.UnpackPositionalArgs(name, args, kwargs, 2, &a, &b)
	return
}

func unpack1(name string, args starlark.Tuple, kwargs []starlark.Tuple) (a starlark.Value, err error) {
	err = starlark.UnpackPositionalArgs(name, args, kwargs, 1, &a)
	return
}

// nullary wraps an operation with no operands.
func nullary(op func()) builtinFunc {
	return func(name string, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		err := starlark.UnpackPositionalArgs(name, args, kwargs, 0)
		if err != nil {
			return nil, err
		}
		op()
		return starlark.None, nil
	}
}

// builtins returns the instruction set visible to a routine.
func (emu *Emulator) builtins() map[string]builtinFunc {
	c := emu.Cpu

	return map[string]builtinFunc{
		"mov":   emu.mov,
		"push":  emu.push,
		"pop":   emu.pop,
		"xchg":  emu.xchg,
		"lea":   emu.lea,
		"xlat":  emu.xlat,
		"enter": emu.enter,
		"pusha": nullary(c.Pusha),
		"popa":  nullary(c.Popa),
		"pushf": nullary(c.Pushf),
		"popf":  nullary(c.Popf),
		"leave": nullary(c.Leave),
		"cwd":   nullary(c.Cwd),
		"cbw":   nullary(c.Cbw),
		"cld":   nullary(c.Cld),
		"std":   nullary(c.Std),

		"alloc": emu.alloc,
		"reg":   emu.reg,
		"flags": emu.flags,
		"peekb": emu.peek,
		"peekw": emu.peek,
		"pokeb": emu.poke,
		"pokew": emu.poke,

		"byte_ptr": emu.nearPtr,
		"word_ptr": emu.nearPtr,
		"far_byte": emu.farPtr,
		"far_word": emu.farPtr,
	}
}

func (emu *Emulator) mov(name string, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	a, b, err := unpack2(name, args, kwargs)
	if err != nil {
		return nil, err
	}
	dst, err := operand(name, a)
	if err != nil {
		return nil, err
	}
	src, err := operand(name, b)
	if err != nil {
		return nil, err
	}

	c := emu.Cpu
	bad := ErrOperand{Op: name, Operand: b.String()}

	switch d := dst.(type) {
	case cpu.Register8:
		switch s := src.(type) {
		case cpu.Register8:
			c.Mov8(d, s)
		case int:
			v, err := imm8(s)
			if err != nil {
				return nil, err
			}
			c.Mov8Imm(d, v)
		case cpu.ByteRef:
			c.Mov8Load(d, s)
		default:
			return nil, bad
		}
	case cpu.Register16:
		switch s := src.(type) {
		case cpu.Register16:
			c.Mov16(d, s)
		case cpu.SegmentRegister:
			c.MovFromSeg(d, s)
		case int:
			v, err := imm16(s)
			if err != nil {
				return nil, err
			}
			c.Mov16Imm(d, v)
		case cpu.WordRef:
			c.Mov16Load(d, s)
		default:
			return nil, bad
		}
	case cpu.SegmentRegister:
		switch s := src.(type) {
		case cpu.Register16:
			c.MovSeg(d, s)
		case cpu.WordRef:
			c.MovSegLoad(d, s)
		default:
			return nil, bad
		}
	case cpu.ByteRef:
		switch s := src.(type) {
		case cpu.Register8:
			c.Mov8Store(d, s)
		case int:
			v, err := imm8(s)
			if err != nil {
				return nil, err
			}
			c.Mov8StoreImm(d, v)
		default:
			return nil, bad
		}
	case cpu.WordRef:
		switch s := src.(type) {
		case cpu.Register16:
			c.Mov16Store(d, s)
		case cpu.SegmentRegister:
			c.MovStoreSeg(d, s)
		case int:
			v, err := imm16(s)
			if err != nil {
				return nil, err
			}
			c.Mov16StoreImm(d, v)
		default:
			return nil, bad
		}
	default:
		return nil, ErrOperand{Op: name, Operand: a.String()}
	}

	return starlark.None, nil
}

func (emu *Emulator) push(name string, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	a, err := unpack1(name, args, kwargs)
	if err != nil {
		return nil, err
	}
	src, err := operand(name, a)
	if err != nil {
		return nil, err
	}

	switch s := src.(type) {
	case cpu.Register16:
		emu.Cpu.PushReg(s)
	case cpu.SegmentRegister:
		emu.Cpu.PushSeg(s)
	case cpu.WordRef:
		emu.Cpu.PushMem(s)
	case int:
		v, err := imm16(s)
		if err != nil {
			return nil, err
		}
		emu.Cpu.Push(v)
	default:
		return nil, ErrOperand{Op: name, Operand: a.String()}
	}

	return starlark.None, nil
}

// pop() returns the popped word; pop(dst) stores it.
func (emu *Emulator) pop(name string, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var a starlark.Value
	err := starlark.UnpackPositionalArgs(name, args, kwargs, 0, &a)
	if err != nil {
		return nil, err
	}

	if a == nil || a == starlark.None {
		return starlark.MakeInt(int(emu.Cpu.Pop())), nil
	}

	dst, err := operand(name, a)
	if err != nil {
		return nil, err
	}

	switch d := dst.(type) {
	case cpu.Register16:
		emu.Cpu.PopReg(d)
	case cpu.SegmentRegister:
		emu.Cpu.PopSeg(d)
	case cpu.WordRef:
		emu.Cpu.PopMem(d)
	default:
		return nil, ErrOperand{Op: name, Operand: a.String()}
	}

	return starlark.None, nil
}

func (emu *Emulator) xchg(name string, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	a, b, err := unpack2(name, args, kwargs)
	if err != nil {
		return nil, err
	}
	x, err := operand(name, a)
	if err != nil {
		return nil, err
	}
	y, err := operand(name, b)
	if err != nil {
		return nil, err
	}

	switch rx := x.(type) {
	case cpu.Register8:
		ry, ok := y.(cpu.Register8)
		if !ok {
			return nil, ErrOperand{Op: name, Operand: b.String()}
		}
		emu.Cpu.Xchg8(rx, ry)
	case cpu.Register16:
		ry, ok := y.(cpu.Register16)
		if !ok {
			return nil, ErrOperand{Op: name, Operand: b.String()}
		}
		emu.Cpu.Xchg16(rx, ry)
	default:
		return nil, ErrOperand{Op: name, Operand: a.String()}
	}

	return starlark.None, nil
}

func (emu *Emulator) lea(name string, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	a, b, err := unpack2(name, args, kwargs)
	if err != nil {
		return nil, err
	}
	dst, err := operand(name, a)
	if err != nil {
		return nil, err
	}
	src, err := operand(name, b)
	if err != nil {
		return nil, err
	}

	d, ok := dst.(cpu.Register16)
	if !ok {
		return nil, ErrOperand{Op: name, Operand: a.String()}
	}
	s, ok := src.(cpu.WordPtr)
	if !ok {
		return nil, ErrOperand{Op: name, Operand: b.String()}
	}

	emu.Cpu.Lea(d, s)
	return starlark.None, nil
}

// xlat() uses DS; xlat(sreg) uses a segment override.
func (emu *Emulator) xlat(name string, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	a := starlark.Value(starlark.String(cpu.DS.String()))
	err := starlark.UnpackPositionalArgs(name, args, kwargs, 0, &a)
	if err != nil {
		return nil, err
	}

	arg, err := operand(name, a)
	if err != nil {
		return nil, err
	}
	sr, ok := arg.(cpu.SegmentRegister)
	if !ok {
		return nil, ErrOperand{Op: name, Operand: a.String()}
	}

	emu.Cpu.XlatSeg(sr)
	return starlark.None, nil
}

func (emu *Emulator) enter(name string, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var size, level int
	err := starlark.UnpackPositionalArgs(name, args, kwargs, 1, &size, &level)
	if err != nil {
		return nil, err
	}

	frame, err := imm16(size)
	if err != nil {
		return nil, err
	}
	nesting, err := imm8(level)
	if err != nil {
		return nil, err
	}

	emu.Cpu.Enter(frame, nesting)
	return starlark.None, nil
}

func (emu *Emulator) alloc(name string, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	err := starlark.UnpackPositionalArgs(name, args, kwargs, 0)
	if err != nil {
		return nil, err
	}

	return starlark.MakeInt(int(emu.Memory.Alloc())), nil
}

// reg returns the value of any register by name.
func (emu *Emulator) reg(name string, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	a, err := unpack1(name, args, kwargs)
	if err != nil {
		return nil, err
	}
	arg, err := operand(name, a)
	if err != nil {
		return nil, err
	}

	switch r := arg.(type) {
	case cpu.Register8:
		return starlark.MakeInt(int(emu.Cpu.Reg8(r))), nil
	case cpu.Register16:
		return starlark.MakeInt(int(emu.Cpu.Reg16(r))), nil
	case cpu.SegmentRegister:
		return starlark.MakeInt(int(emu.Cpu.Seg(r))), nil
	}

	return nil, ErrOperand{Op: name, Operand: a.String()}
}

func (emu *Emulator) flags(name string, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	err := starlark.UnpackPositionalArgs(name, args, kwargs, 0)
	if err != nil {
		return nil, err
	}

	return starlark.MakeInt(int(emu.Cpu.Flags())), nil
}

// peek reads memory directly: peekb(seg, off) or peekw(seg, off).
func (emu *Emulator) peek(name string, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var seg starlark.Value
	var off int
	err := starlark.UnpackPositionalArgs(name, args, kwargs, 2, &seg, &off)
	if err != nil {
		return nil, err
	}

	segment, err := emu.segmentOperand(name, seg)
	if err != nil {
		return nil, err
	}
	offset, err := imm16(off)
	if err != nil {
		return nil, err
	}

	if name == "peekb" {
		return starlark.MakeInt(int(emu.Memory.Byte(segment, offset))), nil
	}
	return starlark.MakeInt(int(emu.Memory.Word(segment, offset))), nil
}

// poke writes memory directly: pokeb(seg, off, value) or pokew(seg, off, value).
func (emu *Emulator) poke(name string, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var seg starlark.Value
	var off, value int
	err := starlark.UnpackPositionalArgs(name, args, kwargs, 3, &seg, &off, &value)
	if err != nil {
		return nil, err
	}

	segment, err := emu.segmentOperand(name, seg)
	if err != nil {
		return nil, err
	}
	offset, err := imm16(off)
	if err != nil {
		return nil, err
	}

	if name == "pokeb" {
		v, err := imm8(value)
		if err != nil {
			return nil, err
		}
		emu.Memory.SetByte(segment, offset, v)
	} else {
		v, err := imm16(value)
		if err != nil {
			return nil, err
		}
		emu.Memory.SetWord(segment, offset, v)
	}

	return starlark.None, nil
}

// nearPtr builds byte_ptr(off) and word_ptr(off).
func (emu *Emulator) nearPtr(name string, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var off int
	err := starlark.UnpackPositionalArgs(name, args, kwargs, 1, &off)
	if err != nil {
		return nil, err
	}
	offset, err := imm16(off)
	if err != nil {
		return nil, err
	}

	if name == "byte_ptr" {
		return Pointer{Ref: cpu.BytePtr{Offset: offset}}, nil
	}
	return Pointer{Ref: cpu.WordPtr{Offset: offset}}, nil
}

// farPtr builds far_byte(seg, off) and far_word(seg, off). A segment
// register name is read when the pointer is built.
func (emu *Emulator) farPtr(name string, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var seg starlark.Value
	var off int
	err := starlark.UnpackPositionalArgs(name, args, kwargs, 2, &seg, &off)
	if err != nil {
		return nil, err
	}

	segment, err := emu.segmentOperand(name, seg)
	if err != nil {
		return nil, err
	}
	offset, err := imm16(off)
	if err != nil {
		return nil, err
	}

	if name == "far_byte" {
		return Pointer{Ref: cpu.FarBytePtr{Segment: segment, Offset: offset}}, nil
	}
	return Pointer{Ref: cpu.FarWordPtr{Segment: segment, Offset: offset}}, nil
}
