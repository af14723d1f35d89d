package emulator

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/vx16/cpu"
	"github.com/ezrec/vx16/memory"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.Equal(2, emu.Memory.PageCount())
	assert.NotEqual(emu.DS(), emu.SS())
	assert.Equal(cpu.FLAGS_INIT, emu.Flags())
}

func TestEmulator_Defines(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	defines := map[string]string{}
	for key, value := range emu.Defines() {
		defines[key] = value
	}

	assert.Equal("0x10000", defines["PAGE_SIZE"])
	assert.Equal("0x0400", defines["FLAG_DF"])
}

func TestEmulator_Load(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	n, err := emu.Load(bytes.NewReader([]byte{0x34, 0x12, 0x78, 0x56}), emu.DS(), 0x100)
	assert.NoError(err)
	assert.Equal(4, n)
	assert.Equal(uint16(0x1234), emu.Memory.Word(emu.DS(), 0x100))
	assert.Equal(uint16(0x5678), emu.Memory.Word(emu.DS(), 0x102))
	assert.Equal(uint16(0), emu.Memory.Word(emu.SS(), 0x100))
}

func TestEmulator_Reset(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	err := emu.Run("reset.star", strings.Join([]string{
		`mov("ax", 0x1234)`,
		`pokew("ds", 0, 0x5678)`,
		`std()`,
	}, "\n"))
	assert.NoError(err)

	emu.Reset()
	assert.Equal(uint16(0), emu.AX())
	assert.Equal(cpu.FLAGS_INIT, emu.Flags())
	assert.Equal(uint16(0x5678), emu.Memory.Word(emu.DS(), 0))
}

func doRun(t *testing.T, program []string) (emu *Emulator) {
	emu = NewEmulator()
	err := emu.Run("test.star", strings.Join(program, "\n"))
	if err != nil {
		t.Log(emu.Cpu.String())
		t.Fatalf("%v", err)
	}
	return
}

func TestRun_Cwd(t *testing.T) {
	assert := assert.New(t)

	emu := doRun(t, []string{
		`mov("ax", 0xFEDC)`,
		`cwd()`,
	})
	assert.Equal(uint16(0xFFFF), emu.DX())
	assert.Equal(uint16(0xFEDC), emu.AX())

	emu = doRun(t, []string{
		`mov("dx", 0x1234)`,
		`mov("ax", 0x7FFF)`,
		`cwd()`,
		`mov("al", 0x80)`,
		`cbw()`,
	})
	assert.Equal(uint16(0x0000), emu.DX())
	assert.Equal(uint16(0xFF80), emu.AX())
}

func TestRun_Xlat(t *testing.T) {
	assert := assert.New(t)

	emu := doRun(t, []string{
		`mov("bx", 0x1000)`,
		`mov(byte_ptr(0x1000), 0x10)`,
		`mov(byte_ptr(0x1001), 0x20)`,
		`mov("al", 0)`,
		`xlat()`,
		`mov("cl", "al")`,
		`mov("al", 1)`,
		`xlat()`,
	})
	assert.Equal(byte(0x10), emu.CL())
	assert.Equal(byte(0x20), emu.AL())

	emu = doRun(t, []string{
		`es = alloc()`,
		`pokeb(es, 0x42, 0x99)`,
		`mov("ax", es)`,
		`mov("es", "ax")`,
		`mov("bx", 0x40)`,
		`mov("al", 2)`,
		`xlat("es")`,
	})
	assert.Equal(byte(0x99), emu.AL())
}

func TestRun_LoadedTable(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	_, err := emu.Load(strings.NewReader("0123456789ABCDEF"), emu.DS(), 0x200)
	assert.NoError(err)

	err = emu.Run("hex.star", strings.Join([]string{
		`mov("bx", 0x200)`,
		`digits = []`,
		`for nibble in [0xC, 0xA, 0xF, 0xE]:`,
		`    mov("al", nibble)`,
		`    xlat()`,
		`    digits.append(reg("al"))`,
		`mov("ax", digits[0] << 8 | digits[1])`,
		`mov("dx", digits[2] << 8 | digits[3])`,
	}, "\n"))
	assert.NoError(err)
	assert.Equal(uint16('C')<<8|uint16('A'), emu.AX())
	assert.Equal(uint16('F')<<8|uint16('E'), emu.DX())
}

func TestRun_Segments(t *testing.T) {
	assert := assert.New(t)

	emu := doRun(t, []string{
		`seg = alloc()`,
		`mov("ax", seg)`,
		`mov("es", "ax")`,
		`mov(far_word("es", 0x10), 0x1234)`,
		`mov("si", word_ptr(0x10))`,
		`mov("di", far_word(seg, 0x10))`,
		`mov("cx", "es")`,
		`mov(word_ptr(0x20), "es")`,
		`mov("fs", word_ptr(0x20))`,
		`lea("bp", word_ptr(0x10 + 4))`,
	})
	assert.Equal(uint16(0), emu.SI())
	assert.Equal(uint16(0x1234), emu.DI())
	assert.Equal(uint16(2), emu.ES())
	assert.Equal(uint16(2), emu.CX())
	assert.Equal(uint16(2), emu.FS())
	assert.Equal(uint16(0x14), emu.BP())
	assert.Equal(uint16(0x1234), emu.Memory.Word(2, 0x10))
	assert.Equal(3, emu.Memory.PageCount())
}

func TestRun_Stack(t *testing.T) {
	assert := assert.New(t)

	emu := doRun(t, []string{
		`mov("sp", 0x100)`,
		`push(0x1234)`,
		`if peekw("ss", 0xFE) != 0x1234:`,
		`    fail("stack")`,
		`push("ds")`,
		`mov("ax", 0xABCD)`,
		`push("ax")`,
		`pop("bx")`,
		`pop("es")`,
		`mov("cx", pop())`,
		`mov(word_ptr(0x30), 0x5555)`,
		`push(word_ptr(0x30))`,
		`pop(word_ptr(0x40))`,
	})
	assert.Equal(uint16(0xABCD), emu.BX())
	assert.Equal(emu.DS(), emu.ES())
	assert.Equal(uint16(0x1234), emu.CX())
	assert.Equal(uint16(0x5555), emu.Memory.Word(emu.DS(), 0x40))
	assert.Equal(uint16(0x100), emu.SP())
}

func TestRun_PushaPopa(t *testing.T) {
	assert := assert.New(t)

	emu := doRun(t, []string{
		`regs = ["ax", "bx", "cx", "dx", "bp", "si", "di"]`,
		`mov("sp", 0x200)`,
		`for n, r in enumerate(regs):`,
		`    mov(r, 0x1111 * (n + 1))`,
		`pusha()`,
		`for r in regs:`,
		`    mov(r, 0xDEAD)`,
		`popa()`,
	})
	assert.Equal(uint16(0x1111), emu.AX())
	assert.Equal(uint16(0x2222), emu.BX())
	assert.Equal(uint16(0x3333), emu.CX())
	assert.Equal(uint16(0x4444), emu.DX())
	assert.Equal(uint16(0x5555), emu.BP())
	assert.Equal(uint16(0x6666), emu.SI())
	assert.Equal(uint16(0x7777), emu.DI())
	assert.Equal(uint16(0x200), emu.SP())
}

func TestRun_Frame(t *testing.T) {
	assert := assert.New(t)

	emu := doRun(t, []string{
		`mov("sp", 0x100)`,
		`mov("bp", 0x5555)`,
		`def proc(size):`,
		`    enter(size)`,
		`    mov("ax", "bp")`,
		`    leave()`,
		`    return reg("ax")`,
		`frames = [proc(size) for size in [0, 2, 0x40]]`,
		`if frames != [0xFE, 0xFE, 0xFE]:`,
		`    fail("frames %s" % frames)`,
	})
	assert.Equal(uint16(0x100), emu.SP())
	assert.Equal(uint16(0x5555), emu.BP())
}

func TestRun_Flags(t *testing.T) {
	assert := assert.New(t)

	emu := doRun(t, []string{
		`std()`,
		`pushf()`,
		`cld()`,
		`mov("ax", flags())`,
		`popf()`,
		`if flags() & FLAG_DF == 0:`,
		`    fail("df")`,
		`push(FLAG_CF)`,
		`popf()`,
	})
	assert.Equal(uint16(0x0002), emu.AX())
	assert.True(emu.CF())
	assert.False(emu.DF())
}

func TestRun_Xchg(t *testing.T) {
	assert := assert.New(t)

	emu := doRun(t, []string{
		`mov("ax", 0x1234)`,
		`mov("dx", 0x5678)`,
		`xchg("ax", "dx")`,
		`xchg("al", "ah")`,
		`mov("cx", -1)`,
		`mov("bl", -128)`,
	})
	assert.Equal(uint16(0x7856), emu.AX())
	assert.Equal(uint16(0x1234), emu.DX())
	assert.Equal(uint16(0xFFFF), emu.CX())
	assert.Equal(byte(0x80), emu.BL())
}

func TestRun_Errors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []string
		lineno  int
		err     error
	}){
		{"width", []string{`mov("ax", 1)`, `mov("al", "ax")`}, 2, ErrOperandInvalid},
		{"register", []string{`mov("ax", 1)`, `push("ip")`}, 2, ErrOperandInvalid},
		{"imm8", []string{`mov("al", 0x100)`}, 1, ErrImmediateRange},
		{"imm16", []string{``, `push(0x10000)`}, 2, ErrImmediateRange},
		{"byte_push", []string{`push("al")`}, 1, ErrOperandInvalid},
		{"lea_far", []string{`lea("ax", far_word("ds", 0))`}, 1, ErrOperandInvalid},
		{"xchg_width", []string{`xchg("ax", "al")`}, 1, ErrOperandInvalid},
		{"segment", []string{
			`mov("ax", 0x100)`,
			`mov("es", "ax")`,
			`mov("al", far_byte("es", 0))`,
		}, 3, memory.ErrSegmentRange},
		{"segment_in_def", []string{
			`def f():`,
			`    peekb(9, 0)`,
			`f()`,
		}, 2, memory.ErrSegmentRange},
		{"nesting", []string{`mov("sp", 0x100)`, `enter(4, 1)`}, 2, cpu.ErrEnterNesting},
	}

	for _, entry := range table {
		emu := NewEmulator()
		err := emu.Run(entry.name, strings.Join(entry.program, "\n"))

		var rt *ErrRuntime
		if !assert.True(errors.As(err, &rt), entry.name) {
			continue
		}
		assert.Equal(entry.lineno, rt.LineNo, entry.name)
		assert.True(errors.Is(err, entry.err), "%v: %v", entry.name, err)
	}
}

func TestRun_ScriptErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []string
		lineno  int
	}){
		{"fail", []string{`mov("ax", 1)`, ``, `fail("boom")`}, 3},
		{"syntax", []string{`mov("ax", 1)`, `mov("ax" 1)`}, 2},
		{"undefined", []string{`mov("ax", 1)`, `nop()`}, 2},
		{"arity", []string{`cwd(1)`}, 1},
	}

	for _, entry := range table {
		emu := NewEmulator()
		err := emu.Run(entry.name, strings.Join(entry.program, "\n"))

		var rt *ErrRuntime
		if !assert.True(errors.As(err, &rt), entry.name) {
			continue
		}
		assert.Equal(entry.lineno, rt.LineNo, "%v: %v", entry.name, err)
	}
}

func TestPointer(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		ptr  Pointer
		text string
	}){
		{Pointer{Ref: cpu.BytePtr{Offset: 0x10}}, "byte_ptr(0x0010)"},
		{Pointer{Ref: cpu.WordPtr{Offset: 0xFFFF}}, "word_ptr(0xffff)"},
		{Pointer{Ref: cpu.FarBytePtr{Segment: 2, Offset: 3}}, "far_byte(0x0002, 0x0003)"},
		{Pointer{Ref: cpu.FarWordPtr{Segment: 4, Offset: 5}}, "far_word(0x0004, 0x0005)"},
	}

	for _, entry := range table {
		assert.Equal(entry.text, entry.ptr.String())
		assert.Equal("pointer", entry.ptr.Type())
		assert.True(bool(entry.ptr.Truth()))
		_, err := entry.ptr.Hash()
		assert.NoError(err)
	}
}
