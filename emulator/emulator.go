// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator pairs a memory with a CPU, and runs translated routines
// written in Starlark against them.
package emulator

import (
	"errors"
	"io"
	"iter"
	"log"
	"strconv"

	"go.starlark.net/resolve"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/vx16/cpu"
	"github.com/ezrec/vx16/internal"
	"github.com/ezrec/vx16/memory"
)

// Emulator state. Memory + CPU.
type Emulator struct {
	Verbose  bool           // If set, enables verbose logging.
	Memory   *memory.Memory // Reference to the memory simulation.
	*cpu.Cpu                // Reference to the CPU simulation.
}

// NewEmulator creates a new emulator, with its own memory.
func NewEmulator() (emu *Emulator) {
	mem := memory.NewMemory()

	emu = &Emulator{
		Memory: mem,
		Cpu:    cpu.NewCpu(mem),
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(
		emu.Memory.Defines(),
		emu.Cpu.Defines(),
	)
}

// Reset the CPU state. Memory contents are kept.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()
}

// Load reads a program image into a segment at offset.
func (emu *Emulator) Load(r io.Reader, segment uint16, offset uint16) (n int, err error) {
	data, err := io.ReadAll(io.LimitReader(r, memory.PAGE_SIZE))
	if err != nil {
		return
	}

	emu.Memory.Verbose = emu.Verbose
	n = emu.Memory.Load(segment, offset, data)

	return
}

// Run executes a routine. src may be anything starlark.ExecFileOptions
// accepts: a string, a []byte, or an io.Reader.
// Any failure is returned as an *ErrRuntime.
func (emu *Emulator) Run(filename string, src any) (err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Memory.Verbose = emu.Verbose

	thread := &starlark.Thread{
		Name: filename,
		Print: func(_ *starlark.Thread, msg string) {
			log.Printf("%v: %v", filename, msg)
		},
	}

	opts := &syntax.FileOptions{
		While:           true,
		TopLevelControl: true,
		GlobalReassign:  true,
	}

	_, err = starlark.ExecFileOptions(opts, thread, filename, src, emu.predeclared())
	if err != nil {
		err = runtimeError(err)
		if emu.Verbose {
			log.Printf("emulator: %v", err)
			log.Printf("emulator: cpu\n%v", emu.Cpu.String())
		}
	}

	return
}

// predeclared returns the names visible to a routine.
func (emu *Emulator) predeclared() (dict starlark.StringDict) {
	dict = starlark.StringDict{}

	for key, str := range emu.Defines() {
		value, err := strconv.ParseInt(str, 0, 64)
		if err != nil {
			continue
		}
		dict[key] = starlark.MakeInt64(value)
	}

	for name, fn := range emu.builtins() {
		dict[name] = emu.guard(name, fn)
	}

	return
}

// runtimeError locates the routine line an error was raised from.
func runtimeError(err error) error {
	var rt *ErrRuntime
	if errors.As(err, &rt) {
		return rt
	}

	var syn syntax.Error
	if errors.As(err, &syn) {
		return &ErrRuntime{LineNo: int(syn.Pos.Line), Err: err}
	}

	var list resolve.ErrorList
	if errors.As(err, &list) && len(list) > 0 {
		return &ErrRuntime{LineNo: int(list[0].Pos.Line), Err: err}
	}

	var eval *starlark.EvalError
	if errors.As(err, &eval) {
		for n := range len(eval.CallStack) {
			line := eval.CallStack.At(n).Pos.Line
			if line > 0 {
				return &ErrRuntime{LineNo: int(line), Err: err}
			}
		}
	}

	return &ErrRuntime{Err: err}
}
