package emulator

import (
	"errors"

	"github.com/ezrec/vx16/translate"
)

var f = translate.From

var (
	// Routine errors
	ErrOperandInvalid = errors.New(f("operand invalid"))
	ErrImmediateRange = errors.New(f("immediate out of range"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrOperand reports an operand an instruction cannot accept.
type ErrOperand struct {
	Op      string // Instruction name.
	Operand string // Operand as written in the routine.
}

func (err ErrOperand) Error() string {
	return f("%v: '%v' is not a valid operand", err.Op, err.Operand)
}

func (err ErrOperand) Unwrap() error {
	return ErrOperandInvalid
}

// ErrImmediate reports an immediate that does not fit the operand width.
type ErrImmediate struct {
	Value int
	Bits  int
}

func (err ErrImmediate) Error() string {
	return f("%d does not fit in %d bits", err.Value, err.Bits)
}

func (err ErrImmediate) Unwrap() error {
	return ErrImmediateRange
}
