package cpu

import (
	"errors"

	"github.com/ezrec/vx16/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrEnterNesting = errors.New(f("enter nesting level unsupported"))
	ErrRegister     = errors.New(f("register invalid"))
)

// ErrNesting is raised by Enter for a non-zero nesting level.
type ErrNesting uint8

func (err ErrNesting) Error() string {
	return f("enter nesting level %d unsupported", uint8(err))
}

func (err ErrNesting) Unwrap() error {
	return ErrEnterNesting
}

// ErrRegisterName reports an unknown register name.
type ErrRegisterName string

func (err ErrRegisterName) Error() string {
	return f("'%v' is not a register", string(err))
}

func (err ErrRegisterName) Unwrap() error {
	return ErrRegister
}
