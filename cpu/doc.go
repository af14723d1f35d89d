// Package cpu implements the register file of the vx16 virtual 16-bit CPU.
//
// The CPU consists of four general purpose registers (AX, BX, CX, DX), each
// addressable as a pair of byte halves (AL/AH ...), four pointer and index
// registers (BP, SI, DI, SP), six segment registers (CS, DS, SS, ES, FS, GS)
// and the flags register.
//
// Each operation is a single translated instruction: data movement between
// registers, immediates and memory operands, stack and frame handling, and
// table lookup. Memory operands are typed values (BytePtr, WordPtr, and their
// far variants) so that operand width is checked by the compiler.
package cpu
