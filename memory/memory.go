// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package memory implements the segmented memory of the vx16 virtual CPU.
//
// Memory is a growing list of independent 64KiB pages. A page is addressed
// by its allocation index (the segment id) and a 16-bit offset. Pages never
// overlap, are never freed, and a word access at offset 0xFFFF wraps back to
// offset 0 of the same page.
package memory

import (
	"fmt"
	"iter"
	"log"
	"maps"
)

const (
	PAGE_SIZE  = 64 * 1024 // Size of a single segment.
	PAGE_LIMIT = 0x10000   // Maximum number of segments, as ids are 16-bit.
)

var _memory_defines = map[string]string{
	"PAGE_SIZE":  fmt.Sprintf("0x%x", PAGE_SIZE),
	"PAGE_LIMIT": fmt.Sprintf("0x%x", PAGE_LIMIT),
}

// Page is the storage of a single segment.
type Page [PAGE_SIZE]byte

// Memory is the collection of allocated segments.
type Memory struct {
	Verbose bool // Set to enable verbose logging.

	pages []*Page
}

// NewMemory creates a memory with no segments allocated.
func NewMemory() (mem *Memory) {
	mem = &Memory{}

	return
}

// Defines for the memory
func (mem *Memory) Defines() iter.Seq2[string, string] {
	return maps.All(_memory_defines)
}

// Alloc appends a zeroed segment, and returns its id.
func (mem *Memory) Alloc() (segment uint16) {
	if len(mem.pages) >= PAGE_LIMIT {
		panic(ErrPageLimit)
	}

	mem.pages = append(mem.pages, &Page{})
	segment = uint16(len(mem.pages) - 1)

	if mem.Verbose {
		log.Printf("memory: alloc segment 0x%04x", segment)
	}

	return
}

// PageCount returns the number of allocated segments.
func (mem *Memory) PageCount() int {
	return len(mem.pages)
}

// page returns the storage for a segment, or panics if it does not exist.
func (mem *Memory) page(segment uint16) *Page {
	if int(segment) >= len(mem.pages) {
		panic(ErrSegment{Segment: segment, Count: len(mem.pages)})
	}

	return mem.pages[segment]
}

// Check panics if the segment has not been allocated.
func (mem *Memory) Check(segment uint16) {
	mem.page(segment)
}

// Byte loads the byte at segment:offset.
func (mem *Memory) Byte(segment uint16, offset uint16) byte {
	return mem.page(segment)[offset]
}

// SetByte stores a byte at segment:offset.
func (mem *Memory) SetByte(segment uint16, offset uint16, value byte) {
	mem.page(segment)[offset] = value
}

// Word loads the little-endian word at segment:offset.
// The high byte is read from offset+1 of the same segment.
func (mem *Memory) Word(segment uint16, offset uint16) uint16 {
	page := mem.page(segment)
	return uint16(page[offset]) | uint16(page[offset+1])<<8
}

// SetWord stores a little-endian word at segment:offset.
func (mem *Memory) SetWord(segment uint16, offset uint16, value uint16) {
	page := mem.page(segment)
	page[offset] = byte(value)
	page[offset+1] = byte(value >> 8)
}

// Load copies data into a segment starting at offset.
// Data past the end of the segment wraps to its start; at most PAGE_SIZE
// bytes are copied.
func (mem *Memory) Load(segment uint16, offset uint16, data []byte) (n int) {
	page := mem.page(segment)

	if len(data) > PAGE_SIZE {
		data = data[:PAGE_SIZE]
	}

	n = copy(page[offset:], data)
	n += copy(page[:], data[n:])

	if mem.Verbose {
		log.Printf("memory: load %d bytes at %04x:%04x", n, segment, offset)
	}

	return
}

// Dump copies size bytes out of a segment starting at offset, wrapping at
// the end of the segment.
func (mem *Memory) Dump(segment uint16, offset uint16, size int) (data []byte) {
	page := mem.page(segment)

	size = min(size, PAGE_SIZE)
	data = make([]byte, size)

	n := copy(data, page[offset:])
	copy(data[n:], page[:])

	return
}
