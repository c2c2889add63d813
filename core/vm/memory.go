// Copyright 2015 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package vm

import (
	"github.com/holiman/uint256"
)

// Memory is a frame's byte-addressable scratch space. Its length is always
// a multiple of 32 and only ever grows within one frame's lifetime; it is
// discarded when the frame returns.
type Memory struct {
	store       []byte
	lastGasCost uint64
}

func NewMemory() *Memory {
	return &Memory{}
}

// Set copies value into memory starting at offset. Callers must have
// already resized memory to cover [offset, offset+size).
func (m *Memory) Set(offset, size uint64, value []byte) {
	if size == 0 {
		return
	}
	if offset+size > uint64(len(m.store)) {
		panic("memory: out of bounds write")
	}
	copy(m.store[offset:offset+size], value)
}

// Set32 writes val as a 32-byte big-endian word at offset.
func (m *Memory) Set32(offset uint64, val *uint256.Int) {
	if offset+32 > uint64(len(m.store)) {
		panic("memory: out of bounds write")
	}
	b := val.Bytes32()
	copy(m.store[offset:offset+32], b[:])
}

// Resize grows memory to size bytes; size must already be a multiple of 32
// (callers compute it via toWordSize then *32). It never shrinks.
func (m *Memory) Resize(size uint64) {
	if uint64(len(m.store)) < size {
		m.store = append(m.store, make([]byte, size-uint64(len(m.store)))...)
	}
}

// GetCopy returns an owned copy of [offset, offset+size).
func (m *Memory) GetCopy(offset, size int64) []byte {
	if size == 0 {
		return nil
	}
	if int64(len(m.store)) >= offset+size {
		cp := make([]byte, size)
		copy(cp, m.store[offset:offset+size])
		return cp
	}
	return nil
}

// GetPtr returns a slice into memory's backing array; callers must not
// retain it past the frame's lifetime or mutate it unless that is the
// intended write.
func (m *Memory) GetPtr(offset, size int64) []byte {
	if size == 0 {
		return nil
	}
	if int64(len(m.store)) >= offset+size {
		return m.store[offset : offset+size]
	}
	return nil
}

// Len returns the current length of memory in bytes.
func (m *Memory) Len() int { return len(m.store) }

// Data returns the full backing slice. Callers must not mutate it.
func (m *Memory) Data() []byte { return m.store }

// Copy implements MCOPY-style overlapping in-memory copies.
func (m *Memory) Copy(dst, src, size uint64) {
	if size == 0 {
		return
	}
	copy(m.store[dst:dst+size], m.store[src:src+size])
}

// toWordSize rounds size up to the next multiple of 32, expressed in words.
func toWordSize(size uint64) uint64 {
	if size > 0xffffffffe0 {
		return 0xffffffffe0/32 + 1
	}
	return (size + 31) / 32
}

// calcMemSize64 returns the highest byte offset (off+size) a memory access
// reaches, and whether the stack's (off, size) pair overflows uint64. A
// zero size never forces expansion, regardless of offset.
func calcMemSize64(off, size *uint256.Int) (uint64, bool) {
	if size.IsZero() {
		return 0, false
	}
	if !off.IsUint64() || !size.IsUint64() {
		return 0, true
	}
	var sum uint256.Int
	overflow := sum.AddOverflow(off, size)
	if overflow || !sum.IsUint64() {
		return 0, true
	}
	return sum.Uint64(), false
}
