// Copyright 2014 The go-ethereum Authors
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
	"github.com/probeum/go-probeum/common"
	lru "github.com/hashicorp/golang-lru"
)

// bitvec is a bit vector over code offsets: bit i set means offset i is a
// valid JUMPDEST, i.e. a JUMPDEST byte that is not itself a PUSH immediate.
type bitvec []byte

func newBitvec(size int) bitvec {
	return make(bitvec, (size+7)/8+1)
}

func (b bitvec) set(pos uint64) {
	b[pos/8] |= 1 << (pos % 8)
}

func (b bitvec) codeSegment(pos uint64) bool {
	return b[pos/8]&(1<<(pos%8)) != 0
}

// analysis scans code once, left to right: for each PUSH1..PUSH32 it skips
// the immediate bytes (which can never themselves be valid jump targets),
// and marks every JUMPDEST byte it lands on as a valid destination.
func analysis(code []byte) bitvec {
	bits := newBitvec(len(code))
	for pc := uint64(0); pc < uint64(len(code)); {
		op := OpCode(code[pc])
		if op == JUMPDEST {
			bits.set(pc)
			pc++
			continue
		}
		if op.IsPush() {
			numPush := uint64(op - PUSH1 + 1)
			pc += numPush + 1
			continue
		}
		pc++
	}
	return bits
}

// codeState tracks how much work has been done to a piece of code before an
// interpreter may run it.
type codeState int

const (
	codeRaw codeState = iota
	codeChecked
	codeAnalysed
)

// Bytecode is immutable, analysed contract code: the raw bytes (padded with
// a trailing STOP so a PUSH at the tail never reads past the end), plus the
// JUMPDEST bitmap computed once and then reused for the code's lifetime.
type Bytecode struct {
	state    codeState
	original []byte
	padded   []byte
	jumpdest bitvec
	hash     common.Hash
}

// NewBytecode analyses raw contract code, appending a single trailing STOP
// byte so PUSH-at-tail reads never fall off the end of the slice.
func NewBytecode(code []byte, hash common.Hash) *Bytecode {
	padded := make([]byte, len(code)+1)
	copy(padded, code)
	return &Bytecode{
		state:    codeAnalysed,
		original: code,
		padded:   padded,
		jumpdest: analysis(padded),
		hash:     hash,
	}
}

// Len reports the length of the original, unpadded code.
func (b *Bytecode) Len() int { return len(b.original) }

// Code returns the original, unpadded bytes.
func (b *Bytecode) Code() []byte { return b.original }

// Hash returns the keccak256 hash of the original code.
func (b *Bytecode) Hash() common.Hash { return b.hash }

// IsJumpdest reports whether pc is a valid JUMP/JUMPI destination.
func (b *Bytecode) IsJumpdest(pc uint64) bool {
	if pc >= uint64(len(b.padded)) {
		return false
	}
	return OpCode(b.padded[pc]) == JUMPDEST && b.jumpdest.codeSegment(pc)
}

// GetOp returns the opcode byte at pc, or STOP past the end of code.
func (b *Bytecode) GetOp(pc uint64) OpCode {
	if pc < uint64(len(b.padded)) {
		return OpCode(b.padded[pc])
	}
	return STOP
}

// analysisCache memoizes Bytecode analysis by code hash so that a contract
// called many times across a block only pays the JUMPDEST scan once.
type analysisCache struct {
	cache *lru.Cache
}

// newAnalysisCache builds a bounded LRU cache for analysed code, keyed by
// the keccak256 hash of the contract bytecode.
func newAnalysisCache(size int) *analysisCache {
	c, err := lru.New(size)
	if err != nil {
		// Only returns an error for size <= 0, which is a programming
		// mistake, not a runtime condition.
		panic(err)
	}
	return &analysisCache{cache: c}
}

func (a *analysisCache) get(hash common.Hash, code []byte) *Bytecode {
	if v, ok := a.cache.Get(hash); ok {
		return v.(*Bytecode)
	}
	b := NewBytecode(code, hash)
	a.cache.Add(hash, b)
	return b
}
