// Copyright 2014 The go-probeum Authors
// This file is part of the go-probeum library.
//
// The go-probeum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-probeum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-probeum library. If not, see <http://www.gnu.org/licenses/>.

// Package crypto supplies the hash and address-derivation primitives the EVM
// core needs: Keccak-256/512 over byte buffers, and the two address
// derivation schemes for contract creation (CREATE and CREATE2).
package crypto

import (
	"encoding/binary"
	"hash"

	"github.com/probeum/go-probeum/common"
	"golang.org/x/crypto/sha3"
)

// KeccakState wraps sha3.state. In addition to the usual hash methods, it
// also supports Read to get a variable amount of data from the hash state.
// Read is faster than Sum because it doesn't copy the internal state, but
// also modifies the internal state.
type KeccakState interface {
	hash.Hash
	Read([]byte) (int, error)
}

// NewKeccakState creates a new KeccakState
func NewKeccakState() KeccakState {
	return sha3.NewLegacyKeccak256().(KeccakState)
}

// HashData hashes the provided data using the KeccakState and returns a 32 byte hash
func HashData(kh KeccakState, data []byte) (h common.Hash) {
	kh.Reset()
	kh.Write(data)
	kh.Read(h[:])
	return h
}

// Keccak256 calculates and returns the Keccak256 hash of the input data.
func Keccak256(data ...[]byte) []byte {
	b := make([]byte, 32)
	d := NewKeccakState()
	for _, b := range data {
		d.Write(b)
	}
	d.Read(b)
	return b
}

// Keccak256Hash calculates and returns the Keccak256 hash of the input data,
// converting it to an internal Hash data structure.
func Keccak256Hash(data ...[]byte) (h common.Hash) {
	d := NewKeccakState()
	for _, b := range data {
		d.Write(b)
	}
	d.Read(h[:])
	return h
}

// Keccak512 calculates and returns the Keccak512 hash of the input data.
func Keccak512(data ...[]byte) []byte {
	d := sha3.NewLegacyKeccak512()
	for _, b := range data {
		d.Write(b)
	}
	return d.Sum(nil)
}

// rlpAddressNonce encodes [address, nonce] the way CREATE's address
// derivation requires: a short list header wrapping a 20-byte string and a
// minimal big-endian integer (empty string for a zero nonce), matching
// ethereum/rlp's EncodeToBytes([]interface{}{addr, nonce}) output without
// pulling in the full rlp package for a single fixed-shape list.
func rlpAddressNonce(addr common.Address, nonce uint64) []byte {
	var nonceBytes []byte
	if nonce != 0 {
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], nonce)
		i := 0
		for i < 8 && buf[i] == 0 {
			i++
		}
		nonceBytes = buf[i:]
	}
	addrHeader := rlpStringHeader(addr.Bytes())
	nonceHeader := rlpStringHeader(nonceBytes)
	body := make([]byte, 0, len(addrHeader)+common.AddressLength+len(nonceHeader)+len(nonceBytes))
	body = append(body, addrHeader...)
	body = append(body, addr.Bytes()...)
	body = append(body, nonceHeader...)
	body = append(body, nonceBytes...)
	out := make([]byte, 0, len(body)+9)
	out = append(out, rlpListHeader(len(body))...)
	out = append(out, body...)
	return out
}

func rlpStringHeader(b []byte) []byte {
	if len(b) == 1 && b[0] < 0x80 {
		return nil
	}
	if len(b) < 56 {
		return []byte{0x80 + byte(len(b))}
	}
	return rlpLongHeader(0xb7, len(b))
}

func rlpListHeader(size int) []byte {
	if size < 56 {
		return []byte{0xc0 + byte(size)}
	}
	return rlpLongHeader(0xf7, size)
}

func rlpLongHeader(base byte, size int) []byte {
	var sz []byte
	for size > 0 {
		sz = append([]byte{byte(size & 0xff)}, sz...)
		size >>= 8
	}
	return append([]byte{base + byte(len(sz))}, sz...)
}

// CreateAddress derives the address of a contract created via CREATE: the
// low 20 bytes of keccak256(rlp([sender, nonce])).
func CreateAddress(b common.Address, nonce uint64) common.Address {
	return common.BytesToAddress(Keccak256(rlpAddressNonce(b, nonce))[12:])
}

// CreateAddress2 derives the address of a contract created via CREATE2:
// keccak256(0xff ++ sender ++ salt ++ keccak256(initcode))[12:].
func CreateAddress2(b common.Address, salt [32]byte, inithash []byte) common.Address {
	return common.BytesToAddress(Keccak256([]byte{0xff}, b.Bytes(), salt[:], inithash)[12:])
}
