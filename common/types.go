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

// Package common holds the fixed-width primitives the rest of the module is
// built on: addresses, hashes and byte-buffer helpers. 256-bit word
// arithmetic itself lives in holiman/uint256 and is used directly as
// *uint256.Int; this package only supplies the conversions between it and
// the big-endian wire/memory representation.
package common

import (
	"encoding/hex"
	"fmt"
)

const (
	// AddressLength is the expected length of an address, in bytes.
	AddressLength = 20
	// HashLength is the expected length of a hash, in bytes.
	HashLength = 32
)

// Address represents the 20-byte address of an Ethereum account.
type Address [AddressLength]byte

// BytesToAddress sets the last AddressLength bytes of b (left-padding or
// truncating from the left as needed) into an Address.
func BytesToAddress(b []byte) Address {
	var a Address
	a.setBytes(b)
	return a
}

func (a *Address) setBytes(b []byte) {
	if len(b) > len(a) {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
}

// Bytes returns the raw bytes of the address.
func (a Address) Bytes() []byte { return a[:] }

// Hex returns a "0x"-prefixed hex string of the address.
func (a Address) Hex() string { return "0x" + hex.EncodeToString(a[:]) }

func (a Address) String() string { return a.Hex() }

// IsZero reports whether the address is the all-zero sentinel, i.e. no
// receiver was specified (contract creation).
func (a Address) IsZero() bool { return a == Address{} }

// Hash represents a 32-byte keccak256 hash.
type Hash [HashLength]byte

// BytesToHash sets the last HashLength bytes of b into a Hash.
func BytesToHash(b []byte) Hash {
	var h Hash
	h.setBytes(b)
	return h
}

func (h *Hash) setBytes(b []byte) {
	if len(b) > len(h) {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
}

// Bytes returns the raw bytes of the hash.
func (h Hash) Bytes() []byte { return h[:] }

// Hex returns the hash as a "0x"-prefixed lowercase hex string.
func (h Hash) Hex() string { return "0x" + hex.EncodeToString(h[:]) }

func (h Hash) String() string { return h.Hex() }

// IsZero reports whether the hash is the all-zero value (the default,
// unset storage slot value).
func (h Hash) IsZero() bool { return h == Hash{} }

// CopyBytes returns an exact copy of the provided byte slice.
func CopyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	return cp
}

// RightPadBytes right-pads a slice to the given size; it ignores slices
// already longer than size. Used for memory reads that run off the end of
// a buffer (e.g. CALLDATACOPY past calldata length, CODECOPY past code
// length).
func RightPadBytes(b []byte, size int) []byte {
	if size <= len(b) {
		return b
	}
	out := make([]byte, size)
	copy(out, b)
	return out
}

// LeftPadBytes left-pads a slice to the given size.
func LeftPadBytes(b []byte, size int) []byte {
	if size <= len(b) {
		return b
	}
	out := make([]byte, size)
	copy(out[size-len(b):], b)
	return out
}

func (a Address) Format(s fmt.State, c rune) {
	fmt.Fprintf(s, "%s", a.Hex())
}

func (h Hash) Format(s fmt.State, c rune) {
	fmt.Fprintf(s, "%s", h.Hex())
}
