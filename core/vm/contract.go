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
	"github.com/holiman/uint256"

	"github.com/probeum/go-probeum/common"
)

// CallScheme distinguishes the four ways a frame can be entered; it governs
// whose storage/balance the frame sees and whether it may change state.
type CallScheme int

const (
	SchemeCall CallScheme = iota
	SchemeCallCode
	SchemeDelegateCall
	SchemeStaticCall
)

// Contract is one call/create frame's execution context: the running code,
// the operand it was invoked with, and the gas budget charged against it.
// It is created fresh for every CALL/CREATE and discarded when the frame
// returns.
type Contract struct {
	CallerAddress common.Address
	Address       common.Address
	// CodeAddr is the address the running code was loaded from, which for
	// CALLCODE/DELEGATECALL differs from Address (storage/balance context).
	CodeAddr *common.Address

	code     *Bytecode
	CodeHash common.Hash

	Input []byte
	Gas   uint64

	// Value is the apparent value of the call as the running code observes
	// it via CALLVALUE; DELEGATECALL inherits the parent's, never its own.
	Value *uint256.Int

	Scheme   CallScheme
	IsStatic bool

	// Whether this contract was CREATEd in the currently executing
	// transaction: governs EIP-6780's restricted SELFDESTRUCT semantics.
	CreatedThisTx bool
}

// NewContract builds a frame for running code at addr on behalf of caller.
func NewContract(caller, addr common.Address, value *uint256.Int, gas uint64) *Contract {
	return &Contract{
		CallerAddress: caller,
		Address:       addr,
		Value:         value,
		Gas:           gas,
	}
}

// SetCallCode installs the code this frame will execute, as resolved by the
// caller (CALLCODE/DELEGATECALL use the callee's code but Address stays the
// caller's storage/balance context).
func (c *Contract) SetCallCode(codeAddr *common.Address, code *Bytecode) {
	c.CodeAddr = codeAddr
	c.code = code
	c.CodeHash = code.Hash()
}

// GetOp returns the opcode at code offset n, or STOP past the end of code.
func (c *Contract) GetOp(n uint64) OpCode {
	if c.code == nil {
		return STOP
	}
	return c.code.GetOp(n)
}

// CodeSize reports the length of the frame's (unpadded) running code.
func (c *Contract) CodeSize() int {
	if c.code == nil {
		return 0
	}
	return c.code.Len()
}

// Code returns the frame's running code bytes.
func (c *Contract) Code() []byte {
	if c.code == nil {
		return nil
	}
	return c.code.Code()
}

// UseGas consumes amount from the frame's remaining gas, reporting false
// (and leaving Gas unchanged) if that would drive it negative.
func (c *Contract) UseGas(amount uint64) bool {
	if c.Gas < amount {
		return false
	}
	c.Gas -= amount
	return true
}

// RefundGas returns unused gas to the frame, used when a nested call or
// create returns early with leftover gas.
func (c *Contract) RefundGas(amount uint64) {
	c.Gas += amount
}

// validJumpdest reports whether dest names a JUMPDEST byte that analysis
// confirmed is not inside PUSH immediate data.
func (c *Contract) validJumpdest(dest *uint256.Int) bool {
	if c.code == nil || !dest.IsUint64() {
		return false
	}
	udest := dest.Uint64()
	return c.code.IsJumpdest(udest)
}
