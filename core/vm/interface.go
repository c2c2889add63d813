// Copyright 2017 The go-ethereum Authors
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
	"math/big"

	"github.com/holiman/uint256"

	"github.com/probeum/go-probeum/common"
	"github.com/probeum/go-probeum/core/types"
)

// StateDB is the journaled world-state contract the interpreter talks to.
// Every mutating method must be undoable by a later RevertToSnapshot call
// for the same or an enclosing checkpoint.
type StateDB interface {
	CreateAccount(common.Address)

	SubBalance(common.Address, *big.Int)
	AddBalance(common.Address, *big.Int)
	GetBalance(common.Address) *big.Int

	GetNonce(common.Address) uint64
	SetNonce(common.Address, uint64)

	GetCodeHash(common.Address) common.Hash
	GetCode(common.Address) []byte
	SetCode(common.Address, []byte)
	GetCodeSize(common.Address) int

	AddRefund(uint64)
	SubRefund(uint64)
	GetRefund() uint64

	GetCommittedState(common.Address, common.Hash) common.Hash
	GetState(common.Address, common.Hash) common.Hash
	SetState(common.Address, common.Hash, common.Hash)

	GetTransientState(common.Address, common.Hash) common.Hash
	SetTransientState(common.Address, common.Hash, common.Hash)

	SelfDestruct(common.Address)
	HasSelfDestructed(common.Address) bool

	// Selfdestruct6780 is EIP-6780's restricted variant: it only actually
	// destroys the account (rather than just scheduling a balance wipe) if
	// the account was also created earlier in the same transaction.
	Selfdestruct6780(common.Address)

	// MarkCreatedThisTx records that addr's code was just deployed by a
	// CREATE/CREATE2 in the currently-executing transaction, the bit
	// Selfdestruct6780 checks.
	MarkCreatedThisTx(common.Address)

	Exist(common.Address) bool
	Empty(common.Address) bool

	AddressInAccessList(addr common.Address) bool
	SlotInAccessList(addr common.Address, slot common.Hash) (addressOk bool, slotOk bool)
	// AddAddressToAccessList adds the given address to the access list and
	// reports whether it was already there (i.e. whether the access is warm).
	AddAddressToAccessList(addr common.Address) (addrWasWarm bool)
	AddSlotToAccessList(addr common.Address, slot common.Hash) (addrWasWarm bool, slotWasWarm bool)

	RevertToSnapshot(int)
	Snapshot() int

	AddLog(*types.Log)
	AddPreimage(common.Hash, []byte)
}

// BlockContext carries block-scoped data the EVM needs but that a call
// frame never mutates: coinbase/time/number/gas limit/base fee and the
// CanTransfer/Transfer/GetHash collaborators.
type BlockContext struct {
	CanTransfer func(StateDB, common.Address, *big.Int) bool
	Transfer    func(StateDB, common.Address, common.Address, *big.Int)
	GetHash     func(uint64) common.Hash

	Coinbase    common.Address
	GasLimit    uint64
	BlockNumber *big.Int
	Time        uint64
	Difficulty  *big.Int
	BaseFee     *big.Int
	Random      *common.Hash
}

// TxContext carries transaction-scoped data: origin and gas price, needed
// by ORIGIN/GASPRICE and EIP-2929's tx-start access list warming.
type TxContext struct {
	Origin     common.Address
	GasPrice   *big.Int
	AccessList types.AccessList
	BlobHashes []common.Hash
}

// PrecompiledContract is a native, gas-metered function addressable at a
// reserved low address instead of running as interpreted bytecode.
type PrecompiledContract interface {
	RequiredGas(input []byte) uint64
	Run(input []byte) ([]byte, error)
}

// Database is the read-only view of chain state the EVM's block context
// methods are backed by (block hash lookups); distinct from StateDB, which
// is the mutable, journaled account/storage view a frame actually reads
// and writes through.
type Database interface {
	GetHeaderHash(number uint64) common.Hash
}

// EVMLogger is the inspector hook surface: implementations observe, but
// must never alter, interpreter execution. Neither the interpreter nor the
// EVM in this package calls any of these hooks.
type EVMLogger interface {
	CaptureTxStart(gasLimit uint64)
	CaptureTxEnd(restGas uint64)
	CaptureStart(env *EVM, from common.Address, to common.Address, create bool, input []byte, gas uint64, value *big.Int)
	CaptureEnd(output []byte, gasUsed uint64, err error)
	CaptureState(pc uint64, op OpCode, gas, cost uint64, scope *ScopeContext, rData []byte, depth int, err error)
	CaptureFault(pc uint64, op OpCode, gas, cost uint64, scope *ScopeContext, depth int, err error)
	CaptureEnter(typ OpCode, from common.Address, to common.Address, input []byte, gas uint64, value *big.Int)
	CaptureExit(output []byte, gasUsed uint64, err error)
	CaptureKeccakPreimage(hash common.Hash, data []byte)
}

// ScopeContext groups the pieces of frame state an EVMLogger is allowed to
// read while an opcode runs.
type ScopeContext struct {
	Memory   *Memory
	Stack    *Stack
	Contract *Contract
}

func (ctx *ScopeContext) MemoryData() []byte        { return ctx.Memory.Data() }
func (ctx *ScopeContext) StackData() []uint256.Int   { return ctx.Stack.Data() }
func (ctx *ScopeContext) Caller() common.Address     { return ctx.Contract.CallerAddress }
func (ctx *ScopeContext) Address() common.Address    { return ctx.Contract.Address }
func (ctx *ScopeContext) CallValue() *uint256.Int     { return ctx.Contract.Value }
func (ctx *ScopeContext) CallInput() []byte           { return ctx.Contract.Input }
