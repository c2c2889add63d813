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
	"fmt"

	"github.com/probeum/go-probeum/common"
	"github.com/probeum/go-probeum/crypto"
)

// EVMInterpreter walks one contract's bytecode against its fork's jump
// table. Each EVM owns exactly one interpreter, reused across every nested
// call/create frame the transaction creates.
type EVMInterpreter struct {
	evm   *EVM
	table JumpTable

	hasher    crypto.KeccakState // reused across KECCAK256 opcodes in this interpreter's lifetime
	hasherBuf common.Hash

	readOnly   bool   // whether the interpreter is in a STATICCALL-derived read-only frame
	returnData []byte // last call's return data, consulted by RETURNDATACOPY/RETURNDATASIZE
}

// NewEVMInterpreter selects the jump table matching evm's chain rules, from
// newest fork down to Frontier.
func NewEVMInterpreter(evm *EVM) *EVMInterpreter {
	var table JumpTable
	switch {
	case evm.chainRules.IsShanghai:
		table = newShanghaiInstructionSet()
	case evm.chainRules.IsLondon:
		table = newLondonInstructionSet()
	case evm.chainRules.IsBerlin:
		table = newBerlinInstructionSet()
	case evm.chainRules.IsIstanbul:
		table = newIstanbulInstructionSet()
	case evm.chainRules.IsPetersburg:
		table = newPetersburgInstructionSet()
	case evm.chainRules.IsConstantinople:
		table = newConstantinopleInstructionSet()
	case evm.chainRules.IsByzantium:
		table = newByzantiumInstructionSet()
	case evm.chainRules.IsEIP158:
		table = newSpuriousDragonInstructionSet()
	case evm.chainRules.IsEIP150:
		table = newTangerineWhistleInstructionSet()
	case evm.chainRules.IsHomestead:
		table = newHomesteadInstructionSet()
	default:
		table = newFrontierInstructionSet()
	}
	return &EVMInterpreter{evm: evm, table: table}
}

// Run executes contract's code against input and returns its return data.
// It runs until an opcode halts (STOP/RETURN/REVERT/SELFDESTRUCT) or any
// opcode returns a non-nil error; it never recovers a panic.
func (in *EVMInterpreter) Run(contract *Contract, input []byte, readOnly bool) (ret []byte, err error) {
	in.evm.depth++
	defer func() { in.evm.depth-- }()

	// A read-only frame stays read-only for every frame it calls into, even
	// a plain CALL: only the STATICCALL boundary itself may set it.
	if readOnly && !in.readOnly {
		in.readOnly = true
		defer func() { in.readOnly = false }()
	}

	in.returnData = nil

	if len(contract.Code()) == 0 {
		return nil, nil
	}

	var (
		op          OpCode
		mem         = NewMemory()
		stack       = newstack()
		callContext = &ScopeContext{
			Memory:   mem,
			Stack:    stack,
			Contract: contract,
		}
		pc  = uint64(0)
		res []byte
	)
	defer returnStack(stack)

	contract.Input = input

	for {
		op = contract.GetOp(pc)
		operation := in.table[op]
		if operation == nil {
			return nil, fmt.Errorf("%w: %v", ErrOpcodeNotFound, op)
		}
		if sLen := stack.len(); sLen < operation.minStack {
			return nil, fmt.Errorf("%w: have %d, want %d", ErrStackUnderflow, sLen, operation.minStack)
		} else if sLen > operation.maxStack {
			return nil, fmt.Errorf("%w: have %d, limit %d", ErrStackOverflow, sLen, operation.maxStack)
		}
		if contract.Gas < operation.constantGas {
			return nil, ErrOutOfGas
		}
		contract.Gas -= operation.constantGas

		var memorySize uint64
		if operation.dynamicGas != nil {
			if operation.memorySize != nil {
				memSize, overflow := operation.memorySize(stack)
				if overflow {
					return nil, ErrGasUintOverflow
				}
				if memorySize, overflow = safeMul(toWordSize(memSize), 32); overflow {
					return nil, ErrGasUintOverflow
				}
			}
			dynamicCost, dynErr := operation.dynamicGas(in.evm, contract, stack, mem, memorySize)
			if dynErr != nil {
				return nil, fmt.Errorf("%w: %v", ErrOutOfGas, dynErr)
			}
			if contract.Gas < dynamicCost {
				return nil, ErrOutOfGas
			}
			contract.Gas -= dynamicCost

			if memorySize > 0 {
				mem.Resize(memorySize)
			}
		}

		res, err = operation.execute(&pc, in, callContext)
		if err != nil {
			break
		}
		pc++
	}

	if err == errStopToken {
		err = nil
	}
	return res, err
}
