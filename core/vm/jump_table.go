// Copyright 2016 The go-ethereum Authors
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

	"github.com/probeum/go-probeum/params"
)

// Step gas costs from the yellow paper's fee schedule; named the way the
// constant-gas column of every opcode table in the ecosystem names them.
const (
	GasQuickStep   uint64 = 2
	GasFastestStep uint64 = 3
	GasFastStep    uint64 = 5
	GasMidStep     uint64 = 8
	GasSlowStep    uint64 = 10
	GasExtStep     uint64 = 20
	GasZero        uint64 = 0
)

// executionFunc runs one opcode: it may read/write scope.Stack and
// scope.Memory, and returns the frame's return data on a halting opcode.
type executionFunc func(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error)

// gasFunc computes one opcode's dynamic (beyond constantGas) cost.
type gasFunc func(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error)

// memorySizeFunc returns the number of bytes of memory an opcode's operands
// require, before gas for any expansion is charged.
type memorySizeFunc func(stack *Stack) (uint64, bool)

// operation is one opcode's complete dispatch entry.
type operation struct {
	execute     executionFunc
	constantGas uint64
	dynamicGas  gasFunc
	minStack    int
	maxStack    int
	memorySize  memorySizeFunc
}

// JumpTable maps every opcode byte to its operation, or nil if undefined
// under the active fork rules.
type JumpTable [256]*operation

func minStack(pops, push int) int { return pops }
func maxStack(pops, push int) int { return stackLimit + pops - push }

var (
	word32 = uint256.NewInt(32)
	word1  = uint256.NewInt(1)
)

func memoryMload(stack *Stack) (uint64, bool)   { return calcMemSize64(stack.Back(0), word32) }
func memoryMstore(stack *Stack) (uint64, bool)  { return calcMemSize64(stack.Back(0), word32) }
func memoryMstore8(stack *Stack) (uint64, bool) { return calcMemSize64(stack.Back(0), word1) }
func memoryReturn(stack *Stack) (uint64, bool)   { return calcMemSize64(stack.Back(0), stack.Back(1)) }
func memoryRevert(stack *Stack) (uint64, bool)   { return calcMemSize64(stack.Back(0), stack.Back(1)) }
func memoryKeccak256(stack *Stack) (uint64, bool) {
	return calcMemSize64(stack.Back(0), stack.Back(1))
}
func memoryCallDataCopy(stack *Stack) (uint64, bool) {
	return calcMemSize64(stack.Back(0), stack.Back(2))
}
func memoryCodeCopy(stack *Stack) (uint64, bool) { return calcMemSize64(stack.Back(0), stack.Back(2)) }
func memoryExtCodeCopy(stack *Stack) (uint64, bool) {
	return calcMemSize64(stack.Back(1), stack.Back(3))
}
func memoryReturnDataCopy(stack *Stack) (uint64, bool) {
	return calcMemSize64(stack.Back(0), stack.Back(2))
}
func memoryLog(stack *Stack) (uint64, bool) { return calcMemSize64(stack.Back(0), stack.Back(1)) }
func memoryCreate(stack *Stack) (uint64, bool) {
	return calcMemSize64(stack.Back(1), stack.Back(2))
}
func memoryCreate2(stack *Stack) (uint64, bool) {
	return calcMemSize64(stack.Back(1), stack.Back(2))
}

// memoryCall covers CALL/CALLCODE: args region and return region, whichever
// reaches further.
func memoryCall(stack *Stack) (uint64, bool) {
	a, aOv := calcMemSize64(stack.Back(3), stack.Back(4))
	b, bOv := calcMemSize64(stack.Back(5), stack.Back(6))
	if aOv || bOv {
		return 0, true
	}
	if a > b {
		return a, false
	}
	return b, false
}

// memoryDelegateStaticCall covers DELEGATECALL/STATICCALL, whose stack has
// no value operand.
func memoryDelegateStaticCall(stack *Stack) (uint64, bool) {
	a, aOv := calcMemSize64(stack.Back(2), stack.Back(3))
	b, bOv := calcMemSize64(stack.Back(4), stack.Back(5))
	if aOv || bOv {
		return 0, true
	}
	if a > b {
		return a, false
	}
	return b, false
}

func newFrontierInstructionSet() JumpTable {
	var tbl JumpTable

	tbl[STOP] = &operation{execute: opStop, constantGas: GasZero, minStack: minStack(0, 0), maxStack: maxStack(0, 0)}
	tbl[ADD] = &operation{execute: opAdd, constantGas: GasFastestStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[MUL] = &operation{execute: opMul, constantGas: GasFastStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[SUB] = &operation{execute: opSub, constantGas: GasFastestStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[DIV] = &operation{execute: opDiv, constantGas: GasFastStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[SDIV] = &operation{execute: opSdiv, constantGas: GasFastStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[MOD] = &operation{execute: opMod, constantGas: GasFastStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[SMOD] = &operation{execute: opSmod, constantGas: GasFastStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[ADDMOD] = &operation{execute: opAddmod, constantGas: GasMidStep, minStack: minStack(3, 1), maxStack: maxStack(3, 1)}
	tbl[MULMOD] = &operation{execute: opMulmod, constantGas: GasMidStep, minStack: minStack(3, 1), maxStack: maxStack(3, 1)}
	tbl[EXP] = &operation{execute: opExp, constantGas: GasSlowStep, dynamicGas: gasExp, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[SIGNEXTEND] = &operation{execute: opSignExtend, constantGas: GasFastStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}

	tbl[LT] = &operation{execute: opLt, constantGas: GasFastestStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[GT] = &operation{execute: opGt, constantGas: GasFastestStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[SLT] = &operation{execute: opSlt, constantGas: GasFastestStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[SGT] = &operation{execute: opSgt, constantGas: GasFastestStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[EQ] = &operation{execute: opEq, constantGas: GasFastestStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[ISZERO] = &operation{execute: opIszero, constantGas: GasFastestStep, minStack: minStack(1, 1), maxStack: maxStack(1, 1)}
	tbl[AND] = &operation{execute: opAnd, constantGas: GasFastestStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[OR] = &operation{execute: opOr, constantGas: GasFastestStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[XOR] = &operation{execute: opXor, constantGas: GasFastestStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[NOT] = &operation{execute: opNot, constantGas: GasFastestStep, minStack: minStack(1, 1), maxStack: maxStack(1, 1)}
	tbl[BYTE] = &operation{execute: opByte, constantGas: GasFastestStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}

	tbl[KECCAK256] = &operation{execute: opKeccak256, constantGas: 30, dynamicGas: gasKeccak256, minStack: minStack(2, 1), maxStack: maxStack(2, 1), memorySize: memoryKeccak256}

	tbl[ADDRESS] = &operation{execute: opAddress, constantGas: GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[BALANCE] = &operation{execute: opBalance, constantGas: 20, minStack: minStack(1, 1), maxStack: maxStack(1, 1)}
	tbl[ORIGIN] = &operation{execute: opOrigin, constantGas: GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[CALLER] = &operation{execute: opCaller, constantGas: GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[CALLVALUE] = &operation{execute: opCallValue, constantGas: GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[CALLDATALOAD] = &operation{execute: opCallDataLoad, constantGas: GasFastestStep, minStack: minStack(1, 1), maxStack: maxStack(1, 1)}
	tbl[CALLDATASIZE] = &operation{execute: opCallDataSize, constantGas: GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[CALLDATACOPY] = &operation{execute: opCallDataCopy, constantGas: GasFastestStep, dynamicGas: gasCallDataCopy, minStack: minStack(3, 0), maxStack: maxStack(3, 0), memorySize: memoryCallDataCopy}
	tbl[CODESIZE] = &operation{execute: opCodeSize, constantGas: GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[CODECOPY] = &operation{execute: opCodeCopy, constantGas: GasFastestStep, dynamicGas: gasCodeCopy, minStack: minStack(3, 0), maxStack: maxStack(3, 0), memorySize: memoryCodeCopy}
	tbl[GASPRICE] = &operation{execute: opGasprice, constantGas: GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[EXTCODESIZE] = &operation{execute: opExtCodeSize, constantGas: 20, minStack: minStack(1, 1), maxStack: maxStack(1, 1)}
	tbl[EXTCODECOPY] = &operation{execute: opExtCodeCopy, constantGas: 20, dynamicGas: gasExtCodeCopy, minStack: minStack(4, 0), maxStack: maxStack(4, 0), memorySize: memoryExtCodeCopy}

	tbl[BLOCKHASH] = &operation{execute: opBlockhash, constantGas: GasExtStep, minStack: minStack(1, 1), maxStack: maxStack(1, 1)}
	tbl[COINBASE] = &operation{execute: opCoinbase, constantGas: GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[TIMESTAMP] = &operation{execute: opTimestamp, constantGas: GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[NUMBER] = &operation{execute: opNumber, constantGas: GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[PREVRANDAO] = &operation{execute: opDifficulty, constantGas: GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[GASLIMIT] = &operation{execute: opGasLimit, constantGas: GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}

	tbl[POP] = &operation{execute: opPop, constantGas: 2, minStack: minStack(1, 0), maxStack: maxStack(1, 0)}
	tbl[MLOAD] = &operation{execute: opMload, constantGas: GasFastestStep, dynamicGas: gasPureMemory, minStack: minStack(1, 1), maxStack: maxStack(1, 1), memorySize: memoryMload}
	tbl[MSTORE] = &operation{execute: opMstore, constantGas: GasFastestStep, dynamicGas: gasPureMemory, minStack: minStack(2, 0), maxStack: maxStack(2, 0), memorySize: memoryMstore}
	tbl[MSTORE8] = &operation{execute: opMstore8, constantGas: GasFastestStep, dynamicGas: gasPureMemory, minStack: minStack(2, 0), maxStack: maxStack(2, 0), memorySize: memoryMstore8}
	tbl[SLOAD] = &operation{execute: opSload, constantGas: 50, minStack: minStack(1, 1), maxStack: maxStack(1, 1)}
	tbl[SSTORE] = &operation{execute: opSstore, dynamicGas: gasSStore, minStack: minStack(2, 0), maxStack: maxStack(2, 0)}
	tbl[JUMP] = &operation{execute: opJump, constantGas: 8, minStack: minStack(1, 0), maxStack: maxStack(1, 0)}
	tbl[JUMPI] = &operation{execute: opJumpi, constantGas: 10, minStack: minStack(2, 0), maxStack: maxStack(2, 0)}
	tbl[PC] = &operation{execute: opPc, constantGas: GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[MSIZE] = &operation{execute: opMsize, constantGas: GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[GAS] = &operation{execute: opGas, constantGas: GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[JUMPDEST] = &operation{execute: opJumpdest, constantGas: 1, minStack: minStack(0, 0), maxStack: maxStack(0, 0)}

	for i := 1; i <= 32; i++ {
		tbl[PUSH1+OpCode(i-1)] = &operation{execute: makePush(uint64(i)), constantGas: GasFastestStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	}
	for i := 1; i <= 16; i++ {
		tbl[DUP1+OpCode(i-1)] = &operation{execute: makeDup(i), constantGas: GasFastestStep, minStack: minStack(i, i+1), maxStack: maxStack(i, i+1)}
		tbl[SWAP1+OpCode(i-1)] = &operation{execute: makeSwap(i), constantGas: GasFastestStep, minStack: minStack(i+1, i+1), maxStack: maxStack(i+1, i+1)}
	}
	for i := 0; i <= 4; i++ {
		n := i
		tbl[LOG0+OpCode(i)] = &operation{execute: makeLog(n), dynamicGas: makeGasLog(uint64(n)), minStack: minStack(2+n, 0), maxStack: maxStack(2+n, 0), memorySize: memoryLog}
	}

	tbl[CREATE] = &operation{execute: opCreate, constantGas: 32000, dynamicGas: gasCreate, minStack: minStack(3, 1), maxStack: maxStack(3, 1), memorySize: memoryCreate}
	tbl[CALL] = &operation{execute: opCall, constantGas: 40, dynamicGas: gasCall, minStack: minStack(7, 1), maxStack: maxStack(7, 1), memorySize: memoryCall}
	tbl[CALLCODE] = &operation{execute: opCallCode, constantGas: 40, dynamicGas: gasCallCode, minStack: minStack(7, 1), maxStack: maxStack(7, 1), memorySize: memoryCall}
	tbl[RETURN] = &operation{execute: opReturn, dynamicGas: gasPureMemory, minStack: minStack(2, 0), maxStack: maxStack(2, 0), memorySize: memoryReturn}
	tbl[SELFDESTRUCT] = &operation{execute: opSelfdestruct, constantGas: 0, minStack: minStack(1, 0), maxStack: maxStack(1, 0)}
	tbl[INVALID] = &operation{execute: opInvalid, minStack: minStack(0, 0), maxStack: maxStack(0, 0)}

	return tbl
}

func newHomesteadInstructionSet() JumpTable {
	tbl := newFrontierInstructionSet()
	tbl[DELEGATECALL] = &operation{execute: opDelegateCall, constantGas: 40, dynamicGas: gasDelegateCall, minStack: minStack(6, 1), maxStack: maxStack(6, 1), memorySize: memoryDelegateStaticCall}
	return tbl
}

func newTangerineWhistleInstructionSet() JumpTable {
	tbl := newHomesteadInstructionSet()
	tbl[BALANCE].constantGas = 400
	tbl[EXTCODESIZE].constantGas = 700
	tbl[EXTCODECOPY].constantGas = 700
	tbl[SLOAD].constantGas = 200
	tbl[CALL].constantGas = 700
	tbl[CALLCODE].constantGas = 700
	tbl[DELEGATECALL].constantGas = 700
	tbl[SELFDESTRUCT].dynamicGas = gasSelfdestruct
	return tbl
}

func newSpuriousDragonInstructionSet() JumpTable {
	tbl := newTangerineWhistleInstructionSet()
	tbl[EXP].dynamicGas = gasExpEIP158
	return tbl
}

func newByzantiumInstructionSet() JumpTable {
	tbl := newSpuriousDragonInstructionSet()
	tbl[REVERT] = &operation{execute: opRevert, dynamicGas: gasPureMemory, minStack: minStack(2, 0), maxStack: maxStack(2, 0), memorySize: memoryRevert}
	tbl[RETURNDATASIZE] = &operation{execute: opReturnDataSize, constantGas: GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[RETURNDATACOPY] = &operation{execute: opReturnDataCopy, constantGas: GasFastestStep, dynamicGas: gasReturnDataCopy, minStack: minStack(3, 0), maxStack: maxStack(3, 0), memorySize: memoryReturnDataCopy}
	tbl[STATICCALL] = &operation{execute: opStaticCall, constantGas: 700, dynamicGas: gasStaticCall, minStack: minStack(6, 1), maxStack: maxStack(6, 1), memorySize: memoryDelegateStaticCall}
	return tbl
}

func newConstantinopleInstructionSet() JumpTable {
	tbl := newByzantiumInstructionSet()
	tbl[SHL] = &operation{execute: opShl, constantGas: GasFastestStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[SHR] = &operation{execute: opShr, constantGas: GasFastestStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[SAR] = &operation{execute: opSar, constantGas: GasFastestStep, minStack: minStack(2, 1), maxStack: maxStack(2, 1)}
	tbl[EXTCODEHASH] = &operation{execute: opExtCodeHash, constantGas: 400, minStack: minStack(1, 1), maxStack: maxStack(1, 1)}
	tbl[CREATE2] = &operation{execute: opCreate2, constantGas: 32000, dynamicGas: gasCreate2, minStack: minStack(4, 1), maxStack: maxStack(4, 1), memorySize: memoryCreate2}
	return tbl
}

// newPetersburgInstructionSet removes EIP-1283 (net-metered SSTORE) while
// keeping the rest of Constantinople, per the Constantinople-then-Petersburg
// fork history; since this implementation only ever wires the EIP-2200+
// SSTORE gas function in from Istanbul onward, that removal is a no-op here
// and this fork's table is identical to Constantinople's.
func newPetersburgInstructionSet() JumpTable {
	return newConstantinopleInstructionSet()
}

func newIstanbulInstructionSet() JumpTable {
	tbl := newPetersburgInstructionSet()
	tbl[CHAINID] = &operation{execute: opChainID, constantGas: GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[SELFBALANCE] = &operation{execute: opSelfBalance, constantGas: GasFastStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[BALANCE].constantGas = 700
	tbl[EXTCODEHASH].constantGas = 700
	tbl[SLOAD].constantGas = 800
	tbl[SSTORE].dynamicGas = gasSStoreEIP2200
	return tbl
}

func newBerlinInstructionSet() JumpTable {
	tbl := newIstanbulInstructionSet()
	tbl[SSTORE].dynamicGas = gasSStoreEIP2929

	tbl[SLOAD].constantGas = 0
	tbl[SLOAD].dynamicGas = gasSLoadEIP2929

	tbl[EXTCODECOPY].constantGas = params.WarmStorageReadCostEIP2929
	tbl[EXTCODECOPY].dynamicGas = gasExtCodeCopyEIP2929

	tbl[EXTCODESIZE].constantGas = params.WarmStorageReadCostEIP2929
	tbl[EXTCODESIZE].dynamicGas = gasEip2929AccountCheck

	tbl[EXTCODEHASH].constantGas = params.WarmStorageReadCostEIP2929
	tbl[EXTCODEHASH].dynamicGas = gasEip2929AccountCheck

	tbl[BALANCE].constantGas = params.WarmStorageReadCostEIP2929
	tbl[BALANCE].dynamicGas = gasEip2929AccountCheck

	tbl[CALL].constantGas = params.WarmStorageReadCostEIP2929
	tbl[CALL].dynamicGas = gasCallEIP2929

	tbl[CALLCODE].constantGas = params.WarmStorageReadCostEIP2929
	tbl[CALLCODE].dynamicGas = gasCallCodeEIP2929

	tbl[STATICCALL].constantGas = params.WarmStorageReadCostEIP2929
	tbl[STATICCALL].dynamicGas = gasStaticCallEIP2929

	tbl[DELEGATECALL].constantGas = params.WarmStorageReadCostEIP2929
	tbl[DELEGATECALL].dynamicGas = gasDelegateCallEIP2929

	tbl[SELFDESTRUCT].dynamicGas = gasSelfdestructEIP2929
	return tbl
}

func newLondonInstructionSet() JumpTable {
	tbl := newBerlinInstructionSet()
	tbl[BASEFEE] = &operation{execute: opBaseFee, constantGas: GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[SSTORE].dynamicGas = gasSStoreEIP3529
	tbl[SELFDESTRUCT].dynamicGas = gasSelfdestructEIP3529
	return tbl
}

func newShanghaiInstructionSet() JumpTable {
	tbl := newLondonInstructionSet()
	tbl[PUSH0] = &operation{execute: opPush0, constantGas: GasQuickStep, minStack: minStack(0, 1), maxStack: maxStack(0, 1)}
	tbl[CREATE].dynamicGas = gasCreateEip3860
	tbl[CREATE2].dynamicGas = gasCreate2Eip3860
	return tbl
}

