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
	"errors"
	"fmt"

	"github.com/probeum/go-probeum/common"
	"github.com/probeum/go-probeum/params"
)

func safeAdd(a, b uint64) (uint64, bool) {
	c := a + b
	return c, c < a
}

func safeMul(a, b uint64) (uint64, bool) {
	if a == 0 || b == 0 {
		return 0, false
	}
	c := a * b
	return c, c/a != b
}

// gasPureMemory charges only for memory expansion: MLOAD/MSTORE/MSTORE8,
// RETURN/REVERT and CREATE all have no additional per-byte cost.
func gasPureMemory(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	return memoryGasCost(mem, memorySize)
}

var gasCreate = gasPureMemory

func memoryCopierGas(stackpos int) gasFunc {
	return func(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
		gas, err := memoryGasCost(mem, memorySize)
		if err != nil {
			return 0, err
		}
		words, overflow := stack.Back(stackpos).Uint64WithOverflow()
		if overflow {
			return 0, ErrGasUintOverflow
		}
		var wordGas uint64
		if wordGas, overflow = safeMul(toWordSize(words), params.CopyGas); overflow {
			return 0, ErrGasUintOverflow
		}
		if gas, overflow = safeAdd(gas, wordGas); overflow {
			return 0, ErrGasUintOverflow
		}
		return gas, nil
	}
}

var (
	gasCallDataCopy   = memoryCopierGas(2)
	gasCodeCopy       = memoryCopierGas(2)
	gasExtCodeCopy    = memoryCopierGas(3)
	gasReturnDataCopy = memoryCopierGas(2)
)

// gasSStore is the legacy, pre-Constantinople SSTORE pricing: a flat fee
// depending only on the current-to-new state transition, never on the
// slot's value at the start of the transaction.
func gasSStore(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	var (
		y, x    = stack.Back(1), stack.Back(0)
		current = evm.StateDB.GetState(contract.Address, x.Bytes32())
	)
	value := common.Hash(y.Bytes32())
	switch {
	case current == (common.Hash{}) && value != (common.Hash{}):
		return params.SstoreSetGasEIP2200, nil
	case current != (common.Hash{}) && value == (common.Hash{}):
		evm.StateDB.AddRefund(params.SstoreClearsScheduleRefundEIP2200)
		return params.WarmStorageReadCostEIP2929, nil
	default:
		return params.SstoreResetGasEIP2200, nil
	}
}

// gasSStoreEIP2200 implements EIP-2200's net-gas metering: cost depends on
// the slot's original (tx-start), current, and new value.
func gasSStoreEIP2200(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	if contract.Gas <= params.SstoreSentryGasEIP2200 {
		return 0, errors.New("not enough gas for reentrancy sentry")
	}
	var (
		y, x    = stack.Back(1), stack.Back(0)
		slot    = common.Hash(x.Bytes32())
		current = evm.StateDB.GetState(contract.Address, slot)
	)
	value := common.Hash(y.Bytes32())
	if current == value {
		return params.WarmStorageReadCostEIP2929, nil
	}
	original := evm.StateDB.GetCommittedState(contract.Address, slot)
	if original == current {
		if original == (common.Hash{}) {
			return params.SstoreSetGasEIP2200, nil
		}
		if value == (common.Hash{}) {
			evm.StateDB.AddRefund(params.SstoreClearsScheduleRefundEIP2200)
		}
		return params.SstoreResetGasEIP2200, nil
	}
	if original != (common.Hash{}) {
		if current == (common.Hash{}) {
			evm.StateDB.SubRefund(params.SstoreClearsScheduleRefundEIP2200)
		} else if value == (common.Hash{}) {
			evm.StateDB.AddRefund(params.SstoreClearsScheduleRefundEIP2200)
		}
	}
	if original == value {
		if original == (common.Hash{}) {
			evm.StateDB.AddRefund(params.SstoreSetGasEIP2200 - params.WarmStorageReadCostEIP2929)
		} else {
			evm.StateDB.AddRefund(params.SstoreResetGasEIP2200 - params.WarmStorageReadCostEIP2929)
		}
	}
	return params.WarmStorageReadCostEIP2929, nil
}

// makeGasSStoreFunc adapts gasSStoreEIP2200 to EIP-2929's cold/warm slot
// surcharge, parameterized on the clearing refund so EIP-3529 (Berlin vs
// London) can share it.
func makeGasSStoreFunc(clearingRefund uint64) gasFunc {
	return func(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
		if contract.Gas <= params.SstoreSentryGasEIP2200 {
			return 0, errors.New("not enough gas for reentrancy sentry")
		}
		var (
			y, x    = stack.Back(1), stack.Back(0)
			slot    = common.Hash(x.Bytes32())
			current = evm.StateDB.GetState(contract.Address, slot)
			cost    = uint64(0)
		)
		if _, slotPresent := evm.StateDB.SlotInAccessList(contract.Address, slot); !slotPresent {
			cost = params.ColdSloadCostEIP2929
			evm.StateDB.AddSlotToAccessList(contract.Address, slot)
		}
		value := common.Hash(y.Bytes32())
		if current == value {
			return cost + params.WarmStorageReadCostEIP2929, nil
		}
		original := evm.StateDB.GetCommittedState(contract.Address, slot)
		if original == current {
			if original == (common.Hash{}) {
				return cost + params.SstoreSetGasEIP2200, nil
			}
			if value == (common.Hash{}) {
				evm.StateDB.AddRefund(clearingRefund)
			}
			return cost + (params.SstoreResetGasEIP2200 - params.ColdSloadCostEIP2929), nil
		}
		if original != (common.Hash{}) {
			if current == (common.Hash{}) {
				evm.StateDB.SubRefund(clearingRefund)
			} else if value == (common.Hash{}) {
				evm.StateDB.AddRefund(clearingRefund)
			}
		}
		if original == value {
			if original == (common.Hash{}) {
				evm.StateDB.AddRefund(params.SstoreSetGasEIP2200 - params.WarmStorageReadCostEIP2929)
			} else {
				evm.StateDB.AddRefund((params.SstoreResetGasEIP2200 - params.ColdSloadCostEIP2929) - params.WarmStorageReadCostEIP2929)
			}
		}
		return cost + params.WarmStorageReadCostEIP2929, nil
	}
}

var (
	gasSStoreEIP2929 = makeGasSStoreFunc(params.SstoreClearsScheduleRefundEIP2200)
	gasSStoreEIP3529 = makeGasSStoreFunc(params.SstoreClearsScheduleRefundEIP3529)
)

// gasSLoadEIP2929 charges the cold/warm slot-access surcharge for SLOAD.
func gasSLoadEIP2929(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	slot := common.Hash(stack.peek().Bytes32())
	if _, slotPresent := evm.StateDB.SlotInAccessList(contract.Address, slot); !slotPresent {
		evm.StateDB.AddSlotToAccessList(contract.Address, slot)
		return params.ColdSloadCostEIP2929, nil
	}
	return params.WarmStorageReadCostEIP2929, nil
}

// gasExtCodeCopyEIP2929 adds EXTCODECOPY's cold/warm address surcharge on
// top of its pre-2929 memory-expansion-plus-copy cost.
func gasExtCodeCopyEIP2929(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas, err := gasExtCodeCopy(evm, contract, stack, mem, memorySize)
	if err != nil {
		return 0, err
	}
	addr := common.Address(stack.peek().Bytes20())
	if !evm.StateDB.AddressInAccessList(addr) {
		evm.StateDB.AddAddressToAccessList(addr)
		var overflow bool
		if gas, overflow = safeAdd(gas, params.ColdAccountAccessCostEIP2929-params.WarmStorageReadCostEIP2929); overflow {
			return 0, ErrGasUintOverflow
		}
	}
	return gas, nil
}

// gasEip2929AccountCheck backs EXTCODESIZE, EXTCODEHASH and BALANCE: the
// warm cost is already the opcode's constantGas, so this returns only the
// cold/warm delta.
func gasEip2929AccountCheck(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	addr := common.Address(stack.peek().Bytes20())
	if !evm.StateDB.AddressInAccessList(addr) {
		evm.StateDB.AddAddressToAccessList(addr)
		return params.ColdAccountAccessCostEIP2929 - params.WarmStorageReadCostEIP2929, nil
	}
	return 0, nil
}

func makeGasLog(n uint64) gasFunc {
	return func(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
		requestedSize, overflow := stack.Back(1).Uint64WithOverflow()
		if overflow {
			return 0, ErrGasUintOverflow
		}
		gas, err := memoryGasCost(mem, memorySize)
		if err != nil {
			return 0, err
		}
		if gas, overflow = safeAdd(gas, params.LogGas); overflow {
			return 0, ErrGasUintOverflow
		}
		if gas, overflow = safeAdd(gas, n*params.LogTopicGas); overflow {
			return 0, ErrGasUintOverflow
		}
		var dataGas uint64
		if dataGas, overflow = safeMul(requestedSize, params.LogDataGas); overflow {
			return 0, ErrGasUintOverflow
		}
		if gas, overflow = safeAdd(gas, dataGas); overflow {
			return 0, ErrGasUintOverflow
		}
		return gas, nil
	}
}

func gasKeccak256(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas, err := memoryGasCost(mem, memorySize)
	if err != nil {
		return 0, err
	}
	words, overflow := stack.Back(1).Uint64WithOverflow()
	if overflow {
		return 0, ErrGasUintOverflow
	}
	var wordGas uint64
	if wordGas, overflow = safeMul(toWordSize(words), params.Sha3WordGas); overflow {
		return 0, ErrGasUintOverflow
	}
	if gas, overflow = safeAdd(gas, wordGas); overflow {
		return 0, ErrGasUintOverflow
	}
	return gas, nil
}

func gasCreate2(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas, err := memoryGasCost(mem, memorySize)
	if err != nil {
		return 0, err
	}
	words, overflow := stack.Back(2).Uint64WithOverflow()
	if overflow {
		return 0, ErrGasUintOverflow
	}
	var wordGas uint64
	if wordGas, overflow = safeMul(toWordSize(words), params.Keccak256WordGas); overflow {
		return 0, ErrGasUintOverflow
	}
	if gas, overflow = safeAdd(gas, wordGas); overflow {
		return 0, ErrGasUintOverflow
	}
	return gas, nil
}

// gasCreateEip3860 and gasCreate2Eip3860 add EIP-3860's per-word initcode
// metering on top of CREATE/CREATE2's existing dynamic cost, and reject
// initcode over the EIP-3860 size cap outright.
func gasCreateEip3860(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas, err := gasCreate(evm, contract, stack, mem, memorySize)
	if err != nil {
		return 0, err
	}
	size, overflow := stack.Back(2).Uint64WithOverflow()
	if overflow {
		return 0, ErrGasUintOverflow
	}
	if size > params.MaxInitCodeSize {
		return 0, fmt.Errorf("%w: size %d", ErrMaxInitCodeSizeExceeded, size)
	}
	moreGas := params.InitCodeWordGas * ((size + 31) / 32)
	if gas, overflow = safeAdd(gas, moreGas); overflow {
		return 0, ErrGasUintOverflow
	}
	return gas, nil
}

func gasCreate2Eip3860(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas, err := gasCreate2(evm, contract, stack, mem, memorySize)
	if err != nil {
		return 0, err
	}
	size, overflow := stack.Back(2).Uint64WithOverflow()
	if overflow {
		return 0, ErrGasUintOverflow
	}
	if size > params.MaxInitCodeSize {
		return 0, fmt.Errorf("%w: size %d", ErrMaxInitCodeSizeExceeded, size)
	}
	moreGas := params.InitCodeWordGas * ((size + 31) / 32)
	if gas, overflow = safeAdd(gas, moreGas); overflow {
		return 0, ErrGasUintOverflow
	}
	return gas, nil
}

func gasExp(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	expByteLen := uint64((stack.data[stack.len()-2].BitLen() + 7) / 8)
	gas := expByteLen * 10 // Frontier's G_expbyte, superseded at Spurious Dragon
	gas, overflow := safeAdd(gas, params.ExpGas)
	if overflow {
		return 0, ErrGasUintOverflow
	}
	return gas, nil
}

func gasExpEIP158(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	expByteLen := uint64((stack.data[stack.len()-2].BitLen() + 7) / 8)
	gas, overflow := safeMul(expByteLen, params.ExpByte)
	if overflow {
		return 0, ErrGasUintOverflow
	}
	if gas, overflow = safeAdd(gas, params.ExpGas); overflow {
		return 0, ErrGasUintOverflow
	}
	return gas, nil
}

func gasCall(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	var (
		gas            uint64
		transfersValue = !stack.Back(2).IsZero()
		address        = common.Address(stack.Back(1).Bytes20())
	)
	if evm.chainRules.IsEIP158 {
		if transfersValue && evm.StateDB.Empty(address) {
			gas += params.CallNewAccountGas
		}
	} else if !evm.StateDB.Exist(address) {
		gas += params.CallNewAccountGas
	}
	if transfersValue {
		gas += params.CallValueTransferGas
	}
	memoryGas, err := memoryGasCost(mem, memorySize)
	if err != nil {
		return 0, err
	}
	var overflow bool
	if gas, overflow = safeAdd(gas, memoryGas); overflow {
		return 0, ErrGasUintOverflow
	}
	evm.callGasTemp, err = callGas(evm.chainRules.IsEIP150, contract.Gas, gas, stack.Back(0))
	if err != nil {
		return 0, err
	}
	if gas, overflow = safeAdd(gas, evm.callGasTemp); overflow {
		return 0, ErrGasUintOverflow
	}
	return gas, nil
}

func gasCallCode(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	memoryGas, err := memoryGasCost(mem, memorySize)
	if err != nil {
		return 0, err
	}
	var (
		gas      uint64
		overflow bool
	)
	if !stack.Back(2).IsZero() {
		gas += params.CallValueTransferGas
	}
	if gas, overflow = safeAdd(gas, memoryGas); overflow {
		return 0, ErrGasUintOverflow
	}
	evm.callGasTemp, err = callGas(evm.chainRules.IsEIP150, contract.Gas, gas, stack.Back(0))
	if err != nil {
		return 0, err
	}
	if gas, overflow = safeAdd(gas, evm.callGasTemp); overflow {
		return 0, ErrGasUintOverflow
	}
	return gas, nil
}

func gasDelegateCall(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas, err := memoryGasCost(mem, memorySize)
	if err != nil {
		return 0, err
	}
	evm.callGasTemp, err = callGas(evm.chainRules.IsEIP150, contract.Gas, gas, stack.Back(0))
	if err != nil {
		return 0, err
	}
	var overflow bool
	if gas, overflow = safeAdd(gas, evm.callGasTemp); overflow {
		return 0, ErrGasUintOverflow
	}
	return gas, nil
}

func gasStaticCall(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	gas, err := memoryGasCost(mem, memorySize)
	if err != nil {
		return 0, err
	}
	evm.callGasTemp, err = callGas(evm.chainRules.IsEIP150, contract.Gas, gas, stack.Back(0))
	if err != nil {
		return 0, err
	}
	var overflow bool
	if gas, overflow = safeAdd(gas, evm.callGasTemp); overflow {
		return 0, ErrGasUintOverflow
	}
	return gas, nil
}

func makeCallVariantGasEIP2929(oldCalculator gasFunc) gasFunc {
	return func(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
		addr := common.Address(stack.Back(1).Bytes20())
		warmAccess := evm.StateDB.AddressInAccessList(addr)
		coldCost := params.ColdAccountAccessCostEIP2929 - params.WarmStorageReadCostEIP2929
		if !warmAccess {
			evm.StateDB.AddAddressToAccessList(addr)
			if !contract.UseGas(coldCost) {
				return 0, ErrOutOfGas
			}
		}
		gas, err := oldCalculator(evm, contract, stack, mem, memorySize)
		if warmAccess || err != nil {
			return gas, err
		}
		contract.RefundGas(coldCost)
		return gas + coldCost, nil
	}
}

var (
	gasCallEIP2929         = makeCallVariantGasEIP2929(gasCall)
	gasCallCodeEIP2929     = makeCallVariantGasEIP2929(gasCallCode)
	gasDelegateCallEIP2929 = makeCallVariantGasEIP2929(gasDelegateCall)
	gasStaticCallEIP2929   = makeCallVariantGasEIP2929(gasStaticCall)
)

func gasSelfdestruct(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
	var gas uint64
	gas = 0
	address := common.Address(stack.peek().Bytes20())
	if evm.chainRules.IsEIP158 {
		if evm.StateDB.Empty(address) && evm.StateDB.GetBalance(contract.Address).Sign() != 0 {
			gas += params.CreateBySelfdestructGas
		}
	} else if !evm.StateDB.Exist(address) {
		gas += params.CreateBySelfdestructGas
	}
	if !evm.StateDB.HasSelfDestructed(contract.Address) {
		evm.StateDB.AddRefund(params.SelfdestructRefundGas)
	}
	return gas, nil
}

func makeSelfdestructGasEIP2929(refundsEnabled bool) gasFunc {
	return func(evm *EVM, contract *Contract, stack *Stack, mem *Memory, memorySize uint64) (uint64, error) {
		var gas uint64
		address := common.Address(stack.peek().Bytes20())
		if !evm.StateDB.AddressInAccessList(address) {
			evm.StateDB.AddAddressToAccessList(address)
			gas = params.ColdAccountAccessCostEIP2929
		}
		if evm.StateDB.Empty(address) && evm.StateDB.GetBalance(contract.Address).Sign() != 0 {
			gas += params.CreateBySelfdestructGas
		}
		if refundsEnabled && !evm.StateDB.HasSelfDestructed(contract.Address) {
			evm.StateDB.AddRefund(params.SelfdestructRefundGas)
		}
		return gas, nil
	}
}

var (
	gasSelfdestructEIP2929 = makeSelfdestructGasEIP2929(true)
	// EIP-3529 (London) removes the SELFDESTRUCT refund entirely.
	gasSelfdestructEIP3529 = makeSelfdestructGasEIP2929(false)
)
