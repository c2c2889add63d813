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
	"math/big"

	"github.com/holiman/uint256"

	"github.com/probeum/go-probeum/common"
	"github.com/probeum/go-probeum/params"
)

// big0 is reused so the common non-value-transferring CALL/CREATE path
// doesn't allocate a fresh big.Int every time.
var big0 = big.NewInt(0)

func opCreate(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	if interpreter.readOnly {
		return nil, ErrWriteProtection
	}
	var (
		value        = scope.Stack.popptr()
		offset, size = scope.Stack.popptr().Uint64(), scope.Stack.popptr().Uint64()
		input        = scope.Memory.GetCopy(int64(offset), int64(size))
		gas          = scope.Contract.Gas
	)
	if interpreter.evm.chainRules.IsEIP150 {
		gas -= gas / 64
	}
	scope.Contract.UseGas(gas)

	bigVal := big0
	if !value.IsZero() {
		bigVal = value.ToBig()
	}

	res, addr, returnGas, suberr := interpreter.evm.Create(scope.Contract, input, gas, bigVal)
	// Homestead treats running out of gas depositing the new code as a
	// failed create; Frontier pretended the create had succeeded.
	if interpreter.evm.chainRules.IsHomestead && suberr == ErrCodeStoreOutOfGas {
		scope.Stack.push(new(uint256.Int))
	} else if suberr != nil && suberr != ErrCodeStoreOutOfGas {
		scope.Stack.push(new(uint256.Int))
	} else {
		scope.Stack.push(new(uint256.Int).SetBytes(addr.Bytes()))
	}
	scope.Contract.Gas += returnGas

	if suberr == ErrExecutionReverted {
		return res, nil
	}
	return nil, nil
}

func opCreate2(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	if interpreter.readOnly {
		return nil, ErrWriteProtection
	}
	var (
		endowment    = scope.Stack.popptr()
		offset, size = scope.Stack.popptr().Uint64(), scope.Stack.popptr().Uint64()
		salt         = scope.Stack.popptr()
		input        = scope.Memory.GetCopy(int64(offset), int64(size))
		gas          = scope.Contract.Gas
	)
	gas -= gas / 64
	scope.Contract.UseGas(gas)

	bigEndowment := big0
	if !endowment.IsZero() {
		bigEndowment = endowment.ToBig()
	}
	res, addr, returnGas, suberr := interpreter.evm.Create2(scope.Contract, input, gas, bigEndowment, salt)
	if suberr != nil {
		scope.Stack.push(new(uint256.Int))
	} else {
		scope.Stack.push(new(uint256.Int).SetBytes(addr.Bytes()))
	}
	scope.Contract.Gas += returnGas

	if suberr == ErrExecutionReverted {
		return res, nil
	}
	return nil, nil
}

func opCall(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	stack := scope.Stack
	// The gas popped here is a placeholder the real amount lives in
	// evm.callGasTemp, computed during dynamic-gas accounting (EIP-150's
	// all-but-one-64th cap needs the caller's remaining gas at charge time).
	stack.pop()
	gas := interpreter.evm.callGasTemp
	addr, value := stack.popptr().Bytes20(), stack.popptr()
	inOffset, inSize := stack.popptr().Uint64(), stack.popptr().Uint64()
	retOffset, retSize := stack.popptr().Uint64(), stack.popptr().Uint64()
	toAddr := common.Address(addr)

	if interpreter.readOnly && !value.IsZero() {
		return nil, ErrWriteProtection
	}

	args := scope.Memory.GetCopy(int64(inOffset), int64(inSize))

	bigVal := big0
	if !value.IsZero() {
		gas += params.CallStipend
		bigVal = value.ToBig()
	}

	ret, returnGas, err := interpreter.evm.Call(scope.Contract, toAddr, args, gas, bigVal)
	if err != nil {
		stack.push(new(uint256.Int))
	} else {
		stack.push(new(uint256.Int).SetOne())
	}
	if err == nil || err == ErrExecutionReverted {
		scope.Memory.Set(retOffset, retSize, ret)
	}
	scope.Contract.Gas += returnGas
	interpreter.returnData = ret
	return ret, nil
}

func opCallCode(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	stack := scope.Stack
	stack.pop()
	gas := interpreter.evm.callGasTemp
	addr, value := stack.popptr().Bytes20(), stack.popptr()
	inOffset, inSize := stack.popptr().Uint64(), stack.popptr().Uint64()
	retOffset, retSize := stack.popptr().Uint64(), stack.popptr().Uint64()
	toAddr := common.Address(addr)

	args := scope.Memory.GetCopy(int64(inOffset), int64(inSize))

	bigVal := big0
	if !value.IsZero() {
		gas += params.CallStipend
		bigVal = value.ToBig()
	}

	ret, returnGas, err := interpreter.evm.CallCode(scope.Contract, toAddr, args, gas, bigVal)
	if err != nil {
		stack.push(new(uint256.Int))
	} else {
		stack.push(new(uint256.Int).SetOne())
	}
	if err == nil || err == ErrExecutionReverted {
		scope.Memory.Set(retOffset, retSize, ret)
	}
	scope.Contract.Gas += returnGas
	interpreter.returnData = ret
	return ret, nil
}

func opDelegateCall(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	stack := scope.Stack
	stack.pop()
	gas := interpreter.evm.callGasTemp
	addr := stack.popptr().Bytes20()
	inOffset, inSize := stack.popptr().Uint64(), stack.popptr().Uint64()
	retOffset, retSize := stack.popptr().Uint64(), stack.popptr().Uint64()
	toAddr := common.Address(addr)

	args := scope.Memory.GetCopy(int64(inOffset), int64(inSize))

	ret, returnGas, err := interpreter.evm.DelegateCall(scope.Contract, toAddr, args, gas)
	if err != nil {
		stack.push(new(uint256.Int))
	} else {
		stack.push(new(uint256.Int).SetOne())
	}
	if err == nil || err == ErrExecutionReverted {
		scope.Memory.Set(retOffset, retSize, ret)
	}
	scope.Contract.Gas += returnGas
	interpreter.returnData = ret
	return ret, nil
}

func opStaticCall(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	stack := scope.Stack
	stack.pop()
	gas := interpreter.evm.callGasTemp
	addr := stack.popptr().Bytes20()
	inOffset, inSize := stack.popptr().Uint64(), stack.popptr().Uint64()
	retOffset, retSize := stack.popptr().Uint64(), stack.popptr().Uint64()
	toAddr := common.Address(addr)

	args := scope.Memory.GetCopy(int64(inOffset), int64(inSize))

	ret, returnGas, err := interpreter.evm.StaticCall(scope.Contract, toAddr, args, gas)
	if err != nil {
		stack.push(new(uint256.Int))
	} else {
		stack.push(new(uint256.Int).SetOne())
	}
	if err == nil || err == ErrExecutionReverted {
		scope.Memory.Set(retOffset, retSize, ret)
	}
	scope.Contract.Gas += returnGas
	interpreter.returnData = ret
	return ret, nil
}

func opReturn(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	offset, size := scope.Stack.popptr(), scope.Stack.popptr()
	ret := scope.Memory.GetCopy(int64(offset.Uint64()), int64(size.Uint64()))
	return ret, errStopToken
}

func opRevert(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	offset, size := scope.Stack.popptr(), scope.Stack.popptr()
	ret := scope.Memory.GetCopy(int64(offset.Uint64()), int64(size.Uint64()))
	return ret, ErrExecutionReverted
}

func opStop(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	return nil, errStopToken
}

// opSelfdestruct moves the contract's whole balance to beneficiary and
// hands the account to StateDB.Selfdestruct6780, which destroys it only if
// it was created earlier in this transaction; otherwise the account keeps
// its code and storage with a zero balance. The same rule applies under
// every fork.
func opSelfdestruct(pc *uint64, interpreter *EVMInterpreter, scope *ScopeContext) ([]byte, error) {
	if interpreter.readOnly {
		return nil, ErrWriteProtection
	}
	beneficiary := scope.Stack.popptr()
	balance := interpreter.evm.StateDB.GetBalance(scope.Contract.Address)
	interpreter.evm.StateDB.SubBalance(scope.Contract.Address, balance)
	interpreter.evm.StateDB.AddBalance(beneficiary.Bytes20(), balance)
	interpreter.evm.StateDB.Selfdestruct6780(scope.Contract.Address)
	return nil, errStopToken
}
