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
	"math/big"

	"github.com/holiman/uint256"

	"github.com/probeum/go-probeum/common"
	"github.com/probeum/go-probeum/crypto"
	"github.com/probeum/go-probeum/params"
)

// Config bundles the interpreter's run-time options. Only
// EnablePreimageRecording is read (by KECCAK256); Debug, Tracer and
// NoBaseFee are carried but nothing in this module consults them.
type Config struct {
	Debug                   bool
	Tracer                  EVMLogger
	NoBaseFee               bool
	EnablePreimageRecording bool
}

// EVM is the execution engine: one BlockContext/TxContext pair, one
// journaled StateDB, and the interpreter that walks bytecode against them.
// An EVM value is built fresh per transaction and must not be reused or
// shared across goroutines.
type EVM struct {
	BlockContext
	TxContext

	StateDB StateDB
	depth   int

	chainConfig *params.ChainConfig
	chainRules  params.Rules

	Config Config

	interpreter *EVMInterpreter

	// callGasTemp holds the gas a CALL-family dynamicGas function computed
	// under the EIP-150 63/64 cap; opCall and friends read it back because
	// the popped stack operand is only the caller's *requested* gas.
	callGasTemp uint64

	precompiles map[common.Address]PrecompiledContract
}

// NewEVM builds an EVM for one transaction (or eth_call). blockCtx.BlockNumber
// alone selects the fork rule snapshot used for the whole call.
func NewEVM(blockCtx BlockContext, txCtx TxContext, statedb StateDB, chainConfig *params.ChainConfig, config Config) *EVM {
	evm := &EVM{
		BlockContext: blockCtx,
		TxContext:    txCtx,
		StateDB:      statedb,
		Config:       config,
		chainConfig:  chainConfig,
		chainRules:   chainConfig.Rules(blockCtx.BlockNumber),
	}
	evm.precompiles = activePrecompiledContracts(evm.chainRules)
	evm.interpreter = NewEVMInterpreter(evm)
	return evm
}

// ChainConfig returns the chain configuration the EVM was built with.
func (evm *EVM) ChainConfig() *params.ChainConfig { return evm.chainConfig }

// Interpreter returns the EVM's single interpreter instance.
func (evm *EVM) Interpreter() *EVMInterpreter { return evm.interpreter }

func (evm *EVM) precompile(addr common.Address) (PrecompiledContract, bool) {
	p, ok := evm.precompiles[addr]
	return p, ok
}

// Call executes the code at addr, handling any value transfer and account
// creation, and rolling back to the pre-call snapshot on any error. An
// ErrExecutionReverted keeps the unused gas; any other error consumes it.
func (evm *EVM) Call(caller *Contract, addr common.Address, input []byte, gas uint64, value *big.Int) (ret []byte, leftOverGas uint64, err error) {
	if evm.depth > int(params.CallCreateDepth) {
		return nil, gas, ErrDepth
	}
	if value.Sign() != 0 && !evm.CanTransfer(evm.StateDB, caller.Address, value) {
		return nil, gas, ErrInsufficientBalance
	}
	snapshot := evm.StateDB.Snapshot()
	p, isPrecompile := evm.precompile(addr)

	if !evm.StateDB.Exist(addr) {
		if !isPrecompile && evm.chainRules.IsEIP158 && value.Sign() == 0 {
			// EIP-161: calling a non-existent account with zero value still
			// touches it (Open Question (b)): AddBalance creates an empty
			// account, which Finalise removes when deleting empty objects.
			evm.StateDB.AddBalance(addr, new(big.Int))
			return nil, gas, nil
		}
		evm.StateDB.CreateAccount(addr)
	}
	evm.Transfer(evm.StateDB, caller.Address, addr, value)

	if isPrecompile {
		ret, gas, err = RunPrecompiledContract(p, input, gas)
	} else {
		code := evm.StateDB.GetCode(addr)
		if len(code) == 0 {
			ret, err = nil, nil
		} else {
			addrCopy := addr
			valueU256, _ := uint256.FromBig(value)
			contract := NewContract(caller.Address, addrCopy, valueU256, gas)
			contract.SetCallCode(&addrCopy, NewBytecode(code, evm.StateDB.GetCodeHash(addrCopy)))
			ret, err = evm.interpreter.Run(contract, input, false)
			gas = contract.Gas
		}
	}
	if err != nil {
		evm.StateDB.RevertToSnapshot(snapshot)
		if err != ErrExecutionReverted {
			gas = 0
		}
	}
	return ret, gas, err
}

// CallCode runs addr's code against caller's own storage/balance context
// (the caller's address is both the apparent and the actual target).
func (evm *EVM) CallCode(caller *Contract, addr common.Address, input []byte, gas uint64, value *big.Int) (ret []byte, leftOverGas uint64, err error) {
	if evm.depth > int(params.CallCreateDepth) {
		return nil, gas, ErrDepth
	}
	if !evm.CanTransfer(evm.StateDB, caller.Address, value) {
		return nil, gas, ErrInsufficientBalance
	}
	snapshot := evm.StateDB.Snapshot()

	if p, isPrecompile := evm.precompile(addr); isPrecompile {
		ret, gas, err = RunPrecompiledContract(p, input, gas)
	} else {
		addrCopy := addr
		valueU256, _ := uint256.FromBig(value)
		contract := NewContract(caller.Address, caller.Address, valueU256, gas)
		contract.Scheme = SchemeCallCode
		contract.SetCallCode(&addrCopy, NewBytecode(evm.StateDB.GetCode(addrCopy), evm.StateDB.GetCodeHash(addrCopy)))
		ret, err = evm.interpreter.Run(contract, input, false)
		gas = contract.Gas
	}
	if err != nil {
		evm.StateDB.RevertToSnapshot(snapshot)
		if err != ErrExecutionReverted {
			gas = 0
		}
	}
	return ret, gas, err
}

// DelegateCall runs addr's code with caller's storage/balance AND caller's
// own caller/value, so nested delegation is transparent to CALLER/CALLVALUE.
func (evm *EVM) DelegateCall(caller *Contract, addr common.Address, input []byte, gas uint64) (ret []byte, leftOverGas uint64, err error) {
	if evm.depth > int(params.CallCreateDepth) {
		return nil, gas, ErrDepth
	}
	snapshot := evm.StateDB.Snapshot()

	if p, isPrecompile := evm.precompile(addr); isPrecompile {
		ret, gas, err = RunPrecompiledContract(p, input, gas)
	} else {
		addrCopy := addr
		contract := NewContract(caller.CallerAddress, caller.Address, caller.Value, gas)
		contract.Scheme = SchemeDelegateCall
		contract.SetCallCode(&addrCopy, NewBytecode(evm.StateDB.GetCode(addrCopy), evm.StateDB.GetCodeHash(addrCopy)))
		ret, err = evm.interpreter.Run(contract, input, false)
		gas = contract.Gas
	}
	if err != nil {
		evm.StateDB.RevertToSnapshot(snapshot)
		if err != ErrExecutionReverted {
			gas = 0
		}
	}
	return ret, gas, err
}

// StaticCall runs addr's code with writes forbidden: SSTORE, LOG*, CREATE,
// CREATE2 and SELFDESTRUCT, and any CALL that carries value, all fail.
func (evm *EVM) StaticCall(caller *Contract, addr common.Address, input []byte, gas uint64) (ret []byte, leftOverGas uint64, err error) {
	if evm.depth > int(params.CallCreateDepth) {
		return nil, gas, ErrDepth
	}
	snapshot := evm.StateDB.Snapshot()
	// A static call still counts as a touch for EIP-161 purposes.
	evm.StateDB.AddBalance(addr, new(big.Int))

	if p, isPrecompile := evm.precompile(addr); isPrecompile {
		ret, gas, err = RunPrecompiledContract(p, input, gas)
	} else {
		addrCopy := addr
		contract := NewContract(caller.Address, addrCopy, new(uint256.Int), gas)
		contract.IsStatic = true
		contract.Scheme = SchemeStaticCall
		contract.SetCallCode(&addrCopy, NewBytecode(evm.StateDB.GetCode(addrCopy), evm.StateDB.GetCodeHash(addrCopy)))
		ret, err = evm.interpreter.Run(contract, input, true)
		gas = contract.Gas
	}
	if err != nil {
		evm.StateDB.RevertToSnapshot(snapshot)
		if err != ErrExecutionReverted {
			gas = 0
		}
	}
	return ret, gas, err
}

// create runs deployment code and installs its returned bytes as the new
// account's code, shared by Create and Create2 (which differ only in how
// the target address is derived).
func (evm *EVM) create(caller *Contract, code []byte, gas uint64, value *big.Int, address common.Address) (ret []byte, createAddress common.Address, leftOverGas uint64, err error) {
	if evm.depth > int(params.CallCreateDepth) {
		return nil, common.Address{}, gas, ErrDepth
	}
	if !evm.CanTransfer(evm.StateDB, caller.Address, value) {
		return nil, common.Address{}, gas, ErrInsufficientBalance
	}
	if uint64(len(code)) > params.MaxInitCodeSize {
		return nil, common.Address{}, gas, ErrMaxInitCodeSizeExceeded
	}
	nonce := evm.StateDB.GetNonce(caller.Address)
	if nonce+1 < nonce {
		return nil, common.Address{}, gas, ErrNonceUintOverflow
	}
	evm.StateDB.SetNonce(caller.Address, nonce+1)

	if evm.chainRules.IsBerlin {
		evm.StateDB.AddAddressToAccessList(address)
	}

	contractHash := evm.StateDB.GetCodeHash(address)
	if evm.StateDB.GetNonce(address) != 0 || (contractHash != (common.Hash{}) && contractHash != emptyCodeHash) {
		return nil, common.Address{}, 0, ErrContractAddressCollision
	}

	snapshot := evm.StateDB.Snapshot()
	if !evm.StateDB.Exist(address) {
		evm.StateDB.CreateAccount(address)
	}
	evm.StateDB.MarkCreatedThisTx(address)
	if evm.chainRules.IsEIP158 {
		evm.StateDB.SetNonce(address, 1)
	}
	evm.Transfer(evm.StateDB, caller.Address, address, value)

	valueU256, _ := uint256.FromBig(value)
	contract := NewContract(caller.Address, address, valueU256, gas)
	contract.CreatedThisTx = true
	contract.SetCallCode(&address, NewBytecode(code, crypto.Keccak256Hash(code)))

	ret, err = evm.interpreter.Run(contract, nil, false)

	if err == nil {
		if evm.chainRules.IsEIP158 && uint64(len(ret)) > params.MaxCodeSize {
			err = ErrCreateContractSizeLimit
		} else if len(ret) >= 1 && ret[0] == 0xEF && evm.chainRules.IsLondon {
			err = ErrCreateContractStartingWithEF
		} else {
			createDataGas := uint64(len(ret)) * params.CreateDataGas
			if !contract.UseGas(createDataGas) {
				err = ErrCodeStoreOutOfGas
			} else {
				evm.StateDB.SetCode(address, ret)
			}
		}
	}

	if err != nil && (evm.chainRules.IsHomestead || err != ErrCodeStoreOutOfGas) {
		evm.StateDB.RevertToSnapshot(snapshot)
		if err != ErrExecutionReverted {
			contract.UseGas(contract.Gas)
		}
	}
	return ret, address, contract.Gas, err
}

// Create deploys code at the CREATE-derived address keccak256(rlp(caller, nonce))[12:].
func (evm *EVM) Create(caller *Contract, code []byte, gas uint64, value *big.Int) (ret []byte, contractAddr common.Address, leftOverGas uint64, err error) {
	contractAddr = crypto.CreateAddress(caller.Address, evm.StateDB.GetNonce(caller.Address))
	return evm.create(caller, code, gas, value, contractAddr)
}

// Create2 deploys code at the salted, code-hash-derived address
// keccak256(0xff ++ caller ++ salt ++ keccak256(code))[12:], so the
// deployment address is known before the code runs.
func (evm *EVM) Create2(caller *Contract, code []byte, gas uint64, endowment *big.Int, salt *uint256.Int) (ret []byte, contractAddr common.Address, leftOverGas uint64, err error) {
	codeHash := crypto.Keccak256Hash(code)
	contractAddr = crypto.CreateAddress2(caller.Address, salt.Bytes32(), codeHash.Bytes())
	return evm.create(caller, code, gas, endowment, contractAddr)
}
