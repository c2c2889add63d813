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

package core

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/probeum/go-probeum/common"
	"github.com/probeum/go-probeum/core/types"
	"github.com/probeum/go-probeum/core/vm"
	"github.com/probeum/go-probeum/params"
)

var (
	ErrNonceTooHigh    = errors.New("nonce too high")
	ErrNonceTooLow     = errors.New("nonce too low")
	ErrNonceMax        = errors.New("nonce has max value")
	ErrSenderNoEOA     = errors.New("sender not an eoa")
	ErrFeeCapVeryHigh  = errors.New("fee cap higher than 2^256-1")
	ErrTipVeryHigh     = errors.New("tip higher than 2^256-1")
	ErrTipAboveFeeCap  = errors.New("max priority fee per gas higher than max fee per gas")
	ErrFeeCapTooLow    = errors.New("max fee per gas less than block base fee")
	ErrGasLimitTooHigh = errors.New("gas limit exceeds the block's gas limit")
	ErrMissingRandom   = errors.New("post-merge block is missing prevrandao")

	ErrGasUintOverflow              = errors.New("gas uint64 overflow")
	ErrIntrinsicGas                 = errors.New("intrinsic gas too low")
	ErrInsufficientFunds            = errors.New("insufficient funds for gas * price + value")
	ErrInsufficientFundsForTransfer = errors.New("insufficient funds for transfer")

	ErrGasLimitReached = errors.New("gas limit reached")
)

// GasPool tracks the gas a block has left to hand out to its transactions;
// every StateTransition debits the gas it reserves from the pool up front
// and credits back whatever the transaction didn't use.
type GasPool uint64

// AddGas makes gas available for the next transaction.
func (gp *GasPool) AddGas(amount uint64) *GasPool {
	if uint64(*gp) > math.MaxUint64-amount {
		panic("gas pool pushed above uint64")
	}
	*(*uint64)(gp) += amount
	return gp
}

// SubGas deducts the given amount from the pool if enough gas is available
// and returns an error otherwise.
func (gp *GasPool) SubGas(amount uint64) error {
	if uint64(*gp) < amount {
		return ErrGasLimitReached
	}
	*(*uint64)(gp) -= amount
	return nil
}

// Gas returns the amount of gas remaining in the pool.
func (gp *GasPool) Gas() uint64 {
	return uint64(*gp)
}

func (gp *GasPool) String() string {
	return fmt.Sprintf("%d", *gp)
}

// toWordSize returns the ceiled word size of size, used to price CREATE's
// init code by the 32-byte word (EIP-3860).
func toWordSize(size uint64) uint64 {
	if size > math.MaxUint64-31 {
		return math.MaxUint64/32 + 1
	}
	return (size + 31) / 32
}

// IntrinsicGas computes the gas a transaction owes before the EVM ever runs
// an opcode: the flat per-transaction charge, the per-byte calldata charge
// (EIP-2028 discounts non-zero bytes post-Istanbul), the EIP-2930 access
// list charge, and EIP-3860's per-word init code charge for contract
// creation.
func IntrinsicGas(data []byte, accessList types.AccessList, isContractCreation, isHomestead, isEIP2028, isEIP3860 bool) (uint64, error) {
	var gas uint64
	if isContractCreation && isHomestead {
		gas = params.TxGasContractCreation
	} else {
		gas = params.TxGas
	}
	dataLen := uint64(len(data))
	if dataLen > 0 {
		z := uint64(bytes.Count(data, []byte{0}))
		nz := dataLen - z

		nonZeroGas := params.TxDataNonZeroGasFrontier
		if isEIP2028 {
			nonZeroGas = params.TxDataNonZeroGasEIP2028
		}
		if (math.MaxUint64-gas)/nonZeroGas < nz {
			return 0, ErrGasUintOverflow
		}
		gas += nz * nonZeroGas

		if (math.MaxUint64-gas)/params.TxDataZeroGas < z {
			return 0, ErrGasUintOverflow
		}
		gas += z * params.TxDataZeroGas

		if isContractCreation && isEIP3860 {
			lenWords := toWordSize(dataLen)
			if (math.MaxUint64-gas)/params.InitCodeWordGas < lenWords {
				return 0, ErrGasUintOverflow
			}
			gas += lenWords * params.InitCodeWordGas
		}
	}
	if accessList != nil {
		gas += uint64(len(accessList)) * params.TxAccessListAddressGas
		gas += uint64(accessList.StorageKeys()) * params.TxAccessListStorageKeyGas
	}
	return gas, nil
}

// StateTransition drives spec.md §4.7's transact(env, tx): the pre-flight
// checks, intrinsic-gas debit, inner call/create frame and gas refund/fee
// settlement that wrap a single call_inner/create_inner execution.
type StateTransition struct {
	gp           *GasPool
	msg          types.Message
	gasRemaining uint64
	initialGas   uint64
	state        vm.StateDB
	evm          *vm.EVM
}

// NewStateTransition initialises a state transition for msg against evm,
// reserving gas from the shared block gas pool gp.
func NewStateTransition(evm *vm.EVM, msg types.Message, gp *GasPool) *StateTransition {
	return &StateTransition{
		gp:    gp,
		evm:   evm,
		msg:   msg,
		state: evm.StateDB,
	}
}

// ApplyMessage computes the resulting state by applying msg against evm's
// current state, debiting and crediting gas and fees as it goes.
func ApplyMessage(evm *vm.EVM, msg types.Message, gp *GasPool) (*vm.ExecutionResult, error) {
	evm.TxContext = NewEVMTxContext(msg)
	return NewStateTransition(evm, msg, gp).TransitionDb()
}

// to returns the recipient of the message, or the zero address for a
// contract-creation message.
func (st *StateTransition) to() common.Address {
	if st.msg.To == nil {
		return common.Address{}
	}
	return *st.msg.To
}

// buyGas checks that the caller holds gas_limit*(fee cap, or gas price when
// there is none) + value, debits gas_limit*gas_price up front (spec.md
// §4.7 steps 4-5) and reserves gas_limit from the block's gas pool. The
// value itself moves later, in the call or create.
func (st *StateTransition) buyGas() error {
	mgval := new(big.Int).SetUint64(st.msg.GasLimit)
	mgval.Mul(mgval, st.msg.GasPrice)
	balanceCheck := new(big.Int).Set(mgval)
	if st.msg.GasFeeCap != nil {
		balanceCheck.SetUint64(st.msg.GasLimit)
		balanceCheck = balanceCheck.Mul(balanceCheck, st.msg.GasFeeCap)
	}
	balanceCheck.Add(balanceCheck, st.msg.Value)

	if have, want := st.state.GetBalance(st.msg.From), balanceCheck; have.Cmp(want) < 0 {
		return fmt.Errorf("%w: address %v have %v want %v", ErrInsufficientFunds, st.msg.From.Hex(), have, want)
	}
	if err := st.gp.SubGas(st.msg.GasLimit); err != nil {
		return err
	}
	st.gasRemaining = st.msg.GasLimit
	st.initialGas = st.msg.GasLimit
	st.state.SubBalance(st.msg.From, mgval)
	return nil
}

// preCheck runs spec.md §4.7 step 1's pre-flight checks: nonce, EIP-3607's
// sender-has-no-code rule, and the post-London fee-cap family, before
// buying gas.
func (st *StateTransition) preCheck() error {
	msg := st.msg
	if !msg.SkipNonceChecks {
		stNonce := st.state.GetNonce(msg.From)
		if msgNonce := msg.Nonce; stNonce < msgNonce {
			return fmt.Errorf("%w: address %v, tx: %d state: %d", ErrNonceTooHigh, msg.From.Hex(), msgNonce, stNonce)
		} else if stNonce > msgNonce {
			return fmt.Errorf("%w: address %v, tx: %d state: %d", ErrNonceTooLow, msg.From.Hex(), msgNonce, stNonce)
		} else if stNonce+1 < stNonce {
			return fmt.Errorf("%w: address %v, nonce: %d", ErrNonceMax, msg.From.Hex(), stNonce)
		}
	}
	if !msg.SkipFromEOACheck {
		if code := st.state.GetCode(msg.From); len(code) > 0 {
			return fmt.Errorf("%w: address %v, len(code): %d", ErrSenderNoEOA, msg.From.Hex(), len(code))
		}
	}
	if msg.GasLimit > st.evm.GasLimit {
		return fmt.Errorf("%w: tx gas %d, block gas %d", ErrGasLimitTooHigh, msg.GasLimit, st.evm.GasLimit)
	}
	// Post-Merge blocks (Shanghai always postdates the Merge) must carry
	// prevrandao; difficulty no longer means anything once it's present.
	if st.evm.ChainConfig().IsShanghai(st.evm.BlockNumber) && st.evm.Random == nil {
		return ErrMissingRandom
	}
	if st.evm.ChainConfig().IsLondon(st.evm.BlockNumber) {
		if l := msg.GasFeeCap.BitLen(); l > 256 {
			return fmt.Errorf("%w: address %v, maxFeePerGas bit length: %d", ErrFeeCapVeryHigh, msg.From.Hex(), l)
		}
		if l := msg.GasTipCap.BitLen(); l > 256 {
			return fmt.Errorf("%w: address %v, maxPriorityFeePerGas bit length: %d", ErrTipVeryHigh, msg.From.Hex(), l)
		}
		if msg.GasFeeCap.Cmp(msg.GasTipCap) < 0 {
			return fmt.Errorf("%w: address %v, maxPriorityFeePerGas: %s, maxFeePerGas: %s", ErrTipAboveFeeCap, msg.From.Hex(), msg.GasTipCap, msg.GasFeeCap)
		}
		if msg.GasFeeCap.Cmp(st.evm.BaseFee) < 0 {
			return fmt.Errorf("%w: address %v, maxFeePerGas: %s, baseFee: %s", ErrFeeCapTooLow, msg.From.Hex(), msg.GasFeeCap, st.evm.BaseFee)
		}
	}
	return st.buyGas()
}

// TransitionDb is transact(env, tx): spec.md §4.7's nine steps. It runs
// preCheck (1-5), dispatches the top-level call_inner/create_inner frame
// (6-7), settles the gas refund and coinbase fee (8), and classifies the
// raw frame error into the three-valued ExecutionResult (9).
func (st *StateTransition) TransitionDb() (*vm.ExecutionResult, error) {
	if err := st.preCheck(); err != nil {
		return nil, err
	}

	var (
		msg              = st.msg
		rules            = st.evm.ChainConfig().Rules(st.evm.BlockNumber)
		contractCreation = msg.To == nil
	)

	gas, err := IntrinsicGas(msg.Data, msg.AccessList, contractCreation, rules.IsHomestead, rules.IsIstanbul, rules.IsShanghai)
	if err != nil {
		return nil, err
	}
	if st.gasRemaining < gas {
		return nil, fmt.Errorf("%w: have %d, want %d", ErrIntrinsicGas, st.gasRemaining, gas)
	}
	st.gasRemaining -= gas

	if msg.Value.Sign() != 0 && !st.evm.CanTransfer(st.state, msg.From, msg.Value) {
		return nil, fmt.Errorf("%w: address %v", ErrInsufficientFundsForTransfer, msg.From.Hex())
	}

	if rules.IsShanghai && contractCreation && uint64(len(msg.Data)) > params.MaxInitCodeSize {
		return nil, fmt.Errorf("%w: code size %v limit %v", vm.ErrMaxInitCodeSizeExceeded, len(msg.Data), params.MaxInitCodeSize)
	}

	// Post-Shanghai, the coinbase is warmed before the call runs (EIP-3651).
	if rules.IsShanghai {
		st.state.AddAddressToAccessList(st.evm.Coinbase)
	}
	if rules.IsBerlin {
		st.state.AddAddressToAccessList(msg.From)
		if !contractCreation {
			st.state.AddAddressToAccessList(*msg.To)
		}
		for _, al := range msg.AccessList {
			st.state.AddAddressToAccessList(al.Address)
			for _, key := range al.StorageKeys {
				st.state.AddSlotToAccessList(al.Address, key)
			}
		}
	}

	var (
		ret   []byte
		vmerr error
	)
	sender := vm.NewContract(msg.From, msg.From, nil, st.gasRemaining)
	if contractCreation {
		ret, _, st.gasRemaining, vmerr = st.evm.Create(sender, msg.Data, st.gasRemaining, msg.Value)
	} else {
		st.state.SetNonce(msg.From, st.state.GetNonce(msg.From)+1)
		ret, st.gasRemaining, vmerr = st.evm.Call(sender, st.to(), msg.Data, st.gasRemaining, msg.Value)
	}

	gasRefund := st.calcRefund()
	st.gasRemaining += gasRefund
	st.returnGas()

	effectiveTip := msg.GasPrice
	if rules.IsLondon {
		effectiveTip = new(big.Int).Sub(msg.GasFeeCap, st.evm.BaseFee)
		if effectiveTip.Cmp(msg.GasTipCap) > 0 {
			effectiveTip = new(big.Int).Set(msg.GasTipCap)
		}
	}
	fee := new(big.Int).SetUint64(st.gasUsed())
	fee.Mul(fee, effectiveTip)
	st.state.AddBalance(st.evm.Coinbase, fee)

	return vm.ClassifyExecutionResult(vmerr, st.gasUsed(), gasRefund, ret), nil
}

// calcRefund caps the journal's accumulated SSTORE/SELFDESTRUCT refund
// counter at gasUsed/2 (pre EIP-3529) or gasUsed/5 (EIP-3529 onward).
func (st *StateTransition) calcRefund() uint64 {
	var refund uint64
	if !st.evm.ChainConfig().IsLondon(st.evm.BlockNumber) {
		refund = st.gasUsed() / params.RefundQuotient
	} else {
		refund = st.gasUsed() / params.RefundQuotientEIP3529
	}
	if refund > st.state.GetRefund() {
		refund = st.state.GetRefund()
	}
	return refund
}

// returnGas credits the caller for unused gas at the original gas price and
// returns it to the block's gas pool for the next transaction.
func (st *StateTransition) returnGas() {
	remaining := new(big.Int).SetUint64(st.gasRemaining)
	remaining.Mul(remaining, st.msg.GasPrice)
	st.state.AddBalance(st.msg.From, remaining)
	st.gp.AddGas(st.gasRemaining)
}

// gasUsed returns the gas spent by the transaction, including gas that was
// later refunded.
func (st *StateTransition) gasUsed() uint64 {
	return st.initialGas - st.gasRemaining
}
