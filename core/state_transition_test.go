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
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/probeum/go-probeum/common"
	"github.com/probeum/go-probeum/core/state"
	"github.com/probeum/go-probeum/core/types"
	"github.com/probeum/go-probeum/core/vm"
	"github.com/probeum/go-probeum/params"
)

// fakeChain is a vm.Database stub: this package's tests never traverse
// BLOCKHASH past the genesis block, so every lookup can return the zero hash.
type fakeChain struct{}

func (fakeChain) GetHeaderHash(uint64) common.Hash { return common.Hash{} }

func newTestEVM(t *testing.T, statedb vm.StateDB, gasLimit uint64) *vm.EVM {
	t.Helper()
	random := common.Hash{0x1}
	blockCtx := NewEVMBlockContext(big.NewInt(1), 1000, big.NewInt(0), big.NewInt(1), gasLimit, common.Address{0xc0}, &random, fakeChain{})
	return vm.NewEVM(blockCtx, vm.TxContext{}, statedb, params.AllEthashProtocolChanges, vm.Config{})
}

func TestStateTransitionValueTransfer(t *testing.T) {
	db := state.New(state.NewMemoryDatabase(65536, 16))
	from := common.BytesToAddress([]byte("sender"))
	to := common.BytesToAddress([]byte("receiver"))
	db.AddBalance(from, big.NewInt(1_000_000_000))

	evm := newTestEVM(t, db, 1_000_000)
	msg := types.NewMessage(from, &to, 0, big.NewInt(1000), 100_000, big.NewInt(1), big.NewInt(1), big.NewInt(1), nil, nil)
	gp := GasPool(evm.GasLimit)

	result, err := ApplyMessage(evm, msg, &gp)
	require.NoError(t, err)
	require.True(t, result.IsSuccess())
	require.Equal(t, big.NewInt(1000), db.GetBalance(to))
}

func TestStateTransitionInsufficientFunds(t *testing.T) {
	db := state.New(state.NewMemoryDatabase(65536, 16))
	from := common.BytesToAddress([]byte("pauper"))
	to := common.BytesToAddress([]byte("receiver"))

	evm := newTestEVM(t, db, 1_000_000)
	msg := types.NewMessage(from, &to, 0, big.NewInt(1), params.TxGas, big.NewInt(1), big.NewInt(1), big.NewInt(1), nil, nil)
	gp := GasPool(evm.GasLimit)

	_, err := ApplyMessage(evm, msg, &gp)
	require.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestStateTransitionNonceTooLow(t *testing.T) {
	db := state.New(state.NewMemoryDatabase(65536, 16))
	from := common.BytesToAddress([]byte("sender"))
	to := common.BytesToAddress([]byte("receiver"))
	db.AddBalance(from, big.NewInt(1_000_000_000))
	db.SetNonce(from, 5)

	evm := newTestEVM(t, db, 1_000_000)
	msg := types.NewMessage(from, &to, 1, big.NewInt(0), params.TxGas, big.NewInt(1), big.NewInt(1), big.NewInt(1), nil, nil)
	gp := GasPool(evm.GasLimit)

	_, err := ApplyMessage(evm, msg, &gp)
	require.ErrorIs(t, err, ErrNonceTooLow)
}

func TestIntrinsicGasChargesPerByteAndAccessList(t *testing.T) {
	data := []byte{0x00, 0x01, 0x02}
	gas, err := IntrinsicGas(data, nil, false, true, true, false)
	require.NoError(t, err)
	require.Equal(t, params.TxGas+params.TxDataZeroGas+2*params.TxDataNonZeroGasEIP2028, gas)

	al := types.AccessList{{Address: common.Address{0x1}, StorageKeys: []common.Hash{{0x1}, {0x2}}}}
	gasWithList, err := IntrinsicGas(nil, al, false, true, true, false)
	require.NoError(t, err)
	require.Equal(t, params.TxGas+params.TxAccessListAddressGas+2*params.TxAccessListStorageKeyGas, gasWithList)
}

func TestGasPoolSubGasExhausted(t *testing.T) {
	gp := GasPool(100)
	require.NoError(t, gp.SubGas(100))
	require.ErrorIs(t, gp.SubGas(1), ErrGasLimitReached)
}
