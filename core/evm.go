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

package core

import (
	"math/big"

	"github.com/probeum/go-probeum/common"
	"github.com/probeum/go-probeum/core/types"
	"github.com/probeum/go-probeum/core/vm"
)

// NewEVMBlockContext builds the block-scoped half of an EVM's environment.
// chain supplies ancestor block hashes for the BLOCKHASH opcode; random is
// non-nil post-Merge (EIP-4399's replacement for mix-hash difficulty).
func NewEVMBlockContext(blockNumber *big.Int, time uint64, difficulty, baseFee *big.Int, gasLimit uint64, coinbase common.Address, random *common.Hash, chain vm.Database) vm.BlockContext {
	return vm.BlockContext{
		CanTransfer: CanTransfer,
		Transfer:    Transfer,
		GetHash:     chain.GetHeaderHash,
		Coinbase:    coinbase,
		GasLimit:    gasLimit,
		BlockNumber: new(big.Int).Set(blockNumber),
		Time:        time,
		Difficulty:  difficulty,
		BaseFee:     baseFee,
		Random:      random,
	}
}

// NewEVMTxContext builds the transaction-scoped half of an EVM's
// environment: ORIGIN/GASPRICE and the tx's EIP-2930 access list, which is
// warmed into the StateDB before the top-level frame runs.
func NewEVMTxContext(msg types.Message) vm.TxContext {
	ctx := vm.TxContext{
		Origin:     msg.From,
		AccessList: msg.AccessList,
	}
	if msg.GasPrice != nil {
		ctx.GasPrice = new(big.Int).Set(msg.GasPrice)
	}
	return ctx
}

// CanTransfer reports whether addr's balance covers amount; it does not
// account for the gas the transfer itself costs.
func CanTransfer(db vm.StateDB, addr common.Address, amount *big.Int) bool {
	return db.GetBalance(addr).Cmp(amount) >= 0
}

// Transfer moves amount from sender to recipient. Callers are responsible
// for having already confirmed CanTransfer.
func Transfer(db vm.StateDB, sender, recipient common.Address, amount *big.Int) {
	db.SubBalance(sender, amount)
	db.AddBalance(recipient, amount)
}
