// Copyright 2021 The go-ethereum Authors
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

package types

import (
	"math/big"

	"github.com/probeum/go-probeum/common"
)

// Message is the executor's normalized view of a transaction: whatever
// envelope it arrived in (legacy, EIP-2930, EIP-1559), it is reduced to this
// shape before TransitionDb ever runs. To == nil means contract creation.
type Message struct {
	To        *common.Address
	From      common.Address
	Nonce     uint64
	Value     *big.Int
	GasLimit  uint64
	GasPrice  *big.Int
	GasFeeCap *big.Int
	GasTipCap *big.Int
	Data      []byte

	AccessList AccessList

	// SkipNonceChecks disables the nonce-matches-account check in preCheck;
	// used for read-only simulation (eth_call-style use) where the caller
	// may not have a real, in-sequence nonce.
	SkipNonceChecks bool

	// SkipFromEOACheck disables the "sender has no code" check, for the same
	// simulation use case.
	SkipFromEOACheck bool
}

// NewMessage builds a Message with sane pointer defaults. Value/GasPrice/
// GasFeeCap/GasTipCap default to a fresh zero *big.Int when nil is passed so
// callers never have to special-case value-less calls.
func NewMessage(from common.Address, to *common.Address, nonce uint64, value *big.Int, gasLimit uint64, gasPrice, gasFeeCap, gasTipCap *big.Int, data []byte, accessList AccessList) Message {
	if value == nil {
		value = new(big.Int)
	}
	if gasPrice == nil {
		gasPrice = new(big.Int)
	}
	if gasFeeCap == nil {
		gasFeeCap = new(big.Int)
	}
	if gasTipCap == nil {
		gasTipCap = new(big.Int)
	}
	return Message{
		From:       from,
		To:         to,
		Nonce:      nonce,
		Value:      value,
		GasLimit:   gasLimit,
		GasPrice:   gasPrice,
		GasFeeCap:  gasFeeCap,
		GasTipCap:  gasTipCap,
		Data:       data,
		AccessList: accessList,
	}
}
