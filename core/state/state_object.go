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

package state

import (
	"bytes"
	"math/big"

	"github.com/probeum/go-probeum/common"
	"github.com/probeum/go-probeum/crypto"
)

var emptyCodeHash = crypto.Keccak256(nil)

// Storage is an account's cached set of storage slots, keyed by slot hash.
type Storage map[common.Hash]common.Hash

func (s Storage) Copy() Storage {
	cpy := make(Storage, len(s))
	for key, value := range s {
		cpy[key] = value
	}
	return cpy
}

// stateObject is the cached, mutable view of one account: its balance,
// nonce and code, plus whichever storage slots this execution has already
// touched. Slots not yet in originStorage are pulled from the backing
// Database and memoized there on first read.
type stateObject struct {
	db      *StateDB
	address common.Address

	account   Account
	code      []byte
	dirtyCode bool

	originStorage Storage // slots as last fetched from / written back to the Database
	dirtyStorage  Storage // slots written this execution, not yet committed

	// selfDestructed is set once SELFDESTRUCT (or its EIP-6780 restricted
	// form) has scheduled this account for removal at transaction end.
	selfDestructed bool

	// createdThisTx tracks whether this account's code was deployed by a
	// CREATE/CREATE2 earlier in the same transaction, letting EIP-6780
	// distinguish a true same-tx destroy from a destroy of a pre-existing
	// contract.
	createdThisTx bool

	// deleted marks an account that Finalise removed from the Database
	// (self-destructed, or empty under EIP-161 touch-and-clear); the
	// StateDB treats it as absent from then on.
	deleted bool
}

func newObject(db *StateDB, address common.Address, account Account) *stateObject {
	if account.Balance == nil {
		account.Balance = new(big.Int)
	}
	if account.CodeHash == nil {
		account.CodeHash = emptyCodeHash
	}
	return &stateObject{
		db:            db,
		address:       address,
		account:       account,
		originStorage: make(Storage),
		dirtyStorage:  make(Storage),
	}
}

func (s *stateObject) empty() bool {
	return s.account.Nonce == 0 && s.account.Balance.Sign() == 0 && bytes.Equal(s.account.CodeHash, emptyCodeHash)
}

func (s *stateObject) Address() common.Address { return s.address }

func (s *stateObject) Balance() *big.Int { return s.account.Balance }

func (s *stateObject) setBalance(amount *big.Int) {
	s.account.Balance = amount
}

func (s *stateObject) Nonce() uint64 { return s.account.Nonce }

func (s *stateObject) setNonce(nonce uint64) {
	s.account.Nonce = nonce
}

func (s *stateObject) CodeHash() []byte { return s.account.CodeHash }

func (s *stateObject) Code() []byte {
	if s.code != nil {
		return s.code
	}
	if bytes.Equal(s.CodeHash(), emptyCodeHash) {
		return nil
	}
	code := s.db.db.GetCode(common.BytesToHash(s.account.CodeHash))
	s.code = code
	return code
}

func (s *stateObject) CodeSize() int { return len(s.Code()) }

func (s *stateObject) setCode(codeHash common.Hash, code []byte) {
	s.code = code
	s.account.CodeHash = codeHash[:]
	s.dirtyCode = true
}

// GetState returns the slot's current value: a pending write if present,
// otherwise whatever the account's committed view holds.
func (s *stateObject) GetState(key common.Hash) common.Hash {
	if value, dirty := s.dirtyStorage[key]; dirty {
		return value
	}
	return s.GetCommittedState(key)
}

// GetCommittedState returns the slot's value as of the start of this
// execution, ignoring any writes made since — SSTORE's gas metering and
// refund rules (EIP-2200/3529) need this original value to classify a
// write.
func (s *stateObject) GetCommittedState(key common.Hash) common.Hash {
	if value, cached := s.originStorage[key]; cached {
		return value
	}
	value := s.db.db.GetStorage(s.address, key)
	s.originStorage[key] = value
	return value
}

func (s *stateObject) SetState(key, value common.Hash) {
	s.dirtyStorage[key] = value
}

func (s *stateObject) deepCopy(db *StateDB) *stateObject {
	obj := newObject(db, s.address, s.account)
	obj.code = s.code
	obj.dirtyCode = s.dirtyCode
	obj.originStorage = s.originStorage.Copy()
	obj.dirtyStorage = s.dirtyStorage.Copy()
	obj.selfDestructed = s.selfDestructed
	obj.createdThisTx = s.createdThisTx
	obj.deleted = s.deleted
	return obj
}
