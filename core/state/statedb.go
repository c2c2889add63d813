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
	"math/big"
	"sort"

	"github.com/probeum/go-probeum/common"
	"github.com/probeum/go-probeum/core/types"
	"github.com/probeum/go-probeum/crypto"
)

// StateDB is the journaled world-state view a single transaction executes
// against. It satisfies core/vm.StateDB: every mutating method records a
// journal entry so RevertToSnapshot can undo a failed call/create frame
// without disturbing its caller's already-committed effects.
type StateDB struct {
	db Database

	stateObjects      map[common.Address]*stateObject
	stateObjectsDirty map[common.Address]struct{}

	journal        *journal
	validRevisions []revision
	nextRevisionID int

	refund uint64

	logs    map[common.Hash][]*types.Log
	logSize uint

	preimages map[common.Hash][]byte

	accessList *accessList

	transientStorage transientStorage

	thash   common.Hash // hash of the transaction currently executing
	txIndex int
}

type revision struct {
	id           int
	journalIndex int
}

// transientStorage is EIP-1153's TLOAD/TSTORE scratch space: it lives only
// for the duration of one transaction and is never journalled against
// snapshots from an earlier transaction, but frame-local reverts still
// apply within a transaction via transientStorageChange.
type transientStorage map[common.Address]Storage

func newTransientStorage() transientStorage {
	return make(transientStorage)
}

func (t transientStorage) Get(addr common.Address, key common.Hash) common.Hash {
	if storage, ok := t[addr]; ok {
		return storage[key]
	}
	return common.Hash{}
}

func (t transientStorage) Set(addr common.Address, key, value common.Hash) {
	storage, ok := t[addr]
	if !ok {
		storage = make(Storage)
		t[addr] = storage
	}
	storage[key] = value
}

// New creates a StateDB reading unseen accounts and slots from db.
func New(db Database) *StateDB {
	return &StateDB{
		db:                db,
		stateObjects:      make(map[common.Address]*stateObject),
		stateObjectsDirty: make(map[common.Address]struct{}),
		journal:           newJournal(),
		logs:              make(map[common.Hash][]*types.Log),
		preimages:         make(map[common.Hash][]byte),
		accessList:        newAccessList(),
		transientStorage:  newTransientStorage(),
	}
}

// SetTxContext primes the StateDB with the hash/index of the transaction
// about to run, so AddLog can stamp emitted logs correctly.
func (s *StateDB) SetTxContext(thash common.Hash, ti int) {
	s.thash = thash
	s.txIndex = ti
}

func (s *StateDB) getStateObject(addr common.Address) *stateObject {
	if obj, ok := s.stateObjects[addr]; ok {
		if obj.deleted {
			return nil
		}
		return obj
	}
	account, ok := s.db.GetAccount(addr)
	if !ok {
		return nil
	}
	obj := newObject(s, addr, account)
	s.stateObjects[addr] = obj
	return obj
}

func (s *StateDB) getOrNewStateObject(addr common.Address) *stateObject {
	obj := s.getStateObject(addr)
	if obj == nil {
		obj = s.createObject(addr)
	}
	return obj
}

func (s *StateDB) createObject(addr common.Address) *stateObject {
	obj := newObject(s, addr, Account{Balance: new(big.Int)})
	s.journal.append(createObjectChange{account: &addr})
	s.stateObjects[addr] = obj
	return obj
}

// CreateAccount explicitly instantiates addr as an account with zero
// balance/nonce/code, matching CALL/CREATE's "touch a not-yet-existing
// destination" behavior (EIP-161).
func (s *StateDB) CreateAccount(addr common.Address) {
	if s.getStateObject(addr) == nil {
		s.createObject(addr)
	}
}

func (s *StateDB) SubBalance(addr common.Address, amount *big.Int) {
	obj := s.getOrNewStateObject(addr)
	if obj == nil || amount.Sign() == 0 {
		return
	}
	s.journal.append(balanceChange{account: &addr, prev: new(big.Int).Set(obj.Balance())})
	obj.setBalance(new(big.Int).Sub(obj.Balance(), amount))
}

func (s *StateDB) AddBalance(addr common.Address, amount *big.Int) {
	obj := s.getOrNewStateObject(addr)
	if obj == nil {
		return
	}
	s.journal.append(balanceChange{account: &addr, prev: new(big.Int).Set(obj.Balance())})
	obj.setBalance(new(big.Int).Add(obj.Balance(), amount))
}

func (s *StateDB) GetBalance(addr common.Address) *big.Int {
	if obj := s.getStateObject(addr); obj != nil {
		return obj.Balance()
	}
	return new(big.Int)
}

func (s *StateDB) GetNonce(addr common.Address) uint64 {
	if obj := s.getStateObject(addr); obj != nil {
		return obj.Nonce()
	}
	return 0
}

func (s *StateDB) SetNonce(addr common.Address, nonce uint64) {
	obj := s.getOrNewStateObject(addr)
	if obj == nil {
		return
	}
	s.journal.append(nonceChange{account: &addr, prev: obj.Nonce()})
	obj.setNonce(nonce)
}

func (s *StateDB) GetCodeHash(addr common.Address) common.Hash {
	if obj := s.getStateObject(addr); obj != nil {
		return common.BytesToHash(obj.CodeHash())
	}
	return common.Hash{}
}

func (s *StateDB) GetCode(addr common.Address) []byte {
	if obj := s.getStateObject(addr); obj != nil {
		return obj.Code()
	}
	return nil
}

func (s *StateDB) GetCodeSize(addr common.Address) int {
	if obj := s.getStateObject(addr); obj != nil {
		return obj.CodeSize()
	}
	return 0
}

func (s *StateDB) SetCode(addr common.Address, code []byte) {
	obj := s.getOrNewStateObject(addr)
	if obj == nil {
		return
	}
	s.journal.append(codeChange{
		account:  &addr,
		prevhash: obj.CodeHash(),
		prevcode: obj.code,
	})
	obj.setCode(crypto.Keccak256Hash(code), code)
}

func (s *StateDB) AddRefund(gas uint64) {
	s.journal.append(refundChange{prev: s.refund})
	s.refund += gas
}

func (s *StateDB) SubRefund(gas uint64) {
	s.journal.append(refundChange{prev: s.refund})
	if gas > s.refund {
		panic("refund counter below zero")
	}
	s.refund -= gas
}

func (s *StateDB) GetRefund() uint64 {
	return s.refund
}

func (s *StateDB) GetCommittedState(addr common.Address, key common.Hash) common.Hash {
	if obj := s.getStateObject(addr); obj != nil {
		return obj.GetCommittedState(key)
	}
	return common.Hash{}
}

func (s *StateDB) GetState(addr common.Address, key common.Hash) common.Hash {
	if obj := s.getStateObject(addr); obj != nil {
		return obj.GetState(key)
	}
	return common.Hash{}
}

func (s *StateDB) SetState(addr common.Address, key, value common.Hash) {
	obj := s.getOrNewStateObject(addr)
	if obj == nil {
		return
	}
	s.journal.append(storageChange{
		account:  &addr,
		key:      key,
		prevalue: obj.GetState(key),
	})
	obj.SetState(key, value)
}

func (s *StateDB) GetTransientState(addr common.Address, key common.Hash) common.Hash {
	return s.transientStorage.Get(addr, key)
}

func (s *StateDB) SetTransientState(addr common.Address, key, value common.Hash) {
	prev := s.GetTransientState(addr, key)
	if prev == value {
		return
	}
	s.journal.append(transientStorageChange{account: &addr, key: key, prevalue: prev})
	s.setTransientState(addr, key, value)
}

func (s *StateDB) setTransientState(addr common.Address, key, value common.Hash) {
	s.transientStorage.Set(addr, key, value)
}

// SelfDestruct schedules addr's balance for transfer to zero and marks it
// destroyed; the object and its code remain readable for the rest of the
// current transaction (callers may still read code/storage of a
// self-destructed account before the transaction ends) but are removed by
// the subsequent Finalise.
func (s *StateDB) SelfDestruct(addr common.Address) {
	obj := s.getStateObject(addr)
	if obj == nil {
		return
	}
	s.journal.append(selfDestructChange{
		account:     &addr,
		prev:        obj.selfDestructed,
		prevBalance: new(big.Int).Set(obj.Balance()),
	})
	obj.selfDestructed = true
	obj.setBalance(new(big.Int))
}

// Selfdestruct6780 is EIP-6780's Cancun-onward restriction: only an account
// created earlier in this same transaction is actually destroyed. For any
// older account it does nothing: the caller has already moved the balance
// to the beneficiary, and the account keeps its code and storage.
func (s *StateDB) Selfdestruct6780(addr common.Address) {
	obj := s.getStateObject(addr)
	if obj == nil || !obj.createdThisTx {
		return
	}
	s.SelfDestruct(addr)
}

func (s *StateDB) HasSelfDestructed(addr common.Address) bool {
	if obj := s.getStateObject(addr); obj != nil {
		return obj.selfDestructed
	}
	return false
}

// MarkCreatedThisTx records that addr's code was just deployed by a
// CREATE/CREATE2 in the currently-executing transaction, the bit
// Selfdestruct6780 checks.
func (s *StateDB) MarkCreatedThisTx(addr common.Address) {
	if obj := s.getStateObject(addr); obj != nil {
		obj.createdThisTx = true
	}
}

func (s *StateDB) Exist(addr common.Address) bool {
	return s.getStateObject(addr) != nil
}

func (s *StateDB) Empty(addr common.Address) bool {
	obj := s.getStateObject(addr)
	return obj == nil || obj.empty()
}

func (s *StateDB) AddressInAccessList(addr common.Address) bool {
	return s.accessList.ContainsAddress(addr)
}

func (s *StateDB) SlotInAccessList(addr common.Address, slot common.Hash) (bool, bool) {
	return s.accessList.Contains(addr, slot)
}

func (s *StateDB) AddAddressToAccessList(addr common.Address) (addrWasWarm bool) {
	wasWarm := s.accessList.ContainsAddress(addr)
	if s.accessList.AddAddress(addr) {
		s.journal.append(accessListAddAccountChange{&addr})
	}
	return wasWarm
}

func (s *StateDB) AddSlotToAccessList(addr common.Address, slot common.Hash) (addrWasWarm bool, slotWasWarm bool) {
	addrMod, slotMod := s.accessList.AddSlot(addr, slot)
	if addrMod {
		s.journal.append(accessListAddAccountChange{&addr})
	}
	if slotMod {
		s.journal.append(accessListAddSlotChange{address: &addr, slot: &slot})
	}
	return !addrMod, !slotMod
}

func (s *StateDB) RevertToSnapshot(revid int) {
	idx := sort.Search(len(s.validRevisions), func(i int) bool {
		return s.validRevisions[i].id >= revid
	})
	if idx == len(s.validRevisions) || s.validRevisions[idx].id != revid {
		panic("revision id not found")
	}
	snapshot := s.validRevisions[idx].journalIndex

	s.journal.revert(s, snapshot)
	s.validRevisions = s.validRevisions[:idx]
}

func (s *StateDB) Snapshot() int {
	id := s.nextRevisionID
	s.nextRevisionID++
	s.validRevisions = append(s.validRevisions, revision{id, s.journal.length()})
	return id
}

func (s *StateDB) AddLog(log *types.Log) {
	s.journal.append(addLogChange{txhash: s.thash})
	log.TxHash = s.thash
	log.TxIndex = uint(s.txIndex)
	log.Index = s.logSize
	s.logs[s.thash] = append(s.logs[s.thash], log)
	s.logSize++
}

// Logs returns every log emitted across all transactions processed by this
// StateDB so far.
func (s *StateDB) Logs() []*types.Log {
	var logs []*types.Log
	for _, lgs := range s.logs {
		logs = append(logs, lgs...)
	}
	return logs
}

// GetLogs returns the logs emitted by the transaction identified by hash.
func (s *StateDB) GetLogs(hash common.Hash) []*types.Log {
	return s.logs[hash]
}

func (s *StateDB) AddPreimage(hash common.Hash, preimage []byte) {
	if _, ok := s.preimages[hash]; !ok {
		pi := make([]byte, len(preimage))
		copy(pi, preimage)
		s.preimages[hash] = pi
	}
}

func (s *StateDB) Preimages() map[common.Hash][]byte {
	return s.preimages
}

// Finalise sweeps every account touched this transaction: self-destructed
// or EIP-161-empty accounts are deleted from both the object cache and the
// backing Database; everything else is written back.
func (s *StateDB) Finalise(deleteEmptyObjects bool) {
	for addr := range s.journal.dirties {
		obj, exist := s.stateObjects[addr]
		if !exist {
			continue
		}
		if obj.selfDestructed || (deleteEmptyObjects && obj.empty()) {
			obj.deleted = true
			s.db.DeleteAccount(addr)
		} else {
			s.db.PutAccount(addr, obj.account)
			for key, value := range obj.dirtyStorage {
				s.db.PutStorage(addr, key, value)
				obj.originStorage[key] = value
			}
			obj.dirtyStorage = make(Storage)
			if obj.dirtyCode {
				s.db.PutCode(common.BytesToHash(obj.account.CodeHash), obj.code)
				obj.dirtyCode = false
			}
			obj.createdThisTx = false
		}
		s.stateObjectsDirty[addr] = struct{}{}
	}
	s.clearJournalAndRefund()
}

// clearJournalAndRefund discards the per-transaction journal and refund
// counter once a transaction's effects have been finalised and can no
// longer be reverted.
func (s *StateDB) clearJournalAndRefund() {
	s.journal = newJournal()
	s.validRevisions = s.validRevisions[:0]
	s.refund = 0
}

// Copy deep-copies the entire in-flight state, used to snapshot state
// across transactions (e.g. for speculative execution or tracing) without
// touching the backing Database.
func (s *StateDB) Copy() *StateDB {
	state := &StateDB{
		db:                s.db,
		stateObjects:      make(map[common.Address]*stateObject, len(s.journal.dirties)),
		stateObjectsDirty: make(map[common.Address]struct{}, len(s.journal.dirties)),
		refund:            s.refund,
		logs:              make(map[common.Hash][]*types.Log, len(s.logs)),
		logSize:           s.logSize,
		preimages:         make(map[common.Hash][]byte, len(s.preimages)),
		journal:           newJournal(),
		accessList:        s.accessList.Copy(),
		transientStorage:  s.transientStorage.Copy(),
	}
	for addr, obj := range s.stateObjects {
		state.stateObjects[addr] = obj.deepCopy(state)
	}
	for addr := range s.stateObjectsDirty {
		if _, exist := state.stateObjects[addr]; !exist {
			state.stateObjects[addr] = s.stateObjects[addr].deepCopy(state)
		}
		state.stateObjectsDirty[addr] = struct{}{}
	}
	for hash, logs := range s.logs {
		cpy := make([]*types.Log, len(logs))
		copy(cpy, logs)
		state.logs[hash] = cpy
	}
	for hash, preimage := range s.preimages {
		state.preimages[hash] = preimage
	}
	return state
}

func (t transientStorage) Copy() transientStorage {
	cpy := make(transientStorage, len(t))
	for addr, storage := range t {
		cpy[addr] = storage.Copy()
	}
	return cpy
}
