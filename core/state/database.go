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

// Package state is the journaled, revertible world-state view the
// interpreter reads and writes through. It owns no persistence of its own:
// every account and storage slot not yet touched this execution is pulled
// from a Database collaborator and cached here for the lifetime of the
// StateDB.
package state

import (
	"math/big"

	"github.com/VictoriaMetrics/fastcache"
	lru "github.com/hashicorp/golang-lru"

	"github.com/probeum/go-probeum/common"
)

// Account is the persisted shape of one account as the backing Database
// returns it: balance, nonce and code hash. Storage is fetched slot by slot
// through GetStorage rather than bundled here.
type Account struct {
	Nonce    uint64
	Balance  *big.Int
	CodeHash []byte
}

// Database is the external account/storage backend a StateDB is opened
// against. It never sees uncommitted changes: those live in the StateDB's
// state objects until StateDB.Finalise copies them back through Database's
// write-back methods.
type Database interface {
	GetAccount(addr common.Address) (Account, bool)
	GetStorage(addr common.Address, key common.Hash) common.Hash
	GetCode(codeHash common.Hash) []byte

	PutAccount(addr common.Address, account Account)
	PutStorage(addr common.Address, key, value common.Hash)
	PutCode(codeHash common.Hash, code []byte)
	DeleteAccount(addr common.Address)
}

// MemoryDatabase is the reference Database: a process-local account map plus
// a fastcache-backed storage cache and an LRU code cache, matching the
// caching split go-ethereum's own trie-backed Database draws between "hot"
// account/storage data and immutable code blobs.
type MemoryDatabase struct {
	accounts map[common.Address]Account
	storage  *fastcache.Cache
	code     *lru.Cache
}

// NewMemoryDatabase builds an empty MemoryDatabase. storageCacheBytes sizes
// the fastcache storage cache; codeCacheSize is the LRU code-cache entry
// count.
func NewMemoryDatabase(storageCacheBytes, codeCacheSize int) *MemoryDatabase {
	codeCache, err := lru.New(codeCacheSize)
	if err != nil {
		panic(err) // only fails on a non-positive size, which is a caller bug
	}
	return &MemoryDatabase{
		accounts: make(map[common.Address]Account),
		storage:  fastcache.New(storageCacheBytes),
		code:     codeCache,
	}
}

func storageCacheKey(addr common.Address, key common.Hash) []byte {
	buf := make([]byte, common.AddressLength+common.HashLength)
	copy(buf, addr[:])
	copy(buf[common.AddressLength:], key[:])
	return buf
}

func (db *MemoryDatabase) GetAccount(addr common.Address) (Account, bool) {
	acc, ok := db.accounts[addr]
	return acc, ok
}

func (db *MemoryDatabase) GetStorage(addr common.Address, key common.Hash) common.Hash {
	if v, ok := db.storage.HasGet(nil, storageCacheKey(addr, key)); ok {
		return common.BytesToHash(v)
	}
	return common.Hash{}
}

func (db *MemoryDatabase) GetCode(codeHash common.Hash) []byte {
	if v, ok := db.code.Get(codeHash); ok {
		return v.([]byte)
	}
	return nil
}

func (db *MemoryDatabase) PutAccount(addr common.Address, account Account) {
	db.accounts[addr] = account
}

func (db *MemoryDatabase) PutStorage(addr common.Address, key, value common.Hash) {
	db.storage.Set(storageCacheKey(addr, key), value.Bytes())
}

func (db *MemoryDatabase) PutCode(codeHash common.Hash, code []byte) {
	db.code.Add(codeHash, code)
}

func (db *MemoryDatabase) DeleteAccount(addr common.Address) {
	delete(db.accounts, addr)
}
