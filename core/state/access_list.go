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

package state

import "github.com/probeum/go-probeum/common"

// accessList is EIP-2929's per-transaction set of warm addresses and
// storage slots: anything in it was already paid the cold-access surcharge
// once this transaction and is charged the cheaper warm price thereafter.
type accessList struct {
	addresses map[common.Address]int
	slots     []map[common.Hash]struct{}
}

func newAccessList() *accessList {
	return &accessList{
		addresses: make(map[common.Address]int),
	}
}

// Copy deep-copies the access list, used by StateDB.Copy.
func (al *accessList) Copy() *accessList {
	cp := &accessList{
		addresses: make(map[common.Address]int, len(al.addresses)),
		slots:     make([]map[common.Hash]struct{}, len(al.slots)),
	}
	for k, v := range al.addresses {
		cp.addresses[k] = v
	}
	for i, slotMap := range al.slots {
		newSlotMap := make(map[common.Hash]struct{}, len(slotMap))
		for k := range slotMap {
			newSlotMap[k] = struct{}{}
		}
		cp.slots[i] = newSlotMap
	}
	return cp
}

// ContainsAddress reports whether address is in the access list.
func (al *accessList) ContainsAddress(address common.Address) bool {
	_, ok := al.addresses[address]
	return ok
}

// Contains reports whether (address, slot) is in the access list, returning
// separately whether the address itself is present.
func (al *accessList) Contains(address common.Address, slot common.Hash) (addressPresent bool, slotPresent bool) {
	idx, ok := al.addresses[address]
	if !ok {
		return false, false
	}
	if idx == -1 {
		return true, false
	}
	_, slotPresent = al.slots[idx][slot]
	return true, slotPresent
}

// AddAddress adds address to the access list and reports whether it was
// newly added (false if it was already present).
func (al *accessList) AddAddress(address common.Address) bool {
	if _, present := al.addresses[address]; present {
		return false
	}
	al.addresses[address] = -1
	return true
}

// AddSlot adds (address, slot) to the access list and reports whether each
// was newly added (false for one that was already present).
func (al *accessList) AddSlot(address common.Address, slot common.Hash) (addrChange bool, slotChange bool) {
	idx, addrPresent := al.addresses[address]
	if !addrPresent || idx == -1 {
		al.slots = append(al.slots, map[common.Hash]struct{}{})
		idx = len(al.slots) - 1
		al.addresses[address] = idx
		addrChange = !addrPresent
	}
	slotMap := al.slots[idx]
	if _, slotPresent := slotMap[slot]; !slotPresent {
		slotMap[slot] = struct{}{}
		slotChange = true
	}
	return addrChange, slotChange
}

// DeleteSlot undoes AddSlot for snapshot revert: it never shrinks al.slots,
// only removes the slot entry.
func (al *accessList) DeleteSlot(address common.Address, slot common.Hash) {
	idx, ok := al.addresses[address]
	if !ok {
		panic("reverting slot change, address not present in list")
	}
	delete(al.slots[idx], slot)
}

// DeleteAddress undoes AddAddress for snapshot revert.
func (al *accessList) DeleteAddress(address common.Address) {
	delete(al.addresses, address)
}
