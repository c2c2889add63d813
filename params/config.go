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

package params

import (
	"math/big"
)

// ChainConfig gates which EIPs are active at a given block number. Forks are
// named by their activation block; a nil field means "never active". The
// interpreter and executor never branch on fork name directly — they query
// ChainConfig.IsXxx(blockNumber) or take a Rules snapshot once per call and
// read its booleans, exactly as the teacher's executor does.
type ChainConfig struct {
	ChainID *big.Int

	HomesteadBlock *big.Int
	EIP150Block    *big.Int // Tangerine Whistle
	EIP158Block    *big.Int // Spurious Dragon
	ByzantiumBlock *big.Int
	ConstantinopleBlock *big.Int
	PetersburgBlock     *big.Int
	IstanbulBlock       *big.Int
	BerlinBlock         *big.Int // EIP-2718/2929/2930
	LondonBlock         *big.Int // EIP-1559/3198/3529/3541
	ShanghaiBlock       *big.Int // EIP-3651/3855/3860
	CancunBlock         *big.Int // EIP-1153/4844/6780
}

func isForked(s *big.Int, n *big.Int) bool {
	if s == nil || n == nil {
		return false
	}
	return s.Cmp(n) <= 0
}

func (c *ChainConfig) IsHomestead(n *big.Int) bool    { return isForked(c.HomesteadBlock, n) }
func (c *ChainConfig) IsEIP150(n *big.Int) bool       { return isForked(c.EIP150Block, n) }
func (c *ChainConfig) IsEIP158(n *big.Int) bool       { return isForked(c.EIP158Block, n) }
func (c *ChainConfig) IsByzantium(n *big.Int) bool    { return isForked(c.ByzantiumBlock, n) }
func (c *ChainConfig) IsConstantinople(n *big.Int) bool { return isForked(c.ConstantinopleBlock, n) }
func (c *ChainConfig) IsPetersburg(n *big.Int) bool   { return isForked(c.PetersburgBlock, n) }
func (c *ChainConfig) IsIstanbul(n *big.Int) bool      { return isForked(c.IstanbulBlock, n) }
func (c *ChainConfig) IsBerlin(n *big.Int) bool        { return isForked(c.BerlinBlock, n) }
func (c *ChainConfig) IsLondon(n *big.Int) bool        { return isForked(c.LondonBlock, n) }
func (c *ChainConfig) IsShanghai(n *big.Int) bool      { return isForked(c.ShanghaiBlock, n) }
func (c *ChainConfig) IsCancun(n *big.Int) bool        { return isForked(c.CancunBlock, n) }

// Rules is a snapshot of which fork rules apply at one block number, taken
// once at the top of a call/transaction so the interpreter's hot path never
// re-walks the ChainConfig's big.Int comparisons per opcode.
type Rules struct {
	ChainID                                                 *big.Int
	IsHomestead, IsEIP150, IsEIP158                          bool
	IsByzantium, IsConstantinople, IsPetersburg, IsIstanbul  bool
	IsBerlin, IsLondon, IsShanghai, IsCancun                 bool
}

// Rules returns the fork-activation snapshot for blockNumber.
func (c *ChainConfig) Rules(blockNumber *big.Int) Rules {
	chainID := c.ChainID
	if chainID == nil {
		chainID = new(big.Int)
	}
	return Rules{
		ChainID:          new(big.Int).Set(chainID),
		IsHomestead:      c.IsHomestead(blockNumber),
		IsEIP150:         c.IsEIP150(blockNumber),
		IsEIP158:         c.IsEIP158(blockNumber),
		IsByzantium:      c.IsByzantium(blockNumber),
		IsConstantinople: c.IsConstantinople(blockNumber),
		IsPetersburg:     c.IsPetersburg(blockNumber),
		IsIstanbul:       c.IsIstanbul(blockNumber),
		IsBerlin:         c.IsBerlin(blockNumber),
		IsLondon:         c.IsLondon(blockNumber),
		IsShanghai:       c.IsShanghai(blockNumber),
		IsCancun:         c.IsCancun(blockNumber),
	}
}

// AllEthashProtocolChanges is every fork activated at block 0, used by tests
// that want the full, current rule set without constructing a bespoke config.
var AllEthashProtocolChanges = &ChainConfig{
	ChainID:             big.NewInt(1337),
	HomesteadBlock:      big.NewInt(0),
	EIP150Block:         big.NewInt(0),
	EIP158Block:         big.NewInt(0),
	ByzantiumBlock:      big.NewInt(0),
	ConstantinopleBlock: big.NewInt(0),
	PetersburgBlock:     big.NewInt(0),
	IstanbulBlock:       big.NewInt(0),
	BerlinBlock:         big.NewInt(0),
	LondonBlock:         big.NewInt(0),
	ShanghaiBlock:       big.NewInt(0),
	CancunBlock:         big.NewInt(0),
}
