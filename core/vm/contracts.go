// Copyright 2015 The go-ethereum Authors
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
	"crypto/sha256"
	"errors"
	"math/big"

	"golang.org/x/crypto/ripemd160"

	"github.com/probeum/go-probeum/common"
	"github.com/probeum/go-probeum/crypto/dilithium"
	"github.com/probeum/go-probeum/params"
)

// ErrOutOfGas is returned by RunPrecompiledContract, reusing the
// interpreter's own sentinel so callers classify it the same way as any
// other out-of-gas halt.

// PrecompiledContractsHomestead through PrecompiledContractsBerlin hold the
// fixed-address native contracts available under each fork, keyed by their
// reserved address. Addresses 0x01-0x08 follow the Ethereum mainnet
// allocation; 0x14 is this chain's own Dilithium signature-verification
// precompile.
var (
	PrecompiledContractsHomestead = map[common.Address]PrecompiledContract{
		common.BytesToAddress([]byte{1}): &ecrecover{},
		common.BytesToAddress([]byte{2}): &sha256hash{},
		common.BytesToAddress([]byte{3}): &ripemd160hash{},
		common.BytesToAddress([]byte{4}): &dataCopy{},
	}

	PrecompiledContractsByzantium = map[common.Address]PrecompiledContract{
		common.BytesToAddress([]byte{1}): &ecrecover{},
		common.BytesToAddress([]byte{2}): &sha256hash{},
		common.BytesToAddress([]byte{3}): &ripemd160hash{},
		common.BytesToAddress([]byte{4}): &dataCopy{},
		common.BytesToAddress([]byte{5}): &bigModExp{},
		common.BytesToAddress([]byte{6}): &bn256AddByzantium{},
		common.BytesToAddress([]byte{7}): &bn256ScalarMulByzantium{},
		common.BytesToAddress([]byte{8}): &bn256PairingByzantium{},
	}

	PrecompiledContractsBerlin = map[common.Address]PrecompiledContract{
		common.BytesToAddress([]byte{1}):  &ecrecover{},
		common.BytesToAddress([]byte{2}):  &sha256hash{},
		common.BytesToAddress([]byte{3}):  &ripemd160hash{},
		common.BytesToAddress([]byte{4}):  &dataCopy{},
		common.BytesToAddress([]byte{5}):  &bigModExp{},
		common.BytesToAddress([]byte{6}):  &bn256AddByzantium{},
		common.BytesToAddress([]byte{7}):  &bn256ScalarMulByzantium{},
		common.BytesToAddress([]byte{8}):  &bn256PairingByzantium{},
		common.BytesToAddress([]byte{20}): &dilithiumVerify{},
	}
)

// activePrecompiledContracts picks the precompile set matching the active
// fork, newest first.
func activePrecompiledContracts(rules params.Rules) map[common.Address]PrecompiledContract {
	switch {
	case rules.IsBerlin:
		return PrecompiledContractsBerlin
	case rules.IsByzantium:
		return PrecompiledContractsByzantium
	default:
		return PrecompiledContractsHomestead
	}
}

// RunPrecompiledContract runs p against input, charging its declared gas
// cost before execution. A precompile's own Run error is surfaced as-is;
// it never panics.
func RunPrecompiledContract(p PrecompiledContract, input []byte, suppliedGas uint64) (ret []byte, remainingGas uint64, err error) {
	gasCost := p.RequiredGas(input)
	if suppliedGas < gasCost {
		return nil, 0, ErrOutOfGas
	}
	suppliedGas -= gasCost
	output, err := p.Run(input)
	return output, suppliedGas, err
}

// ecrecover stands in for Ethereum mainnet's ECRECOVER (0x01). This chain's
// account recovery goes through Dilithium signatures rather than secp256k1,
// so there is no signer implementation to ground this on; Run always fails
// with errNotImplementedPrecompile rather than fabricating a recovery.
type ecrecover struct{}

func (c *ecrecover) RequiredGas(input []byte) uint64 { return params.EcrecoverGas }

func (c *ecrecover) Run(input []byte) ([]byte, error) {
	return nil, errNotImplementedPrecompile
}

type sha256hash struct{}

func (c *sha256hash) RequiredGas(input []byte) uint64 {
	return uint64(len(input)+31)/32*params.Sha256PerWordGas + params.Sha256BaseGas
}

func (c *sha256hash) Run(input []byte) ([]byte, error) {
	h := sha256.Sum256(input)
	return h[:], nil
}

type ripemd160hash struct{}

func (c *ripemd160hash) RequiredGas(input []byte) uint64 {
	return uint64(len(input)+31)/32*params.Ripemd160PerWordGas + params.Ripemd160BaseGas
}

func (c *ripemd160hash) Run(input []byte) ([]byte, error) {
	ripemd := ripemd160.New()
	ripemd.Write(input)
	out := make([]byte, 32)
	copy(out[32-ripemd.Size():], ripemd.Sum(nil))
	return out, nil
}

// dataCopy implements IDENTITY (0x04): it returns its input unchanged.
type dataCopy struct{}

func (c *dataCopy) RequiredGas(input []byte) uint64 {
	return uint64(len(input)+31)/32*params.IdentityPerWordGas + params.IdentityBaseGas
}

func (c *dataCopy) Run(input []byte) ([]byte, error) {
	return common.CopyBytes(input), nil
}

// bigModExp implements MODEXP (0x05): base^exp mod modulus, each operand an
// arbitrary-length big-endian integer whose lengths are given up front.
type bigModExp struct{}

func (c *bigModExp) RequiredGas(input []byte) uint64 {
	baseLen := new(big.Int).SetBytes(getData(input, 0, 32)).Uint64()
	expLen := new(big.Int).SetBytes(getData(input, 32, 32)).Uint64()
	modLen := new(big.Int).SetBytes(getData(input, 64, 32)).Uint64()

	maxLen := baseLen
	if expLen > maxLen {
		maxLen = expLen
	}
	if modLen > maxLen {
		maxLen = modLen
	}
	words := (maxLen + 7) / 8
	gas := words * words
	if gas < params.ModExpQuadCoeffDiv {
		gas = params.ModExpQuadCoeffDiv
	}
	return gas / params.ModExpQuadCoeffDiv
}

func (c *bigModExp) Run(input []byte) ([]byte, error) {
	var (
		baseLen = new(big.Int).SetBytes(getData(input, 0, 32)).Uint64()
		expLen  = new(big.Int).SetBytes(getData(input, 32, 32)).Uint64()
		modLen  = new(big.Int).SetBytes(getData(input, 64, 32)).Uint64()
	)
	if len(input) > 96 {
		input = input[96:]
	} else {
		input = input[:0]
	}
	base := new(big.Int).SetBytes(getData(input, 0, baseLen))
	exp := new(big.Int).SetBytes(getData(input, baseLen, expLen))
	mod := new(big.Int).SetBytes(getData(input, baseLen+expLen, modLen))

	if mod.BitLen() == 0 {
		return make([]byte, modLen), nil
	}
	result := new(big.Int).Exp(base, exp, mod).Bytes()
	out := make([]byte, modLen)
	copy(out[uint64(len(out))-uint64(len(result)):], result)
	return out, nil
}

// bn256AddByzantium, bn256ScalarMulByzantium and bn256PairingByzantium stand
// in for the alt_bn128 EC operations (0x06-0x08). Curve arithmetic over
// alt_bn128 has no grounding in this chain's own crypto package, so they
// report the unimplemented sentinel instead of a fabricated result.
type bn256AddByzantium struct{}

func (c *bn256AddByzantium) RequiredGas(input []byte) uint64 { return params.Bn256AddGasByzantium }
func (c *bn256AddByzantium) Run(input []byte) ([]byte, error) {
	return nil, errNotImplementedPrecompile
}

type bn256ScalarMulByzantium struct{}

func (c *bn256ScalarMulByzantium) RequiredGas(input []byte) uint64 {
	return params.Bn256ScalarMulGasByzantium
}
func (c *bn256ScalarMulByzantium) Run(input []byte) ([]byte, error) {
	return nil, errNotImplementedPrecompile
}

type bn256PairingByzantium struct{}

func (c *bn256PairingByzantium) RequiredGas(input []byte) uint64 {
	return params.Bn256PairingBaseGasByzantium + uint64(len(input)/192)*params.Bn256PairingPerPointGasByzantium
}
func (c *bn256PairingByzantium) Run(input []byte) ([]byte, error) {
	return nil, errNotImplementedPrecompile
}

// dilithiumVerify is this chain's own precompile: it checks a Dilithium2
// signature and returns the signer's derived address, mirroring ECRECOVER's
// role but for a post-quantum signature scheme.
// Input: hash(32) || pubkey(1312) || sig(2420); output: 32-byte left-padded
// address, or all zero if the signature doesn't verify.
type dilithiumVerify struct{}

const dilithiumVerifyInputLen = 32 + dilithium.PublicKeySize + dilithium.SignatureSize

func (c *dilithiumVerify) RequiredGas(input []byte) uint64 { return params.DilithiumVerifyGas }

func (c *dilithiumVerify) Run(input []byte) ([]byte, error) {
	input = getData(input, 0, dilithiumVerifyInputLen)

	hash := input[:32]
	pubkeyBytes := input[32 : 32+dilithium.PublicKeySize]
	sigBytes := input[32+dilithium.PublicKeySize : dilithiumVerifyInputLen]

	pub, err := dilithium.UnmarshalPublicKey(pubkeyBytes)
	if err != nil {
		return make([]byte, 32), nil
	}
	if !dilithium.Verify(pub, hash, sigBytes) {
		return make([]byte, 32), nil
	}
	addr := dilithium.PubkeyToAddress(pub)
	out := make([]byte, 32)
	copy(out[12:], addr.Bytes())
	return out, nil
}

var errNotImplementedPrecompile = errors.New("vm: precompile not implemented by this engine")
