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

package params

const (
	// Fee schedule parameters

	CallValueTransferGas  uint64 = 9000  // Paid for CALL when the value transfer is non-zero.            // G_callvalue
	CallNewAccountGas     uint64 = 25000 // Paid for CALL when the destination address didn't exist prior. // G_newaccount
	TxGas                 uint64 = 21000 // Per transaction not creating a contract.                      // G_transaction
	TxGasContractCreation uint64 = 53000 // Per transaction that creates a contract.                       // G_transaction + G_create
	TxDataZeroGas         uint64 = 4     // Per byte of data attached to a transaction that equals zero.   // G_txdatazero
	QuadCoeffDiv          uint64 = 512   // Divisor for the quadratic particle of the memory cost equation.
	LogDataGas            uint64 = 8     // Per byte in a LOG* operation's data.                           // G_logdata
	CallStipend           uint64 = 2300  // Free gas given at beginning of call.                           // G_callstipend
	Sha3Gas               uint64 = 30    // Once per SHA3 operation.                                       // G_sha3
	Sha3WordGas           uint64 = 6     // Once per word of the SHA3 operation's data.                    // G_sha3word

	// SSTORE gas, EIP-2200 net-metering (Istanbul onward), folded into
	// EIP-2929/3529 cold/warm and reduced-refund pricing by gasSStoreEIP2929
	// in core/vm/gas_table.go.
	SstoreSentryGasEIP2200            uint64 = 2300  // Minimum gas that must remain for SSTORE to be callable at all.
	SstoreSetGasEIP2200               uint64 = 20000 // Clean zero to non-zero.
	SstoreResetGasEIP2200             uint64 = 5000  // Clean non-zero to something else.
	SstoreClearsScheduleRefundEIP2200 uint64 = 15000 // Refund for clearing an originally non-zero slot, pre EIP-3529.
	SstoreClearsScheduleRefundEIP3529 uint64 = 4800  // EIP-3529: refund for clearing an originally non-zero slot.

	JumpdestGas   uint64 = 1     // Once per JUMPDEST operation.
	CreateDataGas uint64 = 200   // Paid per byte for a CREATE operation to place code into state. // G_codedeposit
	ExpGas        uint64 = 10    // Once per EXP instruction, before the dynamic per-byte cost.
	LogGas        uint64 = 375   // Per LOG* operation.                                             // G_log
	CopyGas       uint64 = 3     // Partial payment for COPY operations, per word copied, rounded up.
	CreateGas     uint64 = 32000 // Once per CREATE operation & contract-creation transaction.
	Create2Gas    uint64 = 32000 // Once per CREATE2 operation, excluding the hashing cost below.
	MemoryGas     uint64 = 3     // Times the highest referenced memory byte + 1.
	LogTopicGas   uint64 = 375   // Per topic in a LOG* operation.
	Keccak256WordGas uint64 = 6  // Per word hashed for CREATE2's init-code hashing step.

	TxDataNonZeroGasFrontier uint64 = 68 // Per non-zero byte of tx data, pre-Istanbul.
	TxDataNonZeroGasEIP2028  uint64 = 16 // Per non-zero byte of tx data, EIP-2028 (Istanbul).

	CallGas               uint64 = 700  // Static portion of gas for CALL-derivatives post EIP-150.
	ExtcodeSizeGas        uint64 = 700  // Cost of EXTCODESIZE post EIP-150.
	SelfdestructGas       uint64 = 5000 // Cost of SELFDESTRUCT post EIP-150.
	SelfdestructRefundGas uint64 = 24000 // Refund for SELFDESTRUCT, pre EIP-3529 (removed by EIP-3529).

	BalanceGasEIP150             uint64 = 400 // Cost of BALANCE before EIP-1884.
	BalanceGasEIP1884            uint64 = 700 // Cost of BALANCE after EIP-1884.
	SloadGasEIP150               uint64 = 200 // Cost of SLOAD before EIP-1884.
	SloadGasEIP1884              uint64 = 800 // Cost of SLOAD after EIP-1884, before EIP-2929.
	ExtcodeHashGasConstantinople uint64 = 400 // Cost of EXTCODEHASH before EIP-1884.
	ExtcodeHashGasEIP1884        uint64 = 700 // Cost of EXTCODEHASH after EIP-1884.

	// EIP-2929: cold/warm access-list gas.
	ColdAccountAccessCostEIP2929 uint64 = 2600 // First access to an address this transaction.
	ColdSloadCostEIP2929         uint64 = 2100 // First access to a storage slot this transaction.
	WarmStorageReadCostEIP2929   uint64 = 100  // Every access after the first (replaces most of the constants above).

	ExpByte uint64 = 50 // Dynamic per-byte cost of the EXP exponent, post EIP-158.

	ExtcodeCopyBase uint64 = 700 // Static portion of EXTCODECOPY, post EIP-150.

	// CreateBySelfdestructGas is charged when SELFDESTRUCT transfers value to
	// an account that does not yet exist.
	CreateBySelfdestructGas uint64 = 25000

	// Precompiled contract gas prices.
	EcrecoverGas        uint64 = 3000
	Sha256BaseGas       uint64 = 60
	Sha256PerWordGas    uint64 = 12
	Ripemd160BaseGas    uint64 = 600
	Ripemd160PerWordGas uint64 = 120
	IdentityBaseGas     uint64 = 15
	IdentityPerWordGas  uint64 = 3
	ModExpQuadCoeffDiv  uint64 = 20

	Bn256AddGasByzantium             uint64 = 500
	Bn256ScalarMulGasByzantium       uint64 = 40000
	Bn256PairingBaseGasByzantium     uint64 = 100000
	Bn256PairingPerPointGasByzantium uint64 = 80000

	// DilithiumVerifyGas prices this chain's post-quantum signature
	// precompile; set well above ECRECOVER to reflect Dilithium2's larger
	// public key and signature.
	DilithiumVerifyGas uint64 = 10000

	CallCreateDepth uint64 = 1024  // Maximum depth of the call/create stack.
	StackLimit      uint64 = 1024  // Maximum size of the VM stack.
	MaxCodeSize     uint64 = 24576 // EIP-170: maximum bytecode size for a deployed contract.
	MaxInitCodeSize uint64 = 2 * MaxCodeSize // EIP-3860: maximum size for CREATE/CREATE2 init code.

	InitCodeWordGas uint64 = 2 // EIP-3860: per-word gas charged on init code size.

	// EIP-2930: per-entry intrinsic gas for a transaction's access list.
	TxAccessListAddressGas    uint64 = 2400
	TxAccessListStorageKeyGas uint64 = 1900

	RefundQuotient         uint64 = 2 // Pre EIP-3529: gas refunds capped to gasUsed / 2.
	RefundQuotientEIP3529  uint64 = 5 // EIP-3529: gas refunds capped to gasUsed / 5.

	MaxCallDepth = 1024 // call/create nesting limit (Non-goal's "reasonable fixed limit", spec.md §4.5).
)
