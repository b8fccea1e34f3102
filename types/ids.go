// Package types holds the mempool's data model: identifiers, the compact
// fee representation, and the admitted-entry record. None of these types
// carry behavior beyond comparison and construction — the algorithms that
// operate on them live in package mempool.
package types

// AccountId identifies an account on the chain. Unlike an address-keyed
// chain, Warthog accounts are small dense integers assigned by the chain
// state, so AccountId is a plain uint64 rather than a fixed-size hash.
type AccountId uint64

// TokenId identifies a fungible asset. The zero value is the distinguished
// native currency.
type TokenId uint32

// WART is the distinguished native-currency token id.
const WART TokenId = 0

// IsWart reports whether id refers to the native currency.
func (id TokenId) IsWart() bool { return id == WART }

// Height is a block height. An entry's TxHeight and PinHeight are both plain
// Heights, distinguished by field name only; the distinction matters to the
// reorg/pin-expiry call sites, not to the type system.
type Height uint64

// PinNonce is the per-account nonce component of a TransactionId. Despite
// the name, it need not be sequential — the mempool only requires it be
// unique per account among live entries.
type PinNonce uint64

// TransactionId is the logical identity of a mempool entry: an account and
// a pin nonce. It is unique within the store and totally ordered by
// account, then nonce.
type TransactionId struct {
	Account AccountId
	Nonce   PinNonce
}

// Less gives TransactionId a total order: by account, then by nonce.
func (id TransactionId) Less(other TransactionId) bool {
	if id.Account != other.Account {
		return id.Account < other.Account
	}
	return id.Nonce < other.Nonce
}

// AccountToken is the composite key under which locked-balance reservations
// and per-token replacement orderings are tracked. It is ordered by
// account, then token.
type AccountToken struct {
	Account AccountId
	Token   TokenId
}

// Less gives AccountToken a total order: by account, then by token.
func (at AccountToken) Less(other AccountToken) bool {
	if at.Account != other.Account {
		return at.Account < other.Account
	}
	return at.Token < other.Token
}
