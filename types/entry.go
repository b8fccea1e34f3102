package types

import (
	"github.com/ethereum/go-ethereum/common"

	warthogcommon "github.com/wolsani/warthog/common"
)

// Variant discriminates the kind of transaction an Entry represents. The
// mempool core never interprets a variant's payload — it only needs to know
// whether an entry is a Cancelation (for drain-time coherence, see
// CancelTarget) and, for sampling, whether an entry is a WartTransfer.
type Variant uint8

const (
	VariantWartTransfer Variant = iota
	VariantAssetTransfer
	VariantLiquidityTransfer
	VariantAssetCreation
	VariantLimitSwap
	VariantCancelation
	VariantLiquidityDeposit
	VariantLiquidityWithdrawal
)

func (v Variant) String() string {
	switch v {
	case VariantWartTransfer:
		return "wartTransfer"
	case VariantAssetTransfer:
		return "assetTransfer"
	case VariantLiquidityTransfer:
		return "liquidityTransfer"
	case VariantAssetCreation:
		return "assetCreation"
	case VariantLimitSwap:
		return "limitSwap"
	case VariantCancelation:
		return "cancelation"
	case VariantLiquidityDeposit:
		return "liquidityDeposit"
	case VariantLiquidityWithdrawal:
		return "liquidityWithdrawal"
	default:
		return "unknown"
	}
}

// Entry is an admitted transaction as the mempool sees it. Entries are
// never mutated after insertion: every field here is set once at
// construction, with the sole exception of Seq, which the store stamps at
// insertion time to break ties in the descending-fee ordering.
type Entry struct {
	TxHash     common.Hash  // content hash
	Id         TransactionId // (from_account, pin_nonce), unique in the store
	Fee        CompactFee
	TxHeight   Height // inclusion-eligibility height
	AltTokenId TokenId
	WartSpend  warthogcommon.Funds
	TokenSpend warthogcommon.Funds // zero if AltTokenId.IsWart()
	PinHeight  Height
	Variant    Variant

	// CancelTarget is only meaningful when Variant == VariantCancelation; it
	// names the txid this entry nullifies.
	CancelTarget TransactionId

	// Seq is the store's monotonic insertion sequence, used solely to break
	// ties between entries of equal fee in the descending-fee index.
	Seq uint64
}

// From is a convenience accessor mirroring the spec's "from_account" field.
func (e *Entry) From() AccountId { return e.Id.Account }

// SpendsToken reports whether e locks a non-native token in addition to WART.
func (e *Entry) SpendsToken() bool { return !e.AltTokenId.IsWart() }
