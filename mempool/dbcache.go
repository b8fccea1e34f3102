package mempool

import (
	warthogcommon "github.com/wolsani/warthog/common"
	"github.com/wolsani/warthog/types"
)

// DBCache is the read-only view of committed chain state the mempool needs
// during admission. It is consumed, never owned: the mempool holds no
// reference to it outside the span of a single Insert call, and every call
// is synchronous and must not re-enter the mempool. Concrete
// implementations (durability, caching, consistency) are out of scope for
// this package — see package dbcache for a demo backing.
type DBCache interface {
	// Balance returns the committed balance for (account, token), or zero
	// if the account has never held that token.
	Balance(at types.AccountToken) warthogcommon.Funds

	// LookupAssetByHash resolves a token by the hash of its creation
	// transaction. ok is false if no such asset is known.
	LookupAssetByHash(hash [32]byte) (AssetRecord, bool)
}

// AssetRecord is the asset metadata DBCache hands back for a resolved asset
// hash. isLiquidity selects between the asset's own token id and its
// liquidity-share token id.
type AssetRecord interface {
	TokenID(isLiquidity bool) types.TokenId
}

// PutEvent and EraseEvent are the payloads passed to EventSink; they carry
// just enough information for an observer (an API layer, a replica) to
// react without reaching back into the mempool.
type PutEvent struct {
	Entry types.Entry
}

type EraseEvent struct {
	Id types.TransactionId
}

// EventSink is the best-effort observer described in spec.md §6. Both
// callbacks are notifications only: a panic or error inside an
// implementation must never be allowed to propagate into mempool code, so
// the mempool always invokes EventSink through a recover-guarded helper
// (see events.go).
type EventSink interface {
	OnMempoolAdd(put PutEvent, newSize int)
	OnMempoolErase(erase EraseEvent, newSize int)
}
