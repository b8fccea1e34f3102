// Package dbcache provides concrete DBCache backings for package mempool:
// an in-memory map (tests, simulation) and a pebble-backed store fronted by
// an LRU of decoded asset records (the shape of cache most chain-facing
// nodes actually want, grounded on the storage layer of the teacher's
// wider ecosystem).
package dbcache

import (
	"sync"

	warthogcommon "github.com/wolsani/warthog/common"
	"github.com/wolsani/warthog/mempool"
	"github.com/wolsani/warthog/types"
)

// Asset is the concrete AssetRecord this package hands back from either
// backing: an asset's own token id, and its paired liquidity-share id.
type Asset struct {
	TokenId          types.TokenId
	LiquidityTokenId types.TokenId
}

// TokenID implements mempool.AssetRecord.
func (a Asset) TokenID(isLiquidity bool) types.TokenId {
	if isLiquidity {
		return a.LiquidityTokenId
	}
	return a.TokenId
}

// Memory is a DBCache backed by plain Go maps, guarded by a mutex so it can
// be shared between a test's setup goroutine and the single-threaded
// mempool under test. It is the cache of record for the mempool test suite.
type Memory struct {
	mu       sync.Mutex
	balances map[types.AccountToken]warthogcommon.Funds
	assets   map[[32]byte]Asset
}

// NewMemory returns an empty in-memory cache; every account starts with a
// zero balance in every token and no assets registered.
func NewMemory() *Memory {
	return &Memory{
		balances: make(map[types.AccountToken]warthogcommon.Funds),
		assets:   make(map[[32]byte]Asset),
	}
}

// Balance implements mempool.DBCache.
func (m *Memory) Balance(at types.AccountToken) warthogcommon.Funds {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balances[at]
}

// LookupAssetByHash implements mempool.DBCache.
func (m *Memory) LookupAssetByHash(hash [32]byte) (mempool.AssetRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.assets[hash]
	if !ok {
		return nil, false
	}
	return a, true
}

// SetBalance installs the committed balance for at. Test setup and
// reconciliation simulation use this to mimic a chain-state update before
// calling Mempool.SetFreeBalance with the same value.
func (m *Memory) SetBalance(at types.AccountToken, funds warthogcommon.Funds) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[at] = funds
}

// RegisterAsset makes hash resolvable to asset.
func (m *Memory) RegisterAsset(hash [32]byte, asset Asset) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assets[hash] = asset
}
