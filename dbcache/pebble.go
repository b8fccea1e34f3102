package dbcache

import (
	"encoding/binary"
	"errors"

	"github.com/cockroachdb/pebble"
	lru "github.com/hashicorp/golang-lru/v2"

	warthogcommon "github.com/wolsani/warthog/common"
	"github.com/wolsani/warthog/mempool"
	"github.com/wolsani/warthog/types"
)

// Pebble is a DBCache backed by an on-disk pebble store, the way the
// teacher's nodestore backs its key-value reads: balances are read straight
// through on every call (the mempool never writes to chain state; only the
// node does, via PutBalance), while decoded asset records are cached behind an
// LRU of bounded size, since a node's working set of live assets is small
// and stable compared to its account count.
type Pebble struct {
	db     *pebble.DB
	assets *lru.Cache[[32]byte, Asset]
}

var ErrPebbleClosed = errors.New("dbcache: pebble handle is closed")

// NewPebble wraps an already-open pebble.DB. assetCacheSize bounds the
// number of decoded asset records kept in memory.
func NewPebble(db *pebble.DB, assetCacheSize int) (*Pebble, error) {
	c, err := lru.New[[32]byte, Asset](assetCacheSize)
	if err != nil {
		return nil, err
	}
	return &Pebble{db: db, assets: c}, nil
}

// balanceKey mirrors the teacher's flat-namespace key convention: a short
// prefix byte followed by the fixed-width fields, so balances sort
// contiguously by account and lexicographic iteration (not used by this
// cache today, but kept available for a future range-scan reconciliation
// pass) stays cheap.
func balanceKey(at types.AccountToken) []byte {
	key := make([]byte, 1+8+4)
	key[0] = 'b'
	binary.BigEndian.PutUint64(key[1:9], uint64(at.Account))
	binary.BigEndian.PutUint32(key[9:13], uint32(at.Token))
	return key
}

func assetKey(hash [32]byte) []byte {
	key := make([]byte, 1+32)
	key[0] = 'a'
	copy(key[1:], hash[:])
	return key
}

// Balance implements mempool.DBCache. A missing key means the account has
// never held that token, which is indistinguishable from a zero balance.
func (p *Pebble) Balance(at types.AccountToken) warthogcommon.Funds {
	val, closer, err := p.db.Get(balanceKey(at))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return warthogcommon.ZeroFunds
		}
		// A DBCache has no error return in its interface (spec.md §6 treats
		// committed balance as always available); a corrupt store is an
		// operational failure the node should have caught at startup, not
		// one the mempool can recover from mid-lookup.
		panic(err)
	}
	defer closer.Close()
	if len(val) != 8 {
		panic("dbcache: malformed balance record")
	}
	funds := warthogcommon.Funds(binary.BigEndian.Uint64(val))
	return funds
}

// PutBalance writes the committed balance for at. Not part of DBCache: this
// is how the node keeps the backing store in sync with chain state, a
// concern the mempool itself never touches.
func (p *Pebble) PutBalance(at types.AccountToken, funds warthogcommon.Funds) error {
	var val [8]byte
	binary.BigEndian.PutUint64(val[:], uint64(funds))
	return p.db.Set(balanceKey(at), val[:], pebble.Sync)
}

// PutAsset registers an asset record durably and primes the LRU with it.
func (p *Pebble) PutAsset(hash [32]byte, asset Asset) error {
	var val [8]byte
	binary.BigEndian.PutUint32(val[0:4], uint32(asset.TokenId))
	binary.BigEndian.PutUint32(val[4:8], uint32(asset.LiquidityTokenId))
	if err := p.db.Set(assetKey(hash), val[:], pebble.Sync); err != nil {
		return err
	}
	p.assets.Add(hash, asset)
	return nil
}

// LookupAssetByHash implements mempool.DBCache, consulting the LRU before
// falling back to pebble.
func (p *Pebble) LookupAssetByHash(hash [32]byte) (mempool.AssetRecord, bool) {
	if a, ok := p.assets.Get(hash); ok {
		return a, true
	}
	val, closer, err := p.db.Get(assetKey(hash))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, false
		}
		panic(err)
	}
	defer closer.Close()
	if len(val) != 8 {
		panic("dbcache: malformed asset record")
	}
	asset := Asset{
		TokenId:          types.TokenId(binary.BigEndian.Uint32(val[0:4])),
		LiquidityTokenId: types.TokenId(binary.BigEndian.Uint32(val[4:8])),
	}
	p.assets.Add(hash, asset)
	return asset, true
}

// Close releases the pebble handle.
func (p *Pebble) Close() error {
	return p.db.Close()
}
