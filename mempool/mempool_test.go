package mempool_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	warthogcommon "github.com/wolsani/warthog/common"
	"github.com/wolsani/warthog/dbcache"
	"github.com/wolsani/warthog/mempool"
	"github.com/wolsani/warthog/mempoolcfg"
	"github.com/wolsani/warthog/types"
)

func newPool(t *testing.T, maxSize int) (*mempool.Mempool, *dbcache.Memory) {
	t.Helper()
	cfg := mempoolcfg.Config{MaxSize: maxSize, MinPolicyFee: types.CompactFeeZero}
	cache := dbcache.NewMemory()
	pool := mempool.New(cfg, nil)
	return pool, cache
}

func wartReq(account types.AccountId, nonce types.PinNonce, fee types.CompactFee, wartSpend warthogcommon.Funds) mempool.TxRequest {
	return mempool.TxRequest{
		Id:        types.TransactionId{Account: account, Nonce: nonce},
		TxHash:    common.Hash{byte(account), byte(nonce), byte(fee)},
		Fee:       fee,
		TxHeight:  0,
		PinHeight: 0,
		Variant:   types.VariantWartTransfer,
		WartSpend: wartSpend,
	}
}

// Scenario 1: Empty-to-single.
func TestInsertEmptyToSingle(t *testing.T) {
	pool, cache := newPool(t, 10000)
	cache.SetBalance(types.AccountToken{Account: 7, Token: types.WART}, 200)

	entry, err := pool.Insert(wartReq(7, 1, 10, 100), cache)
	require.NoError(t, err)
	require.Equal(t, 1, pool.Size())

	got, ok := pool.Get(types.TransactionId{Account: 7, Nonce: 1})
	require.True(t, ok)
	require.Equal(t, entry, got)

	updates := pool.PopUpdates()
	require.Len(t, updates, 1)
	require.NotNil(t, updates[0].Put)
	require.Nil(t, updates[0].Erase)
}

// Scenario 2: Replacement.
func TestInsertReplacement(t *testing.T) {
	pool, cache := newPool(t, 10000)
	cache.SetBalance(types.AccountToken{Account: 7, Token: types.WART}, 200)

	_, err := pool.Insert(wartReq(7, 1, 10, 100), cache)
	require.NoError(t, err)
	pool.PopUpdates()

	replaced, err := pool.Insert(wartReq(7, 1, 11, 150), cache)
	require.NoError(t, err)
	require.Equal(t, 1, pool.Size())
	require.Equal(t, types.CompactFee(11), replaced.Fee)

	updates := pool.PopUpdates()
	require.Len(t, updates, 2)
	require.NotNil(t, updates[0].Erase)
	require.Equal(t, types.TransactionId{Account: 7, Nonce: 1}, *updates[0].Erase)
	require.NotNil(t, updates[1].Put)
	require.Equal(t, types.CompactFee(11), updates[1].Put.Fee)
}

// Duplicate txid at equal fee must be rejected with no state change.
func TestInsertDuplicateEqualFeeRejected(t *testing.T) {
	pool, cache := newPool(t, 10000)
	cache.SetBalance(types.AccountToken{Account: 7, Token: types.WART}, 200)

	_, err := pool.Insert(wartReq(7, 1, 10, 100), cache)
	require.NoError(t, err)
	pool.PopUpdates()

	_, err = pool.Insert(wartReq(7, 1, 10, 100), cache)
	require.ErrorIs(t, err, mempool.ErrNonce)
	require.Equal(t, 1, pool.Size())
	require.Empty(t, pool.PopUpdates())
}

// Scenario 3: Eviction by balance drop.
func TestSetFreeBalanceEvicts(t *testing.T) {
	pool, cache := newPool(t, 10000)
	cache.SetBalance(types.AccountToken{Account: 7, Token: types.WART}, 200)

	_, err := pool.Insert(wartReq(7, 1, 10, 100), cache)
	require.NoError(t, err)
	pool.PopUpdates()

	pool.SetFreeBalance(types.AccountToken{Account: 7, Token: types.WART}, 50)
	require.Equal(t, 0, pool.Size())

	updates := pool.PopUpdates()
	require.Len(t, updates, 1)
	require.NotNil(t, updates[0].Erase)
}

// set_free_balance(x, 0) evicts every entry of that (account, token).
func TestSetFreeBalanceToZeroEvictsAll(t *testing.T) {
	pool, cache := newPool(t, 10000)
	cache.SetBalance(types.AccountToken{Account: 7, Token: types.WART}, 200)

	_, err := pool.Insert(wartReq(7, 1, 10, 50), cache)
	require.NoError(t, err)
	_, err = pool.Insert(wartReq(7, 2, 20, 50), cache)
	require.NoError(t, err)
	require.Equal(t, 2, pool.Size())

	pool.SetFreeBalance(types.AccountToken{Account: 7, Token: types.WART}, 0)
	require.Equal(t, 0, pool.Size())
}

// Scenario 4: Cross-token admission.
func TestInsertCrossToken(t *testing.T) {
	pool, cache := newPool(t, 10000)
	cache.SetBalance(types.AccountToken{Account: 7, Token: types.WART}, 100)

	assetHash := common.Hash{0xaa}
	var tokId types.TokenId = 42
	cache.RegisterAsset(assetHash, dbcache.Asset{TokenId: tokId, LiquidityTokenId: tokId + 1})
	cache.SetBalance(types.AccountToken{Account: 7, Token: tokId}, 50)

	req := mempool.TxRequest{
		Id:        types.TransactionId{Account: 7, Nonce: 1},
		TxHash:    common.Hash{1},
		Fee:       5,
		Variant:   types.VariantAssetTransfer,
		WartSpend: 10,
		TokenSpend: &mempool.TokenSpendRequest{
			AssetHash: assetHash,
			Amount:    30,
		},
	}
	entry, err := pool.Insert(req, cache)
	require.NoError(t, err)
	require.Equal(t, tokId, entry.AltTokenId)

	wartRow, ok := pool.Get(types.TransactionId{Account: 7, Nonce: 1})
	require.True(t, ok)
	require.Equal(t, warthogcommon.Funds(10), wartRow.WartSpend)
	require.Equal(t, warthogcommon.Funds(30), wartRow.TokenSpend)
}

func TestInsertUnknownAssetRejected(t *testing.T) {
	pool, cache := newPool(t, 10000)
	cache.SetBalance(types.AccountToken{Account: 7, Token: types.WART}, 100)

	req := mempool.TxRequest{
		Id:        types.TransactionId{Account: 7, Nonce: 1},
		TxHash:    common.Hash{1},
		Fee:       5,
		WartSpend: 10,
		TokenSpend: &mempool.TokenSpendRequest{
			AssetHash: common.Hash{0xff},
			Amount:    30,
		},
	}
	_, err := pool.Insert(req, cache)
	require.ErrorIs(t, err, mempool.ErrAssetHashNotFound)
	require.Equal(t, 0, pool.Size())
}

// Scenario 5: Capacity prune.
func TestCapacityPrune(t *testing.T) {
	pool, cache := newPool(t, 2)
	for _, acct := range []types.AccountId{1, 2, 3} {
		cache.SetBalance(types.AccountToken{Account: acct, Token: types.WART}, 1000)
	}

	_, err := pool.Insert(wartReq(1, 1, 1, 10), cache)
	require.NoError(t, err)
	_, err = pool.Insert(wartReq(2, 1, 2, 10), cache)
	require.NoError(t, err)
	_, err = pool.Insert(wartReq(3, 1, 3, 10), cache)
	require.NoError(t, err)

	require.Equal(t, 2, pool.Size())
	_, stillThere := pool.Get(types.TransactionId{Account: 1, Nonce: 1})
	require.False(t, stillThere)

	updates := pool.PopUpdates()
	var puts, erases int
	for _, u := range updates {
		if u.Put != nil {
			puts++
		}
		if u.Erase != nil {
			erases++
		}
	}
	require.Equal(t, 3, puts)
	require.Equal(t, 1, erases)
}

// Scenario 6: Reorg.
func TestEraseFromHeight(t *testing.T) {
	pool, cache := newPool(t, 10000)
	cache.SetBalance(types.AccountToken{Account: 1, Token: types.WART}, 1000)
	cache.SetBalance(types.AccountToken{Account: 2, Token: types.WART}, 1000)
	cache.SetBalance(types.AccountToken{Account: 3, Token: types.WART}, 1000)

	mk := func(acct types.AccountId, height types.Height) mempool.TxRequest {
		r := wartReq(acct, 1, 5, 10)
		r.TxHeight = height
		return r
	}
	_, err := pool.Insert(mk(1, 10), cache)
	require.NoError(t, err)
	_, err = pool.Insert(mk(2, 12), cache)
	require.NoError(t, err)
	_, err = pool.Insert(mk(3, 15), cache)
	require.NoError(t, err)

	n := pool.EraseFromHeight(12)
	require.Equal(t, 2, n)
	require.Equal(t, 1, pool.Size())
	_, ok := pool.Get(types.TransactionId{Account: 1, Nonce: 1})
	require.True(t, ok)
}

func TestMinFeeReflectsCapacityPressure(t *testing.T) {
	pool, cache := newPool(t, 1)
	require.Equal(t, types.Smallest(), pool.MinFee())

	cache.SetBalance(types.AccountToken{Account: 1, Token: types.WART}, 1000)
	_, err := pool.Insert(wartReq(1, 1, 5, 10), cache)
	require.NoError(t, err)

	require.Equal(t, types.CompactFee(6), pool.MinFee())
}

func TestPopUpdatesDrainsOnce(t *testing.T) {
	pool, cache := newPool(t, 10000)
	cache.SetBalance(types.AccountToken{Account: 1, Token: types.WART}, 1000)
	_, err := pool.Insert(wartReq(1, 1, 5, 10), cache)
	require.NoError(t, err)

	require.Len(t, pool.PopUpdates(), 1)
	require.Empty(t, pool.PopUpdates())
}
