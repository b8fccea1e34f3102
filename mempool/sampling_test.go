package mempool_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/wolsani/warthog/mempool"
	"github.com/wolsani/warthog/types"
)

func TestGetTransactionsCancelationCoherence(t *testing.T) {
	pool, cache := newPool(t, 10000)
	cache.SetBalance(types.AccountToken{Account: 1, Token: types.WART}, 1000)
	cache.SetBalance(types.AccountToken{Account: 2, Token: types.WART}, 1000)

	target := wartReq(1, 1, 5, 10)
	_, err := pool.Insert(target, cache)
	require.NoError(t, err)

	cancel := mempool.TxRequest{
		Id:           types.TransactionId{Account: 2, Nonce: 1},
		TxHash:       common.Hash{9},
		Fee:          20, // higher fee: would sort first in descending order
		Variant:      types.VariantCancelation,
		CancelTarget: target.Id,
		WartSpend:    5,
	}
	_, err = pool.Insert(cancel, cache)
	require.NoError(t, err)

	got := pool.GetTransactions(10, 0, nil)
	require.Len(t, got, 1)
	require.Equal(t, cancel.Id, got[0].Id)
}

// get_transactions applies exactly two filters (historical compat,
// cancelation coherence); an entry's own txheight never gates it, matching
// mempool.cpp's get_transactions, which only consults height for the
// unblockXeggexHeight compat check.
func TestGetTransactionsIgnoresEntryTxHeight(t *testing.T) {
	pool, cache := newPool(t, 10000)
	cache.SetBalance(types.AccountToken{Account: 1, Token: types.WART}, 1000)

	farFuture := wartReq(1, 1, 5, 10)
	farFuture.TxHeight = 1_000_000
	_, err := pool.Insert(farFuture, cache)
	require.NoError(t, err)

	got := pool.GetTransactions(10, 0, nil)
	require.Len(t, got, 1)
	require.Equal(t, farFuture.Id, got[0].Id)
}

func TestSampleRespectsLimitAndVariant(t *testing.T) {
	pool, cache := newPool(t, 10000)
	cache.SetBalance(types.AccountToken{Account: 1, Token: types.WART}, 1000)
	cache.SetBalance(types.AccountToken{Account: 2, Token: types.WART}, 1000)

	wart := wartReq(1, 1, 10, 5)
	_, err := pool.Insert(wart, cache)
	require.NoError(t, err)

	other := mempool.TxRequest{
		Id:        types.TransactionId{Account: 2, Nonce: 1},
		TxHash:    common.Hash{2},
		Fee:       20,
		Variant:   types.VariantAssetCreation,
		WartSpend: 5,
	}
	_, err = pool.Insert(other, cache)
	require.NoError(t, err)

	all := pool.Sample(10, false)
	require.Len(t, all, 2)

	onlyWart := pool.Sample(10, true)
	require.Len(t, onlyWart, 1)
	require.Equal(t, wart.Id, onlyWart[0].Id)
}

func TestFilterNewDistinguishesUnknownAndReplacement(t *testing.T) {
	// maxSize=1 so the pool is at capacity and min_fee() rises above zero,
	// giving the "unknown but below floor" branch something to reject.
	pool, cache := newPool(t, 1)
	cache.SetBalance(types.AccountToken{Account: 1, Token: types.WART}, 1000)
	_, err := pool.Insert(wartReq(1, 1, 10, 5), cache)
	require.NoError(t, err)

	ads := []mempool.Advert{
		{Id: types.TransactionId{Account: 1, Nonce: 1}, Fee: 10}, // known, not strictly lower: excluded
		{Id: types.TransactionId{Account: 1, Nonce: 1}, Fee: 20}, // known, strictly higher than recorded: included
		{Id: types.TransactionId{Account: 9, Nonce: 1}, Fee: 0},  // unknown, below floor: excluded
	}
	out := pool.FilterNew(ads)
	require.Len(t, out, 1)
	require.Equal(t, types.TransactionId{Account: 1, Nonce: 1}, out[0])
}
