package mempool

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	warthogcommon "github.com/wolsani/warthog/common"
	"github.com/wolsani/warthog/types"
)

func mkEntry(account types.AccountId, nonce types.PinNonce, fee types.CompactFee) types.Entry {
	return types.Entry{
		Id:     types.TransactionId{Account: account, Nonce: nonce},
		TxHash: common.Hash{byte(account), byte(nonce), byte(fee)},
		Fee:    fee,
	}
}

func TestStoreSixIndexConsistency(t *testing.T) {
	s := newStore(100)
	for i := 0; i < 10; i++ {
		s.insert(mkEntry(types.AccountId(i%3), types.PinNonce(i), types.CompactFee(i)))
	}
	s.assertConsistent()
	require.Equal(t, 10, s.size())

	e, ok := s.find(types.TransactionId{Account: 0, Nonce: 0})
	require.True(t, ok)
	s.erase(e)
	s.assertConsistent()
	require.Equal(t, 9, s.size())
}

func TestStoreWeakestIsLowestFee(t *testing.T) {
	s := newStore(100)
	s.insert(mkEntry(1, 1, 5))
	s.insert(mkEntry(2, 1, 1))
	s.insert(mkEntry(3, 1, 9))

	weakest, ok := s.weakest()
	require.True(t, ok)
	require.Equal(t, types.CompactFee(1), weakest.Fee)
}

func TestStoreByFeeIncLEExcludesThresholdAndAboveAndOtherAccounts(t *testing.T) {
	s := newStore(100)
	s.insert(mkEntry(1, 1, 1))
	s.insert(mkEntry(1, 2, 3))
	s.insert(mkEntry(1, 3, 5))
	s.insert(mkEntry(2, 1, 2))

	threshold := types.CompactFee(5)
	got := s.byFeeIncLE(1, &threshold)
	require.Len(t, got, 2)
	require.Equal(t, types.CompactFee(1), got[0].Fee)
	require.Equal(t, types.CompactFee(3), got[1].Fee)
}

func TestStorePinnedBeforeAndFromHeight(t *testing.T) {
	s := newStore(100)
	a := mkEntry(1, 1, 1)
	a.PinHeight = 5
	a.TxHeight = 10
	b := mkEntry(1, 2, 2)
	b.PinHeight = 15
	b.TxHeight = 20
	s.insert(a)
	s.insert(b)

	pinned := s.pinnedBefore(10)
	require.Len(t, pinned, 1)
	require.Equal(t, types.PinNonce(1), pinned[0].Id.Nonce)

	fromH := s.fromHeight(15)
	require.Len(t, fromH, 1)
	require.Equal(t, types.PinNonce(2), fromH[0].Id.Nonce)
}

func TestLedgerRowLifetime(t *testing.T) {
	l := newLedger()
	at := types.AccountToken{Account: 1, Token: types.WART}

	_, ok := l.get(at)
	require.False(t, ok)

	row := l.getOrCreate(at, constBalanceCache(100))
	row.bal.Lock(40)
	require.False(t, l.removeIfClean(at))

	row.bal.Unlock(40)
	require.True(t, l.removeIfClean(at))

	_, ok = l.get(at)
	require.False(t, ok)
}

type constBalanceCache warthogcommon.Funds

func (c constBalanceCache) Balance(types.AccountToken) warthogcommon.Funds {
	return warthogcommon.Funds(c)
}
func (c constBalanceCache) LookupAssetByHash(hash [32]byte) (AssetRecord, bool) {
	return nil, false
}
