package mempool

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/btree"

	"github.com/wolsani/warthog/types"
)

// store is the transaction multi-index described in spec.md §3/§4.2: one
// owning primary map keyed by TransactionId, plus five non-owning orderings
// over the same *types.Entry pointers. Entries are heap-allocated by Go and
// never moved, so a pointer obtained from any index stays valid until that
// entry is erased from the store — this is the "arena + dense index"
// contract Design Note §9 asks for, realized with the garbage collector as
// the arena.
type store struct {
	maxSize int
	seq     uint64

	primary map[types.TransactionId]*types.Entry
	byHash  map[common.Hash]*types.Entry

	byFeeDesc         *btree.BTreeG[*types.Entry] // descending fee, ties by insertion order
	byAccountFee      *btree.BTreeG[*types.Entry] // (account, fee asc)
	byAccountTokenFee *btree.BTreeG[*types.Entry] // (account, altToken, fee asc)
	byPinHeight       *btree.BTreeG[*types.Entry] // pin height asc
	byTxHeight        *btree.BTreeG[*types.Entry] // txheight asc
}

func newStore(maxSize int) *store {
	if maxSize <= 0 {
		panic("mempool: maxSize must be strictly positive")
	}
	return &store{
		maxSize: maxSize,
		primary: make(map[types.TransactionId]*types.Entry),
		byHash:  make(map[common.Hash]*types.Entry),
		byFeeDesc: btree.NewG(32, func(a, b *types.Entry) bool {
			if a.Fee != b.Fee {
				return a.Fee > b.Fee // higher fee sorts first (descending)
			}
			return a.Seq < b.Seq
		}),
		byAccountFee: btree.NewG(32, func(a, b *types.Entry) bool {
			if a.Id.Account != b.Id.Account {
				return a.Id.Account < b.Id.Account
			}
			if a.Fee != b.Fee {
				return a.Fee < b.Fee
			}
			return a.Id.Nonce < b.Id.Nonce
		}),
		byAccountTokenFee: btree.NewG(32, func(a, b *types.Entry) bool {
			if a.Id.Account != b.Id.Account {
				return a.Id.Account < b.Id.Account
			}
			if a.AltTokenId != b.AltTokenId {
				return a.AltTokenId < b.AltTokenId
			}
			if a.Fee != b.Fee {
				return a.Fee < b.Fee
			}
			return a.Id.Nonce < b.Id.Nonce
		}),
		byPinHeight: btree.NewG(32, func(a, b *types.Entry) bool {
			if a.PinHeight != b.PinHeight {
				return a.PinHeight < b.PinHeight
			}
			return a.Id.Less(b.Id)
		}),
		byTxHeight: btree.NewG(32, func(a, b *types.Entry) bool {
			if a.TxHeight != b.TxHeight {
				return a.TxHeight < b.TxHeight
			}
			return a.Id.Less(b.Id)
		}),
	}
}

func (s *store) size() int { return len(s.primary) }

// assertConsistent checks Invariant 1 of spec.md §8: all six indices refer
// to the same set of entries. It is called after every mutation; a
// mismatch is a programming error.
func (s *store) assertConsistent() {
	n := len(s.primary)
	if len(s.byHash) != n || s.byFeeDesc.Len() != n || s.byAccountFee.Len() != n ||
		s.byAccountTokenFee.Len() != n || s.byPinHeight.Len() != n || s.byTxHeight.Len() != n {
		panic("mempool: store indices diverged in size")
	}
}

func (s *store) find(id types.TransactionId) (*types.Entry, bool) {
	e, ok := s.primary[id]
	return e, ok
}

func (s *store) findByHash(h common.Hash) (*types.Entry, bool) {
	e, ok := s.byHash[h]
	return e, ok
}

// insert adds e to all six indices, stamping its insertion sequence. The
// caller (the admission engine) guarantees id uniqueness; a duplicate here
// is a caller bug, asserted rather than reported as an error.
func (s *store) insert(e types.Entry) *types.Entry {
	if _, exists := s.primary[e.Id]; exists {
		panic("mempool: duplicate txid inserted into store")
	}
	e.Seq = s.seq
	s.seq++
	stored := &e

	s.primary[stored.Id] = stored
	s.byHash[stored.TxHash] = stored
	s.byFeeDesc.ReplaceOrInsert(stored)
	s.byAccountFee.ReplaceOrInsert(stored)
	s.byAccountTokenFee.ReplaceOrInsert(stored)
	s.byPinHeight.ReplaceOrInsert(stored)
	s.byTxHeight.ReplaceOrInsert(stored)
	s.assertConsistent()
	return stored
}

// erase removes e from all six indices.
func (s *store) erase(e *types.Entry) {
	if _, ok := s.primary[e.Id]; !ok {
		panic("mempool: erase of unknown entry")
	}
	delete(s.primary, e.Id)
	delete(s.byHash, e.TxHash)
	if _, ok := s.byFeeDesc.Delete(e); !ok {
		panic("mempool: byFeeDesc missing entry on erase")
	}
	if _, ok := s.byAccountFee.Delete(e); !ok {
		panic("mempool: byAccountFee missing entry on erase")
	}
	if _, ok := s.byAccountTokenFee.Delete(e); !ok {
		panic("mempool: byAccountTokenFee missing entry on erase")
	}
	if _, ok := s.byPinHeight.Delete(e); !ok {
		panic("mempool: byPinHeight missing entry on erase")
	}
	if _, ok := s.byTxHeight.Delete(e); !ok {
		panic("mempool: byTxHeight missing entry on erase")
	}
	s.assertConsistent()
}

// weakest returns the live entry with the lowest fee (the descending-fee
// index's tail), or ok=false if the store is empty.
func (s *store) weakest() (*types.Entry, bool) {
	return s.byFeeDesc.Max()
}

// minFee implements spec.md §4.2's min_fee(): the floor a newcomer's fee
// must clear, accounting for capacity pressure.
func (s *store) minFee(policyMinFee types.CompactFee) types.CompactFee {
	floor := types.Smallest()
	if s.size() >= s.maxSize {
		weakest, ok := s.weakest()
		if ok {
			floor = weakest.Fee.Next()
		}
	}
	if policyMinFee.Cmp(floor) > 0 {
		return policyMinFee
	}
	return floor
}

// byFeeIncLE returns the entries of account in ascending fee order, up to
// (but not including) an optional fee threshold. Used by the admission
// simulator (Step 4) and by set_free_balance's WART eviction loop.
func (s *store) byFeeIncLE(account types.AccountId, threshold *types.CompactFee) []*types.Entry {
	var out []*types.Entry
	pivot := &types.Entry{Id: types.TransactionId{Account: account}}
	s.byAccountFee.AscendGreaterOrEqual(pivot, func(e *types.Entry) bool {
		if e.Id.Account != account {
			return false
		}
		if threshold != nil && e.Fee.Cmp(*threshold) >= 0 {
			return false
		}
		out = append(out, e)
		return true
	})
	return out
}

// accountTokenFeeAsc returns the entries of (account, token) in ascending
// fee order. Used by the admission simulator's token-balance step and by
// set_free_balance's non-WART eviction loop.
func (s *store) accountTokenFeeAsc(account types.AccountId, token types.TokenId) []*types.Entry {
	var out []*types.Entry
	pivot := &types.Entry{Id: types.TransactionId{Account: account}, AltTokenId: token}
	s.byAccountTokenFee.AscendGreaterOrEqual(pivot, func(e *types.Entry) bool {
		if e.Id.Account != account || e.AltTokenId != token {
			return false
		}
		out = append(out, e)
		return true
	})
	return out
}

// pinnedBefore returns entries with PinHeight < h, ascending.
func (s *store) pinnedBefore(h types.Height) []*types.Entry {
	var out []*types.Entry
	s.byPinHeight.Ascend(func(e *types.Entry) bool {
		if e.PinHeight >= h {
			return false
		}
		out = append(out, e)
		return true
	})
	return out
}

// fromHeight returns entries with TxHeight >= h, ascending.
func (s *store) fromHeight(h types.Height) []*types.Entry {
	var out []*types.Entry
	pivot := &types.Entry{TxHeight: h}
	s.byTxHeight.AscendGreaterOrEqual(pivot, func(e *types.Entry) bool {
		out = append(out, e)
		return true
	})
	return out
}

// descendByFee calls f on live entries in descending-fee order (ties by
// insertion sequence) until f returns false or entries are exhausted.
// Read-only: used by sample and get_transactions.
func (s *store) descendByFee(f func(e *types.Entry) bool) {
	s.byFeeDesc.Ascend(func(e *types.Entry) bool {
		return f(e)
	})
}
