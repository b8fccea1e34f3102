package mempool

import (
	warthogcommon "github.com/wolsani/warthog/common"
	"github.com/wolsani/warthog/types"
)

// SetFreeBalance implements spec.md §4.5's set_free_balance: the chain's
// committed balance for at has changed to newBalance. If the existing
// reservation still fits, only the ledger row is updated. Otherwise entries
// are evicted, cheapest first, until the new balance fits or none are left
// to evict.
func (m *Mempool) SetFreeBalance(at types.AccountToken, newBalance warthogcommon.Funds) {
	row, ok := m.ledger.get(at)
	if !ok {
		return
	}
	if row.bal.TrySetAvail(newBalance) {
		return
	}

	if at.Token == types.WART {
		for _, e := range m.store.byFeeIncLE(at.Account, nil) {
			erasedWart, _ := m.eraseInternalWithWartRow(e, row, nil)
			reconcileEvictMeter.Mark(1)
			if erasedWart {
				return
			}
			if row.bal.TrySetAvail(newBalance) {
				return
			}
		}
		return
	}

	wartRow, wok := m.ledger.get(types.AccountToken{Account: at.Account, Token: types.WART})
	for _, e := range m.store.accountTokenFeeAsc(at.Account, at.Token) {
		if !wok {
			panic("mempool: entry spending a token but account has no wart ledger row")
		}
		_, erasedToken := m.eraseInternalWithWartRow(e, wartRow, row)
		reconcileEvictMeter.Mark(1)
		if erasedToken {
			return
		}
		if row.bal.TrySetAvail(newBalance) {
			return
		}
	}
}

// EraseFromHeight implements spec.md §4.5's erase_from_height: every entry
// whose TxHeight is at least h is dropped, typically because a reorg
// invalidated the block range those heights referred to.
func (m *Mempool) EraseFromHeight(h types.Height) int {
	victims := m.store.fromHeight(h)
	for _, e := range victims {
		m.eraseInternal(e)
	}
	return len(victims)
}

// ErasePinnedBeforeHeight implements spec.md §4.5's
// erase_pinned_before_height: every entry whose PinHeight is strictly below
// h has expired its pin window and is dropped.
func (m *Mempool) ErasePinnedBeforeHeight(h types.Height) int {
	victims := m.store.pinnedBefore(h)
	for _, e := range victims {
		m.eraseInternal(e)
	}
	return len(victims)
}

// Erase implements spec.md §4.5's erase: drop a single entry by id, if
// present. Reports whether an entry was actually removed.
func (m *Mempool) Erase(id types.TransactionId) bool {
	e, ok := m.store.find(id)
	if !ok {
		return false
	}
	m.eraseInternal(e)
	return true
}

// OnConstraintUpdate implements spec.md §4.5's on_constraint_update: after a
// policy change tightens the minimum accepted fee, evict every live entry
// that no longer clears it. Returns the number evicted.
func (m *Mempool) OnConstraintUpdate() int {
	evicted := 0
	for {
		weakest, ok := m.store.weakest()
		if !ok || weakest.Fee.Cmp(m.config.MinPolicyFee) >= 0 {
			break
		}
		m.eraseInternal(weakest)
		evicted++
	}
	if evicted > 0 {
		reconcileEvictMeter.Mark(int64(evicted))
	}
	return evicted
}

// prune implements spec.md §4.5's prune: evict the weakest entry repeatedly
// until the store is back within capacity. Called at the tail of every
// successful Insert; never returns an error since capacity eviction cannot
// fail by construction (a store over capacity always has a weakest entry).
func (m *Mempool) prune() {
	for m.store.size() > m.store.maxSize {
		weakest, ok := m.store.weakest()
		if !ok {
			break
		}
		m.eraseInternal(weakest)
		evictMeter.Mark(1)
	}
}
