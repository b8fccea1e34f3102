package mempool

import (
	"github.com/google/btree"

	warthogcommon "github.com/wolsani/warthog/common"
	"github.com/wolsani/warthog/types"
)

// LockedBalance tracks, for one (account, token) pair, how much of the
// committed balance is still available and how much is reserved by live
// mempool entries. It is a plain value type: the admission engine's
// simulation steps copy it freely and only the final commit writes a copy
// back into the ledger.
type LockedBalance struct {
	avail warthogcommon.Funds
	used  warthogcommon.Funds
}

// NewLockedBalance materializes a row from a committed balance, with
// nothing yet reserved.
func NewLockedBalance(committed warthogcommon.Funds) LockedBalance {
	return LockedBalance{avail: committed}
}

// Free returns avail-used. Never underflows: lock/TrySetAvail maintain
// used <= avail as an invariant of every reachable state.
func (b LockedBalance) Free() warthogcommon.Funds {
	return b.avail.SubAssert(b.used)
}

// Locked returns the reserved amount.
func (b LockedBalance) Locked() warthogcommon.Funds { return b.used }

// Total returns avail+used.
func (b LockedBalance) Total() warthogcommon.Funds {
	return b.avail.AddAssert(b.used)
}

// IsClean reports whether nothing is reserved.
func (b LockedBalance) IsClean() bool { return b.used.IsZero() }

// Lock reserves amount. Precondition: amount <= Free(); violating it is a
// programming error (the admission engine is responsible for simulating
// ahead of time so this never fires).
func (b *LockedBalance) Lock(amount warthogcommon.Funds) {
	if amount.Cmp(b.Free()) > 0 {
		panic("mempool: lock exceeds free balance")
	}
	b.used = b.used.AddAssert(amount)
}

// Unlock releases amount. Precondition: amount <= Locked().
func (b *LockedBalance) Unlock(amount warthogcommon.Funds) {
	if amount.Cmp(b.used) > 0 {
		panic("mempool: unlock exceeds locked balance")
	}
	b.used = b.used.SubAssert(amount)
}

// TrySetAvail updates avail to newAvail, succeeding iff used <= newAvail.
// This is the operation set_free_balance uses when the committed balance
// changes: on failure the caller must evict entries before retrying.
func (b *LockedBalance) TrySetAvail(newAvail warthogcommon.Funds) bool {
	if b.used.Cmp(newAvail) > 0 {
		return false
	}
	b.avail = newAvail
	return true
}

// ledgerRow is one entry of the ledger's ordered container.
type ledgerRow struct {
	at  types.AccountToken
	bal LockedBalance
}

// ledger is the locked-balance ledger: a mapping from (account, token) to
// LockedBalance, materialized on first lock and removed exactly when a row
// becomes clean, so "row exists" always means "some live entry references
// it". Backed by a btree so iteration is ordered by account then token.
type ledger struct {
	rows *btree.BTreeG[*ledgerRow]
}

func newLedger() *ledger {
	return &ledger{
		rows: btree.NewG(32, func(a, b *ledgerRow) bool {
			return a.at.Less(b.at)
		}),
	}
}

// get returns the existing row for at, if any, without creating one.
func (l *ledger) get(at types.AccountToken) (*ledgerRow, bool) {
	row, ok := l.rows.Get(&ledgerRow{at: at})
	return row, ok
}

// getOrCreate returns the existing row for at, or materializes a new one
// from the DBCache-supplied committed balance.
func (l *ledger) getOrCreate(at types.AccountToken, cache DBCache) *ledgerRow {
	if row, ok := l.get(at); ok {
		return row
	}
	row := &ledgerRow{at: at, bal: NewLockedBalance(cache.Balance(at))}
	l.rows.ReplaceOrInsert(row)
	return row
}

// removeIfClean deletes the row for at if it has become clean, reporting
// whether it did. Call this immediately after any Unlock that could have
// cleaned the row — the returned bool tells batch-erase loops whether their
// row reference is now invalid.
func (l *ledger) removeIfClean(at types.AccountToken) bool {
	row, ok := l.get(at)
	if !ok || !row.bal.IsClean() {
		return false
	}
	l.rows.Delete(&ledgerRow{at: at})
	return true
}

// size reports the number of materialized rows (exposed for tests and
// metrics, not part of the spec's public surface).
func (l *ledger) size() int { return l.rows.Len() }
