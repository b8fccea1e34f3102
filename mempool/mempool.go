// Package mempool implements the in-memory holding area for pending,
// unconfirmed Warthog transactions: a bounded multi-index transaction
// store, a per-account locked-balance ledger, admission with simulated
// eviction, reconciliation against external balance/height changes, and
// read-only sampling/drain primitives for block producers.
//
// The mempool is single-writer, single-threaded: every exported method
// assumes exclusive access and provides no internal locking. Callers that
// need a consistent concurrent view must serialize readers and writers
// themselves, typically behind a sync.RWMutex one layer up — the same way
// the teacher pool this was adapted from guards its LegacyPool with its own
// mu rather than pushing locking down into the index types.
package mempool

import (
	"github.com/wolsani/warthog/mempoolcfg"
	"github.com/wolsani/warthog/types"
)

// Mempool is the top-level container: it owns the transaction store and the
// locked-balance ledger exclusively (no shared ownership), and accumulates
// an update log that callers drain with PopUpdates.
type Mempool struct {
	config mempoolcfg.Config
	store  *store
	ledger *ledger
	log    updateLog
	sink   EventSink
}

// New creates an empty mempool. cfg.MaxSize must be strictly positive;
// pass mempoolcfg.DefaultConfig to get the spec's default of 10,000.
func New(cfg mempoolcfg.Config, sink EventSink) *Mempool {
	cfg = cfg.Sanitize()
	return &Mempool{
		config: cfg,
		store:  newStore(cfg.MaxSize),
		ledger: newLedger(),
		sink:   sink,
	}
}

// Size returns the number of live entries.
func (m *Mempool) Size() int { return m.store.size() }

// MaxSize returns the configured capacity.
func (m *Mempool) MaxSize() int { return m.store.maxSize }

// Get looks up an entry by its logical identity.
func (m *Mempool) Get(id types.TransactionId) (types.Entry, bool) {
	e, ok := m.store.find(id)
	if !ok {
		return types.Entry{}, false
	}
	return *e, ok
}

// GetByHash looks up an entry by content hash.
func (m *Mempool) GetByHash(hash [32]byte) (types.Entry, bool) {
	e, ok := m.store.findByHash(hash)
	if !ok {
		return types.Entry{}, false
	}
	return *e, ok
}

// MinFee implements spec.md §4.2's min_fee().
func (m *Mempool) MinFee() types.CompactFee {
	return m.store.minFee(m.config.MinPolicyFee)
}

// PopUpdates drains and clears the update log (spec.md §4.7).
func (m *Mempool) PopUpdates() []Update {
	return m.log.pop()
}

// eraseInternalWithWartRow implements spec.md §4.4's
// erase_internal_wartiter: it logs an Erase, unlocks the entry's WART (and,
// if applicable, token) spend from the supplied ledger rows, removes clean
// rows, and removes the entry from every Store index. The returned flags
// tell the caller whether each row was just removed, since a removed row's
// reference must not be reused.
func (m *Mempool) eraseInternalWithWartRow(e *types.Entry, wartRow *ledgerRow, tokenRow *ledgerRow) (erasedWart, erasedToken bool) {
	m.log.append(eraseUpdate(e.Id))

	if e.SpendsToken() {
		if tokenRow == nil {
			tokenRow, _ = m.ledger.get(types.AccountToken{Account: e.From(), Token: e.AltTokenId})
		}
		tokenRow.bal.Unlock(e.TokenSpend)
		erasedToken = m.ledger.removeIfClean(tokenRow.at)
	}

	wartRow.bal.Unlock(e.WartSpend)
	erasedWart = m.ledger.removeIfClean(wartRow.at)

	m.store.erase(e)
	notifyErase(m.sink, EraseEvent{Id: e.Id}, m.Size())
	sizeGauge.Update(int64(m.Size()))
	lockedRowsGauge.Update(int64(m.ledger.size()))
	return erasedWart, erasedToken
}

// eraseInternal implements spec.md §4.5's erase_internal: it looks up the
// account's WART row (which must exist for any live entry) and delegates.
func (m *Mempool) eraseInternal(e *types.Entry) {
	wartRow, ok := m.ledger.get(types.AccountToken{Account: e.From(), Token: types.WART})
	if !ok {
		panic("mempool: live entry has no wart ledger row")
	}
	m.eraseInternalWithWartRow(e, wartRow, nil)
}
