package mempool

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/wolsani/warthog/types"
)

// Advert is a gossip-sized (txid, fee) pair: enough for a peer to decide
// whether it wants the full transaction, without shipping the transaction
// itself. sample produces these; filter_new consumes them.
type Advert struct {
	Id  types.TransactionId
	Fee types.CompactFee
}

// sampleHeadWindow bounds how deep into the descending-fee ordering sample
// looks before giving up, per spec.md §4.2: gossip only ever advertises
// from the richest slice of the pool, not an exhaustive scan.
const sampleHeadWindow = 800

// Sample implements spec.md §4.2's sample: up to n adverts drawn from the
// first 800 live entries in descending-fee order, optionally restricted to
// native WART transfers.
func (m *Mempool) Sample(n int, onlyWartTransfer bool) []Advert {
	var out []Advert
	seen := 0
	m.store.descendByFee(func(e *types.Entry) bool {
		if seen >= sampleHeadWindow || len(out) >= n {
			return false
		}
		seen++
		if onlyWartTransfer && e.Variant != types.VariantWartTransfer {
			return true
		}
		out = append(out, Advert{Id: e.Id, Fee: e.Fee})
		return true
	})
	return out
}

// FilterNew implements spec.md §4.2's filter_new: given adverts a peer
// announced, return the txids worth requesting — ones not held locally that
// clear min_fee(), and ones held locally at a strictly lower recorded fee
// (a replacement candidate). The caller cannot distinguish the two cases
// from the result alone; spec.md §9's Open Questions preserves this
// intentionally rather than inventing a richer return type.
func (m *Mempool) FilterNew(ads []Advert) []types.TransactionId {
	floor := m.MinFee()
	var out []types.TransactionId
	for _, ad := range ads {
		if existing, ok := m.store.find(ad.Id); ok {
			if existing.Fee.Cmp(ad.Fee) < 0 {
				out = append(out, ad.Id)
			}
			continue
		}
		if ad.Fee.Cmp(floor) >= 0 {
			out = append(out, ad.Id)
		}
	}
	return out
}

// GetTransactions implements spec.md §4.2/§4.6's get_transactions: up to n
// entries in descending-fee order, applying in a single forward pass
// exactly the two filters spec.md §4.2 specifies:
//
//   - the historical compatibility carve-out in compat.go (height gates this
//     clause only — it is never used to gate entries by their own txheight);
//   - cancelation coherence — a Cancelation and the entry it targets never
//     both appear, and a Cancelation whose target already went out in this
//     same batch is itself dropped (too late to retract).
//
// exclude is an optional set of already-known hashes (e.g. already sent to
// this peer) skipped alongside the two filters above.
func (m *Mempool) GetTransactions(n int, height types.Height, exclude map[common.Hash]bool) []types.Entry {
	emitted := make(map[types.TransactionId]bool)
	cancelledTargets := make(map[types.TransactionId]bool)
	out := make([]types.Entry, 0, n)

	m.store.descendByFee(func(e *types.Entry) bool {
		if len(out) >= n {
			return false
		}
		if compatExempt(height, e.Id.Account) {
			return true
		}
		if exclude != nil && exclude[e.TxHash] {
			return true
		}
		if emitted[e.Id] || cancelledTargets[e.Id] {
			return true
		}
		if e.Variant == types.VariantCancelation {
			if emitted[e.CancelTarget] {
				return true
			}
			out = append(out, *e)
			emitted[e.Id] = true
			cancelledTargets[e.CancelTarget] = true
			return true
		}
		out = append(out, *e)
		emitted[e.Id] = true
		return true
	})
	return out
}
