package mempool

import (
	"github.com/ethereum/go-ethereum/common"

	warthogcommon "github.com/wolsani/warthog/common"
	"github.com/wolsani/warthog/types"
)

// TokenSpendRequest names the non-WART token an incoming transaction
// spends, before admission has resolved the asset hash into a TokenId.
type TokenSpendRequest struct {
	AssetHash   common.Hash
	IsLiquidity bool
	Amount      warthogcommon.Funds
}

// TxRequest is everything Insert needs about an incoming transaction. It is
// deliberately not a types.Entry: the final entry's AltTokenId is only
// known once Insert has resolved TokenSpend against the DBCache (spec.md
// §4.3 Step 3), so the caller cannot construct a complete Entry up front.
type TxRequest struct {
	Id           types.TransactionId
	TxHash       common.Hash
	Fee          types.CompactFee
	TxHeight     types.Height
	PinHeight    types.Height
	Variant      types.Variant
	CancelTarget types.TransactionId // meaningful only if Variant == VariantCancelation
	WartSpend    warthogcommon.Funds
	TokenSpend   *TokenSpendRequest // nil if this transaction only spends WART
}

// peekBalance returns a value copy of the current LockedBalance for at,
// synthesizing one from the DBCache if no row is materialized yet. It never
// materializes a row itself — that only happens at commit, via
// ledger.getOrCreate — so simulation never has a mutation-visible side
// effect on rejection.
func (m *Mempool) peekBalance(at types.AccountToken, cache DBCache) (LockedBalance, *ledgerRow) {
	if row, ok := m.ledger.get(at); ok {
		return row.bal, row
	}
	return NewLockedBalance(cache.Balance(at)), nil
}

// Insert implements the admission engine of spec.md §4.3: duplicate/
// replacement check, WART balance probe, token balance simulation, WART
// balance simulation, and commit. It either returns the admitted entry and
// a nil error, or leaves the mempool entirely unchanged and returns one of
// the sentinel errors in errors.go.
func (m *Mempool) Insert(req TxRequest, cache DBCache) (types.Entry, error) {
	fromId := req.Id.Account

	var match *types.Entry
	var clear []*types.Entry
	cleared := make(map[*types.Entry]bool)

	// Step 1: duplicate / replacement check.
	if existing, ok := m.store.find(req.Id); ok {
		if existing.Fee.Cmp(req.Fee) >= 0 {
			rejectMeter.Mark(1)
			return types.Entry{}, ErrNonce
		}
		match = existing
		clear = append(clear, existing)
		cleared[existing] = true
	}

	// Step 2: WART balance probe.
	wartAt := types.AccountToken{Account: fromId, Token: types.WART}
	wartBal, wartRow := m.peekBalance(wartAt, cache)
	if wartBal.Total().Cmp(req.WartSpend) < 0 {
		rejectMeter.Mark(1)
		return types.Entry{}, ErrBalance
	}
	// The replacement target is already scheduled for eviction: release its
	// WART reservation in the simulation.
	if match != nil {
		wartBal.Unlock(match.WartSpend)
	}

	// Step 3: token balance simulation.
	altId := types.WART
	tokenSpend := warthogcommon.ZeroFunds
	var tokenBal LockedBalance
	var tokenRow *ledgerRow
	if req.TokenSpend != nil && !req.TokenSpend.Amount.IsZero() {
		asset, ok := cache.LookupAssetByHash(req.TokenSpend.AssetHash)
		if !ok {
			rejectMeter.Mark(1)
			return types.Entry{}, ErrAssetHashNotFound
		}
		altId = asset.TokenID(req.TokenSpend.IsLiquidity)
		tokenSpend = req.TokenSpend.Amount

		tokenAt := types.AccountToken{Account: fromId, Token: altId}
		tokenBal, tokenRow = m.peekBalance(tokenAt, cache)
		if tokenBal.Total().Cmp(tokenSpend) < 0 {
			rejectMeter.Mark(1)
			return types.Entry{}, ErrTokBalance
		}
		if match != nil && match.AltTokenId == altId {
			tokenBal.Unlock(match.TokenSpend)
		}

		for _, e := range m.store.accountTokenFeeAsc(fromId, altId) {
			if tokenBal.Free().Cmp(tokenSpend) >= 0 {
				break
			}
			if cleared[e] {
				continue
			}
			if e.Fee.Cmp(req.Fee) >= 0 {
				break
			}
			clear = append(clear, e)
			cleared[e] = true
			wartBal.Unlock(e.WartSpend)
			tokenBal.Unlock(e.TokenSpend)
		}
		if tokenBal.Free().Cmp(tokenSpend) < 0 {
			rejectMeter.Mark(1)
			return types.Entry{}, ErrTokBalance
		}
	}

	// Step 4: WART balance simulation.
	if wartBal.Free().Cmp(req.WartSpend) < 0 {
		sufficient := false
		for _, e := range m.store.byFeeIncLE(fromId, &req.Fee) {
			if cleared[e] {
				continue
			}
			clear = append(clear, e)
			cleared[e] = true
			wartBal.Unlock(e.WartSpend)
			if wartBal.Free().Cmp(req.WartSpend) >= 0 {
				sufficient = true
				break
			}
		}
		if !sufficient {
			rejectMeter.Mark(1)
			return types.Entry{}, ErrBalance
		}
	}

	// Step 5: commit. Nothing above has mutated real state; from here on
	// every step is infallible.
	if len(clear) > 0 && wartRow == nil {
		panic("mempool: entries scheduled for eviction but no wart ledger row")
	}
	for _, e := range clear {
		m.eraseInternalWithWartRow(e, wartRow, nil)
	}

	realWartRow := m.ledger.getOrCreate(wartAt, cache)
	realWartRow.bal.Lock(req.WartSpend)
	if altId != types.WART {
		realTokenRow := m.ledger.getOrCreate(types.AccountToken{Account: fromId, Token: altId}, cache)
		realTokenRow.bal.Lock(tokenSpend)
	}
	_ = tokenRow // only used for the simulation copy above

	entry := types.Entry{
		TxHash:       req.TxHash,
		Id:           req.Id,
		Fee:          req.Fee,
		TxHeight:     req.TxHeight,
		AltTokenId:   altId,
		WartSpend:    req.WartSpend,
		TokenSpend:   tokenSpend,
		PinHeight:    req.PinHeight,
		Variant:      req.Variant,
		CancelTarget: req.CancelTarget,
	}
	stored := m.store.insert(entry)
	m.log.append(putUpdate(*stored))
	notifyAdd(m.sink, PutEvent{Entry: *stored}, m.Size())
	sizeGauge.Update(int64(m.Size()))
	lockedRowsGauge.Update(int64(m.ledger.size()))
	if match != nil {
		replaceMeter.Mark(1)
	}
	admitMeter.Mark(1)

	m.prune()
	return *stored, nil
}
