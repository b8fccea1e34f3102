package mempool

import (
	"github.com/wolsani/warthog/params"
	"github.com/wolsani/warthog/types"
)

// compatExemption names one historical-compatibility carve-out: below
// HeightHi, entries from Account are skipped by get_transactions. This is
// consensus-compatibility baggage inherited from production history (see
// Design Note in spec.md §9), expressed as data rather than an inline
// constant so a future one-off exemption is an added row, not a code
// change.
type compatExemption struct {
	HeightLo, HeightHi types.Height
	Account            types.AccountId
}

var compatExemptions = []compatExemption{
	// Reproduces the original mempool's unconditional skip of account 1910
	// below height 2576442 + five days of blocks.
	{HeightLo: 0, HeightHi: params.XeggexUnblockHeight, Account: params.XeggexExemptAccount},
}

// compatExempt reports whether an entry from account should be skipped by
// get_transactions when building a batch at the given height.
func compatExempt(height types.Height, account types.AccountId) bool {
	for _, ex := range compatExemptions {
		if account == ex.Account && height >= ex.HeightLo && height < ex.HeightHi {
			return true
		}
	}
	return false
}
