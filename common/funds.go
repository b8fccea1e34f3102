// Package common holds small, self-contained value types shared across the
// mempool and its collaborators.
package common

import "errors"

// ErrFundsOverflow is the panic value of AddAssert and SubAssert when an
// operation would wrap a uint64; Add and Sub report the same condition as
// ok=false instead.
var ErrFundsOverflow = errors.New("funds overflow")

// Funds is an unsigned 64-bit amount of WART or a user token. It mirrors the
// fixed-size-value-type-with-methods shape the rest of this codebase uses
// for compact identifiers, but carries checked arithmetic instead
// of byte-slice accessors, since funds values are summed and compared far
// more often than they are serialized.
type Funds uint64

// ZeroFunds is the additive identity.
const ZeroFunds Funds = 0

// Add returns f+other and true, or (0, false) if the sum would overflow.
func (f Funds) Add(other Funds) (Funds, bool) {
	sum := f + other
	if sum < f {
		return 0, false
	}
	return sum, true
}

// AddAssert is Add but panics on overflow; used where the caller has
// already established the sum fits (a programming-error guard, not a
// user-facing validation).
func (f Funds) AddAssert(other Funds) Funds {
	sum, ok := f.Add(other)
	if !ok {
		panic(ErrFundsOverflow)
	}
	return sum
}

// Sub returns f-other and true, or (0, false) if other > f.
func (f Funds) Sub(other Funds) (Funds, bool) {
	if other > f {
		return 0, false
	}
	return f - other, true
}

// SubAssert is Sub but panics on underflow.
func (f Funds) SubAssert(other Funds) Funds {
	diff, ok := f.Sub(other)
	if !ok {
		panic(ErrFundsOverflow)
	}
	return diff
}

// Cmp compares two Funds values the way big.Int.Cmp does.
func (f Funds) Cmp(other Funds) int {
	switch {
	case f < other:
		return -1
	case f > other:
		return 1
	default:
		return 0
	}
}

// IsZero reports whether f is the zero amount.
func (f Funds) IsZero() bool { return f == 0 }
