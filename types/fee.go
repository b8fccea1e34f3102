package types

// CompactFee is a lossy, totally-ordered fee representation. Real fee
// markets quantize the fee rate into a small number of bits so that entries
// can be compared and bucketed cheaply; this module treats the encoding as
// opaque and only relies on the ordering and on Next(), so a plain uint64
// stands in for whatever bit-packed representation the wire format uses.
type CompactFee uint64

// CompactFeeZero is the smallest representable fee.
const CompactFeeZero CompactFee = 0

// Smallest returns the smallest representable CompactFee.
func Smallest() CompactFee { return CompactFeeZero }

// Next returns the smallest CompactFee strictly greater than f. Used by
// min_fee() to compute "one unit above the current weakest entry".
func (f CompactFee) Next() CompactFee { return f + 1 }

// Cmp orders CompactFee the way big.Int.Cmp does.
func (f CompactFee) Cmp(other CompactFee) int {
	switch {
	case f < other:
		return -1
	case f > other:
		return 1
	default:
		return 0
	}
}

// Less reports whether f is strictly less than other.
func (f CompactFee) Less(other CompactFee) bool { return f < other }
