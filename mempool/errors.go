package mempool

import "errors"

// Admission error kinds (spec.md §6). Insert returns exactly one of these
// and leaves no partial state behind on any of them.
var (
	// ErrNonce is returned when a duplicate txid is submitted with a fee
	// that does not strictly exceed the one already admitted.
	ErrNonce = errors.New("mempool: duplicate transaction, fee too low to replace")

	// ErrBalance is returned when the account's WART balance is
	// insufficient to cover the spend even after evicting every cheaper
	// entry that could be evicted.
	ErrBalance = errors.New("mempool: insufficient wart balance")

	// ErrTokBalance is returned when the account's alt-token balance is
	// insufficient after the same eviction simulation.
	ErrTokBalance = errors.New("mempool: insufficient token balance")

	// ErrAssetHashNotFound is returned when a transaction spends a token
	// whose asset hash the DBCache does not recognize.
	ErrAssetHashNotFound = errors.New("mempool: asset hash not found")

	// ErrInvalidToken names the malformed-token-specifier outcome. Insert
	// never returns it, and tokenspec.Parse reports a parse failure as
	// ok=false rather than as this error; it is defined here so all
	// admission-adjacent errors live in one place.
	ErrInvalidToken = errors.New("mempool: malformed token specifier")
)
