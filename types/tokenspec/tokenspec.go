// Package tokenspec implements the wire-form parser for token specifiers
// used at the API boundary (spec.md §6): the string form a caller supplies
// to name either a fungible asset or its liquidity-share counterpart.
package tokenspec

import (
	"encoding/hex"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// TokenSpec names an asset by its creation hash, plus a flag selecting
// between the asset itself and its liquidity-share token.
type TokenSpec struct {
	AssetHash   common.Hash
	IsLiquidity bool
}

// WART is the distinguished native-currency TokenSpec.
var WART = TokenSpec{AssetHash: common.Hash{}, IsLiquidity: false}

// String renders s as "asset:<hex>" or "liquidity:<hex>", round-tripping
// with Parse.
func (s TokenSpec) String() string {
	indicator := "asset"
	if s.IsLiquidity {
		indicator = "liquidity"
	}
	return indicator + ":" + hex.EncodeToString(s.AssetHash[:])
}

// Parse parses the "asset:<hex>" / "liquidity:<hex>" wire form. It returns
// ok=false for any malformed input, matching spec.md §6's "parse failure
// returns an empty optional". Admission does not parse token specifiers;
// mapping ok=false to an error is left to the caller.
func Parse(s string) (spec TokenSpec, ok bool) {
	indicator, hexHash, found := strings.Cut(s, ":")
	if !found {
		return TokenSpec{}, false
	}
	switch indicator {
	case "liquidity":
		spec.IsLiquidity = true
	case "asset":
		spec.IsLiquidity = false
	default:
		return TokenSpec{}, false
	}
	raw, err := hex.DecodeString(hexHash)
	if err != nil || len(raw) != common.HashLength {
		return TokenSpec{}, false
	}
	spec.AssetHash.SetBytes(raw)
	return spec, true
}
