package tokenspec_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/wolsani/warthog/types/tokenspec"
)

func TestParseStringRoundTrip(t *testing.T) {
	cases := []tokenspec.TokenSpec{
		tokenspec.WART,
		{AssetHash: common.HexToHash("0xaa"), IsLiquidity: false},
		{AssetHash: common.HexToHash("0xbb"), IsLiquidity: true},
	}
	for _, spec := range cases {
		parsed, ok := tokenspec.Parse(spec.String())
		require.True(t, ok)
		require.Equal(t, spec, parsed)
	}
}

func TestParseRejectsMalformedInput(t *testing.T) {
	cases := []string{
		"",
		"asset",
		"unknown:aabb",
		"asset:zz",
		"asset:aabb", // too short to be a 32-byte hash
	}
	for _, s := range cases {
		_, ok := tokenspec.Parse(s)
		require.False(t, ok, "expected parse failure for %q", s)
	}
}
