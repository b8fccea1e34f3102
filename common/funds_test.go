package common_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	warthogcommon "github.com/wolsani/warthog/common"
)

func TestFundsAddOverflow(t *testing.T) {
	f := warthogcommon.Funds(math.MaxUint64)
	_, ok := f.Add(1)
	require.False(t, ok)

	sum, ok := f.Add(0)
	require.True(t, ok)
	require.Equal(t, f, sum)
}

func TestFundsSubUnderflow(t *testing.T) {
	_, ok := warthogcommon.Funds(1).Sub(2)
	require.False(t, ok)

	diff, ok := warthogcommon.Funds(5).Sub(5)
	require.True(t, ok)
	require.True(t, diff.IsZero())
}

func TestFundsAddAssertPanicsOnOverflow(t *testing.T) {
	require.Panics(t, func() {
		warthogcommon.Funds(math.MaxUint64).AddAssert(1)
	})
}

func TestFundsCmp(t *testing.T) {
	require.Equal(t, -1, warthogcommon.Funds(1).Cmp(2))
	require.Equal(t, 0, warthogcommon.Funds(2).Cmp(2))
	require.Equal(t, 1, warthogcommon.Funds(3).Cmp(2))
}
