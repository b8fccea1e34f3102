// Package params holds the small set of protocol-level constants the
// mempool core needs: its default capacity and the handful of block
// heights that gate historical compatibility carve-outs.
package params

import "github.com/wolsani/warthog/types"

var (
	// DefaultMaxSize is the mempool's capacity when none is configured
	// explicitly. Must stay strictly positive; mempoolcfg.Config.Sanitize
	// enforces that for caller-supplied values.
	DefaultMaxSize = 10000

	// fiveDaysBlocks is five days' worth of blocks at the chain's
	// 20-second block time (5 * 24h * 60min * 3 blocks/min).
	fiveDaysBlocks types.Height = 5 * 24 * 60 * 3

	// XeggexUnblockHeight is the height from which on the from_id==1910
	// historical compatibility exemption (see mempool.compatExemptions)
	// no longer applies. Named for the exchange account the carve-out was
	// written for; inherited from production history, not invented here.
	XeggexUnblockHeight = 2576442 + fiveDaysBlocks

	// XeggexExemptAccount is the account id the carve-out exempts.
	XeggexExemptAccount types.AccountId = 1910
)
