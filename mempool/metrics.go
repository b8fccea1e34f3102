package mempool

import "github.com/ethereum/go-ethereum/metrics"

// These gauges/meters mirror the teacher pool's slotsGauge/reheapTimer
// pattern: cheap, best-effort instrumentation a node operator can scrape,
// never consulted by the mempool's own logic.
var (
	sizeGauge           = metrics.NewRegisteredGauge("mempool/size", nil)
	lockedRowsGauge     = metrics.NewRegisteredGauge("mempool/ledger/rows", nil)
	admitMeter          = metrics.NewRegisteredMeter("mempool/admit", nil)
	rejectMeter         = metrics.NewRegisteredMeter("mempool/reject", nil)
	evictMeter          = metrics.NewRegisteredMeter("mempool/evict", nil)
	replaceMeter        = metrics.NewRegisteredMeter("mempool/replace", nil)
	reconcileEvictMeter = metrics.NewRegisteredMeter("mempool/reconcile_evict", nil)
)
