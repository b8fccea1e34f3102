package mempool

import (
	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/log"
)

// FeedEventSink adapts the mempool's EventSink callbacks onto a
// go-ethereum-style event.Feed, the way the teacher pool publishes
// newTxsEvent over a txFeed for subscribers (an API layer, a replica) to
// pick up. Zero value is ready to use.
type FeedEventSink struct {
	addFeed   event.Feed
	eraseFeed event.Feed
}

// SubscribeAdd registers ch to receive every PutEvent.
func (f *FeedEventSink) SubscribeAdd(ch chan<- PutEvent) event.Subscription {
	return f.addFeed.Subscribe(ch)
}

// SubscribeErase registers ch to receive every EraseEvent.
func (f *FeedEventSink) SubscribeErase(ch chan<- EraseEvent) event.Subscription {
	return f.eraseFeed.Subscribe(ch)
}

func (f *FeedEventSink) OnMempoolAdd(put PutEvent, newSize int) {
	f.addFeed.Send(put)
}

func (f *FeedEventSink) OnMempoolErase(erase EraseEvent, newSize int) {
	f.eraseFeed.Send(erase)
}

// notifyAdd/notifyErase are the only call sites that reach into sink; both
// recover from a panicking sink so a misbehaving observer can never corrupt
// mempool state or abort an in-flight mutation (spec.md §6: "best-effort
// notifications; failures must not propagate into the mempool").
func notifyAdd(sink EventSink, put PutEvent, newSize int) {
	if sink == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Error("mempool event sink panicked on add", "err", r)
		}
	}()
	sink.OnMempoolAdd(put, newSize)
}

func notifyErase(sink EventSink, erase EraseEvent, newSize int) {
	if sink == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Error("mempool event sink panicked on erase", "err", r)
		}
	}()
	sink.OnMempoolErase(erase, newSize)
}
