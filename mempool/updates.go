package mempool

import "github.com/wolsani/warthog/types"

// Update is one element of the append-only update log: either a Put of a
// newly admitted entry or an Erase of a txid that left the store. The
// sequence contains the full state delta since the previous drain,
// including compensating Erases that preceded replacements.
type Update struct {
	Put   *types.Entry
	Erase *types.TransactionId
}

func putUpdate(e types.Entry) Update {
	return Update{Put: &e}
}

func eraseUpdate(id types.TransactionId) Update {
	return Update{Erase: &id}
}

// updateLog is the mempool's append-only mutation sequence. pop drains and
// clears it atomically. The C++ source this was distilled from moves the
// slice out and then calls clear() on the (now moved-from) receiver, making
// that clear() unreachable; the intended "clear on drain" semantics is what
// this type implements directly.
type updateLog struct {
	entries []Update
}

func (l *updateLog) append(u Update) {
	l.entries = append(l.entries, u)
}

// pop returns the accumulated updates and clears the log. A second call
// before any further mutation returns an empty slice.
func (l *updateLog) pop() []Update {
	out := l.entries
	l.entries = nil
	return out
}
