package dappkitty

// Observer pattern

// Observer is notified for each emitted entry, after the sink accepted it.
// Implementations MUST be concurrency-safe. Console calls made from OnLog
// are not mirrored; direct session calls are queued behind the current
// entry, so an observer must not log one line per entry it sees.
type Observer interface {
	OnLog(entry Entry)
}

// ObserverFunc adapter.
type ObserverFunc func(Entry)

func (f ObserverFunc) OnLog(e Entry) { f(e) }
