package mirror

import (
	"sync"
	"time"

	"github.com/carwashdash/core/internal/infrastructure/logger"
)

// Snapshot is a complete replacement listing of one collection. Consumers
// must treat every delivery as authoritative and discard prior state; a
// snapshot is never a diff.
type Snapshot struct {
	Collection string    `json:"collection"`
	Seq        uint64    `json:"seq"`
	At         time.Time `json:"at"`
	Records    any       `json:"records"`
}

// Subscription is a live feed of snapshots for a single collection. The
// current snapshot (if any) is delivered immediately on subscribe. A slow
// consumer only ever lags by one snapshot: an undelivered snapshot is
// replaced by the newer one.
type Subscription struct {
	C <-chan Snapshot

	collection string
	ch         chan Snapshot
	mirror     *Mirror
	once       sync.Once
}

// Close tears the subscription down and closes the channel. Safe to call
// more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.mirror.unsubscribe(s)
	})
}

// Mirror fans collection snapshots out to subscribers. Services publish the
// freshly re-listed collection contents after every successful write; the
// mirror keeps the latest snapshot per collection so late subscribers start
// from current state instead of waiting for the next write.
type Mirror struct {
	mu     sync.Mutex
	seq    uint64
	last   map[string]Snapshot
	subs   map[string]map[*Subscription]struct{}
	logger *logger.Logger
}

// New creates an empty mirror.
func New(appLogger *logger.Logger) *Mirror {
	return &Mirror{
		last:   make(map[string]Snapshot),
		subs:   make(map[string]map[*Subscription]struct{}),
		logger: appLogger,
	}
}

// Subscribe registers a subscriber for the named collection and returns its
// handle. If the collection has been published before, the latest snapshot
// is queued right away.
func (m *Mirror) Subscribe(collection string) *Subscription {
	sub := &Subscription{
		collection: collection,
		ch:         make(chan Snapshot, 1),
		mirror:     m,
	}
	sub.C = sub.ch

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.subs[collection] == nil {
		m.subs[collection] = make(map[*Subscription]struct{})
	}
	m.subs[collection][sub] = struct{}{}

	if snap, ok := m.last[collection]; ok {
		sub.ch <- snap
	}

	return sub
}

// Publish records the authoritative contents of a collection and delivers
// them to every subscriber. Records should be the full listing as read back
// from the store after the triggering write.
func (m *Mirror) Publish(collection string, records any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	snap := Snapshot{
		Collection: collection,
		Seq:        m.seq,
		At:         time.Now(),
		Records:    records,
	}
	m.last[collection] = snap

	for sub := range m.subs[collection] {
		select {
		case sub.ch <- snap:
		default:
			// Subscriber still holds an older snapshot; replace it. Every
			// snapshot is a full listing, so dropping the stale one is safe.
			select {
			case <-sub.ch:
			default:
			}
			sub.ch <- snap
		}
	}

	if m.logger != nil {
		m.logger.Debugw("Snapshot published", "collection", collection, "seq", snap.Seq)
	}
}

// Latest returns the most recent snapshot for a collection, if any.
func (m *Mirror) Latest(collection string) (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap, ok := m.last[collection]
	return snap, ok
}

func (m *Mirror) unsubscribe(sub *Subscription) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if set, ok := m.subs[sub.collection]; ok {
		delete(set, sub)
		if len(set) == 0 {
			delete(m.subs, sub.collection)
		}
	}
	close(sub.ch)
}
