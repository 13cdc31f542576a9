package mirror

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribeReceivesLatestSnapshotImmediately(t *testing.T) {
	m := New(nil)
	m.Publish("tasks", []string{"a", "b"})

	sub := m.Subscribe("tasks")
	defer sub.Close()

	snap := <-sub.C
	assert.Equal(t, "tasks", snap.Collection)
	assert.Equal(t, []string{"a", "b"}, snap.Records)
}

func TestPublishDeliversFullSnapshotToAllSubscribers(t *testing.T) {
	m := New(nil)

	first := m.Subscribe("orders")
	second := m.Subscribe("orders")
	defer first.Close()
	defer second.Close()

	m.Publish("orders", []int{1, 2, 3})

	for _, sub := range []*Subscription{first, second} {
		snap := <-sub.C
		assert.Equal(t, []int{1, 2, 3}, snap.Records)
	}
}

func TestSlowSubscriberCoalescesToNewestSnapshot(t *testing.T) {
	m := New(nil)
	sub := m.Subscribe("tasks")
	defer sub.Close()

	// Three publishes without a single read: only the newest survives.
	m.Publish("tasks", "one")
	m.Publish("tasks", "two")
	m.Publish("tasks", "three")

	snap := <-sub.C
	assert.Equal(t, "three", snap.Records)

	select {
	case extra, ok := <-sub.C:
		require.True(t, ok)
		t.Fatalf("unexpected extra snapshot: %v", extra.Records)
	default:
	}
}

func TestSnapshotsAreIndependentPerCollection(t *testing.T) {
	m := New(nil)
	tasks := m.Subscribe("tasks")
	orders := m.Subscribe("orders")
	defer tasks.Close()
	defer orders.Close()

	m.Publish("tasks", "taken")

	snap := <-tasks.C
	assert.Equal(t, "taken", snap.Records)

	select {
	case <-orders.C:
		t.Fatal("orders subscriber received a tasks snapshot")
	default:
	}
}

func TestCloseStopsDeliveryAndClosesChannel(t *testing.T) {
	m := New(nil)
	sub := m.Subscribe("kennisbank")

	sub.Close()
	m.Publish("kennisbank", "after close")

	_, ok := <-sub.C
	assert.False(t, ok)

	// Closing twice is a no-op.
	sub.Close()
}

func TestSequenceIncreasesAcrossPublishes(t *testing.T) {
	m := New(nil)

	m.Publish("tasks", nil)
	first, ok := m.Latest("tasks")
	require.True(t, ok)

	m.Publish("tasks", nil)
	second, ok := m.Latest("tasks")
	require.True(t, ok)

	assert.Greater(t, second.Seq, first.Seq)
}
