package notify

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFeed struct {
	mu      sync.Mutex
	opens   int
	closes  int
	handler func(Event)
}

func (f *fakeFeed) Open(handler func(Event)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opens++
	f.handler = handler
	return nil
}

func (f *fakeFeed) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closes++
	f.handler = nil
	return nil
}

func (f *fakeFeed) emit(evt Event) {
	f.mu.Lock()
	h := f.handler
	f.mu.Unlock()
	if h != nil {
		h(evt)
	}
}

type fakeGateway struct {
	mu         sync.Mutex
	permission Permission
	requests   int
	sent       []Alert
}

func (g *fakeGateway) Permission() Permission {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.permission
}

func (g *fakeGateway) Request(ctx context.Context) (Permission, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests++
	return g.permission, nil
}

func (g *fakeGateway) Send(ctx context.Context, a Alert) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sent = append(g.sent, a)
	return nil
}

func criticalEvent() Event {
	return Event{Kind: EventInsert, Values: map[string]interface{}{
		"id":       "abc",
		"title":    "Pot-de-vin",
		"category": "corruption",
		"priority": "critique",
		"location": "Libreville",
	}}
}

func TestConnectionLifecycle(t *testing.T) {
	feed := &fakeFeed{}
	n := NewNotifier(feed, nil)

	unsubA, err := n.Subscribe(func(CriticalCase) {})
	require.NoError(t, err)
	assert.Equal(t, 1, feed.opens)

	unsubB, err := n.Subscribe(func(CriticalCase) {})
	require.NoError(t, err)
	assert.Equal(t, 1, feed.opens, "second subscriber must share the connection")

	unsubA()
	assert.Equal(t, 0, feed.closes)

	unsubB()
	assert.Equal(t, 1, feed.closes, "last unsubscribe closes the connection")

	_, err = n.Subscribe(func(CriticalCase) {})
	require.NoError(t, err)
	assert.Equal(t, 2, feed.opens, "a fresh subscriber re-opens the connection")
}

func TestFanOutOrdering(t *testing.T) {
	feed := &fakeFeed{}
	n := NewNotifier(feed, nil)

	var order []string
	for _, name := range []string{"A", "B", "C"} {
		name := name
		_, err := n.Subscribe(func(CriticalCase) { order = append(order, name) })
		require.NoError(t, err)
	}

	feed.emit(criticalEvent())
	assert.Equal(t, []string{"A", "B", "C"}, order)
}

func TestSubscriberIsolation(t *testing.T) {
	feed := &fakeFeed{}
	n := NewNotifier(feed, nil)

	_, err := n.Subscribe(func(CriticalCase) { panic("boom") })
	require.NoError(t, err)

	var got CriticalCase
	_, err = n.Subscribe(func(cc CriticalCase) { got = cc })
	require.NoError(t, err)

	feed.emit(criticalEvent())
	assert.Equal(t, "abc", got.ID, "second listener must still receive the event")
	assert.Equal(t, "Pot-de-vin", got.Title)
}

func TestIdempotentUnsubscribe(t *testing.T) {
	feed := &fakeFeed{}
	n := NewNotifier(feed, nil)

	unsubA, err := n.Subscribe(func(CriticalCase) {})
	require.NoError(t, err)
	_, err = n.Subscribe(func(CriticalCase) {})
	require.NoError(t, err)

	unsubA()
	unsubA()
	assert.Equal(t, 0, feed.closes, "double unsubscribe must not close the shared connection")
	assert.Len(t, n.listeners, 1)
}

func TestGlobalUnsubscribe(t *testing.T) {
	feed := &fakeFeed{}
	n := NewNotifier(feed, nil)

	delivered := 0
	_, err := n.Subscribe(func(CriticalCase) { delivered++ })
	require.NoError(t, err)
	_, err = n.Subscribe(func(CriticalCase) { delivered++ })
	require.NoError(t, err)

	n.Unsubscribe()
	assert.Equal(t, 1, feed.closes)
	assert.Empty(t, n.listeners)

	feed.emit(criticalEvent())
	assert.Zero(t, delivered, "no delivery after global unsubscribe")
}

func TestUnsubscribeDuringDelivery(t *testing.T) {
	feed := &fakeFeed{}
	n := NewNotifier(feed, nil)

	var unsubA func()
	gotA, gotB := 0, 0
	unsubA, err := n.Subscribe(func(CriticalCase) {
		gotA++
		unsubA()
	})
	require.NoError(t, err)
	_, err = n.Subscribe(func(CriticalCase) { gotB++ })
	require.NoError(t, err)

	feed.emit(criticalEvent())
	feed.emit(criticalEvent())

	assert.Equal(t, 1, gotA, "self-unsubscribed listener stops after the first event")
	assert.Equal(t, 2, gotB, "remaining listener keeps receiving")
}

func TestNativeAlertGatedOnPermission(t *testing.T) {
	feed := &fakeFeed{}
	gw := &fakeGateway{permission: PermissionDenied}
	n := NewNotifier(feed, gw)

	_, err := n.Subscribe(func(CriticalCase) {})
	require.NoError(t, err)

	feed.emit(criticalEvent())
	assert.Empty(t, gw.sent, "denied permission suppresses the native alert")

	gw.mu.Lock()
	gw.permission = PermissionGranted
	gw.mu.Unlock()

	feed.emit(criticalEvent())
	require.Len(t, gw.sent, 1)
	assert.Equal(t, "abc", gw.sent[0].Tag, "alert tag is the case id")
	assert.True(t, gw.sent[0].Sticky)
}
