package notify

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

// Callback receives one normalized critical case per qualifying event.
type Callback func(CriticalCase)

// Notifier bridges the critical-case change-feed to in-process subscribers
// and to a native notification gateway. It owns the single underlying feed
// connection: opened on the first subscriber, shared by all of them, closed
// when the last one leaves. Construct one per process with NewNotifier and
// inject it where needed.
type Notifier struct {
	feed    Feed
	gateway Gateway

	mu        sync.Mutex
	listeners []*listener
	nextID    uint64
	open      bool
}

type listener struct {
	id uint64
	cb Callback
}

func NewNotifier(feed Feed, gateway Gateway) *Notifier {
	if gateway == nil {
		gateway = NoopGateway{}
	}
	return &Notifier{feed: feed, gateway: gateway}
}

// Subscribe registers a callback and returns its unsubscribe handle. The
// first subscriber opens the feed connection; later subscribers share it.
// Registration also requests notification permission in the background;
// denial only suppresses the native side-channel, never in-app delivery.
func (n *Notifier) Subscribe(cb Callback) (func(), error) {
	n.mu.Lock()
	l := &listener{id: n.nextID, cb: cb}
	n.nextID++
	n.listeners = append(n.listeners, l)
	needOpen := !n.open
	if needOpen {
		n.open = true
	}
	n.mu.Unlock()

	if needOpen {
		if err := n.feed.Open(n.dispatch); err != nil {
			n.mu.Lock()
			n.removeLocked(l.id)
			n.open = false
			n.mu.Unlock()
			return nil, fmt.Errorf("open feed: %w", err)
		}
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := n.gateway.Request(ctx); err != nil {
			log.Printf("notify: permission request: %v", err)
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { n.drop(l.id) })
	}, nil
}

// Unsubscribe force-closes the connection and drops every listener, however
// many remain. In-flight deliveries are not drained. Meant for application
// teardown, not per-subscriber cleanup.
func (n *Notifier) Unsubscribe() {
	n.mu.Lock()
	n.listeners = nil
	wasOpen := n.open
	n.open = false
	n.mu.Unlock()

	if wasOpen {
		if err := n.feed.Close(); err != nil {
			log.Printf("notify: close feed: %v", err)
		}
	}
}

func (n *Notifier) drop(id uint64) {
	n.mu.Lock()
	n.removeLocked(id)
	last := len(n.listeners) == 0 && n.open
	if last {
		n.open = false
	}
	n.mu.Unlock()

	if last {
		if err := n.feed.Close(); err != nil {
			log.Printf("notify: close feed: %v", err)
		}
	}
}

func (n *Notifier) removeLocked(id uint64) {
	for i, l := range n.listeners {
		if l.id == id {
			n.listeners = append(n.listeners[:i], n.listeners[i+1:]...)
			return
		}
	}
}

// dispatch handles one raw feed event: normalize once, deliver to a
// snapshot of the listeners in registration order, then raise the native
// alert. A panicking callback is logged and skipped; it never blocks the
// other listeners or the connection.
func (n *Notifier) dispatch(evt Event) {
	cc := Normalize(evt)

	n.mu.Lock()
	snapshot := make([]*listener, len(n.listeners))
	copy(snapshot, n.listeners)
	n.mu.Unlock()

	for _, l := range snapshot {
		n.invoke(l, cc)
	}

	// Permission is re-read on every event; the user may have revoked it.
	if n.gateway.Permission() != PermissionGranted {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := n.gateway.Send(ctx, Alert{
		Title:  "Cas critique: " + cc.Title,
		Body:   fmt.Sprintf("%s — %s", cc.Category, cc.Location),
		Icon:   "alert",
		Tag:    cc.ID,
		Sticky: true,
	}); err != nil {
		log.Printf("notify: native alert %s: %v", cc.ID, err)
	}
}

func (n *Notifier) invoke(l *listener, cc CriticalCase) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("notify: listener %d panic: %v", l.id, r)
		}
	}()
	l.cb(cc)
}
