package eventbus

import (
	"context"
	"sync"
	"time"

	"pkt.systems/devconsole/schema"
	"pkt.systems/pslog"
)

// EventType identifies the event payload.
type EventType string

const (
	// EventLog carries one console log entry.
	EventLog EventType = "log"
	// EventClear asks presenters to drop everything they display.
	EventClear EventType = "clear"
)

// Event is delivered to every subscriber of a Bus.
type Event struct {
	Type  EventType
	Entry schema.LogEntry
}

// Publisher is the write side of the bus.
type Publisher interface {
	Log(text string, severity schema.Severity)
	Clear()
}

type subscriber struct {
	id uint64
	fn func(Event)
}

// Bus delivers console events synchronously to its subscribers, in
// subscription order, on the publishing goroutine. Nothing is buffered or
// replayed: a subscriber only sees events published after it subscribed.
//
// Publish must not be called from inside a subscriber and the bus never logs
// from the publish path, so a logger that writes back into the bus cannot
// recurse.
type Bus struct {
	mu   sync.Mutex
	subs []subscriber
	next uint64
	log  pslog.Logger
	now  func() time.Time
}

// New constructs a Bus.
func New(logger pslog.Logger) *Bus {
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	return &Bus{
		log: logger,
		now: time.Now,
	}
}

// Subscribe registers fn and returns a cancel func. Cancel is idempotent.
func (b *Bus) Subscribe(fn func(Event)) func() {
	if b == nil || fn == nil {
		return func() {}
	}
	b.mu.Lock()
	b.next++
	id := b.next
	b.subs = append(b.subs, subscriber{id: id, fn: fn})
	count := len(b.subs)
	b.mu.Unlock()
	b.log.Debug("eventbus subscribe", "subs", count)

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			for i, sub := range b.subs {
				if sub.id == id {
					b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
					break
				}
			}
			count := len(b.subs)
			b.mu.Unlock()
			b.log.Debug("eventbus unsubscribe", "subs", count)
		})
	}
}

// Subscribers returns the current subscriber count.
func (b *Bus) Subscribers() int {
	if b == nil {
		return 0
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Log publishes a log entry stamped with the bus clock.
func (b *Bus) Log(text string, severity schema.Severity) {
	b.Publish(Event{Type: EventLog, Entry: schema.LogEntry{Text: text, Severity: severity}})
}

// Clear publishes a clear event.
func (b *Bus) Clear() {
	b.Publish(Event{Type: EventClear})
}

// Publish delivers event to every subscriber registered at call time.
func (b *Bus) Publish(event Event) {
	if b == nil {
		return
	}
	if event.Type == EventLog && event.Entry.Time.IsZero() {
		event.Entry.Time = b.now()
	}
	b.mu.Lock()
	subs := make([]subscriber, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()
	for _, sub := range subs {
		sub.fn(event)
	}
}
