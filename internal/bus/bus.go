// Package bus is the in-process signal bus. Cluster adapters publish keyed
// signals on it and consumers (MQTT bridge, diagnostics server, automations)
// subscribe by exact signal name or to everything at once.
package bus

import (
	"log/slog"
	"sync"
	"time"
)

// Signal is one published message: a name plus a positional payload.
// Delivery is fire-and-forget and at-most-once; publishers never learn
// whether anyone listened.
type Signal struct {
	Name string    `json:"name"`
	Args []any     `json:"args"`
	Time time.Time `json:"time"`
}

// Handler consumes signals. Handlers run synchronously on the publisher's
// goroutine and must not block.
type Handler func(Signal)

// Bus fans signals out to subscribers by name.
type Bus struct {
	mu     sync.RWMutex
	byName map[string]map[uint64]Handler
	any    map[uint64]Handler
	nextID uint64
	logger *slog.Logger
}

func New(logger *slog.Logger) *Bus {
	return &Bus{
		byName: make(map[string]map[uint64]Handler),
		any:    make(map[uint64]Handler),
		logger: logger,
	}
}

// Subscribe registers a handler for one signal name and returns its
// unsubscribe function.
func (b *Bus) Subscribe(name string, h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	if b.byName[name] == nil {
		b.byName[name] = make(map[uint64]Handler)
	}
	b.byName[name][id] = h
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.byName[name], id)
	}
}

// SubscribeAll registers a handler for every signal and returns its
// unsubscribe function.
func (b *Bus) SubscribeAll(h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	b.any[id] = h
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.any, id)
	}
}

// Publish delivers a signal to every matching subscriber. A panicking
// handler is recovered and logged so one consumer cannot take down the
// publisher.
func (b *Bus) Publish(name string, args ...any) {
	sig := Signal{Name: name, Args: args, Time: time.Now()}

	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.byName[name])+len(b.any))
	for _, h := range b.byName[name] {
		handlers = append(handlers, h)
	}
	for _, h := range b.any {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					b.logger.Error("signal handler panic", "signal", name, "panic", r)
				}
			}()
			h(sig)
		}()
	}
}
