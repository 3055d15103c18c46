// Package events provides the in-process NotificationSink implementation.
// Emission is fire-and-forget: the caller never blocks and never sees a
// failure. When the buffer is full the event is dropped and counted.
package events

import (
	"log/slog"
	"sync"
	"sync/atomic"
)

// Notification is one emitted event.
type Notification struct {
	UserID  string
	Kind    string
	Message string
}

// Notifier consumes events on a buffered channel and logs them. It stands
// in for whatever push/mail integration a deployment wires up; the core
// only depends on the NotificationSink interface.
type Notifier struct {
	logger  *slog.Logger
	ch      chan Notification
	dropped atomic.Int64

	closeOnce sync.Once
	done      chan struct{}
}

// NewNotifier starts the consumer goroutine. bufferSize bounds how many
// undelivered events are held before new ones are dropped.
func NewNotifier(logger *slog.Logger, bufferSize int) *Notifier {
	if bufferSize <= 0 {
		bufferSize = 256
	}
	n := &Notifier{
		logger: logger,
		ch:     make(chan Notification, bufferSize),
		done:   make(chan struct{}),
	}
	go n.run()
	return n
}

func (n *Notifier) run() {
	defer close(n.done)
	for evt := range n.ch {
		n.logger.Info("notification",
			slog.String("user_id", evt.UserID),
			slog.String("kind", evt.Kind),
			slog.String("message", evt.Message),
		)
	}
}

// Emit queues the event without blocking. Overflow drops the event.
func (n *Notifier) Emit(userID, kind, message string) {
	select {
	case n.ch <- Notification{UserID: userID, Kind: kind, Message: message}:
	default:
		if n.dropped.Add(1)%100 == 1 {
			n.logger.Warn("notification buffer full, dropping events",
				slog.Int64("dropped_total", n.dropped.Load()))
		}
	}
}

// Close stops the consumer after draining queued events.
func (n *Notifier) Close() {
	n.closeOnce.Do(func() {
		close(n.ch)
		<-n.done
	})
}
