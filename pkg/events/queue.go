package events

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

var (
	ErrQueueFull   = errors.New("events: queue full")
	ErrQueueClosed = errors.New("events: queue closed")
)

type queued struct {
	topic string
	key   string
	event any
}

// Queue hands events to a single background worker so callers never wait on
// the broker. Events that do not fit in the buffer are dropped.
type Queue struct {
	next    Publisher
	logger  *slog.Logger
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
	ch     chan queued
	done   chan struct{}
}

func NewQueue(next Publisher, size int, logger *slog.Logger) *Queue {
	if size <= 0 {
		size = 256
	}
	q := &Queue{
		next:    next,
		logger:  logger,
		timeout: 5 * time.Second,
		ch:      make(chan queued, size),
		done:    make(chan struct{}),
	}
	go q.run()
	return q
}

func (q *Queue) run() {
	defer close(q.done)
	for m := range q.ch {
		ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
		if err := q.next.Publish(ctx, m.topic, m.key, m.event); err != nil {
			q.logger.Warn("event_publish_failed", "topic", m.topic, "error", err)
		}
		cancel()
	}
}

// Publish never blocks. ctx is unused; the worker applies its own timeout.
func (q *Queue) Publish(_ context.Context, topic, key string, event any) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}
	select {
	case q.ch <- queued{topic: topic, key: key, event: event}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close drains what is already queued, then closes the wrapped publisher.
func (q *Queue) Close() error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.ch)
	}
	q.mu.Unlock()

	<-q.done
	return q.next.Close()
}
