// Package queue holds documents waiting to be analyzed by batch workers.
package queue

import (
	"context"
	"sync"

	"github.com/okian/cambios/internal/domain/model"
	"github.com/okian/cambios/pkg/metrics"
)

const defaultQueueCapacity = 1024

// Document is the payload type flowing through the queue.
type Document = model.Document

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a document. It returns false when the queue is full or closed.
	Enqueue(ctx context.Context, d Document) bool
	// Dequeue returns a channel of documents, closed once the queue is closed and drained.
	Dequeue(ctx context.Context) <-chan Document
	Len(ctx context.Context) int
	Close() error
	IsClosed() bool
}

// InMemoryQueue implements Queue with a buffered channel.
type InMemoryQueue struct {
	docs     chan Document
	capacity int
	mu       sync.RWMutex
	closed   bool
}

// NewInMemoryQueue creates a bounded queue.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{capacity: defaultQueueCapacity}
	for _, opt := range opts {
		opt(q)
	}
	q.docs = make(chan Document, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)
	return q
}

// Enqueue adds a document without blocking.
func (q *InMemoryQueue) Enqueue(ctx context.Context, d Document) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueEnqueueError()
		return false
	}
	select {
	case <-ctx.Done():
		metrics.RecordQueueEnqueueError()
		return false
	default:
	}

	select {
	case q.docs <- d:
		metrics.RecordQueueEnqueue()
		metrics.UpdateQueueSize(len(q.docs))
		return true
	default:
		metrics.RecordQueueEnqueueError()
		return false
	}
}

// Dequeue returns a channel that receives documents until the queue is closed and
// drained or ctx is done.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Document {
	out := make(chan Document)
	go func() {
		defer close(out)
		for d := range q.docs {
			select {
			case out <- d:
				metrics.RecordQueueDequeue()
				metrics.UpdateQueueSize(len(q.docs))
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Len returns the number of queued documents.
func (q *InMemoryQueue) Len(_ context.Context) int {
	size := len(q.docs)
	metrics.UpdateQueueSize(size)
	return size
}

// Close stops accepting documents. Queued documents are still delivered.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil
	}
	close(q.docs)
	q.closed = true
	return nil
}

// IsClosed reports whether Close was called.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
