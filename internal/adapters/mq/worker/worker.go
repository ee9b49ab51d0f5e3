// Package worker analyzes queued documents in parallel.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/cambios/internal/domain/model"
	"github.com/okian/cambios/pkg/logger"
	"github.com/okian/cambios/pkg/metrics"
)

// Analyzer turns one document into an analysis.
type Analyzer interface {
	Analyze(ctx context.Context, doc model.Document) (model.Analysis, error)
}

// Queue defines how workers receive documents.
type Queue interface {
	Dequeue(ctx context.Context) <-chan model.Document
}

// Result is the outcome for one document. Exactly one of Analysis and Err is meaningful.
type Result struct {
	Document model.Document
	Analysis model.Analysis
	Err      error
	Duration time.Duration
}

// InMemoryWorker pulls documents off a queue and sends results to a shared channel.
type InMemoryWorker struct {
	queue    Queue
	analyzer Analyzer
	results  chan<- Result
	active   *atomic.Int64
	name     string
	logger   logger.Logger
}

// NewInMemoryWorker creates a worker.
func NewInMemoryWorker(q Queue, a Analyzer, results chan<- Result, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    q,
		analyzer: a,
		results:  results,
		active:   new(atomic.Int64),
		name:     "worker",
		logger:   logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run processes documents until the queue is drained or ctx is done.
func (w *InMemoryWorker) Run(ctx context.Context) {
	docs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case doc, ok := <-docs:
			if !ok {
				return
			}
			res := w.process(ctx, doc)
			select {
			case w.results <- res:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (w *InMemoryWorker) process(ctx context.Context, doc model.Document) Result {
	metrics.UpdateWorkerActiveCount(int(w.active.Add(1)))
	defer func() { metrics.UpdateWorkerActiveCount(int(w.active.Add(-1))) }()

	start := time.Now()
	a, err := w.analyzer.Analyze(ctx, doc)
	elapsed := time.Since(start)
	if err != nil {
		metrics.RecordWorkerError()
		w.logger.Warn(ctx, "document failed",
			logger.String("worker", w.name),
			logger.String("source", doc.Source),
			logger.Error(err),
		)
		return Result{Document: doc, Err: fmt.Errorf("analyze %s: %w", doc.Source, err), Duration: elapsed}
	}
	metrics.RecordWorkerProcessed(float64(elapsed.Milliseconds()))
	w.logger.Debug(ctx, "document analyzed",
		logger.String("worker", w.name),
		logger.String("source", doc.Source),
		logger.String("analysis_id", a.ID),
		logger.Duration("elapsed", elapsed),
	)
	return Result{Document: doc, Analysis: a, Duration: elapsed}
}

// Pool runs a fixed number of workers over one queue.
type Pool struct {
	workers []*InMemoryWorker
	results chan Result
	wg      sync.WaitGroup
	once    sync.Once
	logger  logger.Logger
}

// NewPool creates workerCount workers; fewer than one means one per CPU.
func NewPool(workerCount int, q Queue, a Analyzer) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}
	p := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		results: make(chan Result, workerCount),
		logger:  logger.Get().Named("worker-pool"),
	}
	active := new(atomic.Int64)
	for i := range p.workers {
		p.workers[i] = NewInMemoryWorker(q, a, p.results,
			WithName("worker-"+strconv.Itoa(i)),
			withActiveCounter(active),
		)
	}
	return p
}

// Start launches the workers. The results channel is closed once all of them return.
func (p *Pool) Start(ctx context.Context) {
	p.once.Do(func() {
		p.logger.Info(ctx, "starting workers", logger.Int("count", len(p.workers)))
		for _, w := range p.workers {
			p.wg.Add(1)
			go func(w *InMemoryWorker) {
				defer p.wg.Done()
				w.Run(ctx)
			}(w)
		}
		go func() {
			p.wg.Wait()
			close(p.results)
		}()
	})
}

// Results delivers one Result per processed document.
func (p *Pool) Results() <-chan Result {
	return p.results
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return len(p.workers)
}
