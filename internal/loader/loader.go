// Package loader parses models in the background on a bounded worker pool.
package loader

import (
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"go.uber.org/zap"

	"github.com/Faultbox/objkit/internal/assets"
	"github.com/Faultbox/objkit/pkg/wavefront"
)

// Result is the outcome of one background load.
// Exactly one of Model and Err is set.
type Result struct {
	Path  string
	Model *wavefront.Model
	Err   error
}

// Config sizes the worker pool.
type Config struct {
	Workers     int
	QueueSize   int
	IdleTimeout time.Duration
}

// DefaultConfig returns the pool settings used when none are configured.
func DefaultConfig() Config {
	return Config{
		Workers:     4,
		QueueSize:   256,
		IdleTimeout: time.Second,
	}
}

// Loader runs assets.Manager.LoadModel on pooled goroutines.
type Loader struct {
	assets *assets.Manager
	opts   wavefront.Options
	log    *zap.Logger
	pool   worker.DynamicWorkerPool

	mu      sync.Mutex
	nextID  int
	pending sync.WaitGroup
}

// New creates a loader reading files through mgr.
func New(mgr *assets.Manager, opts wavefront.Options, cfg Config) *Loader {
	def := DefaultConfig()
	if cfg.Workers <= 0 {
		cfg.Workers = def.Workers
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = def.QueueSize
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = def.IdleTimeout
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{
		assets: mgr,
		opts:   opts,
		log:    log,
		pool:   worker.NewDynamicWorkerPool(cfg.Workers, cfg.QueueSize, cfg.IdleTimeout),
	}
}

// Load parses path in the background and calls done once with the result.
// done runs on a worker goroutine.
func (l *Loader) Load(path string, props *wavefront.LoadProperties, done func(Result)) {
	l.mu.Lock()
	id := l.nextID
	l.nextID++
	l.mu.Unlock()

	l.pending.Add(1)
	l.pool.SubmitTask(worker.Task{
		ID: id,
		Do: func() (any, error) {
			defer l.pending.Done()

			res := l.run(path, props)
			if done != nil {
				done(res)
			}
			return res.Model, res.Err
		},
	})
}

// LoadAsync parses path in the background and returns a handle to the result.
func (l *Loader) LoadAsync(path string, props *wavefront.LoadProperties) *Future {
	f := newFuture()
	l.Load(path, props, f.resolve)
	return f
}

// Wait blocks until every submitted load has delivered its result.
func (l *Loader) Wait() {
	l.pending.Wait()
}

func (l *Loader) run(path string, props *wavefront.LoadProperties) (res Result) {
	res.Path = path
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			res.Model = nil
			res.Err = fmt.Errorf("loading %s: panic: %v", path, r)
		}
		if res.Err != nil {
			l.log.Error("background load failed", zap.String("path", path), zap.Error(res.Err))
			return
		}
		l.log.Debug("background load finished",
			zap.String("path", path),
			zap.Duration("elapsed", time.Since(start)))
	}()

	res.Model, res.Err = l.assets.LoadModel(path, props, l.opts)
	return res
}

// Future is the pending result of LoadAsync.
type Future struct {
	done   chan struct{}
	result Result
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

func (f *Future) resolve(r Result) {
	f.result = r
	close(f.done)
}

// Done returns a channel closed once the result is available.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Poll returns the result if the load has finished.
func (f *Future) Poll() (Result, bool) {
	select {
	case <-f.done:
		return f.result, true
	default:
		return Result{}, false
	}
}

// Wait blocks until the load finishes and returns its result.
func (f *Future) Wait() Result {
	<-f.done
	return f.result
}
