package rs

import (
	"fmt"
	"sync"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"github.com/sirupsen/logrus"

	"github.com/ajroetker/rshwy/hwy"
	"github.com/ajroetker/rshwy/hwy/contrib/workerpool"
	"github.com/ajroetker/rshwy/internal/logging"
)

// DefaultBatchSize is the number of invocations a worker claims at a time.
const DefaultBatchSize = 256

// Kernel is a per-element function. It receives the input cell and the
// invocation index and returns the output cell.
type Kernel[T Vector] func(in T, x uint32) T

// Option configures a Context.
type Option func(*Context)

// WithWorkers sets the number of pool workers. n <= 0 uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(c *Context) { c.workers = n }
}

// WithBatchSize sets how many invocations a worker claims per grab.
func WithBatchSize(n int) Option {
	return func(c *Context) {
		if n > 0 {
			c.batch = n
		}
	}
}

// WithLogger routes launch diagnostics to l.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Context) {
		if l != nil {
			c.log = l
		}
	}
}

// Context owns the worker pool that kernels are dispatched on.
type Context struct {
	workers int
	batch   int
	log     logrus.FieldLogger
	pool    *workerpool.Pool

	pending   sync.WaitGroup
	mu        sync.Mutex
	closed    bool
	launches  atomix.Int64
	closeOnce sync.Once
}

// NewContext creates a Context and starts its workers.
func NewContext(opts ...Option) *Context {
	c := &Context{batch: DefaultBatchSize, log: logging.Discard()}
	for _, opt := range opts {
		opt(c)
	}
	c.pool = workerpool.New(c.workers)
	c.log.WithFields(logrus.Fields{
		"workers": c.pool.NumWorkers(),
		"batch":   c.batch,
		"simd":    hwy.CurrentName(),
	}).Debug("rs: context created")
	return c
}

// Workers returns the number of pool workers.
func (c *Context) Workers() int {
	return c.pool.NumWorkers()
}

// Launches returns the number of launches started on this Context.
func (c *Context) Launches() int64 {
	return c.launches.LoadRelaxed()
}

// Stats returns the pool's execution counters.
func (c *Context) Stats() workerpool.Stats {
	return c.pool.Stats()
}

// ParallelFor runs fn over [0, n) in batches on the context's workers.
// It is for host-side work such as result checking, not kernel launches;
// it is not counted in Launches.
func (c *Context) ParallelFor(n int, fn func(start, end int)) {
	c.pool.ParallelForAtomicBatched(n, c.batch, fn)
}

// Finish blocks until every launch started so far has completed.
func (c *Context) Finish() {
	c.pending.Wait()
}

// Close waits for outstanding launches and stops the workers. Launches
// after Close fail with ErrClosed. Calling Close multiple times is safe.
func (c *Context) Close() {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()
		c.Finish()
		c.pool.Close()
	})
}

// begin registers a launch unless the context is closed.
func (c *Context) begin() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	c.pending.Add(1)
	c.launches.AddAcqRel(1)
	return nil
}

// Launch tracks one asynchronous kernel dispatch.
type Launch struct {
	n     int
	doneC chan struct{}
	// err is written before doneC is closed and read only after.
	err error
}

// Len returns the number of invocations in the launch.
func (l *Launch) Len() int {
	return l.n
}

// Poll returns iox.ErrWouldBlock while the launch is still running.
// Once it has completed, Poll returns the launch error, if any, and the
// output allocation may be read.
func (l *Launch) Poll() error {
	select {
	case <-l.doneC:
		return l.err
	default:
		return iox.ErrWouldBlock
	}
}

// Done returns a channel closed when the launch completes.
func (l *Launch) Done() <-chan struct{} {
	return l.doneC
}

// Wait blocks until the launch completes and returns its error. A kernel
// panic is reported as ErrKernelPanic.
func (l *Launch) Wait() error {
	<-l.doneC
	return l.err
}

func (l *Launch) finish(err error) {
	l.err = err
	close(l.doneC)
}

// ForEach runs k once for every index x in [0, out.Len()) and stores the
// result in out[x]. in must have the same length as out. It returns after
// all invocations complete.
//
// Kernels read script globals without checks of their own; callers bind
// and validate them first (cts.ForEach does). A kernel that panics does
// not bring down the process: the remaining batches still run and
// ForEach returns ErrKernelPanic.
func ForEach[T Vector](c *Context, k Kernel[T], in, out *Allocation[T]) error {
	l, err := ForEachAsync(c, k, in, out)
	if err != nil {
		return err
	}
	return l.Wait()
}

// ForEachAsync validates the launch and dispatches it in the background.
// Invocation order is unspecified.
func ForEachAsync[T Vector](c *Context, k Kernel[T], in, out *Allocation[T]) (*Launch, error) {
	if k == nil {
		return nil, ErrNilKernel
	}
	if in == nil || out == nil {
		return nil, ErrNilAllocation
	}
	if in.Len() != out.Len() {
		return nil, fmt.Errorf("%w: input has %d %s cells, output has %d", ErrSizeMismatch, in.Len(), in.elem, out.Len())
	}
	if err := c.begin(); err != nil {
		return nil, err
	}

	n := out.Len()
	l := &Launch{n: n, doneC: make(chan struct{})}
	log := c.log.WithFields(logrus.Fields{"element": out.elem.String(), "n": n})
	log.Debug("rs: forEach launch")

	go func() {
		defer c.pending.Done()

		var (
			mu       sync.Mutex
			panicErr error
		)
		src, dst := in.data, out.data
		c.pool.ParallelForAtomicBatched(n, c.batch, func(start, end int) {
			x := start
			defer func() {
				if r := recover(); r != nil {
					mu.Lock()
					if panicErr == nil {
						panicErr = fmt.Errorf("%w: invocation %d: %v", ErrKernelPanic, x, r)
					}
					mu.Unlock()
				}
			}()
			for ; x < end; x++ {
				dst[x] = k(src[x], uint32(x))
			}
		})

		if panicErr != nil {
			log.WithError(panicErr).Warn("rs: forEach kernel panicked")
		} else {
			log.Debug("rs: forEach complete")
		}
		l.finish(panicErr)
	}()
	return l, nil
}
