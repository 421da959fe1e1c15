// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent, reusable worker pool for
// data-parallel kernel dispatch. A Pool is created once per rs.Context and
// reused by every launch, so a launch costs one channel send per worker
// instead of a goroutine spawn per range.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	pool.ParallelForAtomicBatched(n, 256, func(start, end int) {
//	    for x := start; x < end; x++ {
//	        out[x] = kernel(in[x], uint32(x))
//	    }
//	})
package workerpool

import (
	"runtime"
	"sync"

	"code.hybscloud.com/atomix"
)

// Pool is a persistent worker pool that can be reused across many parallel
// operations. Workers are spawned once at creation and reused.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomix.Bool

	ranges atomix.Int64
	items  atomix.Int64
}

// Stats counts the work a Pool has executed since creation.
type Stats struct {
	// Ranges is the number of fn invocations (one per range or index).
	Ranges int64
	// Items is the number of indices covered by those invocations.
	Items int64
}

// workItem represents a single parallel operation to execute.
type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// New creates a new worker pool with the specified number of workers.
// Workers are spawned immediately and persist until Close is called.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		// Buffer enough for all workers to have pending work
		workC: make(chan workItem, numWorkers*2),
	}

	for range numWorkers {
		go p.worker()
	}

	return p
}

func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Closed reports whether Close has been called.
func (p *Pool) Closed() bool {
	return p.closed.LoadAcquire()
}

// Stats returns the work counters. Values are exact once every
// ParallelFor call that started before Stats has returned.
func (p *Pool) Stats() Stats {
	return Stats{
		Ranges: p.ranges.LoadRelaxed(),
		Items:  p.items.LoadRelaxed(),
	}
}

// Close shuts down the worker pool. All pending work will complete.
// Calling Close multiple times is safe.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.StoreRelease(true)
		close(p.workC)
	})
}

// run wraps fn so every executed range is counted.
func (p *Pool) run(fn func(start, end int), start, end int) {
	fn(start, end)
	p.ranges.AddAcqRel(1)
	p.items.AddAcqRel(int64(end - start))
}

// ParallelFor executes fn for each index in [0, n) using the worker pool.
// Each worker processes a contiguous range of indices.
// Blocks until all work completes. After Close, fn runs on the caller.
//
// fn receives (start, end) indices where work should process [start, end).
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	workers := min(p.numWorkers, n)
	if workers == 1 || p.Closed() {
		p.run(fn, 0, n)
		return
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)

	for i := range workers {
		start := i * chunkSize
		end := min(start+chunkSize, n)
		if start >= n {
			wg.Done()
			continue
		}

		p.workC <- workItem{
			fn:      func() { p.run(fn, start, end) },
			barrier: &wg,
		}
	}

	wg.Wait()
}

// ParallelForAtomic executes fn for each index in [0, n) using atomic work
// stealing. This provides better load balancing when work per item varies.
// Blocks until all work completes.
func (p *Pool) ParallelForAtomic(n int, fn func(i int)) {
	p.ParallelForAtomicBatched(n, 1, func(start, end int) {
		for i := start; i < end; i++ {
			fn(i)
		}
	})
}

// ParallelForAtomicBatched executes fn for batches of indices using atomic
// work stealing. Combines the load balancing of atomic distribution with
// reduced atomic operation overhead by processing multiple items per grab.
//
// fn receives (start, end) indices where work should process [start, end).
// batchSize controls how many items are grabbed per atomic operation.
func (p *Pool) ParallelForAtomicBatched(n int, batchSize int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	batchSize = max(batchSize, 1)

	numBatches := (n + batchSize - 1) / batchSize
	workers := min(p.numWorkers, numBatches)

	if workers == 1 || p.Closed() {
		for start := 0; start < n; start += batchSize {
			p.run(fn, start, min(start+batchSize, n))
		}
		return
	}

	var nextBatch atomix.Int64
	var wg sync.WaitGroup
	wg.Add(workers)

	for range workers {
		p.workC <- workItem{
			fn: func() {
				for {
					start := int(nextBatch.AddAcqRel(1)-1) * batchSize
					if start >= n {
						return
					}
					p.run(fn, start, min(start+batchSize, n))
				}
			},
			barrier: &wg,
		}
	}

	wg.Wait()
}
