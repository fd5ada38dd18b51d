// Package parallel provides a tile/chunk worker pool and parallel-for
// helpers shared by the renderer's tile loop and any other batched work.
// It generalizes the teacher's tile-task queue into a generic func(i int)
// parallel-for: workers pull contiguous chunks of a [0, N) index range off
// a channel instead of fixed tile structs, and the calling goroutine works
// chunks too, then waits on a sync.WaitGroup instead of draining a result
// channel.
package parallel

import (
	"runtime"
	"sync"
)

// NumThreads returns the number of worker goroutines ParallelFor should use
// when the caller passes numWorkers <= 0: one per additional hardware
// thread, leaving the calling goroutine free to also pick up chunks while
// it waits.
func NumThreads() int {
	n := runtime.NumCPU() - 1
	if n < 1 {
		return 1
	}
	return n
}

// chunk is a contiguous, half-open index range [Start, End) handed to one
// worker in one grab.
type chunk struct {
	Start, End int
}

// ParallelFor calls f(i) for every i in [0, N), distributed across
// numWorkers goroutines (NumThreads() if numWorkers <= 0) plus the calling
// goroutine, which also pulls chunks instead of idling — matching the
// teacher's "calling thread also works" convention. Work is handed out in
// chunkSize-sized contiguous pieces so cache locality within one chunk is
// preserved; chunkSize <= 0 defaults to a size that yields roughly 16
// chunks per worker, small enough to balance uneven per-index cost without
// making the per-chunk channel overhead dominate.
func ParallelFor(n, numWorkers, chunkSize int, f func(i int)) {
	if n <= 0 {
		return
	}
	if numWorkers <= 0 {
		numWorkers = NumThreads()
	}
	if chunkSize <= 0 {
		chunkSize = chunkSizeFor(n, numWorkers)
	}

	chunks := make(chan chunk, (n+chunkSize-1)/chunkSize)
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		chunks <- chunk{Start: start, End: end}
	}
	close(chunks)

	run := func() {
		for c := range chunks {
			for i := c.Start; i < c.End; i++ {
				f(i)
			}
		}
	}

	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			run()
		}()
	}
	run() // the calling goroutine also works the queue
	wg.Wait()
}

func chunkSizeFor(n, numWorkers int) int {
	perWorker := (n + numWorkers - 1) / numWorkers
	size := perWorker / 16
	if size < 1 {
		size = 1
	}
	return size
}

// ParallelFor2D calls f(x, y) for every (x, y) in [0, nX) x [0, nY),
// reusing ParallelFor by mapping the linear chunk index back to (x, y) via
// nX, matching parallel_for_2d's own reuse of the 1D mechanism.
func ParallelFor2D(nX, nY, numWorkers int, f func(x, y int)) {
	ParallelFor(nX*nY, numWorkers, 0, func(i int) {
		f(i%nX, i/nX)
	})
}

// Barrier lets a fixed number of goroutines rendezvous once: each calls
// Wait, and none return until all of them have called it. It is single-use
// — build a new Barrier for each rendezvous point, the way the teacher
// builds a new sync.WaitGroup per render pass rather than reusing one.
type Barrier struct {
	n    int
	wg   sync.WaitGroup
	once sync.Once
}

// NewBarrier returns a Barrier that releases once n goroutines have called
// Wait.
func NewBarrier(n int) *Barrier {
	b := &Barrier{n: n}
	b.wg.Add(n)
	return b
}

// Wait signals arrival at the barrier and blocks until all n participants
// have arrived.
func (b *Barrier) Wait() {
	b.wg.Done()
	b.wg.Wait()
}
