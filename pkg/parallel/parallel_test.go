package parallel

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParallelForVisitsEveryIndexExactlyOnce(t *testing.T) {
	const n = 1000
	var counts [n]int32

	ParallelFor(n, 4, 0, func(i int) {
		atomic.AddInt32(&counts[i], 1)
	})

	for i, c := range counts {
		require.EqualValuesf(t, 1, c, "index %d visited %d times", i, c)
	}
}

func TestParallelForHandlesSmallNWithManyWorkers(t *testing.T) {
	var mu sync.Mutex
	seen := map[int]bool{}

	ParallelFor(3, 8, 0, func(i int) {
		mu.Lock()
		seen[i] = true
		mu.Unlock()
	})

	require.Len(t, seen, 3)
}

func TestParallelForNoOpOnZeroOrNegativeN(t *testing.T) {
	called := false
	ParallelFor(0, 2, 0, func(i int) { called = true })
	require.False(t, called)
}

func TestParallelFor2DVisitsEveryCellExactlyOnce(t *testing.T) {
	const nx, ny = 17, 13
	var counts [nx * ny]int32

	ParallelFor2D(nx, ny, 4, func(x, y int) {
		atomic.AddInt32(&counts[y*nx+x], 1)
	})

	for i, c := range counts {
		require.EqualValuesf(t, 1, c, "cell %d visited %d times", i, c)
	}
}

func TestBarrierReleasesAllWaitersOnceAllArrive(t *testing.T) {
	const n = 5
	b := NewBarrier(n)

	var arrivedBeforeRelease int32
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			atomic.AddInt32(&arrivedBeforeRelease, 1)
			b.Wait()
		}()
	}
	wg.Wait()

	require.EqualValues(t, n, arrivedBeforeRelease)
}

func TestPoolRunsEverySubmittedJobAndReturnsResults(t *testing.T) {
	p := NewPool(3, 10)

	const n = 10
	for i := 0; i < n; i++ {
		id := i
		p.Submit(Job{TaskID: id, Run: func() any { return id * id }})
	}
	p.Stop()

	seen := map[int]int{}
	for r := range p.Results() {
		seen[r.TaskID] = r.Value.(int)
	}

	require.Len(t, seen, n)
	for id, v := range seen {
		require.Equal(t, id*id, v)
	}
}
