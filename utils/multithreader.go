package utils

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// MultiThread runs f for every integer in [start, end), spread over several goroutines. It
// returns once every call has finished.
//
// Each goroutine takes opsPerThread values at a time until none are left. threadsPerCPU
// goroutines are started per CPU, though never more than there are batches of work. Ranges that
// fit in a single batch are run on the calling goroutine.
//
// f must be safe to call concurrently for different values.
func MultiThread(start, end int, f func(int), opsPerThread, threadsPerCPU int) {
	if opsPerThread < 1 {
		opsPerThread = 1
	}
	if threadsPerCPU < 1 {
		threadsPerCPU = 1
	}

	if end-start <= opsPerThread {
		for i := start; i < end; i++ {
			f(i)
		}
		return
	}

	batches := (end - start + opsPerThread - 1) / opsPerThread
	numThreads := runtime.NumCPU() * threadsPerCPU
	if numThreads > batches {
		numThreads = batches
	}

	next := int64(start)

	var wg sync.WaitGroup
	wg.Add(numThreads)
	for t := 0; t < numThreads; t++ {
		go func() {
			defer wg.Done()

			for {
				i := int(atomic.AddInt64(&next, int64(opsPerThread))) - opsPerThread
				if i >= end {
					return
				}

				e := i + opsPerThread
				if e > end {
					e = end
				}

				for ; i < e; i++ {
					f(i)
				}
			}
		}()
	}

	wg.Wait()
}
