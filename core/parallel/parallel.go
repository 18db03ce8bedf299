package parallel

import (
	"runtime"
	"sync"
)

// Range is a half-open interval [Start, End) of item indices.
type Range struct {
	Start, End int
}

// Partition splits items into at most workers contiguous, non-empty ranges of
// near-equal size (ceiling division), in ascending order.
func Partition(items, workers int) []Range {
	if items <= 0 {
		return nil
	}
	if workers <= 0 {
		workers = 1
	}
	if workers > items {
		workers = items // No need for more workers than items
	}

	chunkSize := (items + workers - 1) / workers
	ranges := make([]Range, 0, workers)
	for start := 0; start < items; start += chunkSize {
		end := start + chunkSize
		if end > items {
			end = items
		}
		ranges = append(ranges, Range{Start: start, End: end})
	}
	return ranges
}

// Parallelize divides the specified total number (items) according to the number of CPU cores,
// and executes the specified function (fn) in parallel for each range (start, end)
func Parallelize(items int, fn func(start, end int)) {
	ranges := Partition(items, runtime.NumCPU())

	var wg sync.WaitGroup
	for _, r := range ranges {
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(r.Start, r.End)
	}
	wg.Wait()
}

// ParallelizeWithThreshold performs parallelization only when the number of items exceeds the threshold
// If below threshold, normal sequential processing is performed
func ParallelizeWithThreshold(items int, threshold int, fn func(start, end int)) {
	if items == 0 {
		return
	}
	if items <= threshold {
		fn(0, items)
		return
	}
	Parallelize(items, fn)
}

// Reduce evaluates fn over the partitions of items and returns the partial
// results in partition order, so callers combining them sequentially get the
// same floating-point result on every run. At or below threshold fn is called
// once over the whole range on the calling goroutine.
func Reduce[T any](items, threshold int, fn func(start, end int) T) []T {
	if items == 0 {
		return nil
	}
	ranges := []Range{{Start: 0, End: items}}
	if items > threshold {
		ranges = Partition(items, runtime.NumCPU())
	}
	// 各範囲の開始位置は chunk の倍数なので、そこから書き込み先が決まる
	chunk := ranges[0].End - ranges[0].Start
	partials := make([]T, len(ranges))
	ParallelizeWithThreshold(items, threshold, func(start, end int) {
		partials[start/chunk] = fn(start, end)
	})
	return partials
}
