package dynamo

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Sequential walks the whole range in one call on the calling goroutine.
type Sequential struct{}

func (Sequential) Name() string { return "sequential" }

func (Sequential) ForEach(r Range, fn func(lo, hi int)) {
	if r.Len() == 0 {
		return
	}
	fn(r.Lo, r.Hi)
}

// Parallel splits a range into disjoint chunks and runs them on at most
// workers goroutines. ForEach returns only after every chunk has finished.
type Parallel struct {
	workers  int
	minChunk int
}

func NewParallel(workers, minChunk int) *Parallel {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if minChunk < 1 {
		minChunk = 1
	}
	return &Parallel{workers: workers, minChunk: minChunk}
}

func (p *Parallel) Name() string  { return "parallel" }
func (p *Parallel) Workers() int  { return p.workers }
func (p *Parallel) MinChunk() int { return p.minChunk }

func (p *Parallel) ForEach(r Range, fn func(lo, hi int)) {
	n := r.Len()
	if n == 0 {
		return
	}

	parts := p.workers
	if n/p.minChunk < parts {
		parts = n / p.minChunk
	}
	if parts <= 1 {
		fn(r.Lo, r.Hi)
		return
	}

	var g errgroup.Group
	g.SetLimit(p.workers)
	for _, c := range Partition(r, parts) {
		g.Go(func() error {
			fn(c.Lo, c.Hi)
			return nil
		})
	}
	_ = g.Wait()
}

// Partition cuts r into at most parts contiguous, non-overlapping chunks
// whose union is r. Chunks differ in length by at most one chunk size step.
func Partition(r Range, parts int) []Range {
	n := r.Len()
	if n == 0 {
		return nil
	}
	if parts < 1 {
		parts = 1
	}
	if parts > n {
		parts = n
	}

	chunkSize := (n + parts - 1) / parts
	chunks := make([]Range, 0, parts)
	for lo := r.Lo; lo < r.Hi; lo += chunkSize {
		hi := lo + chunkSize
		if hi > r.Hi {
			hi = r.Hi
		}
		chunks = append(chunks, Range{Lo: lo, Hi: hi})
	}
	return chunks
}
