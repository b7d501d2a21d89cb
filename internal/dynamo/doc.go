// Package dynamo provides the execution primitives shared by the field solver.
//
// The package defines how a contiguous index range is walked:
//
//   - [Range]: half-open index interval [Lo, Hi)
//   - [Executor]: strategy that applies a chunk function over a Range
//   - [Sequential]: single goroutine, strictly increasing index order
//   - [Parallel]: disjoint chunks on a bounded set of goroutines, joined
//     before ForEach returns
//
// # Example
//
//	exec := dynamo.NewExecutor(dynamo.StrategyParallel, 0, 4096)
//	exec.ForEach(dynamo.Range{Lo: 1, Hi: n - 1}, func(lo, hi int) {
//	    for i := lo; i < hi; i++ {
//	        ex[i] += ce * (hy[i] - hy[i-1])
//	    }
//	})
//
// # Thread Safety
//
// Executors hold no mutable state and may be shared. The chunk function
// passed to a Parallel executor runs concurrently and must only write the
// indices of the chunk it receives.
package dynamo
