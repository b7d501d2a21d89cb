package dynamo

import "fmt"

// Range is the half-open index interval [Lo, Hi).
type Range struct {
	Lo, Hi int
}

func (r Range) Len() int {
	if r.Hi <= r.Lo {
		return 0
	}
	return r.Hi - r.Lo
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Lo, r.Hi)
}

// Executor applies fn to sub-ranges that together cover r exactly once.
type Executor interface {
	Name() string
	ForEach(r Range, fn func(lo, hi int))
}

type Strategy int

const (
	StrategySequential Strategy = iota
	StrategyParallel
)

func (s Strategy) String() string {
	switch s {
	case StrategySequential:
		return "sequential"
	case StrategyParallel:
		return "parallel"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// NewExecutor selects the executor for s. workers <= 0 means one worker per CPU.
func NewExecutor(s Strategy, workers, minChunk int) Executor {
	if s == StrategyParallel {
		return NewParallel(workers, minChunk)
	}
	return Sequential{}
}
