package physics

import "github.com/san-kum/yeewave/internal/dynamo"

// ERange is the set of Ex indices written by UpdateE. The end points stay
// fixed, which makes both grid ends perfectly reflecting.
func ERange(n int) dynamo.Range { return dynamo.Range{Lo: 1, Hi: n - 1} }

// HRange is the set of Hy indices written by UpdateH: all of them.
func HRange(n int) dynamo.Range { return dynamo.Range{Lo: 0, Hi: n - 1} }

// Engine advances a FieldState by leapfrog steps. The index ranges are the
// same for every executor, so sequential and parallel runs agree exactly.
type Engine struct {
	exec dynamo.Executor
}

func NewEngine(exec dynamo.Executor) *Engine {
	if exec == nil {
		exec = dynamo.Sequential{}
	}
	return &Engine{exec: exec}
}

func (e *Engine) Strategy() string { return e.exec.Name() }

// Step performs one tick: E from H, then H from the updated E.
func (e *Engine) Step(f *FieldState) {
	e.UpdateE(f)
	e.UpdateH(f)
}

func (e *Engine) UpdateE(f *FieldState) {
	f.mustShape()
	ex, hy, ce := f.ex, f.hy, f.coeff.CE
	e.exec.ForEach(ERange(len(ex)), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			ex[i] += ce * (hy[i] - hy[i-1])
		}
	})
}

func (e *Engine) UpdateH(f *FieldState) {
	f.mustShape()
	ex, hy, ch := f.ex, f.hy, f.coeff.CH
	e.exec.ForEach(HRange(len(ex)), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			hy[i] += ch * (ex[i+1] - ex[i])
		}
	})
}
