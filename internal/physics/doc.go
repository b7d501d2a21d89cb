// Package physics implements the 1-D Yee-grid FDTD solver.
//
// A [FieldState] holds the electric field Ex at N grid points and the
// magnetic field Hy at the N-1 half-step points between them:
//
//	Ex:  0     1     2    ...   N-2   N-1
//	Hy:     0     1    ...   N-3  N-2
//
// [Engine.Step] advances the state by one leapfrog tick, Ex from Hy and then
// Hy from the new Ex. The Ex end points are never written.
//
//	fs := physics.NewFieldState(100000, 0.5)
//	eng := physics.NewEngine(dynamo.NewExecutor(dynamo.StrategyParallel, 0, 4096))
//	for t := 1; t <= 8*fs.N(); t++ {
//	    eng.Step(fs)
//	}
//
// # Energy Conservation
//
// With fixed end points the scheme is lossless; [FieldState.Energy] stays
// close to its initial value and can be used to watch for drift.
package physics
