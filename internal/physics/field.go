package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/yeewave/internal/dynamo"
)

// Vacuum constants in SI units.
const (
	Epsilon0 = 8.854187817e-12
	Mu0      = 4 * math.Pi * 1e-7
)

// SpeedOfLight is 1/sqrt(Epsilon0*Mu0).
var SpeedOfLight = 1 / math.Sqrt(Epsilon0*Mu0)

// Coefficients are the update factors of the scheme, fixed at construction.
// Dt is chosen as Dz/(2c), a Courant number of one half.
type Coefficients struct {
	Dz, Dt float64
	CE, CH float64
}

func NewCoefficients(dz float64) Coefficients {
	dt := dz / (2 * SpeedOfLight)
	return Coefficients{
		Dz: dz,
		Dt: dt,
		CE: dt / (Epsilon0 * dz),
		CH: dt / (Mu0 * dz),
	}
}

// FieldState owns the staggered Ex/Hy arrays. hy[i] sits half a step
// between ex[i] and ex[i+1], so len(hy) == len(ex)-1 always.
type FieldState struct {
	ex, hy []float64
	coeff  Coefficients
}

// NewFieldState builds an n-point grid with a Gaussian Ex pulse centred on
// n/2 and Hy at rest. n must be at least 3. The peak is exactly 1 at
// ex[n/2] only for even n; for odd n the centre falls between two samples.
func NewFieldState(n int, dz float64) *FieldState {
	if n < 3 {
		panic(fmt.Sprintf("physics: grid size %d has no interior", n))
	}

	center := float64(n) / 2
	width := float64(n) / 10
	ex := make([]float64, n)
	for i := range ex {
		z := float64(i) - center
		ex[i] = math.Exp(-(z * z) / (2 * width * width))
	}

	return &FieldState{
		ex:    ex,
		hy:    make([]float64, n-1),
		coeff: NewCoefficients(dz),
	}
}

func (f *FieldState) N() int                     { return len(f.ex) }
func (f *FieldState) Ex() []float64              { return f.ex }
func (f *FieldState) Hy() []float64              { return f.hy }
func (f *FieldState) Coefficients() Coefficients { return f.coeff }

// Energy is the discrete electromagnetic energy per unit area,
// dz/2 * sum(eps0*ex^2) + dz/2 * sum(mu0*hy^2).
func (f *FieldState) Energy() float64 {
	var we, wh float64
	for _, v := range f.ex {
		we += v * v
	}
	for _, v := range f.hy {
		wh += v * v
	}
	return 0.5 * f.coeff.Dz * (Epsilon0*we + Mu0*wh)
}

// IsValid reports whether every sample is finite.
func (f *FieldState) IsValid() bool {
	for _, v := range f.ex {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	for _, v := range f.hy {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (f *FieldState) mustShape() {
	if len(f.hy) != len(f.ex)-1 {
		panic(fmt.Errorf("%w: len(ex)=%d len(hy)=%d", dynamo.ErrDimensionMismatch, len(f.ex), len(f.hy)))
	}
}
