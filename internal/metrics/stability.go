package metrics

import (
	"math"

	"github.com/san-kum/yeewave/internal/physics"
)

// Stability is the fraction of observations in which every sample stayed
// finite and within threshold.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) OnTick(tick int, fs *physics.FieldState) {
	s.samples++
	if !fs.IsValid() {
		s.violations++
		return
	}
	for _, val := range fs.Ex() {
		if math.Abs(val) > s.threshold {
			s.violations++
			return
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
