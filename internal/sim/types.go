package sim

import (
	"fmt"
	"time"

	"github.com/san-kum/yeewave/internal/physics"
)

// Stepper advances the field by one tick.
type Stepper interface {
	Step(fs *physics.FieldState)
	Strategy() string
}

// Observer is called with the field after every progress interval, and
// once before the first tick.
type Observer interface {
	OnTick(tick int, fs *physics.FieldState)
}

type Metric interface {
	Observer
	Name() string
	Value() float64
	Reset()
}

type Options struct {
	// Bench disables rendering and prints "<t>/<total>" progress lines.
	Bench bool
	// FPS bounds the redraw rate; frames are at least 1000/FPS ms apart.
	FPS int
	// ProgressInterval is the tick spacing of progress lines and observers.
	ProgressInterval int
	// Width and Height are the plot size of each field.
	Width, Height int
	// TotalTicks defaults to config.TicksPerCell * N.
	TotalTicks int
}

type Report struct {
	Ticks         int
	TotalTicks    int
	Frames        int
	ProgressLines int
	Elapsed       time.Duration
	Strategy      string
	Metrics       map[string]float64
}

type Phase int

const (
	PhaseInitializing Phase = iota
	PhaseRunning
	PhaseFinalizing
)

func (p Phase) String() string {
	switch p {
	case PhaseInitializing:
		return "initializing"
	case PhaseRunning:
		return "running"
	case PhaseFinalizing:
		return "finalizing"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}
