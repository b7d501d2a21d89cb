package viz

import (
	"bufio"
	"io"

	"golang.org/x/term"
)

const (
	clearScreen = "\x1b[2J"
	cursorHome  = "\x1b[H"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
)

// Fallback plot size when the terminal cannot be measured.
const (
	DefaultPlotWidth  = 100
	DefaultPlotHeight = 20
)

// Surface is the terminal as seen by the driver.
type Surface interface {
	Clear()
	Home()
	HideCursor()
	ShowCursor()
	WriteFrame(text string)
	Flush() error
}

// ANSITerminal implements Surface with raw escape sequences. Output is
// buffered until Flush.
type ANSITerminal struct {
	w *bufio.Writer
}

func NewANSITerminal(w io.Writer) *ANSITerminal {
	return &ANSITerminal{w: bufio.NewWriterSize(w, 64*1024)}
}

func (t *ANSITerminal) Clear()                 { t.w.WriteString(clearScreen) }
func (t *ANSITerminal) Home()                  { t.w.WriteString(cursorHome) }
func (t *ANSITerminal) HideCursor()            { t.w.WriteString(hideCursor) }
func (t *ANSITerminal) ShowCursor()            { t.w.WriteString(showCursor) }
func (t *ANSITerminal) WriteFrame(text string) { t.w.WriteString(text) }
func (t *ANSITerminal) Flush() error           { return t.w.Flush() }

// TerminalSize measures the terminal on fd once and returns the plot width
// and per-field height.
func TerminalSize(fd int) (width, height int) {
	cols, rows, err := term.GetSize(fd)
	if err != nil {
		return DefaultPlotWidth, DefaultPlotHeight
	}
	return PlotSize(cols, rows)
}

// PlotSize leaves 12 columns for the scale and label, and splits the rows
// between the two fields after 6 rows of frame and report.
func PlotSize(cols, rows int) (width, height int) {
	width, height = cols-12, (rows-6)/2
	if width < 1 {
		width = DefaultPlotWidth
	}
	if height < 1 {
		height = DefaultPlotHeight
	}
	return width, height
}
