package viz

import (
	"fmt"
	"io"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/san-kum/yeewave/internal/dynamo"
)

// 3/4-bit colour escapes.
const (
	ColorBlue  = "\x1b[34m"
	ColorRed   = "\x1b[31m"
	ColorWhite = "\x1b[37m"

	ansiReset     = "\x1b[0m"
	ansiClearLine = "\x1b[K"
)

const (
	glyphFull  = "█"
	glyphUpper = "▀"
	glyphLower = "▄"
	glyphRule  = "─"

	// flatEps guards the range division for constant data.
	flatEps = 1e-12
	// ruleMargin is the number of header columns taken by the scale value.
	ruleMargin = 9
	minLabel   = 6
)

type WaveformOptions struct {
	Width  int
	Height int
	Label  string
	Color  string
}

// Waveform renders data as Height rows of half-block glyphs framed by a
// max header and a min footer. Each terminal row holds two sub-rows, so
// the vertical resolution is 2*Height.
func Waveform(data []float64, opts WaveformOptions) (string, error) {
	if len(data) == 0 {
		return "", dynamo.ErrEmptyData
	}
	if opts.Width < 1 || opts.Height < 1 {
		return "", fmt.Errorf("%w: waveform %dx%d", dynamo.ErrParameterBounds, opts.Width, opts.Height)
	}

	minVal, maxVal := bounds(data)
	subRows := opts.Height * 2
	zero := zeroRow(minVal, maxVal, subRows)
	sampled := Downsample(data, opts.Width)

	labelWidth := utf8.RuneCountInString(opts.Label)
	if labelWidth < minLabel {
		labelWidth = minLabel
	}
	blank := strings.Repeat(" ", labelWidth) + " │ "
	labelled := opts.Label + strings.Repeat(" ", labelWidth-utf8.RuneCountInString(opts.Label)) + " │ "

	var b strings.Builder
	writeRule(&b, maxVal, opts.Width)

	for row := opts.Height - 1; row >= 0; row-- {
		upper, lower := row*2+1, row*2
		baseline := upper == zero || lower == zero

		if baseline {
			b.WriteString(labelled)
		} else {
			b.WriteString(blank)
		}

		for _, v := range sampled {
			pos := scaleRow(v, minVal, maxVal, subRows)
			switch {
			case pos == upper && pos == lower:
				writeGlyph(&b, opts.Color, glyphFull)
			case pos == upper:
				writeGlyph(&b, opts.Color, glyphUpper)
			case pos == lower:
				writeGlyph(&b, opts.Color, glyphLower)
			case baseline:
				writeGlyph(&b, ColorWhite, glyphRule)
			default:
				b.WriteByte(' ')
			}
		}

		b.WriteString(ansiClearLine)
		b.WriteByte('\n')
	}

	writeRule(&b, minVal, opts.Width)
	return b.String(), nil
}

// RenderWaveform writes the Waveform output to w in one call.
func RenderWaveform(w io.Writer, data []float64, opts WaveformOptions) error {
	s, err := Waveform(data, opts)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s)
	return err
}

// Downsample picks width samples by nearest index, halves rounding away
// from zero. A single column shows the last sample.
func Downsample(data []float64, width int) []float64 {
	n := len(data)
	if n == 0 || width < 1 {
		return nil
	}
	out := make([]float64, width)
	if width == 1 {
		out[0] = data[n-1]
		return out
	}
	for c := range out {
		idx := int(math.Round(float64(c) * float64(n-1) / float64(width-1)))
		if idx > n-1 {
			idx = n - 1
		}
		out[c] = data[idx]
	}
	return out
}

func bounds(data []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range data {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// zeroRow is the sub-row where 0 falls, or the middle for flat data.
func zeroRow(lo, hi float64, subRows int) int {
	if math.Abs(hi-lo) < flatEps {
		return subRows / 2
	}
	return clampRow((0-lo)/(hi-lo)*float64(subRows-1), subRows)
}

func scaleRow(v, lo, hi float64, subRows int) int {
	return clampRow((v-lo)/(hi-lo+flatEps)*float64(subRows-1), subRows)
}

func clampRow(pos float64, subRows int) int {
	r := math.Round(pos)
	if r < 0 || math.IsNaN(r) {
		return 0
	}
	if r > float64(subRows-1) {
		return subRows - 1
	}
	return int(r)
}

func writeGlyph(b *strings.Builder, color, glyph string) {
	b.WriteString(color)
	b.WriteString(glyph)
	b.WriteString(ansiReset)
}

func writeRule(b *strings.Builder, v float64, width int) {
	fmt.Fprintf(b, "  %s +%s%s\n", formatBound(v), strings.Repeat(glyphRule, max(width-ruleMargin, 0)), ansiClearLine)
}

// formatBound keeps the scale readable for Hy, whose magnitude is ~1/377
// of Ex and would otherwise print as 0.00.
func formatBound(v float64) string {
	a := math.Abs(v)
	if v == 0 || (a >= 0.01 && a < 1e4) {
		return fmt.Sprintf("%6.2f", v)
	}
	return fmt.Sprintf("%6.1e", v)
}
