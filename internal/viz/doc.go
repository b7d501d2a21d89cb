// Package viz renders field samples as live terminal waveforms.
//
//   - [Waveform]: half-block ASCII/ANSI plot of one array, auto-scaled, with
//     the zero baseline highlighted
//   - [Surface]: the narrow terminal interface the driver draws through
//   - [ANSITerminal]: Surface over raw escape sequences
//   - [EnergySummary]: post-run energy report drawn with asciigraph
//
// # Resolution
//
// Each terminal row carries two vertical sample positions:
//
//	▀  upper sub-row
//	▄  lower sub-row
//	█  both
//
// so a plot of height H distinguishes 2H levels.
package viz
