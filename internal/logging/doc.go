// Package logging provides the structured logger used for diagnostics.
// It wraps zerolog behind a small interface so components take a Logger
// and tests can capture output in a buffer.
package logging
