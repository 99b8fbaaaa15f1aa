// Package sweep implements the sweep generator: it enumerates the Cartesian
// product of a sweep's axes and, for every combination, writes a parameter
// file and a paired job script named after a sequential job identifier.
//
// Iteration order is fixed. Grid axes are outermost (first declared axis
// slowest), the repeat axis is next and the sub-parameter axis is innermost.
// Every combination, including every sub-parameter value, receives its own
// identifier and its own pair of files.
//
// The identifier counter is not package state. Generate takes the first
// identifier to use and returns the next free one, so callers that generate
// several sweeps in a row decide whether to continue or restart numbering.
package sweep
