// Package widgets contains the plot render primitives.
//
// Allowed here:
// - plot panes and their drawing state (series, ranges, scales, frames)
//
// Not allowed here:
// - key handling, tool state transitions, or overlay policy
package widgets
