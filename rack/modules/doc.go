// Package modules provides the built-in structural units of a rack:
// sources, gain staging, mixing, analysis and the terminal output sink.
// Each unit implements the patch.Module contract and registers a factory
// in DefaultRegistry.
package modules
