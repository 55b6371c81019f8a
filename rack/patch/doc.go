// Package patch defines the module contract of a rack patch: named
// input/output ports carrying control-rate scalars or audio-rate sample
// buffers, cables connecting them, and a registry for building module
// instances by type name. The engine package consumes these types; the
// modules package implements them.
package patch
