package patch

// SplitPath splits a port path into its base name and optional index.
// A path is either a bare identifier ("cv") or an identifier followed by
// a bracketed non-negative integer ("cv[0]"). Malformed suffixes are kept
// in the base name, which then simply fails to resolve.
func SplitPath(path string) (base string, index int, indexed bool) {
	open := -1
	for i := 0; i < len(path); i++ {
		if path[i] == '[' {
			open = i
			break
		}
	}
	if open <= 0 || path[len(path)-1] != ']' {
		return path, 0, false
	}

	idx := 0
	digits := path[open+1 : len(path)-1]
	if len(digits) == 0 {
		return path, 0, false
	}
	for i := 0; i < len(digits); i++ {
		d := digits[i]
		if d < '0' || d > '9' {
			return path, 0, false
		}
		idx = idx*10 + int(d-'0')
	}

	return path[:open], idx, true
}

// ReadPort resolves a port path against a port map. Returns nil when the
// base name is missing, the index is out of range, or an indexed path
// addresses a non-bank port. A nil result means "not wired", never an error.
func ReadPort(ports Ports, path string) *Signal {
	base, index, indexed := SplitPath(path)

	sig, ok := ports[base]
	if !ok {
		return nil
	}
	if !indexed {
		return sig
	}

	return sig.At(index)
}

// WritePort writes src into the addressed port under the scalar/buffer
// coercion rules of Signal.CopyFrom. Unresolvable paths are a no-op.
func WritePort(ports Ports, path string, src *Signal) {
	dst := ReadPort(ports, path)
	if dst == nil {
		return
	}
	dst.CopyFrom(src)
}

// BorrowPort is the router's zero-copy variant of WritePort: buffer-to-
// buffer writes substitute the source buffer as the destination's view
// instead of copying. Unresolvable paths are a no-op.
func BorrowPort(ports Ports, path string, src *Signal) {
	dst := ReadPort(ports, path)
	if dst == nil {
		return
	}
	dst.Borrow(src)
}

// DetachPort restores the addressed port to its owned, silent state.
// Called by the engine when a port loses its last driving cable.
func DetachPort(ports Ports, path string) {
	sig := ReadPort(ports, path)
	if sig == nil {
		return
	}
	sig.Detach()
}
