package patch

// Cable is a directed connection from one module's output port to another
// module's input port. Port names may be indexed paths like "in[2]".
//
// A cable whose endpoints are missing from the current module set is a
// legal intermediate state while a patch is edited; every consumer skips
// it silently. When several cables drive the same input port, the one
// later in the cable list wins — list order is part of the contract.
type Cable struct {
	FromModule string
	FromPort   string
	ToModule   string
	ToPort     string
}

// SelfLoop reports whether the cable starts and ends on the same module.
// Self-loops are kept out of the ordering graph but are still routed, so a
// module reads its own previous-cycle output as feedback.
func (c Cable) SelfLoop() bool {
	return c.FromModule == c.ToModule
}
