package engine

import "github.com/cwbudde/algo-rack/rack/patch"

// Route drives the target module's inputs from the outputs of every module
// cabled into it, for the current cycle only. The cable list is scanned in
// order, so a later cable overrides an earlier one on the same input port.
// Buffer-to-buffer connections substitute the source buffer as the input's
// view instead of copying; all other combinations follow the scalar/buffer
// coercion rules of the patch package.
//
// Cables whose source module or port does not resolve are skipped. Route
// never calls Process and never mutates any module's outputs.
func Route(target string, modules map[string]patch.Instance, cables []patch.Cable) {
	dst, ok := modules[target]
	if !ok || dst.Module == nil {
		return
	}

	inputs := dst.Module.Inputs()

	for _, c := range cables {
		if c.ToModule != target {
			continue
		}

		src, ok := modules[c.FromModule]
		if !ok || src.Module == nil {
			continue
		}

		sig := patch.ReadPort(src.Module.Outputs(), c.FromPort)
		if sig == nil {
			continue
		}

		patch.BorrowPort(inputs, c.ToPort, sig)
	}
}
