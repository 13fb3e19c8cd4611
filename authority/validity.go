package authority

import (
	"github.com/tos-network/groupdag/dag"
	"github.com/tos-network/groupdag/envelope"
)

func opKind(d *dag.Dag, node string) (envelope.Kind, bool) {
	op, ok := d.Ops[node]
	if !ok {
		return "", false
	}
	return op.Kind(), true
}

func isCreate(d *dag.Dag, node string) bool {
	k, ok := opKind(d, node)
	return ok && k == envelope.KindCreate
}

func isAddOrCreate(d *dag.Dag, node string) bool {
	k, ok := opKind(d, node)
	return ok && (k == envelope.KindAdd || k == envelope.KindCreate)
}

func isRemove(d *dag.Dag, node string) bool {
	k, ok := opKind(d, node)
	return ok && k == envelope.KindRemove
}

// computeValidity evaluates, for every node in seeds, whether some
// unchallenged add/create authority reaches it through pruned (spec
// §4.4). It walks with an explicit stack rather than native recursion
// (spec §9); pruned is guaranteed acyclic by construction (every
// enumerated cycle lost at least one vertex to the drop set), so the
// in-progress guard below is a defensive backstop, never a load-bearing
// path for correctly-built input.
func computeValidity(d *dag.Dag, pruned *Graph, seeds []string) map[string]bool {
	valid := make(map[string]bool, len(seeds))

	type frame struct {
		node     string
		expanded bool
	}

	for _, seed := range seeds {
		if _, done := valid[seed]; done {
			continue
		}

		stack := []frame{{node: seed}}
		// inProgress holds the expanded frames still on the stack — the
		// current walk path — so only a predecessor that closes a cycle is
		// skipped; one merely queued by a sibling branch is pushed again.
		inProgress := map[string]bool{}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]

			if _, done := valid[top.node]; done {
				stack = stack[:len(stack)-1]
				continue
			}

			if isCreate(d, top.node) {
				valid[top.node] = true
				stack = stack[:len(stack)-1]
				continue
			}

			if !top.expanded {
				top.expanded = true
				inProgress[top.node] = true
				for p := range pruned.In[top.node] {
					if _, done := valid[p]; done || inProgress[p] {
						continue
					}
					stack = append(stack, frame{node: p})
				}
				continue
			}

			var preds []string
			for p := range pruned.In[top.node] {
				if valid[p] {
					preds = append(preds, p)
				}
			}

			ok := false
			for _, p := range preds {
				if !isAddOrCreate(d, p) {
					continue
				}
				overridden := false
				for _, q := range preds {
					if isRemove(d, q) && d.Precedes(p, q) {
						overridden = true
						break
					}
				}
				if !overridden {
					ok = true
					break
				}
			}
			valid[top.node] = ok
			delete(inProgress, top.node)
			stack = stack[:len(stack)-1]
		}
	}
	return valid
}
