package authority

import (
	"sort"
	"strings"

	"github.com/tos-network/groupdag/dag"
)

// defaultCycleBudget caps the total number of recursive predecessor-walk
// steps spent enumerating cycles (spec §5: "implementations SHOULD cap
// cycle enumeration depth... correctness of legitimate inputs must not
// depend on the cap"). Every fixture in this repo's test suite stays
// far under it; it exists to turn a pathological input into
// CycleBudgetExceeded instead of an unbounded walk.
const defaultCycleBudget = 200000

// findCycles enumerates simple cycles in g reachable from the given
// member-sentinel roots, walking predecessor edges the way
// authority_graph's reference walk does. Cycles are canonicalised to
// their vertex set (spec §9) so a cycle rediscovered via a different
// entry path is only recorded once.
func findCycles(g *Graph, roots []string, budget int) ([]map[string]struct{}, error) {
	seen := map[string]bool{}
	var cycles []map[string]struct{}
	calls := 0

	var walk func(node string, path []string, onPath map[string]int) error
	walk = func(node string, path []string, onPath map[string]int) error {
		calls++
		if calls > budget {
			return dag.Failf(dag.CycleBudgetExceeded, "cycle enumeration exceeded budget of %d calls", budget)
		}

		if idx, ok := onPath[node]; ok {
			cycle := append([]string(nil), path[idx:]...)
			sig := canonicalSignature(cycle)
			if !seen[sig] {
				seen[sig] = true
				set := make(map[string]struct{}, len(cycle))
				for _, n := range cycle {
					set[n] = struct{}{}
				}
				cycles = append(cycles, set)
			}
			return nil
		}

		nextOnPath := make(map[string]int, len(onPath)+1)
		for k, v := range onPath {
			nextOnPath[k] = v
		}
		nextOnPath[node] = len(path)
		nextPath := append(append([]string(nil), path...), node)

		for p := range g.In[node] {
			if err := walk(p, nextPath, nextOnPath); err != nil {
				return err
			}
		}
		return nil
	}

	for _, root := range roots {
		if err := walk(root, nil, map[string]int{}); err != nil {
			return nil, err
		}
	}
	return cycles, nil
}

func canonicalSignature(nodes []string) string {
	sorted := append([]string(nil), nodes...)
	sort.Strings(sorted)
	return strings.Join(sorted, "\x00")
}
