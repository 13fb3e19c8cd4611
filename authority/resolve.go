package authority

import (
	mapset "github.com/deckarep/golang-set"

	"github.com/tos-network/groupdag/dag"
	"github.com/tos-network/groupdag/seniority"
)

// Result is the outcome of resolving a Dag's authority graph: the
// per-node validity map (op hashes, member sentinels, post hashes) and
// the set of op hashes dropped to break concurrent-removal cycles.
type Result struct {
	Valid map[string]bool
	Drop  mapset.Set
}

// Resolve builds the authority graph for d, enumerates cycles reachable
// from member sentinels, breaks each by dropping its least-senior
// author's op, and computes validity over the pruned graph (spec §4.4).
func Resolve(d *dag.Dag, sen map[string]seniority.Seniority) (Result, error) {
	return ResolveWithBudget(d, sen, defaultCycleBudget)
}

// ResolveWithBudget is Resolve with an explicit cycle-enumeration
// budget, exposed so callers (and tests) can exercise CycleBudgetExceeded
// without constructing a pathological DAG.
func ResolveWithBudget(d *dag.Dag, sen map[string]seniority.Seniority, budget int) (Result, error) {
	graph, memberNodes, postNodes := buildGraph(d)

	cycles, err := findCycles(graph, memberNodes, budget)
	if err != nil {
		return Result{}, err
	}

	drop := mapset.NewSet()
	for _, cycle := range cycles {
		victim := dropCandidate(d, sen, cycle)
		drop.Add(victim)
	}

	pruned := prune(graph, drop)

	seeds := make([]string, 0, len(memberNodes)+len(postNodes))
	seeds = append(seeds, memberNodes...)
	seeds = append(seeds, postNodes...)

	valid := computeValidity(d, pruned, seeds)
	return Result{Valid: valid, Drop: drop}, nil
}

// dropCandidate picks, from a cycle's vertex set, the op hash h
// maximising (seniority(signed_by(op(h))), h) — the least senior author
// breaks the cycle (spec §4.4).
func dropCandidate(d *dag.Dag, sen map[string]seniority.Seniority, cycle map[string]struct{}) string {
	var worst string
	var worstSen seniority.Seniority
	first := true

	for h := range cycle {
		s := sen[d.Ops[h].SignedBy]
		if first || worse(s, h, worstSen, worst) {
			worst, worstSen = h, s
			first = false
		}
	}
	return worst
}

// worse reports whether (s, h) sorts after (os, oh) — i.e. is less
// senior (or, on a seniority tie, has the lexicographically greater
// hash).
func worse(s seniority.Seniority, h string, os seniority.Seniority, oh string) bool {
	if s.Depth != os.Depth {
		return s.Depth > os.Depth
	}
	if s.AddHash != os.AddHash {
		return s.AddHash > os.AddHash
	}
	return h > oh
}

func prune(g *Graph, drop mapset.Set) *Graph {
	out := newGraph()
	for u, succs := range g.Out {
		if drop.Contains(u) {
			continue
		}
		for v := range succs {
			if drop.Contains(v) {
				continue
			}
			out.addEdge(u, v)
		}
	}
	return out
}
