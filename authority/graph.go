// Package authority builds the authority graph over a Dag, resolves
// concurrent-removal cycles by seniority, and computes per-node validity
// (spec §4.4).
package authority

import (
	"strings"

	"github.com/tos-network/groupdag/dag"
	"github.com/tos-network/groupdag/envelope"
)

const memberPrefix = "member:"

// MemberSentinel returns the ("member", pk) node name for pk.
func MemberSentinel(pk string) string { return memberPrefix + pk }

// IsMemberSentinel reports whether node is a member sentinel, returning
// the underlying public key if so.
func IsMemberSentinel(node string) (pk string, ok bool) {
	if strings.HasPrefix(node, memberPrefix) {
		return node[len(memberPrefix):], true
	}
	return "", false
}

// Graph is a directed edge set over op hashes and member sentinels. Out
// and In are kept in lockstep so both cycle enumeration (which walks
// predecessors) and validity computation (which reads incoming edges)
// are O(1) per neighbour lookup.
type Graph struct {
	Out map[string]map[string]struct{}
	In  map[string]map[string]struct{}
}

func newGraph() *Graph {
	return &Graph{Out: map[string]map[string]struct{}{}, In: map[string]map[string]struct{}{}}
}

func (g *Graph) addEdge(u, v string) {
	if g.Out[u] == nil {
		g.Out[u] = map[string]struct{}{}
	}
	g.Out[u][v] = struct{}{}
	if g.In[v] == nil {
		g.In[v] = map[string]struct{}{}
	}
	g.In[v][u] = struct{}{}
}

// buildGraph constructs the authority graph and collects the set of
// member-sentinel and post-op nodes (the validity computation's seeds).
func buildGraph(d *dag.Dag) (g *Graph, memberNodes, postNodes []string) {
	g = newGraph()
	memberSeen := map[string]bool{}

	for h, op := range d.Ops {
		if op.Kind() == envelope.KindPost {
			postNodes = append(postNodes, h)
			continue
		}

		subject := subjectOf(op)
		member := MemberSentinel(subject)
		g.addEdge(h, member)
		if !memberSeen[member] {
			memberSeen[member] = true
			memberNodes = append(memberNodes, member)
		}

		for h2, op2 := range d.Ops {
			if op2.SignedBy != subject {
				continue
			}
			switch op.Kind() {
			case envelope.KindCreate, envelope.KindAdd:
				if d.Precedes(h, h2) {
					g.addEdge(h, h2)
				}
			case envelope.KindRemove:
				if !d.Precedes(h2, h) {
					g.addEdge(h, h2)
				}
			}
		}
	}
	return g, memberNodes, postNodes
}

// subjectOf returns k(u) — the public key an access-control op concerns
// (spec §4.4, "edge construction").
func subjectOf(op dag.Op) string {
	switch op.Kind() {
	case envelope.KindCreate:
		return op.SignedBy
	case envelope.KindAdd:
		return op.Body.AddedKey
	case envelope.KindRemove:
		return op.Body.RemovedKey
	default:
		return ""
	}
}
