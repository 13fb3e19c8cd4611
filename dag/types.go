// Package dag hashes, schema-checks, and cross-links a set of verified
// operation envelopes into an immutable causal DAG (spec §4.2).
package dag

import "github.com/tos-network/groupdag/envelope"

// Op is a verified, hash-identified operation — an envelope.Raw record
// plus the convenience accessors used by the rest of the interpreter.
type Op struct {
	envelope.Raw
}

// Kind returns the operation's discriminator.
func (o Op) Kind() envelope.Kind { return o.Body.Type }

// Dag is the immutable, content-addressed operation graph. Nothing in
// this package or its callers ever mutates a Dag after Build returns it;
// every derived value (seniority, authority graph, validity) is computed
// fresh from it.
type Dag struct {
	Ops   map[string]Op                  // hash -> op
	Preds map[string]map[string]struct{} // hash -> set of predecessor hashes
	Succs map[string]map[string]struct{} // hash -> set of successor hashes
	Root  string                         // hash of the unique create op

	// ancestors[h] is the full set of hashes reachable from h via Preds,
	// precomputed once in Build by a single topological pass so that
	// Precedes is O(1) instead of re-walking the graph on every call.
	ancestors map[string]map[string]struct{}
}

// Heads returns the hashes of operations with no successors.
func (d *Dag) Heads() []string {
	var heads []string
	for h := range d.Ops {
		if len(d.Succs[h]) == 0 {
			heads = append(heads, h)
		}
	}
	return heads
}

// Precedes reports a ≺ b: whether a is reachable from b by following
// predecessor edges (spec §3, "Causal order"). Backed by the ancestor
// sets precomputed in Build, so this is O(1).
func (d *Dag) Precedes(a, b string) bool {
	if a == b {
		return false
	}
	_, ok := d.ancestors[b][a]
	return ok
}
