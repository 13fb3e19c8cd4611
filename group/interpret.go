// Package group is the interpreter façade (spec §4.5, component C5): it
// drives the envelope, dag, seniority, and authority layers in sequence
// and exposes the single pure entry point client code calls.
package group

import (
	mapset "github.com/deckarep/golang-set"

	"github.com/tos-network/groupdag/authority"
	"github.com/tos-network/groupdag/dag"
	"github.com/tos-network/groupdag/envelope"
	"github.com/tos-network/groupdag/seniority"
)

// Membership is the result of interpreting a set of operations: the
// hex-encoded public keys currently in the group, the message strings
// of posts that survive validity resolution, and the op hashes dropped
// to break authority-graph cycles (spec §4.4's drop set D, surfaced for
// callers that want to audit cycle resolution).
type Membership struct {
	Members       mapset.Set
	ValidMessages mapset.Set
	Dropped       mapset.Set
}

// Interpret runs the full C1-C4 pipeline over raws and returns the
// resulting Membership. It holds no state between calls and takes no
// locks: concurrent calls over disjoint inputs are safe, and a failure
// at any stage returns a zero Membership alongside the error — there is
// no partial result (spec §4.5, §5).
func Interpret(raws [][]byte) (Membership, error) {
	d, err := dag.Build(raws)
	if err != nil {
		return Membership{}, err
	}

	sen, err := seniority.Compute(d)
	if err != nil {
		return Membership{}, err
	}

	res, err := authority.Resolve(d, sen)
	if err != nil {
		return Membership{}, err
	}

	members := mapset.NewSet()
	for _, key := range candidateKeys(d) {
		if res.Valid[authority.MemberSentinel(key)] {
			members.Add(key)
		}
	}

	messages := mapset.NewSet()
	for h, op := range d.Ops {
		if op.Kind() == envelope.KindPost && res.Valid[h] {
			messages.Add(op.Body.Message)
		}
	}

	return Membership{Members: members, ValidMessages: messages, Dropped: res.Drop}, nil
}

// candidateKeys collects every public key ever named as the subject of a
// create, add, or remove op — the universe of keys whose membership is
// worth asking about. A key mentioned only by a remove that targets a
// key never actually added simply resolves to an invalid member
// sentinel downstream; it costs nothing to consider it here.
func candidateKeys(d *dag.Dag) []string {
	seen := map[string]struct{}{}
	var keys []string
	add := func(k string) {
		if k == "" {
			return
		}
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}

	for _, op := range d.Ops {
		switch op.Kind() {
		case envelope.KindCreate:
			add(op.SignedBy)
		case envelope.KindAdd:
			add(op.Body.AddedKey)
		case envelope.KindRemove:
			add(op.Body.RemovedKey)
		}
	}
	return keys
}
