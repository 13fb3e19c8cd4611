package dag

import "github.com/tos-network/groupdag/envelope"

// Build verifies every raw envelope, schema-checks its body, cross-links
// predecessors/successors, and returns the resulting immutable Dag. Any
// violation listed in spec §4.2 is a hard failure — no partial Dag is
// ever returned (spec §4.5).
func Build(raws [][]byte) (*Dag, error) {
	ops := make(map[string]Op, len(raws))

	// Steps 1-2: verify (C1) and schema-check every envelope. Duplicate
	// raw bytes collapse naturally because they hash to the same key.
	for _, raw := range raws {
		verified, err := envelope.Verify(raw)
		if err != nil {
			return nil, err
		}
		if err := checkSchema(verified.Body); err != nil {
			return nil, err
		}
		ops[verified.Hash] = Op{Raw: verified}
	}

	// Step 3: existence — every non-create op has ≥1 preds, and every
	// predecessor hash resolves inside the set.
	for h, op := range ops {
		if op.Kind() == envelope.KindCreate {
			continue
		}
		if len(op.Body.Preds) == 0 {
			return nil, Failf(NonCreateWithoutPreds, "op %s (%s) has no predecessors", h, op.Kind())
		}
		for _, p := range op.Body.Preds {
			if _, ok := ops[p]; !ok {
				return nil, Failf(DanglingPredecessor, "op %s references unknown predecessor %s", h, p)
			}
		}
	}

	// Step 4: uniqueness — exactly one create op.
	var root string
	creates := 0
	for h, op := range ops {
		if op.Kind() == envelope.KindCreate {
			creates++
			root = h
		}
	}
	switch {
	case creates == 0:
		return nil, Failf(MissingRoot, "no create operation in the input set")
	case creates > 1:
		return nil, Failf(MultipleCreates, "found %d create operations, expected exactly one", creates)
	}

	// Step 5: build succs by inverting preds.
	preds := make(map[string]map[string]struct{}, len(ops))
	succs := make(map[string]map[string]struct{}, len(ops))
	for h, op := range ops {
		predSet := make(map[string]struct{}, len(op.Body.Preds))
		for _, p := range op.Body.Preds {
			predSet[p] = struct{}{}
			if succs[p] == nil {
				succs[p] = make(map[string]struct{})
			}
			succs[p][h] = struct{}{}
		}
		preds[h] = predSet
	}
	for h := range ops {
		if succs[h] == nil {
			succs[h] = make(map[string]struct{})
		}
	}

	d := &Dag{Ops: ops, Preds: preds, Succs: succs, Root: root}

	// Step 6: acyclicity + ancestor-set precomputation via Kahn's
	// algorithm, processing each op only once all its predecessors have
	// been processed. A cycle would require a SHA-256 preimage; if Kahn's
	// algorithm can't drain the whole set, something is structurally
	// corrupt rather than merely maliciously signed.
	ancestors, err := topoAncestors(d)
	if err != nil {
		return nil, err
	}
	d.ancestors = ancestors
	return d, nil
}

func topoAncestors(d *Dag) (map[string]map[string]struct{}, error) {
	remaining := make(map[string]int, len(d.Ops))
	for h := range d.Ops {
		remaining[h] = len(d.Preds[h])
	}

	var ready []string
	for h, n := range remaining {
		if n == 0 {
			ready = append(ready, h)
		}
	}

	ancestors := make(map[string]map[string]struct{}, len(d.Ops))
	processed := 0
	for len(ready) > 0 {
		h := ready[len(ready)-1]
		ready = ready[:len(ready)-1]

		set := make(map[string]struct{})
		for p := range d.Preds[h] {
			set[p] = struct{}{}
			for a := range ancestors[p] {
				set[a] = struct{}{}
			}
		}
		ancestors[h] = set
		processed++

		for s := range d.Succs[h] {
			remaining[s]--
			if remaining[s] == 0 {
				ready = append(ready, s)
			}
		}
	}

	if processed != len(d.Ops) {
		return nil, Failf(CorruptDag, "predecessor relation contains a cycle")
	}
	return ancestors, nil
}

func checkSchema(b envelope.Body) error {
	switch b.Type {
	case envelope.KindCreate:
		if b.Nonce == "" {
			return Failf(MissingField, "create op missing nonce")
		}
	case envelope.KindAdd:
		if b.AddedKey == "" {
			return Failf(MissingField, "add op missing added_key")
		}
	case envelope.KindRemove:
		if b.RemovedKey == "" {
			return Failf(MissingField, "remove op missing removed_key")
		}
	case envelope.KindPost:
		if b.Message == "" {
			return Failf(MissingField, "post op missing message")
		}
	default:
		return Failf(UnknownOpType, "unknown operation type %q", b.Type)
	}
	return nil
}
