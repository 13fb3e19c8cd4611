// Package seniority computes, for every public key ever added to a Dag,
// its seniority — the (depth, hash) of the add/create operation that
// first added it (spec §4.3).
package seniority

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"

	"github.com/tos-network/groupdag/dag"
	"github.com/tos-network/groupdag/envelope"
)

// Seniority is (depth_of_first_add, add_hash). Lower is more senior;
// the hash is a deterministic tie-break.
type Seniority struct {
	Depth   int
	AddHash string
}

// Less reports whether s is strictly more senior than o.
func (s Seniority) Less(o Seniority) bool {
	if s.Depth != o.Depth {
		return s.Depth < o.Depth
	}
	return s.AddHash < o.AddHash
}

// Compute returns the seniority map for d. An op signed by a key with no
// preceding add/create (an unauthored op) is not a structural error
// (spec §7 only raises on malformed wire data and DAG shape violations)
// — it simply never gains authority downstream, since
// authority.computeValidity finds no reachable add/create predecessor
// for it either way.
func Compute(d *dag.Dag) (map[string]Seniority, error) {
	depth, err := computeDepths(d)
	if err != nil {
		return nil, err
	}

	// A(k) = { h : op(h).type in {create, add} and added_key_of(h) = k }
	added := make(map[string][]string, len(d.Ops))
	for h, op := range d.Ops {
		switch op.Kind() {
		case envelope.KindCreate:
			added[op.SignedBy] = append(added[op.SignedBy], h)
		case envelope.KindAdd:
			added[op.Body.AddedKey] = append(added[op.Body.AddedKey], h)
		}
	}

	out := make(map[string]Seniority, len(added))
	for pk, hashes := range added {
		best := Seniority{Depth: depth[hashes[0]], AddHash: hashes[0]}
		for _, h := range hashes[1:] {
			if cand := (Seniority{Depth: depth[h], AddHash: h}); cand.Less(best) {
				best = cand
			}
		}
		out[pk] = best
	}
	return out, nil
}

// computeDepths returns the longest-path depth from the root to every
// op, via an explicit-stack post-order traversal (spec §9 warns against
// native recursion over large DAGs). The traversal's memo table is the
// LRU cache itself — sized to the op count, so eviction never actually
// happens, but every "is this hash done" check and every parent-depth
// lookup goes through cache.Get rather than a side map; a result map
// is filled alongside purely because callers need the full hash->depth
// table back (an LRU cache can't be range-iterated to reconstruct it).
func computeDepths(d *dag.Dag) (map[string]int, error) {
	cache, err := lru.New(len(d.Ops) + 1)
	if err != nil {
		return nil, fmt.Errorf("seniority: building depth cache: %w", err)
	}

	result := make(map[string]int, len(d.Ops))

	type frame struct {
		hash     string
		expanded bool
	}

	for start := range d.Ops {
		if _, done := cache.Get(start); done {
			continue
		}
		stack := []frame{{hash: start}}
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			if _, done := cache.Get(top.hash); done {
				stack = stack[:len(stack)-1]
				continue
			}
			if !top.expanded {
				stack[len(stack)-1].expanded = true
				if d.Ops[top.hash].Kind() != envelope.KindCreate {
					for p := range d.Preds[top.hash] {
						if _, ok := cache.Get(p); !ok {
							stack = append(stack, frame{hash: p})
						}
					}
				}
				continue
			}

			var v int
			if d.Ops[top.hash].Kind() != envelope.KindCreate {
				for p := range d.Preds[top.hash] {
					pd, _ := cache.Get(p)
					if pdInt, _ := pd.(int); pdInt+1 > v {
						v = pdInt + 1
					}
				}
			}
			cache.Add(top.hash, v)
			result[top.hash] = v
			stack = stack[:len(stack)-1]
		}
	}
	return result, nil
}
