package group

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tos-network/groupdag/dag"
	"github.com/tos-network/groupdag/envelope"
)

func key(t *testing.T) (string, envelope.PrivateKey) {
	t.Helper()
	pub, sk, err := envelope.GenerateKey()
	require.NoError(t, err)
	return hex.EncodeToString(pub), sk
}

func TestInterpretSimpleRemove(t *testing.T) {
	aliceKey, alice := key(t)
	bobKey, _ := key(t)

	create, err := CreateOp(alice)
	require.NoError(t, err)
	createHash := envelope.Hash(create)

	addBob, err := AddOp(alice, bobKey, []string{createHash})
	require.NoError(t, err)
	addBobHash := envelope.Hash(addBob)

	removeBob, err := RemoveOp(alice, bobKey, []string{addBobHash})
	require.NoError(t, err)

	m, err := Interpret([][]byte{create, addBob, removeBob})
	require.NoError(t, err)

	require.True(t, m.Members.Contains(aliceKey))
	require.False(t, m.Members.Contains(bobKey))
}

func TestInterpretAddByAdded(t *testing.T) {
	aliceKey, alice := key(t)
	bobKey, bob := key(t)
	carolKey, _ := key(t)

	create, err := CreateOp(alice)
	require.NoError(t, err)
	createHash := envelope.Hash(create)

	addBob, err := AddOp(alice, bobKey, []string{createHash})
	require.NoError(t, err)
	addBobHash := envelope.Hash(addBob)

	addCarol, err := AddOp(bob, carolKey, []string{addBobHash})
	require.NoError(t, err)

	m, err := Interpret([][]byte{create, addBob, addCarol})
	require.NoError(t, err)

	require.True(t, m.Members.Contains(aliceKey))
	require.True(t, m.Members.Contains(bobKey))
	require.True(t, m.Members.Contains(carolKey))
}

// TestInterpretConcurrentAddVsRemoveOfAdder covers the case where an
// added member's sponsor is removed by a third party concurrently with
// the sponsor adding someone else. The new member's only authorising
// predecessor (the sponsor's add) is causally followed by a valid
// removal of that same sponsor, so the add is overridden even though it
// is itself concurrent with the removal (spec §4.4's precedence check
// runs between the candidate predecessors, not against the node being
// judged).
func TestInterpretConcurrentAddVsRemoveOfAdder(t *testing.T) {
	aliceKey, alice := key(t)
	bobKey, bob := key(t)
	carolKey, _ := key(t)

	create, err := CreateOp(alice)
	require.NoError(t, err)
	createHash := envelope.Hash(create)

	addBob, err := AddOp(alice, bobKey, []string{createHash})
	require.NoError(t, err)
	addBobHash := envelope.Hash(addBob)

	addCarol, err := AddOp(bob, carolKey, []string{addBobHash})
	require.NoError(t, err)
	removeBob, err := RemoveOp(alice, bobKey, []string{addBobHash})
	require.NoError(t, err)

	m, err := Interpret([][]byte{create, addBob, addCarol, removeBob})
	require.NoError(t, err)

	require.True(t, m.Members.Contains(aliceKey))
	require.False(t, m.Members.Contains(bobKey))
	require.False(t, m.Members.Contains(carolKey))
}

// TestInterpretCycleResolvedBySeniority mirrors the authority-graph
// cycle test in package authority but through the public Interpret
// entry point: a concurrent mutual removal is broken in favour of the
// more senior member.
func TestInterpretCycleResolvedBySeniority(t *testing.T) {
	_, genesis := key(t)
	aliceKey, alice := key(t)
	bobKey, bob := key(t)

	create, err := CreateOp(genesis)
	require.NoError(t, err)
	createHash := envelope.Hash(create)

	addAlice, err := AddOp(genesis, aliceKey, []string{createHash})
	require.NoError(t, err)
	addAliceHash := envelope.Hash(addAlice)

	addBob, err := AddOp(genesis, bobKey, []string{addAliceHash})
	require.NoError(t, err)
	addBobHash := envelope.Hash(addBob)

	removeBobByAlice, err := RemoveOp(alice, bobKey, []string{addBobHash})
	require.NoError(t, err)
	removeAliceByBob, err := RemoveOp(bob, aliceKey, []string{addBobHash})
	require.NoError(t, err)

	m, err := Interpret([][]byte{create, addAlice, addBob, removeBobByAlice, removeAliceByBob})
	require.NoError(t, err)

	require.True(t, m.Members.Contains(aliceKey))
	require.False(t, m.Members.Contains(bobKey))
	require.True(t, m.Dropped.Contains(envelope.Hash(removeAliceByBob)))
}

// TestInterpretMutualRemovalThenReAdd resolves a concurrent mutual
// removal (the drop set is deterministic here, by seniority, as in
// TestInterpretCycleResolvedBySeniority) and checks that the surviving
// remover can subsequently restore the other party's membership with an
// ordinary add — re-validating a previously-dropped relationship is a
// distinct question from seniority, which never rejuvenates.
func TestInterpretMutualRemovalThenReAdd(t *testing.T) {
	aliceKey, alice := key(t)
	bobKey, bob := key(t)

	create, err := CreateOp(alice)
	require.NoError(t, err)
	createHash := envelope.Hash(create)

	addBob, err := AddOp(alice, bobKey, []string{createHash})
	require.NoError(t, err)
	addBobHash := envelope.Hash(addBob)

	removeBobByAlice, err := RemoveOp(alice, bobKey, []string{addBobHash})
	require.NoError(t, err)
	removeAliceByBob, err := RemoveOp(bob, aliceKey, []string{addBobHash})
	require.NoError(t, err)

	raws := [][]byte{create, addBob, removeBobByAlice, removeAliceByBob}
	m, err := Interpret(raws)
	require.NoError(t, err)

	require.Equal(t, 1, m.Dropped.Cardinality())

	var survivorKey string
	var survivorSK envelope.PrivateKey
	var victimKey string
	switch {
	case m.Members.Contains(aliceKey) && !m.Members.Contains(bobKey):
		survivorKey, survivorSK, victimKey = aliceKey, alice, bobKey
	case m.Members.Contains(bobKey) && !m.Members.Contains(aliceKey):
		survivorKey, survivorSK, victimKey = bobKey, bob, aliceKey
	default:
		t.Fatalf("expected exactly one of alice/bob to remain a member, got members=%v", m.Members)
	}

	survivingRemove := removeBobByAlice
	if survivorKey == bobKey {
		survivingRemove = removeAliceByBob
	}
	reAdd, err := AddOp(survivorSK, victimKey, []string{envelope.Hash(survivingRemove)})
	require.NoError(t, err)

	m2, err := Interpret(append(append([][]byte{}, raws...), reAdd))
	require.NoError(t, err)
	require.True(t, m2.Members.Contains(victimKey))
	require.True(t, m2.Members.Contains(survivorKey))
}

func TestInterpretPostValidityAroundRemoval(t *testing.T) {
	_, alice := key(t)
	bobKey, bob := key(t)

	create, err := CreateOp(alice)
	require.NoError(t, err)
	createHash := envelope.Hash(create)

	addBob, err := AddOp(alice, bobKey, []string{createHash})
	require.NoError(t, err)
	addBobHash := envelope.Hash(addBob)

	postEarly, err := PostOp(bob, "hi", []string{addBobHash})
	require.NoError(t, err)
	postEarlyHash := envelope.Hash(postEarly)

	removeBob, err := RemoveOp(alice, bobKey, []string{postEarlyHash})
	require.NoError(t, err)
	removeBobHash := envelope.Hash(removeBob)

	postLate, err := PostOp(bob, "bye", []string{removeBobHash})
	require.NoError(t, err)

	m, err := Interpret([][]byte{create, addBob, postEarly, removeBob, postLate})
	require.NoError(t, err)

	require.True(t, m.ValidMessages.Contains("hi"))
	require.False(t, m.ValidMessages.Contains("bye"))
}

// TestInterpretSelfRemoval covers the self-removal Open Question: a
// member may sign a remove naming themselves. No special case exists
// for it; the self-referential edge this produces in the authority
// graph forms a trivial one-vertex cycle, which the ordinary
// cycle-breaking rule drops before validity is computed, so the
// self-removal op is discarded and its author's membership stands.
func TestInterpretSelfRemoval(t *testing.T) {
	aliceKey, alice := key(t)

	create, err := CreateOp(alice)
	require.NoError(t, err)
	createHash := envelope.Hash(create)

	selfRemove, err := RemoveOp(alice, aliceKey, []string{createHash})
	require.NoError(t, err)

	m, err := Interpret([][]byte{create, selfRemove})
	require.NoError(t, err)

	require.True(t, m.Members.Contains(aliceKey))
	require.True(t, m.Dropped.Contains(envelope.Hash(selfRemove)))
}

func TestInterpretRejectsMultipleCreates(t *testing.T) {
	_, alice := key(t)
	_, bob := key(t)

	c1, err := CreateOp(alice)
	require.NoError(t, err)
	c2, err := CreateOp(bob)
	require.NoError(t, err)

	_, err = Interpret([][]byte{c1, c2})
	require.Error(t, err)
	var f *dag.Fail
	require.ErrorAs(t, err, &f)
	require.Equal(t, dag.MultipleCreates, f.Kind)
}

// TestInterpretUnauthoredPostYieldsSmallerValidMessages covers spec
// §5: a post signed by a key that was never added is a behavioural
// violation, not a structural one — Interpret succeeds and the post's
// message is simply absent from ValidMessages.
func TestInterpretUnauthoredPostYieldsSmallerValidMessages(t *testing.T) {
	aliceKey, alice := key(t)
	_, mallory := key(t)

	create, err := CreateOp(alice)
	require.NoError(t, err)
	createHash := envelope.Hash(create)

	post, err := PostOp(mallory, "hi", []string{createHash})
	require.NoError(t, err)

	m, err := Interpret([][]byte{create, post})
	require.NoError(t, err)

	require.True(t, m.Members.Contains(aliceKey))
	require.False(t, m.ValidMessages.Contains("hi"))
}

func TestInterpretRejectsDanglingPredecessor(t *testing.T) {
	_, alice := key(t)
	bobKey, _ := key(t)

	create, err := CreateOp(alice)
	require.NoError(t, err)
	add, err := AddOp(alice, bobKey, []string{"0000000000000000000000000000000000000000000000000000000000000000"})
	require.NoError(t, err)

	_, err = Interpret([][]byte{create, add})
	require.Error(t, err)
	var f *dag.Fail
	require.ErrorAs(t, err, &f)
	require.Equal(t, dag.DanglingPredecessor, f.Kind)
}

func TestInterpretRejectsTamperedEnvelope(t *testing.T) {
	_, alice := key(t)

	create, err := CreateOp(alice)
	require.NoError(t, err)
	create[len(create)-1] ^= 0xFF

	_, err = Interpret([][]byte{create})
	require.Error(t, err)
	var f *envelope.Fail
	require.ErrorAs(t, err, &f)
	require.Equal(t, envelope.BadSignature, f.Kind)
}
