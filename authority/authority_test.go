package authority

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tos-network/groupdag/dag"
	"github.com/tos-network/groupdag/envelope"
	"github.com/tos-network/groupdag/seniority"
)

func sign(t *testing.T, sk envelope.PrivateKey, body envelope.Body) []byte {
	t.Helper()
	raw, err := envelope.Sign(sk, body)
	require.NoError(t, err)
	return raw
}

// TestResolvePostSurvivesBeforeRemoval builds the canonical
// add-then-remove chain and checks that a post made before the removal
// stays valid while one made after it does not (spec §8).
func TestResolvePostSurvivesBeforeRemoval(t *testing.T) {
	alicePub, alice, err := envelope.GenerateKey()
	require.NoError(t, err)
	bobPub, bob, err := envelope.GenerateKey()
	require.NoError(t, err)
	aliceKey := hex.EncodeToString(alicePub)
	bobKey := hex.EncodeToString(bobPub)

	create := sign(t, alice, envelope.Body{Type: envelope.KindCreate, Nonce: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"})
	createHash := envelope.Hash(create)

	addBob := sign(t, alice, envelope.Body{Type: envelope.KindAdd, AddedKey: bobKey, Preds: []string{createHash}})
	addBobHash := envelope.Hash(addBob)

	postEarly := sign(t, bob, envelope.Body{Type: envelope.KindPost, Message: "hi", Preds: []string{addBobHash}})
	postEarlyHash := envelope.Hash(postEarly)

	removeBob := sign(t, alice, envelope.Body{Type: envelope.KindRemove, RemovedKey: bobKey, Preds: []string{postEarlyHash}})
	removeBobHash := envelope.Hash(removeBob)

	postLate := sign(t, bob, envelope.Body{Type: envelope.KindPost, Message: "bye", Preds: []string{removeBobHash}})
	postLateHash := envelope.Hash(postLate)

	d, err := dag.Build([][]byte{create, addBob, postEarly, removeBob, postLate})
	require.NoError(t, err)

	sen, err := seniority.Compute(d)
	require.NoError(t, err)

	res, err := Resolve(d, sen)
	require.NoError(t, err)

	require.True(t, res.Valid[createHash])
	require.True(t, res.Valid[addBobHash])
	require.True(t, res.Valid[removeBobHash])
	require.True(t, res.Valid[postEarlyHash])
	require.False(t, res.Valid[postLateHash])
	require.False(t, res.Valid[MemberSentinel(bobKey)])
	require.True(t, res.Valid[MemberSentinel(aliceKey)])
}

// TestResolveMutualRemovalBreaksCycleBySeniority builds a concurrent
// mutual-removal cycle and checks that the less senior author's remove
// op is dropped, leaving the more senior member's removal standing
// (spec §4.4/§8).
func TestResolveMutualRemovalBreaksCycleBySeniority(t *testing.T) {
	_, genesis, err := envelope.GenerateKey()
	require.NoError(t, err)
	alicePub, alice, err := envelope.GenerateKey()
	require.NoError(t, err)
	bobPub, bob, err := envelope.GenerateKey()
	require.NoError(t, err)
	aliceKey := hex.EncodeToString(alicePub)
	bobKey := hex.EncodeToString(bobPub)

	create := sign(t, genesis, envelope.Body{Type: envelope.KindCreate, Nonce: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"})
	createHash := envelope.Hash(create)

	addAlice := sign(t, genesis, envelope.Body{Type: envelope.KindAdd, AddedKey: aliceKey, Preds: []string{createHash}})
	addAliceHash := envelope.Hash(addAlice)

	// Bob is added one generation later, so he is strictly less senior
	// than Alice by depth regardless of hash tie-break.
	addBob := sign(t, genesis, envelope.Body{Type: envelope.KindAdd, AddedKey: bobKey, Preds: []string{addAliceHash}})
	addBobHash := envelope.Hash(addBob)

	removeBobByAlice := sign(t, alice, envelope.Body{Type: envelope.KindRemove, RemovedKey: bobKey, Preds: []string{addBobHash}})
	removeAliceByBob := sign(t, bob, envelope.Body{Type: envelope.KindRemove, RemovedKey: aliceKey, Preds: []string{addBobHash}})

	d, err := dag.Build([][]byte{create, addAlice, addBob, removeBobByAlice, removeAliceByBob})
	require.NoError(t, err)

	sen, err := seniority.Compute(d)
	require.NoError(t, err)

	res, err := Resolve(d, sen)
	require.NoError(t, err)

	require.Equal(t, 1, res.Drop.Cardinality())
	require.True(t, res.Drop.Contains(envelope.Hash(removeAliceByBob)))

	require.False(t, res.Valid[MemberSentinel(bobKey)])
	require.True(t, res.Valid[MemberSentinel(aliceKey)])
}

