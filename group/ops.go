package group

import (
	"encoding/hex"

	"github.com/google/uuid"

	"github.com/tos-network/groupdag/envelope"
)

// CreateOp signs a fresh create operation, the sole root of a new
// group's Dag. The nonce disambiguates otherwise-identical create
// bodies signed by the same key (spec §3, "create").
func CreateOp(sk envelope.PrivateKey) ([]byte, error) {
	id := uuid.New()
	return envelope.Sign(sk, envelope.Body{
		Type:  envelope.KindCreate,
		Nonce: hex.EncodeToString(id[:]),
	})
}

// AddOp signs an add operation naming addedKey, predecessed by preds.
func AddOp(sk envelope.PrivateKey, addedKey string, preds []string) ([]byte, error) {
	return envelope.Sign(sk, envelope.Body{
		Type:     envelope.KindAdd,
		AddedKey: addedKey,
		Preds:    preds,
	})
}

// RemoveOp signs a remove operation naming removedKey, predecessed by preds.
func RemoveOp(sk envelope.PrivateKey, removedKey string, preds []string) ([]byte, error) {
	return envelope.Sign(sk, envelope.Body{
		Type:       envelope.KindRemove,
		RemovedKey: removedKey,
		Preds:      preds,
	})
}

// PostOp signs a post operation carrying message, predecessed by preds.
func PostOp(sk envelope.PrivateKey, message string, preds []string) ([]byte, error) {
	return envelope.Sign(sk, envelope.Body{
		Type:    envelope.KindPost,
		Message: message,
		Preds:   preds,
	})
}
