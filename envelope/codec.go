package envelope

import (
	"crypto/rand"
	"crypto/sha256"
	stded25519 "crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// GenerateKey returns a fresh Ed25519 keypair, suitable for producing
// operations. Key management proper is out of scope (spec §1) — this
// exists only so tests and the groupctl collaborator have a source of keys.
func GenerateKey() (PublicKey, PrivateKey, error) {
	return stded25519.GenerateKey(rand.Reader)
}

// canonicalJSON renders body as sorted-key, whitespace-free JSON — the
// exact byte sequence that is hashed and signed. Marshaling a
// map[string]any produces lexicographically sorted keys, which is what
// encoding/json does for map values; that gives us the "sorted object
// keys" canonicalization spec §6 recommends without hand-rolling one.
func canonicalJSON(b Body) ([]byte, error) {
	m := map[string]interface{}{"type": string(b.Type)}
	switch b.Type {
	case KindCreate:
		m["nonce"] = b.Nonce
	case KindAdd:
		m["added_key"] = b.AddedKey
		m["preds"] = nonNilPreds(b.Preds)
	case KindRemove:
		m["removed_key"] = b.RemovedKey
		m["preds"] = nonNilPreds(b.Preds)
	case KindPost:
		m["message"] = b.Message
		m["preds"] = nonNilPreds(b.Preds)
	default:
		return nil, fmt.Errorf("envelope: unknown body type %q", b.Type)
	}
	return json.Marshal(m)
}

func nonNilPreds(p []string) []string {
	if p == nil {
		return []string{}
	}
	return p
}

// Sign canonicalizes body, signs it with sk, and returns the wire bytes
// pk ‖ sig ‖ json (spec §3/§6).
func Sign(sk PrivateKey, body Body) ([]byte, error) {
	payload, err := canonicalJSON(body)
	if err != nil {
		return nil, err
	}
	pub, ok := sk.Public().(PublicKey)
	if !ok {
		return nil, fmt.Errorf("envelope: malformed private key")
	}
	sig := stded25519.Sign(sk, payload)

	out := make([]byte, 0, HeaderSize+len(payload))
	out = append(out, pub...)
	out = append(out, sig...)
	out = append(out, payload...)
	return out, nil
}

// Hash returns the lowercase hex SHA-256 digest of the full envelope bytes.
func Hash(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// Verify splits the fixed 32/64-byte prefix from raw, authenticates the
// signature, and parses the JSON body. It is pure, allocates no package
// state, and runs in O(len(raw)) (spec §4.1).
func Verify(raw []byte) (Raw, error) {
	if len(raw) < HeaderSize {
		return Raw{}, fail(MalformedEnvelope, "envelope shorter than %d bytes (got %d)", HeaderSize, len(raw))
	}
	payload := raw[HeaderSize:]
	if !utf8.Valid(payload) {
		return Raw{}, fail(MalformedEnvelope, "body is not valid UTF-8")
	}

	pub := PublicKey(append([]byte(nil), raw[:PublicKeySize]...))
	sig := raw[PublicKeySize:HeaderSize]
	if !stded25519.Verify(pub, payload, sig) {
		return Raw{}, fail(BadSignature, "signature verification failed")
	}

	var body Body
	if err := json.Unmarshal(payload, &body); err != nil {
		return Raw{}, fail(MalformedBody, "invalid JSON body: %v", err)
	}

	return Raw{
		Bytes:    append([]byte(nil), raw...),
		Hash:     Hash(raw),
		Body:     body,
		SignedBy: hex.EncodeToString(pub),
	}, nil
}
