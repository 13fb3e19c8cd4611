// Package envelope implements the wire codec for signed group-control
// operations: a fixed 32-byte public key, a 64-byte detached Ed25519
// signature, and a canonical-JSON body.
package envelope

import stded25519 "crypto/ed25519"

const (
	// PublicKeySize is the size in bytes of an envelope's signing key prefix.
	PublicKeySize = stded25519.PublicKeySize
	// SignatureSize is the size in bytes of an envelope's detached signature.
	SignatureSize = stded25519.SignatureSize
	// HeaderSize is the combined size of the public key and signature prefix.
	HeaderSize = PublicKeySize + SignatureSize
	// NonceSize is the byte length of a create operation's random nonce.
	NonceSize = 16
)

type (
	// PublicKey aliases the stdlib Ed25519 public key type.
	PublicKey = stded25519.PublicKey
	// PrivateKey aliases the stdlib Ed25519 private key type.
	PrivateKey = stded25519.PrivateKey
)

// Kind discriminates the four operation body shapes.
type Kind string

const (
	KindCreate Kind = "create"
	KindAdd    Kind = "add"
	KindRemove Kind = "remove"
	KindPost   Kind = "post"
)

// Body is the parsed, tagged operation body. Which of the optional
// fields are populated depends on Type, as marked below.
type Body struct {
	Type Kind `json:"type"`

	// create
	Nonce string `json:"nonce,omitempty"`

	// add
	AddedKey string `json:"added_key,omitempty"`

	// remove
	RemovedKey string `json:"removed_key,omitempty"`

	// post
	Message string `json:"message,omitempty"`

	// add / remove / post
	Preds []string `json:"preds,omitempty"`
}

// Raw is a verified envelope: the original bytes, its content hash, the
// parsed body, and the hex-encoded public key that signed it.
type Raw struct {
	Bytes    []byte
	Hash     string
	Body     Body
	SignedBy string
}
