package host

import (
	"bytes"

	"github.com/nspcc-dev/neo-go/pkg/crypto/hash"
	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"
)

// SignatureWitness proves approval cryptographically: the invocation
// carries a payload (the serialized request) and a set of signatures
// over it. An account is witnessed when one of the attached public keys
// script-hashes to that account and its signature over the payload
// verifies.
type SignatureWitness struct {
	payload []byte
	claims  []signatureClaim
}

type signatureClaim struct {
	pub *keys.PublicKey
	sig []byte
}

// NewSignatureWitness returns a witness for the given invocation
// payload with no signatures attached yet.
func NewSignatureWitness(payload []byte) *SignatureWitness {
	cp := make([]byte, len(payload))
	copy(cp, payload)
	return &SignatureWitness{payload: cp}
}

// AddSignature attaches a public key and its signature over the
// invocation payload.
func (w *SignatureWitness) AddSignature(pub *keys.PublicKey, sig []byte) {
	cp := make([]byte, len(sig))
	copy(cp, sig)
	w.claims = append(w.claims, signatureClaim{pub: pub, sig: cp})
}

func (w *SignatureWitness) CheckWitness(account []byte) bool {
	digest := hash.Sha256(w.payload).BytesBE()
	for _, c := range w.claims {
		if !bytes.Equal(c.pub.GetScriptHash().BytesBE(), account) {
			continue
		}
		if c.pub.Verify(c.sig, digest) {
			return true
		}
	}
	return false
}
