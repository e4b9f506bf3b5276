// Package address implements the Arweave address derivation utility spec
// §6 calls out explicitly as exported but "not part of decoding": an
// address is the URL-safe, unpadded base64 encoding of SHA-256(owner).
//
// Grounded on the teacher's crypto/utils.go (GetAddressFromOwner /
// GetAddressFromPublicKey), simplified to operate directly on raw owner
// bytes rather than an *rsa.PublicKey, since callers here already hold the
// DataItem's raw owner field rather than a parsed RSA key.
package address

import (
	"crypto/sha256"
	"encoding/base64"
)

// FromOwner returns the base64url (no padding) address for the given raw
// owner (public key) bytes.
func FromOwner(owner []byte) string {
	sum := sha256.Sum256(owner)
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
