package signature

import (
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"math/big"
)

// arweaveVerify implements Arweave's RSA-PSS/SHA-256 signature scheme: the
// owner is the raw RSA modulus bytes (public exponent is always 65537,
// "AQAB"), and the signature is an RSA-PSS signature over SHA-256(message),
// with an automatic PSS salt length.
//
// Grounded on the teacher's crypto/verify.go and crypto/sign.go, which
// implement the same construction for signing; stdlib crypto/rsa is kept
// here too since no example repo brings a better (or even alternative)
// RSA-PSS implementation.
func arweaveVerify(owner, message, signature []byte) (bool, error) {
	pub := &rsa.PublicKey{N: new(big.Int).SetBytes(owner), E: 65537}
	hashed := sha256.Sum256(message)
	err := rsa.VerifyPSS(pub, crypto.SHA256, hashed[:], signature, &rsa.PSSOptions{
		SaltLength: rsa.PSSSaltLengthAuto,
		Hash:       crypto.SHA256,
	})
	if err != nil {
		return false, nil
	}
	return true, nil
}
