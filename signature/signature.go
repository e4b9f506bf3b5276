// Package signature holds the signature-scheme registry (C3): a static,
// extensible table mapping a DataItem's signature_type discriminator to the
// byte lengths of its signature/owner fields and, where available, the
// algorithm that verifies a signature against a message and an owner.
//
// Grounded on the teacher's transaction/bundle/utils.go and
// transaction/data_item/utils.go, both of which carry the identical
// Arweave/ED25519/Ethereum/Solana SignatureConfig table (itself duplicated
// three times across the teacher repo - the teacher never extends it at
// runtime, whereas spec §9 requires the registry to be injectable).
package signature

import "github.com/liteseed/ans104/decodeerr"

// Verify checks signature against message using owner's public key
// material. message is the DataItem's deep hash (see package deephash).
type Verify func(owner, message, signature []byte) (bool, error)

// Scheme describes one signature_type entry.
type Scheme struct {
	Type            uint16
	Name            string
	SignatureLength int
	OwnerLength     int
	Verify          Verify // nil for schemes with no known verification algorithm
}

// Well-known signature_type discriminators, as carried by the teacher's
// SignatureConfig table.
const (
	Arweave  uint16 = 1
	ED25519  uint16 = 2
	Ethereum uint16 = 3
	Solana   uint16 = 4
)

// Registry is a read-only-after-construction lookup from signature_type to
// Scheme. The zero value is not usable; use NewRegistry.
type Registry struct {
	schemes map[uint16]Scheme
}

// NewRegistry returns a registry seeded with scheme 1 (RSA-PSS/Arweave,
// 512-byte signature and owner, Verify wired to arweaveVerify) and the
// three historical schemes the teacher's table also carries
// (ED25519/Ethereum/Solana), registered with their own signature/owner
// lengths (64/32, 65/65, 64/32) but no Verify, so a verification request
// against them fails with VerifierUnavailable rather than being accepted.
func NewRegistry() *Registry {
	r := &Registry{schemes: make(map[uint16]Scheme, 4)}
	r.Register(Scheme{Type: Arweave, Name: "arweave", SignatureLength: 512, OwnerLength: 512, Verify: arweaveVerify})
	r.Register(Scheme{Type: ED25519, Name: "ed25519", SignatureLength: 64, OwnerLength: 32})
	r.Register(Scheme{Type: Ethereum, Name: "ethereum", SignatureLength: 65, OwnerLength: 65})
	r.Register(Scheme{Type: Solana, Name: "solana", SignatureLength: 64, OwnerLength: 32})
	return r
}

// Register adds or replaces a scheme. Callers extend the registry this way
// to add ecosystem schemes (secp256k1, additional ed25519 variants, ...)
// without touching this package.
func (r *Registry) Register(s Scheme) {
	r.schemes[s.Type] = s
}

// Lookup returns the scheme for typ, or decodeerr.UnknownSignatureType if
// it was never registered.
func (r *Registry) Lookup(typ uint16) (Scheme, error) {
	s, ok := r.schemes[typ]
	if !ok {
		return Scheme{}, decodeerr.New(decodeerr.UnknownSignatureType, 0, nil)
	}
	return s, nil
}

// VerifyWith runs typ's Verify algorithm, failing with
// decodeerr.VerifierUnavailable if the scheme has none registered (see
// SPEC_FULL.md's "Decisions on Open Questions").
func (r *Registry) VerifyWith(typ uint16, owner, message, signature []byte) (bool, error) {
	s, err := r.Lookup(typ)
	if err != nil {
		return false, err
	}
	if s.Verify == nil {
		return false, decodeerr.New(decodeerr.VerifierUnavailable, 0, nil)
	}
	return s.Verify(owner, message, signature)
}
