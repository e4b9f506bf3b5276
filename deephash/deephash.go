// Package deephash implements the message side of the deep-hash verifier
// (C6): the recursive SHA-384 canonicalization spec §4.6 defines. Signature
// verification on top of it is done by data_item's (*DataItem).Verify via a
// signature.Registry; this package only computes digests.
//
// Grounded on the teacher's crypto/deep_hash.go (DeepHash/DeepHashStream),
// which already implements the same SHA-384 list/blob accumulator -
// generalized here as Compute/HashStream - but assembles a DataItem's
// chunks incorrectly (it hashes the whole Avro-encoded tag block as a
// single blob instead of the flattened [name0, value0, name1, value1, ...]
// list spec §4.6 requires, and prepends an extra redundant "1" chunk for
// the signature type). DataItemMessage follows spec.md's corrected construction
// instead; see SPEC_FULL.md §0 and §6.
package deephash

import (
	"crypto/sha512"
	"fmt"
	"io"
)

// Hash is a deep hash digest: always exactly 48 bytes (SHA-384).
type Hash [48]byte

// chunk is either a Blob ([]byte) or a List ([]chunk).
type chunk interface{ isChunk() }

// Blob is a deep-hash leaf: a plain byte string.
type Blob []byte

func (Blob) isChunk() {}

// List is a deep-hash interior node: an ordered sequence of further chunks.
type List []chunk

func (List) isChunk() {}

// Compute returns the deep hash of c.
func Compute(c chunk) Hash {
	switch v := c.(type) {
	case Blob:
		return hashBlob(v)
	case List:
		return hashList(v)
	default:
		panic("deephash: chunk must be Blob or List")
	}
}

func hashBlob(b []byte) Hash {
	tag := append([]byte("blob"), []byte(fmt.Sprint(len(b)))...)
	tagHash := sha512.Sum384(tag)
	dataHash := sha512.Sum384(b)
	return combine(tagHash, dataHash)
}

func hashList(items List) Hash {
	tag := append([]byte("list"), []byte(fmt.Sprint(len(items)))...)
	acc := sha512.Sum384(tag)
	for _, item := range items {
		h := Compute(item)
		acc = combine(acc, [48]byte(h))
	}
	return Hash(acc)
}

func combine(a, b [48]byte) [48]byte {
	pair := make([]byte, 0, 96)
	pair = append(pair, a[:]...)
	pair = append(pair, b[:]...)
	return sha512.Sum384(pair)
}

// HashStream computes the deep hash of a blob chunk too large to hold in
// memory, reading exactly size bytes from r. It produces the identical
// result Compute(Blob(b)) would for the equivalent in-memory b.
func HashStream(r io.Reader, size int64) (Hash, error) {
	tag := append([]byte("blob"), []byte(fmt.Sprint(size))...)
	tagHash := sha512.Sum384(tag)
	h := sha512.New384()
	if _, err := io.CopyN(h, r, size); err != nil {
		return Hash{}, err
	}
	var dataHash [48]byte
	copy(dataHash[:], h.Sum(nil))
	return Hash(combine(tagHash, dataHash)), nil
}

// DataItemMessage builds the canonical deep-hash input for a DataItem per
// spec §4.6:
//
//	[ "dataitem", "1", owner, target-or-empty, anchor-or-empty,
//	  [tag0.name, tag0.value, tag1.name, tag1.value, ...], data ]
//
// target and anchor are nil (not zero-length-but-present) when absent;
// tagPairs must already be the flattened name/value byte sequence.
func DataItemMessage(owner, target, anchor []byte, tagPairs [][]byte, data []byte) List {
	tags := make(List, 0, len(tagPairs))
	for _, p := range tagPairs {
		tags = append(tags, Blob(p))
	}
	return List{
		Blob("dataitem"),
		Blob("1"),
		Blob(owner),
		Blob(emptyIfNil(target)),
		Blob(emptyIfNil(anchor)),
		tags,
		Blob(data),
	}
}

func emptyIfNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}
