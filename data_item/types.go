// Package data_item implements the DataItem decoder (C4): parsing one
// ANS-104 item's fields and tag block, and enforcing the structural
// invariants spec §4.4 and §9 attach to them.
//
// Grounded on the teacher's transaction/data_item/data_item.go and types.go,
// which decode the same wire shape (signature_type, signature, owner,
// target/anchor presence bytes, tag block, data) but trust a hand-indexed
// byte slice with no bounds checking and store every field as a base64
// string instead of raw bytes. This version reads through reader.Reader
// (C1) field by field so a truncated or malformed item fails with a
// precise decodeerr.Kind and offset rather than a slice-bounds panic.
package data_item

import "github.com/liteseed/ans104/tag"

// DataItem is one fully decoded, structurally valid ANS-104 item.
//
// Target and Anchor are nil when absent, distinguishing "absent" from
// "present and empty" even though both serialize to an empty deep-hash
// chunk (see deephash.DataItemMessage).
type DataItem struct {
	ID            [32]byte
	SignatureType uint16
	Signature     []byte
	Owner         []byte
	Target        []byte
	Anchor        []byte
	Tags          []tag.Tag
	Data          []byte
}

// TagPairs flattens Tags into the [name0, value0, name1, value1, ...] byte
// sequence the deep-hash message (spec §4.6) requires.
func (d *DataItem) TagPairs() [][]byte {
	pairs := make([][]byte, 0, len(d.Tags)*2)
	for _, t := range d.Tags {
		pairs = append(pairs, []byte(t.Name), []byte(t.Value))
	}
	return pairs
}
