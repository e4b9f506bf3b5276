// Package bundle implements the bundle decoder (C5): reading the
// item-count and offset-table header, then handing each item's declared
// byte range to package data_item, matching decoded ids against the
// offset table, and emitting items to a Sink in bundle order.
//
// Grounded on the teacher's transaction/bundle/{types,utils}.go, which
// carries the same three-part wire shape (item_count, offset table,
// concatenated bodies) but decodes item_count as a LittleEndian.Uint32 and
// each offset-table size/id pair as 16-bit fields - both wrong for the
// 256-bit LE fields spec §4.5/§6 define - and builds the whole bundle in
// memory rather than streaming it to a sink.
package bundle

import "github.com/liteseed/ans104/data_item"

// Options configures a Decode call's item-count cap and signature
// verification (spec §9's "implementer may choose the exact cap", made
// explicit configuration here, per SPEC_FULL.md §2.3). The per-item tag
// cap is not an option: it is the tag.MaxTags constant.
type Options struct {
	// MaxItems is the sanity cap on a bundle's declared item_count. Zero
	// selects the spec-suggested default of 10,000.
	MaxItems uint64
	// Verify, when true, invokes the deep-hash verifier (C6) on every item
	// after its id is checked against the offset table, failing the whole
	// decode on the first BadSignature/VerifierUnavailable.
	Verify bool
}

// DefaultMaxItems is the spec §4.5 suggested sanity cap on item_count.
const DefaultMaxItems = 10000

func (o Options) maxItems() uint64 {
	if o.MaxItems == 0 {
		return DefaultMaxItems
	}
	return o.MaxItems
}

// offsetEntry is one (size, id) pair read from the bundle's offset table.
type offsetEntry struct {
	size uint64
	id   [32]byte
}

// Sink receives decoded items in bundle order (spec §6 "Emission sink
// contract"). Item is called once per successfully decoded, id-matched
// DataItem; Done is called exactly once, with a non-nil err if the decode
// aborted partway through, after which no further Item calls occur.
type Sink interface {
	Item(index int, item *data_item.DataItem) error
	Done(err error) error
}
