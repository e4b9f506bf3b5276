package data_item

import (
	"bytes"
	"context"
	"crypto/sha256"

	"github.com/liteseed/ans104/decodeerr"
	"github.com/liteseed/ans104/deephash"
	"github.com/liteseed/ans104/reader"
	"github.com/liteseed/ans104/signature"
	"github.com/liteseed/ans104/tag"
)

// Decode parses raw - exactly one item's encoded bytes, as sized by the
// enclosing bundle's offset table - into a DataItem, per spec §4.4.
//
// Decode does not compare the resulting ID against a bundle offset-table
// entry; that cross-item check (decodeerr.IDMismatch) belongs to the bundle
// decoder, which is the only component that knows the declared id.
func Decode(ctx context.Context, raw []byte, registry *signature.Registry) (*DataItem, error) {
	rd := reader.New(bytes.NewReader(raw))

	sigType, err := rd.ReadU16LE(ctx)
	if err != nil {
		return nil, err
	}
	scheme, err := registry.Lookup(sigType)
	if err != nil {
		return nil, decodeerr.AtOffset(err, rd.Offset())
	}

	sig, err := rd.ReadExact(ctx, scheme.SignatureLength)
	if err != nil {
		return nil, err
	}
	owner, err := rd.ReadExact(ctx, scheme.OwnerLength)
	if err != nil {
		return nil, err
	}

	target, err := readPresence(ctx, rd)
	if err != nil {
		return nil, err
	}
	anchor, err := readPresence(ctx, rd)
	if err != nil {
		return nil, err
	}

	numTags, err := rd.ReadU64LE(ctx)
	if err != nil {
		return nil, err
	}
	numTagBytes, err := rd.ReadU64LE(ctx)
	if err != nil {
		return nil, err
	}
	if numTagBytes > uint64(len(raw)) {
		return nil, decodeerr.New(decodeerr.TagBlockLengthMismatch, rd.Offset(), nil)
	}

	tagBlockStart := rd.Offset()
	tagBuf, err := rd.ReadExact(ctx, int(numTagBytes))
	if err != nil {
		return nil, err
	}
	tags, err := tag.DecodeBlock(tagBuf)
	if err != nil {
		return nil, shiftOffset(err, tagBlockStart)
	}
	if uint64(len(tags)) != numTags || len(tags) > tag.MaxTags {
		return nil, decodeerr.New(decodeerr.TagCountMismatch, rd.Offset(), nil)
	}

	data := raw[rd.Offset():]
	id := sha256.Sum256(sig)

	return &DataItem{
		ID:            id,
		SignatureType: sigType,
		Signature:     sig,
		Owner:         owner,
		Target:        target,
		Anchor:        anchor,
		Tags:          tags,
		Data:          data,
	}, nil
}

// Verify computes the DataItem's deep hash (C6, spec §4.6) and checks it
// against Signature using the scheme registered for SignatureType. It
// fails with decodeerr.VerifierUnavailable if that scheme has no Verify
// algorithm, or decodeerr.BadSignature if verification runs but fails.
func (d *DataItem) Verify(registry *signature.Registry) error {
	msg := deephash.Compute(deephash.DataItemMessage(d.Owner, d.Target, d.Anchor, d.TagPairs(), d.Data))
	ok, err := registry.VerifyWith(d.SignatureType, d.Owner, msg[:], d.Signature)
	if err != nil {
		return err
	}
	if !ok {
		return decodeerr.New(decodeerr.BadSignature, 0, nil)
	}
	return nil
}

func readPresence(ctx context.Context, rd *reader.Reader) ([]byte, error) {
	b, err := rd.ReadU8(ctx)
	if err != nil {
		return nil, err
	}
	switch b {
	case 0:
		return nil, nil
	case 1:
		return rd.ReadExact(ctx, 32)
	default:
		return nil, decodeerr.New(decodeerr.InvalidPresence, rd.Offset()-1, nil)
	}
}

// shiftOffset rebases a *decodeerr.Error produced against a tag-block-local
// buffer (offsets starting at 0) onto the enclosing item's wire offsets.
func shiftOffset(err error, base int64) error {
	de, ok := err.(*decodeerr.Error)
	if !ok {
		return err
	}
	return decodeerr.New(de.Kind, base+de.Offset, de.Unwrap())
}
