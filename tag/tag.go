// Package tag holds the Tag value type and the ANS-104 tag-block decoder
// described in spec §4.4.1: a sequence of Avro-array-style blocks
// (zig-zag varint counts, an optional advisory block-size for negative
// counts, a zero-count terminator), each holding varint-length-prefixed
// name/value byte pairs.
//
// The teacher (tag/tag.go) decodes this same wire shape by handing the
// whole buffer to github.com/linkedin/goavro/v2 as an opaque Avro array
// codec. That hides the block-by-block structure spec §4.4.1 wants
// decoded explicitly (so each name/value length can be validated and a
// precise error kind reported), so this version is hand-rolled directly
// against the varint package instead. goavro is kept as an independent
// encode/decode oracle in tagblock_avro_test.go, since the wire format is,
// byte for byte, Avro's array encoding.
package tag

import (
	"bytes"
	"io"

	"github.com/liteseed/ans104/decodeerr"
	"github.com/liteseed/ans104/varint"
)

const (
	// MaxTags is the maximum number of tags a single DataItem may carry
	// (spec §3, §9 sanity cap).
	MaxTags = 128
	// MaxNameLength is the maximum length, in bytes, of a tag name.
	MaxNameLength = 1024
	// MaxValueLength is the maximum length, in bytes, of a tag value.
	MaxValueLength = 3072
)

// DecodeBlock parses buf - exactly num_tag_bytes bytes taken from the
// DataItem's wire slice - as a tag block and returns the tags in order.
// It enforces per-tag length invariants (InvalidTag) and negative-length
// rejection (InvalidLength), but it does not check the total tag count
// against a DataItem's declared num_tags: that cross-field invariant is
// the caller's (package data_item's) responsibility, since this package has
// no notion of the enclosing DataItem.
//
// Any read that runs past the end of buf - whether a truncated varint, a
// truncated name/value, or trailing bytes left after the terminator - is
// reported as decodeerr.TagBlockLengthMismatch, since buf's length is
// exactly the declared num_tag_bytes and any mismatch there means the
// block over- or under-consumed it.
func DecodeBlock(buf []byte) ([]Tag, error) {
	r := bytes.NewReader(buf)
	var offset int64
	var tags []Tag

	for {
		count, n, err := varint.Decode(r, offset)
		offset += int64(n)
		if err != nil {
			return nil, remapShortRead(err)
		}
		if count == 0 {
			break
		}

		blockLen := count
		if count < 0 {
			// Advisory block_size: writers emit it, readers may ignore its
			// value but must still consume it (spec §4.4.1, §9).
			_, n2, err := varint.Decode(r, offset)
			offset += int64(n2)
			if err != nil {
				return nil, remapShortRead(err)
			}
			blockLen = -count
		}

		for i := int64(0); i < blockLen; i++ {
			name, no, err := readLengthPrefixed(r, offset, MaxNameLength)
			offset = no
			if err != nil {
				return nil, err
			}
			value, vo, err := readLengthPrefixed(r, offset, MaxValueLength)
			offset = vo
			if err != nil {
				return nil, err
			}
			tags = append(tags, Tag{Name: string(name), Value: string(value)})
		}
	}

	if r.Len() != 0 {
		return nil, decodeerr.New(decodeerr.TagBlockLengthMismatch, offset, nil)
	}
	return tags, nil
}

func readLengthPrefixed(r *bytes.Reader, offset int64, max int) ([]byte, int64, error) {
	length, n, err := varint.Decode(r, offset)
	offset += int64(n)
	if err != nil {
		return nil, offset, remapShortRead(err)
	}
	if length < 0 {
		return nil, offset, decodeerr.New(decodeerr.InvalidLength, offset, nil)
	}
	if length < 1 || length > int64(max) {
		return nil, offset, decodeerr.New(decodeerr.InvalidTag, offset, nil)
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, offset, decodeerr.New(decodeerr.TagBlockLengthMismatch, offset, err)
	}
	return buf, offset + length, nil
}

// remapShortRead turns the generic "ran out of bytes" failure a varint
// read reports into the tag-block-specific TagBlockLengthMismatch, since
// within a fixed-size tag-block buffer that condition only ever means the
// block over-consumed its declared length.
func remapShortRead(err error) error {
	e, ok := err.(*decodeerr.Error)
	if ok && e.Kind == decodeerr.ShortRead {
		return decodeerr.New(decodeerr.TagBlockLengthMismatch, e.Offset, e.Unwrap())
	}
	return err
}
