// Package varint implements the zig-zag variable-length integer encoding
// used by the ANS-104 tag block (itself Apache Avro's "zig-zag" int/long
// encoding, see github.com/linkedin/goavro's array codec). It exists as a
// standalone, independently-testable component so the DataItem decoder can
// be built on top of it rather than an opaque third-party array codec.
package varint

import (
	"io"

	"github.com/liteseed/ans104/decodeerr"
)

// maxBytes bounds a varint to 10 base-128 groups, i.e. at most 70 encoded
// bits: the fewest groups that hold every 64-bit zig-zag value (-2^63
// encodes to exactly 10 bytes).
const maxBytes = 10

// ByteReader is the minimal reading capability Decode needs: one byte at a
// time, with an offset for error reporting.
type ByteReader interface {
	ReadByte() (byte, error)
}

// Encode returns the zig-zag base-128 little-endian encoding of v.
func Encode(v int64) []byte {
	u := zigzagEncode(v)
	var out []byte
	for {
		b := byte(u & 0x7f)
		u >>= 7
		if u != 0 {
			out = append(out, b|0x80)
			continue
		}
		out = append(out, b)
		break
	}
	return out
}

// Decode reads a single zig-zag varint from r, returning the decoded value
// and the number of bytes consumed. offset is only used to annotate errors.
func Decode(r ByteReader, offset int64) (int64, int, error) {
	var u uint64
	var shift uint
	for i := 0; i < maxBytes; i++ {
		b, err := r.ReadByte()
		if err != nil {
			if err == io.EOF {
				return 0, i, decodeerr.New(decodeerr.ShortRead, offset+int64(i), err)
			}
			return 0, i, decodeerr.New(decodeerr.Transport, offset+int64(i), err)
		}
		if b&0x80 == 0 {
			u |= uint64(b) << shift
			return zigzagDecode(u), i + 1, nil
		}
		if shift > 63 {
			return 0, i + 1, decodeerr.New(decodeerr.VarintOverflow, offset+int64(i), nil)
		}
		u |= uint64(b&0x7f) << shift
		shift += 7
	}
	return 0, maxBytes, decodeerr.New(decodeerr.VarintOverflow, offset+maxBytes, nil)
}

func zigzagEncode(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63))
}

func zigzagDecode(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}
