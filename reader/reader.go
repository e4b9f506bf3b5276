// Package reader implements the byte-reader component (C1): exact-length,
// bounded reads from any byte source, with every context-taking read
// observing ctx.Context cancellation (ReadByte, used for varints, does not
// check a context) so a bundle decode driven by a network stream
// can be aborted promptly instead of blocking a shared goroutine pool.
//
// Grounded on original_source/utils.rs and implementation.rs's
// read_exact_bytes/read_u64_le helpers (tokio AsyncReadExt), translated to
// Go's synchronous io.Reader plus an explicit context check at each
// suspension point, since Go has no implicit async/await.
package reader

import (
	"bufio"
	"context"
	"io"

	"github.com/liteseed/ans104/decodeerr"
)

// Reader is a one-directional cursor over a byte source. It is not
// seekable: every read advances Offset() and bytes already read are never
// revisited.
type Reader struct {
	r      *bufio.Reader
	offset int64
}

// New wraps r for bounded, exact-length reads.
func New(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReaderSize(r, 32*1024)}
}

// Offset returns the number of bytes consumed so far.
func (rd *Reader) Offset() int64 { return rd.offset }

// RemainingHint reports the number of bytes buffered and immediately
// available, if any. It is advisory only: decoders must never rely on it
// for correctness, only for sizing a scratch buffer.
func (rd *Reader) RemainingHint() (int, bool) {
	n := rd.r.Buffered()
	if n == 0 {
		return 0, false
	}
	return n, true
}

// ReadExact reads exactly n bytes or fails with decodeerr.ShortRead (if the
// source ended early) or decodeerr.Transport (any other I/O failure).
func (rd *Reader) ReadExact(ctx context.Context, n int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, decodeerr.New(decodeerr.Transport, rd.offset, err)
	}
	buf := make([]byte, n)
	read, err := io.ReadFull(rd.r, buf)
	rd.offset += int64(read)
	if err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			return nil, decodeerr.New(decodeerr.ShortRead, rd.offset, err)
		}
		return nil, decodeerr.New(decodeerr.Transport, rd.offset, err)
	}
	return buf, nil
}

// ReadByte implements varint.ByteReader, reading a single byte and
// advancing the offset.
func (rd *Reader) ReadByte() (byte, error) {
	b, err := rd.r.ReadByte()
	if err != nil {
		return 0, err
	}
	rd.offset++
	return b, nil
}

// ReadU8 reads a single unsigned byte.
func (rd *Reader) ReadU8(ctx context.Context) (byte, error) {
	b, err := rd.ReadExact(ctx, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadU16LE reads a little-endian unsigned 16-bit integer.
func (rd *Reader) ReadU16LE(ctx context.Context) (uint16, error) {
	b, err := rd.ReadExact(ctx, 2)
	if err != nil {
		return 0, err
	}
	return uint16(b[0]) | uint16(b[1])<<8, nil
}

// ReadU64LE reads a little-endian unsigned 64-bit integer.
func (rd *Reader) ReadU64LE(ctx context.Context) (uint64, error) {
	b, err := rd.ReadExact(ctx, 8)
	if err != nil {
		return 0, err
	}
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v, nil
}

// ReadU256LEAsU64 reads a 32-byte little-endian field and returns it as a
// uint64, failing with decodeerr.Overflow if any of bytes 8..32 are
// non-zero (the format reserves 256 bits for counts/sizes that in practice
// never exceed 64 bits; this is the "upper 24 bytes must be zero" check
// from spec §9).
func (rd *Reader) ReadU256LEAsU64(ctx context.Context) (uint64, error) {
	start := rd.offset
	b, err := rd.ReadExact(ctx, 32)
	if err != nil {
		return 0, err
	}
	for i := 8; i < 32; i++ {
		if b[i] != 0 {
			return 0, decodeerr.New(decodeerr.Overflow, start, nil)
		}
	}
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v, nil
}
