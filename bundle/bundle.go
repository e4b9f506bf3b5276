package bundle

import (
	"context"
	"io"

	"github.com/liteseed/ans104/data_item"
	"github.com/liteseed/ans104/decodeerr"
	"github.com/liteseed/ans104/reader"
	"github.com/liteseed/ans104/signature"
)

// Decode streams a full ANS-104 bundle from r (spec §4.5): it reads the
// item_count and offset-table header, then for each declared item reads
// exactly its declared size, decodes it with package data_item, checks its
// id against the offset table, optionally verifies its signature, and
// emits it to sink - strictly in bundle order, one item's encoded bytes and
// one decoded DataItem resident at a time (spec §5 "Memory").
//
// Decode never buffers the concatenated bodies of all items at once. A
// declared item_count above opts.MaxItems (default DefaultMaxItems) fails
// immediately with decodeerr.TooManyItems, before any item body is read.
func Decode(ctx context.Context, r io.Reader, registry *signature.Registry, sink Sink, opts Options) error {
	rd := reader.New(r)

	itemCount, err := rd.ReadU256LEAsU64(ctx)
	if err != nil {
		return finish(sink, err)
	}
	if itemCount > opts.maxItems() {
		err := decodeerr.New(decodeerr.TooManyItems, rd.Offset(), nil)
		return finish(sink, err)
	}
	if ps, ok := sink.(*ProgressSink); ok {
		ps.Progress.Total = itemCount
	}

	offsets := make([]offsetEntry, itemCount)
	for i := uint64(0); i < itemCount; i++ {
		size, err := rd.ReadU256LEAsU64(ctx)
		if err != nil {
			return finish(sink, decodeerr.WithItem(err, int(i)))
		}
		idBytes, err := rd.ReadExact(ctx, 32)
		if err != nil {
			return finish(sink, decodeerr.WithItem(err, int(i)))
		}
		var id [32]byte
		copy(id[:], idBytes)
		offsets[i] = offsetEntry{size: size, id: id}
	}

	for i, entry := range offsets {
		raw, err := rd.ReadExact(ctx, int(entry.size))
		if err != nil {
			return finish(sink, decodeerr.WithItem(err, i))
		}

		item, err := data_item.Decode(ctx, raw, registry)
		if err != nil {
			return finish(sink, decodeerr.WithItem(err, i))
		}
		if item.ID != entry.id {
			err := decodeerr.New(decodeerr.IDMismatch, rd.Offset(), nil)
			return finish(sink, decodeerr.WithItem(err, i))
		}
		if opts.Verify {
			if err := item.Verify(registry); err != nil {
				return finish(sink, decodeerr.WithItem(err, i))
			}
		}
		if err := sink.Item(i, item); err != nil {
			sinkErr := decodeerr.WithItem(decodeerr.New(decodeerr.Sink, rd.Offset(), err), i)
			return finish(sink, sinkErr)
		}
	}

	return sink.Done(nil)
}

func finish(sink Sink, err error) error {
	sink.Done(err)
	return err
}
