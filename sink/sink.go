// Package sink implements the emission-sink contract spec §6 describes by
// contract only: "accept decoded DataItems in order; accept a terminal
// end-of-bundle or an error. A JSON serializer is the typical sink."
//
// Grounded on original_source/parse.rs and utils.rs, which open an output
// file and write a JSON array incrementally - `[`, each item, `,`, ... `]` -
// rather than building a []DataItem and calling json.Marshal once. That
// matters here because spec §5 forbids buffering a bundle's item bodies
// simultaneously; a sink that only flushes once every item has already been
// decoded would reintroduce exactly the buffering the decoder avoided.
package sink

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"github.com/liteseed/ans104/address"
	"github.com/liteseed/ans104/data_item"
	"github.com/liteseed/ans104/decodeerr"
	"github.com/liteseed/ans104/tag"
)

// jsonDataItem is the wire shape written per item: binary fields are
// base64url-encoded, matching the Arweave ecosystem's convention (see
// package address and the teacher's Base64URLEncode use throughout).
type jsonDataItem struct {
	ID            string    `json:"id"`
	SignatureType uint16    `json:"signatureType"`
	Signature     string    `json:"signature"`
	Owner         string    `json:"owner"`
	OwnerAddress  string    `json:"ownerAddress"`
	Target        *string   `json:"target,omitempty"`
	Anchor        *string   `json:"anchor,omitempty"`
	Tags          []tag.Tag `json:"tags"`
	Data          string    `json:"data"`
}

func toJSON(index int, item *data_item.DataItem) jsonDataItem {
	enc := base64.RawURLEncoding.EncodeToString
	j := jsonDataItem{
		ID:            enc(item.ID[:]),
		SignatureType: item.SignatureType,
		Signature:     enc(item.Signature),
		Owner:         enc(item.Owner),
		OwnerAddress:  address.FromOwner(item.Owner),
		Tags:          item.Tags,
		Data:          enc(item.Data),
	}
	if item.Target != nil {
		s := enc(item.Target)
		j.Target = &s
	}
	if item.Anchor != nil {
		s := enc(item.Anchor)
		j.Anchor = &s
	}
	return j
}

// JSON is a bundle.Sink that streams decoded items to w as a JSON array,
// one item at a time, never holding more than one item's encoded form in
// memory.
type JSON struct {
	w       io.Writer
	enc     *json.Encoder
	written bool
}

// NewJSON returns a JSON sink writing to w. Callers must still call Done
// (directly, or by letting bundle.Decode call it) to close the array.
func NewJSON(w io.Writer) *JSON {
	return &JSON{w: w, enc: json.NewEncoder(w)}
}

// Item appends one DataItem to the array, writing the opening bracket (and
// a separating comma before every item after the first) as it goes.
func (s *JSON) Item(index int, item *data_item.DataItem) error {
	if !s.written {
		if _, err := io.WriteString(s.w, "["); err != nil {
			return decodeerr.New(decodeerr.Sink, 0, err)
		}
		s.written = true
	} else if _, err := io.WriteString(s.w, ","); err != nil {
		return decodeerr.New(decodeerr.Sink, 0, err)
	}
	if err := s.enc.Encode(toJSON(index, item)); err != nil {
		return decodeerr.New(decodeerr.Sink, 0, fmt.Errorf("encoding item %d: %w", index, err))
	}
	return nil
}

// Done closes the JSON array. If err is non-nil, the array is closed
// without a trailing valid-bundle guarantee (the caller is expected to
// treat a non-nil Done error as "this bundle decode did not complete").
func (s *JSON) Done(err error) error {
	if !s.written {
		if _, werr := io.WriteString(s.w, "["); werr != nil {
			return decodeerr.New(decodeerr.Sink, 0, werr)
		}
	}
	if _, werr := io.WriteString(s.w, "]\n"); werr != nil {
		return decodeerr.New(decodeerr.Sink, 0, werr)
	}
	return err
}
