// Package decodeerr defines the error taxonomy shared by the bundle and
// DataItem decoders.
//
// Every failure the decoder produces is represented by a single *Error
// carrying a Kind, the wire offset at which it was detected and, when the
// failure happened while decoding a particular bundle item, that item's
// index. Callers distinguish failure kinds with errors.Is against the
// package's sentinel Kind values and can still unwrap to the underlying
// cause with errors.Unwrap/errors.As.
package decodeerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind identifies a class of decode failure. Kinds are comparable with
// errors.Is: Kind itself implements error, and *Error.Is matches against it.
type Kind string

const (
	ShortRead              Kind = "short_read"
	VarintOverflow         Kind = "varint_overflow"
	Overflow               Kind = "overflow"
	UnknownSignatureType   Kind = "unknown_signature_type"
	InvalidPresence        Kind = "invalid_presence"
	InvalidLength          Kind = "invalid_length"
	InvalidTag             Kind = "invalid_tag"
	TagCountMismatch       Kind = "tag_count_mismatch"
	TagBlockLengthMismatch Kind = "tag_block_length_mismatch"
	IDMismatch             Kind = "id_mismatch"
	BadSignature           Kind = "bad_signature"
	TooManyItems           Kind = "too_many_items"
	Transport              Kind = "transport"
	Sink                   Kind = "sink"

	// VerifierUnavailable extends the spec's taxonomy: it is returned when
	// verification is requested for a registered signature scheme that has
	// no Verify implementation (see signature.Scheme). Decided in DESIGN.md
	// rather than overloading UnknownSignatureType, whose meaning is "not
	// registered at all".
	VerifierUnavailable Kind = "verifier_unavailable"
)

func (k Kind) Error() string { return string(k) }

// Error is the concrete error type returned by the decoder packages.
type Error struct {
	Kind      Kind
	Offset    int64
	ItemIndex *int
	cause     error
}

func (e *Error) Error() string {
	if e.ItemIndex != nil {
		return fmt.Sprintf("%s: item %d at offset %d: %v", e.Kind, *e.ItemIndex, e.Offset, e.cause)
	}
	return fmt.Sprintf("%s: at offset %d: %v", e.Kind, e.Offset, e.cause)
}

func (e *Error) Unwrap() error { return e.cause }

// Is reports whether target is the same Kind, so callers can write
// errors.Is(err, decodeerr.ShortRead).
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && e.Kind == k
}

// New builds an *Error for kind at the given wire offset, wrapping cause
// with a stack trace via github.com/pkg/errors so the originating call site
// survives even after the error crosses several package boundaries.
func New(kind Kind, offset int64, cause error) *Error {
	if cause == nil {
		cause = kind
	}
	return &Error{Kind: kind, Offset: offset, cause: errors.WithStack(cause)}
}

// AtOffset returns a copy of err with its Offset overwritten, for errors
// that were constructed before the caller knew the surrounding wire
// position (e.g. a signature.Registry lookup, which has no reader of its
// own). Errors that are not *Error are returned unchanged.
func AtOffset(err error, offset int64) error {
	if e, ok := err.(*Error); ok {
		cp := *e
		cp.Offset = offset
		return &cp
	}
	return err
}

// WithItem returns a copy of e annotated with the index of the bundle item
// being decoded when the failure occurred.
func WithItem(err error, index int) error {
	if e, ok := err.(*Error); ok {
		cp := *e
		i := index
		cp.ItemIndex = &i
		return &cp
	}
	return errors.WithMessagef(err, "item %d", index)
}
