package utf8dec

import (
	"fmt"
	"strings"
)

// Kind categorizes a decoding failure.
type Kind string

const (
	// KindIndexOutOfBounds means the start offset was outside [0, Len()].
	KindIndexOutOfBounds Kind = "index_out_of_bounds"

	// KindUnicode means the input is not valid UTF-8.
	KindUnicode Kind = "unicode"

	// KindInvariant means the sequence held a value that is not a byte.
	// This is a caller bug, not malformed UTF-8.
	KindInvariant Kind = "invariant"
)

// Reason narrows a Kind to the rule that was violated.
type Reason string

const (
	ReasonBelowZero     Reason = "index below zero"
	ReasonAboveLength   Reason = "index above sequence length"
	ReasonMissingByte   Reason = "requested byte is missing"
	ReasonNotByte       Reason = "value is not a byte"
	ReasonOverlongLead  Reason = "invalid UTF-8 byte: disallowed overlong-encoding lead byte"
	ReasonBeyondMax     Reason = "invalid UTF-8 byte: would encode a code point beyond U+10FFFF"
	ReasonUnknownByte   Reason = "unknown byte"
	ReasonInvalidPaired Reason = "invalid paired byte"
	ReasonSurrogate     Reason = "reserved UTF-16 surrogate half"
	ReasonOverlong      Reason = "invalid UTF-8 sequence: overlong encoding"
)

// Error is the structured failure returned by Decode and Decoder.Next.
type Error struct {
	Kind   Kind
	Reason Reason

	// Offset is the index of the offending element, or the requested
	// start offset for KindIndexOutOfBounds.
	Offset int

	// Value is the offending element value. For KindIndexOutOfBounds it
	// equals Offset. When ValueIsCodePoint reports true it is the value
	// assembled from a whole sequence and Offset is its lead byte.
	Value int

	// Length is the length of the sequence being decoded.
	Length int

	// Expected is the bit pattern the element failed to match, if any.
	Expected string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString("utf8dec: ")
	b.WriteString(string(e.Kind))
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(string(e.Reason))
	}

	switch {
	case e.Kind == KindIndexOutOfBounds:
		fmt.Fprintf(&b, " (offset %d, length %d)", e.Offset, e.Length)
	case e.Reason == ReasonMissingByte:
		fmt.Fprintf(&b, " at index %d (length %d)", e.Offset, e.Length)
	case e.ValueIsCodePoint():
		fmt.Fprintf(&b, " U+%04X at index %d", e.Value, e.Offset)
	default:
		fmt.Fprintf(&b, " 0x%02X at index %d", e.Value, e.Offset)
	}

	if e.Expected != "" {
		b.WriteString(", expected ")
		b.WriteString(e.Expected)
	}
	return b.String()
}

// ValueIsCodePoint reports whether Value was assembled from a complete
// sequence (surrogate, overlong or out of range) rather than read as a
// single byte.
func (e *Error) ValueIsCodePoint() bool {
	switch e.Reason {
	case ReasonSurrogate, ReasonOverlong:
		return true
	case ReasonBeyondMax:
		return e.Value > 0xFF
	}
	return false
}

// Is reports whether target matches this error. A target matches when its
// Kind is equal and its Reason is either empty or equal.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Reason == "" || t.Reason == e.Reason
}

// Kind-only matchers for errors.Is.
var (
	ErrIndexOutOfBounds = &Error{Kind: KindIndexOutOfBounds}
	ErrUnicode          = &Error{Kind: KindUnicode}
	ErrInvariant        = &Error{Kind: KindInvariant}
)

func outOfBounds(reason Reason, offset, length int) *Error {
	return &Error{
		Kind:   KindIndexOutOfBounds,
		Reason: reason,
		Offset: offset,
		Value:  offset,
		Length: length,
	}
}

func invalid(reason Reason, offset, value, length int) *Error {
	return &Error{
		Kind:   KindUnicode,
		Reason: reason,
		Offset: offset,
		Value:  value,
		Length: length,
	}
}
