package utf8dec

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name:     "bounds",
			err:      outOfBounds(ReasonBelowZero, -1, 4),
			contains: []string{"index_out_of_bounds", "index below zero", "offset -1", "length 4"},
		},
		{
			name:     "missing byte",
			err:      &Error{Kind: KindUnicode, Reason: ReasonMissingByte, Offset: 3, Value: 3, Length: 3},
			contains: []string{"unicode", "requested byte is missing", "index 3"},
		},
		{
			name:     "surrogate",
			err:      invalid(ReasonSurrogate, 0, 0xD800, 3),
			contains: []string{"surrogate", "U+D800", "index 0"},
		},
		{
			name:     "paired byte",
			err:      &Error{Kind: KindUnicode, Reason: ReasonInvalidPaired, Offset: 1, Value: 0x28, Length: 2, Expected: contPattern},
			contains: []string{"invalid paired byte", "0x28", "index 1", "expected 10xxxxxx"},
		},
		{
			name:     "overlong",
			err:      invalid(ReasonOverlong, 2, 0x2F, 5),
			contains: []string{"overlong encoding", "U+002F", "index 2"},
		},
		{
			name:     "assembled above max",
			err:      invalid(ReasonBeyondMax, 0, 0x110000, 4),
			contains: []string{"beyond U+10FFFF", "U+110000", "index 0"},
		},
		{
			name:     "lead byte above max",
			err:      invalid(ReasonBeyondMax, 0, 0xF5, 1),
			contains: []string{"beyond U+10FFFF", "0xF5", "index 0"},
		},
		{
			name:     "invariant",
			err:      &Error{Kind: KindInvariant, Reason: ReasonNotByte, Offset: 0, Value: 0x100, Length: 1},
			contains: []string{"invariant", "not a byte", "0x100"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Is(t *testing.T) {
	err := invalid(ReasonSurrogate, 0, 0xD800, 3)

	if !errors.Is(err, ErrUnicode) {
		t.Error("expected match on ErrUnicode")
	}
	if errors.Is(err, ErrInvariant) || errors.Is(err, ErrIndexOutOfBounds) {
		t.Error("unexpected match on a different kind")
	}
	if !errors.Is(err, &Error{Kind: KindUnicode, Reason: ReasonSurrogate}) {
		t.Error("expected match on kind and reason")
	}
	if errors.Is(err, &Error{Kind: KindUnicode, Reason: ReasonUnknownByte}) {
		t.Error("unexpected match on a different reason")
	}

	wrapped := fmt.Errorf("scan input.txt: %w", err)
	if !errors.Is(wrapped, ErrUnicode) {
		t.Error("expected match through wrapping")
	}
	var de *Error
	if !errors.As(wrapped, &de) || de.Value != 0xD800 {
		t.Errorf("errors.As() = %v", de)
	}
}

func TestError_ValueIsCodePoint(t *testing.T) {
	tests := []struct {
		err  *Error
		want bool
	}{
		{invalid(ReasonSurrogate, 0, 0xD800, 3), true},
		{invalid(ReasonOverlong, 0, 0x2F, 3), true},
		{invalid(ReasonBeyondMax, 0, 0x110000, 4), true},
		{invalid(ReasonBeyondMax, 0, 0xF5, 1), false},
		{invalid(ReasonUnknownByte, 0, 0xFF, 1), false},
		{outOfBounds(ReasonAboveLength, 9, 1), false},
	}
	for _, tt := range tests {
		if got := tt.err.ValueIsCodePoint(); got != tt.want {
			t.Errorf("ValueIsCodePoint(%s) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
