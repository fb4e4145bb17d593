package domain

import (
	"errors"
	"time"

	"github.com/bft-labs/runeguard/pkg/utf8dec"
)

// ScanResult is the verdict for one byte source.
type ScanResult struct {
	// Source is the name of the source (path, URL or "-").
	Source string `json:"source" yaml:"source"`

	// Bytes is the number of bytes loaded from the source.
	Bytes int `json:"bytes" yaml:"bytes"`

	// Start is the offset decoding started from.
	Start int `json:"start" yaml:"start"`

	// CodePoints is the number of code points decoded before the end of
	// input or the first failure.
	CodePoints int `json:"code_points" yaml:"code_points"`

	// Valid is true when every byte from Start onwards decoded cleanly.
	Valid bool `json:"valid" yaml:"valid"`

	// Failure describes the first decoding violation, if any.
	Failure *DecodeFailure `json:"failure,omitempty" yaml:"failure,omitempty"`

	// LoadError is set when the source could not be read at all.
	LoadError string `json:"load_error,omitempty" yaml:"load_error,omitempty"`

	// Elapsed is how long load plus decode took.
	Elapsed time.Duration `json:"elapsed_ns" yaml:"elapsed"`
}

// DecodeFailure is the serializable form of a *utf8dec.Error.
type DecodeFailure struct {
	Kind     string `json:"kind" yaml:"kind"`
	Reason   string `json:"reason" yaml:"reason"`
	Offset   int    `json:"offset" yaml:"offset"`
	Value    int    `json:"value" yaml:"value"`
	Expected string `json:"expected,omitempty" yaml:"expected,omitempty"`
	Message  string `json:"message" yaml:"message"`

	// CodePoint is true when Value is an assembled code point rather than
	// a single byte.
	CodePoint bool `json:"code_point,omitempty" yaml:"code_point,omitempty"`
}

// NewDecodeFailure converts a decoder error. Errors that are not a
// *utf8dec.Error keep only their message.
func NewDecodeFailure(err error) *DecodeFailure {
	if err == nil {
		return nil
	}
	var de *utf8dec.Error
	if !errors.As(err, &de) {
		return &DecodeFailure{Message: err.Error()}
	}
	return &DecodeFailure{
		Kind:      string(de.Kind),
		Reason:    string(de.Reason),
		Offset:    de.Offset,
		Value:     de.Value,
		Expected:  de.Expected,
		Message:   de.Error(),
		CodePoint: de.ValueIsCodePoint(),
	}
}

// Failed reports whether the source could not be loaded or did not decode.
func (r ScanResult) Failed() bool {
	return r.LoadError != "" || !r.Valid
}

// AnyFailed reports whether any result failed.
func AnyFailed(results []ScanResult) bool {
	for _, r := range results {
		if r.Failed() {
			return true
		}
	}
	return false
}
