// Package utf8dec provides a strict, streaming UTF-8 decoder.
//
// A Decoder pulls one code point at a time from an indexable byte
// sequence. Every element is validated against the UTF-8 grammar and the
// first violation ends the session with a structured *Error. There is no
// replacement character and no resynchronisation.
//
// # Usage
//
//	d, err := utf8dec.DecodeBytes(buf, 0)
//	if err != nil {
//	    return err // start offset out of bounds
//	}
//	for r, err := range d.Runes() {
//	    if err != nil {
//	        return err
//	    }
//	    // use r
//	}
//
// # Errors
//
// Failures carry a Kind and a Reason and can be matched with errors.Is:
//
//	if errors.Is(err, utf8dec.ErrUnicode) { ... }
//	if errors.Is(err, &utf8dec.Error{Kind: utf8dec.KindUnicode, Reason: utf8dec.ReasonSurrogate}) { ... }
//
// Only shortest-form encodings of U+0000..U+10FFFF outside the surrogate
// range are accepted. Overlong forms fail with ReasonOverlong, values above
// U+10FFFF with ReasonBeyondMax; both report the lead byte's index.
//
// KindInvariant is only reachable through Sequence implementations such as
// Ints that can hold values outside [0, 255].
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package utf8dec
