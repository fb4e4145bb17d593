package utf8dec

import (
	"io"
	"iter"
)

// Sequence is an indexable, read-only run of values expected to be bytes.
// The decoder never mutates it and assumes it does not change while a
// Decoder is reading it.
type Sequence interface {
	Len() int
	At(i int) int
}

// Bytes adapts a byte slice to Sequence.
type Bytes []byte

func (b Bytes) Len() int     { return len(b) }
func (b Bytes) At(i int) int { return int(b[i]) }

// Ints adapts an int slice to Sequence. Elements outside [0, 255] make the
// decoder fail with KindInvariant.
type Ints []int

func (s Ints) Len() int     { return len(s) }
func (s Ints) At(i int) int { return s[i] }

const (
	surrogateMin = 0xD800
	surrogateMax = 0xDFFF
	maxCodePoint = 0x10FFFF

	contMask    = 1<<6 - 1 // payload of 10xxxxxx
	contPattern = "10xxxxxx"
)

// Decoder is a single forward-only decoding session over a Sequence.
// It is not safe for concurrent use; independent Decoders over the same
// immutable Sequence are.
type Decoder struct {
	seq    Sequence
	length int
	off    int
	err    error
}

// Decode starts a session over seq at byte offset start. It fails with
// KindIndexOutOfBounds when start is negative or greater than seq.Len().
// Nothing is read until Next is called.
func Decode(seq Sequence, start int) (*Decoder, error) {
	n := seq.Len()
	if start < 0 {
		return nil, outOfBounds(ReasonBelowZero, start, n)
	}
	if start > n {
		return nil, outOfBounds(ReasonAboveLength, start, n)
	}
	return &Decoder{seq: seq, length: n, off: start}, nil
}

// DecodeBytes is Decode over a byte slice.
func DecodeBytes(b []byte, start int) (*Decoder, error) {
	return Decode(Bytes(b), start)
}

// Offset returns the index of the next element to be read.
func (d *Decoder) Offset() int {
	return d.off
}

// Next returns the next code point. It returns io.EOF once the sequence is
// exhausted. The first other error ends the session; every later call
// returns that same error.
func (d *Decoder) Next() (rune, error) {
	if d.err != nil {
		return 0, d.err
	}
	if d.off == d.length {
		return 0, io.EOF
	}
	r, err := d.step()
	if err != nil {
		d.err = err
		return 0, err
	}
	return r, nil
}

// Runes returns a range-over-func view of the remaining code points.
// On failure it yields (0, err) once and stops.
func (d *Decoder) Runes() iter.Seq2[rune, error] {
	return func(yield func(rune, error) bool) {
		for {
			r, err := d.Next()
			if err == io.EOF {
				return
			}
			if !yield(r, err) || err != nil {
				return
			}
		}
	}
}

func (d *Decoder) step() (rune, error) {
	start := d.off
	lead, err := d.readByte()
	if err != nil {
		return 0, err
	}

	var cp, need, least int
	switch {
	case lead&0x80 == 0x00:
		return rune(lead), nil
	case lead&0xE0 == 0xC0:
		cp, need, least = lead&(1<<5-1), 1, 0x80
	case lead&0xF0 == 0xE0:
		cp, need, least = lead&(1<<4-1), 2, 0x800
	case lead&0xF8 == 0xF0:
		cp, need, least = lead&(1<<3-1), 3, 0x10000
	default:
		return 0, invalid(ReasonUnknownByte, start, lead, d.length)
	}

	for ; need > 0; need-- {
		at := d.off
		b, err := d.readByte()
		if err != nil {
			return 0, err
		}
		if b&0xC0 != 0x80 {
			e := invalid(ReasonInvalidPaired, at, b, d.length)
			e.Expected = contPattern
			return 0, e
		}
		cp = cp<<6 | b&contMask
	}

	// Assembled-value checks report the lead byte index and the value.
	switch {
	case cp < least:
		return 0, invalid(ReasonOverlong, start, cp, d.length)
	case cp >= surrogateMin && cp <= surrogateMax:
		return 0, invalid(ReasonSurrogate, start, cp, d.length)
	case cp > maxCodePoint:
		return 0, invalid(ReasonBeyondMax, start, cp, d.length)
	}
	return rune(cp), nil
}

// readByte consumes one element and rejects values that can never appear
// in UTF-8.
func (d *Decoder) readByte() (int, error) {
	at := d.off
	if at >= d.length {
		return 0, &Error{
			Kind:   KindUnicode,
			Reason: ReasonMissingByte,
			Offset: at,
			Value:  at,
			Length: d.length,
		}
	}
	v := d.seq.At(at)
	d.off++

	switch {
	case v < 0 || v > 0xFF:
		return 0, &Error{
			Kind:   KindInvariant,
			Reason: ReasonNotByte,
			Offset: at,
			Value:  v,
			Length: d.length,
		}
	case v == 0xC0 || v == 0xC1:
		return 0, invalid(ReasonOverlongLead, at, v, d.length)
	case v >= 0xF5 && v <= 0xFD:
		return 0, invalid(ReasonBeyondMax, at, v, d.length)
	}
	return v, nil
}

// DecodeAll drains a session started at start. On failure it returns the
// code points decoded before the error together with the error.
func DecodeAll(seq Sequence, start int) ([]rune, error) {
	d, err := Decode(seq, start)
	if err != nil {
		return nil, err
	}
	out := make([]rune, 0, seq.Len()-start)
	for r, err := range d.Runes() {
		if err != nil {
			return out, err
		}
		out = append(out, r)
	}
	return out, nil
}

// Count returns the number of code points from start to the end of seq.
// On failure it returns the count decoded before the error.
func Count(seq Sequence, start int) (int, error) {
	d, err := Decode(seq, start)
	if err != nil {
		return 0, err
	}
	n := 0
	for {
		_, err := d.Next()
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, err
		}
		n++
	}
}

// Valid reports whether b is strictly valid UTF-8.
func Valid(b []byte) bool {
	_, err := Count(Bytes(b), 0)
	return err == nil
}
