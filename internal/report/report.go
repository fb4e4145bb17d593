// Package report renders scan results as text, JSON or YAML.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	json "github.com/goccy/go-json"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"

	"github.com/bft-labs/runeguard/internal/domain"
	"github.com/bft-labs/runeguard/pkg/utf8dec"
)

// Supported formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Options controls rendering.
type Options struct {
	// Color enables styled text output.
	Color bool
}

// Document is the JSON/YAML envelope.
type Document struct {
	Valid   bool                `json:"valid" yaml:"valid"`
	Total   int                 `json:"total" yaml:"total"`
	Failed  int                 `json:"failed" yaml:"failed"`
	Results []domain.ScanResult `json:"results" yaml:"results"`
}

// NewDocument summarizes results.
func NewDocument(results []domain.ScanResult) Document {
	doc := Document{Total: len(results), Results: results}
	if doc.Results == nil {
		doc.Results = []domain.ScanResult{}
	}
	for _, r := range results {
		if r.Failed() {
			doc.Failed++
		}
	}
	doc.Valid = doc.Failed == 0
	return doc
}

// ValidFormat reports whether format can be rendered.
func ValidFormat(format string) bool {
	switch format {
	case FormatText, FormatJSON, FormatYAML:
		return true
	}
	return false
}

// Render writes results to w in the given format.
func Render(w io.Writer, format string, results []domain.ScanResult, opts Options) error {
	switch format {
	case FormatText, "":
		return renderText(w, results, opts)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(NewDocument(results))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(NewDocument(results)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownFormat, format)
	}
}

type paint func(string) string

type styles struct {
	ok, fail, dim, bold paint
}

func newStyles(w io.Writer, color bool) styles {
	if !color {
		plain := func(s string) string { return s }
		return styles{ok: plain, fail: plain, dim: plain, bold: plain}
	}
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.TrueColor)
	return styles{
		ok:   styled(r.NewStyle().Foreground(lipgloss.Color("#90EE90")).Bold(true)),
		fail: styled(r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)),
		dim:  styled(r.NewStyle().Foreground(lipgloss.Color("#666666"))),
		bold: styled(r.NewStyle().Bold(true)),
	}
}

func styled(st lipgloss.Style) paint {
	return func(s string) string { return st.Render(s) }
}

func renderText(w io.Writer, results []domain.ScanResult, opts Options) error {
	st := newStyles(w, opts.Color)
	var b strings.Builder

	for _, r := range results {
		writeLine(&b, st, r)
	}

	doc := NewDocument(results)
	summary := fmt.Sprintf("%d source(s), %d failed", doc.Total, doc.Failed)
	if doc.Valid {
		fmt.Fprintln(&b, st.bold(summary))
	} else {
		fmt.Fprintln(&b, st.fail(summary))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeLine(b *strings.Builder, st styles, r domain.ScanResult) {
	switch {
	case r.LoadError != "":
		fmt.Fprintf(b, "%s %s %s\n", st.fail("ERR "), r.Source, st.dim(r.LoadError))
	case r.Valid:
		fmt.Fprintf(b, "%s %s %s\n", st.ok("OK  "), r.Source,
			st.dim(fmt.Sprintf("(%d bytes, %d code points)", r.Bytes, r.CodePoints)))
	default:
		fmt.Fprintf(b, "%s %s %s\n", st.fail("FAIL"), r.Source, describe(r.Failure))
		if r.CodePoints > 0 {
			fmt.Fprintf(b, "     %s\n", st.dim(fmt.Sprintf("%d code points decoded before the error", r.CodePoints)))
		}
	}
}

// Stream writes results one at a time as they arrive: a single line for
// text, one compact object per line for json, one document per result for
// yaml. It satisfies ports.ResultSink. Write errors are kept and returned
// by Err.
type Stream struct {
	w      io.Writer
	format string
	st     styles
	err    error
}

// NewStream returns a Stream, or ErrUnknownFormat.
func NewStream(w io.Writer, format string, opts Options) (*Stream, error) {
	if format == "" {
		format = FormatText
	}
	if !ValidFormat(format) {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownFormat, format)
	}
	return &Stream{w: w, format: format, st: newStyles(w, opts.Color)}, nil
}

// OnResult writes one result.
func (s *Stream) OnResult(r domain.ScanResult) {
	if s.err != nil {
		return
	}
	switch s.format {
	case FormatJSON:
		s.err = json.NewEncoder(s.w).Encode(r)
	case FormatYAML:
		var b strings.Builder
		b.WriteString("---\n")
		enc := yaml.NewEncoder(&b)
		enc.SetIndent(2)
		if s.err = enc.Encode(r); s.err != nil {
			return
		}
		if s.err = enc.Close(); s.err != nil {
			return
		}
		_, s.err = io.WriteString(s.w, b.String())
	default:
		var b strings.Builder
		writeLine(&b, s.st, r)
		_, s.err = io.WriteString(s.w, b.String())
	}
}

// Err returns the first write error.
func (s *Stream) Err() error {
	return s.err
}

func describe(f *domain.DecodeFailure) string {
	if f == nil {
		return "invalid"
	}
	if f.Kind == "" {
		return f.Message
	}
	s := fmt.Sprintf("%s at byte %d", f.Reason, f.Offset)
	switch {
	case f.Kind == string(utf8dec.KindIndexOutOfBounds):
		s = fmt.Sprintf("%s (start offset %d)", f.Reason, f.Offset)
	case f.CodePoint:
		s += fmt.Sprintf(" (U+%04X)", f.Value)
	case f.Reason != string(utf8dec.ReasonMissingByte):
		s += fmt.Sprintf(" (0x%02X)", f.Value)
	}
	if f.Expected != "" {
		s += ", expected " + f.Expected
	}
	return s
}
