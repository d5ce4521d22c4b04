package encoder

import (
	"fmt"
	"strings"
)

// TraceKind identifies the primitive operation a TraceToken records.
type TraceKind int

const (
	TraceMarkFWS TraceKind = iota // a fold point was marked
	TraceText                     // text was written
	TraceFold                     // a line was broken at the pending mark
	TraceCRLF                     // a header line was terminated
	TraceUndo                     // the open header was discarded
)

// TraceToken is one recorded operation of a tracing Buffer. Consecutive text
// writes are merged into a single TraceText token, so tests can assert on the
// exact folding decisions of an encoder without caring how the text was
// chunked.
type TraceToken struct {
	Kind TraceKind
	Text string
}

// Trace token shorthands, mostly useful when writing expectations.
var (
	MarkFWS = TraceToken{Kind: TraceMarkFWS}
	Fold    = TraceToken{Kind: TraceFold}
	CRLF    = TraceToken{Kind: TraceCRLF}
	Undo    = TraceToken{Kind: TraceUndo}
)

// Text returns a TraceText token.
func Text(s string) TraceToken {
	return TraceToken{Kind: TraceText, Text: s}
}

// String returns a short description of the token.
func (t TraceToken) String() string {
	switch t.Kind {
	case TraceMarkFWS:
		return "MarkFWS"
	case TraceText:
		return fmt.Sprintf("Text(%q)", t.Text)
	case TraceFold:
		return "Fold"
	case TraceCRLF:
		return "CRLF"
	case TraceUndo:
		return "Undo"
	}
	return "?"
}

// FormatTrace renders a trace on one line, handy in failure messages.
func FormatTrace(ts []TraceToken) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}

func (b *Buffer) record(t TraceToken) {
	if !b.cfg.Trace {
		return
	}
	b.trace = append(b.trace, t)
}

func (b *Buffer) recordText(s string) {
	if !b.cfg.Trace {
		return
	}
	if n := len(b.trace); n > 0 && b.trace[n-1].Kind == TraceText {
		b.trace[n-1].Text += s
		return
	}
	b.trace = append(b.trace, Text(s))
}
