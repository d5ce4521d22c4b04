// Package encoder turns already validated header values into wire-ready
// header text. The Buffer is a line-folding writer: every write goes through
// it, it remembers the last legal fold point and breaks the line there once
// the configured soft limit is passed. On top of the Buffer this package
// provides the text partitioner, the quoted-string codec and the RFC 2047
// encoded-word codec used by the header components.
package encoder

import (
	"io"
	"slices"
	"unicode/utf8"

	"github.com/zostay/go-mailheader/message/header/grammar"
)

const (
	DefaultSoftLimit = 78  // lines are folded when they grow past this
	DefaultHardLimit = 998 // lines longer than this are an error

	minSoftLimit = 3

	crlf = "\r\n"
)

// Config holds the settings of a Buffer.
type Config struct {
	// MailType decides which bytes may be written unescaped.
	MailType grammar.MailType

	// SoftLimit is the line length (in octets, excluding CRLF) past which the
	// Buffer folds at the pending fold mark. Zero means DefaultSoftLimit.
	SoftLimit int

	// HardLimit is the line length past which writes fail with a
	// LineLengthError. Zero means DefaultHardLimit.
	HardLimit int

	// Trace turns on the recording of TraceTokens.
	Trace bool
}

// DefaultConfig returns the recommended Config for the given MailType.
func DefaultConfig(mt grammar.MailType) Config {
	return Config{
		MailType:  mt,
		SoftLimit: DefaultSoftLimit,
		HardLimit: DefaultHardLimit,
	}
}

// State describes the progress of the header currently being written.
type State int

const (
	Idle    State = iota // no header is open
	Writing              // a header is open and has not been folded
	Folded               // a header is open and has been folded at least once
)

// String returns the name of the state.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Writing:
		return "writing"
	case Folded:
		return "folded"
	}
	return "unknown"
}

// Buffer accumulates encoded header text. A Buffer is used for a single
// encoding pass over a mail or part and must not be shared between
// goroutines.
//
// Only the header currently open can be changed after it was written, and
// only through folding and UndoHeader.
type Buffer struct {
	cfg Config

	buf         []byte
	lineStart   int // offset of the first byte of the current line
	headerStart int // offset of the first byte of the open header
	mark        int // pending fold mark, -1 if there is none
	state       State

	trace []TraceToken
}

// NewBuffer returns a new Buffer for the given Config. It returns an error if
// the settings are unusable.
func NewBuffer(cfg Config) (*Buffer, error) {
	if cfg.SoftLimit == 0 {
		cfg.SoftLimit = DefaultSoftLimit
	}
	if cfg.HardLimit == 0 {
		cfg.HardLimit = DefaultHardLimit
	}

	if cfg.MailType < grammar.Ascii || cfg.MailType > grammar.Internationalized {
		return nil, ErrUnknownMailType
	}

	if cfg.SoftLimit < minSoftLimit {
		return nil, ErrSoftLimitTooShort
	}

	if cfg.HardLimit < cfg.SoftLimit {
		return nil, ErrHardLimitTooShort
	}

	return &Buffer{cfg: cfg, mark: -1}, nil
}

// New returns a Buffer with the DefaultConfig of the given MailType.
func New(mt grammar.MailType) *Buffer {
	b, err := NewBuffer(DefaultConfig(mt))
	if err != nil {
		panic(err)
	}
	return b
}

// MailType returns the MailType the Buffer encodes for.
func (b *Buffer) MailType() grammar.MailType {
	return b.cfg.MailType
}

// Config returns the effective configuration.
func (b *Buffer) Config() Config {
	return b.cfg
}

// State returns the state of the header currently open.
func (b *Buffer) State() State {
	return b.state
}

// Bytes returns the bytes written so far. The slice is only valid until the
// next write.
func (b *Buffer) Bytes() []byte {
	return b.buf
}

// String returns the bytes written so far as a string.
func (b *Buffer) String() string {
	return string(b.buf)
}

// Len returns the number of bytes written so far.
func (b *Buffer) Len() int {
	return len(b.buf)
}

// WriteTo writes the accumulated bytes to w.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.buf)
	return int64(n), err
}

// Trace returns the recorded trace tokens. It is nil unless Config.Trace was
// set.
func (b *Buffer) Trace() []TraceToken {
	return b.trace
}

// StartHeader opens a new header at the current position. Everything written
// from here on is discarded by UndoHeader.
func (b *Buffer) StartHeader() {
	b.headerStart = len(b.buf)
	b.lineStart = len(b.buf)
	b.mark = -1
	b.state = Writing
}

// FinishHeader terminates the open header with CRLF.
func (b *Buffer) FinishHeader() {
	b.buf = append(b.buf, crlf...)
	b.record(TraceToken{Kind: TraceCRLF})
	b.closeLine()
}

// WriteBlankLine writes the empty line separating the header from the body.
func (b *Buffer) WriteBlankLine() {
	b.FinishHeader()
}

func (b *Buffer) closeLine() {
	b.lineStart = len(b.buf)
	b.headerStart = len(b.buf)
	b.mark = -1
	b.state = Idle
}

// UndoHeader discards everything written since the open header started,
// including any folds, and returns the Buffer to the Idle state.
func (b *Buffer) UndoHeader() {
	b.buf = b.buf[:b.headerStart]
	b.record(TraceToken{Kind: TraceUndo})
	b.closeLine()
}

// MarkFWSPos records the current position as the place to fold at should the
// line grow too long. It replaces any mark set before.
func (b *Buffer) MarkFWSPos() {
	b.mark = len(b.buf)
	b.record(TraceToken{Kind: TraceMarkFWS})
}

// WriteFWS marks a fold point and writes a single space after it.
func (b *Buffer) WriteFWS() error {
	b.MarkFWSPos()
	return b.writeByte(' ')
}

// WriteChar writes a single US-ASCII visible or whitespace character.
func (b *Buffer) WriteChar(c byte) error {
	if c >= utf8.RuneSelf {
		return charsetError(string(rune(c)), b.cfg.MailType, "non-ASCII byte")
	}
	if !isWritable(rune(c), grammar.Ascii) {
		return charsetError(string(rune(c)), b.cfg.MailType, "control character")
	}
	return b.writeByte(c)
}

// WriteStr writes US-ASCII text made of visible and whitespace characters.
// Nothing is written if s holds anything else.
func (b *Buffer) WriteStr(s string) error {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return charsetError(s, b.cfg.MailType, "non-ASCII byte")
		}
		if !isWritable(rune(s[i]), grammar.Ascii) {
			return charsetError(s, b.cfg.MailType, "control character")
		}
	}
	return b.writeString(s)
}

// WriteUTF8 writes text which may contain non-ASCII characters. It fails
// without writing anything unless the MailType is Internationalized or s is
// plain ASCII.
func (b *Buffer) WriteUTF8(s string) error {
	if !utf8.ValidString(s) {
		return charsetError(s, b.cfg.MailType, "invalid UTF-8")
	}
	if !b.cfg.MailType.IsInternationalized() && !grammar.IsASCII(s) {
		return charsetError(s, b.cfg.MailType, "non-ASCII text")
	}
	for _, r := range s {
		if !isWritable(r, b.cfg.MailType) {
			return charsetError(s, b.cfg.MailType, "control character")
		}
	}
	return b.writeString(s)
}

// WriteResult is returned by WriteIf.
type WriteResult struct {
	failed bool
	err    error
}

// Failed returns true if the text was not written because it did not satisfy
// the condition.
func (r WriteResult) Failed() bool {
	return r.failed
}

// Err returns the error of a write that did happen, e.g. a LineLengthError.
func (r WriteResult) Err() error {
	return r.err
}

// OnFailure calls fallback if the condition failed and returns its error.
// Otherwise it returns the error of the write.
func (r WriteResult) OnFailure(fallback func() error) error {
	if r.failed {
		return fallback()
	}
	return r.err
}

// WriteIf writes text only if every character of it satisfies pred under the
// Buffer's MailType and the MailType can carry it. Otherwise nothing is
// written and the result reports the failure, so the caller can pick another
// encoding.
func (b *Buffer) WriteIf(text string, pred grammar.Predicate) WriteResult {
	if !grammar.All(text, pred, b.cfg.MailType) {
		return WriteResult{failed: true}
	}
	if !b.cfg.MailType.IsInternationalized() && !grammar.IsASCII(text) {
		return WriteResult{failed: true}
	}
	for _, r := range text {
		if !isWritable(r, b.cfg.MailType) {
			return WriteResult{failed: true}
		}
	}
	return WriteResult{err: b.writeString(text)}
}

func isWritable(r rune, mt grammar.MailType) bool {
	return grammar.IsVChar(r, mt) || grammar.IsWS(r, mt)
}

// writeByte appends c without any validation.
func (b *Buffer) writeByte(c byte) error {
	b.open()
	b.buf = append(b.buf, c)
	if b.cfg.Trace {
		b.recordText(string(rune(c)))
	}
	return b.checkLine()
}

// writeString appends s without any validation.
func (b *Buffer) writeString(s string) error {
	if s == "" {
		return nil
	}
	b.open()
	b.buf = append(b.buf, s...)
	b.recordText(s)
	return b.checkLine()
}

func (b *Buffer) open() {
	if b.state == Idle {
		b.state = Writing
	}
}

func (b *Buffer) lineLen() int {
	return len(b.buf) - b.lineStart
}

// checkLine folds the current line if it grew past the soft limit and reports
// a line that is still past the hard limit.
func (b *Buffer) checkLine() error {
	if b.lineLen() > b.cfg.SoftLimit {
		b.fold()
	}

	if n := b.lineLen(); n > b.cfg.HardLimit {
		return &LineLengthError{Length: n, Limit: b.cfg.HardLimit}
	}

	return nil
}

// fold breaks the current line at the pending mark. The fold only happens if
// both resulting lines carry something other than whitespace.
func (b *Buffer) fold() bool {
	m := b.mark
	if m <= b.lineStart || m >= len(b.buf) {
		return false
	}

	if !hasContent(b.buf[b.lineStart:m]) || !hasContent(b.buf[m:]) {
		return false
	}

	brk := crlf
	if c := b.buf[m]; c != ' ' && c != '\t' {
		brk = crlf + " "
	}

	b.buf = slices.Insert(b.buf, m, []byte(brk)...)
	b.lineStart = m + len(crlf)
	b.mark = -1
	b.state = Folded
	b.record(TraceToken{Kind: TraceFold})

	return true
}

func hasContent(bs []byte) bool {
	for _, c := range bs {
		if c != ' ' && c != '\t' {
			return true
		}
	}
	return false
}
