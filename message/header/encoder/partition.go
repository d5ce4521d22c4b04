package encoder

import (
	"unicode/utf8"

	"github.com/zostay/go-mailheader/message/header/grammar"
)

// PartitionKind tells visible runs from whitespace runs.
type PartitionKind int

const (
	VisibleRun    PartitionKind = iota // one or more visible characters
	WhitespaceRun                      // one or more of space, tab, CR and LF
)

// String returns the name of the kind.
func (k PartitionKind) String() string {
	if k == WhitespaceRun {
		return "whitespace"
	}
	return "visible"
}

// Partition is a run of text of a single kind. Text is a substring of the
// partitioned input.
type Partition struct {
	Kind PartitionKind
	Text string
}

// Partitioner splits free text into alternating visible and whitespace runs.
// It works like bufio.Scanner:
//
//	p := encoder.NewPartitioner(text)
//	for p.Next() {
//		part := p.Partition()
//		...
//	}
//	if err := p.Err(); err != nil {
//		...
//	}
//
// Any non-ASCII character counts as visible, so the partitioner accepts text
// that must still be encoded for an ASCII-only transport. Control characters
// other than CR, LF and tab, as well as invalid UTF-8, end the sequence with
// a PartitionError.
type Partitioner struct {
	text string
	pos  int
	cur  Partition
	err  error
}

// NewPartitioner returns a Partitioner over text.
func NewPartitioner(text string) *Partitioner {
	return &Partitioner{text: text}
}

// Reset restarts the sequence from the beginning.
func (p *Partitioner) Reset() {
	p.pos = 0
	p.cur = Partition{}
	p.err = nil
}

// Next advances to the next partition. It returns false at the end of the
// input or when an error occurred.
func (p *Partitioner) Next() bool {
	if p.err != nil || p.pos >= len(p.text) {
		return false
	}

	start := p.pos
	kind, ok := p.classify(start)
	if !ok {
		return false
	}

	end := start
	for end < len(p.text) {
		k, ok := p.classify(end)
		if !ok {
			return false
		}
		if k != kind {
			break
		}
		_, size := utf8.DecodeRuneInString(p.text[end:])
		end += size
	}

	p.cur = Partition{Kind: kind, Text: p.text[start:end]}
	p.pos = end
	return true
}

// classify returns the kind of the character at offset i, recording an error
// if it belongs to neither kind.
func (p *Partitioner) classify(i int) (PartitionKind, bool) {
	r, size := utf8.DecodeRuneInString(p.text[i:])
	switch {
	case r == utf8.RuneError && size <= 1:
		p.err = &PartitionError{Text: p.text, Offset: i}
		return 0, false
	case r == '\r' || r == '\n' || grammar.IsWS(r, grammar.Internationalized):
		return WhitespaceRun, true
	case grammar.IsVChar(r, grammar.Internationalized):
		return VisibleRun, true
	}
	p.err = &PartitionError{Text: p.text, Offset: i}
	return 0, false
}

// Partition returns the partition found by the last call to Next.
func (p *Partitioner) Partition() Partition {
	return p.cur
}

// Err returns the error that stopped the sequence, if any.
func (p *Partitioner) Err() error {
	return p.err
}

// Partitions splits text into all of its partitions at once.
func Partitions(text string) ([]Partition, error) {
	var parts []Partition
	p := NewPartitioner(text)
	for p.Next() {
		parts = append(parts, p.Partition())
	}
	if err := p.Err(); err != nil {
		return nil, err
	}
	return parts, nil
}
