package component

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/zostay/go-mailheader/message/header/encoder"
	"github.com/zostay/go-mailheader/message/header/grammar"
)

// Word is a single atom of a phrase. If it is not plain atext it is written as
// a quoted-string, or as encoded words when the text cannot be carried raw.
type Word struct {
	Text string

	// PadLeft puts folding whitespace in front of the word.
	PadLeft bool

	// Encoding picks the encoded-word codec used as a last resort.
	Encoding encoder.EncodedWordEncoding
}

// NewWord returns a Word, failing if the text is empty or contains
// whitespace or control characters.
func NewWord(text string) (Word, error) {
	parts, err := encoder.Partitions(text)
	if err != nil {
		return Word{}, err
	}
	if len(parts) == 0 {
		return Word{}, encoder.ErrEmptyRequiredValue
	}
	if len(parts) > 1 || parts[0].Kind != encoder.VisibleRun {
		return Word{}, fmt.Errorf("%w: %q", ErrInvalidWord, text)
	}
	return Word{Text: norm.NFC.String(text)}, nil
}

// Encode writes the word.
func (w Word) Encode(b *encoder.Buffer) error {
	if w.Text == "" {
		return encoder.ErrEmptyRequiredValue
	}

	if w.PadLeft {
		if err := b.WriteFWS(); err != nil {
			return err
		}
	}

	return b.WriteIf(w.Text, grammar.IsAText).OnFailure(func() error {
		return writeFallback(b, w.Text, w.Encoding)
	})
}

// writeFallback writes text that is not an atom: as a quoted-string if the
// Buffer can carry it, as encoded words otherwise.
func writeFallback(b *encoder.Buffer, text string, enc encoder.EncodedWordEncoding) error {
	if b.MailType().IsInternationalized() || grammar.IsASCII(text) {
		return encoder.WriteQuoted(b, text)
	}
	return encoder.WriteEncodedWord(b, text, enc)
}

// Phrase is a sequence of words, as used for display names and keywords.
type Phrase []Word

// NewPhrase splits text on whitespace into a Phrase. The text is normalized
// to NFC first.
func NewPhrase(text string) (Phrase, error) {
	text = norm.NFC.String(text)

	p := encoder.NewPartitioner(text)
	var words Phrase
	for p.Next() {
		part := p.Partition()
		if part.Kind != encoder.VisibleRun {
			continue
		}
		words = append(words, Word{Text: part.Text, PadLeft: len(words) > 0})
	}

	if err := p.Err(); err != nil {
		return nil, err
	}

	if len(words) == 0 {
		return nil, encoder.ErrEmptyRequiredValue
	}

	return words, nil
}

// MustPhrase is NewPhrase that panics on error.
func MustPhrase(text string) Phrase {
	p, err := NewPhrase(text)
	if err != nil {
		panic(err)
	}
	return p
}

// Encode writes the words of the phrase.
func (p Phrase) Encode(b *encoder.Buffer) error {
	if len(p) == 0 {
		return encoder.ErrEmptyRequiredValue
	}
	for _, w := range p {
		if err := w.Encode(b); err != nil {
			return err
		}
	}
	return nil
}

// String returns the words joined by single spaces.
func (p Phrase) String() string {
	words := make([]string, len(p))
	for i, w := range p {
		words[i] = w.Text
	}
	return strings.Join(words, " ")
}

// PhraseList is a comma separated list of phrases, e.g. the Keywords header.
type PhraseList []Phrase

// NewPhraseList builds a PhraseList from one string per phrase.
func NewPhraseList(phrases ...string) (PhraseList, error) {
	pl := make(PhraseList, 0, len(phrases))
	for _, s := range phrases {
		p, err := NewPhrase(s)
		if err != nil {
			return nil, err
		}
		pl = append(pl, p)
	}
	return pl, nil
}

// Encode writes the phrases separated by commas.
func (pl PhraseList) Encode(b *encoder.Buffer) error {
	if len(pl) == 0 {
		return encoder.ErrEmptyRequiredValue
	}
	for i, p := range pl {
		if i > 0 {
			if err := b.WriteChar(','); err != nil {
				return err
			}
			if err := b.WriteFWS(); err != nil {
				return err
			}
		}
		if err := p.Encode(b); err != nil {
			return err
		}
	}
	return nil
}

// Unstructured is free text, e.g. the Subject. Runs of visible characters
// that the Buffer cannot carry are written as encoded words; whitespace runs
// become fold points.
type Unstructured struct {
	Text     string
	Encoding encoder.EncodedWordEncoding
}

// NewUnstructured returns an Unstructured holding the NFC normalized text.
func NewUnstructured(text string) Unstructured {
	return Unstructured{Text: norm.NFC.String(text)}
}

// Encode writes the text. Text that is empty or only whitespace fails with
// ErrEmptyRequiredValue before anything is written. Leading whitespace is
// dropped.
func (u Unstructured) Encode(b *encoder.Buffer) error {
	if strings.Trim(u.Text, " \t\r\n") == "" {
		return encoder.ErrEmptyRequiredValue
	}

	p := encoder.NewPartitioner(u.Text)
	for first := true; p.Next(); first = false {
		part := p.Partition()
		if part.Kind == encoder.WhitespaceRun {
			if first {
				continue
			}
			if err := writeWhitespace(b, part.Text); err != nil {
				return err
			}
			continue
		}

		if looksEncoded(part.Text) {
			if err := encoder.WriteEncodedWord(b, part.Text, u.Encoding); err != nil {
				return err
			}
			continue
		}

		err := b.WriteIf(part.Text, grammar.IsVChar).OnFailure(func() error {
			return encoder.WriteEncodedWord(b, part.Text, u.Encoding)
		})
		if err != nil {
			return err
		}
	}

	return p.Err()
}

// writeWhitespace marks a fold point and writes the run without its line
// breaks. A run made only of line breaks turns into a single space.
func writeWhitespace(b *encoder.Buffer, ws string) error {
	b.MarkFWSPos()
	ws = strings.Map(func(r rune) rune {
		if r == '\r' || r == '\n' {
			return -1
		}
		return r
	}, ws)
	if ws == "" {
		ws = " "
	}
	return b.WriteStr(ws)
}

// looksEncoded reports text a reader would mistake for an encoded word.
func looksEncoded(s string) bool {
	return strings.HasPrefix(s, "=?") && strings.HasSuffix(s, "?=") && len(s) > 4
}

// Raw is an already formatted field body, used for header fields the library
// has no dedicated type for. It is written as-is apart from folding at
// whitespace; it is never escaped or encoded, so non-ASCII text fails unless
// the mail is Internationalized.
type Raw string

// Encode writes the raw text.
func (r Raw) Encode(b *encoder.Buffer) error {
	p := encoder.NewPartitioner(string(r))
	for p.Next() {
		part := p.Partition()
		if part.Kind == encoder.WhitespaceRun {
			if err := writeWhitespace(b, part.Text); err != nil {
				return err
			}
			continue
		}
		if err := b.WriteUTF8(part.Text); err != nil {
			return err
		}
	}
	return p.Err()
}
