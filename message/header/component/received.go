package component

import (
	"github.com/zostay/go-mailheader/message/header/encoder"
	"github.com/zostay/go-mailheader/message/header/grammar"
)

type receivedKind int

const (
	receivedWord receivedKind = iota
	receivedAddress
	receivedDomain
)

// ReceivedToken is one of the name-value tokens of a Received field: a word,
// an angle address or a domain.
type ReceivedToken struct {
	kind   receivedKind
	word   Word
	email  Email
	domain Domain
}

// ReceivedWord returns a word token such as "from" or "with". A word that is
// not an atom is written as a quoted-string; encoded words are not allowed in
// Received fields.
func ReceivedWord(w string) (ReceivedToken, error) {
	word, err := NewWord(w)
	if err != nil {
		return ReceivedToken{}, err
	}
	return ReceivedToken{kind: receivedWord, word: word}, nil
}

// ReceivedAddress returns an address token, written as <email>.
func ReceivedAddress(e Email) ReceivedToken {
	return ReceivedToken{kind: receivedAddress, email: e}
}

// ReceivedDomain returns a domain token.
func ReceivedDomain(d Domain) ReceivedToken {
	return ReceivedToken{kind: receivedDomain, domain: d}
}

// Encode writes the token.
func (t ReceivedToken) Encode(b *encoder.Buffer) error {
	switch t.kind {
	case receivedAddress:
		return writeAngle(b, &t.email)
	case receivedDomain:
		return t.domain.Encode(b)
	default:
		if t.word.Text == "" {
			return encoder.ErrEmptyRequiredValue
		}
		return b.WriteIf(t.word.Text, grammar.IsAText).OnFailure(func() error {
			return encoder.WriteQuoted(b, t.word.Text)
		})
	}
}

// Received is the body of a Received trace field: name-value tokens followed
// by a semicolon and the time of receipt.
type Received struct {
	Tokens []ReceivedToken
	Date   DateTime
}

// Encode writes the tokens and date.
func (r Received) Encode(b *encoder.Buffer) error {
	for i, t := range r.Tokens {
		if i > 0 {
			if err := b.WriteFWS(); err != nil {
				return err
			}
		}
		if err := t.Encode(b); err != nil {
			return err
		}
	}

	if err := b.WriteChar(';'); err != nil {
		return err
	}
	if err := b.WriteFWS(); err != nil {
		return err
	}

	return r.Date.Encode(b)
}
