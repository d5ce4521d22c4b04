// Package component holds the header values that know how to encode
// themselves. Each type implements Component and writes itself into an
// encoder.Buffer using only the Buffer's public operations, the
// quoted-string codec and the encoded-word codec. None of them knows anything
// about line folding beyond marking where a fold would be legal.
//
// All component values are immutable once constructed and may be shared
// between goroutines. Encoding them is not safe for concurrent use of the
// same Buffer.
package component

import (
	"errors"

	"github.com/zostay/go-mailheader/message/header/encoder"
	"github.com/zostay/go-mailheader/message/header/grammar"
)

// Errors returned by the constructors in this package.
var (
	// ErrInvalidEmail is returned when an address is not local-part@domain.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrInvalidDomain is returned for a domain that is neither a dot-atom
	// nor a domain literal.
	ErrInvalidDomain = errors.New("invalid domain")

	// ErrInvalidMessageID is returned for a malformed message id.
	ErrInvalidMessageID = errors.New("invalid message id")

	// ErrInvalidWord is returned for a word containing whitespace or control
	// characters.
	ErrInvalidWord = errors.New("invalid word")
)

// Component is a header field body that can encode itself.
type Component interface {
	// Encode writes the value to b. On error the Buffer may hold a partial
	// value; the caller is expected to call UndoHeader.
	Encode(b *encoder.Buffer) error
}

// EncodeString encodes c into a fresh Buffer with the default configuration
// for mt and returns the result. It is mostly a convenience for tests and
// tools.
func EncodeString(c Component, mt grammar.MailType) (string, error) {
	b := encoder.New(mt)
	if err := c.Encode(b); err != nil {
		return "", err
	}
	return b.String(), nil
}
