package transfer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/zostay/go-mailheader/message/header/encoder"
	"github.com/zostay/go-mailheader/message/header/grammar"
)

// Encoding is a Content-Transfer-Encoding.
type Encoding int

const (
	Bit7            Encoding = iota // bytes are left as-is, line endings become CRLF
	Bit8                            // bytes are left as-is, line endings become CRLF
	Binary                          // bytes are left as-is
	QuotedPrintable                 // bytes are transformed between quoted-printable and binary data
	Base64                          // bytes are transformed between base64 and binary data
)

var (
	// ErrUnknownEncoding is returned by Parse for names it does not know.
	ErrUnknownEncoding = errors.New("unknown transfer encoding")

	// ErrNotSupported is returned when an encoding cannot be used with the
	// MailType of the message.
	ErrNotSupported = errors.New("transfer encoding not supported by mail type")
)

var names = [...]string{
	Bit7:            "7bit",
	Bit8:            "8bit",
	Binary:          "binary",
	QuotedPrintable: "quoted-printable",
	Base64:          "base64",
}

// String returns the name used in the Content-Transfer-Encoding header.
func (e Encoding) String() string {
	if e < 0 || int(e) >= len(names) {
		return fmt.Sprintf("Encoding(%d)", int(e))
	}
	return names[e]
}

// Parse returns the Encoding with the given name. Names are matched without
// regard to case or surrounding whitespace; an empty name means 7bit.
func Parse(name string) (Encoding, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Bit7, nil
	}
	for e, n := range names {
		if n == name {
			return Encoding(e), nil
		}
	}
	return Bit7, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
}

// Is8Bit returns true for the encodings that may carry bytes above 127.
func (e Encoding) Is8Bit() bool {
	return e == Bit8 || e == Binary
}

// Transcoding is a pair of functions that can be used to transform to and from
// a transfer encoding.
type Transcoding struct {
	// Encoder returns an io.WriteCloser, which will encode binary data and
	// write the encoded form to the given io.Writer. You must call Close() on
	// the returned io.WriteCloser when you are finished.
	Encoder func(io.Writer) io.WriteCloser

	// Decoder returns an io.Reader, which will read from the given io.Reader
	// when read and decode the encoded data back into binary form the encoded
	// form.
	Decoder func(io.Reader) io.Reader
}

var transcodings = [...]Transcoding{
	Bit7:            {NewCRLFEncoder, NewAsIsDecoder},
	Bit8:            {NewCRLFEncoder, NewAsIsDecoder},
	Binary:          {NewAsIsEncoder, NewAsIsDecoder},
	QuotedPrintable: {NewQuotedPrintableEncoder, NewQuotedPrintableDecoder},
	Base64:          {NewBase64Encoder, NewBase64Decoder},
}

// Transcoding returns the encoder and decoder for e. Unknown values are
// treated as binary.
func (e Encoding) Transcoding() Transcoding {
	if e < 0 || int(e) >= len(transcodings) {
		return transcodings[Binary]
	}
	return transcodings[e]
}

// NewEncoder returns an io.WriteCloser that writes the encoded form of
// everything written to it to w. You must call Close() when you are finished
// writing.
func (e Encoding) NewEncoder(w io.Writer) io.WriteCloser {
	return e.Transcoding().Encoder(w)
}

// NewDecoder returns an io.Reader that decodes what it reads from r.
func (e Encoding) NewDecoder(r io.Reader) io.Reader {
	return e.Transcoding().Decoder(r)
}

// Supports returns nil if the encoding can be used in a message of the given
// MailType.
func (e Encoding) Supports(mt grammar.MailType) error {
	if e.Is8Bit() && !mt.Supports8BitBodies() {
		return fmt.Errorf("%w: %s in %s mail", ErrNotSupported, e, mt)
	}
	return nil
}

// Encode writes the encoding name as a header field body.
func (e Encoding) Encode(b *encoder.Buffer) error {
	if err := e.Supports(b.MailType()); err != nil {
		return err
	}
	return b.WriteStr(e.String())
}
