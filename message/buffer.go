package message

import (
	"bytes"
	"io"

	"github.com/zostay/go-mailheader/message/header"
	"github.com/zostay/go-mailheader/message/header/grammar"
	"github.com/zostay/go-mailheader/message/transfer"
)

// DefaultContentType is the Content-Type assumed for a body when the header
// does not name one.
const DefaultContentType = "text/plain"

// Buffer provides tools for constructing single part email messages. Set the
// header fields through the embedded Header and write the body through the
// io.Writer interface. When done, call Opaque to get the message.
type Buffer struct {
	header.Header
	buf bytes.Buffer
}

// Write appends to the body of the message.
func (b *Buffer) Write(p []byte) (int, error) {
	return b.buf.Write(p)
}

// Len returns the length of the body written so far.
func (b *Buffer) Len() int {
	return b.buf.Len()
}

func bytesReader(data []byte) io.Reader {
	if len(data) == 0 {
		return nil
	}
	return bytes.NewReader(data)
}

func (b *Buffer) mediaType() string {
	if ct, err := b.GetContentType(); err == nil {
		return ct.MediaType()
	}
	return DefaultContentType
}

// Opaque returns the message built so far. If no Content-Transfer-Encoding
// has been set, one is picked from the body content that is safe for every
// MailType. The header of the returned message is a copy.
func (b *Buffer) Opaque() (*Opaque, error) {
	return b.opaque(func(data []byte) transfer.Encoding {
		return transfer.Choose(data, b.mediaType())
	})
}

// OpaqueFor is like Opaque, but may pick 8bit when mt allows 8-bit bodies.
func (b *Buffer) OpaqueFor(mt grammar.MailType) (*Opaque, error) {
	return b.opaque(func(data []byte) transfer.Encoding {
		return transfer.ChooseFor(mt, data, b.mediaType())
	})
}

func (b *Buffer) opaque(choose func([]byte) transfer.Encoding) (*Opaque, error) {
	data := b.buf.Bytes()

	m := &Opaque{Header: *b.Header.Clone()}
	if _, err := m.GetTransferEncoding(); err != nil && len(data) > 0 {
		if err := m.SetTransferEncoding(choose(data)); err != nil {
			return nil, err
		}
	}

	m.Reader = bytesReader(data)
	return m, nil
}

// OpaqueAlreadyEncoded returns the message built so far with the body marked
// as already transfer encoded, so it is written as-is.
func (b *Buffer) OpaqueAlreadyEncoded() *Opaque {
	return &Opaque{
		Header:  *b.Header.Clone(),
		Reader:  bytesReader(b.buf.Bytes()),
		encoded: true,
	}
}
