package message

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/zostay/go-mailheader/message/header"
	"github.com/zostay/go-mailheader/message/header/component"
	"github.com/zostay/go-mailheader/message/header/encoder"
	"github.com/zostay/go-mailheader/message/header/grammar"
	"github.com/zostay/go-mailheader/message/header/param"
	"github.com/zostay/go-mailheader/message/transfer"
)

// Opaque is a single part email message: a header and a message body, very
// similar to the net/mail message implementation.
type Opaque struct {
	// Header will contain the header of the message. A top-level message must
	// have several headers to be correct. A message part should have one or
	// more headers as well.
	header.Header

	// Reader will contain the body content of the message. If the content is
	// zero bytes long, then Reader should be set to nil.
	io.Reader

	// encoded is true when the bytes in Reader already have the
	// Content-Transfer-Encoding applied.
	encoded bool
}

// countingWriter tracks the bytes that reach the destination.
type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

// Encode writes the header encoded for the given MailType, then the body with
// its Content-Transfer-Encoding applied. A message without a
// Content-Transfer-Encoding field is treated as 7bit. The returned count is
// the number of bytes written to w.
//
// This can only be safely called once as it will consume the io.Reader.
func (m *Opaque) Encode(w io.Writer, mt grammar.MailType, opts ...header.EncodeOption) (int64, error) {
	return m.EncodeWith(w, encoder.DefaultConfig(mt), opts...)
}

// EncodeWith is Encode with the header written through a Buffer built from
// cfg.
func (m *Opaque) EncodeWith(w io.Writer, cfg encoder.Config, opts ...header.EncodeOption) (int64, error) {
	cte, err := m.GetTransferEncoding()
	if err != nil {
		cte = transfer.Bit7
	}
	if err := cte.Supports(cfg.MailType); err != nil {
		return 0, err
	}

	b, err := encoder.NewBuffer(cfg)
	if err != nil {
		return 0, err
	}

	if err := m.Header.Encode(b, opts...); err != nil {
		return 0, err
	}

	cw := &countingWriter{w: w}
	if _, err := b.WriteTo(cw); err != nil {
		return cw.n, err
	}

	if m.Reader == nil {
		return cw.n, nil
	}

	if m.encoded {
		_, err := io.Copy(cw, m.Reader)
		return cw.n, err
	}

	tw := cte.NewEncoder(cw)
	if _, err := io.Copy(tw, m.Reader); err != nil {
		_ = tw.Close()
		return cw.n, err
	}

	err = tw.Close()
	return cw.n, err
}

// WriteTo writes the message as Ascii mail. See Encode.
func (m *Opaque) WriteTo(w io.Writer) (int64, error) {
	return m.Encode(w, grammar.Ascii)
}

// IsEncoded returns true if the Content-Transfer-Encoding has already been
// applied to the bytes returned by the associated io.Reader. If so, they are
// written as-is.
func (m *Opaque) IsEncoded() bool {
	return m.encoded
}

// GetHeader returns the header for the message.
func (m *Opaque) GetHeader() *header.Header {
	return &m.Header
}

// GetReader returns the reader containing the body of the message.
func (m *Opaque) GetReader() io.Reader {
	return m.Reader
}

// AttachmentFile is a constructor that will create an Opaque from the given
// filename and MIME type. This will read the given file path from the disk,
// make that filename the name of an attachment, pick a transfer encoding for
// its content and give it a fresh Content-ID in the given domain. It will
// return an error if there's a problem reading the file from the disk.
func AttachmentFile(fn, mediaType, domain string) (*Opaque, error) {
	data, err := os.ReadFile(fn)
	if err != nil {
		return nil, err
	}

	ct, err := param.Parse(mediaType)
	if err != nil {
		return nil, fmt.Errorf("attachment %s: %w", fn, err)
	}

	ct, err = param.WithCanonicalCharset(ct)
	if err != nil {
		return nil, fmt.Errorf("attachment %s: %w", fn, err)
	}

	base := filepath.Base(fn)
	m := &Opaque{}
	if err := m.SetContentType(param.Modify(ct, param.Set(param.Name, base))); err != nil {
		return nil, err
	}

	cd := param.New("attachment", map[string]string{param.Filename: base})
	if err := m.SetContentDisposition(cd); err != nil {
		return nil, err
	}

	if err := m.SetTransferEncoding(transfer.Choose(data, ct.MediaType())); err != nil {
		return nil, err
	}

	if err := m.SetValue(header.ContentID, component.GenerateContentID(domain)); err != nil {
		return nil, err
	}

	m.Reader = bytesReader(data)

	return m, nil
}
