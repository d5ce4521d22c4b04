package transfer

import (
	"encoding/base64"
	"io"
	"mime/quotedprintable"
)

const defaultBase64LineLength = 76

var crlf = []byte{'\r', '\n'}

// writer is an internal helper to make wrapping easier.
type writer struct {
	io.Writer
	io.Closer
}

// Close will close the nested closer, if any.
func (w *writer) Close() error {
	if w.Closer != nil {
		return w.Closer.Close()
	}
	return nil
}

// lineWriter breaks the stream into lines of a fixed length. The break is
// written lazily, so the output never ends with one.
type lineWriter struct {
	every int
	acc   int
	lbr   []byte
	w     io.Writer
}

func (lw *lineWriter) Write(p []byte) (int, error) {
	n := 0
	for len(p) > 0 {
		if lw.acc == lw.every {
			if _, err := lw.w.Write(lw.lbr); err != nil {
				return n, err
			}
			lw.acc = 0
		}

		chunk := min(len(p), lw.every-lw.acc)
		ln, err := lw.w.Write(p[:chunk])
		n += ln
		lw.acc += ln
		if err != nil {
			return n, err
		}
		p = p[chunk:]
	}
	return n, nil
}

// crlfWriter turns every LF that is not already preceded by CR into CRLF.
type crlfWriter struct {
	w      io.Writer
	lastCR bool
}

func (cw *crlfWriter) Write(p []byte) (int, error) {
	start := 0
	for i, c := range p {
		if c == '\n' && !cw.lastCR {
			if i > start {
				if _, err := cw.w.Write(p[start:i]); err != nil {
					return start, err
				}
			}
			if _, err := cw.w.Write(crlf); err != nil {
				return i, err
			}
			start = i + 1
		}
		cw.lastCR = c == '\r'
	}

	if start < len(p) {
		if _, err := cw.w.Write(p[start:]); err != nil {
			return start, err
		}
	}

	return len(p), nil
}

// NewAsIsEncoder returns an io.WriteCloser that writes bytes as-is.
func NewAsIsEncoder(w io.Writer) io.WriteCloser {
	return &writer{w, nil}
}

// NewAsIsDecoder returns an io.Reader that reads bytes as-is.
func NewAsIsDecoder(r io.Reader) io.Reader {
	return r
}

// NewCRLFEncoder returns an io.WriteCloser that writes bytes as-is except
// that bare line feeds become CRLF.
func NewCRLFEncoder(w io.Writer) io.WriteCloser {
	return &writer{&crlfWriter{w: w}, nil}
}

// NewQuotedPrintableEncoder will transform all bytes written to the returned
// io.WriteCloser into quoted-printable form and write them to the given
// io.Writer. Line breaks in the input are written as CRLF.
func NewQuotedPrintableEncoder(w io.Writer) io.WriteCloser {
	qpw := quotedprintable.NewWriter(w)
	return &writer{qpw, qpw}
}

// NewQuotedPrintableDecoder will read bytes from the given io.Reader and return
// them in the returned io.Reader after decoding them from quoted-printable
// format.
func NewQuotedPrintableDecoder(r io.Reader) io.Reader {
	return quotedprintable.NewReader(r)
}

// NewBase64Encoder will translate all bytes written to the returned
// io.WriteCloser into base64 encoding, broken into lines of 76 characters
// with CRLF, and write those to the give io.Writer.
func NewBase64Encoder(w io.Writer) io.WriteCloser {
	b64 := base64.NewEncoder(base64.StdEncoding, &lineWriter{
		every: defaultBase64LineLength,
		lbr:   crlf,
		w:     w,
	})
	return &writer{b64, b64}
}

// NewBase64Decoder will translate all bytes read from the given io.Reader as
// base64 and return the binary data to the returned io.Reader.
func NewBase64Decoder(r io.Reader) io.Reader {
	return base64.NewDecoder(base64.StdEncoding, r)
}
