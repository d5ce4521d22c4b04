package param

import (
	"errors"
	"fmt"
	"mime"
	"sort"
	"strings"

	"golang.org/x/text/encoding/ianaindex"

	"github.com/zostay/go-mailheader/message/header/encoder"
	"github.com/zostay/go-mailheader/message/header/grammar"
)

const (
	// Charset is the name of the charset parameter that may be present in the
	// Content-type header.
	Charset = "charset"

	// Boundary is the name of the boundary parameter that may be present in
	// the Content-type header.
	Boundary = "boundary"

	// Filename is the name of the filename parameter that may be present in the
	// Content-disposition header.
	Filename = "filename"

	// Name is the name of the legacy name parameter of the Content-type
	// header.
	Name = "name"
)

var (
	// ErrInvalidValue is returned when the primary value is not a token or a
	// type/subtype pair of tokens.
	ErrInvalidValue = errors.New("invalid parameterized value")

	// ErrInvalidParameter is returned when a parameter name is not a token.
	ErrInvalidParameter = errors.New("invalid parameter name")

	// ErrUnknownCharset is returned by CanonicalCharset for names missing
	// from the IANA registry.
	ErrUnknownCharset = errors.New("unknown charset")
)

// Value represents a parsed parameterized header field, such as is used in the
// Content-type and Content-disposition headers. A Value object is immutable:
// You cannot change it in place. However, a Modify() function is provided to
// perform transformation of a Value into a new Value.
type Value struct {
	v  string
	ps map[string]string
}

// Parse takes a header field body, parses it as a Value and returns it. If an
// error occurs in the process, it returns an error.
func Parse(v string) (*Value, error) {
	mt, ps, err := mime.ParseMediaType(v)
	if err != nil {
		return nil, err
	}

	return &Value{mt, ps}, nil
}

// New creates a new parameterized header field. The parameters of every map
// given are merged in order.
func New(v string, ps ...map[string]string) *Value {
	pv := &Value{v, map[string]string{}}
	for _, m := range ps {
		for k, val := range m {
			pv.ps[strings.ToLower(k)] = val
		}
	}
	return pv
}

// Modifier is a modification to apply to a Value when calling the Modify()
// function.
type Modifier func(*Value)

// Change is a Modifier that replaces the primary value of the Value.
func Change(value string) Modifier {
	return func(pv *Value) {
		pv.v = value
	}
}

// Set is a Modifier that sets a parameter with the given name on the Value.
func Set(name, value string) Modifier {
	return func(pv *Value) {
		pv.ps[strings.ToLower(name)] = value
	}
}

// Delete is a Modifier that removes the parameter with the given name from the
// Value.
func Delete(name string) Modifier {
	return func(pv *Value) {
		delete(pv.ps, strings.ToLower(name))
	}
}

// Modify clones a Value, applies the given modifications (if any) and returns
// the new Value. You can pass multiple changes to this function:
//
//	v, _ := param.Parse("multipart/mixed; boundary=abc123; charset=latin1")
//	nv := param.Modify(v, Change("multipart/alternate"), Set("charset", "utf-8"))
func Modify(pv *Value, changes ...Modifier) *Value {
	c := pv.Clone()
	for _, change := range changes {
		change(c)
	}
	return c
}

// Value returns the primary value of the Value. This is the value before the
// first semi-colon.
func (pv *Value) Value() string {
	return pv.v
}

// Disposition is a synonym for Value() and returns the Content-disposition,
// either "inline" or "attachment".
func (pv *Value) Disposition() string {
	return pv.v
}

// MediaType is a synonym for Value() and returns the Content-type value, e.g.,
// "text/html", "image/jpeg", "multipart/mixed", etc.
func (pv *Value) MediaType() string {
	return pv.v
}

// Presentation is a synonym for Value() meant for the Content-disposition
// header.
func (pv *Value) Presentation() string {
	return pv.v
}

// Type returns the part of MediaType() before the slash, or an empty string
// if there is no slash.
func (pv *Value) Type() string {
	if ix := strings.IndexRune(pv.v, '/'); ix >= 0 {
		return pv.v[:ix]
	}
	return ""
}

// Subtype returns the part of MediaType() after the slash, or an empty string
// if there is no slash.
func (pv *Value) Subtype() string {
	if ix := strings.IndexRune(pv.v, '/'); ix >= 0 {
		return pv.v[ix+1:]
	}
	return ""
}

// Parameters returns the parameters encoded on this Value as a map. Do not
// modify this map. If you need to modify it, make a copy first.
func (pv *Value) Parameters() map[string]string {
	return pv.ps
}

// Parameter returns the value of the parameter with the given name.
func (pv *Value) Parameter(k string) string {
	return pv.ps[strings.ToLower(k)]
}

// Filename returns the value of the "filename" parameter.
func (pv *Value) Filename() string {
	return pv.ps[Filename]
}

// Charset returns the value of the "charset" parameter.
func (pv *Value) Charset() string {
	return pv.ps[Charset]
}

// Boundary returns the value of the "boundary" parameter.
func (pv *Value) Boundary() string {
	return pv.ps[Boundary]
}

// keys returns the parameter names in the order they are written.
func (pv *Value) keys() []string {
	pks := make([]string, 0, len(pv.ps))
	for k := range pv.ps {
		pks = append(pks, k)
	}
	sort.Strings(pks)
	return pks
}

// String returns the primary value and all parameters without any quoting or
// folding. Use Encode to produce a header field body.
func (pv *Value) String() string {
	pks := pv.keys()
	parts := make([]string, len(pks)+1)
	parts[0] = pv.v

	for n, k := range pks {
		parts[n+1] = fmt.Sprintf("%s=%s", k, pv.ps[k])
	}

	return strings.Join(parts, "; ")
}

// Bytes is String as a byte slice.
func (pv *Value) Bytes() []byte {
	return []byte(pv.String())
}

// Clone returns a deep copy of the Value.
func (pv *Value) Clone() *Value {
	var c Value
	c.v = pv.v
	c.ps = make(map[string]string, len(pv.ps))
	for k, v := range pv.ps {
		c.ps[k] = v
	}
	return &c
}

// Encode writes the value and its parameters, each parameter after a fold
// point. Parameter values are quoted when they are not tokens. A non-ASCII
// value is written in the RFC 2231 extended form unless the mail is
// Internationalized.
func (pv *Value) Encode(b *encoder.Buffer) error {
	if pv.v == "" {
		return encoder.ErrEmptyRequiredValue
	}

	if !validPrimary(pv.v) {
		return fmt.Errorf("%w: %q", ErrInvalidValue, pv.v)
	}

	if err := b.WriteStr(pv.v); err != nil {
		return err
	}

	for _, k := range pv.keys() {
		if err := b.WriteChar(';'); err != nil {
			return err
		}
		if err := b.WriteFWS(); err != nil {
			return err
		}
		if err := writeParameter(b, k, pv.ps[k]); err != nil {
			return err
		}
	}

	return nil
}

func validPrimary(v string) bool {
	typ, sub, found := strings.Cut(v, "/")
	if !grammar.IsTokenString(typ) {
		return false
	}
	return !found || grammar.IsTokenString(sub)
}

func writeParameter(b *encoder.Buffer, k, v string) error {
	if !grammar.IsTokenString(k) {
		return fmt.Errorf("%w: %q", ErrInvalidParameter, k)
	}

	mt := b.MailType()
	if !grammar.IsASCII(v) && !mt.IsInternationalized() {
		return b.WriteStr(k + "*=utf-8''" + extendedValue(v))
	}

	q, _, err := encoder.QuoteIfNeeded(v, grammar.IsToken, mt)
	if err != nil {
		return err
	}

	return b.WriteUTF8(k + "=" + q)
}

const upperhex = "0123456789ABCDEF"

// extendedValue percent-encodes every octet that is not an RFC 2231
// attribute-char.
func extendedValue(v string) string {
	var sb strings.Builder
	for i := 0; i < len(v); i++ {
		c := v[i]
		if isAttributeChar(c) {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(upperhex[c>>4])
		sb.WriteByte(upperhex[c&0x0f])
	}
	return sb.String()
}

func isAttributeChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	return strings.IndexByte("!#$&+-.^_`|~", c) >= 0
}

// CanonicalCharset returns the preferred MIME name of the given charset, e.g.
// "ISO-8859-1" for "latin1".
func CanonicalCharset(name string) (string, error) {
	enc, err := ianaindex.MIME.Encoding(name)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownCharset, name)
	}
	if enc == nil {
		return "", fmt.Errorf("%w: %q is not supported", ErrUnknownCharset, name)
	}

	canon, err := ianaindex.MIME.Name(enc)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %w", ErrUnknownCharset, name, err)
	}

	return canon, nil
}

// WithCanonicalCharset returns a copy of pv whose charset parameter, if any,
// holds the preferred MIME name.
func WithCanonicalCharset(pv *Value) (*Value, error) {
	cs := pv.Charset()
	if cs == "" {
		return pv, nil
	}

	canon, err := CanonicalCharset(cs)
	if err != nil {
		return nil, err
	}

	return Modify(pv, Set(Charset, canon)), nil
}
