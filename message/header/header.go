package header

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/zostay/go-mailheader/message/header/component"
	"github.com/zostay/go-mailheader/message/header/encoder"
	"github.com/zostay/go-mailheader/message/header/grammar"
	"github.com/zostay/go-mailheader/message/header/param"
	"github.com/zostay/go-mailheader/message/transfer"
)

// Errors returned by various header methods and functions.
var (
	// ErrNoSuchField is returned by Header methods when the operation
	// being performed failed because the header named does not exist.
	ErrNoSuchField = errors.New("no such header field")

	// ErrManyFields is returned by Header methods when the operation
	// being performed failed because the there are multiple fields with the
	// given name, or would be after adding another.
	ErrManyFields = errors.New("many header fields found")

	// ErrInvalidName is returned for a field name that contains characters
	// outside printable US-ASCII or a colon.
	ErrInvalidName = errors.New("invalid header field name")

	// ErrWrongValueType is returned by the typed getters when the field holds
	// a value of some other type.
	ErrWrongValueType = errors.New("header field holds a different value type")

	// ErrManyMailboxes is returned when the Sender field is given more than
	// one mailbox.
	ErrManyMailboxes = errors.New("exactly one mailbox expected")
)

// Header is an ordered list of header fields. Fields are written in the order
// they were added.
//
// The getter methods of this object will return an error if the field being
// fetched has not been set on the header. The error returned will be
// ErrNoSuchField.
type Header struct {
	fields []*Field
}

// Len returns the number of fields.
func (h *Header) Len() int {
	return len(h.fields)
}

// Fields returns the fields in order. Do not modify the returned slice.
func (h *Header) Fields() []*Field {
	return h.fields
}

// Clone returns a copy of the header. The fields themselves are immutable and
// are shared.
func (h *Header) Clone() *Header {
	fs := make([]*Field, len(h.fields))
	copy(fs, h.fields)
	return &Header{fields: fs}
}

// indexesNamed returns the positions of all fields with the given name.
func (h *Header) indexesNamed(name string) []int {
	var ixs []int
	for i, f := range h.fields {
		if strings.EqualFold(f.name, name) {
			ixs = append(ixs, i)
		}
	}
	return ixs
}

// AddField appends f. It fails with ErrManyFields if the field may appear
// only once and is already present.
func (h *Header) AddField(f *Field) error {
	if f.kind.Single() && len(h.indexesNamed(f.name)) > 0 {
		return fmt.Errorf("%w: %s", ErrManyFields, f.name)
	}
	h.fields = append(h.fields, f)
	return nil
}

// Add parses body for the named field and appends it.
func (h *Header) Add(name, body string) error {
	f, err := NewField(name, body)
	if err != nil {
		return err
	}
	return h.AddField(f)
}

// AddValue appends a field holding the given value.
func (h *Header) AddValue(name string, v component.Component) error {
	f, err := NewFieldValue(name, v)
	if err != nil {
		return err
	}
	return h.AddField(f)
}

// SetField replaces all existing fields with the name of f with f. If the
// field already exists, the first occurrence is replaced and the others are
// deleted. Otherwise f is appended to the end of the header.
func (h *Header) SetField(f *Field) {
	ixs := h.indexesNamed(f.name)
	if len(ixs) == 0 {
		h.fields = append(h.fields, f)
		return
	}

	h.fields[ixs[0]] = f
	for i := len(ixs) - 1; i > 0; i-- {
		h.fields = append(h.fields[:ixs[i]], h.fields[ixs[i]+1:]...)
	}
}

// Set parses body for the named field and replaces all fields with that
// name with it.
func (h *Header) Set(name, body string) error {
	f, err := NewField(name, body)
	if err != nil {
		return err
	}
	h.SetField(f)
	return nil
}

// SetValue replaces all fields with the given name with one holding v.
func (h *Header) SetValue(name string, v component.Component) error {
	f, err := NewFieldValue(name, v)
	if err != nil {
		return err
	}
	h.SetField(f)
	return nil
}

// Delete removes every field with the given name and returns how many were
// removed.
func (h *Header) Delete(name string) int {
	kept := h.fields[:0]
	n := 0
	for _, f := range h.fields {
		if strings.EqualFold(f.name, name) {
			n++
			continue
		}
		kept = append(kept, f)
	}
	for i := len(kept); i < len(h.fields); i++ {
		h.fields[i] = nil
	}
	h.fields = kept
	return n
}

// Get returns the value of the named field.
//
// If the named field is not set in the header, it will return nil with
// ErrNoSuchField. If there are multiple fields with the given name, it will
// return the first value found and ErrManyFields.
func (h *Header) Get(name string) (component.Component, error) {
	ixs := h.indexesNamed(name)
	if len(ixs) == 0 {
		return nil, ErrNoSuchField
	}

	v := h.fields[ixs[0]].value
	if len(ixs) > 1 {
		return v, ErrManyFields
	}

	return v, nil
}

// GetAll returns the values of all fields with the given name, or nil with
// ErrNoSuchField.
func (h *Header) GetAll(name string) ([]component.Component, error) {
	ixs := h.indexesNamed(name)
	if len(ixs) == 0 {
		return nil, ErrNoSuchField
	}

	vs := make([]component.Component, len(ixs))
	for i, ix := range ixs {
		vs[i] = h.fields[ix].value
	}
	return vs, nil
}

// getAs fetches the single named field and checks its type.
func getAs[T component.Component](h *Header, name string) (T, error) {
	var zero T
	v, err := h.Get(name)
	if err != nil {
		return zero, err
	}

	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s is %T", ErrWrongValueType, name, v)
	}
	return t, nil
}

// GetSubject returns the Subject field.
func (h *Header) GetSubject() (component.Unstructured, error) {
	return getAs[component.Unstructured](h, Subject)
}

// SetSubject replaces the Subject field.
func (h *Header) SetSubject(s string) error {
	return h.SetValue(Subject, component.NewUnstructured(s))
}

// GetDate returns the Date field.
func (h *Header) GetDate() (time.Time, error) {
	d, err := getAs[component.DateTime](h, Date)
	return d.Time, err
}

// SetDate replaces the Date field.
func (h *Header) SetDate(t time.Time) error {
	return h.SetValue(Date, component.NewDateTime(t))
}

// GetMessageID returns the Message-ID field.
func (h *Header) GetMessageID() (component.MessageID, error) {
	return getAs[component.MessageID](h, MessageID)
}

// SetMessageID replaces the Message-ID field.
func (h *Header) SetMessageID(id component.MessageID) error {
	return h.SetValue(MessageID, id)
}

// GetAddressList returns the address list held by the named field.
func (h *Header) GetAddressList(name string) (component.AddressList, error) {
	return getAs[component.AddressList](h, name)
}

// SetAddressList replaces the named field with the given addresses.
func (h *Header) SetAddressList(name string, al ...component.Address) error {
	return h.SetValue(name, component.AddressList(al))
}

// GetFrom returns the From field.
func (h *Header) GetFrom() (component.AddressList, error) {
	return h.GetAddressList(From)
}

// SetFrom replaces the From field.
func (h *Header) SetFrom(al ...component.Address) error {
	return h.SetAddressList(From, al...)
}

// GetTo returns the To field.
func (h *Header) GetTo() (component.AddressList, error) {
	return h.GetAddressList(To)
}

// SetTo replaces the To field.
func (h *Header) SetTo(al ...component.Address) error {
	return h.SetAddressList(To, al...)
}

// GetCc returns the Cc field.
func (h *Header) GetCc() (component.AddressList, error) {
	return h.GetAddressList(Cc)
}

// SetCc replaces the Cc field.
func (h *Header) SetCc(al ...component.Address) error {
	return h.SetAddressList(Cc, al...)
}

// GetContentType returns the Content-Type field.
func (h *Header) GetContentType() (*param.Value, error) {
	return getAs[*param.Value](h, ContentType)
}

// SetContentType replaces the Content-Type field.
func (h *Header) SetContentType(pv *param.Value) error {
	return h.SetValue(ContentType, pv)
}

// GetContentDisposition returns the Content-Disposition field.
func (h *Header) GetContentDisposition() (*param.Value, error) {
	return getAs[*param.Value](h, ContentDisposition)
}

// SetContentDisposition replaces the Content-Disposition field.
func (h *Header) SetContentDisposition(pv *param.Value) error {
	return h.SetValue(ContentDisposition, pv)
}

// GetTransferEncoding returns the Content-Transfer-Encoding field.
func (h *Header) GetTransferEncoding() (transfer.Encoding, error) {
	return getAs[transfer.Encoding](h, ContentTransferEncoding)
}

// SetTransferEncoding replaces the Content-Transfer-Encoding field.
func (h *Header) SetTransferEncoding(e transfer.Encoding) error {
	return h.SetValue(ContentTransferEncoding, e)
}

// Encode writes every field followed by the blank line that ends the header.
// Each field is started with StartHeader and finished with FinishHeader. If a
// field fails to encode, everything it wrote is rolled back with UndoHeader
// and, unless WithSkipInvalid is given, the error is returned.
func (h *Header) Encode(b *encoder.Buffer, opts ...EncodeOption) error {
	o := makeOptions(opts)

	for _, f := range h.fields {
		b.StartHeader()
		if err := f.Encode(b); err != nil {
			b.UndoHeader()
			if o.skipInvalid {
				o.logger.Warn("skipping header field that cannot be encoded",
					"field", f.name,
					"mailType", b.MailType(),
					"error", err)
				continue
			}

			o.logger.Debug("rolled back header field",
				"field", f.name,
				"mailType", b.MailType(),
				"error", err)
			return fmt.Errorf("encoding %s header field: %w", f.name, err)
		}
		b.FinishHeader()
	}

	b.WriteBlankLine()
	return nil
}

// Bytes encodes the header into a new Buffer with the default configuration
// for mt.
func (h *Header) Bytes(mt grammar.MailType, opts ...EncodeOption) ([]byte, error) {
	b := encoder.New(mt)
	if err := h.Encode(b, opts...); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// WriteTo encodes the header as Ascii mail and writes it to w.
func (h *Header) WriteTo(w io.Writer) (int64, error) {
	b := encoder.New(grammar.Ascii)
	if err := h.Encode(b); err != nil {
		return 0, err
	}
	return b.WriteTo(w)
}

// EncodeOption changes how Encode behaves.
type EncodeOption func(*encodeOptions)

type encodeOptions struct {
	logger      *slog.Logger
	skipInvalid bool
}

func makeOptions(opts []EncodeOption) encodeOptions {
	o := encodeOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger that reports rolled back fields. The default is
// slog.Default().
func WithLogger(l *slog.Logger) EncodeOption {
	return func(o *encodeOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithSkipInvalid drops fields that fail to encode instead of failing.
func WithSkipInvalid() EncodeOption {
	return func(o *encodeOptions) {
		o.skipInvalid = true
	}
}
