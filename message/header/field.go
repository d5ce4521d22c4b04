package header

import (
	"fmt"

	"github.com/zostay/go-mailheader/message/header/component"
	"github.com/zostay/go-mailheader/message/header/encoder"
	"github.com/zostay/go-mailheader/message/header/grammar"
)

// Field is a single header field: a name and the component that encodes its
// body. Fields are immutable.
type Field struct {
	name  string
	kind  Kind
	value component.Component
}

// NewField parses body according to the kind of field name and returns the
// new field. Fields the library has no type for keep the body as a
// component.Raw.
func NewField(name, body string) (*Field, error) {
	k := KindOf(name)
	v, err := k.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s header field: %w", name, err)
	}
	return NewFieldValue(name, v)
}

// NewFieldValue returns a field holding the given value. The name must be
// made of printable US-ASCII characters other than the colon.
func NewFieldValue(name string, v component.Component) (*Field, error) {
	if !grammar.IsFieldName(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if v == nil {
		return nil, fmt.Errorf("%w: %s", encoder.ErrEmptyRequiredValue, name)
	}

	k := KindOf(name)
	if k != KindOther {
		name = k.Name()
	}

	return &Field{name: name, kind: k, value: v}, nil
}

// Name returns the name of the field. Known fields use their canonical
// spelling.
func (f *Field) Name() string {
	return f.name
}

// Kind returns the kind of the field.
func (f *Field) Kind() Kind {
	return f.kind
}

// Value returns the component holding the field body.
func (f *Field) Value() component.Component {
	return f.value
}

// Encode writes "Name: body" to b. The space after the colon is a fold
// point. It does not start or finish the header line.
func (f *Field) Encode(b *encoder.Buffer) error {
	if err := b.WriteStr(f.name + ":"); err != nil {
		return err
	}
	if err := b.WriteFWS(); err != nil {
		return err
	}
	return f.value.Encode(b)
}
