package component

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/araddon/dateparse"

	"github.com/zostay/go-mailheader/message/header/encoder"
)

const (
	// DateTimeLayout is the RFC 5322 date-time layout, without the optional
	// comment after the zone.
	DateTimeLayout = "Mon, 02 Jan 2006 15:04:05 -0700"

	// UnixDateWithEarlyYear is the format some mailers use in Date headers. It
	// is accepted by ParseDateTime as a last resort.
	UnixDateWithEarlyYear = "Mon Jan 02 15:04:05 2006 MST"
)

// DateTime is a date-time value such as the Date field.
type DateTime struct {
	time.Time
}

// NewDateTime wraps t.
func NewDateTime(t time.Time) DateTime {
	return DateTime{t}
}

// ParseDateTime parses the RFC 5322 format first and falls back to parsing
// it in many other formats.
func ParseDateTime(body string) (DateTime, error) {
	t, err := mail.ParseDate(body)
	if err == nil {
		return DateTime{t}, nil
	}

	t, err = dateparse.ParseAny(body)
	if err == nil {
		return DateTime{t}, nil
	}

	t, err = time.Parse(UnixDateWithEarlyYear, body)
	if err == nil {
		return DateTime{t}, nil
	}

	return DateTime{}, fmt.Errorf("time string %q cannot be parsed: %w", body, err)
}

// Encode writes the date. The text contains fold points at its spaces.
func (d DateTime) Encode(b *encoder.Buffer) error {
	if d.IsZero() {
		return encoder.ErrEmptyRequiredValue
	}
	return Raw(d.Format(DateTimeLayout)).Encode(b)
}
