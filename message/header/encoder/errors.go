package encoder

import (
	"errors"
	"fmt"

	"github.com/zostay/go-mailheader/message/header/grammar"
)

// Errors returned while encoding. The typed errors below all match one of
// these with errors.Is.
var (
	// ErrCharset is matched by a CharsetError: the text cannot be carried by
	// the negotiated MailType or holds an unescapable control character.
	ErrCharset = errors.New("character set violation")

	// ErrPartition is matched by a PartitionError: unstructured text contains
	// a character that is neither visible nor whitespace.
	ErrPartition = errors.New("illegal character in text")

	// ErrEncodedWordOverflow is matched by an EncodedWordOverflowError. It
	// indicates a single character could not fit into an empty encoded word,
	// which means the caller configured an impossibly small token budget.
	ErrEncodedWordOverflow = errors.New("encoded word overflow")

	// ErrEmptyRequiredValue is returned when a value that requires at least
	// one non-whitespace unit is empty or whitespace only.
	ErrEmptyRequiredValue = errors.New("required value is empty")

	// ErrLineTooLong is matched by a LineLengthError: a line passed the hard
	// line length limit and no fold point was available.
	ErrLineTooLong = errors.New("line exceeds hard length limit")

	// ErrSoftLimitTooShort is returned by NewBuffer when the soft limit
	// cannot hold even a short encoded word.
	ErrSoftLimitTooShort = errors.New("soft line length limit is too short")

	// ErrHardLimitTooShort is returned by NewBuffer when the hard limit is
	// shorter than the soft limit.
	ErrHardLimitTooShort = errors.New("hard line length limit must not be shorter than the soft limit")

	// ErrUnknownMailType is returned by NewBuffer for an out-of-range
	// MailType.
	ErrUnknownMailType = errors.New("unknown mail type")
)

// CharsetError reports text that cannot be written under a MailType.
type CharsetError struct {
	Text     string
	MailType grammar.MailType
	Reason   string
}

// Error returns the error message.
func (e *CharsetError) Error() string {
	return fmt.Sprintf("%v: %s in %q (mail type %s)", ErrCharset, e.Reason, e.Text, e.MailType)
}

// Is matches ErrCharset.
func (e *CharsetError) Is(target error) bool {
	return target == ErrCharset
}

// PartitionError names the text that could not be partitioned.
type PartitionError struct {
	Text   string // the full input
	Offset int    // byte offset of the offending character
}

// Error returns the error message.
func (e *PartitionError) Error() string {
	return fmt.Sprintf("%v: at offset %d of %q", ErrPartition, e.Offset, e.Text)
}

// Is matches ErrPartition.
func (e *PartitionError) Is(target error) bool {
	return target == ErrPartition
}

// EncodedWordOverflowError reports a character whose encoded form does not fit
// into an encoded word.
type EncodedWordOverflowError struct {
	Text       string
	Budget     int
	Encoding   EncodedWordEncoding
	NeededSize int
}

// Error returns the error message.
func (e *EncodedWordOverflowError) Error() string {
	return fmt.Sprintf("%v: %s encoding of %q needs %d bytes, only %d available",
		ErrEncodedWordOverflow, e.Encoding, e.Text, e.NeededSize, e.Budget)
}

// Is matches ErrEncodedWordOverflow.
func (e *EncodedWordOverflowError) Is(target error) bool {
	return target == ErrEncodedWordOverflow
}

// LineLengthError reports a header line past the hard limit.
type LineLengthError struct {
	Length int
	Limit  int
}

// Error returns the error message.
func (e *LineLengthError) Error() string {
	return fmt.Sprintf("%v: %d > %d", ErrLineTooLong, e.Length, e.Limit)
}

// Is matches ErrLineTooLong.
func (e *LineLengthError) Is(target error) bool {
	return target == ErrLineTooLong
}

func charsetError(text string, mt grammar.MailType, reason string) error {
	return &CharsetError{Text: text, MailType: mt, Reason: reason}
}
