// Package header provides the header container: an ordered list of fields,
// each a name plus a component that knows how to encode itself. Known field
// names map to a closed set of kinds with a fixed value type and cardinality;
// anything else is kept as a raw value.
//
// Encode writes the fields to an encoder.Buffer, folding lines as needed and
// rolling back any field that cannot be represented under the Buffer's
// MailType.
package header
