// Package mailheader writes email header fields for SMTP transports of
// varying capability. The same header can be encoded as plain US-ASCII mail,
// as MIME mail with 8-bit bodies or as internationalized (SMTPUTF8) mail; the
// library picks quoted strings, RFC 2047 encoded words, punycode or raw UTF-8
// as the transport allows and folds long lines at legal points.
//
// The packages are layered bottom-up:
//
//   - message/header/grammar classifies characters and strings.
//   - message/header/encoder holds the folding Buffer and the low-level
//     encoders for quoted strings and encoded words.
//   - message/header/component provides the typed header values: words,
//     phrases, unstructured text, addresses, message ids, dates.
//   - message/header/param handles parameterized values such as
//     Content-Type.
//   - message/header is the ordered header container that encodes each field
//     atomically, rolling back a field that cannot be written.
//   - message/transfer holds the body transfer encodings.
//   - message writes a complete single part message.
package mailheader
