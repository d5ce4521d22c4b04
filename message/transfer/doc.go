// Package transfer contains utilities related to encoding and decoding transfer
// encodings, which interpret the Content-transfer-encoding header to apply
// certain 8bit to 7bit encodings. Only quoted-printable and base64 change the
// bytes of the document. The 7bit and 8bit encodings only normalize line
// endings to CRLF and binary leaves the bytes as-is.
//
// For the sake of this module, the term "decoded" means that the content has
// been transformed from the named Content-transfer-encoding to the charset
// encoded form. Meanwhile, "encoded" means that the content has been
// transformed from the charset encoding to the named Content-transfer-encoding.
//
// An Encoding is also a header component, so it can be written as the body of
// the Content-Transfer-Encoding field.
package transfer
