// Package param provides a tool for dealing with parameterized headers. These
// headers include the Content-type and Content-disposition header. In addition,
// it provides some helper methods for breaking down the MIME types that get
// set in the Content-type header.
package param
