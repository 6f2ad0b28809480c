package company

import "errors"

var (
	// ErrUnsupportedEncoding occurs when a character encoding is not known
	// by its IANA name or cannot be handled.
	ErrUnsupportedEncoding = errors.New("unsupported character encoding")

	// ErrMalformedDocument occurs when a document cannot be decoded into a
	// [Company], e.g. due to XML syntax errors or an unexpected root element.
	ErrMalformedDocument = errors.New("malformed document")
)
