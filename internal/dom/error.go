package dom

import "errors"

var (
	// ErrMalformedDocument occurs when a source document cannot be parsed.
	ErrMalformedDocument = errors.New("malformed document")

	// ErrNoRootElement occurs when a source document has no root element.
	ErrNoRootElement = errors.New("document has no root element")

	// ErrMissingSection occurs when a source document lacks one of the
	// department or employee sections.
	ErrMissingSection = errors.New("missing section")

	// ErrMissingElement occurs when a row lacks a required field.
	ErrMissingElement = errors.New("missing element")
)
