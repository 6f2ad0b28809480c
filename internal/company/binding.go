package company

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/encoding"
)

// DefaultIndent is the indentation used for formatted output.
const DefaultIndent = "    "

// Options are the options for writing a [Company] with [Marshal].
type Options struct {
	// Encoding is the IANA name of the output character encoding. Characters
	// that cannot be represented in it are written as numeric character
	// references.
	Encoding string

	// Indent is the indentation of every nesting level. An empty Indent
	// results in compact output without line breaks.
	Indent string
}

// DefaultOptions returns the default [Options].
func DefaultOptions() Options {
	return Options{
		Encoding: DefaultEncoding,
		Indent:   DefaultIndent,
	}
}

// Marshal writes a [Company] as an XML document, including an XML declaration
// naming the output encoding.
func Marshal(w io.Writer, c *Company, opts Options) error {
	enc, name, err := LookupEncoding(opts.Encoding)
	if err != nil {
		return fmt.Errorf("(company) %w", err)
	}

	out := w
	if enc != nil {
		out = encoding.HTMLEscapeUnsupported(enc.NewEncoder()).Writer(w)
	}

	if _, err := fmt.Fprintf(out, "<?xml version=\"1.0\" encoding=\"%s\" standalone=\"yes\"?>\n", name); err != nil {
		return fmt.Errorf("(company) failed to write declaration: %w", err)
	}

	xmlEnc := xml.NewEncoder(out)
	xmlEnc.Indent("", opts.Indent)

	if err := xmlEnc.Encode(c); err != nil {
		return fmt.Errorf("(company) failed to encode: %w", err)
	}

	if err := xmlEnc.Close(); err != nil {
		return fmt.Errorf("(company) failed to finish encoding: %w", err)
	}

	if _, err := io.WriteString(out, "\n"); err != nil {
		return fmt.Errorf("(company) failed to write: %w", err)
	}

	if closer, ok := out.(io.Closer); ok && enc != nil {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("(company) failed to flush encoder: %w", err)
		}
	}

	return nil
}

// Unmarshal reads a [Company] from an XML document in any character encoding
// known to [CharsetReader].
func Unmarshal(r io.Reader) (*Company, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = CharsetReader

	var c Company
	if err := dec.Decode(&c); err != nil {
		var xse *xml.SyntaxError
		if errors.As(err, &xse) {
			return nil, fmt.Errorf("(company) %w: line %d: %s", ErrMalformedDocument, xse.Line, xse.Msg)
		}

		return nil, fmt.Errorf("(company) %w: %w", ErrMalformedDocument, err)
	}

	return &c, nil
}
