package company

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// DefaultEncoding is the character encoding documents are written in when
// no other encoding was requested.
const DefaultEncoding = "UTF-8"

// LookupEncoding resolves an IANA character set name. The returned
// [encoding.Encoding] is nil for UTF-8, which needs no transformation. The
// returned name is the canonical one for use in an XML declaration.
func LookupEncoding(name string) (encoding.Encoding, string, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, DefaultEncoding) || strings.EqualFold(name, "utf8") {
		return nil, DefaultEncoding, nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s: %w", ErrUnsupportedEncoding, name, err)
	}
	if enc == nil {
		return nil, "", fmt.Errorf("%w: %s", ErrUnsupportedEncoding, name)
	}

	canonical, err := ianaindex.MIME.Name(enc)
	if err != nil {
		if canonical, err = ianaindex.IANA.Name(enc); err != nil {
			canonical = name
		}
	}

	if strings.EqualFold(canonical, DefaultEncoding) {
		return nil, DefaultEncoding, nil
	}

	return enc, canonical, nil
}

// CharsetReader converts input in the character set named by label to UTF-8.
// It has the signature expected by [xml.Decoder.CharsetReader].
func CharsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, _, err := LookupEncoding(label)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return input, nil
	}

	return enc.NewDecoder().Reader(input), nil
}
