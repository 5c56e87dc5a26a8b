// Package encoding converts between UTF-8 and the charsets spreadsheets use.
package encoding

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/transform"
)

type Charset string

const (
	UTF8        Charset = "utf-8"
	UTF8BOM     Charset = "utf-8-bom"
	UTF16LE     Charset = "utf-16le"
	UTF16BE     Charset = "utf-16be"
	ISO885915   Charset = "iso-8859-15"
	Windows1252 Charset = "windows-1252"
)

var ErrUnsupportedCharset = errors.New("unsupported charset")

// ParseCharset accepts the charsets reports can be written in.
func ParseCharset(s string) (Charset, error) {
	switch c := Charset(strings.ToLower(strings.TrimSpace(s))); c {
	case "", "utf8", UTF8:
		return UTF8, nil
	case UTF8BOM, Windows1252, ISO885915:
		return c, nil
	case "cp1252", "latin1":
		return Windows1252, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedCharset, s)
	}
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// NewWriter encodes UTF-8 written to it into charset c. Close must be called to
// flush any buffered bytes; it does not close w.
func NewWriter(w io.Writer, c Charset) (io.WriteCloser, error) {
	switch c {
	case UTF8, "":
		return nopCloser{w}, nil
	case UTF8BOM:
		if _, err := w.Write(bomUTF8); err != nil {
			return nil, fmt.Errorf("writing bom: %w", err)
		}

		return nopCloser{w}, nil
	case Windows1252, ISO885915:
		return transform.NewWriter(w, c.encoding().NewEncoder()), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCharset, c)
	}
}
