package lox

import (
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DecodeSource wraps a script source so that a UTF-8 or UTF-16 byte order mark
// selects the encoding, defaulting to UTF-8 without one. The BOM itself is
// removed. Invalid UTF-8 decodes to U+FFFD, which the scanner then rejects as
// an invalid character.
func DecodeSource(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}
