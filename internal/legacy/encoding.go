package legacy

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode converts raw uploaded bytes to a string, fixing the charset once at
// ingestion. Valid UTF-8 passes through (minus a BOM); anything else is
// treated as Latin-1, the usual encoding of Brazilian BD.ini files.
//
// Latin-1 maps every byte to a code point, so Decode cannot fail.
func Decode(data []byte) string {
	data = bytes.TrimPrefix(data, utf8BOM)

	if utf8.Valid(data) {
		return string(data)
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		// Unreachable for ISO 8859-1 input, but keep the raw bytes
		// rather than dropping the upload.
		return string(data)
	}
	return string(decoded)
}
