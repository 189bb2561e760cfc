package filing

import (
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/charmap"
)

// Decode converts raw filing bytes to a UTF-8 string and reports the encoding
// used. Valid UTF-8 is taken as is; otherwise the encoding is sniffed from
// BOMs and <meta> declarations, falling back to ISO-8859-1, which cannot fail.
func Decode(raw []byte) (string, string) {
	if utf8.Valid(raw) {
		return string(raw), "utf-8"
	}

	enc, name, _ := charset.DetermineEncoding(raw, "text/html")
	if enc != nil && name != "utf-8" {
		if out, err := enc.NewDecoder().Bytes(raw); err == nil {
			return string(out), name
		}
	}

	out, _ := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	return string(out), "iso-8859-1"
}
