// Package decode turns raw page bytes into text for a named character encoding.
package decode

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/iancoleman/strcase"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/mcncl/nextdata/internal/errors"
)

// Canonical encoding names
const (
	UTF8   = "utf-8"
	CP950  = "cp950"
	Latin1 = "latin-1"
	CP1252 = "cp1252"
	Auto   = "auto"
)

// DefaultOrder is the fallback chain tried when nothing else is configured
var DefaultOrder = []string{UTF8, CP950, Latin1}

// Encoding is a named decoder
type Encoding struct {
	Name string

	enc encoding.Encoding
	// strict decoders reject input instead of substituting U+FFFD
	strict bool
	// lossy decoders emit U+FFFD for bytes outside the charset
	lossy bool
}

var registry = map[string]Encoding{
	UTF8:   {Name: UTF8, enc: unicode.UTF8, strict: true},
	// WHATWG Big5 also maps the HKSCS bytes that strict cp950 rejects
	CP950:  {Name: CP950, enc: traditionalchinese.Big5, lossy: true},
	Latin1: {Name: Latin1, enc: charmap.ISO8859_1},
	CP1252: {Name: CP1252, enc: charmap.Windows1252},
	Auto:   {Name: Auto},
}

// aliases are keyed by strcase.ToKebab of the label
var aliases = map[string]string{
	"utf-8":        UTF8,
	"cp-950":       CP950,
	"ms-950":       CP950,
	"big-5":        CP950,
	"latin-1":      Latin1,
	"l-1":          Latin1,
	"iso-8859-1":   Latin1,
	"cp-1252":      CP1252,
	"windows-1252": CP1252,
	"auto":         Auto,
}

// Normalize returns the canonical name for label, e.g. "UTF8" -> "utf-8", "big5" -> "cp950"
func Normalize(label string) (string, bool) {
	key := strcase.ToKebab(strings.TrimSpace(label))
	name, ok := aliases[key]
	return name, ok
}

// Lookup returns the Encoding for label
func Lookup(label string) (Encoding, error) {
	name, ok := Normalize(label)
	if !ok {
		return Encoding{}, errors.NewDecodeError(
			fmt.Sprintf("unknown encoding '%s'", label),
			errors.ErrUnsupportedEncoding,
		)
	}
	return registry[name], nil
}

// Supported lists the canonical encoding names
func Supported() []string {
	return []string{UTF8, CP950, Latin1, CP1252, Auto}
}

// Decode converts raw bytes to UTF-8 text. Bytes that are not valid for the
// encoding are an error, except for single-byte charsets which accept anything.
func (e Encoding) Decode(raw []byte) (string, error) {
	if e.Name == Auto {
		return decodeAuto(raw)
	}
	if e.enc == nil {
		return "", errors.NewDecodeError("encoding is not initialized", errors.ErrUnsupportedEncoding)
	}

	if e.strict {
		if _, _, err := transform.Bytes(encoding.UTF8Validator, raw); err != nil {
			return "", errors.NewDecodeError(fmt.Sprintf("input is not valid %s", e.Name), errors.ErrInvalidBytes)
		}
		return string(raw), nil
	}

	out, _, err := transform.Bytes(e.enc.NewDecoder(), raw)
	if err != nil {
		return "", errors.NewDecodeError(fmt.Sprintf("failed to decode %s", e.Name), err)
	}
	if e.lossy {
		if i := bytes.IndexRune(out, utf8.RuneError); i >= 0 {
			return "", errors.NewDecodeError(
				fmt.Sprintf("input is not valid %s near decoded offset %d", e.Name, i),
				errors.ErrInvalidBytes,
			)
		}
	}
	return string(out), nil
}

// decodeAuto sniffs the charset from a BOM or <meta> declaration the way browsers do
func decodeAuto(raw []byte) (string, error) {
	enc, name, _ := charset.DetermineEncoding(raw, "text/html")
	out, _, err := transform.Bytes(enc.NewDecoder(), raw)
	if err != nil {
		return "", errors.NewDecodeError(fmt.Sprintf("failed to decode detected charset %s", name), err)
	}
	return string(out), nil
}

// Detect reports the charset name a browser would pick for raw
func Detect(raw []byte) string {
	_, name, _ := charset.DetermineEncoding(raw, "text/html")
	return name
}
