// Package textenc decodes document bytes using an encoding chosen by name.
//
// Names follow the codec spellings used by documentation toolchains
// ("cp1252", "utf-8", "latin-1") as well as IANA and WHATWG labels.
package textenc

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// Default is the encoding used when none is configured.
const Default = "cp1252"

// aliases maps codec spellings that neither IANA nor WHATWG know.
var aliases = map[string]encoding.Encoding{
	"cp1252":      charmap.Windows1252,
	"windows1252": charmap.Windows1252,
	"cp1250":      charmap.Windows1250,
	"cp1251":      charmap.Windows1251,
	"cp1253":      charmap.Windows1253,
	"cp1254":      charmap.Windows1254,
	"cp437":       charmap.CodePage437,
	"cp850":       charmap.CodePage850,
	"latin1":      charmap.ISO8859_1,
	"latin_1":     charmap.ISO8859_1,
	"latin-1":     charmap.ISO8859_1,
	"iso8859_1":   charmap.ISO8859_1,
	"iso8859-1":   charmap.ISO8859_1,
	"l1":          charmap.ISO8859_1,
	"utf8":        unicode.UTF8,
	"utf_8":       unicode.UTF8,
	"utf-8":       unicode.UTF8,
	"u8":          unicode.UTF8,
	"utf-8-sig":   unicode.UTF8BOM,
	"utf_8_sig":   unicode.UTF8BOM,
}

// Decoder converts raw bytes into text for one named encoding.
type Decoder struct {
	name string
	enc  encoding.Encoding
}

// Lookup resolves an encoding by name.
func Lookup(name string) (*Decoder, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = Default
	}
	if enc, ok := aliases[key]; ok {
		return &Decoder{name: name, enc: enc}, nil
	}
	if enc, err := ianaindex.IANA.Encoding(key); err == nil && enc != nil {
		return &Decoder{name: name, enc: enc}, nil
	}
	if enc, err := htmlindex.Get(key); err == nil && enc != nil {
		return &Decoder{name: name, enc: enc}, nil
	}
	return nil, fmt.Errorf("unknown encoding %q", name)
}

// Name returns the name the decoder was looked up with.
func (d *Decoder) Name() string { return d.name }

// Decode converts data to text. Byte sequences the encoding cannot map are
// an error rather than being replaced.
func (d *Decoder) Decode(data []byte) (string, error) {
	if d.enc == unicode.UTF8 || d.enc == unicode.UTF8BOM {
		if d.enc == unicode.UTF8BOM {
			data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
		}
		if !utf8.Valid(data) {
			return "", fmt.Errorf("invalid %s byte sequence at offset %d", d.name, invalidOffset(data))
		}
		return string(data), nil
	}

	out, err := d.enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", d.name, err)
	}
	if bytes.ContainsRune(out, utf8.RuneError) {
		return "", fmt.Errorf("byte sequence cannot be decoded as %s", d.name)
	}
	return string(out), nil
}

// ReadFile reads and decodes a file.
func (d *Decoder) ReadFile(path string) (string, error) {
	// #nosec G304 -- path comes from the documentation file set.
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return d.Decode(data)
}

func invalidOffset(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return -1
}
