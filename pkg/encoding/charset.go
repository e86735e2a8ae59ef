// Package encoding decodes names in OBJ and MTL files written in legacy charsets.
package encoding

import (
	"fmt"
	"path"
	"strings"

	xenc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// NameDecoder converts names from a legacy charset to UTF-8.
// A nil *NameDecoder passes names through unchanged.
type NameDecoder struct {
	charset string
	enc     xenc.Encoding
}

// NewNameDecoder returns a decoder for the named charset (any WHATWG label,
// e.g. "euc-kr", "shift_jis", "windows-1252"). An empty or UTF-8 charset
// returns a nil decoder.
func NewNameDecoder(charset string) (*NameDecoder, error) {
	if charset == "" {
		return nil, nil
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, fmt.Errorf("unknown charset %q: %w", charset, err)
	}
	name, err := htmlindex.Name(enc)
	if err == nil && name == "utf-8" {
		return nil, nil
	}
	return &NameDecoder{charset: name, enc: enc}, nil
}

// Charset returns the canonical charset name, or "utf-8" for a nil decoder.
func (d *NameDecoder) Charset() string {
	if d == nil {
		return "utf-8"
	}
	return d.charset
}

// Decode converts data to a UTF-8 string.
// Returns the input as-is if conversion fails.
func (d *NameDecoder) Decode(data []byte) string {
	if d == nil || isASCII(data) {
		return string(data)
	}
	result, _, err := transform.Bytes(d.enc.NewDecoder(), data)
	if err != nil {
		return string(data)
	}
	return string(result)
}

// DecodeString converts a string holding legacy-encoded bytes to UTF-8.
func (d *NameDecoder) DecodeString(s string) string {
	return d.Decode([]byte(s))
}

// NormalizePath converts a file name referenced from inside a model
// (which may use Windows separators) to a clean slash-separated path.
func NormalizePath(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	return path.Clean(name)
}

func isASCII(data []byte) bool {
	for _, c := range data {
		if c >= 0x80 {
			return false
		}
	}
	return true
}
