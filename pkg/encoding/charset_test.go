package encoding

import (
	"testing"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

func TestNewNameDecoder(t *testing.T) {
	tests := []struct {
		charset string
		wantNil bool
		wantErr bool
	}{
		{"", true, false},
		{"utf-8", true, false},
		{"UTF8", true, false},
		{"euc-kr", false, false},
		{"shift_jis", false, false},
		{"not-a-charset", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.charset, func(t *testing.T) {
			d, err := NewNameDecoder(tt.charset)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewNameDecoder(%q) error = %v, wantErr %v", tt.charset, err, tt.wantErr)
			}
			if (d == nil) != tt.wantNil {
				t.Errorf("NewNameDecoder(%q) nil = %v, want %v", tt.charset, d == nil, tt.wantNil)
			}
		})
	}
}

func TestDecodeEUCKR(t *testing.T) {
	want := "검"
	encoded, _, err := transform.Bytes(korean.EUCKR.NewEncoder(), []byte(want))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	d, err := NewNameDecoder("euc-kr")
	if err != nil {
		t.Fatalf("NewNameDecoder: %v", err)
	}
	if d.Charset() != "euc-kr" {
		t.Errorf("Charset() = %q, want euc-kr", d.Charset())
	}
	if got := d.Decode(encoded); got != want {
		t.Errorf("Decode() = %q, want %q", got, want)
	}
	if got := d.DecodeString(string(encoded)); got != want {
		t.Errorf("DecodeString() = %q, want %q", got, want)
	}
}

func TestNilDecoderPassesThrough(t *testing.T) {
	var d *NameDecoder
	if got := d.Decode([]byte("Cube_001")); got != "Cube_001" {
		t.Errorf("Decode() = %q", got)
	}
	if d.Charset() != "utf-8" {
		t.Errorf("Charset() = %q, want utf-8", d.Charset())
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"cube.mtl", "cube.mtl"},
		{`materials\cube.mtl`, "materials/cube.mtl"},
		{"./materials//cube.mtl", "materials/cube.mtl"},
		{`..\shared\base.mtl`, "../shared/base.mtl"},
	}
	for _, tt := range tests {
		if got := NormalizePath(tt.in); got != tt.want {
			t.Errorf("NormalizePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
