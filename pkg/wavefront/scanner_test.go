package wavefront

import (
	"errors"
	"testing"
)

func scanAll(t *testing.T, src string) ([]Token, error) {
	t.Helper()
	sc := NewScanner([]byte(src))
	var toks []Token
	for sc.Next() {
		toks = append(toks, sc.Token())
	}
	return toks, sc.Err()
}

func kinds(toks []Token) []TokenKind {
	out := make([]TokenKind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func equalKinds(a, b []TokenKind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestScanner_Kinds(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []TokenKind
	}{
		{
			name: "position",
			src:  "v 1 2 3\n",
			want: []TokenKind{TokenPosition, TokenPosition, TokenPosition, TokenLineEnd},
		},
		{
			name: "texel and normal",
			src:  "vt 0.5 0.5\nvn 0 0 1\n",
			want: []TokenKind{
				TokenTexel, TokenTexel, TokenLineEnd,
				TokenNormal, TokenNormal, TokenNormal, TokenLineEnd,
			},
		},
		{
			name: "face position normal",
			src:  "f 1//2 3//4\n",
			want: []TokenKind{
				TokenIndex, TokenSeparator, TokenSeparator, TokenIndex, TokenVertexEnd,
				TokenIndex, TokenSeparator, TokenSeparator, TokenIndex, TokenVertexEnd,
				TokenLineEnd,
			},
		},
		{
			name: "comment",
			src:  "# hello\n",
			want: []TokenKind{TokenComment},
		},
		{
			name: "trailing comment on data line",
			src:  "v 1 2 3 # note\n",
			want: []TokenKind{TokenPosition, TokenPosition, TokenPosition, TokenLineEnd, TokenComment},
		},
		{
			name: "names",
			src:  "mtllib a.mtl\no Thing\nusemtl Red\n",
			want: []TokenKind{TokenMaterialLib, TokenObject, TokenUseMaterial},
		},
		{
			name: "unsupported lines skipped",
			src:  "s off\ng group\nvp 0.1 0.2\nl 1 2\nfoo 1 2\n",
			want: nil,
		},
		{
			name: "crlf",
			src:  "v 1 2\r\nv 3 4\r\n",
			want: []TokenKind{TokenPosition, TokenPosition, TokenLineEnd, TokenPosition, TokenPosition, TokenLineEnd},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := scanAll(t, tt.src)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := kinds(toks); !equalKinds(got, tt.want) {
				t.Errorf("kinds = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScanner_Values(t *testing.T) {
	toks, err := scanAll(t, "v -1.5 2 .25\nf 12/345/6")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantFloats := []float32{-1.5, 2, 0.25}
	for i, want := range wantFloats {
		if toks[i].Value != want {
			t.Errorf("float %d = %v, want %v", i, toks[i].Value, want)
		}
	}

	var indices []int
	for _, tok := range toks {
		if tok.Kind == TokenIndex {
			indices = append(indices, tok.Index)
		}
	}
	if len(indices) != 3 || indices[0] != 12 || indices[1] != 345 || indices[2] != 6 {
		t.Errorf("indices = %v, want [12 345 6]", indices)
	}
}

func TestScanner_EOFFlush(t *testing.T) {
	tests := []struct {
		name string
		src  string
		last TokenKind
	}{
		{"float", "v 1 2 3", TokenLineEnd},
		{"index", "f 1 2 3", TokenLineEnd},
		{"comment", "# end", TokenComment},
		{"object", "o Last", TokenObject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := scanAll(t, tt.src)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(toks) == 0 || toks[len(toks)-1].Kind != tt.last {
				t.Fatalf("last token = %v, want %v", kinds(toks), tt.last)
			}
		})
	}

	toks, _ := scanAll(t, "f 1 2 3")
	if got := toks[len(toks)-3]; got.Kind != TokenIndex || got.Index != 3 {
		t.Errorf("final index = %+v, want 3", got)
	}
}

func TestScanner_Names(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantKind TokenKind
		wantText string
	}{
		{"object with spaces", "o   Big Box  \n", TokenObject, "Big Box"},
		{"tab separated", "usemtl\tMetal\n", TokenUseMaterial, "Metal"},
		{"bare object", "o\n", TokenObject, ""},
		{"trailing comment", "usemtl red # comment\n", TokenUseMaterial, "red"},
		{"comment without space", "o Crate#2\n", TokenObject, "Crate"},
		{"only a comment", "o # unnamed\n", TokenObject, ""},
		{"several libraries", "mtllib a.mtl  b.mtl\n", TokenMaterialLib, "a.mtl  b.mtl"},
		{"no trailing newline", "usemtl Glass", TokenUseMaterial, "Glass"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := scanAll(t, tt.src)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(toks) == 0 || toks[0].Kind != tt.wantKind {
				t.Fatalf("kinds = %v, want %v first", kinds(toks), tt.wantKind)
			}
			if string(toks[0].Text) != tt.wantText {
				t.Errorf("text = %q, want %q", toks[0].Text, tt.wantText)
			}
		})
	}
}

func TestScanner_NameCommentKept(t *testing.T) {
	toks, err := scanAll(t, "usemtl red # shiny\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(toks) != 2 || toks[1].Kind != TokenComment || string(toks[1].Text) != " shiny" {
		t.Errorf("tokens = %+v, want name then comment", toks)
	}
}

func TestScanner_StrictExponent(t *testing.T) {
	src := "v 1 2 3\nv 1.5e-3 0 0\n"

	toks, err := scanAll(t, src)
	if err != nil {
		t.Fatalf("lenient: unexpected error: %v", err)
	}
	var second []float32
	for _, tok := range toks {
		if tok.Kind == TokenPosition && tok.Line == 2 {
			second = append(second, tok.Value)
		}
	}
	if len(second) != 4 || second[1] != -3 {
		t.Errorf("lenient values = %v, want the exponent split off", second)
	}

	sc := NewScanner([]byte(src))
	sc.Strict = true
	for sc.Next() {
	}
	if !errors.Is(sc.Err(), ErrBadNumber) {
		t.Fatalf("strict err = %v, want ErrBadNumber", sc.Err())
	}
	var pe *ParseError
	if !errors.As(sc.Err(), &pe) || pe.Line != 2 {
		t.Errorf("strict err = %v, want line 2", sc.Err())
	}
}

func TestScanner_LineNumbers(t *testing.T) {
	toks, err := scanAll(t, "# a\n\nv 1 2 3\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Line != 1 {
		t.Errorf("comment line = %d, want 1", toks[0].Line)
	}
	if toks[1].Line != 3 {
		t.Errorf("position line = %d, want 3", toks[1].Line)
	}
}

func TestScanner_BOM(t *testing.T) {
	toks, err := scanAll(t, "\xEF\xBB\xBFv 1 2 3\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(toks) != 4 || toks[0].Kind != TokenPosition {
		t.Errorf("kinds = %v", kinds(toks))
	}
}

func TestScanner_Errors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantErr  error
		wantLine int
	}{
		{"double dot", "v 1 2 3\nv 1.2.3 0 0\n", ErrBadNumber, 2},
		{"embedded minus", "vt 1-2 0\n", ErrBadNumber, 1},
		{"lone minus", "vn - 0 0\n", ErrBadNumber, 1},
		{"negative index", "f -1 -2 -3\n", ErrMalformedFace, 1},
		{"letter in face", "\n\nf 1 2 x\n", ErrMalformedFace, 3},
		{"index overflow", "f 99999999999 1 2\n", ErrBadNumber, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scanAll(t, tt.src)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("err %T is not *ParseError", err)
			}
			if pe.Line != tt.wantLine {
				t.Errorf("line = %d, want %d", pe.Line, tt.wantLine)
			}
		})
	}
}

func TestTokenKind_String(t *testing.T) {
	if TokenVertexEnd.String() != "VertexEnd" {
		t.Errorf("String() = %q", TokenVertexEnd.String())
	}
	if TokenKind(99).String() != "Unknown(99)" {
		t.Errorf("String() = %q", TokenKind(99).String())
	}
}
