package wavefront

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
)

// TokenKind classifies a scanner token.
type TokenKind uint8

// Token kinds emitted by the scanner.
const (
	TokenComment     TokenKind = iota + 1 // "# ..." (Text is the comment body)
	TokenObject                           // "o [name]"
	TokenMaterialLib                      // "mtllib name"
	TokenUseMaterial                      // "usemtl name"
	TokenPosition                         // one float of a "v" line
	TokenTexel                            // one float of a "vt" line
	TokenNormal                           // one float of a "vn" line
	TokenIndex                            // one integer of an "f" line
	TokenSeparator                        // "/" inside a face vertex
	TokenVertexEnd                        // end of one face vertex
	TokenLineEnd                          // end of a v/vt/vn/f line
)

// String returns a human-readable token kind name.
func (k TokenKind) String() string {
	switch k {
	case TokenComment:
		return "Comment"
	case TokenObject:
		return "Object"
	case TokenMaterialLib:
		return "MaterialLib"
	case TokenUseMaterial:
		return "UseMaterial"
	case TokenPosition:
		return "Position"
	case TokenTexel:
		return "Texel"
	case TokenNormal:
		return "Normal"
	case TokenIndex:
		return "Index"
	case TokenSeparator:
		return "Separator"
	case TokenVertexEnd:
		return "VertexEnd"
	case TokenLineEnd:
		return "LineEnd"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Token is a classified span of the input buffer.
// Text aliases the scanned buffer and must not be modified.
type Token struct {
	Kind  TokenKind
	Text  []byte
	Value float32 // parsed value of Position/Texel/Normal tokens
	Index int     // parsed value of Index tokens
	Line  int     // 1-based source line
}

type scanState uint8

const (
	stateNone scanState = iota
	stateVertex
	statePosition
	stateTexel
	stateNormal
	stateFace
	stateComment
	stateKeyword
	stateName
	stateSkip
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Scanner is a byte-level state machine over OBJ text. It classifies each
// line from its leading bytes and converts numeric fields in place, without
// splitting the buffer into line or field strings.
type Scanner struct {
	// Strict rejects exponent notation instead of splitting "1e-5" into
	// two numbers.
	Strict bool

	data []byte
	pos  int
	line int

	state      scanState
	start      int // start of the open token, -1 if none
	nameEnd    int
	nameKind   TokenKind
	index      int
	vertexOpen bool

	pending []Token
	head    int
	tok     Token
	err     error
	done    bool
}

// NewScanner returns a scanner over data.
func NewScanner(data []byte) *Scanner {
	return &Scanner{
		data:    bytes.TrimPrefix(data, utf8BOM),
		line:    1,
		start:   -1,
		pending: make([]Token, 0, 4),
	}
}

// Next advances to the next token. It returns false at the end of input or
// after a fatal error; check Err to tell them apart.
func (s *Scanner) Next() bool {
	for s.head >= len(s.pending) {
		if s.err != nil {
			return false
		}
		s.pending = s.pending[:0]
		s.head = 0
		if s.pos >= len(s.data) {
			if s.done {
				return false
			}
			// Flush a token left open by a missing trailing newline.
			s.done = true
			s.endLine(s.pos)
			continue
		}
		s.step(s.data[s.pos], s.pos)
		s.pos++
	}
	s.tok = s.pending[s.head]
	s.head++
	return true
}

// Token returns the most recent token produced by Next.
func (s *Scanner) Token() Token {
	return s.tok
}

// Err returns the first fatal error encountered, if any.
func (s *Scanner) Err() error {
	return s.err
}

func (s *Scanner) step(c byte, i int) {
	if c == '\n' || c == '\r' {
		s.endLine(i)
		if c == '\n' {
			s.line++
		}
		return
	}

	switch s.state {
	case stateNone:
		switch c {
		case '#':
			s.state = stateComment
			s.start = i + 1
		case 'v':
			s.state = stateVertex
		case 'f':
			if i+1 < len(s.data) && isBlank(s.data[i+1]) {
				s.state = stateFace
			} else {
				s.state = stateKeyword
				s.start = i
			}
		case ' ', '\t':
		default:
			s.state = stateKeyword
			s.start = i
		}

	case stateVertex:
		switch c {
		case ' ', '\t':
			s.state = statePosition
		case 't':
			s.state = stateTexel
		case 'n':
			s.state = stateNormal
		default:
			s.state = stateSkip
		}

	case statePosition, stateTexel, stateNormal:
		if isNumeric(c) {
			if s.start < 0 {
				s.start = i
			}
			return
		}
		if s.Strict && s.start >= 0 && (c == 'e' || c == 'E') {
			s.fail(fmt.Errorf("%w: exponent in %q", ErrBadNumber, s.data[s.start:i+1]))
			return
		}
		s.closeFloat(i)
		if c == '#' {
			s.emit(Token{Kind: TokenLineEnd})
			s.state = stateComment
			s.start = i + 1
		}

	case stateFace:
		switch {
		case c >= '0' && c <= '9':
			if s.start < 0 {
				s.start = i
				s.index = 0
			}
			s.index = s.index*10 + int(c-'0')
			if s.index > math.MaxInt32 {
				s.fail(fmt.Errorf("%w: index %q overflows", ErrBadNumber, s.data[s.start:i+1]))
			}
			s.vertexOpen = true
		case c == '/':
			s.closeIndex(i)
			s.emit(Token{Kind: TokenSeparator, Text: s.data[i : i+1]})
			s.vertexOpen = true
		case isBlank(c):
			s.closeIndex(i)
			s.closeVertex()
		case c == '#':
			s.closeIndex(i)
			s.closeVertex()
			s.emit(Token{Kind: TokenLineEnd})
			s.state = stateComment
			s.start = i + 1
		default:
			s.fail(fmt.Errorf("%w: unexpected byte %q", ErrMalformedFace, c))
		}

	case stateKeyword:
		if !isBlank(c) {
			return
		}
		keyword := s.data[s.start:i]
		s.start = -1
		switch string(keyword) {
		case "o":
			s.beginName(TokenObject)
		case "mtllib":
			s.beginName(TokenMaterialLib)
		case "usemtl":
			s.beginName(TokenUseMaterial)
		default:
			s.state = stateSkip
		}

	case stateName:
		if c == '#' {
			s.closeName()
			s.state = stateComment
			s.start = i + 1
			return
		}
		if !isBlank(c) {
			if s.start < 0 {
				s.start = i
			}
			s.nameEnd = i + 1
		}
	}
}

// endLine finalizes the current line at offset i and resets line state.
func (s *Scanner) endLine(i int) {
	switch s.state {
	case statePosition, stateTexel, stateNormal:
		s.closeFloat(i)
		s.emit(Token{Kind: TokenLineEnd})
	case stateFace:
		s.closeIndex(i)
		s.closeVertex()
		s.emit(Token{Kind: TokenLineEnd})
	case stateComment:
		s.emit(Token{Kind: TokenComment, Text: s.data[s.start:i]})
	case stateKeyword:
		if string(s.data[s.start:i]) == "o" {
			s.emit(Token{Kind: TokenObject})
		}
	case stateName:
		s.closeName()
	}

	s.state = stateNone
	s.start = -1
	s.vertexOpen = false
}

func (s *Scanner) beginName(kind TokenKind) {
	s.state = stateName
	s.nameKind = kind
	s.start = -1
}

func (s *Scanner) closeName() {
	var text []byte
	if s.start >= 0 {
		text = s.data[s.start:s.nameEnd]
	}
	s.emit(Token{Kind: s.nameKind, Text: text})
}

func (s *Scanner) closeFloat(i int) {
	if s.start < 0 {
		return
	}
	text := s.data[s.start:i]
	s.start = -1

	v, err := strconv.ParseFloat(string(text), 32)
	if err != nil {
		s.fail(fmt.Errorf("%w: %q", ErrBadNumber, text))
		return
	}

	var kind TokenKind
	switch s.state {
	case statePosition:
		kind = TokenPosition
	case stateTexel:
		kind = TokenTexel
	default:
		kind = TokenNormal
	}
	s.emit(Token{Kind: kind, Text: text, Value: float32(v)})
}

func (s *Scanner) closeIndex(i int) {
	if s.start < 0 {
		return
	}
	s.emit(Token{Kind: TokenIndex, Text: s.data[s.start:i], Index: s.index})
	s.start = -1
}

func (s *Scanner) closeVertex() {
	if s.vertexOpen {
		s.emit(Token{Kind: TokenVertexEnd})
		s.vertexOpen = false
	}
}

func (s *Scanner) emit(t Token) {
	t.Line = s.line
	s.pending = append(s.pending, t)
}

func (s *Scanner) fail(err error) {
	if s.err == nil {
		s.err = lineError(s.line, err)
	}
	s.done = true
	s.pos = len(s.data)
}

func isNumeric(c byte) bool {
	return (c >= '0' && c <= '9') || c == '.' || c == '-'
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}
