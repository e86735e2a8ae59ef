package wavefront

import (
	"errors"
	"fmt"
)

// Fatal parse errors. Any of these aborts the parse and no mesh is returned.
var (
	ErrBadNumber            = errors.New("malformed number")
	ErrMalformedFace        = errors.New("malformed face record")
	ErrUnknownFaceLayout    = errors.New("cannot determine face element layout")
	ErrQuadFace             = errors.New("quad faces are not supported")
	ErrUnsupportedPrimitive = errors.New("unsupported number of vertices per face")
	ErrNonUniformFace       = errors.New("face record differs from the first face")
	ErrIndexOutOfRange      = errors.New("vertex index out of range")
	ErrNoFaces              = errors.New("no face records")
)

// ParseError records the source line a fatal error was found on.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func lineError(line int, err error) error {
	return &ParseError{Line: line, Err: err}
}
