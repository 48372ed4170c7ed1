package pipeline

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Decode failures. Every error returned by Decode wraps exactly one of these.
var (
	ErrTruncated          = errors.New("encoded pipeline is truncated")
	ErrInvalidBoolean     = errors.New("invalid boolean value")
	ErrMalformed          = errors.New("malformed value")
	ErrUnsupportedElement = errors.New("unsupported pipeline element (pipeline may come from a newer version)")
)

// Validation failures.
var (
	ErrLoopDetected      = errors.New("loop detected in pipeline plugins")
	ErrPossibleDowngrade = errors.New("referenced pipeline cannot be decoded (possible downgrade)")
)

// DecodeError reports where in the encoded stream decoding stopped.
type DecodeError struct {
	Offset int  // character offset at which the failing read started
	Opcode rune // opcode of the element being decoded, 0 while reading the count
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Opcode == 0 {
		return fmt.Sprintf("decode pipeline at offset %d: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("decode pipeline element %q at offset %d: %v", e.Opcode, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// InvalidPipelineError is returned by validation.
type InvalidPipelineError struct {
	Plugin uuid.UUID // plugin whose reference triggered the failure
	Err    error
}

func (e *InvalidPipelineError) Error() string {
	return fmt.Sprintf("invalid pipeline: plugin %s: %v", braced(e.Plugin), e.Err)
}

func (e *InvalidPipelineError) Unwrap() error { return e.Err }
