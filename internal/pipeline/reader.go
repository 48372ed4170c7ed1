package pipeline

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// guidChars is the width of a braced GUID: {xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx}.
const guidChars = 38

// Reader is a forward-only cursor over an encoded elements stream.
type Reader struct {
	data []rune
	pos  int
}

// NewReader returns a reader positioned at the start of s.
func NewReader(s string) *Reader {
	return &Reader{data: []rune(s)}
}

// Offset returns the number of characters consumed so far.
func (r *Reader) Offset() int { return r.pos }

// Remaining returns the number of unread characters.
func (r *Reader) Remaining() int { return len(r.data) - r.pos }

// ReadChars returns the next n characters.
func (r *Reader) ReadChars(n int) (string, error) {
	if n < 0 {
		return "", fmt.Errorf("negative length %d: %w", n, ErrMalformed)
	}
	if r.Remaining() < n {
		return "", fmt.Errorf("need %d characters, have %d: %w", n, r.Remaining(), ErrTruncated)
	}
	s := string(r.data[r.pos : r.pos+n])
	r.pos += n
	return s, nil
}

// ReadElementCount reads the two-digit element count that opens a stream.
// Unlike integer fields, the count must not be padded.
func (r *Reader) ReadElementCount() (int, error) {
	s, err := r.ReadChars(2)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("element count %q: %w", s, ErrMalformed)
	}
	return int(n), nil
}

// ReadInt32 reads a four-character decimal field. Padding spaces are ignored.
func (r *Reader) ReadInt32() (int32, error) {
	s, err := r.ReadChars(4)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("integer %q: %w", s, ErrMalformed)
	}
	return int32(n), nil
}

// ReadString reads a length-prefixed string.
func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadInt32()
	if err != nil {
		return "", err
	}
	return r.ReadChars(int(n))
}

// ReadBool reads a single '0' or '1'.
func (r *Reader) ReadBool() (bool, error) {
	s, err := r.ReadChars(1)
	if err != nil {
		return false, err
	}
	switch s {
	case "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, fmt.Errorf("%q: %w", s, ErrInvalidBoolean)
	}
}

// ReadGUID reads a braced GUID. Encoders that reserve a slot for the C string
// terminator leave a NUL after the closing brace; it is skipped.
func (r *Reader) ReadGUID() (uuid.UUID, error) {
	s, err := r.ReadChars(guidChars)
	if err != nil {
		return uuid.Nil, err
	}
	if s[0] != '{' || s[len(s)-1] != '}' {
		return uuid.Nil, fmt.Errorf("guid %q: %w", s, ErrMalformed)
	}
	id, err := uuid.Parse(s[1 : len(s)-1])
	if err != nil {
		return uuid.Nil, fmt.Errorf("guid %q: %w", s, ErrMalformed)
	}
	if r.Remaining() > 0 && r.data[r.pos] == 0 {
		r.pos++
	}
	return id, nil
}
