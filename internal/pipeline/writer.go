package pipeline

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Writer builds an encoded elements stream. The first error sticks; later
// writes are ignored.
type Writer struct {
	sb  strings.Builder
	err error
}

func (w *Writer) WriteElementCount(n int) {
	if w.err != nil {
		return
	}
	if n < 0 || n > 99 {
		w.err = fmt.Errorf("pipeline holds %d elements, at most 99 can be encoded", n)
		return
	}
	fmt.Fprintf(&w.sb, "%02d", n)
}

func (w *Writer) WriteOpcode(op rune) {
	if w.err == nil {
		w.sb.WriteRune(op)
	}
}

func (w *Writer) WriteInt32(n int32) {
	if w.err != nil {
		return
	}
	if n < -999 || n > 9999 {
		w.err = fmt.Errorf("integer %d does not fit in four characters", n)
		return
	}
	fmt.Fprintf(&w.sb, "%04d", n)
}

func (w *Writer) WriteString(s string) {
	n := utf8.RuneCountInString(s)
	if n > 9999 {
		if w.err == nil {
			w.err = fmt.Errorf("string of %d characters is too long to encode", n)
		}
		return
	}
	w.WriteInt32(int32(n))
	if w.err == nil {
		w.sb.WriteString(s)
	}
}

func (w *Writer) WriteBool(b bool) {
	if w.err != nil {
		return
	}
	if b {
		w.sb.WriteByte('1')
	} else {
		w.sb.WriteByte('0')
	}
}

func (w *Writer) WriteGUID(id uuid.UUID) {
	if w.err == nil {
		w.sb.WriteString(braced(id))
	}
}

// Result returns the encoded stream, or the first error encountered.
func (w *Writer) Result() (string, error) {
	if w.err != nil {
		return "", w.err
	}
	return w.sb.String(), nil
}

func braced(id uuid.UUID) string {
	return "{" + id.String() + "}"
}
