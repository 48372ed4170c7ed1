package pipeline

import (
	"fmt"

	"github.com/dlclark/regexp2"
)

// PushMethod selects the value PushToStack pushes.
type PushMethod int32

const (
	PushEntire PushMethod = iota + 1
	PushRange
	PushRegex
	PushFixed
)

func (m PushMethod) String() string {
	switch m {
	case PushEntire:
		return "entire"
	case PushRange:
		return "range"
	case PushRegex:
		return "regex"
	case PushFixed:
		return "fixed"
	default:
		return fmt.Sprintf("push(%d)", int32(m))
	}
}

// PopLocation selects where PopFromStack puts the popped value.
type PopLocation int32

const (
	PopEntire PopLocation = iota + 1
	PopStart
	PopEnd
	PopRange
	PopRegex
	PopNowhere
)

func (l PopLocation) String() string {
	switch l {
	case PopEntire:
		return "entire"
	case PopStart:
		return "start"
	case PopEnd:
		return "end"
	case PopRange:
		return "range"
	case PopRegex:
		return "regex"
	case PopNowhere:
		return "nowhere"
	default:
		return fmt.Sprintf("pop(%d)", int32(l))
	}
}

// clampRange bounds [begin,end) to a sequence of length n.
func clampRange(begin, end, n int) (int, int) {
	begin = min(max(begin, 0), n)
	end = min(max(end, begin), n)
	return begin, end
}

// PushToStack pushes a value computed from the current path. The path is not
// modified.
type PushToStack struct {
	Method     PushMethod `yaml:"method"`
	Begin      int        `yaml:"begin,omitempty"`       // PushRange
	End        int        `yaml:"end,omitempty"`         // PushRange
	Pattern    string     `yaml:"pattern,omitempty"`     // PushRegex
	IgnoreCase bool       `yaml:"ignore_case,omitempty"` // PushRegex
	Group      int        `yaml:"group,omitempty"`       // PushRegex; 0 is the whole match
	Value      string     `yaml:"value,omitempty"`       // PushFixed

	compiled lazyRegexp
}

func (*PushToStack) Opcode() rune { return OpPushToStack }

func (e *PushToStack) encodePayload(w *Writer) {
	w.WriteInt32(int32(e.Method))
	switch e.Method {
	case PushRange:
		w.WriteInt32(int32(e.Begin))
		w.WriteInt32(int32(e.End))
	case PushRegex:
		w.WriteString(e.Pattern)
		w.WriteBool(e.IgnoreCase)
		w.WriteInt32(int32(e.Group))
	case PushFixed:
		w.WriteString(e.Value)
	}
}

func (e *PushToStack) modifyPathWithStack(path string, stack *Stack, _ Host) string {
	stack.Push(e.value(path))
	return path
}

func (e *PushToStack) value(path string) string {
	switch e.Method {
	case PushRange:
		runes := []rune(path)
		begin, end := clampRange(e.Begin, e.End, len(runes))
		return string(runes[begin:end])
	case PushRegex:
		re, err := e.compiled.get(e.Pattern, e.IgnoreCase)
		if err != nil {
			return ""
		}
		m := firstMatch(re, path)
		if m == nil {
			return ""
		}
		if e.Group > 0 {
			if g := m.GroupByNumber(e.Group); g != nil {
				return g.String()
			}
		}
		return m.String()
	case PushFixed:
		return e.Value
	default:
		return path
	}
}

func (e *PushToStack) enabledFor(string, string, Host) bool {
	if e.Method != PushRegex {
		return true
	}
	_, err := e.compiled.get(e.Pattern, e.IgnoreCase)
	return err == nil
}

// PopFromStack pops a value and applies it to the path. An empty stack makes
// it a no-op.
type PopFromStack struct {
	Location   PopLocation `yaml:"location"`
	Begin      int         `yaml:"begin,omitempty"`       // PopRange
	End        int         `yaml:"end,omitempty"`         // PopRange
	Pattern    string      `yaml:"pattern,omitempty"`     // PopRegex
	IgnoreCase bool        `yaml:"ignore_case,omitempty"` // PopRegex

	compiled lazyRegexp
}

func (*PopFromStack) Opcode() rune { return OpPopFromStack }

func (e *PopFromStack) encodePayload(w *Writer) {
	w.WriteInt32(int32(e.Location))
	switch e.Location {
	case PopRange:
		w.WriteInt32(int32(e.Begin))
		w.WriteInt32(int32(e.End))
	case PopRegex:
		w.WriteString(e.Pattern)
		w.WriteBool(e.IgnoreCase)
	}
}

func (e *PopFromStack) modifyPathWithStack(path string, stack *Stack, _ Host) string {
	v, ok := stack.Pop()
	if !ok {
		return path
	}
	switch e.Location {
	case PopEntire:
		return v
	case PopStart:
		return v + path
	case PopEnd:
		return path + v
	case PopRange:
		runes := []rune(path)
		begin, end := clampRange(e.Begin, e.End, len(runes))
		return string(runes[:begin]) + v + string(runes[end:])
	case PopRegex:
		re, err := e.compiled.get(e.Pattern, e.IgnoreCase)
		if err != nil {
			return path
		}
		return replaceFirst(re, path, v)
	default:
		return path
	}
}

func (e *PopFromStack) enabledFor(string, string, Host) bool {
	if e.Location != PopRegex {
		return true
	}
	_, err := e.compiled.get(e.Pattern, e.IgnoreCase)
	return err == nil
}

// replaceFirst replaces the first match of re in s with the literal v.
func replaceFirst(re *regexp2.Regexp, s, v string) string {
	m := firstMatch(re, s)
	if m == nil {
		return s
	}
	runes := []rune(s)
	return string(runes[:m.Index]) + v + string(runes[m.Index+m.Length:])
}

// SwapStackValues exchanges the two top values. It needs at least two values.
type SwapStackValues struct{}

func (*SwapStackValues) Opcode() rune { return OpSwapStackValues }

func (*SwapStackValues) modifyPathWithStack(path string, stack *Stack, _ Host) string {
	if stack.Len() < 2 {
		return path
	}
	top, _ := stack.Pop()
	below, _ := stack.Pop()
	stack.Push(top)
	stack.Push(below)
	return path
}

// DuplicateStackValue pushes a copy of the top value.
type DuplicateStackValue struct{}

func (*DuplicateStackValue) Opcode() rune { return OpDuplicateStackValue }

func (*DuplicateStackValue) modifyPathWithStack(path string, stack *Stack, _ Host) string {
	if top, ok := stack.Top(); ok {
		stack.Push(top)
	}
	return path
}
