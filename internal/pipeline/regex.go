package pipeline

import (
	"sync"

	"github.com/dlclark/regexp2"
)

// RegexVersion is the newest Regex element payload version this package decodes.
const RegexVersion = 1

// lazyRegexp compiles an ECMAScript pattern on first use and remembers the
// outcome, including a compilation failure.
type lazyRegexp struct {
	once sync.Once
	re   *regexp2.Regexp
	err  error
}

func (l *lazyRegexp) get(pattern string, ignoreCase bool) (*regexp2.Regexp, error) {
	l.once.Do(func() {
		opts := regexp2.RegexOptions(regexp2.ECMAScript)
		if ignoreCase {
			opts |= regexp2.IgnoreCase
		}
		l.re, l.err = regexp2.Compile(pattern, opts)
	})
	return l.re, l.err
}

// firstMatch returns the first match of re in s, or nil.
func firstMatch(re *regexp2.Regexp, s string) *regexp2.Match {
	m, err := re.FindStringMatch(s)
	if err != nil {
		return nil
	}
	return m
}

// Regex replaces every match of Pattern with Format. Format may refer to
// capture groups with $1-style tokens. An invalid pattern disables the element.
type Regex struct {
	Pattern    string `yaml:"pattern"`
	Format     string `yaml:"format"`
	IgnoreCase bool   `yaml:"ignore_case"`

	compiled lazyRegexp
}

func (*Regex) Opcode() rune { return OpRegex }

func (e *Regex) encodePayload(w *Writer) {
	w.WriteInt32(RegexVersion)
	w.WriteString(e.Pattern)
	w.WriteString(e.Format)
	w.WriteBool(e.IgnoreCase)
}

// Err returns the pattern compilation error, if any.
func (e *Regex) Err() error {
	_, err := e.compiled.get(e.Pattern, e.IgnoreCase)
	return err
}

func (e *Regex) modifyPath(path string, _ Host) string {
	re, err := e.compiled.get(e.Pattern, e.IgnoreCase)
	if err != nil {
		return path
	}
	out, err := re.Replace(path, e.Format, -1, -1)
	if err != nil {
		return path
	}
	return out
}

func (e *Regex) enabledFor(string, string, Host) bool {
	return e.Err() == nil
}
