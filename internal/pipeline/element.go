package pipeline

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Opcodes identifying each element in the encoded stream.
const (
	OpFollowSymlink          = 'k'
	OpQuotes                 = '"'
	OpOptionalQuotes         = 'q'
	OpEmailLinks             = '<'
	OpEncodeURIWhitespace    = 's'
	OpEncodeURIChars         = '%'
	OpBackslashesToForward   = '\\'
	OpForwardToBackslashes   = '/'
	OpRemoveFileExt          = '.'
	OpFindReplace            = '?'
	OpRegex                  = '^'
	OpUnexpandEnvStrings     = 'e'
	OpInjectDriveLabel       = ':'
	OpCopyNPathParts         = 'n'
	OpApplyPlugin            = '{'
	OpApplyPipelinePlugin    = '}'
	OpPushToStack            = 'u'
	OpPopFromStack           = 'o'
	OpSwapStackValues        = 'w'
	OpDuplicateStackValue    = 'd'
	OpPathsSeparator         = ','
	OpRecursiveCopy          = 'v'
	OpExecutable             = 'x'
	OpExecutableWithFilelist = 'f'
	OpCommandLine            = '>'
	OpDisplayForSelection    = '!'
)

// DriveLabelPlaceholder is replaced by InjectDriveLabel.
const DriveLabelPlaceholder = "%DRIVELABEL%"

// Element is one step of a pipeline. Decode only produces the types
// declared in this package.
type Element interface {
	Opcode() rune
}

// Optional behaviours. An element implements the ones it needs; Pipeline
// supplies the defaults (no payload, no-op, enabled) for the rest.
type (
	payloadEncoder interface {
		encodePayload(w *Writer)
	}
	pathModifier interface {
		modifyPath(path string, host Host) string
	}
	stackModifier interface {
		modifyPathWithStack(path string, stack *Stack, host Host) string
	}
	optionsModifier interface {
		modifyOptions(opts *Options)
	}
	validator interface {
		validate(host Host, seen map[uuid.UUID]struct{}) error
	}
	enabler interface {
		enabledFor(parentPath, file string, host Host) bool
	}
)

// FollowSymlink replaces the path with its resolved target.
type FollowSymlink struct{}

func (*FollowSymlink) Opcode() rune { return OpFollowSymlink }

func (*FollowSymlink) modifyPath(path string, host Host) string {
	target, err := host.system().ResolveSymlinks(path)
	if err != nil || target == "" {
		return path
	}
	return target
}

// Quotes surrounds the path with double quotes.
type Quotes struct{}

func (*Quotes) Opcode() rune { return OpQuotes }

func (*Quotes) modifyPath(path string, _ Host) string {
	return `"` + path + `"`
}

// OptionalQuotes surrounds the path with double quotes if it contains whitespace.
type OptionalQuotes struct{}

func (*OptionalQuotes) Opcode() rune { return OpOptionalQuotes }

func (*OptionalQuotes) modifyPath(path string, _ Host) string {
	if strings.IndexFunc(path, unicode.IsSpace) < 0 {
		return path
	}
	return `"` + path + `"`
}

// EmailLinks surrounds the path with angle brackets.
type EmailLinks struct{}

func (*EmailLinks) Opcode() rune { return OpEmailLinks }

func (*EmailLinks) modifyPath(path string, _ Host) string {
	return "<" + path + ">"
}

// EncodeURIWhitespace percent-encodes whitespace.
type EncodeURIWhitespace struct{}

func (*EncodeURIWhitespace) Opcode() rune { return OpEncodeURIWhitespace }

func (*EncodeURIWhitespace) modifyPath(path string, _ Host) string {
	return percentEncode(path, unicode.IsSpace)
}

// EncodeURIChars percent-encodes every character that cannot appear in a URI.
// Path separators are left alone.
type EncodeURIChars struct{}

func (*EncodeURIChars) Opcode() rune { return OpEncodeURIChars }

func (*EncodeURIChars) modifyPath(path string, _ Host) string {
	return percentEncode(path, invalidURIChar)
}

func invalidURIChar(r rune) bool {
	if r >= utf8.RuneSelf || r <= ' ' || r == 0x7f {
		return true
	}
	return strings.ContainsRune("\"#%<>?[]^`{|}", r)
}

func percentEncode(s string, encode func(rune) bool) string {
	const hex = "0123456789ABCDEF"
	var sb strings.Builder
	var buf [utf8.UTFMax]byte
	for _, r := range s {
		if !encode(r) {
			sb.WriteRune(r)
			continue
		}
		n := utf8.EncodeRune(buf[:], r)
		for _, b := range buf[:n] {
			sb.WriteByte('%')
			sb.WriteByte(hex[b>>4])
			sb.WriteByte(hex[b&0x0f])
		}
	}
	return sb.String()
}

// BackslashesToForward turns every backslash into a forward slash.
type BackslashesToForward struct{}

func (*BackslashesToForward) Opcode() rune { return OpBackslashesToForward }

func (*BackslashesToForward) modifyPath(path string, _ Host) string {
	return strings.ReplaceAll(path, `\`, "/")
}

// ForwardToBackslashes turns every forward slash into a backslash.
type ForwardToBackslashes struct{}

func (*ForwardToBackslashes) Opcode() rune { return OpForwardToBackslashes }

func (*ForwardToBackslashes) modifyPath(path string, _ Host) string {
	return strings.ReplaceAll(path, "/", `\`)
}

// RemoveFileExt strips the extension of the last path segment.
type RemoveFileExt struct{}

func (*RemoveFileExt) Opcode() rune { return OpRemoveFileExt }

func (*RemoveFileExt) modifyPath(path string, _ Host) string {
	start := strings.LastIndexAny(path, `\/`) + 1
	if dot := strings.LastIndexByte(path[start:], '.'); dot >= 0 {
		return path[:start+dot]
	}
	return path
}

// FindReplace replaces every occurrence of Old with New.
type FindReplace struct {
	Old string `yaml:"old"`
	New string `yaml:"new"`
}

func (*FindReplace) Opcode() rune { return OpFindReplace }

func (e *FindReplace) encodePayload(w *Writer) {
	w.WriteString(e.Old)
	w.WriteString(e.New)
}

func (e *FindReplace) modifyPath(path string, _ Host) string {
	if e.Old == "" {
		return path
	}
	return strings.ReplaceAll(path, e.Old, e.New)
}

// UnexpandEnvStrings replaces a leading directory with the environment
// variable that holds it, e.g. C:\Users\Bob becomes %USERPROFILE%.
type UnexpandEnvStrings struct{}

func (*UnexpandEnvStrings) Opcode() rune { return OpUnexpandEnvStrings }

func (*UnexpandEnvStrings) modifyPath(path string, host Host) string {
	if s, ok := host.system().UnexpandEnvStrings(path); ok {
		return s
	}
	return path
}

// InjectDriveLabel replaces DriveLabelPlaceholder with the volume label.
type InjectDriveLabel struct{}

func (*InjectDriveLabel) Opcode() rune { return OpInjectDriveLabel }

func (*InjectDriveLabel) modifyPath(path string, host Host) string {
	if !strings.Contains(path, DriveLabelPlaceholder) {
		return path
	}
	label, err := host.system().VolumeLabel(strings.ReplaceAll(path, DriveLabelPlaceholder, ""))
	if err != nil {
		return path
	}
	return strings.ReplaceAll(path, DriveLabelPlaceholder, label)
}

// CopyNPathParts keeps the first or last NumParts segments of the path.
type CopyNPathParts struct {
	NumParts int  `yaml:"num_parts"`
	First    bool `yaml:"first"`
}

func (*CopyNPathParts) Opcode() rune { return OpCopyNPathParts }

func (e *CopyNPathParts) encodePayload(w *Writer) {
	w.WriteInt32(int32(e.NumParts))
	w.WriteBool(e.First)
}

func (e *CopyNPathParts) modifyPath(path string, _ Host) string {
	if e.NumParts < 1 {
		return path
	}
	var seps []int
	for i := 0; i < len(path); i++ {
		if path[i] == '\\' || path[i] == '/' {
			seps = append(seps, i)
		}
	}
	if e.NumParts > len(seps) {
		return path
	}
	if e.First {
		return path[:seps[e.NumParts-1]]
	}
	return path[seps[len(seps)-e.NumParts]+1:]
}
