package pipeline

import (
	"errors"
	"fmt"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
)

var ignoreCompiled = cmpopts.IgnoreUnexported(Regex{}, PushToStack{}, PopFromStack{})

// str encodes a length-prefixed string field.
func str(s string) string {
	return fmt.Sprintf("%04d%s", utf8.RuneCountInString(s), s)
}

const testGUID = "{6a2a5f3e-4c31-4f0e-9d4b-2f1d0c5b9e71}"

var testID = uuid.MustParse("6a2a5f3e-4c31-4f0e-9d4b-2f1d0c5b9e71")

func TestDecodeElements(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    Element
	}{
		{"follow symlink", "k", &FollowSymlink{}},
		{"quotes", `"`, &Quotes{}},
		{"optional quotes", "q", &OptionalQuotes{}},
		{"email links", "<", &EmailLinks{}},
		{"encode whitespace", "s", &EncodeURIWhitespace{}},
		{"encode chars", "%", &EncodeURIChars{}},
		{"backslashes to forward", `\`, &BackslashesToForward{}},
		{"forward to backslashes", "/", &ForwardToBackslashes{}},
		{"remove ext", ".", &RemoveFileExt{}},
		{"find replace", "?" + str("Bob") + str("Alice"), &FindReplace{Old: "Bob", New: "Alice"}},
		{"find replace empty", "?" + str("x") + str(""), &FindReplace{Old: "x"}},
		{"regex", "^0001" + str(`_(\d+)\.csv$`) + str("-$1.csv") + "1", &Regex{Pattern: `_(\d+)\.csv$`, Format: "-$1.csv", IgnoreCase: true}},
		{"regex version 0", "^0000" + str("a") + str("b") + "0", &Regex{Pattern: "a", Format: "b"}},
		{"unexpand", "e", &UnexpandEnvStrings{}},
		{"drive label", ":", &InjectDriveLabel{}},
		{"copy n parts", "n00031", &CopyNPathParts{NumParts: 3, First: true}},
		{"apply plugin", "{" + testGUID, &ApplyPlugin{ID: testID}},
		{"apply pipeline plugin", "}" + testGUID, &ApplyPipelinePlugin{ID: testID}},
		{"push entire", "u0001", &PushToStack{Method: PushEntire}},
		{"push range", "u000200020010", &PushToStack{Method: PushRange, Begin: 2, End: 10}},
		{"push regex", "u0003" + str(`(\w+)`) + "0" + "0001", &PushToStack{Method: PushRegex, Pattern: `(\w+)`, Group: 1}},
		{"push fixed", "u0004" + str("C:"), &PushToStack{Method: PushFixed, Value: "C:"}},
		{"pop entire", "o0001", &PopFromStack{Location: PopEntire}},
		{"pop start", "o0002", &PopFromStack{Location: PopStart}},
		{"pop end", "o0003", &PopFromStack{Location: PopEnd}},
		{"pop range", "o000400000002", &PopFromStack{Location: PopRange, Begin: 0, End: 2}},
		{"pop regex", "o0005" + str("^C:") + "1", &PopFromStack{Location: PopRegex, Pattern: "^C:", IgnoreCase: true}},
		{"pop nowhere", "o0006", &PopFromStack{Location: PopNowhere}},
		{"swap", "w", &SwapStackValues{}},
		{"duplicate", "d", &DuplicateStackValue{}},
		{"separator", "," + str(";"), &PathsSeparator{Separator: ";"}},
		{"recursive", "v", &RecursiveCopy{}},
		{"executable", "x" + str(`C:\bin\tool.exe`), &Executable{Path: `C:\bin\tool.exe`}},
		{"executable filelist", "f" + str("tool"), &ExecutableWithFilelist{Path: "tool"}},
		{"command line", ">" + str("tool") + str("-v %FILES%") + "1", &CommandLine{Executable: "tool", Arguments: "-v %FILES%", UseFilelist: true}},
		{"display", "!10", &DisplayForSelection{ShowForFiles: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode("01" + tt.payload)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff([]Element{tt.want}, got, ignoreCompiled); diff != "" {
				t.Errorf("Decode mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	elements := []Element{
		&FollowSymlink{},
		&FindReplace{Old: "Bob", New: "Ålice"},
		&Regex{Pattern: `(\d+)`, Format: "<$1>"},
		&CopyNPathParts{NumParts: 2},
		&ApplyPlugin{ID: testID},
		&ApplyPipelinePlugin{ID: testID},
		&PushToStack{Method: PushRegex, Pattern: "a", IgnoreCase: true, Group: 2},
		&PushToStack{Method: PushRange, Begin: 1, End: 3},
		&PushToStack{Method: PushFixed, Value: "v"},
		&PopFromStack{Location: PopRange, Begin: 4, End: 5},
		&PopFromStack{Location: PopRegex, Pattern: "b"},
		&PopFromStack{Location: PopNowhere},
		&SwapStackValues{},
		&PathsSeparator{Separator: ", "},
		&CommandLine{Executable: "a", Arguments: "b", UseFilelist: true},
		&DisplayForSelection{ShowForFolders: true},
	}
	encoded, err := Encode(elements)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode(%q): %v", encoded, err)
	}
	if diff := cmp.Diff(elements, got, ignoreCompiled); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	again, err := New(got...).Encode()
	if err != nil {
		t.Fatal(err)
	}
	if again != encoded {
		t.Errorf("re-encoding differs:\n%q\n%q", encoded, again)
	}
}

func TestDecodeEmpty(t *testing.T) {
	got, err := Decode("00")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("expected no elements, got %d", len(got))
	}
}

func TestDecodeUnknownOpcode(t *testing.T) {
	_, err := Decode("01Z")
	if !errors.Is(err, ErrUnsupportedElement) {
		t.Fatalf("expected unsupported element, got %v", err)
	}
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected *DecodeError, got %T", err)
	}
	if de.Opcode != 'Z' || de.Offset != 2 {
		t.Errorf("got opcode %q offset %d", de.Opcode, de.Offset)
	}
}

func TestDecodeUnsupportedVersions(t *testing.T) {
	for _, encoded := range []string{
		"01^0002" + str("a") + str("b") + "0",
		"01u0009",
		"01o0007",
	} {
		if _, err := Decode(encoded); !errors.Is(err, ErrUnsupportedElement) {
			t.Errorf("Decode(%q) error = %v, want unsupported element", encoded, err)
		}
	}
}

func TestDecodeInvalidBoolean(t *testing.T) {
	_, err := Decode("01!1x")
	if !errors.Is(err, ErrInvalidBoolean) {
		t.Fatalf("expected invalid boolean, got %v", err)
	}
}

func TestDecodeTruncated(t *testing.T) {
	full := []string{
		"02" + "?" + str("Bob") + str("Alice") + "q",
		"01^0001" + str("x") + str("y") + "0",
		"01{" + testGUID,
		"01u0003" + str("a") + "1" + "0002",
		"01o000400010002",
		"01>" + str("a") + str("b") + "1",
		"03kqd",
	}
	for _, encoded := range full {
		if _, err := Decode(encoded); err != nil {
			t.Fatalf("Decode(%q): %v", encoded, err)
		}
		runes := []rune(encoded)
		for n := 0; n < len(runes); n++ {
			prefix := string(runes[:n])
			if _, err := Decode(prefix); !errors.Is(err, ErrTruncated) {
				t.Errorf("Decode(%q) error = %v, want truncated", prefix, err)
			}
		}
	}
}

func TestDecodeIgnoresTrailingData(t *testing.T) {
	got, err := Decode("01qextra")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("expected 1 element, got %d", len(got))
	}
}

func TestDecodeOpcodesAreIsolated(t *testing.T) {
	// A duplicate followed by a separator must decode as two elements.
	got, err := Decode("02d," + str("|"))
	if err != nil {
		t.Fatal(err)
	}
	want := []Element{&DuplicateStackValue{}, &PathsSeparator{Separator: "|"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeRejectsPaddedCount(t *testing.T) {
	for _, encoded := range []string{"1 q", " 1q"} {
		_, err := Decode(encoded)
		if !errors.Is(err, ErrMalformed) {
			t.Errorf("Decode(%q) error = %v, want malformed", encoded, err)
		}
	}
}
