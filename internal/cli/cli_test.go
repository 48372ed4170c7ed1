package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const testConfig = `
log:
  level: none
plugins:
  - id: "{6a2a5f3e-4c31-4f0e-9d4b-2f1d0c5b9e71}"
    description: Quoted
    elements: '02",0001;'
  - id: 7b3b6f4f-5d42-4f1f-8e5c-3f2e1d6c0f82
    description: Loop
    elements: "01}{7b3b6f4f-5d42-4f1f-8e5c-3f2e1d6c0f82}"
  - id: 8c4c7a5a-6e53-4a2a-9f6d-4a3f2e7d1a93
    description: Upper
    script: |
      def transform(path):
          return path.upper()
`

type result struct {
	code   int
	stdout string
	stderr string
}

func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o644))

	var stdout, stderr bytes.Buffer
	args = append([]string{"--config", path}, args...)
	code := Execute(context.Background(), "1.2.3", args, strings.NewReader(stdin), &stdout, &stderr)
	return result{code, stdout.String(), stderr.String()}
}

func TestVersion(t *testing.T) {
	res := run(t, "", "version")
	require.Equal(t, 0, res.code)
	require.Equal(t, "pathcopy 1.2.3\n", res.stdout)
}

func TestCopy(t *testing.T) {
	res := run(t, "", "copy", "Quoted", "a", "b")
	require.Equal(t, 0, res.code, res.stderr)
	require.Equal(t, "\"a\";\"b\"\n", res.stdout)

	res = run(t, "", "copy", "unix path", `C:\x\y`)
	require.Equal(t, 0, res.code, res.stderr)
	require.Equal(t, "C:/x/y\n", res.stdout)

	res = run(t, "", "copy", "upper", "abc")
	require.Equal(t, 0, res.code, res.stderr)
	require.Equal(t, "ABC\n", res.stdout)
}

func TestCopyFromStdin(t *testing.T) {
	res := run(t, "a\r\n\nb\n", "--separator", "|", "copy", "Name")
	require.Equal(t, 0, res.code, res.stderr)
	require.Equal(t, "a|b\n", res.stdout)
}

func TestCopyUnknownPlugin(t *testing.T) {
	res := run(t, "", "copy", "nope", "a")
	require.Equal(t, 1, res.code)
	require.Contains(t, res.stderr, "pathcopy: unknown plugin")
}

func TestCopyInvalidPipelineShowsError(t *testing.T) {
	res := run(t, "", "copy", "Loop", "a")
	require.Equal(t, 0, res.code, res.stderr)
	require.Contains(t, res.stdout, "loop")
}

func TestCopyVisibleOnly(t *testing.T) {
	res := run(t, "", "copy", "--visible-only", "Loop", "a")
	require.Equal(t, 0, res.code, res.stderr)
	require.Empty(t, res.stdout)
}

func TestList(t *testing.T) {
	res := run(t, "", "list")
	require.Equal(t, 0, res.code, res.stderr)
	lines := strings.Split(strings.TrimSpace(res.stdout), "\n")
	require.Len(t, lines, 12)
	require.Contains(t, res.stdout, "Loop (invalid)")

	res = run(t, "", "list", "--kind", "script")
	require.Equal(t, 0, res.code, res.stderr)
	require.Equal(t, "8c4c7a5a-6e53-4a2a-9f6d-4a3f2e7d1a93  script    Upper\n", res.stdout)

	res = run(t, "", "list", "--kind", "bogus")
	require.Equal(t, 1, res.code)
}

func TestDecode(t *testing.T) {
	res := run(t, "", "decode", `03"?0001a0001b,0001;`)
	require.Equal(t, 0, res.code, res.stderr)
	require.Contains(t, res.stdout, "name: quotes")
	require.Contains(t, res.stdout, "name: find_replace")
	require.Contains(t, res.stdout, "old: a")
	require.Contains(t, res.stdout, "separator: ;")

	res = run(t, "", "decode", "--canonical", `02"?   1a   1b`)
	require.Equal(t, 0, res.code, res.stderr)
	require.Equal(t, "02\"?0001a0001b\n", res.stdout)

	res = run(t, "", "decode", "--canonical", "--plugin", "quoted")
	require.Equal(t, 0, res.code, res.stderr)
	require.Equal(t, "02\",0001;\n", res.stdout)

	res = run(t, "", "decode", "--plugin", "Name")
	require.Equal(t, 1, res.code)
	require.Contains(t, res.stderr, "not a pipeline plugin")

	res = run(t, "", "decode", "01Z")
	require.Equal(t, 1, res.code)

	res = run(t, "", "decode")
	require.Equal(t, 1, res.code)
}

func TestValidate(t *testing.T) {
	res := run(t, "", "validate", "Quoted", "Upper")
	require.Equal(t, 0, res.code, res.stderr)
	require.Contains(t, res.stdout, "ok   6a2a5f3e-4c31-4f0e-9d4b-2f1d0c5b9e71 Quoted")

	res = run(t, "", "validate")
	require.Equal(t, 1, res.code)
	require.Contains(t, res.stdout, "FAIL 7b3b6f4f-5d42-4f1f-8e5c-3f2e1d6c0f82 Loop")
	require.Contains(t, res.stderr, "invalid plugins found: 1")
}

func TestCopyLaunchesExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses echo")
	}
	encoded := "01x" + "0004echo"
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: none
plugins:
  - id: 9d5d8b6b-7f64-4b3b-8a7e-5b4a3f8e2b04
    description: Echo
    elements: "`+encoded+`"
`), 0o644))

	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), "test",
		[]string{"--config", path, "copy", "Echo", "a", "b"},
		strings.NewReader(""), &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	require.Equal(t, "a b\n", stdout.String())

	stdout.Reset()
	code = Execute(context.Background(), "test",
		[]string{"--config", path, "copy", "--print", "Echo", "a", "b"},
		strings.NewReader(""), &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	require.Equal(t, "a\nb\n", stdout.String())
}
