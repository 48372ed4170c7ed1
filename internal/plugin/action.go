package plugin

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/mattn/go-shellwords"

	"github.com/pathcopycopy/pathcopy/internal/pipeline"
)

// FilesPlaceholder in an action's arguments is replaced by the paths, or by
// the filelist path.
const FilesPlaceholder = "%FILES%"

// ActionKind says what happens to transformed paths.
type ActionKind int

const (
	ActionCopy   ActionKind = iota // write the joined paths out
	ActionLaunch                   // start an executable with the paths
)

func (k ActionKind) String() string {
	switch k {
	case ActionCopy:
		return "copy"
	case ActionLaunch:
		return "launch"
	default:
		return fmt.Sprintf("action(%d)", int(k))
	}
}

// Action is derived from a pipeline's options.
type Action struct {
	Kind        ActionKind
	Executable  string
	Arguments   string
	UseFilelist bool
}

// ActionFor returns the action selected by opts.
func ActionFor(opts pipeline.Options) Action {
	if opts.Executable == "" {
		return Action{Kind: ActionCopy}
	}
	return Action{
		Kind:        ActionLaunch,
		Executable:  opts.Executable,
		Arguments:   opts.Arguments,
		UseFilelist: opts.UseFilelist,
	}
}

// ExitError represents an executable that exited with a non-zero status.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// Run performs the action. Copy writes the paths joined by separator to
// stdout; launch runs the executable and waits for it.
func (a Action) Run(ctx context.Context, paths []string, separator string, stdout, stderr io.Writer) error {
	if a.Kind == ActionCopy {
		_, err := io.WriteString(stdout, strings.Join(paths, separator))
		return err
	}

	files := paths
	if a.UseFilelist {
		name, err := writeFilelist(paths)
		if err != nil {
			return err
		}
		defer os.Remove(name)
		files = []string{name}
	}
	args, err := expandArguments(a.Arguments, files)
	if err != nil {
		return err
	}
	return runExternal(ctx, a.Executable, args, stdout, stderr)
}

// shellOperators end or substitute a shellwords command outside quotes.
const shellOperators = ";&|<>()$`"

// literalCommandLine rewrites a Windows-style command line so that shellwords
// splits it the way a program would see it: quotes group, \" is a literal
// quote, and any other backslash is a path separator.
func literalCommandLine(s string) string {
	var b strings.Builder
	runes := []rune(s)
	single, double := false, false
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case single:
			single = r != '\''
		case r == '\\' && i+1 < len(runes) && runes[i+1] == '"':
			b.WriteString(`\"`)
			i++
			continue
		case r == '\\':
			b.WriteString(`\\`)
			continue
		case r == '"':
			double = !double
		case r == '\'' && !double:
			single = true
		case !double && strings.ContainsRune(shellOperators, r):
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// quoteArg double-quotes s for a program's command line.
func quoteArg(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

// expandArguments tokenises arguments. An argument equal to FilesPlaceholder
// becomes one argument per file; inside a longer argument the placeholder
// becomes the quoted files separated by spaces. Without a placeholder the
// files are appended.
func expandArguments(arguments string, files []string) ([]string, error) {
	fields, err := shellwords.NewParser().Parse(literalCommandLine(arguments))
	if err != nil {
		return nil, fmt.Errorf("arguments %q: %w", arguments, err)
	}

	var args []string
	found := false
	for _, field := range fields {
		switch {
		case field == FilesPlaceholder:
			found = true
			args = append(args, files...)
		case strings.Contains(field, FilesPlaceholder):
			found = true
			quoted := make([]string, len(files))
			for i, f := range files {
				quoted[i] = quoteArg(f)
			}
			args = append(args, strings.ReplaceAll(field, FilesPlaceholder, strings.Join(quoted, " ")))
		default:
			args = append(args, field)
		}
	}
	if !found {
		args = append(args, files...)
	}
	return args, nil
}

func writeFilelist(paths []string) (string, error) {
	f, err := os.CreateTemp("", "pathcopy-*.txt")
	if err != nil {
		return "", fmt.Errorf("create filelist: %w", err)
	}
	return finishFilelist(f, paths)
}

// finishFilelist writes one path per line and closes f. On failure f is
// removed.
func finishFilelist(f *os.File, paths []string) (string, error) {
	w := bufio.NewWriter(f)
	for _, p := range paths {
		w.WriteString(p)
		w.WriteByte('\n')
	}
	err := w.Flush()
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write filelist: %w", err)
	}
	return f.Name(), nil
}

// runExternal starts name and waits for it. A non-zero exit status becomes
// an *ExitError.
func runExternal(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout, cmd.Stderr = stdout, stderr

	var exitErr *exec.ExitError
	switch err := cmd.Run(); {
	case errors.As(err, &exitErr):
		return &ExitError{Code: exitErr.ExitCode()}
	case err != nil:
		return fmt.Errorf("run %s: %w", name, err)
	}
	return nil
}
