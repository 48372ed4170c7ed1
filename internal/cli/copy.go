package cli

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pathcopycopy/pathcopy/internal/plugin"
)

func (a *app) newCopyCommand() *cobra.Command {
	var (
		printOnly   bool
		visibleOnly bool
	)
	cmd := &cobra.Command{
		Use:   "copy <plugin> [path...]",
		Short: "Transform paths with a plugin and perform its action",
		Long: `Transform paths with a plugin, then copy them (print to stdout) or launch
the plugin's executable. The plugin is given by identifier or description.
Paths are read one per line from stdin when none are given.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.reg.Find(args[0])
			if err != nil {
				return err
			}

			paths := args[1:]
			if len(paths) == 0 {
				if paths, err = readLines(cmd.InOrStdin()); err != nil {
					return err
				}
			}
			if plugin.OptionsOf(p).Recursive {
				if paths, err = expandRecursive(paths); err != nil {
					return err
				}
			}
			if visibleOnly {
				paths = visible(p, paths)
			}
			if len(paths) == 0 {
				return nil
			}

			action := plugin.Action{Kind: plugin.ActionCopy}
			if pp, ok := p.(interface{ Action() plugin.Action }); ok && !printOnly {
				action = pp.Action()
			}
			a.logger.Debug("copying paths",
				zap.Stringer("plugin", p.ID()),
				zap.Stringer("action", action.Kind),
				zap.Int("count", len(paths)))

			out := plugin.Paths(p, paths)
			if err := action.Run(cmd.Context(), out, plugin.Separator(p, a.cfg.Separator), cmd.OutOrStdout(), cmd.ErrOrStderr()); err != nil {
				return err
			}
			if action.Kind == plugin.ActionCopy {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&printOnly, "print", false, "print the paths even if the plugin launches an executable")
	cmd.Flags().BoolVar(&visibleOnly, "visible-only", false, "skip paths the plugin is not enabled for")
	return cmd
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimRight(sc.Text(), "\r"); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read paths: %w", err)
	}
	return lines, nil
}

// expandRecursive replaces each directory by itself followed by everything
// below it, in lexical order.
func expandRecursive(paths []string) ([]string, error) {
	var out []string
	for _, root := range paths {
		err := filepath.WalkDir(root, func(path string, _ fs.DirEntry, err error) error {
			if err != nil {
				if path == root {
					// Not a readable directory; keep the path as given.
					out = append(out, root)
					return nil
				}
				return err
			}
			out = append(out, path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("expand %s: %w", root, err)
		}
	}
	return out, nil
}

func visible(p plugin.Plugin, paths []string) []string {
	var out []string
	for _, path := range paths {
		if p.EnabledFor(filepath.Dir(path), filepath.Base(path)) {
			out = append(out, path)
		}
	}
	return out
}
