package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pathcopycopy/pathcopy/internal/plugin"
)

// Plugin kinds shown by list.
const (
	kindBuiltin  = "builtin"
	kindPipeline = "pipeline"
	kindScript   = "script"
)

func kindOf(p plugin.Plugin) string {
	switch p.(type) {
	case *plugin.PipelinePlugin:
		return kindPipeline
	case *plugin.ScriptPlugin:
		return kindScript
	default:
		return kindBuiltin
	}
}

func (a *app) newListCommand() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available plugins",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch kind {
			case "", kindBuiltin, kindPipeline, kindScript:
			default:
				return fmt.Errorf("unknown plugin kind %q", kind)
			}

			w := cmd.OutOrStdout()
			for _, p := range a.reg.All() {
				k := kindOf(p)
				if kind != "" && k != kind {
					continue
				}
				status := ""
				if e, ok := p.(interface{ Err() error }); ok && e.Err() != nil {
					status = " (invalid)"
				}
				fmt.Fprintf(w, "%s  %-9s %s%s\n", p.ID(), k, p.Description(), status)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "only list plugins of this kind: builtin, pipeline or script")
	return cmd
}
