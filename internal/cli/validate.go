package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pathcopycopy/pathcopy/internal/plugin"
)

// errInvalidPlugins is returned when validate finds a broken plugin.
var errInvalidPlugins = errors.New("invalid plugins found")

func (a *app) newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [plugin...]",
		Short: "Check that configured plugins build",
		Long: `Build every pipeline and script plugin (or only the ones named) and report
decode errors, missing plugins and reference loops.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.Validate(); err != nil {
				return fmt.Errorf("config: %w", err)
			}

			var plugins []plugin.Plugin
			if len(args) == 0 {
				plugins = a.reg.All()
			}
			for _, ref := range args {
				p, err := a.reg.Find(ref)
				if err != nil {
					return err
				}
				plugins = append(plugins, p)
			}

			w := cmd.OutOrStdout()
			failed := 0
			for _, p := range plugins {
				e, ok := p.(interface{ Err() error })
				if !ok {
					continue
				}
				if err := e.Err(); err != nil {
					failed++
					fmt.Fprintf(w, "FAIL %s %s: %v\n", p.ID(), p.Description(), err)
					continue
				}
				fmt.Fprintf(w, "ok   %s %s\n", p.ID(), p.Description())
			}
			if failed > 0 {
				return fmt.Errorf("%w: %d", errInvalidPlugins, failed)
			}
			return nil
		},
	}
}
