package cli

import (
	"github.com/spf13/cobra"

	"github.com/pathcopycopy/pathcopy/internal/mcpserver"
)

func (a *app) newMCPCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the plugins as MCP tools on stdio",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return mcpserver.New(mcpserver.Options{
				Name:      "pathcopy",
				Version:   a.version,
				Registry:  a.reg,
				Separator: a.cfg.Separator,
				Logger:    a.logger,
			}).ServeStdio()
		},
	}
}
