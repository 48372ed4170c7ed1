// Package cli implements the pathcopy command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pathcopycopy/pathcopy/internal/config"
	"github.com/pathcopycopy/pathcopy/internal/logger"
	"github.com/pathcopycopy/pathcopy/internal/plugin"
	"github.com/pathcopycopy/pathcopy/internal/plugin/builtin"
)

const (
	configFlag    = "config"
	logFormatFlag = "log-format"
	logFormatConf = "log.format"
	logLevelFlag  = "log-level"
	logLevelConf  = "log.level"
	separatorFlag = "separator"
)

// app holds what every command needs once the root has loaded the config.
type app struct {
	v       *viper.Viper
	version string

	cfg    *config.Config
	reg    *plugin.Registry
	logger *zap.Logger
}

// NewRootCommand builds the pathcopy command tree. Global settings are read
// from flags, then PATHCOPY_* environment variables, then the config file.
func NewRootCommand(version string) *cobra.Command {
	a := &app{v: viper.New(), version: version}
	a.v.SetEnvPrefix("PATHCOPY")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	a.v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "pathcopy",
		Short: "Transform file system paths with configurable plugins",
		Long: `pathcopy transforms file system paths with plugins.

Plugins are built in, defined by encoded pipelines of elements, or written in
Starlark. User plugins are configured in ` + config.ConfigPath() + `.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.String(configFlag, "", "config file (default "+config.ConfigPath()+")")
	flags.String(logFormatFlag, "", "log format: text or json")
	flags.String(logLevelFlag, "", "log level: none, debug, info, warn, error")
	flags.String(separatorFlag, "", "default separator between transformed paths")
	a.mustBindPFlag(configFlag, flags.Lookup(configFlag))
	a.mustBindPFlag(logFormatConf, flags.Lookup(logFormatFlag))
	a.mustBindPFlag(logLevelConf, flags.Lookup(logLevelFlag))
	a.mustBindPFlag(separatorFlag, flags.Lookup(separatorFlag))

	root.AddCommand(
		a.newCopyCommand(),
		a.newListCommand(),
		a.newDecodeCommand(),
		a.newValidateCommand(),
		a.newMCPCommand(),
		a.newVersionCommand(),
	)
	return root
}

func (a *app) mustBindPFlag(key string, flag *pflag.Flag) {
	if err := a.v.BindPFlag(key, flag); err != nil {
		panic("failed to bind pflag: " + err.Error())
	}
}

// setup loads the configuration and builds the logger and registry.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	var err error
	if path := a.v.GetString(configFlag); path != "" {
		a.cfg, err = config.LoadFrom(path)
	} else {
		a.cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if s := a.v.GetString(logFormatConf); s != "" {
		a.cfg.Log.Format = s
	}
	if s := a.v.GetString(logLevelConf); s != "" {
		a.cfg.Log.Level = s
	}
	if s := a.v.GetString(separatorFlag); s != "" {
		a.cfg.Separator = s
	}

	a.logger, err = logger.New(a.cfg.Log.Format, a.cfg.Log.Level)
	if err != nil {
		return err
	}

	if err := a.cfg.Validate(); err != nil {
		a.logger.Warn("invalid plugin configuration", zap.Error(err))
	}

	a.reg = plugin.NewRegistry(a.cfg.System(), a.logger)
	builtin.RegisterAll(a.reg)
	a.cfg.ApplyPlugins(a.reg, a.logger)
	return nil
}

// Execute runs the root command and returns the process exit code. Errors
// are reported on stderr; a launched executable's exit status is passed
// through silently.
func Execute(ctx context.Context, version string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := NewRootCommand(version)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var exitErr *plugin.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	fmt.Fprintf(stderr, "pathcopy: %v\n", err)
	return 1
}

// Main runs pathcopy with the process arguments and streams.
func Main(ctx context.Context, version string) int {
	return Execute(ctx, version, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}
