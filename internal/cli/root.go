package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/graphport/graphport/pkg/buildinfo"
	"github.com/graphport/graphport/pkg/config"
)

// configPathKey is the context key carrying the --config flag value.
const configPathKey ctxKey = 1

// Execute runs the graphport CLI and returns an error if any command fails.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          "graphport",
		Short:        "Graphport uploads graphs to a rendering service",
		Long:         `Graphport binds tabular, DOT, and gonum graph data to visual roles and uploads it to a GPU rendering service, returning a browser URL for the interactive visualization.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			c := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			c = context.WithValue(c, configPathKey, configPath)
			cmd.SetContext(c)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default ~/.config/graphport/config.toml)")

	root.AddCommand(newPlotCmd())
	root.AddCommand(newLoginCmd())
	root.AddCommand(newLogoutCmd())
	root.AddCommand(newPreviewCmd())
	root.AddCommand(newConfigCmd())

	return root.ExecuteContext(ctx)
}

// loadConfig resolves the configuration for a command.
func loadConfig(ctx context.Context) (config.Config, error) {
	path, _ := ctx.Value(configPathKey).(string)
	return config.Load(path)
}
