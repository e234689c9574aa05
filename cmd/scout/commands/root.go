// Package commands implements the CLI commands for scout.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/scout/internal/app"
	"go.trai.ch/scout/internal/build"
	"go.trai.ch/scout/internal/core/domain"
)

// CLI represents the command line interface for scout.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, opts app.RunOptions) (domain.RunResult, error)
	CacheStats(ctx context.Context, opts app.GlobalOptions) (domain.CacheStats, error)
	ClearCache(ctx context.Context, opts app.GlobalOptions, cacheType domain.CacheType) (int, error)
	InvalidateCache(ctx context.Context, opts app.GlobalOptions, cacheType domain.CacheType, parts domain.KeyParts) (bool, error)
	ListCheckpoints(ctx context.Context, opts app.GlobalOptions, runID string) ([]domain.CheckpointInfo, error)
	ShowCheckpoint(ctx context.Context, opts app.GlobalOptions, runID string, phase domain.Phase) (*domain.CheckpointRecord, error)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "scout",
		Short:         "Fault-tolerant research fetcher for geographic entities",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a settings file (default: ./scout.yaml when present)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: auto, pretty or json (overrides log.format)")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newCacheCmd())
	rootCmd.AddCommand(c.newCheckpointsCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func globalOptions(cmd *cobra.Command) app.GlobalOptions {
	configPath, _ := cmd.Flags().GetString("config")
	logFormat, _ := cmd.Flags().GetString("log-format")
	return app.GlobalOptions{ConfigPath: configPath, LogFormat: logFormat}
}
