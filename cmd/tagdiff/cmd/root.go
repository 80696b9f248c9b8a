// Package cmd implements the tagdiff CLI commands.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agentstation/tagdiff/cmd/tagdiff/app"
	"github.com/agentstation/tagdiff/internal/cmd/globals"
	"github.com/agentstation/tagdiff/internal/cmd/output"
	"github.com/agentstation/tagdiff/pkg/logging"
)

var (
	configFile  string
	globalFlags *globals.Flags
	config      *app.Config

	// Version information set by main.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date.
	Date = "unknown"
	// BuiltBy is the build system identifier.
	BuiltBy = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "tagdiff",
	Short: "Tag-keyed table comparison",
	Long: `Tagdiff compares two tabular datasets keyed by a unique Tag column
and classifies every Tag as added, removed, modified, or unchanged,
with per-column before/after values.

It reads xlsx workbooks (or csv files), prints the row-level diff in
table, json, or yaml form, and exports a highlighted xlsx report.`,
	PersistentPreRunE: setupCommand,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(version, commit, date, builtBy string) {
	Version = version
	Commit = commit
	Date = date
	BuiltBy = builtBy

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logging.Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.tagdiff.yaml)")
	globalFlags = globals.AddFlags(rootCmd)

	cobra.CheckErr(viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose")))
	cobra.CheckErr(viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet")))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	cfg, err := app.LoadConfig(configFile)
	cobra.CheckErr(err)

	cfg.UpdateFromFlags(globalFlags.Verbose, globalFlags.Quiet, globalFlags.NoColor, globalFlags.Format)
	config = cfg

	logging.SetDefault(app.NewLogger(cfg))
}

// setupCommand is called before any command runs.
func setupCommand(_ *cobra.Command, _ []string) error {
	// Fall back to terminal detection when no format was requested
	if globalFlags.Format == "" && config != nil && config.Format != "" {
		globalFlags.Format = config.Format
	}
	if globalFlags.Format == "" {
		globalFlags.Format = string(output.DetectFormat(""))
	}

	_, err := output.ParseFormat(globalFlags.Format)
	return err
}
