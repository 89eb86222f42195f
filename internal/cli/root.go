package cli

import (
	"github.com/spf13/cobra"
)

type globalFlags struct {
	configPath string
	dbPath     string
	logFile    string
	logLevel   string
}

// newRootCmd builds the command tree. The bare command runs the TUI.
func newRootCmd(version string) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "tasklist",
		Short: "A single-screen terminal task list",
		Long: `tasklist keeps a short list of things to do in a local SQLite database.

Run it without arguments to open the interactive list, or use the
subcommands to script it.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, flags, version)
		},
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default "+defaultConfigHint+")")
	pf.StringVar(&flags.dbPath, "db", "", "SQLite database path")
	pf.StringVar(&flags.logFile, "log-file", "", "log file path")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error or off")

	rootCmd.AddCommand(newListCmd(flags))
	rootCmd.AddCommand(newAddCmd(flags))
	rootCmd.AddCommand(newVersionCmd(version))
	return rootCmd
}

// Execute runs the root command
func Execute(version string) error {
	return newRootCmd(version).Execute()
}
