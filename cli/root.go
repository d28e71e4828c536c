package cli

import (
	"github.com/spf13/cobra"
)

// RootCmd builds the docbridge command tree. Logging and configuration flags
// are persistent so every subcommand resolves them the same way.
func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "docbridge",
		Short:        "HTTP gateway for MongoDB-compatible document stores",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "Path to the configuration file")
	root.PersistentFlags().String("env-file", "", "Path to the environment variables file")
	root.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error, disabled)")
	root.PersistentFlags().Bool("log-json", false, "Output logs in JSON format")
	root.PersistentFlags().Bool("log-source", false, "Include source file and line in logs")

	root.AddCommand(
		ServeCmd(),
		ConfigCmd(),
		VersionCmd(),
	)

	return root
}
