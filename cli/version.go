package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docbridge/docbridge/pkg/version"
)

// VersionCmd prints build information baked in at compile time.
func VersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			info := version.Get()
			fmt.Fprintf(cmd.OutOrStdout(), "docbridge %s (commit: %s, built: %s)\n",
				info.Version, info.CommitHash, info.BuildDate)
		},
	}
}
