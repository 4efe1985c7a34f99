package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/work24-mcp/work24-mcp/internal/tools"
)

// version is stamped at build time:
// go build -ldflags "-X github.com/work24-mcp/work24-mcp/cmd.version=v1.2.3"
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and the MCP server identity",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), versionInfo())
	},
}

func init() {
	rootCmd.Version = version
	rootCmd.AddCommand(versionCmd)
}

// versionInfo describes what serve advertises to MCP clients.
func versionInfo() string {
	// Tools only touch their dependencies when called.
	registry := tools.NewRegistry(tools.Deps{})
	return fmt.Sprintf("%s %s (mcp server name %q, %d tools)", app, version, app, len(registry.List()))
}
