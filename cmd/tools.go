package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the available tools",
	Run: func(cmd *cobra.Command, _ []string) {
		logger, config := setup()

		registry, err := newRegistry(config, logger)
		if err != nil {
			logger.Fatal("building tools", zap.Error(err))
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, t := range registry.List() {
			fmt.Fprintf(w, "%s\t%s\n", t.Name(), t.Description())
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}
