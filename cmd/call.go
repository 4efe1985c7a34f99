package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/work24-mcp/work24-mcp/internal/tools"
)

var callCmd = &cobra.Command{
	Use:   "call <tool> [json-args]",
	Short: "Invoke one tool and print its JSON result",
	Long: `Invoke one tool and print its JSON result.
Arguments are a JSON object; pass "-" to read them from stdin.`,
	Example: `  work24-mcp call find_training_course '{"start_date":"20260101","end_date":"20260331"}'
  work24-mcp call match_youth_programs '{"age":24,"employment_status":"구직자"}'`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		call(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(callCmd)
}

func call(cmd *cobra.Command, args []string) {
	logger, config := setup()

	registry, err := newRegistry(config, logger)
	if err != nil {
		logger.Fatal("building tools", zap.Error(err))
	}

	input := ""
	if len(args) == 2 {
		input = args[1]
	}
	if input == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			logger.Fatal("reading arguments from stdin", zap.Error(err))
		}
		input = string(data)
	}

	out, err := registry.Call(context.Background(), args[0], input)
	if err != nil {
		logger.Error("tool call failed", zap.String("tool", args[0]), zap.String("error", tools.Describe(err)))
		os.Exit(1)
	}

	fmt.Fprintln(cmd.OutOrStdout(), out)
}
