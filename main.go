package main

import (
	"os"

	"github.com/work24-mcp/work24-mcp/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
