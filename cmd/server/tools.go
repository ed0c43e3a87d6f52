package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"github.com/theapemachine/mcp-server-deepl/pkg/tools"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Print the tool catalog with input and output schemas as JSON",
	RunE:  runTools,
}

func runTools(cmd *cobra.Command, _ []string) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")

	return encoder.Encode(tools.Catalog())
}
