// Command server is the main entry point for the DeepL MCP server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

// rootCmd serves MCP over stdio when run without a subcommand.
var rootCmd = &cobra.Command{
	Use:           "deepl-mcp",
	Short:         "DeepL translation tools for MCP hosts",
	Long:          "deepl-mcp exposes DeepL translation, language listing, usage and detection as MCP tools over stdio.",
	RunE:          runServe,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = version

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(languagesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
