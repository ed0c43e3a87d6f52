package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/theapemachine/mcp-server-deepl/pkg/language"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "Print the language codes and aliases the tools accept",
	RunE:  runLanguages,
}

func runLanguages(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	for _, spec := range language.Catalog() {
		note := ""
		if spec.RequiresVariant {
			note = " (target needs " + strings.Join(spec.Variants, " or ") + ")"
		}

		if _, err := fmt.Fprintf(out, "%-8s %-24s %s%s\n", spec.Code, spec.Name, strings.Join(spec.Aliases, ", "), note); err != nil {
			return err
		}
	}

	return nil
}
