package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPartsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parts",
		Short: "List the export catalog",
		Long: `List every part of the export catalog in processing order.

The CODE column is what -p accepts.`,
		Args: cobra.NoArgs,
		RunE: runParts,
	}
}

func runParts(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	registry, err := loadRegistry(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-5s %-18s %-9s %-15s %s\n", "CODE", "FILE TYPE", "KIND", "ALLIANCE TYPE", "SCHEMA")
	for _, d := range registry.All() {
		schema := d.SchemaPath
		if schema == "" {
			schema = "-"
		}
		fmt.Fprintf(out, "%-5s %-18s %-9s %-15s %s\n", d.Code, d.FileType, d.Kind, d.AllianceFileType, schema)
	}
	return nil
}
