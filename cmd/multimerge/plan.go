package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan <output-dir> <project-dir>...",
	Short: "Resolve collisions and print the merge plan without writing anything",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputDir, roots := args[0], args[1:]

		ws, err := buildWorkspace(roots, outputDir, nil)
		if err != nil {
			return err
		}

		t := ws.Resolve()
		for _, entry := range t.Entries() {
			fmt.Printf("%-8s %s\n", entry.Strategy, entry.Index)
		}
		return nil
	},
}
