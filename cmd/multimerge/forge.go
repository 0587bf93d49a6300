package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/javanhut/multimerge/internal/store"
	"github.com/spf13/cobra"
)

var forgeCmd = &cobra.Command{
	Use:   "forge <output-dir>",
	Short: "Initialize an output tree's .multimerge plan store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputDir := args[0]
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("forge: %w", err)
		}

		planDir := filepath.Join(outputDir, ".multimerge")
		if err := os.MkdirAll(planDir, 0755); err != nil {
			return fmt.Errorf("forge: %w", err)
		}

		db, err := store.GetSharedDB(planDir)
		if err != nil {
			return fmt.Errorf("forge: %w", err)
		}
		defer db.Close()

		log.WithField("output", outputDir).Info("forged output tree")
		fmt.Printf("initialized multimerge output tree at %s\n", outputDir)
		return nil
	},
}
