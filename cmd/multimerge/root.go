package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const multimergeVersion = "0.1.0"

var (
	version bool
	log     = logrus.StandardLogger()
)

var rootCmd = &cobra.Command{
	Use:   "multimerge",
	Short: "multimerge plans and executes merges across project trees",
	Long:  `multimerge resolves path collisions across a set of project trees into a single output tree, applying a configurable per-path Replace/Rename/Merge policy.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if version {
			fmt.Printf("multimerge version %s\n", multimergeVersion)
			return nil
		}
		return cmd.Help()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().BoolVar(&version, "version", false, "print the multimerge version")

	if lvl := os.Getenv("MULTIMERGE_LOG_LEVEL"); lvl != "" {
		if parsed, err := logrus.ParseLevel(lvl); err == nil {
			log.SetLevel(parsed)
		}
	}

	rootCmd.AddCommand(forgeCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(policyCmd)
	policyCmd.AddCommand(policyShowCmd)
}
