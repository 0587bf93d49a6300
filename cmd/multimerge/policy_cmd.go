package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Inspect the effective merge policy",
}

var policyShowCmd = &cobra.Command{
	Use:   "show <output-dir>",
	Short: "Print the effective ordered rule list and fallback strategy",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputDir := args[0]

		matcher, _, err := loadMatcher(outputDir)
		if err != nil {
			return err
		}

		for i, rule := range matcher.Rules() {
			fmt.Printf("%d: %-10s -> %s\n", i, rule.Pattern, rule.Strategy)
		}
		fmt.Printf("fallback: %s\n", matcher.Fallback())
		return nil
	},
}
