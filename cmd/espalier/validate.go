package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/espalier/internal/flowfile"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a flow definition for consistency",
	Long:  `Parses a flow definition file and reports structural issues: unknown kinds or guards, duplicate node ids, and edges that reference undefined nodes.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path, _ := cmd.Flags().GetString("file")
		if len(args) > 0 {
			path = args[0]
		}

		file, err := flowfile.Load(path)
		if err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}

		issues := file.Validate()
		if len(issues) > 0 {
			for _, issue := range issues {
				fmt.Printf("  - %s\n", issue)
			}
			fmt.Printf("Found %d issue(s) in %s\n", len(issues), path)
			os.Exit(1)
		}
		fmt.Println("Flow is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
