package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/espalier/internal/flowfile"
	"github.com/aretw0/espalier/internal/logging"
	"github.com/aretw0/espalier/internal/presentation/tui"
	"github.com/aretw0/espalier/pkg/flow"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Execute a flow definition file",
	Long:  `Builds the flow from a definition file and runs it to completion, printing a per-node result report. Inputs are passed with --var key=value.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path, _ := cmd.Flags().GetString("file")
		if len(args) > 0 {
			path = args[0]
		}
		vars, _ := cmd.Flags().GetStringArray("var")
		verbose, _ := cmd.Flags().GetBool("verbose")

		if err := runFlow(path, vars, verbose); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringArray("var", nil, "Run input as key=value (repeatable)")
	runCmd.Flags().BoolP("verbose", "v", false, "Log node-level execution detail to stderr")

	// Make 'run' the default if no command is provided.
	rootCmd.Run = runCmd.Run
}

func runFlow(path string, vars []string, verbose bool) error {
	file, err := flowfile.Load(path)
	if err != nil {
		return err
	}

	logger := logging.NewNop()
	if verbose {
		logger = logging.New(slog.LevelDebug)
	}

	if issues := file.Validate(); len(issues) > 0 {
		for _, issue := range issues {
			fmt.Printf("  - %s\n", issue)
		}
		return fmt.Errorf("flow has %d issue(s), refusing to run", len(issues))
	}

	// File flows carry no command or query nodes, so no buses are needed.
	fl, err := file.Build(nil, nil, flow.WithLogger(logger))
	if err != nil {
		return err
	}

	rc := flow.NewContext(file.ID)
	for _, v := range vars {
		key, value, found := strings.Cut(v, "=")
		if !found || key == "" {
			return fmt.Errorf("invalid --var %q (want key=value)", v)
		}
		rc.SetVariable(key, value)
	}

	result := fl.ExecuteWith(context.Background(), rc)
	tui.PrintRunReport(result)

	if !result.Success {
		os.Exit(1)
	}
	return nil
}
