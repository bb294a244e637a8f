package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/espalier/internal/flowfile"
	"github.com/aretw0/espalier/internal/presentation/graph"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [file]",
	Short: "Export the flow graph visualization",
	Long:  `Reads a flow definition file and outputs a PlantUML state diagram (default) or a Mermaid flowchart representing the flow logic.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path, _ := cmd.Flags().GetString("file")
		if len(args) > 0 {
			path = args[0]
		}

		file, err := flowfile.Load(path)
		if err != nil {
			fmt.Printf("Error loading flow: %v\n", err)
			os.Exit(1)
		}

		nodes, edges := file.Graph()
		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "mermaid":
			fmt.Print(graph.RenderMermaid(nodes, edges))
		case "plantuml":
			fmt.Print(graph.RenderStateDiagram(file.Name, nodes, edges))
		default:
			fmt.Printf("Error: unknown format %q (want plantuml or mermaid)\n", format)
			os.Exit(1)
		}
	},
}

func init() {
	graphCmd.Flags().String("format", "plantuml", "Output format: plantuml or mermaid")
	rootCmd.AddCommand(graphCmd)
}
