package tui

import (
	"fmt"
	"sort"

	"github.com/muesli/termenv"

	"github.com/aretw0/espalier/pkg/flow"
)

// PrintRunReport writes a colorized summary of a flow run to stdout.
// Node results are sorted by id for a stable report; execution order is
// not reconstructed here.
func PrintRunReport(result flow.Result) {
	p := termenv.ColorProfile()

	if result.Success {
		fmt.Println(termenv.String("✔ run succeeded").Foreground(p.Color("#4ade80")).Bold())
	} else {
		fmt.Println(termenv.String("✘ run failed").Foreground(p.Color("#f87171")).Bold())
		fmt.Println(termenv.String("  " + result.ErrorMessage).Foreground(p.Color("#f87171")))
	}

	fmt.Printf("  run %s, %s\n", result.RunID, result.Elapsed())

	ids := make([]string, 0, len(result.Results))
	for id := range result.Results {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		label := termenv.String(id).Foreground(p.Color("#818cf8"))
		fmt.Printf("  %s = %v\n", label, result.Results[id])
	}
}
