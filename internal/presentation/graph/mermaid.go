package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/espalier/pkg/domain"
)

// RenderMermaid produces a Mermaid flowchart (graph TD) from a flow
// projection. It applies semantic shapes per node kind:
// - Command: [[Subroutine]]
// - Query: [/Parallelogram/]
// - Condition: {Diamond}
// - Generic: [Rectangle]
// Guarded edges carry a true/false label.
func RenderMermaid(nodes []domain.NodeView, edges []domain.Edge) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, n := range nodes {
		safeID := sanitizeID(n.ID)

		opener, closer := "[", "]"
		switch n.Kind {
		case domain.NodeKindCommand:
			opener, closer = "[[", "]]"
		case domain.NodeKindQuery:
			opener, closer = "[/", "/]"
		case domain.NodeKindCondition:
			opener, closer = "{", "}"
		}

		label := n.Name
		if label == "" {
			label = n.ID
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, escapeLabel(label), closer)
	}

	for _, e := range edges {
		arrow := "-->"
		if e.Guard != domain.GuardNone {
			arrow = fmt.Sprintf("-- \"%s\" -->", e.Guard)
		}
		fmt.Fprintf(&sb, "    %s %s %s\n", sanitizeID(e.From), arrow, sanitizeID(e.To))
	}

	return sb.String()
}

func sanitizeID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
