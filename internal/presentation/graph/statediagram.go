package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/espalier/pkg/domain"
)

// RenderStateDiagram produces a PlantUML state diagram from a flow
// projection. It is a pure function: one state declaration per node
// with a kind stereotype, one transition line per edge, guarded edges
// labeled true/false. Declarations and transitions follow insertion
// order, so the output is stable for an unchanged graph.
func RenderStateDiagram(title string, nodes []domain.NodeView, edges []domain.Edge) string {
	var sb strings.Builder
	sb.WriteString("@startuml\n")
	if title != "" {
		fmt.Fprintf(&sb, "title %s\n", title)
	}

	for _, n := range nodes {
		name := n.Name
		if name == "" {
			name = n.ID
		}
		fmt.Fprintf(&sb, "state \"%s\" as %s <<%s>>\n", escapeLabel(name), sanitizeID(n.ID), stereotype(n.Kind))
	}

	for _, e := range edges {
		from := sanitizeID(e.From)
		to := sanitizeID(e.To)
		switch e.Guard {
		case domain.GuardOnTrue:
			fmt.Fprintf(&sb, "%s --> %s : true\n", from, to)
		case domain.GuardOnFalse:
			fmt.Fprintf(&sb, "%s --> %s : false\n", from, to)
		default:
			fmt.Fprintf(&sb, "%s --> %s\n", from, to)
		}
	}

	sb.WriteString("@enduml\n")
	return sb.String()
}

func stereotype(kind string) string {
	switch kind {
	case domain.NodeKindCommand:
		return "Command"
	case domain.NodeKindQuery:
		return "Query"
	case domain.NodeKindCondition:
		return "Condition"
	default:
		return "Generic"
	}
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
