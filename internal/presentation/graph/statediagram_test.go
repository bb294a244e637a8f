package graph_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/espalier/internal/presentation/graph"
	"github.com/aretw0/espalier/pkg/domain"
)

func signupProjection() ([]domain.NodeView, []domain.Edge) {
	nodes := []domain.NodeView{
		{ID: "validate-email", Name: "Validate Email", Kind: domain.NodeKindCondition},
		{ID: "create-user", Name: "Create User", Kind: domain.NodeKindCommand},
		{ID: "get-user", Name: "Get User", Kind: domain.NodeKindQuery},
		{ID: "set-failure", Name: "Set Failure", Kind: domain.NodeKindGeneric},
	}
	edges := []domain.Edge{
		{From: "validate-email", To: "create-user", Guard: domain.GuardOnTrue},
		{From: "validate-email", To: "set-failure", Guard: domain.GuardOnFalse},
		{From: "create-user", To: "get-user"},
	}
	return nodes, edges
}

func TestRenderStateDiagram_MarkersAndTitle(t *testing.T) {
	nodes, edges := signupProjection()
	out := graph.RenderStateDiagram("User Signup", nodes, edges)

	assert.True(t, strings.HasPrefix(out, "@startuml\n"))
	assert.True(t, strings.HasSuffix(out, "@enduml\n"))
	assert.Contains(t, out, "title User Signup")
}

func TestRenderStateDiagram_DeclaresEveryNodeWithStereotype(t *testing.T) {
	nodes, edges := signupProjection()
	out := graph.RenderStateDiagram("User Signup", nodes, edges)

	assert.Contains(t, out, `state "Validate Email" as validate_email <<Condition>>`)
	assert.Contains(t, out, `state "Create User" as create_user <<Command>>`)
	assert.Contains(t, out, `state "Get User" as get_user <<Query>>`)
	assert.Contains(t, out, `state "Set Failure" as set_failure <<Generic>>`)
}

func TestRenderStateDiagram_GuardLabels(t *testing.T) {
	nodes, edges := signupProjection()
	out := graph.RenderStateDiagram("User Signup", nodes, edges)

	assert.Contains(t, out, "validate_email --> create_user : true")
	assert.Contains(t, out, "validate_email --> set_failure : false")
	assert.Contains(t, out, "create_user --> get_user\n")
}

func TestRenderStateDiagram_InsertionOrderIsStable(t *testing.T) {
	nodes, edges := signupProjection()
	first := graph.RenderStateDiagram("User Signup", nodes, edges)
	second := graph.RenderStateDiagram("User Signup", nodes, edges)
	require.Equal(t, first, second)

	// Declarations appear in the order nodes were added.
	iCond := strings.Index(first, "validate_email <<Condition>>")
	iCmd := strings.Index(first, "create_user <<Command>>")
	iQry := strings.Index(first, "get_user <<Query>>")
	assert.Less(t, iCond, iCmd)
	assert.Less(t, iCmd, iQry)
}

func TestRenderStateDiagram_FallsBackToIDAndEscapesQuotes(t *testing.T) {
	nodes := []domain.NodeView{
		{ID: "n1", Kind: domain.NodeKindGeneric},
		{ID: "n2", Name: `say "hi"`, Kind: domain.NodeKindGeneric},
	}
	out := graph.RenderStateDiagram("", nodes, nil)

	assert.Contains(t, out, `state "n1" as n1`)
	assert.Contains(t, out, `state "say 'hi'" as n2`)
	assert.NotContains(t, out, "title")
}

func TestRenderMermaid_ShapesAndGuards(t *testing.T) {
	nodes, edges := signupProjection()
	out := graph.RenderMermaid(nodes, edges)

	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	assert.Contains(t, out, `validate_email{"Validate Email"}`)
	assert.Contains(t, out, `create_user[["Create User"]]`)
	assert.Contains(t, out, `get_user[/"Get User"/]`)
	assert.Contains(t, out, `set_failure["Set Failure"]`)
	assert.Contains(t, out, `validate_email -- "true" --> create_user`)
	assert.Contains(t, out, `validate_email -- "false" --> set_failure`)
	assert.Contains(t, out, "create_user --> get_user")
}
