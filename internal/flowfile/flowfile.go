// Package flowfile loads flow definitions from YAML files so the CLI
// can validate, render, and run them without writing Go code.
//
// File flows are limited to generic and condition nodes: command and
// query nodes need live handlers, which a standalone file cannot carry.
package flowfile

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/flow"
	"github.com/aretw0/espalier/pkg/ports"
)

// File is the top-level YAML document describing a flow.
type File struct {
	ID    string     `yaml:"id"`
	Name  string     `yaml:"name"`
	Nodes []NodeSpec `yaml:"nodes"`
	Edges []EdgeSpec `yaml:"edges"`
}

// NodeSpec describes one node. Metadata is free-form YAML decoded into
// NodeMeta at build time.
type NodeSpec struct {
	ID       string         `yaml:"id"`
	Name     string         `yaml:"name"`
	Kind     string         `yaml:"kind"`
	Metadata map[string]any `yaml:"metadata"`
}

// EdgeSpec describes one edge. Guard is "", "true", or "false".
type EdgeSpec struct {
	From  string `yaml:"from"`
	To    string `yaml:"to"`
	Guard string `yaml:"guard"`
}

// NodeMeta is the typed view of a node's metadata map.
type NodeMeta struct {
	// Value is what a generic node stores as its result.
	// When absent, the node stores its own id.
	Value any `mapstructure:"value"`

	// Expr is the predicate of a condition node, e.g. "tier == 'pro'".
	Expr string `mapstructure:"expr"`
}

// Load reads and parses a flow file from disk.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read flow file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML flow document.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse flow file: %w", err)
	}
	if f.ID == "" {
		return nil, fmt.Errorf("flow file is missing an id")
	}
	return &f, nil
}

// Validate reports structural issues without building the flow:
// unknown kinds or guards, duplicate node ids, and edges that break the
// condition-guard rules. Duplicates are reported here even though the
// builder tolerates them, because in a file they are authoring mistakes.
func (f *File) Validate() []string {
	var issues []string

	kinds := make(map[string]string, len(f.Nodes))
	for _, n := range f.Nodes {
		if n.ID == "" {
			issues = append(issues, "node with empty id")
			continue
		}
		if _, dup := kinds[n.ID]; dup {
			issues = append(issues, fmt.Sprintf("node %s: duplicate id (later definition wins)", n.ID))
		}
		switch n.Kind {
		case domain.NodeKindCommand, domain.NodeKindQuery, domain.NodeKindCondition, domain.NodeKindGeneric:
		default:
			issues = append(issues, fmt.Sprintf("node %s: unknown kind %q", n.ID, n.Kind))
		}
		kinds[n.ID] = n.Kind
	}

	for _, e := range f.Edges {
		if e.Guard != domain.GuardNone && e.Guard != domain.GuardOnTrue && e.Guard != domain.GuardOnFalse {
			issues = append(issues, fmt.Sprintf("edge %s -> %s: unknown guard %q", e.From, e.To, e.Guard))
		}
		srcKind, srcOK := kinds[e.From]
		if !srcOK {
			issues = append(issues, fmt.Sprintf("edge %s -> %s: source node is not defined", e.From, e.To))
		}
		if _, ok := kinds[e.To]; !ok {
			issues = append(issues, fmt.Sprintf("edge %s -> %s: target node is not defined", e.From, e.To))
		}
		if !srcOK {
			continue
		}
		if srcKind == domain.NodeKindCondition {
			if e.Guard == domain.GuardNone {
				issues = append(issues, fmt.Sprintf("edge %s -> %s: unguarded edge from condition node never fires", e.From, e.To))
			}
		} else if e.Guard != domain.GuardNone {
			issues = append(issues, fmt.Sprintf("edge %s -> %s: guard %q on non-condition source is ignored", e.From, e.To, e.Guard))
		}
	}

	if len(f.Nodes) == 0 {
		issues = append(issues, "flow has no nodes defined")
	}
	return issues
}

// Graph projects the file into renderable node and edge views without
// building an executable flow, so diagrams work even for files whose
// nodes could not be built.
func (f *File) Graph() ([]domain.NodeView, []domain.Edge) {
	nodes := make([]domain.NodeView, 0, len(f.Nodes))
	for _, n := range f.Nodes {
		nodes = append(nodes, domain.NodeView{ID: n.ID, Name: n.Name, Kind: n.Kind})
	}
	edges := make([]domain.Edge, 0, len(f.Edges))
	for _, e := range f.Edges {
		edges = append(edges, domain.Edge{From: e.From, To: e.To, Guard: e.Guard})
	}
	return nodes, edges
}

// Build compiles the file into an executable flow bound to the given
// buses. Command and query nodes are rejected: file flows carry no
// message producers.
func (f *File) Build(commands ports.CommandBus, queries ports.QueryBus, opts ...flow.Option) (*flow.Flow, error) {
	fl := flow.New(f.ID, f.Name, commands, queries, opts...)

	for _, n := range f.Nodes {
		var meta NodeMeta
		if n.Metadata != nil {
			if err := mapstructure.Decode(n.Metadata, &meta); err != nil {
				return nil, fmt.Errorf("node %s: invalid metadata: %w", n.ID, err)
			}
		}

		switch n.Kind {
		case domain.NodeKindGeneric:
			id := n.ID
			value := meta.Value
			fl.AddGeneric(id, n.Name, func(rc *flow.Context) (any, error) {
				if value != nil {
					return value, nil
				}
				return id, nil
			})
		case domain.NodeKindCondition:
			if meta.Expr == "" {
				return nil, fmt.Errorf("condition node %s has no expr metadata", n.ID)
			}
			expr := meta.Expr
			fl.AddCondition(n.ID, n.Name, func(rc *flow.Context) (bool, error) {
				return evalCondition(expr, rc)
			})
		case domain.NodeKindCommand, domain.NodeKindQuery:
			return nil, fmt.Errorf("node %s: %s nodes require registered handlers and cannot be built from a file", n.ID, n.Kind)
		default:
			return nil, fmt.Errorf("node %s: unknown kind %q", n.ID, n.Kind)
		}
	}

	for _, e := range f.Edges {
		switch e.Guard {
		case domain.GuardOnTrue:
			fl.ConnectWhenTrue(e.From, e.To)
		case domain.GuardOnFalse:
			fl.ConnectWhenFalse(e.From, e.To)
		default:
			fl.Connect(e.From, e.To)
		}
	}

	return fl, nil
}
