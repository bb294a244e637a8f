package espalier_test

import (
	"context"
	"fmt"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/pkg/bus"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/flow"
)

type greetCommand struct {
	Name string
}

func (c greetCommand) MessageName() string { return "greet" }
func (c greetCommand) IsValid() bool       { return c.Name != "" }

// Example demonstrates wiring a handler into the engine and driving it
// through a small flow.
func Example() {
	eng := espalier.New()
	defer eng.Close(context.Background())

	eng.RegisterCommandHandlers(
		bus.HandlerFunc("greet", func(ctx context.Context, c greetCommand) (string, error) {
			return "hello, " + c.Name, nil
		}),
	)

	f := eng.NewFlow("greeting", "Greeting")
	f.AddCommand("say-hello", "Say Hello", func(rc *flow.Context) (domain.Message, error) {
		name, _ := flow.VariableAs[string](rc, "name")
		return greetCommand{Name: name}, nil
	})

	rc := flow.NewContext("greeting")
	rc.SetVariable("name", "world")

	result := f.ExecuteWith(context.Background(), rc)
	fmt.Println(result.Success)
	fmt.Println(result.Results["say-hello"])
	// Output:
	// true
	// hello, world
}

// ExampleEngine_Commands shows direct dispatch without a flow.
func ExampleEngine_Commands() {
	eng := espalier.New()
	defer eng.Close(context.Background())

	eng.RegisterCommandHandlers(
		bus.HandlerFunc("greet", func(ctx context.Context, c greetCommand) (string, error) {
			return "hello, " + c.Name, nil
		}),
	)

	out, err := eng.Commands().Send(context.Background(), greetCommand{Name: "bus"})
	fmt.Println(out, err)
	// Output:
	// hello, bus <nil>
}
