/*
Package espalier is a message-dispatch and workflow-orchestration core:
a typed command/query bus plus a directed-graph flow engine that
sequences command, query, condition, and generic steps, branches on
boolean outcomes, and renders the resulting flow as a state diagram.

It deliberately excludes persistence, transactions, HTTP mapping, and
dependency-injection semantics: handlers are plain values you register,
and every outcome is an explicit return value.

# Usage

	eng := espalier.New()
	defer eng.Close(context.Background())

	eng.RegisterCommandHandlers(bus.HandlerFunc("user.create",
		func(ctx context.Context, cmd CreateUser) (string, error) {
			return "user-42", nil
		}))

	f := eng.NewFlow("signup", "User Signup").
		AddCondition("valid-email", "Validate Email", func(rc *flow.Context) (bool, error) {
			email, _ := flow.VariableAs[string](rc, "email")
			return strings.Contains(email, "@"), nil
		}).
		AddCommand("create", "Create User", func(rc *flow.Context) (domain.Message, error) {
			email, _ := flow.VariableAs[string](rc, "email")
			return CreateUser{Email: email}, nil
		}).
		ConnectWhenTrue("valid-email", "create")

	rc := flow.NewContext("signup")
	rc.SetVariable("email", "ada@example.com")
	result := f.ExecuteWith(context.Background(), rc)

Execute never returns a Go error: inspect result.Success and
result.ErrorMessage. Call f.ToDiagram() for a PlantUML rendering of the
graph.
*/
package espalier
