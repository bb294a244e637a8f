package espalier_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/internal/logging"
	"github.com/aretw0/espalier/pkg/bus"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/flow"
)

type createUser struct {
	Username string
	Email    string
	Password string
}

func (c createUser) MessageName() string { return "user.create" }
func (c createUser) IsValid() bool       { return c.Username != "" && c.Email != "" }

type getUser struct {
	UserID string
}

func (q getUser) MessageName() string { return "user.get" }
func (q getUser) IsValid() bool       { return q.UserID != "" }

type userView struct {
	ID       string
	Username string
}

func newUserEngine(t *testing.T) *espalier.Engine {
	t.Helper()
	eng := espalier.New(espalier.WithLogger(logging.NewNop()))
	t.Cleanup(func() {
		_ = eng.Close(context.Background())
	})

	users := make(map[string]userView)
	eng.RegisterCommandHandlers(bus.HandlerFunc("user.create",
		func(ctx context.Context, cmd createUser) (string, error) {
			id := fmt.Sprintf("user-%d", len(users)+1)
			users[id] = userView{ID: id, Username: cmd.Username}
			return id, nil
		}))
	eng.RegisterQueryHandlers(bus.HandlerFunc("user.get",
		func(ctx context.Context, q getUser) (userView, error) {
			view, ok := users[q.UserID]
			if !ok {
				return userView{}, fmt.Errorf("user %s not found", q.UserID)
			}
			return view, nil
		}))
	return eng
}

// registrationFlow mirrors a typical signup process: validate inputs,
// create the user, read it back, and mark the outcome.
func registrationFlow(eng *espalier.Engine) *flow.Flow {
	return eng.NewFlow("user-registration", "User Registration").
		AddCondition("validate-email", "Validate Email", func(rc *flow.Context) (bool, error) {
			email, _ := flow.VariableAs[string](rc, "email")
			return strings.Contains(email, "@"), nil
		}).
		AddCondition("validate-password", "Validate Password", func(rc *flow.Context) (bool, error) {
			password, _ := flow.VariableAs[string](rc, "password")
			return len(password) >= 8, nil
		}).
		AddCommand("create-user", "Create User", func(rc *flow.Context) (domain.Message, error) {
			username, _ := flow.VariableAs[string](rc, "username")
			email, _ := flow.VariableAs[string](rc, "email")
			password, _ := flow.VariableAs[string](rc, "password")
			return createUser{Username: username, Email: email, Password: password}, nil
		}).
		AddQuery("get-user", "Get User", func(rc *flow.Context) (domain.Message, error) {
			id, _ := flow.ResultAs[string](rc, "create-user")
			return getUser{UserID: id}, nil
		}).
		AddGeneric("set-success", "Set Success", func(rc *flow.Context) (any, error) {
			return "registered", nil
		}).
		AddGeneric("set-failure", "Set Failure", func(rc *flow.Context) (any, error) {
			return "rejected", nil
		}).
		ConnectWhenTrue("validate-email", "validate-password").
		ConnectWhenFalse("validate-email", "set-failure").
		ConnectWhenTrue("validate-password", "create-user").
		ConnectWhenFalse("validate-password", "set-failure").
		Connect("create-user", "get-user").
		Connect("get-user", "set-success")
}

func TestEngine_RegistrationFlow_HappyPath(t *testing.T) {
	eng := newUserEngine(t)
	f := registrationFlow(eng)

	rc := flow.NewContext(f.ID())
	rc.SetVariable("username", "ada")
	rc.SetVariable("email", "ada@example.com")
	rc.SetVariable("password", "s3cret-password")

	result := f.ExecuteWith(context.Background(), rc)

	require.True(t, result.Success, result.ErrorMessage)
	id, ok := flow.ResultAs[string](rc, "create-user")
	require.True(t, ok)
	assert.NotEmpty(t, id)
	view := result.Results["get-user"].(userView)
	assert.Equal(t, "ada", view.Username)
	assert.Equal(t, "registered", result.Results["set-success"])
	assert.NotContains(t, result.Results, "set-failure")
}

func TestEngine_RegistrationFlow_BadEmailShortCircuits(t *testing.T) {
	eng := newUserEngine(t)
	f := registrationFlow(eng)

	rc := flow.NewContext(f.ID())
	rc.SetVariable("username", "ada")
	rc.SetVariable("email", "not-an-email")
	rc.SetVariable("password", "s3cret-password")

	result := f.ExecuteWith(context.Background(), rc)

	require.True(t, result.Success)
	assert.Equal(t, false, result.Results["validate-email"])
	assert.Equal(t, "rejected", result.Results["set-failure"])
	assert.NotContains(t, result.Results, "create-user")
	assert.NotContains(t, result.Results, "set-success")
}

func TestEngine_DirectSendAndAsync(t *testing.T) {
	eng := newUserEngine(t)

	id, err := eng.Commands().Send(context.Background(), createUser{Username: "grace", Email: "g@x"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	waiter := eng.Queries().SendAsync(context.Background(), getUser{UserID: id.(string)})
	view, err := waiter.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "grace", view.(userView).Username)
}

func TestEngine_FlowDiagram(t *testing.T) {
	eng := newUserEngine(t)
	f := registrationFlow(eng)

	uml := f.ToDiagram()
	assert.Contains(t, uml, "@startuml")
	assert.Contains(t, uml, "@enduml")
	assert.Contains(t, uml, "User Registration")
	for _, view := range f.Nodes() {
		assert.Contains(t, uml, strings.ReplaceAll(view.ID, "-", "_"))
	}
}

func TestEngine_MetricsAreRecorded(t *testing.T) {
	reg := prometheus.NewRegistry()
	eng := espalier.New(espalier.WithLogger(logging.NewNop()), espalier.WithMetrics(reg))
	t.Cleanup(func() {
		_ = eng.Close(context.Background())
	})
	eng.RegisterCommandHandlers(bus.HandlerFunc("user.create",
		func(ctx context.Context, cmd createUser) (string, error) { return "user-1", nil }))

	msg := createUser{Username: "ada", Email: "a@b"}
	_, err := eng.Commands().Send(context.Background(), msg)
	require.NoError(t, err)
	_, err = eng.Commands().Send(context.Background(), msg)
	require.NoError(t, err)

	count, err := testutil.GatherAndCount(reg, "espalier_bus_messages_total", "espalier_bus_handler_cache_hits_total")
	require.NoError(t, err)
	assert.NotZero(t, count)
}
