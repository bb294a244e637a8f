package flowfile

import (
	"fmt"
	"strings"

	"github.com/aretw0/espalier/pkg/flow"
)

// evalCondition evaluates the minimal expression grammar supported by
// file flows against the run context's variables:
//
//	key == 'value'    equality (quotes optional)
//	key != 'value'    inequality
//	key               truthiness: true, or a non-empty string
//
// Values are compared as strings, matching how CLI --var inputs arrive.
func evalCondition(expr string, rc *flow.Context) (bool, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return false, fmt.Errorf("empty condition expression")
	}

	if parts := strings.SplitN(expr, "!=", 2); len(parts) == 2 {
		matched, present, err := compare(parts[0], parts[1], rc)
		// A missing variable satisfies neither == nor !=.
		return present && !matched, err
	}
	if parts := strings.SplitN(expr, "==", 2); len(parts) == 2 {
		matched, _, err := compare(parts[0], parts[1], rc)
		return matched, err
	}

	// Bare variable: truthy check.
	v, ok := rc.Variable(expr)
	if !ok {
		return false, nil
	}
	switch typed := v.(type) {
	case bool:
		return typed, nil
	case string:
		return typed != "", nil
	default:
		return v != nil, nil
	}
}

func compare(rawKey, rawExpected string, rc *flow.Context) (matched, present bool, err error) {
	key := strings.TrimSpace(rawKey)
	expected := strings.Trim(strings.TrimSpace(rawExpected), "'\"")
	if key == "" {
		return false, false, fmt.Errorf("condition expression has no variable name")
	}
	v, ok := rc.Variable(key)
	if !ok {
		return false, false, nil
	}
	return fmt.Sprint(v) == expected, true, nil
}
