package scenario

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// evalValue evaluates an expression to its raw value. A nil expression
// yields cty.NilVal, which downstream consumers treat as "not provided".
func evalValue(expr hcl.Expression) (cty.Value, error) {
	if expr == nil {
		return cty.NilVal, nil
	}
	v, diags := expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("failed to evaluate expression: %w", diags)
	}
	return v, nil
}

// evalString evaluates an expression to a string, empty when absent.
func evalString(expr hcl.Expression) (string, error) {
	v, err := evalValue(expr)
	if err != nil {
		return "", err
	}
	if v == cty.NilVal || v.IsNull() {
		return "", nil
	}
	v, err = convert.Convert(v, cty.String)
	if err != nil {
		return "", fmt.Errorf("expected a string: %w", err)
	}
	return v.AsString(), nil
}

// evalBool evaluates an expression to a bool, false when absent.
func evalBool(expr hcl.Expression) (bool, error) {
	v, err := evalValue(expr)
	if err != nil {
		return false, err
	}
	if v == cty.NilVal || v.IsNull() {
		return false, nil
	}
	v, err = convert.Convert(v, cty.Bool)
	if err != nil {
		return false, fmt.Errorf("expected a bool: %w", err)
	}
	return v.True(), nil
}

// evalStringSlice evaluates an expression to a list of strings, nil when
// absent.
func evalStringSlice(expr hcl.Expression) ([]string, error) {
	v, err := evalValue(expr)
	if err != nil {
		return nil, err
	}
	if v == cty.NilVal || v.IsNull() {
		return nil, nil
	}
	if !v.CanIterateElements() {
		return nil, fmt.Errorf("expected a list of strings, got %s", v.Type().FriendlyName())
	}

	var out []string
	for _, elem := range v.AsValueSlice() {
		elem, err := convert.Convert(elem, cty.String)
		if err != nil {
			return nil, fmt.Errorf("expected a string element: %w", err)
		}
		out = append(out, elem.AsString())
	}
	return out, nil
}
