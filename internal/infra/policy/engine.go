// Package policy evaluates role based authorization decisions through an
// embedded Rego policy.
package policy

import (
	"context"
	"errors"

	_ "embed"

	"agripass/internal/domain"

	"github.com/open-policy-agent/opa/ast"
	"github.com/open-policy-agent/opa/rego"
)

//go:embed policy.rego
var policySource string

const allowQuery = "data.agripass.authz.allow"

type Engine struct {
	query rego.PreparedEvalQuery
}

type input struct {
	Role   string `json:"role"`
	Action string `json:"action"`
}

func NewEngine(ctx context.Context) (*Engine, error) {
	capabilities := ast.CapabilitiesForThisVersion()
	capabilities.Builtins = filterBuiltins(capabilities.Builtins)
	compiler := ast.NewCompiler().WithCapabilities(capabilities)

	r := rego.New(
		rego.Query(allowQuery),
		rego.Compiler(compiler),
		rego.StrictBuiltinErrors(true),
		rego.Module("policy.rego", policySource),
	)
	prepared, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, err
	}
	return &Engine{query: prepared}, nil
}

// Allow reports whether the principal's role may perform the action.
func (e *Engine) Allow(ctx context.Context, principal domain.Principal, action string) (bool, error) {
	if e == nil {
		return false, errors.New("policy engine is nil")
	}
	results, err := e.query.Eval(ctx, rego.EvalInput(input{
		Role:   string(principal.Role),
		Action: action,
	}))
	if err != nil {
		return false, err
	}
	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return false, errors.New("empty policy result")
	}
	allowed, ok := results[0].Expressions[0].Value.(bool)
	if !ok {
		return false, errors.New("policy result is not a boolean")
	}
	return allowed, nil
}
