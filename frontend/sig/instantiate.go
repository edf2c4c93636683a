package sig

import (
	"github.com/loomlang/loom/frontend/types"
	"github.com/pkg/errors"
)

// TestCheck is invoked once per bound instantiation produced by
// GenerateTests.
type TestCheck func(ctx *types.TypeCtx, instantiated Signature) error

// GenerateTests stress-tests a generic signature against its bound extremes.
// It produces one instantiation with every own type parameter resolved to its
// upper bound and one with every parameter resolved to the bottom type, and
// invokes check once per instantiation. A signature that checks under both
// extremes is treated as sound for every instantiation between them; this is
// conservative, not full parametric checking. With zero own type parameters
// the single degenerate instantiation is the signature itself.
//
// All parameters are instantiated simultaneously, one combined test per bound
// direction, rather than a per-parameter cross product.
func GenerateTests(ctx *types.TypeCtx, check TestCheck, s Signature) error {
	if !s.IsGeneric() {
		return check(ctx, s)
	}

	upper := make(map[string]types.Type, len(s.TypeParams))
	lower := make(map[string]types.Type, len(s.TypeParams))
	for _, param := range s.TypeParams {
		upper[param.Name] = param.UpperBound()
		lower[param.Name] = types.Bottom
	}

	ctx.Logger().Debug("testing bound instantiations",
		"signature", s.Prov.Desc,
		"typeParams", len(s.TypeParams),
	)

	if err := check(ctx, s.instantiate(upper)); err != nil {
		return errors.Wrap(err, "under upper-bound instantiation")
	}
	if err := check(ctx, s.instantiate(lower)); err != nil {
		return errors.Wrap(err, "under lower-bound instantiation")
	}
	return nil
}

// instantiate closes the signature's own type parameters over mapping: the
// own list becomes empty and its former occurrences in parameter, return and
// environment positions are rewritten. This deliberately bypasses Subst's
// shadowing rule, which exists to protect exactly these names from outer
// substitutions. An environment entry named after a closed parameter is
// dropped rather than carried: the parameter shadowed it for this body, and
// with the parameter gone the stale outer binding must not resurface.
func (s Signature) instantiate(mapping map[string]types.Type) Signature {
	out := s
	out.TypeParams = nil

	env := NewTypeEnv()
	for name, t := range s.Env.All() {
		if _, owned := mapping[name]; owned {
			continue
		}
		env = env.With(name, types.Subst(mapping, t))
	}
	out.Env = env

	out.Params = make(FormalParams, len(s.Params))
	for i, param := range s.Params {
		param.Type = types.Subst(mapping, param.Type)
		out.Params[i] = param
	}
	out.Ret = types.Subst(mapping, s.Ret)
	return out
}
