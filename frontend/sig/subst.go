package sig

import (
	"github.com/loomlang/loom/frontend/types"
)

// Subst rewrites every type occurring in the signature's environment, formal
// parameters and declared return type under the given mapping, producing a
// new signature; the input is immutable. The signature's own type parameters
// are never substituted: an own parameter whose name collides with a mapping
// key strictly shadows the incoming substitution, so the effective mapping is
// computed with the own names removed before recursing. The unchecked body is
// syntax and is left untouched.
func Subst(ctx *types.TypeCtx, mapping map[string]types.Type, s Signature) Signature {
	reduced := s.reduceMapping(mapping)
	if len(reduced) == 0 {
		return s
	}
	return s.substTypes(reduced)
}

// reduceMapping removes entries shadowed by the signature's own parameters.
func (s Signature) reduceMapping(mapping map[string]types.Type) map[string]types.Type {
	if len(mapping) == 0 {
		return nil
	}
	own := s.ownParamNames()
	reduced := make(map[string]types.Type, len(mapping))
	for name, t := range mapping {
		if own.Contains(name) {
			continue
		}
		reduced[name] = t
	}
	return reduced
}

// substTypes applies mapping to every type position of the signature,
// without any shadowing reduction. The kind tag is preserved; only types are
// rewritten, never the carried syntax.
func (s Signature) substTypes(mapping map[string]types.Type) Signature {
	out := s

	out.TypeParams = make([]TypeParam, len(s.TypeParams))
	for i, param := range s.TypeParams {
		param.Bound = types.Subst(mapping, param.Bound)
		out.TypeParams[i] = param
	}

	env := NewTypeEnv()
	for name, t := range s.Env.All() {
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
