package sig

import (
	"github.com/loomlang/loom/frontend/ast"
	"github.com/loomlang/loom/frontend/lmerr"
	"github.com/loomlang/loom/frontend/types"
)

// FuncType projects the signature into the general callable type for a
// declaration or expression form, capturing the receiver type.
func FuncType(ctx *types.TypeCtx, thisType types.Type, s Signature) types.Type {
	params := make([]types.Type, len(s.Params))
	for i, param := range s.Params {
		params[i] = param.DeclaredType()
	}
	return types.WithProv(&types.FuncType{
		This:   thisType,
		Params: params,
		Ret:    protocolRet(s),
	}, s.Prov)
}

// MethodType projects the signature into the callable type of a class or
// interface member. No receiver is captured: it is implicit in dispatch.
func MethodType(ctx *types.TypeCtx, s Signature) types.Type {
	return FuncType(ctx, nil, s)
}

// protocolRet wraps the declared return type according to the kind's
// value-production protocol.
func protocolRet(s Signature) types.Type {
	ret := s.DeclaredRet()
	switch s.Kind.(type) {
	case Async:
		return &types.AppliedType{Base: "Promise", Args: []types.Type{ret}}
	case Generator:
		return &types.AppliedType{Base: "Generator", Args: []types.Type{ret}}
	case AsyncGenerator:
		return &types.AppliedType{Base: "AsyncGenerator", Args: []types.Type{ret}}
	default:
		return ret
	}
}

// GetterType returns the type of the value a getter produces. It is defined
// only for Getter-kind signatures; any other kind is a contract violation by
// the caller, reported as a NotAGetter diagnostic.
func GetterType(s Signature) (types.Type, error) {
	if _, ok := s.Kind.(Getter); !ok {
		return nil, lmerr.New(lmerr.NewNotAGetter{
			Positioner: ast.RangeOf(s.Prov.Positioner),
			Desc:       s.Kind.String(),
		})
	}
	return s.DeclaredRet(), nil
}

// SetterType returns the type of the single parameter a setter accepts,
// symmetric to GetterType.
func SetterType(s Signature) (types.Type, error) {
	if _, ok := s.Kind.(Setter); !ok {
		return nil, lmerr.New(lmerr.NewNotASetter{
			Positioner: ast.RangeOf(s.Prov.Positioner),
			Desc:       s.Kind.String(),
		})
	}
	if len(s.Params) == 0 {
		return types.Top, nil
	}
	return s.Params[0].DeclaredType(), nil
}

// ReturnLoc extracts the span of the declared return-type annotation, for
// diagnostics that must point at the annotation rather than the whole
// declaration. Falls back to the declaration's own span when unannotated.
func ReturnLoc(fn *ast.FuncSyntax) ast.Range {
	if fn.RetAnn != nil {
		return fn.RetAnn.Range
	}
	return fn.Range
}

// ToCtorSig reinterprets a signature as a constructor signature. This is the
// sole kind-changing transform: it is used when a class body's
// otherwise-ordinary declaration must be treated as its constructor.
func ToCtorSig(s Signature) Signature {
	s.Kind = Ctor{}
	return s
}

// WithTypeParams pushes the signature's own type parameters into the ambient
// type-parameter scope, runs thunk, and unconditionally restores the scope on
// every exit path, a propagated failure included.
func WithTypeParams[A any](ctx *types.TypeCtx, s Signature, thunk func() (A, error)) (A, error) {
	bindings := s.typeParamBindings()
	ctx.PushTypeParams(bindings)
	defer ctx.PopTypeParams(len(bindings))
	return thunk()
}
