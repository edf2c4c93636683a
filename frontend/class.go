package frontend

import (
	goerrors "errors"

	"github.com/google/uuid"
	"github.com/loomlang/loom/frontend/ast"
	"github.com/loomlang/loom/frontend/lmerr"
	"github.com/loomlang/loom/frontend/sig"
	"github.com/loomlang/loom/frontend/types"
)

// CheckSignature checks one signature's body end to end: its own type
// parameters are pushed into the ambient scope, the bound-instantiation
// tester produces the extremal instantiations, and each one is driven
// through the body-checking orchestrator with the reference checker's
// callbacks.
func CheckSignature(ctx *types.TypeCtx, this, super types.Type, s sig.Signature) error {
	_, err := sig.WithTypeParams(ctx, s, func() (struct{}, error) {
		err := sig.GenerateTests(ctx, func(ctx *types.TypeCtx, inst sig.Signature) error {
			checker := NewBodyChecker(inst.DeclaredRet())
			_, _, err := sig.Toplevels(uuid.New(), ctx, this, super,
				checker.CheckDecls, checker.CheckStmts, checker.CheckExpr, inst)
			return err
		}, s)
		return struct{}{}, err
	})
	return err
}

// FieldDecl is a class field with an optional initializer expression.
type FieldDecl struct {
	ast.Range
	Name string
	Type types.Type
	// Init may be nil for fields assigned only in the constructor
	Init ast.Expr
}

// MemberDecl is a named function-like class member: a method, getter,
// setter, or a declaration to be reinterpreted as the constructor.
type MemberDecl struct {
	Name string
	Sig  sig.Signature
}

// ClassDecl is the checkable surface of one class declaration.
type ClassDecl struct {
	ast.Range
	Name       string
	TypeParams []sig.TypeParam
	// Super is the parent instance type; nil for base classes
	Super types.Type
	// SuperCtor is the callable type of the parent constructor, bound to
	// `super` inside constructor bodies
	SuperCtor types.Type
	Fields    []FieldDecl
	// Ctor is the explicit constructor; nil synthesizes a default one
	Ctor    *sig.Signature
	Members []MemberDecl
	// Inherited members come from the superclass; SuperArgs maps the
	// superclass's type parameters to this class's arguments, specializing
	// each inherited signature before its type is stored
	Inherited []MemberDecl
	SuperArgs map[string]types.Type
}

// classEnv builds the type environment visible inside every member body:
// the class's own generics, bound to rigid variables.
func (decl ClassDecl) classEnv() sig.TypeEnv {
	env := sig.NewTypeEnv()
	for _, param := range decl.TypeParams {
		env = env.With(param.Name, param.TypeVar())
	}
	return env
}

// InstanceType is the type of `this` inside the class's bodies.
func (decl ClassDecl) InstanceType() types.Type {
	if len(decl.TypeParams) == 0 {
		return &types.Primitive{Name: decl.Name}
	}
	args := make([]types.Type, len(decl.TypeParams))
	for i, param := range decl.TypeParams {
		args[i] = param.TypeVar()
	}
	return &types.AppliedType{Base: decl.Name, Args: args}
}

// CheckClass checks every function-like construct of a class declaration:
// the constructor (explicit, reinterpreted, or synthesized default), field
// initializers, methods and accessors. It returns the projected type of
// each member. Language diagnostics are aggregated on the context; the
// returned error reports caller misuse only.
func CheckClass(ctx *types.TypeCtx, decl ClassDecl) (map[string]types.Type, error) {
	env := decl.classEnv()
	instance := decl.InstanceType()
	members := make(map[string]types.Type, len(decl.Members)+len(decl.Fields)+1)

	ctor := decl.ctorSig(env)
	if err := checkMember(ctx, instance, decl.SuperCtor, ctor); err != nil {
		return nil, err
	}
	ctorParams := make([]types.Type, len(ctor.Params))
	for i, param := range ctor.Params {
		ctorParams[i] = param.DeclaredType()
	}
	members["constructor"] = &types.FuncType{Params: ctorParams, Ret: instance}

	for _, field := range decl.Fields {
		if field.Init != nil {
			prov := types.ProvAt(field.Range, "field "+field.Name)
			initSig := sig.NewFieldInit(env, prov, field.Init, field.Type)
			if err := checkMember(ctx, instance, decl.Super, initSig); err != nil {
				return nil, err
			}
		}
		members[field.Name] = field.Type
	}

	for _, member := range decl.Members {
		memberSig := member.Sig
		if memberSig.Env.Len() == 0 {
			memberSig.Env = env
		}
		if err := checkMember(ctx, instance, decl.Super, memberSig); err != nil {
			return nil, err
		}
		members[member.Name] = memberType(ctx, memberSig)
	}

	// inherited generic members are specialized to this class's type
	// arguments before their types are stored
	for _, member := range decl.Inherited {
		specialized := sig.Subst(ctx, decl.SuperArgs, member.Sig)
		members[member.Name] = memberType(ctx, specialized)
	}

	return members, nil
}

// ctorSig picks the constructor to check: the explicit one (reinterpreted as
// constructor-kind when declared as an ordinary member), or a synthesized
// default stamped with the class's provenance.
func (decl ClassDecl) ctorSig(env sig.TypeEnv) sig.Signature {
	if decl.Ctor == nil {
		return sig.DefaultCtor(types.ProvAt(decl.Range, "class "+decl.Name))
	}
	ctor := *decl.Ctor
	if _, ok := ctor.Kind.(sig.Ctor); !ok {
		ctor = sig.ToCtorSig(ctor)
	}
	if ctor.Env.Len() == 0 {
		ctor.Env = env
	}
	return ctor
}

// checkMember runs a member's body check, aggregating language diagnostics
// on the context and surfacing only caller-misuse failures.
func checkMember(ctx *types.TypeCtx, this, super types.Type, s sig.Signature) error {
	err := CheckSignature(ctx, this, super, s)
	if err == nil {
		return nil
	}
	var diag lmerr.LoomError
	if goerrors.As(err, &diag) {
		ctx.AddError(diag)
		return nil
	}
	return err
}

// memberType projects a member signature into the type stored on the class:
// accessor kinds become getter/setter types, everything else a method type.
func memberType(ctx *types.TypeCtx, s sig.Signature) types.Type {
	switch s.Kind.(type) {
	case sig.Getter:
		val, err := sig.GetterType(s)
		if err != nil {
			ctx.AddFailure("getter projection failed on getter-kind signature", s.Prov.Positioner)
			return types.Top
		}
		return &types.GetterType{Val: val}
	case sig.Setter:
		param, err := sig.SetterType(s)
		if err != nil {
			ctx.AddFailure("setter projection failed on setter-kind signature", s.Prov.Positioner)
			return types.Top
		}
		return &types.SetterType{Param: param}
	default:
		return sig.MethodType(ctx, s)
	}
}
