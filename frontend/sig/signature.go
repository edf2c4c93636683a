// Package sig models every checkable function-like construct of Loom as a
// uniform signature value: ordinary functions, async/generator variants,
// class constructors, field initializers, predicates, getters and setters.
// A Signature is created once per declaration, substituted zero or more times
// as it flows into contexts with different type bindings, checked at most
// once per concrete instantiation, and discarded once the checker has
// recorded the resulting function type.
package sig

import (
	"fmt"
	"iter"

	"github.com/benbjohnson/immutable"
	set "github.com/hashicorp/go-set/v3"
	"github.com/loomlang/loom/frontend/ast"
	"github.com/loomlang/loom/frontend/lmerr"
	"github.com/loomlang/loom/frontend/types"
)

// Kind is the closed set of function-like flavors. Each variant owns exactly
// the data relevant to it. A signature's kind is stable under substitution
// and instantiation; ToCtorSig is the sole sanctioned kind-changing
// operation.
type Kind interface {
	fmt.Stringer
	kindNode()
}

var (
	_ Kind = Ordinary{}
	_ Kind = Async{}
	_ Kind = Generator{}
	_ Kind = AsyncGenerator{}
	_ Kind = Predicate{}
	_ Kind = Ctor{}
	_ Kind = FieldInit{}
	_ Kind = Getter{}
	_ Kind = Setter{}
)

type Ordinary struct{}

func (Ordinary) kindNode()      {}
func (Ordinary) String() string { return "function" }

type Async struct{}

func (Async) kindNode()      {}
func (Async) String() string { return "async function" }

type Generator struct{}

func (Generator) kindNode()      {}
func (Generator) String() string { return "generator" }

type AsyncGenerator struct{}

func (AsyncGenerator) kindNode()      {}
func (AsyncGenerator) String() string { return "async generator" }

// Predicate is a boolean function whose truthiness refines its argument's
// type at use sites.
type Predicate struct{}

func (Predicate) kindNode()      {}
func (Predicate) String() string { return "predicate function" }

type Ctor struct{}

func (Ctor) kindNode()      {}
func (Ctor) String() string { return "constructor" }

// FieldInit wraps a class field's initializer expression as a zero-parameter
// function whose return type is the field's declared type. Reusing the
// function-checking machinery here keeps this/super resolution identical to
// a method body.
type FieldInit struct {
	Init ast.Expr
}

func (FieldInit) kindNode()      {}
func (FieldInit) String() string { return "field initializer" }

type Getter struct{}

func (Getter) kindNode()      {}
func (Getter) String() string { return "getter" }

type Setter struct{}

func (Setter) kindNode()      {}
func (Setter) String() string { return "setter" }

// TypeParam is one generic placeholder declared by a signature.
type TypeParam struct {
	ast.Range
	Name string
	// Bound is the upper bound; nil means unbounded (any)
	Bound    types.Type
	Variance Variance
}

// UpperBound returns the parameter's bound, or Top when unbounded.
func (p TypeParam) UpperBound() types.Type {
	if p.Bound == nil {
		return types.Top
	}
	return p.Bound
}

// TypeVar returns the rigid variable standing for this parameter inside the
// signature's body.
func (p TypeParam) TypeVar() *types.TypeVar {
	return &types.TypeVar{Name: p.Name, Bound: p.Bound}
}

// TypeEnv captures type bindings from an enclosing scope, such as a class's
// own generics visible inside its methods. It is read-only input: extending
// it produces a fresh environment, never patches one in place.
type TypeEnv struct {
	m *immutable.Map[string, types.Type]
}

func NewTypeEnv() TypeEnv {
	return TypeEnv{m: immutable.NewMap[string, types.Type](nil)}
}

// With returns a fresh environment extended with one binding.
func (e TypeEnv) With(name string, t types.Type) TypeEnv {
	if e.m == nil {
		e = NewTypeEnv()
	}
	return TypeEnv{m: e.m.Set(name, t)}
}

func (e TypeEnv) Get(name string) (types.Type, bool) {
	if e.m == nil {
		return nil, false
	}
	return e.m.Get(name)
}

func (e TypeEnv) Len() int {
	if e.m == nil {
		return 0
	}
	return e.m.Len()
}

func (e TypeEnv) All() iter.Seq2[string, types.Type] {
	return func(yield func(string, types.Type) bool) {
		if e.m == nil {
			return
		}
		itr := e.m.Iterator()
		for !itr.Done() {
			name, t, _ := itr.Next()
			if !yield(name, t) {
				return
			}
		}
	}
}

// FormalParam is one entry of a signature's ordered parameter list.
type FormalParam struct {
	ast.Range
	Name string
	// Type is the declared parameter type; nil means unannotated (any)
	Type types.Type
}

// DeclaredType returns the parameter's type, or Top when unannotated.
func (p FormalParam) DeclaredType() types.Type {
	if p.Type == nil {
		return types.Top
	}
	return p.Type
}

// FormalParams is the ordered parameter list of a signature. The core treats
// it as a value the substitution engine can rewrite and the body-checking
// orchestrator can bind into scope.
type FormalParams []FormalParam

// Signature is the checkable contract of one function-like construct.
// The zero value is not meaningful; construct with New or with one of the
// synthesizing constructors.
type Signature struct {
	Prov types.Provenance
	Kind Kind
	// TypeParams are the signature's own generics. Names are unique within
	// the list; a name colliding with the outer environment shadows it.
	TypeParams []TypeParam
	// Env holds type bindings from the enclosing scope
	Env    TypeEnv
	Params FormalParams
	// Body is the unchecked body, shared with the originating declaration.
	// It is nil for expression-form kinds (field initializers).
	Body *ast.BlockStmt
	// Ret is the declared return type
	Ret types.Type
}

// New builds a signature, rejecting duplicate own type-parameter names.
func New(prov types.Provenance, kind Kind, typeParams []TypeParam, env TypeEnv, params FormalParams, body *ast.BlockStmt, ret types.Type) (Signature, error) {
	seen := set.New[string](len(typeParams))
	for _, param := range typeParams {
		if !seen.Insert(param.Name) {
			return Signature{}, lmerr.New(lmerr.NewNameRedeclaration{
				Positioner: param.Range,
				Name:       param.Name,
			})
		}
	}
	return Signature{
		Prov:       prov,
		Kind:       kind,
		TypeParams: typeParams,
		Env:        env,
		Params:     params,
		Body:       body,
		Ret:        ret,
	}, nil
}

// DefaultCtor synthesizes the constructor of a class that declares none:
// no type parameters, no formal parameters, an empty body, and a no-value
// return type. The body-checking orchestrator must still run it so implicit
// behaviors such as the implicit super-call are uniformly handled.
func DefaultCtor(prov types.Provenance) Signature {
	return Signature{
		Prov: prov.Wrapping(types.Provenance{Desc: "default constructor"}),
		Kind: Ctor{},
		Body: &ast.BlockStmt{Range: ast.RangeOf(prov.Positioner)},
		Ret:  types.UnitType,
	}
}

// NewFieldInit wraps a field's initializer expression as a zero-parameter
// signature returning the field's declared type, under the given outer type
// environment so class generics stay visible while checking the initializer.
func NewFieldInit(env TypeEnv, prov types.Provenance, init ast.Expr, ret types.Type) Signature {
	return Signature{
		Prov: prov.Wrapping(types.Provenance{Desc: "field initializer"}),
		Kind: FieldInit{Init: init},
		Env:  env,
		Ret:  ret,
	}
}

// DeclaredRet returns the declared return type, or Top when unannotated.
func (s Signature) DeclaredRet() types.Type {
	if s.Ret == nil {
		return types.Top
	}
	return s.Ret
}

// IsGeneric reports whether the signature declares own type parameters.
func (s Signature) IsGeneric() bool { return len(s.TypeParams) > 0 }

// ownParamNames collects the signature's own type-parameter names, the set
// that shadows any incoming substitution or outer environment binding.
func (s Signature) ownParamNames() *set.Set[string] {
	names := set.New[string](len(s.TypeParams))
	for _, param := range s.TypeParams {
		names.Insert(param.Name)
	}
	return names
}

// typeParamBindings lowers the own type-parameter list into ambient-scope
// entries, in declaration order.
func (s Signature) typeParamBindings() []types.TypeParamBinding {
	bindings := make([]types.TypeParamBinding, 0, len(s.TypeParams))
	for _, param := range s.TypeParams {
		bindings = append(bindings, types.TypeParamBinding{Fst: param.Name, Snd: param.UpperBound()})
	}
	return bindings
}

// envBindings lowers the outer type environment into ambient-scope entries.
// An entry whose name collides with an own type parameter is dropped: inside
// the body that name resolves to the parameter, never the outer binding.
func (s Signature) envBindings() []types.TypeParamBinding {
	own := s.ownParamNames()
	bindings := make([]types.TypeParamBinding, 0, s.Env.Len())
	for name, t := range s.Env.All() {
		if own.Contains(name) {
			continue
		}
		bindings = append(bindings, types.TypeParamBinding{Fst: name, Snd: t})
	}
	return bindings
}
