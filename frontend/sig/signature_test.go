package sig

import (
	"testing"

	"github.com/loomlang/loom/frontend/ast"
	"github.com/loomlang/loom/frontend/lmerr"
	"github.com/loomlang/loom/frontend/types"
	"github.com/stretchr/testify/assert"
)

func TestSubstPreservesKind(t *testing.T) {
	ctx := types.NewEmptyTypeCtx()
	initExpr := &ast.Literal{Kind: ast.LitInt, Syntax: "1"}

	testCases := []struct {
		name string
		kind Kind
	}{
		{name: "ordinary", kind: Ordinary{}},
		{name: "async", kind: Async{}},
		{name: "generator", kind: Generator{}},
		{name: "async generator", kind: AsyncGenerator{}},
		{name: "predicate", kind: Predicate{}},
		{name: "constructor", kind: Ctor{}},
		{name: "field initializer", kind: FieldInit{Init: initExpr}},
		{name: "getter", kind: Getter{}},
		{name: "setter", kind: Setter{}},
	}

	mapping := map[string]types.Type{"U": types.IntType}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := Signature{
				Kind:   tc.kind,
				Params: FormalParams{{Name: "x", Type: &types.TypeVar{Name: "U"}}},
				Ret:    &types.TypeVar{Name: "U"},
			}
			substituted := Subst(ctx, mapping, s)
			assert.IsType(t, tc.kind, substituted.Kind, "kind variant must survive substitution")
			assert.True(t, types.Equal(types.IntType, substituted.Ret), "types must be rewritten")

			if init, ok := tc.kind.(FieldInit); ok {
				substitutedInit := substituted.Kind.(FieldInit)
				assert.Same(t, init.Init, substitutedInit.Init, "initializer expression is syntax, not a type")
			}
		})
	}
}

func TestSubstOwnParamShadowing(t *testing.T) {
	ctx := types.NewEmptyTypeCtx()
	s := Signature{
		Kind:       Ordinary{},
		TypeParams: []TypeParam{{Name: "T"}},
		Params:     FormalParams{{Name: "x", Type: &types.TypeVar{Name: "T"}}},
		Ret:        &types.TypeVar{Name: "U"},
	}

	substituted := Subst(ctx, map[string]types.Type{
		"T": types.IntType,
		"U": types.StrType,
	}, s)

	assert.True(t, types.Equal(&types.TypeVar{Name: "T"}, substituted.Params[0].Type),
		"own parameter T shadows the incoming substitution")
	assert.True(t, types.Equal(types.StrType, substituted.Ret),
		"non-colliding names are rewritten")
	// the input is immutable
	assert.True(t, types.Equal(&types.TypeVar{Name: "U"}, s.Ret))
}

func TestSubstRewritesEnvironment(t *testing.T) {
	ctx := types.NewEmptyTypeCtx()
	env := NewTypeEnv().With("K", &types.TypeVar{Name: "V"})
	s := Signature{Kind: Ordinary{}, Env: env, Ret: types.UnitType}

	substituted := Subst(ctx, map[string]types.Type{"V": types.BoolType}, s)

	bound, ok := substituted.Env.Get("K")
	assert.True(t, ok)
	assert.True(t, types.Equal(types.BoolType, bound))

	// a fresh environment was produced, the original is untouched
	original, _ := s.Env.Get("K")
	assert.True(t, types.Equal(&types.TypeVar{Name: "V"}, original))
}

func TestNewRejectsDuplicateTypeParams(t *testing.T) {
	_, err := New(types.Provenance{}, Ordinary{}, []TypeParam{
		{Name: "T"},
		{Name: "T"},
	}, TypeEnv{}, nil, &ast.BlockStmt{}, types.UnitType)

	assert.Error(t, err)
	var diag lmerr.LoomError
	assert.ErrorAs(t, err, &diag)
	assert.Equal(t, lmerr.NameRedeclaration, diag.Code())
}

func TestDefaultCtorIsInert(t *testing.T) {
	ctor := DefaultCtor(types.ProvAt(ast.Range{}, "class Point"))

	assert.Empty(t, ctor.TypeParams)
	assert.Empty(t, ctor.Params)
	assert.IsType(t, Ctor{}, ctor.Kind)
	assert.True(t, types.Equal(types.UnitType, ctor.Ret))
	assert.NotNil(t, ctor.Body)
	assert.Empty(t, ctor.Body.Stmts)
}

func TestProjectionPartiality(t *testing.T) {
	getter := Signature{Kind: Getter{}, Ret: types.IntType}
	setter := Signature{
		Kind:   Setter{},
		Params: FormalParams{{Name: "value", Type: types.StrType}},
		Ret:    types.UnitType,
	}

	t.Run("getter type is the declared return exactly", func(t *testing.T) {
		val, err := GetterType(getter)
		assert.NoError(t, err)
		assert.True(t, types.Equal(types.IntType, val))
	})

	t.Run("getter projection rejects every other kind", func(t *testing.T) {
		for _, s := range []Signature{setter, {Kind: Ordinary{}}, {Kind: Ctor{}}} {
			_, err := GetterType(s)
			var diag lmerr.LoomError
			assert.ErrorAs(t, err, &diag)
			assert.Equal(t, lmerr.NotAGetter, diag.Code())
		}
	})

	t.Run("setter type is the single parameter", func(t *testing.T) {
		param, err := SetterType(setter)
		assert.NoError(t, err)
		assert.True(t, types.Equal(types.StrType, param))
	})

	t.Run("setter projection rejects every other kind", func(t *testing.T) {
		for _, s := range []Signature{getter, {Kind: Ordinary{}}, {Kind: Ctor{}}} {
			_, err := SetterType(s)
			var diag lmerr.LoomError
			assert.ErrorAs(t, err, &diag)
			assert.Equal(t, lmerr.NotASetter, diag.Code())
		}
	})
}

func TestToCtorSigIsTheOnlyKindChange(t *testing.T) {
	s := Signature{
		Kind:   Ordinary{},
		Params: FormalParams{{Name: "x", Type: types.IntType}},
		Ret:    types.UnitType,
	}
	ctor := ToCtorSig(s)

	assert.IsType(t, Ctor{}, ctor.Kind)
	assert.Equal(t, s.Params, ctor.Params)
	assert.True(t, types.Equal(s.Ret, ctor.Ret))
	// the original value is unchanged
	assert.IsType(t, Ordinary{}, s.Kind)
}

func TestReturnLoc(t *testing.T) {
	annRange := ast.Range{PosStart: 10, PosEnd: 16}
	fnRange := ast.Range{PosStart: 1, PosEnd: 30}

	withAnn := &ast.FuncSyntax{Range: fnRange, RetAnn: &ast.TypeAnn{Range: annRange, Name: "Int"}}
	withoutAnn := &ast.FuncSyntax{Range: fnRange}

	assert.Equal(t, annRange, ReturnLoc(withAnn))
	assert.Equal(t, fnRange, ReturnLoc(withoutAnn))
}

func TestMethodAndFuncTypeProjection(t *testing.T) {
	ctx := types.NewEmptyTypeCtx()
	s := Signature{
		Kind:   Ordinary{},
		Params: FormalParams{{Name: "x", Type: types.IntType}},
		Ret:    types.StrType,
	}

	this := &types.Primitive{Name: "Point"}
	fnType, ok := FuncType(ctx, this, s).(*types.FuncType)
	assert.True(t, ok)
	assert.True(t, types.Equal(this, fnType.This))
	assert.Len(t, fnType.Params, 1)
	assert.True(t, types.Equal(types.StrType, fnType.Ret))

	methodType, ok := MethodType(ctx, s).(*types.FuncType)
	assert.True(t, ok)
	assert.Nil(t, methodType.This, "a method's receiver is implicit in dispatch")
}

func TestProtocolReturnWrapping(t *testing.T) {
	ctx := types.NewEmptyTypeCtx()
	testCases := []struct {
		name     string
		kind     Kind
		wantBase string
	}{
		{name: "async wraps in Promise", kind: Async{}, wantBase: "Promise"},
		{name: "generator wraps in Generator", kind: Generator{}, wantBase: "Generator"},
		{name: "async generator wraps in AsyncGenerator", kind: AsyncGenerator{}, wantBase: "AsyncGenerator"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := Signature{Kind: tc.kind, Ret: types.IntType}
			fnType := MethodType(ctx, s).(*types.FuncType)
			applied, ok := fnType.Ret.(*types.AppliedType)
			assert.True(t, ok)
			assert.Equal(t, tc.wantBase, applied.Base)
			assert.True(t, types.Equal(types.IntType, applied.Args[0]))
		})
	}
}
