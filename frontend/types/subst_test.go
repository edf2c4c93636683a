package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubst(t *testing.T) {
	mapping := map[string]Type{"T": IntType}

	testCases := []struct {
		name string
		in   Type
		want Type
	}{
		{
			name: "mapped variable is replaced",
			in:   &TypeVar{Name: "T"},
			want: IntType,
		},
		{
			name: "unmapped variable is untouched",
			in:   &TypeVar{Name: "U"},
			want: &TypeVar{Name: "U"},
		},
		{
			name: "primitive is untouched",
			in:   StrType,
			want: StrType,
		},
		{
			name: "extremes are untouched",
			in:   Bottom,
			want: Bottom,
		},
		{
			name: "applied arguments are rewritten",
			in:   &AppliedType{Base: "Promise", Args: []Type{&TypeVar{Name: "T"}}},
			want: &AppliedType{Base: "Promise", Args: []Type{IntType}},
		},
		{
			name: "function parameters and return are rewritten",
			in: &FuncType{
				Params: []Type{&TypeVar{Name: "T"}, StrType},
				Ret:    &TypeVar{Name: "T"},
			},
			want: &FuncType{
				Params: []Type{IntType, StrType},
				Ret:    IntType,
			},
		},
		{
			name: "receiver is rewritten",
			in:   &FuncType{This: &TypeVar{Name: "T"}, Ret: UnitType},
			want: &FuncType{This: IntType, Ret: UnitType},
		},
		{
			name: "getter value is rewritten",
			in:   &GetterType{Val: &TypeVar{Name: "T"}},
			want: &GetterType{Val: IntType},
		},
		{
			name: "setter parameter is rewritten",
			in:   &SetterType{Param: &TypeVar{Name: "T"}},
			want: &SetterType{Param: IntType},
		},
		{
			name: "nested occurrences are all rewritten",
			in: &FuncType{
				Params: []Type{&AppliedType{Base: "Generator", Args: []Type{&TypeVar{Name: "T"}}}},
				Ret:    &GetterType{Val: &TypeVar{Name: "T"}},
			},
			want: &FuncType{
				Params: []Type{&AppliedType{Base: "Generator", Args: []Type{IntType}}},
				Ret:    &GetterType{Val: IntType},
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Subst(mapping, tc.in)
			assert.True(t, Equal(tc.want, got), "want %s, got %s", tc.want, got)
		})
	}
}

func TestSubstNeverMutatesInput(t *testing.T) {
	in := &FuncType{
		Params: []Type{&TypeVar{Name: "T"}},
		Ret:    &TypeVar{Name: "T"},
	}
	_ = Subst(map[string]Type{"T": IntType}, in)

	assert.True(t, Equal(&TypeVar{Name: "T"}, in.Params[0]))
	assert.True(t, Equal(&TypeVar{Name: "T"}, in.Ret))
}

func TestSubstEmptyMappingIsIdentity(t *testing.T) {
	in := &FuncType{Params: []Type{&TypeVar{Name: "T"}}, Ret: UnitType}
	assert.Same(t, Type(in), Subst(nil, in))
	assert.Nil(t, Subst(map[string]Type{"T": IntType}, nil))
}

func TestSubstRewritesVariableBounds(t *testing.T) {
	in := &TypeVar{Name: "U", Bound: &TypeVar{Name: "T"}}
	got := Subst(map[string]Type{"T": IntType}, in)

	gotVar, ok := got.(*TypeVar)
	assert.True(t, ok)
	assert.Equal(t, "U", gotVar.Name)
	assert.True(t, Equal(IntType, gotVar.Bound))
	// the original keeps its bound
	assert.True(t, Equal(&TypeVar{Name: "T"}, in.Bound))
}
