package sig

import (
	"testing"

	"github.com/loomlang/loom/frontend/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestGenerateTestsNonGenericRunsOnce(t *testing.T) {
	ctx := types.NewEmptyTypeCtx()
	s := Signature{
		Kind:   Ordinary{},
		Params: FormalParams{{Name: "x", Type: types.IntType}},
		Ret:    types.StrType,
	}

	var seen []Signature
	err := GenerateTests(ctx, func(ctx *types.TypeCtx, instantiated Signature) error {
		seen = append(seen, instantiated)
		return nil
	}, s)

	assert.NoError(t, err)
	assert.Len(t, seen, 1)
	assert.Equal(t, s, seen[0], "the degenerate instantiation is the signature itself")
}

func TestGenerateTestsCoversBothBoundExtremes(t *testing.T) {
	ctx := types.NewEmptyTypeCtx()
	s := Signature{
		Kind: Ordinary{},
		TypeParams: []TypeParam{
			{Name: "T", Bound: types.IntType},
			{Name: "U"},
		},
		Params: FormalParams{
			{Name: "x", Type: &types.TypeVar{Name: "T"}},
			{Name: "y", Type: &types.TypeVar{Name: "U"}},
		},
		Ret: &types.TypeVar{Name: "T"},
	}

	var seen []Signature
	err := GenerateTests(ctx, func(ctx *types.TypeCtx, instantiated Signature) error {
		seen = append(seen, instantiated)
		return nil
	}, s)

	assert.NoError(t, err)
	assert.Len(t, seen, 2, "one combined instantiation per bound direction")

	upper, lower := seen[0], seen[1]

	assert.Empty(t, upper.TypeParams, "instantiation closes the own type parameters")
	assert.True(t, types.Equal(types.IntType, upper.Params[0].Type), "bounded parameter resolves to its bound")
	assert.True(t, types.Equal(types.Top, upper.Params[1].Type), "unbounded parameter resolves to the top type")
	assert.True(t, types.Equal(types.IntType, upper.Ret))

	assert.Empty(t, lower.TypeParams)
	assert.True(t, types.Equal(types.Bottom, lower.Params[0].Type))
	assert.True(t, types.Equal(types.Bottom, lower.Params[1].Type))
	assert.True(t, types.Equal(types.Bottom, lower.Ret))

	// the generic signature is untouched
	assert.Len(t, s.TypeParams, 2)
	assert.True(t, types.Equal(&types.TypeVar{Name: "T"}, s.Params[0].Type))
}

func TestInstantiationClosesShadowedEnvBinding(t *testing.T) {
	ctx := types.NewEmptyTypeCtx()
	s := Signature{
		Kind:       Ordinary{},
		TypeParams: []TypeParam{{Name: "T", Bound: types.IntType}},
		Env: NewTypeEnv().
			With("T", types.StrType).
			With("K", &types.TypeVar{Name: "T"}),
		Params: FormalParams{{Name: "x", Type: &types.TypeVar{Name: "T"}}},
		Ret:    &types.TypeVar{Name: "T"},
	}

	var seen []Signature
	err := GenerateTests(ctx, func(ctx *types.TypeCtx, instantiated Signature) error {
		seen = append(seen, instantiated)
		return nil
	}, s)
	assert.NoError(t, err)
	assert.Len(t, seen, 2)

	upper := seen[0]
	_, ok := upper.Env.Get("T")
	assert.False(t, ok, "the closed parameter's name must not resurface the outer binding")
	k, ok := upper.Env.Get("K")
	assert.True(t, ok)
	assert.True(t, types.Equal(types.IntType, k),
		"environment values referencing the parameter are rewritten")
}

func TestGenerateTestsSurfacesInstantiationFailure(t *testing.T) {
	ctx := types.NewEmptyTypeCtx()
	generic := Signature{
		Kind:       Ordinary{},
		TypeParams: []TypeParam{{Name: "T"}},
		Ret:        &types.TypeVar{Name: "T"},
	}
	boom := errors.New("return type does not check")

	t.Run("upper-bound failure stops before the lower run", func(t *testing.T) {
		calls := 0
		err := GenerateTests(ctx, func(ctx *types.TypeCtx, instantiated Signature) error {
			calls++
			return boom
		}, generic)

		assert.ErrorIs(t, err, boom)
		assert.ErrorContains(t, err, "upper-bound instantiation")
		assert.Equal(t, 1, calls)
	})

	t.Run("lower-bound failure is attributed to its direction", func(t *testing.T) {
		calls := 0
		err := GenerateTests(ctx, func(ctx *types.TypeCtx, instantiated Signature) error {
			calls++
			if calls == 2 {
				return boom
			}
			return nil
		}, generic)

		assert.ErrorIs(t, err, boom)
		assert.ErrorContains(t, err, "lower-bound instantiation")
		assert.Equal(t, 2, calls)
	})
}
