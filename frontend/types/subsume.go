package types

// IsSubtype decides this <: that on the small lattice this checker needs:
// extremes, primitives, rigid bounded variables, applied constructors
// (invariant) and function/accessor types with the usual polarities.
// It is deliberately not a unifier.
func (ctx *TypeCtx) IsSubtype(this, that Type) bool {
	if Equal(this, that) {
		return true
	}
	if extreme, ok := this.(*ExtremeType); ok && extreme.Polarity {
		return true
	}
	if extreme, ok := that.(*ExtremeType); ok && !extreme.Polarity {
		return true
	}
	// a rigid variable is below everything its upper bound is below
	if thisVar, ok := this.(*TypeVar); ok {
		return ctx.IsSubtype(thisVar.UpperBound(), that)
	}
	if _, ok := that.(*TypeVar); ok {
		return false
	}
	{
		thisFn, okThis := this.(*FuncType)
		thatFn, okThat := that.(*FuncType)
		if okThis && okThat {
			if len(thisFn.Params) != len(thatFn.Params) {
				return false
			}
			for i, param := range thatFn.Params {
				if !ctx.IsSubtype(param, thisFn.Params[i]) {
					return false
				}
			}
			return ctx.IsSubtype(thisFn.Ret, thatFn.Ret)
		}
		if okThis || okThat {
			return false
		}
	}
	{
		thisGet, okThis := this.(*GetterType)
		thatGet, okThat := that.(*GetterType)
		if okThis && okThat {
			return ctx.IsSubtype(thisGet.Val, thatGet.Val)
		}
		thisSet, okThisSet := this.(*SetterType)
		thatSet, okThatSet := that.(*SetterType)
		if okThisSet && okThatSet {
			return ctx.IsSubtype(thatSet.Param, thisSet.Param)
		}
		if okThis || okThat || okThisSet || okThatSet {
			return false
		}
	}
	{
		thisApp, okThis := this.(*AppliedType)
		thatApp, okThat := that.(*AppliedType)
		if okThis && okThat {
			if thisApp.Base != thatApp.Base || len(thisApp.Args) != len(thatApp.Args) {
				return false
			}
			for i, arg := range thisApp.Args {
				if !Equal(arg, thatApp.Args[i]) {
					return false
				}
			}
			return true
		}
	}
	return false
}
