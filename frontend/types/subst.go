package types

// Subst is the type-level substitution primitive: it rewrites every type
// variable occurrence named in mapping, producing a new type. The input is
// never mutated. Substitution acts only on types; it knows nothing about
// signatures or shadowing, which callers handle by reducing the mapping
// before recursing.
func Subst(mapping map[string]Type, t Type) Type {
	if len(mapping) == 0 || t == nil {
		return t
	}
	switch t := t.(type) {
	case *ExtremeType, *Primitive:
		return t
	case *TypeVar:
		if replacement, ok := mapping[t.Name]; ok {
			return replacement
		}
		if t.Bound == nil {
			return t
		}
		copied := *t
		copied.Bound = Subst(mapping, t.Bound)
		return &copied
	case *AppliedType:
		copied := *t
		copied.Args = substAll(mapping, t.Args)
		return &copied
	case *FuncType:
		copied := *t
		if t.This != nil {
			copied.This = Subst(mapping, t.This)
		}
		copied.Params = substAll(mapping, t.Params)
		copied.Ret = Subst(mapping, t.Ret)
		return &copied
	case *GetterType:
		copied := *t
		copied.Val = Subst(mapping, t.Val)
		return &copied
	case *SetterType:
		copied := *t
		copied.Param = Subst(mapping, t.Param)
		return &copied
	default:
		return t
	}
}

func substAll(mapping map[string]Type, ts []Type) []Type {
	if ts == nil {
		return nil
	}
	out := make([]Type, len(ts))
	for i, t := range ts {
		out[i] = Subst(mapping, t)
	}
	return out
}
