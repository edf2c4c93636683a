package types

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"strings"
)

// Type is the general type representation consumed by unification and
// compatibility code across the checker. The variant set is closed: prov is
// unexported so only this package can add variants.
type Type interface {
	fmt.Stringer
	Hash() uint64
	prov() Provenance
}

var (
	_ Type = (*ExtremeType)(nil)
	_ Type = (*Primitive)(nil)
	_ Type = (*TypeVar)(nil)
	_ Type = (*AppliedType)(nil)
	_ Type = (*FuncType)(nil)
	_ Type = (*GetterType)(nil)
	_ Type = (*SetterType)(nil)
)

// ExtremeType is one of the two lattice extremes.
// Polarity true means Bottom (no value has this type), false means Top.
type ExtremeType struct {
	Polarity bool
	withProvenance
}

var Bottom Type = &ExtremeType{Polarity: true}
var Top Type = &ExtremeType{Polarity: false}

func (t *ExtremeType) String() string {
	if t.Polarity {
		return "nothing"
	}
	return "any"
}

func (t *ExtremeType) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("ExtremeType"))
	if t.Polarity {
		_, _ = h.Write([]byte{1})
	} else {
		_, _ = h.Write([]byte{0})
	}
	return h.Sum64()
}

// Primitive is a builtin nominal type such as Int or Str.
type Primitive struct {
	Name string
	withProvenance
}

var (
	IntType  Type = &Primitive{Name: "Int"}
	StrType  Type = &Primitive{Name: "Str"}
	BoolType Type = &Primitive{Name: "Bool"}
	// UnitType is the "no value" type: the declared return of procedures,
	// setters and constructors
	UnitType Type = &Primitive{Name: "Unit"}
)

func (t *Primitive) String() string { return t.Name }

func (t *Primitive) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("Primitive"))
	_, _ = h.Write([]byte(t.Name))
	return h.Sum64()
}

// TypeVar is a rigid type variable standing for a type parameter in scope.
// It is identified by name: substitution maps names to types, and a
// signature's own parameter strictly shadows an outer binding of the same
// name.
type TypeVar struct {
	Name string
	// Bound is the upper bound; nil means Top
	Bound Type
	withProvenance
}

func (t *TypeVar) String() string { return t.Name }

func (t *TypeVar) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("TypeVar"))
	_, _ = h.Write([]byte(t.Name))
	return h.Sum64()
}

// UpperBound returns the variable's bound, or Top when unbounded.
func (t *TypeVar) UpperBound() Type {
	if t.Bound == nil {
		return Top
	}
	return t.Bound
}

// AppliedType is a named type constructor applied to arguments,
// e.g. Promise<Int> or Generator<T>.
type AppliedType struct {
	Base string
	Args []Type
	withProvenance
}

func (t *AppliedType) String() string {
	args := make([]string, len(t.Args))
	for i, arg := range t.Args {
		args[i] = arg.String()
	}
	return t.Base + "<" + strings.Join(args, ", ") + ">"
}

func (t *AppliedType) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("AppliedType"))
	_, _ = h.Write([]byte(t.Base))
	arr := make([]byte, 0)
	for _, arg := range t.Args {
		arr = binary.LittleEndian.AppendUint64(arr, arg.Hash())
	}
	_, _ = h.Write(arr)
	return h.Sum64()
}

// FuncType is the general callable type.
type FuncType struct {
	// This is the captured receiver type; nil for plain functions and for
	// methods, whose receiver is implicit in dispatch
	This   Type
	Params []Type
	Ret    Type
	withProvenance
}

func (t *FuncType) String() string {
	params := make([]string, len(t.Params))
	for i, param := range t.Params {
		params[i] = param.String()
	}
	return "fn(" + strings.Join(params, ", ") + ") -> " + t.Ret.String()
}

func (t *FuncType) Hash() uint64 {
	h := fnv.New64a()
	arr := []byte("FuncType")
	if t.This != nil {
		arr = binary.LittleEndian.AppendUint64(arr, t.This.Hash())
	}
	for _, param := range t.Params {
		arr = binary.LittleEndian.AppendUint64(arr, param.Hash())
	}
	arr = binary.LittleEndian.AppendUint64(arr, t.Ret.Hash())
	_, _ = h.Write(arr)
	return h.Sum64()
}

// GetterType is the type of a property read through an accessor.
type GetterType struct {
	Val Type
	withProvenance
}

func (t *GetterType) String() string { return "get -> " + t.Val.String() }

func (t *GetterType) Hash() uint64 {
	h := fnv.New64a()
	arr := []byte("GetterType")
	arr = binary.LittleEndian.AppendUint64(arr, t.Val.Hash())
	_, _ = h.Write(arr)
	return h.Sum64()
}

// SetterType is the type of a property write through an accessor.
type SetterType struct {
	Param Type
	withProvenance
}

func (t *SetterType) String() string { return "set " + t.Param.String() }

func (t *SetterType) Hash() uint64 {
	h := fnv.New64a()
	arr := []byte("SetterType")
	arr = binary.LittleEndian.AppendUint64(arr, t.Param.Hash())
	_, _ = h.Write(arr)
	return h.Sum64()
}

// WithProv returns a copy of t carrying the given provenance.
func WithProv(t Type, prov Provenance) Type {
	switch t := t.(type) {
	case *ExtremeType:
		copied := *t
		copied.withProvenance = prov.embed()
		return &copied
	case *Primitive:
		copied := *t
		copied.withProvenance = prov.embed()
		return &copied
	case *TypeVar:
		copied := *t
		copied.withProvenance = prov.embed()
		return &copied
	case *AppliedType:
		copied := *t
		copied.withProvenance = prov.embed()
		return &copied
	case *FuncType:
		copied := *t
		copied.withProvenance = prov.embed()
		return &copied
	case *GetterType:
		copied := *t
		copied.withProvenance = prov.embed()
		return &copied
	case *SetterType:
		copied := *t
		copied.withProvenance = prov.embed()
		return &copied
	default:
		return t
	}
}

// ProvOf exposes a type's provenance for diagnostics.
func ProvOf(t Type) Provenance {
	if t == nil {
		return emptyProv
	}
	return t.prov()
}

// Equal compares two types structurally, ignoring provenance.
func Equal(this, that Type) bool {
	if this == nil || that == nil {
		return this == that
	}
	return this.Hash() == that.Hash()
}
