package ast

import (
	"encoding/binary"
	"hash/fnv"
)

var (
	_ Expr = (*Var)(nil)
	_ Expr = (*Literal)(nil)
	_ Expr = (*Call)(nil)
	_ Expr = (*FuncSyntax)(nil)
)

// SuperName is the reserved identifier for the enclosing class's parent,
// visible inside constructor and method bodies.
const SuperName = "super"

// ThisName is the reserved identifier for the receiver inside method,
// accessor, field-initializer and constructor bodies.
const ThisName = "this"

// Var is an identifier occurrence.
type Var struct {
	Range
	Name string
}

func (*Var) exprNode() {}

func (e *Var) Hash() uint64 {
	h := fnv.New64a()
	arr := []byte("Var")
	_, _ = h.Write([]byte(e.Name))
	arr = binary.LittleEndian.AppendUint64(arr, e.Range.Hash())
	_, _ = h.Write(arr)
	return h.Sum64()
}

type LitKind uint8

const (
	_ LitKind = iota
	LitInt
	LitStr
	LitBool
)

func (k LitKind) String() string {
	switch k {
	case LitInt:
		return "int"
	case LitStr:
		return "string"
	case LitBool:
		return "bool"
	default:
		return "invalid"
	}
}

// Literal is a literal constant, kept as its source syntax.
type Literal struct {
	Range
	Kind   LitKind
	Syntax string
}

func (*Literal) exprNode() {}

func (e *Literal) Hash() uint64 {
	h := fnv.New64a()
	arr := []byte("Literal")
	_, _ = h.Write([]byte{byte(e.Kind)})
	_, _ = h.Write([]byte(e.Syntax))
	arr = binary.LittleEndian.AppendUint64(arr, e.Range.Hash())
	_, _ = h.Write(arr)
	return h.Sum64()
}

// Call is a function or method application.
// A call whose Fn is Var{Name: SuperName} is an explicit super-call.
type Call struct {
	Range
	Fn   Expr
	Args []Expr
}

func (*Call) exprNode() {}

func (e *Call) Hash() uint64 {
	h := fnv.New64a()
	arr := []byte("Call")
	if e.Fn != nil {
		arr = binary.LittleEndian.AppendUint64(arr, e.Fn.Hash())
	}
	for _, arg := range e.Args {
		arr = binary.LittleEndian.AppendUint64(arr, arg.Hash())
	}
	arr = binary.LittleEndian.AppendUint64(arr, e.Range.Hash())
	_, _ = h.Write(arr)
	return h.Sum64()
}

// IsSuperCall reports whether s is an expression statement containing an
// explicit super-call.
func IsSuperCall(s Stmt) bool {
	exprStmt, ok := s.(*ExprStmt)
	if !ok {
		return false
	}
	call, ok := exprStmt.X.(*Call)
	if !ok {
		return false
	}
	fn, ok := call.Fn.(*Var)
	return ok && fn.Name == SuperName
}
