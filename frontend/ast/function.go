package ast

import (
	"encoding/binary"
	"hash/fnv"
)

// TypeAnn is a source-level type annotation, kept as text plus its span.
// Resolving it to a checker type happens outside the AST.
type TypeAnn struct {
	Range
	Name string
}

func (a *TypeAnn) Hash() uint64 {
	h := fnv.New64a()
	arr := []byte("TypeAnn")
	_, _ = h.Write([]byte(a.Name))
	arr = binary.LittleEndian.AppendUint64(arr, a.Range.Hash())
	_, _ = h.Write(arr)
	return h.Sum64()
}

// ParamSyntax is one formal parameter as written in the source.
type ParamSyntax struct {
	Range
	Name string
	// Ann may be nil when the parameter is unannotated
	Ann *TypeAnn
}

func (p *ParamSyntax) Hash() uint64 {
	h := fnv.New64a()
	arr := []byte("ParamSyntax")
	_, _ = h.Write([]byte(p.Name))
	arr = binary.LittleEndian.AppendUint64(arr, p.Range.Hash())
	if p.Ann != nil {
		arr = binary.LittleEndian.AppendUint64(arr, p.Ann.Hash())
	}
	_, _ = h.Write(arr)
	return h.Sum64()
}

// FuncSyntax is the source form of a function-like declaration or expression.
// Diagnostics that must point at the declared return type rather than the
// whole declaration use RetAnn's span.
type FuncSyntax struct {
	Range
	Name   string
	Params []ParamSyntax
	// RetAnn may be nil when the return type is unannotated
	RetAnn *TypeAnn
	// Body may be nil for abstract or synthesized declarations
	Body *BlockStmt
}

func (*FuncSyntax) exprNode() {}

func (f *FuncSyntax) Hash() uint64 {
	h := fnv.New64a()
	arr := []byte("FuncSyntax")
	_, _ = h.Write([]byte(f.Name))
	arr = binary.LittleEndian.AppendUint64(arr, f.Range.Hash())
	for _, param := range f.Params {
		arr = binary.LittleEndian.AppendUint64(arr, (&param).Hash())
	}
	if f.RetAnn != nil {
		arr = binary.LittleEndian.AppendUint64(arr, f.RetAnn.Hash())
	}
	if f.Body != nil {
		arr = binary.LittleEndian.AppendUint64(arr, f.Body.Hash())
	}
	_, _ = h.Write(arr)
	return h.Sum64()
}
