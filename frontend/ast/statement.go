package ast

import (
	"encoding/binary"
	"hash/fnv"
)

var (
	_ Stmt = (*BlockStmt)(nil)
	_ Stmt = (*ExprStmt)(nil)
	_ Stmt = (*ReturnStmt)(nil)
	_ Stmt = (*LetStmt)(nil)
)

// BlockStmt represents a block of statements enclosed in braces.
type BlockStmt struct {
	Range
	Stmts []Stmt
}

func (*BlockStmt) stmtNode() {}

func (s *BlockStmt) Hash() uint64 {
	h := fnv.New64a()
	arr := []byte("BlockStmt")
	arr = binary.LittleEndian.AppendUint64(arr, s.Range.Hash())
	for _, stmt := range s.Stmts {
		if stmt != nil {
			arr = binary.LittleEndian.AppendUint64(arr, stmt.Hash())
		}
	}
	_, _ = h.Write(arr)
	return h.Sum64()
}

// ExprStmt represents an expression used as a statement.
type ExprStmt struct {
	Range
	X Expr
}

func (*ExprStmt) stmtNode() {}

func (s *ExprStmt) Hash() uint64 {
	h := fnv.New64a()
	arr := []byte("ExprStmt")
	arr = binary.LittleEndian.AppendUint64(arr, s.Range.Hash())
	if s.X != nil {
		arr = binary.LittleEndian.AppendUint64(arr, s.X.Hash())
	}
	_, _ = h.Write(arr)
	return h.Sum64()
}

// ReturnStmt returns X from the enclosing function body.
// X may be nil for a bare return.
type ReturnStmt struct {
	Range
	X Expr
}

func (*ReturnStmt) stmtNode() {}

func (s *ReturnStmt) Hash() uint64 {
	h := fnv.New64a()
	arr := []byte("ReturnStmt")
	arr = binary.LittleEndian.AppendUint64(arr, s.Range.Hash())
	if s.X != nil {
		arr = binary.LittleEndian.AppendUint64(arr, s.X.Hash())
	}
	_, _ = h.Write(arr)
	return h.Sum64()
}

// LetStmt binds a name to the value of an expression for the rest of the
// enclosing block. Let bindings are hoisted: the name is visible to every
// statement of the block, so mutually-referring declarations resolve.
type LetStmt struct {
	Range
	Name string
	X    Expr
}

func (*LetStmt) stmtNode() {}

func (s *LetStmt) Hash() uint64 {
	h := fnv.New64a()
	arr := []byte("LetStmt")
	_, _ = h.Write([]byte(s.Name))
	arr = binary.LittleEndian.AppendUint64(arr, s.Range.Hash())
	if s.X != nil {
		arr = binary.LittleEndian.AppendUint64(arr, s.X.Hash())
	}
	_, _ = h.Write(arr)
	return h.Sum64()
}
