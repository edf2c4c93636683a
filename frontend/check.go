// Package frontend hosts the checking pipeline around the signature core:
// the reference statement/expression checker supplying sig.Toplevels'
// callbacks, the class checking driver, and the parallel phase runner.
package frontend

import (
	set "github.com/hashicorp/go-set/v3"
	"github.com/loomlang/loom/frontend/ast"
	"github.com/loomlang/loom/frontend/lmerr"
	"github.com/loomlang/loom/frontend/types"
)

// BodyChecker implements the three callbacks sig.Toplevels threads through a
// body check, closed over the declared return type it validates against.
// Resolved types are recorded in the context's node-type table, so every
// checked position carries its type.
type BodyChecker struct {
	// Ret is the declared return type return statements are checked against
	Ret types.Type
}

func NewBodyChecker(ret types.Type) *BodyChecker {
	if ret == nil {
		ret = types.Top
	}
	return &BodyChecker{Ret: ret}
}

// CheckDecls is the hoisting pass: every let-bound name of the block becomes
// visible before sequential checking, so mutually-referring declarations
// resolve. Duplicate names are a diagnostic.
func (c *BodyChecker) CheckDecls(ctx *types.TypeCtx, stmts []ast.Stmt) error {
	seen := set.New[string](len(stmts))
	for _, stmt := range stmts {
		let, ok := stmt.(*ast.LetStmt)
		if !ok {
			continue
		}
		if !seen.Insert(let.Name) {
			return lmerr.New(lmerr.NewNameRedeclaration{
				Positioner: let.Range,
				Name:       let.Name,
			})
		}
		// the placeholder is refined when the let is checked in order
		ctx.Bind(let.Name, types.Top)
	}
	return nil
}

// CheckStmts checks the statement list in order, producing the fully-typed
// list. Failures from sub-terms are surfaced to the caller unchanged.
func (c *BodyChecker) CheckStmts(ctx *types.TypeCtx, stmts []ast.Stmt) ([]ast.Stmt, error) {
	checked := make([]ast.Stmt, 0, len(stmts))
	for _, stmt := range stmts {
		switch stmt := stmt.(type) {
		case *ast.LetStmt:
			t, err := c.inferExpr(ctx, stmt.X)
			if err != nil {
				return nil, err
			}
			ctx.Bind(stmt.Name, t)
			ctx.RecordNodeType(stmt, t)
		case *ast.ExprStmt:
			t, err := c.inferExpr(ctx, stmt.X)
			if err != nil {
				return nil, err
			}
			ctx.RecordNodeType(stmt, t)
		case *ast.ReturnStmt:
			var t types.Type = types.UnitType
			if stmt.X != nil {
				var err error
				t, err = c.inferExpr(ctx, stmt.X)
				if err != nil {
					return nil, err
				}
			}
			if !ctx.IsSubtype(t, c.Ret) {
				return nil, lmerr.New(lmerr.NewTypeMismatch{
					Positioner: stmt.Range,
					Expected:   c.Ret.String(),
					Found:      t.String(),
				})
			}
			ctx.RecordNodeType(stmt, t)
		case *ast.BlockStmt:
			inner := ctx.Nest()
			if err := c.CheckDecls(inner, stmt.Stmts); err != nil {
				return nil, err
			}
			if _, err := c.CheckStmts(inner, stmt.Stmts); err != nil {
				return nil, err
			}
		default:
			ctx.AddFailure("statement checking not implemented for this node", stmt)
		}
		checked = append(checked, stmt)
	}
	return checked, nil
}

// CheckExpr checks an expression-form body (a field initializer) against the
// declared type.
func (c *BodyChecker) CheckExpr(ctx *types.TypeCtx, expr ast.Expr) (ast.Expr, error) {
	t, err := c.inferExpr(ctx, expr)
	if err != nil {
		return nil, err
	}
	if !ctx.IsSubtype(t, c.Ret) {
		return nil, lmerr.New(lmerr.NewTypeMismatch{
			Positioner: ast.RangeOf(expr),
			Expected:   c.Ret.String(),
			Found:      t.String(),
		})
	}
	return expr, nil
}

func (c *BodyChecker) inferExpr(ctx *types.TypeCtx, expr ast.Expr) (types.Type, error) {
	switch expr := expr.(type) {
	case *ast.Literal:
		t := literalType(expr.Kind)
		ctx.RecordNodeType(expr, t)
		return t, nil
	case *ast.Var:
		t, ok := ctx.Get(expr.Name)
		if !ok {
			return nil, lmerr.New(lmerr.NewUndefinedVariable{
				Positioner: expr.Range,
				Name:       expr.Name,
			})
		}
		ctx.RecordNodeType(expr, t)
		return t, nil
	case *ast.Call:
		return c.inferCall(ctx, expr)
	default:
		ctx.AddFailure("expression checking not implemented for this node", expr)
		return types.Top, nil
	}
}

func (c *BodyChecker) inferCall(ctx *types.TypeCtx, call *ast.Call) (types.Type, error) {
	fnType, err := c.inferExpr(ctx, call.Fn)
	if err != nil {
		return nil, err
	}
	fn, ok := fnType.(*types.FuncType)
	if !ok {
		return nil, lmerr.New(lmerr.NewNotCallable{
			Positioner: call.Range,
			Found:      fnType.String(),
		})
	}
	if len(call.Args) != len(fn.Params) {
		return nil, lmerr.New(lmerr.NewArityMismatch{
			Positioner: call.Range,
			Want:       len(fn.Params),
			Got:        len(call.Args),
		})
	}
	for i, arg := range call.Args {
		argType, err := c.inferExpr(ctx, arg)
		if err != nil {
			return nil, err
		}
		if !ctx.IsSubtype(argType, fn.Params[i]) {
			return nil, lmerr.New(lmerr.NewTypeMismatch{
				Positioner: ast.RangeOf(arg),
				Expected:   fn.Params[i].String(),
				Found:      argType.String(),
			})
		}
	}
	ctx.RecordNodeType(call, fn.Ret)
	return fn.Ret, nil
}

func literalType(kind ast.LitKind) types.Type {
	switch kind {
	case ast.LitInt:
		return types.IntType
	case ast.LitStr:
		return types.StrType
	case ast.LitBool:
		return types.BoolType
	default:
		return types.Top
	}
}
