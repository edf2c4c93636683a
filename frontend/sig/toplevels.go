package sig

import (
	"github.com/google/uuid"
	"github.com/loomlang/loom/frontend/ast"
	"github.com/loomlang/loom/frontend/types"
	"github.com/pkg/errors"
)

// YieldAccumulator is the reserved binding name for the produced-value
// accumulator installed while checking generator bodies.
const YieldAccumulator = "%yield"

// The three checking callbacks supplied by the statement/expression checker.
// Toplevels threads them through one generic body-checking driver so every
// call site (functions, methods, constructors, initializers) reuses the same
// scope construction.
type (
	// CheckDecls installs forward-declared bindings for the body's
	// statement list, so mutual reference among declarations resolves
	// before sequential checking.
	CheckDecls func(ctx *types.TypeCtx, stmts []ast.Stmt) error
	// CheckStmts checks the statement list in order, returning the
	// fully-typed statements.
	CheckStmts func(ctx *types.TypeCtx, stmts []ast.Stmt) ([]ast.Stmt, error)
	// CheckExpr checks an expression-form body.
	CheckExpr func(ctx *types.TypeCtx, expr ast.Expr) (ast.Expr, error)
)

// Toplevels drives the checking of one signature's body:
//
//  1. open a fresh lexical scope nested in ctx
//  2. install this/super and the kind-dependent implicit bindings
//  3. bind every formal parameter
//  4. hoisting pass (decls)
//  5. sequential checking (stmts, or expr for expression-form bodies)
//  6. no synthetic completion statement; callers validate against the
//     declared return type
//  7. the scope is discarded on return
//
// id tags log records for this check; pass uuid.Nil when there is none.
// this and super may be nil when the signature has no receiver. Exactly one
// of the returned body/expr is populated: block-form bodies yield a checked
// block, field initializers yield a checked expression. Checking failures
// from the callbacks are surfaced unchanged; Toplevels itself only fails on
// caller misuse, such as an absent body on a kind that requires one.
func Toplevels(
	id uuid.UUID,
	ctx *types.TypeCtx,
	this, super types.Type,
	decls CheckDecls,
	stmts CheckStmts,
	expr CheckExpr,
	s Signature,
) (*ast.BlockStmt, ast.Expr, error) {
	logger := ctx.Logger()
	if id != uuid.Nil {
		logger = logger.With("bodyCheck", id.String())
	}
	logger.Debug("checking body", "kind", s.Kind.String(), "of", s.Prov.Desc)

	scope := ctx.Nest()

	// the outer type environment is visible for the whole check, minus any
	// entry an own type parameter shadows
	envBindings := s.envBindings()
	scope.PushTypeParams(envBindings)
	defer scope.PopTypeParams(len(envBindings))

	if this != nil {
		scope.Bind(ast.ThisName, this)
	}
	if super != nil {
		scope.Bind(ast.SuperName, super)
	}

	switch kind := s.Kind.(type) {
	case Generator, AsyncGenerator:
		scope.Bind(YieldAccumulator, s.DeclaredRet())
	case Ctor:
		if super != nil && !hasExplicitSuperCall(s.Body) {
			scope.MarkPendingSuperCall()
		}
	case FieldInit:
		if kind.Init == nil {
			return nil, nil, errors.Errorf("field initializer %q carries no expression", s.Prov.Desc)
		}
	}

	for _, param := range s.Params {
		scope.Bind(param.Name, param.DeclaredType())
	}

	if init, ok := s.Kind.(FieldInit); ok {
		checkedExpr, err := expr(scope, init.Init)
		if err != nil {
			return nil, nil, err
		}
		return nil, checkedExpr, nil
	}

	if s.Body == nil {
		return nil, nil, errors.Errorf("%s %q has no body to check", s.Kind, s.Prov.Desc)
	}

	if err := decls(scope, s.Body.Stmts); err != nil {
		return nil, nil, err
	}
	checkedStmts, err := stmts(scope, s.Body.Stmts)
	if err != nil {
		return nil, nil, err
	}
	return &ast.BlockStmt{Range: s.Body.Range, Stmts: checkedStmts}, nil, nil
}

func hasExplicitSuperCall(body *ast.BlockStmt) bool {
	if body == nil {
		return false
	}
	for _, stmt := range body.Stmts {
		if ast.IsSuperCall(stmt) {
			return true
		}
	}
	return false
}
