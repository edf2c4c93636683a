package types

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"

	"github.com/google/uuid"
	"github.com/loomlang/loom/frontend/ast"
	"github.com/loomlang/loom/frontend/lmerr"
	"github.com/loomlang/loom/util"
)

type typeError struct {
	message string
	// Positioner may be nil
	ast.Positioner
	stack []byte
}

func (err typeError) String() string {
	stack := strings.Split(string(err.stack), "\n")[6]
	return fmt.Sprintf("( %s ): %s", strings.TrimSpace(stack), err.message)
}
func (err typeError) Error() string {
	return err.String()
}

// TypeParamBinding is one entry of the ambient type-parameter scope: a
// parameter name with its upper bound.
type TypeParamBinding = util.Pair[string, Type]

// TypeCtx holds the state of one checking pass over one unit. A TypeCtx is
// exclusively owned by the worker running that pass: it is never shared
// between concurrent checks, so none of it is synchronized.
type TypeCtx struct {
	parent *TypeCtx // can be nil
	env    map[string]Type

	// pendingSuperCall is set while checking a constructor body that has no
	// explicit super-call, so an implicit one applies
	pendingSuperCall bool

	// here to avoid passing a position on every function call
	currentPos ast.Positioner

	logger *slog.Logger

	*TypeState
}

// TypeState is part of TypeCtx and is shared across all nested copies of it
// during a single checking pass. It is not concurrency safe.
type TypeState struct {
	// CheckID identifies this checking pass in logs
	CheckID uuid.UUID

	// Failures are irrecoverable unexpected scenarios that a well-formed
	// caller should never hit
	Failures []error
	// Errors are language problems a malformed program could cause
	Errors *lmerr.Errors

	// typeParams is the ambient type-parameter scope, pushed and popped with
	// strict stack discipline by sig.WithTypeParams
	typeParams util.Stack[TypeParamBinding]

	// nodeTypes records the resolved type of every checked AST position
	nodeTypes map[nodeKey]Type
}

type nodeKey struct {
	r        ast.Range
	nodeHash uint64
}

// NewEmptyTypeCtx is the entry point to get a TypeCtx, but not how you produce
// a TypeCtx from another one. For that use Nest or WithBindings.
func NewEmptyTypeCtx() *TypeCtx {
	id := uuid.New()
	return &TypeCtx{
		parent: nil,
		env:    universeEnv(),
		TypeState: &TypeState{
			CheckID:   id,
			nodeTypes: make(map[nodeKey]Type, 1),
		},
		logger: slog.Default().With("section", "check", "checkID", id.String()),
	}
}

func universeEnv() map[string]Type {
	return map[string]Type{
		"Int":  IntType,
		"Str":  StrType,
		"Bool": BoolType,
		"Unit": UnitType,
	}
}

// Nest opens a fresh lexical scope whose parent is the receiver. Bindings
// made in the child are invisible to the parent; discarding the child is the
// teardown.
func (ctx *TypeCtx) Nest() *TypeCtx {
	copied := ctx.copy()
	copied.parent = ctx
	copied.env = make(map[string]Type, 4)
	return copied
}

func (ctx *TypeCtx) copy() *TypeCtx {
	copied := *ctx
	return &copied
}

// WithBindings returns a new nested TypeCtx with the given bindings installed.
func (ctx *TypeCtx) WithBindings(bindings map[string]Type) *TypeCtx {
	newCtx := ctx.Nest()
	for name, t := range bindings {
		newCtx.env[name] = t
	}
	return newCtx
}

// Bind installs a binding in the current scope, shadowing any outer binding
// of the same name.
func (ctx *TypeCtx) Bind(name string, t Type) {
	ctx.env[name] = t
}

// Get resolves a name through the scope chain, innermost first.
func (ctx *TypeCtx) Get(name string) (t Type, ok bool) {
	t, ok = ctx.env[name]
	if ok {
		return t, true
	}
	if ctx.parent != nil {
		t, ok = ctx.parent.Get(name)
	}
	return t, ok
}

// At returns a copy of the context with the given current position, used to
// stamp diagnostics raised while no more precise position is at hand.
func (ctx *TypeCtx) At(pos ast.Positioner) *TypeCtx {
	copied := ctx.copy()
	copied.currentPos = pos
	return copied
}

func (ctx *TypeCtx) CurrentPos() ast.Positioner { return ctx.currentPos }

func (ctx *TypeCtx) Logger() *slog.Logger { return ctx.logger }

// MarkPendingSuperCall records that the constructor body being checked in
// this scope carries an implicit super-call.
func (ctx *TypeCtx) MarkPendingSuperCall() { ctx.pendingSuperCall = true }

func (ctx *TypeCtx) PendingSuperCall() bool { return ctx.pendingSuperCall }

// PushTypeParams extends the ambient type-parameter scope. Callers must pop
// exactly what they pushed, on every exit path.
func (ctx *TypeCtx) PushTypeParams(bindings []TypeParamBinding) {
	for _, binding := range bindings {
		ctx.typeParams.Push(binding)
	}
}

// PopTypeParams removes the n most recent ambient type-parameter bindings.
func (ctx *TypeCtx) PopTypeParams(n int) {
	for i := 0; i < n; i++ {
		if _, ok := ctx.typeParams.Pop(); !ok {
			ctx.addFailure("type-parameter scope popped below its floor", ctx.currentPos)
			return
		}
	}
}

// LookupTypeParam resolves a name against the ambient type-parameter scope,
// innermost binding first.
func (ctx *TypeCtx) LookupTypeParam(name string) (bound Type, ok bool) {
	for _, binding := range ctx.typeParams.Snapshot() {
		if binding.Fst == name {
			bound, ok = binding.Snd, true
		}
	}
	return bound, ok
}

// TypeParamScope snapshots the ambient type-parameter scope, bottom first.
func (ctx *TypeCtx) TypeParamScope() []TypeParamBinding {
	return ctx.typeParams.Snapshot()
}

// RecordNodeType annotates a checked AST position with its resolved type.
func (ctx *TypeCtx) RecordNodeType(node ast.Node, t Type) {
	ctx.nodeTypes[nodeKey{r: ast.RangeOf(node), nodeHash: node.Hash()}] = t
}

// NodeType returns the recorded type for a checked AST position.
func (ctx *TypeCtx) NodeType(node ast.Node) (Type, bool) {
	t, ok := ctx.nodeTypes[nodeKey{r: ast.RangeOf(node), nodeHash: node.Hash()}]
	return t, ok
}

func (ctx *TypeCtx) AddFailure(message string, pos ast.Positioner) {
	ctx.addFailure(message, pos)
}

func (ctx *TypeState) addFailure(message string, pos ast.Positioner) {
	slog.Error("failure during checking", "message", message)
	ctx.Failures = append(ctx.Failures, typeError{message: message, Positioner: pos, stack: debug.Stack()})
}

func (ctx *TypeCtx) AddError(err lmerr.LoomError) {
	ctx.logger.Warn("error during checking", "message", err.Error(), "at", lmerr.FormatWithCode(err))
	ctx.Errors = ctx.Errors.With(err)
}
