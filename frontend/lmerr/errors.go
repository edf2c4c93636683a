package lmerr

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/loomlang/loom/frontend/ast"
)

// enableDebugErrorPrinting makes errors include their stacktrace when printed
const enableDebugErrorPrinting bool = false
const enableDebugFullStacktrace bool = false

type ErrCode int

const (
	None ErrCode = iota
	TypeMismatch
	UndefinedVariable
	NameRedeclaration
	NotAGetter
	NotASetter
	NotCallable
	ArityMismatch
)

type LoomError interface {
	Error() string
	Code() ErrCode
	ast.Positioner

	withStack([]byte) LoomError
	getStack() []byte
}

func FormatWithCode(e LoomError) string {
	if enableDebugErrorPrinting && e.getStack() != nil {
		stack := string(e.getStack())
		if !enableDebugFullStacktrace {
			stack = strings.Split(stack, "\n")[6]
		}
		return fmt.Sprintf("%s:(E%03d) %s", stack, e.Code(), e.Error())
	}
	return fmt.Sprintf("(E%03d) %s", e.Code(), e.Error())
}

func New[E LoomError](err E) LoomError {
	return err.withStack(debug.Stack())
}

type Unclassified struct {
	From error
	ast.Positioner
	stack []byte
}

func (e Unclassified) Error() string {
	return fmt.Sprintf("unclassified error: %v", e.From)
}
func (e Unclassified) Code() ErrCode    { return None }
func (e Unclassified) getStack() []byte { return e.stack }
func (e Unclassified) withStack(stack []byte) LoomError {
	e.stack = stack
	return e
}

type NewTypeMismatch struct {
	ast.Positioner
	// Expected and Found are rendered type names
	Expected string
	Found    string
	stack    []byte
}

func (e NewTypeMismatch) Error() string {
	return fmt.Sprintf("type mismatch: expected type '%s', but found a different type '%s'", e.Expected, e.Found)
}
func (e NewTypeMismatch) Code() ErrCode    { return TypeMismatch }
func (e NewTypeMismatch) getStack() []byte { return e.stack }
func (e NewTypeMismatch) withStack(stack []byte) LoomError {
	e.stack = stack
	return e
}

type NewUndefinedVariable struct {
	ast.Positioner
	Name  string
	stack []byte
}

func (e NewUndefinedVariable) Error() string {
	return fmt.Sprintf("variable '%s' is not defined", e.Name)
}
func (e NewUndefinedVariable) Code() ErrCode    { return UndefinedVariable }
func (e NewUndefinedVariable) getStack() []byte { return e.stack }
func (e NewUndefinedVariable) withStack(stack []byte) LoomError {
	e.stack = stack
	return e
}

type NewNameRedeclaration struct {
	ast.Positioner
	Name  string
	Other ast.Positioner
	stack []byte
}

func (e NewNameRedeclaration) Error() string {
	return fmt.Sprintf("name '%s' is declared more than once", e.Name)
}
func (e NewNameRedeclaration) Code() ErrCode    { return NameRedeclaration }
func (e NewNameRedeclaration) getStack() []byte { return e.stack }
func (e NewNameRedeclaration) withStack(stack []byte) LoomError {
	e.stack = stack
	return e
}

type NewNotAGetter struct {
	ast.Positioner
	Desc  string
	stack []byte
}

func (e NewNotAGetter) Error() string {
	return fmt.Sprintf("%s is not a getter", e.Desc)
}
func (e NewNotAGetter) Code() ErrCode    { return NotAGetter }
func (e NewNotAGetter) getStack() []byte { return e.stack }
func (e NewNotAGetter) withStack(stack []byte) LoomError {
	e.stack = stack
	return e
}

type NewNotASetter struct {
	ast.Positioner
	Desc  string
	stack []byte
}

func (e NewNotASetter) Error() string {
	return fmt.Sprintf("%s is not a setter", e.Desc)
}
func (e NewNotASetter) Code() ErrCode    { return NotASetter }
func (e NewNotASetter) getStack() []byte { return e.stack }
func (e NewNotASetter) withStack(stack []byte) LoomError {
	e.stack = stack
	return e
}

type NewNotCallable struct {
	ast.Positioner
	Found string
	stack []byte
}

func (e NewNotCallable) Error() string {
	return fmt.Sprintf("expression of type '%s' is not callable", e.Found)
}
func (e NewNotCallable) Code() ErrCode    { return NotCallable }
func (e NewNotCallable) getStack() []byte { return e.stack }
func (e NewNotCallable) withStack(stack []byte) LoomError {
	e.stack = stack
	return e
}

type NewArityMismatch struct {
	ast.Positioner
	Want  int
	Got   int
	stack []byte
}

func (e NewArityMismatch) Error() string {
	return fmt.Sprintf("call expects %d arguments, but %d were given", e.Want, e.Got)
}
func (e NewArityMismatch) Code() ErrCode    { return ArityMismatch }
func (e NewArityMismatch) getStack() []byte { return e.stack }
func (e NewArityMismatch) withStack(stack []byte) LoomError {
	e.stack = stack
	return e
}
