package frontend

import (
	"fmt"

	"github.com/loomlang/loom/frontend/sig"
	"github.com/loomlang/loom/frontend/types"
	"golang.org/x/sync/errgroup"
)

// FuncDecl is one top-level function declaration of a unit.
type FuncDecl struct {
	Name string
	Sig  sig.Signature
}

// Unit is an independently checkable chunk of a program, typically one file.
type Unit struct {
	Name    string
	Funcs   []FuncDecl
	Classes []ClassDecl
}

// UnitResult is the outcome of checking one unit with its own context.
type UnitResult struct {
	Unit string
	// Types maps each declaration (and Class.member) to its projected type
	Types map[string]types.Type
	// Errors are the unit's language diagnostics
	Errors []error
	// Failures are unexpected scenarios indicating caller misuse or bugs
	Failures []error
}

// CheckUnits checks every unit, each on its own worker with its own TypeCtx.
// Contexts are never shared across workers, so no synchronization beyond the
// group join is needed. maxWorkers <= 0 means no limit.
func CheckUnits(units []Unit, maxWorkers int) ([]UnitResult, error) {
	results := make([]UnitResult, len(units))
	group := errgroup.Group{}
	if maxWorkers > 0 {
		group.SetLimit(maxWorkers)
	}
	for i, unit := range units {
		group.Go(func() error {
			result, err := CheckUnit(types.NewEmptyTypeCtx(), unit)
			if err != nil {
				return fmt.Errorf("checking unit %q: %w", unit.Name, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// CheckUnit checks one unit under the given context.
func CheckUnit(ctx *types.TypeCtx, unit Unit) (UnitResult, error) {
	result := UnitResult{
		Unit:  unit.Name,
		Types: make(map[string]types.Type, len(unit.Funcs)),
	}
	for _, fn := range unit.Funcs {
		if err := checkMember(ctx, nil, nil, fn.Sig); err != nil {
			return result, err
		}
		result.Types[fn.Name] = sig.FuncType(ctx, nil, fn.Sig)
	}
	for _, class := range unit.Classes {
		members, err := CheckClass(ctx, class)
		if err != nil {
			return result, err
		}
		for name, t := range members {
			result.Types[class.Name+"."+name] = t
		}
	}
	for _, diag := range ctx.Errors.Errors() {
		result.Errors = append(result.Errors, diag)
	}
	result.Failures = ctx.Failures
	return result, nil
}
