package cmd

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/fatih/color"
	"github.com/loomlang/loom/frontend"
	"github.com/loomlang/loom/frontend/ast"
	"github.com/loomlang/loom/frontend/sig"
	"github.com/loomlang/loom/frontend/types"
	"github.com/loomlang/loom/internal/config"
	"github.com/loomlang/loom/internal/log"
	"github.com/spf13/cobra"
)

// SelfcheckCmd runs the checker over a handful of synthesized declarations,
// as an installation smoke test and a quick way to see diagnostics rendered.
var SelfcheckCmd = &cobra.Command{
	Use:          "selfcheck",
	Short:        "Check a set of built-in declarations and print their types",
	RunE:         runSelfcheck,
	SilenceUsage: true,
}

var (
	configPath *string
	logLevel   *int
)

func init() {
	configPath = SelfcheckCmd.Flags().StringP("config", "c", "loom.toml", "config file path")
	logLevel = SelfcheckCmd.Flags().IntP("log-level", "l", int(slog.LevelError), "log level")
}

func runSelfcheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	log.SetSections(cfg.Log.Sections)
	if level, ok := config.ParseLevel(cfg.Log.Level); ok {
		log.SetLevel(level)
	}
	// the flag overrides the config file when given explicitly
	if cmd.Flags().Changed("log-level") {
		log.SetLevel(slog.Level(*logLevel))
	}
	slog.SetDefault(log.DefaultLogger)

	results, err := frontend.CheckUnits(selfcheckUnits(), cfg.Check.MaxWorkers)
	if err != nil {
		return fmt.Errorf("selfcheck could not run (this is a bug, not a check error): %w", err)
	}

	bad := false
	for _, result := range results {
		fmt.Println(color.New(color.Bold).Sprint(result.Unit))
		names := make([]string, 0, len(result.Types))
		for name := range result.Types {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %s: %s\n", name, color.CyanString(result.Types[name].String()))
		}
		for _, diag := range result.Errors {
			bad = true
			fmt.Printf("  %s %s\n", color.RedString("error:"), diag.Error())
		}
		for _, failure := range result.Failures {
			bad = true
			fmt.Printf("  %s %s\n", color.RedString("failure:"), failure.Error())
		}
	}
	if bad {
		return fmt.Errorf("selfcheck found problems")
	}
	fmt.Println(color.GreenString("selfcheck ok"))
	return nil
}

// selfcheckUnits synthesizes the declarations the smoke test checks: a
// generic identity function and a class exercising every signature kind the
// checker supports.
func selfcheckUnits() []frontend.Unit {
	identityBody := &ast.BlockStmt{Stmts: []ast.Stmt{
		&ast.ReturnStmt{X: &ast.Var{Name: "x"}},
	}}
	identity := sig.Signature{
		Prov:       types.ProvAt(ast.Range{}, "function identity"),
		Kind:       sig.Ordinary{},
		TypeParams: []sig.TypeParam{{Name: "T"}},
		Params:     sig.FormalParams{{Name: "x", Type: &types.TypeVar{Name: "T"}}},
		Body:       identityBody,
		Ret:        &types.TypeVar{Name: "T"},
	}

	point := frontend.ClassDecl{
		Name: "Point",
		Fields: []frontend.FieldDecl{
			{Name: "scale", Type: types.IntType, Init: &ast.Literal{Kind: ast.LitInt, Syntax: "1"}},
		},
		Members: []frontend.MemberDecl{
			{Name: "x", Sig: sig.Signature{
				Prov: types.ProvAt(ast.Range{}, "getter x"),
				Kind: sig.Getter{},
				Body: &ast.BlockStmt{Stmts: []ast.Stmt{
					&ast.ReturnStmt{X: &ast.Literal{Kind: ast.LitInt, Syntax: "0"}},
				}},
				Ret: types.IntType,
			}},
			{Name: "setX", Sig: sig.Signature{
				Prov:   types.ProvAt(ast.Range{}, "setter x"),
				Kind:   sig.Setter{},
				Params: sig.FormalParams{{Name: "value", Type: types.IntType}},
				Body:   &ast.BlockStmt{},
				Ret:    types.UnitType,
			}},
		},
	}

	return []frontend.Unit{
		{
			Name:    "selfcheck",
			Funcs:   []frontend.FuncDecl{{Name: "identity", Sig: identity}},
			Classes: []frontend.ClassDecl{point},
		},
	}
}
